// This file is part of go-mc/server project.
// Copyright (C) 2023.  Tnze
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published
// by the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package prioritylist

import "sort"

// Priority - менше значення обробляється раніше
type Priority int

const (
	Highest Priority = iota * 100
	High
	Normal
	Low
	Lowest
)

type entry[T any] struct {
	priority Priority
	value    T
}

// List тримає елементи впорядкованими за пріоритетом.
// Елементи з однаковим пріоритетом лишаються в порядку додавання.
type List[T any] struct {
	entries []entry[T]
}

func (l *List[T]) Add(p Priority, v T) {
	i := sort.Search(len(l.entries), func(i int) bool {
		return l.entries[i].priority > p
	})
	l.entries = append(l.entries, entry[T]{})
	copy(l.entries[i+1:], l.entries[i:])
	l.entries[i] = entry[T]{priority: p, value: v}
}

// Remove видаляє всі елементи для яких match повертає true
func (l *List[T]) Remove(match func(T) bool) (removed int) {
	kept := l.entries[:0]
	for _, e := range l.entries {
		if match(e.value) {
			removed++
			continue
		}
		kept = append(kept, e)
	}
	l.entries = kept
	return
}

func (l *List[T]) Len() int { return len(l.entries) }

// All повертає копію елементів у порядку обробки
func (l *List[T]) All() []T {
	out := make([]T, len(l.entries))
	for i, e := range l.entries {
		out[i] = e.value
	}
	return out
}

// First - перший за пріоритетом елемент, що задовольняє pred
func (l *List[T]) First(pred func(T) bool) (v T, ok bool) {
	for _, e := range l.entries {
		if pred(e.value) {
			return e.value, true
		}
	}
	return v, false
}
