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

// Пакет weighted - зважений випадковий вибір.
// Шанс елемента = його вага / сума ваг.
package weighted

// Rand - джерело випадковості. *math/rand.Rand підходить.
type Rand interface {
	Float64() float64
}

// Select обирає один елемент пропорційно до weight.
// Елементи з вагою <= 0 не беруть участі.
// Якщо жоден елемент не має додатної ваги - повертає false.
func Select[T any](rng Rand, items []T, weight func(T) float64) (chosen T, ok bool) {
	var total float64
	for _, item := range items {
		if w := weight(item); w > 0 {
			total += w
		}
	}
	if total <= 0 {
		return chosen, false
	}

	roll := rng.Float64() * total
	last := -1
	for i, item := range items {
		w := weight(item)
		if w <= 0 {
			continue
		}
		last = i
		roll -= w
		if roll < 0 {
			return item, true
		}
	}
	// похибка float64 може залишити roll трохи вище нуля
	return items[last], true
}

// Entry - елемент з вагою, зручний для побудови списків на льоту
type Entry[T any] struct {
	Value  T
	Weight float64
}

// SelectEntry - Select для списку Entry
func SelectEntry[T any](rng Rand, entries []Entry[T]) (T, bool) {
	e, ok := Select(rng, entries, func(e Entry[T]) float64 { return e.Weight })
	return e.Value, ok
}
