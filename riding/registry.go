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

package riding

import (
	"fmt"
	"sort"

	"golang.org/x/exp/maps"
)

// Registry - таблиця "ключ -> реалізація".
// Наповнюється при старті коренем композиції і передається тим, кому
// потрібен пошук. Глобальних реєстрів немає.
type Registry[K comparable, V any] struct {
	name    string
	entries map[K]V
}

func NewRegistry[K comparable, V any](name string) *Registry[K, V] {
	return &Registry[K, V]{name: name, entries: make(map[K]V)}
}

// Register додає запис. Повторна реєстрація ключа - помилка програміста.
func (r *Registry[K, V]) Register(key K, value V) {
	if _, ok := r.entries[key]; ok {
		panic(fmt.Sprintf("duplicate %s key: %v", r.name, key))
	}
	r.entries[key] = value
}

func (r *Registry[K, V]) Get(key K) (V, bool) {
	v, ok := r.entries[key]
	return v, ok
}

// MustGet - для ключів, наявність яких уже перевірена
func (r *Registry[K, V]) MustGet(key K) V {
	v, ok := r.entries[key]
	if !ok {
		panic(fmt.Sprintf("unregistered %s key: %v", r.name, key))
	}
	return v
}

func (r *Registry[K, V]) Len() int { return len(r.entries) }

// Keys повертає ключі, відсортовані за текстовим представленням
func (r *Registry[K, V]) Keys() []K {
	keys := maps.Keys(r.entries)
	sort.Slice(keys, func(i, j int) bool {
		return fmt.Sprint(keys[i]) < fmt.Sprint(keys[j])
	})
	return keys
}
