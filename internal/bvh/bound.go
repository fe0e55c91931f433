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

// Пакет bvh - дерево обмежувальних об'ємів.
// Ним користуються світ (хто з сутностей поруч) і спавнер
// (чи не занадто близько кандидат до вже існуючої сутності).

package bvh

import (
	"golang.org/x/exp/constraints"
)

// AABB - куб, вирівняний по осях координат
type AABB[I constraints.Signed | constraints.Float, V interface {
	Add(V) V
	Sub(V) V
	Max(V) V
	Min(V) V
	Less(V) bool
	More(V) bool
	Sum() I
}] struct {
	Upper, Lower V
}

// WithIn перевіряє чи точка строго всередині куба
func (aabb AABB[I, V]) WithIn(point V) bool {
	return aabb.Lower.Less(point) && aabb.Upper.More(point)
}

// Touch перевіряє чи перетинаються два куби
func (aabb AABB[I, V]) Touch(other AABB[I, V]) bool {
	return aabb.Lower.Less(other.Upper) && other.Lower.Less(aabb.Upper)
}

func (aabb AABB[I, V]) Union(other AABB[I, V]) AABB[I, V] {
	return AABB[I, V]{
		Upper: aabb.Upper.Max(other.Upper),
		Lower: aabb.Lower.Min(other.Lower),
	}
}

// Surface - евристика вартості для вставки, сума ребер
func (aabb AABB[I, V]) Surface() I {
	return aabb.Upper.Sub(aabb.Lower).Sum() * 2
}

// Around будує куб з півстороною r навколо центру
func Around[I constraints.Signed | constraints.Float](center Vec3[I], r I) AABB[I, Vec3[I]] {
	return AABB[I, Vec3[I]]{
		Upper: Vec3[I]{center[0] + r, center[1] + r, center[2] + r},
		Lower: Vec3[I]{center[0] - r, center[1] - r, center[2] - r},
	}
}
