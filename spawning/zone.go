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

package spawning

import (
	"github.com/go-gl/mathgl/mgl64"

	"PokeCore/internal/bvh"
)

type (
	vec3d       = bvh.Vec3[float64]
	aabb3d      = bvh.AABB[float64, vec3d]
	entityIndex = bvh.Tree[float64, aabb3d, mgl64.Vec3]
)

// Zone - прямокутна область світу, яку сканує резолвер
type Zone struct {
	Cause SpawnCause
	World World
	// Base - кут з найменшими координатами
	Base                  BlockPos
	Length, Height, Width int32

	// MinEntityDistance - ближче до наявних сутностей кандидати не беруться
	MinEntityDistance float64
	Influences        []Influence
	Structures        *StructureCache

	entities entityIndex
}

// NewZone будує зону і індекс сутностей поруч з нею
func NewZone(cause SpawnCause, world World, base BlockPos, length, height, width int32, minEntityDistance float64, entities []mgl64.Vec3) *Zone {
	z := &Zone{
		Cause:             cause,
		World:             world,
		Base:              base,
		Length:            length,
		Height:            height,
		Width:             width,
		MinEntityDistance: minEntityDistance,
		Structures:        NewStructureCache(world),
	}
	for _, e := range entities {
		z.entities.Insert(bvh.Around(vec3d(e), minEntityDistance), e)
	}
	return z
}

// NewPointZone - зона з одного блоку для точкового спавну
// (приманка, рибалка). Кеш структур у неї свій.
func NewPointZone(cause SpawnCause, world World, pos BlockPos) *Zone {
	return NewZone(cause, world, pos, 1, 1, 1, 0, nil)
}

// Volume - кількість блоків у зоні
func (z *Zone) Volume() int {
	return int(z.Length) * int(z.Height) * int(z.Width)
}

// TooCloseToEntity перевіряє чи блок pos ближче MinEntityDistance
// до будь-якої сутності з індексу
func (z *Zone) TooCloseToEntity(pos BlockPos) bool {
	if z.MinEntityDistance <= 0 || z.entities.Len() == 0 {
		return false
	}
	center := pos.Center()
	near := false
	z.entities.Find(bvh.TouchPoint[vec3d, aabb3d](vec3d(center)), func(n *bvh.Node[float64, aabb3d, mgl64.Vec3]) bool {
		near = n.Value.Sub(center).Len() < z.MinEntityDistance
		return !near
	})
	return near
}
