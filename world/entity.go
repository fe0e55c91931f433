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

package world

import (
	"math"
	"sync/atomic"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"

	"PokeCore/internal/bvh"
	"PokeCore/spawning"
)

var entityCounter atomic.Int32

func NewEntityID() int32 {
	return entityCounter.Add(1)
}

type Entity struct {
	EntityID int32
	UUID     uuid.UUID
	Position            // x, y, z координати
	Rotation            // yaw, pitch
	OnGround            // чи на землі
	Motion   mgl64.Vec3 // швидкість за останній тік
	node     *entityNode
}

type Position [3]float64

type Rotation [2]float32

type OnGround bool

func (p *Position) IsValid() bool {
	return !math.IsNaN((*p)[0]) && !math.IsNaN((*p)[1]) && !math.IsNaN((*p)[2]) &&
		!math.IsInf((*p)[0], 0) && !math.IsInf((*p)[1], 0) && !math.IsInf((*p)[2], 0)
}

// entityRadius - півширина коробки сутності в індексі
const entityRadius = 0.5

func (w *World) insertEntity(e *Entity) {
	e.node = w.entities.Insert(bvh.Around(vec3d(e.Position), entityRadius), e)
}

func (w *World) removeEntity(e *Entity) {
	if e.node == nil {
		return
	}
	w.entities.Delete(e.node)
	e.node = nil
}

// moveEntity переставляє сутність в індексі після зміни позиції
func (w *World) moveEntity(e *Entity) {
	box := bvh.Around(vec3d(e.Position), entityRadius)
	if e.node == nil || e.node.Box == box {
		return
	}
	w.entities.Delete(e.node)
	e.node = w.entities.Insert(box, e)
}

// groundEpsilon - наскільки нижче ніг шукається опора
const groundEpsilon = 1e-3

// Move зсуває сутність на motion. Падаючи на твердий блок, сутність
// зупиняється на ньому і стає OnGround.
func (w *World) Move(e *Entity, motion mgl64.Vec3) {
	next := mgl64.Vec3(e.Position).Add(motion)
	e.OnGround = false
	if motion[1] <= 0 {
		below := spawning.BlockPos{floor(next[0]), floor(next[1] - groundEpsilon), floor(next[2])}
		if spawning.IsSolid(w.BlockName(below)) {
			next[1] = float64(below.Y() + 1)
			motion[1] = 0
			e.OnGround = true
		}
	}
	e.Position = Position(next)
	e.Motion = motion
	w.moveEntity(e)
}

// SetPosition переносить сутність без перевірки зіткнень
func (w *World) SetPosition(e *Entity, pos Position) {
	e.Position = pos
	w.moveEntity(e)
}

// InLiquid - чи стоїть сутність у воді або лаві
func (w *World) InLiquid(e *Entity) bool {
	return spawning.IsFluid(w.BlockName(BlockAt(mgl64.Vec3(e.Position))))
}

func floor(v float64) int32 { return int32(math.Floor(v)) }
