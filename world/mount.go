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
	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"

	"PokeCore/riding"
	"PokeCore/world/entity"
)

// Mount - покемон у світі, на якому можна їхати
type Mount struct {
	Entity
	Species string
	Level   int
	// Boosts - прокачка статів від 0 до 1, відсутній стат = 0
	Boosts map[riding.Stat]float64

	Rider  uuid.UUID // uuid.Nil - ніхто не сидить
	Pose   riding.Pose
	flying bool
	world  *World
}

var _ riding.Vehicle = (*Mount)(nil)

func NewMount(species string, level int, pos Position) *Mount {
	return &Mount{
		Entity: Entity{
			EntityID: NewEntityID(),
			UUID:     uuid.New(),
			Position: pos,
		},
		Species: species,
		Level:   level,
		Boosts:  make(map[riding.Stat]float64),
		Pose:    riding.NoPose,
	}
}

func (m *Mount) Velocity() mgl64.Vec3 { return m.Motion }
func (m *Mount) OnGround() bool       { return bool(m.Entity.OnGround) }

func (m *Mount) InLiquid() bool {
	return m.world != nil && m.world.InLiquid(&m.Entity)
}

func (m *Mount) WorldTick() int64 {
	if m.world == nil {
		return 0
	}
	return m.world.Tick()
}

func (m *Mount) SetFlying(flying bool)              { m.flying = flying }
func (m *Mount) Flying() bool                       { return m.flying }
func (m *Mount) StatBoost(stat riding.Stat) float64 { return m.Boosts[stat] }

func (m *Mount) Ridden() bool { return m.Rider != uuid.Nil }

// Metadata - прапорці і поза для клієнтів, що бачать покемона
func (m *Mount) Metadata() entity.MetadataSet {
	var flags entity.SharedFlags
	if m.flying {
		flags |= entity.FlagFallFlying
	}
	pose := entity.Standing
	switch m.Pose {
	case riding.PoseFly, riding.PoseGlide:
		pose = entity.FallFlying
	}
	return entity.MetadataSet{
		{Index: entity.IndexSharedFlags, MetadataValue: &flags},
		{Index: entity.IndexPose, MetadataValue: &pose},
	}
}
