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

package behaviours

import (
	"github.com/go-gl/mathgl/mgl64"

	"PokeCore/riding"
)

const HorseKey riding.Key = "pokecore:horse"

// HorseSettings - наземна їзда
type HorseSettings struct {
	riding.BaseSettings
	Stamina

	// SprintMultiplier - множник швидкості під час спринту
	SprintMultiplier float64
	// BackwardMultiplier - частка швидкості при русі назад і вбік
	BackwardMultiplier float64
	// SpeedScale переводить стат швидкості в блоки за тік
	SpeedScale float64
	// JumpScale переводить стат стрибка в початкову швидкість
	JumpScale float64
}

func NewHorseSettings(stats map[riding.Stat]riding.IntRange) *HorseSettings {
	return &HorseSettings{
		BaseSettings:       riding.BaseSettings{BehaviourKey: HorseKey, StatRanges: stats},
		Stamina:            Stamina{Drain: 0.01, Regen: 0.004},
		SprintMultiplier:   1.6,
		BackwardMultiplier: 0.4,
		SpeedScale:         0.005,
		JumpScale:          0.01,
	}
}

// Horse біжить по землі, спринт витрачає витривалість
type Horse struct{ base }

func (Horse) Key() riding.Key { return HorseKey }

func (Horse) RidingStyle(riding.Settings, riding.State) riding.Style { return riding.Land }

func (Horse) IsActive(_ riding.Settings, _ riding.State, v riding.Vehicle) bool {
	return !v.InLiquid()
}

func (Horse) Pose(_ riding.Settings, _ riding.State, v riding.Vehicle) riding.Pose {
	if horizontal(v.Velocity()) > 0.05 {
		return riding.PoseWalk
	}
	return riding.PoseStand
}

func (Horse) Speed(s riding.Settings, st riding.State, v riding.Vehicle, d riding.Driver) float64 {
	hs := mustSettings[*HorseSettings](s)
	speed := riding.StatValue(hs, v, riding.StatSpeed) * hs.SpeedScale
	if d.Sprinting() && st.Stamina().Get() > 0 {
		speed *= hs.SprintMultiplier
	}
	return speed
}

// Rotation - кінь повертає за поглядом вершника, але не нахиляється
func (Horse) Rotation(_ riding.Settings, _ riding.State, _ riding.Vehicle, d riding.Driver) mgl64.Vec2 {
	return mgl64.Vec2{0, d.LookAngles().X()}
}

func (h Horse) Velocity(s riding.Settings, st riding.State, v riding.Vehicle, d riding.Driver, input mgl64.Vec3) mgl64.Vec3 {
	hs := mustSettings[*HorseSettings](s)
	speed := h.Speed(s, st, v, d)
	forward := input.Z() * speed
	if forward < 0 {
		forward *= hs.BackwardMultiplier
	}
	return mgl64.Vec3{input.X() * speed * hs.BackwardMultiplier, 0, forward}
}

func (Horse) CanJump(_ riding.Settings, _ riding.State, v riding.Vehicle, _ riding.Driver) bool {
	return v.OnGround()
}

// JumpForce: jumpStrength - заряд стрибка від 0 до 100
func (Horse) JumpForce(s riding.Settings, _ riding.State, v riding.Vehicle, _ riding.Driver, jumpStrength int) mgl64.Vec3 {
	hs := mustSettings[*HorseSettings](s)
	charge := float64(max(0, min(100, jumpStrength))) / 100
	return mgl64.Vec3{0, riding.StatValue(hs, v, riding.StatJump) * hs.JumpScale * charge, 0}
}

func (Horse) Gravity(_ riding.Settings, _ riding.State, _ riding.Vehicle, regularGravity float64) float64 {
	return regularGravity
}

func (Horse) FovMultiplier(_ riding.Settings, st riding.State, _ riding.Vehicle, d riding.Driver) float64 {
	if d.Sprinting() && st.Stamina().Get() > 0 {
		return 1.1
	}
	return 1
}

func (h Horse) Tick(s riding.Settings, st riding.State, v riding.Vehicle, d riding.Driver, input mgl64.Vec3) {
	hs := mustSettings[*HorseSettings](s)
	hs.Stamina.tick(st, d.Sprinting() && input.Z() > 0)
	st.RideVelocity().Set(riding.Server, h.Velocity(s, st, v, d, input))
}
