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
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"PokeCore/riding"
)

const BirdKey riding.Key = "pokecore:bird"

type BirdSettings struct {
	riding.BaseSettings
	Stamina

	SpeedScale float64
	// ClimbSpeed - вертикальна швидкість при натиснутому стрибку
	ClimbSpeed float64
	// MaxFovBoost - найбільше розширення поля зору на повній швидкості
	MaxFovBoost float64
	// RollRate - градуси крену за секунду при повороті
	RollRate float64
}

func NewBirdSettings(stats map[riding.Stat]riding.IntRange) *BirdSettings {
	return &BirdSettings{
		BaseSettings: riding.BaseSettings{BehaviourKey: BirdKey, StatRanges: stats},
		Stamina:      Stamina{Drain: 0.005, Regen: 0.002},
		SpeedScale:   0.008,
		ClimbSpeed:   0.3,
		MaxFovBoost:  0.3,
		RollRate:     90,
	}
}

// Bird летить туди, куди дивиться вершник. Гравітації немає,
// набір висоти витрачає витривалість.
type Bird struct{ base }

const birdInertia = 0.8

func (Bird) Key() riding.Key { return BirdKey }

func (Bird) RidingStyle(riding.Settings, riding.State) riding.Style { return riding.Air }

func (Bird) IsActive(_ riding.Settings, _ riding.State, v riding.Vehicle) bool {
	return !v.InLiquid()
}

func (Bird) Pose(_ riding.Settings, _ riding.State, v riding.Vehicle) riding.Pose {
	if v.Velocity().Len() > 0.1 {
		return riding.PoseFly
	}
	return riding.PoseHover
}

func (Bird) Speed(s riding.Settings, _ riding.State, v riding.Vehicle, _ riding.Driver) float64 {
	bs := mustSettings[*BirdSettings](s)
	return riding.StatValue(bs, v, riding.StatSpeed) * bs.SpeedScale
}

func (Bird) Rotation(_ riding.Settings, _ riding.State, _ riding.Vehicle, d riding.Driver) mgl64.Vec2 {
	look := d.LookAngles()
	return mgl64.Vec2{look.Y(), look.X()}
}

// Velocity розкладає тягу вперед за кутом нахилу погляду
func (b Bird) Velocity(s riding.Settings, st riding.State, v riding.Vehicle, d riding.Driver, input mgl64.Vec3) mgl64.Vec3 {
	bs := mustSettings[*BirdSettings](s)
	speed := b.Speed(s, st, v, d)
	pitch := mgl64.DegToRad(d.LookAngles().Y())
	thrust := input.Z() * speed
	vel := mgl64.Vec3{
		input.X() * speed * 0.5,
		-math.Sin(pitch) * thrust,
		math.Cos(pitch) * thrust,
	}
	switch {
	case d.Jumping() && st.Stamina().Get() > 0:
		vel[1] += bs.ClimbSpeed
	case d.Sneaking():
		vel[1] -= bs.ClimbSpeed
	}
	return vel
}

func (Bird) AngRollVel(s riding.Settings, _ riding.State, _ riding.Vehicle, _ riding.Driver, deltaTime float64) mgl64.Vec3 {
	bs := mustSettings[*BirdSettings](s)
	return mgl64.Vec3{0, 0, bs.RollRate * deltaTime}
}

func (Bird) CanJump(riding.Settings, riding.State, riding.Vehicle, riding.Driver) bool { return false }

func (Bird) JumpForce(riding.Settings, riding.State, riding.Vehicle, riding.Driver, int) mgl64.Vec3 {
	return mgl64.Vec3{}
}

func (Bird) Gravity(riding.Settings, riding.State, riding.Vehicle, float64) float64 { return 0 }

// FovMultiplier росте зі швидкістю до MaxFovBoost
func (b Bird) FovMultiplier(s riding.Settings, st riding.State, v riding.Vehicle, d riding.Driver) float64 {
	bs := mustSettings[*BirdSettings](s)
	top := b.Speed(s, st, v, d)
	if top <= 0 {
		return 1
	}
	return 1 + bs.MaxFovBoost*min(1, v.Velocity().Len()/top)
}

func (Bird) UseAngVelSmoothing(riding.Settings, riding.State, riding.Vehicle) bool { return true }

func (Bird) RidingAltPose(riding.Settings, riding.State, riding.Vehicle, riding.Driver) riding.Pose {
	return riding.PoseGlide
}

func (Bird) Inertia(riding.Settings, riding.State, riding.Vehicle) float64      { return birdInertia }
func (Bird) ShouldRoll(riding.Settings, riding.State, riding.Vehicle) bool      { return true }
func (Bird) DismountOnShift(riding.Settings, riding.State, riding.Vehicle) bool { return false }

func (b Bird) Tick(s riding.Settings, st riding.State, v riding.Vehicle, d riding.Driver, input mgl64.Vec3) {
	bs := mustSettings[*BirdSettings](s)
	bs.Stamina.tick(st, d.Jumping())
	st.RideVelocity().Set(riding.Server, b.Velocity(s, st, v, d, input))
}
