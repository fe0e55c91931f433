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

const GliderKey riding.Key = "pokecore:glider"

type GliderSettings struct {
	riding.BaseSettings
	Stamina

	// GlideSpeed - швидкість вперед без урахування стату
	GlideSpeed float64
	SpeedScale float64
	// GravityScale - частка звичайної гравітації під час планування
	GravityScale float64
}

func NewGliderSettings(stats map[riding.Stat]riding.IntRange) *GliderSettings {
	return &GliderSettings{
		BaseSettings: riding.BaseSettings{BehaviourKey: GliderKey, StatRanges: stats},
		Stamina:      Stamina{Drain: 0.002, Regen: 0.01},
		GlideSpeed:   0.35,
		SpeedScale:   0.002,
		GravityScale: 0.15,
	}
}

// Glider планує вниз з постійною швидкістю. Працює лише в повітрі.
type Glider struct{ base }

func (Glider) Key() riding.Key { return GliderKey }

func (Glider) RidingStyle(riding.Settings, riding.State) riding.Style { return riding.Air }

func (Glider) IsActive(_ riding.Settings, _ riding.State, v riding.Vehicle) bool {
	return !v.OnGround() && !v.InLiquid()
}

func (Glider) Pose(riding.Settings, riding.State, riding.Vehicle) riding.Pose { return riding.PoseGlide }

func (Glider) Speed(s riding.Settings, _ riding.State, v riding.Vehicle, _ riding.Driver) float64 {
	gs := mustSettings[*GliderSettings](s)
	return gs.GlideSpeed + riding.StatValue(gs, v, riding.StatSpeed)*gs.SpeedScale
}

func (Glider) Rotation(_ riding.Settings, _ riding.State, _ riding.Vehicle, d riding.Driver) mgl64.Vec2 {
	return mgl64.Vec2{0, d.LookAngles().X()}
}

// Velocity ігнорує газ: планер завжди летить вперед, гравець лише кермує
func (g Glider) Velocity(s riding.Settings, st riding.State, v riding.Vehicle, d riding.Driver, input mgl64.Vec3) mgl64.Vec3 {
	speed := g.Speed(s, st, v, d)
	if st.Stamina().Get() <= 0 {
		speed /= 2
	}
	return mgl64.Vec3{input.X() * speed * 0.3, 0, speed}
}

func (Glider) CanJump(riding.Settings, riding.State, riding.Vehicle, riding.Driver) bool { return false }

func (Glider) JumpForce(riding.Settings, riding.State, riding.Vehicle, riding.Driver, int) mgl64.Vec3 {
	return mgl64.Vec3{}
}

func (Glider) Gravity(s riding.Settings, _ riding.State, _ riding.Vehicle, regularGravity float64) float64 {
	return regularGravity * mustSettings[*GliderSettings](s).GravityScale
}

func (Glider) RidingAltPose(riding.Settings, riding.State, riding.Vehicle, riding.Driver) riding.Pose {
	return riding.PoseFly
}

func (Glider) ShouldRoll(riding.Settings, riding.State, riding.Vehicle) bool      { return true }
func (Glider) TurnOffOnGround(riding.Settings, riding.State, riding.Vehicle) bool { return true }

func (g Glider) Tick(s riding.Settings, st riding.State, v riding.Vehicle, d riding.Driver, input mgl64.Vec3) {
	gs := mustSettings[*GliderSettings](s)
	gs.Stamina.tick(st, true)
	st.RideVelocity().Set(riding.Server, g.Velocity(s, st, v, d, input))
}
