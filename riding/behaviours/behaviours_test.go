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
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"PokeCore/riding"
)

type vehicle struct {
	velocity mgl64.Vec3
	onGround bool
	inLiquid bool
	boost    float64
}

func (v vehicle) Velocity() mgl64.Vec3          { return v.velocity }
func (v vehicle) OnGround() bool                { return v.onGround }
func (v vehicle) InLiquid() bool                { return v.inLiquid }
func (v vehicle) WorldTick() int64              { return 0 }
func (v vehicle) SetFlying(bool)                {}
func (v vehicle) StatBoost(riding.Stat) float64 { return v.boost }

type driver struct {
	sprinting, jumping, sneaking bool
	look                         mgl64.Vec2
}

func (d driver) Sprinting() bool        { return d.sprinting }
func (d driver) Jumping() bool          { return d.jumping }
func (d driver) Sneaking() bool         { return d.sneaking }
func (d driver) LookAngles() mgl64.Vec2 { return d.look }

var stats = map[riding.Stat]riding.IntRange{
	riding.StatSpeed: {Min: 20, Max: 60},
	riding.StatJump:  {Min: 40, Max: 80},
}

func TestRegister(t *testing.T) {
	reg := riding.NewBehaviours()
	Register(reg, zap.NewNop())
	assert.Equal(t, []riding.Key{BirdKey, GliderKey, HorseKey}, reg.Keys())
}

func TestHorse(t *testing.T) {
	h, s, st := Horse{}, NewHorseSettings(stats), riding.NewState()
	v := vehicle{onGround: true, boost: 0.5}

	assert.True(t, h.IsActive(s, st, v))
	assert.False(t, h.IsActive(s, st, vehicle{inLiquid: true}))
	assert.Equal(t, riding.Land, h.RidingStyle(s, st))
	assert.Equal(t, riding.PoseStand, h.Pose(s, st, v))

	walk := h.Speed(s, st, v, driver{})
	assert.InDelta(t, 40*0.005, walk, 1e-9)
	assert.InDelta(t, walk*1.6, h.Speed(s, st, v, driver{sprinting: true}), 1e-9)

	vel := h.Velocity(s, st, v, driver{}, mgl64.Vec3{0, 0, -1})
	assert.InDelta(t, -walk*0.4, vel.Z(), 1e-9, "backwards is slower")

	assert.True(t, h.CanJump(s, st, v, driver{}))
	assert.InDelta(t, 60*0.01, h.JumpForce(s, st, v, driver{}, 100).Y(), 1e-9)
	assert.InDelta(t, 60*0.01/2, h.JumpForce(s, st, v, driver{}, 50).Y(), 1e-9)
	assert.Equal(t, 0.08, h.Gravity(s, st, v, 0.08))

	for i := 0; i < 10; i++ {
		h.Tick(s, st, v, driver{sprinting: true}, mgl64.Vec3{0, 0, 1})
	}
	assert.InDelta(t, 0.9, st.Stamina().Get(), 1e-5)
	assert.InDelta(t, walk*1.6, st.RideVelocity().Get().Z(), 1e-9)

	h.Tick(s, st, v, driver{}, mgl64.Vec3{})
	assert.InDelta(t, 0.904, st.Stamina().Get(), 1e-5, "regenerates at rest")
}

func TestBird(t *testing.T) {
	b, s, st := Bird{}, NewBirdSettings(stats), riding.NewState()
	v := vehicle{boost: 1}

	assert.Equal(t, riding.Air, b.RidingStyle(s, st))
	assert.Zero(t, b.Gravity(s, st, v, 0.08))
	assert.True(t, b.ShouldRoll(s, st, v))
	assert.Equal(t, 0.8, b.Inertia(s, st, v))
	assert.Equal(t, riding.PoseHover, b.Pose(s, st, v))

	speed := b.Speed(s, st, v, driver{})
	level := b.Velocity(s, st, v, driver{}, mgl64.Vec3{0, 0, 1})
	assert.InDelta(t, speed, level.Z(), 1e-9)
	assert.InDelta(t, 0, level.Y(), 1e-9)

	dive := b.Velocity(s, st, v, driver{look: mgl64.Vec2{0, 90}}, mgl64.Vec3{0, 0, 1})
	assert.InDelta(t, -speed, dive.Y(), 1e-9, "looking down dives")

	climb := b.Velocity(s, st, v, driver{jumping: true}, mgl64.Vec3{})
	assert.InDelta(t, 0.3, climb.Y(), 1e-9)

	assert.Equal(t, 1.0, b.FovMultiplier(s, st, v, driver{}))
	fast := vehicle{boost: 1, velocity: mgl64.Vec3{0, 0, speed * 2}}
	assert.InDelta(t, 1.3, b.FovMultiplier(s, st, fast, driver{}), 1e-9)
}

func TestGlider(t *testing.T) {
	g, s, st := Glider{}, NewGliderSettings(stats), riding.NewState()

	assert.False(t, g.IsActive(s, st, vehicle{onGround: true}))
	assert.True(t, g.IsActive(s, st, vehicle{}))
	assert.True(t, g.TurnOffOnGround(s, st, vehicle{}))
	assert.InDelta(t, 0.08*0.15, g.Gravity(s, st, vehicle{}, 0.08), 1e-9)

	vel := g.Velocity(s, st, vehicle{}, driver{}, mgl64.Vec3{})
	assert.InDelta(t, 0.35+20*0.002, vel.Z(), 1e-9, "glides forward without throttle")

	st.Stamina().Force(0)
	tired := g.Velocity(s, st, vehicle{}, driver{}, mgl64.Vec3{})
	assert.InDelta(t, vel.Z()/2, tired.Z(), 1e-9)
}

func TestBase_Collision(t *testing.T) {
	var b base
	assert.False(t, b.DamageOnCollision(nil, nil, nil, mgl64.Vec3{0.5, 0, 0}))
	assert.True(t, b.DamageOnCollision(nil, nil, nil, mgl64.Vec3{0.5, 0.5, 0}))
}

func TestWrongSettingsPanics(t *testing.T) {
	assert.Panics(t, func() {
		Horse{}.Speed(NewBirdSettings(stats), riding.NewState(), vehicle{}, driver{})
	})
}

func TestControllerGuardsGlider(t *testing.T) {
	c := riding.NewController(Glider{})
	s, st := NewGliderSettings(stats), riding.NewState()
	grounded := vehicle{onGround: true}
	assert.Equal(t, 0.08, c.Gravity(s, st, grounded, 0.08))
	assert.Equal(t, riding.NoPose, c.Pose(s, st, grounded))
	assert.Equal(t, riding.PoseGlide, c.Pose(s, st, vehicle{}))
}
