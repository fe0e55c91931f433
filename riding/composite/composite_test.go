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

package composite

import (
	"bytes"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"PokeCore/riding"
)

// fakeBehaviour реалізує лише те, що чіпає складена поведінка в тестах
type fakeBehaviour struct {
	riding.Behaviour
	key    riding.Key
	style  riding.Style
	active bool
	// needsAir - активна лише в повітрі, як планер
	needsAir bool
	ticks    int
}

func (f *fakeBehaviour) Key() riding.Key                                        { return f.key }
func (f *fakeBehaviour) RidingStyle(riding.Settings, riding.State) riding.Style { return f.style }
func (f *fakeBehaviour) IsActive(_ riding.Settings, _ riding.State, v riding.Vehicle) bool {
	return f.active && (!f.needsAir || !v.OnGround())
}
func (f *fakeBehaviour) Speed(riding.Settings, riding.State, riding.Vehicle, riding.Driver) float64 {
	return float64(len(f.key))
}
func (f *fakeBehaviour) Tick(riding.Settings, riding.State, riding.Vehicle, riding.Driver, mgl64.Vec3) {
	f.ticks++
}
func (f *fakeBehaviour) CreateDefaultState(riding.Settings) riding.State { return riding.NewState() }

type fakeVehicle struct {
	tick     int64
	onGround bool
	velocity mgl64.Vec3
	flying   bool
}

func (v *fakeVehicle) Velocity() mgl64.Vec3          { return v.velocity }
func (v *fakeVehicle) OnGround() bool                { return v.onGround }
func (v *fakeVehicle) InLiquid() bool                { return false }
func (v *fakeVehicle) WorldTick() int64              { return v.tick }
func (v *fakeVehicle) SetFlying(flying bool)         { v.flying = flying }
func (v *fakeVehicle) StatBoost(riding.Stat) float64 { return 0 }

type fakeDriver struct {
	sprinting, jumping bool
}

func (d *fakeDriver) Sprinting() bool        { return d.sprinting }
func (d *fakeDriver) Jumping() bool          { return d.jumping }
func (d *fakeDriver) Sneaking() bool         { return false }
func (d *fakeDriver) LookAngles() mgl64.Vec2 { return mgl64.Vec2{} }

type fixture struct {
	walk, fly *fakeBehaviour
	behaviour *Behaviour
	settings  *Settings
	state     *State
	vehicle   *fakeVehicle
	driver    *fakeDriver
}

func newFixture(t *testing.T, strategy riding.Key) *fixture {
	t.Helper()
	f := &fixture{
		walk:    &fakeBehaviour{key: "test:walk", style: riding.Land, active: true},
		fly:     &fakeBehaviour{key: "test:fly", style: riding.Air, active: true},
		vehicle: &fakeVehicle{onGround: true},
		driver:  &fakeDriver{},
	}
	behaviours := riding.NewBehaviours()
	behaviours.Register(f.walk.key, f.walk)
	behaviours.Register(f.fly.key, f.fly)
	strategies := NewStrategies()
	RegisterStrategies(strategies, zap.NewNop())

	f.behaviour = New(zap.NewNop(), behaviours, strategies)
	f.settings = NewSettings(strategy,
		&riding.BaseSettings{BehaviourKey: f.walk.key},
		&riding.BaseSettings{BehaviourKey: f.fly.key})
	f.state = f.behaviour.CreateDefaultState(f.settings).(*State)
	return f
}

func (f *fixture) ride() *Ride { return f.behaviour.ride(f.settings, f.state, f.vehicle, f.driver) }

func TestTransition_ConservesAndResets(t *testing.T) {
	f := newFixture(t, RunStrategyKey)
	f.vehicle.tick = 500
	f.state.DefaultState().RideVelocity().Force(mgl64.Vec3{0.4, 0, 1.2})
	f.state.DefaultState().Stamina().Force(0.35)
	f.state.AlternateState().Stamina().Force(0.9)

	f.ride().ToAlternate()

	assert.Equal(t, mgl64.Vec3{0.4, 0, 1.2}, f.state.AlternateState().RideVelocity().Get())
	assert.Equal(t, float32(0.35), f.state.AlternateState().Stamina().Get())
	assert.Equal(t, mgl64.Vec3{}, f.state.DefaultState().RideVelocity().Get())
	assert.Equal(t, riding.DefaultStamina, f.state.DefaultState().Stamina().Get())
	assert.Equal(t, riding.Key("test:fly"), f.state.ActiveBehaviour().Get())
	assert.Equal(t, int64(500), f.state.LastTransition().Get())
	assert.True(t, f.vehicle.flying)

	f.vehicle.tick = 530
	f.ride().ToDefault()
	assert.Equal(t, float32(0.35), f.state.DefaultState().Stamina().Get())
	assert.Equal(t, riding.DefaultStamina, f.state.AlternateState().Stamina().Get())
	assert.False(t, f.vehicle.flying)
}

func TestRunStrategy_Cooldown(t *testing.T) {
	f := newFixture(t, RunStrategyKey)
	const T = 1000
	f.state.LastTransition().Force(T)
	f.driver.sprinting = true
	forward := mgl64.Vec3{0, 0, 1}

	f.vehicle.tick = T + 19
	RunStrategy{}.Tick(f.ride(), forward)
	assert.Equal(t, f.walk.key, f.state.ActiveBehaviour().Get(), "cooldown not elapsed")

	f.vehicle.tick = T + 20
	RunStrategy{}.Tick(f.ride(), forward)
	assert.Equal(t, f.fly.key, f.state.ActiveBehaviour().Get())
	assert.Equal(t, int64(T+20), f.state.LastTransition().Get())
}

func TestRunStrategy_Conditions(t *testing.T) {
	f := newFixture(t, RunStrategyKey)
	f.vehicle.tick = 100

	f.driver.sprinting = true
	RunStrategy{}.Tick(f.ride(), mgl64.Vec3{0, 0, 0.5})
	assert.Equal(t, f.walk.key, f.state.ActiveBehaviour().Get(), "forward input must exceed 0.5")

	f.fly.active = false
	RunStrategy{}.Tick(f.ride(), mgl64.Vec3{0, 0, 1})
	assert.Equal(t, f.walk.key, f.state.ActiveBehaviour().Get(), "alternate must be active")

	f.fly.active = true
	RunStrategy{}.Tick(f.ride(), mgl64.Vec3{0, 0, 1})
	require.Equal(t, f.fly.key, f.state.ActiveBehaviour().Get())

	f.vehicle.tick = 125
	f.vehicle.onGround = false
	RunStrategy{}.Tick(f.ride(), mgl64.Vec3{})
	assert.Equal(t, f.fly.key, f.state.ActiveBehaviour().Get(), "returns only on ground")
	f.vehicle.onGround = true
	RunStrategy{}.Tick(f.ride(), mgl64.Vec3{})
	assert.Equal(t, f.walk.key, f.state.ActiveBehaviour().Get())
}

func TestJumpStrategy(t *testing.T) {
	f := newFixture(t, JumpStrategyKey)
	f.vehicle.tick = 10
	f.driver.jumping = true
	JumpStrategy{}.Tick(f.ride(), mgl64.Vec3{})
	require.Equal(t, f.fly.key, f.state.ActiveBehaviour().Get())

	f.vehicle.tick = 14
	JumpStrategy{}.Tick(f.ride(), mgl64.Vec3{})
	assert.Equal(t, f.fly.key, f.state.ActiveBehaviour().Get(), "5 tick cooldown")
	f.vehicle.tick = 15
	JumpStrategy{}.Tick(f.ride(), mgl64.Vec3{})
	assert.Equal(t, f.walk.key, f.state.ActiveBehaviour().Get())
}

func TestFallStrategy(t *testing.T) {
	f := newFixture(t, FallStrategyKey)
	require.NoError(t, f.settings.SetFallThresholds("-0.3 - q.jump_stat", "0.1"))
	fall := FallStrategy{log: zap.NewNop()}
	f.vehicle.tick = 40
	f.vehicle.onGround = false
	f.vehicle.velocity = mgl64.Vec3{0.5, -0.6, 0}

	fall.Tick(f.ride(), mgl64.Vec3{})
	assert.Equal(t, f.walk.key, f.state.ActiveBehaviour().Get(), "needs jump input")

	f.driver.jumping = true
	f.vehicle.velocity = mgl64.Vec3{0.05, -0.6, 0}
	fall.Tick(f.ride(), mgl64.Vec3{})
	assert.Equal(t, f.walk.key, f.state.ActiveBehaviour().Get(), "too slow horizontally")

	f.vehicle.velocity = mgl64.Vec3{0.5, -0.6, 0}
	fall.Tick(f.ride(), mgl64.Vec3{})
	require.Equal(t, f.fly.key, f.state.ActiveBehaviour().Get())

	f.vehicle.onGround = true
	f.vehicle.tick = 59
	fall.Tick(f.ride(), mgl64.Vec3{})
	assert.Equal(t, f.fly.key, f.state.ActiveBehaviour().Get())
	f.vehicle.tick = 60
	fall.Tick(f.ride(), mgl64.Vec3{})
	assert.Equal(t, f.walk.key, f.state.ActiveBehaviour().Get())
}

func TestFallStrategy_BrokenThreshold(t *testing.T) {
	f := newFixture(t, FallStrategyKey)
	require.NoError(t, f.settings.SetFallThresholds("'not a number'", ""))
	f.driver.jumping = true
	f.vehicle.velocity = mgl64.Vec3{1, -5, 0}
	FallStrategy{}.Tick(f.ride(), mgl64.Vec3{})
	assert.Equal(t, f.walk.key, f.state.ActiveBehaviour().Get())
}

func TestBehaviour_TickDispatch(t *testing.T) {
	f := newFixture(t, JumpStrategyKey)
	f.driver.jumping = true
	f.vehicle.tick = 3
	f.behaviour.Tick(f.settings, f.state, f.vehicle, f.driver, mgl64.Vec3{})
	assert.Equal(t, 0, f.walk.ticks)
	assert.Equal(t, 1, f.fly.ticks, "strategy runs before the active behaviour")
	assert.Equal(t, riding.Air, f.behaviour.RidingStyle(f.settings, f.state))
	assert.Equal(t, float64(len("test:fly")), f.behaviour.Speed(f.settings, f.state, f.vehicle, f.driver))
}

func TestBehaviour_UnknownStrategy(t *testing.T) {
	f := newFixture(t, "test:missing")
	f.driver.jumping = true
	assert.NotPanics(t, func() {
		f.behaviour.Tick(f.settings, f.state, f.vehicle, f.driver, mgl64.Vec3{})
	})
	assert.Equal(t, f.walk.key, f.state.ActiveBehaviour().Get())
	assert.Equal(t, 1, f.walk.ticks)
}

func TestBehaviour_InvalidActiveKeyPanics(t *testing.T) {
	f := newFixture(t, RunStrategyKey)
	f.state.ActiveBehaviour().Force("test:nobody")
	assert.Panics(t, func() { f.behaviour.RidingStyle(f.settings, f.state) })
	assert.Panics(t, func() {
		f.behaviour.Tick(f.settings, f.state, f.vehicle, f.driver, mgl64.Vec3{})
	})
	assert.Equal(t, riding.Key("test:nobody"), f.state.ActiveBehaviour().Get(), "strategy must not repair the key")
}

func TestController_CompositeLeavesLandedGlider(t *testing.T) {
	f := newFixture(t, FallStrategyKey)
	f.fly.needsAir = true
	require.NoError(t, f.settings.SetFallThresholds("-0.2", "0.1"))
	c := riding.NewController(f.behaviour)

	f.vehicle.tick = 10
	f.vehicle.onGround = false
	f.vehicle.velocity = mgl64.Vec3{0.5, -0.6, 0}
	f.driver.jumping = true
	c.Tick(f.settings, f.state, f.vehicle, f.driver, mgl64.Vec3{})
	require.Equal(t, f.fly.key, f.state.ActiveBehaviour().Get())
	require.True(t, f.vehicle.flying)
	flyTicks := f.fly.ticks

	f.driver.jumping = false
	f.vehicle.onGround = true
	f.vehicle.velocity = mgl64.Vec3{}
	assert.True(t, c.IsActive(f.settings, f.state, f.vehicle), "default behaviour can take over")
	assert.Zero(t, c.Speed(f.settings, f.state, f.vehicle, f.driver), "landed glider gives safe values")

	for f.vehicle.tick = 11; f.vehicle.tick < 30; f.vehicle.tick++ {
		c.Tick(f.settings, f.state, f.vehicle, f.driver, mgl64.Vec3{})
	}
	assert.Equal(t, f.fly.key, f.state.ActiveBehaviour().Get(), "fall cooldown")
	assert.Equal(t, flyTicks, f.fly.ticks, "inactive glider is not ticked")

	c.Tick(f.settings, f.state, f.vehicle, f.driver, mgl64.Vec3{})
	assert.Equal(t, f.walk.key, f.state.ActiveBehaviour().Get())
	assert.False(t, f.vehicle.flying)
	assert.Equal(t, 1, f.walk.ticks)
}

func TestState_RoundTrip(t *testing.T) {
	f := newFixture(t, RunStrategyKey)
	f.vehicle.tick = 77
	f.state.DefaultState().RideVelocity().Force(mgl64.Vec3{0.1, 0.2, 0.3})
	f.ride().ToAlternate()
	f.state.RideVelocity().Force(mgl64.Vec3{1, 0, -1})
	f.state.Stamina().Force(0.6)

	var buf bytes.Buffer
	require.NoError(t, f.state.Encode(&buf))

	decoded := f.behaviour.CreateDefaultState(f.settings).(*State)
	require.True(t, decoded.ShouldSync(f.state))
	require.NoError(t, decoded.Decode(&buf))
	assert.Zero(t, buf.Len())
	assert.False(t, decoded.ShouldSync(f.state))
	assert.False(t, f.state.ShouldSync(decoded))
	assert.Equal(t, f.fly.key, decoded.ActiveBehaviour().Get())
	assert.Equal(t, int64(77), decoded.LastTransition().Get())
}

func TestState_DecodeTruncated(t *testing.T) {
	f := newFixture(t, RunStrategyKey)
	f.vehicle.tick = 42
	f.ride().ToAlternate()
	f.state.RideVelocity().Force(mgl64.Vec3{2, 0, 0})
	var buf bytes.Buffer
	require.NoError(t, f.state.Encode(&buf))

	target := f.behaviour.CreateDefaultState(f.settings).(*State)
	target.Stamina().Force(0.25)
	before := target.Copy()
	// обрізано посередині основного підстану
	data := buf.Bytes()[:buf.Len()-20]
	require.Error(t, target.Decode(bytes.NewReader(data)))

	assert.False(t, target.ShouldSync(before), "state is untouched on error")
	assert.Equal(t, f.walk.key, target.ActiveBehaviour().Get())
	assert.Equal(t, float32(0.25), target.Stamina().Get())
}

func TestState_CopyAndReset(t *testing.T) {
	f := newFixture(t, RunStrategyKey)
	f.vehicle.tick = 5
	f.ride().ToAlternate()
	c := f.state.Copy().(*State)

	f.state.Reset()
	assert.Equal(t, f.walk.key, f.state.ActiveBehaviour().Get())
	assert.Equal(t, NeverTransitioned, f.state.LastTransition().Get())
	assert.Equal(t, f.fly.key, c.ActiveBehaviour().Get())
	assert.True(t, c.ShouldSync(f.state))

	c.AlternateState().Stamina().Force(0.1)
	assert.NotEqual(t, float32(0.1), f.state.AlternateState().Stamina().Get(), "copy is deep")
}
