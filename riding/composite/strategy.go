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
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"

	"PokeCore/molang"
	"PokeCore/riding"
)

const (
	RunStrategyKey  riding.Key = "pokecore:run"
	JumpStrategyKey riding.Key = "pokecore:jump"
	FallStrategyKey riding.Key = "pokecore:fall"
)

// Strategy вирішує, коли складена поведінка перемикається.
// Як і поведінки, стратегії спільні і не мають власного стану.
type Strategy interface {
	Key() riding.Key
	Tick(r *Ride, input mgl64.Vec3)
}

type Strategies = riding.Registry[riding.Key, Strategy]

func NewStrategies() *Strategies {
	return riding.NewRegistry[riding.Key, Strategy]("transition strategy")
}

// RegisterStrategies додає вбудовані стратегії
func RegisterStrategies(reg *Strategies, log *zap.Logger) {
	reg.Register(RunStrategyKey, RunStrategy{})
	reg.Register(JumpStrategyKey, JumpStrategy{})
	reg.Register(FallStrategyKey, FallStrategy{log: log.Named("fall")})
}

// Ride - все, що потрібно стратегії на один тік
type Ride struct {
	Settings *Settings
	State    *State
	Vehicle  riding.Vehicle
	Driver   riding.Driver

	Default   riding.Behaviour
	Alternate riding.Behaviour

	log *zap.Logger
}

// OnDefault повідомляє, чи зараз активна основна поведінка
func (r *Ride) OnDefault() bool {
	return r.State.active.Get() == r.Default.Key()
}

// Elapsed - скільки тіків минуло з останнього переходу
func (r *Ride) Elapsed() int64 {
	return r.Vehicle.WorldTick() - r.State.lastTransition.Get()
}

func (r *Ride) DefaultActive() bool {
	return r.Default.IsActive(r.Settings.Default, r.State.defaultState, r.Vehicle)
}

func (r *Ride) AlternateActive() bool {
	return r.Alternate.IsActive(r.Settings.Alternate, r.State.alternateState, r.Vehicle)
}

// ToAlternate перемикає з основної поведінки на альтернативну
func (r *Ride) ToAlternate() {
	r.transition(r.State.defaultState, r.Alternate, r.Settings.Alternate, r.State.alternateState)
}

// ToDefault перемикає з альтернативної поведінки на основну
func (r *Ride) ToDefault() {
	r.transition(r.State.alternateState, r.Default, r.Settings.Default, r.State.defaultState)
}

// transition переносить швидкість і витривалість у новий підстан,
// скидає старий, перемикає активний ключ і ставить прапорець польоту.
// Порядок важливий: скидання до копіювання втратило б дані.
func (r *Ride) transition(from riding.State, to riding.Behaviour, toSettings riding.Settings, toState riding.State) {
	toState.Stamina().Force(from.Stamina().Get())
	toState.RideVelocity().Force(from.RideVelocity().Get())
	from.Reset()

	r.State.active.Force(to.Key())
	r.State.lastTransition.Force(r.Vehicle.WorldTick())
	r.Vehicle.SetFlying(to.RidingStyle(toSettings, toState) == riding.Air)

	if r.log != nil {
		r.log.Debug("Riding transition",
			zap.String("to", string(to.Key())),
			zap.Int64("tick", r.Vehicle.WorldTick()))
	}
}

// RunStrategy - ходьба і біг.
// Обидва напрямки чекають 20 тіків після попереднього переходу.
type RunStrategy struct{}

const runCooldown = 20

func (RunStrategy) Key() riding.Key { return RunStrategyKey }

func (RunStrategy) Tick(r *Ride, input mgl64.Vec3) {
	if r.Elapsed() < runCooldown {
		return
	}
	if r.OnDefault() {
		if r.Driver.Sprinting() && input.Z() > 0.5 && r.AlternateActive() {
			r.ToAlternate()
		}
		return
	}
	if r.Vehicle.OnGround() && r.DefaultActive() {
		r.ToDefault()
	}
}

// JumpStrategy - земля і стрибок у повітря
type JumpStrategy struct{}

const jumpCooldown = 5

func (JumpStrategy) Key() riding.Key { return JumpStrategyKey }

func (JumpStrategy) Tick(r *Ride, _ mgl64.Vec3) {
	if r.OnDefault() {
		if r.Driver.Jumping() && r.AlternateActive() {
			r.ToAlternate()
		}
		return
	}
	if r.Vehicle.OnGround() && r.Elapsed() >= jumpCooldown && r.DefaultActive() {
		r.ToDefault()
	}
}

// FallStrategy - падіння і планування.
// Пороги задаються виразами в налаштуваннях. Перехід у планування
// потребує натиснутого стрибка: кнопка стрибка в повітрі розкриває крила.
type FallStrategy struct {
	log *zap.Logger
}

const fallCooldown = 20

func (FallStrategy) Key() riding.Key { return FallStrategyKey }

func (f FallStrategy) Tick(r *Ride, _ mgl64.Vec3) {
	if !r.OnDefault() {
		if r.Vehicle.OnGround() && r.Elapsed() >= fallCooldown {
			r.ToDefault()
		}
		return
	}
	if !r.Driver.Jumping() {
		return
	}
	vel := r.Vehicle.Velocity()
	horizontal := mgl64.Vec2{vel.X(), vel.Z()}.Len()
	env := QueryEnv(r.Settings, r.State, r.Vehicle)
	// NaN при помилці обчислення: порівняння хибні, переходу не буде
	fallThreshold := r.Settings.FallSpeedThreshold.EvaluateOr(f.logger(), env, math.NaN())
	horizontalThreshold := r.Settings.HorizontalSpeedThreshold.EvaluateOr(f.logger(), env, math.NaN())
	if vel.Y() < fallThreshold && horizontal > horizontalThreshold {
		r.ToAlternate()
	}
}

func (f FallStrategy) logger() *zap.Logger {
	if f.log == nil {
		return zap.NewNop()
	}
	return f.log
}

// QueryEnv будує змінні q.* для порогових виразів
func QueryEnv(s riding.Settings, st riding.State, v riding.Vehicle) molang.Env {
	vel := v.Velocity()
	query := map[string]any{
		"speed":             vel.Len(),
		"horizontal_speed":  mgl64.Vec2{vel.X(), vel.Z()}.Len(),
		"vertical_velocity": vel.Y(),
		"stamina":           float64(st.Stamina().Get()),
		"on_ground":         v.OnGround(),
		"in_liquid":         v.InLiquid(),
		"world_tick":        v.WorldTick(),
		"speed_stat":        riding.StatValue(s, v, riding.StatSpeed),
		"acceleration_stat": riding.StatValue(s, v, riding.StatAcceleration),
		"skill_stat":        riding.StatValue(s, v, riding.StatSkill),
		"jump_stat":         riding.StatValue(s, v, riding.StatJump),
		"stamina_stat":      riding.StatValue(s, v, riding.StatStamina),
	}
	return molang.NewEnv(query)
}
