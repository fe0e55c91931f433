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

// Пакет composite - поведінка, що складається з двох інших.
// Наприклад біг по землі і політ: стратегія кожен тік вирішує, чи
// пора перемкнутись, а всі інші виклики йдуть до активної поведінки.
package composite

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"

	"PokeCore/riding"
)

type Behaviour struct {
	behaviours *riding.Behaviours
	strategies *Strategies
	log        *zap.Logger
}

// New створює складену поведінку. Обидва реєстри мають бути заповнені
// до першого тіку.
func New(log *zap.Logger, behaviours *riding.Behaviours, strategies *Strategies) *Behaviour {
	return &Behaviour{
		behaviours: behaviours,
		strategies: strategies,
		log:        log.Named("composite"),
	}
}

func (b *Behaviour) Key() riding.Key { return Key }

// chooseBehaviour повертає активну поведінку разом з її налаштуваннями і станом.
// Поведінка загорнута в контролер: складена вважається активною, поки
// активна хоч одна з двох, тож неактивна обрана має віддавати безпечні значення.
// Невідомий активний ключ - зламаний інваріант, тому паніка.
func (b *Behaviour) chooseBehaviour(s riding.Settings, st riding.State) (*riding.Controller, riding.Settings, riding.State) {
	cs, cst := settingsOf(s), stateOf(st)
	def := b.behaviours.MustGet(cs.Default.Key())
	alt := b.behaviours.MustGet(cs.Alternate.Key())
	switch cst.active.Get() {
	case def.Key():
		return riding.NewController(def), cs.Default, cst.defaultState
	case alt.Key():
		return riding.NewController(alt), cs.Alternate, cst.alternateState
	}
	panic(fmt.Sprintf("composite active behaviour %q is neither %q nor %q",
		cst.active.Get(), def.Key(), alt.Key()))
}

func (b *Behaviour) RidingStyle(s riding.Settings, st riding.State) riding.Style {
	sub, ss, sst := b.chooseBehaviour(s, st)
	return sub.RidingStyle(ss, sst)
}

// IsActive - чи активна хоч одна з двох поведінок. Інакше після
// приземлення планера стратегія вже ніколи б не повернула основну.
func (b *Behaviour) IsActive(s riding.Settings, st riding.State, v riding.Vehicle) bool {
	b.chooseBehaviour(s, st)
	cs, cst := settingsOf(s), stateOf(st)
	def := b.behaviours.MustGet(cs.Default.Key())
	alt := b.behaviours.MustGet(cs.Alternate.Key())
	return def.IsActive(cs.Default, cst.defaultState, v) || alt.IsActive(cs.Alternate, cst.alternateState, v)
}

func (b *Behaviour) Pose(s riding.Settings, st riding.State, v riding.Vehicle) riding.Pose {
	sub, ss, sst := b.chooseBehaviour(s, st)
	return sub.Pose(ss, sst, v)
}

func (b *Behaviour) Speed(s riding.Settings, st riding.State, v riding.Vehicle, d riding.Driver) float64 {
	sub, ss, sst := b.chooseBehaviour(s, st)
	return sub.Speed(ss, sst, v, d)
}

func (b *Behaviour) Rotation(s riding.Settings, st riding.State, v riding.Vehicle, d riding.Driver) mgl64.Vec2 {
	sub, ss, sst := b.chooseBehaviour(s, st)
	return sub.Rotation(ss, sst, v, d)
}

func (b *Behaviour) Velocity(s riding.Settings, st riding.State, v riding.Vehicle, d riding.Driver, input mgl64.Vec3) mgl64.Vec3 {
	sub, ss, sst := b.chooseBehaviour(s, st)
	return sub.Velocity(ss, sst, v, d, input)
}

func (b *Behaviour) AngRollVel(s riding.Settings, st riding.State, v riding.Vehicle, d riding.Driver, deltaTime float64) mgl64.Vec3 {
	sub, ss, sst := b.chooseBehaviour(s, st)
	return sub.AngRollVel(ss, sst, v, d, deltaTime)
}

func (b *Behaviour) RotationOnMouseXY(s riding.Settings, st riding.State, v riding.Vehicle, d riding.Driver, mouseY, mouseX, sensitivity, deltaTime float64) mgl64.Vec3 {
	sub, ss, sst := b.chooseBehaviour(s, st)
	return sub.RotationOnMouseXY(ss, sst, v, d, mouseY, mouseX, sensitivity, deltaTime)
}

func (b *Behaviour) CanJump(s riding.Settings, st riding.State, v riding.Vehicle, d riding.Driver) bool {
	sub, ss, sst := b.chooseBehaviour(s, st)
	return sub.CanJump(ss, sst, v, d)
}

func (b *Behaviour) RideBar(s riding.Settings, st riding.State, v riding.Vehicle, d riding.Driver) float64 {
	sub, ss, sst := b.chooseBehaviour(s, st)
	return sub.RideBar(ss, sst, v, d)
}

func (b *Behaviour) JumpForce(s riding.Settings, st riding.State, v riding.Vehicle, d riding.Driver, jumpStrength int) mgl64.Vec3 {
	sub, ss, sst := b.chooseBehaviour(s, st)
	return sub.JumpForce(ss, sst, v, d, jumpStrength)
}

func (b *Behaviour) Gravity(s riding.Settings, st riding.State, v riding.Vehicle, regularGravity float64) float64 {
	sub, ss, sst := b.chooseBehaviour(s, st)
	return sub.Gravity(ss, sst, v, regularGravity)
}

func (b *Behaviour) FovMultiplier(s riding.Settings, st riding.State, v riding.Vehicle, d riding.Driver) float64 {
	sub, ss, sst := b.chooseBehaviour(s, st)
	return sub.FovMultiplier(ss, sst, v, d)
}

func (b *Behaviour) UseAngVelSmoothing(s riding.Settings, st riding.State, v riding.Vehicle) bool {
	sub, ss, sst := b.chooseBehaviour(s, st)
	return sub.UseAngVelSmoothing(ss, sst, v)
}

func (b *Behaviour) RidingAltPose(s riding.Settings, st riding.State, v riding.Vehicle, d riding.Driver) riding.Pose {
	sub, ss, sst := b.chooseBehaviour(s, st)
	return sub.RidingAltPose(ss, sst, v, d)
}

func (b *Behaviour) Inertia(s riding.Settings, st riding.State, v riding.Vehicle) float64 {
	sub, ss, sst := b.chooseBehaviour(s, st)
	return sub.Inertia(ss, sst, v)
}

func (b *Behaviour) ShouldRoll(s riding.Settings, st riding.State, v riding.Vehicle) bool {
	sub, ss, sst := b.chooseBehaviour(s, st)
	return sub.ShouldRoll(ss, sst, v)
}

func (b *Behaviour) TurnOffOnGround(s riding.Settings, st riding.State, v riding.Vehicle) bool {
	sub, ss, sst := b.chooseBehaviour(s, st)
	return sub.TurnOffOnGround(ss, sst, v)
}

func (b *Behaviour) DismountOnShift(s riding.Settings, st riding.State, v riding.Vehicle) bool {
	sub, ss, sst := b.chooseBehaviour(s, st)
	return sub.DismountOnShift(ss, sst, v)
}

func (b *Behaviour) ShouldRotateMountHead(s riding.Settings, st riding.State, v riding.Vehicle) bool {
	sub, ss, sst := b.chooseBehaviour(s, st)
	return sub.ShouldRotateMountHead(ss, sst, v)
}

func (b *Behaviour) ShouldRotateRiderHead(s riding.Settings, st riding.State, v riding.Vehicle) bool {
	sub, ss, sst := b.chooseBehaviour(s, st)
	return sub.ShouldRotateRiderHead(ss, sst, v)
}

// Tick спершу дає стратегії шанс перемкнути поведінку, потім тікає
// активну (якщо вона активна) і переносить її швидкість і витривалість
// у зовнішній стан.
func (b *Behaviour) Tick(s riding.Settings, st riding.State, v riding.Vehicle, d riding.Driver, input mgl64.Vec3) {
	// зламаний ключ не можна лагодити стратегією
	b.chooseBehaviour(s, st)
	cs, cst := settingsOf(s), stateOf(st)
	if strategy, ok := b.strategies.Get(cs.TransitionStrategy); ok {
		strategy.Tick(b.ride(cs, cst, v, d), input)
	} else {
		b.log.Warn("Unknown transition strategy, staying on current behaviour",
			zap.String("strategy", string(cs.TransitionStrategy)),
			zap.String("active", string(cst.active.Get())))
	}

	sub, ss, sst := b.chooseBehaviour(s, st)
	sub.Tick(ss, sst, v, d, input)
	cst.RideVelocity().Force(sst.RideVelocity().Get())
	cst.Stamina().Force(sst.Stamina().Get())
}

func (b *Behaviour) CreateDefaultState(s riding.Settings) riding.State {
	cs := settingsOf(s)
	def := b.behaviours.MustGet(cs.Default.Key())
	alt := b.behaviours.MustGet(cs.Alternate.Key())
	return NewState(cs.Default.Key(), def.CreateDefaultState(cs.Default), alt.CreateDefaultState(cs.Alternate))
}

func (b *Behaviour) DamageOnCollision(s riding.Settings, st riding.State, v riding.Vehicle, impact mgl64.Vec3) bool {
	sub, ss, sst := b.chooseBehaviour(s, st)
	return sub.DamageOnCollision(ss, sst, v, impact)
}

func (b *Behaviour) ride(cs *Settings, cst *State, v riding.Vehicle, d riding.Driver) *Ride {
	return &Ride{
		Settings:  cs,
		State:     cst,
		Vehicle:   v,
		Driver:    d,
		Default:   b.behaviours.MustGet(cs.Default.Key()),
		Alternate: b.behaviours.MustGet(cs.Alternate.Key()),
		log:       b.log,
	}
}
