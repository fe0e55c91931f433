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

// Пакет riding описує як покемон везе гравця.
//
// Поведінки (Behaviour) - це спільні об'єкти без стану: одна поведінка
// обслуговує всіх покемонів свого типу одночасно. Усе, що змінюється під
// час поїздки, живе в State, який створюється при посадці і викидається
// при висадці. Settings - незмінні налаштування виду/форми.
package riding

import (
	"github.com/go-gl/mathgl/mgl64"
)

// Key - ідентифікатор типу поведінки, наприклад "pokecore:horse"
type Key string

// Style - середовище, в якому рухається поведінка
type Style uint8

const (
	Land Style = iota
	Liquid
	Air
)

func (s Style) String() string {
	switch s {
	case Land:
		return "LAND"
	case Liquid:
		return "LIQUID"
	case Air:
		return "AIR"
	}
	return "UNKNOWN"
}

// Pose - поза покемона під час поїздки
type Pose string

const (
	NoPose    Pose = "no_pose"
	PoseStand Pose = "stand"
	PoseWalk  Pose = "walk"
	PoseHover Pose = "hover"
	PoseFly   Pose = "fly"
	PoseGlide Pose = "glide"
)

// Vehicle - покемон, на якому їдуть. Його надає світ.
type Vehicle interface {
	Velocity() mgl64.Vec3
	OnGround() bool
	InLiquid() bool
	// WorldTick - поточний час світу в тіках
	WorldTick() int64
	SetFlying(flying bool)
	// StatBoost - частка прокачки стату від 0 (база) до 1 (максимум)
	StatBoost(stat Stat) float64
}

// Driver - гравець, що керує
type Driver interface {
	Sprinting() bool
	Jumping() bool
	Sneaking() bool
	// LookAngles - yaw і pitch у градусах
	LookAngles() mgl64.Vec2
}

// Behaviour - таблиця чистих функцій (settings, state, vehicle, driver) -> фізика.
//
// Реалізації не мають власного змінного стану і не повинні
// запам'ятовувати нічого між викликами. Якщо передано Settings або State
// не того типу - це помилка програміста, реалізація панікує.
type Behaviour interface {
	Key() Key

	RidingStyle(s Settings, st State) Style
	IsActive(s Settings, st State, v Vehicle) bool
	Pose(s Settings, st State, v Vehicle) Pose

	Speed(s Settings, st State, v Vehicle, d Driver) float64
	// Rotation - цільові (pitch, yaw) покемона в градусах
	Rotation(s Settings, st State, v Vehicle, d Driver) mgl64.Vec2
	// Velocity - швидкість у локальних координатах покемона.
	// input: X - вбік, Y - вгору, Z - вперед.
	Velocity(s Settings, st State, v Vehicle, d Driver, input mgl64.Vec3) mgl64.Vec3
	AngRollVel(s Settings, st State, v Vehicle, d Driver, deltaTime float64) mgl64.Vec3
	RotationOnMouseXY(s Settings, st State, v Vehicle, d Driver, mouseY, mouseX, sensitivity, deltaTime float64) mgl64.Vec3

	CanJump(s Settings, st State, v Vehicle, d Driver) bool
	// RideBar - заповнення шкали (витривалість/заряд) від 0 до 1
	RideBar(s Settings, st State, v Vehicle, d Driver) float64
	JumpForce(s Settings, st State, v Vehicle, d Driver, jumpStrength int) mgl64.Vec3
	Gravity(s Settings, st State, v Vehicle, regularGravity float64) float64

	FovMultiplier(s Settings, st State, v Vehicle, d Driver) float64
	UseAngVelSmoothing(s Settings, st State, v Vehicle) bool
	RidingAltPose(s Settings, st State, v Vehicle, d Driver) Pose
	Inertia(s Settings, st State, v Vehicle) float64
	ShouldRoll(s Settings, st State, v Vehicle) bool
	TurnOffOnGround(s Settings, st State, v Vehicle) bool
	DismountOnShift(s Settings, st State, v Vehicle) bool
	ShouldRotateMountHead(s Settings, st State, v Vehicle) bool
	ShouldRotateRiderHead(s Settings, st State, v Vehicle) bool

	Tick(s Settings, st State, v Vehicle, d Driver, input mgl64.Vec3)

	CreateDefaultState(s Settings) State
	DamageOnCollision(s Settings, st State, v Vehicle, impact mgl64.Vec3) bool
}

// Behaviours - реєстр поведінок, яким володіє корінь композиції
type Behaviours = Registry[Key, Behaviour]

// NewBehaviours створює порожній реєстр поведінок
func NewBehaviours() *Behaviours { return NewRegistry[Key, Behaviour]("riding behaviour") }
