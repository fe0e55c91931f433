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

package riding

import (
	"io"

	"github.com/go-gl/mathgl/mgl64"
)

// Side - яка сторона симуляції має право змінювати значення
type Side uint8

const (
	Both Side = iota
	Client
	Server
)

func (s Side) String() string {
	switch s {
	case Both:
		return "both"
	case Client:
		return "client"
	case Server:
		return "server"
	}
	return "unknown"
}

// SidedRidingState - комірка стану, яку може змінювати тільки "своя" сторона.
// Так передбачення клієнта не перезаписує значення, яке рахує сервер.
// Force пише завжди: ним користуються декодер і скидання стану.
type SidedRidingState[T comparable] struct {
	value T
	side  Side
}

func NewSidedState[T comparable](initial T, side Side) SidedRidingState[T] {
	return SidedRidingState[T]{value: initial, side: side}
}

func (s *SidedRidingState[T]) Get() T { return s.value }

// Side повертає сторону-власника значення
func (s *SidedRidingState[T]) Side() Side { return s.side }

// Set змінює значення, якщо сторона from має на це право.
// Повертає false якщо запис відхилено.
func (s *SidedRidingState[T]) Set(from Side, v T) bool {
	if s.side != Both && s.side != from {
		return false
	}
	s.value = v
	return true
}

// Force змінює значення незалежно від сторони
func (s *SidedRidingState[T]) Force(v T) { s.value = v }

// DefaultStamina - повна витривалість на початку поїздки
const DefaultStamina float32 = 1

// State - змінний стан однієї поїздки
type State interface {
	RideVelocity() *SidedRidingState[mgl64.Vec3]
	Stamina() *SidedRidingState[float32]

	// Reset повертає стан до нульового (як щойно створений)
	Reset()
	Copy() State
	// ShouldSync повідомляє чи відрізняється стан від previous настільки,
	// що його треба надіслати іншій стороні
	ShouldSync(previous State) bool

	Encode(w io.Writer) error
	Decode(r io.Reader) error
}

// BaseState - стан, спільний для всіх поведінок: швидкість і витривалість
type BaseState struct {
	rideVelocity SidedRidingState[mgl64.Vec3]
	stamina      SidedRidingState[float32]
}

func NewState() *BaseState {
	return &BaseState{
		rideVelocity: NewSidedState(mgl64.Vec3{}, Both),
		stamina:      NewSidedState(DefaultStamina, Both),
	}
}

func (b *BaseState) RideVelocity() *SidedRidingState[mgl64.Vec3] { return &b.rideVelocity }

func (b *BaseState) Stamina() *SidedRidingState[float32] { return &b.stamina }

func (b *BaseState) Reset() {
	b.rideVelocity.Force(mgl64.Vec3{})
	b.stamina.Force(DefaultStamina)
}

func (b *BaseState) Copy() State {
	c := *b
	return &c
}

// ShouldSync порівнює значення з точністю мережевого формату
func (b *BaseState) ShouldSync(previous State) bool {
	return toWire(previous.RideVelocity().Get()) != toWire(b.rideVelocity.Get()) ||
		previous.Stamina().Get() != b.stamina.Get()
}

func (b *BaseState) Encode(w io.Writer) error { return EncodeBase(w, b) }

func (b *BaseState) Decode(r io.Reader) error { return DecodeBase(r, b) }
