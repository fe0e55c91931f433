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
	"fmt"
	"io"

	pk "github.com/Tnze/go-mc/net/packet"

	"PokeCore/riding"
)

// NeverTransitioned - початкове значення LastTransition.
// Достатньо далеко в минулому, щоб перший перехід не чекав кулдауну.
const NeverTransitioned int64 = -100

// State - стан складеної поведінки.
// Живий лише один із двох підстанів, інший чекає зі своїми
// швидкістю і витривалістю.
type State struct {
	riding.BaseState

	defaultKey     riding.Key
	active         riding.SidedRidingState[riding.Key]
	lastTransition riding.SidedRidingState[int64]

	defaultState   riding.State
	alternateState riding.State
}

func NewState(defaultKey riding.Key, defaultState, alternateState riding.State) *State {
	return &State{
		BaseState:      *riding.NewState(),
		defaultKey:     defaultKey,
		active:         riding.NewSidedState(defaultKey, riding.Both),
		lastTransition: riding.NewSidedState(NeverTransitioned, riding.Both),
		defaultState:   defaultState,
		alternateState: alternateState,
	}
}

// ActiveBehaviour - ключ поведінки, що зараз керує фізикою
func (s *State) ActiveBehaviour() *riding.SidedRidingState[riding.Key] { return &s.active }

// LastTransition - тік останнього переходу
func (s *State) LastTransition() *riding.SidedRidingState[int64] { return &s.lastTransition }

func (s *State) DefaultState() riding.State   { return s.defaultState }
func (s *State) AlternateState() riding.State { return s.alternateState }

func (s *State) Reset() {
	s.BaseState.Reset()
	s.defaultState.Reset()
	s.alternateState.Reset()
	s.active.Force(s.defaultKey)
	s.lastTransition.Force(NeverTransitioned)
}

func (s *State) Copy() riding.State {
	c := *s
	c.defaultState = s.defaultState.Copy()
	c.alternateState = s.alternateState.Copy()
	return &c
}

func (s *State) ShouldSync(previous riding.State) bool {
	prev, ok := previous.(*State)
	if !ok {
		return true
	}
	return s.BaseState.ShouldSync(prev) ||
		prev.active.Get() != s.active.Get() ||
		prev.lastTransition.Get() != s.lastTransition.Get() ||
		s.defaultState.ShouldSync(prev.defaultState) ||
		s.alternateState.ShouldSync(prev.alternateState)
}

// Encode пише базовий стан, потім ключ активної поведінки, тік
// останнього переходу і обидва підстани (спочатку основний).
func (s *State) Encode(w io.Writer) error {
	if err := riding.EncodeBase(w, s); err != nil {
		return err
	}
	if _, err := (pk.Tuple{
		pk.Identifier(s.active.Get()),
		pk.Long(s.lastTransition.Get()),
	}).WriteTo(w); err != nil {
		return fmt.Errorf("write composite header: %w", err)
	}
	if err := s.defaultState.Encode(w); err != nil {
		return fmt.Errorf("write default state: %w", err)
	}
	if err := s.alternateState.Encode(w); err != nil {
		return fmt.Errorf("write alternate state: %w", err)
	}
	return nil
}

// Decode читає те, що записав Encode. Поки весь стан не прочитано,
// нічого не змінюється; підстани замінюються декодованими копіями.
func (s *State) Decode(r io.Reader) error {
	base := riding.NewState()
	if err := riding.DecodeBase(r, base); err != nil {
		return err
	}
	var (
		active pk.Identifier
		last   pk.Long
	)
	if _, err := (pk.Tuple{&active, &last}).ReadFrom(r); err != nil {
		return fmt.Errorf("read composite header: %w", err)
	}
	def, alt := s.defaultState.Copy(), s.alternateState.Copy()
	if err := def.Decode(r); err != nil {
		return fmt.Errorf("read default state: %w", err)
	}
	if err := alt.Decode(r); err != nil {
		return fmt.Errorf("read alternate state: %w", err)
	}
	s.RideVelocity().Force(base.RideVelocity().Get())
	s.Stamina().Force(base.Stamina().Get())
	s.active.Force(riding.Key(active))
	s.lastTransition.Force(int64(last))
	s.defaultState, s.alternateState = def, alt
	return nil
}
