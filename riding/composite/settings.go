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

	"PokeCore/molang"
	"PokeCore/riding"
)

// Key - ключ складеної поведінки
const Key riding.Key = "pokecore:composite"

const (
	DefaultFallSpeedThreshold       = "-0.3"
	DefaultHorizontalSpeedThreshold = "0.1"
)

// Settings - дві поведінки і стратегія переходу між ними
type Settings struct {
	TransitionStrategy riding.Key
	Default            riding.Settings
	Alternate          riding.Settings

	// Пороги FallStrategy, рахуються кожен тік
	FallSpeedThreshold       *molang.Expression
	HorizontalSpeedThreshold *molang.Expression
}

// NewSettings збирає налаштування з порогами за замовчуванням
func NewSettings(strategy riding.Key, def, alt riding.Settings) *Settings {
	return &Settings{
		TransitionStrategy:       strategy,
		Default:                  def,
		Alternate:                alt,
		FallSpeedThreshold:       molang.MustCompile(DefaultFallSpeedThreshold),
		HorizontalSpeedThreshold: molang.MustCompile(DefaultHorizontalSpeedThreshold),
	}
}

// SetFallThresholds компілює пороги падіння. Порожній рядок лишає
// поточне значення.
func (s *Settings) SetFallThresholds(fallSpeed, horizontalSpeed string) error {
	if fallSpeed != "" {
		e, err := molang.Compile(fallSpeed)
		if err != nil {
			return fmt.Errorf("fall speed threshold: %w", err)
		}
		s.FallSpeedThreshold = e
	}
	if horizontalSpeed != "" {
		e, err := molang.Compile(horizontalSpeed)
		if err != nil {
			return fmt.Errorf("horizontal speed threshold: %w", err)
		}
		s.HorizontalSpeedThreshold = e
	}
	return nil
}

func (s *Settings) Key() riding.Key { return Key }

// Stats повертає стати основної поведінки
func (s *Settings) Stats() map[riding.Stat]riding.IntRange { return s.Default.Stats() }

func settingsOf(s riding.Settings) *Settings {
	cs, ok := s.(*Settings)
	if !ok {
		panic(fmt.Sprintf("composite behaviour got %T settings", s))
	}
	return cs
}

func stateOf(st riding.State) *State {
	cst, ok := st.(*State)
	if !ok {
		panic(fmt.Sprintf("composite behaviour got %T state", st))
	}
	return cst
}
