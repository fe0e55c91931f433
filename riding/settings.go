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

// Stat - характеристика покемона для їзди
type Stat uint8

const (
	StatSpeed Stat = iota
	StatAcceleration
	StatSkill
	StatJump
	StatStamina
)

func (s Stat) String() string {
	switch s {
	case StatSpeed:
		return "speed"
	case StatAcceleration:
		return "acceleration"
	case StatSkill:
		return "skill"
	case StatJump:
		return "jump"
	case StatStamina:
		return "stamina"
	}
	return "unknown"
}

// IntRange - від базового (Min) до прокачаного (Max) значення
type IntRange struct {
	Min, Max int
}

// Lerp повертає значення всередині діапазону, t обрізається до [0, 1]
func (r IntRange) Lerp(t float64) float64 {
	t = max(0, min(1, t))
	return float64(r.Min) + float64(r.Max-r.Min)*t
}

// Settings - незмінні налаштування поведінки для виду або форми.
// Завантажуються один раз і діляться між усіма покемонами виду.
type Settings interface {
	Key() Key
	Stats() map[Stat]IntRange
}

// BaseSettings можна вбудовувати в налаштування конкретних поведінок
type BaseSettings struct {
	BehaviourKey Key
	StatRanges   map[Stat]IntRange
}

func (b *BaseSettings) Key() Key                 { return b.BehaviourKey }
func (b *BaseSettings) Stats() map[Stat]IntRange { return b.StatRanges }

// StatValue - значення стату з урахуванням прокачки покемона.
// Якщо стат не задано - 0.
func StatValue(s Settings, v Vehicle, stat Stat) float64 {
	r, ok := s.Stats()[stat]
	if !ok {
		return 0
	}
	return r.Lerp(v.StatBoost(stat))
}
