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

package spawning

import (
	"golang.org/x/exp/slices"
)

// Influence змінює спавн: забороняє позиції, міняє ваги кандидатів і записів.
// Впливи бувають у спавнера (на всі зони) і в окремої зони.
type Influence interface {
	// AffectPosition може змінити кандидата, наприклад його WeightMultiplier
	AffectPosition(p SpawnablePosition)
	// AffectWeight повертає нову вагу запису detail у позиції p
	AffectWeight(detail SpawnDetail, p SpawnablePosition, weight float64) float64
	IsAllowedPosition(w World, pos BlockPos, calc Calculator) bool
	IsExpired(tick int64) bool
}

// NoInfluence нічого не змінює. Вбудовується в конкретні впливи,
// щоб не писати порожні методи.
type NoInfluence struct{}

func (NoInfluence) AffectPosition(SpawnablePosition) {}

func (NoInfluence) AffectWeight(_ SpawnDetail, _ SpawnablePosition, weight float64) float64 {
	return weight
}

func (NoInfluence) IsAllowedPosition(World, BlockPos, Calculator) bool { return true }
func (NoInfluence) IsExpired(int64) bool                               { return false }

// WeightMultiplierInfluence множить вагу записів з будь-якою з міток Labels
// і вагу позицій типів Types. Порожній список нічого не чіпає.
type WeightMultiplierInfluence struct {
	NoInfluence
	Labels     []string
	Types      []*SpawnablePositionType
	Multiplier float64
}

func (i *WeightMultiplierInfluence) AffectPosition(p SpawnablePosition) {
	if slices.Contains(i.Types, p.Type()) {
		p.Base().WeightMultiplier *= i.Multiplier
	}
}

func (i *WeightMultiplierInfluence) AffectWeight(detail SpawnDetail, _ SpawnablePosition, weight float64) float64 {
	for _, l := range detail.Labels() {
		if slices.Contains(i.Labels, l) {
			return weight * i.Multiplier
		}
	}
	return weight
}

// RestrictionInfluence забороняє позиції всередині куба [Min, Max].
// Якщо Calculators не порожній, заборона стосується лише цих калькуляторів.
type RestrictionInfluence struct {
	NoInfluence
	Min, Max    BlockPos
	Calculators []string
}

func (i *RestrictionInfluence) IsAllowedPosition(_ World, pos BlockPos, calc Calculator) bool {
	if len(i.Calculators) > 0 && !slices.Contains(i.Calculators, calc.Name()) {
		return true
	}
	for k := range pos {
		if pos[k] < i.Min[k] || pos[k] > i.Max[k] {
			return true
		}
	}
	return false
}

// ExpiringInfluence - вплив, що діє до тіку ExpiresAt.
// Спавнер прибирає прострочені впливи на початку кожного проходу.
type ExpiringInfluence struct {
	Influence
	ExpiresAt int64
}

func (i *ExpiringInfluence) IsExpired(tick int64) bool {
	return tick >= i.ExpiresAt || i.Influence.IsExpired(tick)
}

// applyWeightInfluences проганяє вагу запису через усі впливи кандидата
func applyWeightInfluences(detail SpawnDetail, p SpawnablePosition, weight float64) float64 {
	for _, inf := range p.Base().Influences {
		weight = inf.AffectWeight(detail, p, weight)
	}
	return weight
}
