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
	"github.com/google/uuid"
	"golang.org/x/exp/slices"

	"PokeCore/internal/weighted"
)

// SpawnBucket - категорія рідкісності. Спершу обирається відро, потім
// лише записи з цього відра беруть участь у виборі.
type SpawnBucket struct {
	Name   string
	Weight float64
}

// DefaultBuckets - стандартні відра
func DefaultBuckets() []SpawnBucket {
	return []SpawnBucket{
		{Name: "common", Weight: 94.4},
		{Name: "uncommon", Weight: 5},
		{Name: "rare", Weight: 0.5},
		{Name: "ultra-rare", Weight: 0.1},
	}
}

// ChooseBucket - зважений вибір відра
func ChooseBucket(rng weighted.Rand, buckets []SpawnBucket) (SpawnBucket, bool) {
	return weighted.Select(rng, buckets, func(b SpawnBucket) float64 { return b.Weight })
}

// SelectionData - що селектор знає про обраний запис у момент вибору
type SelectionData struct {
	Rand weighted.Rand
	// Positions - всі кандидати обраного типу, де запис може з'явитись
	Positions []SpawnablePosition
}

// SpawnDetail - запис пулу спавну
type SpawnDetail interface {
	ID() string
	Bucket() string
	// Percentage - фіксована частка в групі у відсотках.
	// <= 0 означає що запис бере участь лише у виборі за вагою.
	Percentage() float64
	// Weight - вага в позиції p з урахуванням впливів
	Weight(p SpawnablePosition) float64
	PositionTypes() []*SpawnablePositionType
	Labels() []string
	IsSatisfiedBy(p SpawnablePosition) bool
	// Choose будує дію спавну. nil - запис відмовився.
	Choose(p SpawnablePosition, bucket SpawnBucket, selection SelectionData) *SpawnAction
}

// SpawnAction - результат проходу: що і де з'явиться
type SpawnAction struct {
	ID       uuid.UUID
	Detail   SpawnDetail
	Position SpawnablePosition
	Bucket   SpawnBucket
	Species  string
	Level    int
}

// Condition - додаткова умова запису
type Condition func(p SpawnablePosition) bool

// LightBetween - рівень освітлення блоку спавну в межах [min, max]
func LightBetween(lo, hi int) Condition {
	return func(p SpawnablePosition) bool {
		l := p.Base().Light
		return l >= lo && l <= hi
	}
}

// NeedsSky - чи повинен блок спавну бачити небо
func NeedsSky(see bool) Condition {
	return func(p SpawnablePosition) bool { return p.Base().CanSeeSky == see }
}

// YBetween - висота знайденої позиції в межах [min, max]
func YBetween(lo, hi int32) Condition {
	return func(p SpawnablePosition) bool {
		y := p.Base().Position.Y()
		return y >= lo && y <= hi
	}
}

// FloorIn - підлога кандидата один з блоків. Для поверхні рідини
// порівнюється сама рідина.
func FloorIn(blocks ...string) Condition {
	return func(p SpawnablePosition) bool {
		switch p := p.(type) {
		case *GroundedSpawnablePosition:
			return slices.Contains(blocks, p.Floor)
		case *SeafloorSpawnablePosition:
			return slices.Contains(blocks, p.Floor)
		case *LavafloorSpawnablePosition:
			return slices.Contains(blocks, p.Floor)
		case *SurfaceSpawnablePosition:
			return slices.Contains(blocks, p.Fluid)
		}
		return false
	}
}

// InStructure - кандидат у чанку зі структурою name
func InStructure(name string) Condition {
	return func(p SpawnablePosition) bool { return p.Base().InStructure(name) }
}

// LevelRange - межі рівня покемона
type LevelRange struct {
	Min, Max int
}

// PokemonSpawnDetail - запис для появи дикого покемона
type PokemonSpawnDetail struct {
	Name       string
	Species    string
	Levels     LevelRange
	BucketName string
	BaseWeight float64
	Percent    float64
	Types      []*SpawnablePositionType
	LabelList  []string
	Conditions []Condition
}

func (d *PokemonSpawnDetail) ID() string                              { return d.Name }
func (d *PokemonSpawnDetail) Bucket() string                          { return d.BucketName }
func (d *PokemonSpawnDetail) Percentage() float64                     { return d.Percent }
func (d *PokemonSpawnDetail) PositionTypes() []*SpawnablePositionType { return d.Types }
func (d *PokemonSpawnDetail) Labels() []string                        { return d.LabelList }

func (d *PokemonSpawnDetail) Weight(p SpawnablePosition) float64 {
	return applyWeightInfluences(d, p, d.BaseWeight*p.Base().WeightMultiplier)
}

func (d *PokemonSpawnDetail) IsSatisfiedBy(p SpawnablePosition) bool {
	if !slices.Contains(d.Types, p.Type()) {
		return false
	}
	for _, c := range d.Conditions {
		if !c(p) {
			return false
		}
	}
	return true
}

func (d *PokemonSpawnDetail) Choose(p SpawnablePosition, bucket SpawnBucket, selection SelectionData) *SpawnAction {
	level := d.Levels.Min
	if span := d.Levels.Max - d.Levels.Min; span > 0 && selection.Rand != nil {
		level += int(selection.Rand.Float64() * float64(span+1))
		level = min(level, d.Levels.Max)
	}
	return &SpawnAction{
		ID:       uuid.New(),
		Detail:   d,
		Position: p,
		Bucket:   bucket,
		Species:  d.Species,
		Level:    level,
	}
}
