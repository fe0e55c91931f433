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
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"PokeCore/internal/prioritylist"
)

// maxScanDepth обмежує підрахунок висоти і глибини
const maxScanDepth = 16

// Input - блок, який зараз перевіряє резолвер
type Input struct {
	Zone *Zone
	Pos  BlockPos
}

// Block повертає блок зі зсувом від позиції
func (in Input) Block(dx, dy, dz int32) string {
	return in.Zone.World.BlockName(in.Pos.Offset(dx, dy, dz))
}

// Calculator перевіряє чи блок підходить під свій тип позиції і будує кандидата
type Calculator interface {
	Name() string
	Type() *SpawnablePositionType
	Priority() prioritylist.Priority
	Fits(in Input) bool
	// Calculate може повернути nil, навіть якщо Fits погодився
	Calculate(in Input) SpawnablePosition
}

// Calculators - калькулятори в порядку пріоритету
type Calculators = prioritylist.List[Calculator]

// DefaultCalculators - вбудовані калькулятори: дно моря, дно лави,
// поверхня рідини і нарешті звичайна земля
func DefaultCalculators() *Calculators {
	var list Calculators
	for _, c := range []Calculator{GroundedCalculator{}, SurfaceCalculator{}, LavafloorCalculator{}, SeafloorCalculator{}} {
		list.Add(c.Priority(), c)
	}
	return &list
}

// newBase заповнює спільні поля кандидата
func newBase(in Input) BaseSpawnablePosition {
	w := in.Zone.World
	above := in.Pos.Offset(0, 1, 0)
	return BaseSpawnablePosition{
		Cause:            in.Zone.Cause,
		World:            w,
		Position:         in.Pos,
		Light:            w.BlockLight(above),
		SkyLight:         w.SkyLight(above),
		CanSeeSky:        w.CanSeeSky(above),
		WeightMultiplier: 1,
		Structures:       in.Zone.Structures,
	}
}

// countUp рахує скільки блоків підряд над позицією задовольняють match
func countUp(in Input, match func(string) bool) (n int) {
	for n < maxScanDepth && match(in.Block(0, int32(n)+1, 0)) {
		n++
	}
	return
}

func countDown(in Input, match func(string) bool) (n int) {
	for n < maxScanDepth && match(in.Block(0, -int32(n), 0)) {
		n++
	}
	return
}

// GroundedCalculator - тверда підлога і вільне місце над нею
type GroundedCalculator struct{}

func (GroundedCalculator) Name() string                    { return "grounded" }
func (GroundedCalculator) Type() *SpawnablePositionType    { return Grounded }
func (GroundedCalculator) Priority() prioritylist.Priority { return prioritylist.Low }

func (GroundedCalculator) Fits(in Input) bool {
	return IsSolid(in.Block(0, 0, 0)) && IsOpen(in.Block(0, 1, 0))
}

func (GroundedCalculator) Calculate(in Input) SpawnablePosition {
	nearby := make(map[string]struct{})
	for dx := int32(-1); dx <= 1; dx++ {
		for dz := int32(-1); dz <= 1; dz++ {
			if dx != 0 || dz != 0 {
				nearby[in.Block(dx, 0, dz)] = struct{}{}
			}
		}
	}
	blocks := maps.Keys(nearby)
	slices.Sort(blocks)
	return &GroundedSpawnablePosition{
		BaseSpawnablePosition: newBase(in),
		Floor:                 in.Block(0, 0, 0),
		Height:                countUp(in, IsOpen),
		NearbyBlocks:          blocks,
	}
}

// SeafloorCalculator - тверде дно під водою
type SeafloorCalculator struct{}

func (SeafloorCalculator) Name() string                    { return "seafloor" }
func (SeafloorCalculator) Type() *SpawnablePositionType    { return Seafloor }
func (SeafloorCalculator) Priority() prioritylist.Priority { return prioritylist.High }

func (SeafloorCalculator) Fits(in Input) bool {
	return IsSolid(in.Block(0, 0, 0)) && WaterBlocks.Has(in.Block(0, 1, 0))
}

func (SeafloorCalculator) Calculate(in Input) SpawnablePosition {
	return &SeafloorSpawnablePosition{
		BaseSpawnablePosition: newBase(in),
		Floor:                 in.Block(0, 0, 0),
		Fluid:                 in.Block(0, 1, 0),
		Depth:                 countUp(in, WaterBlocks.Has),
	}
}

// LavafloorCalculator - тверде дно під лавою
type LavafloorCalculator struct{}

func (LavafloorCalculator) Name() string                    { return "lavafloor" }
func (LavafloorCalculator) Type() *SpawnablePositionType    { return Lavafloor }
func (LavafloorCalculator) Priority() prioritylist.Priority { return prioritylist.High }

func (LavafloorCalculator) Fits(in Input) bool {
	return IsSolid(in.Block(0, 0, 0)) && LavaBlocks.Has(in.Block(0, 1, 0))
}

func (LavafloorCalculator) Calculate(in Input) SpawnablePosition {
	return &LavafloorSpawnablePosition{
		BaseSpawnablePosition: newBase(in),
		Floor:                 in.Block(0, 0, 0),
		Depth:                 countUp(in, LavaBlocks.Has),
	}
}

// SurfaceCalculator - верхній блок рідини з повітрям зверху
type SurfaceCalculator struct{}

func (SurfaceCalculator) Name() string                    { return "surface" }
func (SurfaceCalculator) Type() *SpawnablePositionType    { return Surface }
func (SurfaceCalculator) Priority() prioritylist.Priority { return prioritylist.Normal }

func (SurfaceCalculator) Fits(in Input) bool {
	return IsFluid(in.Block(0, 0, 0)) && AirBlocks.Has(in.Block(0, 1, 0))
}

func (SurfaceCalculator) Calculate(in Input) SpawnablePosition {
	fluid := in.Block(0, 0, 0)
	same := func(b string) bool { return b == fluid }
	return &SurfaceSpawnablePosition{
		BaseSpawnablePosition: newBase(in),
		Fluid:                 fluid,
		Depth:                 countDown(in, same),
	}
}
