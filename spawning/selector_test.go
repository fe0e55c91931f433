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
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

var common = SpawnBucket{Name: "common", Weight: 1}

func grounded(x int32, multiplier float64) SpawnablePosition {
	return &GroundedSpawnablePosition{
		BaseSpawnablePosition: BaseSpawnablePosition{Position: BlockPos{x, 0, 0}, WeightMultiplier: multiplier},
		Floor:                 "minecraft:grass_block",
	}
}

func seafloor(x int32) SpawnablePosition {
	return &SeafloorSpawnablePosition{
		BaseSpawnablePosition: BaseSpawnablePosition{Position: BlockPos{x, 0, 0}, WeightMultiplier: 1},
		Floor:                 "minecraft:sand",
		Fluid:                 "minecraft:water",
	}
}

func detail(name string, weight, percent float64, types ...*SpawnablePositionType) *PokemonSpawnDetail {
	if len(types) == 0 {
		types = []*SpawnablePositionType{Grounded}
	}
	return &PokemonSpawnDetail{
		Name:       name,
		Species:    name,
		Levels:     LevelRange{Min: 5, Max: 5},
		BucketName: common.Name,
		BaseWeight: weight,
		Percent:    percent,
		Types:      types,
	}
}

func spawnerWith(seed int64, details ...SpawnDetail) *AreaSpawner {
	s := NewAreaSpawner(zap.NewNop(), "test", rand.New(rand.NewSource(seed)), DefaultCalculators(), []SpawnBucket{common})
	for _, d := range details {
		s.AddSpawn(d)
	}
	return s
}

// draw рахує, скільки разів обрано кожен вид
func draw(t *testing.T, s *AreaSpawner, positions []SpawnablePosition, n int) map[string]int {
	counts := make(map[string]int)
	for i := 0; i < n; i++ {
		a := s.Selector().Select(s, common, positions)
		require.NotNil(t, a)
		counts[a.Species]++
	}
	return counts
}

func probabilities(s *AreaSpawner, positions []SpawnablePosition) map[string]float64 {
	out := make(map[string]float64)
	for _, e := range s.Selector().Probabilities(s, common, positions) {
		out[e.Value.ID()] = e.Weight
	}
	return out
}

func TestSelect_Percentages(t *testing.T) {
	s := spawnerWith(7,
		detail("bulbasaur", 1, 30),
		detail("charmander", 1, 30),
		detail("squirtle", 1, 30),
		detail("pidgey", 10, 0),
	)
	positions := []SpawnablePosition{grounded(0, 1)}

	const n = 100_000
	counts := draw(t, s, positions, n)
	assert.InDelta(t, 0.3, float64(counts["bulbasaur"])/n, 0.01)
	assert.InDelta(t, 0.3, float64(counts["charmander"])/n, 0.01)
	assert.InDelta(t, 0.3, float64(counts["squirtle"])/n, 0.01)
	assert.InDelta(t, 0.1, float64(counts["pidgey"])/n, 0.01)

	p := probabilities(s, positions)
	assert.InDelta(t, 30, p["bulbasaur"], 1e-9)
	assert.InDelta(t, 30, p["charmander"], 1e-9)
	assert.InDelta(t, 30, p["squirtle"], 1e-9)
	assert.InDelta(t, 10, p["pidgey"], 1e-9)
}

func TestSelect_PercentageOverflow(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	s := NewAreaSpawner(zap.New(core), "test", rand.New(rand.NewSource(1)), DefaultCalculators(), []SpawnBucket{common})
	s.AddSpawn(detail("mew", 1, 60))
	s.AddSpawn(detail("mewtwo", 1, 60))
	var overflows []*SpawnablePositionType
	s.Selector().OnPercentageOverflow = func(typ *SpawnablePositionType) { overflows = append(overflows, typ) }

	positions := []SpawnablePosition{grounded(0, 1)}
	for i := 0; i < 3; i++ {
		assert.Nil(t, s.Selector().Select(s, common, positions))
	}
	assert.Equal(t, 3, logs.FilterMessage("Spawn percentages exceed 100, skipping selection").Len())
	assert.Equal(t, []*SpawnablePositionType{Grounded, Grounded, Grounded}, overflows)
	assert.Empty(t, s.Selector().Probabilities(s, common, positions))
}

func TestSelect_MixedWeights(t *testing.T) {
	s := spawnerWith(3,
		detail("eevee", 1, 50),
		detail("rattata", 1, 0),
		detail("zubat", 3, 0),
	)
	p := probabilities(s, []SpawnablePosition{grounded(0, 1)})
	assert.InDelta(t, 50, p["eevee"], 1e-9)
	assert.InDelta(t, 12.5, p["rattata"], 1e-9)
	assert.InDelta(t, 37.5, p["zubat"], 1e-9)
}

func TestSelect_PercentageOnly(t *testing.T) {
	s := spawnerWith(9, detail("dragonite", 0, 100))
	low, high := grounded(0, 1), grounded(1, 3)
	positions := []SpawnablePosition{low, high}

	const n = 20_000
	counts := draw(t, s, positions, n)
	assert.Equal(t, n, counts["dragonite"], "a zero base weight still spawns")
	assert.InDelta(t, 100, probabilities(s, positions)["dragonite"], 1e-9)

	var onHigh int
	for i := 0; i < n; i++ {
		if a := s.Selector().Select(s, common, positions); a != nil && a.Position == high {
			onHigh++
		}
	}
	assert.InDelta(t, 0.75, float64(onHigh)/n, 0.015, "positions keep their multiplier")
}

func TestSelect_GroupsByPositionCount(t *testing.T) {
	s := spawnerWith(11,
		detail("sentret", 1, 0, Grounded),
		detail("magikarp", 1, 0, Seafloor),
	)
	positions := []SpawnablePosition{grounded(0, 1), grounded(1, 1), grounded(2, 1), seafloor(3)}

	p := probabilities(s, positions)
	assert.InDelta(t, 75, p["sentret"], 1e-9)
	assert.InDelta(t, 25, p["magikarp"], 1e-9)

	const n = 40_000
	counts := draw(t, s, positions, n)
	assert.InDelta(t, 0.75, float64(counts["sentret"])/n, 0.01)
}

func TestSelect_PositionWeight(t *testing.T) {
	s := spawnerWith(5, detail("oddish", 2, 0))
	low, high := grounded(0, 1), grounded(1, 3)
	positions := []SpawnablePosition{low, high}

	const n = 40_000
	var onHigh int
	for i := 0; i < n; i++ {
		a := s.Selector().Select(s, common, positions)
		require.NotNil(t, a)
		if a.Position == high {
			onHigh++
		}
	}
	assert.InDelta(t, 0.75, float64(onHigh)/n, 0.01)
}

func TestSelect_NothingMatches(t *testing.T) {
	s := spawnerWith(1, detail("magikarp", 1, 0, Seafloor))
	assert.Nil(t, s.Selector().Select(s, common, []SpawnablePosition{grounded(0, 1)}))
	assert.Nil(t, s.Selector().Select(s, common, nil))
	assert.Empty(t, s.Selector().Probabilities(s, common, nil))
}

func TestSelect_WeightInfluence(t *testing.T) {
	a, b := detail("ekans", 1, 0), detail("koffing", 1, 0)
	b.LabelList = []string{"poison"}
	s := spawnerWith(9, a, b)

	pos := grounded(0, 1)
	pos.Base().Influences = []Influence{&WeightMultiplierInfluence{Labels: []string{"poison"}, Multiplier: 4}}

	p := probabilities(s, []SpawnablePosition{pos})
	assert.InDelta(t, 20, p["ekans"], 1e-9)
	assert.InDelta(t, 80, p["koffing"], 1e-9)
}

func TestPokemonSpawnDetail_Choose(t *testing.T) {
	d := detail("pikachu", 1, 0)
	d.Levels = LevelRange{Min: 3, Max: 7}
	rng := rand.New(rand.NewSource(2))
	seen := make(map[int]bool)
	for i := 0; i < 1000; i++ {
		a := d.Choose(grounded(0, 1), common, SelectionData{Rand: rng})
		require.NotNil(t, a)
		assert.GreaterOrEqual(t, a.Level, 3)
		assert.LessOrEqual(t, a.Level, 7)
		seen[a.Level] = true
		assert.Equal(t, "pikachu", a.Species)
		assert.Equal(t, common, a.Bucket)
	}
	assert.Len(t, seen, 5, "every level is reachable")
}

func TestConditions(t *testing.T) {
	p := grounded(0, 1).(*GroundedSpawnablePosition)
	p.Light = 4
	p.CanSeeSky = true
	p.Position = BlockPos{0, 70, 0}

	assert.True(t, LightBetween(0, 7)(p))
	assert.False(t, LightBetween(5, 15)(p))
	assert.True(t, NeedsSky(true)(p))
	assert.False(t, NeedsSky(false)(p))
	assert.True(t, YBetween(60, 80)(p))
	assert.False(t, YBetween(0, 69)(p))
	assert.True(t, FloorIn("minecraft:grass_block", "minecraft:dirt")(p))
	assert.False(t, FloorIn("minecraft:sand")(p))
	assert.False(t, InStructure("village")(p), "no cache means no structures")

	d := detail("growlithe", 1, 0)
	d.Conditions = []Condition{LightBetween(0, 7), FloorIn("minecraft:grass_block")}
	assert.True(t, d.IsSatisfiedBy(p))
	assert.False(t, d.IsSatisfiedBy(seafloor(0)), "wrong position type")
	d.Conditions = append(d.Conditions, NeedsSky(false))
	assert.False(t, d.IsSatisfiedBy(p))
}
