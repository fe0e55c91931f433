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
)

func TestDefaultBuckets(t *testing.T) {
	var sum float64
	for _, b := range DefaultBuckets() {
		sum += b.Weight
	}
	assert.InDelta(t, 100, sum, 1e-9)

	_, ok := ChooseBucket(rand.New(rand.NewSource(1)), nil)
	assert.False(t, ok)
}

func TestAreaSpawner_RunEmptyPool(t *testing.T) {
	s := spawnerWith(1)
	w := newTestWorld().set(BlockPos{0, 0, 0}, "minecraft:stone")
	assert.Nil(t, s.Run(cube(w, s)))
}

func TestAreaSpawner_RunNoPositions(t *testing.T) {
	s := spawnerWith(1, detail("geodude", 1, 0))
	assert.Nil(t, s.Run(cube(newTestWorld(), s)))
}

func TestAreaSpawner_Run(t *testing.T) {
	s := spawnerWith(4, detail("geodude", 1, 0))
	w := newTestWorld().
		set(BlockPos{0, 0, 0}, "minecraft:stone").
		set(BlockPos{1, 0, 0}, "minecraft:stone").
		set(BlockPos{1, 1, 0}, "minecraft:water")

	a := s.Run(cube(w, s))
	require.NotNil(t, a)
	assert.Equal(t, "geodude", a.Species)
	assert.Equal(t, 5, a.Level)
	assert.Equal(t, common, a.Bucket)
	assert.IsType(t, &GroundedSpawnablePosition{}, a.Position, "only grounded matches")
	assert.Equal(t, BlockPos{0, 0, 0}, a.Position.Base().Position)
}

func TestAreaSpawner_MatchingSpawnsByBucket(t *testing.T) {
	rare := detail("dratini", 1, 0)
	rare.BucketName = "rare"
	s := spawnerWith(1, detail("rattata", 1, 0), rare)

	got := s.MatchingSpawns(common, grounded(0, 1))
	require.Len(t, got, 1)
	assert.Equal(t, "rattata", got[0].ID())

	got = s.MatchingSpawns(SpawnBucket{Name: "rare"}, grounded(0, 1))
	require.Len(t, got, 1)
	assert.Equal(t, "dratini", got[0].ID())
}

func TestAreaSpawner_ExpiredInfluence(t *testing.T) {
	s := spawnerWith(1)
	w := newTestWorld().set(BlockPos{0, 0, 0}, "minecraft:stone")
	block := &ExpiringInfluence{
		Influence: &RestrictionInfluence{Min: BlockPos{-5, -5, -5}, Max: BlockPos{5, 5, 5}},
		ExpiresAt: 100,
	}
	s.AddInfluence(block)

	w.tick = 99
	assert.Empty(t, s.Resolve(cube(w, s)))
	assert.Len(t, s.Influences(), 1)

	w.tick = 100
	assert.Len(t, s.Resolve(cube(w, s)), 1)
	assert.Empty(t, s.Influences(), "expired influence is pruned")
}

func TestAreaSpawner_CopyInfluences(t *testing.T) {
	s := spawnerWith(1)
	s.AddInfluence(NoInfluence{})
	c := s.CopyInfluences()
	c[0] = &WeightMultiplierInfluence{Multiplier: 2}
	assert.Equal(t, NoInfluence{}, s.Influences()[0])
}

func TestAreaSpawner_Probabilities(t *testing.T) {
	s := spawnerWith(1, detail("sandshrew", 1, 0), detail("diglett", 3, 0))
	w := newTestWorld().set(BlockPos{0, 0, 0}, "minecraft:sand")

	got := s.Probabilities(cube(w, s), common)
	require.Len(t, got, 2)
	assert.Equal(t, "sandshrew", got[0].Value.ID())
	assert.InDelta(t, 25, got[0].Weight, 1e-9)
	assert.InDelta(t, 75, got[1].Weight, 1e-9)
}
