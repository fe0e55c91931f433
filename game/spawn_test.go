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

package game

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"PokeCore/riding"
	"PokeCore/spawning"
)

func TestTickSpawns(t *testing.T) {
	config := testConfig(t)
	config.Spawning.PassInterval = 1
	config.Spawning.MaxMounts = 1
	g := newTestGame(t, config)
	p, _ := addPlayer(g, "Ash")

	require.Equal(t, 1, g.overworld.MountCount())
	assert.Equal(t, 1.0, testutil.ToFloat64(g.metrics.spawnPasses))

	g.overworld.Step(1)
	assert.Equal(t, 1, g.overworld.MountCount(), "limit reached")
	assert.Equal(t, 1.0, testutil.ToFloat64(g.metrics.spawnPasses))

	var actions float64
	for _, b := range config.Spawning.SpawnBuckets() {
		actions += testutil.ToFloat64(g.metrics.spawnActions.WithLabelValues(b.Name))
	}
	assert.Equal(t, 1.0, actions)

	// новий покемон стоїть далі за MinEntityDistance від гравця
	for _, m := range g.overworld.Mounts() {
		assert.InDelta(t, 65.0, m.Position[1], 2)
		assert.GreaterOrEqual(t, m.Level, 2)
		assert.InDelta(t, float64(m.Level)/maxLevel, m.StatBoost(riding.StatSpeed), 1e-9)
		dx, dz := m.Position[0]-p.Position[0], m.Position[2]-p.Position[2]
		assert.Greater(t, dx*dx+dz*dz, 36.0)
	}
}

func TestTickSpawns_Interval(t *testing.T) {
	config := testConfig(t)
	config.Spawning.PassInterval = 4
	g := newTestGame(t, config)
	addPlayer(g, "Ash") // тік 0

	for i := uint(1); i < 4; i++ {
		g.overworld.Step(i)
	}
	assert.Equal(t, 1.0, testutil.ToFloat64(g.metrics.spawnPasses))
	g.overworld.Step(4)
	assert.Equal(t, 2.0, testutil.ToFloat64(g.metrics.spawnPasses))
}

func TestProbabilities(t *testing.T) {
	g := newTestGame(t, testConfig(t))
	p, c := addPlayer(g, "Ash")

	buckets := g.Probabilities(p)
	require.NotEmpty(t, buckets)
	names := make(map[string]bool)
	for _, b := range buckets {
		names[b.Bucket.Name] = true
		var sum float64
		for i, e := range b.Entries {
			sum += e.Weight
			if i > 0 {
				assert.GreaterOrEqual(t, b.Entries[i-1].Weight, e.Weight, "sorted by chance")
			}
		}
		assert.InDelta(t, 100, sum, 1e-6, b.Bucket.Name)
	}
	assert.True(t, names["common"])
	assert.True(t, names["ultra-rare"])

	g.ShowProbabilities(p)
	require.NotEmpty(t, c.chat)
	assert.Contains(t, c.chat[0], "common")
}

func TestSelectionAbortMetric(t *testing.T) {
	g := newTestGame(t, testConfig(t))
	p, _ := addPlayer(g, "Ash")
	g.spawner.AddSpawn(&spawning.PokemonSpawnDetail{
		Name: "broken", Species: "ponyta", BucketName: "common",
		Levels: spawning.LevelRange{Min: 1, Max: 1}, Percent: 150,
		Types: []*spawning.SpawnablePositionType{spawning.Grounded},
	})

	zone := g.zoneAround(g.overworld, p)
	positions := g.spawner.Resolve(zone)
	common := spawning.SpawnBucket{Name: "common", Weight: 1}
	for i := 0; i < 20; i++ {
		g.spawner.Selector().Select(g.spawner, common, positions)
	}
	assert.Positive(t, testutil.ToFloat64(g.metrics.selectionAborts.WithLabelValues("grounded")))
}
