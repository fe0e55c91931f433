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
	"fmt"
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"

	"PokeCore/internal/weighted"
	"PokeCore/riding"
	"PokeCore/spawning"
	"PokeCore/world"
	"github.com/Tnze/go-mc/chat"
)

// maxLevel - рівень, на якому стати покемона прокачані повністю
const maxLevel = 100

func (g *Game) tickSpawns(w *world.World) {
	cfg := &g.config.Spawning
	if cfg.PassInterval <= 0 || w.Tick()%cfg.PassInterval != 0 {
		return
	}
	for _, p := range w.Players() {
		if w.MountCount() >= cfg.MaxMounts || !g.spawnLimiter.Allow() {
			return
		}
		g.spawnAround(w, p)
	}
}

// zoneAround - зона спавну з гравцем у центрі
func (g *Game) zoneAround(w *world.World, p *world.Player) *spawning.Zone {
	cfg := &g.config.Spawning
	center := world.BlockAt(mgl64.Vec3(p.Position))
	base := center.Offset(-cfg.ZoneSize/2, -cfg.ZoneHeight/2, -cfg.ZoneSize/2)
	// сутності, які можуть бути ближче MinEntityDistance до будь-якого блоку зони
	halfDiagonal := math.Sqrt(2*float64(cfg.ZoneSize)*float64(cfg.ZoneSize)+float64(cfg.ZoneHeight)*float64(cfg.ZoneHeight)) / 2
	entities := w.EntitiesNear(mgl64.Vec3(p.Position), halfDiagonal+cfg.MinEntityDistance)
	return spawning.NewZone(
		spawning.SpawnCause{Spawner: g.spawner, Player: p.UUID},
		w, base,
		cfg.ZoneSize, cfg.ZoneHeight, cfg.ZoneSize,
		cfg.MinEntityDistance, entities,
	)
}

// spawnAround - один прохід спавну біля гравця. nil, якщо ніхто не з'явився.
func (g *Game) spawnAround(w *world.World, p *world.Player) *world.Mount {
	g.metrics.spawnPasses.Inc()
	action := g.spawner.Run(g.zoneAround(w, p))
	if action == nil {
		return nil
	}
	g.metrics.spawnActions.WithLabelValues(action.Bucket.Name).Inc()

	pt := action.Position.Base().SpawnPoint()
	m := world.NewMount(action.Species, action.Level, world.Position{
		float64(pt.X()) + 0.5,
		float64(pt.Y()),
		float64(pt.Z()) + 0.5,
	})
	boost := min(1, float64(action.Level)/maxLevel)
	for stat := riding.StatSpeed; stat <= riding.StatStamina; stat++ {
		m.Boosts[stat] = boost
	}
	w.AddMount(m)
	g.log.Debug("Spawn",
		zap.String("species", m.Species),
		zap.Int("level", m.Level),
		zap.String("type", action.Position.Type().Name),
		zap.Stringer("pos", pt),
		zap.String("near", p.Name))
	return m
}

// BucketProbabilities - шанси записів одного відра, у відсотках
type BucketProbabilities struct {
	Bucket  spawning.SpawnBucket
	Entries []weighted.Entry[spawning.SpawnDetail]
}

// Probabilities рахує шанси кожного запису в зоні навколо гравця.
// Відра без жодного запису пропускаються.
func (g *Game) Probabilities(p *world.Player) []BucketProbabilities {
	zone := g.zoneAround(g.overworld, p)
	var out []BucketProbabilities
	for _, b := range g.spawner.Buckets() {
		entries := g.spawner.Probabilities(zone, b)
		if len(entries) == 0 {
			continue
		}
		sort.SliceStable(entries, func(i, j int) bool { return entries[i].Weight > entries[j].Weight })
		out = append(out, BucketProbabilities{Bucket: b, Entries: entries})
	}
	return out
}

// ShowProbabilities пише шанси гравцю в чат
func (g *Game) ShowProbabilities(p *world.Player) {
	c := p.Client()
	if c == nil {
		return
	}
	buckets := g.Probabilities(p)
	if len(buckets) == 0 {
		c.SendSystemChat(chat.Text("Nothing can spawn here").SetColor(chat.Gray))
		return
	}
	for _, b := range buckets {
		c.SendSystemChat(chat.Text(fmt.Sprintf("%s (%.1f)", b.Bucket.Name, b.Bucket.Weight)).SetColor(chat.Gold))
		for _, e := range b.Entries {
			c.SendSystemChat(chat.Text(fmt.Sprintf("  %s: %.2f%%", e.Value.ID(), e.Weight)))
		}
	}
}
