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

package world

import (
	"context"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/Tnze/go-mc/chat"
)

// TPS - тіків на секунду
const TPS = 20

// maxMoveDistance - більший стрибок за тік вважається читом
const maxMoveDistance = 100

// Run крутить цикл тіків, поки не скасують ctx
func (w *World) Run(ctx context.Context) {
	ticker := time.NewTicker(time.Second / TPS)
	defer ticker.Stop()
	var n uint
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.Step(n)
			n++
		}
	}
}

// Step - один тік світу
func (w *World) Step(n uint) {
	w.tickLock.Lock()
	defer w.tickLock.Unlock()

	if n%8 == 0 {
		w.subtickChunkLoad()
	}
	w.subtickUpdatePlayers()
	for _, t := range w.tickers {
		t.Tick(w)
	}
	w.tick.Add(1)
}

func (w *World) subtickChunkLoad() {
	for _, p := range w.players {
		x := floor(p.Position[0]) >> 4
		y := floor(p.Position[1]) >> 4
		z := floor(p.Position[2]) >> 4
		p.ChunkPos = [3]int32{x, y, z}
	}

LoadChunk:
	for _, loader := range w.loaders {
		loader.calcLoadingQueue()
		for _, pos := range loader.loadQueue {
			if loader.limiter != nil && !loader.limiter.Allow() {
				break
			}
			if _, ok := w.chunks[pos]; !ok {
				if !w.loadChunk(pos) {
					break LoadChunk
				}
			}
			loader.loaded[pos] = struct{}{}
			w.chunks[pos].hold()
		}
	}

	for _, loader := range w.loaders {
		loader.calcUnusedChunks()
		for _, pos := range loader.unloadQueue {
			delete(loader.loaded, pos)
			w.chunks[pos].release()
		}
	}

	var unloadQueue [][2]int32
	for pos, chunk := range w.chunks {
		if chunk.holders == 0 {
			unloadQueue = append(unloadQueue, pos)
		}
	}
	for i := range unloadQueue {
		w.unloadChunk(unloadQueue[i])
	}
}

// subtickUpdatePlayers переносить введене клієнтом у стан гравця.
// Гравців, чиї Inputs зараз пише мережа, пропускаємо до наступного тіку.
func (w *World) subtickUpdatePlayers() {
	for _, p := range w.players {
		if !p.Inputs.TryLock() {
			continue
		}
		inputs := &p.Inputs

		if vd := int32(inputs.ViewDistance); vd > 0 && vd != p.ViewDistance {
			p.ViewDistance = vd
		}
		p.control = inputs.Control
		p.Latency = inputs.Latency

		switch {
		case p.teleport != nil:
			if inputs.TeleportID == p.teleport.ID {
				p.Position = p.teleport.Position
				p.Rotation = p.teleport.Rotation
				p.teleport = nil
			}
		case p.Vehicle != 0:
			// позицію вершника задає покемон
			p.Rotation = inputs.Rotation
		default:
			w.movePlayer(p, inputs)
		}
		p.Inputs.Unlock()
		w.moveEntity(&p.Entity)
	}
}

func (w *World) movePlayer(p *Player, inputs *Inputs) {
	delta := [3]float64{
		inputs.Position[0] - p.Position[0],
		inputs.Position[1] - p.Position[1],
		inputs.Position[2] - p.Position[2],
	}
	distance := math.Sqrt(delta[0]*delta[0] + delta[1]*delta[1] + delta[2]*delta[2])
	switch {
	case !inputs.Position.IsValid():
		w.log.Info("Player move invalid",
			zap.String("player", p.Name),
			zap.Float64("x", inputs.Position[0]),
			zap.Float64("y", inputs.Position[1]),
			zap.Float64("z", inputs.Position[2]),
		)
		if p.client != nil {
			p.client.SendDisconnect(chat.TranslateMsg("multiplayer.disconnect.invalid_player_movement"))
		}
	case distance > maxMoveDistance:
		w.log.Info("Player moved too quickly", zap.String("player", p.Name), zap.Float64("distance", distance))
		if p.client != nil {
			p.teleport = &TeleportRequest{
				ID:       p.client.SendPlayerPosition(p.Position, p.Rotation),
				Position: p.Position,
				Rotation: p.Rotation,
			}
		}
	default:
		p.Position = inputs.Position
		p.Rotation = inputs.Rotation
		p.OnGround = inputs.OnGround
	}
}
