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

// Пакет world - світ, в якому їздять і з'являються покемони.
//
// Світ тримає завантажені чанки go-mc, гравців і покемонів-маунтів,
// і раз на тік викликає зареєстровані обробники (Ticker).
// Усі методи без блокування можна викликати лише з потоку тіків.
package world

import (
	"errors"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"PokeCore/internal/bvh"
	"github.com/Tnze/go-mc/level"
)

type World struct {
	log           *zap.Logger
	config        Config
	chunkProvider ChunkSource // звідки беруться збережені чанки
	generator     Generator   // генерує чанки, яких немає у провайдера

	chunks   map[[2]int32]*LoadedChunk
	loaders  map[*Player]*loader
	tickLock sync.Mutex
	tick     atomic.Int64

	players  map[uuid.UUID]*Player
	mounts   map[int32]*Mount
	entities entityTree // індекс усіх сутностей для пошуку сусідів

	structures map[[2]int32][]string
	tickers    []Ticker
}

type Config struct {
	ViewDistance  int32    // радіус прогрузки навколо гравця в чанках
	SpawnAngle    float32  // кут повороту при спавні
	SpawnPosition [3]int32 // координати точки спавну
}

type (
	vec3d      = bvh.Vec3[float64]
	aabb3d     = bvh.AABB[float64, vec3d]
	entityNode = bvh.Node[float64, aabb3d, *Entity]
	entityTree = bvh.Tree[float64, aabb3d, *Entity]
)

// Ticker - обробник, що викликається раз на тік під блокуванням світу
type Ticker interface {
	Tick(w *World)
}

// TickerFunc дозволяє передати функцію як Ticker
type TickerFunc func(w *World)

func (f TickerFunc) Tick(w *World) { f(w) }

// ChunkSource - сховище чанків
type ChunkSource interface {
	GetChunk(pos [2]int32) (*level.Chunk, error)
	PutChunk(pos [2]int32, c *level.Chunk) error
}

func New(logger *zap.Logger, provider ChunkSource, generator Generator, config Config) *World {
	return &World{
		log:           logger,
		config:        config,
		chunkProvider: provider,
		generator:     generator,
		chunks:        make(map[[2]int32]*LoadedChunk),
		loaders:       make(map[*Player]*loader),
		players:       make(map[uuid.UUID]*Player),
		mounts:        make(map[int32]*Mount),
		structures:    make(map[[2]int32][]string),
	}
}

func (w *World) Name() string {
	return "minecraft:overworld"
}

func (w *World) SpawnPositionAndAngle() ([3]int32, float32) {
	return w.config.SpawnPosition, w.config.SpawnAngle
}

// Tick - кількість тіків від запуску світу
func (w *World) Tick() int64 { return w.tick.Load() }

// AddTicker додає обробник у кінець черги. Викликати до Run.
func (w *World) AddTicker(t Ticker) {
	w.tickLock.Lock()
	defer w.tickLock.Unlock()
	w.tickers = append(w.tickers, t)
}

// AddStructure позначає що в чанку є структура name
func (w *World) AddStructure(chunk [2]int32, name string) {
	w.tickLock.Lock()
	defer w.tickLock.Unlock()
	w.structures[chunk] = append(w.structures[chunk], name)
}

func (w *World) AddPlayer(c Client, p *Player, limiter *rate.Limiter) {
	w.tickLock.Lock()
	defer w.tickLock.Unlock()
	p.client = c
	w.loaders[p] = newLoader(p, limiter)
	w.players[p.UUID] = p
	w.insertEntity(&p.Entity)
}

func (w *World) RemovePlayer(p *Player) {
	w.tickLock.Lock()
	defer w.tickLock.Unlock()
	l, ok := w.loaders[p]
	if !ok {
		return
	}
	w.log.Debug("Remove Player",
		zap.String("name", p.Name),
		zap.Int("loader count", len(l.loaded)),
		zap.Int("world count", len(w.chunks)),
	)
	for pos := range l.loaded {
		w.chunks[pos].release()
	}
	delete(w.loaders, p)
	delete(w.players, p.UUID)
	w.removeEntity(&p.Entity)
}

// Player шукає гравця за UUID
func (w *World) Player(id uuid.UUID) (*Player, bool) {
	p, ok := w.players[id]
	return p, ok
}

// Players повертає всіх гравців світу
func (w *World) Players() []*Player {
	players := make([]*Player, 0, len(w.players))
	for _, p := range w.players {
		players = append(players, p)
	}
	return players
}

// AddMount додає покемона у світ
func (w *World) AddMount(m *Mount) {
	m.world = w
	w.mounts[m.EntityID] = m
	w.insertEntity(&m.Entity)
}

func (w *World) RemoveMount(id int32) {
	m, ok := w.mounts[id]
	if !ok {
		return
	}
	delete(w.mounts, id)
	w.removeEntity(&m.Entity)
}

func (w *World) Mount(id int32) (*Mount, bool) {
	m, ok := w.mounts[id]
	return m, ok
}

// Mounts повертає всіх покемонів світу
func (w *World) Mounts() []*Mount {
	mounts := make([]*Mount, 0, len(w.mounts))
	for _, m := range w.mounts {
		mounts = append(mounts, m)
	}
	return mounts
}

func (w *World) MountCount() int { return len(w.mounts) }

func (w *World) loadChunk(pos [2]int32) bool {
	logger := w.log.With(zap.Int32("x", pos[0]), zap.Int32("z", pos[1]))
	logger.Debug("Loading chunk")

	c, err := w.chunkProvider.GetChunk(pos)
	if err != nil {
		switch {
		case errors.Is(err, errChunkNotExist):
			logger.Debug("Generate chunk")
			c = w.generator.Generate(pos)
		case errors.Is(err, ErrReachRateLimit):
			return false
		default:
			logger.Error("GetChunk error", zap.Error(err))
			return false
		}
	}
	if c == nil {
		logger.Error("Chunk is nil after loading")
		return false
	}
	logger.Debug("Loaded chunk",
		zap.Int("sections", len(c.Sections)),
		zap.String("status", string(c.Status)))

	w.chunks[pos] = &LoadedChunk{Chunk: c}
	return true
}

func (w *World) unloadChunk(pos [2]int32) {
	logger := w.log.With(zap.Int32("x", pos[0]), zap.Int32("z", pos[1]))
	logger.Debug("Unloading chunk")
	c, ok := w.chunks[pos]
	if !ok {
		logger.Panic("Unloading an non-exist chunk")
	}
	if err := w.chunkProvider.PutChunk(pos, c.Chunk); err != nil {
		logger.Error("Store chunk data error", zap.Error(err))
	}
	delete(w.chunks, pos)
}

// LoadedChunk - чанк у пам'яті і кількість завантажувачів, яким він потрібен
type LoadedChunk struct {
	holders int
	*level.Chunk
}

func (lc *LoadedChunk) hold() { lc.holders++ }

func (lc *LoadedChunk) release() {
	if lc.holders == 0 {
		panic("release a chunk with no holders")
	}
	lc.holders--
}
