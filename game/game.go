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

// Пакет game збирає все докупи: світ, поведінки їзди, спавнер і гравців.
//
// Поїздки і спавн працюють як обробники тіків світу, тому всі методи
// без Request у назві можна викликати лише з потоку тіків.
package game

import (
	"compress/gzip"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"PokeCore/client"
	"PokeCore/riding"
	"PokeCore/riding/composite"
	"PokeCore/spawning"
	"PokeCore/world"
	"github.com/Tnze/go-mc/chat"
	"github.com/Tnze/go-mc/data/packetid"
	"github.com/Tnze/go-mc/save"
)

var (
	ErrNoSuchMount   = errors.New("no such mount")
	ErrMountTaken    = errors.New("mount already has a rider")
	ErrNotRideable   = errors.New("species is not rideable")
	ErrAlreadyRiding = errors.New("player is already riding")
)

type Game struct {
	log    *zap.Logger
	config Config

	behaviours *riding.Behaviours
	species    map[string]riding.Settings

	playerProvider world.PlayerProvider
	overworld      *world.World

	spawner      *spawning.AreaSpawner
	spawnLimiter *rate.Limiter
	metrics      *metrics

	rides map[int32]*ride // за id покемона

	pending struct {
		sync.Mutex
		tasks []func()
	}
}

// NewGame відкриває світ у папці config.LevelName і реєструє метрики в reg
func NewGame(log *zap.Logger, config Config, reg prometheus.Registerer) (*Game, error) {
	regionDir := filepath.Join(config.LevelName, "region")
	if err := os.MkdirAll(regionDir, 0o755); err != nil {
		return nil, fmt.Errorf("create region dir: %w", err)
	}
	worldConfig, err := readLevel(config)
	if err != nil {
		return nil, err
	}
	overworld := world.New(
		log.Named("overworld"),
		world.NewProvider(regionDir, config.ChunkLoadingLimiter.Limiter()),
		world.FlatGenerator{Surface: config.SurfaceLevel},
		worldConfig,
	)

	species, err := rideableSpecies()
	if err != nil {
		return nil, err
	}
	behaviours := riding.NewBehaviours()
	registerBehaviours(log.Named("riding"), behaviours, composite.NewStrategies())

	rng := rand.New(rand.NewSource(config.Spawning.Seed))
	spawner := spawning.NewAreaSpawner(log, "overworld", rng, spawning.DefaultCalculators(), config.Spawning.SpawnBuckets())
	for _, d := range spawnPool() {
		spawner.AddSpawn(d)
	}

	g := &Game{
		log:            log.Named("game"),
		config:         config,
		behaviours:     behaviours,
		species:        species,
		playerProvider: world.NewPlayerProvider(filepath.Join(config.LevelName, "playerdata")),
		overworld:      overworld,
		spawner:        spawner,
		spawnLimiter:   config.Spawning.PassLimiter.Limiter(),
		metrics:        newMetrics(reg),
		rides:          make(map[int32]*ride),
	}
	spawner.Selector().OnPercentageOverflow = func(t *spawning.SpawnablePositionType) {
		g.metrics.selectionAborts.WithLabelValues(t.Name).Inc()
	}
	overworld.AddTicker(world.TickerFunc(g.runTasks))
	overworld.AddTicker(world.TickerFunc(g.tickRides))
	overworld.AddTicker(world.TickerFunc(g.tickSpawns))
	return g, nil
}

// readLevel бере точку спавну з level.dat. Без файлу спавн стоїть
// на траві в центрі чанку (0, 0).
func readLevel(config Config) (world.Config, error) {
	c := world.Config{
		ViewDistance:  config.ViewDistance,
		SpawnPosition: [3]int32{8, config.SurfaceLevel + 1, 8},
	}
	f, err := os.Open(filepath.Join(config.LevelName, "level.dat"))
	if errors.Is(err, os.ErrNotExist) {
		return c, nil
	} else if err != nil {
		return c, err
	}
	defer f.Close()

	r, err := gzip.NewReader(f)
	if err != nil {
		return c, fmt.Errorf("open level.dat: %w", err)
	}
	lv, err := save.ReadLevel(r)
	if err != nil {
		return c, fmt.Errorf("read level.dat: %w", err)
	}
	c.SpawnAngle = lv.Data.SpawnAngle
	c.SpawnPosition = [3]int32{lv.Data.SpawnX, lv.Data.SpawnY, lv.Data.SpawnZ}
	return c, nil
}

func (g *Game) World() *world.World { return g.overworld }

func (g *Game) Spawner() *spawning.AreaSpawner { return g.spawner }

// Join завантажує гравця з playerdata або ставить нового на точку спавну
// і додає його у світ. Пакети клієнта після цього обробляє Serve.
func (g *Game) Join(name string, id uuid.UUID) (*client.Client, error) {
	logger := g.log.With(zap.String("name", name), zap.String("uuid", id.String()))

	p, err := g.playerProvider.GetPlayer(name, id, g.config.ViewDistance)
	if errors.Is(err, os.ErrNotExist) {
		spawn, angle := g.overworld.SpawnPositionAndAngle()
		p = world.NewPlayer(name, id, world.Position{
			float64(spawn[0]) + 0.5,
			float64(spawn[1]),
			float64(spawn[2]) + 0.5,
		}, g.config.ViewDistance)
		p.Rotation = world.Rotation{angle, 0}
	} else if err != nil {
		return nil, fmt.Errorf("read player data: %w", err)
	}

	c := client.New(logger, p)
	c.AddHandler(packetid.ServerboundInteract, g.handleInteract)
	c.AddHandler(packetid.ServerboundChatCommand, g.handleChatCommand)
	g.overworld.AddPlayer(c, p, g.config.PlayerChunkLoadingLimiter.Limiter())
	c.SendPlayerPosition(p.Position, p.Rotation)
	g.announce(chat.TranslateMsg("multiplayer.player.joined", chat.Text(p.Name)).SetColor(chat.Yellow))
	logger.Info("Player join", zap.Int32("eid", p.EntityID))
	return c, nil
}

// Leave прибирає гравця зі світу. Його поїздка закінчиться на наступному тіку.
func (g *Game) Leave(p *world.Player) {
	g.overworld.RemovePlayer(p)
	g.announce(chat.TranslateMsg("multiplayer.player.left", chat.Text(p.Name)).SetColor(chat.Yellow))
	g.log.Info("Player left", zap.String("name", p.Name))
}

// schedule відкладає f до наступного тіку
func (g *Game) schedule(f func()) {
	g.pending.Lock()
	defer g.pending.Unlock()
	g.pending.tasks = append(g.pending.tasks, f)
}

func (g *Game) runTasks(*world.World) {
	g.pending.Lock()
	tasks := g.pending.tasks
	g.pending.tasks = nil
	g.pending.Unlock()
	for _, f := range tasks {
		f()
	}
}

// RequestMount - посадка з будь-якого потоку, виконується на наступному тіку
func (g *Game) RequestMount(p *world.Player, mountID int32) {
	g.schedule(func() {
		if err := g.Mount(p, mountID); err != nil {
			g.log.Debug("Mount refused",
				zap.String("player", p.Name),
				zap.Int32("mount", mountID),
				zap.Error(err))
		}
	})
}

// RequestProbabilities - те саме для ShowProbabilities
func (g *Game) RequestProbabilities(p *world.Player) {
	g.schedule(func() { g.ShowProbabilities(p) })
}

// announce - системне повідомлення всім, на наступному тіку
func (g *Game) announce(msg chat.Message) {
	g.schedule(func() {
		g.log.Info(msg.String())
		g.broadcast(func(c world.Client) { c.SendSystemChat(msg) })
	})
}

// broadcast надсилає щось усім гравцям світу
func (g *Game) broadcast(send func(c world.Client)) {
	for _, p := range g.overworld.Players() {
		if c := p.Client(); c != nil {
			send(c)
		}
	}
}
