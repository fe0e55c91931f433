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
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
	"golang.org/x/time/rate"

	"PokeCore/spawning"
)

// Config - налаштування сервера з config.toml
type Config struct {
	// Папка світу: region/ з чанками і playerdata/ з гравцями
	LevelName string `toml:"level-name"`

	// Радіус прогрузки навколо гравця в чанках
	ViewDistance int32 `toml:"view-distance"`

	// Висота трави в чанках, яких немає на диску
	SurfaceLevel int32 `toml:"surface-level"`

	// Адреса HTTP ендпоінта /metrics, порожня - метрики не віддаються
	MetricsAddress string `toml:"metrics-address"`

	ChunkLoadingLimiter       Limiter `toml:"chunk-loading-limiter"`
	PlayerChunkLoadingLimiter Limiter `toml:"player-chunk-loading-limiter"`

	Spawning SpawnConfig  `toml:"spawning"`
	Riding   RidingConfig `toml:"riding"`
}

// SpawnConfig - проходи спавну навколо гравців
type SpawnConfig struct {
	// Сторона зони по X і Z у блоках, гравець у центрі
	ZoneSize   int32 `toml:"zone-size"`
	ZoneHeight int32 `toml:"zone-height"`
	// Ближче до сутностей покемони не з'являються
	MinEntityDistance float64 `toml:"min-entity-distance"`
	// Тіків між проходами
	PassInterval int64 `toml:"pass-interval"`
	// Більше покемонів у світі не буде
	MaxMounts int   `toml:"max-mounts"`
	Seed      int64 `toml:"seed"`
	// Ваги відер за назвою, порожньо - стандартні
	Buckets     map[string]float64 `toml:"buckets"`
	PassLimiter Limiter            `toml:"pass-limiter"`
}

type RidingConfig struct {
	// Стан поїздки надсилається не частіше ніж раз на SyncInterval тіків
	SyncInterval int64 `toml:"sync-interval"`
	// Звичайна гравітація за тік, поведінка може її змінити
	Gravity float64 `toml:"gravity"`
}

// DefaultConfig - значення для ключів, яких немає у файлі
func DefaultConfig() Config {
	return Config{
		LevelName:                 "world",
		ViewDistance:              10,
		SurfaceLevel:              64,
		ChunkLoadingLimiter:       Limiter{Every: duration{50 * time.Millisecond}, N: 100},
		PlayerChunkLoadingLimiter: Limiter{Every: duration{50 * time.Millisecond}, N: 25},
		Spawning: SpawnConfig{
			ZoneSize:          48,
			ZoneHeight:        24,
			MinEntityDistance: 8,
			PassInterval:      20,
			MaxMounts:         64,
			Seed:              1,
			PassLimiter:       Limiter{Every: duration{time.Second}, N: 4},
		},
		Riding: RidingConfig{
			SyncInterval: 2,
			Gravity:      0.08,
		},
	}
}

// ReadConfig читає TOML поверх DefaultConfig.
// Невідомі ключі - помилка errUnknownConfig.
func ReadConfig(path string) (Config, error) {
	c := DefaultConfig()
	meta, err := toml.DecodeFile(path, &c)
	if err != nil {
		return Config{}, err
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		var err errUnknownConfig
		for _, key := range undecoded {
			err = append(err, key.String())
		}
		return Config{}, err
	}
	return c, nil
}

type errUnknownConfig []string

func (e errUnknownConfig) Error() string {
	return "unknown config keys: [" + strings.Join(e, ", ") + "]"
}

// SpawnBuckets - відра з конфігу. Стандартні зберігають свій порядок,
// нові йдуть після них за абеткою.
func (s *SpawnConfig) SpawnBuckets() []spawning.SpawnBucket {
	if len(s.Buckets) == 0 {
		return spawning.DefaultBuckets()
	}
	var buckets []spawning.SpawnBucket
	seen := make(map[string]bool, len(s.Buckets))
	for _, b := range spawning.DefaultBuckets() {
		if w, ok := s.Buckets[b.Name]; ok {
			buckets = append(buckets, spawning.SpawnBucket{Name: b.Name, Weight: w})
			seen[b.Name] = true
		}
	}
	names := maps.Keys(s.Buckets)
	slices.Sort(names)
	for _, name := range names {
		if !seen[name] {
			buckets = append(buckets, spawning.SpawnBucket{Name: name, Weight: s.Buckets[name]})
		}
	}
	return buckets
}

// Limiter - не більше N дій за Every
type Limiter struct {
	Every duration `toml:"every"`
	N     int      `toml:"n"`
}

func (l *Limiter) Limiter() *rate.Limiter {
	return rate.NewLimiter(rate.Every(l.Every.Duration), l.N)
}

// duration читається з рядка на кшталт "5s"
type duration struct {
	time.Duration
}

func (d *duration) UnmarshalText(text []byte) (err error) {
	d.Duration, err = time.ParseDuration(string(text))
	return
}
