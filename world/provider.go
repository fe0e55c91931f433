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
	"compress/gzip"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/Tnze/go-mc/level"
	"github.com/Tnze/go-mc/save"
	"github.com/Tnze/go-mc/save/region"
)

// ChunkProvider читає і пише чанки у файли регіонів r.X.Z.mca
type ChunkProvider struct {
	dir     string
	limiter *rate.Limiter
}

// NewProvider - провайдер над текою region/ світу.
// limiter обмежує читання з диска; nil - без обмежень.
func NewProvider(dir string, limiter *rate.Limiter) *ChunkProvider {
	return &ChunkProvider{dir: dir, limiter: limiter}
}

var (
	// ErrReachRateLimit - не помилка диска: чанк спробують ще раз наступного тіку
	ErrReachRateLimit = errors.New("reach rate limit")
	errChunkNotExist  = errors.New("chunk not exist")
)

// compressZlib - тип стиснення сектора регіону
const compressZlib = 2

// GetChunk читає чанк з регіону. Якщо його там ще немає - errChunkNotExist,
// і світ згенерує новий.
func (p *ChunkProvider) GetChunk(pos [2]int32) (c *level.Chunk, errRet error) {
	if p.limiter != nil && !p.limiter.Allow() {
		return nil, ErrReachRateLimit
	}
	r, err := p.getRegion(region.At(int(pos[0]), int(pos[1])))
	if err != nil {
		return nil, fmt.Errorf("open region fail: %w", err)
	}
	defer func(r *region.Region) {
		err2 := r.Close()
		if errRet == nil && err2 != nil {
			errRet = fmt.Errorf("close region fail: %w", err2)
		}
	}(r)

	x, z := region.In(int(pos[0]), int(pos[1]))
	if !r.ExistSector(x, z) {
		return nil, errChunkNotExist
	}
	data, err := r.ReadSector(x, z)
	if err != nil {
		return nil, fmt.Errorf("read sector fail: %w", err)
	}
	var chunk save.Chunk
	if err := chunk.Load(data); err != nil {
		return nil, fmt.Errorf("parse chunk data fail: %w", err)
	}
	c, err = level.ChunkFromSave(&chunk)
	if err != nil {
		return nil, fmt.Errorf("load chunk data fail: %w", err)
	}
	return c, nil
}

// getRegion відкриває файл регіону, створюючи порожній за потреби
func (p *ChunkProvider) getRegion(rx, rz int) (*region.Region, error) {
	path := filepath.Join(p.dir, fmt.Sprintf("r.%d.%d.mca", rx, rz))
	r, err := region.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		r, err = region.Create(path)
	}
	return r, err
}

// PutChunk зберігає чанк, коли його вивантажують
func (p *ChunkProvider) PutChunk(pos [2]int32, c *level.Chunk) (errRet error) {
	data, err := EncodeChunk(pos, c)
	if err != nil {
		return err
	}
	r, err := p.getRegion(region.At(int(pos[0]), int(pos[1])))
	if err != nil {
		return fmt.Errorf("open region fail: %w", err)
	}
	defer func(r *region.Region) {
		err2 := r.Close()
		if errRet == nil && err2 != nil {
			errRet = fmt.Errorf("close region fail: %w", err2)
		}
	}(r)

	x, z := region.In(int(pos[0]), int(pos[1]))
	if err := r.WriteSector(x, z, data); err != nil {
		return fmt.Errorf("write sector fail: %w", err)
	}
	return nil
}

// EncodeChunk готує чанк до запису в сектор регіону
func EncodeChunk(pos [2]int32, c *level.Chunk) ([]byte, error) {
	var chunk save.Chunk
	if err := level.ChunkToSave(c, &chunk); err != nil {
		return nil, fmt.Errorf("convert chunk fail: %w", err)
	}
	chunk.XPos, chunk.ZPos = pos[0], pos[1]
	data, err := chunk.Data(compressZlib)
	if err != nil {
		return nil, fmt.Errorf("encode chunk data fail: %w", err)
	}
	return data, nil
}

// PlayerProvider читає збережених гравців з playerdata/<uuid>.dat
type PlayerProvider struct {
	dir string
}

func NewPlayerProvider(dir string) PlayerProvider {
	return PlayerProvider{dir: dir}
}

func (p *PlayerProvider) GetPlayer(name string, id uuid.UUID, viewDistance int32) (player *Player, errRet error) {
	f, err := os.Open(filepath.Join(p.dir, id.String()+".dat"))
	if err != nil {
		return nil, err
	}
	defer func(f *os.File) {
		err2 := f.Close()
		if errRet == nil && err2 != nil {
			errRet = fmt.Errorf("close player data fail: %w", err2)
		}
	}(f)

	r, err := gzip.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("open gzip reader fail: %w", err)
	}
	data, err := save.ReadPlayerData(r)
	if err != nil {
		return nil, fmt.Errorf("read player data fail: %w", err)
	}
	if err := r.Close(); err != nil {
		return nil, fmt.Errorf("close gzip reader fail: %w", err)
	}

	player = NewPlayer(name, id, data.Pos, viewDistance)
	player.Rotation = data.Rotation
	player.Gamemode = data.PlayerGameType
	return player, nil
}
