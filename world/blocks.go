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
	"github.com/go-gl/mathgl/mgl64"

	"PokeCore/internal/bvh"
	"PokeCore/spawning"
	"github.com/Tnze/go-mc/level/block"
)

const (
	maxY     = MinY + sections*16 - 1
	voidAir  = "minecraft:void_air"
	maxLight = 15
)

var _ spawning.World = (*World)(nil)

// chunkAt - завантажений чанк з блоком pos і локальні координати в ньому
func (w *World) chunkAt(pos spawning.BlockPos) (lc *LoadedChunk, x, z int32, ok bool) {
	if pos.Y() < MinY || pos.Y() > maxY {
		return nil, 0, 0, false
	}
	lc, ok = w.chunks[pos.Chunk()]
	return lc, pos.X() & 15, pos.Z() & 15, ok
}

// BlockName повертає ім'я блоку. Поза завантаженими чанками - void_air.
func (w *World) BlockName(pos spawning.BlockPos) string {
	lc, x, z, ok := w.chunkAt(pos)
	if !ok {
		return voidAir
	}
	sec, i := sectionIndex(x, pos.Y(), z)
	state := lc.Sections[sec].GetBlock(i)
	if int(state) >= len(block.StateList) {
		return voidAir
	}
	return block.StateList[state].ID()
}

// SetBlock змінює блок у завантаженому чанку
func (w *World) SetBlock(pos spawning.BlockPos, name string) bool {
	lc, x, z, ok := w.chunkAt(pos)
	if !ok {
		return false
	}
	setBlock(lc.Chunk, x, pos.Y(), z, stateOf(name))
	return true
}

// nibble читає 4-бітне значення світла
func nibble(data []byte, i int) (int, bool) {
	if len(data) <= i/2 {
		return 0, false
	}
	return int(data[i/2]>>((i&1)*4)) & 0xF, true
}

func (w *World) BlockLight(pos spawning.BlockPos) int {
	lc, x, z, ok := w.chunkAt(pos)
	if !ok {
		return 0
	}
	sec, i := sectionIndex(x, pos.Y(), z)
	l, _ := nibble(lc.Sections[sec].BlockLight, i)
	return l
}

// SkyLight бере збережене світло неба, а якщо його немає -
// 15 для блоків під відкритим небом і 0 для решти
func (w *World) SkyLight(pos spawning.BlockPos) int {
	if lc, x, z, ok := w.chunkAt(pos); ok {
		sec, i := sectionIndex(x, pos.Y(), z)
		if l, ok := nibble(lc.Sections[sec].SkyLight, i); ok {
			return l
		}
	}
	if w.CanSeeSky(pos) {
		return maxLight
	}
	return 0
}

// CanSeeSky - над блоком тільки повітря
func (w *World) CanSeeSky(pos spawning.BlockPos) bool {
	for y := pos.Y() + 1; y <= maxY; y++ {
		if !spawning.AirBlocks.Has(w.BlockName(spawning.BlockPos{pos.X(), y, pos.Z()})) {
			return false
		}
	}
	return true
}

func (w *World) StructuresAt(chunk [2]int32) []string { return w.structures[chunk] }

// EntitiesNear - позиції сутностей не далі r по кожній осі від center
func (w *World) EntitiesNear(center mgl64.Vec3, r float64) []mgl64.Vec3 {
	var out []mgl64.Vec3
	w.entities.Find(bvh.TouchBound(bvh.Around(vec3d(center), r)), func(n *entityNode) bool {
		out = append(out, mgl64.Vec3(n.Value.Position))
		return true
	})
	return out
}

// BlockAt - блок, в якому знаходиться точка
func BlockAt(p mgl64.Vec3) spawning.BlockPos {
	return spawning.BlockPos{floor(p[0]), floor(p[1]), floor(p[2])}
}
