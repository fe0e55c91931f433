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
	"github.com/Tnze/go-mc/level"
	"github.com/Tnze/go-mc/level/block"
)

// Generator створює чанк, якого ще немає у сховищі
type Generator interface {
	Generate(pos [2]int32) *level.Chunk
}

const (
	// MinY - найнижчий блок світу
	MinY     = -64
	sections = 24 // 384 блоки по висоті
)

// FlatGenerator - плаский світ: камінь, три шари землі і трава на
// висоті Surface. У кожному чанку є ставок і яма з лавою, щоб
// для спавну були всі види позицій.
type FlatGenerator struct {
	Surface int32
}

func (g FlatGenerator) Generate(pos [2]int32) *level.Chunk {
	c := level.EmptyChunk(sections)
	var (
		stone = stateOf("minecraft:stone")
		dirt  = stateOf("minecraft:dirt")
		grass = stateOf("minecraft:grass_block")
		water = stateOf("minecraft:water")
		lava  = stateOf("minecraft:lava")
	)
	for x := int32(0); x < 16; x++ {
		for z := int32(0); z < 16; z++ {
			for y := int32(MinY); y <= g.Surface; y++ {
				state := stone
				switch {
				case y == g.Surface:
					state = grass
				case y > g.Surface-4:
					state = dirt
				}
				switch {
				case inPond(x, z) && y > g.Surface-2:
					state = water
				case inLavaPit(x, z) && y == g.Surface:
					state = lava
				}
				setBlock(c, x, y, z, state)
			}
		}
	}
	// світла не зберігаємо, SkyLight рахує його з блоків
	for i := range c.Sections {
		c.Sections[i].SkyLight = nil
		c.Sections[i].BlockLight = nil
	}
	c.Status = level.StatusFull
	return c
}

// ставок 4x4 глибиною 2
func inPond(x, z int32) bool { return x >= 2 && x < 6 && z >= 2 && z < 6 }

// яма з лавою 3x3 глибиною 1
func inLavaPit(x, z int32) bool { return x >= 10 && x < 13 && z >= 10 && z < 13 }

var stateCache = make(map[string]block.StateID)

// stateOf повертає перший стан блоку з іменем name.
// Для рідин це джерело, для решти - стан за замовчуванням.
func stateOf(name string) block.StateID {
	if s, ok := stateCache[name]; ok {
		return s
	}
	for id, b := range block.StateList {
		if b.ID() == name {
			stateCache[name] = block.StateID(id)
			return block.StateID(id)
		}
	}
	panic("unknown block: " + name)
}

// sectionIndex - номер секції і індекс блоку в ній для локальних координат
func sectionIndex(x, y, z int32) (sec, i int) {
	sec = int((y - MinY) >> 4)
	i = int((y&15)<<8 | (z&15)<<4 | x&15)
	return
}

func setBlock(c *level.Chunk, x, y, z int32, state block.StateID) {
	sec, i := sectionIndex(x, y, z)
	c.Sections[sec].SetBlock(i, state)
}
