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

// Tag групує блоки за ознакою, наприклад усі види повітря.
// Калькулятори позицій дивляться лише на теги, а не на конкретні блоки.
type Tag struct {
	Name   string
	Values map[string]struct{}
}

func NewTag(name string, blocks ...string) Tag {
	t := Tag{Name: name, Values: make(map[string]struct{}, len(blocks))}
	for _, b := range blocks {
		t.Values[b] = struct{}{}
	}
	return t
}

// Has перевіряє чи блок входить у тег
func (t Tag) Has(block string) bool {
	_, ok := t.Values[block]
	return ok
}

var (
	AirBlocks   = NewTag("pokecore:air", "minecraft:air", "minecraft:cave_air", "minecraft:void_air")
	WaterBlocks = NewTag("pokecore:water", "minecraft:water", "minecraft:bubble_column")
	LavaBlocks  = NewTag("pokecore:lava", "minecraft:lava")
	// Passable - блоки, крізь які можна стояти: трава, квіти, сніг
	Passable = NewTag("pokecore:passable",
		"minecraft:short_grass", "minecraft:grass", "minecraft:tall_grass", "minecraft:fern",
		"minecraft:dandelion", "minecraft:poppy", "minecraft:snow", "minecraft:dead_bush",
	)
)

// IsOpen - повітря або прохідний блок
func IsOpen(block string) bool { return AirBlocks.Has(block) || Passable.Has(block) }

// IsFluid - вода або лава
func IsFluid(block string) bool { return WaterBlocks.Has(block) || LavaBlocks.Has(block) }

// IsSolid - на блоці можна стояти
func IsSolid(block string) bool { return !IsOpen(block) && !IsFluid(block) }
