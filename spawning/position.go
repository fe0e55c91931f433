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

// Пакет spawning шукає місця для появи покемонів і обирає, хто і де з'явиться.
//
// Прохід спавну: зона навколо гравця -> резолвер сканує блоки і будує
// кандидатів (SpawnablePosition) -> селектор групує їх за типом і
// двічі робить зважений вибір: спершу запис спавну, потім позицію.
package spawning

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
)

// BlockPos - координати блоку. Це значення, а не вказівник,
// тому кандидат ніколи не ділить позицію з курсором сканування.
type BlockPos [3]int32

func (p BlockPos) X() int32 { return p[0] }
func (p BlockPos) Y() int32 { return p[1] }
func (p BlockPos) Z() int32 { return p[2] }

func (p BlockPos) Offset(dx, dy, dz int32) BlockPos {
	return BlockPos{p[0] + dx, p[1] + dy, p[2] + dz}
}

// Center - центр блоку у світових координатах
func (p BlockPos) Center() mgl64.Vec3 {
	return mgl64.Vec3{float64(p[0]) + 0.5, float64(p[1]) + 0.5, float64(p[2]) + 0.5}
}

// Chunk - координати чанку, в якому лежить блок
func (p BlockPos) Chunk() [2]int32 { return [2]int32{p[0] >> 4, p[2] >> 4} }

func (p BlockPos) String() string { return fmt.Sprintf("(%d, %d, %d)", p[0], p[1], p[2]) }

// World - те, що спавну потрібно від світу
type World interface {
	// BlockName повертає ідентифікатор блоку, наприклад "minecraft:stone".
	// За межами завантаженого світу - "minecraft:void_air".
	BlockName(pos BlockPos) string
	BlockLight(pos BlockPos) int
	SkyLight(pos BlockPos) int
	CanSeeSky(pos BlockPos) bool
	// Tick - поточний час світу
	Tick() int64
	StructureLookup
}

// StructureLookup - структури (села, руїни), що зачіпають чанк
type StructureLookup interface {
	StructuresAt(chunk [2]int32) []string
}

// StructureCache лінива обгортка над StructureLookup.
// Одна на зону при спавні по площі, нова на кожен точковий спавн.
type StructureCache struct {
	lookup StructureLookup
	chunks map[[2]int32][]string
}

func NewStructureCache(lookup StructureLookup) *StructureCache {
	return &StructureCache{lookup: lookup, chunks: make(map[[2]int32][]string)}
}

// At повертає структури чанку, до якого належить pos
func (c *StructureCache) At(pos BlockPos) []string {
	chunk := pos.Chunk()
	if s, ok := c.chunks[chunk]; ok {
		return s
	}
	s := c.lookup.StructuresAt(chunk)
	c.chunks[chunk] = s
	return s
}

// Has перевіряє чи pos лежить у чанку зі структурою name
func (c *StructureCache) Has(pos BlockPos, name string) bool {
	for _, s := range c.At(pos) {
		if s == name {
			return true
		}
	}
	return false
}

// SpawnablePositionType - тип місця появи. Вага типу множиться на кількість
// знайдених позицій цього типу при виборі групи.
type SpawnablePositionType struct {
	Name   string
	Weight float64
}

var (
	Grounded  = &SpawnablePositionType{Name: "grounded", Weight: 1}
	Seafloor  = &SpawnablePositionType{Name: "seafloor", Weight: 1}
	Surface   = &SpawnablePositionType{Name: "surface", Weight: 1}
	Lavafloor = &SpawnablePositionType{Name: "lavafloor", Weight: 0.5}
)

// SpawnCause - хто і чому запустив спавн
type SpawnCause struct {
	Spawner Spawner
	// Player - гравець, навколо якого будувалась зона
	Player uuid.UUID
}

// SpawnablePosition - кандидат на спавн. Живе один прохід.
type SpawnablePosition interface {
	Type() *SpawnablePositionType
	Base() *BaseSpawnablePosition
}

// BaseSpawnablePosition - спільні поля всіх кандидатів
type BaseSpawnablePosition struct {
	Cause SpawnCause
	World World
	// Position - блок, який знайшов калькулятор (підлога або поверхня рідини)
	Position  BlockPos
	Light     int
	SkyLight  int
	CanSeeSky bool

	Influences []Influence
	// WeightMultiplier змінюють впливи, множиться на вагу кожного запису
	WeightMultiplier float64
	Structures       *StructureCache
}

func (b *BaseSpawnablePosition) Base() *BaseSpawnablePosition { return b }

// SpawnPoint - блок над знайденою позицією, саме там з'являється покемон
func (b *BaseSpawnablePosition) SpawnPoint() BlockPos { return b.Position.Offset(0, 1, 0) }

// InStructure перевіряє чи кандидат всередині чанку зі структурою
func (b *BaseSpawnablePosition) InStructure(name string) bool {
	return b.Structures != nil && b.Structures.Has(b.Position, name)
}

// GroundedSpawnablePosition - тверда підлога з повітрям зверху
type GroundedSpawnablePosition struct {
	BaseSpawnablePosition
	Floor string
	// Height - скільки вільних блоків над підлогою
	Height int
	// NearbyBlocks - різні блоки навколо підлоги
	NearbyBlocks []string
}

func (*GroundedSpawnablePosition) Type() *SpawnablePositionType { return Grounded }

// SeafloorSpawnablePosition - дно під водою
type SeafloorSpawnablePosition struct {
	BaseSpawnablePosition
	Floor string
	Fluid string
	// Depth - товща води над дном
	Depth int
}

func (*SeafloorSpawnablePosition) Type() *SpawnablePositionType { return Seafloor }

// SurfaceSpawnablePosition - поверхня рідини з повітрям зверху
type SurfaceSpawnablePosition struct {
	BaseSpawnablePosition
	Fluid string
	// Depth - товща рідини під поверхнею
	Depth int
}

func (*SurfaceSpawnablePosition) Type() *SpawnablePositionType { return Surface }

// LavafloorSpawnablePosition - дно під лавою
type LavafloorSpawnablePosition struct {
	BaseSpawnablePosition
	Floor string
	Depth int
}

func (*LavafloorSpawnablePosition) Type() *SpawnablePositionType { return Lavafloor }
