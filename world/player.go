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
	"io"
	"sync"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"

	"PokeCore/riding"
	pk "github.com/Tnze/go-mc/net/packet"
)

func (i *ClientInfo) ReadFrom(r io.Reader) (n int64, err error) {
	return pk.Tuple{
		(*pk.String)(&i.Locale),
		(*pk.Byte)(&i.ViewDistance),
		(*pk.VarInt)(&i.ChatMode),
		(*pk.Boolean)(&i.ChatColors),
		(*pk.UnsignedByte)(&i.DisplayedSkinParts),
		(*pk.VarInt)(&i.MainHand),
		(*pk.Boolean)(&i.EnableTextFiltering),
		(*pk.Boolean)(&i.AllowServerListings),
	}.ReadFrom(r)
}

type Player struct {
	Entity
	Name    string
	Latency time.Duration

	ChunkPos     [3]int32 // позиція в координатах чанків
	ViewDistance int32    // радіус прогрузки в чанках
	Gamemode     int32

	// Vehicle - id покемона, на якому сидить гравець, 0 - ні на кому
	Vehicle  int32
	teleport *TeleportRequest
	client   Client
	control  Control // знімок керування на цей тік

	Inputs Inputs // те, що прийшло від клієнта між тіками
}

var _ riding.Driver = (*Player)(nil)

func NewPlayer(name string, id uuid.UUID, pos Position, viewDistance int32) *Player {
	return &Player{
		Entity: Entity{
			EntityID: NewEntityID(),
			UUID:     id,
			Position: pos,
		},
		Name: name,
		ChunkPos: [3]int32{
			floor(pos[0]) >> 4,
			floor(pos[1]) >> 4,
			floor(pos[2]) >> 4,
		},
		ViewDistance: viewDistance,
		Inputs:       Inputs{Position: pos, ClientInfo: ClientInfo{ViewDistance: int8(viewDistance)}},
	}
}

func (p *Player) chunkPosition() [2]int32 { return [2]int32{p.ChunkPos[0], p.ChunkPos[2]} }

func (p *Player) chunkRadius() int32 { return p.ViewDistance }

func (p *Player) Client() Client { return p.client }

func (p *Player) Sprinting() bool { return p.control.Sprint }
func (p *Player) Jumping() bool   { return p.control.Jump }
func (p *Player) Sneaking() bool  { return p.control.Sneak }

// JumpStrength - заряд стрибка на цей тік
func (p *Player) JumpStrength() int { return int(p.control.JumpStrength) }

// LookAngles - yaw і pitch голови гравця
func (p *Player) LookAngles() mgl64.Vec2 {
	return mgl64.Vec2{float64(p.Rotation[0]), float64(p.Rotation[1])}
}

// MoveInput - керування у локальних координатах: X вбік, Y вгору, Z вперед
func (p *Player) MoveInput() mgl64.Vec3 {
	var up float64
	if p.control.Jump {
		up = 1
	}
	return mgl64.Vec3{float64(p.control.Sideways), up, float64(p.control.Forward)}
}

type TeleportRequest struct {
	ID int32
	Position
	Rotation
}

// Control - керування транспортом від клієнта
type Control struct {
	Sideways float32 // ліворуч додатнє
	Forward  float32
	Jump     bool
	Sneak    bool
	Sprint   bool
	// JumpStrength - заряд стрибка від 0 до 100, поки клієнт тримає пробіл
	JumpStrength int32
}

type Inputs struct {
	sync.Mutex
	ClientInfo
	Position
	Rotation
	OnGround
	Control
	Latency    time.Duration
	TeleportID int32
}

type ClientInfo struct {
	Locale              string
	ViewDistance        int8
	ChatMode            int32
	ChatColors          bool
	DisplayedSkinParts  byte
	MainHand            int32 // 0 - ліва, 1 - права
	EnableTextFiltering bool
	AllowServerListings bool
}
