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

package client

import (
	"bytes"
	"sync/atomic"

	"go.uber.org/zap"

	"PokeCore/world/entity"
	"github.com/Tnze/go-mc/chat"
	"github.com/Tnze/go-mc/data/packetid"
	pk "github.com/Tnze/go-mc/net/packet"
)

// SendPacket кодує поля і ставить пакет у чергу на відправку.
// Помилка кодування тут означає баг у самих полях, тому Panic.
func (c *Client) SendPacket(id packetid.ClientboundPacketID, fields ...pk.FieldEncoder) {
	var buffer bytes.Buffer
	for i := range fields {
		if _, err := fields[i].WriteTo(&buffer); err != nil {
			c.log.Panic("Marshal packet error", zap.Error(err))
		}
	}
	c.queue.Push(pk.Packet{
		ID:   int32(id),
		Data: buffer.Bytes(),
	})
}

// SendDisconnect - останній пакет: після нього відправник зупиняється
func (c *Client) SendDisconnect(reason chat.Message) {
	c.log.Debug("Disconnect player", zap.String("reason", reason.ClearString()))
	c.SendPacket(packetid.ClientboundDisconnect, reason)
}

// teleportCounter - спільний для всіх клієнтів лічильник ID телепортів
var teleportCounter atomic.Int32

// SendPlayerPosition телепортує самого гравця. Повертає ID, який
// клієнт має підтвердити пакетом AcceptTeleportation.

func (c *Client) SendPlayerPosition(pos [3]float64, rot [2]float32) (teleportID int32) {
	teleportID = teleportCounter.Add(1)
	c.SendPacket(
		packetid.ClientboundPlayerPosition,
		pk.Double(pos[0]),
		pk.Double(pos[1]),
		pk.Double(pos[2]),
		pk.Float(rot[0]),
		pk.Float(rot[1]),
		pk.Byte(0), // абсолютні координати
		pk.VarInt(teleportID),
	)
	return
}

func (c *Client) SendSystemChat(msg chat.Message) {
	c.SendPacket(packetid.ClientboundSystemChat, msg, pk.Boolean(false))
}

func (c *Client) SendEntityMetadata(id int32, m entity.MetadataSet) {
	c.SendPacket(packetid.ClientboundSetEntityData, pk.VarInt(id), m)
}

// SendSetPassengers садить пасажирів на сутність vehicle.
// Порожній список - всі злізли.
func (c *Client) SendSetPassengers(vehicle int32, passengers []int32) {
	ids := make([]pk.VarInt, len(passengers))
	for i, p := range passengers {
		ids[i] = pk.VarInt(p)
	}
	c.SendPacket(packetid.ClientboundSetPassengers, pk.VarInt(vehicle), pk.Array(ids))
}

// angle переводить градуси в 1/256 оберту
func angle(deg float32) pk.Angle {
	return pk.Angle(int8(int32(deg * 256 / 360)))
}

// SendTeleportEntity - абсолютна позиція чужої сутності, наприклад покемона
// під вершником. Надсилається щотіку, поки триває їзда.
func (c *Client) SendTeleportEntity(id int32, pos [3]float64, rot [2]float32, onGround bool) {
	c.SendPacket(
		packetid.ClientboundTeleportEntity,
		pk.VarInt(id),
		pk.Double(pos[0]),
		pk.Double(pos[1]),
		pk.Double(pos[2]),
		angle(rot[0]),
		angle(rot[1]),
		pk.Boolean(onGround),
	)
}
