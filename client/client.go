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

// Пакет client - пакети одного гравця: керування маунтом від клієнта
// і синхронізація поїздки назад до нього.
package client

import (
	"fmt"

	"go.uber.org/zap"

	"PokeCore/world"
	"github.com/Tnze/go-mc/data/packetid"
	pk "github.com/Tnze/go-mc/net/packet"
	"github.com/Tnze/go-mc/net/queue"
	"github.com/Tnze/go-mc/server"
)

// Conn - транспорт пакетів, наприклад *net.Conn з go-mc
type Conn interface {
	ReadPacket(p *pk.Packet) error
	WritePacket(p pk.Packet) error
}

type Client struct {
	log      *zap.Logger
	player   *world.Player
	queue    server.PacketQueue
	handlers []PacketHandler
	*world.Inputs
}

var _ world.Client = (*Client)(nil)

type PacketHandler func(p pk.Packet, c *Client) error

// queueSize - скільки вихідних пакетів чекає на відправку
const queueSize = 256

func New(log *zap.Logger, player *world.Player) *Client {
	return &Client{
		log:      log.Named("client").With(zap.String("player", player.Name)),
		player:   player,
		queue:    queue.NewChannelQueue[pk.Packet](queueSize),
		handlers: append([]PacketHandler(nil), defaultHandlers[:]...),
		Inputs:   &player.Inputs,
	}
}

// Serve читає і пише пакети, поки одна зі сторін не зупиниться
func (c *Client) Serve(conn Conn) {
	stopped := make(chan struct{}, 2)
	done := func() {
		stopped <- struct{}{}
	}
	go c.startSend(conn, done)
	go c.startReceive(conn, done)
	<-stopped
	c.queue.Close()
}

func (c *Client) startSend(conn Conn, done func()) {
	defer done()
	for {
		p, ok := c.queue.Pull()
		if !ok {
			return
		}
		if err := conn.WritePacket(p); err != nil {
			c.log.Debug("Send packet fail", zap.Error(err))
			return
		}
		if packetid.ClientboundPacketID(p.ID) == packetid.ClientboundDisconnect {
			return
		}
	}
}

func (c *Client) startReceive(conn Conn, done func()) {
	defer done()
	var packet pk.Packet
	for {
		if err := conn.ReadPacket(&packet); err != nil {
			c.log.Debug("Receive packet fail", zap.Error(err))
			return
		}
		if err := c.Handle(packet); err != nil {
			c.log.Error("Handle packet error", zap.Int32("id", packet.ID), zap.Error(err))
			return
		}
	}
}

// Handle розбирає один вхідний пакет. Пакети без обробника пропускаються.
func (c *Client) Handle(packet pk.Packet) error {
	if packet.ID < 0 || packet.ID >= int32(len(c.handlers)) {
		return fmt.Errorf("invalid packet id %#x", packet.ID)
	}
	if handler := c.handlers[packet.ID]; handler != nil {
		return handler(packet, c)
	}
	return nil
}

// Pull забирає наступний вихідний пакет, якщо транспорт крутить його сам
func (c *Client) Pull() (pk.Packet, bool) { return c.queue.Pull() }

func (c *Client) AddHandler(id packetid.ServerboundPacketID, handler PacketHandler) {
	c.handlers[id] = handler
}

func (c *Client) GetPlayer() *world.Player { return c.player }

var defaultHandlers = [packetid.ServerboundPacketIDGuard]PacketHandler{
	packetid.ServerboundAcceptTeleportation:  clientAcceptTeleportation,
	packetid.ServerboundClientInformation:    clientInformation,
	packetid.ServerboundMovePlayerPos:        clientMovePlayerPos,
	packetid.ServerboundMovePlayerPosRot:     clientMovePlayerPosRot,
	packetid.ServerboundMovePlayerRot:        clientMovePlayerRot,
	packetid.ServerboundMovePlayerStatusOnly: clientMovePlayerStatusOnly,
	packetid.ServerboundPlayerInput:          clientPlayerInput,
	packetid.ServerboundPlayerCommand:        clientPlayerCommand,
}
