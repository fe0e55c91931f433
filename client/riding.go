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
	"fmt"

	"go.uber.org/zap"

	"PokeCore/riding"
	"github.com/Tnze/go-mc/data/packetid"
	pk "github.com/Tnze/go-mc/net/packet"
)

// RidingStateChannel - канал custom payload зі станом поїздки
const RidingStateChannel = "pokecore:riding_state"

// прапорці пакета PlayerInput
const (
	inputJump    = 0x01
	inputUnmount = 0x02
)

// дії пакета PlayerCommand
const (
	commandStartSneaking = iota
	commandStopSneaking
	commandLeaveBed
	commandStartSprinting
	commandStopSprinting
	commandStartRidingJump
	commandStopRidingJump
)

// clientPlayerInput - керування транспортом: вбік, вперед, стрибок, злізти
func clientPlayerInput(p pk.Packet, c *Client) error {
	var (
		Sideways, Forward pk.Float
		Flags             pk.UnsignedByte
	)
	if err := p.Scan(&Sideways, &Forward, &Flags); err != nil {
		return err
	}
	c.Inputs.Lock()
	c.Inputs.Control.Sideways = float32(Sideways)
	c.Inputs.Control.Forward = float32(Forward)
	c.Inputs.Control.Jump = Flags&inputJump != 0
	c.Inputs.Control.Sneak = Flags&inputUnmount != 0
	c.Inputs.Unlock()
	return nil
}

func clientPlayerCommand(p pk.Packet, c *Client) error {
	var EntityID, Action, JumpBoost pk.VarInt
	if err := p.Scan(&EntityID, &Action, &JumpBoost); err != nil {
		return err
	}
	c.Inputs.Lock()
	defer c.Inputs.Unlock()
	switch Action {
	case commandStartSneaking:
		c.Inputs.Control.Sneak = true
	case commandStopSneaking:
		c.Inputs.Control.Sneak = false
	case commandStartSprinting:
		c.Inputs.Control.Sprint = true
	case commandStopSprinting:
		c.Inputs.Control.Sprint = false
	case commandStartRidingJump:
		c.Inputs.Control.JumpStrength = max(0, min(int32(JumpBoost), 100))
	case commandStopRidingJump:
		c.Inputs.Control.JumpStrength = 0
	default:
		c.log.Debug("Ignore player command", zap.Int32("action", int32(Action)))
	}
	return nil
}

// SendRidingState надсилає стан поїздки покемона id.
// Формат: канал, id сутності (VarInt), далі сам стан.
func (c *Client) SendRidingState(id int32, st riding.State) error {
	var buf bytes.Buffer
	if _, err := (pk.Tuple{pk.Identifier(RidingStateChannel), pk.VarInt(id)}).WriteTo(&buf); err != nil {
		return err
	}
	if err := st.Encode(&buf); err != nil {
		return fmt.Errorf("encode riding state: %w", err)
	}
	c.queue.Push(pk.Packet{
		ID:   int32(packetid.ClientboundCustomPayload),
		Data: buf.Bytes(),
	})
	return nil
}
