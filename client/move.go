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

	"PokeCore/world"
	pk "github.com/Tnze/go-mc/net/packet"
)

// clientAcceptTeleportation - клієнт підтверджує телепорт від сервера.
// Поки ID не збігається з останнім надісланим, тік світу ігнорує
// позицію з клієнта, інакше гравця відкине на старе місце.
func clientAcceptTeleportation(p pk.Packet, c *Client) error {
	var TeleportID pk.VarInt
	if _, err := TeleportID.ReadFrom(bytes.NewReader(p.Data)); err != nil {
		return err
	}
	// Inputs читає горутина тіку, тому лише під замком
	c.Inputs.Lock()
	c.Inputs.TeleportID = int32(TeleportID)
	c.Inputs.Unlock()
	return nil
}

// clientMovePlayerPos - рух без повороту.
// Під час їзди позицію рахує сервер, а ця лише запам'ятовується до злізання.
func clientMovePlayerPos(p pk.Packet, c *Client) error {
	var X, FeetY, Z pk.Double
	var OnGround pk.Boolean
	if err := p.Scan(&X, &FeetY, &Z, &OnGround); err != nil {
		return err
	}
	c.Inputs.Lock()
	c.Inputs.Position = [3]float64{float64(X), float64(FeetY), float64(Z)}
	c.Inputs.OnGround = world.OnGround(OnGround)
	c.Inputs.Unlock()
	return nil
}

// clientMovePlayerPosRot - рух разом з поворотом
func clientMovePlayerPosRot(p pk.Packet, c *Client) error {
	var X, FeetY, Z pk.Double
	// Yaw - вліво-вправо, Pitch - вгору-вниз, обидва в градусах
	var Yaw, Pitch pk.Float
	var OnGround pk.Boolean
	if err := p.Scan(&X, &FeetY, &Z, &Yaw, &Pitch, &OnGround); err != nil {
		return err
	}
	c.Inputs.Lock()
	c.Inputs.Position = [3]float64{float64(X), float64(FeetY), float64(Z)}
	c.Inputs.Rotation = [2]float32{float32(Yaw), float32(Pitch)}
	c.Inputs.OnGround = world.OnGround(OnGround)
	c.Inputs.Unlock()
	return nil
}

// clientMovePlayerRot - лише поворот голови.
// Під час їзди клієнт надсилає тільки його: куди дивиться вершник,
// туди й повертає покемон.
func clientMovePlayerRot(p pk.Packet, c *Client) error {
	var Yaw, Pitch pk.Float
	var OnGround pk.Boolean
	if err := p.Scan(&Yaw, &Pitch, &OnGround); err != nil {
		return err
	}
	c.Inputs.Lock()
	c.Inputs.Rotation = [2]float32{float32(Yaw), float32(Pitch)}
	c.Inputs.Unlock()
	return nil
}

// clientMovePlayerStatusOnly - змінився лише прапорець "на землі"
func clientMovePlayerStatusOnly(p pk.Packet, c *Client) error {
	// тут OnGround приходить байтом, не Boolean
	var OnGround pk.UnsignedByte
	if err := p.Scan(&OnGround); err != nil {
		return err
	}
	c.Inputs.Lock()
	c.Inputs.OnGround = OnGround != 0
	c.Inputs.Unlock()
	return nil
}
