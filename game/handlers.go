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

package game

import (
	"PokeCore/client"
	pk "github.com/Tnze/go-mc/net/packet"
)

// типи пакета Interact
const (
	interact = iota
	interactAttack
	interactAt
)

// probabilitiesCommand - команда чату, що показує шанси спавну поруч
const probabilitiesCommand = "spawnprobabilities"

// handleInteract - клік правою кнопкою по покемону садить на нього
func (g *Game) handleInteract(p pk.Packet, c *client.Client) error {
	var EntityID, Type pk.VarInt
	if err := p.Scan(&EntityID, &Type); err != nil {
		return err
	}
	if Type == interact {
		g.RequestMount(c.GetPlayer(), int32(EntityID))
	}
	return nil
}

func (g *Game) handleChatCommand(p pk.Packet, c *client.Client) error {
	var Command pk.String
	if err := p.Scan(&Command); err != nil {
		return err
	}
	if Command == probabilitiesCommand {
		g.RequestProbabilities(c.GetPlayer())
	}
	return nil
}
