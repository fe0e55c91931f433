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
	"PokeCore/riding"
	"PokeCore/world/entity"
	"github.com/Tnze/go-mc/chat"
)

// Client - з'єднання гравця, через яке світ і гра надсилають йому пакети
type Client interface {
	SendDisconnect(reason chat.Message)
	SendPlayerPosition(pos [3]float64, rot [2]float32) (teleportID int32)
	SendSystemChat(msg chat.Message)
	// SendRidingState - стан поїздки покемона id
	SendRidingState(id int32, st riding.State) error
	SendEntityMetadata(id int32, m entity.MetadataSet)
	SendSetPassengers(vehicle int32, passengers []int32)
	SendTeleportEntity(id int32, pos [3]float64, rot [2]float32, onGround bool)
}
