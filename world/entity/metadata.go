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

// Пакет entity - метадані сутностей у форматі протоколу.
// Покемону під час їзди потрібні лише прапорці і поза.
package entity

import (
	"io"

	pk "github.com/Tnze/go-mc/net/packet"
)

// Індекси полів, спільних для всіх сутностей
const (
	IndexSharedFlags byte = 0
	IndexPose        byte = 6

	endOfMetadata byte = 0xFF
)

type MetadataSet []MetadataField

type MetadataField struct {
	Index byte
	MetadataValue
}

func (m MetadataSet) WriteTo(w io.Writer) (n int64, err error) {
	var tmpN int64
	for i := range m {
		tmpN, err = pk.UnsignedByte(m[i].Index).WriteTo(w)
		n += tmpN
		if err != nil {
			return
		}
		tmpN, err = m[i].WriteTo(w)
		n += tmpN
		if err != nil {
			return
		}
	}
	tmpN, err = pk.UnsignedByte(endOfMetadata).WriteTo(w)
	return n + tmpN, err
}

func (m *MetadataField) WriteTo(w io.Writer) (n int64, err error) {
	n1, err := pk.VarInt(m.MetadataValue.TypeID()).WriteTo(w)
	if err != nil {
		return n1, err
	}
	n2, err := m.MetadataValue.WriteTo(w)
	return n1 + n2, err
}

// Get шукає поле за індексом
func (m MetadataSet) Get(index byte) (MetadataValue, bool) {
	for _, f := range m {
		if f.Index == index {
			return f.MetadataValue, true
		}
	}
	return nil, false
}

type MetadataValue interface {
	TypeID() int32
	pk.Field
}

// SharedFlags - бітові прапорці стану сутності
type SharedFlags byte

const (
	FlagOnFire     SharedFlags = 0x01
	FlagCrouching  SharedFlags = 0x02
	FlagSprinting  SharedFlags = 0x08
	FlagSwimming   SharedFlags = 0x10
	FlagInvisible  SharedFlags = 0x20
	FlagGlowing    SharedFlags = 0x40
	FlagFallFlying SharedFlags = 0x80
)

func (f *SharedFlags) TypeID() int32 { return 0 }

func (f SharedFlags) Has(flag SharedFlags) bool { return f&flag != 0 }

func (f SharedFlags) WriteTo(w io.Writer) (int64, error) {
	return pk.UnsignedByte(f).WriteTo(w)
}

func (f *SharedFlags) ReadFrom(r io.Reader) (int64, error) {
	return (*pk.UnsignedByte)(f).ReadFrom(r)
}

// Pose - поза сутності
type Pose int32

func (p *Pose) TypeID() int32 { return 18 }

const (
	Standing Pose = iota
	FallFlying
	Sleeping
	Swimming
	SpinAttack
	Crouching
	LongJumping
	Dying
)

func (p Pose) WriteTo(w io.Writer) (n int64, err error) {
	return pk.VarInt(p).WriteTo(w)
}

func (p *Pose) ReadFrom(r io.Reader) (n int64, err error) {
	return (*pk.VarInt)(p).ReadFrom(r)
}
