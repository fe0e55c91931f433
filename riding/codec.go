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

// Формат стану на дроті однаковий для клієнта і сервера, порядок полів
// змінювати не можна: швидкість (3 x float32), витривалість (float32),
// далі поля конкретного стану.

package riding

import (
	"fmt"
	"io"

	"github.com/go-gl/mathgl/mgl64"

	pk "github.com/Tnze/go-mc/net/packet"
)

func toWire(v mgl64.Vec3) [3]float32 {
	return [3]float32{float32(v[0]), float32(v[1]), float32(v[2])}
}

// WriteVec3 пише вектор як три float32
func WriteVec3(w io.Writer, v mgl64.Vec3) error {
	f := toWire(v)
	_, err := pk.Tuple{pk.Float(f[0]), pk.Float(f[1]), pk.Float(f[2])}.WriteTo(w)
	return err
}

// ReadVec3 читає вектор, записаний WriteVec3
func ReadVec3(r io.Reader) (mgl64.Vec3, error) {
	var x, y, z pk.Float
	if _, err := (pk.Tuple{&x, &y, &z}).ReadFrom(r); err != nil {
		return mgl64.Vec3{}, err
	}
	return mgl64.Vec3{float64(x), float64(y), float64(z)}, nil
}

// EncodeBase пише частину стану, спільну для всіх поведінок
func EncodeBase(w io.Writer, st State) error {
	if err := WriteVec3(w, st.RideVelocity().Get()); err != nil {
		return fmt.Errorf("write ride velocity: %w", err)
	}
	if _, err := pk.Float(st.Stamina().Get()).WriteTo(w); err != nil {
		return fmt.Errorf("write stamina: %w", err)
	}
	return nil
}

// DecodeBase читає спільну частину стану. Значення пишуться примусово,
// бо декодований стан приходить від сторони, яка ним володіє.
func DecodeBase(r io.Reader, st State) error {
	velocity, err := ReadVec3(r)
	if err != nil {
		return fmt.Errorf("read ride velocity: %w", err)
	}
	var stamina pk.Float
	if _, err := stamina.ReadFrom(r); err != nil {
		return fmt.Errorf("read stamina: %w", err)
	}
	st.RideVelocity().Force(velocity)
	st.Stamina().Force(float32(stamina))
	return nil
}
