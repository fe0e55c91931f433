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

// Пакет behaviours - вбудовані поведінки їзди.
// Кожна поведінка - спільний об'єкт без стану, весь змінний стан
// лежить у riding.State конкретного покемона.
package behaviours

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"

	"PokeCore/riding"
)

// Register додає всі вбудовані поведінки в реєстр
func Register(reg *riding.Behaviours, log *zap.Logger) {
	reg.Register(HorseKey, Horse{})
	reg.Register(BirdKey, Bird{})
	reg.Register(GliderKey, Glider{})
	log.Debug("Registered riding behaviours", zap.Int("count", reg.Len()))
}

// collisionDamageSpeed - швидкість удару, з якої покемон отримує шкоду
const collisionDamageSpeed = 0.6

// base дає значення за замовчуванням для методів,
// які конкретна поведінка не перевизначає
type base struct{}

func (base) AngRollVel(riding.Settings, riding.State, riding.Vehicle, riding.Driver, float64) mgl64.Vec3 {
	return mgl64.Vec3{}
}

func (base) RotationOnMouseXY(_ riding.Settings, _ riding.State, _ riding.Vehicle, _ riding.Driver, mouseY, mouseX, sensitivity, deltaTime float64) mgl64.Vec3 {
	return mgl64.Vec3{mouseY * sensitivity * deltaTime, mouseX * sensitivity * deltaTime, 0}
}

func (base) RideBar(_ riding.Settings, st riding.State, _ riding.Vehicle, _ riding.Driver) float64 {
	return float64(st.Stamina().Get())
}

func (base) FovMultiplier(riding.Settings, riding.State, riding.Vehicle, riding.Driver) float64 {
	return 1
}

func (base) UseAngVelSmoothing(riding.Settings, riding.State, riding.Vehicle) bool { return false }
func (base) RidingAltPose(riding.Settings, riding.State, riding.Vehicle, riding.Driver) riding.Pose {
	return riding.NoPose
}
func (base) Inertia(riding.Settings, riding.State, riding.Vehicle) float64 { return riding.DefaultInertia }
func (base) ShouldRoll(riding.Settings, riding.State, riding.Vehicle) bool { return false }
func (base) TurnOffOnGround(riding.Settings, riding.State, riding.Vehicle) bool {
	return false
}
func (base) DismountOnShift(riding.Settings, riding.State, riding.Vehicle) bool       { return true }
func (base) ShouldRotateMountHead(riding.Settings, riding.State, riding.Vehicle) bool { return true }
func (base) ShouldRotateRiderHead(riding.Settings, riding.State, riding.Vehicle) bool { return false }

func (base) CreateDefaultState(riding.Settings) riding.State { return riding.NewState() }

func (base) DamageOnCollision(_ riding.Settings, _ riding.State, _ riding.Vehicle, impact mgl64.Vec3) bool {
	return impact.Len() > collisionDamageSpeed
}

// Stamina - параметри витривалості, спільні для всіх поведінок
type Stamina struct {
	// Drain - скільки витривалості витрачається за тік навантаження
	Drain float32
	// Regen - скільки відновлюється за тік відпочинку
	Regen float32
}

// tick змінює витривалість і повертає чи вона ще лишилась
func (s Stamina) tick(st riding.State, working bool) bool {
	v := st.Stamina().Get()
	if working {
		v -= s.Drain
	} else {
		v += s.Regen
	}
	v = max(0, min(riding.DefaultStamina, v))
	st.Stamina().Set(riding.Server, v)
	return v > 0
}

// horizontal - швидкість у площині XZ
func horizontal(v mgl64.Vec3) float64 {
	return mgl64.Vec2{v.X(), v.Z()}.Len()
}

func mustSettings[T riding.Settings](s riding.Settings) T {
	t, ok := s.(T)
	if !ok {
		panic(fmt.Sprintf("riding behaviour %s got %T settings", s.Key(), s))
	}
	return t
}
