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

package riding

import (
	"github.com/go-gl/mathgl/mgl64"
)

// DefaultInertia - інерція неактивної поведінки
const DefaultInertia = 0.5

// Controller обгортає поведінку і гарантує безпечні значення, поки вона
// неактивна: нульова швидкість, незмінна гравітація, без стрибків і т.д.
// Поведінки спільні для всіх покемонів і опитуються кожен тік, тому
// неактивна поведінка не повинна рахувати нічого взагалі.
//
// CreateDefaultState і DamageOnCollision передаються напряму.
type Controller struct {
	behaviour Behaviour
}

var _ Behaviour = (*Controller)(nil)

func NewController(b Behaviour) *Controller {
	return &Controller{behaviour: b}
}

// Unwrap повертає обгорнуту поведінку
func (c *Controller) Unwrap() Behaviour { return c.behaviour }

func (c *Controller) Key() Key { return c.behaviour.Key() }

func (c *Controller) IsActive(s Settings, st State, v Vehicle) bool {
	return c.behaviour.IsActive(s, st, v)
}

// RidingStyle не має доступу до покемона, тому завжди передається далі
func (c *Controller) RidingStyle(s Settings, st State) Style {
	return c.behaviour.RidingStyle(s, st)
}

func (c *Controller) Pose(s Settings, st State, v Vehicle) Pose {
	if !c.behaviour.IsActive(s, st, v) {
		return NoPose
	}
	return c.behaviour.Pose(s, st, v)
}

func (c *Controller) Speed(s Settings, st State, v Vehicle, d Driver) float64 {
	if !c.behaviour.IsActive(s, st, v) {
		return 0
	}
	return c.behaviour.Speed(s, st, v, d)
}

func (c *Controller) Rotation(s Settings, st State, v Vehicle, d Driver) mgl64.Vec2 {
	if !c.behaviour.IsActive(s, st, v) {
		return mgl64.Vec2{}
	}
	return c.behaviour.Rotation(s, st, v, d)
}

func (c *Controller) Velocity(s Settings, st State, v Vehicle, d Driver, input mgl64.Vec3) mgl64.Vec3 {
	if !c.behaviour.IsActive(s, st, v) {
		return mgl64.Vec3{}
	}
	return c.behaviour.Velocity(s, st, v, d, input)
}

func (c *Controller) AngRollVel(s Settings, st State, v Vehicle, d Driver, deltaTime float64) mgl64.Vec3 {
	if !c.behaviour.IsActive(s, st, v) {
		return mgl64.Vec3{}
	}
	return c.behaviour.AngRollVel(s, st, v, d, deltaTime)
}

func (c *Controller) RotationOnMouseXY(s Settings, st State, v Vehicle, d Driver, mouseY, mouseX, sensitivity, deltaTime float64) mgl64.Vec3 {
	if !c.behaviour.IsActive(s, st, v) {
		return mgl64.Vec3{}
	}
	return c.behaviour.RotationOnMouseXY(s, st, v, d, mouseY, mouseX, sensitivity, deltaTime)
}

func (c *Controller) CanJump(s Settings, st State, v Vehicle, d Driver) bool {
	if !c.behaviour.IsActive(s, st, v) {
		return false
	}
	return c.behaviour.CanJump(s, st, v, d)
}

func (c *Controller) RideBar(s Settings, st State, v Vehicle, d Driver) float64 {
	if !c.behaviour.IsActive(s, st, v) {
		return 0
	}
	return c.behaviour.RideBar(s, st, v, d)
}

func (c *Controller) JumpForce(s Settings, st State, v Vehicle, d Driver, jumpStrength int) mgl64.Vec3 {
	if !c.behaviour.IsActive(s, st, v) {
		return mgl64.Vec3{}
	}
	return c.behaviour.JumpForce(s, st, v, d, jumpStrength)
}

func (c *Controller) Gravity(s Settings, st State, v Vehicle, regularGravity float64) float64 {
	if !c.behaviour.IsActive(s, st, v) {
		return regularGravity
	}
	return c.behaviour.Gravity(s, st, v, regularGravity)
}

func (c *Controller) FovMultiplier(s Settings, st State, v Vehicle, d Driver) float64 {
	if !c.behaviour.IsActive(s, st, v) {
		return 1
	}
	return c.behaviour.FovMultiplier(s, st, v, d)
}

func (c *Controller) UseAngVelSmoothing(s Settings, st State, v Vehicle) bool {
	if !c.behaviour.IsActive(s, st, v) {
		return false
	}
	return c.behaviour.UseAngVelSmoothing(s, st, v)
}

func (c *Controller) RidingAltPose(s Settings, st State, v Vehicle, d Driver) Pose {
	if !c.behaviour.IsActive(s, st, v) {
		return NoPose
	}
	return c.behaviour.RidingAltPose(s, st, v, d)
}

func (c *Controller) Inertia(s Settings, st State, v Vehicle) float64 {
	if !c.behaviour.IsActive(s, st, v) {
		return DefaultInertia
	}
	return c.behaviour.Inertia(s, st, v)
}

func (c *Controller) ShouldRoll(s Settings, st State, v Vehicle) bool {
	if !c.behaviour.IsActive(s, st, v) {
		return false
	}
	return c.behaviour.ShouldRoll(s, st, v)
}

func (c *Controller) TurnOffOnGround(s Settings, st State, v Vehicle) bool {
	if !c.behaviour.IsActive(s, st, v) {
		return false
	}
	return c.behaviour.TurnOffOnGround(s, st, v)
}

func (c *Controller) DismountOnShift(s Settings, st State, v Vehicle) bool {
	if !c.behaviour.IsActive(s, st, v) {
		return false
	}
	return c.behaviour.DismountOnShift(s, st, v)
}

func (c *Controller) ShouldRotateMountHead(s Settings, st State, v Vehicle) bool {
	if !c.behaviour.IsActive(s, st, v) {
		return false
	}
	return c.behaviour.ShouldRotateMountHead(s, st, v)
}

func (c *Controller) ShouldRotateRiderHead(s Settings, st State, v Vehicle) bool {
	if !c.behaviour.IsActive(s, st, v) {
		return false
	}
	return c.behaviour.ShouldRotateRiderHead(s, st, v)
}

func (c *Controller) Tick(s Settings, st State, v Vehicle, d Driver, input mgl64.Vec3) {
	if !c.behaviour.IsActive(s, st, v) {
		return
	}
	c.behaviour.Tick(s, st, v, d, input)
}

func (c *Controller) CreateDefaultState(s Settings) State {
	return c.behaviour.CreateDefaultState(s)
}

func (c *Controller) DamageOnCollision(s Settings, st State, v Vehicle, impact mgl64.Vec3) bool {
	return c.behaviour.DamageOnCollision(s, st, v, impact)
}
