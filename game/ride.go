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
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"PokeCore/riding"
	"PokeCore/riding/composite"
	"PokeCore/world"
)

// ride - поїздка одного гравця на одному покемоні
type ride struct {
	mount      *world.Mount
	driver     *world.Player
	settings   riding.Settings
	controller *riding.Controller
	state      riding.State

	synced   riding.State // останній надісланий водію стан
	syncedAt int64

	// що клієнти вже знають про вигляд покемона
	pose   riding.Pose
	flying bool
}

const (
	// seatHeight - висота сідла над ногами покемона
	seatHeight = 1
	// verticalDrag - опір повітря для вертикальної швидкості
	verticalDrag = 0.98
)

// Mount садить гравця на покемона mountID
func (g *Game) Mount(p *world.Player, mountID int32) error {
	if p.Vehicle != 0 {
		return ErrAlreadyRiding
	}
	m, ok := g.overworld.Mount(mountID)
	if !ok {
		return fmt.Errorf("mount %d: %w", mountID, ErrNoSuchMount)
	}
	if m.Ridden() {
		return fmt.Errorf("mount %d: %w", mountID, ErrMountTaken)
	}
	settings, ok := g.species[m.Species]
	if !ok {
		return fmt.Errorf("%s: %w", m.Species, ErrNotRideable)
	}
	controller := riding.NewController(g.behaviours.MustGet(settings.Key()))
	state := controller.CreateDefaultState(settings)

	r := &ride{
		mount:      m,
		driver:     p,
		settings:   settings,
		controller: controller,
		state:      state,
		synced:     state.Copy(),
		syncedAt:   g.overworld.Tick(),
		pose:       m.Pose,
		flying:     m.Flying(),
	}
	m.Rider = p.UUID
	p.Vehicle = m.EntityID
	g.rides[m.EntityID] = r

	g.broadcast(func(c world.Client) {
		c.SendSetPassengers(m.EntityID, []int32{p.EntityID})
	})
	if c := p.Client(); c != nil {
		if err := c.SendRidingState(m.EntityID, state); err != nil {
			g.log.Error("Send riding state fail", zap.Int32("mount", m.EntityID), zap.Error(err))
		}
	}
	g.metrics.activeRides.Inc()
	g.log.Debug("Mount",
		zap.String("player", p.Name),
		zap.String("species", m.Species),
		zap.String("behaviour", string(controller.Key())))
	return nil
}

// Dismount знімає гравця з покемона. Нічого не робить, якщо гравець
// ні на кому не сидить.
func (g *Game) Dismount(p *world.Player) {
	r, ok := g.rides[p.Vehicle]
	if !ok {
		return
	}
	g.endRide(r, true)
}

func (g *Game) endRide(r *ride, notifyDriver bool) {
	m, p := r.mount, r.driver
	delete(g.rides, m.EntityID)
	m.Rider = uuid.Nil
	m.Pose = riding.NoPose
	m.SetFlying(false)
	p.Vehicle = 0

	g.broadcast(func(c world.Client) {
		c.SendSetPassengers(m.EntityID, nil)
		c.SendEntityMetadata(m.EntityID, m.Metadata())
	})
	if c := p.Client(); notifyDriver && c != nil {
		pos := m.Position
		p.Inputs.Lock()
		p.Inputs.Position = pos
		p.Inputs.Unlock()
		g.overworld.SetPosition(&p.Entity, pos)
		c.SendPlayerPosition(p.Position, p.Rotation)
	}
	g.metrics.activeRides.Dec()
	g.log.Debug("Dismount", zap.String("player", p.Name), zap.Int32("mount", m.EntityID))
}

// Riding - id покемона під гравцем і чи він узагалі їде
func (g *Game) Riding(p *world.Player) (int32, bool) {
	_, ok := g.rides[p.Vehicle]
	return p.Vehicle, ok
}

func (g *Game) tickRides(w *world.World) {
	for id, r := range g.rides {
		if _, ok := w.Player(r.driver.UUID); !ok {
			g.endRide(r, false)
			continue
		}
		if _, ok := w.Mount(id); !ok {
			g.endRide(r, true)
			continue
		}
		g.tickRide(w, r)
	}
}

func (g *Game) tickRide(w *world.World, r *ride) {
	s, st, m, d, ctrl := r.settings, r.state, r.mount, r.driver, r.controller
	if d.Sneaking() && ctrl.DismountOnShift(s, st, m) {
		g.endRide(r, true)
		return
	}

	input := d.MoveInput()
	before := activeBehaviour(st)
	ctrl.Tick(s, st, m, d, input)
	if after := activeBehaviour(st); after != before {
		g.metrics.rideTransitions.WithLabelValues(string(before), string(after)).Inc()
	}

	w.Move(&m.Entity, g.rideMotion(r, input))
	if ctrl.IsActive(s, st, m) {
		rot := ctrl.Rotation(s, st, m, d)
		m.Rotation = world.Rotation{float32(rot.Y()), float32(rot.X())}
	}
	w.SetPosition(&d.Entity, world.Position{m.Position[0], m.Position[1] + seatHeight, m.Position[2]})

	m.Pose = ctrl.Pose(s, st, m)
	changed := m.Pose != r.pose || m.Flying() != r.flying
	r.pose, r.flying = m.Pose, m.Flying()
	g.broadcast(func(c world.Client) {
		if changed {
			c.SendEntityMetadata(m.EntityID, m.Metadata())
		}
		c.SendTeleportEntity(m.EntityID, m.Position, m.Rotation, m.OnGround())
	})
	g.syncState(w, r)
}

// rideMotion переводить швидкість поведінки в координати світу
// і додає гравітацію, інерцію і стрибок
func (g *Game) rideMotion(r *ride, input mgl64.Vec3) mgl64.Vec3 {
	s, st, m, d, ctrl := r.settings, r.state, r.mount, r.driver, r.controller
	prev := m.Velocity()
	local := ctrl.Velocity(s, st, m, d, input)

	yaw := d.LookAngles().X()
	if ctrl.IsActive(s, st, m) {
		yaw = ctrl.Rotation(s, st, m, d).Y()
	}
	yaw = mgl64.DegToRad(yaw)
	// yaw 0 дивиться на +Z, ліворуч тоді +X
	forward := mgl64.Vec3{-math.Sin(yaw), 0, math.Cos(yaw)}
	left := mgl64.Vec3{math.Cos(yaw), 0, math.Sin(yaw)}
	target := left.Mul(local.X()).Add(forward.Mul(local.Z()))

	inertia := ctrl.Inertia(s, st, m)
	motion := mgl64.Vec3{
		prev.X()*inertia + target.X()*(1-inertia),
		0,
		prev.Z()*inertia + target.Z()*(1-inertia),
	}
	if gravity := ctrl.Gravity(s, st, m, g.config.Riding.Gravity); gravity == 0 {
		motion[1] = local.Y()
	} else {
		motion[1] = (prev.Y()-gravity)*verticalDrag + local.Y()
	}
	if strength := d.JumpStrength(); strength > 0 && ctrl.CanJump(s, st, m, d) {
		motion = motion.Add(ctrl.JumpForce(s, st, m, d, strength))
	}
	return motion
}

// syncState надсилає водію стан, якщо він помітно змінився
// і з останньої відправки минуло SyncInterval тіків
func (g *Game) syncState(w *world.World, r *ride) {
	tick := w.Tick()
	if tick-r.syncedAt < g.config.Riding.SyncInterval || !r.state.ShouldSync(r.synced) {
		return
	}
	c := r.driver.Client()
	if c == nil {
		return
	}
	if err := c.SendRidingState(r.mount.EntityID, r.state); err != nil {
		g.log.Error("Send riding state fail", zap.Int32("mount", r.mount.EntityID), zap.Error(err))
		return
	}
	r.synced = r.state.Copy()
	r.syncedAt = tick
}

// activeBehaviour - ключ активної частини складеної поведінки, інакше порожній
func activeBehaviour(st riding.State) riding.Key {
	if cs, ok := st.(*composite.State); ok {
		return cs.ActiveBehaviour().Get()
	}
	return ""
}
