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
	"bytes"
	"compress/gzip"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"PokeCore/riding"
	"PokeCore/riding/behaviours"
	"PokeCore/world"
	"PokeCore/world/entity"
	"github.com/Tnze/go-mc/chat"
	"github.com/Tnze/go-mc/data/packetid"
	"github.com/Tnze/go-mc/nbt"
	pk "github.com/Tnze/go-mc/net/packet"
	"github.com/Tnze/go-mc/save"
)

// fakeClient запам'ятовує все, що гра надіслала гравцю
type fakeClient struct {
	passengers map[int32][]int32
	states     []int32
	metadata   []int32
	teleports  int
	positions  int
	chat       []string
}

func newFakeClient() *fakeClient { return &fakeClient{passengers: make(map[int32][]int32)} }

func (c *fakeClient) SendDisconnect(chat.Message) {}
func (c *fakeClient) SendPlayerPosition([3]float64, [2]float32) int32 {
	c.positions++
	return int32(c.positions)
}
func (c *fakeClient) SendSystemChat(msg chat.Message) { c.chat = append(c.chat, msg.ClearString()) }
func (c *fakeClient) SendRidingState(id int32, _ riding.State) error {
	c.states = append(c.states, id)
	return nil
}
func (c *fakeClient) SendEntityMetadata(id int32, _ entity.MetadataSet) {
	c.metadata = append(c.metadata, id)
}
func (c *fakeClient) SendSetPassengers(vehicle int32, passengers []int32) {
	c.passengers[vehicle] = passengers
}
func (c *fakeClient) SendTeleportEntity(int32, [3]float64, [2]float32, bool) { c.teleports++ }

func testConfig(t *testing.T) Config {
	c := DefaultConfig()
	c.LevelName = t.TempDir()
	c.ViewDistance = 1
	c.Spawning.PassInterval = 0
	return c
}

func newTestGame(t *testing.T, config Config) *Game {
	g, err := NewGame(zap.NewNop(), config, prometheus.NewRegistry())
	require.NoError(t, err)
	return g
}

// addPlayer ставить гравця на траву біля точки спавну і прогружає чанки
func addPlayer(g *Game, name string) (*world.Player, *fakeClient) {
	p := world.NewPlayer(name, uuid.New(), world.Position{8.5, 65, 8.5}, 1)
	c := newFakeClient()
	g.overworld.AddPlayer(c, p, nil)
	g.overworld.Step(0)
	return p, c
}

func addMount(g *Game, species string, pos world.Position) *world.Mount {
	m := world.NewMount(species, 50, pos)
	g.overworld.AddMount(m)
	return m
}

func TestReadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
level-name = "zone"
view-distance = 4

[spawning]
zone-size = 16

[spawning.buckets]
common = 90.0
mythic = 1.0

[spawning.pass-limiter]
every = "2s"
n = 3
`), 0o644))

	c, err := ReadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "zone", c.LevelName)
	assert.Equal(t, int32(4), c.ViewDistance)
	assert.Equal(t, int32(16), c.Spawning.ZoneSize)
	assert.Equal(t, int32(24), c.Spawning.ZoneHeight, "defaults stay")
	assert.Equal(t, "2s", c.Spawning.PassLimiter.Every.String())
	assert.Equal(t, 3, c.Spawning.PassLimiter.N)

	buckets := c.Spawning.SpawnBuckets()
	require.Len(t, buckets, 2)
	assert.Equal(t, "common", buckets[0].Name)
	assert.Equal(t, 90.0, buckets[0].Weight)
	assert.Equal(t, "mythic", buckets[1].Name)
}

func TestReadConfig_UnknownKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("bogus = 1\n[riding]\nfoo = 2\n"), 0o644))

	_, err := ReadConfig(path)
	var unknown errUnknownConfig
	require.ErrorAs(t, err, &unknown)
	assert.ElementsMatch(t, []string{"bogus", "riding.foo"}, []string(unknown))
}

func TestReadConfig_Missing(t *testing.T) {
	_, err := ReadConfig(filepath.Join(t.TempDir(), "none.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestSpawnBuckets_Default(t *testing.T) {
	var c SpawnConfig
	assert.Len(t, c.SpawnBuckets(), 4)
}

func TestJoinAndLeave(t *testing.T) {
	g := newTestGame(t, testConfig(t))
	id := uuid.New()
	c, err := g.Join("Ash", id)
	require.NoError(t, err)
	p := c.GetPlayer()
	assert.Equal(t, world.Position{8.5, 65, 8.5}, p.Position)

	found, ok := g.overworld.Player(id)
	require.True(t, ok)
	assert.Same(t, p, found)

	packet, ok := c.Pull()
	require.True(t, ok)
	assert.Equal(t, int32(packetid.ClientboundPlayerPosition), packet.ID)

	g.overworld.Step(0)
	packet, ok = c.Pull()
	require.True(t, ok)
	assert.Equal(t, int32(packetid.ClientboundSystemChat), packet.ID, "join announcement")

	g.Leave(p)
	_, ok = g.overworld.Player(id)
	assert.False(t, ok)
}

func TestMount_Errors(t *testing.T) {
	g := newTestGame(t, testConfig(t))
	ash, _ := addPlayer(g, "Ash")
	misty, _ := addPlayer(g, "Misty")

	karp := addMount(g, "magikarp", world.Position{3.5, 65, 3.5})
	assert.ErrorIs(t, g.Mount(ash, karp.EntityID), ErrNotRideable)
	assert.ErrorIs(t, g.Mount(ash, -1), ErrNoSuchMount)

	ponyta := addMount(g, "ponyta", world.Position{8.5, 65, 12.5})
	require.NoError(t, g.Mount(ash, ponyta.EntityID))
	assert.ErrorIs(t, g.Mount(misty, ponyta.EntityID), ErrMountTaken)
	assert.ErrorIs(t, g.Mount(ash, karp.EntityID), ErrAlreadyRiding)
	assert.Equal(t, 1.0, testutil.ToFloat64(g.metrics.activeRides))
}

func TestMount_NotifiesPlayers(t *testing.T) {
	g := newTestGame(t, testConfig(t))
	ash, ashClient := addPlayer(g, "Ash")
	_, mistyClient := addPlayer(g, "Misty")
	m := addMount(g, "ponyta", world.Position{8.5, 65, 12.5})

	require.NoError(t, g.Mount(ash, m.EntityID))
	assert.Equal(t, m.EntityID, ash.Vehicle)
	assert.Equal(t, ash.UUID, m.Rider)
	assert.Equal(t, []int32{ash.EntityID}, ashClient.passengers[m.EntityID])
	assert.Equal(t, []int32{ash.EntityID}, mistyClient.passengers[m.EntityID])
	assert.Equal(t, []int32{m.EntityID}, ashClient.states, "initial state goes to the driver")
	assert.Empty(t, mistyClient.states)

	id, ok := g.Riding(ash)
	assert.True(t, ok)
	assert.Equal(t, m.EntityID, id)
}

func packet(t *testing.T, id packetid.ServerboundPacketID, fields ...pk.FieldEncoder) pk.Packet {
	t.Helper()
	var buf bytes.Buffer
	for _, f := range fields {
		_, err := f.WriteTo(&buf)
		require.NoError(t, err)
	}
	return pk.Packet{ID: int32(id), Data: buf.Bytes()}
}

func setControl(p *world.Player, c world.Control) {
	p.Inputs.Lock()
	p.Inputs.Control = c
	p.Inputs.Unlock()
}

func TestRide_HorseMovesForward(t *testing.T) {
	g := newTestGame(t, testConfig(t))
	p, c := addPlayer(g, "Ash")
	m := addMount(g, "ponyta", world.Position{8.5, 65, 12.5})
	require.NoError(t, g.Mount(p, m.EntityID))

	setControl(p, world.Control{Forward: 1})
	for i := uint(1); i <= 10; i++ {
		g.overworld.Step(i)
	}

	assert.Greater(t, m.Position[2], 13.0, "yaw 0 faces +Z")
	assert.InDelta(t, 8.5, m.Position[0], 1e-9)
	assert.Equal(t, 65.0, m.Position[1], "stays on the grass")
	assert.True(t, m.OnGround())
	assert.Equal(t, world.Position{m.Position[0], m.Position[1] + seatHeight, m.Position[2]}, p.Position)
	assert.Equal(t, 10, c.teleports)
	assert.Greater(t, len(c.states), 1, "state is synced while the horse speeds up")
	assert.Equal(t, riding.PoseWalk, m.Pose)
}

func TestRide_Yaw(t *testing.T) {
	g := newTestGame(t, testConfig(t))
	p, _ := addPlayer(g, "Ash")
	m := addMount(g, "ponyta", world.Position{8.5, 65, 12.5})
	require.NoError(t, g.Mount(p, m.EntityID))

	p.Inputs.Lock()
	p.Inputs.Rotation = world.Rotation{90, 0}
	p.Inputs.Control = world.Control{Forward: 1}
	p.Inputs.Unlock()
	for i := uint(1); i <= 5; i++ {
		g.overworld.Step(i)
	}
	assert.Less(t, m.Position[0], 8.0, "yaw 90 faces -X")
	assert.InDelta(t, 12.5, m.Position[2], 1e-6)
	assert.Equal(t, float32(90), m.Rotation[0])
}

func TestRide_DismountOnSneak(t *testing.T) {
	g := newTestGame(t, testConfig(t))
	p, c := addPlayer(g, "Ash")
	m := addMount(g, "ponyta", world.Position{8.5, 65, 12.5})
	require.NoError(t, g.Mount(p, m.EntityID))

	setControl(p, world.Control{Sneak: true})
	g.overworld.Step(1)

	assert.Zero(t, p.Vehicle)
	assert.False(t, m.Ridden())
	assert.Nil(t, c.passengers[m.EntityID])
	assert.Equal(t, 1, c.positions, "driver is put next to the mount")
	assert.Equal(t, m.Position, p.Position)
	assert.Equal(t, 0.0, testutil.ToFloat64(g.metrics.activeRides))
	_, ok := g.Riding(p)
	assert.False(t, ok)
}

func TestRide_DriverLeft(t *testing.T) {
	g := newTestGame(t, testConfig(t))
	p, c := addPlayer(g, "Ash")
	m := addMount(g, "ponyta", world.Position{8.5, 65, 12.5})
	require.NoError(t, g.Mount(p, m.EntityID))

	g.overworld.RemovePlayer(p)
	g.overworld.Step(1)

	assert.False(t, m.Ridden())
	assert.Empty(t, g.rides)
	assert.Zero(t, c.positions, "nothing is sent to a player who left")
}

func TestRide_CompositeTransition(t *testing.T) {
	g := newTestGame(t, testConfig(t))
	p, _ := addPlayer(g, "Ash")
	m := addMount(g, "dragonite", world.Position{8.5, 65, 12.5})
	require.NoError(t, g.Mount(p, m.EntityID))

	setControl(p, world.Control{Jump: true})
	g.overworld.Step(1)

	r := g.rides[m.EntityID]
	require.NotNil(t, r)
	assert.Equal(t, behaviours.BirdKey, activeBehaviour(r.state))
	assert.Equal(t, 1.0, testutil.ToFloat64(
		g.metrics.rideTransitions.WithLabelValues(string(behaviours.HorseKey), string(behaviours.BirdKey))))
}

func TestInteractMountsOnNextTick(t *testing.T) {
	g := newTestGame(t, testConfig(t))
	c, err := g.Join("Ash", uuid.New())
	require.NoError(t, err)
	m := addMount(g, "ponyta", world.Position{8.5, 65, 12.5})

	require.NoError(t, c.Handle(packet(t, packetid.ServerboundInteract,
		pk.VarInt(m.EntityID), pk.VarInt(interact), pk.VarInt(0), pk.Boolean(false))))
	assert.False(t, m.Ridden(), "mounting waits for the tick")

	g.overworld.Step(0)
	assert.Equal(t, m.EntityID, c.GetPlayer().Vehicle)
}

func TestChatCommandSchedulesProbabilities(t *testing.T) {
	g := newTestGame(t, testConfig(t))
	c, err := g.Join("Ash", uuid.New())
	require.NoError(t, err)
	g.overworld.Step(0)

	require.NoError(t, c.Handle(packet(t, packetid.ServerboundChatCommand, pk.String("help"))))
	assert.Empty(t, g.pending.tasks)
	require.NoError(t, c.Handle(packet(t, packetid.ServerboundChatCommand, pk.String(probabilitiesCommand))))
	assert.Len(t, g.pending.tasks, 1)
}

func TestReadLevel(t *testing.T) {
	config := testConfig(t)
	f, err := os.Create(filepath.Join(config.LevelName, "level.dat"))
	require.NoError(t, err)
	gw := gzip.NewWriter(f)
	require.NoError(t, nbt.NewEncoder(gw).Encode(save.Level{Data: save.LevelData{
		SpawnX: 100, SpawnY: 70, SpawnZ: -20, SpawnAngle: 45,
	}}, ""))
	require.NoError(t, gw.Close())
	require.NoError(t, f.Close())

	g := newTestGame(t, config)
	pos, angle := g.overworld.SpawnPositionAndAngle()
	assert.Equal(t, [3]int32{100, 70, -20}, pos)
	assert.Equal(t, float32(45), angle)
}

func TestReadLevel_Missing(t *testing.T) {
	g := newTestGame(t, testConfig(t))
	pos, _ := g.overworld.SpawnPositionAndAngle()
	assert.Equal(t, [3]int32{8, 65, 8}, pos)
}
