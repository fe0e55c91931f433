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

	"go.uber.org/zap"

	"PokeCore/riding"
	"PokeCore/riding/behaviours"
	"PokeCore/riding/composite"
	"PokeCore/spawning"
)

// registerBehaviours заповнює реєстри поведінок і стратегій.
// Складена поведінка реєструється останньою, бо посилається на обидва.
func registerBehaviours(log *zap.Logger, reg *riding.Behaviours, strategies *composite.Strategies) {
	behaviours.Register(reg, log)
	composite.RegisterStrategies(strategies, log)
	reg.Register(composite.Key, composite.New(log, reg, strategies))
}

// rideableSpecies - налаштування їзди для видів, на яких можна сидіти
func rideableSpecies() (map[string]riding.Settings, error) {
	ponyta := behaviours.NewHorseSettings(map[riding.Stat]riding.IntRange{
		riding.StatSpeed:   {Min: 30, Max: 70},
		riding.StatJump:    {Min: 30, Max: 50},
		riding.StatStamina: {Min: 20, Max: 60},
	})

	rapidash := behaviours.NewHorseSettings(map[riding.Stat]riding.IntRange{
		riding.StatSpeed:   {Min: 60, Max: 110},
		riding.StatJump:    {Min: 40, Max: 60},
		riding.StatStamina: {Min: 40, Max: 80},
	})
	rapidash.SprintMultiplier = 2

	// moltres злітає з розгону і сідає, торкнувшись землі
	moltres := composite.NewSettings(composite.RunStrategyKey,
		behaviours.NewHorseSettings(map[riding.Stat]riding.IntRange{
			riding.StatSpeed: {Min: 50, Max: 80},
			riding.StatJump:  {Min: 30, Max: 50},
		}),
		behaviours.NewBirdSettings(map[riding.Stat]riding.IntRange{
			riding.StatSpeed:   {Min: 70, Max: 120},
			riding.StatStamina: {Min: 60, Max: 100},
		}),
	)

	pidgeot := behaviours.NewBirdSettings(map[riding.Stat]riding.IntRange{
		riding.StatSpeed:   {Min: 40, Max: 80},
		riding.StatStamina: {Min: 30, Max: 70},
	})

	dragonite := composite.NewSettings(composite.JumpStrategyKey,
		behaviours.NewHorseSettings(map[riding.Stat]riding.IntRange{
			riding.StatSpeed: {Min: 30, Max: 60},
			riding.StatJump:  {Min: 40, Max: 70},
		}),
		behaviours.NewBirdSettings(map[riding.Stat]riding.IntRange{
			riding.StatSpeed:   {Min: 50, Max: 100},
			riding.StatStamina: {Min: 50, Max: 90},
		}),
	)

	charizard := composite.NewSettings(composite.FallStrategyKey,
		behaviours.NewHorseSettings(map[riding.Stat]riding.IntRange{
			riding.StatSpeed: {Min: 40, Max: 70},
			riding.StatJump:  {Min: 50, Max: 80},
		}),
		behaviours.NewGliderSettings(map[riding.Stat]riding.IntRange{
			riding.StatSpeed: {Min: 40, Max: 90},
		}),
	)
	// швидші покемони розкривають крила лише на швидкості
	if err := charizard.SetFallThresholds("-0.2", "q.speed_stat * 0.002"); err != nil {
		return nil, fmt.Errorf("charizard: %w", err)
	}

	return map[string]riding.Settings{
		"ponyta":    ponyta,
		"rapidash":  rapidash,
		"pidgeot":   pidgeot,
		"dragonite": dragonite,
		"charizard": charizard,
		"moltres":   moltres,
	}, nil
}

// spawnPool - записи пулу спавну для пласкої трав'яної місцевості
func spawnPool() []spawning.SpawnDetail {
	grass := spawning.FloorIn("minecraft:grass_block")
	daylight := spawning.NeedsSky(true)
	return []spawning.SpawnDetail{
		&spawning.PokemonSpawnDetail{
			Name: "ponyta-plains", Species: "ponyta", BucketName: "common",
			Levels: spawning.LevelRange{Min: 5, Max: 25}, BaseWeight: 10,
			Types:      []*spawning.SpawnablePositionType{spawning.Grounded},
			LabelList:  []string{"fire", "plains"},
			Conditions: []spawning.Condition{grass, daylight},
		},
		&spawning.PokemonSpawnDetail{
			Name: "pidgeot-plains", Species: "pidgeot", BucketName: "common",
			Levels: spawning.LevelRange{Min: 36, Max: 50}, BaseWeight: 4,
			Types:      []*spawning.SpawnablePositionType{spawning.Grounded},
			LabelList:  []string{"flying", "plains"},
			Conditions: []spawning.Condition{grass, daylight},
		},
		&spawning.PokemonSpawnDetail{
			Name: "magikarp-pond", Species: "magikarp", BucketName: "common",
			Levels: spawning.LevelRange{Min: 2, Max: 15}, BaseWeight: 8,
			Types:     []*spawning.SpawnablePositionType{spawning.Surface, spawning.Seafloor},
			LabelList: []string{"water"},
			Conditions: []spawning.Condition{
				spawning.FloorIn("minecraft:water", "minecraft:dirt", "minecraft:stone"),
			},
		},
		&spawning.PokemonSpawnDetail{
			Name: "slugma-lava", Species: "slugma", BucketName: "common",
			Levels: spawning.LevelRange{Min: 10, Max: 30}, BaseWeight: 3,
			Types:     []*spawning.SpawnablePositionType{spawning.Lavafloor, spawning.Surface},
			LabelList: []string{"fire"},
			Conditions: []spawning.Condition{
				spawning.FloorIn("minecraft:lava", "minecraft:stone", "minecraft:dirt"),
			},
		},
		&spawning.PokemonSpawnDetail{
			Name: "rapidash-plains", Species: "rapidash", BucketName: "uncommon",
			Levels: spawning.LevelRange{Min: 40, Max: 55}, BaseWeight: 5,
			Types:      []*spawning.SpawnablePositionType{spawning.Grounded},
			LabelList:  []string{"fire", "plains"},
			Conditions: []spawning.Condition{grass},
		},
		&spawning.PokemonSpawnDetail{
			Name: "charizard-plains", Species: "charizard", BucketName: "rare",
			Levels: spawning.LevelRange{Min: 36, Max: 60}, BaseWeight: 1,
			Types:      []*spawning.SpawnablePositionType{spawning.Grounded},
			LabelList:  []string{"fire", "flying"},
			Conditions: []spawning.Condition{grass},
		},
		&spawning.PokemonSpawnDetail{
			Name: "moltres-plains", Species: "moltres", BucketName: "rare",
			Levels: spawning.LevelRange{Min: 50, Max: 70}, BaseWeight: 1,
			Types:     []*spawning.SpawnablePositionType{spawning.Grounded},
			LabelList: []string{"fire", "flying", "legendary"},
		},
		&spawning.PokemonSpawnDetail{
			Name: "dragonite-plains", Species: "dragonite", BucketName: "ultra-rare",
			Levels: spawning.LevelRange{Min: 55, Max: 70}, Percent: 100,
			Types:      []*spawning.SpawnablePositionType{spawning.Grounded},
			LabelList:  []string{"dragon", "flying"},
			Conditions: []spawning.Condition{grass, daylight},
		},
	}
}
