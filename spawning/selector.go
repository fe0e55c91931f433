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

package spawning

import (
	"go.uber.org/zap"

	"PokeCore/internal/weighted"
)

// FlatSpawnablePositionWeightedSelector обирає дію спавну в два кроки.
//
// Спершу група - тип позиції, з вагою тип * кількість кандидатів цього типу.
// Усередині групи записи з відсотком отримують свою фіксовану частку,
// решту ділять записи з вагою. Потім для обраного запису окремо
// обирається позиція за її власною вагою.
// Рідкісна місцевість так не штрафує записи, що підходять лише до неї,
// а поширені типи все одно частіше виграють групу.
type FlatSpawnablePositionWeightedSelector struct {
	log *zap.Logger
	rng weighted.Rand

	// OnPercentageOverflow викликається, коли сума відсотків групи більша за 100
	OnPercentageOverflow func(t *SpawnablePositionType)
}

func NewSelector(log *zap.Logger, rng weighted.Rand) *FlatSpawnablePositionWeightedSelector {
	return &FlatSpawnablePositionWeightedSelector{log: log.Named("selector"), rng: rng}
}

// candidates - кандидати одного запису в одній групі
type candidates struct {
	detail        SpawnDetail
	positions     []weighted.Entry[SpawnablePosition]
	highestWeight float64
}

// group - усі кандидати одного типу позиції
type group struct {
	typ *SpawnablePositionType
	// count - кількість позицій, де підійшов хоча б один запис
	count   int
	details []*candidates
	byID    map[SpawnDetail]*candidates
}

func (g *group) weight() float64 { return g.typ.Weight * float64(g.count) }

// aggregate питає спавнер, які записи підходять до кожної позиції,
// і групує результат за типом. Порядок груп і записів - порядок появи.
func (s *FlatSpawnablePositionWeightedSelector) aggregate(spawner Spawner, bucket SpawnBucket, positions []SpawnablePosition) []*group {
	var (
		groups []*group
		byType = make(map[*SpawnablePositionType]*group)
	)
	for _, p := range positions {
		matches := spawner.MatchingSpawns(bucket, p)
		if len(matches) == 0 {
			continue
		}
		t := p.Type()
		g, ok := byType[t]
		if !ok {
			g = &group{typ: t, byID: make(map[SpawnDetail]*candidates)}
			byType[t] = g
			groups = append(groups, g)
		}
		g.count++
		for _, d := range matches {
			c, ok := g.byID[d]
			if !ok {
				c = &candidates{detail: d}
				g.byID[d] = c
				g.details = append(g.details, c)
			}
			w := t.Weight * d.Weight(p)
			if w <= 0 && d.Percentage() > 0 {
				// запис лише з відсотком: позиція важить як її тип
				w = t.Weight * p.Base().WeightMultiplier
			}
			c.positions = append(c.positions, weighted.Entry[SpawnablePosition]{Value: p, Weight: w})
			c.highestWeight = max(c.highestWeight, w)
		}
	}
	return groups
}

// percentageSum - сума відсотків записів групи
func (g *group) percentageSum() (sum float64) {
	for _, c := range g.details {
		if p := c.detail.Percentage(); p > 0 {
			sum += p
		}
	}
	return
}

// Select повертає дію спавну або nil, якщо нічого не підійшло
// чи конфігурація групи зламана
func (s *FlatSpawnablePositionWeightedSelector) Select(spawner Spawner, bucket SpawnBucket, positions []SpawnablePosition) *SpawnAction {
	groups := s.aggregate(spawner, bucket, positions)
	g, ok := weighted.Select(s.rng, groups, (*group).weight)
	if !ok {
		return nil
	}
	c, ok := s.chooseDetail(g)
	if !ok {
		return nil
	}
	p, ok := weighted.SelectEntry(s.rng, c.positions)
	if !ok {
		return nil
	}
	selection := SelectionData{Rand: s.rng, Positions: make([]SpawnablePosition, len(c.positions))}
	for i, e := range c.positions {
		selection.Positions[i] = e.Value
	}
	return c.detail.Choose(p, bucket, selection)
}

// chooseDetail обирає запис усередині групи.
// Відсоткові записи перевіряються першими: кидок у (0, 100] і накопичувальна
// сума. Якщо кидок більший за суму відсотків - вибір за вагою серед решти.
func (s *FlatSpawnablePositionWeightedSelector) chooseDetail(g *group) (*candidates, bool) {
	sum := g.percentageSum()
	if sum > 100 {
		s.log.Warn("Spawn percentages exceed 100, skipping selection",
			zap.String("type", g.typ.Name),
			zap.Float64("sum", sum))
		if s.OnPercentageOverflow != nil {
			s.OnPercentageOverflow(g.typ)
		}
		return nil, false
	}
	if sum > 0 {
		roll := 100 - s.rng.Float64()*100
		var cumulative float64
		for _, c := range g.details {
			p := c.detail.Percentage()
			if p <= 0 {
				continue
			}
			cumulative += p
			if cumulative >= roll {
				return c, true
			}
		}
	}
	return weighted.Select(s.rng, weightOnly(g.details), func(c *candidates) float64 {
		return c.highestWeight
	})
}

func weightOnly(details []*candidates) []*candidates {
	out := make([]*candidates, 0, len(details))
	for _, c := range details {
		if c.detail.Percentage() <= 0 {
			out = append(out, c)
		}
	}
	return out
}

// TotalWeights повертає очікувану частку кожного запису за ті самі правила,
// що й Select. Відсоткові записи переводяться у вагу пропорційно до своєї
// частки групи, тож записи обох видів можна порівнювати напряму.
// Групи зі зламаними відсотками не дають нічого.
func (s *FlatSpawnablePositionWeightedSelector) TotalWeights(spawner Spawner, bucket SpawnBucket, positions []SpawnablePosition) []weighted.Entry[SpawnDetail] {
	groups := s.aggregate(spawner, bucket, positions)
	var groupTotal float64
	for _, g := range groups {
		groupTotal += g.weight()
	}
	if groupTotal <= 0 {
		return nil
	}

	var (
		result []weighted.Entry[SpawnDetail]
		index  = make(map[SpawnDetail]int)
	)
	add := func(d SpawnDetail, w float64) {
		i, ok := index[d]
		if !ok {
			i = len(result)
			index[d] = i
			result = append(result, weighted.Entry[SpawnDetail]{Value: d})
		}
		result[i].Weight += w
	}

	for _, g := range groups {
		share := g.weight() / groupTotal
		percentageSum := g.percentageSum()
		if percentageSum > 100 {
			continue
		}
		var rescaledTotalWeight float64
		for _, c := range weightOnly(g.details) {
			rescaledTotalWeight += c.highestWeight
		}
		remaining := 1 - percentageSum/100
		for _, c := range g.details {
			if p := c.detail.Percentage(); p > 0 {
				percentageWeight := p / 100
				add(c.detail, share*percentageWeight)
			} else if rescaledTotalWeight > 0 {
				add(c.detail, share*remaining*c.highestWeight/rescaledTotalWeight)
			}
		}
	}
	return result
}

// Probabilities - TotalWeights у відсотках, сума дорівнює 100
func (s *FlatSpawnablePositionWeightedSelector) Probabilities(spawner Spawner, bucket SpawnBucket, positions []SpawnablePosition) []weighted.Entry[SpawnDetail] {
	weights := s.TotalWeights(spawner, bucket, positions)
	var total float64
	for _, e := range weights {
		total += e.Weight
	}
	if total <= 0 {
		return nil
	}
	for i := range weights {
		weights[i].Weight = weights[i].Weight / total * 100
	}
	return weights
}
