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

// Spawner - джерело записів і впливів для проходу спавну
type Spawner interface {
	Name() string
	// MatchingSpawns - записи відра bucket, що можуть з'явитись у p
	MatchingSpawns(bucket SpawnBucket, p SpawnablePosition) []SpawnDetail
	Influences() []Influence
	// CopyInfluences - знімок впливів, який можна змінювати
	CopyInfluences() []Influence
}

// AreaSpawner спавнить у зонах навколо гравців
type AreaSpawner struct {
	name string
	log  *zap.Logger
	rng  weighted.Rand

	pool       []SpawnDetail
	influences []Influence
	buckets    []SpawnBucket

	resolver *AreaSpawnablePositionResolver
	selector *FlatSpawnablePositionWeightedSelector
}

func NewAreaSpawner(log *zap.Logger, name string, rng weighted.Rand, calculators *Calculators, buckets []SpawnBucket) *AreaSpawner {
	log = log.Named("spawner").With(zap.String("name", name))
	return &AreaSpawner{
		name:     name,
		log:      log,
		rng:      rng,
		buckets:  buckets,
		resolver: NewResolver(calculators),
		selector: NewSelector(log, rng),
	}
}

func (s *AreaSpawner) Name() string { return s.name }

// Selector повертає селектор, щоб можна було підписатись на його події
func (s *AreaSpawner) Selector() *FlatSpawnablePositionWeightedSelector { return s.selector }

func (s *AreaSpawner) Buckets() []SpawnBucket { return s.buckets }

// AddSpawn додає запис у пул
func (s *AreaSpawner) AddSpawn(d SpawnDetail) { s.pool = append(s.pool, d) }

func (s *AreaSpawner) AddInfluence(i Influence) { s.influences = append(s.influences, i) }

func (s *AreaSpawner) MatchingSpawns(bucket SpawnBucket, p SpawnablePosition) []SpawnDetail {
	var out []SpawnDetail
	for _, d := range s.pool {
		if d.Bucket() == bucket.Name && d.IsSatisfiedBy(p) {
			out = append(out, d)
		}
	}
	return out
}

func (s *AreaSpawner) Influences() []Influence { return s.influences }

func (s *AreaSpawner) CopyInfluences() []Influence {
	return append([]Influence(nil), s.influences...)
}

// pruneInfluences прибирає прострочені впливи
func (s *AreaSpawner) pruneInfluences(tick int64) {
	kept := s.influences[:0]
	for _, i := range s.influences {
		if i.IsExpired(tick) {
			s.log.Debug("Influence expired", zap.Int64("tick", tick))
			continue
		}
		kept = append(kept, i)
	}
	s.influences = kept
}

// Resolve - кандидати зони без вибору
func (s *AreaSpawner) Resolve(zone *Zone) []SpawnablePosition {
	s.pruneInfluences(zone.World.Tick())
	return s.resolver.Resolve(s, zone)
}

// Run - один прохід: відро, кандидати, вибір.
// nil, якщо нічого не підійшло.
func (s *AreaSpawner) Run(zone *Zone) *SpawnAction {
	bucket, ok := ChooseBucket(s.rng, s.buckets)
	if !ok {
		return nil
	}
	positions := s.Resolve(zone)
	if len(positions) == 0 {
		return nil
	}
	action := s.selector.Select(s, bucket, positions)
	if action != nil {
		s.log.Debug("Spawn selected",
			zap.String("species", action.Species),
			zap.String("bucket", bucket.Name),
			zap.Stringer("pos", action.Position.Base().Position),
			zap.Int("candidates", len(positions)))
	}
	return action
}

// Probabilities - ймовірності записів відра bucket у зоні, у відсотках
func (s *AreaSpawner) Probabilities(zone *Zone, bucket SpawnBucket) []weighted.Entry[SpawnDetail] {
	return s.selector.Probabilities(s, bucket, s.Resolve(zone))
}
