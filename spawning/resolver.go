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

// AreaSpawnablePositionResolver перебирає всі блоки зони і для кожного
// шукає перший калькулятор, що погоджується на блок
type AreaSpawnablePositionResolver struct {
	calculators *Calculators
}

func NewResolver(calculators *Calculators) *AreaSpawnablePositionResolver {
	return &AreaSpawnablePositionResolver{calculators: calculators}
}

// Resolve сканує зону в порядку X -> Y -> Z. Кожен блок може забрати
// лише один калькулятор. Порожній результат - нормальна ситуація.
func (r *AreaSpawnablePositionResolver) Resolve(spawner Spawner, zone *Zone) []SpawnablePosition {
	var (
		result     []SpawnablePosition
		influences = spawner.Influences()
	)
	for dx := int32(0); dx < zone.Length; dx++ {
		for dy := int32(0); dy < zone.Height; dy++ {
			for dz := int32(0); dz < zone.Width; dz++ {
				pos := zone.Base.Offset(dx, dy, dz)
				if zone.TooCloseToEntity(pos) {
					continue
				}
				in := Input{Zone: zone, Pos: pos}
				calc, ok := r.calculators.First(func(c Calculator) bool {
					return c.Fits(in) && allowed(influences, zone.World, pos, c)
				})
				if !ok {
					continue
				}
				p := calc.Calculate(in)
				if p == nil {
					continue
				}
				r.influence(p, zone.Influences)
				r.influence(p, influences)
				result = append(result, p)
			}
		}
	}
	return result
}

func (r *AreaSpawnablePositionResolver) influence(p SpawnablePosition, influences []Influence) {
	base := p.Base()
	for _, inf := range influences {
		inf.AffectPosition(p)
		base.Influences = append(base.Influences, inf)
	}
}

func allowed(influences []Influence, w World, pos BlockPos, calc Calculator) bool {
	for _, inf := range influences {
		if !inf.IsAllowedPosition(w, pos, calc) {
			return false
		}
	}
	return true
}
