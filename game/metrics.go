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
	"github.com/prometheus/client_golang/prometheus"
)

// metrics - лічильники спавну і поїздок
type metrics struct {
	spawnPasses     prometheus.Counter
	spawnActions    *prometheus.CounterVec
	selectionAborts *prometheus.CounterVec
	rideTransitions *prometheus.CounterVec
	activeRides     prometheus.Gauge
}

// newMetrics створює і реєструє метрики в reg
func newMetrics(reg prometheus.Registerer) *metrics {
	m := &metrics{
		spawnPasses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "pokecore",
			Subsystem: "spawning",
			Name:      "passes_total",
			Help:      "Number of spawn passes run around players.",
		}),
		spawnActions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pokecore",
			Subsystem: "spawning",
			Name:      "actions_total",
			Help:      "Spawn actions produced, by bucket.",
		}, []string{"bucket"}),
		selectionAborts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pokecore",
			Subsystem: "spawning",
			Name:      "selection_aborts_total",
			Help:      "Selections skipped because spawn percentages of a group exceed 100.",
		}, []string{"position_type"}),
		rideTransitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pokecore",
			Subsystem: "riding",
			Name:      "transitions_total",
			Help:      "Composite behaviour switches.",
		}, []string{"from", "to"}),
		activeRides: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "pokecore",
			Subsystem: "riding",
			Name:      "active_rides",
			Help:      "Mounts currently ridden by a player.",
		}),
	}
	reg.MustRegister(m.spawnPasses, m.spawnActions, m.selectionAborts, m.rideTransitions, m.activeRides)
	return m
}
