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

// Пакет molang - числові вирази в стилі MoLang для налаштувань їзди.
// Пороги задаються рядками на кшталт "-0.3 - q.jump_stat * 0.01" і
// рахуються кожен тік, тож їх можна тюнити для кожного покемона окремо.
package molang

import (
	"fmt"
	"math"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"go.uber.org/zap"
)

// Expression - скомпільований вираз
type Expression struct {
	source  string
	program *vm.Program
}

// Compile розбирає вираз. MoLang не чутливий до регістру.
func Compile(source string) (*Expression, error) {
	src := strings.ToLower(strings.TrimSpace(source))
	if src == "" {
		return nil, fmt.Errorf("molang: empty expression")
	}
	program, err := expr.Compile(src)
	if err != nil {
		return nil, fmt.Errorf("molang: compile %q: %w", source, err)
	}
	return &Expression{source: source, program: program}, nil
}

// MustCompile - для виразів, записаних у коді
func MustCompile(source string) *Expression {
	e, err := Compile(source)
	if err != nil {
		panic(err)
	}
	return e
}

func (e *Expression) String() string { return e.source }

// Evaluate рахує вираз і приводить результат до float64
func (e *Expression) Evaluate(env Env) (float64, error) {
	out, err := expr.Run(e.program, map[string]any(env))
	if err != nil {
		return 0, fmt.Errorf("molang: evaluate %q: %w", e.source, err)
	}
	switch v := out.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case bool:
		// MoLang рахує true як 1
		if v {
			return 1, nil
		}
		return 0, nil
	}
	return 0, fmt.Errorf("molang: %q returned %T, not a number", e.source, out)
}

// EvaluateOr - Evaluate, що при помилці пише попередження і повертає fallback
func (e *Expression) EvaluateOr(log *zap.Logger, env Env, fallback float64) float64 {
	v, err := e.Evaluate(env)
	if err != nil {
		log.Warn("Molang expression failed", zap.String("expression", e.source), zap.Error(err))
		return fallback
	}
	return v
}

// Env - змінні, доступні виразу
type Env map[string]any

// NewEnv будує оточення: query доступне як q.* і query.*,
// функції як math.*
func NewEnv(query map[string]any) Env {
	return Env{
		"q":     query,
		"query": query,
		"math":  mathFunctions,
	}
}

var mathFunctions = map[string]any{
	"abs":   math.Abs,
	"sqrt":  math.Sqrt,
	"min":   math.Min,
	"max":   math.Max,
	"clamp": func(v, lo, hi float64) float64 { return math.Max(lo, math.Min(hi, v)) },
	"pi":    math.Pi,
}
