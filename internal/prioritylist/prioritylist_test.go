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

package prioritylist

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestList_Order(t *testing.T) {
	var l List[string]
	l.Add(Low, "grounded")
	l.Add(Highest, "seafloor")
	l.Add(Normal, "surface")
	l.Add(Highest, "lavafloor")
	l.Add(Low, "fallback")

	assert.Equal(t, []string{"seafloor", "lavafloor", "surface", "grounded", "fallback"}, l.All())

	v, ok := l.First(func(s string) bool { return len(s) == 7 })
	assert.True(t, ok)
	assert.Equal(t, "surface", v)

	assert.Equal(t, 2, l.Remove(func(s string) bool { return s[0] == 'g' || s[0] == 'f' }))
	assert.Equal(t, 3, l.Len())

	_, ok = l.First(func(s string) bool { return s == "grounded" })
	assert.False(t, ok)
}
