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

package entity

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetadataSet_WriteTo(t *testing.T) {
	flags := FlagFallFlying | FlagSprinting
	pose := FallFlying
	set := MetadataSet{
		{Index: IndexSharedFlags, MetadataValue: &flags},
		{Index: IndexPose, MetadataValue: &pose},
	}

	var buf bytes.Buffer
	n, err := set.WriteTo(&buf)
	require.NoError(t, err)
	assert.Equal(t, int64(buf.Len()), n)
	assert.Equal(t, []byte{
		IndexSharedFlags, 0, 0x88,
		IndexPose, 18, byte(FallFlying),
		0xFF,
	}, buf.Bytes())
}

func TestMetadataSet_Empty(t *testing.T) {
	var buf bytes.Buffer
	_, err := MetadataSet(nil).WriteTo(&buf)
	require.NoError(t, err)
	assert.Equal(t, []byte{0xFF}, buf.Bytes())
}

func TestSharedFlags_ReadBack(t *testing.T) {
	var buf bytes.Buffer
	_, err := (FlagGlowing | FlagOnFire).WriteTo(&buf)
	require.NoError(t, err)

	var got SharedFlags
	_, err = got.ReadFrom(&buf)
	require.NoError(t, err)
	assert.True(t, got.Has(FlagGlowing))
	assert.True(t, got.Has(FlagOnFire))
	assert.False(t, got.Has(FlagInvisible))

	_, ok := MetadataSet{{Index: IndexPose}}.Get(IndexSharedFlags)
	assert.False(t, ok)
}
