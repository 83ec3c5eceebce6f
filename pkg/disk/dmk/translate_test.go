/*
   DragonDMK - DragonDOS disk image tool
   Copyright (c) 2021, Alexander Vollschwitz

   This file is part of DragonDMK.

   DragonDMK is free software: you can redistribute it and/or modify
   it under the terms of the GNU General Public License as published by
   the Free Software Foundation, either version 3 of the License, or
   (at your option) any later version.

   DragonDMK is distributed in the hope that it will be useful,
   but WITHOUT ANY WARRANTY; without even the implied warranty of
   MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
   GNU General Public License for more details.

   You should have received a copy of the GNU General Public License
   along with DragonDMK. If not, see <http://www.gnu.org/licenses/>.
*/

package dmk_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xelalexv/dragondmk/pkg/disk/dmk"
	"github.com/xelalexv/dragondmk/pkg/disk/dmk/dmktest"
)

func image(t *testing.T, cylinders int, singleSided bool) *dmk.Image {
	img, err := dmktest.NewBuilder(cylinders, singleSided).Image()
	require.NoError(t, err)
	return img
}

func TestBandOf(t *testing.T) {
	for _, tc := range []struct {
		sector int
		base   int
	}{
		{0, 296}, {8, 296}, {9, 634}, {17, 634},
		{18, 612}, {26, 612}, {27, 950}, {35, 950}, {40, 950},
	} {
		assert.Equal(t, tc.base, dmk.BandOf(tc.sector).Base,
			"sector %d", tc.sector)
	}
}

func TestSectorOffsetGolden(t *testing.T) {

	single := image(t, 40, true)
	double := image(t, 40, false)

	for _, tc := range []struct {
		name   string
		img    *dmk.Image
		track  int
		sector int
		want   int
	}{
		{"ss first sector", single, 0, 0, 296},
		{"ss end of band 0", single, 0, 8, 5704},
		{"ss start of band 1", single, 0, 9, 634},
		{"ss end of band 1", single, 0, 17, 6042},
		{"ss track 1", single, 1, 0, 6696},
		{"ss track 3 sector 5", single, 3, 5, 22876},
		{"ss directory", single, 20, 2, 129648},
		{"ds first sector", double, 0, 0, 296},
		{"ds start of band 2", double, 0, 18, 6696},
		{"ds end of band 2", double, 0, 26, 12104},
		{"ds start of band 3", double, 0, 27, 7034},
		{"ds end of band 3", double, 0, 35, 12442},
		{"ds directory", double, 20, 2, 257648},
	} {
		t.Run(tc.name, func(t *testing.T) {
			got, err := tc.img.SectorOffset(tc.track, tc.sector)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestSectorOffsetOutOfRange(t *testing.T) {
	img := image(t, 40, true)
	for _, ts := range [][2]int{{40, 0}, {-1, 0}, {0, 18}, {0, -1}} {
		_, err := img.SectorOffset(ts[0], ts[1])
		assert.ErrorIs(t, err, dmk.ErrOutOfRange, "track %d, sector %d",
			ts[0], ts[1])
	}
}

func TestTranslate(t *testing.T) {

	img := image(t, 40, true)

	t.Run("full sector", func(t *testing.T) {
		start, end, err := img.Translate(2, 3, 1, 5, true, 10)
		require.NoError(t, err)
		assert.Equal(t, 296+2*6400+4*676, start)
		assert.Equal(t, start+256, end)
	})

	t.Run("wrap into next track", func(t *testing.T) {
		start, _, err := img.Translate(2, 16, 3, 5, false, 0)
		require.NoError(t, err)
		assert.Equal(t, 296+3*6400+676, start)
	})

	t.Run("wrap across several tracks", func(t *testing.T) {
		start, _, err := img.Translate(0, 0, 40, 41, false, 0)
		require.NoError(t, err)
		assert.Equal(t, 296+2*6400+4*676, start)
	})

	t.Run("run starting in second band", func(t *testing.T) {
		start, _, err := img.Translate(5, 10, 2, 4, false, 0)
		require.NoError(t, err)
		assert.Equal(t, 634+5*6400+3*676, start)
	})

	t.Run("trailing bytes of last sector in last run", func(t *testing.T) {
		start, end, err := img.Translate(1, 0, 2, 3, true, 10)
		require.NoError(t, err)
		assert.Equal(t, start+10, end)
	})

	t.Run("last sector of other runs is full", func(t *testing.T) {
		start, end, err := img.Translate(1, 0, 2, 3, false, 10)
		require.NoError(t, err)
		assert.Equal(t, start+256, end)
	})

	t.Run("run beyond last track", func(t *testing.T) {
		_, _, err := img.Translate(39, 17, 1, 2, true, 0)
		assert.ErrorIs(t, err, dmk.ErrOutOfRange)
	})

	t.Run("invalid trailing byte count", func(t *testing.T) {
		_, _, err := img.Translate(0, 0, 0, 1, true, 257)
		assert.ErrorIs(t, err, dmk.ErrOutOfRange)
	})
}

func TestAllSectorsInsideImage(t *testing.T) {
	for _, single := range []bool{true, false} {
		img := image(t, 40, single)
		seen := make(map[int]bool)
		for track := 0; track < img.Cylinders(); track++ {
			for sector := 0; sector < img.SectorsPerTrack(); sector++ {
				start, end, err := img.Translate(track, sector, 0, 1, false, 0)
				require.NoError(t, err)
				assert.GreaterOrEqual(t, start, dmk.HeaderLength)
				assert.LessOrEqual(t, end, img.Len())
				assert.False(t, seen[start], "offset %d used twice", start)
				seen[start] = true
			}
		}
	}
}

func TestSectorsDoNotOverlap(t *testing.T) {
	img := image(t, 1, false)
	var offsets []int
	for sector := 0; sector < img.SectorsPerTrack(); sector++ {
		off, err := img.SectorOffset(0, sector)
		require.NoError(t, err)
		offsets = append(offsets, off)
	}
	for i, a := range offsets {
		for j, b := range offsets {
			if i != j {
				assert.True(t, a+dmk.SectorSize <= b || b+dmk.SectorSize <= a,
					"sectors %d and %d overlap", i, j)
			}
		}
	}
}

func TestLogicalSectorAndSector(t *testing.T) {

	b := dmktest.NewBuilder(40, true)
	payload := dmktest.Pattern(256, 7)
	require.NoError(t, b.WriteRun(5*18+4, payload))

	img, err := b.Image()
	require.NoError(t, err)

	track, sector := img.LogicalSector(5*18 + 4)
	assert.Equal(t, 5, track)
	assert.Equal(t, 4, sector)

	data, err := img.Sector(track, sector)
	require.NoError(t, err)
	assert.Equal(t, payload, data)

	_, err = img.Slice(0, 10)
	assert.ErrorIs(t, err, dmk.ErrOutOfRange)
}
