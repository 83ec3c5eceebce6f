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

package dragondos_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/xelalexv/dragondmk/pkg/disk/dmk/dmktest"
	"github.com/xelalexv/dragondmk/pkg/disk/dragondos"
)

// primary builds a directory entry holding up to four runs
func primary(flags byte, name, ext string, runs [][2]int, next byte) []byte {
	e := make([]byte, dragondos.EntryLength)
	e[0] = flags
	copy(e[1:9], name)
	copy(e[9:12], ext)
	for ix, r := range runs {
		putRun(e[12+3*ix:], r)
	}
	e[24] = next
	return e
}

// continuation builds a continuation record holding up to seven runs. Its
// flag byte doubles as the high byte of the first run's LSN.
func continuation(flags byte, runs [][2]int, next byte) []byte {
	e := make([]byte, dragondos.EntryLength)
	for ix, r := range runs {
		putRun(e[3*ix:], r)
	}
	e[0] |= flags | dragondos.FlagContinuation
	e[24] = next
	return e
}

//
func putRun(b []byte, r [2]int) {
	b[0] = byte(r[0] >> 8)
	b[1] = byte(r[0])
	b[2] = byte(r[1])
}

//
func end() []byte {
	e := make([]byte, dragondos.EntryLength)
	e[0] = dragondos.FlagEnd
	return e
}

//
func writeEntries(t *testing.T, b *dmktest.Builder, entries ...[]byte) {
	img, err := b.Image()
	require.NoError(t, err)
	disk := dragondos.NewDisk(img)
	for slot, e := range entries {
		if e == nil {
			continue
		}
		off, err := disk.SlotOffset(slot)
		require.NoError(t, err)
		require.NoError(t, b.WriteAt(off, e))
	}
}

//
func newDisk(t *testing.T, b *dmktest.Builder) *dragondos.Disk {
	img, err := b.Image()
	require.NoError(t, err)
	return dragondos.NewDisk(img)
}
