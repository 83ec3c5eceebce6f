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
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xelalexv/dragondmk/pkg/disk/dmk"
	"github.com/xelalexv/dragondmk/pkg/disk/dmk/dmktest"
	"github.com/xelalexv/dragondmk/pkg/disk/dragondos"
)

func TestSlotOffset(t *testing.T) {

	for _, single := range []bool{true, false} {
		disk := newDisk(t, dmktest.NewBuilder(40, single))
		img := disk.Image()

		assert.Equal(t, img.TrackLength()*20+1648, disk.DirectoryBase())

		off, err := disk.SlotOffset(0)
		require.NoError(t, err)
		assert.Equal(t, disk.DirectoryBase(), off)

		off, err = disk.SlotOffset(3)
		require.NoError(t, err)
		assert.Equal(t, disk.DirectoryBase()+3*25, off)

		off, err = disk.SlotOffset(12)
		require.NoError(t, err)
		assert.Equal(t, disk.DirectoryBase()+12*25, off)

		_, err = disk.SlotOffset(dragondos.DirectoryCapacity)
		assert.ErrorIs(t, err, dmk.ErrOutOfRange)
		_, err = disk.SlotOffset(-1)
		assert.ErrorIs(t, err, dmk.ErrOutOfRange)
	}
}

func TestSlotOffsetGolden(t *testing.T) {

	disk := newDisk(t, dmktest.NewBuilder(40, true))
	for slot, want := range map[int]int{
		0:  129648,
		3:  129723,
		10: 129898,
		12: 129948,
	} {
		off, err := disk.SlotOffset(slot)
		require.NoError(t, err)
		assert.Equal(t, want, off, "slot %d", slot)
	}
}

func TestDirScenarioA(t *testing.T) {

	b := dmktest.NewBuilder(40, true)
	content := []byte("0123456789")
	require.NoError(t, b.WriteRun(400, content))
	writeEntries(t, b,
		primary(0, "HELLO", "BAS", [][2]int{{400, 1}}, 10),
		end())

	disk := newDisk(t, b)
	assert.Equal(t, 18, disk.Image().SectorsPerTrack())

	dir, err := disk.Dir()
	require.NoError(t, err)
	require.Len(t, dir.Files, 1)

	f := dir.Files[0]
	assert.Equal(t, "HELLO   ", f.Name)
	assert.Equal(t, "BAS", f.Extension)
	assert.Equal(t, "HELLO.BAS", f.FullName())
	assert.Equal(t, 10, f.Size)
	assert.Equal(t, 256, f.Allocated)
	assert.Equal(t, 18*38*256-256, dir.Free)

	data, err := disk.ReadFile("HELLO", "BAS")
	require.NoError(t, err)
	assert.Equal(t, content, data)

	data, err = disk.ReadFile("hello", "bas")
	require.NoError(t, err)
	assert.Equal(t, content, data)
}

func TestDirScenarioB(t *testing.T) {

	b := dmktest.NewBuilder(40, true)
	content := dmktest.Pattern(6*256+100, 3)
	require.NoError(t, b.WriteRun(400, content[:4*256]))
	require.NoError(t, b.WriteRun(450, content[4*256:5*256]))
	require.NoError(t, b.WriteRun(500, content[5*256:]))

	other := []byte("other file")
	require.NoError(t, b.WriteRun(600, other))

	writeEntries(t, b,
		primary(dragondos.FlagContinued, "BIG", "BIN",
			[][2]int{{400, 4}, {450, 1}}, 3),
		primary(dragondos.FlagDeleted, "GONE", "DAT", [][2]int{{700, 2}}, 5),
		primary(dragondos.FlagProtected, "OTHER", "DAT",
			[][2]int{{600, 1}}, byte(len(other))),
		continuation(0, [][2]int{{0, 0}, {500, 2}}, 100),
		end())

	disk := newDisk(t, b)
	dir, err := disk.Dir()
	require.NoError(t, err)
	require.Len(t, dir.Files, 3)

	big := dir.Files[0]
	assert.Equal(t, []dragondos.Run{{400, 4}, {450, 1}, {500, 2}},
		big.Extents.Runs)
	assert.Equal(t, 100, big.Extents.Trailing)
	assert.False(t, big.Extents.Truncated)

	// declared size only counts the first two triples, plus byte 24
	assert.Equal(t, (4+1)*256-256+3, big.Size)
	assert.Equal(t, (4+1)*256, big.Allocated)

	assert.Equal(t, "OTHER.DAT", dir.Files[1].FullName())
	assert.True(t, dir.Files[1].Protected)

	// the continuation record is listed like any other live entry
	cont := dir.Files[2]
	assert.Equal(t, 3, cont.Slot)
	assert.Equal(t, -256+100, cont.Size)
	assert.Equal(t, 0, cont.Allocated)

	assert.Equal(t, 18*38*256-5*256-256, dir.Free)

	data, err := disk.ReadFile("BIG", "BIN")
	require.NoError(t, err)
	assert.Equal(t, content, data)

	data, err = disk.ReadFile("OTHER", "DAT")
	require.NoError(t, err)
	assert.Equal(t, other, data)
}

func TestDirThreeTriples(t *testing.T) {

	b := dmktest.NewBuilder(40, true)
	content := dmktest.Pattern(2*256+10, 5)
	require.NoError(t, b.WriteRun(100, content[:256]))
	require.NoError(t, b.WriteRun(200, content[256:512]))
	require.NoError(t, b.WriteRun(300, content[512:]))

	writeEntries(t, b,
		primary(0, "THREE", "DAT", [][2]int{{100, 1}, {200, 1}, {300, 1}}, 10),
		primary(0, "TWO", "DAT", [][2]int{{400, 2}}, 0),
		end())

	disk := newDisk(t, b)
	dir, err := disk.Dir()
	require.NoError(t, err)
	require.Len(t, dir.Files, 2)

	three := dir.Files[0]
	assert.Equal(t, 266, three.Size)
	assert.Equal(t, 512, three.Allocated)
	assert.Len(t, three.Extents.Runs, 3)

	two := dir.Files[1]
	assert.Equal(t, 256, two.Size)
	assert.Equal(t, 512, two.Allocated)

	allocated := 0
	for _, f := range dir.Files {
		allocated += f.Allocated
	}
	assert.Equal(t, disk.Capacity()-allocated, dir.Free)
	assert.Equal(t, 18*38*256-1024, dir.Free)

	data, err := disk.ReadFile("THREE", "DAT")
	require.NoError(t, err)
	assert.Equal(t, content, data)
}

func TestDirScenarioD(t *testing.T) {

	b := dmktest.NewBuilder(40, true)
	writeEntries(t, b,
		primary(0, "HELLO", "BAS", [][2]int{{400, 1}}, 10),
		end())
	disk := newDisk(t, b)

	_, err := disk.ReadFile("HELLO", "BIN")
	assert.ErrorIs(t, err, dragondos.ErrFileNotFound)

	_, err = disk.ReadFile("HELL", "BAS")
	assert.ErrorIs(t, err, dragondos.ErrFileNotFound)

	_, err = disk.ReadFile("HELLO", "")
	assert.ErrorIs(t, err, dragondos.ErrFileNotFound)
}

func TestDirEmpty(t *testing.T) {
	for _, single := range []bool{true, false} {
		b := dmktest.NewBuilder(40, single)
		writeEntries(t, b, end())
		disk := newDisk(t, b)

		dir, err := disk.Dir()
		require.NoError(t, err)
		assert.Empty(t, dir.Files)
		assert.Equal(t, disk.Capacity(), dir.Free)
	}
	assert.Equal(t, 36*39*256,
		newDisk(t, dmktest.NewBuilder(40, false)).Capacity())
}

func TestDirStopsAtEndMarker(t *testing.T) {

	b := dmktest.NewBuilder(40, true)
	writeEntries(t, b,
		primary(0, "ONE", "DAT", [][2]int{{400, 1}}, 1),
		end(),
		primary(0, "HIDDEN", "DAT", [][2]int{{401, 1}}, 1))

	dir, err := newDisk(t, b).Dir()
	require.NoError(t, err)
	require.Len(t, dir.Files, 1)
	assert.Equal(t, "ONE.DAT", dir.Files[0].FullName())
}

func TestDirTwelveEntries(t *testing.T) {

	b := dmktest.NewBuilder(40, true)

	var entries [][]byte
	var free = 18 * 38 * 256
	for ix := 0; ix < 12; ix++ {
		entries = append(entries, primary(0, "FILE", string(rune('A'+ix)),
			[][2]int{{400 + ix, 1}}, 1))
		free -= 256
	}
	entries = append(entries, end())
	writeEntries(t, b, entries...)

	dir, err := newDisk(t, b).Dir()
	require.NoError(t, err)
	require.Len(t, dir.Files, 12)
	assert.Equal(t, "FILE.L", dir.Files[11].FullName())
	assert.Equal(t, free, dir.Free)
}

func TestDirUnterminated(t *testing.T) {

	b := dmktest.NewBuilder(40, true)
	var entries [][]byte
	for ix := 0; ix < dragondos.DirectoryCapacity; ix++ {
		entries = append(entries, primary(dragondos.FlagDeleted, "", "", nil, 0))
	}
	writeEntries(t, b, entries...)

	dir, err := newDisk(t, b).Dir()
	require.NoError(t, err)
	assert.Empty(t, dir.Files)
}

func TestDirTooFewCylinders(t *testing.T) {
	_, err := newDisk(t, dmktest.NewBuilder(10, true)).Dir()
	assert.ErrorIs(t, err, dmk.ErrOutOfRange)
}

func TestNameDecoding(t *testing.T) {

	e, err := dragondos.NewEntry(0, primary(0, "AB\x00C", "X", nil, 0))
	require.NoError(t, err)
	assert.Equal(t, "AB C    ", e.Name())
	assert.Equal(t, "X  ", e.Extension())

	_, err = dragondos.NewEntry(0, make([]byte, 24))
	assert.Error(t, err)
}

func TestDirEmit(t *testing.T) {

	b := dmktest.NewBuilder(40, true)
	writeEntries(t, b,
		primary(0, "HELLO", "BAS", [][2]int{{400, 1}}, 10),
		end())

	dir, err := newDisk(t, b).Dir()
	require.NoError(t, err)

	var out bytes.Buffer
	dir.Emit(&out)
	assert.Contains(t, out.String(), "HELLO   .BAS   10\n")
	assert.Contains(t, out.String(), "FREE BYTES 174848\n")
}

func TestSplitName(t *testing.T) {
	name, ext := dragondos.SplitName("HELLO.BAS")
	assert.Equal(t, "HELLO", name)
	assert.Equal(t, "BAS", ext)

	name, ext = dragondos.SplitName("README")
	assert.Equal(t, "README", name)
	assert.Equal(t, "", ext)

	assert.Equal(t, "A.B", dragondos.JoinName("A", "B"))
	assert.Equal(t, "A", dragondos.JoinName("A", ""))
}
