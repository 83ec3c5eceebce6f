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

package shell

import (
	"bytes"
	"io/ioutil"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xelalexv/dragondmk/pkg/disk/dmk/dmktest"
	"github.com/xelalexv/dragondmk/pkg/disk/dragondos"
	"github.com/xelalexv/dragondmk/pkg/disk/format"
)

//
func testCommands(t *testing.T) *commands {

	b := dmktest.NewBuilder(40, true)
	require.NoError(t, b.WriteRun(400, []byte("10 PRINT\r20 END\r")))

	img, err := b.Image()
	require.NoError(t, err)
	disk := dragondos.NewDisk(img)

	e := make([]byte, dragondos.EntryLength)
	copy(e[1:9], "PROG")
	copy(e[9:12], "TXT")
	e[12], e[13], e[14], e[24] = byte(400>>8), byte(400&0xff), 1, 16

	off, err := disk.SlotOffset(0)
	require.NoError(t, err)
	require.NoError(t, b.WriteAt(off, e))
	off, err = disk.SlotOffset(1)
	require.NoError(t, err)
	require.NoError(t, b.WriteAt(off, []byte{dragondos.FlagEnd}))

	img, err = b.Image()
	require.NoError(t, err)
	return &commands{disk: dragondos.NewDisk(img)}
}

func TestShellDir(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, testCommands(t).dir(&out, nil))
	assert.Contains(t, out.String(), "PROG    .TXT   16")
}

func TestShellCat(t *testing.T) {
	c := testCommands(t)
	var out bytes.Buffer
	require.NoError(t, c.cat(&out, []string{"prog.txt"}))
	assert.Equal(t, "10 PRINT\n20 END\n\n", out.String())
	assert.ErrorIs(t, c.cat(&out, nil), errUsage)
	assert.ErrorIs(t, c.cat(&out, []string{"NONE"}), dragondos.ErrFileNotFound)
}

func TestShellDump(t *testing.T) {
	c := testCommands(t)
	var out bytes.Buffer
	require.NoError(t, c.dump(&out, []string{"400"}))
	assert.Contains(t, out.String(), "|10 PRINT.20 END.|")

	out.Reset()
	require.NoError(t, c.dump(&out, []string{"PROG.TXT"}))
	assert.Contains(t, out.String(), "00000000")
}

func TestShellHeader(t *testing.T) {
	var out bytes.Buffer
	assert.ErrorIs(t, testCommands(t).header(&out, []string{"PROG.TXT"}),
		dragondos.ErrNoFileHeader)
}

func TestShellGet(t *testing.T) {
	c := testCommands(t)
	path := filepath.Join(t.TempDir(), "prog.txt")

	var out bytes.Buffer
	require.NoError(t, c.get(&out, []string{"PROG.TXT", path}))
	data, err := ioutil.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "10 PRINT\r20 END\r", string(data))

	assert.ErrorIs(t, c.get(&out, []string{"PROG.TXT", path}),
		format.ErrFileExists)
}

func TestShellCas(t *testing.T) {
	var out bytes.Buffer
	path := filepath.Join(t.TempDir(), "prog.cas")
	assert.ErrorIs(t, testCommands(t).cas(&out, []string{"PROG.TXT", path}),
		format.ErrUnsupportedFileType)
}
