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
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xelalexv/dragondmk/pkg/disk/dragondos"
	"github.com/xelalexv/dragondmk/pkg/disk/format"
)

//
var errUsage = errors.New("wrong number of arguments, see 'help'")

//
type commands struct {
	disk *dragondos.Disk
}

//
func (c *commands) dir(w io.Writer, args []string) error {
	dir, err := c.disk.Dir()
	if err != nil {
		return err
	}
	dir.Emit(w)
	return nil
}

//
func (c *commands) info(w io.Writer, args []string) error {
	c.disk.Image().Info().Emit(w)
	return nil
}

//
func (c *commands) header(w io.Writer, args []string) error {
	if len(args) != 1 {
		return errUsage
	}
	_, data, err := c.read(args[0])
	if err != nil {
		return err
	}
	h, err := dragondos.ParseFileHeader(data)
	if err != nil {
		return err
	}
	h.Emit(w)
	return nil
}

//
func (c *commands) cat(w io.Writer, args []string) error {
	if len(args) != 1 {
		return errUsage
	}
	_, data, err := c.read(args[0])
	if err != nil {
		return err
	}
	text, err := dragondos.Render(data)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, text)
	return nil
}

// dump hex dumps the logical sector given as number, or else the named file
func (c *commands) dump(w io.Writer, args []string) error {

	if len(args) != 1 {
		return errUsage
	}

	var data []byte

	if lsn, err := strconv.Atoi(args[0]); err == nil {
		img := c.disk.Image()
		track, sector := img.LogicalSector(lsn)
		if data, err = img.Sector(track, sector); err != nil {
			return err
		}
	} else if _, data, err = c.read(args[0]); err != nil {
		return err
	}

	d := hex.Dumper(w)
	if _, err := d.Write(data); err != nil {
		return err
	}
	return d.Close()
}

//
func (c *commands) get(w io.Writer, args []string) error {

	if len(args) < 1 || len(args) > 2 {
		return errUsage
	}

	f, data, err := c.read(args[0])
	if err != nil {
		return err
	}

	out := f.FullName()
	if len(args) == 2 {
		out = args[1]
	}

	if err := format.SaveFile(out, false, func(o io.Writer) error {
		_, err := o.Write(data)
		return err
	}); err != nil {
		return err
	}

	fmt.Fprintf(w, "%d bytes saved to %s\n", len(data), out)
	return nil
}

//
func (c *commands) cas(w io.Writer, args []string) error {

	if len(args) != 2 {
		return errUsage
	}

	f, data, err := c.read(args[0])
	if err != nil {
		return err
	}

	if err := format.ExportFile(
		strings.TrimRight(f.Name, " "), data, args[1], false); err != nil {
		return err
	}

	fmt.Fprintf(w, "%s exported to %s\n", f.FullName(), args[1])
	return nil
}

//
func (c *commands) vdk(w io.Writer, args []string) error {

	if len(args) != 1 {
		return errUsage
	}

	if err := format.ExportImage(c.disk.Image(), args[0], false); err != nil {
		return err
	}

	fmt.Fprintf(w, "disk image converted to %s\n", args[0])
	return nil
}

//
func (c *commands) read(file string) (*dragondos.File, []byte, error) {
	f, err := c.disk.Find(dragondos.SplitName(file))
	if err != nil {
		return nil, nil, err
	}
	data, err := c.disk.Reconstruct(f.Extents)
	return f, data, err
}
