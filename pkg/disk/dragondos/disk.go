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

package dragondos

import (
	"bytes"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/xelalexv/dragondmk/pkg/disk/dmk"
)

// Disk gives read access to the DragonDOS filesystem of a DMK image
type Disk struct {
	img *dmk.Image
}

//
func NewDisk(img *dmk.Image) *Disk {
	return &Disk{img: img}
}

//
func (d *Disk) Image() *dmk.Image {
	return d.img
}

// Find looks up a file in the directory.
func (d *Disk) Find(name, ext string) (*File, error) {
	dir, err := d.Dir()
	if err != nil {
		return nil, err
	}
	return dir.Find(name, ext)
}

// ReadFile returns the contents of the file with the given name and
// extension. Both have to match; an existing name with another extension
// yields ErrFileNotFound.
func (d *Disk) ReadFile(name, ext string) ([]byte, error) {
	f, err := d.Find(name, ext)
	if err != nil {
		return nil, err
	}
	return d.Reconstruct(f.Extents)
}

/*
	Reconstruct concatenates the sectors of all runs in x. The final sector of
	the last run contributes only its trailing bytes, so the result has the
	file's exact size, including any DragonDOS file header at its start.
*/
func (d *Disk) Reconstruct(x *Extents) ([]byte, error) {

	var out bytes.Buffer
	out.Grow(x.Size())

	for r, run := range x.Runs {

		track, sector := d.img.LogicalSector(run.LSN)
		last := r == len(x.Runs)-1

		for ix := 0; ix < run.Length; ix++ {
			start, end, err := d.img.Translate(
				track, sector, ix, run.Length, last, x.Trailing)
			if err != nil {
				return nil, fmt.Errorf("error reading run at LSN %d: %w",
					run.LSN, err)
			}
			data, err := d.img.Slice(start, end)
			if err != nil {
				return nil, err
			}
			out.Write(data)
		}
	}

	if x.Truncated {
		log.Warnf("extent chain truncated, read %d bytes", out.Len())
	}

	return out.Bytes(), nil
}
