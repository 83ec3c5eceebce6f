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

// Package dmktest builds synthetic DMK images for tests.
package dmktest

import (
	"fmt"
	"io/ioutil"
	"path/filepath"

	"github.com/xelalexv/dragondmk/pkg/disk/dmk"
)

//
type Builder struct {
	data []byte
	geo  *dmk.Image
}

// NewBuilder creates a builder for a blank image with the given number of
// cylinders.
func NewBuilder(cylinders int, singleSided bool) *Builder {

	trackLength := dmk.TrackLengthDoubleSided
	var options byte
	if singleSided {
		trackLength = dmk.TrackLengthSingleSided
		options = dmk.OptionSingleSided
	}

	data := make([]byte, dmk.HeaderLength+cylinders*trackLength)
	data[1] = byte(cylinders)
	data[2] = byte(dmk.TrackLengthSingleSided & 0xff)
	data[3] = byte(dmk.TrackLengthSingleSided >> 8)
	data[4] = options
	copy(data[12:], []byte{0x12, 0x34, 0x56, 0x78})

	geo, err := dmk.NewImage(data)
	if err != nil {
		panic(err)
	}

	return &Builder{data: data, geo: geo}
}

// WriteAt places payload at offset off of the image.
func (b *Builder) WriteAt(off int, payload []byte) error {
	if off < dmk.HeaderLength || off+len(payload) > len(b.data) {
		return fmt.Errorf("write at %d with length %d exceeds image",
			off, len(payload))
	}
	copy(b.data[off:], payload)
	return nil
}

// WriteSector places payload into the given sector. Payloads longer than a
// sector are rejected.
func (b *Builder) WriteSector(track, sector int, payload []byte) error {
	if len(payload) > dmk.SectorSize {
		return fmt.Errorf("payload of %d bytes exceeds sector", len(payload))
	}
	off, err := b.geo.SectorOffset(track, sector)
	if err != nil {
		return err
	}
	return b.WriteAt(off, payload)
}

// WriteRun spreads data across consecutive logical sectors starting at lsn.
func (b *Builder) WriteRun(lsn int, data []byte) error {
	for len(data) > 0 {
		n := len(data)
		if n > dmk.SectorSize {
			n = dmk.SectorSize
		}
		track, sector := b.geo.LogicalSector(lsn)
		if err := b.WriteSector(track, sector, data[:n]); err != nil {
			return err
		}
		data = data[n:]
		lsn++
	}
	return nil
}

//
func (b *Builder) Bytes() []byte {
	ret := make([]byte, len(b.data))
	copy(ret, b.data)
	return ret
}

//
func (b *Builder) Image() (*dmk.Image, error) {
	return dmk.NewImage(b.data)
}

// Save writes the image into dir and returns its path.
func (b *Builder) Save(dir, name string) (string, error) {
	path := filepath.Join(dir, name)
	return path, ioutil.WriteFile(path, b.data, 0644)
}

// Pattern returns n bytes with a recognizable, sector dependent pattern.
func Pattern(n int, seed byte) []byte {
	ret := make([]byte, n)
	for ix := range ret {
		ret[ix] = seed + byte(ix) + byte(ix/dmk.SectorSize)*0x40
	}
	return ret
}
