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

package format

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/go-restruct/restruct"
	log "github.com/sirupsen/logrus"

	"github.com/xelalexv/dragondmk/pkg/disk/dmk"
)

//
const VDKHeaderLength = 256

//
const (
	vdkVersion       = 0x10
	vdkCompatVersion = 0x10
	vdkSourceID      = 'D'
	vdkSourceVersion = 0x01
)

// vdkHeader is the fixed size header of a VDK image; multi-byte fields are
// little endian.
type vdkHeader struct {
	Signature     [2]byte
	HeaderLength  uint16
	Version       byte
	CompatVersion byte
	SourceID      byte
	SourceVersion byte
	Cylinders     byte
	Sides         byte
	Flags         byte
	Compression   byte // compression in bits 0-2, name length in bits 3-7
	Padding       [VDKHeaderLength - 12]byte
}

// VDK is a writer for VDK images. A VDK image holds the bare sector payloads
// of the whole disk, ordered by track and then sector.
type VDK struct{}

//
func NewVDK() *VDK {
	return &VDK{}
}

//
func (v *VDK) header(img *dmk.Image) ([]byte, error) {
	return restruct.Pack(binary.LittleEndian, &vdkHeader{
		Signature:     [2]byte{'d', 'k'},
		HeaderLength:  VDKHeaderLength,
		Version:       vdkVersion,
		CompatVersion: vdkCompatVersion,
		SourceID:      vdkSourceID,
		SourceVersion: vdkSourceVersion,
		Cylinders:     byte(img.Cylinders()),
		Sides:         byte(img.Sides()),
	})
}

// WriteImage writes the VDK header followed by every sector of img, as
// located by the sector address translation.
func (v *VDK) WriteImage(img *dmk.Image, out io.Writer) error {

	hd, err := v.header(img)
	if err != nil {
		return fmt.Errorf("error encoding VDK header: %v", err)
	}

	w := bufio.NewWriter(out)
	if _, err := w.Write(hd); err != nil {
		return err
	}

	for track := 0; track < img.Cylinders(); track++ {
		for sector := 0; sector < img.SectorsPerTrack(); sector++ {
			data, err := img.Sector(track, sector)
			if err != nil {
				return err
			}
			if _, err := w.Write(data); err != nil {
				return err
			}
		}
	}

	log.Debugf("wrote %d sectors",
		img.Cylinders()*img.SectorsPerTrack())

	return w.Flush()
}
