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

package dmk

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/go-restruct/restruct"
	log "github.com/sirupsen/logrus"
)

// Header is the fixed DMK container header
type Header struct {
	WriteProtect byte
	Cylinders    byte
	TrackLength  uint16
	Options      byte
	Reserved     [7]byte
	DriveType    [4]byte
}

// Info summarizes header fields and derived geometry of an image
type Info struct {
	WriteProtect byte   `json:"writeProtect"`
	Cylinders    int    `json:"cylinders"`
	Sectors      int    `json:"sectors"`
	Sides        int    `json:"sides"`
	TrackLength  int    `json:"trackLength"`
	Options      byte   `json:"options"`
	Reserved     []byte `json:"reserved"`
	DriveType    []byte `json:"driveType"`
	DiskSize     int    `json:"diskSize"`
}

// Image is a DMK image loaded into memory. It is not modified after loading.
type Image struct {
	header      Header
	data        []byte
	cylinders   int
	sectors     int
	sides       int
	trackLength int
}

// Load reads the DMK image at path.
func Load(path string) (*Image, error) {

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrImageNotFound, err)
	}
	defer f.Close()

	img, err := Read(bufio.NewReader(f))
	if err != nil {
		return nil, fmt.Errorf("error loading %s: %w", path, err)
	}

	return img, nil
}

// NewImage creates an image from raw DMK bytes.
func NewImage(data []byte) (*Image, error) {
	return Read(bytes.NewReader(data))
}

// Read reads a DMK image from in. Geometry is derived from the header's
// option flags, and exactly header plus cylinders times track length bytes
// are consumed.
func Read(in io.Reader) (*Image, error) {

	raw := make([]byte, HeaderLength)
	if _, err := io.ReadFull(in, raw); err != nil {
		return nil, fmt.Errorf("%w: incomplete header: %v",
			ErrImageTruncated, err)
	}

	img := &Image{}
	if err := restruct.Unpack(raw, binary.LittleEndian, &img.header); err != nil {
		return nil, fmt.Errorf("error decoding header: %v", err)
	}

	img.cylinders = int(img.header.Cylinders)
	if img.header.Options&OptionSingleSided == 0 {
		img.sides = 2
		img.sectors = SectorsDoubleSided
		img.trackLength = TrackLengthDoubleSided
	} else {
		img.sides = 1
		img.sectors = SectorsSingleSided
		img.trackLength = TrackLengthSingleSided
	}

	log.WithFields(log.Fields{
		"cylinders":   img.cylinders,
		"sides":       img.sides,
		"sectors":     img.sectors,
		"trackLength": img.trackLength,
	}).Debug("image geometry")

	if declared := int(img.header.TrackLength) * img.sides; declared != 0 &&
		declared != img.trackLength {
		log.Warnf("header declares track length %d, using %d",
			img.header.TrackLength, img.trackLength)
	}

	img.data = make([]byte, HeaderLength+img.DiskSize())
	copy(img.data, raw)

	if read, err := io.ReadFull(in, img.data[HeaderLength:]); err != nil {
		return nil, fmt.Errorf("%w: expected %d bytes of track data, got %d",
			ErrImageTruncated, img.DiskSize(), read)
	}

	return img, nil
}

//
func (i *Image) Header() Header {
	return i.header
}

//
func (i *Image) Cylinders() int {
	return i.cylinders
}

// SectorsPerTrack returns the number of sectors per track, counting both
// sides of two-sided images.
func (i *Image) SectorsPerTrack() int {
	return i.sectors
}

//
func (i *Image) Sides() int {
	return i.sides
}

//
func (i *Image) TrackLength() int {
	return i.trackLength
}

// DiskSize is the length of the track data following the header
func (i *Image) DiskSize() int {
	return i.cylinders * i.trackLength
}

//
func (i *Image) Len() int {
	return len(i.data)
}

//
func (i *Image) IsWriteProtected() bool {
	return i.header.WriteProtect != 0
}

// Info returns the geometry summary of this image.
func (i *Image) Info() Info {
	return Info{
		WriteProtect: i.header.WriteProtect,
		Cylinders:    i.cylinders,
		Sectors:      i.sectors,
		Sides:        i.sides,
		TrackLength:  i.trackLength,
		Options:      i.header.Options,
		Reserved:     append([]byte{}, i.header.Reserved[:]...),
		DriveType:    append([]byte{}, i.header.DriveType[:]...),
		DiskSize:     i.DiskSize(),
	}
}

// Emit prints the geometry summary.
func (i Info) Emit(w io.Writer) {
	fmt.Fprintf(w, "\nDisk Info\n---------\n")
	fmt.Fprintf(w, "Write-protect       : %d\n", i.WriteProtect)
	fmt.Fprintf(w, "Number of tracks    : %d\n", i.Cylinders)
	fmt.Fprintf(w, "Number of sides     : %d\n", i.Sides)
	fmt.Fprintf(w, "Number of sectors   : %d\n", i.Sectors)
	fmt.Fprintf(w, "Track length        : %d\n", i.TrackLength)
	fmt.Fprintf(w, "Option flags        : %08b\n", i.Options)
	fmt.Fprintf(w, "Reserved            : %s\n", bytesToString(i.Reserved))
	fmt.Fprintf(w, "Drive type          : %s\n", bytesToString(i.DriveType))
	fmt.Fprintf(w, "Disk size           : %d\n\n", i.DiskSize)
}

//
func bytesToString(data []byte) string {
	ret := make([]string, len(data))
	for ix, b := range data {
		ret[ix] = strconv.Itoa(int(b))
	}
	return strings.Join(ret, " ")
}
