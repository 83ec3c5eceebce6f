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
	"bytes"
	"io"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/xelalexv/dragondmk/pkg/disk/dragondos"
)

//
const (
	CASLeaderLength = 128
	CASBlockLength  = 254
	CASNameLength   = 8
)

//
const (
	casLeader = 0x55
	casSync   = 0x3c
)

// block types
const (
	BlockName = 0x00
	BlockData = 0x01
	BlockEOF  = 0xff
)

// end of file marker
var casEOF = []byte{casLeader, casSync, BlockEOF}

// file types in the name block
const (
	casTypeBASIC  = 0x00
	casTypeBinary = 0x02
)

// CAS is a writer for Dragon cassette images. A CAS file holds the byte
// stream the cassette routines would record: a leader, a name block, another
// leader, the data blocks, and an end-of-file marker.
type CAS struct{}

//
func NewCAS() *CAS {
	return &CAS{}
}

// WriteFile encodes x as a cassette image. The complete image is assembled
// before anything is written to out.
func (c *CAS) WriteFile(x *Export, out io.Writer) error {

	var b bytes.Buffer

	writeLeader(&b)
	name := nameBlock(x)
	writeBlock(&b, BlockName, name, NameChecksum(name))
	writeLeader(&b)

	data := x.Data
	blocks := 0
	for len(data) > 0 {
		n := CASBlockLength
		var cs byte
		if len(data) > CASBlockLength {
			cs = Checksum(data[:n])
		} else if len(data) == CASBlockLength {
			cs = Checksum(data)
		} else {
			n = len(data)
			cs = PartialChecksum(data)
		}
		writeBlock(&b, BlockData, data[:n], cs)
		data = data[n:]
		blocks++
	}

	b.Write(casEOF)

	log.WithFields(log.Fields{
		"name":   x.Name,
		"length": len(x.Data),
		"blocks": blocks,
	}).Debug("cassette image encoded")

	_, err := out.Write(b.Bytes())
	return err
}

//
func nameBlock(x *Export) []byte {

	var b bytes.Buffer

	name := strings.ToUpper(x.Name)
	if len(name) > CASNameLength {
		name = name[:CASNameLength]
	}
	b.WriteString(name)
	for ix := len(name); ix < CASNameLength; ix++ {
		b.WriteByte(' ')
	}

	typ := byte(casTypeBinary)
	if x.Header.Type == dragondos.TypeBASIC {
		typ = casTypeBASIC
	}
	b.WriteByte(typ)
	b.WriteByte(0x00) // binary, not ASCII
	b.WriteByte(0x00) // continuous, no gaps
	writeUInt16(&b, int(x.Header.Exec))
	writeUInt16(&b, int(x.Header.Load))

	return b.Bytes()
}

//
func writeLeader(b *bytes.Buffer) {
	for ix := 0; ix < CASLeaderLength; ix++ {
		b.WriteByte(casLeader)
	}
}

//
func writeBlock(b *bytes.Buffer, typ byte, payload []byte, checksum byte) {
	b.WriteByte(casLeader)
	b.WriteByte(casSync)
	b.WriteByte(typ)
	b.WriteByte(byte(len(payload)))
	b.Write(payload)
	b.WriteByte(checksum)
	b.WriteByte(casLeader)
}

// Checksum is the checksum of a full data block, the sum of its payload
// modulo 256.
func Checksum(payload []byte) byte {
	sum := 0
	for _, p := range payload {
		sum += int(p)
	}
	return byte(sum)
}

// PartialChecksum is the checksum of the final, shorter data block. It adds
// the block's length byte and one to the payload sum.
func PartialChecksum(payload []byte) byte {
	return Checksum(payload) + byte(len(payload)) + 1
}

// NameChecksum is the additive checksum of the name block, taken over the
// length byte and the name block fields.
func NameChecksum(fields []byte) byte {
	return Checksum(fields) + byte(len(fields))
}

//
func writeUInt16(b *bytes.Buffer, i int) {
	b.WriteByte(byte(i >> 8))
	b.WriteByte(byte(i))
}
