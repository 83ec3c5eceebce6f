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
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/go-restruct/restruct"
)

//
const FileHeaderLength = 9

//
const (
	fileHeaderStart = 0x55
	fileHeaderEnd   = 0xaa
)

//
var ErrNoFileHeader = errors.New("no DragonDOS file header")

// FileType is the type stored in a DragonDOS file header
type FileType byte

//
const (
	TypeBASIC  FileType = 0x01
	TypeBinary FileType = 0x02
)

//
func (t FileType) String() string {

	switch t {

	case TypeBASIC:
		return "BASIC"

	case TypeBinary:
		return "binary"

	default:
		return fmt.Sprintf("<unknown 0x%02x>", byte(t))
	}
}

// FileHeader is the header DragonDOS places in front of BASIC programs and
// binary files saved with SAVE. Addresses are big endian.
type FileHeader struct {
	Start  byte     `json:"-"`
	Type   FileType `json:"type"`
	Load   uint16   `json:"loadAddress"`
	Length uint16   `json:"length"`
	Exec   uint16   `json:"execAddress"`
	End    byte     `json:"-"`
}

// ParseFileHeader decodes the file header at the start of data.
func ParseFileHeader(data []byte) (*FileHeader, error) {

	if len(data) < FileHeaderLength {
		return nil, fmt.Errorf("%w: only %d bytes", ErrNoFileHeader, len(data))
	}

	h := &FileHeader{}
	if err := restruct.Unpack(
		data[:FileHeaderLength], binary.BigEndian, h); err != nil {
		return nil, err
	}

	if h.Start != fileHeaderStart || h.End != fileHeaderEnd {
		return nil, fmt.Errorf("%w: markers 0x%02x/0x%02x", ErrNoFileHeader,
			h.Start, h.End)
	}

	return h, nil
}

// Payload returns the file content following the header, limited to the
// length given in the header.
func (h *FileHeader) Payload(data []byte) []byte {
	if len(data) < FileHeaderLength {
		return []byte{}
	}
	data = data[FileHeaderLength:]
	if int(h.Length) < len(data) {
		data = data[:h.Length]
	}
	return data
}

// Emit prints the header fields.
func (h *FileHeader) Emit(w io.Writer) {
	fmt.Fprintf(w, "Type                : %s\n", h.Type)
	fmt.Fprintf(w, "Load address        : 0x%04X\n", h.Load)
	fmt.Fprintf(w, "Length              : %d\n", h.Length)
	fmt.Fprintf(w, "Exec address        : 0x%04X\n", h.Exec)
}
