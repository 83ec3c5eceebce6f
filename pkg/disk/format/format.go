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
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/xelalexv/dragondmk/pkg/disk/dmk"
	"github.com/xelalexv/dragondmk/pkg/disk/dragondos"
)

//
var ErrUnsupportedFileType = errors.New("unsupported file type")

// FileWriter interface for writing a single file into a container
type FileWriter interface {
	WriteFile(x *Export, out io.Writer) error
}

// ImageWriter interface for writing out a complete disk
type ImageWriter interface {
	WriteImage(img *dmk.Image, out io.Writer) error
}

//
func NewFileFormat(typ string) (FileWriter, error) {

	switch strings.ToLower(typ) {

	case "cas":
		return NewCAS(), nil

	default:
		return nil, fmt.Errorf("unsupported file container format: %s", typ)
	}
}

//
func NewImageFormat(typ string) (ImageWriter, error) {

	switch strings.ToLower(typ) {

	case "vdk":
		return NewVDK(), nil

	default:
		return nil, fmt.Errorf("unsupported image format: %s", typ)
	}
}

// Export is a file with everything a container writer needs: its name, the
// decoded DragonDOS header, and the payload following that header.
type Export struct {
	Name   string
	Header *dragondos.FileHeader
	Data   []byte
}

// NewExport prepares file content for export. Only BASIC programs and binary
// files can be exported, since other files lack load and exec addresses.
func NewExport(name string, content []byte) (*Export, error) {

	h, err := dragondos.ParseFileHeader(content)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrUnsupportedFileType, name, err)
	}

	if h.Type != dragondos.TypeBASIC && h.Type != dragondos.TypeBinary {
		return nil, fmt.Errorf("%w: %s has type %s", ErrUnsupportedFileType,
			name, h.Type)
	}

	return &Export{Name: name, Header: h, Data: h.Payload(content)}, nil
}

// ExportFile writes the given file content into a container file at path.
// The container type is determined by the path's extension.
func ExportFile(name string, content []byte, path string, force bool) error {

	fm, err := NewFileFormat(Extension(path))
	if err != nil {
		return err
	}

	x, err := NewExport(name, content)
	if err != nil {
		return err
	}

	return SaveFile(path, force, func(out io.Writer) error {
		return fm.WriteFile(x, out)
	})
}

// ExportImage writes the complete disk into an image file at path.
func ExportImage(img *dmk.Image, path string, force bool) error {

	fm, err := NewImageFormat(Extension(path))
	if err != nil {
		return err
	}

	return SaveFile(path, force, func(out io.Writer) error {
		return fm.WriteImage(img, out)
	})
}
