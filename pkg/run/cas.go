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

package run

import (
	"fmt"
	"strings"

	"github.com/xelalexv/dragondmk/pkg/disk/format"
)

//
func NewCas() *Cas {

	c := &Cas{}
	c.Runner = *NewRunner(
		"cas -i|--image {image} -f|--file {file} -o|--output {file} [--force]",
		"export a file to cassette image",
		"\nUse the cas command to convert a file from a disk image into a cassette image.",
		"", `- Only BASIC programs and binary files can be exported, since other files
  lack the load and exec addresses a cassette image needs.

`+runnerHelpEpilogue, c.Run)

	c.AddBaseSettings()
	c.AddSetting(&c.File, "file", "f", "", nil, "file on disk, e.g. HELLO.BAS",
		true)
	c.AddSetting(&c.Output, "output", "o", "", nil, "cassette output file",
		true)
	c.AddSetting(&c.Force, "force", "", "", false,
		"force overwriting output file", false)

	return c
}

//
type Cas struct {
	//
	Runner
	//
	File   string
	Output string
	Force  bool
}

//
func (c *Cas) Run() error {

	c.ParseSettings()

	if ext := format.Extension(c.Output); ext != "cas" {
		return fmt.Errorf("output file needs .cas extension, got '%s'", ext)
	}

	_, f, data, err := c.readFile(c.File)
	if err != nil {
		return err
	}

	if !confirmOverwrite(c.Output, c.Force) {
		return nil
	}

	if err := format.ExportFile(
		strings.TrimRight(f.Name, " "), data, c.Output, true); err != nil {
		return err
	}

	fmt.Printf("%s exported to %s\n", f.FullName(), c.Output)
	return nil
}
