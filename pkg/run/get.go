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

	"github.com/xelalexv/dragondmk/pkg/disk/dragondos"
)

//
func NewGet() *Get {

	g := &Get{}
	g.Runner = *NewRunner(
		"get -i|--image {image} -f|--file {file} [-o|--output {file}] [-s|--strip] [--force]",
		"extract a file",
		"\nUse the get command to extract a file from a disk image.",
		"", `- When no output file is given, the file is saved under its name on disk in
  the current folder.

`+runnerHelpEpilogue, g.Run)

	g.AddBaseSettings()
	g.AddSetting(&g.File, "file", "f", "", nil, "file on disk, e.g. HELLO.BAS",
		true)
	g.AddSetting(&g.Output, "output", "o", "", nil, "output file", false)
	g.AddSetting(&g.Strip, "strip", "s", "", false,
		"strip DragonDOS file header", false)
	g.AddSetting(&g.Force, "force", "", "", false,
		"force overwriting output file", false)

	return g
}

//
type Get struct {
	//
	Runner
	//
	File   string
	Output string
	Strip  bool
	Force  bool
}

//
func (g *Get) Run() error {

	g.ParseSettings()

	_, f, data, err := g.readFile(g.File)
	if err != nil {
		return err
	}

	if g.Strip {
		h, err := dragondos.ParseFileHeader(data)
		if err != nil {
			return err
		}
		data = h.Payload(data)
	}

	out := g.Output
	if out == "" {
		out = f.FullName()
	}

	if !confirmOverwrite(out, g.Force) {
		return nil
	}

	if err := save(out, true, data); err != nil {
		return err
	}

	fmt.Printf("%d bytes saved to %s\n", len(data), out)
	return nil
}
