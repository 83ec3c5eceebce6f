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
func NewCat() *Cat {

	c := &Cat{}
	c.Runner = *NewRunner(
		"cat -i|--image {image} -f|--file {file}",
		"display a file",
		"\nUse the cat command to display a file from a disk image on screen.",
		"", `- File contents are shown as IBM code page 437 text.

`+runnerHelpEpilogue, c.Run)

	c.AddBaseSettings()
	c.AddSetting(&c.File, "file", "f", "", nil, "file on disk, e.g. HELLO.BAS",
		true)

	return c
}

//
type Cat struct {
	//
	Runner
	//
	File string
}

//
func (c *Cat) Run() error {

	c.ParseSettings()

	_, _, data, err := c.readFile(c.File)
	if err != nil {
		return err
	}

	text, err := dragondos.Render(data)
	if err != nil {
		return err
	}

	fmt.Println(text)
	return nil
}
