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
	"os"

	"github.com/xelalexv/dragondmk/pkg/disk/dragondos"
)

//
func NewInfo() *Info {

	i := &Info{}
	i.Runner = *NewRunner(
		"info -i|--image {image} [-f|--file {file}]",
		"show disk or file info",
		`
Use the info command to show geometry and header fields of a disk image. When a
file is given, the fields of its DragonDOS file header are shown instead.`,
		"", runnerHelpEpilogue, i.Run)

	i.AddBaseSettings()
	i.AddSetting(&i.File, "file", "f", "", nil, "file on disk, e.g. HELLO.BAS",
		false)

	return i
}

//
type Info struct {
	//
	Runner
	//
	File string
}

//
func (i *Info) Run() error {

	i.ParseSettings()

	if i.File == "" {
		disk, err := i.loadDisk()
		if err != nil {
			return err
		}
		disk.Image().Info().Emit(os.Stdout)
		return nil
	}

	_, _, data, err := i.readFile(i.File)
	if err != nil {
		return err
	}

	h, err := dragondos.ParseFileHeader(data)
	if err != nil {
		return err
	}

	h.Emit(os.Stdout)
	return nil
}
