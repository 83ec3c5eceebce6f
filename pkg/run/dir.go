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
)

//
func NewDir() *Dir {

	d := &Dir{}
	d.Runner = *NewRunner(
		"dir -i|--image {image}",
		"list disk directory",
		"\nUse the dir command to list the files on a disk image, and the free space left.",
		"", runnerHelpEpilogue, d.Run)

	d.AddBaseSettings()

	return d
}

//
type Dir struct {
	Runner
}

//
func (d *Dir) Run() error {

	d.ParseSettings()

	disk, err := d.loadDisk()
	if err != nil {
		return err
	}

	dir, err := disk.Dir()
	if err != nil {
		return err
	}

	dir.Emit(os.Stdout)
	return nil
}
