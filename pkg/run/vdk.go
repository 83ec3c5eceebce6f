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

	"github.com/xelalexv/dragondmk/pkg/disk/format"
)

//
func NewVdk() *Vdk {

	v := &Vdk{}
	v.Runner = *NewRunner(
		"vdk -i|--image {image} -o|--output {file} [--force]",
		"convert disk image to VDK",
		"\nUse the vdk command to convert a DMK disk image into a VDK sector dump.",
		"", runnerHelpEpilogue, v.Run)

	v.AddBaseSettings()
	v.AddSetting(&v.Output, "output", "o", "", nil, "VDK output file", true)
	v.AddSetting(&v.Force, "force", "", "", false,
		"force overwriting output file", false)

	return v
}

//
type Vdk struct {
	//
	Runner
	//
	Output string
	Force  bool
}

//
func (v *Vdk) Run() error {

	v.ParseSettings()

	if ext := format.Extension(v.Output); ext != "vdk" {
		return fmt.Errorf("output file needs .vdk extension, got '%s'", ext)
	}

	disk, err := v.loadDisk()
	if err != nil {
		return err
	}

	if !confirmOverwrite(v.Output, v.Force) {
		return nil
	}

	if err := format.ExportImage(disk.Image(), v.Output, true); err != nil {
		return err
	}

	fmt.Printf("disk image converted to %s\n", v.Output)
	return nil
}
