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
	"encoding/hex"
	"fmt"
	"os"

	"github.com/xelalexv/dragondmk/pkg/disk/dragondos"
)

//
func NewDump() *Dump {

	d := &Dump{}
	d.Runner = *NewRunner(
		"dump -i|--image {image} [-l|--lsn {sector}] [-f|--file {file}]",
		"hex dump a sector or file",
		"\nUse the dump command to output a hex dump of a logical sector or of a file.",
		"", `- When neither a file nor a logical sector number is given, the first sector
  of the directory is dumped.

`+runnerHelpEpilogue, d.Run)

	d.AddBaseSettings()
	d.AddSetting(&d.File, "file", "f", "", nil, "file on disk, e.g. HELLO.BAS",
		false)
	d.AddSetting(&d.LSN, "lsn", "l", "", -1, "logical sector number", false)

	return d
}

//
type Dump struct {
	//
	Runner
	//
	File string
	LSN  int
}

//
func (d *Dump) Run() error {

	d.ParseSettings()

	var data []byte

	if d.File != "" {
		var err error
		if _, _, data, err = d.readFile(d.File); err != nil {
			return err
		}
		fmt.Printf("\nFILE: %s, %d bytes\n", d.File, len(data))

	} else {
		disk, err := d.loadDisk()
		if err != nil {
			return err
		}

		img := disk.Image()
		lsn := d.LSN
		if lsn < 0 {
			lsn = dirLSN(img.SectorsPerTrack())
		}

		track, sector := img.LogicalSector(lsn)
		if data, err = img.Sector(track, sector); err != nil {
			return err
		}
		fmt.Printf("\nSECTOR: LSN %d, track %d, sector %d\n", lsn, track,
			sector)
	}

	dumper := hex.Dumper(os.Stdout)
	defer fmt.Println()
	defer dumper.Close()
	_, err := dumper.Write(data)
	return err
}

// dirLSN returns the logical sector number of the first directory sector
func dirLSN(sectorsPerTrack int) int {
	return dragondos.DirectoryTrack*sectorsPerTrack +
		dragondos.DirectoryFirstSector
}
