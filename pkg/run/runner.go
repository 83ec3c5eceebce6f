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
	"io"
	"os"

	log "github.com/sirupsen/logrus"

	"github.com/xelalexv/dragondmk/pkg/disk/dmk"
	"github.com/xelalexv/dragondmk/pkg/disk/dragondos"
	"github.com/xelalexv/dragondmk/pkg/disk/format"
)

//
const runnerHelpEpilogue = `- When a flag can be set via environment variable, the variable name is given
  in parenthesis at the end of the flag explanation. Note however that a flag,
  when specified overrides an environment variable.
`

/*
	NewRunner creates a base runner for commands to use. The parameters are
	passed to the base command wrapped by this runner.
*/
func NewRunner(use, short, long, helpPrologue, helpEpilogue string,
	exec func() error) *Runner {
	return &Runner{
		Command: *NewCommand(
			use, short, long, helpPrologue, helpEpilogue, exec),
	}
}

//
type Runner struct {
	//
	Command
	//
	Image string
}

//
func (r *Runner) AddBaseSettings() {
	// Implementation Note: This cannot be included in NewRunner, but rather has
	// to be called from the top level command type. Otherwise, we will confuse
	// Cobra/Viper and the settings will not be filled with their values.
	r.AddSetting(&r.Image, "image", "i", "DMKCTL_IMAGE", nil,
		"DMK disk image", true)
}

//
func (r *Runner) loadDisk() (*dragondos.Disk, error) {
	log.Debugf("loading image %s", r.Image)
	img, err := dmk.Load(r.Image)
	if err != nil {
		return nil, err
	}
	return dragondos.NewDisk(img), nil
}

// readFile loads the image and reads the named file from it.
func (r *Runner) readFile(file string) (*dragondos.Disk, *dragondos.File,
	[]byte, error) {

	disk, err := r.loadDisk()
	if err != nil {
		return nil, nil, nil, err
	}

	f, err := disk.Find(dragondos.SplitName(file))
	if err != nil {
		return nil, nil, nil, err
	}

	data, err := disk.Reconstruct(f.Extents)
	if err != nil {
		return nil, nil, nil, err
	}

	return disk, f, data, nil
}

// confirmOverwrite returns whether output may be written to file. When file
// exists and force is not set, the user is asked.
func confirmOverwrite(file string, force bool) bool {
	if force {
		return true
	}
	if _, err := os.Stat(file); err == nil {
		return GetUserConfirmation(
			fmt.Sprintf("File %s exists, overwrite?", file))
	}
	return true
}

//
func save(file string, force bool, data []byte) error {
	return format.SaveFile(file, force, func(out io.Writer) error {
		_, err := out.Write(data)
		return err
	})
}
