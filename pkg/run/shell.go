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
	"path/filepath"

	"github.com/xelalexv/dragondmk/pkg/shell"
)

//
func NewShell() *Shell {

	s := &Shell{}
	s.Runner = *NewRunner(
		"shell -i|--image {image}",
		"browse a disk image interactively",
		"\nUse the shell command to open an interactive shell on a disk image.",
		"", runnerHelpEpilogue, s.Run)

	s.AddBaseSettings()

	return s
}

//
type Shell struct {
	Runner
}

//
func (s *Shell) Run() error {

	s.ParseSettings()

	disk, err := s.loadDisk()
	if err != nil {
		return err
	}

	shell.New(filepath.Base(s.Image), disk).Run()
	return nil
}
