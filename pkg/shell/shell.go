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

package shell

import (
	"bytes"
	"fmt"
	"io"

	"github.com/abiosoft/ishell"
	log "github.com/sirupsen/logrus"

	"github.com/xelalexv/dragondmk/pkg/disk/dragondos"
)

// action is a shell command working on the loaded disk. Output goes to w.
type action func(w io.Writer, args []string) error

// Shell is an interactive shell for browsing a disk image
type Shell struct {
	sh   *ishell.Shell
	cmds *commands
}

// New creates a shell for disk. name is shown in the prompt.
func New(name string, disk *dragondos.Disk) *Shell {

	s := &Shell{sh: ishell.New(), cmds: &commands{disk: disk}}
	s.sh.SetPrompt(fmt.Sprintf("%s > ", name))

	s.add("dir", "list directory", s.cmds.dir)
	s.add("info", "show disk geometry", s.cmds.info)
	s.add("header", "show file header: header {file}", s.cmds.header)
	s.add("cat", "display file: cat {file}", s.cmds.cat)
	s.add("dump", "hex dump sector or file: dump {lsn}|{file}", s.cmds.dump)
	s.add("get", "extract file: get {file} [{output}]", s.cmds.get)
	s.add("cas", "export file to cassette image: cas {file} {output}",
		s.cmds.cas)
	s.add("vdk", "export disk to VDK image: vdk {output}", s.cmds.vdk)

	return s
}

//
func (s *Shell) add(name, help string, fn action) {
	s.sh.AddCmd(&ishell.Cmd{
		Name: name,
		Help: help,
		Func: func(c *ishell.Context) {
			var out bytes.Buffer
			if err := fn(&out, c.Args); err != nil {
				log.Debugf("shell command %s failed: %v", name, err)
				c.Err(err)
				return
			}
			c.Print(out.String())
		},
	})
}

// Run starts the interactive loop and returns when the user exits.
func (s *Shell) Run() {
	s.sh.Println("DragonDMK shell, type 'help' for a list of commands")
	s.sh.Run()
}
