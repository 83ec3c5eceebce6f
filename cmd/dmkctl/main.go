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

package main

import (
	"fmt"
	"os"

	"github.com/xelalexv/dragondmk/pkg/run"
)

//
var DragonDMKVersion string

//
func synopsis() {
	fmt.Print(`
synopsis: dmkctl {info|dir|cat|get|cas|vdk|dump|shell|serve|version} ...

run 'dmkctl {action} -h|--help' to see detailed info

`)
}

//
func version() {
	fmt.Printf("\nDragonDMK %s\n\n", DragonDMKVersion)
}

//
func main() {

	var action string
	var args []string

	if len(os.Args) > 1 {
		action = os.Args[1]
	}

	if len(os.Args) > 2 {
		args = os.Args[2:]
	}

	switch action {

	case "info":
		run.DieOnError(run.NewInfo().Execute(args))

	case "dir":
		run.DieOnError(run.NewDir().Execute(args))

	case "cat":
		run.DieOnError(run.NewCat().Execute(args))

	case "get":
		run.DieOnError(run.NewGet().Execute(args))

	case "cas":
		run.DieOnError(run.NewCas().Execute(args))

	case "vdk":
		run.DieOnError(run.NewVdk().Execute(args))

	case "dump":
		run.DieOnError(run.NewDump().Execute(args))

	case "shell":
		run.DieOnError(run.NewShell().Execute(args))

	case "serve":
		version()
		run.DieOnError(run.NewServe().Execute(args))

	case "version":
		version()

	case "":
		fallthrough
	case "-h":
		fallthrough
	case "--help":
		synopsis()

	default:
		run.Die("unknown action: %s\n", action)
	}
}
