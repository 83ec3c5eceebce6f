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

package format

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
)

//
var ErrFileExists = errors.New("output file exists")

// Extension returns the lower case extension of path, without the dot.
func Extension(path string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
}

/*
	SaveFile creates the file at path with the content produced by write. The
	content goes to a temporary file in the same folder first, which is renamed
	to path only after it has been completely written and synced. If anything
	fails, the temporary file is removed and path stays untouched. Unless force
	is set, an existing file at path is not overwritten.
*/
func SaveFile(path string, force bool, write func(io.Writer) error) error {

	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%w: %s", ErrFileExists, path)
		}
	}

	start := time.Now()

	fd, err := ioutil.TempFile(filepath.Dir(path), filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	tmp := fd.Name()

	if err := writeAndSync(fd, write); err != nil {
		fd.Close()
		if e := os.Remove(tmp); e != nil {
			log.Warnf("cannot remove temporary file %s: %v", tmp, e)
		}
		return err
	}

	if err := fd.Close(); err != nil {
		os.Remove(tmp)
		return err
	}

	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return err
	}

	log.Debugf("saving %s took %v", path, time.Now().Sub(start))
	return nil
}

//
func writeAndSync(fd *os.File, write func(io.Writer) error) error {

	out := bufio.NewWriter(fd)

	if err := write(out); err != nil {
		return err
	}

	if err := out.Flush(); err != nil {
		return err
	}

	return fd.Sync()
}
