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

package dragondos

import (
	"fmt"
	"io"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/xelalexv/dragondmk/pkg/disk/dmk"
)

// File is a live directory entry together with its decoded extent chain
type File struct {
	Slot      int      `json:"slot"`
	Name      string   `json:"name"`
	Extension string   `json:"extension"`
	Protected bool     `json:"protected"`
	Size      int      `json:"size"`
	Allocated int      `json:"allocated"`
	Extents   *Extents `json:"extents"`
}

// FullName returns name and extension joined by a dot, without padding.
func (f *File) FullName() string {
	name := strings.TrimRight(f.Name, " ")
	if ext := strings.TrimRight(f.Extension, " "); ext != "" {
		return name + "." + ext
	}
	return name
}

// Matches reports whether this file has the given name and extension.
// Padding is ignored, and the query is case-insensitive.
func (f *File) Matches(name, ext string) bool {
	return strings.TrimRight(f.Name, " ") ==
		strings.ToUpper(strings.TrimSpace(name)) &&
		strings.TrimRight(f.Extension, " ") ==
			strings.ToUpper(strings.TrimSpace(ext))
}

// Directory is the result of a directory scan
type Directory struct {
	Files []*File `json:"files"`
	Free  int     `json:"free"`
}

// Dir scans the directory. The scan stops at the first entry flagged as end
// of directory, or after DirectoryCapacity slots. Deleted entries are
// skipped, every other entry is listed. Sizes and free space follow the
// counts recorded in each entry. The directory is decoded anew on every call.
func (d *Disk) Dir() (*Directory, error) {

	ret := &Directory{Free: d.Capacity()}

	for j := 0; j < DirectoryCapacity; j++ {

		e, err := d.Entry(j)
		if err != nil {
			return nil, fmt.Errorf("error reading directory: %w", err)
		}

		if e.IsEnd() {
			log.Tracef("end of directory at slot %d", j)
			break
		}

		if e.IsDeleted() {
			continue
		}

		x := d.Extents(e)
		f := &File{
			Slot:      j,
			Name:      e.Name(),
			Extension: e.Extension(),
			Protected: e.IsProtected(),
			Size:      e.DeclaredSize(),
			Allocated: e.DeclaredAllocation(),
			Extents:   x,
		}

		log.WithFields(log.Fields{
			"slot": j,
			"file": f.FullName(),
			"size": f.Size,
			"runs": len(x.Runs),
		}).Debug("directory entry")

		ret.Files = append(ret.Files, f)
		ret.Free -= f.Allocated
	}

	return ret, nil
}

// Emit prints the directory listing.
func (dir *Directory) Emit(w io.Writer) {
	fmt.Fprintf(w, "\nDirectory Listing\n-----------------\n")
	for _, f := range dir.Files {
		fmt.Fprintf(w, "%-8s.%-3s   %d\n", f.Name, f.Extension, f.Size)
	}
	fmt.Fprintf(w, "FREE BYTES %d\n\n", dir.Free)
}

// Find returns the file with the given name and extension.
func (dir *Directory) Find(name, ext string) (*File, error) {
	for _, f := range dir.Files {
		if f.Matches(name, ext) {
			return f, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrFileNotFound, JoinName(name, ext))
}

// SplitName splits a file name such as HELLO.BAS into name and extension.
func SplitName(full string) (string, string) {
	if ix := strings.LastIndex(full, "."); ix > -1 {
		return full[:ix], full[ix+1:]
	}
	return full, ""
}

//
func JoinName(name, ext string) string {
	if ext == "" {
		return name
	}
	return name + "." + ext
}

// Capacity returns the number of bytes available for files on a freshly
// formatted disk. One-sided disks reserve the directory track and its
// backup, two-sided disks reserve one cylinder.
func (d *Disk) Capacity() int {
	reserved := 1
	if d.img.Sides() == 1 {
		reserved = 2
	}
	return d.img.SectorsPerTrack() * (d.img.Cylinders() - reserved) *
		dmk.SectorSize
}
