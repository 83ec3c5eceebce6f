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
	log "github.com/sirupsen/logrus"

	"github.com/xelalexv/dragondmk/pkg/disk/dmk"
)

// Run is a contiguous allocation of sectors
type Run struct {
	LSN    int `json:"lsn"`
	Length int `json:"length"`
}

// Extents is the flattened allocation chain of a file. Trailing is the number
// of bytes used in the final sector of the last run. When the chain could not
// be followed to its end, Truncated is set and the last sector is taken to be
// full.
type Extents struct {
	Runs      []Run `json:"runs"`
	Trailing  int   `json:"trailing"`
	Truncated bool  `json:"truncated,omitempty"`
}

// Sectors returns the number of sectors allocated to the chain
func (x *Extents) Sectors() int {
	ret := 0
	for _, r := range x.Runs {
		ret += r.Length
	}
	return ret
}

// Size returns the number of file bytes held by the chain.
func (x *Extents) Size() int {
	if s := x.Sectors(); s > 0 {
		return s*dmk.SectorSize - dmk.SectorSize + x.Trailing
	}
	return 0
}

// Allocated returns the number of bytes the chain occupies on disk
func (x *Extents) Allocated() int {
	return x.Sectors() * dmk.SectorSize
}

/*
	Extents walks the allocation chain starting at directory entry e. While an
	entry is flagged as continued, its last byte selects the directory slot of
	the next record. The walk visits each slot at most once, so it ends after at
	most DirectoryCapacity records even when the chain is malformed.
*/
func (d *Disk) Extents(e *Entry) *Extents {

	ret := &Extents{}
	visited := make([]bool, DirectoryCapacity)
	if 0 <= e.Slot && e.Slot < DirectoryCapacity {
		visited[e.Slot] = true
	}

	for {
		ret.Runs = append(ret.Runs, e.runs()...)

		if !e.IsContinued() {
			ret.Trailing = e.Next()
			return ret
		}

		next := e.Next()
		fields := log.Fields{"slot": e.Slot, "next": next}

		if next >= DirectoryCapacity || visited[next] {
			log.WithFields(fields).Warn(
				"invalid continuation record, extent chain truncated")
			return truncate(ret)
		}
		visited[next] = true

		var err error
		if e, err = d.Entry(next); err != nil {
			log.WithFields(fields).Warnf(
				"cannot read continuation record, extent chain truncated: %v",
				err)
			return truncate(ret)
		}

		log.WithFields(fields).Trace("following continuation record")
	}
}

//
func truncate(x *Extents) *Extents {
	x.Truncated = true
	x.Trailing = dmk.SectorSize
	return x
}
