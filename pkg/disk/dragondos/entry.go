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
	"errors"
	"fmt"

	"github.com/xelalexv/dragondmk/pkg/disk/dmk"
	"github.com/xelalexv/dragondmk/pkg/disk/raw"
)

// The directory lives on track 20. Sectors 0 and 1 of that track hold the
// allocation map, sectors 2 through 17 hold ten entries each.
const (
	DirectoryTrack       = 20
	DirectoryFirstSector = 2
	DirectorySectors     = 16
	DirectoryOffset      = 1648
	EntryLength          = 25
	EntriesPerSector     = 10
	DirectoryCapacity    = DirectorySectors * EntriesPerSector
)

// entry flags
const (
	FlagDeleted      = 0x80
	FlagContinued    = 0x20
	FlagEnd          = 0x08
	FlagProtected    = 0x02
	FlagContinuation = 0x01
)

// extent triples in a primary entry, and in a continuation record; the
// first triple of a continuation record overlaps its flag byte
const (
	primaryExtentStart      = 12
	primaryExtentCount      = 4
	continuationExtentStart = 0
	continuationExtentCount = 7
)

//
var entryIndex = map[string][2]int{
	"flags":     {0, 1},
	"name":      {1, 8},
	"extension": {9, 3},
	"count1":    {14, 1},
	"count2":    {17, 1},
	"next":      {24, 1},
}

//
var ErrFileNotFound = errors.New("file not found")

// Entry is one 25 byte directory slot
type Entry struct {
	Slot  int
	block *raw.Block
}

//
func NewEntry(slot int, data []byte) (*Entry, error) {
	if len(data) != EntryLength {
		return nil, fmt.Errorf("invalid directory entry length: %d", len(data))
	}
	return &Entry{Slot: slot, block: raw.NewBlock(entryIndex, data)}, nil
}

//
func (e *Entry) Flags() byte {
	return e.block.GetByte("flags")
}

//
func (e *Entry) IsDeleted() bool {
	return e.Flags()&FlagDeleted != 0
}

// IsEnd reports whether this entry marks the end of the directory. The entry
// itself does not describe a file.
func (e *Entry) IsEnd() bool {
	return e.Flags()&FlagEnd != 0
}

//
func (e *Entry) IsContinued() bool {
	return e.Flags()&FlagContinued != 0
}

//
func (e *Entry) IsContinuation() bool {
	return e.Flags()&FlagContinuation != 0
}

//
func (e *Entry) IsProtected() bool {
	return e.Flags()&FlagProtected != 0
}

//
func (e *Entry) Name() string {
	return e.block.GetString("name")
}

//
func (e *Entry) Extension() string {
	return e.block.GetString("extension")
}

// DeclaredSize is the file size recorded in this entry. It only takes the
// sector counts of the first two extent triples into account.
func (e *Entry) DeclaredSize() int {
	return e.DeclaredAllocation() - dmk.SectorSize + e.Next()
}

// DeclaredAllocation is the disk space recorded in this entry, derived from
// the same two sector counts as DeclaredSize.
func (e *Entry) DeclaredAllocation() int {
	return (int(e.block.GetByte("count1")) +
		int(e.block.GetByte("count2"))) * dmk.SectorSize
}

// Next is either the slot of the following continuation record, or the
// number of bytes used in the file's final sector if there is none.
func (e *Entry) Next() int {
	return int(e.block.GetByte("next"))
}

// runs returns the allocated runs held in this record. Slots with zero length
// are unused.
func (e *Entry) runs() []Run {

	start, count := primaryExtentStart, primaryExtentCount
	if e.IsContinuation() {
		start, count = continuationExtentStart, continuationExtentCount
	}

	var ret []Run
	data := e.block.Data
	for ix := start; ix < start+3*count; ix += 3 {
		if l := int(data[ix+2]); l > 0 {
			ret = append(ret, Run{LSN: int(data[ix])<<8 | int(data[ix+1]),
				Length: l})
		}
	}
	return ret
}

// SlotOffset returns the image offset of directory slot j. Slots follow each
// other at a fixed stride from the directory base.
func (d *Disk) SlotOffset(j int) (int, error) {

	if j < 0 || j >= DirectoryCapacity {
		return -1, fmt.Errorf("%w: directory slot %d", dmk.ErrOutOfRange, j)
	}

	off := d.DirectoryBase() + j*EntryLength
	if off+EntryLength > d.img.Len() {
		return -1, fmt.Errorf("%w: directory slot %d at offset %d",
			dmk.ErrOutOfRange, j, off)
	}

	return off, nil
}

// DirectoryBase is the offset of the first directory slot
func (d *Disk) DirectoryBase() int {
	return d.img.TrackLength()*DirectoryTrack + DirectoryOffset
}

// Entry reads directory slot j.
func (d *Disk) Entry(j int) (*Entry, error) {

	off, err := d.SlotOffset(j)
	if err != nil {
		return nil, err
	}

	data, err := d.img.Slice(off, off+EntryLength)
	if err != nil {
		return nil, err
	}

	return NewEntry(j, data)
}
