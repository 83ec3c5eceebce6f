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

package dmk

import (
	"fmt"
)

/*
	Band describes where the sectors of one ninth of a cylinder are located.
	Physical sectors are written with an interleave of two, so the first nine
	logical sectors occupy every other physical slot starting at Base, and the
	next nine fill the gaps in between. Sectors of the second side follow the
	same scheme, offset by half the cylinder length. The offset of a sector
	within its cylinder is Base + (sector - Origin) * SectorStride.
*/
type Band struct {
	First  int
	Base   int
	Origin int
}

// Bands is the band lookup table, indexed by sector / SectorsPerBand
var Bands = [4]Band{
	{First: 0, Base: 296, Origin: 0},
	{First: 9, Base: 634, Origin: 9},
	{First: 18, Base: 612, Origin: 9},
	{First: 27, Base: 950, Origin: 18},
}

// BandOf returns the band for the given sector within a track. Sectors beyond
// the third band all belong to the last one.
func BandOf(sector int) Band {
	ix := sector / SectorsPerBand
	if ix >= len(Bands) {
		ix = len(Bands) - 1
	}
	if ix < 0 {
		ix = 0
	}
	return Bands[ix]
}

// SectorOffset returns the offset of the given sector's payload within the
// image buffer.
func (i *Image) SectorOffset(track, sector int) (int, error) {

	if track < 0 || track >= i.cylinders || sector < 0 || sector >= i.sectors {
		return -1, fmt.Errorf("%w: track %d, sector %d", ErrOutOfRange,
			track, sector)
	}

	b := BandOf(sector)
	off := b.Base + track*i.trackLength + (sector-b.Origin)*SectorStride

	if off < HeaderLength || off+SectorSize > len(i.data) {
		return -1, fmt.Errorf("%w: track %d, sector %d at offset %d",
			ErrOutOfRange, track, sector, off)
	}

	return off, nil
}

/*
	Translate computes the byte range of the sector at position index within a
	run of length sectors that starts at track/sector. A run may extend across
	any number of following tracks. The range covers a full sector, except for
	the final sector of the last run in a chain, which only covers trailing
	bytes.
*/
func (i *Image) Translate(track, sector, index, length int, lastRun bool,
	trailing int) (int, int, error) {

	if trailing < 0 || trailing > SectorSize {
		return -1, -1, fmt.Errorf("%w: trailing byte count %d",
			ErrOutOfRange, trailing)
	}

	sector += index
	for sector >= i.sectors {
		sector -= i.sectors
		track++
	}

	start, err := i.SectorOffset(track, sector)
	if err != nil {
		return -1, -1, err
	}

	end := start + SectorSize
	if lastRun && index == length-1 {
		end = start + trailing
	}

	return start, end, nil
}

// LogicalSector converts a logical sector number into track and sector
func (i *Image) LogicalSector(lsn int) (int, int) {
	return lsn / i.sectors, lsn % i.sectors
}

// Sector returns a copy of the payload of the given sector.
func (i *Image) Sector(track, sector int) ([]byte, error) {
	off, err := i.SectorOffset(track, sector)
	if err != nil {
		return nil, err
	}
	return i.Slice(off, off+SectorSize)
}

// Slice returns a copy of the image bytes in [start, end).
func (i *Image) Slice(start, end int) ([]byte, error) {
	if start < HeaderLength || end < start || end > len(i.data) {
		return nil, fmt.Errorf("%w: [%d, %d)", ErrOutOfRange, start, end)
	}
	ret := make([]byte, end-start)
	copy(ret, i.data[start:end])
	return ret, nil
}
