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
	"errors"
)

// HeaderLength is the length of the DMK container header
const HeaderLength = 16

// SectorSize is the payload size of a DragonDOS sector
const SectorSize = 256

// SectorStride is the distance between two physically adjacent sectors of
// the same band, including address mark, CRC and gaps.
const SectorStride = 676

// SectorsPerBand is the number of sectors that share one band base offset
const SectorsPerBand = 9

// option flag in header byte 4; when set, the image is one-sided
const OptionSingleSided = 0x10

//
const (
	SectorsSingleSided     = 18
	SectorsDoubleSided     = 36
	TrackLengthSingleSided = 6400
	TrackLengthDoubleSided = 2 * TrackLengthSingleSided
)

//
var ErrImageNotFound = errors.New("image not found")
var ErrImageTruncated = errors.New("image truncated")
var ErrOutOfRange = errors.New("address out of range")
