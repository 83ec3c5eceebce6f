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

package raw

// NewBlock wraps data with a field index. Each index entry maps a field name
// to its offset and length within data.
func NewBlock(index map[string][2]int, data []byte) *Block {
	return &Block{index: index, Data: data}
}

//
type Block struct {
	index map[string][2]int
	Data  []byte
}

//
func (b *Block) GetByte(key string) byte {
	if ix, ok := b.index[key]; ok {
		if 0 <= ix[0] && ix[0] < len(b.Data) && ix[1] == 1 {
			return b.Data[ix[0]]
		}
	}
	return 0
}

//
func (b *Block) GetSlice(key string) []byte {
	if ix, ok := b.index[key]; ok {
		start := ix[0]
		end := start + ix[1]
		if 0 <= start && end <= len(b.Data) {
			return b.Data[start:end]
		}
	}
	return []byte{}
}

// GetString returns the field as fixed width text. Zero bytes are rendered as
// blanks, so names always keep their full width.
func (b *Block) GetString(key string) string {
	return ToString(b.GetSlice(key))
}

// ToString maps every non-zero byte to its character and every zero byte to
// a blank.
func ToString(data []byte) string {
	ret := make([]rune, len(data))
	for ix, c := range data {
		if c == 0 {
			ret[ix] = ' '
		} else {
			ret[ix] = rune(c)
		}
	}
	return string(ret)
}
