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
	"strings"

	"golang.org/x/text/encoding/charmap"
)

// Dragon text files terminate lines with a carriage return
var lineEnds = strings.NewReplacer("\r\n", "\n", "\r", "\n")

// Render converts file content into printable text, interpreting bytes as
// IBM code page 437.
func Render(data []byte) (string, error) {
	s, err := charmap.CodePage437.NewDecoder().Bytes(data)
	if err != nil {
		return "", err
	}
	return lineEnds.Replace(string(s)), nil
}
