/*
Copyright 2011-2017 Frederic Langlet
Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
you may obtain a copy of the License at

                http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package quantum holds the constants, tables and cross-package types
// shared by the Quantum (.Q) archive decompressor: the LZ77 position and
// length slot tables, the error taxonomy, and the progress event pub-sub
// that lets a caller observe a decompression without the core packages
// themselves doing any logging.
package quantum

// NumPositionSlots is the number of entries in PositionBase/ExtraBits.
const NumPositionSlots = 42

// NumLengthSlots is the number of entries in LengthBase/LengthExtra.
const NumLengthSlots = 27

// MinTableSize and MaxTableSize bound the archive header's window exponent.
const (
	MinTableSize = 10
	MaxTableSize = 21
)

// Signature is the two leading bytes of every standalone Quantum archive.
var Signature = [2]byte{0x44, 0x53}

// PositionBase holds, for each position slot, the offset represented by
// extra bits of zero.
var PositionBase = [NumPositionSlots]uint32{
	0, 1, 2, 3, 4, 6, 8, 12, 16, 24,
	32, 48, 64, 96, 128, 192, 256, 384, 512, 768,
	1024, 1536, 2048, 3072, 4096, 6144, 8192, 12288, 16384, 24576,
	32768, 49152, 65536, 98304, 131072, 196608, 262144, 393216, 524288, 786432,
	1048576, 1572864,
}

// ExtraBits holds, for each position slot, the number of raw bits read
// after the slot to refine the offset.
var ExtraBits = [NumPositionSlots]uint{
	0, 0, 0, 0, 1, 1, 2, 2, 3, 3,
	4, 4, 5, 5, 6, 6, 7, 7, 8, 8,
	9, 9, 10, 10, 11, 11, 12, 12, 13, 13,
	14, 14, 15, 15, 16, 16, 17, 17, 18, 18,
	19, 19,
}

// LengthBase holds, for each length slot, the match length represented by
// extra bits of zero (selector 6 only).
var LengthBase = [NumLengthSlots]uint32{
	0, 1, 2, 3, 4, 5, 6, 8, 10, 12,
	14, 18, 22, 26, 30, 38, 46, 54, 62, 78,
	94, 110, 126, 158, 190, 222, 254,
}

// LengthExtra holds, for each length slot, the number of raw bits read
// after the slot to refine the match length.
var LengthExtra = [NumLengthSlots]uint{
	0, 0, 0, 0, 0, 0, 1, 1, 1, 1,
	2, 2, 2, 2, 3, 3, 3, 3, 4, 4,
	4, 4, 5, 5, 5, 5, 0,
}

// PositionSlotCount returns the symbol count of model M6 (the general
// match position model): 2*W, where W is the window exponent (table size).
func PositionSlotCount(windowBits uint) int {
	return 2 * int(windowBits)
}

// M4SlotCount returns the symbol count of model M4 (length-3 match
// position model): min(2*W, 24).
func M4SlotCount(windowBits uint) int {
	if n := PositionSlotCount(windowBits); n < 24 {
		return n
	}
	return 24
}

// M5SlotCount returns the symbol count of model M5 (length-4 match
// position model): min(2*W, 36).
func M5SlotCount(windowBits uint) int {
	if n := PositionSlotCount(windowBits); n < 36 {
		return n
	}
	return 36
}
