// Package bx holds the byte helpers shared by the row codec and page headers.
// Everything on disk is little-endian.
package bx

import "encoding/binary"

var LE = binary.LittleEndian

// --- read ---
func U16(b []byte) uint16 { return LE.Uint16(b) }
func U32(b []byte) uint32 { return LE.Uint32(b) }
func U64(b []byte) uint64 { return LE.Uint64(b) }

// --- write ---
func PutU16(b []byte, v uint16) { LE.PutUint16(b, v) }
func PutU32(b []byte, v uint32) { LE.PutUint32(b, v) }
func PutU64(b []byte, v uint64) { LE.PutUint64(b, v) }

// --- at offset ---
func U16At(b []byte, off int) uint16       { return U16(b[off:]) }
func U32At(b []byte, off int) uint32       { return U32(b[off:]) }
func PutU16At(b []byte, off int, v uint16) { PutU16(b[off:], v) }
func PutU32At(b []byte, off int, v uint32) { PutU32(b[off:], v) }

// --- bitmap (bit i lives in byte i/8, LSB first) ---
func Bit(bm []byte, i int) bool { return bm[i/8]&(1<<(uint(i)&7)) != 0 }
func SetBit(bm []byte, i int)   { bm[i/8] |= 1 << (uint(i) & 7) }
func ClearBit(bm []byte, i int) { bm[i/8] &^= 1 << (uint(i) & 7) }

// BitmapLen is the number of bytes needed to hold n bits.
func BitmapLen(n int) int { return (n + 7) / 8 }
