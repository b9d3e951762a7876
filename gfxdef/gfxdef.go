/*
Package gfxdef implements the format descriptors used to encode and decode
console tile graphics, palettes and colors.

A ChrDef describes the geometry and bit layout of a single tile, a PalDef
describes how many color entries make up a palette and how wide each one is,
and a ColDef describes how a single color entry is packed. Descriptors are
immutable once constructed and are safe to share between goroutines.
*/
package gfxdef

import "errors"

var (
	// ErrConfiguration is returned for an invalid descriptor
	ErrConfiguration = errors.New("invalid configuration")

	// ErrDataUnderrun is returned when a buffer is shorter than a tile,
	// palette or entry requires
	ErrDataUnderrun = errors.New("not enough data")

	// ErrOutOfRange is returned when a subpalette or table index is
	// greater than or equal to its declared count
	ErrOutOfRange = errors.New("index out of range")

	// ErrInvalidOperation is returned when a codec is invoked without a
	// usable descriptor or with geometry too small to hold a tile
	ErrInvalidOperation = errors.New("invalid operation")
)

const (
	// MaxBitdepth is the largest number of bitplanes a tile may have
	MaxBitdepth = 8

	// MaxColors is the largest number of entries in a palette or
	// reference table
	MaxColors = 256

	// MaxEntryDatasize is the largest palette entry size in bits
	MaxEntryDatasize = 32
)
