/*
Package chrgfx is a library for converting between the tile, palette and
color formats used by retro video game hardware and ordinary images.

The formats themselves are described by the descriptors in package gfxdef.
A Converter ties the codecs together, decoding or encoding tile streams on
a pool of workers.
*/
package chrgfx

import (
	"github.com/hashicorp/go-hclog"
)

const defaultWorkers = 10

// Converter converts tile and palette data using a pool of workers
type Converter struct {
	logger  hclog.Logger
	workers int
}

// Option configures a Converter
type Option func(*Converter)

// Workers sets the number of tile workers, values below one are ignored
func Workers(n int) Option {
	return func(c *Converter) {
		if n > 0 {
			c.workers = n
		}
	}
}

// New returns a Converter logging to logger. A nil logger discards
// everything.
func New(logger hclog.Logger, options ...Option) *Converter {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	c := &Converter{
		logger:  logger.Named("chrgfx"),
		workers: defaultWorkers,
	}
	for _, o := range options {
		o(c)
	}
	return c
}
