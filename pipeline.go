package chrgfx

import (
	"context"
	"errors"
	"io"
	"sync"

	"github.com/bodgit/chrgfx/basic"
	"github.com/bodgit/chrgfx/codec"
	"github.com/bodgit/chrgfx/gfxdef"
)

type encodedTile struct {
	index int
	data  []byte
}

type decodedTile struct {
	index int
	pix   []basic.Pixel
}

func (c *Converter) readTiles(ctx context.Context, r io.Reader, size int) (<-chan encodedTile, <-chan error, error) {
	if size <= 0 {
		return nil, nil, errors.New("invalid tile size")
	}
	out := make(chan encodedTile)
	errc := make(chan error, 1)
	go func() {
		defer close(out)
		defer close(errc)
		for i := 0; ; i++ {
			b := make([]byte, size)
			n, err := io.ReadFull(r, b)
			switch err {
			case nil:
			case io.EOF:
				return
			case io.ErrUnexpectedEOF:
				// Formats are often padded, a partial tile is not an error
				c.logger.Debug("ignoring trailing partial tile", "tile", i, "bytes", n, "size", size)
				return
			default:
				errc <- err
				return
			}

			select {
			case out <- encodedTile{index: i, data: b}:
			case <-ctx.Done():
				errc <- ctx.Err()
				return
			}
		}
	}()
	return out, errc, nil
}

func (c *Converter) decodeWorker(ctx context.Context, d *gfxdef.ChrDef, in <-chan encodedTile, out chan<- decodedTile, wg *sync.WaitGroup) (<-chan error, error) {
	errc := make(chan error, 1)
	wg.Add(1)
	go func() {
		defer wg.Done()
		defer close(errc)
		for t := range in {
			pix, err := codec.DecodeTile(d, t.data)
			if err != nil {
				errc <- err
				return
			}
			select {
			case out <- decodedTile{index: t.index, pix: pix}:
			case <-ctx.Done():
				return
			}
		}
	}()
	return errc, nil
}

func (c *Converter) indexTiles(ctx context.Context, n int) (<-chan int, <-chan error, error) {
	out := make(chan int)
	errc := make(chan error, 1)
	go func() {
		defer close(out)
		defer close(errc)
		for i := 0; i < n; i++ {
			select {
			case out <- i:
			case <-ctx.Done():
				errc <- ctx.Err()
				return
			}
		}
	}()
	return out, errc, nil
}

func (c *Converter) encodeWorker(ctx context.Context, d *gfxdef.ChrDef, in <-chan int, pix []basic.Pixel, out [][]byte) (<-chan error, error) {
	errc := make(chan error, 1)
	tilePixels := d.Pixels()
	go func() {
		defer close(errc)
		for i := range in {
			b, err := codec.EncodeTile(d, pix[i*tilePixels:(i+1)*tilePixels])
			if err != nil {
				errc <- err
				return
			}
			// Each index is handed to exactly one worker
			out[i] = b
		}
	}()
	return errc, nil
}

func waitForPipeline(errs ...<-chan error) error {
	errc := mergeErrors(errs...)
	for err := range errc {
		if err != nil {
			return err
		}
	}
	return nil
}

func mergeErrors(cs ...<-chan error) <-chan error {
	var wg sync.WaitGroup
	out := make(chan error, len(cs))
	wg.Add(len(cs))
	for _, c := range cs {
		go func(c <-chan error) {
			for n := range c {
				out <- n
			}
			wg.Done()
		}(c)
	}
	go func() {
		wg.Wait()
		close(out)
	}()
	return out
}
