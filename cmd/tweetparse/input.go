package main

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/gzip"
	"golang.org/x/sync/errgroup"
)

const gzipMagic = "\x1f\x8b"

type readCloser struct {
	io.Reader
	close func() error
}

func (r readCloser) Close() error { return r.close() }

// openInput opens path, "-" meaning stdin. Gzip input is recognised by its
// magic bytes, not by the file name.
func openInput(path string, stdin io.Reader) (io.ReadCloser, error) {
	var rc io.ReadCloser
	if path == "-" {
		rc = io.NopCloser(stdin)
	} else {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		rc = f
	}
	br := bufio.NewReader(rc)
	if magic, err := br.Peek(len(gzipMagic)); err == nil && string(magic) == gzipMagic {
		zr, err := gzip.NewReader(br)
		if err != nil {
			_ = rc.Close()
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return readCloser{zr, func() error { return errors.Join(zr.Close(), rc.Close()) }}, nil
	}
	return readCloser{br, rc.Close}, nil
}

// line is one non-blank input line with its 1-based number.
type line struct {
	no   int
	data []byte
}

// scanBatches calls fn with consecutive batches of at most size lines. The
// batch slice is reused between calls.
func scanBatches(r io.Reader, size, maxLine int, fn func([]line) error) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, min(64<<10, maxLine)), maxLine)
	batch := make([]line, 0, size)
	no := 0
	for sc.Scan() {
		no++
		b := bytes.TrimSpace(sc.Bytes())
		if len(b) == 0 {
			continue
		}
		batch = append(batch, line{no: no, data: bytes.Clone(b)})
		if len(batch) == size {
			if err := fn(batch); err != nil {
				return err
			}
			batch = batch[:0]
		}
	}
	if err := sc.Err(); err != nil {
		return err
	}
	if len(batch) > 0 {
		return fn(batch)
	}
	return nil
}

// mapLines runs fn over batch on up to workers goroutines. Results keep the
// input order.
func mapLines[T any](ctx context.Context, batch []line, workers int, fn func(line) T) ([]T, error) {
	out := make([]T, len(batch))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, ln := range batch {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			out[i] = fn(ln)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// eachInput opens every path in turn ("-" when none are given) and streams
// its lines to fn in batches.
func eachInput(paths []string, stdin io.Reader, c Config, fn func(path string, batch []line) error) error {
	if len(paths) == 0 {
		paths = []string{"-"}
	}
	for _, p := range paths {
		rc, err := openInput(p, stdin)
		if err != nil {
			return err
		}
		err = scanBatches(rc, c.Workers*64, c.MaxLineBytes, func(b []line) error { return fn(p, b) })
		if cerr := rc.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}
