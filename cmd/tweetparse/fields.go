package main

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	j "github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/reoring/tweetparse"
)

var listFields bool

var fieldsCmd = &cobra.Command{
	Use:   "fields [files...]",
	Short: "Emit selected fields of each payload as JSON lines",
	Long: `Reads one payload per line and writes one JSON object per line holding the
selected fields, in input order. Fields a payload's format cannot carry are
written as null.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if listFields {
			for _, name := range tweetparse.FieldNames() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		}
		return writeFields(cmd.Context(), cmd.OutOrStdout(), cmd.InOrStdin(), args, cfg, logger)
	},
}

type fieldRow struct {
	line int
	data []byte
	err  error
}

func writeFields(ctx context.Context, w io.Writer, stdin io.Reader, paths []string, c Config, log *zap.Logger) error {
	if ctx == nil {
		ctx = context.Background()
	}
	opts := c.Options(log)
	bw := bufio.NewWriter(w)
	err := eachInput(paths, stdin, c, func(path string, batch []line) error {
		rows, err := mapLines(ctx, batch, c.Workers, func(ln line) fieldRow {
			tw, err := tweetparse.ParseBytes(ln.data, opts...)
			if err != nil {
				return fieldRow{line: ln.no, err: err}
			}
			data, err := encodeRow(tw, c.Fields, log)
			return fieldRow{line: ln.no, data: data, err: err}
		})
		if err != nil {
			return err
		}
		for _, r := range rows {
			if r.err != nil {
				if !c.SkipInvalid {
					return fmt.Errorf("line %d: %w", r.line, r.err)
				}
				log.Warn("skipping line", zap.String("input", path), zap.Int("line", r.line), zap.Error(r.err))
				continue
			}
			if _, err := bw.Write(r.data); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
			if err := bw.WriteByte('\n'); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
		}
		return nil
	})
	if ferr := bw.Flush(); err == nil {
		err = ferr
	}
	return err
}

// encodeRow renders the named fields of tw as one JSON object, keys in the
// requested order.
func encodeRow(tw *tweetparse.Tweet, names []string, log *zap.Logger) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range names {
		v, err := tw.Lookup(name)
		if err != nil {
			if !errors.Is(err, tweetparse.ErrNotAvailable) {
				log.Warn("field unavailable", zap.String("id", tw.ID()), zap.String("field", name), zap.Error(err))
			}
			v = nil
		}
		key, err := j.Marshal(name)
		if err != nil {
			return nil, err
		}
		val, err := j.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("encode %s: %w", name, err)
		}
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
