package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/reoring/tweetparse"
)

var validateCmd = &cobra.Command{
	Use:   "validate [files...]",
	Short: "Classify each payload and report the ones that are not tweets",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := validateInputs(cmd.Context(), cmd.InOrStdin(), args, cfg, logger)
		if err != nil {
			return err
		}
		s.print(cmd.OutOrStdout())
		if s.Invalid > 0 {
			return fmt.Errorf("%d invalid payload(s)", s.Invalid)
		}
		return nil
	},
}

type summary struct {
	Original        int
	ActivityStreams int
	Invalid         int
}

func (s summary) print(w io.Writer) {
	fmt.Fprintf(w, "original: %d\nactivity_streams: %d\ninvalid: %d\n", s.Original, s.ActivityStreams, s.Invalid)
}

type verdict struct {
	line   int
	format tweetparse.Format
	err    error
}

func validateInputs(ctx context.Context, stdin io.Reader, paths []string, c Config, log *zap.Logger) (summary, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	opts := c.Options(log)
	var s summary
	err := eachInput(paths, stdin, c, func(path string, batch []line) error {
		verdicts, err := mapLines(ctx, batch, c.Workers, func(ln line) verdict {
			tw, err := tweetparse.ParseBytes(ln.data, opts...)
			if err != nil {
				return verdict{line: ln.no, err: err}
			}
			return verdict{line: ln.no, format: tw.Format()}
		})
		if err != nil {
			return err
		}
		for _, v := range verdicts {
			switch {
			case v.err != nil:
				s.Invalid++
				log.Warn("invalid payload", zap.String("input", path), zap.Int("line", v.line), zap.Error(v.err))
			case v.format == tweetparse.FormatOriginal:
				s.Original++
			default:
				s.ActivityStreams++
			}
		}
		return nil
	})
	return s, err
}
