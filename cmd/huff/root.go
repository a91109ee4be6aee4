package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	huffman "github.com/chronos-tachyon/huff"
)

const (
	progName = "huff"

	envLogLevel = "HUFF_LOG_LEVEL"
)

// usageError marks errors caused by a bad command line.
type usageError struct {
	err error
}

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

// openError marks a file that could not be opened or created.
type openError struct {
	path string
	err  error
}

func (e openError) Error() string { return "cannot open " + e.path + ": " + e.err.Error() }
func (e openError) Unwrap() error { return e.err }

type options struct {
	logLevel string
	quiet    bool
}

func run(args []string, stdout, stderr io.Writer) int {
	if args == nil {
		// cobra falls back to os.Args for a nil slice
		args = []string{}
	}
	cmd := newRootCommand(stdout, stderr)
	cmd.SetArgs(args)

	err := cmd.Execute()
	if err == nil {
		return 0
	}

	var ue usageError
	var oe openError
	switch {
	case errors.As(err, &ue):
		fmt.Fprintf(stderr, "%s: %v\n", progName, ue.err)
		fmt.Fprintf(stderr, "usage: %s <inputFile> <outputFile>\n", progName)
	case errors.As(err, &oe):
		fmt.Fprintf(stderr, "%s: cannot open %s\n", progName, oe.path)
	default:
		fmt.Fprintf(stderr, "%s: %v\n", progName, err)
	}
	return 1
}

func newRootCommand(stdout, stderr io.Writer) *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:           progName + " <inputFile> <outputFile>",
		Short:         "Compress a file with a Huffman code",
		SilenceErrors: true,
		SilenceUsage:  true,
		Args: func(cmd *cobra.Command, args []string) error {
			if err := cobra.ExactArgs(2)(cmd, args); err != nil {
				return usageError{err}
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("log-level") {
				if env, ok := os.LookupEnv(envLogLevel); ok && env != "" {
					opts.logLevel = env
				}
			}
			logger, err := newLogger(stderr, opts.logLevel)
			if err != nil {
				return usageError{err}
			}
			return compress(args[0], args[1], opts, stdout, logger)
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError{err}
	})

	flags := cmd.Flags()
	flags.StringVar(&opts.logLevel, "log-level", defaultLogLevel, "log level (trace, debug, info, warn, error); also "+envLogLevel)
	flags.BoolVarP(&opts.quiet, "quiet", "q", false, "do not print the per-symbol report")
	return cmd
}

// compress runs one compression: count, build, report, pack.  The input is
// read twice, once to count and once to pack.
func compress(inputPath, outputPath string, opts options, stdout io.Writer, logger zerolog.Logger) error {
	in, err := os.Open(inputPath)
	if err != nil {
		logger.Debug().Err(err).Msg("open input")
		return openError{inputPath, err}
	}
	freq, err := huffman.CountFrequencies(in)
	in.Close()
	if err != nil {
		return err
	}

	var total uint64
	for _, count := range freq {
		total += count
	}
	logger.Debug().Str("input", inputPath).Uint64("bytes", total).Msg("counted input")

	tree := huffman.BuildTree(freq)
	defer tree.Release()
	logger.Debug().
		Int("nodes", tree.NumNodes()).
		Uint64("root", tree.Root().Frequency()).
		Uint64("bits", tree.WeightedLength()).
		Msg("built tree")

	// Fail on an unwritable output before anything is reported.
	out, err := os.OpenFile(outputPath, os.O_WRONLY|os.O_CREATE, 0o666)
	if err != nil {
		logger.Debug().Err(err).Msg("open output")
		return openError{outputPath, err}
	}
	out.Close()

	if !opts.quiet {
		if err := huffman.WriteReport(stdout, tree); err != nil {
			return err
		}
	}

	if err := huffman.Pack(inputPath, outputPath, tree); err != nil {
		var pe *fs.PathError
		if errors.As(err, &pe) && pe.Op == "open" {
			return openError{pe.Path, err}
		}
		return err
	}
	logger.Info().Str("input", inputPath).Str("output", outputPath).Msg("packed")
	return nil
}
