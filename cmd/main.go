package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/flatjson/flatjson/pkg/parser"
	"github.com/flatjson/flatjson/pkg/writer"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// CLI flag definitions
	// Input options
	inPath := flag.String("in", "-", "Input file path, or - for stdin")

	// Output options
	pretty := flag.Bool("pretty", false, "Re-emit the document with newlines and 4-space indentation")
	validate := flag.Bool("validate", false, "Only validate the input, do not re-emit it")

	// Capacity options
	maxTokens := flag.Int("max-tokens", parser.DefaultMaxTokens, "Token table capacity for the parse")
	outSize := flag.Int("out-size", writer.DefaultBufSize, "Output buffer capacity in bytes")

	// Logging options
	logLevel := flag.String("log-level", "info", "Log level (trace, debug, info, warn, error, fatal)")
	prettyLogs := flag.Bool("pretty-logs", false, "Enable pretty logging output")

	// Other options
	showVersion := flag.Bool("version", false, "Show version and exit")

	flag.Parse()

	// Version info
	const version = "0.1.0"

	// Handle version flag
	if *showVersion {
		fmt.Printf("flatjson version %s\n", version)
		os.Exit(0)
	}

	// Configure zerolog
	setupLogging(*logLevel, *prettyLogs)

	// Read the whole input; the parser works over a single buffer.
	input, err := readInput(*inPath)
	if err != nil {
		log.Fatal().Err(err).Str("in", *inPath).Msg("Failed to read input")
	}

	p := parser.NewParserSize(*maxTokens)
	if err := p.Begin(input); err != nil {
		_ = p.End()
		log.Error().Err(err).Str("in", *inPath).Msg("Parse failed")
		os.Exit(1)
	}
	defer func() { _ = p.End() }()

	log.Debug().
		Int("tokens", p.Count()).
		Int("bytes", len(input)).
		Str("in", *inPath).
		Msg("Parsed input")

	if *validate {
		log.Info().
			Int("tokens", p.Count()).
			Int("bytes", len(input)).
			Msg("Input is well-formed JSON")
		return
	}

	w := writer.NewWriterSize(*outSize, writer.DefaultStackDepth)
	if err := reformat(p, w, *pretty); err != nil {
		log.Error().Err(err).Int("first_failed_call", w.FirstFailedCall()).Msg("Reformat failed")
		os.Exit(1)
	}

	if _, err := os.Stdout.Write(w.Output()); err != nil {
		log.Fatal().Err(err).Msg("Failed to write output")
	}
	fmt.Println()
}

func readInput(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

func setupLogging(level string, pretty bool) {
	// Set log level
	var logLevel zerolog.Level
	switch level {
	case "trace":
		logLevel = zerolog.TraceLevel
	case "debug":
		logLevel = zerolog.DebugLevel
	case "info":
		logLevel = zerolog.InfoLevel
	case "warn":
		logLevel = zerolog.WarnLevel
	case "error":
		logLevel = zerolog.ErrorLevel
	case "fatal":
		logLevel = zerolog.FatalLevel
	default:
		logLevel = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(logLevel)

	// Configure output format; logs go to stderr so the reformatted
	// document on stdout stays clean.
	if pretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	} else {
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	}
}
