package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/orgoj/recordlog/internal/config"
	"github.com/orgoj/recordlog/internal/logger"
	"github.com/orgoj/recordlog/internal/version"
)

// contextFlag collects repeated -set key=value flags.
type contextFlag map[string]string

func (c contextFlag) String() string {
	pairs := make([]string, 0, len(c))
	for k, v := range c {
		pairs = append(pairs, k+"="+v)
	}
	return strings.Join(pairs, ",")
}

func (c contextFlag) Set(value string) error {
	key, val, ok := strings.Cut(value, "=")
	key = strings.TrimSpace(key)
	if !ok || key == "" {
		return fmt.Errorf("expected key=value, got %q", value)
	}
	c[key] = val
	return nil
}

func main() {
	// --- Configuration --- //
	configPath := flag.String("config", "", "Path to the configuration file (defaults are used when empty)")
	levelName := flag.String("level", "log", "Record level: log, error, debug, warn or info")
	console := flag.Bool("console", false, "Echo colorized records to stdout")
	stack := flag.Bool("stack", false, "Buffer records and write them once at the end")
	testConfigShort := flag.Bool("t", false, "Test configuration and exit")
	testConfigLong := flag.Bool("test", false, "Test configuration and exit")
	showVersion := flag.Bool("version", false, "Show version information and exit")
	verbose := flag.Bool("v", false, "Verbose diagnostics on stderr")
	values := contextFlag{}
	flag.Var(values, "set", "Context value as key=value (repeatable)")
	flag.Parse()

	// Display version information if requested
	if *showVersion {
		fmt.Println(version.VersionInfo())
		os.Exit(0)
	}

	// Initialize application logger
	appLogger := logger.GetAppLogger()
	appLogger.SetVerbose(*verbose)

	// Load configuration, or fall back to the defaults
	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.LoadConfig(*configPath)
		if err != nil {
			appLogger.Fatal("Failed to load configuration from '%s': %v", *configPath, err)
		}
		cfg = loaded
	}
	// Validate the loaded configuration
	if err := config.ValidateConfig(cfg); err != nil {
		appLogger.Fatal("Configuration validation failed: %v", err)
	}

	// If only testing configuration, exit now
	if *testConfigShort || *testConfigLong {
		fmt.Printf("Configuration '%s' is valid.\n", *configPath)
		os.Exit(0)
	}

	// --- Logger Initialization --- //

	level, err := logger.ParseLevel(*levelName)
	if err != nil {
		appLogger.Fatal("%v", err)
	}

	// Command line switches can only turn console echo and buffering on
	opts := cfg.Options()
	opts.Console = opts.Console || *console
	opts.Stack = opts.Stack || *stack

	lgr, err := logger.Open(opts)
	if err != nil {
		appLogger.Fatal("Failed to open logger: %v", err)
	}
	appLogger.Debug("Logging to %s (buffering: %t)", lgr.LogFile(), lgr.Buffering())

	// Configured context first, -set values on top
	ctx := cfg.DefaultContext()
	if ctx == nil {
		ctx = logger.Context{}
	}
	for k, v := range values {
		ctx[k] = v
	}

	// --- Recording --- //

	count, err := run(lgr, level, flag.Args(), os.Stdin, ctx)
	if err != nil {
		appLogger.Fatal("%v", err)
	}
	appLogger.Debug("Recorded %d message(s) at %s", count, level)
}

// run records the message given as args, or one record per stdin line when
// args is empty, then dumps the buffer if the recorder is buffering.
func run(rec logger.Recorder, level logger.Level, args []string, stdin io.Reader, ctx logger.Context) (int, error) {
	count := 0

	// A message on the command line is one record
	if len(args) > 0 {
		if err := rec.Record(level, strings.Join(args, " "), ctx); err != nil {
			return count, fmt.Errorf("failed to record message: %w", err)
		}
		count++
	} else {
		// Otherwise every stdin line is a record
		scanner := bufio.NewScanner(stdin)
		for scanner.Scan() {
			if err := rec.Record(level, scanner.Text(), ctx); err != nil {
				return count, fmt.Errorf("failed to record line %d: %w", count+1, err)
			}
			count++
		}
		if err := scanner.Err(); err != nil {
			return count, fmt.Errorf("failed to read stdin: %w", err)
		}
	}

	// Buffered records reach the file only here
	if rec.Buffering() {
		if err := rec.Dump(); err != nil {
			return count, fmt.Errorf("failed to dump buffered records: %w", err)
		}
	}
	return count, nil
}
