package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/atinylittleshell/pathcomplete/internal/completion"
	"github.com/atinylittleshell/pathcomplete/internal/config"
	"github.com/atinylittleshell/pathcomplete/internal/filepaths"
	"github.com/atinylittleshell/pathcomplete/internal/styles"
	"github.com/atinylittleshell/pathcomplete/internal/tui"
	"github.com/dustin/go-humanize"
	"go.uber.org/zap"
	"golang.org/x/term"
)

var BUILD_VERSION = "dev"

var complete = flag.String("c", "", "print completions for a partially typed path")
var parse = flag.String("p", "", "print how a path splits into directory, last component and offset")
var list = flag.String("l", "", "list a directory, marking subdirectories")
var long = flag.Bool("long", false, "with -l, also print entry sizes")

var helpFlag = flag.Bool("h", false, "display help information")
var versionFlag = flag.Bool("ver", false, "display build version")

const helpText = `pathcomplete - file path completion for interactive shells

USAGE:
  pathcomplete [options]

MODES:
  pathcomplete              Interactive prompt with live completions (Tab cycles)
  pathcomplete -c "~/do"    Print completions for a path
  pathcomplete -p "a/b"     Print the directory, last component and offset
  pathcomplete -l dir       List a directory
  ... | pathcomplete        Print completions for each path read from stdin

OPTIONS:
`

func main() {
	flag.Parse()

	if *versionFlag {
		fmt.Println(BUILD_VERSION)
		return
	}

	if *helpFlag {
		fmt.Print(helpText)
		flag.PrintDefaults()
		return
	}

	cfg, err := config.LoadDefaultConfigPath()
	if err != nil {
		fmt.Fprintln(os.Stderr, styles.ERROR(fmt.Sprintf("failed to load config, using defaults: %v", err)))
		cfg = config.DefaultConfig()
	}

	logger, err := initializeLogger(cfg)
	if err != nil {
		panic(err)
	}
	defer logger.Sync() // Flush any buffered log entries

	logger.Info("-------- new pathcomplete session --------", zap.Any("args", os.Args))

	provider := completion.NewProvider(completion.Options{
		Logger:         logger,
		MaxSuggestions: cfg.MaxSuggestions,
	})

	if err := run(cfg, provider, logger, os.Stdin, os.Stdout); err != nil {
		logger.Error("unhandled error", zap.Error(err))
		fmt.Fprintln(os.Stderr, styles.ERROR(err.Error()))
		os.Exit(1)
	}
}

func run(cfg *config.Config, provider *completion.Provider, logger *zap.Logger, stdin *os.File, stdout io.Writer) error {
	// pathcomplete -c "~/do"
	if isFlagSet("c") {
		return printSuggestions(stdout, *complete)
	}

	// pathcomplete -p "a/b"
	if isFlagSet("p") {
		printParse(stdout, *parse)
		return nil
	}

	// pathcomplete -l dir
	if isFlagSet("l") {
		return printListing(stdout, *list, *long)
	}

	// pathcomplete
	if term.IsTerminal(int(stdin.Fd())) {
		accepted, err := tui.Run(provider, cfg.Prompt, logger)
		if err != nil {
			return err
		}
		if accepted != "" {
			fmt.Fprintln(stdout, accepted)
		}
		return nil
	}

	return suggestLines(stdin, stdout, logger)
}

// isFlagSet reports whether a flag was given on the command line, so that an
// explicit empty value (-c "") still selects that mode.
func isFlagSet(name string) bool {
	set := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	return set
}

func printSuggestions(w io.Writer, path string) error {
	names, err := filepaths.SuggestPath(path)
	if err != nil {
		return err
	}
	for name := range names {
		fmt.Fprintln(w, name)
	}
	return nil
}

func printParse(w io.Writer, path string) {
	baseDir, lastDir, position := filepaths.ParsePath(path)
	fmt.Fprintf(w, "%s\t%s\t%d\n", baseDir, lastDir, position)
}

func printListing(w io.Writer, dir string, withSizes bool) error {
	entries, err := filepaths.ListPath(dir)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		name := entry
		switch {
		case strings.HasSuffix(entry, string(os.PathSeparator)):
			name = styles.DIRECTORY(entry)
		case strings.HasPrefix(entry, "."):
			name = styles.HIDDEN(entry)
		}

		if !withSizes {
			fmt.Fprintln(w, name)
			continue
		}

		size := "-"
		if info, err := os.Stat(filepath.Join(listRoot(dir), entry)); err == nil && !info.IsDir() {
			size = humanize.Bytes(uint64(info.Size()))
		}
		fmt.Fprintf(w, "%8s  %s\n", styles.SIZE(size), name)
	}
	return nil
}

func listRoot(dir string) string {
	if dir == "" {
		return "."
	}
	return dir
}

// suggestLines prints completions for every path read from r, one block per
// input line separated by blank lines. Listing failures are logged and the
// line is skipped.
func suggestLines(r io.Reader, w io.Writer, logger *zap.Logger) error {
	scanner := bufio.NewScanner(r)
	first := true
	for scanner.Scan() {
		if !first {
			fmt.Fprintln(w)
		}
		first = false

		path := scanner.Text()
		names, err := filepaths.SuggestPath(path)
		if err != nil {
			logger.Warn("failed to suggest paths", zap.String("path", path), zap.Error(err))
			continue
		}
		for name := range names {
			fmt.Fprintln(w, name)
		}
	}
	return scanner.Err()
}

func initializeLogger(cfg *config.Config) (*zap.Logger, error) {
	logLevel := cfg.ZapLevel()
	if BUILD_VERSION == "dev" {
		logLevel = zap.NewAtomicLevelAt(zap.DebugLevel)
	}

	// A bare file name has no directory part and is created in the working directory
	if logDir, _, _ := filepaths.ParsePath(cfg.LogFile); logDir != "" && !filepaths.DirPathExists(cfg.LogFile) {
		if err := os.MkdirAll(logDir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
	}

	// Logs only go to file to avoid interfering with the interactive prompt
	loggerConfig := zap.NewProductionConfig()
	loggerConfig.Level = logLevel
	loggerConfig.OutputPaths = []string{
		cfg.LogFile,
	}

	return loggerConfig.Build()
}
