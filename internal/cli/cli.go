// internal/cli/cli.go
package cli

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"

	"github.com/fatih/color"
	pflag "github.com/spf13/pflag"

	"github.com/gagin/patchlevel/internal/branch"
	"github.com/gagin/patchlevel/internal/config"
	"github.com/gagin/patchlevel/internal/updater"
)

const (
	exitOK      = 0
	exitFailure = 1
	exitFlags   = 2
)

// options holds parsed flag values for one run.
type options struct {
	configPath  string
	logLevelStr string
	dryRun      bool
	strict      bool
	noColor     bool
	version     bool
}

// failure is the exit status for a reported error. Errors are plain text on
// stdout; only --strict turns them into a non-zero status.
func (o options) failure() int {
	if o.strict {
		return exitFailure
	}
	return exitOK
}

func newFlagSet(p Profile, opts *options, stderr io.Writer) *pflag.FlagSet {
	flags := pflag.NewFlagSet(p.Name, pflag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.StringVarP(&opts.configPath, "config", "c", "", "Path to a configuration file (default ~/.config/patchlevel/config.toml).")
	flags.StringVar(&opts.logLevelStr, "loglevel", "info", "Set logging verbosity (debug, info, warn, error).")
	flags.BoolVarP(&opts.dryRun, "dry-run", "n", false, "Print the changes as a diff without writing the file.")
	flags.BoolVar(&opts.strict, "strict", false, "Exit with status 1 when the file cannot be updated.")
	flags.BoolVar(&opts.noColor, "no-color", false, "Disable colored diff output.")
	flags.BoolVarP(&opts.version, "version", "v", false, "Print version and exit.")

	flags.Usage = func() {
		fmt.Fprintf(stderr, `Usage: %s [flags] <file_path>

%s

Flags:
`, p.Name, p.Description)
		flags.PrintDefaults()
	}
	return flags
}

func setupLogging(stderr io.Writer, levelStr string) {
	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(levelStr)); err != nil {
		fmt.Fprintf(stderr, "Invalid log level %q, defaulting to 'info'.\n", levelStr)
		logLevel = slog.LevelInfo
	}
	logOpts := &slog.HandlerOptions{Level: logLevel, AddSource: logLevel <= slog.LevelDebug}
	slog.SetDefault(slog.New(slog.NewTextHandler(stderr, logOpts)))
}

// Run executes the tool described by p with the given arguments (without the
// program name) and returns the process exit status.
func Run(p Profile, args []string, stdout, stderr io.Writer) int {
	var opts options
	flags := newFlagSet(p, &opts, stderr)
	if err := flags.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return exitOK
		}
		fmt.Fprintf(stderr, "Error: %v\n", err)
		flags.Usage()
		return exitFlags
	}

	if opts.version {
		fmt.Fprintf(stdout, "%s version %s\n", p.Name, Version)
		return exitOK
	}

	setupLogging(stderr, opts.logLevelStr)
	if opts.noColor {
		color.NoColor = true
	}

	positionalArgs := flags.Args()
	if len(positionalArgs) != 1 {
		slog.Debug("Wrong number of positional arguments.", "count", len(positionalArgs))
		fmt.Fprintf(stdout, "Usage: %s <file_path>\n", p.Name)
		return opts.failure()
	}
	filePath := positionalArgs[0]

	cfg, err := config.Load(opts.configPath, p.Name, p.Defaults)
	if err != nil {
		slog.Error("Failed to load configuration.", "error", err)
		fmt.Fprintf(stdout, "Error: %v\n", err)
		return opts.failure()
	}

	reader := branch.NewReader("", *cfg.FallbackBranch)
	rules, err := BuildRules(cfg, reader.Current)
	if err != nil {
		fmt.Fprintf(stdout, "Error: %v\n", err)
		return opts.failure()
	}

	res, err := updater.Update(filePath, rules, updater.Options{DryRun: opts.dryRun})
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			fmt.Fprintf(stdout, "Error: The file '%s' was not found.\n", filePath)
		} else {
			fmt.Fprintf(stdout, "Error: %v\n", err)
		}
		return opts.failure()
	}

	if opts.dryRun {
		printDiff(stdout, res.Diff)
		fmt.Fprintf(stdout, "Dry run: %d line(s) in '%s' would change; nothing was written.\n", len(res.Changes), filePath)
		return exitOK
	}

	fmt.Fprintf(stdout, "File '%s' has been updated successfully.\n", filePath)
	return exitOK
}
