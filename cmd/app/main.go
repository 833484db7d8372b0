package main

import (
	"context"
	"crab/internal/object"
	"crab/internal/repl"
	"crab/internal/report"
	"crab/internal/util"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
)

const (
	historyFile = ".crab_history"
	LevelTrace  = slog.LevelDebug - 4
	LevelNone   = slog.LevelError + 4
)

var (
	// Version is set at build time with -ldflags.
	Version   = "dev"
	BuildDate = "unknown"
	Commit    = "unknown"
	help      bool
	version   bool
	useRepl   bool
	// config vars
	configPath string
	// logging
	logLevel string
	logFile  string
	// output
	reportFormat string
	// input
	dbDriver string
	dbDSN    string
	dbQuery  string
)

func init() {
	flag.BoolVar(&help, "help", false, "Display help information and exit")
	flag.BoolVar(&help, "h", false, "Display help information and exit")
	flag.BoolVar(&version, "version", false, "Display version information and exit")
	flag.BoolVar(&version, "v", false, "Display version information and exit")
	flag.BoolVar(&useRepl, "repl", false, "Start an interactive session instead of running a file")
	flag.StringVar(&configPath, "config", "", "Load settings from a TOML file")
	// log config
	flag.StringVar(&logLevel, "log-level", "none", "Log level: trace, debug, info, warn, error, none")
	flag.StringVar(&logFile, "log-file", "", "Log file path (if not set, logs to stderr)")
	// report config
	flag.StringVar(&reportFormat, "report", "text", "Final stack report format: text, json, yaml")
	// input config
	flag.StringVar(&dbDriver, "db-driver", "sqlite3", "Database driver for -db-query: sqlite3, mysql, postgres")
	flag.StringVar(&dbDSN, "db-dsn", "", "Database connection string for -db-query")
	flag.StringVar(&dbQuery, "db-query", "", "Read the initial stack from the first column of this query instead of stdin")
}

func main() {
	os.Exit(execute())
}

// execute runs the command and returns its exit code, after every deferred
// cleanup has happened.
func execute() int {
	flag.Parse()

	if version {
		printVersion()
		return 0
	}

	if help {
		printHelp()
		return 0
	}

	config, err := configure()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 2
	}

	loggerOptions := &slog.HandlerOptions{
		AddSource: false,
		Level:     logLevelFromString(config.LogLevel),
	}
	logWriter, closeLog := configureLogWriter(config.LogFile)
	defer closeLog()
	defaultLogger := slog.New(slog.NewJSONHandler(logWriter, loggerOptions))
	slog.SetDefault(defaultLogger)

	format, err := report.ParseFormat(config.Report)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 2
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if useRepl {
		return startRepl(ctx, config)
	}

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Expected usage: crab [options] <file.crab>")
		return 2
	}

	app := &App{
		Config: config,
		Format: format,
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
	return app.RunFile(ctx, flag.Arg(0))
}

// configure layers defaults, the optional config file and explicitly set flags.
func configure() (util.Configuration, error) {
	config := util.DefaultConfiguration()
	if configPath != "" {
		loaded, err := util.LoadConfiguration(configPath, config)
		if err != nil {
			return config, err
		}
		config = loaded
	}

	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "log-level":
			config.LogLevel = logLevel
		case "log-file":
			config.LogFile = logFile
		case "report":
			config.Report = reportFormat
		case "db-driver":
			config.Input.Driver = dbDriver
		case "db-dsn":
			config.Input.DSN = dbDSN
		case "db-query":
			config.Input.SQL = dbQuery
		}
	})

	config.Version = Version
	config.BuildDate = BuildDate
	config.Commit = Commit
	return config, nil
}

func startRepl(ctx context.Context, config util.Configuration) int {
	stack := object.NewStack()
	if config.Input.Enabled() {
		app := &App{Config: config, Stderr: os.Stderr}
		numbers, err := app.loadNumbers(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			return 1
		}
		stack = object.NumberStack(numbers)
	}

	var historyPath string
	if home, err := os.UserHomeDir(); err == nil {
		historyPath = filepath.Join(home, historyFile)
	}

	fmt.Printf("crab %s, type :help for commands\n", Version)
	if err := repl.Start(os.Stdout, stack, historyPath); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	return 0
}

// configureLogWriter opens logFile for appending, or falls back to stderr.
// The returned func closes the file and is a no-op for stderr.
func configureLogWriter(logFile string) (io.Writer, func()) {
	if logFile == "" {
		return os.Stderr, func() {}
	}
	if err := os.MkdirAll(filepath.Dir(logFile), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "failed to create log directory for '%s': %v; falling back to stderr\n", logFile, err)
		return os.Stderr, func() {}
	}
	f, err := os.OpenFile(logFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open log file '%s': %v; falling back to stderr\n", logFile, err)
		return os.Stderr, func() {}
	}
	return f, func() {
		if err := f.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "failed to close log file '%s': %v\n", logFile, err)
		}
	}
}

func printVersion() {
	fmt.Printf("crab version 'v%s' %s %s\n", Version, BuildDate, Commit)
}

func printHelp() {
	fmt.Printf(`Usage: crab [options] <file.crab>

Options:
  -config <path>       Load settings from a TOML file. Flags override it.
  -repl                Start an interactive session.
  -report <format>     Final stack report: text, json or yaml. Default is 'text'.
  -db-driver <name>    Driver for -db-query: sqlite3, mysql or postgres. Default is 'sqlite3'.
  -db-dsn <dsn>        Connection string for -db-query.
  -db-query <sql>      Build the initial stack from the first column of a query.
  -log-level <level>   Set the log level: trace, debug, info, warn, error, none. Default is 'none'.
  -log-file <path>     Specify a log file to write logs. Default is stderr.
  -help                Display this help information and exit.
  -version             Display version information and exit.

Details:
Runs a crab program. The numbers read from standard input (separated by
whitespace) form the initial stack, the last one on top. After the program
finishes the remaining stack is printed.

Examples:
  echo 4 | crab sum.crab             Run sum.crab with 4 on the stack
  crab -report=json prog.crab </dev/null
  crab -db-dsn=data.db -db-query='SELECT n FROM samples' prog.crab

Version Information:
  Version:    %s
  Build Date: %s
  Commit:     %s
`, Version, BuildDate, Commit)
}

func logLevelFromString(level string) slog.Level {
	switch level {
	case "trace":
		return LevelTrace
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return LevelNone
	}
}
