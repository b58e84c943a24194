// Command mcp-reminders provides an MCP server for the macOS Reminders
// app, backed by the system EventKit store.
//
// The server communicates over stdio; logs go to stderr or a file. On
// first use macOS shows a permission dialog, and by default the server
// requests access at startup so the dialog appears immediately instead
// of on the first tool call.
//
// Usage:
//
//	./mcp-reminders            # Start MCP server (stdio)
//	./mcp-reminders --help     # Show help
//
// Environment:
//
//	REMINDERS_LOG__LEVEL               Log level (default: info)
//	REMINDERS_PAGINATION__DEFAULT_LIMIT  Default page size (default: 20)
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"

	"github.com/remindkit/mcp-reminders/internal/config"
	"github.com/remindkit/mcp-reminders/internal/eventkit"
	"github.com/remindkit/mcp-reminders/internal/reminders"
)

const version = "1.0.0"

func main() {
	configPath := pflag.StringP("config", "c", config.GetDefaultConfigPath(), "Path to config file")
	logLevel := pflag.String("log-level", "", "Override log level (trace, debug, info, warn, error)")
	showVersion := pflag.BoolP("version", "v", false, "Print version and exit")
	showHelp := pflag.BoolP("help", "h", false, "Show help")
	pflag.Parse()

	if *showHelp {
		printHelp()
		return
	}
	if *showVersion {
		fmt.Println("mcp-reminders " + version)
		return
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if *logLevel != "" {
		cfg.Log.Level = *logLevel
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid config: %v\n", err)
		os.Exit(1)
	}

	logger, closeLog, err := newLogger(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to set up logging: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	api, err := eventkit.New()
	if err != nil {
		logger.Fatal().Err(err).Msg("eventkit unavailable")
	}

	store := reminders.NewStore(api, logger)

	if cfg.Access.RequestOnStart {
		// May block until the user answers the system prompt; the
		// prompt has no deadline and none is imposed here.
		logger.Info().Msg("requesting Reminders access")
		if err := store.EnsureAccess(); err != nil {
			logger.Error().Err(err).Msg("Reminders access not granted")
			logger.Error().Msg("grant access in System Settings > Privacy & Security > Reminders")
			os.Exit(1)
		}
		logger.Info().Msg("Reminders access granted")
	}

	s := reminders.NewServer(store, cfg.Pagination.DefaultLimit)

	logger.Info().Str("version", version).Msg("starting MCP server on stdio")
	if err := server.ServeStdio(s.MCPServer()); err != nil {
		logger.Fatal().Err(err).Msg("server error")
	}
}

// newLogger builds the process logger. Output goes to the configured
// file or stderr; stdout is reserved for MCP framing.
func newLogger(cfg config.LogConfig) (zerolog.Logger, func(), error) {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}

	var out io.Writer = os.Stderr
	closeLog := func() {}
	if cfg.File != "" {
		f, err := os.OpenFile(cfg.File, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0o644)
		if err != nil {
			return zerolog.Nop(), nil, fmt.Errorf("open log file: %w", err)
		}
		out = f
		closeLog = func() { f.Close() }
	}

	logger := zerolog.New(zerolog.ConsoleWriter{
		Out: out, TimeFormat: "2006-01-02_15:04:05",
	}).Level(level).With().Timestamp().Logger()
	return logger, closeLog, nil
}

func printHelp() {
	fmt.Println(`MCP Reminders Server - macOS Reminders via the MCP protocol

USAGE:
    mcp-reminders              Start MCP server (communicates via stdio)
    mcp-reminders --help       Show this help
    mcp-reminders --version    Print version

FLAGS:
    -c, --config PATH     Config file (default: ~/.mcp-reminders/config.yaml)
        --log-level LVL   Override log level

ENVIRONMENT:
    REMINDERS_LOG__LEVEL                 Log level (default: info)
    REMINDERS_LOG__FILE                  Log file path (default: stderr)
    REMINDERS_PAGINATION__DEFAULT_LIMIT  Default page size (default: 20)
    REMINDERS_ACCESS__REQUEST_ON_START   Request access at startup (default: true)

TOOLS:
    list_reminder_lists   Get all reminder lists
    get_reminder_list     Get a list by ID
    create_reminder_list  Create a list with optional color
    update_reminder_list  Update a list's title/color
    delete_reminder_list  Delete a list and its reminders
    get_reminders         Get reminders with filters
    get_reminder          Get a single reminder
    create_reminder       Create a reminder
    update_reminder       Update reminder fields
    complete_reminder     Toggle completion
    delete_reminder       Delete a reminder
    move_reminder         Move a reminder between lists
    complete_reminders    Batch complete
    delete_reminders      Batch delete
    add_reminders         Quick-add by title
    search_reminders      Search by title/notes

CONFIGURATION:
    Add to your MCP host config (e.g. claude_desktop_config.json):
    {
      "mcpServers": {
        "reminders": {
          "command": "/path/to/mcp-reminders",
          "args": []
        }
      }
    }

LIMITATIONS:
    - Sections/headers within lists are not accessible (UI-only feature)
    - List colors may shift slightly due to iCloud color space conversion
    - Reminder IDs may change for non-iCloud accounts`)
}
