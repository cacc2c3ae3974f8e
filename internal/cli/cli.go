package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/specialistvlad/uniformgrid/internal/app"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// stringList collects a repeatable flag in the order given.
type stringList []string

func (s *stringList) String() string { return strings.Join(*s, ", ") }

func (s *stringList) Set(v string) error {
	*s = append(*s, v)
	return nil
}

// Parse processes command-line arguments. It returns a populated Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("uniformgrid", flag.ContinueOnError)
	flagSet.SetOutput(output)

	// Custom usage/help text function
	flagSet.Usage = func() {
		fmt.Fprint(output, `
UniformGrid - Declarative shader uniforms with derived values.

Usage:
  uniformgrid [options] [GRID_PATH]

Arguments:
  GRID_PATH
    Path to a definition file (.hcl, .yaml, .yml, .toml) or a directory
    containing them.

Examples:
  uniformgrid -set u3=7 -set u2=80 examples/three_uniforms.hcl
  uniformgrid -sink socketio -socketio-url http://localhost:3000 examples/

Options:
`)
		flagSet.PrintDefaults()
	}

	var sets stringList
	gridFlag := flagSet.String("grid", "", "Path to the definition file or directory.")
	gFlag := flagSet.String("g", "", "Path to the definition file or directory (shorthand).")
	flagSet.Var(&sets, "set", "Assign a root uniform, as name=value. Repeatable; applied in order.")
	settleFlag := flagSet.Bool("settle", false, "Recompute every derived uniform from its inputs before applying sets.")
	modeFlag := flagSet.String("mode", "per-path", "Propagation mode. Options: 'per-path' or 'topological'.")
	sinkFlag := flagSet.String("sink", app.DefaultSink, "Where uniforms are transmitted. Options: 'glprint', 'socketio', 'http' or 'none'.")
	sioURLFlag := flagSet.String("socketio-url", "", "socket.io server url for the socketio sink.")
	sioNamespaceFlag := flagSet.String("socketio-namespace", "", "socket.io namespace for the socketio sink. Defaults to '/'.")
	sioEventFlag := flagSet.String("socketio-event", "", "Event name emitted by the socketio sink. Defaults to 'uniform'.")
	sioTimeoutFlag := flagSet.Duration("socketio-timeout", 0, "Connection timeout for the socketio sink. 0 uses the default.")
	httpURLFlag := flagSet.String("http-url", "", "Endpoint the http sink POSTs every transmission to.")
	httpTimeoutFlag := flagSet.Duration("http-timeout", 0, "Request timeout for the http sink. 0 uses the default.")
	watchFlag := flagSet.Bool("watch", false, "Keep running and re-run whenever a definition file changes.")
	healthPortFlag := flagSet.Int("healthcheck-port", 0, "Port for the HTTP health check server. 0 is disabled.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	path := ""
	if *gridFlag != "" {
		path = *gridFlag
	} else if *gFlag != "" {
		path = *gFlag
	} else if flagSet.NArg() > 0 {
		path = flagSet.Arg(0)
	}
	slog.Debug("Grid path determined.", "path", path)

	if path == "" {
		slog.Debug("No grid path provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}

	sink := strings.ToLower(*sinkFlag)
	settings := map[string]string{}
	switch sink {
	case "socketio":
		settings = sinkSettings(*sioURLFlag, *sioTimeoutFlag)
		if *sioNamespaceFlag != "" {
			settings["namespace"] = *sioNamespaceFlag
		}
		if *sioEventFlag != "" {
			settings["event"] = *sioEventFlag
		}
	case "http":
		settings = sinkSettings(*httpURLFlag, *httpTimeoutFlag)
	}
	if (sink == "socketio" || sink == "http") && settings["url"] == "" {
		return nil, false, &ExitError{Code: 2, Message: fmt.Sprintf("the %s sink needs -%s-url", sink, sink)}
	}
	slog.Debug("CLI parameter validation complete.")

	config, err := app.NewConfig(app.Config{
		GridPath:        path,
		Sets:            sets,
		Settle:          *settleFlag,
		Mode:            *modeFlag,
		Sink:            sink,
		SinkSettings:    settings,
		Watch:           *watchFlag,
		HealthcheckPort: *healthPortFlag,
		LogFormat:       logFormat,
		LogLevel:        logLevel,
	})

	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}

// sinkSettings keeps only the options that were given, so the sink
// applies its own defaults to the rest.
func sinkSettings(url string, timeout time.Duration) map[string]string {
	settings := make(map[string]string)
	if url != "" {
		settings["url"] = url
	}
	if timeout > 0 {
		settings["timeout"] = timeout.String()
	}
	return settings
}
