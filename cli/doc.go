// Package cli contains the command line interface for rsx.
//
// # Usage
//
// The default command executes a script and prints its result:
//
//	rsx script.js
//	echo '1 + 4 * 78;' | rsx -
//	rsx run -e '1 + 4 * 78;'
//
// Other commands print the syntax tree or start an interactive session:
//
//	rsx ast --format=json script.js
//	rsx repl
//
// # Configuration
//
// Flags can be persisted with the init command, which writes the current
// flag values to a JSON configuration file under the user configuration
// directory. Values from that file are applied on every invocation, with
// command-line flags taking precedence.
//
// # Logging Options
//
//   - --log-level: Set minimum log level (trace, debug, info, warn, error)
//   - --log-format: Set log output format (json, text)
//   - --log-time-layout: Set timestamp format (RFC3339, RFC3339Nano, etc.)
//   - --log-caller: Include caller information in log output
//   - --log-pretty: Enable colorized pretty printing
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof .
//
//   - --pprof-mode: Enable profiling (allocs, block, clock, cpu, goroutine,
//     heap, mem, mutex, thread, trace)
//   - --pprof-dir: Set profile output directory (default:
//     ~/.cache/rsx/pprof)
//
// # Examples
//
//	# Debug logging with CPU profiling
//	rsx --log-level=debug --pprof-mode=cpu script.js
//
//	# Text format with heap profiling
//	rsx --log-format=text --pprof-mode=heap script.js
package cli
