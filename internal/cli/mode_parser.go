package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
)

const (
	ModeRider  = "rider-agent"
	ModeDriver = "driver-agent"
	ModeAdmin  = "admin-agent"
)

// isKnownMode checks if the provided mode name is known.
func isKnownMode(s string) (string, bool) {
	switch s {
	case ModeRider, "rider", "r":
		return ModeRider, true
	case ModeDriver, "driver", "d":
		return ModeDriver, true
	case ModeAdmin, "admin", "a":
		return ModeAdmin, true
	default:
		return "", false
	}
}

// ParseMode supports:
//
//	--mode=<value>
//	<value> (subcommand shorthand), e.g., `rider-agent --config=config.yaml`
func ParseMode(args []string) (string, []string, error) {
	var mode string
	var out []string

	for i := range args {
		arg := args[i]
		if after, ok := strings.CutPrefix(arg, "--mode="); ok {
			mode = after
			continue
		}

		if mode == "" {
			if m, ok := isKnownMode(arg); ok {
				mode = m
				continue
			}
		}
		out = append(out, arg)
	}

	if mode == "" {
		return "", out, errors.New("no mode specified: use --mode=<agent>")
	}

	if m, ok := isKnownMode(mode); ok {
		mode = m
	}

	return mode, out, nil
}

// PrintUsage prints the usage information with examples.
func PrintUsage(w io.Writer) {
	fmt.Fprint(w, "\033[36m") // cyan

	fmt.Fprintln(w, `Usage:
  ./ride-hail-client --mode=<agent> [flags]

Agents (modes):
  rider-agent     Rider views: own rides, vacations and intercity trips
  driver-agent    Driver views: dispatch queues and location reporting
  admin-agent     Platform overview: aggregate stats and user roster

Examples:
  ./ride-hail-client --mode=rider-agent --config=config.yaml
  ./ride-hail-client --mode=driver-agent --email=driver@example.com --password=secret
  ./ride-hail-client --mode=admin-agent --config=/etc/rideclient/admin.yaml`)

	fmt.Fprint(w, "\033[0m") // reset
}

// AttachUsage wires a concise per-mode usage to a FlagSet.
func AttachUsage(fs *flag.FlagSet, mode string) {
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: ./ride-hail-client --mode=%s [flags]\n", mode)
		fs.PrintDefaults()
	}
}
