package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	adminagent "ride-hail-client/cmd/admin_agent"
	driveragent "ride-hail-client/cmd/driver_agent"
	rideragent "ride-hail-client/cmd/rider_agent"
	"ride-hail-client/internal/cli"
	"syscall"
	"time"
)

func main() {
	// quick path for global help
	if len(os.Args) == 2 && (os.Args[1] == "--help" || os.Args[1] == "-h") {
		cli.PrintUsage(os.Stdout)
		os.Exit(0)
	}

	// parse mode and collect the remaining args for that mode
	mode, agentArgs, err := cli.ParseMode(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		cli.PrintUsage(os.Stderr)
		os.Exit(2)
	}

	// context cancelled on SIGINT/SIGTERM for graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	fs := flag.NewFlagSet(mode, flag.ContinueOnError)
	cfgPath := fs.String("config", "", "Path to the YAML configuration file (optional)")
	email := fs.String("email", "", "Login email when no stored session exists")
	password := fs.String("password", "", "Login password when no stored session exists")
	var startOnline *bool
	if mode == cli.ModeDriver {
		startOnline = fs.Bool("online", false, "Go online immediately after startup")
	}
	cli.AttachUsage(fs, mode)

	if err := fs.Parse(agentArgs); err != nil {
		if err == flag.ErrHelp {
			os.Exit(0)
		}
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(2)
	}

	// run the agent specified by the mode flag
	switch mode {
	case cli.ModeRider:
		err = rideragent.Run(ctx, *cfgPath, *email, *password)
	case cli.ModeDriver:
		err = driveragent.Run(ctx, *cfgPath, *email, *password, *startOnline)
	case cli.ModeAdmin:
		err = adminagent.Run(ctx, *cfgPath, *email, *password)
	default:
		// should not happen because ParseMode validates known modes
		fmt.Fprintln(os.Stderr, "Error: unknown mode")
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}

	// tiny delay to let deferred logs flush on very fast exits
	select {
	case <-ctx.Done():
	case <-time.After(10 * time.Millisecond):
	}
}
