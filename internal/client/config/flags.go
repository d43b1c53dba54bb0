package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/kanbord/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Only -a, -s, -t and -v are read from os.Args (see flagx.FilterArgs), so other
// components may define their own flags. Parse errors panic.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-s", "-t", "-v"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerURL, "a", cfg.ServerURL, "base URL of the Kanbord API")
	fs.StringVar(&cfg.SessionDB, "s", cfg.SessionDB, "path to the local session database")
	requestTimeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	fs.BoolVar(&cfg.Verbose, "v", cfg.Verbose, "verbose diagnostics")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.RequestTimeout = time.Duration(*requestTimeout) * time.Second
}
