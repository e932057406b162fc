package config

import (
	"flag"
	"os"

	"github.com/meslee/moneyledger/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-d string   PostgreSQL DSN of the remote store (default from Config)
//	-a string   base URL of the auth endpoint (default from Config)
//	-f string   path of the local cache database (default from Config)
//
// Note: The function filters os.Args to only include the flags it knows
// about, using flagx.FilterArgs, to avoid interference with other
// components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-d", "-a", "-f"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "PostgreSQL DSN of the remote store")
	fs.StringVar(&cfg.AuthBaseURL, "a", cfg.AuthBaseURL, "base URL of the auth endpoint")
	fs.StringVar(&cfg.CacheDBPath, "f", cfg.CacheDBPath, "path of the local cache database")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
