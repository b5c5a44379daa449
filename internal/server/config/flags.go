package config

import (
	"flag"
	"io"
	"time"

	"github.com/dmitrijs2005/tasktracker/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags:
//
//	-a string   HTTP bind address (e.g., ":8000")
//	-d string   PostgreSQL DSN
//	-s string   session secret
//	-t int      session validity, minutes
//	-b int      bcrypt cost
//	-secure     set the Secure cookie attribute (use -secure=false to clear)
//
// args is filtered with flagx.FilterArgs first so flags owned by other
// loaders (-c) do not break parsing.
func parseFlags(config *Config, args []string) {
	args = flagx.FilterArgs(args, []string{"-a", "-d", "-s", "-t", "-b", "-secure"})

	fs := flag.NewFlagSet("tasktracker", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SessionSecret, "s", config.SessionSecret, "session secret")
	validity := fs.Int("t", int(config.SessionValidityDuration.Minutes()), "session validity (in minutes)")
	fs.IntVar(&config.BcryptCost, "b", config.BcryptCost, "bcrypt cost")
	fs.BoolVar(&config.SecureCookie, "secure", config.SecureCookie, "mark cookies Secure")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	fs.Visit(func(f *flag.Flag) {
		if f.Name == "t" {
			config.SessionValidityDuration = time.Duration(*validity) * time.Minute
		}
	})
}
