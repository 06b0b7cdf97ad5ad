// Package main implements the staticref CLI tool.
//
// The staticref tool exercises the holders under concurrent load and
// reports library information:
//
//	staticref stress                    # Run with defaults
//	staticref stress -config run.yaml   # Run with a YAML config
//	staticref stress -writers 16 -swaps 100000
//	staticref version                   # Show version information
package main

import (
	"context"
	"flag"
	"os"

	"github.com/google/subcommands"
	"github.com/sirupsen/logrus"
)

var debug = flag.Bool("debug", false, "enable debug logging.")

func main() {
	subcommands.Register(subcommands.HelpCommand(), "")
	subcommands.Register(subcommands.FlagsCommand(), "")
	subcommands.Register(subcommands.CommandsCommand(), "")
	subcommands.Register(new(stressCmd), "")
	subcommands.Register(new(versionCmd), "")

	flag.Parse()

	logrus.SetOutput(os.Stderr)
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if *debug {
		logrus.SetLevel(logrus.DebugLevel)
	}

	os.Exit(int(subcommands.Execute(context.Background())))
}
