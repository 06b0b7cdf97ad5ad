package main

import (
	"context"
	"flag"
	"time"

	"github.com/google/subcommands"
	"github.com/sirupsen/logrus"

	"github.com/kolkov/staticref/internal/modroot"
	"github.com/kolkov/staticref/internal/staticref/stress"
)

// stressCmd implements subcommands.Command for the "stress" command.
type stressCmd struct {
	configPath string
	writers    int
	readers    int
	swaps      int
	timeout    time.Duration
}

// Name implements subcommands.Command.Name.
func (*stressCmd) Name() string {
	return "stress"
}

// Synopsis implements subcommands.Command.Synopsis.
func (*stressCmd) Synopsis() string {
	return "check holder atomicity and swap linearizability under concurrent load"
}

// Usage implements subcommands.Command.Usage.
func (*stressCmd) Usage() string {
	return `stress [-config file.yaml] [-writers N] [-readers N] [-swaps N] [-timeout D]

Runs concurrent writers swapping interned texts through one holder while
readers load it, then verifies that every load saw a stored value and that
every stored value was handed back exactly once. Flags override values from
the config file.
`
}

// SetFlags implements subcommands.Command.SetFlags.
func (s *stressCmd) SetFlags(f *flag.FlagSet) {
	def := stress.DefaultConfig()
	f.StringVar(&s.configPath, "config", "", "YAML file with writers, readers, swaps and timeout.")
	f.IntVar(&s.writers, "writers", def.Writers, "number of goroutines calling Swap.")
	f.IntVar(&s.readers, "readers", def.Readers, "number of goroutines calling Load.")
	f.IntVar(&s.swaps, "swaps", def.Swaps, "number of Swap calls per writer.")
	f.DurationVar(&s.timeout, "timeout", def.Timeout, "upper bound for the run; 0 disables it.")
}

// Execute implements subcommands.Command.Execute.
func (s *stressCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 0 {
		f.Usage()
		return subcommands.ExitUsageError
	}

	cfg, err := s.config(f)
	if err != nil {
		logrus.WithError(err).Error("invalid stress configuration")
		return subcommands.ExitUsageError
	}

	log := logrus.WithFields(logrus.Fields{
		"writers": cfg.Writers,
		"readers": cfg.Readers,
		"swaps":   cfg.Swaps,
		"timeout": cfg.Timeout,
	})
	log.Info("starting stress run")

	report, err := stress.Run(ctx, cfg)
	if err != nil {
		log.WithError(err).Error("stress run failed")
		return subcommands.ExitFailure
	}

	var root string
	if mod, err := modroot.FindWorkingDir(); err == nil {
		root = mod.Dir
		log.WithField("module", mod.Path).Debug("rendering locations relative to module root")
	} else {
		log.WithError(err).Debug("no enclosing module, rendering absolute locations")
	}

	fields := logrus.Fields{
		"swaps":       report.Swaps,
		"loads":       report.Loads,
		"values":      report.Values,
		"final":       report.Final,
		"last_writer": report.LastWriter.Rel(root),
		"elapsed":     report.Elapsed,
	}
	if report.TimedOut {
		logrus.WithFields(fields).Warn("stress run hit its timeout; completed swaps verified")
		return subcommands.ExitSuccess
	}
	logrus.WithFields(fields).Info("stress run passed")
	return subcommands.ExitSuccess
}

// config builds the run configuration: defaults, then the config file,
// then any flags set explicitly on the command line.
func (s *stressCmd) config(f *flag.FlagSet) (stress.Config, error) {
	cfg := stress.DefaultConfig()

	if s.configPath != "" {
		var err error
		cfg, err = loadConfig(s.configPath, cfg)
		if err != nil {
			return cfg, err
		}
	}

	f.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "writers":
			cfg.Writers = s.writers
		case "readers":
			cfg.Readers = s.readers
		case "swaps":
			cfg.Swaps = s.swaps
		case "timeout":
			cfg.Timeout = s.timeout
		}
	})

	return cfg, cfg.Validate()
}
