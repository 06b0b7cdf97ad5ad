package main

import (
	"context"
	"flag"
	"fmt"
	"runtime"

	"github.com/google/subcommands"
	"github.com/sirupsen/logrus"
	"golang.org/x/mod/semver"

	"github.com/kolkov/staticref/staticref"
)

// versionCmd implements subcommands.Command for the "version" command.
type versionCmd struct{}

// Name implements subcommands.Command.Name.
func (*versionCmd) Name() string {
	return "version"
}

// Synopsis implements subcommands.Command.Synopsis.
func (*versionCmd) Synopsis() string {
	return "show version information"
}

// Usage implements subcommands.Command.Usage.
func (*versionCmd) Usage() string {
	return "version\n"
}

// SetFlags implements subcommands.Command.SetFlags.
func (*versionCmd) SetFlags(*flag.FlagSet) {}

// Execute implements subcommands.Command.Execute.
func (*versionCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 0 {
		f.Usage()
		return subcommands.ExitUsageError
	}

	v, err := canonicalVersion(staticref.Version)
	if err != nil {
		logrus.WithError(err).Error("bad build version")
		return subcommands.ExitFailure
	}
	fmt.Printf("staticref version %s (%s)\n", v, runtime.Version())
	return subcommands.ExitSuccess
}

// canonicalVersion returns v in canonical semver form ("v1.2.3").
func canonicalVersion(v string) (string, error) {
	if v == "" || v[0] != 'v' {
		v = "v" + v
	}
	c := semver.Canonical(v)
	if c == "" {
		return "", fmt.Errorf("version %q is not valid semver", v)
	}
	return c, nil
}
