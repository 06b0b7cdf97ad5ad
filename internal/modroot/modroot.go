// Package modroot locates the Go module enclosing a directory.
//
// Captured call-site locations carry absolute file paths. Rendering them
// relative to the module root keeps reports short and stable across
// machines.
package modroot

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/mod/modfile"
)

// ErrNotFound is returned when no go.mod exists at or above the start
// directory.
var ErrNotFound = errors.New("modroot: no go.mod found")

// Module describes an enclosing Go module.
type Module struct {
	// Path is the module path declared in go.mod.
	Path string

	// Dir is the absolute directory containing go.mod.
	Dir string

	// GoVersion is the go directive, or empty if absent.
	GoVersion string
}

// Find walks up from startDir looking for go.mod and parses the first one
// found.
//
// Returns:
//   - Module describing the enclosing module
//   - ErrNotFound (wrapped) if the filesystem root is reached first
//   - A parse error if go.mod is malformed
func Find(startDir string) (Module, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return Module{}, fmt.Errorf("failed to resolve %s: %w", startDir, err)
	}

	modPath := findGoMod(dir)
	if modPath == "" {
		return Module{}, fmt.Errorf("%w above %s", ErrNotFound, dir)
	}

	data, err := os.ReadFile(modPath)
	if err != nil {
		return Module{}, fmt.Errorf("failed to read %s: %w", modPath, err)
	}

	mf, err := modfile.ParseLax(modPath, data, nil)
	if err != nil {
		return Module{}, fmt.Errorf("failed to parse %s: %w", modPath, err)
	}

	m := Module{Dir: filepath.Dir(modPath)}
	if mf.Module != nil {
		m.Path = mf.Module.Mod.Path
	}
	if mf.Go != nil {
		m.GoVersion = mf.Go.Version
	}
	return m, nil
}

// FindWorkingDir is Find starting from the current working directory.
func FindWorkingDir() (Module, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return Module{}, fmt.Errorf("failed to get working directory: %w", err)
	}
	return Find(cwd)
}

// findGoMod returns the path of the nearest go.mod at or above dir, or ""
// if none exists.
func findGoMod(dir string) string {
	for {
		modPath := filepath.Join(dir, "go.mod")
		if fi, err := os.Stat(modPath); err == nil && !fi.IsDir() {
			return modPath
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached filesystem root
			break
		}
		dir = parent
	}
	return ""
}
