package staticref

import (
	"github.com/kolkov/staticref/internal/staticref/depot"
	"github.com/kolkov/staticref/internal/staticref/location"
)

// Version is the release of this module, in semver form without the
// leading "v". The staticref version command prints it canonicalized.
const Version = "0.1.0"

// Info provides runtime information about the library.
type Info struct {
	// Version is the library version string.
	Version string

	// InternedTexts is the number of strings interned so far.
	InternedTexts int

	// CapturedSites is the number of distinct call sites captured so far.
	CapturedSites int

	// PinnedBytes approximates the memory held by interned texts and
	// captured call sites. It never shrinks.
	PinnedBytes int64
}

// GetInfo returns information about the library and its eternal depots.
//
// Example:
//
//	info := staticref.GetInfo()
//	fmt.Printf("staticref %s: %d texts, %d sites\n",
//		info.Version, info.InternedTexts, info.CapturedSites)
func GetInfo() Info {
	texts, textBytes := depot.TextStats()
	sites, siteBytes := location.Stats()
	return Info{
		Version:       Version,
		InternedTexts: texts,
		CapturedSites: sites,
		PinnedBytes:   textBytes + siteBytes,
	}
}
