// Package config loads the four decode tunables (spec.md §6) from a
// checked-in TOML file, for batch jobs that want worker_count,
// channel_capacity, intern_short_strings and expose_url_type pinned
// outside of code.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"uniprotstream/pkg/uniprot"
)

// fileConfig is the on-disk shape of a parser configuration file.
// Field names mirror the option names in spec.md §6 exactly.
// InternShortStrings is a pointer because TOML has no way to
// distinguish "absent from the file" from "explicitly false" on a
// bare bool field, and spec.md §6 says it defaults on.
type fileConfig struct {
	WorkerCount        int   `toml:"worker_count"`
	ChannelCapacity    int   `toml:"channel_capacity"`
	InternShortStrings *bool `toml:"intern_short_strings"`
	ExposeURLType      bool  `toml:"expose_url_type"`
}

// Load reads path as TOML and returns the corresponding
// uniprot.Options. Fields absent from the file take the same
// defaults the exported parse functions apply: worker_count and
// channel_capacity stay 0, which pipeline.Config's normalisation
// turns into host CPU count and 4*worker_count, and
// intern_short_strings defaults on (unlike a raw zero-value
// uniprot.Options, where it is off).
func Load(path string) (uniprot.Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return uniprot.Options{}, fmt.Errorf("uniprot config: read %s: %w", path, err)
	}

	var raw fileConfig
	if _, err := toml.Decode(string(data), &raw); err != nil {
		return uniprot.Options{}, fmt.Errorf("uniprot config: parse %s: %w", path, err)
	}

	o := uniprot.Options{
		WorkerCount:     raw.WorkerCount,
		ChannelCapacity: raw.ChannelCapacity,
		ExposeURLType:   raw.ExposeURLType,
	}
	if raw.InternShortStrings == nil {
		o.InternShortStrings = true
	} else {
		o.InternShortStrings = *raw.InternShortStrings
	}
	return o, nil
}
