package config

import (
	"flag"
	"slices"
)

// FromFlags creates a Provider holding the flags in names that were set on
// the command line. A flag keeps its default out of the config, so the
// layers below it still apply.
func FromFlags(flags *flag.FlagSet, names ...string) Provider {
	cfg := New()
	flags.Visit(func(f *flag.Flag) {
		if !slices.Contains(names, f.Name) {
			return
		}
		if g, ok := f.Value.(flag.Getter); ok {
			cfg.Set(f.Name, g.Get())
			return
		}
		cfg.Set(f.Name, f.Value.String())
	})
	return cfg
}
