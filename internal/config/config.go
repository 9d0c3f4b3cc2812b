// Package config loads the small set of environment-driven knobs this
// module exposes.
package config

import "github.com/caarlos0/env/v6"

// Config holds the pass's tunable knobs: the target pointer width for
// SizeOf, whether a goto to a label in an enclosing block is tolerated,
// and debug logging verbosity.
type Config struct {
	// PointerWidth is the target's pointer size in bytes, consumed by
	// types.SizeOf when sizing a Pointer or computing an Array's total
	// size. 8 matches the 64-bit target this module assumes.
	PointerWidth uint64 `env:"CC_SEMANT_POINTER_WIDTH" envDefault:"8"`

	// StrictForwardGoto, when true, rejects a goto whose target label
	// resolves in an enclosing block rather than the same or a nested
	// one. Off by default: ISO C permits the jump.
	StrictForwardGoto bool `env:"CC_SEMANT_STRICT_FORWARD_GOTO" envDefault:"false"`

	// Debug raises the CLI driver's log level to debug.
	Debug bool `env:"CC_SEMANT_DEBUG" envDefault:"false"`
}

// Load reads Config from the process environment, applying defaults for
// any unset variable.
func Load() (Config, error) {
	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
