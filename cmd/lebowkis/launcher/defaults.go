package launcher

// Defaults bundles the baseline configuration values the launcher uses
// before config files and flags override them.

type Defaults struct {
	Network string
	Output  string
	Logging LoggingDefaults
}

// LoggingDefaults controls log verbosity, output format and colour.

type LoggingDefaults struct {
	Verbosity int    //	0=fatal … 5=trace, mirrors the --log.verbosity flag
	Format    string //	text or json
	Color     bool   //	colourise text output
}

// DefaultConfig returns the built-in defaults. Keep in sync with the flag
// defaults declared in the flags package.
func DefaultConfig() Defaults {
	return Defaults{
		Network: "main",
		Output:  outputText,
		Logging: LoggingDefaults{
			Verbosity: 3,
			Format:    "text",
			Color:     false,
		},
	}
}
