package cli

import "microtest/internal/config"

// Flags holds command-line flags
type Flags struct {
	NoColor    bool
	Progress   bool
	FailFast   bool
	NoSave     bool
	OpenFaills bool
	Storage    string
	LogLevel   string
	LogFormat  string
}

// ToConfigFlags converts CLI flags to config flags
func (f *Flags) ToConfigFlags() config.Flags {
	return config.Flags{
		NoColor:    f.NoColor,
		Progress:   f.Progress,
		FailFast:   f.FailFast,
		NoSave:     f.NoSave,
		OpenFaills: f.OpenFaills,
		Storage:    f.Storage,
		LogLevel:   f.LogLevel,
		LogFormat:  f.LogFormat,
	}
}
