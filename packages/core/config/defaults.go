package config

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	return &Config{
		Reporters: []string{"console"},
		Bail:      BoolPtr(false),
		Verbose:   BoolPtr(false),
		NoColor:   BoolPtr(false),
	}
}
