// Package config handles configuration loading for hitassert.
//
// It looks for .hitassert.config.json, hitassert.config.json or .hitassertrc
// in the working directory, falls back to defaults, and lets CLI flags
// override file settings through Merge.
package config
