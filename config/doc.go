// Package config holds the engine's injectable constant sets (speed
// thresholds, distance thresholds) and the caller-facing Options struct.
//
// EngineDefaults loads from an optional YAML override file, validated
// with struct tags, the same way the rest of this repository validates
// configuration.
package config
