package main

// Flag names for Viper binding
const (
	// Global flags
	FlagVerbose = "verbose"
	FlagConfig  = "config"
	FlagLogFile = "log-file"

	// Start command flags
	FlagTUI       = "tui"
	FlagAutoStart = "auto-start"

	// Render command flags
	FlagDuration = "duration"
	FlagFinal    = "final"

	// Events command flags
	FlagFollow = "follow"
	FlagCount  = "count"
)
