package version

// Value is overridden at build time via -ldflags.
var Value = "v0.3.0"
