package version

const AppName = "GrooveBot"

// Version is overridden at build time via -ldflags.
var Version = "dev"
