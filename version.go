package ace

// Version is the current release of the ace module.
// Overridden at build time via -ldflags "-X github.com/acelabs/ace.Version=...".
var Version = "0.3.0"
