package version

// Version is the current timefind version.
const Version = "0.1.0"
