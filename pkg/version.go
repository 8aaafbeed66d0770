package daybook

// Version is the current daybook release.
const Version = "0.1.0"
