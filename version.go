package mathexpr

// Version is the library version reported by `mx version`.
const Version = "0.3.1"

// BuildDate may be overridden at link time.
var BuildDate = "unknown"
