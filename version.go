package cyoa

// Version is the release of the library and the cyoa binary.
var Version = "0.4.0"
