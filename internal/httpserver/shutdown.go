package httpserver

import "time"

// ShutdownTimeout controls how long to wait for in-flight callback requests
// to drain on graceful shutdown.
var ShutdownTimeout = 10 * time.Second
