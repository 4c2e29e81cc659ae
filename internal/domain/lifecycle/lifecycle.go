// Package lifecycle holds shared constants for application start and stop.
package lifecycle

import "time"

// DefaultTimeout bounds graceful startup and shutdown of servers and
// background components.
const DefaultTimeout = 30 * time.Second
