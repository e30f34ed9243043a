// Package lifecycle holds shared constants for start/stop coordination.
package lifecycle

import "time"

// DefaultTimeout bounds graceful startup and shutdown operations.
const DefaultTimeout = 30 * time.Second
