package config

import "time"

// Worker intervals
const (
	// KeepAlivePingInterval defines how often the keep-alive worker pings the
	// analysis backend's health endpoint so it never idles into a cold start.
	KeepAlivePingInterval = 10 * time.Minute
)

// Relay reconnection delays
const (
	// RestartDelay is the pause between destroying a session and
	// re-initializing it after an operator restart or session clear.
	RestartDelay = 2 * time.Second

	// LogoutRestartDelay is the reconnect delay after a logout disconnect.
	// The credential cache is purged first, so the next session re-pairs.
	LogoutRestartDelay = 5 * time.Second

	// DisconnectRestartDelay is the reconnect delay after any other
	// disconnect. Longer than the logout delay to avoid tight restart loops.
	DisconnectRestartDelay = 30 * time.Second
)
