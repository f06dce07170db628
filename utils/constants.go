// File: utils/constants.go
package utils

import "time"

// SessionKeyPrefix is the prefix used for Redis session keys.
const SessionKeyPrefix = "session:"

// SessionCookieName is the browser-session cookie holding the signed session id.
const SessionCookieName = "servicehub_session"

// HealthProbeInterval is how often the health monitor pings its dependencies.
const HealthProbeInterval = 60 * time.Second
