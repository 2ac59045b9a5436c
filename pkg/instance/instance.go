package instance

import (
	"os"

	"github.com/gamevault/storefront-backend/pkg/env"
)

const fallbackID = "local"

// ID identifies this process in logs. It prefers the platform dyno name,
// then GAMEVAULT_INSTANCE_ID, then the hostname.
func ID() string {
	if id := env.First("", "DYNO", "GAMEVAULT_INSTANCE_ID"); id != "" {
		return id
	}
	if host, err := os.Hostname(); err == nil && host != "" {
		return host
	}
	return fallbackID
}
