package instance

import "os"

// GetID returns the configured instance identifier, falling back to the host name.
func GetID() string {
	if id := os.Getenv("PLU_INSTANCE_ID"); id != "" {
		return id
	}
	if host, err := os.Hostname(); err == nil && host != "" {
		return host
	}
	return "plu-0"
}
