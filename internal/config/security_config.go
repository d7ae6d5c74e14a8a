package config

import "strings"

type SecurityLevel int

const (
	SecurityPublic SecurityLevel = iota // No authentication
	SecurityAccess                      // Access token required
)

// EndpointSecurityConfig maps settlement service route prefixes to their required security level
var EndpointSecurityConfig = map[string]SecurityLevel{
	// Auth - Public
	"/auth/login":     SecurityPublic,
	"/auth/google":    SecurityPublic,
	"/auth/verifyOtp": SecurityPublic,
	"/auth/resendOtp": SecurityPublic,

	// Mock storage and telemetry carry their own credentials
	"/api/v1/download/": SecurityPublic,
	"/telemetry":        SecurityPublic,
	"/metrics":          SecurityPublic,

	// Everything else
	"/auth/profile":  SecurityAccess,
	"/rentalReturn/": SecurityAccess,
	"/additionalFee": SecurityAccess,
	"/charging/":     SecurityAccess,
	"/gpsSharing/":   SecurityAccess,
	"/document/":     SecurityAccess,
}

// GetSecurityLevel returns the security level for a given request path
func GetSecurityLevel(path string) SecurityLevel {
	if level, exists := EndpointSecurityConfig[path]; exists {
		return level
	}
	best := -1
	level := SecurityAccess
	for prefix, l := range EndpointSecurityConfig {
		if strings.HasPrefix(path, prefix) && len(prefix) > best {
			best = len(prefix)
			level = l
		}
	}
	// Default to highest security for unknown endpoints
	return level
}
