package validation

import (
	"fmt"
	"net"
	"net/url"
	"strings"
)

// EndpointValidator checks the catalog service endpoint from the config.
type EndpointValidator struct {
	// AllowLocalhost permits endpoints on the loopback interface.
	AllowLocalhost bool
	// AllowPrivateIPs permits endpoints in private address ranges.
	AllowPrivateIPs bool
	// AllowHTTP permits plain http endpoints.
	AllowHTTP bool
	MaxLength int
}

// NewEndpointValidator creates a validator with secure defaults
func NewEndpointValidator() *EndpointValidator {
	return &EndpointValidator{
		MaxLength: 2048,
	}
}

// NewPermissiveEndpointValidator accepts local development servers.
func NewPermissiveEndpointValidator() *EndpointValidator {
	return &EndpointValidator{
		AllowLocalhost:  true,
		AllowPrivateIPs: true,
		AllowHTTP:       true,
		MaxLength:       2048,
	}
}

// ValidateAndNormalize validates an endpoint and returns it with a scheme
// and without query or fragment.
func (v *EndpointValidator) ValidateAndNormalize(input string) (string, error) {
	input = strings.TrimSpace(input)

	if input == "" {
		return "", fmt.Errorf("endpoint cannot be empty")
	}
	if len(input) > v.MaxLength {
		return "", fmt.Errorf("endpoint too long (max %d characters)", v.MaxLength)
	}
	if strings.ContainsAny(input, "<>\"'` ") {
		return "", fmt.Errorf("endpoint contains invalid characters")
	}

	// Default to HTTPS when no protocol is given
	if !strings.Contains(input, "://") {
		input = "https://" + input
	}

	parsed, err := url.Parse(input)
	if err != nil {
		return "", fmt.Errorf("invalid endpoint format: %w", err)
	}

	switch parsed.Scheme {
	case "https":
	case "http":
		if !v.AllowHTTP {
			return "", fmt.Errorf("endpoint must use https")
		}
	default:
		return "", fmt.Errorf("endpoint must use http or https protocol")
	}

	if parsed.Hostname() == "" {
		return "", fmt.Errorf("endpoint must have a valid hostname")
	}
	if err := v.validateHost(parsed.Hostname()); err != nil {
		return "", err
	}
	if strings.Contains(parsed.Path, "..") {
		return "", fmt.Errorf("directory traversal patterns not allowed in endpoint path")
	}
	if parsed.User != nil {
		return "", fmt.Errorf("credentials belong in server.authorization, not the endpoint")
	}

	parsed.RawQuery = ""
	parsed.Fragment = ""
	parsed.Path = strings.TrimSuffix(parsed.Path, "/")
	return parsed.String(), nil
}

func (v *EndpointValidator) validateHost(hostname string) error {
	if !v.AllowLocalhost && isLocalhost(hostname) {
		return fmt.Errorf("localhost endpoints are not permitted")
	}
	if !v.AllowPrivateIPs {
		if ip := net.ParseIP(hostname); ip != nil && isPrivateIP(ip) {
			return fmt.Errorf("private IP addresses are not permitted")
		}
	}
	if ip := net.ParseIP(hostname); ip != nil && (ip.IsUnspecified() || ip.Equal(net.IPv4bcast)) {
		return fmt.Errorf("endpoint address %s is not routable", hostname)
	}
	return nil
}

// isLocalhost checks if a hostname refers to localhost
func isLocalhost(hostname string) bool {
	if hostname == "localhost" || strings.HasSuffix(hostname, ".localhost") {
		return true
	}
	ip := net.ParseIP(hostname)
	return ip != nil && ip.IsLoopback()
}

// isPrivateIP reports private, link-local and loopback addresses.
func isPrivateIP(ip net.IP) bool {
	return ip.IsPrivate() || ip.IsLoopback() || ip.IsLinkLocalUnicast()
}
