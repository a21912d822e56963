package entity

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// RPCURL represents a typed URL for an RPC endpoint.
type RPCURL string

// NewRPCURL creates a new RPCURL instance.
// Errors never echo the raw URL: provider URLs routinely embed API keys.
func NewRPCURL(rawURL string) (RPCURL, error) {
	if strings.TrimSpace(rawURL) == "" {
		return "", errors.New("rpc url cannot be empty")
	}

	u, err := url.ParseRequestURI(rawURL)
	if err != nil {
		return "", errors.New("rpc url is not a valid absolute URL")
	}

	scheme := strings.ToLower(u.Scheme)
	switch scheme {
	case "http", "https", "ws", "wss":
	default:
		return "", fmt.Errorf("rpc url has unsupported scheme: '%s'", scheme)
	}

	if u.Host == "" {
		return "", errors.New("rpc url has no host")
	}

	return RPCURL(rawURL), nil
}

// String returns the string representation of the RPCURL.
func (r RPCURL) String() string {
	return string(r)
}

// Scheme returns the lower-cased URL scheme, or "" if the URL does not parse.
func (r RPCURL) Scheme() string {
	u, err := url.Parse(string(r))
	if err != nil {
		return ""
	}
	return strings.ToLower(u.Scheme)
}

// Redacted returns scheme://host only, suitable for logs.
func (r RPCURL) Redacted() string {
	u, err := url.Parse(string(r))
	if err != nil || u.Host == "" {
		return redactedText
	}
	return u.Scheme + "://" + u.Host
}

const redactedText = "[REDACTED]"

// Secret is an opaque sensitive value, such as a wallet mnemonic.
// It refuses to print itself through fmt, JSON, YAML or zap; use Reveal to
// hand the value to the component that actually needs it.
type Secret string

// NewSecret wraps a raw sensitive value.
func NewSecret(raw string) Secret {
	return Secret(raw)
}

// Reveal returns the underlying value.
func (s Secret) Reveal() string {
	return string(s)
}

// IsZero reports whether the secret is empty.
func (s Secret) IsZero() bool {
	return s == ""
}

func (s Secret) String() string {
	return redactedText
}

func (s Secret) GoString() string {
	return redactedText
}

// Format covers every fmt verb, including %d and %x which bypass String.
func (s Secret) Format(f fmt.State, _ rune) {
	_, _ = f.Write([]byte(redactedText))
}

func (s Secret) MarshalJSON() ([]byte, error) {
	return []byte(`"` + redactedText + `"`), nil
}

func (s Secret) MarshalYAML() (interface{}, error) {
	return redactedText, nil
}

func (s Secret) MarshalText() ([]byte, error) {
	return []byte(redactedText), nil
}
