package cdn

import (
	"crypto/hmac"
	"crypto/sha1"
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Limits and defaults of a signed prefix.
const (
	DefaultURLPrefix   = "https://cdn.httparchive.org/reports/"
	DefaultExpiration  = 600 * time.Second
	MaxExpiration      = 86400 * time.Second
	expirationRangeMsg = "expirationSeconds must be a positive number between 1 and 86400 (24 hours)"
)

var (
	// ErrNotConfigured is returned when the key name or secret is missing.
	ErrNotConfigured = errors.New("CDN signing configuration not available. Please contact the administrator.")

	// ErrInvalidPrefix is returned for URL prefixes not ending in a slash.
	ErrInvalidPrefix = errors.New("urlPrefix must end with a forward slash (/)")

	// ErrInvalidExpiration is returned for expirations outside 1s..24h.
	ErrInvalidExpiration = errors.New(expirationRangeMsg)
)

// Config holds the Cloud CDN signing key.
type Config struct {
	// URLPrefix is signed when the request does not name one.
	URLPrefix string `koanf:"url_prefix"`

	// KeyName is the name of the signing key configured on the backend bucket.
	KeyName string `koanf:"key_name"`

	// Base64Secret is the URL-safe base64 encoded 16 byte key.
	Base64Secret string `koanf:"base64_secret"`
}

// SignedParams are the query parameters a client appends to URLs under the prefix.
type SignedParams struct {
	URLPrefix string `json:"URLPrefix"`
	Expires   int64  `json:"Expires"`
	KeyName   string `json:"KeyName"`
	Signature string `json:"Signature"`
}

// Query renders the parameters as a query string.
func (p SignedParams) Query() string {
	return fmt.Sprintf("URLPrefix=%s&Expires=%d&KeyName=%s&Signature=%s", p.URLPrefix, p.Expires, p.KeyName, p.Signature)
}

// Signer issues Cloud CDN signed URL prefixes.
type Signer struct {
	cfg Config
	key []byte
	now func() time.Time
}

// NewSigner decodes the configured secret. A signer without key name or
// secret is valid but every Sign call fails with ErrNotConfigured.
func NewSigner(cfg Config) (*Signer, error) {
	if cfg.URLPrefix == "" {
		cfg.URLPrefix = DefaultURLPrefix
	}
	s := &Signer{cfg: cfg, now: time.Now}
	if !s.Configured() {
		return s, nil
	}

	key, err := decodeKey(cfg.Base64Secret)
	if err != nil {
		return nil, fmt.Errorf("decoding CDN secret: %w", err)
	}
	s.key = key
	return s, nil
}

// Configured reports whether the signer has a key.
func (s *Signer) Configured() bool {
	return s.cfg.KeyName != "" && s.cfg.Base64Secret != ""
}

// DefaultPrefix returns the prefix signed when the caller names none.
func (s *Signer) DefaultPrefix() string {
	return s.cfg.URLPrefix
}

// Sign returns signed parameters for urlPrefix valid for ttl.
func (s *Signer) Sign(urlPrefix string, ttl time.Duration) (SignedParams, error) {
	if !s.Configured() {
		return SignedParams{}, ErrNotConfigured
	}
	if urlPrefix == "" {
		urlPrefix = s.cfg.URLPrefix
	}
	if !strings.HasSuffix(urlPrefix, "/") {
		return SignedParams{}, ErrInvalidPrefix
	}
	if ttl < time.Second || ttl > MaxExpiration {
		return SignedParams{}, ErrInvalidExpiration
	}

	expires := s.now().Add(ttl).Unix()
	encodedPrefix := base64.RawURLEncoding.EncodeToString([]byte(urlPrefix))
	toSign := "URLPrefix=" + encodedPrefix + "&Expires=" + strconv.FormatInt(expires, 10) + "&KeyName=" + s.cfg.KeyName

	mac := hmac.New(sha1.New, s.key)
	mac.Write([]byte(toSign))

	return SignedParams{
		URLPrefix: encodedPrefix,
		Expires:   expires,
		KeyName:   s.cfg.KeyName,
		Signature: base64.RawURLEncoding.EncodeToString(mac.Sum(nil)),
	}, nil
}

// ParseExpiration parses an expirationSeconds query value. An empty value
// yields DefaultExpiration.
func ParseExpiration(raw string) (time.Duration, error) {
	if raw == "" {
		return DefaultExpiration, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n <= 0 || time.Duration(n)*time.Second > MaxExpiration {
		return 0, ErrInvalidExpiration
	}
	return time.Duration(n) * time.Second, nil
}

// decodeKey accepts URL-safe base64 with or without padding.
func decodeKey(secret string) ([]byte, error) {
	return base64.RawURLEncoding.DecodeString(strings.TrimRight(secret, "="))
}
