package cdn

import (
	"crypto/hmac"
	"crypto/sha1"
	"encoding/base64"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 16 zero bytes.
const testSecret = "AAAAAAAAAAAAAAAAAAAAAA=="

func newTestSigner(t *testing.T) *Signer {
	t.Helper()
	s, err := NewSigner(Config{KeyName: "reports-sign-key", Base64Secret: testSecret})
	require.NoError(t, err)
	s.now = func() time.Time { return time.Unix(1700000000, 0) }
	return s
}

func TestSign(t *testing.T) {
	s := newTestSigner(t)

	params, err := s.Sign("https://cdn.httparchive.org/reports/", DefaultExpiration)
	require.NoError(t, err)

	assert.Equal(t, "aHR0cHM6Ly9jZG4uaHR0cGFyY2hpdmUub3JnL3JlcG9ydHMv", params.URLPrefix)
	assert.Equal(t, int64(1700000600), params.Expires)
	assert.Equal(t, "reports-sign-key", params.KeyName)

	mac := hmac.New(sha1.New, make([]byte, 16))
	mac.Write([]byte("URLPrefix=aHR0cHM6Ly9jZG4uaHR0cGFyY2hpdmUub3JnL3JlcG9ydHMv&Expires=1700000600&KeyName=reports-sign-key"))
	assert.Equal(t, base64.RawURLEncoding.EncodeToString(mac.Sum(nil)), params.Signature)
	assert.NotContains(t, params.Signature, "=")
}

func TestSignUsesDefaultPrefix(t *testing.T) {
	s := newTestSigner(t)

	params, err := s.Sign("", time.Minute)
	require.NoError(t, err)

	prefix, err := base64.RawURLEncoding.DecodeString(params.URLPrefix)
	require.NoError(t, err)
	assert.Equal(t, DefaultURLPrefix, string(prefix))
}

func TestSignValidation(t *testing.T) {
	s := newTestSigner(t)

	_, err := s.Sign("https://cdn.httparchive.org/reports", time.Minute)
	assert.True(t, errors.Is(err, ErrInvalidPrefix))

	_, err = s.Sign("https://cdn.httparchive.org/reports/", 25*time.Hour)
	assert.True(t, errors.Is(err, ErrInvalidExpiration))

	unconfigured, err := NewSigner(Config{})
	require.NoError(t, err)
	assert.False(t, unconfigured.Configured())
	_, err = unconfigured.Sign("https://cdn.httparchive.org/reports/", time.Minute)
	assert.True(t, errors.Is(err, ErrNotConfigured))
}

func TestNewSignerRejectsBadSecret(t *testing.T) {
	_, err := NewSigner(Config{KeyName: "k", Base64Secret: "not base64!"})
	assert.Error(t, err)
}

func TestParseExpiration(t *testing.T) {
	d, err := ParseExpiration("")
	require.NoError(t, err)
	assert.Equal(t, DefaultExpiration, d)

	d, err = ParseExpiration("3600")
	require.NoError(t, err)
	assert.Equal(t, time.Hour, d)

	for _, raw := range []string{"0", "-5", "86401", "ten"} {
		_, err := ParseExpiration(raw)
		assert.ErrorIs(t, err, ErrInvalidExpiration, raw)
	}
}
