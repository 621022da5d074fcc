// Package auth signs Codeforces API requests.
//
// Codeforces authenticates a request by three extra query parameters:
// apiKey, time (unix seconds) and apiSig. apiSig is a six character nonce
// followed by the SHA-512 hex digest of
//
//	nonce + "/api/" + method + "?" + sortedParams + "#" + secret
//
// where sortedParams lists every parameter, apiKey and time included, as
// key=value pairs sorted by key and joined with "&".
package auth

import (
	"crypto/rand"
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"math/big"
	"sort"
	"strconv"
	"strings"
	"time"
)

// NonceLength is the length of the random apiSig prefix.
const NonceLength = 6

const nonceAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// Credentials holds the API key and secret from the Codeforces settings page.
type Credentials struct {
	Key    string
	Secret string

	// Overridable for tests.
	now   func() time.Time
	nonce func() (string, error)
}

// NewCredentials returns credentials, or nil when either half is missing.
func NewCredentials(key, secret string) *Credentials {
	if key == "" || secret == "" {
		return nil
	}
	return &Credentials{Key: key, Secret: secret}
}

// WithClock returns a copy whose timestamps come from now.
func (c *Credentials) WithClock(now func() time.Time) *Credentials {
	cp := *c
	cp.now = now
	return &cp
}

// WithNonce returns a copy that always uses the given nonce.
func (c *Credentials) WithNonce(nonce string) *Credentials {
	cp := *c
	cp.nonce = func() (string, error) { return nonce, nil }
	return &cp
}

// Sign returns a copy of params with apiKey, time and apiSig added.
func (c *Credentials) Sign(method string, params map[string]string) (map[string]string, error) {
	now := time.Now
	if c.now != nil {
		now = c.now
	}
	genNonce := RandomNonce
	if c.nonce != nil {
		genNonce = c.nonce
	}

	signed := make(map[string]string, len(params)+3)
	for k, v := range params {
		signed[k] = v
	}
	signed["apiKey"] = c.Key
	signed["time"] = strconv.FormatInt(now().Unix(), 10)

	nonce, err := genNonce()
	if err != nil {
		return nil, fmt.Errorf("generate nonce: %w", err)
	}
	signed["apiSig"] = nonce + Digest(nonce, method, signed, c.Secret)

	return signed, nil
}

// SigningString builds the exact string that is hashed for apiSig.
// Any apiSig entry in params is ignored.
func SigningString(nonce, method string, params map[string]string, secret string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		if k == "apiSig" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, len(keys))
	for i, k := range keys {
		pairs[i] = k + "=" + params[k]
	}

	return nonce + "/api/" + method + "?" + strings.Join(pairs, "&") + "#" + secret
}

// Digest returns the lowercase hex SHA-512 of the signing string.
func Digest(nonce, method string, params map[string]string, secret string) string {
	sum := sha512.Sum512([]byte(SigningString(nonce, method, params, secret)))
	return hex.EncodeToString(sum[:])
}

// RandomNonce returns NonceLength characters from [a-z0-9].
func RandomNonce() (string, error) {
	max := big.NewInt(int64(len(nonceAlphabet)))
	buf := make([]byte, NonceLength)
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		buf[i] = nonceAlphabet[n.Int64()]
	}
	return string(buf), nil
}
