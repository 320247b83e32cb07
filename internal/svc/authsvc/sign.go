package authsvc

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
)

// signToken produces "token.signature" where signature is hex encoded
// HMAC-SHA256 of the token under the session secret.
func signToken(token, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(token))

	return token + "." + hex.EncodeToString(mac.Sum(nil))
}

// parseSignedToken splits and verifies a cookie value. It returns the bare
// token only when the signature matches.
func parseSignedToken(cookieValue, secret string) (token string, err error) {
	token, signature, found := strings.Cut(cookieValue, ".")
	if !found || token == "" {
		return "", fmt.Errorf("malformed session cookie value")
	}

	want, err := hex.DecodeString(signature)
	if err != nil {
		return "", fmt.Errorf("malformed session cookie signature: %w", err)
	}

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(token))
	if !hmac.Equal(mac.Sum(nil), want) {
		return "", fmt.Errorf("session cookie signature mismatch")
	}

	return token, nil
}
