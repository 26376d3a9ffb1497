// Package webhook authenticates and classifies inbound GitHub events.
package webhook

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// VerifySignature checks that payload was signed with secret, comparing
// against the X-Hub-Signature-256 header value ("sha256=<hex>").
//
// An empty secret disables verification and returns true. That insecure
// default mirrors an unconfigured deployment; the server logs a prominent
// warning at startup when it applies.
func VerifySignature(payload []byte, signature, secret string) bool {
	if secret == "" {
		return true
	}

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	expected := "sha256=" + hex.EncodeToString(mac.Sum(nil))

	// Constant-time comparison prevents timing side channels.
	return hmac.Equal([]byte(expected), []byte(signature))
}
