package id

import "crypto/rand"

// GenerateID creates a unique 16-character alphanumeric ID.
func GenerateID() string {
	return random(16, "abcdefghijklmnopqrstuvwxyz0123456789")
}

// NewSecret creates an access secret of the given length using upper- and
// lowercase letters and digits. Secrets double as storage folder names, so
// the alphabet is deliberately restricted to alphanumerics.
func NewSecret(length int) string {
	const chars = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
	return random(length, chars)
}

func random(length int, chars string) string {
	b := make([]byte, length)
	if _, err := rand.Read(b); err != nil {
		panic("crypto/rand failed: " + err.Error())
	}
	for i := range b {
		b[i] = chars[b[i]%byte(len(chars))]
	}
	return string(b)
}
