// Package token generates the two credentials of the pairing protocol.
package token

import (
	crand "crypto/rand"
	"encoding/hex"
	"math/rand"
	"strconv"
)

// GeneratePairingCode returns a 6-digit numeric code in "100000".."999999".
// Pairing codes are low-stakes (short-lived, single-use), so math/rand is
// enough here.
func GeneratePairingCode() string {
	return strconv.Itoa(100000 + rand.Intn(900000))
}

// GenerateDeviceToken returns 256 bits from crypto/rand as 64 lowercase hex
// characters. This is a long-lived bearer credential; guessability would mean
// account takeover, so it must come from a CSPRNG.
func GenerateDeviceToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := crand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
