// Package codec renders derived keys and salts as text.
package codec

import (
	"encoding/base64"
	"encoding/hex"
	"fmt"

	"github.com/saylorsolutions/sphragis/pkg/secure"
)

var encoding = base64.StdEncoding

// PassphraseLen returns the length of the passphrase rendered from a key of keyLen bytes.
func PassphraseLen(keyLen int) int {
	return encoding.EncodedLen(keyLen)
}

// Passphrase encodes key as standard padded base64 directly into a Buffer allocated with alloc.
// The key is consumed: it is destroyed before Passphrase returns.
func Passphrase(alloc secure.Allocator, key *secure.Buffer) *secure.Buffer {
	defer key.Destroy()
	src := key.Bytes()
	out := secure.OrDefault(alloc).Alloc(PassphraseLen(len(src)))
	encoding.Encode(out.Bytes(), src)
	return out
}

// EncodeSalt renders a salt in the form expected in a config file.
func EncodeSalt(salt []byte) string {
	return encoding.EncodeToString(salt)
}

// DecodeSalt parses a base64 salt. Errors report the input length, never its content.
func DecodeSalt(text string) ([]byte, error) {
	salt, err := encoding.DecodeString(text)
	if err != nil {
		return nil, fmt.Errorf("salt is not valid base64 (%d characters)", len(text))
	}
	return salt, nil
}

// Hex is used to log non-secret values like salts.
func Hex(data []byte) string {
	return hex.EncodeToString(data)
}
