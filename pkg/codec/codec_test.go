package codec

import (
	"bytes"
	"encoding/base64"
	"testing"

	"github.com/saylorsolutions/sphragis/pkg/secure"
	"github.com/saylorsolutions/sphragis/pkg/secure/securetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPassphrase(t *testing.T) {
	var rec securetest.Recorder
	raw := bytes.Repeat([]byte{0xfb, 0x01, 0x7e}, 11)[:32]
	key := secure.Copy(&rec, raw)

	pass := Passphrase(&rec, key)
	assert.True(t, key.Destroyed(), "key should be consumed")
	require.Equal(t, 44, pass.Len())
	assert.Equal(t, PassphraseLen(32), pass.Len())

	decoded, err := base64.StdEncoding.DecodeString(string(pass.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, raw, decoded)

	pass.Destroy()
	rec.AssertWiped(t)
}

func TestPassphrase_EmptyKey(t *testing.T) {
	pass := Passphrase(secure.Heap, secure.Heap.Alloc(0))
	defer pass.Destroy()
	assert.Equal(t, 0, pass.Len())
}

func TestSalt_RoundTrip(t *testing.T) {
	salt := []byte{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 0xff, 0xfe}
	text := EncodeSalt(salt)
	decoded, err := DecodeSalt(text)
	require.NoError(t, err)
	assert.Equal(t, salt, decoded)

	decoded, err = DecodeSalt(EncodeSalt(make([]byte, 16)))
	require.NoError(t, err)
	assert.Equal(t, make([]byte, 16), decoded)
}

func TestDecodeSalt_Neg(t *testing.T) {
	tests := map[string]string{
		"Not base64":      "not*base64!",
		"Missing padding": "AAAAAAAAAAAAAAAAAAAAAA",
		"URL alphabet":    "__--__--__--",
	}
	for name, input := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := DecodeSalt(input)
			require.Error(t, err)
			assert.NotContains(t, err.Error(), input)
			assert.Contains(t, err.Error(), "base64")
		})
	}
}

func TestHex(t *testing.T) {
	assert.Equal(t, "00ff10", Hex([]byte{0x00, 0xff, 0x10}))
}
