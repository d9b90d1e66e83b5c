package crypto

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testKey(b byte) []byte {
	return bytes.Repeat([]byte{b}, KeyLen)
}

func TestEncryptDecrypt(t *testing.T) {
	key := testKey(1)
	plaintext := []byte(`{"mrn":"12345","name":"Jane Doe"}`)

	encrypted, err := Encrypt(plaintext, key)
	require.NoError(t, err)
	assert.Len(t, encrypted, NonceSize+len(plaintext)+16)
	assert.NotContains(t, string(encrypted), "Jane")

	decrypted, err := Decrypt(encrypted, key)
	require.NoError(t, err)
	assert.Equal(t, plaintext, decrypted)
}

func TestEncrypt_Randomness(t *testing.T) {
	key := testKey(1)

	a, err := Encrypt([]byte("same"), key)
	require.NoError(t, err)
	b, err := Encrypt([]byte("same"), key)
	require.NoError(t, err)

	assert.NotEqual(t, a, b, "nonce must differ between calls")
}

func TestEncrypt_Errors(t *testing.T) {
	tests := []struct {
		name      string
		plaintext []byte
		key       []byte
	}{
		{name: "empty plaintext", plaintext: nil, key: testKey(1)},
		{name: "short key", plaintext: []byte("x"), key: []byte("short")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Encrypt(tt.plaintext, tt.key)
			assert.Error(t, err)
		})
	}
}

func TestDecrypt_Errors(t *testing.T) {
	key := testKey(1)
	encrypted, err := Encrypt([]byte("payload"), key)
	require.NoError(t, err)

	tampered := bytes.Clone(encrypted)
	tampered[len(tampered)-1] ^= 0xff

	tests := []struct {
		name string
		data []byte
		key  []byte
	}{
		{name: "too short", data: []byte{1, 2, 3}, key: key},
		{name: "wrong key", data: encrypted, key: testKey(2)},
		{name: "tampered", data: tampered, key: key},
		{name: "bad key size", data: encrypted, key: []byte("short")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decrypt(tt.data, tt.key)
			assert.Error(t, err)
		})
	}
}

func TestSealOpenJSON(t *testing.T) {
	key := testKey(3)
	doc := map[string]any{"name": "Jane", "vitals": map[string]any{"hr": 72.0}}

	sealed, err := SealJSON(doc, key)
	require.NoError(t, err)
	require.NotEmpty(t, sealed)

	opened, err := OpenJSON[map[string]any](sealed, key)
	require.NoError(t, err)
	assert.Equal(t, doc, opened)

	// nil документ не шифруется
	var empty map[string]any
	sealed, err = SealJSON(empty, key)
	require.NoError(t, err)
	assert.Nil(t, sealed)

	opened, err = OpenJSON[map[string]any](nil, key)
	require.NoError(t, err)
	assert.Nil(t, opened)

	_, err = OpenJSON[map[string]any]([]byte("garbage-that-is-long-enough"), key)
	assert.Error(t, err)
}
