package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/unicode"
)

func TestDecodeText(t *testing.T) {
	text, err := DecodeText([]byte(`@"icon"`))
	require.NoError(t, err)
	assert.Equal(t, `@"icon"`, text)

	text, err = DecodeText(append([]byte{0xEF, 0xBB, 0xBF}, []byte("bom")...))
	require.NoError(t, err)
	assert.Equal(t, "bom", text)

	text, err = DecodeText(nil)
	require.NoError(t, err)
	assert.Equal(t, "", text)
}

func TestDecodeText_UTF16(t *testing.T) {
	for _, endianness := range []unicode.Endianness{unicode.LittleEndian, unicode.BigEndian} {
		encoded, err := unicode.UTF16(endianness, unicode.UseBOM).NewEncoder().String(`"banner_ä" = "x";`)
		require.NoError(t, err)

		text, err := DecodeText([]byte(encoded))
		require.NoError(t, err)
		assert.Equal(t, `"banner_ä" = "x";`, text)
	}
}

func TestDecodeText_Binary(t *testing.T) {
	_, err := DecodeText([]byte("PK\x03\x04\x00\x00"))
	assert.ErrorIs(t, err, ErrBinaryContent)

	// A NUL past the sniffed prefix is not treated as binary
	late := strings.Repeat("a", binarySniffLen) + "\x00"
	_, err = DecodeText([]byte(late))
	assert.NoError(t, err)
}

func TestDecodeText_SniffsFirstEightKiB(t *testing.T) {
	assert.Equal(t, 8192, binarySniffLen)

	lastSniffed := strings.Repeat("a", 8191) + "\x00"
	_, err := DecodeText([]byte(lastSniffed))
	assert.ErrorIs(t, err, ErrBinaryContent)
}

func TestDecodeText_InvalidUTF8(t *testing.T) {
	_, err := DecodeText([]byte("caf\xe9"))
	assert.ErrorIs(t, err, ErrUndecodable)
}
