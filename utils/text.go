package utils

import (
	"bytes"
	"errors"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

var (
	// ErrBinaryContent is returned for content that looks like a binary file.
	ErrBinaryContent = errors.New("binary content")
	// ErrUndecodable is returned for content that is neither UTF-8 nor BOM-marked UTF-16.
	ErrUndecodable = errors.New("content is not valid text")
)

// binarySniffLen is how many leading bytes are checked for NUL.
const binarySniffLen = 8 * 1024

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// DecodeText converts file content into a string. UTF-16 content must carry a
// byte order mark; anything else has to be valid UTF-8.
func DecodeText(content []byte) (string, error) {
	if hasUTF16BOM(content) {
		decoded, _, err := transform.Bytes(unicode.BOMOverride(unicode.UTF8.NewDecoder()), content)
		if err != nil {
			return "", errors.Join(ErrUndecodable, err)
		}
		return string(decoded), nil
	}

	sniff := content
	if len(sniff) > binarySniffLen {
		sniff = sniff[:binarySniffLen]
	}
	if bytes.IndexByte(sniff, 0) >= 0 {
		return "", ErrBinaryContent
	}

	content = bytes.TrimPrefix(content, utf8BOM)
	if !utf8.Valid(content) {
		return "", ErrUndecodable
	}
	return string(content), nil
}

func hasUTF16BOM(content []byte) bool {
	if len(content) < 2 {
		return false
	}
	return (content[0] == 0xFE && content[1] == 0xFF) || (content[0] == 0xFF && content[1] == 0xFE)
}
