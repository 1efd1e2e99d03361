package store

import (
	"encoding/base64"
	"fmt"
	"net/url"
	"strings"
)

// DefaultSecret is the XOR key used by saves written with the default codec
const DefaultSecret = "damas_secret_key"

// Codec names accepted by NewCodec
const (
	CodecXOR   = "xor"
	CodecPlain = "plain"
)

// PersistenceCodec turns the JSON record into the string kept in a slot and back
type PersistenceCodec interface {
	Encode(data []byte) (string, error)
	Decode(s string) ([]byte, error)
}

// NewCodec returns the codec registered under name
func NewCodec(name, secret string) (PersistenceCodec, error) {
	switch name {
	case CodecXOR, "":
		return NewXORCodec(secret), nil
	case CodecPlain:
		return PlainCodec{}, nil
	default:
		return nil, fmt.Errorf("unknown codec %q", name)
	}
}

// XORCodec obscures the record so it cannot be edited casually. It is obfuscation,
// not encryption: the payload is URL-escaped, XORed with a cycling key and base64
// encoded.
type XORCodec struct {
	key []byte
}

// NewXORCodec returns an XORCodec using secret, or DefaultSecret when secret is empty
func NewXORCodec(secret string) XORCodec {
	if secret == "" {
		secret = DefaultSecret
	}
	return XORCodec{key: []byte(secret)}
}

func (c XORCodec) Encode(data []byte) (string, error) {
	escaped := []byte(strings.ReplaceAll(url.QueryEscape(string(data)), "+", "%20"))
	return base64.StdEncoding.EncodeToString(c.xor(escaped)), nil
}

func (c XORCodec) Decode(s string) ([]byte, error) {
	raw, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("xor codec: base64: %w", err)
	}
	unescaped, err := url.QueryUnescape(string(c.xor(raw)))
	if err != nil {
		return nil, fmt.Errorf("xor codec: unescape: %w", err)
	}
	return []byte(unescaped), nil
}

func (c XORCodec) xor(in []byte) []byte {
	out := make([]byte, len(in))
	for i, b := range in {
		out[i] = b ^ c.key[i%len(c.key)]
	}
	return out
}

// PlainCodec stores the JSON as is
type PlainCodec struct{}

func (PlainCodec) Encode(data []byte) (string, error) {
	return string(data), nil
}

func (PlainCodec) Decode(s string) ([]byte, error) {
	return []byte(s), nil
}
