package config

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
)

// NewSeed generates a random seed using crypto/rand
func NewSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}

	return int64(binary.LittleEndian.Uint64(b[:])), nil
}

// RandSeed returns the configured seed, or a fresh random one when it is 0
func (c Config) RandSeed() (int64, error) {
	if c.Seed != 0 {
		return c.Seed, nil
	}
	return NewSeed()
}
