package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"damasgochi/internal/pet"
)

// DefaultKey is the slot the pet record is stored under
const DefaultKey = "damasgochi_pet"

// ErrNoState is returned by a Slot when nothing has been saved under a key yet
var ErrNoState = errors.New("no saved state")

// Slot is a single named key-value entry in some backing storage
type Slot interface {
	Get(ctx context.Context, key string) (string, error)
	Put(ctx context.Context, key, value string) error
	Close() error
}

// Store owns the canonical pet record: it loads it (applying catch-up for the time the
// program was not running) and writes it back after every committed mutation.
type Store struct {
	slot  Slot
	codec PersistenceCodec
	key   string
	now   func() time.Time
}

// Option configures a Store
type Option func(*Store)

// WithCodec replaces the default XOR codec
func WithCodec(c PersistenceCodec) Option {
	return func(s *Store) { s.codec = c }
}

// WithKey stores the record under a different slot key
func WithKey(key string) Option {
	return func(s *Store) {
		if key != "" {
			s.key = key
		}
	}
}

// WithClock overrides the time source used for catch-up
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// New returns a Store reading and writing through slot
func New(slot Slot, opts ...Option) *Store {
	s := &Store{
		slot:  slot,
		codec: NewXORCodec(DefaultSecret),
		key:   DefaultKey,
		now:   func() time.Time { return pet.TimeNow() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load returns the saved pet with offline decay applied. A missing or unreadable record
// yields a brand new pet. The error is only set when the slot itself failed; the returned
// pet is usable either way.
func (s *Store) Load(ctx context.Context) (pet.Pet, error) {
	now := s.now()

	raw, err := s.slot.Get(ctx, s.key)
	if errors.Is(err, ErrNoState) {
		log.Printf("No saved pet under %q, creating a new one", s.key)
		return pet.NewPet(now), nil
	}
	if err != nil {
		return pet.NewPet(now), fmt.Errorf("load: read slot %q: %w", s.key, err)
	}

	p, err := s.decode(raw, now)
	if err != nil {
		log.Printf("Warning: saved pet is corrupt (%v), creating a new one", err)
		return pet.NewPet(now), nil
	}

	p.Sanitize()
	p = pet.CatchUp(p, now)
	log.Printf("Loaded %s (level %d, %s)", p.Name, p.Level, p.Status)
	return p, nil
}

// decode unpacks a stored record over a fresh pet so fields missing from older
// records keep their initial values. A missing reset date counts as never reset.
func (s *Store) decode(raw string, now time.Time) (pet.Pet, error) {
	data, err := s.codec.Decode(raw)
	if err != nil {
		return pet.Pet{}, err
	}
	p := pet.NewPet(now)
	p.LastCountReset = ""
	if err := json.Unmarshal(data, &p); err != nil {
		return pet.Pet{}, fmt.Errorf("decode json: %w", err)
	}
	return p, nil
}

// Save writes the pet record unconditionally
func (s *Store) Save(ctx context.Context, p pet.Pet) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("save: encode json: %w", err)
	}
	encoded, err := s.codec.Encode(data)
	if err != nil {
		return fmt.Errorf("save: encode: %w", err)
	}
	if err := s.slot.Put(ctx, s.key, encoded); err != nil {
		return fmt.Errorf("save: write slot %q: %w", s.key, err)
	}
	return nil
}

// Close releases the underlying slot
func (s *Store) Close() error {
	return s.slot.Close()
}
