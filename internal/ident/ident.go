// Package ident generates the random identifiers used for folder and file
// naming: alphanumeric words, v4 UUIDs and sub-second local timestamps.
package ident

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Alphabet is the 62-symbol set random words are drawn from.
const Alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

// Source is the process-wide pseudo-random source. It is seeded once and
// safe for concurrent use: each call atomically consumes the random bits
// it needs, so folder-parallel workers can share one instance.
type Source struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func NewSource(seed int64) *Source {
	return &Source{rng: rand.New(rand.NewSource(seed))}
}

// Word returns a random word of the given length drawn uniformly
// from Alphabet. Collisions across calls are possible and not checked.
func (s *Source) Word(length int) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	b := make([]byte, length)
	for i := range b {
		b[i] = Alphabet[s.rng.Intn(len(Alphabet))]
	}
	return string(b)
}

// Read implements io.Reader over the underlying generator so the uuid
// library can draw from the same shared source. Never returns an error.
func (s *Source) Read(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Read(p)
}

// UUID returns a canonical 36-character RFC 4122 version 4 UUID whose
// random bits come from the shared source.
func (s *Source) UUID() string {
	id, err := uuid.NewRandomFromReader(s)
	if err != nil {
		// Read never fails, so neither can this
		panic(fmt.Sprintf("ident: uuid generation failed: %v", err))
	}
	return id.String()
}

// clock hook, overridable for tests
var now = time.Now

func GetNow() func() time.Time  { return now }
func SetNow(f func() time.Time) { now = f }

// Timestamp returns the current local time as
// YYYY-MM-DD_HH-MM-SS-ffffff (microsecond resolution).
func Timestamp() string {
	t := now()
	return t.Format("2006-01-02_15-04-05") + fmt.Sprintf("-%06d", t.Nanosecond()/1000)
}
