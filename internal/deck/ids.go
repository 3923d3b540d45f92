package deck

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"sync/atomic"
)

// IDGenerator produces the per-slide identifier prefix each unit derives its
// object ids from. Injected so tests can use a deterministic sequence.
type IDGenerator interface {
	SlideID() string
}

type randomIDs struct{}

// NewRandomIDs returns the production generator.
func NewRandomIDs() IDGenerator {
	return randomIDs{}
}

func (randomIDs) SlideID() string {
	buf := make([]byte, 8)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand failing is unrecoverable; fall back to a counter.
		return sequentialFallback.SlideID()
	}
	return "slide_" + hex.EncodeToString(buf)
}

var sequentialFallback = NewSequentialIDs()

type sequentialIDs struct {
	n atomic.Int64
}

// NewSequentialIDs returns a deterministic counter-based generator.
func NewSequentialIDs() IDGenerator {
	return &sequentialIDs{}
}

func (g *sequentialIDs) SlideID() string {
	return fmt.Sprintf("slide_%04d", g.n.Add(1))
}
