package rng

import (
	"encoding/binary"
	"fmt"
	"io"
	"sync"
)

// Stream turns a raw byte source (such as a hardware TRNG) into a Generator
type Stream struct {
	mu sync.Mutex
	r  io.Reader
}

// NewStream returns a Generator reading entropy from r
func NewStream(r io.Reader) *Stream {
	return &Stream{r: r}
}

// Intn returns a uniform number in [0, n) using rejection sampling on 32-bit words
// It panics if the underlying reader fails, the same way Crypto does.
func (s *Stream) Intn(n int) int {
	if n <= 0 {
		panic("invalid argument to Intn")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// limit = floor(2^32 / n) * n
	limit := (uint64(1) << 32) / uint64(n) * uint64(n)

	var buf [4]byte
	for {
		if _, err := io.ReadFull(s.r, buf[:]); err != nil {
			panic(fmt.Sprintf("could not read random bytes: %v", err))
		}

		x := uint64(binary.BigEndian.Uint32(buf[:]))
		if x < limit {
			return int(x % uint64(n))
		}
	}
}
