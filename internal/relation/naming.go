package relation

import (
	"strconv"
	"sync/atomic"

	"github.com/google/uuid"
)

// Namer names the relations produced by algebra operators.
type Namer interface {
	Next(base string) string
}

// CounterNamer appends an increasing counter to the base name: movie0,
// movie1, ... The counter belongs to the namer, not to the process.
type CounterNamer struct {
	count atomic.Int64
}

func NewCounterNamer() *CounterNamer { return &CounterNamer{} }

func (n *CounterNamer) Next(base string) string {
	return base + strconv.FormatInt(n.count.Add(1)-1, 10)
}

type UUIDNamer struct{}

func NewUUIDNamer() UUIDNamer { return UUIDNamer{} }

func (UUIDNamer) Next(base string) string {
	return base + "_" + uuid.NewString()
}

// NamerFunc adapts a plain function to Namer.
type NamerFunc func(base string) string

func (f NamerFunc) Next(base string) string { return f(base) }
