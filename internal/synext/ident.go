package synext

import (
	"hash"
	"hash/fnv"
	"os"
	"strconv"

	"github.com/seitarof/synext/internal/syntax"
)

// RocketIdentPrefix marks identifiers owned by generated code.
const RocketIdentPrefix = "__rocket_"

// Prepend returns text followed by the unescaped name of id, at id's span.
func Prepend(id syntax.Ident, text string) syntax.Ident {
	return syntax.NewIdent(text+id.Unraw(), id.Span)
}

// Append returns id as written followed by text, at id's span.
func Append(id syntax.Ident, text string) syntax.Ident {
	return syntax.NewIdent(id.String()+text, id.Span)
}

// WithSpan returns id moved to span.
func WithSpan(id syntax.Ident, span syntax.Span) syntax.Ident {
	id.Span = span
	return id
}

// Rocketized prefixes id with RocketIdentPrefix.
func Rocketized(id syntax.Ident) syntax.Ident {
	return Prepend(id, RocketIdentPrefix)
}

// Counter hands out process-unique sequence numbers.
type Counter interface {
	Next() uint64
}

// Uniqueifier derives collision-free identifiers from existing ones.
type Uniqueifier struct {
	Counter Counter
}

// NewUniqueifier returns a Uniqueifier drawing from c.
func NewUniqueifier(c Counter) *Uniqueifier {
	return &Uniqueifier{Counter: c}
}

var defaultUniqueifier = NewUniqueifier(processCounter)

// UniqueifyWith appends "_" and a hash to id. The hash covers the ident, the
// process id, the next value of the process-wide counter and whatever extra
// writes, so no two calls in one process return the same identifier.
func UniqueifyWith(id syntax.Ident, extra func(h hash.Hash64)) syntax.Ident {
	return defaultUniqueifier.UniqueifyWith(id, extra)
}

// UniqueifyWith is the package-level UniqueifyWith drawing from u.Counter.
func (u *Uniqueifier) UniqueifyWith(id syntax.Ident, extra func(h hash.Hash64)) syntax.Ident {
	h := fnv.New64a()
	writeString(h, id.String())
	writeUint(h, uint64(os.Getpid()))
	writeUint(h, u.Counter.Next())
	if extra != nil {
		extra(h)
	}
	return Append(id, "_"+strconv.FormatUint(h.Sum64(), 10))
}

func writeString(h hash.Hash64, s string) {
	// length prefix keeps adjacent strings from running together
	writeUint(h, uint64(len(s)))
	h.Write([]byte(s))
}

func writeUint(h hash.Hash64, v uint64) {
	var buf [8]byte
	for i := range buf {
		buf[i] = byte(v >> (8 * i))
	}
	h.Write(buf[:])
}
