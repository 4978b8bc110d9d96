package pathutil

import (
	"strconv"
	"strings"
)

// PathBuilder builds JSON pointers (RFC 6901) incrementally.
// Uses push/pop semantics to avoid allocations during traversal.
// The full string is only materialized when String() is called.
type PathBuilder struct {
	segments []string
	length   int // Pre-calculated length for String() allocation
}

// Push adds a raw token to the pointer. "~" and "/" are escaped.
func (p *PathBuilder) Push(token string) {
	seg := EscapeToken(token)
	p.segments = append(p.segments, seg)
	p.length += len(seg) + 1 // For slash separator
}

// PushIndex adds an array index token.
func (p *PathBuilder) PushIndex(i int) {
	seg := strconv.Itoa(i)
	p.segments = append(p.segments, seg)
	p.length += len(seg) + 1
}

// Pop removes the last token.
func (p *PathBuilder) Pop() {
	if len(p.segments) == 0 {
		return
	}
	last := p.segments[len(p.segments)-1]
	p.segments = p.segments[:len(p.segments)-1]
	p.length -= len(last) + 1
}

// Depth returns the number of tokens.
func (p *PathBuilder) Depth() int {
	return len(p.segments)
}

// Reset clears the builder for reuse.
func (p *PathBuilder) Reset() {
	p.segments = p.segments[:0]
	p.length = 0
}

// String materializes the pointer in URI fragment form ("#/paths/~1pets/get").
// An empty builder yields "#".
func (p *PathBuilder) String() string {
	var b strings.Builder
	b.Grow(p.length + 1)
	b.WriteByte('#')
	for _, seg := range p.segments {
		b.WriteByte('/')
		b.WriteString(seg)
	}
	return b.String()
}

// Join appends raw tokens to an existing "#/..." pointer.
func Join(base string, tokens ...string) string {
	if base == "" {
		base = "#"
	}
	var b strings.Builder
	b.WriteString(base)
	for _, t := range tokens {
		b.WriteByte('/')
		b.WriteString(EscapeToken(t))
	}
	return b.String()
}

var (
	tokenEscaper   = strings.NewReplacer("~", "~0", "/", "~1")
	tokenUnescaper = strings.NewReplacer("~1", "/", "~0", "~")
)

// EscapeToken escapes a single reference token.
func EscapeToken(token string) string {
	if !strings.ContainsAny(token, "~/") {
		return token
	}
	return tokenEscaper.Replace(token)
}

// UnescapeToken reverses EscapeToken.
func UnescapeToken(token string) string {
	if !strings.Contains(token, "~") {
		return token
	}
	return tokenUnescaper.Replace(token)
}

// SplitPointer splits a "#/a/b" (or "/a/b") pointer into unescaped tokens.
// "#" and "" yield no tokens.
func SplitPointer(pointer string) []string {
	pointer = strings.TrimPrefix(pointer, "#")
	if pointer == "" {
		return nil
	}
	pointer = strings.TrimPrefix(pointer, "/")
	parts := strings.Split(pointer, "/")
	for i, part := range parts {
		parts[i] = UnescapeToken(part)
	}
	return parts
}
