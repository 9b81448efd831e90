package db

import (
	"strconv"
	"strings"
)

// MaxInPredicate bounds the number of values bound into a single
// set-membership (IN) predicate. Callers with larger id sets must chunk;
// repositories in this module do so through Chunk.
const MaxInPredicate = 30

// Chunk splits ids into slices of at most size elements.
func Chunk(ids []string, size int) [][]string {
	if size <= 0 {
		size = MaxInPredicate
	}
	var out [][]string
	for len(ids) > size {
		out = append(out, ids[:size])
		ids = ids[size:]
	}
	if len(ids) > 0 {
		out = append(out, ids)
	}
	return out
}

// Placeholders renders "$start,$start+1,..." for n bind parameters.
func Placeholders(start, n int) string {
	var b strings.Builder
	for i := 0; i < n; i++ {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteByte('$')
		b.WriteString(strconv.Itoa(start + i))
	}
	return b.String()
}
