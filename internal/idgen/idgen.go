// Package idgen produces prefix-scoped sequential identifiers ("T1", "T2", ...).
//
// The local path scans the IDs that already exist and returns the next
// number after the largest one. When an Allocator is attached, the next value
// is requested from the remote authoritative store instead, with the local
// scan used as a collision guard for IDs created while offline.
package idgen

import (
	"context"
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"sync"

	"github.com/thenoetrevino/scope/internal/apperr"
)

// MaxSequence is the largest suffix an ID may carry. It matches the range
// of the sequence column on the server.
const MaxSequence = math.MaxInt64

// Allocator hands out sequence values atomically per (prefix, scope).
type Allocator interface {
	NextID(ctx context.Context, prefix, scope string) (string, error)
}

var (
	patternMu sync.Mutex
	patterns  = map[string]*regexp.Regexp{}
)

func patternFor(prefix string) *regexp.Regexp {
	patternMu.Lock()
	defer patternMu.Unlock()
	if re, ok := patterns[prefix]; ok {
		return re
	}
	re := regexp.MustCompile("^" + regexp.QuoteMeta(prefix) + `(\d+)$`)
	patterns[prefix] = re
	return re
}

// Sequence returns the numeric suffix of id when it matches prefix exactly.
// Suffixes beyond MaxSequence saturate at MaxSequence.
func Sequence(prefix, id string) (int64, bool) {
	m := patternFor(prefix).FindStringSubmatch(id)
	if m == nil {
		return 0, false
	}
	n, err := strconv.ParseUint(m[1], 10, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return MaxSequence, true
		}
		return 0, false
	}
	if n > MaxSequence {
		return MaxSequence, true
	}
	return int64(n), true
}

// Next returns prefix followed by one more than the largest numeric suffix
// found among existing IDs that match ^prefix(\d+)$. Other IDs are ignored.
// Once an ID at MaxSequence exists the sequence is exhausted and Next
// returns a validation error rather than wrapping around.
func Next(prefix string, existing []string) (string, error) {
	var maxSeq int64
	for _, id := range existing {
		if n, ok := Sequence(prefix, id); ok && n > maxSeq {
			maxSeq = n
		}
	}
	if maxSeq >= MaxSequence {
		return "", apperr.Validation("id", fmt.Sprintf("identifier sequence %s is exhausted", prefix))
	}
	return prefix + strconv.FormatInt(maxSeq+1, 10), nil
}

// Generator combines the remote allocator with the local scan.
type Generator struct {
	alloc Allocator
}

// New creates a Generator. alloc may be nil, in which case every ID comes
// from the local scan.
func New(alloc Allocator) *Generator {
	return &Generator{alloc: alloc}
}

// Local returns a Generator that never consults a remote allocator.
func Local() *Generator {
	return &Generator{}
}

// Generate returns an ID for prefix that is not present in existing.
// existing must be the complete current collection for the scope.
//
// Allocator errors are returned unchanged so the caller can decide whether
// to fall back to Next.
func (g *Generator) Generate(ctx context.Context, prefix string, existing []string, scope string) (string, error) {
	if g == nil || g.alloc == nil {
		return Next(prefix, existing)
	}

	id, err := g.alloc.NextID(ctx, prefix, scope)
	if err != nil {
		return "", err
	}
	if _, ok := Sequence(prefix, id); !ok {
		return "", fmt.Errorf("allocator returned %q for prefix %q", id, prefix)
	}
	if contains(existing, id) {
		return Next(prefix, existing)
	}
	return id, nil
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
