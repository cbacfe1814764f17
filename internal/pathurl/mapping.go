package pathurl

import (
	"strings"

	"github.com/custodia-labs/prrelink/internal/core/domain"
)

// Mapping is the normalised lookup from original paths to destinations.
// It is built once per run and discarded after rewriting.
type Mapping struct {
	normalizer Normalizer
	targets    map[string]string
}

// BuildMapping folds relocation entries into a Mapping. Later entries win
// when two originals normalise to the same key. Entries with an empty
// original or destination are skipped.
func BuildMapping(entries []domain.RelocationEntry, normalizer Normalizer) *Mapping {
	m := &Mapping{
		normalizer: normalizer,
		targets:    make(map[string]string, len(entries)),
	}
	for _, e := range entries {
		if isBlank(e.OriginalPath) || isBlank(e.DestinationPath) {
			continue
		}
		m.targets[normalizer.Normalize(e.OriginalPath)] = e.DestinationPath
	}
	return m
}

// Lookup returns the destination for a decoded path. Matching is exact on
// the normalised key.
func (m *Mapping) Lookup(decodedPath string) (string, bool) {
	if m == nil || isBlank(decodedPath) {
		return "", false
	}
	dest, ok := m.targets[m.normalizer.Normalize(decodedPath)]
	return dest, ok
}

// Len returns the number of distinct keys.
func (m *Mapping) Len() int {
	if m == nil {
		return 0
	}
	return len(m.targets)
}

// Match counts references with and without a destination. Malformed
// references never match.
func (m *Mapping) Match(refs []domain.PathReference) (matched, unmatched int) {
	for _, ref := range refs {
		if _, ok := m.Resolve(ref); ok {
			matched++
		} else {
			unmatched++
		}
	}
	return matched, unmatched
}

// Unmatched returns the references that have no destination, in order.
func (m *Mapping) Unmatched(refs []domain.PathReference) []domain.PathReference {
	var out []domain.PathReference
	for _, ref := range refs {
		if _, ok := m.Resolve(ref); !ok {
			out = append(out, ref)
		}
	}
	return out
}

// Resolve returns the destination for a reference.
func (m *Mapping) Resolve(ref domain.PathReference) (string, bool) {
	if ref.Malformed {
		return "", false
	}
	return m.Lookup(ref.DecodedPath)
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
