package pathurl

import (
	"runtime"
	"strings"

	"golang.org/x/text/cases"

	"github.com/custodia-labs/prrelink/internal/core/domain"
)

// Normalizer canonicalises paths for equality matching. Normalised keys are
// never written back to a document.
type Normalizer struct {
	mode            domain.CaseMode
	hostInsensitive bool
}

// NewNormalizer creates a normaliser for the given case mode on this host.
func NewNormalizer(mode domain.CaseMode) Normalizer {
	return Normalizer{
		mode:            mode,
		hostInsensitive: runtime.GOOS == "windows",
	}
}

// Normalize converts backslashes to forward slashes, folds case when the
// mode calls for it and strips trailing separators. It is idempotent.
func (n Normalizer) Normalize(p string) string {
	s := strings.ReplaceAll(p, `\`, "/")
	if n.foldCase(p) {
		s = cases.Fold().String(s)
	}
	return strings.TrimRight(s, "/")
}

// Mode returns the configured case mode.
func (n Normalizer) Mode() domain.CaseMode {
	if n.mode == "" {
		return domain.CaseModeAuto
	}
	return n.mode
}

func (n Normalizer) foldCase(p string) bool {
	switch n.Mode() {
	case domain.CaseModeAlways:
		return true
	case domain.CaseModeNever:
		return false
	default:
		return n.hostInsensitive || isWindowsPath(p)
	}
}

// isWindowsPath reports whether p was written on a case-insensitive
// Windows file system.
func isWindowsPath(p string) bool {
	return HasDriveLetter(p) || strings.Contains(p, `\`)
}
