package naming

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"
)

// Resolver hands each input morphology a unique output path. Batches often
// repeat basenames across subject directories (every folder has its own
// cell.swc), and their rendered SVGs would silently overwrite each other
// without arbitration. Duplicates get a " (2)", " (3)", … suffix before the
// extension. Safe for concurrent use.
type Resolver struct {
	mu     sync.Mutex
	owner  map[string]string // assigned output path → input that claimed it
	serial map[string]int    // requested output path → next free suffix
}

// NewResolver returns an empty Resolver.
func NewResolver() *Resolver {
	return &Resolver{
		owner:  make(map[string]string),
		serial: make(map[string]int),
	}
}

// Resolve returns the output path input may write to. The requested path is
// granted when unclaimed or already owned by the same input; otherwise the
// lowest free suffixed variant is assigned. Repeated calls for the same
// input return the same path.
func (r *Resolver) Resolve(input, requested string) string {
	r.mu.Lock()
	defer r.mu.Unlock()

	if owner, taken := r.owner[requested]; !taken || owner == input {
		r.owner[requested] = input
		return requested
	}

	ext := filepath.Ext(requested)
	stem := strings.TrimSuffix(requested, ext)

	n := r.serial[requested]
	if n < 2 {
		n = 2
	}
	for {
		candidate := fmt.Sprintf("%s (%d)%s", stem, n, ext)
		if owner, taken := r.owner[candidate]; !taken || owner == input {
			r.serial[requested] = n + 1
			r.owner[candidate] = input
			return candidate
		}
		n++
	}
}
