package resolve

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/letolabs/treemachine/pkg/errors"
	"github.com/letolabs/treemachine/pkg/lineage"
)

// DescendantSource supplies precomputed descendant sets by node id.
// *lineage.Snapshot implements it.
type DescendantSource interface {
	Descendants(nodeID int64) (lineage.Set, bool)
}

// Accessor looks up the descendant set of a candidate edge (its child's set)
// and caches it by edge id. The cache belongs to one resolution run; call
// Reset before reusing an Accessor against a different source.
type Accessor struct {
	src    DescendantSource
	cache  map[int64]lineage.Set
	logger *log.Logger
}

// NewAccessor creates an accessor over src. A nil logger discards
// diagnostics.
func NewAccessor(src DescendantSource, logger *log.Logger) *Accessor {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Accessor{
		src:    src,
		cache:  make(map[int64]lineage.Set),
		logger: logger,
	}
}

// ForEdge returns the descendant set of e's child node. A node without a
// precomputed set yields an ErrCodeMissingDescendants error.
func (a *Accessor) ForEdge(e lineage.Edge) (lineage.Set, error) {
	if set, ok := a.cache[e.ID]; ok {
		return set, nil
	}
	set, ok := a.src.Descendants(e.Child)
	if !ok {
		return nil, errors.New(errors.ErrCodeMissingDescendants,
			"node %d (child of edge %d) has no descendant set", e.Child, e.ID)
	}
	a.cache[e.ID] = set
	if set.Len() > 1 {
		a.logger.Debug("observing internal node", "node", e.Child, "descendants", set.Len())
	}
	return set, nil
}

// Len returns the number of cached sets.
func (a *Accessor) Len() int { return len(a.cache) }

// Reset drops every cached set.
func (a *Accessor) Reset() { clear(a.cache) }
