package resolve

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/letolabs/treemachine/pkg/errors"
	"github.com/letolabs/treemachine/pkg/lineage"
	"github.com/letolabs/treemachine/pkg/observability"
)

// Method is a conflict-resolution strategy over ranked candidate edges.
type Method interface {
	// Resolve returns the accepted subset of candidates, in acceptance order.
	Resolve(ctx context.Context, src DescendantSource, candidates []lineage.Edge) ([]lineage.Edge, error)
	// Description is a one-line human-readable summary of the strategy.
	Description() string
}

// Rejection records why a candidate was not accepted.
type Rejection struct {
	Edge     lineage.Edge
	Reason   Conflict     // Incompatible or CandidateSubsetOfAccepted
	Offender lineage.Edge // accepted edge that caused the rejection
}

// Report is the full outcome of a resolution run.
type Report struct {
	// Accepted edges in acceptance order, after deferred removal.
	Accepted []lineage.Edge
	// Rejected candidates in input order.
	Rejected []Rejection
	// Removed holds edges that were accepted and later superseded, in the
	// order they had been accepted.
	Removed []lineage.Edge
	// Classifications counts calls to Classify.
	Classifications int
}

// Option configures a RankResolver.
type Option func(*RankResolver)

// WithLogger routes per-candidate diagnostics to l at debug level.
func WithLogger(l *log.Logger) Option {
	return func(r *RankResolver) { r.logger = l }
}

// WithLabeler sets how edges are rendered in diagnostics.
func WithLabeler(fn func(lineage.Edge) string) Option {
	return func(r *RankResolver) { r.label = fn }
}

// RankResolver prefers higher-ranked edges but lets a later, more inclusive
// edge replace accepted edges it fully contains. The result never contains
// two incompatible edges.
type RankResolver struct {
	logger *log.Logger
	label  func(lineage.Edge) string
}

var _ Method = (*RankResolver)(nil)

// NewRankResolver creates a resolver. Without options it logs nothing.
func NewRankResolver(opts ...Option) *RankResolver {
	r := &RankResolver{}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = log.New(io.Discard)
	}
	return r
}

// Description implements Method.
func (r *RankResolver) Description() string {
	return "prefer edges with higher ranking, but take paths with more descendants as long as they don't indicate relationships incompatible with preferred edges. Result will be fully acyclic."
}

// Resolve implements Method.
func (r *RankResolver) Resolve(ctx context.Context, src DescendantSource, candidates []lineage.Edge) ([]lineage.Edge, error) {
	rep, err := r.ResolveWithReport(ctx, src, candidates)
	if err != nil {
		return nil, err
	}
	return rep.Accepted, nil
}

// ResolveWithReport runs the resolution and returns accepted, rejected and
// removed edges. ctx is only handed to observability hooks; resolution is
// not cancellable.
func (r *RankResolver) ResolveWithReport(ctx context.Context, src DescendantSource, candidates []lineage.Edge) (*Report, error) {
	start := time.Now()
	observability.Resolve().OnResolveStart(ctx, len(candidates))

	rep, err := r.resolve(src, candidates)

	stats := observability.ResolveStats{Candidates: len(candidates)}
	if rep != nil {
		stats.Accepted = len(rep.Accepted)
		stats.Rejected = len(rep.Rejected)
		stats.Removed = len(rep.Removed)
		stats.Classifications = rep.Classifications
	}
	observability.Resolve().OnResolveComplete(ctx, stats, time.Since(start), err)
	return rep, err
}

func (r *RankResolver) resolve(src DescendantSource, candidates []lineage.Edge) (*Report, error) {
	if err := checkUniqueIDs(candidates); err != nil {
		return nil, err
	}

	label := r.labeler(src)
	acc := NewAccessor(src, r.logger)
	rep := &Report{}

	var accepted []lineage.Edge
	pending := make(map[int64]struct{})

	for _, cand := range candidates {
		r.logger.Debug("testing edge for conflicts", "edge", label(cand))

		// The candidate's set is fetched lazily, on its first comparison.
		var candSet lineage.Set
		passed := true
		for i, saved := range accepted {
			if i == 0 {
				set, err := acc.ForEdge(cand)
				if err != nil {
					return nil, err
				}
				candSet = set
			}
			savedSet, err := acc.ForEdge(saved)
			if err != nil {
				return nil, err
			}

			rep.Classifications++
			c := Classify(candSet, savedSet)
			if c == Incompatible || c == CandidateSubsetOfAccepted {
				if c == Incompatible {
					r.logger.Debug("conflict found", "offending", label(saved))
				} else {
					r.logger.Debug("candidate is included in accepted edge", "candidate", cand.ID, "accepted", label(saved))
				}
				rep.Rejected = append(rep.Rejected, Rejection{Edge: cand, Reason: c, Offender: saved})
				passed = false
				break
			}
			if c == AcceptedSubsetOfCandidate {
				r.logger.Debug("will remove accepted edge contained within candidate", "accepted", label(saved), "candidate", cand.ID)
				pending[saved.ID] = struct{}{}
			}
		}

		if passed {
			r.logger.Debug("edge passed", "edge", cand.ID)
			accepted = append(accepted, cand)
		} else {
			r.logger.Debug("edge failed", "edge", cand.ID)
		}
	}

	rep.Accepted = make([]lineage.Edge, 0, len(accepted))
	for _, e := range accepted {
		if _, ok := pending[e.ID]; ok {
			r.logger.Debug("removing edge", "edge", label(e))
			rep.Removed = append(rep.Removed, e)
			continue
		}
		rep.Accepted = append(rep.Accepted, e)
	}
	return rep, nil
}

func (r *RankResolver) labeler(src DescendantSource) func(lineage.Edge) string {
	if r.label != nil {
		return r.label
	}
	if s, ok := src.(interface{ EdgeLabel(lineage.Edge) string }); ok {
		return s.EdgeLabel
	}
	return func(e lineage.Edge) string { return fmt.Sprintf("[edge=%d]", e.ID) }
}

func checkUniqueIDs(candidates []lineage.Edge) error {
	seen := make(map[int64]struct{}, len(candidates))
	for _, e := range candidates {
		if _, ok := seen[e.ID]; ok {
			return errors.New(errors.ErrCodeInvalidInput, "duplicate candidate edge id %d", e.ID)
		}
		seen[e.ID] = struct{}{}
	}
	return nil
}
