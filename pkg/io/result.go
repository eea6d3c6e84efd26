package io

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/letolabs/treemachine/pkg/errors"
	"github.com/letolabs/treemachine/pkg/lineage"
	"github.com/letolabs/treemachine/pkg/resolve"
)

// Result is the serialisable outcome of one resolution.
type Result struct {
	Method          string     `json:"method"`
	Accepted        []Edge     `json:"accepted"`
	Rejected        []Rejected `json:"rejected"`
	Removed         []Edge     `json:"removed"`
	Classifications int        `json:"classifications"`
	Newick          string     `json:"newick,omitempty"`
}

// Edge is the JSON form of a candidate edge.
type Edge struct {
	ID     int64 `json:"id"`
	Child  int64 `json:"child"`
	Parent int64 `json:"parent"`
}

// Rejected is a candidate that was not accepted.
type Rejected struct {
	Edge     Edge   `json:"edge"`
	Reason   string `json:"reason"`
	Offender Edge   `json:"offender"`
}

func fromEdge(e lineage.Edge) Edge { return Edge{ID: e.ID, Child: e.Child, Parent: e.Parent} }

func (e Edge) toLineage() lineage.Edge {
	return lineage.Edge{ID: e.ID, Child: e.Child, Parent: e.Parent}
}

func fromEdges(es []lineage.Edge) []Edge {
	out := make([]Edge, len(es))
	for i, e := range es {
		out[i] = fromEdge(e)
	}
	return out
}

func toEdges(es []Edge) []lineage.Edge {
	out := make([]lineage.Edge, len(es))
	for i, e := range es {
		out[i] = e.toLineage()
	}
	return out
}

// NewResult converts a resolver report. Slices are never nil so they encode
// as [] rather than null.
func NewResult(method string, rep *resolve.Report) Result {
	res := Result{
		Method:          method,
		Accepted:        fromEdges(rep.Accepted),
		Rejected:        make([]Rejected, len(rep.Rejected)),
		Removed:         fromEdges(rep.Removed),
		Classifications: rep.Classifications,
	}
	for i, r := range rep.Rejected {
		res.Rejected[i] = Rejected{Edge: fromEdge(r.Edge), Reason: r.Reason.String(), Offender: fromEdge(r.Offender)}
	}
	return res
}

// Report converts r back into a resolver report.
func (r Result) Report() (*resolve.Report, error) {
	rep := &resolve.Report{
		Accepted:        toEdges(r.Accepted),
		Removed:         toEdges(r.Removed),
		Rejected:        make([]resolve.Rejection, len(r.Rejected)),
		Classifications: r.Classifications,
	}
	for i, rj := range r.Rejected {
		reason, ok := resolve.ParseConflict(rj.Reason)
		if !ok {
			return nil, errors.New(errors.ErrCodeInvalidInput, "edge %d: unknown rejection reason %q", rj.Edge.ID, rj.Reason)
		}
		rep.Rejected[i] = resolve.Rejection{Edge: rj.Edge.toLineage(), Reason: reason, Offender: rj.Offender.toLineage()}
	}
	return rep, nil
}

// WriteResult writes res to w as indented JSON.
func WriteResult(w io.Writer, res Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(res); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ReadResult decodes a result written by WriteResult.
func ReadResult(r io.Reader) (Result, error) {
	var res Result
	if err := json.NewDecoder(r).Decode(&res); err != nil {
		return Result{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode result")
	}
	return res, nil
}
