package resolve

import "github.com/letolabs/treemachine/pkg/lineage"

// Conflict is the relation between a candidate edge (A) and a previously
// accepted edge (B), judged by their descendant sets.
type Conflict int

const (
	// NoConflict means A and B share no descendants.
	NoConflict Conflict = iota
	// CandidateSubsetOfAccepted means B contains every descendant of A.
	CandidateSubsetOfAccepted
	// AcceptedSubsetOfCandidate means A contains every descendant of B,
	// including the case where the sets are equal.
	AcceptedSubsetOfCandidate
	// Incompatible means A and B overlap without either containing the other.
	Incompatible
)

// String returns the conventional upper-case name of the relation.
func (c Conflict) String() string {
	switch c {
	case NoConflict:
		return "NO_CONFLICT"
	case CandidateSubsetOfAccepted:
		return "A_SUBSET_OF_B"
	case AcceptedSubsetOfCandidate:
		return "B_SUBSET_OF_A"
	case Incompatible:
		return "INCOMPATIBLE"
	}
	return "UNKNOWN"
}

// Classify compares candidate set a against accepted set b.
//
// The containment checks run in a fixed order: "a contains all of b" is
// tested before "b contains all of a", so identical sets classify as
// [AcceptedSubsetOfCandidate]. Callers rely on that tie-break.
func Classify(a, b lineage.Set) Conflict {
	if !b.Overlaps(a) {
		return NoConflict
	}
	if a.ContainsAll(b) {
		return AcceptedSubsetOfCandidate
	}
	if b.ContainsAll(a) {
		return CandidateSubsetOfAccepted
	}
	return Incompatible
}

// ParseConflict is the inverse of [Conflict.String].
func ParseConflict(s string) (Conflict, bool) {
	for _, c := range []Conflict{NoConflict, CandidateSubsetOfAccepted, AcceptedSubsetOfCandidate, Incompatible} {
		if c.String() == s {
			return c, true
		}
	}
	return 0, false
}
