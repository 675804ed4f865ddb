package visibility

// Visibility is a domain value controlling how much of a mentioned person's
// identity is exposed in note payloads.
// Invariant: the value must be one of the supported visibility states.
//
// Usage: construct via Normalize at trust boundaries; direct casting bypasses
// normalization and may smuggle unrecognized literals past the rank table.
type Visibility string

// Supported visibility states.
const (
	// Approved: identity may be shown in full.
	Approved Visibility = "approved"
	// Blurred: identity partially obscured.
	Blurred Visibility = "blurred"
	// Anonymized: identity fully substituted.
	Anonymized Visibility = "anonymized"
	// Pending: no decision at this level; defer to the next layer.
	Pending Visibility = "pending"
	// Removed: identity must never be shown.
	Removed Visibility = "removed"
)

// rank orders visibility states by privacy. Removed always dominates;
// Approved is the only fully-open state. Blurred, Anonymized, and Pending
// share a rank: all three withhold the real name.
var rank = map[Visibility]int{
	Approved:   0,
	Blurred:    1,
	Anonymized: 1,
	Pending:    1,
	Removed:    2,
}

// Normalize maps raw storage values onto the closed enum. Empty and
// unrecognized strings normalize to Pending rather than erroring: a missing
// column and a deliberately-blank setting both mean "defer". Matching is
// case-sensitive with no whitespace trimming.
func Normalize(raw string) Visibility {
	v := Visibility(raw)
	if _, ok := rank[v]; ok {
		return v
	}
	return Pending
}

// IsValid checks if the visibility is one of the supported enum values.
func (v Visibility) IsValid() bool {
	_, ok := rank[v]
	return ok
}

// Rank returns the privacy rank. Unrecognized values report the Pending rank,
// consistent with Normalize.
func (v Visibility) Rank() int {
	if r, ok := rank[v]; ok {
		return r
	}
	return rank[Pending]
}

// String returns the string representation of the visibility.
func (v Visibility) String() string {
	return string(v)
}

// MorePrivateOrEqual reports whether candidate is at least as private as base.
// Collaborators use this to enforce that overrides may only tighten, never
// loosen, a person's configured default; the resolver itself only exposes the
// primitive.
func MorePrivateOrEqual(candidate, base Visibility) bool {
	return candidate.Rank() >= base.Rank()
}
