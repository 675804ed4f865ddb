package visibility

// Inputs carries the four layered visibility signals for one person mention.
// All fields hold raw storage values; Resolve normalizes them independently.
// The layers, most to least specific: per-note reference override, the note
// author's own default, the site-wide default, the person's base visibility.
type Inputs struct {
	Reference   string
	Person      string
	Contributor string
	Global      string
}

// Resolve produces the single effective visibility for one mention.
// This is pure domain logic - no I/O, no side effects. It is total over all
// string inputs and is reapplied on every request so live edits to any layer
// take effect immediately.
//
// Rule order:
//  1. Removed-dominance: if the person's base, the contributor default, or the
//     global default is Removed, the result is Removed regardless of the
//     per-note override. The reference layer is deliberately excluded from
//     this check; a per-note "unremove" is impossible once any of the other
//     three layers lock the person to Removed, so the reference's own Removed
//     is handled by ordinary precedence below.
//  2. Precedence walk from most to least specific, first non-Pending wins.
//     The person's base visibility is the final fallback even when it is
//     itself Pending: "never configured" is a legitimate terminal resolution
//     and fails closed at the reveal gate.
func Resolve(in Inputs) Visibility {
	ref := Normalize(in.Reference)
	person := Normalize(in.Person)
	contributor := Normalize(in.Contributor)
	global := Normalize(in.Global)

	if person == Removed || contributor == Removed || global == Removed {
		return Removed
	}

	// Ordered so adding a future layer is a one-line change.
	chain := []Visibility{ref, contributor, global}
	for _, v := range chain {
		if v != Pending {
			return v
		}
	}
	return person
}

// CanRevealIdentity gates whether any identity detail may be shown for the
// resolved visibility. Absence of signal fails closed: an unclaimed or
// never-configured person is never exposed by default.
func CanRevealIdentity(claimExists bool, resolved Visibility) bool {
	if !claimExists {
		return false
	}
	switch resolved {
	case Approved, Blurred, Anonymized:
		return true
	}
	return false
}

// PayloadInput carries the facts needed to shape one person reference.
type PayloadInput struct {
	ClaimExists   bool
	PersonID      string
	CanonicalName string
	Resolved      Visibility
}

// PersonPayload is the identity-safe shape of a person reference. Name is nil
// for every non-approved visibility.
type PersonPayload struct {
	ID         string     `json:"id"`
	Name       *string    `json:"name"`
	Visibility Visibility `json:"visibility"`
}

// ShapePersonPayload is the single choke point through which a person's real
// name may reach an API response; every caller serializing person references
// must go through it. A nil return means the caller must omit the reference
// from its output entirely - that is a contract, not a convenience.
func ShapePersonPayload(in PayloadInput) *PersonPayload {
	if !in.ClaimExists || in.Resolved == Removed {
		return nil
	}
	payload := &PersonPayload{
		ID:         in.PersonID,
		Visibility: in.Resolved,
	}
	if in.Resolved == Approved {
		name := in.CanonicalName
		payload.Name = &name
	}
	return payload
}
