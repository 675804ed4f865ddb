package visibility

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve_Precedence(t *testing.T) {
	tests := []struct {
		name string
		in   Inputs
		want Visibility
	}{
		{
			name: "reference override wins over everything below",
			in:   Inputs{Reference: "approved", Person: "pending", Contributor: "pending", Global: "pending"},
			want: Approved,
		},
		{
			name: "contributor preference wins when reference defers",
			in:   Inputs{Reference: "pending", Person: "approved", Contributor: "blurred", Global: "anonymized"},
			want: Blurred,
		},
		{
			name: "global preference wins when reference and contributor defer",
			in:   Inputs{Reference: "pending", Person: "approved", Contributor: "pending", Global: "anonymized"},
			want: Anonymized,
		},
		{
			name: "person base is the fallback",
			in:   Inputs{Reference: "pending", Person: "approved", Contributor: "pending", Global: "pending"},
			want: Approved,
		},
		{
			name: "all layers pending resolves to pending",
			in:   Inputs{Reference: "pending", Person: "pending", Contributor: "pending", Global: "pending"},
			want: Pending,
		},
		{
			name: "absent values behave like pending",
			in:   Inputs{Reference: "", Person: "", Contributor: "", Global: ""},
			want: Pending,
		},
		{
			name: "unrecognized values behave like pending",
			in:   Inputs{Reference: "hidden", Person: "blurred", Contributor: "REMOVED", Global: "none"},
			want: Blurred,
		},
		{
			name: "reference removed is ordinary precedence, not dominance",
			in:   Inputs{Reference: "removed", Person: "approved", Contributor: "pending", Global: "pending"},
			want: Removed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Resolve(tt.in))
		})
	}
}

// TestResolve_RemovedDominance exhaustively verifies that Removed in the
// person, contributor, or global layer forces Removed regardless of the
// reference override - including an approving one.
func TestResolve_RemovedDominance(t *testing.T) {
	all := []string{"approved", "blurred", "anonymized", "pending", "removed", ""}

	for _, ref := range all {
		for _, other := range all {
			t.Run("person removed, ref="+ref+", others="+other, func(t *testing.T) {
				got := Resolve(Inputs{Reference: ref, Person: "removed", Contributor: other, Global: other})
				assert.Equal(t, Removed, got)
			})
			t.Run("contributor removed, ref="+ref+", others="+other, func(t *testing.T) {
				got := Resolve(Inputs{Reference: ref, Person: other, Contributor: "removed", Global: other})
				assert.Equal(t, Removed, got)
			})
			t.Run("global removed, ref="+ref+", others="+other, func(t *testing.T) {
				got := Resolve(Inputs{Reference: ref, Person: other, Contributor: other, Global: "removed"})
				assert.Equal(t, Removed, got)
			})
		}
	}
}

// TestResolve_Total verifies the resolver always produces a member of the
// closed enum for arbitrary input combinations.
func TestResolve_Total(t *testing.T) {
	samples := []string{"approved", "blurred", "anonymized", "pending", "removed", "", "junk", "APPROVED"}
	for _, a := range samples {
		for _, b := range samples {
			for _, c := range samples {
				for _, d := range samples {
					got := Resolve(Inputs{Reference: a, Person: b, Contributor: c, Global: d})
					require.True(t, got.IsValid(),
						"Resolve(%q,%q,%q,%q) returned invalid value %q", a, b, c, d, got)
				}
			}
		}
	}
}

func TestCanRevealIdentity(t *testing.T) {
	tests := []struct {
		name     string
		claim    bool
		resolved Visibility
		want     bool
	}{
		{"no claim blocks approved", false, Approved, false},
		{"no claim blocks blurred", false, Blurred, false},
		{"removed blocks even with claim", true, Removed, false},
		{"pending fails closed", true, Pending, false},
		{"approved with claim reveals", true, Approved, true},
		{"blurred with claim reveals", true, Blurred, true},
		{"anonymized with claim reveals", true, Anonymized, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanRevealIdentity(tt.claim, tt.resolved))
		})
	}
}

func TestShapePersonPayload(t *testing.T) {
	t.Run("no claim yields nil payload", func(t *testing.T) {
		got := ShapePersonPayload(PayloadInput{
			ClaimExists:   false,
			PersonID:      "p1",
			CanonicalName: "Jane",
			Resolved:      Approved,
		})
		assert.Nil(t, got)
	})

	t.Run("removed yields nil payload", func(t *testing.T) {
		got := ShapePersonPayload(PayloadInput{
			ClaimExists:   true,
			PersonID:      "p1",
			CanonicalName: "Jane",
			Resolved:      Removed,
		})
		assert.Nil(t, got)
	})

	t.Run("approved reveals the canonical name", func(t *testing.T) {
		got := ShapePersonPayload(PayloadInput{
			ClaimExists:   true,
			PersonID:      "p1",
			CanonicalName: "Jane",
			Resolved:      Approved,
		})
		require.NotNil(t, got)
		assert.Equal(t, "p1", got.ID)
		require.NotNil(t, got.Name)
		assert.Equal(t, "Jane", *got.Name)
		assert.Equal(t, Approved, got.Visibility)
	})

	t.Run("blurred withholds the name", func(t *testing.T) {
		got := ShapePersonPayload(PayloadInput{
			ClaimExists:   true,
			PersonID:      "p1",
			CanonicalName: "Jane",
			Resolved:      Blurred,
		})
		require.NotNil(t, got)
		assert.Nil(t, got.Name)
		assert.Equal(t, Blurred, got.Visibility)
	})

	t.Run("anonymized withholds the name", func(t *testing.T) {
		got := ShapePersonPayload(PayloadInput{
			ClaimExists:   true,
			PersonID:      "p1",
			CanonicalName: "Jane",
			Resolved:      Anonymized,
		})
		require.NotNil(t, got)
		assert.Nil(t, got.Name)
	})

	t.Run("pending shapes without a name for careless callers", func(t *testing.T) {
		// The reveal gate should filter pending upstream; the shaper still
		// must not leak a name when a caller skips it.
		got := ShapePersonPayload(PayloadInput{
			ClaimExists:   true,
			PersonID:      "p1",
			CanonicalName: "Jane",
			Resolved:      Pending,
		})
		require.NotNil(t, got)
		assert.Nil(t, got.Name)
	})
}
