package visibility

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestNormalize_Total validates the normalization invariant:
// every string input maps to one of the five enum values, never an error.
func TestNormalize_Total(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Visibility
	}{
		{"approved passes through", "approved", Approved},
		{"blurred passes through", "blurred", Blurred},
		{"anonymized passes through", "anonymized", Anonymized},
		{"pending passes through", "pending", Pending},
		{"removed passes through", "removed", Removed},
		{"empty string defers", "", Pending},
		{"unrecognized value defers", "hidden", Pending},
		{"case is significant", "Approved", Pending},
		{"whitespace is significant", " approved", Pending},
		{"garbage defers", "'; DROP TABLE people;--", Pending},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.input)
			assert.Equal(t, tt.want, got)
			assert.True(t, got.IsValid(), "Normalize must always return a valid enum value")
		})
	}
}

func TestVisibility_IsValid(t *testing.T) {
	for _, v := range []Visibility{Approved, Blurred, Anonymized, Pending, Removed} {
		assert.True(t, v.IsValid(), "%s should be valid", v)
	}
	assert.False(t, Visibility("redacted").IsValid())
	assert.False(t, Visibility("").IsValid())
}

// TestMorePrivateOrEqual encodes the rank ordering property: removed dominates
// everything, approved is dominated by everything.
func TestMorePrivateOrEqual(t *testing.T) {
	all := []Visibility{Approved, Blurred, Anonymized, Pending, Removed}

	t.Run("removed is at least as private as any value", func(t *testing.T) {
		for _, base := range all {
			assert.True(t, MorePrivateOrEqual(Removed, base), "removed vs %s", base)
		}
	})

	t.Run("approved only matches approved", func(t *testing.T) {
		assert.True(t, MorePrivateOrEqual(Approved, Approved))
		for _, base := range []Visibility{Blurred, Anonymized, Pending, Removed} {
			assert.False(t, MorePrivateOrEqual(Approved, base), "approved vs %s", base)
		}
	})

	t.Run("rank-1 values are interchangeable", func(t *testing.T) {
		mid := []Visibility{Blurred, Anonymized, Pending}
		for _, a := range mid {
			for _, b := range mid {
				assert.True(t, MorePrivateOrEqual(a, b), "%s vs %s", a, b)
			}
		}
	})

	t.Run("tightening is always permitted", func(t *testing.T) {
		assert.True(t, MorePrivateOrEqual(Blurred, Approved))
		assert.True(t, MorePrivateOrEqual(Removed, Blurred))
	})
}

func TestVisibility_Rank(t *testing.T) {
	assert.Equal(t, 0, Approved.Rank())
	assert.Equal(t, 1, Blurred.Rank())
	assert.Equal(t, 1, Anonymized.Rank())
	assert.Equal(t, 1, Pending.Rank())
	assert.Equal(t, 2, Removed.Rank())
	// Unrecognized values rank like Pending, consistent with Normalize.
	assert.Equal(t, 1, Visibility("bogus").Rank())
}
