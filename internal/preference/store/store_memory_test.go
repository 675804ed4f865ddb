package store

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"memoria/internal/preference"
	"memoria/internal/visibility"
	id "memoria/pkg/domain"
	"memoria/pkg/platform/sentinel"
)

func newGlobal(t *testing.T, value string) *preference.Preference {
	t.Helper()
	pref, err := preference.NewGlobal(value)
	require.NoError(t, err)
	return pref
}

func newContributor(t *testing.T, contributorID id.UserID, value string) *preference.Preference {
	t.Helper()
	pref, err := preference.NewContributor(contributorID, value)
	require.NoError(t, err)
	return pref
}

func TestMemoryStore_Global(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()

	t.Run("unset reads as not found", func(t *testing.T) {
		_, err := s.GetGlobal(ctx)
		assert.ErrorIs(t, err, sentinel.ErrNotFound)
	})

	require.NoError(t, s.SaveGlobal(ctx, newGlobal(t, "blurred")))

	got, err := s.GetGlobal(ctx)
	require.NoError(t, err)
	assert.Equal(t, visibility.Blurred, got.Visibility)
	assert.Nil(t, got.ContributorID)

	t.Run("save replaces the single row", func(t *testing.T) {
		require.NoError(t, s.SaveGlobal(ctx, newGlobal(t, "approved")))

		got, err := s.GetGlobal(ctx)
		require.NoError(t, err)
		assert.Equal(t, visibility.Approved, got.Visibility)
	})

	t.Run("returns a copy", func(t *testing.T) {
		got, err := s.GetGlobal(ctx)
		require.NoError(t, err)
		got.Visibility = visibility.Removed

		again, err := s.GetGlobal(ctx)
		require.NoError(t, err)
		assert.Equal(t, visibility.Approved, again.Visibility)
	})
}

func TestMemoryStore_Contributor(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()
	alice := id.NewUserID()
	bob := id.NewUserID()

	t.Run("unset reads as not found", func(t *testing.T) {
		_, err := s.GetContributor(ctx, alice)
		assert.ErrorIs(t, err, sentinel.ErrNotFound)
	})

	require.NoError(t, s.SaveContributor(ctx, newContributor(t, alice, "anonymized")))

	got, err := s.GetContributor(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, visibility.Anonymized, got.Visibility)
	assert.Equal(t, alice, *got.ContributorID)

	t.Run("scoped per contributor", func(t *testing.T) {
		_, err := s.GetContributor(ctx, bob)
		assert.ErrorIs(t, err, sentinel.ErrNotFound)
	})

	t.Run("save replaces the contributor's row", func(t *testing.T) {
		require.NoError(t, s.SaveContributor(ctx, newContributor(t, alice, "removed")))

		got, err := s.GetContributor(ctx, alice)
		require.NoError(t, err)
		assert.Equal(t, visibility.Removed, got.Visibility)
	})
}

func TestMemoryStore_ConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()

	contributors := make([]id.UserID, 50)
	for i := range contributors {
		contributors[i] = id.NewUserID()
	}

	var wg sync.WaitGroup
	for _, contributorID := range contributors {
		wg.Add(1)
		go func(contributorID id.UserID) {
			defer wg.Done()
			_ = s.SaveGlobal(ctx, newGlobal(t, "blurred"))
			_ = s.SaveContributor(ctx, newContributor(t, contributorID, "anonymized"))
			_, _ = s.GetGlobal(ctx)
			_, _ = s.GetContributor(ctx, contributorID)
		}(contributorID)
	}
	wg.Wait()

	for _, contributorID := range contributors {
		got, err := s.GetContributor(ctx, contributorID)
		require.NoError(t, err)
		assert.Equal(t, visibility.Anonymized, got.Visibility)
	}
}
