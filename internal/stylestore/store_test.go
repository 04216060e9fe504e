// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package stylestore

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meshintel/styleforge/pkg/types"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(types.StoreConfig{Path: filepath.Join(t.TempDir(), "styles.db")})
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func testStyle(preset types.TemplatePreset) types.Style {
	return types.Style{
		Info:     types.StyleInfo{ID: "custom-style", Title: "Custom Style"},
		Citation: &types.CitationSpec{Preset: preset},
	}
}

func TestSaveAndGet(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	saved, err := s.Save(ctx, Record{
		Owner: "ada",
		Name:  "My APA Variant",
		Style: testStyle(types.PresetAPA),
	})
	require.NoError(t, err)
	assert.NotEmpty(t, saved.ID)
	assert.False(t, saved.CreatedAt.IsZero())

	got, err := s.Get(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, "ada", got.Owner)
	assert.Equal(t, "My APA Variant", got.Name)
	require.NotNil(t, got.Style.Citation)
	assert.Equal(t, types.PresetAPA, got.Style.Citation.Preset)
}

func TestGetMissing(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSaveUpdatesExisting(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	saved, err := s.Save(ctx, Record{Owner: "ada", Name: "v1", Style: testStyle(types.PresetAPA)})
	require.NoError(t, err)

	saved.Name = "v2"
	saved.Style = testStyle(types.PresetVancouver)
	updated, err := s.Save(ctx, saved)
	require.NoError(t, err)
	assert.Equal(t, saved.ID, updated.ID)
	assert.Equal(t, saved.CreatedAt, updated.CreatedAt)

	got, err := s.Get(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, "v2", got.Name)
	assert.Equal(t, types.PresetVancouver, got.Style.Citation.Preset)

	list, err := s.List(ctx, "ada")
	require.NoError(t, err)
	assert.Len(t, list, 1, "update must not create a second record")
}

func TestListScopedToOwner(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.Save(ctx, Record{Owner: "ada", Name: "a", Style: testStyle(types.PresetAPA)})
	require.NoError(t, err)
	_, err = s.Save(ctx, Record{Owner: "grace", Name: "g", Style: testStyle(types.PresetVancouver)})
	require.NoError(t, err)

	list, err := s.List(ctx, "ada")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "a", list[0].Name)
}

func TestListPublic(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.Save(ctx, Record{Owner: "ada", Name: "private", Style: testStyle(types.PresetAPA)})
	require.NoError(t, err)
	_, err = s.Save(ctx, Record{Owner: "ada", Name: "shared", Public: true, Style: testStyle(types.PresetAPA)})
	require.NoError(t, err)

	hub, err := s.ListPublic(ctx)
	require.NoError(t, err)
	require.Len(t, hub, 1)
	assert.Equal(t, "shared", hub[0].Name)
}

func TestDelete(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	saved, err := s.Save(ctx, Record{Owner: "ada", Name: "doomed", Style: testStyle(types.PresetAPA)})
	require.NoError(t, err)

	// Wrong owner cannot delete.
	assert.ErrorIs(t, s.Delete(ctx, saved.ID, "grace"), ErrNotFound)

	require.NoError(t, s.Delete(ctx, saved.ID, "ada"))
	_, err = s.Get(ctx, saved.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFork(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	src, err := s.Save(ctx, Record{
		Owner:  "ada",
		Name:   "Chicago Tweaked",
		Public: true,
		Style:  testStyle(types.PresetChicagoAuthorDate),
	})
	require.NoError(t, err)

	fork, err := s.Fork(ctx, src.ID, "grace")
	require.NoError(t, err)
	assert.NotEqual(t, src.ID, fork.ID)
	assert.Equal(t, "grace", fork.Owner)
	assert.Equal(t, "Chicago Tweaked (Fork)", fork.Name)
	assert.False(t, fork.Public, "forks start private")
	assert.Equal(t, src.Style, fork.Style)

	// The fork has its own single-entry history.
	revs, err := s.History(ctx, fork.ID)
	require.NoError(t, err)
	assert.Len(t, revs, 1)
}

func TestForkMissing(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Fork(context.Background(), "nope", "grace")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestBookmarks(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	saved, err := s.Save(ctx, Record{Owner: "ada", Name: "nice", Public: true, Style: testStyle(types.PresetAPA)})
	require.NoError(t, err)

	require.NoError(t, s.AddBookmark(ctx, "grace", saved.ID))
	// Bookmarking twice is idempotent.
	require.NoError(t, s.AddBookmark(ctx, "grace", saved.ID))

	marks, err := s.ListBookmarks(ctx, "grace")
	require.NoError(t, err)
	require.Len(t, marks, 1)
	assert.Equal(t, saved.ID, marks[0].ID)

	require.NoError(t, s.RemoveBookmark(ctx, "grace", saved.ID))
	marks, err = s.ListBookmarks(ctx, "grace")
	require.NoError(t, err)
	assert.Empty(t, marks)

	// Removing a missing bookmark is fine.
	require.NoError(t, s.RemoveBookmark(ctx, "grace", saved.ID))
}

func TestBookmarkMissingStyle(t *testing.T) {
	s := newTestStore(t)

	err := s.AddBookmark(context.Background(), "grace", "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestHistoryAccumulates(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	saved, err := s.Save(ctx, Record{Owner: "ada", Name: "evolving", Style: testStyle(types.PresetAPA)})
	require.NoError(t, err)

	saved.Style = testStyle(types.PresetVancouver)
	_, err = s.Save(ctx, saved)
	require.NoError(t, err)

	revs, err := s.History(ctx, saved.ID)
	require.NoError(t, err)
	require.Len(t, revs, 2)
	assert.Equal(t, 1, revs[0].Version)
	assert.Equal(t, types.PresetAPA, revs[0].Style.Citation.Preset)
	assert.Equal(t, 2, revs[1].Version)
	assert.Equal(t, types.PresetVancouver, revs[1].Style.Citation.Preset)
}

func TestCorruptTimestampSurfaces(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	saved, err := s.Save(ctx, Record{Owner: "ada", Name: "x", Style: testStyle(types.PresetAPA)})
	require.NoError(t, err)

	_, err = s.db.ExecContext(ctx,
		`UPDATE styles SET created_at = 'not-a-timestamp' WHERE id = ?`, saved.ID)
	require.NoError(t, err)

	_, err = s.Get(ctx, saved.ID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "created_at")
}

func TestHistoryMissing(t *testing.T) {
	s := newTestStore(t)

	_, err := s.History(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}
