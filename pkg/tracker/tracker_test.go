package tracker

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/olimci/followdiff/pkg/archive"
	"github.com/olimci/followdiff/pkg/baseline"
	"github.com/olimci/followdiff/pkg/digest"
	"github.com/olimci/followdiff/pkg/notify"
	"github.com/olimci/followdiff/pkg/relationship"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func followingJSON(names ...string) string {
	items := make([]string, 0, len(names))
	for _, name := range names {
		items = append(items, fmt.Sprintf(`{"title": %q, "string_list_data": [{"href": "https://www.instagram.com/_u/%s", "timestamp": 1700000000}]}`, name, name))
	}
	return `{"relationships_following": [` + strings.Join(items, ",") + `]}`
}

func followersJSON(names ...string) string {
	items := make([]string, 0, len(names))
	for _, name := range names {
		items = append(items, fmt.Sprintf(`{"title": "", "string_list_data": [{"href": "https://www.instagram.com/%s", "value": %q, "timestamp": 1700000000}]}`, name, name))
	}
	return `[` + strings.Join(items, ",") + `]`
}

func exportZip(t *testing.T, files map[string]string) []byte {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range files {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func export(t *testing.T, following, followers []string) []byte {
	t.Helper()

	return exportZip(t, map[string]string{
		archive.FollowingPath:                  followingJSON(following...),
		archive.FollowersPath:                  followersJSON(followers...),
		"personal_information/information.json": `{}`,
	})
}

func newSession(t *testing.T, opts ...Option) (*Session, *baseline.Store) {
	t.Helper()

	store := baseline.NewStore(baseline.NewMemoryBackend())
	return NewSession(store, notify.NewBoard(time.Minute), opts...), store
}

func usernames(list relationship.List) []string {
	return list.Usernames()
}

func TestUploadClassifiesRelationships(t *testing.T) {
	t.Parallel()

	s, _ := newSession(t)

	res, err := s.Upload(context.Background(), "export.zip", export(t, []string{"A", "B"}, []string{"B", "C"}))
	require.NoError(t, err)
	require.NotNil(t, res.Diff)

	assert.Equal(t, []string{"A"}, usernames(res.Diff.NotFollowingBack))
	assert.Equal(t, []string{"C"}, usernames(res.Diff.NotFollowedBack))
	assert.Equal(t, []string{"B"}, usernames(res.Diff.Mutual))
	assert.Equal(t, "https://www.instagram.com/_u/A", res.Diff.NotFollowingBack[0].ProfileURL)
	assert.Equal(t, 3, res.EntryCount)
}

func TestFirstUploadIsSavedAsBaseline(t *testing.T) {
	t.Parallel()

	s, store := newSession(t)
	ctx := context.Background()
	data := export(t, []string{"A", "B"}, []string{"B", "C"})

	res, err := s.Upload(ctx, "export.zip", data)
	require.NoError(t, err)

	assert.True(t, res.AutoSaved)
	assert.Nil(t, res.Changes)
	assert.Equal(t, notify.FirstBaselineSaved, res.Status)

	msg, ok := s.Status()
	assert.True(t, ok)
	assert.Equal(t, notify.FirstBaselineSaved, msg)

	snap, ok := store.Load(ctx)
	require.True(t, ok)
	assert.Equal(t, []string{"B", "C"}, snap.Followers)
	assert.Equal(t, []string{"A", "B"}, snap.Following)
	assert.True(t, snap.Archive.Equal(digest.Of(data)))
	require.NotNil(t, res.Baseline)
	assert.Equal(t, snap.Followers, res.Baseline.Followers)
	assert.Equal(t, snap.CapturedAt.UnixMilli(), res.BaselineTimestamp)
}

func TestUploadDetectsChangesSinceBaseline(t *testing.T) {
	t.Parallel()

	s, store := newSession(t)
	ctx := context.Background()

	require.True(t, store.Save(ctx,
		relationship.List{{Username: "B"}, {Username: "C"}},
		relationship.List{{Username: "A"}, {Username: "B"}},
		digest.Digest{},
	))

	res, err := s.Upload(ctx, "export.zip", export(t, []string{"A"}, []string{"B"}))
	require.NoError(t, err)
	require.NotNil(t, res.Changes)

	assert.Equal(t, []string{"C"}, usernames(res.Changes.NewFollowers))
	assert.Equal(t, []string{"B"}, usernames(res.Changes.YouUnfollowed))
	assert.Empty(t, res.Changes.NewUnfollows)
	assert.Empty(t, res.Changes.NewMutual)
	assert.False(t, res.AutoSaved)
	assert.False(t, res.SameArchive)

	snap, ok := store.Load(ctx)
	require.True(t, ok)
	assert.Equal(t, []string{"B", "C"}, snap.Followers, "comparing must not replace the baseline")
}

func TestResultCarriesBaselineTimestamp(t *testing.T) {
	t.Parallel()

	captured := time.Date(2026, 10, 12, 9, 0, 0, 0, time.UTC)
	backend := baseline.NewMemoryBackend()
	store := baseline.NewStore(backend, baseline.WithClock(func() time.Time { return captured }))
	s := NewSession(store, notify.NewBoard(time.Minute))
	ctx := context.Background()

	require.True(t, store.Save(ctx, relationship.List{{Username: "B"}}, relationship.List{{Username: "A"}}, digest.Digest{}))

	res, err := s.Upload(ctx, "export.zip", export(t, []string{"A"}, []string{"B"}))
	require.NoError(t, err)
	require.NotNil(t, res.Changes)
	assert.Equal(t, captured.UnixMilli(), res.BaselineTimestamp)

	out, err := jsoniter.ConfigCompatibleWithStandardLibrary.Marshal(res)
	require.NoError(t, err)
	assert.Equal(t, captured.UnixMilli(), jsoniter.Get(out, "baselineTimestamp").ToInt64())

	require.NoError(t, backend.Put(ctx, baseline.Key, []byte(`{"followers": ["B"], "following": ["A"]}`)))
	res, err = s.Upload(ctx, "export.zip", export(t, []string{"A"}, []string{"B"}))
	require.NoError(t, err)
	require.NotNil(t, res.Changes)
	assert.Zero(t, res.BaselineTimestamp)

	out, err = jsoniter.ConfigCompatibleWithStandardLibrary.Marshal(res)
	require.NoError(t, err)
	assert.NotContains(t, string(out), "baselineTimestamp")
}

func TestUploadFlagsIdenticalArchive(t *testing.T) {
	t.Parallel()

	s, _ := newSession(t)
	ctx := context.Background()
	data := export(t, []string{"A"}, []string{"A"})

	_, err := s.Upload(ctx, "export.zip", data)
	require.NoError(t, err)

	res, err := s.Upload(ctx, "export.zip", data)
	require.NoError(t, err)
	assert.True(t, res.SameArchive)
	require.NotNil(t, res.Changes)
	assert.True(t, res.Changes.Empty())
}

func TestClearedBaselineIsTreatedAsFirstUpload(t *testing.T) {
	t.Parallel()

	s, _ := newSession(t)
	ctx := context.Background()

	_, err := s.Upload(ctx, "export.zip", export(t, []string{"A"}, []string{"B"}))
	require.NoError(t, err)

	require.NoError(t, s.ClearBaseline(ctx))
	msg, _ := s.Status()
	assert.Equal(t, notify.BaselineCleared, msg)

	_, ok := s.Baseline(ctx)
	assert.False(t, ok)

	res, err := s.Upload(ctx, "export.zip", export(t, []string{"X"}, []string{"Y"}))
	require.NoError(t, err)
	assert.True(t, res.AutoSaved)
	assert.Nil(t, res.Changes)
}

func TestSaveBaselineUsesLastUpload(t *testing.T) {
	t.Parallel()

	s, _ := newSession(t)
	ctx := context.Background()

	_, err := s.SaveBaseline(ctx)
	assert.ErrorIs(t, err, ErrNoUpload)

	_, err = s.Upload(ctx, "first.zip", export(t, []string{"A"}, []string{"B"}))
	require.NoError(t, err)
	_, err = s.Upload(ctx, "second.zip", export(t, []string{"A", "D"}, []string{"D"}))
	require.NoError(t, err)

	snap, err := s.SaveBaseline(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"D"}, snap.Followers)
	assert.Equal(t, []string{"A", "D"}, snap.Following)

	msg, _ := s.Status()
	assert.Equal(t, notify.BaselineSaved, msg)
}

type brokenBackend struct {
	*baseline.MemoryBackend
}

func (brokenBackend) Put(context.Context, string, []byte) error {
	return errors.New("disk full")
}

func TestStorageFailureDegradesToStatus(t *testing.T) {
	t.Parallel()

	store := baseline.NewStore(brokenBackend{baseline.NewMemoryBackend()})
	s := NewSession(store, nil)
	ctx := context.Background()

	res, err := s.Upload(ctx, "export.zip", export(t, []string{"A"}, []string{"B"}))
	require.NoError(t, err)
	assert.False(t, res.AutoSaved)
	assert.NotNil(t, res.Diff)
	assert.Equal(t, notify.BaselineSaveFailed, res.Status)

	_, err = s.SaveBaseline(ctx)
	assert.ErrorIs(t, err, ErrStorageWriteFailure)
	assert.Equal(t, "Failed to save baseline", Message(err))
}

func TestAutoBaselineCanBeDisabled(t *testing.T) {
	t.Parallel()

	s, store := newSession(t, WithAutoBaseline(false))
	ctx := context.Background()

	res, err := s.Upload(ctx, "export.zip", export(t, []string{"A"}, []string{"B"}))
	require.NoError(t, err)
	assert.False(t, res.AutoSaved)

	_, ok := store.Load(ctx)
	assert.False(t, ok)
}

func TestUploadErrors(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		file string
		data func(t *testing.T) []byte
		want error
	}{
		{
			name: "wrong extension",
			file: "export.tar.gz",
			data: func(t *testing.T) []byte { return export(t, []string{"A"}, []string{"A"}) },
			want: ErrInvalidFileType,
		},
		{
			name: "not a zip",
			file: "export.zip",
			data: func(*testing.T) []byte { return []byte("definitely not a zip archive") },
			want: ErrInvalidArchive,
		},
		{
			name: "empty archive",
			file: "export.zip",
			data: func(t *testing.T) []byte { return exportZip(t, nil) },
			want: ErrEmptyArchive,
		},
		{
			name: "no expected files",
			file: "Export.ZIP",
			data: func(t *testing.T) []byte {
				return exportZip(t, map[string]string{"media/posts.json": `[]`})
			},
			want: ErrMissingExpectedFiles,
		},
		{
			name: "files in the wrong place",
			file: "export.zip",
			data: func(t *testing.T) []byte {
				return exportZip(t, map[string]string{
					"instagram/" + archive.FollowingPath: followingJSON("A"),
					"instagram/" + archive.FollowersPath: followersJSON("A"),
				})
			},
			want: ErrMissingExpectedFiles,
		},
		{
			name: "both exports empty",
			file: "export.zip",
			data: func(t *testing.T) []byte { return export(t, nil, nil) },
			want: ErrMissingExpectedFiles,
		},
		{
			name: "malformed json",
			file: "export.zip",
			data: func(t *testing.T) []byte {
				return exportZip(t, map[string]string{
					archive.FollowingPath: `{"relationships_following": [`,
					archive.FollowersPath: followersJSON("A"),
				})
			},
			want: ErrInvalidArchive,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			s, store := newSession(t)
			ctx := context.Background()

			res, err := s.Upload(ctx, tc.file, tc.data(t))
			require.ErrorIs(t, err, tc.want)
			assert.Nil(t, res.Diff)
			assert.NotEmpty(t, Message(err))

			_, ok := store.Load(ctx)
			assert.False(t, ok, "failed uploads must not save a baseline")
		})
	}
}

func TestUploadWithOneExportSkipsDiff(t *testing.T) {
	t.Parallel()

	s, store := newSession(t)
	ctx := context.Background()

	data := exportZip(t, map[string]string{
		archive.FollowingPath: followingJSON("A", "B"),
	})

	res, err := s.Upload(ctx, "export.zip", data)
	require.NoError(t, err)
	assert.Nil(t, res.Diff)
	assert.Nil(t, res.Changes)
	assert.Len(t, res.Following, 2)
	assert.Empty(t, res.Followers)

	_, ok := store.Load(ctx)
	assert.False(t, ok)
}

func TestUploadToleratesScalarExport(t *testing.T) {
	t.Parallel()

	s, _ := newSession(t)
	data := exportZip(t, map[string]string{
		archive.FollowingPath: followingJSON("A", "B"),
		archive.FollowersPath: `12`,
	})

	res, err := s.Upload(context.Background(), "export.zip", data)
	require.NoError(t, err)
	assert.Nil(t, res.Diff)
	assert.Empty(t, res.Followers)
	assert.Equal(t, []string{"A", "B"}, usernames(res.Following))
}

func TestValidateSizeBoundary(t *testing.T) {
	t.Parallel()

	assert.NoError(t, Validate("export.zip", MaxArchiveSize))

	err := Validate("export.zip", MaxArchiveSize+1)
	require.ErrorIs(t, err, ErrFileTooLarge)
	assert.Equal(t, "File is too large (1.00MB). Maximum size is 1MB", Message(err))

	err = Validate("export.zip", 3*MaxArchiveSize+MaxArchiveSize/2)
	assert.Equal(t, "File is too large (3.50MB). Maximum size is 1MB", Message(err))
}

func TestUploadRejectsOversizedArchiveBeforeParsing(t *testing.T) {
	t.Parallel()

	s, _ := newSession(t)
	ctx := context.Background()

	_, err := s.Upload(ctx, "export.zip", make([]byte, MaxArchiveSize+1))
	assert.ErrorIs(t, err, ErrFileTooLarge)

	_, err = s.Upload(ctx, "export.zip", make([]byte, MaxArchiveSize))
	assert.ErrorIs(t, err, ErrInvalidArchive, "an archive of exactly the limit passes the size check")
}

func TestUploadRejectsConcurrentUpload(t *testing.T) {
	t.Parallel()

	s, _ := newSession(t)
	s.busy.Store(true)

	_, err := s.Upload(context.Background(), "export.zip", export(t, []string{"A"}, []string{"A"}))
	assert.ErrorIs(t, err, ErrBusy)

	s.busy.Store(false)
	_, err = s.Upload(context.Background(), "export.zip", export(t, []string{"A"}, []string{"A"}))
	assert.NoError(t, err)
}

func TestMessage(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "", Message(nil))
	assert.Equal(t, "Please upload a ZIP file", Message(Validate("export.rar", 10)))
	assert.Equal(t, "The ZIP file is empty", Message(fmt.Errorf("open x.zip: %w", ErrEmptyArchive)))
	assert.Equal(t, "boom", Message(errors.New("boom")))
}
