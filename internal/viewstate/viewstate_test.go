package viewstate

import (
	"testing"

	"github.com/anveshk/nestmark/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeBookmark(id, folderId string) types.Bookmark {
	return types.Bookmark{
		Id:       types.BookmarkId(id),
		Type:     types.BookmarkTypeURL,
		Title:    "Bookmark " + id,
		FolderId: types.FolderId(folderId),
	}
}

func makeState() State {
	return State{
		CurrentFolder: "f1",
		Bookmarks: []types.Bookmark{
			makeBookmark("b1", "f1"),
			makeBookmark("b2", "f1"),
		},
		Recent: []types.RecentBookmark{
			{Id: "b2", FolderId: "f1"},
			{Id: "b1", FolderId: "f1"},
		},
		Folders: []types.Folder{
			{Id: "f1", Name: "Reading", Bookmarks: 2},
			{Id: "f2", Name: "Work", Bookmarks: 0},
		},
	}
}

func TestApplyCreateInCurrentFolder(t *testing.T) {
	s := ApplyCreate(makeState(), makeBookmark("b3", "f1"))

	require.Len(t, s.Bookmarks, 3)
	assert.Equal(t, types.BookmarkId("b3"), s.Bookmarks[2].Id)
	require.NotEmpty(t, s.Recent)
	assert.Equal(t, types.BookmarkId("b3"), s.Recent[0].Id)
	assert.Equal(t, 3, s.Folders[0].Bookmarks)
	assert.Equal(t, 0, s.Folders[1].Bookmarks)
}

func TestApplyCreateInOtherFolder(t *testing.T) {
	s := ApplyCreate(makeState(), makeBookmark("b3", "f2"))

	// Not visible in the current folder, but still recent and counted.
	assert.Len(t, s.Bookmarks, 2)
	assert.Equal(t, types.BookmarkId("b3"), s.Recent[0].Id)
	assert.Equal(t, 2, s.Folders[0].Bookmarks)
	assert.Equal(t, 1, s.Folders[1].Bookmarks)
}

func TestApplyCreateIsIdempotent(t *testing.T) {
	b := makeBookmark("b3", "f1")
	s := ApplyCreate(makeState(), b)
	s = ApplyCreate(s, b)

	assert.Len(t, s.Bookmarks, 3)
	assert.Len(t, s.Recent, 3)
	assert.Equal(t, types.BookmarkId("b3"), s.Recent[0].Id)
	assert.Equal(t, 3, s.Folders[0].Bookmarks)
}

func TestApplyCreateRecentDedupAndCap(t *testing.T) {
	s := State{CurrentFolder: "f1"}
	for _, id := range []string{"a", "b", "c", "d", "e", "f"} {
		s = ApplyCreate(s, makeBookmark(id, "f1"))
	}
	require.Len(t, s.Recent, types.RecentLimit)
	assert.Equal(t, types.BookmarkId("f"), s.Recent[0].Id)
	assert.Equal(t, types.BookmarkId("b"), s.Recent[types.RecentLimit-1].Id)

	// Re-creating an old entry moves it to the front without growing the list.
	s = ApplyCreate(s, makeBookmark("c", "f1"))
	require.Len(t, s.Recent, types.RecentLimit)
	assert.Equal(t, types.BookmarkId("c"), s.Recent[0].Id)
	for _, r := range s.Recent[1:] {
		assert.NotEqual(t, types.BookmarkId("c"), r.Id)
	}
}

func TestApplyDelete(t *testing.T) {
	s := ApplyDelete(makeState(), "b1", "f1")

	require.Len(t, s.Bookmarks, 1)
	assert.Equal(t, types.BookmarkId("b2"), s.Bookmarks[0].Id)
	require.Len(t, s.Recent, 1)
	assert.Equal(t, types.BookmarkId("b2"), s.Recent[0].Id)
	assert.Equal(t, 1, s.Folders[0].Bookmarks)
}

func TestApplyDeleteTwiceDecrementsOnce(t *testing.T) {
	s := ApplyDelete(makeState(), "b1", "f1")
	s = ApplyDelete(s, "b1", "f1")

	assert.Len(t, s.Bookmarks, 1)
	assert.Equal(t, 1, s.Folders[0].Bookmarks)
}

func TestApplyDeleteCountSaturatesAtZero(t *testing.T) {
	s := State{
		Bookmarks: []types.Bookmark{makeBookmark("b1", "f1")},
		Folders:   []types.Folder{{Id: "f1", Bookmarks: 0}},
	}
	s = ApplyDelete(s, "b1", "f1")
	assert.Equal(t, 0, s.Folders[0].Bookmarks)
}

func TestApplyUpdateReplacesEverywhere(t *testing.T) {
	updated := makeBookmark("b1", "f1")
	updated.Title = "Renamed"

	s := ApplyUpdate(makeState(), updated)

	assert.Equal(t, "Renamed", s.Bookmarks[0].Title)
	assert.Equal(t, "Renamed", s.Recent[1].Title)
	// Counters are untouched on update.
	assert.Equal(t, 2, s.Folders[0].Bookmarks)
}

func TestApplyUpdateUnknownIdIsNoop(t *testing.T) {
	before := makeState()
	s := ApplyUpdate(before, makeBookmark("missing", "f1"))
	assert.Equal(t, before.Bookmarks, s.Bookmarks)
	assert.Equal(t, before.Recent, s.Recent)
}

func TestApplyCreateCountsSubfoldersToo(t *testing.T) {
	s := State{
		CurrentFolder: "parent",
		Subfolders:    []types.Folder{{Id: "child", Bookmarks: 1}},
	}
	s = ApplyCreate(s, makeBookmark("b1", "child"))
	assert.Equal(t, 2, s.Subfolders[0].Bookmarks)
}

func TestReducersDoNotMutateInput(t *testing.T) {
	before := makeState()
	_ = ApplyCreate(before, makeBookmark("b9", "f1"))
	_ = ApplyDelete(before, "b1", "f1")

	assert.Len(t, before.Bookmarks, 2)
	assert.Len(t, before.Recent, 2)
	assert.Equal(t, 2, before.Folders[0].Bookmarks)
}
