// Package viewstate keeps the client-side cached views consistent after a
// write, without a full refetch. It is a pure reducer over value state: no
// I/O, no shared mutation, so every transition is testable on its own.
package viewstate

import "github.com/anveshk/nestmark/internal/types"

// State holds every derived, ephemeral view the dashboard renders from:
// the currently viewed folder's bookmark list, the fixed-capacity recent
// list, and folder summaries carrying denormalized bookmark counts. The
// server remains the system of record; this is never persisted.
type State struct {
	CurrentFolder types.FolderId
	Bookmarks     []types.Bookmark
	Recent        []types.RecentBookmark
	Folders       []types.Folder
	Subfolders    []types.Folder
}

// ApplyCreate folds a freshly stored bookmark into the state: it is appended
// to the visible list only when the current folder matches, always pushed to
// the front of the recent list (deduplicated by id, capped at RecentLimit),
// and the owning folder's count is incremented in both folder views.
func ApplyCreate(s State, b types.Bookmark) State {
	// Idempotent by id: a replayed create must not duplicate entries or bump
	// the counter a second time. The recent list sees every create, so it is
	// the signal for whether this id was already applied.
	seen := containsRecent(s.Recent, b.Id)

	if s.CurrentFolder == b.FolderId && !containsBookmark(s.Bookmarks, b.Id) {
		s.Bookmarks = append(append([]types.Bookmark(nil), s.Bookmarks...), b)
	}

	recent := make([]types.RecentBookmark, 0, types.RecentLimit)
	recent = append(recent, toRecent(b))
	for _, r := range s.Recent {
		if r.Id == b.Id {
			continue
		}
		recent = append(recent, r)
		if len(recent) == types.RecentLimit {
			break
		}
	}
	s.Recent = recent

	if !seen {
		s.Folders = adjustCount(s.Folders, b.FolderId, 1)
		s.Subfolders = adjustCount(s.Subfolders, b.FolderId, 1)
	}
	return s
}

// ApplyDelete removes the bookmark from the visible and recent lists and
// decrements the owning folder's count, saturating at zero. Applying it twice
// for the same id is a no-op the second time.
func ApplyDelete(s State, id types.BookmarkId, folderId types.FolderId) State {
	present := containsBookmark(s.Bookmarks, id) || containsRecent(s.Recent, id)

	bookmarks := make([]types.Bookmark, 0, len(s.Bookmarks))
	for _, b := range s.Bookmarks {
		if b.Id != id {
			bookmarks = append(bookmarks, b)
		}
	}
	s.Bookmarks = bookmarks

	recent := make([]types.RecentBookmark, 0, len(s.Recent))
	for _, r := range s.Recent {
		if r.Id != id {
			recent = append(recent, r)
		}
	}
	s.Recent = recent

	if present {
		s.Folders = adjustCount(s.Folders, folderId, -1)
		s.Subfolders = adjustCount(s.Subfolders, folderId, -1)
	}
	return s
}

// ApplyUpdate replaces the matching entry in the visible list in place.
// Counters are untouched: moving a bookmark between folders is not supported
// through the update path.
func ApplyUpdate(s State, b types.Bookmark) State {
	bookmarks := make([]types.Bookmark, len(s.Bookmarks))
	copy(bookmarks, s.Bookmarks)
	for i := range bookmarks {
		if bookmarks[i].Id == b.Id {
			bookmarks[i] = b
		}
	}
	s.Bookmarks = bookmarks

	recent := make([]types.RecentBookmark, len(s.Recent))
	copy(recent, s.Recent)
	for i := range recent {
		if recent[i].Id == b.Id {
			recent[i] = toRecent(b)
		}
	}
	s.Recent = recent
	return s
}

// adjustCount applies a saturating delta to the matching folder's count.
func adjustCount(folders []types.Folder, id types.FolderId, delta int) []types.Folder {
	if folders == nil {
		return nil
	}
	out := make([]types.Folder, len(folders))
	copy(out, folders)
	for i := range out {
		if out[i].Id != id {
			continue
		}
		count := out[i].Bookmarks + delta
		if count < 0 {
			count = 0
		}
		out[i].Bookmarks = count
	}
	return out
}

func toRecent(b types.Bookmark) types.RecentBookmark {
	return types.RecentBookmark{
		Id:       b.Id,
		Type:     b.Type,
		Title:    b.Title,
		Favicon:  b.Favicon,
		Url:      b.Url,
		Notes:    b.Notes,
		FolderId: b.FolderId,
	}
}

func containsBookmark(bookmarks []types.Bookmark, id types.BookmarkId) bool {
	for _, b := range bookmarks {
		if b.Id == id {
			return true
		}
	}
	return false
}

func containsRecent(recent []types.RecentBookmark, id types.BookmarkId) bool {
	for _, r := range recent {
		if r.Id == id {
			return true
		}
	}
	return false
}
