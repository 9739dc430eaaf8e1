// Package bridge relays the extension's typed request/response messages
// between its isolated surfaces and the backend. The vocabulary is closed:
// every request type maps to exactly one response shape, and unknown types
// are logged and dropped without a response, so callers run their own
// timeout.
package bridge

import (
	"context"
	"encoding/json"

	"github.com/anveshk/nestmark/internal/types"
	"go.uber.org/zap"
)

type MessageType string

const (
	FetchFolders  MessageType = "FETCH_FOLDERS"
	GetCurrentTab MessageType = "GET_CURRENT_TAB"
	AddBookmark   MessageType = "ADD_BOOKMARK"
	GetSession    MessageType = "GET_SESSION"
)

// Message is the envelope every surface sends. Payload is only set for
// ADD_BOOKMARK.
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type FoldersResponse struct {
	Folders []types.Folder `json:"folders"`
}

type TabInfo struct {
	Url     string `json:"url"`
	Title   string `json:"title"`
	Favicon string `json:"favIconUrl,omitempty"`
}

type TabResponse struct {
	Tab *TabInfo `json:"tab"`
}

type AddBookmarkResponse struct {
	Success    bool             `json:"success"`
	BookmarkId types.BookmarkId `json:"bookmarkId,omitempty"`
}

type SessionResponse struct {
	User *types.User `json:"user"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

// Collaborators the handler dispatches to. Each maps to one message type.
type FolderLister interface {
	Folders(ctx context.Context) ([]types.Folder, error)
}

type BookmarkCreator interface {
	CreateBookmark(ctx context.Context, req *types.CreateBookmarkRequest) (*types.Bookmark, error)
}

type SessionGetter interface {
	Session(ctx context.Context) (*types.User, error)
}

type TabProvider interface {
	CurrentTab(ctx context.Context) *TabInfo
}

type Handler struct {
	Folders   FolderLister
	Bookmarks BookmarkCreator
	Sessions  SessionGetter
	Tabs      TabProvider
	Logger    *zap.SugaredLogger
}

// Handle dispatches one message. respond is invoked at most once, with the
// response shape fixed by the message type. The return value reports whether
// a response will be delivered; false means the type was unknown and the
// message was dropped.
func (h *Handler) Handle(ctx context.Context, msg Message, respond func(any)) bool {
	switch msg.Type {
	case FetchFolders:
		folders, err := h.Folders.Folders(ctx)
		if err != nil {
			h.Logger.Errorw("bridge: fetch folders", "error", err)
			respond(ErrorResponse{Error: "Failed to fetch folders."})
			return true
		}
		respond(FoldersResponse{Folders: folders})
		return true

	case GetCurrentTab:
		// Never fails: no provider just means no tab.
		if h.Tabs == nil {
			respond(TabResponse{Tab: nil})
			return true
		}
		respond(TabResponse{Tab: h.Tabs.CurrentTab(ctx)})
		return true

	case AddBookmark:
		var req types.CreateBookmarkRequest
		if err := json.Unmarshal(msg.Payload, &req); err != nil {
			h.Logger.Errorw("bridge: decode add-bookmark payload", "error", err)
			respond(ErrorResponse{Error: "Failed to add bookmark."})
			return true
		}
		bookmark, err := h.Bookmarks.CreateBookmark(ctx, &req)
		if err != nil {
			h.Logger.Errorw("bridge: add bookmark", "error", err)
			respond(ErrorResponse{Error: "Failed to add bookmark."})
			return true
		}
		respond(AddBookmarkResponse{Success: true, BookmarkId: bookmark.Id})
		return true

	case GetSession:
		// Any failure is indistinguishable from "no active session": the
		// login-gated UI treats both as "show the login prompt".
		user, err := h.Sessions.Session(ctx)
		if err != nil {
			h.Logger.Debugw("bridge: get session", "error", err)
			respond(SessionResponse{User: nil})
			return true
		}
		respond(SessionResponse{User: user})
		return true

	default:
		h.Logger.Warnw("bridge: unhandled message", "type", msg.Type)
		return false
	}
}
