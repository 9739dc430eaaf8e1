package bridge

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/anveshk/nestmark/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubFolders struct {
	folders []types.Folder
	err     error
}

func (s stubFolders) Folders(ctx context.Context) ([]types.Folder, error) {
	return s.folders, s.err
}

type stubBookmarks struct {
	bookmark *types.Bookmark
	err      error
	got      *types.CreateBookmarkRequest
}

func (s *stubBookmarks) CreateBookmark(ctx context.Context, req *types.CreateBookmarkRequest) (*types.Bookmark, error) {
	s.got = req
	return s.bookmark, s.err
}

type stubSessions struct {
	user *types.User
	err  error
}

func (s stubSessions) Session(ctx context.Context) (*types.User, error) {
	return s.user, s.err
}

type stubTabs struct {
	tab *TabInfo
}

func (s stubTabs) CurrentTab(ctx context.Context) *TabInfo {
	return s.tab
}

type capture struct {
	responses []any
}

func (c *capture) respond(resp any) {
	c.responses = append(c.responses, resp)
}

func (c *capture) single(t *testing.T) any {
	t.Helper()
	require.Len(t, c.responses, 1, "respond must be called exactly once")
	return c.responses[0]
}

func newHandler() *Handler {
	return &Handler{
		Folders:   stubFolders{},
		Bookmarks: &stubBookmarks{},
		Sessions:  stubSessions{},
		Logger:    zap.NewNop().Sugar(),
	}
}

func TestFetchFolders(t *testing.T) {
	h := newHandler()
	h.Folders = stubFolders{folders: []types.Folder{{Id: "f1", Name: "Reading"}}}

	var c capture
	handled := h.Handle(context.Background(), Message{Type: FetchFolders}, c.respond)
	require.True(t, handled)

	resp, ok := c.single(t).(FoldersResponse)
	require.True(t, ok)
	require.Len(t, resp.Folders, 1)
	assert.Equal(t, types.FolderId("f1"), resp.Folders[0].Id)
}

func TestFetchFoldersFailure(t *testing.T) {
	h := newHandler()
	h.Folders = stubFolders{err: errors.New("boom")}

	var c capture
	handled := h.Handle(context.Background(), Message{Type: FetchFolders}, c.respond)
	require.True(t, handled)

	resp, ok := c.single(t).(ErrorResponse)
	require.True(t, ok)
	assert.NotEmpty(t, resp.Error)
}

func TestGetCurrentTab(t *testing.T) {
	h := newHandler()
	h.Tabs = stubTabs{tab: &TabInfo{Url: "https://example.com", Title: "Example"}}

	var c capture
	require.True(t, h.Handle(context.Background(), Message{Type: GetCurrentTab}, c.respond))

	resp, ok := c.single(t).(TabResponse)
	require.True(t, ok)
	require.NotNil(t, resp.Tab)
	assert.Equal(t, "https://example.com", resp.Tab.Url)
}

func TestGetCurrentTabWithoutProvider(t *testing.T) {
	h := newHandler()

	var c capture
	require.True(t, h.Handle(context.Background(), Message{Type: GetCurrentTab}, c.respond))

	resp, ok := c.single(t).(TabResponse)
	require.True(t, ok)
	assert.Nil(t, resp.Tab)
}

func TestAddBookmark(t *testing.T) {
	h := newHandler()
	bookmarks := &stubBookmarks{bookmark: &types.Bookmark{Id: "b1"}}
	h.Bookmarks = bookmarks

	payload, err := json.Marshal(types.CreateBookmarkRequest{
		Type:     types.BookmarkTypeURL,
		Url:      "https://example.com",
		FolderId: "f1",
	})
	require.NoError(t, err)

	var c capture
	require.True(t, h.Handle(context.Background(), Message{Type: AddBookmark, Payload: payload}, c.respond))

	resp, ok := c.single(t).(AddBookmarkResponse)
	require.True(t, ok)
	assert.True(t, resp.Success)
	assert.Equal(t, types.BookmarkId("b1"), resp.BookmarkId)
	require.NotNil(t, bookmarks.got)
	assert.Equal(t, "https://example.com", bookmarks.got.Url)
}

func TestAddBookmarkBadPayload(t *testing.T) {
	h := newHandler()

	var c capture
	require.True(t, h.Handle(context.Background(), Message{Type: AddBookmark, Payload: []byte("{")}, c.respond))

	_, ok := c.single(t).(ErrorResponse)
	assert.True(t, ok)
}

func TestAddBookmarkFailure(t *testing.T) {
	h := newHandler()
	h.Bookmarks = &stubBookmarks{err: errors.New("boom")}

	var c capture
	require.True(t, h.Handle(context.Background(), Message{Type: AddBookmark, Payload: []byte("{}")}, c.respond))

	resp, ok := c.single(t).(ErrorResponse)
	require.True(t, ok)
	assert.NotEmpty(t, resp.Error)
}

func TestGetSession(t *testing.T) {
	h := newHandler()
	h.Sessions = stubSessions{user: &types.User{Id: "u1", Email: "jane@example.com"}}

	var c capture
	require.True(t, h.Handle(context.Background(), Message{Type: GetSession}, c.respond))

	resp, ok := c.single(t).(SessionResponse)
	require.True(t, ok)
	require.NotNil(t, resp.User)
	assert.Equal(t, types.UserId("u1"), resp.User.Id)
}

func TestGetSessionFailureMeansLoggedOut(t *testing.T) {
	h := newHandler()
	h.Sessions = stubSessions{err: errors.New("session store down")}

	var c capture
	require.True(t, h.Handle(context.Background(), Message{Type: GetSession}, c.respond))

	resp, ok := c.single(t).(SessionResponse)
	require.True(t, ok)
	assert.Nil(t, resp.User)
}

func TestUnknownMessageGetsNoResponse(t *testing.T) {
	h := newHandler()

	var c capture
	handled := h.Handle(context.Background(), Message{Type: "OPEN_SETTINGS"}, c.respond)
	assert.False(t, handled)
	assert.Empty(t, c.responses)
}
