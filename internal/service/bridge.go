package service

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/anveshk/nestmark/internal/auth/context/loggercontext"
	"github.com/anveshk/nestmark/internal/auth/context/usercontext"
	"github.com/anveshk/nestmark/internal/bridge"
	"github.com/anveshk/nestmark/internal/errors"
	"github.com/anveshk/nestmark/internal/models"
	"github.com/anveshk/nestmark/internal/types"
	"go.uber.org/zap"
)

// Bridge exposes the extension message vocabulary over HTTP. The background
// surface posts an envelope and relays the response to the popup or content
// script that asked.
type Bridge struct {
	Handler *bridge.Handler
}

func NewBridge(writer *BookmarkWriter, folderRepo *models.FolderRepo, logger *zap.SugaredLogger) *Bridge {
	return &Bridge{
		Handler: &bridge.Handler{
			Folders:   bridgeFolders{repo: folderRepo},
			Bookmarks: bridgeBookmarks{writer: writer},
			Sessions:  bridgeSessions{},
			Logger:    logger,
		},
	}
}

func (b *Bridge) MessageAPI(w http.ResponseWriter, r *http.Request) {
	logger := loggercontext.Logger(r.Context())

	var msg bridge.Message
	if err := json.NewDecoder(r.Body).Decode(&msg); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, ErrorResponse{
			Code:    "INVALID_REQUEST",
			Message: "Invalid message envelope",
		})
		return
	}

	handled := b.Handler.Handle(r.Context(), msg, func(resp any) {
		if err := writeResponse(w, http.StatusOK, resp); err != nil {
			logger.Errorw("write bridge response", "error", err)
		}
	})
	if !handled {
		// Unknown types get no response body; callers time out on their own.
		w.WriteHeader(http.StatusNoContent)
	}
}

type bridgeFolders struct {
	repo *models.FolderRepo
}

func (f bridgeFolders) Folders(ctx context.Context) ([]types.Folder, error) {
	user := usercontext.User(ctx)
	if user == nil {
		return nil, errors.ErrUnauthorized
	}
	return f.repo.GetAll(ctx, user.ID)
}

type bridgeBookmarks struct {
	writer *BookmarkWriter
}

func (b bridgeBookmarks) CreateBookmark(ctx context.Context, req *types.CreateBookmarkRequest) (*types.Bookmark, error) {
	user := usercontext.User(ctx)
	if user == nil {
		return nil, errors.ErrUnauthorized
	}
	return b.writer.Create(ctx, user, req)
}

type bridgeSessions struct{}

func (bridgeSessions) Session(ctx context.Context) (*types.User, error) {
	user := usercontext.User(ctx)
	if user == nil {
		return nil, nil
	}
	return user.AsAPIUser(), nil
}
