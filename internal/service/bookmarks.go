package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/anveshk/nestmark/internal/errors"
	"github.com/anveshk/nestmark/internal/models"
	"github.com/anveshk/nestmark/internal/preview"
	"github.com/anveshk/nestmark/internal/types"
	"github.com/anveshk/nestmark/internal/validations"
)

const (
	fallbackTitle     = "Untitled"
	fallbackNoteTitle = "Untitled Note"
)

// BookmarkStore is the slice of the bookmark repo the writer needs.
type BookmarkStore interface {
	Create(ctx context.Context, bookmark *types.Bookmark, tagNames []string) (*types.Bookmark, error)
	GetById(ctx context.Context, userId types.UserId, id types.BookmarkId) (*types.Bookmark, error)
	Update(ctx context.Context, bookmark *types.Bookmark) (*types.Bookmark, error)
	Delete(ctx context.Context, userId types.UserId, id types.BookmarkId) error
}

type FolderStore interface {
	GetById(ctx context.Context, userId types.UserId, id types.FolderId) (*types.Folder, error)
}

type MetadataResolver interface {
	Resolve(ctx context.Context, link string, userImage string) preview.Metadata
}

// BookmarkWriter runs the creation pipeline: validate, enrich, persist.
// Validation failures block the write; enrichment failures never do.
type BookmarkWriter struct {
	Store    BookmarkStore
	Folders  FolderStore
	Resolver MetadataResolver
}

func (bw *BookmarkWriter) Create(ctx context.Context, user *models.User, req *types.CreateBookmarkRequest) (*types.Bookmark, error) {
	if verr := validations.ValidateCreateBookmark(req); verr != nil {
		return nil, verr
	}

	// The folder must exist and belong to the caller before anything else
	// happens.
	if _, err := bw.Folders.GetById(ctx, user.ID, req.FolderId); err != nil {
		if errors.Is(err, errors.ErrNotFound) {
			return nil, errors.ErrNotFound
		}
		return nil, fmt.Errorf("check folder: %w", err)
	}

	bookmark := &types.Bookmark{
		Type:     req.Type,
		FolderId: req.FolderId,
		UserId:   user.ID,
	}

	title := validations.CleanUpText(strings.TrimSpace(req.Title))

	switch req.Type {
	case types.BookmarkTypeURL:
		url := req.Url
		bookmark.Url = &url

		// A recognized video link yields a deterministic thumbnail with no
		// network call; it outranks whatever the resolver would find.
		userImage := req.PreviewImage
		if thumbnail, ok := preview.YouTubeThumbnail(url); ok {
			userImage = thumbnail
		}

		meta := bw.Resolver.Resolve(ctx, url, userImage)
		if title == "" {
			title = meta.Title
		}
		if title == "" {
			title = fallbackTitle
		}
		if meta.PreviewImage != "" {
			bookmark.PreviewImage = &meta.PreviewImage
		}
		if meta.Favicon != "" {
			bookmark.Favicon = &meta.Favicon
		}

	case types.BookmarkTypeNotes:
		notes := validations.CleanUpText(req.Notes)
		bookmark.Notes = &notes
		if title == "" {
			title = fallbackNoteTitle
		}
	}

	bookmark.Title = title

	created, err := bw.Store.Create(ctx, bookmark, trimTags(req.Tags))
	if err != nil {
		return nil, fmt.Errorf("persist bookmark: %w", err)
	}
	return created, nil
}

func (bw *BookmarkWriter) Update(ctx context.Context, user *models.User, req *types.UpdateBookmarkRequest) (*types.Bookmark, error) {
	if verr := validations.ValidateUpdateBookmark(req); verr != nil {
		return nil, verr
	}

	existing, err := bw.Store.GetById(ctx, user.ID, req.Id)
	if err != nil {
		return nil, err
	}

	if req.Title != "" {
		existing.Title = validations.CleanUpText(strings.TrimSpace(req.Title))
	}
	switch existing.Type {
	case types.BookmarkTypeURL:
		if req.Url != "" {
			url := req.Url
			existing.Url = &url
		}
	case types.BookmarkTypeNotes:
		if req.Notes != "" {
			notes := validations.CleanUpText(req.Notes)
			existing.Notes = &notes
		}
	}

	updated, err := bw.Store.Update(ctx, existing)
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (bw *BookmarkWriter) Delete(ctx context.Context, user *models.User, id types.BookmarkId) error {
	if id == "" {
		var ve errors.ValidationError
		ve.Add("id", "bookmark id is required")
		return &ve
	}
	return bw.Store.Delete(ctx, user.ID, id)
}

func trimTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		out = append(out, strings.TrimSpace(tag))
	}
	return out
}
