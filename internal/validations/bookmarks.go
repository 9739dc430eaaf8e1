package validations

import (
	"fmt"
	"strings"

	"github.com/anveshk/nestmark/internal/errors"
	"github.com/anveshk/nestmark/internal/types"
	"github.com/google/uuid"
)

// ValidateCreateBookmark checks a creation payload against exactly one of the
// two variant schemas. It reports every failed field and performs no side
// effects; a non-nil result blocks the write entirely.
func ValidateCreateBookmark(req *types.CreateBookmarkRequest) *errors.ValidationError {
	var ve errors.ValidationError

	switch req.Type {
	case types.BookmarkTypeURL:
		if !IsURLValid(req.Url) {
			ve.Add("url", "must be a valid http or https URL")
		}
		if req.PreviewImage != "" && !IsURLValid(req.PreviewImage) {
			ve.Add("previewImage", "must be a valid http or https URL")
		}
	case types.BookmarkTypeNotes:
		notes := strings.TrimSpace(req.Notes)
		if notes == "" {
			ve.Add("notes", "notes are required")
		}
		if len(req.Notes) > types.MaxNotesLength {
			ve.Add("notes", fmt.Sprintf("notes cannot exceed %d characters", types.MaxNotesLength))
		}
	default:
		ve.Add("type", `type must be "url" or "notes"`)
		return ve.OrNil()
	}

	validateCommonFields(&ve, req.Title, req.FolderId, req.Tags)
	return ve.OrNil()
}

func ValidateUpdateBookmark(req *types.UpdateBookmarkRequest) *errors.ValidationError {
	var ve errors.ValidationError

	if req.Id == "" {
		ve.Add("id", "bookmark id is required")
	} else if _, err := uuid.Parse(string(req.Id)); err != nil {
		ve.Add("id", "bookmark id must be a valid identifier")
	}
	if req.Url != "" && !IsURLValid(req.Url) {
		ve.Add("url", "must be a valid http or https URL")
	}
	if len(req.Notes) > types.MaxNotesLength {
		ve.Add("notes", fmt.Sprintf("notes cannot exceed %d characters", types.MaxNotesLength))
	}

	validateCommonFields(&ve, req.Title, req.FolderId, req.Tags)
	return ve.OrNil()
}

func ValidateCreateFolder(req *types.CreateFolderRequest) *errors.ValidationError {
	var ve errors.ValidationError

	name := strings.TrimSpace(req.Name)
	if name == "" {
		ve.Add("name", "folder name is required")
	}
	if len(name) > 100 {
		ve.Add("name", "folder name cannot exceed 100 characters")
	}
	if req.ParentId != nil {
		if _, err := uuid.Parse(string(*req.ParentId)); err != nil {
			ve.Add("parentId", "parent folder id must be a valid identifier")
		}
	}
	return ve.OrNil()
}

func validateCommonFields(ve *errors.ValidationError, title string, folderId types.FolderId, tags []string) {
	if len(title) > types.MaxTitleLength {
		ve.Add("title", fmt.Sprintf("title cannot exceed %d characters", types.MaxTitleLength))
	}
	if folderId == "" {
		ve.Add("folderId", "folder id is required")
	} else if _, err := uuid.Parse(string(folderId)); err != nil {
		ve.Add("folderId", "folder id must be a valid identifier")
	}
	if len(tags) > types.MaxTagsPerBookmark {
		ve.Add("tags", fmt.Sprintf("you can add up to %d tags only", types.MaxTagsPerBookmark))
	}
	seen := make(map[string]bool, len(tags))
	for _, tag := range tags {
		name := strings.TrimSpace(tag)
		if name == "" {
			ve.Add("tags", "tag names cannot be empty")
			break
		}
		if seen[name] {
			ve.Add("tags", "tag names must be unique")
			break
		}
		seen[name] = true
	}
}
