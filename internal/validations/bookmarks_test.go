package validations

import (
	"strings"
	"testing"

	"github.com/anveshk/nestmark/internal/errors"
	"github.com/anveshk/nestmark/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testFolderId = types.FolderId("3f6f9ef8-9a13-4c59-b1cb-0d6a9f6f5d2e")

func fieldsFor(verr *errors.ValidationError, field string) []string {
	var msgs []string
	for _, f := range verr.Fields {
		if f.Field == field {
			msgs = append(msgs, f.Message)
		}
	}
	return msgs
}

func TestValidateCreateBookmarkURL(t *testing.T) {
	req := &types.CreateBookmarkRequest{
		Type:     types.BookmarkTypeURL,
		Url:      "https://example.com/article",
		FolderId: testFolderId,
		Tags:     []string{"go", "reading"},
	}
	assert.Nil(t, ValidateCreateBookmark(req))
}

func TestValidateCreateBookmarkBadURL(t *testing.T) {
	req := &types.CreateBookmarkRequest{
		Type:     types.BookmarkTypeURL,
		Url:      "not a url",
		FolderId: testFolderId,
	}
	verr := ValidateCreateBookmark(req)
	require.NotNil(t, verr)
	assert.NotEmpty(t, fieldsFor(verr, "url"))
}

func TestValidateCreateBookmarkBadPreviewImage(t *testing.T) {
	req := &types.CreateBookmarkRequest{
		Type:         types.BookmarkTypeURL,
		Url:          "https://example.com",
		PreviewImage: "javascript:alert(1)",
		FolderId:     testFolderId,
	}
	verr := ValidateCreateBookmark(req)
	require.NotNil(t, verr)
	assert.NotEmpty(t, fieldsFor(verr, "previewImage"))
}

func TestValidateCreateBookmarkNotes(t *testing.T) {
	req := &types.CreateBookmarkRequest{
		Type:     types.BookmarkTypeNotes,
		Notes:    "remember to read this",
		FolderId: testFolderId,
	}
	assert.Nil(t, ValidateCreateBookmark(req))
}

func TestValidateCreateBookmarkEmptyNotes(t *testing.T) {
	req := &types.CreateBookmarkRequest{
		Type:     types.BookmarkTypeNotes,
		Notes:    "   ",
		FolderId: testFolderId,
	}
	verr := ValidateCreateBookmark(req)
	require.NotNil(t, verr)
	assert.NotEmpty(t, fieldsFor(verr, "notes"))
}

func TestValidateCreateBookmarkNotesTooLong(t *testing.T) {
	req := &types.CreateBookmarkRequest{
		Type:     types.BookmarkTypeNotes,
		Notes:    strings.Repeat("a", types.MaxNotesLength+1),
		FolderId: testFolderId,
	}
	verr := ValidateCreateBookmark(req)
	require.NotNil(t, verr)
	assert.NotEmpty(t, fieldsFor(verr, "notes"))

	req.Notes = strings.Repeat("a", types.MaxNotesLength)
	assert.Nil(t, ValidateCreateBookmark(req))
}

func TestValidateCreateBookmarkUnknownType(t *testing.T) {
	req := &types.CreateBookmarkRequest{
		Type:     "video",
		FolderId: testFolderId,
	}
	verr := ValidateCreateBookmark(req)
	require.NotNil(t, verr)
	require.Len(t, verr.Fields, 1)
	assert.Equal(t, "type", verr.Fields[0].Field)
}

func TestValidateCreateBookmarkTitleTooLong(t *testing.T) {
	req := &types.CreateBookmarkRequest{
		Type:     types.BookmarkTypeURL,
		Url:      "https://example.com",
		Title:    strings.Repeat("t", types.MaxTitleLength+1),
		FolderId: testFolderId,
	}
	verr := ValidateCreateBookmark(req)
	require.NotNil(t, verr)
	assert.NotEmpty(t, fieldsFor(verr, "title"))
}

func TestValidateCreateBookmarkFolderRequired(t *testing.T) {
	req := &types.CreateBookmarkRequest{
		Type: types.BookmarkTypeURL,
		Url:  "https://example.com",
	}
	verr := ValidateCreateBookmark(req)
	require.NotNil(t, verr)
	assert.NotEmpty(t, fieldsFor(verr, "folderId"))

	req.FolderId = "not-a-uuid"
	verr = ValidateCreateBookmark(req)
	require.NotNil(t, verr)
	assert.NotEmpty(t, fieldsFor(verr, "folderId"))
}

func TestValidateCreateBookmarkTags(t *testing.T) {
	tests := []struct {
		name string
		tags []string
		ok   bool
	}{
		{"at limit", []string{"a", "b", "c"}, true},
		{"over limit", []string{"a", "b", "c", "d"}, false},
		{"empty name", []string{"a", "  "}, false},
		{"duplicate", []string{"go", "go"}, false},
		{"duplicate after trim", []string{"go", " go "}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := &types.CreateBookmarkRequest{
				Type:     types.BookmarkTypeURL,
				Url:      "https://example.com",
				FolderId: testFolderId,
				Tags:     tt.tags,
			}
			verr := ValidateCreateBookmark(req)
			if tt.ok {
				assert.Nil(t, verr)
			} else {
				require.NotNil(t, verr)
				assert.NotEmpty(t, fieldsFor(verr, "tags"))
			}
		})
	}
}

func TestValidateCreateBookmarkReportsAllFields(t *testing.T) {
	req := &types.CreateBookmarkRequest{
		Type:  types.BookmarkTypeURL,
		Url:   "nope",
		Title: strings.Repeat("t", types.MaxTitleLength+1),
		Tags:  []string{"a", "b", "c", "d"},
	}
	verr := ValidateCreateBookmark(req)
	require.NotNil(t, verr)
	assert.NotEmpty(t, fieldsFor(verr, "url"))
	assert.NotEmpty(t, fieldsFor(verr, "title"))
	assert.NotEmpty(t, fieldsFor(verr, "folderId"))
	assert.NotEmpty(t, fieldsFor(verr, "tags"))
}

func TestValidateUpdateBookmark(t *testing.T) {
	req := &types.UpdateBookmarkRequest{
		Id:       "b2a3cb76-4d28-4c98-a51d-2b58318c69f7",
		Title:    "New title",
		FolderId: testFolderId,
	}
	assert.Nil(t, ValidateUpdateBookmark(req))

	req.Id = ""
	verr := ValidateUpdateBookmark(req)
	require.NotNil(t, verr)
	assert.NotEmpty(t, fieldsFor(verr, "id"))

	req.Id = "abc"
	verr = ValidateUpdateBookmark(req)
	require.NotNil(t, verr)
	assert.NotEmpty(t, fieldsFor(verr, "id"))
}

func TestValidateCreateFolder(t *testing.T) {
	parentId := testFolderId
	tests := []struct {
		name  string
		req   types.CreateFolderRequest
		field string
	}{
		{"valid", types.CreateFolderRequest{Name: "Reading"}, ""},
		{"valid with parent", types.CreateFolderRequest{Name: "Go", ParentId: &parentId}, ""},
		{"empty name", types.CreateFolderRequest{Name: "  "}, "name"},
		{"long name", types.CreateFolderRequest{Name: strings.Repeat("n", 101)}, "name"},
		{"bad parent", types.CreateFolderRequest{Name: "Go", ParentId: ptrFolderId("xyz")}, "parentId"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verr := ValidateCreateFolder(&tt.req)
			if tt.field == "" {
				assert.Nil(t, verr)
				return
			}
			require.NotNil(t, verr)
			assert.NotEmpty(t, fieldsFor(verr, tt.field))
		})
	}
}

func ptrFolderId(s string) *types.FolderId {
	id := types.FolderId(s)
	return &id
}
