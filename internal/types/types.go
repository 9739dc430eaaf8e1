package types

import "time"

type BookmarkId string
type FolderId string
type TagId string
type UserId string

// BookmarkType discriminates the two bookmark variants.
type BookmarkType string

const (
	BookmarkTypeURL   BookmarkType = "url"
	BookmarkTypeNotes BookmarkType = "notes"
)

const (
	MaxTagsPerBookmark = 3
	MaxTitleLength     = 255
	MaxNotesLength     = 2000
	RecentLimit        = 5
)

type Tag struct {
	Id     TagId  `json:"id"`
	Name   string `json:"name"`
	UserId UserId `json:"userId"`
}

type Bookmark struct {
	Id           BookmarkId   `json:"id"`
	Type         BookmarkType `json:"type"`
	Title        string       `json:"title"`
	Url          *string      `json:"url"`
	Notes        *string      `json:"notes"`
	PreviewImage *string      `json:"previewImage"`
	Favicon      *string      `json:"favicon"`
	FolderId     FolderId     `json:"folderId"`
	UserId       UserId       `json:"userId"`
	Tags         []Tag        `json:"tags"`
	CreatedAt    time.Time    `json:"createdAt"`
	UpdatedAt    time.Time    `json:"updatedAt"`
}

type Folder struct {
	Id        FolderId  `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	Icon      *string   `json:"icon"`
	Color     *string   `json:"color"`
	ParentId  *FolderId `json:"parentId"`
	UserId    UserId    `json:"userId"`
	Bookmarks int       `json:"bookmarkCount"`
	CreatedAt time.Time `json:"createdAt"`
}

type CreateBookmarkRequest struct {
	Type         BookmarkType `json:"type"`
	Title        string       `json:"title"`
	Url          string       `json:"url"`
	Notes        string       `json:"notes"`
	FolderId     FolderId     `json:"folderId"`
	Tags         []string     `json:"tags"`
	PreviewImage string       `json:"previewImage"`
}

type UpdateBookmarkRequest struct {
	Id       BookmarkId `json:"id"`
	Title    string     `json:"title"`
	Url      string     `json:"url"`
	Notes    string     `json:"notes"`
	Tags     []string   `json:"tags"`
	FolderId FolderId   `json:"folderId"`
}

type DeleteBookmarkRequest struct {
	Id BookmarkId `json:"id"`
}

type CreateFolderRequest struct {
	Name     string    `json:"name"`
	Icon     string    `json:"icon"`
	Color    string    `json:"color"`
	ParentId *FolderId `json:"parentId"`
}

type UpdateFolderRequest struct {
	Id FolderId `json:"id"`
	CreateFolderRequest
}

type DeleteFolderRequest struct {
	Id FolderId `json:"id"`
}

// RecentBookmark is the trimmed shape kept in the recent list.
type RecentBookmark struct {
	Id       BookmarkId   `json:"id"`
	Type     BookmarkType `json:"type"`
	Title    string       `json:"title"`
	Favicon  *string      `json:"favicon"`
	Url      *string      `json:"url"`
	Notes    *string      `json:"notes"`
	FolderId FolderId     `json:"folderId"`
}

type SearchScope string

const (
	SearchScopeDashboard SearchScope = "dashboard"
	SearchScopeFolder    SearchScope = "folder"
)

// SearchResult is a bookmark or folder hit. Kind discriminates which of the
// two halves is populated.
type SearchResult struct {
	Kind     string       `json:"type"`
	Id       string       `json:"id"`
	Title    string       `json:"title,omitempty"`
	Url      *string      `json:"url,omitempty"`
	Notes    *string      `json:"notes,omitempty"`
	Favicon  *string      `json:"favicon,omitempty"`
	Bookmark BookmarkType `json:"bookmarkType,omitempty"`
	FolderId *FolderId    `json:"folderId,omitempty"`
	Tags     []Tag        `json:"tags,omitempty"`
	Name     string       `json:"name,omitempty"`
	Slug     string       `json:"slug,omitempty"`
	ParentId *FolderId    `json:"parentId,omitempty"`
}

const (
	SearchResultBookmark = "bookmark"
	SearchResultFolder   = "folder"
)

type User struct {
	Id            UserId    `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	EmailVerified bool      `json:"emailVerified"`
	Image         *string   `json:"image"`
	CreatedAt     time.Time `json:"createdAt"`
}
