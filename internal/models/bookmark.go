package models

import (
	"context"
	"fmt"

	"github.com/anveshk/nestmark/internal/errors"
	"github.com/anveshk/nestmark/internal/types"
	"github.com/jackc/pgx/v5"
)

type BookmarkRepo struct {
	Pool DB
}

const bookmarkColumns = `id, type, title, url, notes, preview_image, favicon, folder_id, user_id, created_at, updated_at`

// Create inserts the bookmark and attaches its tags in one transaction.
// Tags attach by (name, user_id): an existing tag with that name is reused,
// never duplicated.
func (repo *BookmarkRepo) Create(ctx context.Context, bookmark *types.Bookmark, tagNames []string) (*types.Bookmark, error) {
	tx, err := repo.Pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin bookmark create: %w", err)
	}
	defer tx.Rollback(ctx)

	row := tx.QueryRow(ctx, `
		INSERT INTO bookmarks (type, title, url, notes, preview_image, favicon, folder_id, user_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at`,
		bookmark.Type, bookmark.Title, bookmark.Url, bookmark.Notes,
		bookmark.PreviewImage, bookmark.Favicon, bookmark.FolderId, bookmark.UserId)
	err = row.Scan(&bookmark.Id, &bookmark.CreatedAt, &bookmark.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("bookmark create: %w", err)
	}

	bookmark.Tags, err = attachTags(ctx, tx, bookmark.Id, bookmark.UserId, tagNames)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit bookmark create: %w", err)
	}
	return bookmark, nil
}

// attachTags implements connect-or-create on (name, user_id) inside the
// caller's transaction.
func attachTags(ctx context.Context, tx pgx.Tx, bookmarkId types.BookmarkId, userId types.UserId, tagNames []string) ([]types.Tag, error) {
	tags := make([]types.Tag, 0, len(tagNames))
	for _, name := range tagNames {
		var tag types.Tag
		row := tx.QueryRow(ctx, `
			WITH inserted AS (
				INSERT INTO tags (name, user_id)
				VALUES ($1, $2)
				ON CONFLICT (name, user_id) DO NOTHING
				RETURNING id, name, user_id
			)
			SELECT id, name, user_id FROM inserted
			UNION
			SELECT id, name, user_id FROM tags WHERE name = $1 AND user_id = $2`,
			name, userId)
		err := row.Scan(&tag.Id, &tag.Name, &tag.UserId)
		if err != nil {
			return nil, fmt.Errorf("attach tag %q: %w", name, err)
		}

		_, err = tx.Exec(ctx, `
			INSERT INTO bookmark_tags (bookmark_id, tag_id)
			VALUES ($1, $2)
			ON CONFLICT DO NOTHING`, bookmarkId, tag.Id)
		if err != nil {
			return nil, fmt.Errorf("link tag %q: %w", name, err)
		}
		tags = append(tags, tag)
	}
	return tags, nil
}

func (repo *BookmarkRepo) GetById(ctx context.Context, userId types.UserId, id types.BookmarkId) (*types.Bookmark, error) {
	rows, err := repo.Pool.Query(ctx, `
		SELECT `+bookmarkColumns+`
		FROM bookmarks
		WHERE id = $1 AND user_id = $2`, id, userId)
	if err != nil {
		return nil, fmt.Errorf("query bookmark by id: %w", err)
	}
	bookmark, err := collectBookmark(rows)
	if err != nil {
		return nil, err
	}
	if err := repo.loadTags(ctx, userId, []*types.Bookmark{bookmark}); err != nil {
		return nil, err
	}
	return bookmark, nil
}

// GetByFolder lists a folder's bookmarks newest first, tags included.
func (repo *BookmarkRepo) GetByFolder(ctx context.Context, userId types.UserId, folderId types.FolderId) ([]types.Bookmark, error) {
	rows, err := repo.Pool.Query(ctx, `
		SELECT `+bookmarkColumns+`
		FROM bookmarks
		WHERE user_id = $1 AND folder_id = $2
		ORDER BY created_at DESC`, userId, folderId)
	if err != nil {
		return nil, fmt.Errorf("query bookmarks by folder: %w", err)
	}
	bookmarks, err := collectBookmarks(rows)
	if err != nil {
		return nil, err
	}

	refs := make([]*types.Bookmark, len(bookmarks))
	for i := range bookmarks {
		refs[i] = &bookmarks[i]
	}
	if err := repo.loadTags(ctx, userId, refs); err != nil {
		return nil, err
	}
	return bookmarks, nil
}

// Recent returns the user's latest bookmarks across all folders.
func (repo *BookmarkRepo) Recent(ctx context.Context, userId types.UserId, limit int) ([]types.RecentBookmark, error) {
	rows, err := repo.Pool.Query(ctx, `
		SELECT id, type, title, favicon, url, notes, folder_id
		FROM bookmarks
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2`, userId, limit)
	if err != nil {
		return nil, fmt.Errorf("query recent bookmarks: %w", err)
	}
	defer rows.Close()

	var recent []types.RecentBookmark
	for rows.Next() {
		var r types.RecentBookmark
		err := rows.Scan(&r.Id, &r.Type, &r.Title, &r.Favicon, &r.Url, &r.Notes, &r.FolderId)
		if err != nil {
			return nil, fmt.Errorf("scan recent bookmark: %w", err)
		}
		recent = append(recent, r)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterating rows: %w", rows.Err())
	}
	return recent, nil
}

// GetNote fetches a single notes-variant bookmark.
func (repo *BookmarkRepo) GetNote(ctx context.Context, userId types.UserId, id types.BookmarkId) (*types.Bookmark, error) {
	rows, err := repo.Pool.Query(ctx, `
		SELECT `+bookmarkColumns+`
		FROM bookmarks
		WHERE id = $1 AND user_id = $2 AND type = 'notes'`, id, userId)
	if err != nil {
		return nil, fmt.Errorf("query note by id: %w", err)
	}
	note, err := collectBookmark(rows)
	if err != nil {
		return nil, err
	}
	if err := repo.loadTags(ctx, userId, []*types.Bookmark{note}); err != nil {
		return nil, err
	}
	return note, nil
}

func (repo *BookmarkRepo) Update(ctx context.Context, bookmark *types.Bookmark) (*types.Bookmark, error) {
	row := repo.Pool.QueryRow(ctx, `
		UPDATE bookmarks
		SET title = $1, url = $2, notes = $3, updated_at = NOW()
		WHERE id = $4 AND user_id = $5
		RETURNING `+bookmarkColumns,
		bookmark.Title, bookmark.Url, bookmark.Notes, bookmark.Id, bookmark.UserId)

	updated, err := scanBookmark(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errors.ErrNotFound
		}
		return nil, fmt.Errorf("bookmark update: %w", err)
	}
	if err := repo.loadTags(ctx, updated.UserId, []*types.Bookmark{updated}); err != nil {
		return nil, err
	}
	return updated, nil
}

func (repo *BookmarkRepo) Delete(ctx context.Context, userId types.UserId, id types.BookmarkId) error {
	tag, err := repo.Pool.Exec(ctx, `
		DELETE FROM bookmarks WHERE id = $1 AND user_id = $2`, id, userId)
	if err != nil {
		return fmt.Errorf("delete bookmark: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return errors.ErrNotFound
	}
	return nil
}

// Search matches bookmarks by title/url/notes and folders by name.
func (repo *BookmarkRepo) Search(ctx context.Context, userId types.UserId, query string, scope types.SearchScope, folderId types.FolderId) ([]types.SearchResult, error) {
	pattern := "%" + query + "%"

	bookmarkSQL := `
		SELECT id, type, title, url, notes, favicon, folder_id
		FROM bookmarks
		WHERE user_id = $1
			AND (title ILIKE $2 OR url ILIKE $2 OR notes ILIKE $2)`
	args := []any{userId, pattern}
	if scope == types.SearchScopeFolder && folderId != "" {
		bookmarkSQL += ` AND folder_id = $3`
		args = append(args, folderId)
	}
	bookmarkSQL += ` ORDER BY created_at DESC LIMIT 20`

	rows, err := repo.Pool.Query(ctx, bookmarkSQL, args...)
	if err != nil {
		return nil, fmt.Errorf("search bookmarks: %w", err)
	}
	defer rows.Close()

	var results []types.SearchResult
	for rows.Next() {
		var r types.SearchResult
		var folder types.FolderId
		r.Kind = types.SearchResultBookmark
		err := rows.Scan(&r.Id, &r.Bookmark, &r.Title, &r.Url, &r.Notes, &r.Favicon, &folder)
		if err != nil {
			return nil, fmt.Errorf("scan bookmark search row: %w", err)
		}
		r.FolderId = &folder
		results = append(results, r)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterating rows: %w", rows.Err())
	}

	// Folder matches only show up in the dashboard-wide scope.
	if scope != types.SearchScopeFolder {
		folderRows, err := repo.Pool.Query(ctx, `
			SELECT id, name, slug, parent_id
			FROM folders
			WHERE user_id = $1 AND name ILIKE $2
			ORDER BY name
			LIMIT 10`, userId, pattern)
		if err != nil {
			return nil, fmt.Errorf("search folders: %w", err)
		}
		defer folderRows.Close()

		for folderRows.Next() {
			var r types.SearchResult
			r.Kind = types.SearchResultFolder
			err := folderRows.Scan(&r.Id, &r.Name, &r.Slug, &r.ParentId)
			if err != nil {
				return nil, fmt.Errorf("scan folder search row: %w", err)
			}
			results = append(results, r)
		}
		if folderRows.Err() != nil {
			return nil, fmt.Errorf("iterating rows: %w", folderRows.Err())
		}
	}

	return results, nil
}

// loadTags fills Tags for every bookmark in one query.
func (repo *BookmarkRepo) loadTags(ctx context.Context, userId types.UserId, bookmarks []*types.Bookmark) error {
	if len(bookmarks) == 0 {
		return nil
	}
	ids := make([]types.BookmarkId, len(bookmarks))
	byId := make(map[types.BookmarkId]*types.Bookmark, len(bookmarks))
	for i, b := range bookmarks {
		ids[i] = b.Id
		byId[b.Id] = b
		b.Tags = []types.Tag{}
	}

	rows, err := repo.Pool.Query(ctx, `
		SELECT bt.bookmark_id, t.id, t.name, t.user_id
		FROM bookmark_tags bt
		JOIN tags t ON t.id = bt.tag_id
		WHERE bt.bookmark_id = ANY($1) AND t.user_id = $2`, ids, userId)
	if err != nil {
		return fmt.Errorf("query bookmark tags: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var bookmarkId types.BookmarkId
		var tag types.Tag
		err := rows.Scan(&bookmarkId, &tag.Id, &tag.Name, &tag.UserId)
		if err != nil {
			return fmt.Errorf("scan bookmark tag: %w", err)
		}
		if b, ok := byId[bookmarkId]; ok {
			b.Tags = append(b.Tags, tag)
		}
	}
	if rows.Err() != nil {
		return fmt.Errorf("iterating rows: %w", rows.Err())
	}
	return nil
}

func collectBookmark(rows pgx.Rows) (*types.Bookmark, error) {
	defer rows.Close()
	if !rows.Next() {
		if rows.Err() != nil {
			return nil, fmt.Errorf("iterating rows: %w", rows.Err())
		}
		return nil, errors.ErrNotFound
	}
	bookmark, err := scanBookmark(rows)
	if err != nil {
		return nil, fmt.Errorf("scan bookmark: %w", err)
	}
	return bookmark, nil
}

func collectBookmarks(rows pgx.Rows) ([]types.Bookmark, error) {
	defer rows.Close()
	bookmarks := []types.Bookmark{}
	for rows.Next() {
		bookmark, err := scanBookmark(rows)
		if err != nil {
			return nil, fmt.Errorf("scan bookmark: %w", err)
		}
		bookmarks = append(bookmarks, *bookmark)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterating rows: %w", rows.Err())
	}
	return bookmarks, nil
}

func scanBookmark(row pgx.Row) (*types.Bookmark, error) {
	var b types.Bookmark
	err := row.Scan(&b.Id, &b.Type, &b.Title, &b.Url, &b.Notes, &b.PreviewImage,
		&b.Favicon, &b.FolderId, &b.UserId, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &b, nil
}
