package models

import (
	"context"
	"fmt"
	"strings"

	"github.com/anveshk/nestmark/internal/errors"
	"github.com/anveshk/nestmark/internal/types"
	"github.com/anveshk/nestmark/internal/validations"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type FolderRepo struct {
	Pool DB
}

const maxSlugAttempts = 10

// Create inserts the folder with a slug derived from its name. Slugs are
// unique per user; on collision a numeric suffix is appended and the insert
// retried.
func (repo *FolderRepo) Create(ctx context.Context, userId types.UserId, req *types.CreateFolderRequest) (*types.Folder, error) {
	name := validations.CleanUpText(strings.TrimSpace(req.Name))
	base := validations.Slugify(name)

	if req.ParentId != nil {
		if _, err := repo.GetById(ctx, userId, *req.ParentId); err != nil {
			return nil, err
		}
	}

	for attempt := 1; attempt <= maxSlugAttempts; attempt++ {
		slug := base
		if attempt > 1 {
			slug = fmt.Sprintf("%s-%d", base, attempt)
		}

		folder := types.Folder{
			Name:     name,
			Slug:     slug,
			ParentId: req.ParentId,
			UserId:   userId,
		}
		if req.Icon != "" {
			folder.Icon = &req.Icon
		}
		if req.Color != "" {
			folder.Color = &req.Color
		}

		row := repo.Pool.QueryRow(ctx, `
			INSERT INTO folders (name, slug, icon, color, parent_id, user_id)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id, created_at`,
			folder.Name, folder.Slug, folder.Icon, folder.Color, folder.ParentId, folder.UserId)
		err := row.Scan(&folder.Id, &folder.CreatedAt)
		if err == nil {
			return &folder, nil
		}

		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			continue
		}
		return nil, fmt.Errorf("folder create: %w", err)
	}
	return nil, errors.Public(
		fmt.Errorf("folder create: could not find a free slug for %q", name),
		"Too many folders share this name. Please pick another one.")
}

const folderWithCountSQL = `
	SELECT f.id, f.name, f.slug, f.icon, f.color, f.parent_id, f.user_id, f.created_at,
		COUNT(b.id) AS bookmark_count
	FROM folders f
	LEFT JOIN bookmarks b ON b.folder_id = f.id`

func (repo *FolderRepo) GetById(ctx context.Context, userId types.UserId, id types.FolderId) (*types.Folder, error) {
	rows, err := repo.Pool.Query(ctx, folderWithCountSQL+`
		WHERE f.id = $1 AND f.user_id = $2
		GROUP BY f.id`, id, userId)
	if err != nil {
		return nil, fmt.Errorf("query folder by id: %w", err)
	}
	defer rows.Close()
	if !rows.Next() {
		if rows.Err() != nil {
			return nil, fmt.Errorf("iterating rows: %w", rows.Err())
		}
		return nil, errors.ErrNotFound
	}
	folder, err := scanFolder(rows)
	if err != nil {
		return nil, fmt.Errorf("scan folder: %w", err)
	}
	return folder, nil
}

// GetAll returns the user's top-level folders with their bookmark counts.
func (repo *FolderRepo) GetAll(ctx context.Context, userId types.UserId) ([]types.Folder, error) {
	rows, err := repo.Pool.Query(ctx, folderWithCountSQL+`
		WHERE f.user_id = $1 AND f.parent_id IS NULL
		GROUP BY f.id
		ORDER BY f.created_at DESC`, userId)
	if err != nil {
		return nil, fmt.Errorf("query folders: %w", err)
	}
	return collectFolders(rows)
}

func (repo *FolderRepo) Subfolders(ctx context.Context, userId types.UserId, parentId types.FolderId) ([]types.Folder, error) {
	rows, err := repo.Pool.Query(ctx, folderWithCountSQL+`
		WHERE f.user_id = $1 AND f.parent_id = $2
		GROUP BY f.id
		ORDER BY f.created_at DESC`, userId, parentId)
	if err != nil {
		return nil, fmt.Errorf("query subfolders: %w", err)
	}
	return collectFolders(rows)
}

// ResolvePath walks a slug chain from the root, verifying each segment is a
// child of the previous one, and returns the folders along the path.
func (repo *FolderRepo) ResolvePath(ctx context.Context, userId types.UserId, slugs []string) ([]types.Folder, error) {
	path := make([]types.Folder, 0, len(slugs))
	var parentId *types.FolderId

	for _, slug := range slugs {
		sql := folderWithCountSQL + ` WHERE f.user_id = $1 AND f.slug = $2 AND `
		args := []any{userId, slug}
		if parentId == nil {
			sql += `f.parent_id IS NULL`
		} else {
			sql += `f.parent_id = $3`
			args = append(args, *parentId)
		}
		sql += ` GROUP BY f.id`

		rows, err := repo.Pool.Query(ctx, sql, args...)
		if err != nil {
			return nil, fmt.Errorf("resolve folder path: %w", err)
		}
		folder, err := collectOneFolder(rows)
		if err != nil {
			return nil, err
		}
		path = append(path, *folder)
		id := folder.Id
		parentId = &id
	}
	return path, nil
}

func (repo *FolderRepo) Update(ctx context.Context, userId types.UserId, req *types.UpdateFolderRequest) (*types.Folder, error) {
	folder, err := repo.GetById(ctx, userId, req.Id)
	if err != nil {
		return nil, err
	}

	name := validations.CleanUpText(strings.TrimSpace(req.Name))
	folder.Name = name
	if req.Icon != "" {
		folder.Icon = &req.Icon
	}
	if req.Color != "" {
		folder.Color = &req.Color
	}

	_, err = repo.Pool.Exec(ctx, `
		UPDATE folders SET name = $1, icon = $2, color = $3
		WHERE id = $4 AND user_id = $5`,
		folder.Name, folder.Icon, folder.Color, folder.Id, userId)
	if err != nil {
		return nil, fmt.Errorf("folder update: %w", err)
	}
	return folder, nil
}

// Delete removes the folder; bookmarks and subfolders cascade at the
// storage layer.
func (repo *FolderRepo) Delete(ctx context.Context, userId types.UserId, id types.FolderId) error {
	tag, err := repo.Pool.Exec(ctx, `
		DELETE FROM folders WHERE id = $1 AND user_id = $2`, id, userId)
	if err != nil {
		return fmt.Errorf("delete folder: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return errors.ErrNotFound
	}
	return nil
}

func collectFolders(rows pgx.Rows) ([]types.Folder, error) {
	defer rows.Close()
	folders := []types.Folder{}
	for rows.Next() {
		folder, err := scanFolder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan folder: %w", err)
		}
		folders = append(folders, *folder)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterating rows: %w", rows.Err())
	}
	return folders, nil
}

func collectOneFolder(rows pgx.Rows) (*types.Folder, error) {
	defer rows.Close()
	if !rows.Next() {
		if rows.Err() != nil {
			return nil, fmt.Errorf("iterating rows: %w", rows.Err())
		}
		return nil, errors.ErrNotFound
	}
	folder, err := scanFolder(rows)
	if err != nil {
		return nil, fmt.Errorf("scan folder: %w", err)
	}
	return folder, nil
}

func scanFolder(row pgx.Row) (*types.Folder, error) {
	var f types.Folder
	err := row.Scan(&f.Id, &f.Name, &f.Slug, &f.Icon, &f.Color, &f.ParentId,
		&f.UserId, &f.CreatedAt, &f.Bookmarks)
	if err != nil {
		return nil, err
	}
	return &f, nil
}
