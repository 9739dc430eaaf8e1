package models

import (
	"context"
	"testing"
	"time"

	"github.com/anveshk/nestmark/internal/errors"
	"github.com/anveshk/nestmark/internal/types"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/require"
)

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	return mock
}

const insertFolderRe = `INSERT INTO folders \(name, slug, icon, color, parent_id, user_id\)`

func TestFolderCreate(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := &FolderRepo{Pool: mock}

	mock.ExpectQuery(insertFolderRe).
		WithArgs("Reading List", "reading-list", (*string)(nil), (*string)(nil), (*types.FolderId)(nil), types.UserId("u1")).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).
			AddRow(types.FolderId("f1"), time.Now()))

	folder, err := repo.Create(context.Background(), "u1", &types.CreateFolderRequest{Name: "Reading List"})
	require.NoError(t, err)
	require.Equal(t, types.FolderId("f1"), folder.Id)
	require.Equal(t, "reading-list", folder.Slug)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFolderCreateRetriesSlugOnCollision(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := &FolderRepo{Pool: mock}

	mock.ExpectQuery(insertFolderRe).
		WithArgs("Reading", "reading", (*string)(nil), (*string)(nil), (*types.FolderId)(nil), types.UserId("u1")).
		WillReturnError(&pgconn.PgError{Code: pgerrcode.UniqueViolation})
	mock.ExpectQuery(insertFolderRe).
		WithArgs("Reading", "reading-2", (*string)(nil), (*string)(nil), (*types.FolderId)(nil), types.UserId("u1")).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).
			AddRow(types.FolderId("f2"), time.Now()))

	folder, err := repo.Create(context.Background(), "u1", &types.CreateFolderRequest{Name: "Reading"})
	require.NoError(t, err)
	require.Equal(t, "reading-2", folder.Slug)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFolderCreateNonUniqueErrorStopsRetrying(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := &FolderRepo{Pool: mock}

	mock.ExpectQuery(insertFolderRe).
		WithArgs("Reading", "reading", (*string)(nil), (*string)(nil), (*types.FolderId)(nil), types.UserId("u1")).
		WillReturnError(&pgconn.PgError{Code: pgerrcode.NotNullViolation})

	_, err := repo.Create(context.Background(), "u1", &types.CreateFolderRequest{Name: "Reading"})
	require.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFolderGetByIdNotFound(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := &FolderRepo{Pool: mock}

	mock.ExpectQuery(`SELECT f\.id, f\.name, f\.slug`).
		WithArgs(types.FolderId("missing"), types.UserId("u1")).
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "slug", "icon", "color", "parent_id", "user_id", "created_at", "bookmark_count"}))

	_, err := repo.GetById(context.Background(), "u1", "missing")
	require.ErrorIs(t, err, errors.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFolderGetAll(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := &FolderRepo{Pool: mock}

	rows := pgxmock.NewRows([]string{"id", "name", "slug", "icon", "color", "parent_id", "user_id", "created_at", "bookmark_count"}).
		AddRow(types.FolderId("f1"), "Reading", "reading", (*string)(nil), (*string)(nil), (*types.FolderId)(nil), types.UserId("u1"), time.Now(), 3).
		AddRow(types.FolderId("f2"), "Work", "work", (*string)(nil), (*string)(nil), (*types.FolderId)(nil), types.UserId("u1"), time.Now(), 0)
	mock.ExpectQuery(`SELECT f\.id, f\.name, f\.slug`).
		WithArgs(types.UserId("u1")).
		WillReturnRows(rows)

	folders, err := repo.GetAll(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, folders, 2)
	require.Equal(t, 3, folders[0].Bookmarks)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFolderDeleteNotFound(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := &FolderRepo{Pool: mock}

	mock.ExpectExec(`DELETE FROM folders WHERE id = \$1 AND user_id = \$2`).
		WithArgs(types.FolderId("missing"), types.UserId("u1")).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	err := repo.Delete(context.Background(), "u1", "missing")
	require.ErrorIs(t, err, errors.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}
