package service

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/anveshk/nestmark/internal/auth/context/loggercontext"
	"github.com/anveshk/nestmark/internal/auth/context/usercontext"
	"github.com/anveshk/nestmark/internal/errors"
	"github.com/anveshk/nestmark/internal/models"
	"github.com/anveshk/nestmark/internal/types"
	"github.com/anveshk/nestmark/internal/validations"
)

type Api struct {
	Writer       *BookmarkWriter
	BookmarkRepo *models.BookmarkRepo
	FolderRepo   *models.FolderRepo
}

type ErrorResponse struct {
	Code    string              `json:"errorCode"`
	Message string              `json:"errorMessage"`
	Fields  []errors.FieldError `json:"fields,omitempty"`
}

// IndexAPI lists a folder's bookmarks, newest first.
func (a *Api) IndexAPI(w http.ResponseWriter, r *http.Request) {
	user := usercontext.User(r.Context())
	logger := loggercontext.Logger(r.Context())

	folderId := r.URL.Query().Get("folderId")
	if folderId == "" {
		writeErrorResponse(w, http.StatusBadRequest, ErrorResponse{
			Code:    "INVALID_REQUEST",
			Message: "Folder ID is required",
		})
		return
	}

	bookmarks, err := a.BookmarkRepo.GetByFolder(r.Context(), user.ID, types.FolderId(folderId))
	if err != nil {
		logger.Errorw("fetching bookmarks", "error", err, "folderId", folderId)
		writeInternalError(w)
		return
	}

	var data struct {
		Bookmarks []types.Bookmark `json:"bookmarks"`
	}
	data.Bookmarks = bookmarks
	if err := writeResponse(w, http.StatusOK, data); err != nil {
		logger.Errorw("write response", "error", err)
	}
}

// CreateAPI runs the bookmark creation pipeline.
func (a *Api) CreateAPI(w http.ResponseWriter, r *http.Request) {
	user := usercontext.User(r.Context())
	logger := loggercontext.Logger(r.Context())

	var req types.CreateBookmarkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Errorw("decoding request body", "error", err)
		writeErrorResponse(w, http.StatusBadRequest, ErrorResponse{
			Code:    "INVALID_REQUEST",
			Message: "Invalid request body",
		})
		return
	}

	logger.Infow("creating bookmark", "type", req.Type, "folderId", req.FolderId)
	bookmark, err := a.Writer.Create(r.Context(), user, &req)
	if err != nil {
		a.writeBookmarkError(w, r, "CREATE_BOOKMARK", err)
		return
	}

	logger.Infow("created bookmark", "bookmarkId", bookmark.Id)
	var data struct {
		Bookmark *types.Bookmark `json:"bookmark"`
	}
	data.Bookmark = bookmark
	if err := writeResponse(w, http.StatusCreated, data); err != nil {
		logger.Errorw("write response", "error", err)
	}
}

func (a *Api) UpdateAPI(w http.ResponseWriter, r *http.Request) {
	user := usercontext.User(r.Context())
	logger := loggercontext.Logger(r.Context())

	var req types.UpdateBookmarkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, ErrorResponse{
			Code:    "INVALID_REQUEST",
			Message: "Invalid request body",
		})
		return
	}

	bookmark, err := a.Writer.Update(r.Context(), user, &req)
	if err != nil {
		a.writeBookmarkError(w, r, "UPDATE_BOOKMARK", err)
		return
	}

	var data struct {
		Bookmark *types.Bookmark `json:"bookmark"`
	}
	data.Bookmark = bookmark
	if err := writeResponse(w, http.StatusOK, data); err != nil {
		logger.Errorw("write response", "error", err)
	}
}

func (a *Api) DeleteAPI(w http.ResponseWriter, r *http.Request) {
	user := usercontext.User(r.Context())
	logger := loggercontext.Logger(r.Context())

	var req types.DeleteBookmarkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, ErrorResponse{
			Code:    "INVALID_REQUEST",
			Message: "Invalid request body",
		})
		return
	}

	if err := a.Writer.Delete(r.Context(), user, req.Id); err != nil {
		a.writeBookmarkError(w, r, "DELETE_BOOKMARK", err)
		return
	}

	logger.Infow("deleted bookmark", "bookmarkId", req.Id)
	var data struct {
		Message string `json:"message"`
	}
	data.Message = "Bookmark deleted successfully"
	if err := writeResponse(w, http.StatusOK, data); err != nil {
		logger.Errorw("write response", "error", err)
	}
}

// RecentAPI returns the user's latest bookmarks across folders.
func (a *Api) RecentAPI(w http.ResponseWriter, r *http.Request) {
	user := usercontext.User(r.Context())
	logger := loggercontext.Logger(r.Context())

	limit := validations.GetLimit(r.URL.Query().Get("limit"), types.RecentLimit, 20)
	recent, err := a.BookmarkRepo.Recent(r.Context(), user.ID, limit)
	if err != nil {
		logger.Errorw("fetching recent bookmarks", "error", err)
		writeInternalError(w)
		return
	}

	var data struct {
		Bookmarks []types.RecentBookmark `json:"bookmarks"`
	}
	data.Bookmarks = recent
	if err := writeResponse(w, http.StatusOK, data); err != nil {
		logger.Errorw("write response", "error", err)
	}
}

func (a *Api) NoteAPI(w http.ResponseWriter, r *http.Request) {
	user := usercontext.User(r.Context())
	logger := loggercontext.Logger(r.Context())

	id := r.URL.Query().Get("id")
	if id == "" {
		writeErrorResponse(w, http.StatusBadRequest, ErrorResponse{
			Code:    "INVALID_REQUEST",
			Message: "Note ID is required",
		})
		return
	}

	note, err := a.BookmarkRepo.GetNote(r.Context(), user.ID, types.BookmarkId(id))
	if err != nil {
		if errors.Is(err, errors.ErrNotFound) {
			writeErrorResponse(w, http.StatusNotFound, ErrorResponse{
				Code:    "NOT_FOUND",
				Message: "Note not found: " + id,
			})
			return
		}
		logger.Errorw("fetching note", "error", err, "id", id)
		writeInternalError(w)
		return
	}

	var data struct {
		Bookmark *types.Bookmark `json:"bookmark"`
	}
	data.Bookmark = note
	if err := writeResponse(w, http.StatusOK, data); err != nil {
		logger.Errorw("write response", "error", err)
	}
}

// SearchAPI matches bookmarks and folders against a query.
func (a *Api) SearchAPI(w http.ResponseWriter, r *http.Request) {
	user := usercontext.User(r.Context())
	logger := loggercontext.Logger(r.Context())

	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		writeErrorResponse(w, http.StatusBadRequest, ErrorResponse{
			Code:    "INVALID_REQUEST",
			Message: "Query is required",
		})
		return
	}
	scope := types.SearchScope(r.URL.Query().Get("scope"))
	folderId := types.FolderId(r.URL.Query().Get("folderId"))

	results, err := a.BookmarkRepo.Search(r.Context(), user.ID, query, scope, folderId)
	if err != nil {
		logger.Errorw("searching bookmarks", "error", err, "query", query)
		writeInternalError(w)
		return
	}

	var data struct {
		Results []types.SearchResult `json:"results"`
	}
	data.Results = results
	if err := writeResponse(w, http.StatusOK, data); err != nil {
		logger.Errorw("write response", "error", err)
	}
}

// SessionAPI reports the active session. Failures are indistinguishable from
// "not signed in": the response is always the user-or-null shape.
func (a *Api) SessionAPI(w http.ResponseWriter, r *http.Request) {
	logger := loggercontext.Logger(r.Context())

	var data struct {
		User *types.User `json:"user"`
	}
	if user := usercontext.User(r.Context()); user != nil {
		data.User = user.AsAPIUser()
	}
	if err := writeResponse(w, http.StatusOK, data); err != nil {
		logger.Errorw("write response", "error", err)
	}
}

// writeBookmarkError maps writer errors onto the API taxonomy.
func (a *Api) writeBookmarkError(w http.ResponseWriter, r *http.Request, code string, err error) {
	logger := loggercontext.Logger(r.Context())

	var verr *errors.ValidationError
	if errors.As(err, &verr) {
		writeErrorResponse(w, http.StatusBadRequest, ErrorResponse{
			Code:    "VALIDATION_FAILED",
			Message: "Invalid bookmark payload",
			Fields:  verr.Fields,
		})
		return
	}
	if errors.Is(err, errors.ErrNotFound) {
		writeErrorResponse(w, http.StatusNotFound, ErrorResponse{
			Code:    "NOT_FOUND",
			Message: "Folder or bookmark not found",
		})
		return
	}

	logger.Errorw("bookmark operation failed", "code", code, "error", err)
	writeErrorResponse(w, http.StatusInternalServerError, ErrorResponse{
		Code:    code,
		Message: "Something went wrong. Please try again.",
	})
}

func writeInternalError(w http.ResponseWriter) {
	writeErrorResponse(w, http.StatusInternalServerError, ErrorResponse{
		Code:    "INTERNAL_ERROR",
		Message: "api: Something went wrong",
	})
}

func writeResponse(w http.ResponseWriter, statusCode int, data interface{}) error {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		return err
	}
	return nil
}

func writeErrorResponse(w http.ResponseWriter, statusCode int, errResp ErrorResponse) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(errResp)
}
