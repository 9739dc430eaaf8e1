package service

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/anveshk/nestmark/internal/auth/context/loggercontext"
	"github.com/anveshk/nestmark/internal/auth/context/usercontext"
	"github.com/anveshk/nestmark/internal/errors"
	"github.com/anveshk/nestmark/internal/types"
	"github.com/anveshk/nestmark/internal/validations"
)

func (a *Api) FoldersAPI(w http.ResponseWriter, r *http.Request) {
	user := usercontext.User(r.Context())
	logger := loggercontext.Logger(r.Context())

	folders, err := a.FolderRepo.GetAll(r.Context(), user.ID)
	if err != nil {
		logger.Errorw("fetching folders", "error", err)
		writeInternalError(w)
		return
	}

	var data struct {
		Folders []types.Folder `json:"folders"`
	}
	data.Folders = folders
	if err := writeResponse(w, http.StatusOK, data); err != nil {
		logger.Errorw("write response", "error", err)
	}
}

func (a *Api) CreateFolderAPI(w http.ResponseWriter, r *http.Request) {
	user := usercontext.User(r.Context())
	logger := loggercontext.Logger(r.Context())

	var req types.CreateFolderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, ErrorResponse{
			Code:    "INVALID_REQUEST",
			Message: "Invalid request body",
		})
		return
	}

	if verr := validations.ValidateCreateFolder(&req); verr != nil {
		writeErrorResponse(w, http.StatusBadRequest, ErrorResponse{
			Code:    "VALIDATION_FAILED",
			Message: "Invalid folder payload",
			Fields:  verr.Fields,
		})
		return
	}

	folder, err := a.FolderRepo.Create(r.Context(), user.ID, &req)
	if err != nil {
		if errors.Is(err, errors.ErrNotFound) {
			writeErrorResponse(w, http.StatusNotFound, ErrorResponse{
				Code:    "NOT_FOUND",
				Message: "Parent folder not found",
			})
			return
		}
		var pubErr interface{ Public() string }
		if errors.As(err, &pubErr) {
			writeErrorResponse(w, http.StatusConflict, ErrorResponse{
				Code:    "CONFLICT",
				Message: pubErr.Public(),
			})
			return
		}
		logger.Errorw("creating folder", "error", err)
		writeInternalError(w)
		return
	}

	logger.Infow("created folder", "folderId", folder.Id, "slug", folder.Slug)
	var data struct {
		Folder *types.Folder `json:"folder"`
	}
	data.Folder = folder
	if err := writeResponse(w, http.StatusCreated, data); err != nil {
		logger.Errorw("write response", "error", err)
	}
}

func (a *Api) UpdateFolderAPI(w http.ResponseWriter, r *http.Request) {
	user := usercontext.User(r.Context())
	logger := loggercontext.Logger(r.Context())

	var req types.UpdateFolderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, ErrorResponse{
			Code:    "INVALID_REQUEST",
			Message: "Invalid request body",
		})
		return
	}

	if verr := validations.ValidateCreateFolder(&req.CreateFolderRequest); verr != nil {
		writeErrorResponse(w, http.StatusBadRequest, ErrorResponse{
			Code:    "VALIDATION_FAILED",
			Message: "Invalid folder payload",
			Fields:  verr.Fields,
		})
		return
	}

	folder, err := a.FolderRepo.Update(r.Context(), user.ID, &req)
	if err != nil {
		if errors.Is(err, errors.ErrNotFound) {
			writeErrorResponse(w, http.StatusNotFound, ErrorResponse{
				Code:    "NOT_FOUND",
				Message: "Folder not found",
			})
			return
		}
		logger.Errorw("updating folder", "error", err, "folderId", req.Id)
		writeInternalError(w)
		return
	}

	var data struct {
		Folder *types.Folder `json:"folder"`
	}
	data.Folder = folder
	if err := writeResponse(w, http.StatusOK, data); err != nil {
		logger.Errorw("write response", "error", err)
	}
}

func (a *Api) DeleteFolderAPI(w http.ResponseWriter, r *http.Request) {
	user := usercontext.User(r.Context())
	logger := loggercontext.Logger(r.Context())

	var req types.DeleteFolderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, ErrorResponse{
			Code:    "INVALID_REQUEST",
			Message: "Invalid request body",
		})
		return
	}
	if req.Id == "" {
		writeErrorResponse(w, http.StatusBadRequest, ErrorResponse{
			Code:    "INVALID_REQUEST",
			Message: "Folder ID is required",
		})
		return
	}

	if err := a.FolderRepo.Delete(r.Context(), user.ID, req.Id); err != nil {
		if errors.Is(err, errors.ErrNotFound) {
			writeErrorResponse(w, http.StatusNotFound, ErrorResponse{
				Code:    "NOT_FOUND",
				Message: "Folder not found",
			})
			return
		}
		logger.Errorw("deleting folder", "error", err, "folderId", req.Id)
		writeInternalError(w)
		return
	}

	logger.Infow("deleted folder", "folderId", req.Id)
	var data struct {
		Message string `json:"message"`
	}
	data.Message = "Folder deleted successfully"
	if err := writeResponse(w, http.StatusOK, data); err != nil {
		logger.Errorw("write response", "error", err)
	}
}

// ResolvePathAPI turns a comma-separated slug chain into the folder path it
// names, for breadcrumb navigation and deep links.
func (a *Api) ResolvePathAPI(w http.ResponseWriter, r *http.Request) {
	user := usercontext.User(r.Context())
	logger := loggercontext.Logger(r.Context())

	slugsParam := r.URL.Query().Get("slugs")
	if slugsParam == "" {
		writeErrorResponse(w, http.StatusBadRequest, ErrorResponse{
			Code:    "INVALID_REQUEST",
			Message: "Slugs are required",
		})
		return
	}
	slugs := strings.Split(slugsParam, ",")

	path, err := a.FolderRepo.ResolvePath(r.Context(), user.ID, slugs)
	if err != nil {
		if errors.Is(err, errors.ErrNotFound) {
			writeErrorResponse(w, http.StatusNotFound, ErrorResponse{
				Code:    "NOT_FOUND",
				Message: "Folder path not found",
			})
			return
		}
		logger.Errorw("resolving folder path", "error", err, "slugs", slugsParam)
		writeInternalError(w)
		return
	}

	var data struct {
		Folders []types.Folder `json:"folders"`
	}
	data.Folders = path
	if err := writeResponse(w, http.StatusOK, data); err != nil {
		logger.Errorw("write response", "error", err)
	}
}

func (a *Api) SubfoldersAPI(w http.ResponseWriter, r *http.Request) {
	user := usercontext.User(r.Context())
	logger := loggercontext.Logger(r.Context())

	parentId := r.URL.Query().Get("parentId")
	if parentId == "" {
		writeErrorResponse(w, http.StatusBadRequest, ErrorResponse{
			Code:    "INVALID_REQUEST",
			Message: "Parent ID is required",
		})
		return
	}

	subfolders, err := a.FolderRepo.Subfolders(r.Context(), user.ID, types.FolderId(parentId))
	if err != nil {
		logger.Errorw("fetching subfolders", "error", err, "parentId", parentId)
		writeInternalError(w)
		return
	}

	var data struct {
		Folders []types.Folder `json:"folders"`
	}
	data.Folders = subfolders
	if err := writeResponse(w, http.StatusOK, data); err != nil {
		logger.Errorw("write response", "error", err)
	}
}
