package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dealdock/dealdock/internal/services"
	apperrors "github.com/dealdock/dealdock/pkg/errors"
	"github.com/dealdock/dealdock/pkg/response"
)

// FileHandler serves the seller file library.
type FileHandler struct {
	orgs  *services.OrganizationService
	files *services.FileService
}

func NewFileHandler(orgs *services.OrganizationService, files *services.FileService) *FileHandler {
	return &FileHandler{orgs: orgs, files: files}
}

// List handles GET /api/files
func (h *FileHandler) List(c *gin.Context) {
	_, orgID, err := resolveOrg(c, h.orgs)
	if err != nil {
		response.Error(c, err)
		return
	}

	files, err := h.files.List(requestContext(c), orgID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, files)
}

type createFileRequest struct {
	FileName string `json:"fileName" binding:"required"`
	FileURL  string `json:"fileUrl" binding:"required"`
	FileType string `json:"fileType"`
	FileSize int64  `json:"fileSize"`
}

// Create handles POST /api/files
func (h *FileHandler) Create(c *gin.Context) {
	identity, orgID, err := resolveOrg(c, h.orgs)
	if err != nil {
		response.Error(c, err)
		return
	}

	var body createFileRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.Error(c, apperrors.NewBadRequest("invalid file payload"))
		return
	}

	file, err := h.files.Create(requestContext(c), services.CreateFileInput{
		FileName:       body.FileName,
		FileURL:        body.FileURL,
		FileType:       body.FileType,
		FileSize:       body.FileSize,
		UploadedByID:   identity.UserID,
		OrganizationID: orgID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, file)
}

// Delete handles DELETE /api/files/:id
func (h *FileHandler) Delete(c *gin.Context) {
	_, orgID, err := resolveOrg(c, h.orgs)
	if err != nil {
		response.Error(c, err)
		return
	}

	ctx := requestContext(c)
	file, err := h.files.Get(ctx, c.Param("id"))
	if err != nil || file.OrganizationID != orgID {
		if err == nil {
			err = services.ErrFileNotFound
		}
		response.Error(c, fileError(err))
		return
	}

	if err := h.files.Delete(ctx, file.ID); err != nil {
		response.Error(c, fileError(err))
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

func fileError(err error) error {
	if errors.Is(err, services.ErrFileNotFound) {
		return apperrors.ErrNotFound
	}
	if errors.Is(err, services.ErrFileInUse) {
		return apperrors.ErrFileInUse
	}
	return err
}
