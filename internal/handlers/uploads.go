package handlers

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/dealdock/dealdock/internal/objects"
	"github.com/dealdock/dealdock/internal/services"
	apperrors "github.com/dealdock/dealdock/pkg/errors"
	"github.com/dealdock/dealdock/pkg/metrics"
	"github.com/dealdock/dealdock/pkg/response"
)

// maxUploadBytes caps a direct upload at 50MB, enforced before buffering.
const maxUploadBytes = 50 << 20

// UploadHandler accepts direct multipart uploads into the object store.
type UploadHandler struct {
	orgs  *services.OrganizationService
	store objects.Store
}

func NewUploadHandler(orgs *services.OrganizationService, store objects.Store) *UploadHandler {
	return &UploadHandler{orgs: orgs, store: store}
}

// Direct handles POST /api/uploads/direct. The response carries the object
// path; registering the file in the library is a separate call.
func (h *UploadHandler) Direct(c *gin.Context) {
	_, _, err := resolveOrg(c, h.orgs)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadBytes)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		metrics.Uploads.WithLabelValues("rejected").Inc()
		if tooLarge(err) {
			response.Error(c, apperrors.New("FILE_TOO_LARGE", "File exceeds the 50MB upload limit", http.StatusRequestEntityTooLarge))
			return
		}
		response.Error(c, apperrors.NewBadRequest("multipart field 'file' is required"))
		return
	}
	if fileHeader.Size > maxUploadBytes {
		metrics.Uploads.WithLabelValues("rejected").Inc()
		response.Error(c, apperrors.New("FILE_TOO_LARGE", "File exceeds the 50MB upload limit", http.StatusRequestEntityTooLarge))
		return
	}

	src, err := fileHeader.Open()
	if err != nil {
		metrics.Uploads.WithLabelValues("error").Inc()
		response.Error(c, err)
		return
	}
	defer src.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	objectPath, err := h.store.Put(requestContext(c), contentType, src)
	if err != nil {
		metrics.Uploads.WithLabelValues("error").Inc()
		response.Error(c, err)
		return
	}

	metrics.Uploads.WithLabelValues("ok").Inc()
	response.Success(c, http.StatusCreated, gin.H{
		"objectPath": objectPath,
		"fileName":   fileHeader.Filename,
		"fileType":   contentType,
		"fileSize":   fileHeader.Size,
	})
}

// ObjectHandler streams stored objects back to viewers.
type ObjectHandler struct {
	store objects.Store
}

func NewObjectHandler(store objects.Store) *ObjectHandler {
	return &ObjectHandler{store: store}
}

// Download handles GET /objects/*objectPath.
func (h *ObjectHandler) Download(c *gin.Context) {
	objectPath := c.Param("objectPath")
	if !strings.HasPrefix(objectPath, "/") {
		objectPath = "/" + objectPath
	}
	objectPath = "/objects" + objectPath

	obj, err := h.store.Open(requestContext(c), objectPath)
	if err != nil {
		if errors.Is(err, objects.ErrObjectNotFound) {
			response.Error(c, apperrors.ErrNotFound)
			return
		}
		response.Error(c, err)
		return
	}
	defer obj.Reader.Close()

	c.Header("Content-Type", obj.ContentType)
	c.Status(http.StatusOK)
	_, _ = io.Copy(c.Writer, obj.Reader)
}

func tooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	return errors.As(err, &maxErr)
}
