package http

import (
	"errors"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/nekogravitycat/resort-booking-backend/internal/accommodation"
	"github.com/nekogravitycat/resort-booking-backend/internal/pkg/response"
	"github.com/nekogravitycat/resort-booking-backend/internal/pkg/storage"
)

const (
	thumbnailWidth  = 320
	thumbnailHeight = 240
)

type Handler struct {
	catalog   accommodation.Catalog
	media     storage.Storage
	processor *storage.ImageProcessor
}

func NewHandler(catalog accommodation.Catalog, media storage.Storage, processor *storage.ImageProcessor) *Handler {
	return &Handler{
		catalog:   catalog,
		media:     media,
		processor: processor,
	}
}

func (h *Handler) List(c *gin.Context) {
	options := h.catalog.List()

	items := make([]AccommodationResponse, len(options))
	for i, o := range options {
		items[i] = NewAccommodationResponse(o)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, 1, len(items), len(items)))
}

func (h *Handler) Get(c *gin.Context) {
	var req ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		response.BadRequest(c, "invalid request", err)
		return
	}

	o, ok := h.catalog.Lookup(req.ID)
	if !ok {
		response.Error(c, accommodation.ErrNotFound)
		return
	}

	c.JSON(http.StatusOK, NewAccommodationResponse(*o))
}

// Image streams the photo of an accommodation, or a JPEG thumbnail of it
// when ?thumbnail=true is given.
func (h *Handler) Image(c *gin.Context) {
	var uri ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid request", err)
		return
	}

	var query ImageRequest
	if err := c.ShouldBindQuery(&query); err != nil {
		response.BadRequest(c, "invalid query parameters", err)
		return
	}

	o, ok := h.catalog.Lookup(uri.ID)
	if !ok {
		response.Error(c, accommodation.ErrNotFound)
		return
	}
	if o.Image == "" {
		response.Error(c, accommodation.ErrImageNotFound)
		return
	}

	file, err := h.media.Open(c.Request.Context(), o.Image)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			response.Error(c, accommodation.ErrImageNotFound)
			return
		}
		response.Error(c, err)
		return
	}
	defer file.Close()

	if query.Thumbnail {
		thumb, err := h.processor.GenerateThumbnail(file, thumbnailWidth, thumbnailHeight)
		if err != nil {
			response.Error(c, err)
			return
		}
		c.Data(http.StatusOK, "image/jpeg", thumb.Bytes())
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Data(http.StatusOK, contentType(o.Image), data)
}

func contentType(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	default:
		return "application/octet-stream"
	}
}
