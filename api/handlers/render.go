package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/alex-pober/actslaw-rag/interfaces"
	apperrors "github.com/alex-pober/actslaw-rag/internal/errors"
	"github.com/alex-pober/actslaw-rag/internal/logger"
)

type RenderHandler struct {
	handles interfaces.RenderHandleStore
	log     logger.Logger
}

func NewRenderHandler(handles interfaces.RenderHandleStore, log logger.Logger) *RenderHandler {
	return &RenderHandler{
		handles: handles,
		log:     log,
	}
}

// Get streams the bytes behind a render handle with the corrected
// content type, so viewers never see the upstream's mislabeled one.
func (h *RenderHandler) Get() gin.HandlerFunc {
	return func(c *gin.Context) {
		handle, err := h.handles.Get(c.Param("id"))
		if err != nil {
			respondError(c, apperrors.ErrHandleNotFound)
			return
		}

		if handle.FileName != "" {
			c.Header("Content-Disposition", `inline; filename="`+handle.FileName+`"`)
		}
		c.Data(http.StatusOK, handle.ContentType, handle.Data)
	}
}

// Release frees a handle once the viewer is done with it. Releasing an
// already-freed handle is a 404, not an error worth logging.
func (h *RenderHandler) Release() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !h.handles.Release(c.Param("id")) {
			respondError(c, apperrors.ErrHandleNotFound)
			return
		}
		c.Status(http.StatusNoContent)
	}
}
