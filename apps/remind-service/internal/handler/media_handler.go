package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/Ms-You/poje-remind/apps/remind-service/internal/dto"
	"github.com/Ms-You/poje-remind/apps/remind-service/internal/middleware"
	"github.com/Ms-You/poje-remind/apps/remind-service/internal/storage"
	"github.com/Ms-You/poje-remind/pkg/response"
)

// MediaHandler hands out presigned upload URLs
type MediaHandler struct {
	presigner storage.Presigner
}

// NewMediaHandler creates a new MediaHandler
func NewMediaHandler(presigner storage.Presigner) *MediaHandler {
	return &MediaHandler{presigner: presigner}
}

// Presign POST /member/media/presign
func (h *MediaHandler) Presign(c *gin.Context) {
	var req dto.PresignRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.presigner.PresignUpload(c.Request.Context(), middleware.LoginID(c), req.Kind, req.ContentType)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, "업로드 URL이 발급되었습니다.", resp)
}
