package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Ms-You/poje-remind/apps/remind-service/internal/domain"
	"github.com/Ms-You/poje-remind/apps/remind-service/internal/middleware"
	"github.com/Ms-You/poje-remind/apps/remind-service/internal/storage"
	"github.com/Ms-You/poje-remind/pkg/logger"
	"github.com/Ms-You/poje-remind/pkg/response"
)

const badRequestMessage = "잘못된 요청입니다."

// respondError renders err through the domain error table
func respondError(c *gin.Context, err error) {
	_ = c.Error(err)

	if errors.Is(err, storage.ErrStorageDisabled) {
		response.ServiceUnavailable(c, "STORAGE_DISABLED", "파일 저장소가 설정되지 않았습니다.")
		return
	}

	code, known := domain.CodeOf(err)
	if !known {
		logger.Get().Error("unhandled error",
			zap.String("request_id", middleware.GetRequestID(c)),
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
	}
	response.Error(c, code.Status, code.Code, code.Message)
}

// bindJSON binds the body into req, writing a 400 on failure
func bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		logger.Get().Debug("request binding failed",
			zap.String("request_id", middleware.GetRequestID(c)),
			zap.Error(err),
		)
		response.BadRequest(c, badRequestMessage)
		return false
	}
	return true
}

// pathID parses a positive integer path parameter, writing a 400 on failure
func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		response.BadRequest(c, badRequestMessage)
		return 0, false
	}
	return id, true
}

// queryPage reads ?page=, treating a missing or invalid value as page 1
func queryPage(c *gin.Context) int {
	page, err := strconv.Atoi(c.Query("page"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// NoRoute renders unknown paths
func NoRoute(c *gin.Context) {
	response.NotFound(c, "요청하신 경로를 찾을 수 없습니다.")
}

// NoMethod renders known paths called with the wrong verb
func NoMethod(c *gin.Context) {
	response.Error(c, http.StatusMethodNotAllowed, domain.MethodNotAllowed.Code, domain.MethodNotAllowed.Message)
}
