package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"filmlink/internal/errs"
	"filmlink/internal/logger"
)

// Fail 把业务错误翻译成 HTTP 状态码，响应体统一 {"error": "..."}
func Fail(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch errs.KindOf(err) {
	case errs.KindNotFound:
		status = http.StatusNotFound
	case errs.KindConflict:
		status = http.StatusConflict
	case errs.KindInvalidArgument:
		status = http.StatusBadRequest
	}
	if status == http.StatusInternalServerError {
		logger.L.Error("Request failed", zap.String("path", c.Request.URL.Path), zap.Error(err))
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

// BindFail 请求体解析/校验失败，一律 400
func BindFail(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}
