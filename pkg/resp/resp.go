package resp

import (
	"net/http"

	"sabores/pkg/apperr"
	"sabores/pkg/logger"

	"github.com/gin-gonic/gin"
)

// keys ที่ middleware ใส่ไว้ใน gin.Context
const (
	LoggerKey    = "logger"
	RequestIDKey = "requestId"
)

func OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, gin.H{"ok": true, "data": data})
}
func Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, gin.H{"ok": true, "data": data})
}
func BadRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": msg})
}
func Unauthorized(c *gin.Context, msg string) {
	c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": msg})
}
func Forbidden(c *gin.Context, msg string) {
	c.JSON(http.StatusForbidden, gin.H{"ok": false, "error": msg})
}
func NotFound(c *gin.Context, msg string) {
	c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": msg})
}
func ServerError(c *gin.Context, err error) {
	logError(c, err)
	c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "internal server error"})
}

// Error maps service errors to a status code and the error envelope.
func Error(c *gin.Context, err error) {
	ae := apperr.From(err)
	if ae.Kind == apperr.KindInternal {
		ServerError(c, err)
		return
	}
	body := gin.H{"ok": false, "error": ae.Message}
	if len(ae.Fields) > 0 {
		body["fields"] = ae.Fields
	}
	c.JSON(ae.Status(), body)
}

func logError(c *gin.Context, err error) {
	v, ok := c.Get(LoggerKey)
	if !ok {
		return
	}
	l, ok := v.(*logger.Logger)
	if !ok || l == nil {
		return
	}
	l.Error(c.Request.Method+" "+c.FullPath(), c.GetString(RequestIDKey), "request failed", err)
}
