package controllers

import (
	"strconv"
	"strings"

	"sabores/pkg/resp"

	"github.com/gin-gonic/gin"
)

// paramID อ่าน :id จาก path; ตอบ 400 ให้เองถ้าไม่ใช่ตัวเลข
func paramID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		resp.BadRequest(c, "invalid "+name)
		return 0, false
	}
	return uint(id), true
}

func queryInt(c *gin.Context, name string, def int) int {
	n, err := strconv.Atoi(c.Query(name))
	if err != nil {
		return def
	}
	return n
}

func queryBool(c *gin.Context, name string) bool {
	return strings.EqualFold(c.Query(name), "true")
}

func requestID(c *gin.Context) string {
	return c.GetString(resp.RequestIDKey)
}
