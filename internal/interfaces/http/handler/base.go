// Package handler 提供 HTTP 请求处理器
package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"dashboard-api/internal/interfaces/http/dto"
)

// parseID 解析路径参数中的资源 id
func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		dto.BadRequest(c, "invalid id")
		return 0, false
	}
	return id, true
}

// currentUserID 取出认证中间件注入的用户 id
// 认证关闭时返回零值 uuid，审计字段仍可落库
func currentUserID(c *gin.Context) uuid.UUID {
	raw := c.GetString("user_id")
	if raw == "" {
		return uuid.Nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil
	}
	return id
}

// boolQuery 解析布尔查询参数，缺省为 false
func boolQuery(c *gin.Context, name string) bool {
	v, _ := strconv.ParseBool(c.DefaultQuery(name, "false"))
	return v
}
