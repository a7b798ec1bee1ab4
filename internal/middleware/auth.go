package middleware

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// 上下文键
const (
	ContextUserId    = "auth_user_id"
	ContextUserEmail = "auth_user_email"
)

// JwtAuth 解析Bearer令牌并把投资人身份写入上下文
func JwtAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "缺少认证令牌",
			})
			return
		}

		tokenString := strings.TrimPrefix(header, "Bearer ")
		token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "认证令牌无效或已过期",
			})
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "认证令牌无效或已过期",
			})
			return
		}

		userId, ok := parseUserId(claims["sub"])
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "认证令牌缺少用户标识",
			})
			return
		}

		c.Set(ContextUserId, userId)
		if email, ok := claims["email"].(string); ok {
			c.Set(ContextUserEmail, email)
		}

		c.Next()
	}
}

// CurrentUserId 读取上下文中的用户ID
func CurrentUserId(c *gin.Context) (int64, bool) {
	value, exists := c.Get(ContextUserId)
	if !exists {
		return 0, false
	}
	userId, ok := value.(int64)
	return userId, ok
}

// parseUserId 兼容字符串与数值两种sub声明
func parseUserId(claim interface{}) (int64, bool) {
	switch v := claim.(type) {
	case string:
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return 0, false
		}
		return id, true
	case float64:
		return int64(v), true
	default:
		return 0, false
	}
}
