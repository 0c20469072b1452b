package middleware

import (
	"context"
	"log"
	"time"

	"github.com/gin-gonic/gin"
)

// ==================== 审计上下文 ====================

// AuditContext Key
type auditContextKey struct{}

// AuditInfo 审计信息
type AuditInfo struct {
	UserID int64
	Email  string
}

// WithAuditInfo 注入审计信息到 context
func WithAuditInfo(ctx context.Context, userID int64, email string) context.Context {
	return context.WithValue(ctx, auditContextKey{}, &AuditInfo{
		UserID: userID,
		Email:  email,
	})
}

// GetAuditInfo 从 context 获取审计信息
func GetAuditInfo(ctx context.Context) *AuditInfo {
	if info, ok := ctx.Value(auditContextKey{}).(*AuditInfo); ok {
		return info
	}
	return nil
}

// GetAuditUserID 从 context 获取审计用户 ID
func GetAuditUserID(ctx context.Context) int64 {
	if info := GetAuditInfo(ctx); info != nil {
		return info.UserID
	}
	return 0
}

// ==================== Gin 中间件 ====================

// AuditContext 审计上下文中间件
// 将 JWT 中的用户信息注入到 request context，供 service 层记录操作人
func AuditContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := GetUserID(c)
		email := GetEmail(c)

		if userID > 0 {
			ctx := WithAuditInfo(c.Request.Context(), userID, email)
			c.Request = c.Request.WithContext(ctx)
		}

		c.Next()
	}
}

// RequestLog 访问日志中间件
func RequestLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		userID := GetUserID(c)
		log.Printf("[HTTP] %s %s -> %d (%v) user=%d",
			c.Request.Method,
			c.Request.URL.Path,
			c.Writer.Status(),
			time.Since(start).Round(time.Millisecond),
			userID,
		)
	}
}
