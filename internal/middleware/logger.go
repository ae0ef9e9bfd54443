package middleware

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
)

// Logger 请求日志中间件，记录状态码、耗时、来源 IP 与完整请求行。
// 查询串保留在日志里，方便排查缓存键与过滤参数问题
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		log.Printf("%3d | %13v | %15s | %-6s %s",
			c.Writer.Status(),
			time.Since(start),
			c.ClientIP(),
			c.Request.Method,
			c.Request.URL.RequestURI(),
		)
	}
}
