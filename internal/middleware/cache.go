package middleware

import (
	"bytes"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/devwithnaveed/cineverse-api/internal/utils"
)

const responseCachePrefix = "resp:"

// cachedResponse 缓存的响应快照
type cachedResponse struct {
	Status      int
	ContentType string
	Body        []byte
}

// bodyWriter 在写出响应的同时留存一份正文
type bodyWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w *bodyWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *bodyWriter) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

// CacheResponse 公开 GET 接口的响应缓存，键为完整请求 URI。
// 只缓存 200 响应，任何写操作会清空整个缓存（见 FlushCacheOnWrite）
func CacheResponse(ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet {
			c.Next()
			return
		}

		key := responseCachePrefix + c.Request.URL.RequestURI()
		if v, ok := utils.CacheGet(key); ok {
			entry := v.(cachedResponse)
			c.Header("X-Cache", "HIT")
			c.Data(entry.Status, entry.ContentType, entry.Body)
			c.Abort()
			return
		}

		writer := &bodyWriter{ResponseWriter: c.Writer, body: &bytes.Buffer{}}
		c.Writer = writer
		c.Header("X-Cache", "MISS")

		c.Next()

		if writer.Status() == http.StatusOK {
			utils.CacheSet(key, cachedResponse{
				Status:      writer.Status(),
				ContentType: writer.Header().Get("Content-Type"),
				Body:        writer.body.Bytes(),
			}, ttl)
		}
	}
}

// FlushCacheOnWrite 任何成功的写操作之后清空响应缓存。
// 目录数据量不大，整体失效比精确失效更不容易漏
func FlushCacheOnWrite() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		switch c.Request.Method {
		case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
			if c.Writer.Status() < 400 {
				utils.CacheClear()
			}
		}
	}
}
