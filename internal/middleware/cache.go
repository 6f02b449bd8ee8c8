package middleware

import (
	"bytes"
	"net/http"

	"blog-backend/internal/cache"
	"blog-backend/internal/util"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type captureWriter struct {
	gin.ResponseWriter
	body bytes.Buffer
}

func (w *captureWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *captureWriter) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

// CachePage 对GET请求做整页缓存，键是路径+查询串。
// 命中时直接返回缓存内容；未命中时捕获响应体，
// 成功响应写回缓存。在TTL内返回的内容可能是过期的
func CachePage(pageCache *cache.PageCache) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !pageCache.Enabled() || c.Request.Method != http.MethodGet {
			c.Next()
			return
		}

		key := c.Request.URL.RequestURI()
		if body, ok := pageCache.Get(key); ok {
			util.Logger.Debug("页面缓存命中", zap.String("key", key))
			c.Data(http.StatusOK, "text/html; charset=utf-8", body)
			c.Abort()
			return
		}

		writer := &captureWriter{ResponseWriter: c.Writer}
		c.Writer = writer
		c.Next()

		if writer.Status() == http.StatusOK {
			pageCache.Set(key, writer.body.Bytes())
		}
	}
}
