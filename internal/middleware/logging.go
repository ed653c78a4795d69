package middleware

import (
	"bytes"
	"io"
	"strings"
	"time"

	"hrm_records_go/pkg/log"

	"github.com/gin-gonic/gin"
)

// maxLoggedBody 超过该长度的 body 只记录前缀。
const maxLoggedBody = 2048

// BodyLogWriter 同时写出响应并缓存一份用于日志。
type BodyLogWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w *BodyLogWriter) Write(b []byte) (int, error) {
	if w.body.Len() < maxLoggedBody {
		w.body.Write(b)
	}
	return w.ResponseWriter.Write(b)
}

// textual 判断 body 是否适合写进日志；上传的附件、导出的 xlsx/zip 不记录内容。
func textual(contentType string) bool {
	if contentType == "" {
		return true
	}
	return strings.HasPrefix(contentType, "application/json") || strings.HasPrefix(contentType, "text/")
}

// sensitive 路径的请求体含明文密码，不写日志。
func sensitive(path string) bool {
	return strings.HasSuffix(path, "/login") || strings.HasSuffix(path, "/operators")
}

func truncate(b []byte) string {
	if len(b) > maxLoggedBody {
		return string(b[:maxLoggedBody]) + "...(truncated)"
	}
	return string(b)
}

// RequestLogger 记录每个请求的耗时、状态码以及文本类请求/响应体。
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		startTime := time.Now()

		var requestBody []byte
		if c.Request.Body != nil && textual(c.ContentType()) && !sensitive(c.Request.URL.Path) {
			requestBody, _ = io.ReadAll(c.Request.Body)
			c.Request.Body = io.NopCloser(bytes.NewBuffer(requestBody))
		}

		blw := &BodyLogWriter{
			ResponseWriter: c.Writer,
			body:           &bytes.Buffer{},
		}
		c.Writer = blw

		c.Next()

		responseBody := ""
		if textual(c.Writer.Header().Get("Content-Type")) {
			responseBody = truncate(blw.body.Bytes())
		}

		log.Infow("HTTP request",
			"latency", time.Since(startTime),
			"status", c.Writer.Status(),
			"client_ip", c.ClientIP(),
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"request_body", truncate(requestBody),
			"response_body", responseBody,
		)
	}
}
