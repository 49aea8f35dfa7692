// Package handler はプラットフォームレベルのエンドポイント用HTTPハンドラーを提供します。
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ScreenCounter reports how many dashboards are mounted.
type ScreenCounter interface {
	Len() int
}

// HealthHandler は /healthz を処理します。
type HealthHandler struct {
	screens ScreenCounter
}

// NewHealthHandler は新しい HealthHandler を作成します。screens は nil でも構いません。
func NewHealthHandler(screens ScreenCounter) *HealthHandler {
	return &HealthHandler{screens: screens}
}

// Health はサービスヘルスチェック用の /healthz エンドポイントを処理します。
// GETではマウント中のダッシュボード数を返します。
func (h *HealthHandler) Health(c *gin.Context) {
	// 明示的にキャッシュを防止
	c.Header("Cache-Control", "no-store")

	switch c.Request.Method {
	case http.MethodHead:
		c.Status(http.StatusOK)
	case http.MethodOptions:
		c.Status(http.StatusNoContent)
	default:
		body := gin.H{"status": "ok"}
		if h.screens != nil {
			body["dashboards"] = h.screens.Len()
		}
		c.JSON(http.StatusOK, body)
	}
}
