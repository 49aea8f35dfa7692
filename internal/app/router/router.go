// Package router はHTTPルーティングを構成します。
package router

import (
	"github.com/gin-gonic/gin"

	dashboardhandler "stock_dashboard/internal/feature/dashboard/transport/handler"
	symbollisthandler "stock_dashboard/internal/feature/symbollist/transport/handler"
	platformhandler "stock_dashboard/internal/platform/http/handler"
)

// NewRouter はすべてのエンドポイントを登録したエンジンを返します。
func NewRouter(health *platformhandler.HealthHandler, symbol *symbollisthandler.SymbolHandler,
	dashboard *dashboardhandler.DashboardHandler) *gin.Engine {
	r := gin.Default()

	// 導通確認用
	r.GET("/healthz", health.Health)
	r.HEAD("/healthz", health.Health)
	r.OPTIONS("/healthz", health.Health)

	// 銘柄の一覧（ステートレス）
	r.GET("/symbols", symbol.List)

	// ダッシュボード画面
	d := r.Group("/dashboards")
	{
		d.POST("", dashboard.Create)
		d.GET("/:id", dashboard.Get)
		d.DELETE("/:id", dashboard.Delete)
		d.PATCH("/:id/filters", dashboard.UpdateFilters)
		d.POST("/:id/retry", dashboard.Retry)
		d.POST("/:id/widgets", dashboard.AddWidget)
		d.DELETE("/:id/widgets/:widgetID", dashboard.RemoveWidget)
		d.POST("/:id/widgets/reorder", dashboard.ReorderWidgets)
		d.POST("/:id/theme/toggle", dashboard.ToggleTheme)
		d.POST("/:id/logout", dashboard.Logout)
	}

	return r
}
