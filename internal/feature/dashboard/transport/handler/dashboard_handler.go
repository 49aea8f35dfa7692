// Package handler はダッシュボード画面のHTTPハンドラーを提供します。
package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"stock_dashboard/internal/feature/dashboard/domain/entity"
	"stock_dashboard/internal/feature/dashboard/transport/http/dto"
	"stock_dashboard/internal/feature/dashboard/usecase"
	symbolusecase "stock_dashboard/internal/feature/symbollist/usecase"
	widgetentity "stock_dashboard/internal/feature/widgets/domain/entity"
	widgetdto "stock_dashboard/internal/feature/widgets/transport/http/dto"
	widgetusecase "stock_dashboard/internal/feature/widgets/usecase"
)

// Screens はマウント中のダッシュボードを管理するユースケースのインターフェースです。
type Screens interface {
	Mount() (*usecase.Dashboard, error)
	Get(id string) (*usecase.Dashboard, error)
	Unmount(id string) error
	Logout(id string) (entity.Screen, error)
}

// DashboardHandler はダッシュボードに関するHTTPリクエストを処理します。
type DashboardHandler struct {
	screens Screens
}

// NewDashboardHandler は新しい DashboardHandler を作成します。
func NewDashboardHandler(screens Screens) *DashboardHandler {
	return &DashboardHandler{screens: screens}
}

// Create はダッシュボードをマウントし、ロード中のスナップショットを返します。
//
// エンドポイント例:
// POST /dashboards
func (h *DashboardHandler) Create(c *gin.Context) {
	d, err := h.screens.Mount()
	if err != nil {
		slog.Warn("failed to mount dashboard", "error", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, dto.FromSnapshot(d.Snapshot()))
}

// Get は現在のスナップショットを返します。
func (h *DashboardHandler) Get(c *gin.Context) {
	d, ok := h.dashboard(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, dto.FromSnapshot(d.Snapshot()))
}

// Delete はダッシュボードをアンマウントします。進行中のロードはキャンセルされます。
func (h *DashboardHandler) Delete(c *gin.Context) {
	if err := h.screens.Unmount(c.Param("id")); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

// UpdateFilters は検索・価格・並び替えの入力を部分更新し、表示リストを再計算します。
//
// エンドポイント例:
// PATCH /dashboards/:id/filters {"price":"150","sort":"price"}
func (h *DashboardHandler) UpdateFilters(c *gin.Context) {
	d, ok := h.dashboard(c)
	if !ok {
		return
	}
	var req dto.UpdateFiltersReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	c.JSON(http.StatusOK, dto.FromSnapshot(d.UpdateFilters(req.ToFilterUpdate())))
}

// Retry は失敗したロードを再実行します。
// 失敗状態でない場合は409 Conflictを返します。
func (h *DashboardHandler) Retry(c *gin.Context) {
	d, ok := h.dashboard(c)
	if !ok {
		return
	}
	snap, err := d.Retry()
	switch {
	case errors.Is(err, usecase.ErrDashboardNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, symbolusecase.ErrNotRetryable):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case err != nil:
		slog.Error("failed to retry symbol load", "dashboard", d.ID(), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	default:
		c.JSON(http.StatusAccepted, dto.FromSnapshot(snap))
	}
}

// AddWidget はウィジェットを末尾に追加します。
//
// エンドポイント例:
// POST /dashboards/:id/widgets {"type":"Crypto"}
func (h *DashboardHandler) AddWidget(c *gin.Context) {
	d, ok := h.dashboard(c)
	if !ok {
		return
	}
	var req widgetdto.AddWidgetReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	w, err := d.AddWidget(widgetentity.WidgetType(req.Type))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, widgetdto.FromWidget(w))
}

// RemoveWidget はウィジェットを削除します。存在しないIDでも204を返します。
func (h *DashboardHandler) RemoveWidget(c *gin.Context) {
	d, ok := h.dashboard(c)
	if !ok {
		return
	}
	id, err := strconv.ParseInt(c.Param("widgetID"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid widget id"})
		return
	}
	d.RemoveWidget(id)
	c.Status(http.StatusNoContent)
}

// ReorderWidgets はfromの位置のウィジェットをtoの位置へ移動します。
// 範囲外のインデックスは422 Unprocessable Entityを返し、並びは変更しません。
//
// エンドポイント例:
// POST /dashboards/:id/widgets/reorder {"from":0,"to":2}
func (h *DashboardHandler) ReorderWidgets(c *gin.Context) {
	d, ok := h.dashboard(c)
	if !ok {
		return
	}
	var req widgetdto.ReorderReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	widgets, err := d.ReorderWidgets(*req.From, *req.To)
	if errors.Is(err, widgetusecase.ErrWidgetIndexOutOfRange) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		slog.Error("failed to reorder widgets", "dashboard", d.ID(), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusOK, widgetdto.FromWidgets(widgets))
}

// ToggleTheme はライト/ダークのテーマを切り替えます。
func (h *DashboardHandler) ToggleTheme(c *gin.Context) {
	d, ok := h.dashboard(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, dto.ThemeRes{Theme: string(d.ToggleTheme())})
}

// Logout はダッシュボードを破棄し、遷移先としてログイン画面を返します。
func (h *DashboardHandler) Logout(c *gin.Context) {
	screen, err := h.screens.Logout(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, dto.LogoutRes{NavigateTo: string(screen)})
}

// dashboard looks up the :id dashboard and writes 404 when it is not mounted.
func (h *DashboardHandler) dashboard(c *gin.Context) (*usecase.Dashboard, bool) {
	d, err := h.screens.Get(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return nil, false
	}
	return d, true
}
