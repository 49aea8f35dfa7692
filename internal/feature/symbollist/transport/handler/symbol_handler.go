// Package handler はsymbollistフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"stock_dashboard/internal/feature/symbollist/domain/entity"
	"stock_dashboard/internal/feature/symbollist/transport/http/dto"
	"stock_dashboard/internal/feature/symbollist/usecase"
)

// SymbolUsecase は銘柄情報に関するユースケースのインターフェースです。
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type SymbolUsecase interface {
	ListSymbols(ctx context.Context, state entity.DisplayState) ([]entity.Symbol, error)
}

// SymbolHandler は銘柄情報に関するHTTPリクエストを処理します。
type SymbolHandler struct {
	uc SymbolUsecase
}

// NewSymbolHandler は新しい SymbolHandler を作成します。
func NewSymbolHandler(uc SymbolUsecase) *SymbolHandler {
	return &SymbolHandler{uc: uc}
}

// List は銘柄の表示リストを取得するAPIです。
// クエリ search / price / sort をDisplayStateに変換してUsecaseを呼び出し、DTOに変換して返します。
// 銘柄ソースの取得に失敗した場合は502 Bad Gatewayを返します。
//
// エンドポイント例:
// GET /symbols?search=AA&price=200&sort=name
func (h *SymbolHandler) List(c *gin.Context) {
	var q dto.ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query"})
		return
	}

	state := usecase.DisplayStateFrom(q.Search, q.Price, q.Sort)
	symbols, err := h.uc.ListSymbols(c.Request.Context(), state)
	if err != nil {
		slog.Error("failed to list symbols", "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "symbol source unavailable"})
		return
	}
	c.JSON(http.StatusOK, dto.FromSymbols(symbols))
}
