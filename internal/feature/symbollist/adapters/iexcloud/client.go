package iexcloud

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"stock_dashboard/internal/feature/symbollist/adapters/iexcloud/dto"
	"stock_dashboard/internal/feature/symbollist/domain/entity"
	"stock_dashboard/internal/feature/symbollist/usecase"
	"stock_dashboard/internal/shared/ratelimiter"
)

const refDataPath = "/data/core/REF_DATA"

// Client はIEX Cloudの参照データAPIから銘柄一覧を取得するSymbolSource実装です。
type Client struct {
	cfg     Config
	client  *http.Client
	limiter ratelimiter.Limiter
}

// ClientがSymbolSourceを実装していることをコンパイル時に検証します。
var _ usecase.SymbolSource = (*Client)(nil)

// NewClient は指定された設定とHTTPクライアントでClientを生成します。
// limiter が nil の場合はレート制限を行いません。
func NewClient(cfg Config, client *http.Client, limiter ratelimiter.Limiter) *Client {
	return &Client{cfg: cfg, client: client, limiter: limiter}
}

// ListAll はREF_DATAエンドポイントから全銘柄を取得し、レスポンスの順序で返します。
// symbol が空のレコードは除外します。
func (c *Client) ListAll(ctx context.Context) ([]entity.Symbol, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	q := url.Values{}
	q.Set("token", c.cfg.APIKey)
	u := fmt.Sprintf("%s%s?%s", strings.TrimRight(c.cfg.BaseURL, "/"), refDataPath, q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	res, err := c.client.Do(req)
	if err != nil {
		// url.Error にはトークン入りのURLが含まれるため、そのまま返さない
		return nil, fmt.Errorf("iexcloud request: %w", unwrapURLError(err))
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	if res.StatusCode >= 400 {
		return nil, fmt.Errorf("iexcloud http %d", res.StatusCode)
	}

	var body []dto.RefDataRecord
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("iexcloud decode: %w", err)
	}

	symbols := make([]entity.Symbol, 0, len(body))
	for _, r := range body {
		code := strings.TrimSpace(r.Symbol)
		if code == "" {
			continue
		}
		symbols = append(symbols, entity.Symbol{Code: code, Price: r.Price})
	}
	return symbols, nil
}

func unwrapURLError(err error) error {
	var ue *url.Error
	if errors.As(err, &ue) {
		return ue.Err
	}
	return err
}
