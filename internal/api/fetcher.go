package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"crypto-market-pipeline/internal/model"
	"crypto-market-pipeline/internal/service"

	"go.uber.org/zap"
)

// CoinMarket 适配 CoinGecko /coins/markets 接口的响应结构。
// 缺失或为 null 的字段保持 Go 零值，等价于原始表的 0 / 空串默认值。
type CoinMarket struct {
	ID                string  `json:"id"`
	Symbol            string  `json:"symbol"`
	Name              string  `json:"name"`
	CurrentPrice      float64 `json:"current_price"`
	MarketCap         float64 `json:"market_cap"`
	MarketCapRank     int     `json:"market_cap_rank"`
	TotalVolume       float64 `json:"total_volume"`
	PriceChangePct24h float64 `json:"price_change_percentage_24h"`
	PriceChange24h    float64 `json:"price_change_24h"`
	CirculatingSupply float64 `json:"circulating_supply"`
	LastUpdated       string  `json:"last_updated"`
}

// Fetcher 负责向行情接口发起一次快照请求并转换为内部表结构
type Fetcher struct {
	cfg    *service.APIConfig
	client *http.Client
}

// NewFetcher 初始化快照抓取器
func NewFetcher(cfg *service.APIConfig) *Fetcher {
	return &Fetcher{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
	}
}

// Fetch 执行一次行情快照请求，按 MaxRecords 截断后返回原始表。
// 网络错误、非 2xx 状态以及 JSON 解析失败都以 error 返回，由上层决定终止。
func (f *Fetcher) Fetch(ctx context.Context) (model.Table, error) {
	service.Logger.Info("Starting market snapshot fetch...", zap.String("URL", f.cfg.URL))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.cfg.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	// 固定查询参数：美元计价，按市值降序取第一页
	q := url.Values{}
	q.Set("vs_currency", f.cfg.Currency)
	q.Set("order", f.cfg.Order)
	q.Set("per_page", strconv.Itoa(f.cfg.PerPage))
	q.Set("page", strconv.Itoa(f.cfg.Page))
	q.Set("sparkline", strconv.FormatBool(f.cfg.Sparkline))
	req.URL.RawQuery = q.Encode()
	req.Header.Set("User-Agent", f.cfg.UserAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request market data: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status: %s", resp.Status)
	}

	var coins []CoinMarket
	if err := json.NewDecoder(resp.Body).Decode(&coins); err != nil {
		return nil, fmt.Errorf("decode market data: %w", err)
	}

	// 只保留排名靠前的记录
	if f.cfg.MaxRecords > 0 && len(coins) > f.cfg.MaxRecords {
		coins = coins[:f.cfg.MaxRecords]
	}

	table := make(model.Table, 0, len(coins))
	for _, coin := range coins {
		table = append(table, model.MarketRecord{
			ID:                coin.ID,
			Symbol:            coin.Symbol,
			Name:              coin.Name,
			PriceUSD:          coin.CurrentPrice,
			MarketCap:         coin.MarketCap,
			MarketCapRank:     coin.MarketCapRank,
			TotalVolume:       coin.TotalVolume,
			PriceChange24h:    coin.PriceChange24h,
			Change24hPercent:  coin.PriceChangePct24h,
			CirculatingSupply: coin.CirculatingSupply,
			LastUpdated:       coin.LastUpdated,
		})
	}

	service.Logger.Info("Successfully fetched market snapshot", zap.Int("Rows", len(table)))
	return table, nil
}
