package model

// MarketRecord 代表工作表中的一行市场数据。
// 字段顺序即 CSV 表头和 JSON 对象的列顺序，与原始接口的列顺序一致。
type MarketRecord struct {
	ID                string  `json:"id"`                 // 币种标识，例如 "bitcoin"
	Symbol            string  `json:"symbol"`             // 交易符号，清洗后为大写
	Name              string  `json:"name"`               // 展示名称
	PriceUSD          float64 `json:"price_usd"`          // 美元价格 (原始字段 current_price)
	MarketCap         float64 `json:"market_cap"`         // 市值，第 6 步截断为整数值
	MarketCapRank     int     `json:"market_cap_rank"`    // 市值排名，第 8 步的排序键
	TotalVolume       float64 `json:"total_volume"`       // 24h 交易量，第 6 步截断为整数值
	PriceChange24h    float64 `json:"price_change_24h"`   // 24h 绝对价格变化
	Change24hPercent  float64 `json:"change_24h_percent"` // 24h 百分比变化 (原始字段 price_change_percentage_24h)
	CirculatingSupply float64 `json:"circulating_supply"` // 流通供应量
	LastUpdated       string  `json:"last_updated"`       // 数据源上报的最后更新时间
	ScrapedAt         string  `json:"scraped_at"`         // 本地处理时间戳，清洗第 5 步写入
}

// Table 是一次运行中流转的有序记录序列。
// 清洗阶段总是返回新的 Table，不原地修改输入。
type Table []MarketRecord
