package storage

import (
	"strconv"

	"crypto-market-pipeline/internal/model"
)

// Writer 是清洗结果落盘的通用接口，由具体文件格式实现
type Writer interface {
	// Save 覆盖写出整张表
	Save(table model.Table) error

	// Filename 返回输出文件名
	Filename() string
}

// header 是输出文件的列顺序，与 MarketRecord 的字段顺序一致
var header = []string{
	"id",
	"symbol",
	"name",
	"price_usd",
	"market_cap",
	"market_cap_rank",
	"total_volume",
	"price_change_24h",
	"change_24h_percent",
	"circulating_supply",
	"last_updated",
	"scraped_at",
}

// row 把一条记录展开成与 header 同序的字符串切片
func row(r model.MarketRecord) []string {
	return []string{
		r.ID,
		r.Symbol,
		r.Name,
		formatFloat(r.PriceUSD),
		formatFloat(r.MarketCap),
		strconv.Itoa(r.MarketCapRank),
		formatFloat(r.TotalVolume),
		formatFloat(r.PriceChange24h),
		formatFloat(r.Change24hPercent),
		formatFloat(r.CirculatingSupply),
		r.LastUpdated,
		r.ScrapedAt,
	}
}

// formatFloat 输出最短且可精确还原的十进制表示，整数值不带小数点
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
