package cleaner

import (
	"math"
	"sort"
	"strings"
	"time"

	"crypto-market-pipeline/internal/model"
	"crypto-market-pipeline/internal/service"

	"go.uber.org/zap"
)

// step 是一次清洗操作：接收当前表，返回处理后的表。
// 任何步骤在合法输入下都不允许失败，对空表全部是无操作。
type step struct {
	name  string
	apply func(model.Table) model.Table
}

// Cleaner 按固定顺序执行八步清洗。
// 顺序是契约的一部分：后面的步骤依赖前面步骤产生的列名和类型。
type Cleaner struct {
	steps []step
}

// NewCleaner 初始化清洗器并登记全部步骤
func NewCleaner() *Cleaner {
	c := &Cleaner{}
	c.steps = []step{
		{"Renamed columns", c.renameColumns},
		{"Converted symbols to uppercase", c.uppercaseSymbols},
		{"Removed rows with invalid prices", c.dropInvalidPrices},
		{"Rounded numeric values to 2 decimals", c.roundNumeric},
		{"Added processing timestamp", c.stampTimestamp},
		{"Formatted market cap and volume as integers", c.coerceIntegers},
		{"Removed duplicate symbols", c.dedupeBySymbol},
		{"Sorted by market cap rank", c.sortByRank},
	}
	return c
}

// Clean 对输入表依次执行全部清洗步骤并返回新表，不修改调用方的表
func (c *Cleaner) Clean(table model.Table) model.Table {
	service.Logger.Info("Cleaning data...", zap.Int("Rows", len(table)))

	out := make(model.Table, len(table))
	copy(out, table)

	for _, s := range c.steps {
		out = s.apply(out)
		service.Logger.Info(s.name)
	}

	service.Logger.Info("Cleaned dataset ready", zap.Int("Rows", len(out)))
	return out
}

// renameColumns 对应原始表的列改名 (current_price -> price_usd,
// price_change_percentage_24h -> change_24h_percent)。
// 结构体字段在抓取转换时已经携带清洗后的列名，这一步保留在序列中以维持步骤顺序。
func (c *Cleaner) renameColumns(t model.Table) model.Table {
	return t
}

func (c *Cleaner) uppercaseSymbols(t model.Table) model.Table {
	for i := range t {
		t[i].Symbol = strings.ToUpper(t[i].Symbol)
	}
	return t
}

// dropInvalidPrices 丢弃价格缺失或为零的记录，清洗后全表满足 price > 0
func (c *Cleaner) dropInvalidPrices(t model.Table) model.Table {
	kept := make(model.Table, 0, len(t))
	for _, r := range t {
		if r.PriceUSD > 0 {
			kept = append(kept, r)
		}
	}
	return kept
}

// roundNumeric 把三个价格相关字段保留两位小数 (银行家舍入)，重复应用结果不变
func (c *Cleaner) roundNumeric(t model.Table) model.Table {
	for i := range t {
		t[i].PriceUSD = service.Round2(t[i].PriceUSD)
		t[i].Change24hPercent = service.Round2(t[i].Change24hPercent)
		t[i].PriceChange24h = service.Round2(t[i].PriceChange24h)
	}
	return t
}

// stampTimestamp 为全表写入同一个本地处理时间戳
func (c *Cleaner) stampTimestamp(t model.Table) model.Table {
	stamp := service.FormatTimestamp(time.Now())
	for i := range t {
		t[i].ScrapedAt = stamp
	}
	return t
}

// coerceIntegers 截断 market_cap 和 total_volume 的小数部分
func (c *Cleaner) coerceIntegers(t model.Table) model.Table {
	for i := range t {
		t[i].MarketCap = math.Trunc(t[i].MarketCap)
		t[i].TotalVolume = math.Trunc(t[i].TotalVolume)
	}
	return t
}

// dedupeBySymbol 按符号去重，保留当前顺序中的第一条
func (c *Cleaner) dedupeBySymbol(t model.Table) model.Table {
	seen := make(map[string]struct{}, len(t))
	kept := make(model.Table, 0, len(t))
	for _, r := range t {
		if _, ok := seen[r.Symbol]; ok {
			continue
		}
		seen[r.Symbol] = struct{}{}
		kept = append(kept, r)
	}
	return kept
}

// sortByRank 按市值排名稳定升序排序；排序后的切片即密集的 0 起始索引
func (c *Cleaner) sortByRank(t model.Table) model.Table {
	sort.SliceStable(t, func(i, j int) bool {
		return t[i].MarketCapRank < t[j].MarketCapRank
	})
	return t
}
