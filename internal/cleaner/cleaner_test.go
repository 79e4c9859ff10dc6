package cleaner

import (
	"os"
	"testing"
	"time"

	"crypto-market-pipeline/internal/model"
	"crypto-market-pipeline/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	service.InitLogger()
	os.Exit(m.Run())
}

// 原始快照：顺序打乱、含重复 symbol 和无效价格
func sampleTable() model.Table {
	return model.Table{
		{
			ID: "ethereum", Symbol: "eth", Name: "Ethereum",
			PriceUSD: 2345.678, MarketCap: 280000000000.7, MarketCapRank: 2,
			TotalVolume: 12000000000.9, PriceChange24h: -12.346, Change24hPercent: -0.527,
			CirculatingSupply: 120000000, LastUpdated: "2026-02-10T08:00:00.000Z",
		},
		{
			ID: "bitcoin", Symbol: "btc", Name: "Bitcoin",
			PriceUSD: 50000.123, MarketCap: 980000000000.4, MarketCapRank: 1,
			TotalVolume: 35000000000.2, PriceChange24h: 610.987, Change24hPercent: 1.234,
			CirculatingSupply: 19700000, LastUpdated: "2026-02-10T08:00:00.000Z",
		},
		{
			ID: "wrapped-bitcoin", Symbol: "btc", Name: "Wrapped Bitcoin",
			PriceUSD: 49998.7, MarketCap: 12000000000, MarketCapRank: 12,
			TotalVolume: 300000000, PriceChange24h: 609.1, Change24hPercent: 1.2,
			CirculatingSupply: 150000, LastUpdated: "2026-02-10T08:00:00.000Z",
		},
		{
			ID: "deadcoin", Symbol: "ded", Name: "Dead Coin",
			PriceUSD: 0, MarketCap: 1000, MarketCapRank: 40,
			TotalVolume: 0, PriceChange24h: 0, Change24hPercent: 0,
			CirculatingSupply: 0, LastUpdated: "",
		},
	}
}

func TestCleanFullPipeline(t *testing.T) {
	cleaned := NewCleaner().Clean(sampleTable())

	// 无效价格行和重复 symbol 都被剔除
	require.Len(t, cleaned, 2)

	btc, eth := cleaned[0], cleaned[1]

	// 按市值排名升序
	assert.Equal(t, 1, btc.MarketCapRank)
	assert.Equal(t, 2, eth.MarketCapRank)

	// symbol 大写
	assert.Equal(t, "BTC", btc.Symbol)
	assert.Equal(t, "ETH", eth.Symbol)

	// 重复 symbol 保留先出现的那行
	assert.Equal(t, "bitcoin", btc.ID)

	// 数值列保留两位小数
	assert.Equal(t, 50000.12, btc.PriceUSD)
	assert.Equal(t, 610.99, btc.PriceChange24h)
	assert.Equal(t, 1.23, btc.Change24hPercent)
	assert.Equal(t, 2345.68, eth.PriceUSD)
	assert.Equal(t, -12.35, eth.PriceChange24h)
	assert.Equal(t, -0.53, eth.Change24hPercent)

	// 市值和成交量截断成整数
	assert.Equal(t, 980000000000.0, btc.MarketCap)
	assert.Equal(t, 280000000000.0, eth.MarketCap)
	assert.Equal(t, 12000000000.0, eth.TotalVolume)
}

func TestCleanStampsSingleTimestamp(t *testing.T) {
	cleaned := NewCleaner().Clean(sampleTable())
	require.NotEmpty(t, cleaned)

	// 同一次运行里所有记录共享同一个时间戳
	for _, r := range cleaned {
		assert.Equal(t, cleaned[0].ScrapedAt, r.ScrapedAt)
	}

	parsed, err := time.Parse(service.TimestampLayout, cleaned[0].ScrapedAt)
	require.NoError(t, err)

	// 布局不带时区，和经过同一条路径格式化的当前时间比较
	now, err := time.Parse(service.TimestampLayout, service.FormatTimestamp(time.Now()))
	require.NoError(t, err)
	assert.WithinDuration(t, now, parsed, time.Minute)
}

func TestCleanDoesNotMutateInput(t *testing.T) {
	raw := sampleTable()
	NewCleaner().Clean(raw)

	assert.Equal(t, "eth", raw[0].Symbol)
	assert.Equal(t, 2345.678, raw[0].PriceUSD)
	assert.Empty(t, raw[0].ScrapedAt)
	assert.Len(t, raw, 4)
}

func TestCleanDropsInvalidBeforeDedupe(t *testing.T) {
	// 无效价格的那条先被过滤，去重不会吃掉唯一有效的记录
	table := model.Table{
		{ID: "bitcoin", Symbol: "btc", Name: "Bitcoin", PriceUSD: 50000.123, MarketCapRank: 1},
		{ID: "bitcoin-stale", Symbol: "btc", Name: "Bitcoin Stale", PriceUSD: 0, MarketCapRank: 1},
	}

	cleaned := NewCleaner().Clean(table)

	require.Len(t, cleaned, 1)
	assert.Equal(t, "BTC", cleaned[0].Symbol)
	assert.Equal(t, 50000.12, cleaned[0].PriceUSD)
	assert.Equal(t, "bitcoin", cleaned[0].ID)
}

func TestCleanEmptyTable(t *testing.T) {
	assert.Empty(t, NewCleaner().Clean(model.Table{}))
	assert.Empty(t, NewCleaner().Clean(nil))
}

func TestCleanAllPricesPositive(t *testing.T) {
	cleaned := NewCleaner().Clean(sampleTable())
	for _, r := range cleaned {
		assert.Greater(t, r.PriceUSD, 0.0)
	}
}
