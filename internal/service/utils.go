package service

import (
	"time"

	"github.com/shopspring/decimal"
)

// TimestampLayout 是 scraped_at 字段使用的时间格式 (YYYY-MM-DD HH:MM:SS)
const TimestampLayout = "2006-01-02 15:04:05"

// Round2 将数值保留两位小数，使用银行家舍入 (round-half-to-even)。
// 对同一数值重复应用结果不变。
func Round2(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).RoundBank(2).Float64()
	return f
}

// FormatTimestamp 生成本地处理时间戳字符串
func FormatTimestamp(t time.Time) string {
	return t.Format(TimestampLayout)
}
