package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRound2(t *testing.T) {
	cases := []struct {
		name string
		in   float64
		want float64
	}{
		{"typical price", 50000.123, 50000.12},
		{"negative change", -12.346, -12.35},
		{"half rounds to even (down)", 0.125, 0.12},
		{"half rounds to even (up)", 0.135, 0.14},
		{"already rounded", 42.5, 42.5},
		{"integer", 14, 14},
		{"zero", 0, 0},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, Round2(c.in))
		})
	}
}

func TestRound2Idempotent(t *testing.T) {
	for _, v := range []float64{50000.123, -0.526, 0.125, 99999.999} {
		once := Round2(v)
		assert.Equal(t, once, Round2(once))
	}
}

func TestFormatTimestamp(t *testing.T) {
	ts := time.Date(2026, 3, 9, 7, 5, 3, 0, time.UTC)
	got := FormatTimestamp(ts)
	assert.Equal(t, "2026-03-09 07:05:03", got)

	// 输出必须能用同一布局解析回来
	parsed, err := time.Parse(TimestampLayout, got)
	require.NoError(t, err)
	assert.Equal(t, ts, parsed)
}
