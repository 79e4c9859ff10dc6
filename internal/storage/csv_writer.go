package storage

import (
	"encoding/csv"
	"fmt"
	"os"

	"crypto-market-pipeline/internal/model"
	"crypto-market-pipeline/internal/service"

	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// CSVWriter 把清洗后的表写成带表头的 CSV 文件
type CSVWriter struct {
	filename string
}

// NewCSVWriter 初始化 CSV 输出
func NewCSVWriter(filename string) *CSVWriter {
	return &CSVWriter{filename: filename}
}

// Save 无条件覆盖目标文件：表头一行，每条记录一行，不输出行索引列
func (w *CSVWriter) Save(table model.Table) (err error) {
	f, err := os.Create(w.filename)
	if err != nil {
		return fmt.Errorf("create %s: %w", w.filename, err)
	}
	defer func() {
		err = multierr.Append(err, f.Close())
	}()

	cw := csv.NewWriter(f)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, record := range table {
		if err := cw.Write(row(record)); err != nil {
			return fmt.Errorf("write row %s: %w", record.Symbol, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush %s: %w", w.filename, err)
	}

	service.Logger.Info("Saved cleaned dataset", zap.String("File", w.filename))
	return nil
}

func (w *CSVWriter) Filename() string { return w.filename }
