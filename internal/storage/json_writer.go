package storage

import (
	"encoding/json"
	"fmt"
	"os"

	"crypto-market-pipeline/internal/model"
	"crypto-market-pipeline/internal/service"

	"go.uber.org/zap"
)

// JSONWriter 把清洗后的表写成记录数组形式的 JSON 文件
type JSONWriter struct {
	filename string
}

// NewJSONWriter 初始化 JSON 输出
func NewJSONWriter(filename string) *JSONWriter {
	return &JSONWriter{filename: filename}
}

// Save 以 2 空格缩进输出记录数组并无条件覆盖目标文件，空表输出 []
func (w *JSONWriter) Save(table model.Table) error {
	if table == nil {
		table = model.Table{}
	}

	data, err := json.MarshalIndent(table, "", "  ")
	if err != nil {
		return fmt.Errorf("encode table: %w", err)
	}

	if err := os.WriteFile(w.filename, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", w.filename, err)
	}

	service.Logger.Info("Saved cleaned dataset", zap.String("File", w.filename))
	return nil
}

func (w *JSONWriter) Filename() string { return w.filename }
