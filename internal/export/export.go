// Package export 把抓取结果渲染为JSON,并写入文件或系统剪贴板
package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/LouYuanbo1/epicgamedata/internal/domain/model"
	"github.com/atotto/clipboard"
)

// 测试时替换
var clipboardWriteAll = clipboard.WriteAll

func Render(result *model.Result, pretty bool) ([]byte, error) {
	if result == nil {
		result = model.NewResult()
	}
	data, err := json.Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("序列化结果失败: %w", err)
	}
	if !pretty {
		return data, nil
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, data, "", "  "); err != nil {
		return nil, fmt.Errorf("格式化结果失败: %w", err)
	}
	return buf.Bytes(), nil
}

func WriteFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("创建输出目录失败: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("写入输出文件失败: %w", err)
	}
	return nil
}

func CopyToClipboard(data []byte) error {
	if err := clipboardWriteAll(string(data)); err != nil {
		return fmt.Errorf("复制到剪贴板失败: %w", err)
	}
	return nil
}
