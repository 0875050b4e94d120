// Package input 读取待抓取的商品页URL,并提供列表的增删和拖拽排序操作
package input

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

var ErrIndexOutOfRange = errors.New("索引超出范围")

// ReadCSV 取每行第一列作为URL,第一列为空的行跳过
func ReadCSV(r io.Reader) ([]string, error) {
	reader := csv.NewReader(r)
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var urls []string
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("读取csv失败: %w", err)
		}
		if len(record) == 0 {
			continue
		}
		if first := strings.TrimSpace(strings.TrimPrefix(record[0], "\ufeff")); first != "" {
			urls = append(urls, first)
		}
	}
	return urls, nil
}

func ReadCSVFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("打开csv文件失败: %w", err)
	}
	defer f.Close()
	return ReadCSV(f)
}

// URLList 有序的URL列表
type URLList struct {
	items []string
}

func NewURLList(urls ...string) *URLList {
	items := make([]string, len(urls))
	copy(items, urls)
	return &URLList{items: items}
}

func (l *URLList) Push(url string) {
	l.items = append(l.items, url)
}

func (l *URLList) Remove(index int) error {
	if index < 0 || index >= len(l.items) {
		return fmt.Errorf("%w: %d", ErrIndexOutOfRange, index)
	}
	l.items = append(l.items[:index], l.items[index+1:]...)
	return nil
}

// Move 把from位置的元素移动到to位置,其余元素顺延
func (l *URLList) Move(from, to int) error {
	if from < 0 || from >= len(l.items) {
		return fmt.Errorf("%w: %d", ErrIndexOutOfRange, from)
	}
	if to < 0 || to >= len(l.items) {
		return fmt.Errorf("%w: %d", ErrIndexOutOfRange, to)
	}
	if from == to {
		return nil
	}
	item := l.items[from]
	l.items = append(l.items[:from], l.items[from+1:]...)
	l.items = append(l.items[:to], append([]string{item}, l.items[to:]...)...)
	return nil
}

func (l *URLList) Items() []string {
	out := make([]string, len(l.items))
	copy(out, l.items)
	return out
}

func (l *URLList) Len() int {
	return len(l.items)
}
