package types

import (
	"errors"
	"time"
)

// ErrContentNotFound 在超时时间内页面没有出现需要等待的元素
var ErrContentNotFound = errors.New("页面中未找到目标内容")

type ExtractRequest struct {
	Url string
	// 必须出现的元素,等待它出现后再读取其余选择器
	WaitSelector string
	// 可选元素,不存在时内容为空字符串
	Selectors []string
	Timeout   time.Duration
}

type HtmlContent struct {
	Url      string
	Contents map[string]string
}

func (hc *HtmlContent) Get(selector string) string {
	if hc == nil || hc.Contents == nil {
		return ""
	}
	return hc.Contents[selector]
}
