package chrome

import (
	"context"

	"github.com/LouYuanbo1/epicgamedata/internal/infra/crawler/types"
)

// ChromeCrawler 浏览器爬取器,打开页面并读取指定元素的文本
type ChromeCrawler interface {
	InitAndNavigate(ctx context.Context, url string) error
	Extract(ctx context.Context, req *types.ExtractRequest) (*types.HtmlContent, error)
	Close()
}

// innerTextFunc 与在页面中执行 document.querySelector(selector).innerText 等价,元素不存在时返回空串
const innerTextFunc = `(selector) => {
	const el = document.querySelector(selector);
	return el ? el.innerText : "";
}`

func allSelectors(req *types.ExtractRequest) []string {
	selectors := make([]string, 0, len(req.Selectors)+1)
	selectors = append(selectors, req.WaitSelector)
	for _, sel := range req.Selectors {
		if sel != "" && sel != req.WaitSelector {
			selectors = append(selectors, sel)
		}
	}
	return selectors
}
