package collector

import (
	"context"

	"github.com/LouYuanbo1/epicgamedata/internal/infra/crawler/types"
)

// CollyCrawler 不执行JavaScript的静态抓取器,只适用于服务端直接输出结构化数据的页面
type CollyCrawler interface {
	InitAndNavigate(ctx context.Context, url string) error
	Extract(ctx context.Context, req *types.ExtractRequest) (*types.HtmlContent, error)
	Close()
}
