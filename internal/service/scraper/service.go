package scraper

import (
	"context"
	"errors"

	"github.com/LouYuanbo1/epicgamedata/internal/domain/model"
	"github.com/LouYuanbo1/epicgamedata/param"
)

var ErrEmptyRequest = errors.New("至少需要一个商品URL和一种语言")

type ScraperService interface {
	// Scrape 按语言、URL顺序逐个抓取,遇到第一个错误即停止。
	// 无论成功与否,开始抓取后都会以已取得的结果回调OnFinish。
	Scrape(ctx context.Context, params *param.Scrape, hooks param.Hooks) (*model.Result, error)
}
