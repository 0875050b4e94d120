package crawler

import (
	"context"
	"fmt"

	"github.com/LouYuanbo1/epicgamedata/internal/config"
	"github.com/LouYuanbo1/epicgamedata/internal/infra/crawler/chrome"
	"github.com/LouYuanbo1/epicgamedata/internal/infra/crawler/collector"
	"github.com/LouYuanbo1/epicgamedata/internal/infra/crawler/types"
	"github.com/LouYuanbo1/epicgamedata/internal/logger"
)

// PageCrawler chromedp、rod、colly三种引擎的公共能力
type PageCrawler interface {
	InitAndNavigate(ctx context.Context, url string) error
	Extract(ctx context.Context, req *types.ExtractRequest) (*types.HtmlContent, error)
	Close()
}

var (
	_ PageCrawler = (chrome.ChromeCrawler)(nil)
	_ PageCrawler = (collector.CollyCrawler)(nil)
)

// InitPageCrawler 根据 scraper.engine 创建对应的抓取引擎
func InitPageCrawler(ctx context.Context, cfg *config.Config, log logger.Logger) (PageCrawler, error) {
	log = log.With(logger.String("engine", cfg.Scraper.Engine))
	switch cfg.Scraper.Engine {
	case config.EngineChromedp:
		return chrome.InitChromedpCrawler(ctx, cfg, log), nil
	case config.EngineRod:
		return chrome.InitRodCrawler(cfg, log)
	case config.EngineColly:
		return collector.InitCollyCrawler(cfg, log)
	default:
		return nil, fmt.Errorf("未知的抓取引擎: %q", cfg.Scraper.Engine)
	}
}
