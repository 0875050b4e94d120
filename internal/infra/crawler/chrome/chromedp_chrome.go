package chrome

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/LouYuanbo1/epicgamedata/internal/config"
	"github.com/LouYuanbo1/epicgamedata/internal/infra/crawler/types"
	"github.com/LouYuanbo1/epicgamedata/internal/logger"
	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"
)

type chromedpCrawler struct {
	allocCtx      context.Context
	allocCtxFuc   context.CancelFunc
	pageCtx       context.Context
	pageCtxFuc    context.CancelFunc
	timeoutCtxFuc context.CancelFunc
	started       bool
	log           logger.Logger
}

func InitChromedpCrawler(ctx context.Context, cfg *config.Config, log logger.Logger) ChromeCrawler {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", cfg.Chromedp.Headless),
		chromedp.Flag("incognito", cfg.Chromedp.Incognito),
		chromedp.Flag("disable-dev-shm-usage", cfg.Chromedp.DisableDevShmUsage),
		chromedp.Flag("no-sandbox", cfg.Chromedp.NoSandbox),
	)
	if cfg.Chromedp.DisableBlinkFeatures != "" {
		opts = append(opts, chromedp.Flag("disable-blink-features", cfg.Chromedp.DisableBlinkFeatures))
	}
	if cfg.Chromedp.UserDataDir != "" {
		opts = append(opts, chromedp.UserDataDir(cfg.Chromedp.UserDataDir))
	}
	if cfg.Chromedp.UserAgent != "" {
		opts = append(opts, chromedp.UserAgent(cfg.Chromedp.UserAgent))
	}
	// LifeTime 限制整个浏览器实例的存活时间
	timeoutCtx, cancelTimeout := context.WithTimeout(ctx, time.Duration(cfg.Chromedp.LifeTime)*time.Second)
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(timeoutCtx, opts...)
	pageCtx, cancelPage := chromedp.NewContext(allocCtx)

	log.Debug("chromedp 浏览器已配置",
		logger.Bool("headless", cfg.Chromedp.Headless),
		logger.String("user_data_dir", cfg.Chromedp.UserDataDir),
	)
	return &chromedpCrawler{
		allocCtx:      allocCtx,
		allocCtxFuc:   cancelAlloc,
		pageCtx:       pageCtx,
		pageCtxFuc:    cancelPage,
		timeoutCtxFuc: cancelTimeout,
		log:           log,
	}
}

func (cc *chromedpCrawler) Close() {
	cc.pageCtxFuc()
	cc.allocCtxFuc()
	cc.timeoutCtxFuc()
}

// start 第一次Run必须使用pageCtx本身,否则派生context取消时会把标签页一起关掉
func (cc *chromedpCrawler) start() error {
	if cc.started {
		return nil
	}
	if err := chromedp.Run(cc.pageCtx, network.Enable()); err != nil {
		return fmt.Errorf("启动浏览器失败: %w", err)
	}
	cc.started = true
	return nil
}

// runContext 派生自pageCtx,同时跟随调用方ctx取消
func (cc *chromedpCrawler) runContext(ctx context.Context) (context.Context, context.CancelFunc) {
	runCtx, cancel := context.WithCancel(cc.pageCtx)
	stop := context.AfterFunc(ctx, cancel)
	return runCtx, func() {
		stop()
		cancel()
	}
}

func (cc *chromedpCrawler) InitAndNavigate(ctx context.Context, url string) error {
	if err := cc.start(); err != nil {
		return err
	}
	runCtx, cancel := cc.runContext(ctx)
	defer cancel()
	err := chromedp.Run(runCtx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body", chromedp.ByQuery),
	)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("导航失败: %w", err)
	}
	return nil
}

func (cc *chromedpCrawler) Extract(ctx context.Context, req *types.ExtractRequest) (*types.HtmlContent, error) {
	if err := cc.start(); err != nil {
		return nil, err
	}
	runCtx, cancel := cc.runContext(ctx)
	defer cancel()

	if err := chromedp.Run(runCtx, chromedp.Navigate(req.Url)); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("导航失败: %w", err)
	}

	waitCtx, waitCancel := context.WithTimeout(runCtx, req.Timeout)
	defer waitCancel()
	if err := chromedp.Run(waitCtx, chromedp.WaitReady(req.WaitSelector, chromedp.ByQuery)); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w: %s (%s)", types.ErrContentNotFound, req.WaitSelector, req.Url)
	}

	contents := make(map[string]string)
	for _, sel := range allSelectors(req) {
		arg, err := json.Marshal(sel)
		if err != nil {
			return nil, err
		}
		var text string
		js := fmt.Sprintf("(%s)(%s)", innerTextFunc, arg)
		if err := chromedp.Run(runCtx, chromedp.Evaluate(js, &text)); err != nil {
			return nil, fmt.Errorf("读取元素内容失败 %s: %w", sel, err)
		}
		contents[sel] = text
	}
	cc.log.Debug("页面内容读取完成", logger.String("url", req.Url), logger.Int("selectors", len(contents)))
	return &types.HtmlContent{Url: req.Url, Contents: contents}, nil
}
