package chrome

import (
	"context"
	"fmt"

	"github.com/LouYuanbo1/epicgamedata/internal/config"
	"github.com/LouYuanbo1/epicgamedata/internal/infra/crawler/options"
	"github.com/LouYuanbo1/epicgamedata/internal/infra/crawler/types"
	"github.com/LouYuanbo1/epicgamedata/internal/logger"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"
)

type rodCrawler struct {
	browser *rod.Browser
	page    *rod.Page
	stealth bool
	log     logger.Logger
}

func InitRodCrawler(cfg *config.Config, log logger.Logger) (ChromeCrawler, error) {
	l := options.CreateLauncher(cfg.Rod.UserMode,
		options.WithBin(cfg.Rod.Bin),
		options.WithUserDataDir(cfg.Rod.UserDataDir),
		options.WithHeadless(cfg.Rod.Headless),
		options.WithDisableBlinkFeatures(cfg.Rod.DisableBlinkFeatures),
		options.WithIncognito(cfg.Rod.Incognito),
		options.WithDisableDevShmUsage(cfg.Rod.DisableDevShmUsage),
		options.WithNoSandbox(cfg.Rod.NoSandbox),
		options.WithUserAgent(cfg.Rod.UserAgent),
		options.WithLeakless(cfg.Rod.Leakless),
	)
	controlURL, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("启动浏览器失败: %w", err)
	}
	log.Debug("浏览器连接URL", logger.String("control_url", controlURL))

	browser := rod.New().ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		return nil, fmt.Errorf("连接浏览器失败: %w", err)
	}
	return &rodCrawler{
		browser: browser,
		stealth: cfg.Rod.Stealth,
		log:     log,
	}, nil
}

func (rc *rodCrawler) Close() {
	if err := rc.browser.Close(); err != nil {
		rc.log.Warn("关闭浏览器失败", logger.Error(err))
	}
}

// ensurePage 整个抓取过程复用同一个标签页,与原来单个隐藏webview的行为一致
func (rc *rodCrawler) ensurePage() (*rod.Page, error) {
	if rc.page != nil {
		return rc.page, nil
	}
	var (
		page *rod.Page
		err  error
	)
	if rc.stealth {
		page, err = stealth.Page(rc.browser)
	} else {
		page, err = rc.browser.Page(proto.TargetCreateTarget{})
	}
	if err != nil {
		return nil, fmt.Errorf("创建页面失败: %w", err)
	}
	rc.page = page
	return page, nil
}

func (rc *rodCrawler) InitAndNavigate(ctx context.Context, url string) error {
	page, err := rc.ensurePage()
	if err != nil {
		return err
	}
	p := page.Context(ctx)
	if err := p.Navigate(url); err != nil {
		return fmt.Errorf("导航失败: %w", err)
	}
	if err := p.WaitLoad(); err != nil {
		return fmt.Errorf("等待页面加载失败: %w", err)
	}
	return nil
}

func (rc *rodCrawler) Extract(ctx context.Context, req *types.ExtractRequest) (*types.HtmlContent, error) {
	page, err := rc.ensurePage()
	if err != nil {
		return nil, err
	}
	p := page.Context(ctx)
	if err := p.Navigate(req.Url); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("导航失败: %w", err)
	}

	waitPage := p.Timeout(req.Timeout)
	_, err = waitPage.Element(req.WaitSelector)
	waitPage.CancelTimeout()
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w: %s (%s)", types.ErrContentNotFound, req.WaitSelector, req.Url)
	}

	contents := make(map[string]string)
	for _, sel := range allSelectors(req) {
		res, err := p.Eval(innerTextFunc, sel)
		if err != nil {
			return nil, fmt.Errorf("读取元素内容失败 %s: %w", sel, err)
		}
		contents[sel] = res.Value.Str()
	}
	rc.log.Debug("页面内容读取完成", logger.String("url", req.Url), logger.Int("selectors", len(contents)))
	return &types.HtmlContent{Url: req.Url, Contents: contents}, nil
}
