package collector

import (
	"context"
	"fmt"
	"net/http/cookiejar"
	"strings"
	"time"

	"github.com/LouYuanbo1/epicgamedata/internal/config"
	"github.com/LouYuanbo1/epicgamedata/internal/infra/crawler/types"
	"github.com/LouYuanbo1/epicgamedata/internal/logger"
	"github.com/PuerkitoBio/goquery"
	"github.com/gocolly/colly/v2"
)

type collyCrawler struct {
	colly   *colly.Collector
	headers map[string]string
	log     logger.Logger
}

func InitCollyCrawler(cfg *config.Config, log logger.Logger) (CollyCrawler, error) {
	// 同一个商品页会在不同语言下被多次访问,必须允许重复访问
	opts := []colly.CollectorOption{colly.AllowURLRevisit()}
	if cfg.Colly.UserAgent != "" {
		opts = append(opts, colly.UserAgent(cfg.Colly.UserAgent))
	}
	if len(cfg.Colly.AllowedDomains) > 0 {
		opts = append(opts, colly.AllowedDomains(cfg.Colly.AllowedDomains...))
	}
	c := colly.NewCollector(opts...)
	c.IgnoreRobotsTxt = cfg.Colly.IgnoreRobotsTxt
	c.SetRequestTimeout(time.Duration(cfg.Colly.RequestTimeout) * time.Second)
	if cfg.Colly.EnableCookieJar {
		jar, err := cookiejar.New(cfg.Colly.CookieJarOptions)
		if err != nil {
			return nil, fmt.Errorf("创建cookie jar失败: %w", err)
		}
		c.SetCookieJar(jar)
	}
	log.Debug("colly 抓取器已配置",
		logger.Strings("allowed_domains", cfg.Colly.AllowedDomains),
		logger.Bool("ignore_robots_txt", cfg.Colly.IgnoreRobotsTxt),
	)
	return &collyCrawler{
		colly:   c,
		headers: cfg.Colly.Headers,
		log:     log,
	}, nil
}

func (cc *collyCrawler) Close() {}

// InitAndNavigate 访问起始页,开启cookie jar时可以拿到站点cookie
func (cc *collyCrawler) InitAndNavigate(ctx context.Context, url string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c := cc.newCollector(ctx)
	if err := c.Visit(url); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("访问URL失败: %w", err)
	}
	c.Wait()
	return nil
}

func (cc *collyCrawler) Extract(ctx context.Context, req *types.ExtractRequest) (*types.HtmlContent, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	selectors := make([]string, 0, len(req.Selectors)+1)
	selectors = append(selectors, req.WaitSelector)
	selectors = append(selectors, req.Selectors...)

	contents := make(map[string]string, len(selectors))
	for _, sel := range selectors {
		contents[sel] = ""
	}
	found := false
	var respErr error

	c := cc.newCollector(ctx)
	c.OnHTML("html", func(e *colly.HTMLElement) {
		for _, sel := range selectors {
			text, ok := selectText(e.DOM, sel)
			if !ok {
				continue
			}
			if sel == req.WaitSelector {
				found = true
			}
			contents[sel] = text
		}
	})
	c.OnError(func(r *colly.Response, err error) {
		respErr = fmt.Errorf("请求失败(状态码 %d): %w", r.StatusCode, err)
	})

	visitErr := c.Visit(req.Url)
	c.Wait()
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if respErr != nil {
		return nil, respErr
	}
	if visitErr != nil {
		return nil, fmt.Errorf("访问URL失败: %w", visitErr)
	}
	if !found {
		return nil, fmt.Errorf("%w: %s (%s)", types.ErrContentNotFound, req.WaitSelector, req.Url)
	}
	cc.log.Debug("页面内容读取完成", logger.String("url", req.Url), logger.Int("selectors", len(contents)))
	return &types.HtmlContent{Url: req.Url, Contents: contents}, nil
}

// newCollector Clone不带回调,每次请求单独注册;请求跟随ctx取消
func (cc *collyCrawler) newCollector(ctx context.Context) *colly.Collector {
	c := cc.colly.Clone()
	c.Context = ctx
	c.OnRequest(func(r *colly.Request) {
		for k, v := range cc.headers {
			r.Headers.Set(k, v)
		}
	})
	return c
}

func selectText(root *goquery.Selection, selector string) (string, bool) {
	s := root.Find(selector).First()
	if s.Length() == 0 {
		return "", false
	}
	return strings.TrimSpace(s.Text()), true
}
