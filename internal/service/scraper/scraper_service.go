package scraper

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/LouYuanbo1/epicgamedata/internal/config"
	"github.com/LouYuanbo1/epicgamedata/internal/domain/entity"
	"github.com/LouYuanbo1/epicgamedata/internal/domain/model"
	"github.com/LouYuanbo1/epicgamedata/internal/infra/crawler"
	"github.com/LouYuanbo1/epicgamedata/internal/infra/crawler/types"
	"github.com/LouYuanbo1/epicgamedata/internal/locale"
	"github.com/LouYuanbo1/epicgamedata/internal/logger"
	"github.com/LouYuanbo1/epicgamedata/param"
	"github.com/google/uuid"
)

type scraperService struct {
	pageCrawler      crawler.PageCrawler
	startUrl         string
	productSelector  string
	fallbackSelector string
	waitTimeout      time.Duration
	settle           time.Duration
	started          bool
	log              logger.Logger
}

func InitScraperService(pageCrawler crawler.PageCrawler, cfg *config.Config, log logger.Logger) ScraperService {
	return &scraperService{
		pageCrawler:      pageCrawler,
		startUrl:         cfg.Scraper.StartUrl,
		productSelector:  cfg.Scraper.ProductSelector,
		fallbackSelector: cfg.Scraper.FallbackDescriptionSelector,
		waitTimeout:      time.Duration(cfg.Scraper.WaitTimeoutSeconds) * time.Second,
		settle:           time.Duration(cfg.Scraper.SettleMillis) * time.Millisecond,
		log:              log,
	}
}

func (ss *scraperService) Scrape(ctx context.Context, params *param.Scrape, hooks param.Hooks) (*model.Result, error) {
	req, err := ss.prepare(params)
	if err != nil {
		hooks.Error(err)
		return nil, err
	}
	// 对应原来等待隐藏浏览器dom-ready之后才开始
	if err := ss.warmup(ctx); err != nil {
		ss.log.Error("抓取未开始", logger.Error(err))
		hooks.Error(err)
		return nil, err
	}

	// 每次抓取一个run_id,便于在日志中区分多次运行
	log := ss.log.With(logger.String("run_id", uuid.NewString()))
	result := model.NewResult()
	total := req.Total()
	done := 0
	hooks.Progress(0)
	hooks.Start()
	log.Info("开始抓取",
		logger.Strings("langs", req.Langs),
		logger.Int("urls", len(req.Urls)),
		logger.Int("total", total),
		logger.Duration("settle", ss.settle),
	)

	var scrapeErr error
loop:
	for _, lang := range req.Langs {
		result.Ensure(lang)
		for _, rawUrl := range req.Urls {
			if done > 0 {
				if err := sleepContext(ctx, ss.settle); err != nil {
					scrapeErr = fmt.Errorf("抓取被取消 [%s] %s: %w", lang, rawUrl, err)
					break loop
				}
			}
			doc, err := ss.scrapeOne(ctx, log, lang, rawUrl)
			if err != nil {
				scrapeErr = fmt.Errorf("抓取失败 [%s] %s: %w", lang, rawUrl, err)
				break loop
			}
			result.Add(lang, doc)
			done++
			hooks.Progress(progress(done, total))
		}
	}

	if scrapeErr != nil {
		log.Error("抓取中止", logger.Error(scrapeErr), logger.Int("done", done), logger.Int("total", total))
		hooks.Error(scrapeErr)
	} else {
		log.Info("抓取完成", logger.Int("records", result.Len()))
	}
	hooks.Finish(result)
	return result, scrapeErr
}

// prepare 复制并规范化请求,语言统一解析为商店语言代码
func (ss *scraperService) prepare(params *param.Scrape) (*param.Scrape, error) {
	if params == nil {
		return nil, ErrEmptyRequest
	}
	req := &param.Scrape{Urls: params.Urls, Langs: params.Langs}
	req.Normalize()
	if !req.IsValid() {
		return nil, ErrEmptyRequest
	}

	langs := make([]string, 0, len(req.Langs))
	seen := make(map[string]bool, len(req.Langs))
	for _, tag := range req.Langs {
		code, err := locale.Resolve(tag)
		if err != nil {
			return nil, err
		}
		if seen[code] {
			ss.log.Warn("重复的语言已忽略", logger.String("lang", tag), logger.String("resolved", code))
			continue
		}
		seen[code] = true
		langs = append(langs, code)
	}
	req.Langs = langs
	return req, nil
}

func (ss *scraperService) warmup(ctx context.Context) error {
	if ss.started || ss.startUrl == "" {
		return nil
	}
	ss.log.Debug("打开起始页", logger.String("url", ss.startUrl))
	if err := ss.pageCrawler.InitAndNavigate(ctx, ss.startUrl); err != nil {
		return fmt.Errorf("打开起始页失败: %w", err)
	}
	ss.started = true
	return nil
}

func (ss *scraperService) scrapeOne(ctx context.Context, log logger.Logger, lang, rawUrl string) (*model.GameDoc, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	target, err := locale.RewriteURL(rawUrl, lang)
	if err != nil {
		return nil, err
	}
	log.Info("抓取商品页", logger.String("lang", lang), logger.String("url", target))

	content, err := ss.pageCrawler.Extract(ctx, &types.ExtractRequest{
		Url:          target,
		WaitSelector: ss.productSelector,
		Selectors:    []string{ss.fallbackSelector},
		Timeout:      ss.waitTimeout,
	})
	if err != nil {
		return nil, err
	}

	row, err := entity.ParseRowGameData(content.Get(ss.productSelector))
	if err != nil {
		return nil, err
	}
	if err := row.Validate(); err != nil {
		return nil, err
	}
	return row.ToDocument(content.Get(ss.fallbackSelector)), nil
}

// progress 已完成页面占总数的百分比,四舍五入
func progress(done, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(100 / float64(total) * float64(done)))
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
