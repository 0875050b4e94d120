package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/LouYuanbo1/epicgamedata/internal/domain/model"
	"github.com/LouYuanbo1/epicgamedata/internal/export"
	"github.com/LouYuanbo1/epicgamedata/internal/infra/crawler"
	"github.com/LouYuanbo1/epicgamedata/internal/infra/persistence/state"
	"github.com/LouYuanbo1/epicgamedata/internal/input"
	"github.com/LouYuanbo1/epicgamedata/internal/locale"
	"github.com/LouYuanbo1/epicgamedata/internal/logger"
	"github.com/LouYuanbo1/epicgamedata/internal/service/scraper"
	"github.com/LouYuanbo1/epicgamedata/param"
	"github.com/spf13/cobra"
)

type scrapeOptions struct {
	urls      []string
	csvPath   string
	langs     []string
	engine    string
	out       string
	copy      bool
	pretty    bool
	statePath string
	noState   bool
}

func newScrapeCmd(root *rootOptions) *cobra.Command {
	opts := &scrapeOptions{}
	cmd := &cobra.Command{
		Use:   "scrape",
		Short: "抓取商品页并输出按语言分组的JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScrape(cmd.Context(), root, opts, cmd.OutOrStdout())
		},
	}
	flags := cmd.Flags()
	flags.StringArrayVarP(&opts.urls, "url", "u", nil, "商品页URL,可重复")
	flags.StringVar(&opts.csvPath, "csv", "", "从csv文件第一列读取URL")
	flags.StringArrayVarP(&opts.langs, "lang", "l", nil, "目标语言,可重复,如 zh-CN")
	flags.StringVar(&opts.engine, "engine", "", "抓取引擎: chromedp、rod 或 colly,覆盖配置文件")
	flags.StringVarP(&opts.out, "out", "o", "", "结果写入文件,默认输出到标准输出")
	flags.BoolVar(&opts.copy, "copy", false, "结果复制到剪贴板")
	flags.BoolVar(&opts.pretty, "pretty", false, "格式化JSON输出")
	flags.StringVar(&opts.statePath, "state", "", "表单状态文件路径")
	flags.BoolVar(&opts.noState, "no-state", false, "不读取也不保存表单状态")
	return cmd
}

func runScrape(ctx context.Context, root *rootOptions, opts *scrapeOptions, stdout io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, err := root.loadConfig()
	if err != nil {
		return fmt.Errorf("解析配置失败: %w", err)
	}
	if opts.engine != "" {
		cfg.Scraper.Engine = opts.engine
	}
	log, err := root.newLogger(cfg)
	if err != nil {
		return fmt.Errorf("初始化日志失败: %w", err)
	}
	defer log.Sync()

	var store *state.Store
	if !opts.noState {
		store, err = state.NewStore(opts.statePath)
		if err != nil {
			return err
		}
	}
	req, err := buildRequest(opts, store)
	if err != nil {
		return err
	}
	if store != nil {
		if err := store.Save(&state.FormState{Lang: req.Langs, Urls: req.Urls}); err != nil {
			log.Warn("保存表单状态失败", logger.Error(err))
		} else {
			log.Debug("表单状态已保存", logger.String("path", store.Path()))
		}
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	pageCrawler, err := crawler.InitPageCrawler(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("初始化抓取引擎失败: %w", err)
	}
	defer pageCrawler.Close()

	service := scraper.InitScraperService(pageCrawler, cfg, log)
	result, scrapeErr := service.Scrape(ctx, req, progressHooks(log))
	if result == nil {
		return scrapeErr
	}

	// 中途失败时已抓到的部分结果照常输出
	data, err := export.Render(result, opts.pretty)
	if err != nil {
		return errors.Join(scrapeErr, err)
	}
	if opts.out != "" {
		if err := export.WriteFile(opts.out, data); err != nil {
			return errors.Join(scrapeErr, err)
		}
		log.Info("结果已写入文件", logger.String("path", opts.out))
	} else {
		fmt.Fprintln(stdout, string(data))
	}
	if opts.copy {
		if err := export.CopyToClipboard(data); err != nil {
			log.Warn("复制到剪贴板失败", logger.Error(err))
		} else {
			log.Info("结果已复制到剪贴板")
		}
	}
	return scrapeErr
}

// buildRequest 命令行没有给出的URL或语言从上次保存的表单状态补齐
func buildRequest(opts *scrapeOptions, store *state.Store) (*param.Scrape, error) {
	urls := append([]string{}, opts.urls...)
	if opts.csvPath != "" {
		csvUrls, err := input.ReadCSVFile(opts.csvPath)
		if err != nil {
			return nil, err
		}
		urls = append(urls, csvUrls...)
	}
	req := &param.Scrape{Urls: urls, Langs: append([]string{}, opts.langs...)}
	req.Normalize()

	if store != nil && (len(req.Urls) == 0 || len(req.Langs) == 0) {
		saved, err := store.Load()
		if err != nil {
			return nil, err
		}
		if len(req.Urls) == 0 {
			req.Urls = saved.Urls
		}
		if len(req.Langs) == 0 {
			req.Langs = saved.Lang
		}
		req.Normalize()
	}
	if !req.IsValid() {
		return nil, scraper.ErrEmptyRequest
	}
	for _, tag := range req.Langs {
		if _, err := locale.Resolve(tag); err != nil {
			return nil, err
		}
	}
	return req, nil
}

// progressHooks 中止原因由抓取服务记录,这里不再重复输出
func progressHooks(log logger.Logger) param.Hooks {
	return param.Hooks{
		OnStart: func() {
			log.Info("抓取开始")
		},
		OnProgress: func(percent int) {
			log.Info("抓取进度", logger.Int("percent", percent))
		},
		OnFinish: func(result *model.Result) {
			log.Info("抓取结束", logger.Strings("langs", result.Langs()), logger.Int("records", result.Len()))
		},
	}
}
