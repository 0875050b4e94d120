package main

import (
	"fmt"
	"io"

	"github.com/LouYuanbo1/epicgamedata/internal/config"
	"github.com/LouYuanbo1/epicgamedata/internal/locale"
	"github.com/LouYuanbo1/epicgamedata/internal/logger"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

type rootOptions struct {
	configPath string
	verbose    bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:          "epicgamedata",
		Short:        "按语言抓取Epic商店商品页的游戏元数据",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "配置文件路径,默认使用内置配置")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "输出debug日志")

	cmd.AddCommand(newScrapeCmd(opts))
	cmd.AddCommand(newLangsCmd())
	cmd.AddCommand(newURLsCmd())
	return cmd
}

func (o *rootOptions) loadConfig() (*config.Config, error) {
	if o.configPath != "" {
		return config.LoadConfig(o.configPath)
	}
	return config.ParseConfig(appConfig)
}

func (o *rootOptions) newLogger(cfg *config.Config) (logger.Logger, error) {
	level := cfg.Logger.Level
	if o.verbose {
		level = "debug"
	}
	return logger.New(logger.Config{
		Level:       level,
		Development: cfg.Logger.Development,
		OutputPaths: cfg.Logger.OutputPaths,
	})
}

func newLangsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "langs",
		Short: "列出支持的语言",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return renderLangs(cmd.OutOrStdout(), locale.Supported())
		},
	}
}

func renderLangs(w io.Writer, langs []locale.Language) error {
	if len(langs) == 0 {
		return fmt.Errorf("没有可用的语言")
	}
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"代码", "语言"})
	for _, l := range langs {
		t.AppendRow(table.Row{l.Code, l.Label})
	}
	t.Render()
	return nil
}
