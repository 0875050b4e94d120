package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/LouYuanbo1/epicgamedata/internal/infra/persistence/state"
	"github.com/LouYuanbo1/epicgamedata/internal/input"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

type urlsOptions struct {
	statePath string
}

// newURLsCmd 编辑表单状态中保存的URL列表,scrape 未指定 --url 时使用该列表
func newURLsCmd() *cobra.Command {
	opts := &urlsOptions{}
	cmd := &cobra.Command{
		Use:   "urls",
		Short: "查看和编辑保存的商品URL列表",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return listURLs(cmd.OutOrStdout(), opts.statePath)
		},
	}
	cmd.PersistentFlags().StringVar(&opts.statePath, "state", "", "表单状态文件路径")

	cmd.AddCommand(&cobra.Command{
		Use:   "ls",
		Short: "列出保存的URL",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return listURLs(cmd.OutOrStdout(), opts.statePath)
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "add <url>...",
		Short: "在列表末尾追加URL",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return editURLs(cmd.OutOrStdout(), opts.statePath, func(l *input.URLList) error {
				for _, u := range args {
					if u = strings.TrimSpace(u); u != "" {
						l.Push(u)
					}
				}
				return nil
			})
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "rm <index>",
		Short: "删除指定位置的URL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := parseIndex(args[0])
			if err != nil {
				return err
			}
			return editURLs(cmd.OutOrStdout(), opts.statePath, func(l *input.URLList) error {
				return l.Remove(index)
			})
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "mv <from> <to>",
		Short: "移动URL到新的位置,其余URL顺延",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, err := parseIndex(args[0])
			if err != nil {
				return err
			}
			to, err := parseIndex(args[1])
			if err != nil {
				return err
			}
			return editURLs(cmd.OutOrStdout(), opts.statePath, func(l *input.URLList) error {
				return l.Move(from, to)
			})
		},
	})
	return cmd
}

func listURLs(w io.Writer, statePath string) error {
	store, err := state.NewStore(statePath)
	if err != nil {
		return err
	}
	st, err := store.Load()
	if err != nil {
		return err
	}
	renderURLs(w, store.Path(), st.Urls)
	return nil
}

// editURLs 读取保存的列表,修改后写回;语言选择保持不变
func editURLs(w io.Writer, statePath string, edit func(l *input.URLList) error) error {
	store, err := state.NewStore(statePath)
	if err != nil {
		return err
	}
	st, err := store.Load()
	if err != nil {
		return err
	}
	list := input.NewURLList(st.Urls...)
	if err := edit(list); err != nil {
		return err
	}
	st.Urls = list.Items()
	if err := store.Save(st); err != nil {
		return err
	}
	renderURLs(w, store.Path(), st.Urls)
	return nil
}

func renderURLs(w io.Writer, path string, urls []string) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.SetTitle(path)
	t.AppendHeader(table.Row{"#", "URL"})
	for i, u := range urls {
		t.AppendRow(table.Row{i, u})
	}
	t.Render()
}

func parseIndex(arg string) (int, error) {
	index, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("无效的位置 %q: %w", arg, err)
	}
	return index, nil
}
