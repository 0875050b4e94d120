package param

import (
	"strings"

	"github.com/LouYuanbo1/epicgamedata/internal/domain/model"
)

// Scrape 一次抓取请求:每种语言下依次访问所有商品页
type Scrape struct {
	Urls  []string `json:"urls"`
	Langs []string `json:"lang"`
}

// Normalize 去掉空白URL和语言,保持原有顺序
func (s *Scrape) Normalize() {
	s.Urls = compact(s.Urls)
	s.Langs = compact(s.Langs)
}

func (s *Scrape) IsValid() bool {
	return len(s.Urls) > 0 && len(s.Langs) > 0
}

// Total 需要访问的页面总数,用于计算进度
func (s *Scrape) Total() int {
	return len(s.Urls) * len(s.Langs)
}

// Hooks 抓取过程中回调给展示层的事件,均可为nil
type Hooks struct {
	OnStart    func()
	OnProgress func(percent int)
	OnFinish   func(result *model.Result)
	OnError    func(err error)
}

func (h Hooks) Start() {
	if h.OnStart != nil {
		h.OnStart()
	}
}

func (h Hooks) Progress(percent int) {
	if h.OnProgress != nil {
		h.OnProgress(percent)
	}
}

func (h Hooks) Finish(result *model.Result) {
	if h.OnFinish != nil {
		h.OnFinish(result)
	}
}

func (h Hooks) Error(err error) {
	if h.OnError != nil {
		h.OnError(err)
	}
}

func compact(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
