package model

import (
	"bytes"
	"encoding/json"
)

type Brand struct {
	Name string `json:"name"`
}

// GameDoc 归一化后的游戏元数据,字段名与导出的JSON保持一致
type GameDoc struct {
	Namespace     string   `json:"namespace"`
	GameId        string   `json:"gameId"`
	Brand         *Brand   `json:"brand,omitempty"`
	DatePublished string   `json:"datePublished"`
	Description   string   `json:"description"`
	GamePlatform  []string `json:"gamePlatform,omitempty"`
	Image         string   `json:"image"`
	Name          string   `json:"name"`
	Producer      string   `json:"producer"`
	Publisher     string   `json:"publisher"`
	Sku           string   `json:"sku"`
	Url           string   `json:"url"`
}

// Result 按语言分组的抓取结果,语言按加入顺序保存
type Result struct {
	langs []string
	docs  map[string][]*GameDoc
}

func NewResult() *Result {
	return &Result{docs: make(map[string][]*GameDoc)}
}

func (r *Result) Add(lang string, doc *GameDoc) {
	if _, ok := r.docs[lang]; !ok {
		r.langs = append(r.langs, lang)
		r.docs[lang] = []*GameDoc{}
	}
	r.docs[lang] = append(r.docs[lang], doc)
}

// Ensure 在没有记录时也登记一个语言,导出时输出空数组
func (r *Result) Ensure(lang string) {
	if _, ok := r.docs[lang]; !ok {
		r.langs = append(r.langs, lang)
		r.docs[lang] = []*GameDoc{}
	}
}

func (r *Result) Get(lang string) []*GameDoc {
	return r.docs[lang]
}

func (r *Result) Langs() []string {
	out := make([]string, len(r.langs))
	copy(out, r.langs)
	return out
}

// Len 所有语言的记录总数
func (r *Result) Len() int {
	n := 0
	for _, docs := range r.docs {
		n += len(docs)
	}
	return n
}

// MarshalJSON 输出以语言为键的对象,键的顺序与语言加入顺序一致
func (r *Result) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, lang := range r.langs {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(lang)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(r.docs[lang])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
