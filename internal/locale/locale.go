// Package locale 维护商店支持的语言列表,并负责把商品页URL改写到指定语言
package locale

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"golang.org/x/text/language"
)

var (
	ErrUnsupportedLanguage = errors.New("不支持的语言")
	ErrInvalidURL          = errors.New("无效的商品页URL")
)

type Language struct {
	Code  string `json:"value"`
	Label string `json:"label"`
}

// 顺序与商店语言选择器一致
var supported = []Language{
	{Code: "en-US", Label: "English"},
	{Code: "ar", Label: "العربية"},
	{Code: "de", Label: "Deutsch"},
	{Code: "es-ES", Label: "Español"},
	{Code: "es-MX", Label: "Español (LA)"},
	{Code: "fr", Label: "Français"},
	{Code: "it", Label: "Italiano"},
	{Code: "ja", Label: "日本語"},
	{Code: "ko", Label: "한국어"},
	{Code: "pl", Label: "Polski"},
	{Code: "pt-BR", Label: "Português (Brasil)"},
	{Code: "ru", Label: "Русский"},
	{Code: "th", Label: "ไทย"},
	{Code: "tr", Label: "Türkçe"},
	{Code: "zh-CN", Label: "简体中文"},
	{Code: "zh-Hant", Label: "繁體中文"},
}

var (
	supportedTags = func() []language.Tag {
		tags := make([]language.Tag, 0, len(supported))
		for _, l := range supported {
			tags = append(tags, language.MustParse(l.Code))
		}
		return tags
	}()
	matcher = language.NewMatcher(supportedTags)
)

var (
	localeSegment  = regexp.MustCompile(`^[A-Za-z]{2,3}(-[A-Za-z0-9]{2,4})?$`)
	productMarkers = map[string]bool{"p": true, "product": true, "bundles": true}
)

func Supported() []Language {
	out := make([]Language, len(supported))
	copy(out, supported)
	return out
}

// Resolve 把用户输入的语言标签映射为商店使用的语言代码。
// 精确匹配优先,否则按BCP 47做近似匹配,例如 en -> en-US, zh-TW -> zh-Hant。
func Resolve(tag string) (string, error) {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return "", fmt.Errorf("%w: 空语言标签", ErrUnsupportedLanguage)
	}
	for _, l := range supported {
		if strings.EqualFold(l.Code, tag) {
			return l.Code, nil
		}
	}
	parsed, err := language.Parse(tag)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedLanguage, tag)
	}
	_, index, confidence := matcher.Match(parsed)
	if confidence < language.High {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedLanguage, tag)
	}
	// High 也包含跨语言的回退(如 sw -> en),只接受同一基础语言的地区或书写变体
	base, _ := parsed.Base()
	supportedBase, _ := supportedTags[index].Base()
	if base != supportedBase {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedLanguage, tag)
	}
	return supported[index].Code, nil
}

// RewriteURL 替换商品页URL中的语言段。
// 语言段位于第一个商品标记段(p/product/bundles)之前,没有标记时为第一段;
// 原URL没有语言段时在该位置插入。
func RewriteURL(rawURL, lang string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	if !u.IsAbs() || u.Host == "" {
		return "", fmt.Errorf("%w: %s", ErrInvalidURL, rawURL)
	}

	segments := splitPath(u.Path)
	slot := 0
	hasMarker := false
	for i, seg := range segments {
		if productMarkers[strings.ToLower(seg)] {
			hasMarker = true
			slot = i
			if i > 0 && localeSegment.MatchString(segments[i-1]) {
				slot = i - 1
			}
			break
		}
	}

	replace := slot < len(segments) && localeSegment.MatchString(segments[slot])
	// 没有商品标记时第一段可能是普通路径(如 /faq),必须是可识别的语言才替换
	if replace && !hasMarker {
		_, err := Resolve(segments[slot])
		replace = err == nil
	}
	if replace {
		segments[slot] = lang
	} else {
		segments = append(segments[:slot], append([]string{lang}, segments[slot:]...)...)
	}

	trailing := strings.HasSuffix(u.Path, "/") && len(splitPath(u.Path)) > 0
	u.Path = "/" + strings.Join(segments, "/")
	if trailing {
		u.Path += "/"
	}
	u.RawPath = ""
	return u.String(), nil
}

func splitPath(p string) []string {
	parts := strings.Split(p, "/")
	segments := make([]string, 0, len(parts))
	for _, part := range parts {
		if part != "" {
			segments = append(segments, part)
		}
	}
	return segments
}
