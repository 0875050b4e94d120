package locale

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSupported(t *testing.T) {
	langs := Supported()
	require.Len(t, langs, 16)
	assert.Equal(t, "en-US", langs[0].Code)
	assert.Equal(t, "zh-Hant", langs[len(langs)-1].Code)

	// 返回副本,修改不影响内部列表
	langs[0].Code = "xx"
	assert.Equal(t, "en-US", Supported()[0].Code)
}

func TestResolve(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"en-US", "en-US"},
		{"en-us", "en-US"},
		{"DE", "de"},
		{" zh-hant ", "zh-Hant"},
		{"en", "en-US"},
		{"zh-TW", "zh-Hant"},
		{"ja-JP", "ja"},
		{"en-GB", "en-US"},
		{"es-AR", "es-MX"},
		{"pt", "pt-BR"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Resolve(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolve_Unsupported(t *testing.T) {
	for _, in := range []string{"", "xx", "not a tag", "sw", "ca", "gl", "nl", "uk", "hi"} {
		_, err := Resolve(in)
		assert.ErrorIs(t, err, ErrUnsupportedLanguage, in)
	}
}

func TestRewriteURL(t *testing.T) {
	tests := []struct {
		name string
		url  string
		lang string
		want string
	}{
		{
			name: "replace leading locale",
			url:  "https://store.epicgames.com/en-US/p/fortnite",
			lang: "de",
			want: "https://store.epicgames.com/de/p/fortnite",
		},
		{
			name: "insert missing locale",
			url:  "https://store.epicgames.com/p/fortnite",
			lang: "zh-CN",
			want: "https://store.epicgames.com/zh-CN/p/fortnite",
		},
		{
			name: "legacy store prefix",
			url:  "https://www.epicgames.com/store/zh-CN/p/alan-wake-2",
			lang: "ja",
			want: "https://www.epicgames.com/store/ja/p/alan-wake-2",
		},
		{
			name: "legacy store prefix without locale",
			url:  "https://www.epicgames.com/store/product/control",
			lang: "ko",
			want: "https://www.epicgames.com/store/ko/product/control",
		},
		{
			name: "keeps query and fragment",
			url:  "https://store.epicgames.com/fr/bundles/some-bundle?lang=fr#about",
			lang: "pt-BR",
			want: "https://store.epicgames.com/pt-BR/bundles/some-bundle?lang=fr#about",
		},
		{
			name: "no marker, first segment is locale",
			url:  "https://store.epicgames.com/es-MX/free-games",
			lang: "zh-Hant",
			want: "https://store.epicgames.com/zh-Hant/free-games",
		},
		{
			name: "no marker, no locale",
			url:  "https://store.epicgames.com/free-games/",
			lang: "it",
			want: "https://store.epicgames.com/it/free-games/",
		},
		{
			name: "no marker, plain first segment",
			url:  "https://store.epicgames.com/faq",
			lang: "de",
			want: "https://store.epicgames.com/de/faq",
		},
		{
			name: "no marker, unsupported locale-like segment",
			url:  "https://store.epicgames.com/news/",
			lang: "fr",
			want: "https://store.epicgames.com/fr/news/",
		},
		{
			name: "root",
			url:  "https://store.epicgames.com",
			lang: "ru",
			want: "https://store.epicgames.com/ru",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := RewriteURL(tt.url, tt.lang)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRewriteURL_Invalid(t *testing.T) {
	for _, in := range []string{"", "/en-US/p/fortnite", "store.epicgames.com/p/x", "http://%zz"} {
		_, err := RewriteURL(in, "de")
		assert.ErrorIs(t, err, ErrInvalidURL, in)
	}
}
