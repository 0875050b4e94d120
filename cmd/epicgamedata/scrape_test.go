package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/LouYuanbo1/epicgamedata/internal/infra/persistence/state"
	"github.com/LouYuanbo1/epicgamedata/internal/locale"
	"github.com/LouYuanbo1/epicgamedata/internal/logger"
	"github.com/LouYuanbo1/epicgamedata/internal/service/scraper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T, saved *state.FormState) *state.Store {
	t.Helper()
	store, err := state.NewStore(filepath.Join(t.TempDir(), "state.json"))
	require.NoError(t, err)
	if saved != nil {
		require.NoError(t, store.Save(saved))
	}
	return store
}

func TestBuildRequest_FromFlagsAndCSV(t *testing.T) {
	csvPath := filepath.Join(t.TempDir(), "urls.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte("https://store.epicgames.com/en-US/p/b\n"), 0o644))

	req, err := buildRequest(&scrapeOptions{
		urls:    []string{"https://store.epicgames.com/en-US/p/a", "  "},
		csvPath: csvPath,
		langs:   []string{"zh-CN", "de"},
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"https://store.epicgames.com/en-US/p/a",
		"https://store.epicgames.com/en-US/p/b",
	}, req.Urls)
	assert.Equal(t, []string{"zh-CN", "de"}, req.Langs)
}

func TestBuildRequest_FallsBackToSavedState(t *testing.T) {
	store := newTestStore(t, &state.FormState{
		Lang: []string{"ja"},
		Urls: []string{"https://store.epicgames.com/en-US/p/saved"},
	})

	req, err := buildRequest(&scrapeOptions{langs: []string{"fr"}}, store)
	require.NoError(t, err)
	assert.Equal(t, []string{"https://store.epicgames.com/en-US/p/saved"}, req.Urls)
	assert.Equal(t, []string{"fr"}, req.Langs)

	req, err = buildRequest(&scrapeOptions{}, store)
	require.NoError(t, err)
	assert.Equal(t, []string{"ja"}, req.Langs)
}

func TestBuildRequest_Errors(t *testing.T) {
	_, err := buildRequest(&scrapeOptions{urls: []string{"https://a"}}, newTestStore(t, nil))
	assert.ErrorIs(t, err, scraper.ErrEmptyRequest)

	_, err = buildRequest(&scrapeOptions{urls: []string{"https://a"}, langs: []string{"xx-YY"}}, nil)
	assert.ErrorIs(t, err, locale.ErrUnsupportedLanguage)

	_, err = buildRequest(&scrapeOptions{csvPath: filepath.Join(t.TempDir(), "missing.csv"), langs: []string{"de"}}, nil)
	assert.Error(t, err)
}

func TestRenderLangs(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, renderLangs(&buf, locale.Supported()))
	out := buf.String()
	assert.Contains(t, out, "zh-CN")
	assert.Contains(t, out, "简体中文")
	assert.Contains(t, out, "pt-BR")

	assert.Error(t, renderLangs(&buf, nil))
}

func TestRootOptions_LoadEmbeddedConfig(t *testing.T) {
	cfg, err := (&rootOptions{}).loadConfig()
	require.NoError(t, err)
	assert.Equal(t, "#_schemaOrgMarkup-Product", cfg.Scraper.ProductSelector)
	assert.Equal(t, "chromedp", cfg.Scraper.Engine)
}

const storeProductPage = `<!doctype html>
<html><head>
<script id="_schemaOrgMarkup-Product" type="application/ld+json">{"sku":"ns:good","name":"Good Game","url":"https://store.epicgames.com/de/p/good"}</script>
</head><body></body></html>`

// newStoreServer 只有 /de/p/good 是商品页,其他商品页返回404
func newStoreServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		fmt.Fprint(w, "<html><body>home</body></html>")
	})
	mux.HandleFunc("/de/p/good", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, storeProductPage)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

// writeTestConfig 配置文件里的引擎是chromedp,由 --engine 覆盖
func writeTestConfig(t *testing.T, dir, startUrl string) string {
	t.Helper()
	raw, err := json.Marshal(map[string]any{
		"logger": map[string]any{"output_paths": []string{filepath.Join(dir, "run.log")}},
		"scraper": map[string]any{
			"engine":               "chromedp",
			"start_url":            startUrl,
			"wait_timeout_seconds": 5,
			"settle_millis":        0,
		},
		"colly": map[string]any{"ignore_robots_txt": true, "request_timeout": 5},
	})
	require.NoError(t, err)
	path := filepath.Join(dir, "appconfig.json")
	require.NoError(t, os.WriteFile(path, raw, 0o644))
	return path
}

func TestRunScrape_WritesPartialResultOnFailure(t *testing.T) {
	srv := newStoreServer(t)
	dir := t.TempDir()
	root := &rootOptions{configPath: writeTestConfig(t, dir, srv.URL+"/")}

	good := srv.URL + "/en-US/p/good"
	bad := srv.URL + "/en-US/p/bad"
	opts := &scrapeOptions{
		urls:      []string{good, bad},
		langs:     []string{"de"},
		engine:    "colly",
		out:       filepath.Join(dir, "out", "result.json"),
		statePath: filepath.Join(dir, "state.json"),
	}
	var stdout bytes.Buffer
	err := runScrape(context.Background(), root, opts, &stdout)
	require.Error(t, err)
	assert.Contains(t, err.Error(), bad)
	assert.Empty(t, stdout.String())

	data, err := os.ReadFile(opts.out)
	require.NoError(t, err)
	var result map[string][]map[string]any
	require.NoError(t, json.Unmarshal(data, &result))
	require.Len(t, result["de"], 1)
	assert.Equal(t, "ns:good", result["de"][0]["sku"])
	assert.Equal(t, "good", result["de"][0]["gameId"])
	assert.Equal(t, "Good Game", result["de"][0]["name"])

	st := loadState(t, opts.statePath)
	assert.Equal(t, []string{good, bad}, st.Urls)
	assert.Equal(t, []string{"de"}, st.Lang)
}

func TestRunScrape_SuccessToStdout(t *testing.T) {
	srv := newStoreServer(t)
	dir := t.TempDir()
	root := &rootOptions{configPath: writeTestConfig(t, dir, srv.URL+"/")}

	var stdout bytes.Buffer
	err := runScrape(context.Background(), root, &scrapeOptions{
		urls:    []string{srv.URL + "/p/good"},
		langs:   []string{"de"},
		engine:  "colly",
		noState: true,
	}, &stdout)
	require.NoError(t, err)
	assert.Contains(t, stdout.String(), `"de":[{"namespace":"ns","gameId":"good"`)
}

func TestRunScrape_UnknownEngine(t *testing.T) {
	dir := t.TempDir()
	root := &rootOptions{configPath: writeTestConfig(t, dir, "https://www.epicgames.com/")}

	err := runScrape(context.Background(), root, &scrapeOptions{
		urls:    []string{"https://store.epicgames.com/p/x"},
		langs:   []string{"de"},
		engine:  "selenium",
		noState: true,
	}, io.Discard)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "selenium")
}

func TestProgressHooks_LeavesErrorsToService(t *testing.T) {
	hooks := progressHooks(logger.NewNop())
	assert.Nil(t, hooks.OnError)
	assert.NotNil(t, hooks.OnProgress)
}
