package export

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/LouYuanbo1/epicgamedata/internal/domain/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleResult() *model.Result {
	r := model.NewResult()
	r.Add("zh-CN", &model.GameDoc{Namespace: "ns", GameId: "g1", Sku: "ns-g1", Name: "控制"})
	r.Ensure("de")
	return r
}

func TestRender(t *testing.T) {
	data, err := Render(sampleResult(), false)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "\n")
	assert.Contains(t, string(data), `"zh-CN":[{"namespace":"ns"`)
	assert.Contains(t, string(data), `"de":[]`)

	pretty, err := Render(sampleResult(), true)
	require.NoError(t, err)
	assert.Contains(t, string(pretty), "\n  \"zh-CN\": [")
	assert.JSONEq(t, string(data), string(pretty))
}

func TestRender_NilResult(t *testing.T) {
	data, err := Render(nil, false)
	require.NoError(t, err)
	assert.Equal(t, "{}", string(data))
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "result.json")
	require.NoError(t, WriteFile(path, []byte(`{}`)))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "{}", string(data))
}

func TestCopyToClipboard(t *testing.T) {
	orig := clipboardWriteAll
	defer func() { clipboardWriteAll = orig }()

	var copied string
	clipboardWriteAll = func(text string) error {
		copied = text
		return nil
	}
	require.NoError(t, CopyToClipboard([]byte(`{"de":[]}`)))
	assert.Equal(t, `{"de":[]}`, copied)

	boom := errors.New("no clipboard")
	clipboardWriteAll = func(string) error { return boom }
	assert.ErrorIs(t, CopyToClipboard([]byte("x")), boom)
}
