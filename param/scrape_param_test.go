package param

import (
	"errors"
	"testing"

	"github.com/LouYuanbo1/epicgamedata/internal/domain/model"
	"github.com/stretchr/testify/assert"
)

func TestScrape_Normalize(t *testing.T) {
	s := &Scrape{
		Urls:  []string{" https://store.epicgames.com/en-US/p/a ", "", "   ", "https://store.epicgames.com/en-US/p/b"},
		Langs: []string{"de", " ", "ja "},
	}
	s.Normalize()

	assert.Equal(t, []string{"https://store.epicgames.com/en-US/p/a", "https://store.epicgames.com/en-US/p/b"}, s.Urls)
	assert.Equal(t, []string{"de", "ja"}, s.Langs)
	assert.True(t, s.IsValid())
	assert.Equal(t, 4, s.Total())
}

func TestScrape_IsValid(t *testing.T) {
	assert.False(t, (&Scrape{Urls: []string{"u"}}).IsValid())
	assert.False(t, (&Scrape{Langs: []string{"de"}}).IsValid())

	s := &Scrape{Urls: []string{""}, Langs: []string{"de"}}
	s.Normalize()
	assert.False(t, s.IsValid())
}

func TestHooks_NilSafe(t *testing.T) {
	var h Hooks
	assert.NotPanics(t, func() {
		h.Start()
		h.Progress(50)
		h.Finish(model.NewResult())
		h.Error(errors.New("boom"))
	})

	var got []int
	h.OnProgress = func(p int) { got = append(got, p) }
	h.Progress(10)
	assert.Equal(t, []int{10}, got)
}
