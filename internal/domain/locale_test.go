package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/text/language"
)

func TestMatchAcceptLanguage(t *testing.T) {
	tests := []struct {
		header string
		want   Locale
	}{
		{"", BaseLocale},
		{"ja", language.Japanese},
		{"ja-JP,ja;q=0.9", language.Japanese},
		{"en-US,en;q=0.9,ja;q=0.8", language.English},
		{"en-GB", language.English},
		{"fr-FR", BaseLocale},
		{"de-DE,de;q=0.9", BaseLocale},
		{"zh-CN", BaseLocale},
		{"fr-FR,en;q=0.5", language.English},
		{"not a header !!", BaseLocale},
	}
	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			assert.Equal(t, tt.want, MatchAcceptLanguage(tt.header))
		})
	}
}

func TestMatchLocale(t *testing.T) {
	assert.Equal(t, language.English, MatchLocale("en-US"))
	assert.Equal(t, language.Japanese, MatchLocale("ja-JP"))
	assert.Equal(t, BaseLocale, MatchLocale("fr-FR"))
	assert.Equal(t, BaseLocale, MatchLocale(""))
	assert.Equal(t, BaseLocale, MatchLocale("zz-bogus!"))
}

func TestIsBaseLocale(t *testing.T) {
	assert.True(t, IsBaseLocale(language.Japanese))
	assert.True(t, IsBaseLocale(language.MustParse("ja-JP")))
	assert.False(t, IsBaseLocale(language.English))
}

func TestRenderScheduleText(t *testing.T) {
	assert.Equal(t, "2026年6月4日ごろお届け予定",
		RenderScheduleText(20260604, language.Japanese, jst()))
	assert.Equal(t, "Estimated delivery around Jun 4, 2026",
		RenderScheduleText(20260604, language.English, jst()))
	// nil location defaults to UTC instead of panicking
	assert.NotEmpty(t, RenderScheduleText(20260604, language.English, nil))
}
