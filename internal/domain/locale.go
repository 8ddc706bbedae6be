package domain

import (
	"fmt"
	"time"

	"golang.org/x/text/language"
)

// Locale identifies a presentation language for schedule labels.
type Locale = language.Tag

// BaseLocale is the storefront's home locale. Delay warning copy only
// exists in this locale.
var BaseLocale = language.Japanese

var (
	baseJapanese, _ = language.Japanese.Base()
	baseEnglish, _  = language.English.Base()
)

// negotiate picks the first tag whose base language has rendered labels.
// Matching on the base alone keeps regional variants (en-GB, ja-JP) on the
// supported list without pulling anything else toward English: an unsupported
// language always lands on BaseLocale, never on a "nearest" locale.
func negotiate(tags []language.Tag) Locale {
	for _, tag := range tags {
		switch base, _ := tag.Base(); base {
		case baseJapanese:
			return BaseLocale
		case baseEnglish:
			return language.English
		}
	}
	return BaseLocale
}

// MatchAcceptLanguage negotiates a supported locale from an Accept-Language
// header value. Unparseable or unsupported values fall back to BaseLocale.
func MatchAcceptLanguage(header string) Locale {
	if header == "" {
		return BaseLocale
	}
	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil {
		return BaseLocale
	}
	return negotiate(tags)
}

// MatchLocale negotiates a supported locale from a single language tag
// string, e.g. a document language attribute.
func MatchLocale(s string) Locale {
	if s == "" {
		return BaseLocale
	}
	tag, err := language.Parse(s)
	if err != nil {
		return BaseLocale
	}
	return negotiate([]language.Tag{tag})
}

// IsBaseLocale reports whether tag resolves to the storefront's home locale.
func IsBaseLocale(tag Locale) bool {
	base, _ := tag.Base()
	homeBase, _ := BaseLocale.Base()
	return base == homeBase
}

// RenderScheduleText renders the label for a YYYYMMDD date code in the
// given locale. The label is derived from the date code alone, so it can be
// re-rendered at any time without touching the comparable value.
func RenderScheduleText(numeric int64, tag Locale, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	day := DateOf(numeric, loc)
	if IsBaseLocale(tag) {
		return fmt.Sprintf("%d年%d月%d日ごろお届け予定", day.Year(), int(day.Month()), day.Day())
	}
	return "Estimated delivery around " + day.Format("Jan 2, 2006")
}
