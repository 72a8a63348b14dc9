package langseg

import (
	"strings"

	"golang.org/x/text/language"
)

// LanguageMap maps the raw codes produced by a splitter to canonical tags.
// A code missing from the map is retried as base-script (zh-hant) and then
// as its base language (en-US as en); anything else resolves to Unknown.
type LanguageMap map[string]string

// DefaultLanguageMap returns the mapping for Chinese, Japanese, Korean and
// English. Chinese dialects collapse to "zh"; traditional Chinese is dropped.
func DefaultLanguageMap() LanguageMap {
	return LanguageMap{
		"zh":    "zh",
		"yue":   "zh",
		"wuu":   "zh",
		"zh-cn": "zh",
		"zh-tw": Unknown,
		"zh-hant": Unknown,
		"ko":    "ko",
		"ja":    "ja",
		"en":    "en",
	}
}

// Lookup returns the canonical tag for raw.
func (m LanguageMap) Lookup(raw string) string {
	key := normalizeCode(raw)
	if lang, ok := m[key]; ok {
		return lang
	}
	if tag, err := language.Parse(key); err == nil {
		if lang, ok := m[strings.ToLower(tag.String())]; ok {
			return lang
		}
		base, conf := tag.Base()
		if conf == language.No {
			return Unknown
		}
		// zh-HK and zh-MO carry an implied Hant script; match on it before
		// falling back to the base language.
		if script, sconf := tag.Script(); sconf != language.No {
			if lang, ok := m[base.String()+"-"+strings.ToLower(script.String())]; ok {
				return lang
			}
		}
		if lang, ok := m[base.String()]; ok {
			return lang
		}
	}
	return Unknown
}

func (m LanguageMap) clone() LanguageMap {
	out := make(LanguageMap, len(m))
	for k, v := range m {
		out[normalizeCode(k)] = v
	}
	return out
}

func normalizeCode(code string) string {
	return strings.ToLower(strings.ReplaceAll(strings.TrimSpace(code), "_", "-"))
}
