// Copyright Gabriele Ciccotelli, 2026. All rights reserved.

package transcribe

import (
	"fmt"
	"strings"
)

// Language pairs a display name with its ISO 639-1 code.
type Language struct {
	Name string
	Code string
}

// languages lists every language the backends accept, in menu order.
var languages = []Language{
	{"Afrikaans", "af"},
	{"Arabic", "ar"},
	{"Armenian", "hy"},
	{"Azerbaijani", "az"},
	{"Belarusian", "be"},
	{"Bosnian", "bs"},
	{"Bulgarian", "bg"},
	{"Catalan", "ca"},
	{"Chinese", "zh"},
	{"Croatian", "hr"},
	{"Czech", "cs"},
	{"Danish", "da"},
	{"Dutch", "nl"},
	{"English", "en"},
	{"Estonian", "et"},
	{"Finnish", "fi"},
	{"French", "fr"},
	{"Galician", "gl"},
	{"German", "de"},
	{"Greek", "el"},
	{"Hebrew", "he"},
	{"Hindi", "hi"},
	{"Hungarian", "hu"},
	{"Icelandic", "is"},
	{"Indonesian", "id"},
	{"Italian", "it"},
	{"Japanese", "ja"},
	{"Kannada", "kn"},
	{"Kazakh", "kk"},
	{"Korean", "ko"},
	{"Latvian", "lv"},
	{"Lithuanian", "lt"},
	{"Macedonian", "mk"},
	{"Malay", "ms"},
	{"Marathi", "mr"},
	{"Maori", "mi"},
	{"Nepali", "ne"},
	{"Norwegian", "no"},
	{"Persian", "fa"},
	{"Polish", "pl"},
	{"Portuguese", "pt"},
	{"Romanian", "ro"},
	{"Russian", "ru"},
	{"Serbian", "sr"},
	{"Slovak", "sk"},
	{"Slovenian", "sl"},
	{"Spanish", "es"},
	{"Swahili", "sw"},
	{"Swedish", "sv"},
	{"Tagalog", "tl"},
	{"Tamil", "ta"},
	{"Thai", "th"},
	{"Turkish", "tr"},
	{"Ukrainian", "uk"},
	{"Urdu", "ur"},
	{"Vietnamese", "vi"},
	{"Welsh", "cy"},
}

// Languages returns the accepted languages in menu order.
func Languages() []Language {
	out := make([]Language, len(languages))
	copy(out, languages)
	return out
}

// LanguageByCode finds a language by its ISO 639-1 code.
func LanguageByCode(code string) (Language, bool) {
	code = strings.ToLower(strings.TrimSpace(code))
	for _, l := range languages {
		if l.Code == code {
			return l, true
		}
	}
	return Language{}, false
}

// LanguageByName finds a language by display name, case-insensitively.
func LanguageByName(name string) (Language, bool) {
	name = strings.TrimSpace(name)
	for _, l := range languages {
		if strings.EqualFold(l.Name, name) {
			return l, true
		}
	}
	return Language{}, false
}

// ResolveLanguage accepts a display name ("Italian") or an ISO code
// ("it") and returns the matching language.
func ResolveLanguage(s string) (Language, error) {
	if l, ok := LanguageByName(s); ok {
		return l, nil
	}
	if l, ok := LanguageByCode(s); ok {
		return l, nil
	}
	return Language{}, fmt.Errorf("unknown language %q", s)
}
