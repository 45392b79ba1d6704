package ffprobe

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

type languageEntry struct {
	code2   string // ISO 639-1 (2-letter)
	code3   string // ISO 639-2 primary (3-letter)
	alt3    string // ISO 639-2 alternate (e.g. "fre" vs "fra")
	display string
}

var languages = []languageEntry{
	{"en", "eng", "", "English"},
	{"es", "spa", "", "Spanish"},
	{"fr", "fra", "fre", "French"},
	{"de", "deu", "ger", "German"},
	{"it", "ita", "", "Italian"},
	{"pt", "por", "", "Portuguese"},
	{"ja", "jpn", "", "Japanese"},
	{"ko", "kor", "", "Korean"},
	{"zh", "zho", "chi", "Chinese"},
	{"ru", "rus", "", "Russian"},
	{"ar", "ara", "", "Arabic"},
	{"hi", "hin", "", "Hindi"},
	{"nl", "nld", "dut", "Dutch"},
	{"pl", "pol", "", "Polish"},
	{"sv", "swe", "", "Swedish"},
	{"da", "dan", "", "Danish"},
	{"no", "nor", "", "Norwegian"},
	{"fi", "fin", "", "Finnish"},
}

var byLanguageCode = func() map[string]*languageEntry {
	index := make(map[string]*languageEntry, len(languages)*3)
	for i := range languages {
		e := &languages[i]
		index[e.code2] = e
		index[e.code3] = e
		if e.alt3 != "" {
			index[e.alt3] = e
		}
	}
	return index
}()

var titleCaser = cases.Title(language.English)

// LanguageDisplayName returns a human-readable language name for a stream
// language tag. Unrecognized tags are title-cased rather than dropped so the
// operator still sees something, and empty input maps to "Unknown".
func LanguageDisplayName(code string) string {
	code = strings.ToLower(strings.TrimSpace(code))
	if code == "" || code == "und" {
		return "Unknown"
	}
	if e, ok := byLanguageCode[code]; ok {
		return e.display
	}
	return titleCaser.String(code)
}
