package gotms

import "strings"

// RTLLanguages contains base language codes that use right-to-left text
// direction.
var RTLLanguages = map[string]bool{
	"ar": true, // Arabic
	"he": true, // Hebrew
	"fa": true, // Persian/Farsi
	"ur": true, // Urdu
	"ps": true, // Pashto
	"sd": true, // Sindhi
	"ug": true, // Uyghur
}

// IsRTL reports whether the language code (base or full locale, e.g. "ar" or
// "ar_SA") denotes a right-to-left language.
func IsRTL(code string) bool {
	return RTLLanguages[baseLang(code)]
}

// Direction returns the text direction for a language code, "ltr" or "rtl".
func Direction(code string) string {
	if IsRTL(code) {
		return "rtl"
	}
	return "ltr"
}

// baseLang extracts the base language code (e.g. "ar" from "ar_SA").
func baseLang(code string) string {
	code = strings.ToLower(code)
	if i := strings.IndexAny(code, "_-"); i >= 0 {
		return code[:i]
	}
	return code
}
