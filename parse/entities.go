package parse

import (
	"regexp"
	"strconv"
	"strings"
)

// Entity declaration forms recognized inside DOCTYPE. External SYSTEM and
// PUBLIC entities are never fetched; they expand to inert placeholders.
var (
	entityDouble = regexp.MustCompile(`<!ENTITY\s+(\w+)\s+"([^"]*)"\s*>`)
	entitySingle = regexp.MustCompile(`<!ENTITY\s+(\w+)\s+'([^']*)'\s*>`)
	entityParam  = regexp.MustCompile(`<!ENTITY\s+%\s+(\w+)\s+"([^"]*)"\s*>`)
	entitySystem = regexp.MustCompile(`<!ENTITY\s+(\w+)\s+SYSTEM\s+"[^"]*"\s*>`)
	entityPublic = regexp.MustCompile(`<!ENTITY\s+(\w+)\s+PUBLIC\s+"[^"]*"\s+"[^"]*"\s*>`)

	numericDec = regexp.MustCompile(`&#([0-9]+);`)
	numericHex = regexp.MustCompile(`&#[xX]([0-9a-fA-F]+);`)
)

const (
	externalPlaceholder = "[external entity]"
	publicPlaceholder   = "[public entity]"
)

// countEntityDecls counts entity declarations in a DOCTYPE, for the
// security ceiling.
func countEntityDecls(doctype string) int {
	return strings.Count(doctype, "<!ENTITY")
}

// collectEntities extracts entity declarations from the raw DOCTYPE text.
// Values get predefined entities expanded once at declaration time, so
// lookups during text expansion are plain substitutions.
func collectEntities(doctype string, dst map[string]string) {
	for _, m := range entityDouble.FindAllStringSubmatch(doctype, -1) {
		dst[m[1]] = expandPredefined(m[2])
	}
	for _, m := range entitySingle.FindAllStringSubmatch(doctype, -1) {
		dst[m[1]] = expandPredefined(m[2])
	}
	for _, m := range entityParam.FindAllStringSubmatch(doctype, -1) {
		dst["%"+m[1]] = expandPredefined(m[2])
	}
	for _, m := range entitySystem.FindAllStringSubmatch(doctype, -1) {
		dst[m[1]] = externalPlaceholder
	}
	for _, m := range entityPublic.FindAllStringSubmatch(doctype, -1) {
		dst[m[1]] = publicPlaceholder
	}
}

var predefined = strings.NewReplacer(
	"&lt;", "<",
	"&gt;", ">",
	"&quot;", `"`,
	"&apos;", "'",
	"&amp;", "&",
)

func expandPredefined(s string) string {
	if !strings.Contains(s, "&") {
		return s
	}
	return predefined.Replace(s)
}

// expandNumeric replaces well-formed numeric character references.
// Malformed or out-of-range references are left verbatim.
func expandNumeric(s string) string {
	if !strings.Contains(s, "&#") {
		return s
	}
	s = numericDec.ReplaceAllStringFunc(s, func(ref string) string {
		cp, err := strconv.ParseUint(ref[2:len(ref)-1], 10, 32)
		if err != nil || !validCodePoint(rune(cp)) {
			return ref
		}
		return string(rune(cp))
	})
	s = numericHex.ReplaceAllStringFunc(s, func(ref string) string {
		cp, err := strconv.ParseUint(ref[3:len(ref)-1], 16, 32)
		if err != nil || !validCodePoint(rune(cp)) {
			return ref
		}
		return string(rune(cp))
	})
	return s
}

func validCodePoint(r rune) bool {
	return r >= 0 && r <= 0x10FFFF && (r < 0xD800 || r > 0xDFFF)
}

// expandText expands entity references in text or attribute content:
// predefined XML entities first, then numeric character references, then
// custom entities collected from the DOCTYPE, by literal substitution.
func expandText(s string, entities map[string]string) string {
	if !strings.Contains(s, "&") {
		return s
	}
	s = expandPredefined(s)
	s = expandNumeric(s)
	for name, val := range entities {
		s = strings.ReplaceAll(s, "&"+name+";", val)
	}
	return s
}
