package signup

import (
	"regexp"
	"strings"
)

var (
	sheetURLPattern = regexp.MustCompile(`/d/([a-zA-Z0-9_-]+)`)
	bareIDPattern   = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)
)

// ExtractSheetID resolves a spreadsheet ID from a full sheet URL (".../d/<id>/...") or a
// bare ID. It returns false when neither form matches.
func ExtractSheetID(urlOrID string) (string, bool) {
	s := strings.TrimSpace(urlOrID)
	if s == "" {
		return "", false
	}
	if m := sheetURLPattern.FindStringSubmatch(s); m != nil {
		return m[1], true
	}
	if bareIDPattern.MatchString(s) {
		return s, true
	}
	return "", false
}
