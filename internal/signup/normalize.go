// Package signup turns raw sign-up sheet rows into canonical fields.
//
// Sheets are produced by different forms, so header text varies ("Email", "E-mail",
// "Email "). A single synonym table maps each canonical field to the header aliases it
// accepts; matching ignores case and surrounding whitespace.
package signup

import "strings"

// Field is a canonical sign-up attribute.
type Field string

const (
	FieldName       Field = "name"
	FieldEmail      Field = "email"
	FieldPhone      Field = "phone"
	FieldRegNo      Field = "reg_no"
	FieldDepartment Field = "department"
	FieldYear       Field = "year"
	FieldTimestamp  Field = "timestamp"
	FieldStatus     Field = "status"
)

// Synonyms lists the accepted header aliases per canonical field, in match priority order.
var Synonyms = map[Field][]string{
	FieldName:       {"Name", "Full Name"},
	FieldEmail:      {"Email", "E-mail"},
	FieldPhone:      {"Phone", "Phone Number", "Mobile"},
	FieldRegNo:      {"Reg No", "Reg_No", "RegNo", "Registration Number"},
	FieldDepartment: {"Department", "Dept"},
	FieldYear:       {"Year"},
	FieldTimestamp:  {"Timestamp", "Time"},
	FieldStatus:     {"Status", "Processed"},
}

// Fields holds the canonical values extracted from one row. A field is absent when no
// header matched it or the matched cell was blank.
type Fields struct {
	values map[Field]string
}

// Get returns the value of f and whether it is present.
func (f Fields) Get(field Field) (string, bool) {
	v, ok := f.values[field]
	return v, ok
}

// Value returns the value of f, or "" when absent.
func (f Fields) Value(field Field) string {
	return f.values[field]
}

// Has reports whether f is present.
func (f Fields) Has(field Field) bool {
	_, ok := f.values[field]
	return ok
}

func canon(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// matchHeader returns the first header in headers that matches one of field's aliases.
func matchHeader(headers []string, field Field) (string, bool) {
	for _, alias := range Synonyms[field] {
		want := canon(alias)
		for _, h := range headers {
			if canon(h) == want {
				return h, true
			}
		}
	}
	return "", false
}

// Normalize extracts canonical fields from row. headers is the sheet's header row; keys of
// row are expected to be header names as they appear in the sheet. Keys present in row but
// missing from headers are considered too.
func Normalize(headers []string, row map[string]string) Fields {
	keys := make([]string, 0, len(headers)+len(row))
	keys = append(keys, headers...)
	for k := range row {
		keys = append(keys, k)
	}

	out := Fields{values: make(map[Field]string, len(Synonyms))}
	for field := range Synonyms {
		h, ok := matchHeader(keys, field)
		if !ok {
			continue
		}
		v := strings.TrimSpace(row[h])
		if v == "" {
			continue
		}
		out.values[field] = v
	}
	return out
}

// StatusColumn returns the header used for status write-back, if the sheet has one.
func StatusColumn(headers []string) (string, bool) {
	return matchHeader(headers, FieldStatus)
}

// IsFinalStatus reports whether a row status means the row must not be processed again.
func IsFinalStatus(status string) bool {
	switch canon(status) {
	case "processed", "deleted", "skipped":
		return true
	}
	return false
}

// MatchesIdentity reports whether the row identifies the person with the given email or
// registration number. Comparison is case-insensitive and blank values never match.
func MatchesIdentity(f Fields, email, regNo string) bool {
	if e := canon(email); e != "" && canon(f.Value(FieldEmail)) == e {
		return true
	}
	if r := canon(regNo); r != "" && canon(f.Value(FieldRegNo)) == r {
		return true
	}
	return false
}
