// Package textutils provides text normalization and counterparty
// extraction utilities for statement descriptions.
package textutils

import (
	"regexp"
	"strings"
)

var (
	whitespaceRe   = regexp.MustCompile(`\s+`)
	detailsSplitRe = regexp.MustCompile(`^(.*?)\s+-\s+(\S.*)$`)
	maskedPhoneRe  = regexp.MustCompile(`^[\d+]\S*\*+\S*`)
	paybillAccRe   = regexp.MustCompile(`(?i)^(.*?)\s+Acc\.\s*(.*)$`)
	businessViaRe  = regexp.MustCompile(`(?i)^(.*?)\s+via\b.*?\bis\s+(.*)$`)
	trailingNumRe  = regexp.MustCompile(`\s+[\d*+-]{4,}\.?$`)
)

// Normalize trims, collapses whitespace and uppercases a description so
// that rule matching is insensitive to layout noise. Classification is a
// pure function of the normalized text plus direction.
func Normalize(s string) string {
	s = strings.TrimSpace(s)
	s = whitespaceRe.ReplaceAllString(s, " ")
	return strings.ToUpper(s)
}

// CollapseWhitespace trims and collapses runs of whitespace without
// changing case. Used for the verbatim description field.
func CollapseWhitespace(s string) string {
	return whitespaceRe.ReplaceAllString(strings.TrimSpace(s), " ")
}

// SplitDetails splits a statement details string into its transaction-type
// part and its entity part at the " - " separator, e.g.
// "Customer Transfer to - 2547****78 Jane Doe" -> ("Customer Transfer to",
// "2547****78 Jane Doe"). When no separator exists both parts are the
// original text.
func SplitDetails(details string) (typePart, entity string) {
	if m := detailsSplitRe.FindStringSubmatch(details); m != nil {
		return strings.TrimSpace(m[1]), strings.TrimSpace(m[2])
	}
	return details, details
}

// SplitMaskedPhone separates a leading masked phone number from the name
// that follows it, e.g. "2547****09 JANE DOE" -> ("JANE DOE",
// "2547****09"). Entities without a masked number pass through with an
// empty phone. Case is preserved; the caller decides presentation.
func SplitMaskedPhone(entity string) (name, phone string) {
	entity = strings.TrimSpace(entity)
	if entity == "" {
		return "", ""
	}
	if !maskedPhoneRe.MatchString(entity) {
		return entity, ""
	}
	parts := strings.SplitN(entity, " ", 2)
	if len(parts) < 2 {
		return entity, ""
	}
	return strings.TrimSpace(parts[1]), parts[0]
}

// ExtractPaybillDetails splits a paybill entity into business name and
// account reference, e.g. "Kenya Power Acc. 123456" -> ("Kenya Power",
// "123456").
func ExtractPaybillDetails(entity string) (business, account string) {
	if m := paybillAccRe.FindStringSubmatch(entity); m != nil {
		return strings.TrimSpace(m[1]), strings.TrimSpace(m[2])
	}
	return strings.TrimSpace(entity), ""
}

// ExtractBusinessAndInfo splits business-payment entities of the form
// "<business> via <channel> ... is <extra>" into name and extra detail.
func ExtractBusinessAndInfo(entity string) (business, extra string) {
	if m := businessViaRe.FindStringSubmatch(entity); m != nil {
		return strings.TrimSpace(m[1]), strings.TrimSpace(m[2])
	}
	return strings.TrimSpace(entity), ""
}

// AfterToken returns the substring following the first occurrence of the
// given label token (word-bounded, case-insensitive), or "" when the token
// is absent.
func AfterToken(s, token string) string {
	re := regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(token) + `\b\s*`)
	loc := re.FindStringIndex(s)
	if loc == nil {
		return ""
	}
	return strings.TrimSpace(s[loc[1]:])
}

// TrailingNumber returns the trailing phone-number or reference token of a
// counterparty string, or "" when there is none.
func TrailingNumber(s string) string {
	if m := trailingNumRe.FindString(strings.TrimSpace(s)); m != "" {
		return strings.TrimSuffix(strings.TrimSpace(m), ".")
	}
	return ""
}

// StripTrailingNumber removes a trailing phone-number or reference token
// from a counterparty, e.g. "JANE DOE 0712345678" -> "JANE DOE".
func StripTrailingNumber(s string) string {
	return strings.TrimSpace(trailingNumRe.ReplaceAllString(strings.TrimSpace(s), ""))
}

// StripLeadingNumber removes a leading till or reference number, e.g.
// "123456 KIOSK STORE" -> "KIOSK STORE".
func StripLeadingNumber(s string) string {
	s = strings.TrimSpace(s)
	parts := strings.SplitN(s, " ", 2)
	if len(parts) == 2 && isNumeric(parts[0]) {
		return strings.TrimSpace(parts[1])
	}
	return s
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
