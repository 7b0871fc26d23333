package grantee

import (
	"regexp"
	"strings"

	"github.com/hamcat/rigmap/pkg/errors"
)

// Resolution is the result of splitting an FCC ID.
type Resolution struct {
	FCCID       string // trimmed input
	GranteeCode string
	Brand       string // canonical name for GranteeCode
	Model       string
}

// Match returns the longest known grantee code that prefixes fccID.
//
// Codes are scanned longest first, so the first hit is the longest match.
// Any replacement index (a trie, for example) must return the same code.
func (t *Table) Match(fccID string) (string, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	for _, code := range t.codes {
		if strings.HasPrefix(fccID, code) {
			return code, true
		}
	}
	return "", false
}

// Parse splits an FCC ID into grantee code and model.
//
// The input is trimmed and matched case-sensitively against the longest
// known code. The remainder is trimmed, one leading "-" is dropped, and it
// is trimmed again. Both "2AJGM-UV5R" and "2AJGMUV5R" resolve to model
// "UV5R". No matching code, or nothing left after the code, yields an
// *errors.UnresolvedGranteeError.
func (t *Table) Parse(fccID string) (Resolution, error) {
	id := strings.TrimSpace(fccID)
	if id == "" {
		return Resolution{}, errors.NewUnresolvedGranteeError(fccID, "empty FCC ID")
	}

	code, ok := t.Match(id)
	if !ok {
		return Resolution{FCCID: id}, errors.NewUnresolvedGranteeError(id, "no grantee code prefix")
	}

	model := ModelAfterCode(id, code)
	if model == "" {
		return Resolution{FCCID: id, GranteeCode: code}, errors.NewUnresolvedGranteeError(id, "no model after grantee code "+code)
	}

	name, _ := t.Lookup(code)
	return Resolution{
		FCCID:       id,
		GranteeCode: code,
		Brand:       name,
		Model:       model,
	}, nil
}

// ModelAfterCode returns what follows code in id: the remainder trimmed,
// one leading "-" dropped, and trimmed again. id must start with code.
func ModelAfterCode(id, code string) string {
	rest := strings.TrimSpace(id[len(code):])
	rest = strings.TrimPrefix(rest, "-")
	return strings.TrimSpace(rest)
}

// GuessCode returns the text before the first "-" of an FCC ID, or the whole
// ID when it has none. It is a display hint for unresolved IDs only.
func GuessCode(fccID string) (code, model string) {
	id := strings.TrimSpace(fccID)
	if i := strings.Index(id, "-"); i > 0 {
		return id[:i], strings.TrimSpace(id[i+1:])
	}
	return id, ""
}

var (
	parenthesized = regexp.MustCompile(`\([^)]*\)`)
	whitespace    = regexp.MustCompile(`\s+`)
	notIDChar     = regexp.MustCompile(`[^A-Za-z0-9\-]`)
)

// CleanModel reduces a catalog model name to the characters an FCC ID
// product code may carry: parenthesized text, whitespace and anything other
// than letters, digits and "-" is removed, then the result is upper-cased.
func CleanModel(model string) string {
	m := strings.TrimSpace(parenthesized.ReplaceAllString(model, ""))
	m = whitespace.ReplaceAllString(m, "")
	m = notIDChar.ReplaceAllString(m, "")
	return strings.ToUpper(m)
}

// FormatFCCID writes the canonical hyphenated form "<code>-<model>".
func FormatFCCID(code, model string) string {
	return code + "-" + CleanModel(model)
}

// GenerateFCCID composes an FCC ID for a catalog radio whose brand has a
// known code. It reports false for unknown brands, brands flagged as never
// FCC-certified, and models that clean down to nothing.
func (t *Table) GenerateFCCID(brand, model string) (string, bool) {
	if t.NoFCC(brand) {
		return "", false
	}
	code, ok := t.Code(brand)
	if !ok {
		return "", false
	}
	if CleanModel(model) == "" {
		return "", false
	}
	return FormatFCCID(code, model), true
}
