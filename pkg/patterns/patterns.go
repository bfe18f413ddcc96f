// Package patterns holds the precompiled text patterns shared by the
// extraction and filtering stages. A single Patterns value is built at
// startup and passed by reference wherever matching is needed.
package patterns

import "regexp"

// Patterns recognizes phone numbers, zip codes, and markup noise inside
// text. All matchers are stateless and safe for concurrent use.
type Patterns struct {
	phone     *regexp.Regexp
	zip       *regexp.Regexp
	dimension *regexp.Regexp
	hash      *regexp.Regexp

	// anchored variants used for token classification
	dimensionPrefix *regexp.Regexp
	hashPrefix      *regexp.Regexp
}

// New compiles the fixed pattern set.
func New() *Patterns {
	return &Patterns{
		// (ddd) ddd-dddd, ddd-ddd-dddd, and minor spacing variants.
		// Matching the shape is the whole contract; numeric strings that
		// happen to fit are accepted as false positives.
		phone:     regexp.MustCompile(`\(?\d{3}\)? ?-?\d{3}-? *-?\d{4}`),
		zip:       regexp.MustCompile(`\d{5}(?:-\d{4})?`),
		dimension: regexp.MustCompile(`\d+(?:px|em|pt|rem)`),
		hash:      regexp.MustCompile(`[a-f0-9]{32,64}`),

		dimensionPrefix: regexp.MustCompile(`^\d+(?:px|em|pt|rem)`),
		hashPrefix:      regexp.MustCompile(`^[a-f0-9]{32,64}`),
	}
}

// Phones returns the distinct phone-shaped matches in text, in order of
// first occurrence.
func (p *Patterns) Phones(text string) []string {
	return distinct(p.phone.FindAllString(text, -1))
}

// ZipCodes returns the distinct zip-code matches in text. The extended
// ddddd-dddd form is matched greedily, so "30301-1234" is one match, not
// "30301" plus a remainder.
func (p *Patterns) ZipCodes(text string) []string {
	return distinct(p.zip.FindAllString(text, -1))
}

// Dimensions returns the distinct dimension literals (number plus unit
// suffix) in text.
func (p *Patterns) Dimensions(text string) []string {
	return distinct(p.dimension.FindAllString(text, -1))
}

// Hashes returns the distinct hash-like hex runs (32-64 lowercase hex
// characters) in text.
func (p *Patterns) Hashes(text string) []string {
	return distinct(p.hash.FindAllString(text, -1))
}

// IsDimension reports whether token starts with a dimension literal such
// as "24px" or "2rem". Used to classify tokens as UI measurement noise.
func (p *Patterns) IsDimension(token string) bool {
	return p.dimensionPrefix.MatchString(token)
}

// IsHash reports whether token starts with a 32-64 character lowercase hex
// run, the heuristic for cache-busting digests leaking out of markup.
func (p *Patterns) IsHash(token string) bool {
	return p.hashPrefix.MatchString(token)
}

func distinct(matches []string) []string {
	seen := make(map[string]bool, len(matches))
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		if !seen[m] {
			seen[m] = true
			out = append(out, m)
		}
	}
	return out
}
