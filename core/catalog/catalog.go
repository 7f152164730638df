// Package catalog - Region profile catalog
// Maps two-letter country codes to region profiles and falls back to a
// designated default profile when a code is unknown.
package catalog

import (
	"fmt"
	"sort"
	"strings"

	"go.uber.org/multierr"
	"golang.org/x/text/language"

	"mileage/core/types"
)

// DefaultCode is the country whose profile serves unknown codes
const DefaultCode = "IN"

// Catalog is an immutable set of region profiles
type Catalog struct {
	entries     map[string]types.Profile
	defaultCode string
}

// New creates a catalog from profiles. Every profile is checked against
// DefaultValidationRules and defaultCode must name one of them.
func New(profiles []types.Profile, defaultCode string) (*Catalog, error) {
	c := &Catalog{
		entries: make(map[string]types.Profile, len(profiles)),
	}

	var err error
	for _, p := range profiles {
		code, ok := Canonical(p.Code)
		if !ok {
			err = multierr.Append(err, fmt.Errorf("profile %q: invalid country code", p.Code))
			continue
		}
		if _, dup := c.entries[code]; dup {
			err = multierr.Append(err, fmt.Errorf("profile %s: registered twice", code))
			continue
		}
		p.Code = code
		c.entries[code] = p
	}

	def, ok := Canonical(defaultCode)
	if !ok {
		err = multierr.Append(err, fmt.Errorf("default code %q is not a country code", defaultCode))
	} else if _, found := c.entries[def]; !found {
		err = multierr.Append(err, fmt.Errorf("default code %s has no profile", def))
	}
	c.defaultCode = def

	for _, verr := range c.Validate(DefaultValidationRules()) {
		err = multierr.Append(err, verr)
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

// MustNew is New that panics on error
func MustNew(profiles []types.Profile, defaultCode string) *Catalog {
	c, err := New(profiles, defaultCode)
	if err != nil {
		panic(fmt.Sprintf("catalog: %v", err))
	}
	return c
}

// Lookup returns the profile registered for code, or the default profile
// when code is empty, malformed or not registered. It never fails.
func (c *Catalog) Lookup(code string) types.Profile {
	if p, ok := c.Get(code); ok {
		return p
	}
	return c.Default()
}

// Get returns the profile registered for code without falling back
func (c *Catalog) Get(code string) (types.Profile, bool) {
	key, ok := Canonical(code)
	if !ok {
		return types.Profile{}, false
	}
	p, ok := c.entries[key]
	return p, ok
}

// Default returns the designated default profile
func (c *Catalog) Default() types.Profile {
	return c.entries[c.defaultCode]
}

// DefaultCode returns the code of the default profile
func (c *Catalog) DefaultCode() string {
	return c.defaultCode
}

// Codes returns the registered codes in sorted order
func (c *Catalog) Codes() []string {
	codes := make([]string, 0, len(c.entries))
	for code := range c.entries {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// Profiles returns every profile ordered by code
func (c *Catalog) Profiles() []types.Profile {
	codes := c.Codes()
	out := make([]types.Profile, 0, len(codes))
	for _, code := range codes {
		out = append(out, c.entries[code])
	}
	return out
}

// Len returns the number of registered profiles
func (c *Catalog) Len() int {
	return len(c.entries)
}

// Merge returns a new catalog holding c's profiles with overrides applied
// on top. An empty defaultCode keeps c's default.
func (c *Catalog) Merge(overrides []types.Profile, defaultCode string) (*Catalog, error) {
	byCode := make(map[string]types.Profile, len(c.entries)+len(overrides))
	for code, p := range c.entries {
		byCode[code] = p
	}
	for _, p := range overrides {
		code, ok := Canonical(p.Code)
		if !ok {
			return nil, fmt.Errorf("profile %q: invalid country code", p.Code)
		}
		p.Code = code
		byCode[code] = p
	}

	merged := make([]types.Profile, 0, len(byCode))
	for _, p := range byCode {
		merged = append(merged, p)
	}
	if defaultCode == "" {
		defaultCode = c.defaultCode
	}
	return New(merged, defaultCode)
}

// Canonical normalises a country code to its upper-case ISO 3166-1 alpha-2
// form. Alpha-3 and numeric codes are accepted as well.
func Canonical(code string) (string, bool) {
	code = strings.TrimSpace(code)
	if code == "" {
		return "", false
	}
	region, err := language.ParseRegion(code)
	if err != nil || !region.IsCountry() {
		return "", false
	}
	return region.String(), true
}
