package util

import (
	"regexp"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"
)

var (
	camelCaseRegexp = regexp.MustCompile(`[_.-](\w|$)`)
	capitalRegexp   = regexp.MustCompile(`[A-Z]`)
)

// CamelCase converts dash, dot and underscore separated names to camelCase.
// The first character is always lowered.
func CamelCase(name string) string {
	if name == "" {
		return name
	}
	first, size := utf8.DecodeRuneInString(name)
	rest := camelCaseRegexp.ReplaceAllStringFunc(name[size:], func(match string) string {
		return strings.ToUpper(match[1:])
	})
	return string(unicode.ToLower(first)) + rest
}

// Hyphenate converts a PascalCase or camelCase name to its dash-case HTML name
func Hyphenate(name string) string {
	if name == "" {
		return name
	}
	first, size := utf8.DecodeRuneInString(name)
	lowered := string(unicode.ToLower(first)) + name[size:]
	return capitalRegexp.ReplaceAllStringFunc(lowered, func(match string) string {
		return "-" + strings.ToLower(match)
	})
}

// NameCache memoizes CamelCase and Hyphenate results. It is owned by a
// compilation session so that independent sessions never share state.
type NameCache struct {
	mu         sync.Mutex
	camelCased map[string]string
	hyphenated map[string]string
}

// NewNameCache creates an empty NameCache
func NewNameCache() *NameCache {
	return &NameCache{
		camelCased: map[string]string{},
		hyphenated: map[string]string{},
	}
}

// CamelCase returns the memoized camelCase form of name
func (c *NameCache) CamelCase(name string) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if result, ok := c.camelCased[name]; ok {
		return result
	}
	result := CamelCase(name)
	c.camelCased[name] = result
	return result
}

// Hyphenate returns the memoized dash-case form of name
func (c *NameCache) Hyphenate(name string) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if result, ok := c.hyphenated[name]; ok {
		return result
	}
	result := Hyphenate(name)
	c.hyphenated[name] = result
	return result
}

// Len returns the number of memoized entries
func (c *NameCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.camelCased) + len(c.hyphenated)
}

// Reset drops every memoized entry
func (c *NameCache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.camelCased = map[string]string{}
	c.hyphenated = map[string]string{}
}
