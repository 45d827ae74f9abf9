package notifier

import (
	_ "embed"
	"errors"
	"sort"
	"strings"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// FallbackLocale is the locale every catalog must provide; it serves
// any request the matcher cannot satisfy.
const FallbackLocale = "en"

//go:embed translations/messages.yaml
var defaultTranslations []byte

// Template is a localized subject/body pair. Placeholders use the
// {name} form and are expanded by Render.
type Template struct {
	Subject string `yaml:"subject"`
	Body    string `yaml:"body"`
}

// Catalog selects the best-matching localized template for a requested
// locale using BCP 47 language matching.
type Catalog struct {
	templates map[string]Template
	locales   []string
	matcher   language.Matcher
}

// NewCatalog parses a YAML document mapping locale tags to templates.
// The catalog must include the "en" fallback locale.
func NewCatalog(data []byte) (*Catalog, error) {
	var raw map[string]Template
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, errors.Join(ErrInvalidCatalog, err)
	}
	if len(raw) == 0 {
		return nil, ErrInvalidCatalog
	}
	if _, ok := raw[FallbackLocale]; !ok {
		return nil, ErrMissingFallback
	}

	// The matcher prefers earlier tags on ties, so the fallback goes first.
	locales := make([]string, 0, len(raw))
	for locale := range raw {
		if locale != FallbackLocale {
			locales = append(locales, locale)
		}
	}
	sort.Strings(locales)
	locales = append([]string{FallbackLocale}, locales...)

	tags := make([]language.Tag, 0, len(locales))
	for _, locale := range locales {
		tag, err := language.Parse(locale)
		if err != nil {
			return nil, errors.Join(ErrInvalidCatalog, err)
		}
		tags = append(tags, tag)
	}

	return &Catalog{
		templates: raw,
		locales:   locales,
		matcher:   language.NewMatcher(tags),
	}, nil
}

// DefaultCatalog loads the embedded default translations.
func DefaultCatalog() (*Catalog, error) {
	return NewCatalog(defaultTranslations)
}

// Render picks the closest template for locale and expands {name}
// placeholders from vars. Unknown locales render in the fallback.
func (c *Catalog) Render(locale string, vars map[string]string) (subject, body string) {
	tmpl := c.templates[c.match(locale)]
	return expand(tmpl.Subject, vars), expand(tmpl.Body, vars)
}

// Locales lists the locales the catalog can render, fallback first.
func (c *Catalog) Locales() []string {
	out := make([]string, len(c.locales))
	copy(out, c.locales)
	return out
}

func (c *Catalog) match(locale string) string {
	tag, err := language.Parse(locale)
	if err != nil {
		return FallbackLocale
	}

	_, idx, conf := c.matcher.Match(tag)
	if conf == language.No {
		return FallbackLocale
	}
	return c.locales[idx]
}

func expand(s string, vars map[string]string) string {
	for name, value := range vars {
		s = strings.ReplaceAll(s, "{"+name+"}", value)
	}
	return s
}
