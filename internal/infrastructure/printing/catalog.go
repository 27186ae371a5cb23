package printing

import (
	"embed"
	"encoding/json"
	"fmt"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
	"golang.org/x/text/number"
)

//go:embed translations/*.json
var translationFiles embed.FS

// DefaultLanguage is used when a requested language has no translation
var DefaultLanguage = language.English

type translation struct {
	Months       [12]string        `json:"months"`
	DatePattern  string            `json:"date_pattern"`
	MoneyPattern string            `json:"money_pattern"`
	Labels       map[string]string `json:"labels"`
}

// Catalog holds the invoice labels and date and money conventions for every
// bundled language. It is built once and read-only afterwards.
type Catalog struct {
	builder *catalog.Builder
	matcher language.Matcher
	tags    []language.Tag
	locales map[language.Tag]translation
}

// LoadCatalog reads the embedded translation files
func LoadCatalog() (*Catalog, error) {
	entries, err := translationFiles.ReadDir("translations")
	if err != nil {
		return nil, fmt.Errorf("read translations: %w", err)
	}

	c := &Catalog{
		builder: catalog.NewBuilder(catalog.Fallback(DefaultLanguage)),
		locales: make(map[language.Tag]translation),
	}
	// the default language goes first so the matcher falls back to it
	tags := []language.Tag{DefaultLanguage}

	for _, e := range entries {
		name := e.Name()
		if path.Ext(name) != ".json" {
			continue
		}
		tag, err := language.Parse(strings.TrimSuffix(name, ".json"))
		if err != nil {
			return nil, fmt.Errorf("translation %s: %w", name, err)
		}
		raw, err := translationFiles.ReadFile("translations/" + name)
		if err != nil {
			return nil, err
		}
		var t translation
		if err := json.Unmarshal(raw, &t); err != nil {
			return nil, fmt.Errorf("translation %s: %w", name, err)
		}
		for key, msg := range t.Labels {
			if err := c.builder.SetString(tag, key, msg); err != nil {
				return nil, fmt.Errorf("translation %s key %s: %w", name, key, err)
			}
		}
		c.locales[tag] = t
		if tag != DefaultLanguage {
			tags = append(tags, tag)
		}
	}

	if _, ok := c.locales[DefaultLanguage]; !ok {
		return nil, fmt.Errorf("missing %s translation", DefaultLanguage)
	}
	c.tags = tags
	c.matcher = language.NewMatcher(tags)
	return c, nil
}

// Languages lists the bundled languages, default first
func (c *Catalog) Languages() []language.Tag {
	return c.tags
}

// Localizer formats text for one language
type Localizer struct {
	tag     language.Tag
	printer *message.Printer
	locale  translation
}

// Localizer returns a formatter for a settings language code such as "de".
// Unknown codes fall back to English.
func (c *Catalog) Localizer(code string) *Localizer {
	tag := DefaultLanguage
	if requested, err := language.Parse(strings.TrimSpace(code)); err == nil {
		_, idx, conf := c.matcher.Match(requested)
		if conf != language.No {
			tag = c.tags[idx]
		}
	}
	return &Localizer{
		tag:     tag,
		printer: message.NewPrinter(tag, message.Catalog(c.builder)),
		locale:  c.locales[tag],
	}
}

// Language returns the resolved language
func (l *Localizer) Language() language.Tag {
	return l.tag
}

// T translates a label key. Missing keys come back unchanged.
func (l *Localizer) T(key string, args ...any) string {
	return l.printer.Sprintf(key, args...)
}

// Date formats a date the way the language writes it
func (l *Localizer) Date(t time.Time) string {
	t = t.UTC()
	return strings.NewReplacer(
		"{day}", strconv.Itoa(t.Day()),
		"{month}", l.locale.Months[t.Month()-1],
		"{year}", strconv.Itoa(t.Year()),
	).Replace(l.locale.DatePattern)
}

// Number formats a decimal with the language's separators
func (l *Localizer) Number(d decimal.Decimal, places int) string {
	return l.printer.Sprint(number.Decimal(d.Round(int32(places)).InexactFloat64(), number.Scale(places)))
}

// Money formats an amount in an ISO 4217 currency. Unknown codes are
// printed as given.
func (l *Localizer) Money(d decimal.Decimal, code string) string {
	symbol := strings.ToUpper(code)
	if unit, err := currency.ParseISO(code); err == nil {
		symbol = l.printer.Sprint(currency.Symbol(unit))
	}
	amount := l.Number(d.Abs(), 2)
	out := strings.NewReplacer("{symbol}", symbol, "{amount}", amount).Replace(l.locale.MoneyPattern)
	if d.IsNegative() {
		return "-" + out
	}
	return out
}
