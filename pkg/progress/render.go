package progress

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

// BarStyle describes the bar drawn by BarRenderer.
type BarStyle struct {
	Width  int
	Fill   string
	Empty  string
	Left   string
	Right  string
	Suffix string // template, see TemplateRenderer
}

// DefaultBarStyle renders "[=====     ] 5/10 (50%)".
func DefaultBarStyle() BarStyle {
	return BarStyle{
		Width:  32,
		Fill:   "=",
		Empty:  " ",
		Left:   "[",
		Right:  "]",
		Suffix: " {index}/{max} ({percent:%.0f}%)",
	}
}

// BarRenderer draws a fixed-width bar filled in proportion to the completed
// fraction. Unbounded indicators draw an empty bar.
func BarRenderer(style BarStyle) RenderFunc {
	if style.Width < 1 {
		style.Width = 10
	}
	return func(s Snapshot) string {
		filled := 0
		switch {
		case !s.Bounded:
		case s.Max <= 0:
			filled = style.Width
		default:
			filled = s.Index * style.Width / s.Max
		}
		if filled > style.Width {
			filled = style.Width
		}
		if filled < 0 {
			filled = 0
		}

		var b strings.Builder
		b.WriteString(style.Left)
		b.WriteString(strings.Repeat(style.Fill, filled))
		b.WriteString(strings.Repeat(style.Empty, style.Width-filled))
		b.WriteString(style.Right)
		b.WriteString(Expand(style.Suffix, s))
		return b.String()
	}
}

// DefaultSpinnerPhases is a braille dot spinner.
var DefaultSpinnerPhases = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// SpinnerRenderer advances one phase per render.
func SpinnerRenderer(phases ...string) RenderFunc {
	if len(phases) == 0 {
		phases = DefaultSpinnerPhases
	}
	pos := -1
	return func(Snapshot) string {
		pos = (pos + 1) % len(phases)
		return phases[pos]
	}
}

// CounterRenderer draws the index.
func CounterRenderer() RenderFunc {
	return func(s Snapshot) string {
		return strconv.Itoa(s.Index)
	}
}

// TemplateRenderer draws tmpl with placeholders expanded by Expand.
func TemplateRenderer(tmpl string) RenderFunc {
	return func(s Snapshot) string {
		return Expand(tmpl, s)
	}
}

var placeholder = regexp.MustCompile(`\{([a-z_]+)(?::([^}]+))?\}`)

// Expand replaces {field} and {field:verb} placeholders with values from s.
// The verb is a fmt verb such as %.1f, or one of:
//
//	bytes  humanized byte count (1.2 MB)
//	comma  integer with thousands separators
//
// bytes and comma apply to integer fields only; on other fields, and for
// verbs without a %, the value is written as if no verb were given.
// Placeholders naming unknown fields are left untouched.
func Expand(tmpl string, s Snapshot) string {
	return placeholder.ReplaceAllStringFunc(tmpl, func(m string) string {
		parts := placeholder.FindStringSubmatch(m)
		v := s.Lookup(parts[1])
		if v == nil {
			return m
		}
		return formatValue(v, parts[2])
	})
}

// Placeholder is one {name} or {name:verb} reference in a template.
type Placeholder struct {
	Name string
	Verb string
}

// ParsePlaceholders returns the placeholders of tmpl in order of appearance,
// repeats included.
func ParsePlaceholders(tmpl string) []Placeholder {
	var refs []Placeholder
	for _, m := range placeholder.FindAllStringSubmatch(tmpl, -1) {
		refs = append(refs, Placeholder{Name: m[1], Verb: m[2]})
	}
	return refs
}

// Placeholders returns the field names referenced by tmpl in order of
// appearance, repeats included.
func Placeholders(tmpl string) []string {
	var names []string
	for _, ref := range ParsePlaceholders(tmpl) {
		names = append(names, ref.Name)
	}
	return names
}

// IntegerVerb reports whether verb only formats integer fields.
func IntegerVerb(verb string) bool {
	return verb == "bytes" || verb == "comma"
}

func formatValue(v any, verb string) string {
	switch verb {
	case "":
		switch x := v.(type) {
		case float64:
			return strconv.FormatFloat(x, 'f', 1, 64)
		case time.Duration:
			return x.String()
		}
		return fmt.Sprint(v)
	case "bytes":
		if n, ok := v.(int); ok {
			if n < 0 {
				n = 0
			}
			return humanize.Bytes(uint64(n))
		}
		return formatValue(v, "")
	case "comma":
		if n, ok := v.(int); ok {
			return humanize.Comma(int64(n))
		}
		return formatValue(v, "")
	}
	if !strings.Contains(verb, "%") {
		return formatValue(v, "")
	}
	return fmt.Sprintf(verb, v)
}
