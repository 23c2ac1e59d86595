package style

import (
	"regexp"
	"sort"

	"github.com/charmbracelet/lipgloss"
)

// MarkupParser renders [tag]text[/tag] markup with named styles.
type MarkupParser struct {
	styles   map[string]lipgloss.Style
	patterns map[string]*regexp.Regexp
}

// NewMarkupParser creates a parser with the default tags
func NewMarkupParser() *MarkupParser {
	return &MarkupParser{
		patterns: make(map[string]*regexp.Regexp),
		styles: map[string]lipgloss.Style{
			"title":    TitleStyle,
			"subtitle": SubtitleStyle,
			"success":  SuccessStyle,
			"error":    ErrorStyle,
			"warning":  WarningStyle,
			"info":     InfoStyle,
			"code":     CodeStyle,
			"path":     PathStyle,
			"muted":    MutedStyle,
			"rev":      RevisionStyle,
			"bold":     lipgloss.NewStyle().Bold(true),
			"italic":   lipgloss.NewStyle().Italic(true),
		},
	}
}

// Render replaces every known tag pair with its styled content. Unknown tags
// are left as they are.
func (p *MarkupParser) Render(text string) string {
	return p.apply(text, func(style lipgloss.Style, inner string) string {
		return style.Render(inner)
	})
}

// Strip removes known tags and keeps their content, for plain output.
func (p *MarkupParser) Strip(text string) string {
	return p.apply(text, func(_ lipgloss.Style, inner string) string {
		return inner
	})
}

func (p *MarkupParser) apply(text string, fn func(lipgloss.Style, string) string) string {
	tags := make([]string, 0, len(p.styles))
	for tag := range p.styles {
		tags = append(tags, tag)
	}
	sort.Strings(tags)

	for changed := true; changed; {
		changed = false
		for _, tag := range tags {
			style := p.styles[tag]
			out := p.pattern(tag).ReplaceAllStringFunc(text, func(match string) string {
				inner := match[len(tag)+2 : len(match)-len(tag)-3]
				return fn(style, inner)
			})
			if out != text {
				text = out
				changed = true
			}
		}
	}
	return text
}

func (p *MarkupParser) pattern(tag string) *regexp.Regexp {
	if re, ok := p.patterns[tag]; ok {
		return re
	}
	re := regexp.MustCompile(`\[` + regexp.QuoteMeta(tag) + `\](.*?)\[/` + regexp.QuoteMeta(tag) + `\]`)
	p.patterns[tag] = re
	return re
}

var defaultParser = NewMarkupParser()

// Render is a convenience function using the default parser
func Render(text string) string {
	return defaultParser.Render(text)
}

// Strip is a convenience function using the default parser
func Strip(text string) string {
	return defaultParser.Strip(text)
}
