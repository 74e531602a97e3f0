// Package tagsinject injects tag descriptors into an HTML document.
//
// It looks for the document's head and body tags with a few regular
// expressions and does not otherwise parse the document.
package tagsinject

import (
	"regexp"

	"github.com/sunwei/templatehtml/tpl"
	"github.com/sunwei/templatehtml/transform"
)

var (
	headInjectRE           = regexp.MustCompile(`(?i)([ \t]*)</head>`)
	headPrependInjectRE    = regexp.MustCompile(`(?i)([ \t]*)<head[^>]*>`)
	htmlInjectRE           = regexp.MustCompile(`(?i)</html>`)
	htmlPrependInjectRE    = regexp.MustCompile(`(?i)([ \t]*)<html[^>]*>`)
	bodyInjectRE           = regexp.MustCompile(`(?i)([ \t]*)</body>`)
	bodyPrependInjectRE    = regexp.MustCompile(`(?i)([ \t]*)<body[^>]*>`)
	doctypePrependInjectRE = regexp.MustCompile(`(?i)<!doctype html>`)
)

// New creates a transformer that injects tags.
func New(tags []tpl.Tag) transform.Transformer {
	return func(ft transform.FromTo) error {
		_, err := ft.To().Write([]byte(Inject(string(ft.From().Bytes()), tags)))
		return err
	}
}

// Inject injects tags into html, each at its tpl.Tag.Target.
// Tags for the same target keep their relative order.
func Inject(html string, tags []tpl.Tag) string {
	if len(tags) == 0 {
		return html
	}
	groups := make(map[tpl.InjectTo][]tpl.Tag)
	for _, t := range tags {
		groups[t.Target()] = append(groups[t.Target()], t)
	}

	html = injectToHead(html, groups[tpl.InjectHeadPrepend], true)
	html = injectToHead(html, groups[tpl.InjectHead], false)
	html = injectToBody(html, groups[tpl.InjectBodyPrepend], true)
	html = injectToBody(html, groups[tpl.InjectBody], false)
	return html
}

// replaceFirst replaces the first match of re in s with what repl returns
// for the whole match and its first group.
func replaceFirst(re *regexp.Regexp, s string, repl func(match, indent string) string) (string, bool) {
	loc := re.FindStringSubmatchIndex(s)
	if loc == nil {
		return s, false
	}
	var indent string
	if len(loc) >= 4 && loc[2] >= 0 {
		indent = s[loc[2]:loc[3]]
	}
	return s[:loc[0]] + repl(s[loc[0]:loc[1]], indent) + s[loc[1]:], true
}

func injectToHead(html string, tags []tpl.Tag, prepend bool) string {
	if len(tags) == 0 {
		return html
	}
	if prepend {
		// First element of head.
		if s, ok := replaceFirst(headPrependInjectRE, html, func(match, indent string) string {
			return match + "\n" + tpl.SerializeTags(tags, tpl.IncrementIndent(indent))
		}); ok {
			return s
		}
	} else {
		// Before head close.
		if s, ok := replaceFirst(headInjectRE, html, func(match, indent string) string {
			return tpl.SerializeTags(tags, tpl.IncrementIndent(indent)) + match
		}); ok {
			return s
		}
		// Before the body tag.
		if s, ok := replaceFirst(bodyPrependInjectRE, html, func(match, indent string) string {
			return tpl.SerializeTags(tags, indent) + "\n" + match
		}); ok {
			return s
		}
	}
	return prependInjectFallback(html, tags)
}

func injectToBody(html string, tags []tpl.Tag, prepend bool) string {
	if len(tags) == 0 {
		return html
	}
	if prepend {
		if s, ok := replaceFirst(bodyPrependInjectRE, html, func(match, indent string) string {
			return match + "\n" + tpl.SerializeTags(tags, tpl.IncrementIndent(indent))
		}); ok {
			return s
		}
		// No body: right after head, or as early as possible.
		if s, ok := replaceFirst(headInjectRE, html, func(match, indent string) string {
			return match + "\n" + tpl.SerializeTags(tags, indent)
		}); ok {
			return s
		}
		return prependInjectFallback(html, tags)
	}

	if s, ok := replaceFirst(bodyInjectRE, html, func(match, indent string) string {
		return tpl.SerializeTags(tags, tpl.IncrementIndent(indent)) + match
	}); ok {
		return s
	}
	if s, ok := replaceFirst(htmlInjectRE, html, func(match, _ string) string {
		return tpl.SerializeTags(tags, "") + "\n" + match
	}); ok {
		return s
	}
	return html + "\n" + tpl.SerializeTags(tags, "")
}

func prependInjectFallback(html string, tags []tpl.Tag) string {
	if s, ok := replaceFirst(htmlPrependInjectRE, html, func(match, _ string) string {
		return match + "\n" + tpl.SerializeTags(tags, "")
	}); ok {
		return s
	}
	if s, ok := replaceFirst(doctypePrependInjectRE, html, func(match, _ string) string {
		return match + "\n" + tpl.SerializeTags(tags, "")
	}); ok {
		return s
	}
	return tpl.SerializeTags(tags, "") + html
}
