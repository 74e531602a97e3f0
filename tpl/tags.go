package tpl

import (
	"html"
	"sort"
	"strings"

	"github.com/sunwei/templatehtml/types"
)

// InjectTo tells where in the document a tag goes.
type InjectTo string

const (
	InjectHead        InjectTo = "head"
	InjectBody        InjectTo = "body"
	InjectHeadPrepend InjectTo = "head-prepend"
	InjectBodyPrepend InjectTo = "body-prepend"
)

// Tag describes an HTML tag to inject into a rendered template.
type Tag struct {
	Tag   string
	Attrs map[string]any

	// Text is raw inner HTML. It is used when Children is empty.
	Text     string
	Children []Tag

	// InjectTo defaults to InjectHeadPrepend.
	InjectTo InjectTo
}

// Target returns where t is injected.
func (t Tag) Target() InjectTo {
	switch t.InjectTo {
	case InjectHead, InjectBody, InjectBodyPrepend:
		return t.InjectTo
	default:
		return InjectHeadPrepend
	}
}

// MergeTags returns the global tags followed by the page tags.
// Neither input is modified.
func MergeTags(global, page []Tag) []Tag {
	tags := make([]Tag, 0, len(global)+len(page))
	tags = append(tags, global...)
	return append(tags, page...)
}

var unaryTags = map[string]bool{
	"link": true,
	"meta": true,
	"base": true,
}

// Serialize writes t as HTML. Children are written one per line,
// indented one step further than indent.
func (t Tag) Serialize(indent string) string {
	var b strings.Builder
	b.WriteString("<")
	b.WriteString(t.Tag)
	writeAttrs(&b, t.Attrs)
	b.WriteString(">")
	if unaryTags[t.Tag] {
		return b.String()
	}
	if len(t.Children) > 0 {
		b.WriteString(SerializeTags(t.Children, IncrementIndent(indent)))
	} else {
		b.WriteString(t.Text)
	}
	b.WriteString("</")
	b.WriteString(t.Tag)
	b.WriteString(">")
	return b.String()
}

// SerializeTags writes each tag on its own line, prefixed with indent.
func SerializeTags(tags []Tag, indent string) string {
	var b strings.Builder
	for _, t := range tags {
		b.WriteString(indent)
		b.WriteString(t.Serialize(indent))
		b.WriteString("\n")
	}
	return b.String()
}

// IncrementIndent adds one indentation step, a tab if indent is made of
// tabs and two spaces otherwise.
func IncrementIndent(indent string) string {
	if strings.HasPrefix(indent, "\t") {
		return indent + "\t"
	}
	return indent + "  "
}

func writeAttrs(b *strings.Builder, attrs map[string]any) {
	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		s, bare, ok := types.ToAttrValue(attrs[k])
		if !ok {
			continue
		}
		b.WriteString(" ")
		b.WriteString(k)
		if bare {
			continue
		}
		b.WriteString(`="`)
		b.WriteString(html.EscapeString(s))
		b.WriteString(`"`)
	}
}
