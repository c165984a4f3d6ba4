package markdown

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
	"gopkg.in/yaml.v3"
)

const MaxTitleLength = 255

// Metadata is derived from a note's content and cached on each revision.
type Metadata struct {
	Title       string
	Description string
	Tags        []string
}

type frontmatter struct {
	Title       string      `yaml:"title"`
	Description string      `yaml:"description"`
	Tags        interface{} `yaml:"tags"`
}

// Extract reads title, description and tags from content.
//
// Frontmatter wins over the document body. Without a frontmatter title the
// first heading is used, then the first non-empty line.
func Extract(content string) Metadata {
	source := []byte(content)
	meta := Metadata{}
	var tags []string

	body := source
	if front, rest, ok := splitFrontmatter(source); ok {
		var fm frontmatter
		if err := yaml.Unmarshal(front, &fm); err == nil {
			meta.Title = strings.TrimSpace(fm.Title)
			meta.Description = strings.TrimSpace(fm.Description)
			tags = append(tags, tagList(fm.Tags)...)
		}
		body = rest
	}

	scan := scanBody(body)
	tags = append(tags, scan.tags...)

	if meta.Title == "" {
		meta.Title = scan.heading
	}
	if meta.Title == "" {
		meta.Title = scan.firstLine
	}
	meta.Title = truncate(meta.Title, MaxTitleLength)
	meta.Tags = normalizeTags(tags)

	return meta
}

// splitFrontmatter separates a leading "---" fenced YAML block from the rest of the document.
func splitFrontmatter(source []byte) ([]byte, []byte, bool) {
	lines := bytes.SplitAfter(source, []byte("\n"))
	if len(lines) < 2 || strings.TrimRight(string(lines[0]), "\r\n") != "---" {
		return nil, source, false
	}

	offset := len(lines[0])
	for _, line := range lines[1:] {
		trimmed := strings.TrimRight(string(line), "\r\n")
		if trimmed == "---" || trimmed == "..." {
			front := source[len(lines[0]):offset]
			return front, source[offset+len(line):], true
		}
		offset += len(line)
	}
	return nil, source, false
}

type bodyScan struct {
	heading   string
	firstLine string
	tags      []string
}

// scanBody finds the first heading, the first line of the first paragraph and
// any tags declared on a "###### tags: a b" line.
func scanBody(body []byte) bodyScan {
	doc := goldmark.DefaultParser().Parse(text.NewReader(body))

	var scan bodyScan
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch node := n.(type) {
		case *ast.Heading:
			content := strings.TrimSpace(string(node.Text(body)))
			if node.Level == 6 && strings.HasPrefix(strings.ToLower(content), "tags:") {
				scan.tags = append(scan.tags, splitTags(content[len("tags:"):])...)
			} else if scan.heading == "" {
				scan.heading = content
			}
			return ast.WalkSkipChildren, nil
		case *ast.Paragraph:
			if scan.firstLine == "" && node.Lines().Len() > 0 {
				line := node.Lines().At(0)
				scan.firstLine = strings.TrimSpace(string(line.Value(body)))
			}
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})

	return scan
}

func tagList(raw interface{}) []string {
	switch v := raw.(type) {
	case string:
		return strings.Split(v, ",")
	case []interface{}:
		tags := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				tags = append(tags, s)
			}
		}
		return tags
	default:
		return nil
	}
}

func splitTags(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
}

func normalizeTags(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
