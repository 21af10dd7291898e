package utils

import (
	"bytes"
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/ast"
)

// StripMarkdown flattens markdown to plain text. Article bodies arrive from
// the crawler with markdown formatting; embeddings and assistant prompts
// want the bare prose.
func StripMarkdown(text string) string {
	if text == "" {
		return ""
	}

	doc := markdown.Parse([]byte(text), nil)

	var buf bytes.Buffer
	flattenNode(doc, &buf)

	result := strings.TrimSpace(buf.String())
	result = strings.ReplaceAll(result, "\n\n\n", "\n\n")

	return result
}

func flattenNode(node ast.Node, buf *bytes.Buffer) {
	switch n := node.(type) {
	case *ast.Text:
		buf.Write(n.Literal)
		return
	case *ast.Code:
		buf.Write(n.Literal)
		return
	case *ast.CodeBlock:
		buf.Write(n.Literal)
		return
	case *ast.Hardbreak:
		buf.WriteString("\n")
		return
	case *ast.Softbreak:
		buf.WriteString(" ")
		return
	case *ast.HTMLBlock, *ast.HTMLSpan:
		return
	}

	container := node.AsContainer()
	if container == nil {
		return
	}

	if _, ok := node.(*ast.ListItem); ok {
		buf.WriteString("- ")
	}

	for _, child := range container.Children {
		flattenNode(child, buf)
	}

	switch node.(type) {
	case *ast.Paragraph, *ast.Heading:
		buf.WriteString("\n\n")
	case *ast.List, *ast.BlockQuote:
		buf.WriteString("\n")
	}
}
