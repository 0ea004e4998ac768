// Package htmlmd converts HTML fragments and documents to Markdown text.
// It is a simple structural transform: headings, paragraphs, lists, links,
// emphasis and code survive, everything else is flattened to its text.
package htmlmd

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

var blankLines = regexp.MustCompile(`\n{3,}`)

// Convert renders HTML as Markdown. Input that cannot be parsed is returned
// unchanged.
func Convert(source string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(source))
	if err != nil {
		return source
	}
	doc.Find("script, style, noscript").Remove()

	root := doc.Selection
	if body := doc.Find("body"); body.Length() > 0 {
		root = body
	}

	var b strings.Builder
	for _, node := range root.Nodes {
		renderChildren(&b, node)
	}

	out := blankLines.ReplaceAllString(b.String(), "\n\n")
	return strings.TrimSpace(out)
}

func renderChildren(b *strings.Builder, node *html.Node) {
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		renderNode(b, child)
	}
}

func renderNode(b *strings.Builder, node *html.Node) {
	switch node.Type {
	case html.TextNode:
		b.WriteString(collapseSpace(node.Data))
	case html.ElementNode:
		renderElement(b, node)
	default:
		renderChildren(b, node)
	}
}

func renderElement(b *strings.Builder, node *html.Node) {
	switch node.Data {
	case "h1", "h2", "h3", "h4", "h5", "h6":
		level := int(node.Data[1] - '0')
		b.WriteString("\n\n" + strings.Repeat("#", level) + " ")
		b.WriteString(strings.TrimSpace(textOf(node)))
		b.WriteString("\n\n")
	case "p", "div", "section", "article", "header", "footer", "main", "table", "tr":
		b.WriteString("\n\n")
		renderChildren(b, node)
		b.WriteString("\n\n")
	case "br":
		b.WriteString("\n")
	case "hr":
		b.WriteString("\n\n---\n\n")
	case "a":
		text := strings.TrimSpace(textOf(node))
		href := attr(node, "href")
		switch {
		case text == "" && href == "":
			// nothing to render
		case href == "":
			b.WriteString(text)
		default:
			if text == "" {
				text = href
			}
			fmt.Fprintf(b, "[%s](%s)", text, href)
		}
	case "img":
		fmt.Fprintf(b, "![%s](%s)", attr(node, "alt"), attr(node, "src"))
	case "strong", "b":
		b.WriteString("**")
		renderChildren(b, node)
		b.WriteString("**")
	case "em", "i":
		b.WriteString("*")
		renderChildren(b, node)
		b.WriteString("*")
	case "code":
		if node.Parent != nil && node.Parent.Data == "pre" {
			renderChildren(b, node)
			return
		}
		b.WriteString("`" + textOf(node) + "`")
	case "pre":
		b.WriteString("\n\n```\n")
		b.WriteString(strings.TrimRight(rawTextOf(node), "\n"))
		b.WriteString("\n```\n\n")
	case "ul":
		b.WriteString("\n\n")
		renderListItems(b, node, func(int) string { return "- " })
		b.WriteString("\n")
	case "ol":
		b.WriteString("\n\n")
		renderListItems(b, node, func(i int) string { return fmt.Sprintf("%d. ", i+1) })
		b.WriteString("\n")
	case "blockquote":
		b.WriteString("\n\n> ")
		b.WriteString(strings.TrimSpace(textOf(node)))
		b.WriteString("\n\n")
	case "head", "title", "meta", "link":
		// skipped entirely
	default:
		renderChildren(b, node)
	}
}

func renderListItems(b *strings.Builder, list *html.Node, marker func(int) string) {
	i := 0
	for child := list.FirstChild; child != nil; child = child.NextSibling {
		if child.Type != html.ElementNode || child.Data != "li" {
			continue
		}
		var item strings.Builder
		renderChildren(&item, child)
		b.WriteString(marker(i) + strings.TrimSpace(item.String()) + "\n")
		i++
	}
}

// textOf renders a node's inline content, keeping nested links and
// emphasis but collapsing whitespace.
func textOf(node *html.Node) string {
	var b strings.Builder
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		switch {
		case child.Type == html.TextNode:
			b.WriteString(collapseSpace(child.Data))
		case child.Type == html.ElementNode && child.Data == "a":
			renderElement(&b, child)
		default:
			b.WriteString(textOf(child))
		}
	}
	return b.String()
}

// rawTextOf concatenates text content verbatim, for pre blocks.
func rawTextOf(node *html.Node) string {
	var b strings.Builder
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		if child.Type == html.TextNode {
			b.WriteString(child.Data)
			continue
		}
		b.WriteString(rawTextOf(child))
	}
	return b.String()
}

func collapseSpace(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	out := strings.Join(fields, " ")
	if r := s[0]; r == ' ' || r == '\n' || r == '\t' {
		out = " " + out
	}
	if r := s[len(s)-1]; r == ' ' || r == '\n' || r == '\t' {
		out += " "
	}
	return out
}

func attr(node *html.Node, name string) string {
	for _, a := range node.Attr {
		if a.Key == name {
			return a.Val
		}
	}
	return ""
}
