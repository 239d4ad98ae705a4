// Package catalog parses a course-catalog HTML page into course rows
// for seeding the records database. It expects a table whose rows
// carry course ID, title, credits, and description cells in order.
package catalog

import (
	"io"
	"strconv"
	"strings"

	"golang.org/x/net/html"
)

// Course is one parsed catalog entry.
type Course struct {
	ID          string
	Title       string
	Credits     int
	Description string
}

// Parse extracts courses from catalog HTML. Rows with fewer than two
// cells or an empty ID are skipped; header rows (th cells) are ignored.
func Parse(r io.Reader) ([]Course, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, err
	}

	var courses []Course
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "tr" {
			if c, ok := parseRow(n); ok {
				courses = append(courses, c)
			}
			return
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(doc)
	return courses, nil
}

func parseRow(tr *html.Node) (Course, bool) {
	var cells []string
	for n := tr.FirstChild; n != nil; n = n.NextSibling {
		if n.Type != html.ElementNode {
			continue
		}
		switch n.Data {
		case "th":
			return Course{}, false
		case "td":
			cells = append(cells, strings.TrimSpace(text(n)))
		}
	}
	if len(cells) < 2 || cells[0] == "" {
		return Course{}, false
	}

	c := Course{ID: strings.ToUpper(cells[0]), Title: cells[1]}
	if len(cells) > 2 {
		if credits, err := strconv.Atoi(cells[2]); err == nil {
			c.Credits = credits
		}
	}
	if len(cells) > 3 {
		c.Description = cells[3]
	}
	return c, true
}

func text(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var b strings.Builder
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		b.WriteString(text(child))
	}
	return b.String()
}
