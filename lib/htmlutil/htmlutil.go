package htmlutil

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

func GetText(node *html.Node) string {
	var buffer bytes.Buffer
	getTextRecursive(node, &buffer)
	return buffer.String()
}

func getTextRecursive(node *html.Node, buffer *bytes.Buffer) {
	if node == nil {
		return
	}
	if node.Type == html.TextNode {
		buffer.WriteString(node.Data)
		return
	}
	child := node.FirstChild
	for child != nil {
		getTextRecursive(child, buffer)
		child = child.NextSibling
	}
}

// FirstChildText returns the text of the first child node of the first
// element in the selection, ex. "1,000" for `<td>1,000<span>원</span></td>`.
// ok is false when there is no element or it has no children.
func FirstChildText(sel *goquery.Selection) (text string, ok bool) {
	if sel.Length() == 0 {
		return "", false
	}
	first := sel.Get(0).FirstChild
	if first == nil {
		return "", false
	}
	return GetText(first), true
}

// HasContent reports whether the first element in the selection contains
// anything other than whitespace.
func HasContent(sel *goquery.Selection) bool {
	if sel.Length() == 0 {
		return false
	}
	node := sel.Get(0)
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		if child.Type != html.TextNode {
			return true
		}
		if strings.TrimSpace(child.Data) != "" {
			return true
		}
	}
	return false
}

// ParseDigits drops every non-digit character and parses the rest,
// "1,234,000 원" becomes 1234000.
func ParseDigits(text string) (int, error) {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, text)
	if digits == "" {
		return 0, fmt.Errorf("no digits in '%s'", strings.TrimSpace(text))
	}
	return strconv.Atoi(digits)
}

// Normalize removes non-printable characters and trims surrounding whitespace.
func Normalize(text string) string {
	text = strings.Map(func(r rune) rune {
		if unicode.IsPrint(r) {
			return r
		}
		return -1
	}, text)
	return strings.TrimSpace(text)
}
