package format

import (
	"fmt"
	"regexp"
	"strings"
)

const (
	// MarkdownV1 denotes Telegram markdown version 1.
	MarkdownV1 = 1
	// MarkdownV2 denotes Telegram markdown version 2.
	MarkdownV2 = 2
)

const mdV2Specials = "_*[]()~`>#+-=|{}.!"

var (
	mdV1Re = regexp.MustCompile("[_*`\\[]")
	mdV2Re = regexp.MustCompile("[" + regexp.QuoteMeta(mdV2Specials) + "]")
)

// EscapeMarkdown escapes special characters for MarkdownV1 or V2.
func EscapeMarkdown(text string, version int) (string, error) {
	switch version {
	case MarkdownV1:
		return mdV1Re.ReplaceAllString(text, `\$0`), nil
	case MarkdownV2:
		return mdV2Re.ReplaceAllString(text, `\$0`), nil
	}
	return "", fmt.Errorf("unsupported markdown version: %d", version)
}

// MD escapes text for legacy Markdown parse mode.
func MD(text string) string {
	out, _ := EscapeMarkdown(text, MarkdownV1)
	return out
}

// MDBold renders text in bold for legacy Markdown. Entities cannot nest
// there, so only "*" needs care: the span is closed, the star escaped, and a
// new span opened.
func MDBold(text string) string {
	var b strings.Builder
	for i, part := range strings.Split(text, "*") {
		if i > 0 {
			b.WriteString(`\*`)
		}
		if part != "" {
			b.WriteString("*" + part + "*")
		}
	}
	return b.String()
}
