// Package content derives display text from WordPress post fields.
package content

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/net/html"
)

// WordsPerMinute is the reading speed used by ReadingTime.
const WordsPerMinute = 200

// wpTimestampLayout is the site-local format of Post.Date and Post.Modified.
const wpTimestampLayout = "2006-01-02T15:04:05"

// PlainText strips tags from rendered markup, decodes entities, and
// collapses runs of whitespace to single spaces.
func PlainText(markup string) string {
	return strings.Join(words(markup), " ")
}

// WordCount returns the number of visible words in markup.
func WordCount(markup string) int {
	return len(words(markup))
}

// ReadingTime estimates minutes to read markup, rounded up, as a Spanish
// label. Content with no words still reads as one minute.
func ReadingTime(markup string) string {
	n := WordCount(markup)
	minutes := (n + WordsPerMinute - 1) / WordsPerMinute
	if minutes < 1 {
		minutes = 1
	}
	if minutes == 1 {
		return "1 minuto de lectura"
	}
	return fmt.Sprintf("%d minutos de lectura", minutes)
}

// FormatDateTime renders a WordPress timestamp as "02/01/2006 a las 15:04:05".
// Values that do not parse are returned trimmed but otherwise unchanged.
func FormatDateTime(value string) string {
	value = strings.TrimSpace(value)
	t, err := ParseTimestamp(value)
	if err != nil {
		return value
	}
	return t.Format("02/01/2006") + " a las " + t.Format("15:04:05")
}

// ParseTimestamp parses Post.Date/Post.Modified. RFC 3339 values (the *_gmt
// variants some proxies rewrite to) are accepted as well.
func ParseTimestamp(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if t, err := time.ParseInLocation(wpTimestampLayout, value, time.Local); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse timestamp %q: %w", value, err)
	}
	return t, nil
}

func words(markup string) []string {
	var b strings.Builder
	z := html.NewTokenizer(strings.NewReader(markup))
	skip := 0
	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			// io.EOF or malformed markup; either way keep what was read.
			return strings.Fields(b.String())
		case html.TextToken:
			if skip == 0 {
				b.Write(z.Text())
			}
		case html.StartTagToken, html.SelfClosingTagToken:
			name, _ := z.TagName()
			if tt == html.StartTagToken && rawTextTags[string(name)] {
				skip++
			}
			if blockTags[string(name)] {
				b.WriteByte(' ')
			}
		case html.EndTagToken:
			name, _ := z.TagName()
			if rawTextTags[string(name)] && skip > 0 {
				skip--
			}
			if blockTags[string(name)] {
				b.WriteByte(' ')
			}
		}
	}
}

var rawTextTags = map[string]bool{"script": true, "style": true}

// blockTags separate words even when the markup has no whitespace between them.
var blockTags = map[string]bool{
	"p": true, "br": true, "div": true, "li": true, "ul": true, "ol": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"blockquote": true, "figure": true, "figcaption": true, "tr": true, "td": true, "th": true,
}
