package content

import (
	"strings"
	"testing"
)

func wordsMarkup(n int) string {
	var b strings.Builder
	b.WriteString("<div>")
	for i := 0; i < n; i++ {
		if i%50 == 0 {
			if i > 0 {
				b.WriteString("</p>")
			}
			b.WriteString("<p>")
		}
		if i%7 == 0 {
			b.WriteString("<strong>palabra</strong> ")
			continue
		}
		b.WriteString("palabra ")
	}
	b.WriteString("</p></div>")
	return b.String()
}

func TestReadingTime(t *testing.T) {
	cases := []struct {
		name  string
		words int
		want  string
	}{
		{"empty", 0, "1 minuto de lectura"},
		{"one word", 1, "1 minuto de lectura"},
		{"150 words", 150, "1 minuto de lectura"},
		{"exactly 200", 200, "1 minuto de lectura"},
		{"201 rounds up", 201, "2 minutos de lectura"},
		{"400 words", 400, "2 minutos de lectura"},
		{"1000 words", 1000, "5 minutos de lectura"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			markup := wordsMarkup(tc.words)
			if got := WordCount(markup); got != tc.words {
				t.Fatalf("WordCount = %d, want %d", got, tc.words)
			}
			if got := ReadingTime(markup); got != tc.want {
				t.Fatalf("ReadingTime(%d words) = %q, want %q", tc.words, got, tc.want)
			}
		})
	}
}

func TestPlainText(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"tags stripped", "<p>Hola <em>mundo</em></p>\n", "Hola mundo"},
		{"entities decoded", "<p>&#8220;Cita&#8221; &amp; m&aacute;s&nbsp;texto</p>", "“Cita” & más texto"},
		{"block boundary", "<p>uno</p><p>dos</p>", "uno dos"},
		{"inline joins", "pala<b>bra</b>", "palabra"},
		{"script dropped", "<p>antes</p><script>var x = 1;</script><p>después</p>", "antes después"},
		{"excerpt more link", `<p>Resumen [&hellip;]</p>`, "Resumen […]"},
		{"blank", "   ", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := PlainText(tc.in); got != tc.want {
				t.Fatalf("PlainText(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestFormatDateTime(t *testing.T) {
	if got := FormatDateTime("2024-05-01T10:20:30"); got != "01/05/2024 a las 10:20:30" {
		t.Fatalf("FormatDateTime = %q, want %q", got, "01/05/2024 a las 10:20:30")
	}
	if got := FormatDateTime(" not a date "); got != "not a date" {
		t.Fatalf("FormatDateTime invalid = %q, want input echoed", got)
	}
}

func TestParseTimestamp_AcceptsRFC3339(t *testing.T) {
	ts, err := ParseTimestamp("2024-05-01T10:20:30Z")
	if err != nil {
		t.Fatalf("ParseTimestamp returned error: %v", err)
	}
	if ts.Year() != 2024 || ts.Month() != 5 || ts.Day() != 1 {
		t.Fatalf("ParseTimestamp = %v, want 2024-05-01", ts)
	}
	if _, err := ParseTimestamp(""); err == nil {
		t.Fatalf("ParseTimestamp empty returned nil error, want error")
	}
}
