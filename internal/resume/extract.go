package resume

import (
	"bytes"
	"errors"
	"mime"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"

	"skill-match/internal/domain/skill"
)

var (
	ErrUnsupportedDocument = errors.New("unsupported document type")
	ErrUnreadableDocument  = errors.New("document could not be read")
)

// DefaultSkills is matched against resumes in addition to the skills present
// in the job dataset.
var DefaultSkills = []string{
	"python", "java", "sql", "excel", "finance",
	"accounting", "machine learning", "statistics",
	"problem solving", "tally", "communication",
	"data analysis",
}

var textTypes = map[string]struct{}{
	"text/plain":      {},
	"text/markdown":   {},
	"text/x-markdown": {},
}

const htmlType = "text/html"

// ExtractText returns the text content of a resume. Plain text, markdown
// and HTML are accepted.
func ExtractText(contentType string, data []byte) (string, error) {
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return "", ErrUnsupportedDocument
	}
	mt = strings.ToLower(mt)
	if _, ok := textTypes[mt]; !ok && mt != htmlType {
		return "", ErrUnsupportedDocument
	}
	if !utf8.Valid(data) {
		return "", ErrUnreadableDocument
	}

	text := strings.TrimPrefix(string(data), "\ufeff")
	if mt == htmlType {
		text, err = htmlText(text)
		if err != nil {
			return "", ErrUnreadableDocument
		}
	}
	if strings.TrimSpace(text) == "" {
		return "", ErrUnreadableDocument
	}
	return text, nil
}

// ContentTypeForName guesses a content type from a file name.
func ContentTypeForName(name string) string {
	lower := strings.ToLower(name)
	switch {
	case strings.HasSuffix(lower, ".txt"):
		return "text/plain"
	case strings.HasSuffix(lower, ".md"), strings.HasSuffix(lower, ".markdown"):
		return "text/markdown"
	case strings.HasSuffix(lower, ".html"), strings.HasSuffix(lower, ".htm"):
		return htmlType
	case strings.HasSuffix(lower, ".pdf"):
		return "application/pdf"
	case strings.HasSuffix(lower, ".docx"):
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	default:
		return "application/octet-stream"
	}
}

// ExtractSkills finds every known skill that occurs in text as a whole
// token sequence, so "java" does not match "javascript".
func ExtractSkills(text string, known []string) skill.Set {
	out := skill.Set{}
	haystack := " " + strings.Join(tokens(text), " ") + " "
	if haystack == "  " {
		return out
	}

	for _, k := range known {
		tok := skill.Token(k)
		if tok == "" {
			continue
		}
		needle := strings.Join(tokens(tok), " ")
		if needle == "" {
			continue
		}
		if strings.Contains(haystack, " "+needle+" ") {
			out[tok] = struct{}{}
		}
	}
	return out
}

// htmlText drops scripts and styles and returns every text node of the
// body on its own line, so adjacent elements never run together.
func htmlText(doc string) (string, error) {
	d, err := goquery.NewDocumentFromReader(bytes.NewReader([]byte(doc)))
	if err != nil {
		return "", err
	}
	d.Find("script, style, noscript, head").Remove()

	var b strings.Builder
	d.Find("body").Find("*").AddBack().Contents().
		FilterFunction(func(_ int, s *goquery.Selection) bool {
			return goquery.NodeName(s) == "#text"
		}).
		Each(func(_ int, s *goquery.Selection) {
			line := strings.TrimSpace(s.Text())
			if line == "" {
				return
			}
			b.WriteString(line)
			b.WriteByte('\n')
		})
	return b.String(), nil
}

func tokens(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !(unicode.IsLetter(r) || unicode.IsDigit(r) || r == '+' || r == '#')
	})
}
