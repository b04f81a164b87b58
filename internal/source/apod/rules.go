package apod

import (
	"path"
	"regexp"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"apod_poster/internal/domain"
	"apod_poster/internal/imaging"
)

const (
	explanationLabel = "Explanation:"
	maxCreditRunes   = 300
)

var (
	publishedDate = regexp.MustCompile(`\b(\d{4})\s+(January|February|March|April|May|June|July|August|September|October|November|December)\s+(\d{1,2})\b`)
	creditLabel   = regexp.MustCompile(`Image\s+Credits?(?:\s*(?:&|and)\s*Copyright)?`)
	imageExts     = map[string]bool{".jpg": true, ".jpeg": true, ".png": true}
)

type draft struct {
	date        time.Time
	title       string
	credit      string
	explanation []string
	candidates  []domain.ImageCandidate
}

type rule struct {
	name  string
	apply func(doc *goquery.Document, d *draft)
}

func (e *Extractor) extractDate(doc *goquery.Document, d *draft) {
	m := publishedDate.FindStringSubmatch(collapseWhitespace(doc.Find("body").Text()))
	if m == nil {
		return
	}
	t, err := time.ParseInLocation("2006 January 2", m[1]+" "+m[2]+" "+m[3], e.cfg.Location)
	if err != nil {
		return
	}
	d.date = t
}

func extractTitle(doc *goquery.Document, d *draft) {
	for _, selector := range []string{"b, strong", "em, i"} {
		doc.Find(selector).EachWithBreak(func(_ int, s *goquery.Selection) bool {
			text := collapseWhitespace(s.Text())
			if text == "" || isLabel(text) {
				return true
			}
			d.title = text
			return false
		})
		if d.title != "" {
			return
		}
	}
}

func isLabel(text string) bool {
	lower := strings.ToLower(text)
	return strings.HasPrefix(lower, "explanation") ||
		strings.Contains(lower, "credit") ||
		strings.HasPrefix(lower, "tomorrow's picture")
}

func extractCredit(doc *goquery.Document, d *draft) {
	const blocks = "center, p, div, td"

	hasLabel := func(_ int, s *goquery.Selection) bool {
		return creditLabel.MatchString(collapseWhitespace(s.Text()))
	}

	// Innermost block carrying the label.
	block := doc.Find(blocks).FilterFunction(func(i int, s *goquery.Selection) bool {
		return hasLabel(i, s) && s.Find(blocks).FilterFunction(hasLabel).Length() == 0
	}).First()
	if block.Length() == 0 {
		block = doc.Find("body")
	}

	text := lineText(block)
	loc := creditLabel.FindStringIndex(text)
	if loc == nil {
		return
	}

	line := text[loc[1]:]
	if i := strings.IndexByte(line, '\n'); i >= 0 {
		line = line[:i]
	}
	credit := collapseWhitespace(strings.TrimLeft(line, " \t:;,.-–—&"))

	if credit == "" || utf8.RuneCountInString(credit) > maxCreditRunes || !strings.ContainsFunc(credit, unicode.IsLetter) {
		return
	}
	d.credit = credit
}

func extractExplanation(doc *goquery.Document, d *draft) {
	label := doc.Find("b, strong").FilterFunction(func(_ int, s *goquery.Selection) bool {
		return strings.TrimSpace(s.Text()) == explanationLabel
	}).First()
	if label.Length() == 0 {
		return
	}

	// The label may sit alone inside a wrapper; climb until siblings carry text.
	for n := label.Get(0); n != nil && !isElement(n, "body"); n = n.Parent {
		text, stopped := siblingText(n)
		if text != "" {
			d.explanation = splitSentences(text)
			return
		}
		if stopped {
			return
		}
	}
}

// siblingText concatenates the plain text following n up to the next bold
// node. stopped reports whether a bold node ended the walk.
func siblingText(n *html.Node) (string, bool) {
	var sb strings.Builder
	for s := n.NextSibling; s != nil; s = s.NextSibling {
		switch s.Type {
		case html.TextNode:
			sb.WriteString(s.Data)
			sb.WriteByte(' ')
		case html.ElementNode:
			if isBold(s) || containsBold(s) {
				return collapseWhitespace(sb.String()), true
			}
			sb.WriteString(nodeText(s))
			sb.WriteByte(' ')
		}
	}
	return collapseWhitespace(sb.String()), false
}

func (e *Extractor) extractImages(doc *goquery.Document, d *draft) {
	seen := make(map[string]bool)
	add := func(ref string, kind domain.CandidateKind) {
		u, err := e.base.Parse(strings.TrimSpace(ref))
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
			return
		}
		u.Fragment = ""
		abs := u.String()
		if seen[abs] {
			return
		}
		seen[abs] = true
		d.candidates = append(d.candidates, domain.ImageCandidate{
			URL:             abs,
			Kind:            kind,
			StructuralScore: imaging.StructuralScore(abs),
		})
	}

	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		u, err := e.base.Parse(strings.TrimSpace(href))
		if err != nil || !imageExts[strings.ToLower(path.Ext(u.Path))] {
			return
		}
		add(href, domain.CandidateAnchor)
	})

	if src, ok := doc.Find("img[src]").First().Attr("src"); ok {
		add(src, domain.CandidateImgTag)
	}
}

// lineText renders a block's text with <br> and nested blocks as line breaks
// and every other whitespace run collapsed to a single space.
func lineText(s *goquery.Selection) string {
	var sb strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			words := strings.Fields(n.Data)
			if len(words) == 0 {
				if n.Data != "" {
					sb.WriteByte(' ')
				}
				return
			}
			if unicode.IsSpace(firstRune(n.Data)) {
				sb.WriteByte(' ')
			}
			sb.WriteString(strings.Join(words, " "))
			if unicode.IsSpace(lastRune(n.Data)) {
				sb.WriteByte(' ')
			}
			return
		case html.ElementNode:
			switch n.Data {
			case "script", "style":
				return
			case "br":
				sb.WriteByte('\n')
				return
			case "p", "div", "center", "td", "tr", "table":
				sb.WriteByte('\n')
				defer sb.WriteByte('\n')
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, n := range s.Nodes {
		walk(n)
	}
	return sb.String()
}

func nodeText(n *html.Node) string {
	var sb strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			sb.WriteString(n.Data)
			return
		case html.ElementNode:
			switch n.Data {
			case "script", "style":
				return
			case "br":
				sb.WriteByte(' ')
				return
			}
		case html.CommentNode:
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}

func isBold(n *html.Node) bool {
	return isElement(n, "b") || isElement(n, "strong")
}

func containsBold(n *html.Node) bool {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if isBold(c) || containsBold(c) {
			return true
		}
	}
	return false
}

func isElement(n *html.Node, name string) bool {
	return n.Type == html.ElementNode && n.Data == name
}

func firstRune(s string) rune {
	r, _ := utf8.DecodeRuneInString(s)
	return r
}

func lastRune(s string) rune {
	r, _ := utf8.DecodeLastRuneInString(s)
	return r
}
