package output

import (
	"regexp"
	"strings"

	"github.com/gomutex/godocx"
	"github.com/gomutex/godocx/docx"
)

const (
	bodyFont  = "Times New Roman"
	codeFont  = "Courier New"
	bodySize  = 13
	codeSize  = 11
	textColor = "000000"
)

type blockKind int

const (
	blockParagraph blockKind = iota
	blockHeading
	blockBullet
	blockNumbered
	blockCode
)

// block is one rendered paragraph of the document.
type block struct {
	kind  blockKind
	level int // heading level or bullet indent depth
	text  string
}

var (
	headingLine  = regexp.MustCompile(`^(#{1,6})\s+(.+)$`)
	bulletLine   = regexp.MustCompile(`^(\s*)[-*+]\s+(.+)$`)
	numberedLine = regexp.MustCompile(`^\s*\d+[.)]\s+.+$`)
	boldSpan     = regexp.MustCompile(`\*\*(.+?)\*\*`)
)

// parseBlocks classifies markdown lines. Blank lines and horizontal rules are
// dropped; fenced code keeps its original indentation.
func parseBlocks(markdown string) []block {
	var blocks []block
	inCode := false

	for _, line := range strings.Split(markdown, "\n") {
		line = strings.TrimRight(line, "\r")
		trimmed := strings.TrimSpace(line)

		if strings.HasPrefix(trimmed, "```") {
			inCode = !inCode
			continue
		}
		if inCode {
			blocks = append(blocks, block{kind: blockCode, text: line})
			continue
		}
		if trimmed == "" || trimmed == "---" || trimmed == "***" {
			continue
		}

		switch {
		case headingLine.MatchString(trimmed):
			m := headingLine.FindStringSubmatch(trimmed)
			blocks = append(blocks, block{kind: blockHeading, level: len(m[1]), text: m[2]})
		case bulletLine.MatchString(line):
			m := bulletLine.FindStringSubmatch(line)
			depth := len(strings.ReplaceAll(m[1], "\t", "  ")) / 2
			blocks = append(blocks, block{kind: blockBullet, level: depth, text: m[2]})
		case numberedLine.MatchString(line):
			blocks = append(blocks, block{kind: blockNumbered, text: trimmed})
		default:
			blocks = append(blocks, block{kind: blockParagraph, text: trimmed})
		}
	}

	return blocks
}

// markdownToDocx renders model markdown into a docx file at path.
func markdownToDocx(title, markdown, path string) error {
	doc, err := godocx.NewDocument()
	if err != nil {
		return err
	}

	plainRun(doc.AddParagraph(""), title, 16).Bold(true)

	for _, b := range parseBlocks(markdown) {
		p := doc.AddParagraph("")
		switch b.kind {
		case blockHeading:
			plainRun(p, stripInline(b.text), headingSize(b.level)).Bold(true)
		case blockBullet:
			writeInline(p, strings.Repeat("    ", b.level)+"• "+b.text)
		case blockCode:
			p.AddText(b.text).Font(codeFont).Size(codeSize).Color(textColor)
		default:
			writeInline(p, b.text)
		}
	}

	return doc.SaveTo(path)
}

func headingSize(level int) uint64 {
	switch level {
	case 1:
		return 16
	case 2:
		return 15
	case 3:
		return 14
	default:
		return bodySize
	}
}

func plainRun(p *docx.Paragraph, text string, size uint64) *docx.Run {
	return p.AddText(text).Font(bodyFont).Size(size).Color(textColor)
}

// writeInline emits text as runs, bolding **spans**.
func writeInline(p *docx.Paragraph, text string) {
	last := 0
	for _, loc := range boldSpan.FindAllStringSubmatchIndex(text, -1) {
		if loc[0] > last {
			plainRun(p, stripInline(text[last:loc[0]]), bodySize)
		}
		plainRun(p, stripInline(text[loc[2]:loc[3]]), bodySize).Bold(true)
		last = loc[1]
	}
	if last < len(text) {
		plainRun(p, stripInline(text[last:]), bodySize)
	}
}

var inlineMarkers = strings.NewReplacer("**", "", "__", "", "`", "")

func stripInline(s string) string {
	return inlineMarkers.Replace(s)
}
