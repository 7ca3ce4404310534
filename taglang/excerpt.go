package taglang

import (
	"fmt"
	"strings"
)

// Excerpt renders the error with the offending source lines and carets under
// the located range. Without a location or source it is the plain message.
func (e *Error) Excerpt() string {
	var sb strings.Builder
	if e.Filename != "" {
		sb.WriteString(e.Filename)
		sb.WriteString(":")
	}
	if e.HasLocation() {
		sb.WriteString(e.Location.Start.String())
		sb.WriteString(":")
	}
	if sb.Len() > 0 {
		sb.WriteString(" ")
	}
	sb.WriteString(e.Error())
	sb.WriteString("\n")

	if !e.HasLocation() || e.Source == "" {
		return sb.String()
	}

	lines := strings.Split(e.Source, "\n")
	start, end := e.Location.Start, e.Location.End
	if end.Line < start.Line {
		end = start
	}
	gutter := len(fmt.Sprint(end.Line))
	for lineno := start.Line; lineno <= end.Line; lineno++ {
		idx := lineno - 1
		if idx < 0 || idx >= len(lines) {
			break
		}
		line := strings.TrimRight(lines[idx], "\r")
		fmt.Fprintf(&sb, "%*d | %s\n", gutter, lineno, line)

		runes := []rune(line)
		from, to := 1, len(runes)
		if lineno == start.Line {
			from = start.Column
		}
		if lineno == end.Line {
			to = end.Column
		}
		to = min(to, len(runes))
		if to < from {
			// points past the end of the line
			to = from
		}

		fmt.Fprintf(&sb, "%*s | ", gutter, "")
		for i, r := range runes {
			if i >= from-1 {
				break
			}
			if r == '\t' {
				sb.WriteString("\t")
			} else {
				sb.WriteString(strings.Repeat(" ", runeWidth(r)))
			}
		}
		for i := from - 1; i < to; i++ {
			w := 1
			if i < len(runes) {
				w = runeWidth(runes[i])
			}
			sb.WriteString(strings.Repeat("^", w))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

func runeWidth(r rune) int {
	if r == 0 {
		return 0
	}
	if r >= 0x1100 &&
		(r <= 0x115f || r == 0x2329 || r == 0x232a ||
			(r >= 0x2e80 && r <= 0xa4cf && r != 0x303f) ||
			(r >= 0xac00 && r <= 0xd7a3) ||
			(r >= 0xf900 && r <= 0xfaff) ||
			(r >= 0xfe10 && r <= 0xfe19) ||
			(r >= 0xfe30 && r <= 0xfe6f) ||
			(r >= 0xff00 && r <= 0xff60) ||
			(r >= 0xffe0 && r <= 0xffe6)) {
		return 2
	}
	return 1
}
