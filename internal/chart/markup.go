package chart

import (
	"strconv"
	"strings"
)

// Run is a stretch of text drawn in one color.
type Run struct {
	Text  string
	Color ColorIdentity
}

const escapeStart = "\x1b["

// Tokenize splits a line into colored runs. SGR sequences switch the
// active color and take no columns; unrecognized codes are ignored and an
// unterminated sequence is kept as text. The color resets at line end.
func Tokenize(line string) []Run {
	var runs []Run
	var text strings.Builder
	color := Default

	flush := func() {
		if text.Len() == 0 {
			return
		}
		if n := len(runs); n > 0 && runs[n-1].Color == color {
			runs[n-1].Text += text.String()
		} else {
			runs = append(runs, Run{Text: text.String(), Color: color})
		}
		text.Reset()
	}

	for i := 0; i < len(line); {
		if strings.HasPrefix(line[i:], escapeStart) {
			end := strings.IndexByte(line[i+len(escapeStart):], 'm')
			if end >= 0 {
				params := line[i+len(escapeStart) : i+len(escapeStart)+end]
				if next, ok := applySGR(color, params); ok {
					flush()
					color = next
					i += len(escapeStart) + end + 1
					continue
				}
			}
		}
		text.WriteByte(line[i])
		i++
	}
	flush()

	return runs
}

// applySGR applies semicolon separated SGR parameters to the current color.
// It fails when params contain anything but digits and separators.
func applySGR(current ColorIdentity, params string) (ColorIdentity, bool) {
	if params == "" {
		return Default, true
	}
	color := current
	for _, p := range strings.Split(params, ";") {
		code, err := strconv.Atoi(p)
		if err != nil {
			return current, false
		}
		switch c := ColorIdentity(code); {
		case code == 0 || code == 39:
			color = Default
		case c.Valid():
			color = c
		}
	}
	return color, true
}

// Strip removes color markers from text, keeping line structure.
func Strip(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		var b strings.Builder
		for _, run := range Tokenize(line) {
			b.WriteString(run.Text)
		}
		lines[i] = b.String()
	}
	return strings.Join(lines, "\n")
}
