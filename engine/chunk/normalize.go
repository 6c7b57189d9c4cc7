package chunk

import "strings"

// normalizeNewlines maps every CRLF and lone CR to LF so that downstream
// separator literals containing "\n" match uniformly regardless of the
// input's line-ending convention. It is idempotent: normalizing already
// normalized text is a no-op.
func normalizeNewlines(text string) string {
	if !strings.ContainsRune(text, '\r') {
		return text
	}
	var b strings.Builder
	b.Grow(len(text))
	for i := 0; i < len(text); i++ {
		c := text[i]
		if c != '\r' {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('\n')
		if i+1 < len(text) && text[i+1] == '\n' {
			i++
		}
	}
	return b.String()
}
