package chunk

// The separator ladder: five fixed, ordered sets of separator literals,
// from strongest structural Markdown boundary to weakest clause-level
// punctuation. Index 0 is applied first; the packer descends to the next
// level only when a fragment still exceeds the token budget after the
// current level's split. The ladder is a fixed constant — Config does not
// customize it.
var ladder = [][]string{
	explicitSeparators,
	potentialSeparators,
	weakSeparators1,
	weakSeparators2,
	weakSeparators3,
}

// explicitSeparators are the strongest structural block boundaries:
// paragraph breaks and heading lines.
var explicitSeparators = []string{
	".\n\n", "!\n\n", "!!\n\n", "!!!\n\n",
	"?\n\n", "??\n\n", "???\n\n",
	"\n\n",
	"\n---",
	"\n#####", "\n####", "\n###", "\n##", "\n#",
}

// potentialSeparators are weaker block structures: blockquotes, list
// items, fenced code, and ordered-list markers.
var potentialSeparators = buildPotentialSeparators()

func buildPotentialSeparators() []string {
	seps := []string{"\n> ", "\n>- ", "\n>* ", "\n```"}
	// "\n<digits>. " for 1-99: the ordered-list marker, longest-match
	// naturally prefers the two-digit form when present because the
	// dispatch table sorts candidates by length.
	for n := 1; n <= 99; n++ {
		seps = append(seps, "\n"+itoa(n)+". ")
	}
	return seps
}

func itoa(n int) string {
	if n < 10 {
		return string([]byte{byte('0' + n)})
	}
	tens := n / 10
	ones := n % 10
	return string([]byte{byte('0' + tens), byte('0' + ones)})
}

// weakSeparators1 are inline structures: table pipes and link/image
// openers.
var weakSeparators1 = []string{
	"| ", " |\n", "-|\n", "[", "![", "\n: ",
}

// weakSeparators2 are sentence-level punctuation, including runs of
// terminal punctuation (longest-match is essential here: "???" must win
// over "??" at the same position) and unicode interrobang/ellipsis
// variants. Every run, plain or mixed, also gets trailing-whitespace
// variants so a run directly followed by a space, tab, or newline still
// matches as the single longest separator rather than splitting the run
// from its trailing whitespace.
var weakSeparators2 = buildWeakSeparators2()

func buildWeakSeparators2() []string {
	var seps []string
	appendWithTrailingWhitespace := func(run string) {
		seps = append(seps, run)
		for _, ws := range []string{" ", "\t", "\n"} {
			seps = append(seps, run+ws)
		}
	}
	for _, ch := range []string{".", "?", "!"} {
		for n := 1; n <= 4; n++ {
			appendWithTrailingWhitespace(repeat(ch, n))
		}
	}
	for _, mix := range []string{"?!", "!?", "?!?", "!?!"} {
		appendWithTrailingWhitespace(mix)
	}
	seps = append(seps, "⁉ ", "⁈ ", "⁇ ", "… ")
	return seps
}

func repeat(s string, n int) string {
	out := make([]byte, 0, len(s)*n)
	for i := 0; i < n; i++ {
		out = append(out, s...)
	}
	return string(out)
}

// weakSeparators3 are the weakest clause-level punctuation, the last
// ladder level before the per-character fallback.
var weakSeparators3 = buildWeakSeparators3()

func buildWeakSeparators3() []string {
	var seps []string
	for _, ch := range []string{";", "}", ")", "]", ":", ","} {
		seps = append(seps, ch, ch+" ", ch+"\t", ch+"\n")
	}
	seps = append(seps, "\n")
	return seps
}
