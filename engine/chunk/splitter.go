package chunk

// Fragment is a maximal contiguous run of input characters tagged as
// either a matched separator or non-separator content. Fragments are
// loss-less and non-overlapping: concatenating every fragment's Content in
// order reproduces the text they were split from.
type Fragment struct {
	Content     string
	IsSeparator bool
}

// dispatchTable routes the first byte of a candidate position to the
// separator literals that could possibly match there, sorted longest
// first so that picking the longest match (e.g. preferring "???" over
// "??" at the same position) falls out of a simple linear scan of a short
// list instead of testing every separator at every position.
type dispatchTable map[byte][]string

func buildDispatchTable(separators []string) dispatchTable {
	byFirst := make(map[byte][]string)
	for _, sep := range separators {
		if sep == "" {
			continue
		}
		byFirst[sep[0]] = append(byFirst[sep[0]], sep)
	}
	for _, list := range byFirst {
		// Longest match first; stable among equal lengths so the order
		// separators were declared in (the ladder's own precedence) is
		// preserved as the tie-break.
		insertionSortByLengthDesc(list)
	}
	return byFirst
}

func insertionSortByLengthDesc(list []string) {
	for i := 1; i < len(list); i++ {
		for j := i; j > 0 && len(list[j]) > len(list[j-1]); j-- {
			list[j], list[j-1] = list[j-1], list[j]
		}
	}
}

// splitToFragments scans text left-to-right selecting, at each position,
// the longest separator literal that matches there. Ties (equal-length
// candidates starting with the same byte) are broken by declaration order
// in separators. A nil separators slice (as opposed to an empty, non-nil
// one) triggers the terminal per-character fallback: every character of
// text becomes its own separator fragment.
func splitToFragments(text string, separators []string) []Fragment {
	if len(text) == 0 {
		return nil
	}
	if separators == nil {
		return splitToCharacters(text)
	}

	table := buildDispatchTable(separators)
	var fragments []Fragment
	contentStart := 0
	i := 0
	for i < len(text) {
		if candidates, ok := table[text[i]]; ok {
			if match := longestMatchAt(text, i, candidates); match != "" {
				if i > contentStart {
					fragments = append(fragments, Fragment{Content: text[contentStart:i]})
				}
				fragments = append(fragments, Fragment{Content: match, IsSeparator: true})
				i += len(match)
				contentStart = i
				continue
			}
		}
		i++
	}
	if contentStart < len(text) {
		fragments = append(fragments, Fragment{Content: text[contentStart:]})
	}
	return fragments
}

func longestMatchAt(text string, pos int, candidates []string) string {
	for _, candidate := range candidates {
		end := pos + len(candidate)
		if end <= len(text) && text[pos:end] == candidate {
			return candidate
		}
	}
	return ""
}

// splitToCharacters implements the absent-separators terminal fallback:
// one separator fragment per rune, so the packer always terminates even
// when no ladder level brought a fragment under budget.
func splitToCharacters(text string) []Fragment {
	fragments := make([]Fragment, 0, len(text))
	for _, r := range text {
		fragments = append(fragments, Fragment{Content: string(r), IsSeparator: true})
	}
	return fragments
}
