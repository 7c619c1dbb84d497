package nlp

import "strings"

func (in *Interpreter) extractEntities(text string) ExtractedEntities {
	return ExtractedEntities{
		Genre:        in.extractGenre(text),
		Author:       in.extractAuthor(text),
		Title:        in.extractTitle(text),
		Availability: in.extractAvailability(text),
	}
}

func (in *Interpreter) extractGenre(text string) string {
	for _, g := range in.kb.Genres {
		if strings.Contains(text, g.Keyword) {
			return g.Canonical()
		}
	}
	return ""
}

// extractAuthor checks the surname table first, then guesses from the word following
// the author marker ("... by sagan" gives "Sagan").
func (in *Interpreter) extractAuthor(text string) string {
	for _, a := range in.kb.Authors {
		if strings.Contains(text, a.Keyword) {
			return a.Name
		}
	}

	padded := " " + text + " "
	marker := " " + in.kb.AuthorMarker + " "
	idx := strings.Index(padded, marker)
	if idx < 0 {
		return ""
	}

	rest := strings.Fields(padded[idx+len(marker):])
	if len(rest) == 0 {
		return ""
	}

	word := trimWord(rest[0])
	if len([]rune(word)) <= 2 {
		return ""
	}

	return capitalizeFirst(word, in.kb.tag)
}

func (in *Interpreter) extractTitle(text string) string {
	for _, t := range in.kb.Titles {
		if strings.Contains(text, t.Keyword) {
			return t.Title
		}
	}
	return ""
}

func (in *Interpreter) extractAvailability(text string) string {
	for _, a := range in.kb.Availability {
		if strings.Contains(text, a.Keyword) {
			return a.Value
		}
	}
	return ""
}

// extractSearchTerm keeps whatever is left once filler words are removed. Very short
// remainders and bare filter words are not treated as queries.
func (in *Interpreter) extractSearchTerm(text string) string {
	var words []string
	for _, word := range tokenize(text) {
		if in.kb.fillers[word] {
			continue
		}
		words = append(words, word)
	}

	term := strings.Join(words, " ")
	if len([]rune(term)) <= 2 || in.kb.excludedTerms[term] {
		return ""
	}

	return term
}

func (in *Interpreter) extractPreference(text string) string {
	switch {
	case containsAny(text, in.kb.Recommend.Popular):
		return PreferencePopular
	case containsAny(text, in.kb.Recommend.New):
		return PreferenceNew
	default:
		return ""
	}
}
