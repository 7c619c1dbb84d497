package nlp

import "strings"

// matchBook resolves an utterance to a concrete catalog book. Exact title patterns are
// tried first; the word-overlap fallback only runs when no pattern matched at all.
func (in *Interpreter) matchBook(text string, catalog []Book) (*Book, string) {
	for _, p := range in.kb.BookPatterns {
		if !p.re.MatchString(text) {
			continue
		}

		if book := findByTitle(catalog, p.Title); book != nil {
			return book, MatchSourcePattern
		}
		return nil, ""
	}

	if book := in.fuzzyMatch(text, catalog); book != nil {
		return book, MatchSourceFuzzy
	}

	return nil, ""
}

// findByTitle is an exact, case-sensitive lookup over the supplied catalog.
func findByTitle(catalog []Book, title string) *Book {
	for i := range catalog {
		if catalog[i].Title == title {
			book := catalog[i]
			return &book
		}
	}
	return nil
}

// fuzzyMatch returns the first book in catalog order sharing a significant word with the
// utterance, where one word contains the other. Ties break by catalog order only.
func (in *Interpreter) fuzzyMatch(text string, catalog []Book) *Book {
	words := in.significantWords(strings.Fields(text))
	if len(words) == 0 {
		return nil
	}

	for i := range catalog {
		titleWords := in.significantWords(strings.Fields(cleanText(catalog[i].Title)))
		for _, word := range words {
			for _, titleWord := range titleWords {
				if strings.Contains(titleWord, word) || strings.Contains(word, titleWord) {
					book := catalog[i]
					return &book
				}
			}
		}
	}

	return nil
}

// significantWords drops short words and stop words. It filters utterance and title
// words alike, so a title made only of short words ("It") never fuzzy-matches.
func (in *Interpreter) significantWords(fields []string) []string {
	words := make([]string, 0, len(fields))
	for _, field := range fields {
		word := trimWord(field)
		if len([]rune(word)) < in.kb.Fuzzy.MinWordLength || in.kb.stopWords[word] {
			continue
		}
		words = append(words, word)
	}
	return words
}
