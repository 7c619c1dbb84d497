package nlp

import "math/rand/v2"

type Interpreter struct {
	kb  *KnowledgeBase
	rnd RandomSource
}

type Option func(*Interpreter)

// WithRandomSource replaces the generator used to pick response variants.
func WithRandomSource(rnd RandomSource) Option {
	return func(in *Interpreter) {
		if rnd != nil {
			in.rnd = rnd
		}
	}
}

// globalRand uses the package-level math/rand/v2 functions, which are safe for
// concurrent use.
type globalRand struct{}

func (globalRand) IntN(n int) int {
	return rand.IntN(n)
}

func NewInterpreter(kb *KnowledgeBase, opts ...Option) IInterpreter {
	if kb == nil {
		kb = MustDefaultKnowledgeBase()
	}

	in := &Interpreter{
		kb:  kb,
		rnd: globalRand{},
	}
	for _, opt := range opts {
		opt(in)
	}

	return in
}

func (in *Interpreter) Knowledge() *KnowledgeBase {
	return in.kb
}

// Interpret maps one utterance onto an intent against the given catalog snapshot.
// It never fails: input it cannot place yields IntentUnknown with a clarifying reply.
func (in *Interpreter) Interpret(utterance string, catalog []Book) IntentResult {
	text := cleanText(utterance)
	if text == "" {
		return IntentResult{
			Kind:         IntentUnknown,
			ResponseText: in.pick(in.kb.Responses.Unknown),
		}
	}

	if in.isGreeting(text) {
		return IntentResult{
			Kind:         IntentGreeting,
			ResponseText: in.pick(in.kb.Responses.Greeting),
		}
	}

	book, source := in.matchBook(text, catalog)
	entities := in.extractEntities(text)

	kind, ok := in.classify(text)
	if !ok {
		switch {
		case book != nil:
			kind = IntentSearch
		case entities.Genre != "":
			kind = IntentGenreBrowse
		case containsAny(text, in.kb.Thanks):
			return IntentResult{
				Kind:         IntentGreeting,
				ResponseText: in.pick(in.kb.Responses.Thanks),
			}
		default:
			kind = IntentUnknown
		}
	}

	switch kind {
	case IntentSearch:
		if book == nil && entities.IsEmpty() {
			entities.SearchTerm = in.extractSearchTerm(text)
		}
	case IntentRecommend:
		entities.Preference = in.extractPreference(text)
	}

	return IntentResult{
		Kind:         kind,
		Entities:     entities,
		ResponseText: in.respond(kind, entities, book),
		MatchedBook:  book,
		MatchSource:  source,
	}
}

func (in *Interpreter) isGreeting(text string) bool {
	tokens := tokenize(text)
	for _, greeting := range in.kb.greetingTokens {
		if containsSequence(tokens, greeting) {
			return true
		}
	}
	return false
}

// classify walks the verb tables in precedence order; the first table with any
// contained phrase decides the kind.
func (in *Interpreter) classify(text string) (IntentKind, bool) {
	for _, intent := range in.kb.Intents {
		if containsAny(text, intent.Phrases) {
			return intent.Kind, true
		}
	}
	return "", false
}
