package entity

type SuggestionType string

const (
	SuggestionStyle     SuggestionType = "style"
	SuggestionGrammar   SuggestionType = "grammar"
	SuggestionClarity   SuggestionType = "clarity"
	SuggestionFlow      SuggestionType = "flow"
	SuggestionIdea      SuggestionType = "idea"
	SuggestionStructure SuggestionType = "structure"
	SuggestionArgument  SuggestionType = "argument"
)

func (t SuggestionType) Valid() bool {
	switch t {
	case SuggestionStyle, SuggestionGrammar, SuggestionClarity, SuggestionFlow,
		SuggestionIdea, SuggestionStructure, SuggestionArgument:
		return true
	}
	return false
}

// Suggestion is a proposed edit. A non-empty OriginalText must be a literal
// substring of the content it was generated from; an empty one marks an
// advisory (non-substitutive) suggestion.
type Suggestion struct {
	Id            string
	OriginalText  string
	SuggestedText string
	Reason        string
	Type          SuggestionType
}

func (s *Suggestion) IsAdvisory() bool {
	return s.OriginalText == ""
}

// SelectionRange uses rune offsets into the content: [Start, End).
type SelectionRange struct {
	Start int
	End   int
	Text  string
}
