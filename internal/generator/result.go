package generator

import "ai-writing-be/internal/entity"

// AnalysisResult is one of NoSuggestion, Substitution or Advisory.
type AnalysisResult interface {
	isAnalysisResult()
}

type NoSuggestion struct{}

// Substitution proposes replacing Original, copied verbatim from the analyzed
// text, with Replacement.
type Substitution struct {
	Original    string
	Replacement string
	Reason      string
	Kind        entity.SuggestionType
}

// Advisory is feedback about the document as a whole; nothing to splice.
type Advisory struct {
	Reason string
	Kind   entity.SuggestionType
}

func (NoSuggestion) isAnalysisResult() {}
func (Substitution) isAnalysisResult() {}
func (Advisory) isAnalysisResult()     {}

// ToSuggestion returns nil for NoSuggestion.
func ToSuggestion(result AnalysisResult, id string) *entity.Suggestion {
	switch r := result.(type) {
	case Substitution:
		return &entity.Suggestion{
			Id:            id,
			OriginalText:  r.Original,
			SuggestedText: r.Replacement,
			Reason:        r.Reason,
			Type:          r.Kind,
		}
	case Advisory:
		return &entity.Suggestion{
			Id:     id,
			Reason: r.Reason,
			Type:   r.Kind,
		}
	default:
		return nil
	}
}
