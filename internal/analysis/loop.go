// Package analysis decides when the document is sent for proactive critique
// and which result, if any, is staged as the current suggestion.
package analysis

import (
	"strings"
	"time"
	"unicode/utf8"

	"ai-writing-be/internal/entity"
	"ai-writing-be/internal/generator"
	"ai-writing-be/pkg/debounce"

	"github.com/google/uuid"
)

type State int

const (
	StateIdle State = iota
	StateScheduled
	StateAnalyzing
	StateSuggested
)

func (s State) String() string {
	switch s {
	case StateScheduled:
		return "scheduled"
	case StateAnalyzing:
		return "analyzing"
	case StateSuggested:
		return "suggested"
	default:
		return "idle"
	}
}

const (
	DefaultDebounce     = 5 * time.Second
	DefaultMinLength    = 100
	DefaultAnchorLength = 20
)

type Config struct {
	Debounce     time.Duration
	MinLength    int // runes; shorter documents are never analyzed
	AnchorLength int // runes of OriginalText that must survive an edit
}

// Conditions is the session state the loop reads when deciding to run.
type Conditions struct {
	Content        string
	WritingContext entity.WritingContext
	HasSelection   bool
	Generating     bool
}

// Run identifies one analysis request.
type Run struct {
	Token          uint64
	Content        string
	WritingContext entity.WritingContext
}

// Host connects the loop to its event loop.
type Host interface {
	// Post queues fn on the event loop. It is called from timer goroutines.
	Post(fn func())
	Conditions() Conditions
	// StartAnalysis runs off the event loop and reports back through
	// Loop.Complete on the event loop.
	StartAnalysis(run Run)
	SuggestionChanged(s *entity.Suggestion)
}

// Loop must only be used from the host's event loop.
type Loop struct {
	cfg   Config
	host  Host
	timer *debounce.Timer
	newID func() string

	enabled    bool
	scheduled  bool
	scheduleId uint64

	inFlight bool
	pending  bool
	runToken uint64
	runEpoch uint64
	epoch    uint64

	suggestion *entity.Suggestion
}

func NewLoop(cfg Config, host Host) *Loop {
	if cfg.Debounce <= 0 {
		cfg.Debounce = DefaultDebounce
	}
	if cfg.MinLength <= 0 {
		cfg.MinLength = DefaultMinLength
	}
	if cfg.AnchorLength <= 0 {
		cfg.AnchorLength = DefaultAnchorLength
	}
	return &Loop{
		cfg:   cfg,
		host:  host,
		timer: debounce.New(cfg.Debounce),
		newID: uuid.NewString,
	}
}

func (l *Loop) State() State {
	switch {
	case l.inFlight:
		return StateAnalyzing
	case l.scheduled:
		return StateScheduled
	case l.suggestion != nil:
		return StateSuggested
	default:
		return StateIdle
	}
}

func (l *Loop) Enabled() bool {
	return l.enabled
}

// Suggestion returns a copy of the staged suggestion.
func (l *Loop) Suggestion() (entity.Suggestion, bool) {
	if l.suggestion == nil {
		return entity.Suggestion{}, false
	}
	return *l.suggestion, true
}

func (l *Loop) SetEnabled(enabled bool) {
	if l.enabled == enabled {
		return
	}
	l.enabled = enabled
	if !enabled {
		l.cancelTimer()
		l.pending = false
		l.ClearSuggestion()
		return
	}
	l.Reschedule()
}

// OnContentChanged drops a staged suggestion whose anchor is gone, then
// restarts the debounce.
func (l *Loop) OnContentChanged(content string) {
	if l.suggestion != nil && !strings.Contains(content, l.anchor(l.suggestion.OriginalText)) {
		l.ClearSuggestion()
	}
	l.Reschedule()
}

// OnSelectionChanged retires the staged suggestion when a new selection is made.
func (l *Loop) OnSelectionChanged(hasSelection bool) {
	if hasSelection {
		l.ClearSuggestion()
	}
	l.Reschedule()
}

func (l *Loop) OnGeneratingChanged() {
	l.Reschedule()
}

func (l *Loop) ClearSuggestion() {
	if l.suggestion == nil {
		return
	}
	l.suggestion = nil
	l.host.SuggestionChanged(nil)
}

// Reset forgets everything tied to the current document. Results of an
// analysis still in flight are discarded when they arrive.
func (l *Loop) Reset() {
	l.cancelTimer()
	l.pending = false
	l.epoch++
	l.ClearSuggestion()
	l.Reschedule()
}

// Stop cancels the timer for good.
func (l *Loop) Stop() {
	l.enabled = false
	l.cancelTimer()
}

// Reschedule restarts the debounce if analysis is currently warranted and
// cancels it otherwise. While an analysis is in flight it only records that
// another pass is wanted.
func (l *Loop) Reschedule() {
	if !l.enabled {
		l.cancelTimer()
		return
	}
	if l.inFlight {
		l.cancelTimer()
		l.pending = true
		return
	}
	if !l.warranted(l.host.Conditions()) {
		l.cancelTimer()
		return
	}

	l.scheduleId++
	l.scheduled = true
	id := l.scheduleId
	l.timer.Schedule(func() {
		l.host.Post(func() { l.fire(id) })
	})
}

func (l *Loop) fire(id uint64) {
	if id != l.scheduleId || !l.enabled {
		return
	}
	l.scheduled = false
	if l.inFlight {
		l.pending = true
		return
	}

	cond := l.host.Conditions()
	if !l.warranted(cond) {
		return
	}

	l.runToken++
	l.runEpoch = l.epoch
	l.inFlight = true
	l.pending = false
	l.host.StartAnalysis(Run{
		Token:          l.runToken,
		Content:        cond.Content,
		WritingContext: cond.WritingContext,
	})
}

// Complete receives the outcome of run token. Errors and malformed output
// leave the staged suggestion untouched.
func (l *Loop) Complete(token uint64, result generator.AnalysisResult, err error) {
	if !l.inFlight || token != l.runToken {
		return
	}
	l.inFlight = false

	if err == nil && l.runEpoch == l.epoch && l.enabled {
		l.accept(result)
	}

	if l.pending {
		l.pending = false
		l.Reschedule()
	}
}

func (l *Loop) accept(result generator.AnalysisResult) {
	cond := l.host.Conditions()
	if cond.HasSelection {
		return
	}

	switch r := result.(type) {
	case generator.Substitution:
		if r.Original == "" || !strings.Contains(cond.Content, r.Original) {
			return
		}
	case generator.Advisory:
	default:
		return
	}

	s := generator.ToSuggestion(result, l.newID())
	l.suggestion = s
	staged := *s
	l.host.SuggestionChanged(&staged)
}

func (l *Loop) warranted(cond Conditions) bool {
	return utf8.RuneCountInString(cond.Content) >= l.cfg.MinLength &&
		!cond.HasSelection &&
		!cond.Generating
}

func (l *Loop) anchor(original string) string {
	if utf8.RuneCountInString(original) <= l.cfg.AnchorLength {
		return original
	}
	return string([]rune(original)[:l.cfg.AnchorLength])
}

func (l *Loop) cancelTimer() {
	l.scheduleId++
	l.scheduled = false
	l.timer.Cancel()
}
