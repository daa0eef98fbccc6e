package analysis

import (
	"strings"
	"sync"
	"testing"
	"time"

	"ai-writing-be/internal/entity"
	"ai-writing-be/internal/generator"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeHost runs posted callbacks on a single goroutine, like the session loop.
type fakeHost struct {
	queue chan func()
	done  chan struct{}

	mu     sync.Mutex
	cond   Conditions
	runs   []Run
	staged []*entity.Suggestion
	loop   *Loop
}

func newFakeHost(t *testing.T, cfg Config) *fakeHost {
	h := &fakeHost{queue: make(chan func(), 64), done: make(chan struct{})}
	h.loop = NewLoop(cfg, h)
	go func() {
		for {
			select {
			case fn := <-h.queue:
				fn()
			case <-h.done:
				return
			}
		}
	}()
	t.Cleanup(func() {
		h.do(func() { h.loop.Stop() })
		close(h.done)
	})
	return h
}

// do runs fn on the loop goroutine and waits for it.
func (h *fakeHost) do(fn func()) {
	ran := make(chan struct{})
	h.queue <- func() {
		fn()
		close(ran)
	}
	<-ran
}

func (h *fakeHost) Post(fn func())         { h.queue <- fn }
func (h *fakeHost) Conditions() Conditions { return h.cond }

func (h *fakeHost) StartAnalysis(run Run) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.runs = append(h.runs, run)
}

func (h *fakeHost) SuggestionChanged(s *entity.Suggestion) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.staged = append(h.staged, s)
}

func (h *fakeHost) runCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.runs)
}

func (h *fakeHost) lastRun() Run {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.runs[len(h.runs)-1]
}

func (h *fakeHost) typeText(content string) {
	h.do(func() {
		h.cond.Content = content
		h.loop.OnContentChanged(content)
	})
}

var (
	testCfg = Config{Debounce: 60 * time.Millisecond, MinLength: 100, AnchorLength: 20}
	doc     = strings.Repeat("Lorem ipsum dolor sit amet. ", 4) + "The cat sat on the mat."
)

func enabledHost(t *testing.T) *fakeHost {
	h := newFakeHost(t, testCfg)
	h.do(func() { h.loop.SetEnabled(true) })
	return h
}

func TestBurstOfEditsSchedulesOneAnalysis(t *testing.T) {
	h := enabledHost(t)

	for i := 0; i < 5; i++ {
		h.typeText(doc + strings.Repeat("!", i))
		time.Sleep(10 * time.Millisecond)
	}

	require.Eventually(t, func() bool { return h.runCount() == 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(3 * testCfg.Debounce)
	assert.Equal(t, 1, h.runCount())
	assert.Equal(t, doc+"!!!!", h.lastRun().Content)
}

func TestShortContentNeverScheduled(t *testing.T) {
	h := enabledHost(t)

	h.typeText("too short")

	time.Sleep(3 * testCfg.Debounce)
	assert.Zero(t, h.runCount())
	h.do(func() { assert.Equal(t, StateIdle, h.loop.State()) })
}

func TestDisabledNeverScheduled(t *testing.T) {
	h := newFakeHost(t, testCfg)

	h.typeText(doc)

	time.Sleep(3 * testCfg.Debounce)
	assert.Zero(t, h.runCount())
}

func TestSelectionAndGenerationSuppress(t *testing.T) {
	h := enabledHost(t)
	h.do(func() {
		h.cond.HasSelection = true
		h.cond.Content = doc
		h.loop.OnContentChanged(doc)
	})
	time.Sleep(3 * testCfg.Debounce)
	assert.Zero(t, h.runCount())

	h.do(func() {
		h.cond.HasSelection = false
		h.cond.Generating = true
		h.loop.OnSelectionChanged(false)
	})
	time.Sleep(3 * testCfg.Debounce)
	assert.Zero(t, h.runCount())

	h.do(func() {
		h.cond.Generating = false
		h.loop.OnGeneratingChanged()
	})
	require.Eventually(t, func() bool { return h.runCount() == 1 }, time.Second, 5*time.Millisecond)
}

func TestSelectionAtFireTimeSuppresses(t *testing.T) {
	h := enabledHost(t)
	h.typeText(doc)
	// selection appears without the loop being told
	h.do(func() { h.cond.HasSelection = true })

	time.Sleep(3 * testCfg.Debounce)
	assert.Zero(t, h.runCount())
}

func TestAtMostOneInFlight(t *testing.T) {
	h := enabledHost(t)
	h.typeText(doc)
	require.Eventually(t, func() bool { return h.runCount() == 1 }, time.Second, 5*time.Millisecond)
	h.do(func() { assert.Equal(t, StateAnalyzing, h.loop.State()) })

	h.typeText(doc + " More text.")
	time.Sleep(3 * testCfg.Debounce)
	assert.Equal(t, 1, h.runCount())

	first := h.lastRun()
	h.do(func() { h.loop.Complete(first.Token, generator.NoSuggestion{}, nil) })

	require.Eventually(t, func() bool { return h.runCount() == 2 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, doc+" More text.", h.lastRun().Content)
}

func analyzeOnce(t *testing.T, h *fakeHost) Run {
	h.typeText(doc)
	require.Eventually(t, func() bool { return h.runCount() > 0 }, time.Second, 5*time.Millisecond)
	return h.lastRun()
}

func TestAcceptSubstitutionPresentInContent(t *testing.T) {
	h := enabledHost(t)
	run := analyzeOnce(t, h)

	h.do(func() {
		h.loop.Complete(run.Token, generator.Substitution{Original: "The cat sat", Replacement: "The cat perched", Kind: entity.SuggestionStyle}, nil)
		s, ok := h.loop.Suggestion()
		require.True(t, ok)
		assert.Equal(t, "The cat sat", s.OriginalText)
		assert.NotEmpty(t, s.Id)
		assert.True(t, strings.Contains(h.cond.Content, s.OriginalText))
		assert.Equal(t, StateSuggested, h.loop.State())
	})
}

func TestDropSubstitutionMissingFromCurrentContent(t *testing.T) {
	h := enabledHost(t)
	run := analyzeOnce(t, h)

	h.do(func() {
		// the user kept typing while the model was thinking
		h.cond.Content = strings.Replace(doc, "The cat sat", "A dog stood", 1)
		h.loop.Complete(run.Token, generator.Substitution{Original: "The cat sat", Replacement: "x", Kind: entity.SuggestionStyle}, nil)
		_, ok := h.loop.Suggestion()
		assert.False(t, ok)
	})
}

func TestAdvisoryAcceptedAndSurvivesEdits(t *testing.T) {
	h := enabledHost(t)
	run := analyzeOnce(t, h)

	h.do(func() {
		h.loop.Complete(run.Token, generator.Advisory{Reason: "Add a conclusion", Kind: entity.SuggestionStructure}, nil)
	})
	h.typeText("completely different text " + doc)

	h.do(func() {
		s, ok := h.loop.Suggestion()
		require.True(t, ok)
		assert.True(t, s.IsAdvisory())
	})
}

func TestEditRemovingAnchorInvalidates(t *testing.T) {
	h := enabledHost(t)
	run := analyzeOnce(t, h)
	original := "Lorem ipsum dolor sit amet. Lorem"
	h.do(func() {
		h.loop.Complete(run.Token, generator.Substitution{Original: original, Replacement: "x", Kind: entity.SuggestionFlow}, nil)
	})

	// the tail of the original changed but its 20-rune anchor survives
	h.typeText(strings.Replace(doc, "amet. Lorem", "amet! Lorem", 1))
	h.do(func() {
		_, ok := h.loop.Suggestion()
		assert.True(t, ok)
	})

	h.typeText(strings.ReplaceAll(doc, "Lorem ipsum", "Lorem lipsum"))
	h.do(func() {
		_, ok := h.loop.Suggestion()
		assert.False(t, ok)
	})
	h.mu.Lock()
	defer h.mu.Unlock()
	assert.Nil(t, h.staged[len(h.staged)-1])
}

func TestNewSelectionClearsSuggestion(t *testing.T) {
	h := enabledHost(t)
	run := analyzeOnce(t, h)
	h.do(func() {
		h.loop.Complete(run.Token, generator.Advisory{Reason: "r", Kind: entity.SuggestionIdea}, nil)
		h.cond.HasSelection = true
		h.loop.OnSelectionChanged(true)
		_, ok := h.loop.Suggestion()
		assert.False(t, ok)
	})
}

func TestResetDiscardsInFlightResult(t *testing.T) {
	h := enabledHost(t)
	run := analyzeOnce(t, h)

	h.do(func() {
		h.loop.Reset()
		h.loop.Complete(run.Token, generator.Advisory{Reason: "stale", Kind: entity.SuggestionIdea}, nil)
		_, ok := h.loop.Suggestion()
		assert.False(t, ok)
	})
}

func TestErrorLeavesLoopIdle(t *testing.T) {
	h := enabledHost(t)
	run := analyzeOnce(t, h)

	h.do(func() {
		h.loop.Complete(run.Token, generator.NoSuggestion{}, assert.AnError)
		assert.Equal(t, StateIdle, h.loop.State())
	})
}
