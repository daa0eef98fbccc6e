// Package session is the writing session of one workspace. Every mutation of
// the working copy, the selection, the staged suggestion and the timers runs
// on a single event-loop goroutine; model calls run off the loop and post
// their completion back to it.
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"ai-writing-be/internal/analysis"
	"ai-writing-be/internal/constant"
	"ai-writing-be/internal/dto"
	"ai-writing-be/internal/editor"
	"ai-writing-be/internal/entity"
	"ai-writing-be/internal/generator"
	"ai-writing-be/internal/history"
	"ai-writing-be/internal/pkg/logger"
	"ai-writing-be/internal/service"
	"ai-writing-be/pkg/debounce"
	"ai-writing-be/pkg/events"
)

const module = "SESSION"

const DefaultPersistDebounce = time.Second

var (
	ErrClosed                = errors.New("session is closed")
	ErrNotStarted            = errors.New("session has not been started")
	ErrSuggestionNotFound    = errors.New("suggestion not found")
	ErrAdvisoryNotApplicable = errors.New("advisory suggestions cannot be applied")
	ErrNoSelection           = errors.New("no active selection")
	ErrDocumentNotFound      = errors.New("document not found")
	ErrDocumentChanged       = errors.New("active document changed during generation")
	ErrExpertNotFound        = errors.New("expert not found")
)

// Notifier pushes session events to connected editors.
type Notifier interface {
	Broadcast(eventType string, payload interface{})
}

// EventPublisher publishes domain events. A nil publisher is allowed.
type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

type Config struct {
	Analysis        analysis.Config
	PersistDebounce time.Duration
	Proactive       bool
}

type Session struct {
	cfg       Config
	generator generator.Generator
	store     service.IDocumentStore
	notifier  Notifier
	events    EventPublisher
	logger    logger.ILogger
	now       func() time.Time

	ctx    context.Context
	cancel context.CancelFunc

	queue     chan func()
	quit      chan struct{}
	closeOnce sync.Once
	stopped   chan struct{}

	// Owned by the event loop.
	started    bool
	doc        *entity.Document
	editor     *editor.Editor
	history    *history.Manager
	loop       *analysis.Loop
	expert     *entity.ExpertPrompt
	generating int
	dirty      bool
	persist    *debounce.Timer
}

func New(
	cfg Config,
	gen generator.Generator,
	store service.IDocumentStore,
	hist *history.Manager,
	notifier Notifier,
	publisher EventPublisher,
	log logger.ILogger,
) *Session {
	if cfg.PersistDebounce <= 0 {
		cfg.PersistDebounce = DefaultPersistDebounce
	}

	ctx, cancel := context.WithCancel(context.Background())
	s := &Session{
		cfg:       cfg,
		generator: gen,
		store:     store,
		notifier:  notifier,
		events:    publisher,
		logger:    log,
		now:       time.Now,
		ctx:       ctx,
		cancel:    cancel,
		queue:     make(chan func(), 256),
		quit:      make(chan struct{}),
		stopped:   make(chan struct{}),
		editor:    editor.New(""),
		history:   hist,
		persist:   debounce.New(cfg.PersistDebounce),
	}
	s.loop = analysis.NewLoop(cfg.Analysis, s)
	go s.run()
	return s
}

func (s *Session) run() {
	defer close(s.stopped)
	for {
		select {
		case fn := <-s.queue:
			fn()
		case <-s.quit:
			return
		}
	}
}

// Post queues fn on the event loop. It is dropped once the session is closed.
func (s *Session) Post(fn func()) {
	select {
	case s.queue <- fn:
	case <-s.quit:
	}
}

// exec runs fn on the event loop and waits for it. ctx only bounds the wait
// for a queue slot; once queued, fn always runs to completion.
func (s *Session) exec(ctx context.Context, fn func() error) error {
	done := make(chan error, 1)
	select {
	case s.queue <- func() { done <- fn() }:
	case <-s.quit:
		return ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case err := <-done:
		return err
	case <-s.stopped:
		return ErrClosed
	}
}

// finish runs the completion half of an off-loop operation.
func (s *Session) finish(fn func() error) error {
	return s.exec(context.Background(), fn)
}

// Start loads the workspace: the stored active document, else the most
// recently modified one, else a new blank document.
func (s *Session) Start(ctx context.Context) error {
	return s.exec(ctx, func() error {
		docs, err := s.store.List(ctx)
		if err != nil {
			return err
		}

		var active *entity.Document
		activeId, err := s.store.ActiveId(ctx)
		if err != nil {
			return err
		}
		for _, d := range docs {
			if d.Id == activeId {
				active = d
				break
			}
		}
		if active == nil && len(docs) > 0 {
			active = docs[0]
		}
		if active == nil {
			active = entity.NewBlankDocument(s.timestamp())
			if err := s.store.Create(ctx, active); err != nil {
				return err
			}
		}

		s.loop.SetEnabled(s.cfg.Proactive)
		if err := s.activate(ctx, active); err != nil {
			return err
		}
		s.started = true

		s.logger.Info(module, "Session started", map[string]interface{}{
			"document_id": active.Id.String(),
			"documents":   len(docs),
		})
		return nil
	})
}

// Close saves pending changes synchronously and stops the event loop.
func (s *Session) Close(ctx context.Context) error {
	err := s.exec(ctx, func() error {
		s.loop.Stop()
		s.persist.Cancel()
		if s.started {
			return s.saveNow(ctx)
		}
		return nil
	})

	s.cancel()
	s.closeOnce.Do(func() { close(s.quit) })
	<-s.stopped
	if errors.Is(err, ErrClosed) {
		return nil
	}
	return err
}

// analysis.Host

func (s *Session) Conditions() analysis.Conditions {
	_, hasSelection := s.editor.Selection()
	return analysis.Conditions{
		Content:        s.editor.Content(),
		WritingContext: s.currentContext(),
		HasSelection:   hasSelection,
		Generating:     s.generating > 0,
	}
}

func (s *Session) StartAnalysis(run analysis.Run) {
	go func() {
		result, err := s.generator.Analyze(s.ctx, run.Content, run.WritingContext)
		if err != nil {
			s.logger.Warn(module, "Proactive analysis failed", map[string]interface{}{
				"error": err.Error(),
			})
		}
		s.Post(func() { s.loop.Complete(run.Token, result, err) })
	}()
}

func (s *Session) SuggestionChanged(sg *entity.Suggestion) {
	if sg == nil {
		s.broadcast(constant.EventSuggestionCleared, nil)
		return
	}
	s.broadcast(constant.EventSuggestionStaged, dto.NewSuggestionResponse(*sg))
}

func (s *Session) currentContext() entity.WritingContext {
	if s.doc == nil {
		return entity.WritingContext{}
	}
	return s.doc.WritingContext
}

// requireStarted guards every operation that touches the working copy.
func (s *Session) requireStarted() error {
	if !s.started {
		return ErrNotStarted
	}
	return nil
}

func (s *Session) timestamp() time.Time {
	return s.now().UTC().Truncate(time.Microsecond)
}

func (s *Session) broadcast(eventType string, payload interface{}) {
	if s.notifier == nil {
		return
	}
	s.notifier.Broadcast(eventType, payload)
}

func (s *Session) publish(eventType string, data map[string]interface{}) {
	if s.events == nil {
		return
	}
	evt := events.New(eventType, data, s.now())
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.events.Publish(ctx, evt); err != nil {
			s.logger.Warn(module, "Failed to publish domain event", map[string]interface{}{
				"event": eventType,
				"error": err.Error(),
			})
		}
	}()
}

var _ analysis.Host = (*Session)(nil)
