package session

import (
	"context"
	"strings"

	"ai-writing-be/internal/constant"
	"ai-writing-be/internal/dto"
	"ai-writing-be/internal/editor"
	"ai-writing-be/internal/entity"
	"ai-writing-be/pkg/richtext"

	"github.com/google/uuid"
)

// activate makes doc the working copy and swaps in its history.
func (s *Session) activate(ctx context.Context, doc *entity.Document) error {
	if err := s.history.Load(ctx, doc.Id); err != nil {
		return err
	}

	s.doc = doc.Clone()
	s.editor = editor.New(doc.Content)
	s.expert = nil
	s.dirty = false
	s.loop.Reset()

	if err := s.store.SetActiveId(ctx, doc.Id); err != nil {
		s.logger.Warn(module, "Failed to store active document", map[string]interface{}{
			"document_id": doc.Id.String(),
			"error":       err.Error(),
		})
	}

	s.broadcast(constant.EventDocumentActivated, s.view())
	return nil
}

// markDirty restarts the persistence debounce.
func (s *Session) markDirty() {
	s.dirty = true
	s.persist.Schedule(func() { s.Post(s.flush) })
}

// stamp refreshes the derived title and modification time of the working copy.
func (s *Session) stamp() {
	if !s.doc.TitlePinned {
		s.doc.Title = richtext.DeriveTitle(s.doc.Content)
	}
	s.doc.LastModified = s.timestamp()
}

// flush hands the working copy to the persistence queue.
func (s *Session) flush() {
	if !s.dirty || s.doc == nil {
		return
	}
	s.dirty = false
	s.stamp()

	if err := s.store.Enqueue(s.ctx, s.doc.Clone()); err != nil {
		s.logger.Error(module, "Failed to enqueue document", map[string]interface{}{
			"document_id": s.doc.Id.String(),
			"error":       err.Error(),
		})
	}
}

// saveNow writes pending changes synchronously. Used before the working copy
// is replaced, so a later read of the same document sees them.
func (s *Session) saveNow(ctx context.Context) error {
	s.persist.Cancel()
	if !s.dirty {
		return nil
	}
	s.stamp()

	if _, err := s.store.Save(ctx, s.doc.Clone()); err != nil {
		s.logger.Error(module, "Failed to save document", map[string]interface{}{
			"document_id": s.doc.Id.String(),
			"error":       err.Error(),
		})
		// Edits stay pending for the next attempt.
		s.markDirty()
		return err
	}
	s.dirty = false
	return nil
}

func (s *Session) Workspace(ctx context.Context) (*dto.WorkspaceResponse, error) {
	var res *dto.WorkspaceResponse
	err := s.exec(ctx, func() error {
		if err := s.requireStarted(); err != nil {
			return err
		}
		docs, err := s.store.List(ctx)
		if err != nil {
			return err
		}

		res = &dto.WorkspaceResponse{
			ActiveId:  s.doc.Id,
			Documents: make([]dto.DocumentSummaryResponse, 0, len(docs)),
		}
		for _, d := range docs {
			summary := dto.DocumentSummaryResponse{
				Id:           d.Id,
				Title:        d.Title,
				LastModified: d.LastModified,
			}
			if d.Id == s.doc.Id {
				summary.Active = true
				summary.Title = s.liveTitle()
			}
			res.Documents = append(res.Documents, summary)
		}
		return nil
	})
	return res, err
}

func (s *Session) liveTitle() string {
	if s.doc.TitlePinned {
		return s.doc.Title
	}
	return richtext.DeriveTitle(s.doc.Content)
}

// CreateDocument stores a new document and makes it active.
func (s *Session) CreateDocument(ctx context.Context, content string) (*dto.SessionResponse, error) {
	var res *dto.SessionResponse
	err := s.exec(ctx, func() error {
		if err := s.requireStarted(); err != nil {
			return err
		}
		if err := s.saveNow(ctx); err != nil {
			return err
		}

		doc := entity.NewBlankDocument(s.timestamp())
		doc.Content = content
		doc.Title = richtext.DeriveTitle(content)
		if err := s.store.Create(ctx, doc); err != nil {
			return err
		}
		if err := s.activate(ctx, doc); err != nil {
			return err
		}

		s.publish(constant.DomainEventDocumentCreated, map[string]interface{}{
			"document_id": doc.Id.String(),
			"title":       doc.Title,
		})
		s.broadcast(constant.EventWorkspaceChanged, nil)
		v := s.view()
		res = &v
		return nil
	})
	return res, err
}

func (s *Session) SwitchDocument(ctx context.Context, id uuid.UUID) (*dto.SessionResponse, error) {
	var res *dto.SessionResponse
	err := s.exec(ctx, func() error {
		if err := s.requireStarted(); err != nil {
			return err
		}
		if id != s.doc.Id {
			doc, err := s.store.Get(ctx, id)
			if err != nil {
				return err
			}
			if doc == nil {
				return ErrDocumentNotFound
			}
			if err := s.saveNow(ctx); err != nil {
				return err
			}
			if err := s.activate(ctx, doc); err != nil {
				return err
			}
		}
		v := s.view()
		res = &v
		return nil
	})
	return res, err
}

// DeleteDocument removes a document and its snapshots. Deleting the active
// document activates the most recently modified remaining one, or a fresh
// blank document when none remain.
func (s *Session) DeleteDocument(ctx context.Context, id uuid.UUID) error {
	return s.exec(ctx, func() error {
		if err := s.requireStarted(); err != nil {
			return err
		}
		doc, err := s.store.Get(ctx, id)
		if err != nil {
			return err
		}
		if doc == nil {
			return ErrDocumentNotFound
		}

		wasActive := id == s.doc.Id
		if wasActive {
			s.persist.Cancel()
			s.dirty = false
		}
		if err := s.store.Delete(ctx, id); err != nil {
			return err
		}

		if wasActive {
			docs, err := s.store.List(ctx)
			if err != nil {
				return err
			}
			var next *entity.Document
			if len(docs) > 0 {
				next = docs[0]
			} else {
				next = entity.NewBlankDocument(s.timestamp())
				if err := s.store.Create(ctx, next); err != nil {
					return err
				}
			}
			if err := s.activate(ctx, next); err != nil {
				return err
			}
		}

		s.publish(constant.DomainEventDocumentDeleted, map[string]interface{}{
			"document_id": id.String(),
			"title":       doc.Title,
		})
		s.broadcast(constant.EventWorkspaceChanged, nil)
		return nil
	})
}

// RenameDocument pins title on the document. An empty title unpins it and
// the title is derived from content again.
func (s *Session) RenameDocument(ctx context.Context, id uuid.UUID, title string) error {
	title = strings.TrimSpace(title)
	return s.exec(ctx, func() error {
		if err := s.requireStarted(); err != nil {
			return err
		}

		if id == s.doc.Id {
			s.doc.Title = title
			s.doc.TitlePinned = title != ""
			s.markDirty()
			s.broadcast(constant.EventWorkspaceChanged, nil)
			return nil
		}

		doc, err := s.store.Get(ctx, id)
		if err != nil {
			return err
		}
		if doc == nil {
			return ErrDocumentNotFound
		}
		doc.TitlePinned = title != ""
		doc.Title = title
		if !doc.TitlePinned {
			doc.Title = richtext.DeriveTitle(doc.Content)
		}
		doc.LastModified = s.timestamp()
		if _, err := s.store.Save(ctx, doc); err != nil {
			return err
		}
		s.broadcast(constant.EventWorkspaceChanged, nil)
		return nil
	})
}
