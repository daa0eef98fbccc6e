package session

import (
	"context"

	"ai-writing-be/pkg/export"
)

type ExportResult struct {
	FileName    string
	ContentType string
	Data        []byte
}

// Export renders the working copy. Rendering runs off the event loop.
func (s *Session) Export(ctx context.Context, format export.Format) (*ExportResult, error) {
	var title, content string
	err := s.exec(ctx, func() error {
		if err := s.requireStarted(); err != nil {
			return err
		}
		title = s.liveTitle()
		content = s.editor.Content()
		return nil
	})
	if err != nil {
		return nil, err
	}

	data, err := export.Render(format, title, content)
	if err != nil {
		return nil, err
	}
	return &ExportResult{
		FileName:    export.FileName(title, format),
		ContentType: format.ContentType(),
		Data:        data,
	}, nil
}
