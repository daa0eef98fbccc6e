// Command export writes a stored document to a pdf, docx or markdown file.
package main

import (
	"context"
	"flag"
	"log"
	"os"

	"ai-writing-be/internal/bootstrap"
	"ai-writing-be/internal/config"
	"ai-writing-be/internal/pkg/logger"
	"ai-writing-be/internal/service"
	"ai-writing-be/pkg/export"

	"github.com/google/uuid"
)

// discardQueue satisfies the store's save queue; this command never saves.
type discardQueue struct{}

func (discardQueue) Publish(ctx context.Context, payload []byte) error { return nil }

func main() {
	idFlag := flag.String("id", "", "document id (defaults to the active document)")
	formatFlag := flag.String("format", "pdf", "pdf, docx or md")
	outFlag := flag.String("out", "", "output path (defaults to a name derived from the title)")
	flag.Parse()

	format, err := export.ParseFormat(*formatFlag)
	if err != nil {
		log.Fatalf("Error: %v", err)
	}

	cfg := config.Load()
	if cfg.Database.Driver == bootstrap.DriverMemory {
		log.Fatal("Error: the memory driver keeps no documents to export")
	}

	factory, err := bootstrap.NewRepositoryFactory(cfg.Database, false)
	if err != nil {
		log.Fatalf("Error: %v", err)
	}
	store := service.NewDocumentStore(factory, discardQueue{}, logger.NewNopLogger())

	ctx := context.Background()
	var id uuid.UUID
	if *idFlag != "" {
		if id, err = uuid.Parse(*idFlag); err != nil {
			log.Fatalf("Error: invalid id %q", *idFlag)
		}
	} else if id, err = store.ActiveId(ctx); err != nil || id == uuid.Nil {
		log.Fatal("Error: no -id given and no active document recorded")
	}

	doc, err := store.Get(ctx, id)
	if err != nil {
		log.Fatalf("Error: load document: %v", err)
	}
	if doc == nil {
		log.Fatalf("Error: document %s not found", id)
	}

	data, err := export.Render(format, doc.Title, doc.Content)
	if err != nil {
		log.Fatalf("Error: render: %v", err)
	}

	out := *outFlag
	if out == "" {
		out = export.FileName(doc.Title, format)
	}
	if err := os.WriteFile(out, data, 0o644); err != nil {
		log.Fatalf("Error: write %s: %v", out, err)
	}
	log.Printf("Exported %q to %s (%d bytes)", doc.Title, out, len(data))
}
