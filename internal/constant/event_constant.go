package constant

// Session events pushed to connected editors over the websocket.
const (
	EventContentUpdated     = "content_updated"
	EventSelectionCleared   = "selection_cleared"
	EventSuggestionStaged   = "suggestion_staged"
	EventSuggestionCleared  = "suggestion_cleared"
	EventNotice             = "notice"
	EventSaved              = "saved"
	EventGenerationStarted  = "generation_started"
	EventGenerationFinished = "generation_finished"
	EventError              = "error"
	EventDocumentActivated  = "document_activated"
	EventWorkspaceChanged   = "workspace_changed"
	EventChatUpdated        = "chat_updated"
	EventSnapshotsChanged   = "snapshots_changed"
	EventContextUpdated     = "context_updated"
)

// EventActivity relays a domain event from the bus to connected editors.
const EventActivity = "activity"

// Domain events published to NATS as events.<TYPE>.
const (
	DomainEventDocumentCreated   = "DOCUMENT_CREATED"
	DomainEventDocumentDeleted   = "DOCUMENT_DELETED"
	DomainEventSuggestionApplied = "SUGGESTION_APPLIED"
	DomainEventSnapshotRestored  = "SNAPSHOT_RESTORED"
)

const NoticeSuggestionStale = "The text has changed; this suggestion no longer applies."
