package entity

import (
	"time"

	"github.com/google/uuid"
)

type ChatRole string

const (
	ChatRoleUser  ChatRole = "user"
	ChatRoleModel ChatRole = "model"
)

type ChatMessage struct {
	Id        uuid.UUID `json:"id"`
	Role      ChatRole  `json:"role"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

// Attachment is a named, typed blob sent along with a draft or chat request.
type Attachment struct {
	Name     string
	MimeType string
	Data     []byte
}

type GoalSuggestion struct {
	Text        string `json:"text"`
	Explanation string `json:"explanation"`
}
