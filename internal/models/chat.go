package models

import "time"

// ChatState holds one advisor conversation: the current step index and the
// answers captured so far, keyed by question field name.
type ChatState struct {
	SessionID string            `json:"session_id"`
	Step      int               `json:"step"`
	Answers   map[string]string `json:"answers"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

func (s *ChatState) Get(key string) string {
	if s.Answers == nil {
		return ""
	}
	return s.Answers[key]
}

func (s *ChatState) Set(key, value string) {
	if s.Answers == nil {
		s.Answers = make(map[string]string)
	}
	s.Answers[key] = value
}
