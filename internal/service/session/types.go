package session

import "time"

// Summary 会话概要
type Summary struct {
	SessionID    string    `json:"sessionId"`
	CreatedAt    time.Time `json:"createdAt"`
	LastActiveAt time.Time `json:"lastActiveAt"`
	ResultCount  int       `json:"resultCount"`
}
