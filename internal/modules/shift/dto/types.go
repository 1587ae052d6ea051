package dto

import "time"

type StartInput struct {
	OperatorName string `json:"operator_name"`
	LoginTime    string `json:"login_time"`
}

type PreviewInput struct {
	LogoutTime string `json:"logout_time"`
}

// EndInput ends SessionID, or the active session when SessionID is empty.
type EndInput struct {
	SessionID  string `json:"session_id"`
	LogoutTime string `json:"logout_time"`
}

type DeleteInput struct {
	SessionID string `json:"session_id"`
}

type SnapshotEntry struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

type ChangeOutput struct {
	Status  string `json:"status"`
	Entry   int    `json:"entry"`
	Exit    int    `json:"exit"`
	Delta   int    `json:"delta"`
	InEntry bool   `json:"in_entry"`
	InExit  bool   `json:"in_exit"`
}

type SessionOutput struct {
	ID                 string          `json:"id"`
	OperatorName       string          `json:"operator_name"`
	Date               string          `json:"date"`
	LoginTime          string          `json:"login_time"`
	LogoutTime         string          `json:"logout_time,omitempty"`
	EntrySnapshot      []SnapshotEntry `json:"entry_snapshot"`
	ExitSnapshot       []SnapshotEntry `json:"exit_snapshot,omitempty"`
	Conversions        map[string]int  `json:"conversions,omitempty"`
	EstimatedCallCount int             `json:"estimated_call_count"`
	IsActive           bool            `json:"is_active"`
	CreatedAt          time.Time       `json:"created_at"`
	Changes            []ChangeOutput  `json:"changes,omitempty"`
	NotePath           string          `json:"note_path,omitempty"`
}

// StatusOutput compares the active session's entry snapshot with live counts.
type StatusOutput struct {
	HasActive bool            `json:"has_active"`
	Active    SessionOutput   `json:"active"`
	Current   []SnapshotEntry `json:"current"`
	Changes   []ChangeOutput  `json:"changes,omitempty"`
}
