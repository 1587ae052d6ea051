package dto

import "time"

type AddClientInput struct {
	Name             string
	Phone            string
	Email            string
	Company          string
	Status           string
	Priority         string
	CallOutcome      string
	FollowUpRequired bool
}

type UpdateStatusInput struct {
	ClientID string
	Status   string
}

type StatusOptionInput struct {
	Option string
}

type ClientOutput struct {
	ID               string
	Name             string
	Phone            string
	Email            string
	Company          string
	Status           string
	Priority         string
	CallOutcome      string
	FollowUpRequired bool
	CreatedAt        time.Time
}

type DropdownOutput struct {
	ID      string
	Name    string
	Options []string
}

// RecordView is the live, in-memory projection of one client used by
// snapshot consumers.
type RecordView struct {
	ID     string
	Status string
}
