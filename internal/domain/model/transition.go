package model

import "time"

// TransitionAction names the write sequence a transition record tracks.
type TransitionAction string

const (
	TransitionActionUpload  TransitionAction = "upload"
	TransitionActionReplace TransitionAction = "replace"
)

// TransitionStep marks how far a document write sequence progressed.
// A record stuck at StepAttachmentCommitted means the attachment row exists
// but the order update never landed; the repair pass retries only that step.
type TransitionStep string

const (
	StepStarted             TransitionStep = "started"
	StepAttachmentCommitted TransitionStep = "attachment_committed"
	StepCompleted           TransitionStep = "completed"
	StepCompensated         TransitionStep = "compensated"
	StepAbandoned           TransitionStep = "abandoned"
)

// TransitionRecord is the durable step log for one attach-and-advance
// sequence. DocNumber, DocDate and DocRemarks hold the order fields the
// final step still has to write.
type TransitionRecord struct {
	ID          string
	OrderNumber string
	FileType    FileType
	Action      TransitionAction
	Step        TransitionStep
	FileID      string
	DocNumber   string
	DocDate     string
	DocRemarks  string
	LastError   string
	StartedAt   time.Time
	UpdatedAt   time.Time
}
