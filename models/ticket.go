package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Ticket statuses
const (
	TicketOpen       = "open"
	TicketInProgress = "in-progress"
	TicketResolved   = "resolved"
	TicketClosed     = "closed"
)

// Issue types
const (
	IssueListingProblem = "listing-problem"
	IssueCantCreate     = "cannot-create-listing"
	IssueAccount        = "account-issue"
	IssuePayment        = "payment-problem"
	IssueOther          = "other"
)

// Sender types for ticket messages
const (
	SenderUser  = "user"
	SenderStaff = "staff"
)

// Attachment kinds
const (
	AttachmentImage    = "image"
	AttachmentVideo    = "video"
	AttachmentDocument = "document"
	AttachmentOther    = "other"
)

// issueTypeAliases maps the display labels the older clients still send
// to their canonical issue type values.
var issueTypeAliases = map[string]string{
	"Problem with a listing": IssueListingProblem,
	"Can't create a listing": IssueCantCreate,
	"Account issues":         IssueAccount,
	"Payment problems":       IssuePayment,
	"Other":                  IssueOther,
}

// NormalizeIssueType resolves an issue type input to its canonical value.
// The second return is false when the value is not a known issue type.
func NormalizeIssueType(v string) (string, bool) {
	if canonical, ok := issueTypeAliases[v]; ok {
		return canonical, true
	}
	switch v {
	case IssueListingProblem, IssueCantCreate, IssueAccount, IssuePayment, IssueOther:
		return v, true
	}
	return "", false
}

// ticketTransitions holds the allowed status transitions. closed is
// terminal and no transition moves backward.
var ticketTransitions = map[string][]string{
	TicketOpen:       {TicketInProgress, TicketClosed},
	TicketInProgress: {TicketResolved, TicketClosed},
	TicketResolved:   {TicketClosed},
	TicketClosed:     {},
}

// CanTransition reports whether a ticket may move from one status to another.
func CanTransition(from, to string) bool {
	for _, next := range ticketTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// ValidTicketStatus reports whether v is a known ticket status.
func ValidTicketStatus(v string) bool {
	switch v {
	case TicketOpen, TicketInProgress, TicketResolved, TicketClosed:
		return true
	}
	return false
}

// Attachment is a file reference embedded in a ticket message
type Attachment struct {
	URL          string `json:"url" bson:"url"`
	Kind         string `json:"kind" bson:"kind"`
	OriginalName string `json:"original_name" bson:"original_name"`
	// Path is the location on disk, kept for cleanup when the owning
	// ticket is deleted. Never exposed to clients.
	Path string `json:"-" bson:"path"`
}

// TicketMessage is a conversation entry embedded in a ticket. Messages are
// append-only; entries are never edited or removed after insertion.
type TicketMessage struct {
	SenderType  string       `json:"sender_type" bson:"sender_type"`
	SenderID    string       `json:"sender_id" bson:"sender_id"`
	Content     string       `json:"content" bson:"content"`
	Attachments []Attachment `json:"attachments" bson:"attachments"`
	CreatedAt   time.Time    `json:"created_at" bson:"created_at"`
}

// AssignmentRecord captures the assignment state a ticket had before an
// assignment overwrote it
type AssignmentRecord struct {
	AssignedTo     string    `json:"assigned_to" bson:"assigned_to"`
	PrevAssignedTo string    `json:"prev_assigned_to" bson:"prev_assigned_to"`
	PrevStatus     string    `json:"prev_status" bson:"prev_status"`
	Note           string    `json:"note" bson:"note"`
	CreatedAt      time.Time `json:"created_at" bson:"created_at"`
}

// SupportTicket represents a support request raised by a user
type SupportTicket struct {
	ID          primitive.ObjectID `json:"id" bson:"_id"`
	Title       string             `json:"title" bson:"title"`
	IssueType   string             `json:"issue_type" bson:"issue_type"`
	ListingID   string             `json:"listing_id" bson:"listing_id"`
	Description string             `json:"description" bson:"description"`
	UserID      string             `json:"user_id" bson:"user_id"`
	Status      string             `json:"status" bson:"status"`
	AssignedTo  string             `json:"assigned_to" bson:"assigned_to"`
	// AssignmentNote is the latest note left by the lead on assignment
	AssignmentNote    string             `json:"assignment_note" bson:"assignment_note"`
	AssignmentHistory []AssignmentRecord `json:"assignment_history" bson:"assignment_history"`
	Messages          []TicketMessage    `json:"messages" bson:"messages"`
	// Version is the optimistic concurrency token; every write is
	// conditional on the version that was read.
	Version    int64      `json:"version" bson:"version"`
	CreatedAt  time.Time  `json:"created_at" bson:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at" bson:"updated_at"`
	ResolvedAt *time.Time `json:"resolved_at" bson:"resolved_at"`
}

// AttachmentPaths returns the disk paths of every attachment owned by the
// ticket, across all messages.
func (t SupportTicket) AttachmentPaths() []string {
	var paths []string
	for _, msg := range t.Messages {
		for _, att := range msg.Attachments {
			if att.Path != "" {
				paths = append(paths, att.Path)
			}
		}
	}
	return paths
}

// Ticket update actions for the tagged update request
const (
	TicketActionAssign = "assign"
	TicketActionStatus = "status"
	TicketActionNote   = "note"
	TicketActionReply  = "reply"
)

// UpdateTicketReq is the tagged staff update request. Exactly one action is
// applied per request; fields irrelevant to the action are ignored.
type UpdateTicketReq struct {
	Action  string `json:"action"`
	StaffID string `json:"staff_id"`
	Status  string `json:"status"`
	Note    string `json:"note"`
	Content string `json:"content"`
}
