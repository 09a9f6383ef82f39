package support

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"staynest-bend/dao"
	"staynest-bend/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// TicketStore is the ticket repository the service runs against
type TicketStore interface {
	FindByID(id string) (models.SupportTicket, error)
	FindByUser(userID string) ([]models.SupportTicket, error)
	FindAll(status string) ([]models.SupportTicket, error)
	Insert(ticket models.SupportTicket) error
	Update(ticket models.SupportTicket) error
	Delete(id string) error
}

// StaffStore is the read side of the staff directory, used to validate
// assignment targets
type StaffStore interface {
	FindByID(id string) (models.Staff, error)
}

// CreateTicketArgs carries the validated-identity inputs for ticket
// creation. UserID comes from the auth context, never the request body.
type CreateTicketArgs struct {
	Title       string
	IssueType   string
	Description string
	ListingID   string
	UserID      string
	Attachments []models.Attachment
}

func storeErr(err error, what string) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.NewNotFoundError(what + " not found")
	}
	if errors.Is(err, dao.ErrVersionConflict) {
		return models.NewConflictError("Ticket was modified by another request, retry")
	}
	return err
}

// createTicket validates and persists a new ticket. The description seeds
// the conversation as the first message, authored by the user.
func (s *Service) createTicket(args CreateTicketArgs) (models.SupportTicket, error) {
	var ticket models.SupportTicket

	var missing []string
	if strings.TrimSpace(args.IssueType) == "" {
		missing = append(missing, "issue_type")
	}
	if strings.TrimSpace(args.Description) == "" {
		missing = append(missing, "description")
	}
	if args.UserID == "" {
		missing = append(missing, "user_id")
	}
	if len(missing) > 0 {
		return ticket, models.NewValidationError("Missing required fields", missing...)
	}

	issueType, ok := models.NormalizeIssueType(args.IssueType)
	if !ok {
		return ticket, models.NewValidationError(args.IssueType+" is not a valid issue type", "issue_type")
	}

	if utf8.RuneCountInString(args.Description) < 10 {
		return ticket, models.NewValidationError("Description should be at least 10 characters long", "description")
	}

	listingID := ""
	if issueType == models.IssueListingProblem {
		if strings.TrimSpace(args.ListingID) == "" {
			return ticket, models.NewValidationError("A listing is required for listing problems", "listing_id")
		}
		listingID = args.ListingID
	}

	now := time.Now().UTC()
	ticket = models.SupportTicket{
		ID:                primitive.NewObjectID(),
		Title:             args.Title,
		IssueType:         issueType,
		ListingID:         listingID,
		Description:       args.Description,
		UserID:            args.UserID,
		Status:            models.TicketOpen,
		AssignmentHistory: []models.AssignmentRecord{},
		Messages: []models.TicketMessage{{
			SenderType:  models.SenderUser,
			SenderID:    args.UserID,
			Content:     args.Description,
			Attachments: args.Attachments,
			CreatedAt:   now,
		}},
		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.tickets.Insert(ticket); err != nil {
		return ticket, err
	}
	return ticket, nil
}

// addMessage appends a conversation entry. A staff reply to an open ticket
// moves it to in-progress; no other status change is implicit.
func (s *Service) addMessage(ticketID, senderType, senderID, content string, attachments []models.Attachment) (models.SupportTicket, bool, error) {
	var ticket models.SupportTicket

	if senderType != models.SenderUser && senderType != models.SenderStaff {
		return ticket, false, models.NewValidationError("Invalid sender type", "sender_type")
	}
	if strings.TrimSpace(content) == "" {
		return ticket, false, models.NewValidationError("Message content is required", "content")
	}

	ticket, err := s.tickets.FindByID(ticketID)
	if err != nil {
		return ticket, false, storeErr(err, "Ticket")
	}

	if senderType == models.SenderUser && senderID != ticket.UserID {
		return ticket, false, models.NewPermissionError("You can only message your own tickets")
	}

	now := time.Now().UTC()
	ticket.Messages = append(ticket.Messages, models.TicketMessage{
		SenderType:  senderType,
		SenderID:    senderID,
		Content:     content,
		Attachments: attachments,
		CreatedAt:   now,
	})

	staffReply := senderType == models.SenderStaff
	if staffReply && ticket.Status == models.TicketOpen {
		ticket.Status = models.TicketInProgress
	}
	ticket.UpdatedAt = now

	if err := s.tickets.Update(ticket); err != nil {
		return ticket, false, storeErr(err, "Ticket")
	}
	return ticket, staffReply, nil
}

// assignTicket hands a ticket to a staff member. Only a Customer Service
// Lead may assign; the target must hold a triage role. The previous
// assignment state is snapshotted before it is overwritten.
func (s *Service) assignTicket(ticketID, staffID, actingRole, note string) (models.SupportTicket, models.Staff, error) {
	var (
		ticket models.SupportTicket
		staff  models.Staff
	)

	if actingRole != models.RoleCustomerServiceLead {
		return ticket, staff, models.NewPermissionError("Only a Customer Service Lead can assign tickets")
	}

	staff, err := s.staff.FindByID(staffID)
	if err != nil || !models.IsTriageRole(staff.Role) {
		return ticket, staff, models.NewValidationError("Invalid staff member", "staff_id")
	}

	ticket, err = s.tickets.FindByID(ticketID)
	if err != nil {
		return ticket, staff, storeErr(err, "Ticket")
	}

	now := time.Now().UTC()
	ticket.AssignmentHistory = append(ticket.AssignmentHistory, models.AssignmentRecord{
		AssignedTo:     staffID,
		PrevAssignedTo: ticket.AssignedTo,
		PrevStatus:     ticket.Status,
		Note:           note,
		CreatedAt:      now,
	})
	ticket.AssignedTo = staffID
	if note != "" {
		ticket.AssignmentNote = note
	}
	if ticket.Status == models.TicketOpen {
		ticket.Status = models.TicketInProgress
	}
	ticket.UpdatedAt = now

	if err := s.tickets.Update(ticket); err != nil {
		return ticket, staff, storeErr(err, "Ticket")
	}
	return ticket, staff, nil
}

// updateStatus moves a ticket along the lifecycle graph. Entering resolved
// stamps resolved_at; closed is terminal.
func (s *Service) updateStatus(ticketID, newStatus string) (models.SupportTicket, error) {
	var ticket models.SupportTicket

	if !models.ValidTicketStatus(newStatus) {
		return ticket, models.NewValidationError(newStatus+" is not a valid ticket status", "status")
	}

	ticket, err := s.tickets.FindByID(ticketID)
	if err != nil {
		return ticket, storeErr(err, "Ticket")
	}

	if !models.CanTransition(ticket.Status, newStatus) {
		return ticket, models.NewInvalidTransitionError(
			"Cannot move ticket from " + ticket.Status + " to " + newStatus)
	}

	now := time.Now().UTC()
	ticket.Status = newStatus
	if newStatus == models.TicketResolved {
		ticket.ResolvedAt = &now
	}
	ticket.UpdatedAt = now

	if err := s.tickets.Update(ticket); err != nil {
		return ticket, storeErr(err, "Ticket")
	}
	return ticket, nil
}

// updateNote replaces the assignment note on a ticket
func (s *Service) updateNote(ticketID, note string) (models.SupportTicket, error) {
	ticket, err := s.tickets.FindByID(ticketID)
	if err != nil {
		return ticket, storeErr(err, "Ticket")
	}

	ticket.AssignmentNote = note
	ticket.UpdatedAt = time.Now().UTC()

	if err := s.tickets.Update(ticket); err != nil {
		return ticket, storeErr(err, "Ticket")
	}
	return ticket, nil
}

// deleteTicket removes an owner's ticket while it is still untouched by
// staff. The caller is responsible for deleting the attachment files of
// the returned ticket.
func (s *Service) deleteTicket(ticketID, userID string) (models.SupportTicket, error) {
	ticket, err := s.tickets.FindByID(ticketID)
	if err != nil {
		return ticket, storeErr(err, "Ticket")
	}

	if ticket.UserID != userID {
		return ticket, models.NewPermissionError("You can only delete your own tickets")
	}
	if ticket.Status != models.TicketOpen {
		return ticket, models.NewInvalidStateError("Only open tickets can be deleted")
	}

	if err := s.tickets.Delete(ticketID); err != nil {
		return ticket, err
	}
	return ticket, nil
}
