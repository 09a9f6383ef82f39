package support

import (
	"log"
	"net/http"

	"staynest-bend/models"
	"staynest-bend/utils"
	"staynest-bend/utils/notifications"
	"staynest-bend/utils/uploads"

	"github.com/gorilla/mux"
)

// Service represents the support ticket service
type Service struct {
	tickets    TicketStore
	staff      StaffStore
	notifiable notifications.Notifiable
}

// NewSupportService returns a support service object
func NewSupportService(tickets TicketStore, staff StaffStore, notifiable notifications.Notifiable) *Service {
	return &Service{
		tickets:    tickets,
		staff:      staff,
		notifiable: notifiable,
	}
}

// actor returns the verified identity the auth middleware placed in the
// request context
func actor(r *http.Request) (actorType, actorID, role string) {
	ctx := r.Context()
	if v, ok := ctx.Value(models.CtxActorType).(string); ok {
		actorType = v
	}
	if actorType == models.SenderStaff {
		if v, ok := ctx.Value(models.CtxStaffID).(string); ok {
			actorID = v
		}
		if v, ok := ctx.Value(models.CtxRole).(string); ok {
			role = v
		}
		return
	}
	if v, ok := ctx.Value(models.CtxUserID).(string); ok {
		actorID = v
	}
	return
}

// CreateTicket handles POST /api/support (multipart, up to 5 attachments)
func (s *Service) CreateTicket(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(uploads.MaxFileSize * uploads.MaxFiles); err != nil && err != http.ErrNotMultipart {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request data sent")
		return
	}

	attachments, err := uploads.SaveAll(r.MultipartForm, "attachments", "support")
	if err != nil {
		utils.RespondWithServiceError(w, err)
		return
	}

	_, userID, _ := actor(r)
	ticket, err := s.createTicket(CreateTicketArgs{
		Title:       r.FormValue("title"),
		IssueType:   r.FormValue("issue_type"),
		Description: r.FormValue("description"),
		ListingID:   r.FormValue("listing_id"),
		UserID:      userID,
		Attachments: attachments,
	})
	if err != nil {
		uploads.RemoveAll(attachments)
		utils.RespondWithServiceError(w, err)
		return
	}

	go s.notifiable.SendTicketCreatedNotification(ticket)

	utils.RespondWithJSON(w, http.StatusCreated, utils.Response{
		Status: "success",
		Code:   http.StatusCreated,
		Data:   ticket,
	})
}

// AddMessage handles POST /api/support/{id}/messages. The sender identity
// comes from the token, so a user token can only post as that user and a
// staff token always posts as staff.
func (s *Service) AddMessage(w http.ResponseWriter, r *http.Request) {
	ticketID := mux.Vars(r)["id"]

	if err := r.ParseMultipartForm(uploads.MaxFileSize * uploads.MaxFiles); err != nil && err != http.ErrNotMultipart {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request data sent")
		return
	}

	attachments, err := uploads.SaveAll(r.MultipartForm, "attachments", "support")
	if err != nil {
		utils.RespondWithServiceError(w, err)
		return
	}

	senderType, senderID, _ := actor(r)
	ticket, staffReply, err := s.addMessage(ticketID, senderType, senderID, r.FormValue("content"), attachments)
	if err != nil {
		uploads.RemoveAll(attachments)
		utils.RespondWithServiceError(w, err)
		return
	}

	if staffReply {
		go s.notifiable.SendTicketReplyNotification(ticket)
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.Response{
		Status: "success",
		Code:   http.StatusOK,
		Data:   ticket,
	})
}

// AssignTicket handles PUT /api/support/{id}/assign
func (s *Service) AssignTicket(w http.ResponseWriter, r *http.Request) {
	var req struct {
		StaffID string `json:"staff_id"`
		Note    string `json:"note"`
	}
	if err := utils.DecodeReq(r, &req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request data sent")
		return
	}

	_, _, role := actor(r)
	ticket, staff, err := s.assignTicket(mux.Vars(r)["id"], req.StaffID, role, req.Note)
	if err != nil {
		utils.RespondWithServiceError(w, err)
		return
	}

	go s.notifiable.SendTicketAssignedNotification(ticket, staff)

	utils.RespondWithJSON(w, http.StatusOK, utils.Response{
		Status: "success",
		Code:   http.StatusOK,
		Data:   ticket,
	})
}

// UpdateTicket handles PUT /api/support/{id}. The body is a tagged update;
// exactly one action is applied per request.
func (s *Service) UpdateTicket(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateTicketReq
	if err := utils.DecodeReq(r, &req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request data sent")
		return
	}

	ticketID := mux.Vars(r)["id"]
	_, staffID, role := actor(r)

	var (
		ticket models.SupportTicket
		err    error
	)
	switch req.Action {
	case models.TicketActionAssign:
		var staff models.Staff
		ticket, staff, err = s.assignTicket(ticketID, req.StaffID, role, req.Note)
		if err == nil {
			go s.notifiable.SendTicketAssignedNotification(ticket, staff)
		}
	case models.TicketActionStatus:
		ticket, err = s.updateStatus(ticketID, req.Status)
		if err == nil && ticket.Status == models.TicketResolved {
			go s.notifiable.SendTicketResolvedNotification(ticket)
		}
	case models.TicketActionNote:
		ticket, err = s.updateNote(ticketID, req.Note)
	case models.TicketActionReply:
		var staffReply bool
		ticket, staffReply, err = s.addMessage(ticketID, models.SenderStaff, staffID, req.Content, nil)
		if err == nil && staffReply {
			go s.notifiable.SendTicketReplyNotification(ticket)
		}
	default:
		err = models.NewValidationError("Unknown update action", "action")
	}

	if err != nil {
		utils.RespondWithServiceError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.Response{
		Status: "success",
		Code:   http.StatusOK,
		Data:   ticket,
	})
}

// GetTicket handles GET /api/support/{id}. Users may only view their own
// tickets; staff may view any.
func (s *Service) GetTicket(w http.ResponseWriter, r *http.Request) {
	ticket, err := s.tickets.FindByID(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondWithServiceError(w, storeErr(err, "Ticket"))
		return
	}

	actorType, actorID, _ := actor(r)
	if actorType != models.SenderStaff && ticket.UserID != actorID {
		utils.RespondWithError(w, http.StatusForbidden, "You can only view your own tickets")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.Response{
		Status: "success",
		Code:   http.StatusOK,
		Data:   ticket,
	})
}

// ListUserTickets handles GET /api/support/user/{userId}
func (s *Service) ListUserTickets(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]

	actorType, actorID, _ := actor(r)
	if actorType != models.SenderStaff && actorID != userID {
		utils.RespondWithError(w, http.StatusForbidden, "You can only view your own tickets")
		return
	}

	tickets, err := s.tickets.FindByUser(userID)
	if err != nil {
		log.Printf("list_user_tickets: %v", err)
		utils.RespondWithServiceError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.Response{
		Status: "success",
		Code:   http.StatusOK,
		Data:   tickets,
	})
}

// ListAllTickets handles GET /api/support/all with an optional status
// filter
func (s *Service) ListAllTickets(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	if status != "" && !models.ValidTicketStatus(status) {
		utils.RespondWithError(w, http.StatusBadRequest, status+" is not a valid ticket status")
		return
	}

	tickets, err := s.tickets.FindAll(status)
	if err != nil {
		log.Printf("list_all_tickets: %v", err)
		utils.RespondWithServiceError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.Response{
		Status: "success",
		Code:   http.StatusOK,
		Data:   tickets,
	})
}

// DeleteTicket handles DELETE /api/support/{id}. Attachment files owned by
// the ticket are removed with it.
func (s *Service) DeleteTicket(w http.ResponseWriter, r *http.Request) {
	_, userID, _ := actor(r)

	ticket, err := s.deleteTicket(mux.Vars(r)["id"], userID)
	if err != nil {
		utils.RespondWithServiceError(w, err)
		return
	}

	uploads.RemovePaths(ticket.AttachmentPaths())

	utils.RespondWithOk(w, "Ticket deleted successfully")
}
