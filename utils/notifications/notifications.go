package notifications

import (
	"fmt"
	"log"
	"staynest-bend/models"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func cErr(tag string, err error) {
	if err != nil {
		log.Printf("%s: %v", tag, err)
	}
}

// SendTicketCreatedNotification ...
func (n *notifiable) SendTicketCreatedNotification(ticket models.SupportTicket) {
	user, err := n.factoryDAO.FindUser(ticket.UserID)
	if err != nil {
		cErr("rtv_user", err)
		return
	}

	id := ticket.ID.Hex()
	message := fmt.Sprintf(ticketCreatedMsg, id)
	data := TicketEmailData{Name: user.Name, Content: message, TicketID: id, TicketTitle: ticket.Title}

	err = SendTicketMail(user.Email, ticketCreatedTitle, data)
	cErr("err_send_ticket_created_mail", err)

	err = n.PushNotification(user.FCMToken, ticketCreatedTitle, message)
	cErr("err_ticket_created_PN", err)

	n.persist(models.Notification{
		Title:    ticketCreatedTitle,
		TicketID: id,
		UserID:   ticket.UserID,
		Type:     models.TicketN,
		Message:  message,
	})
}

// SendTicketReplyNotification notifies the ticket owner of a staff reply
func (n *notifiable) SendTicketReplyNotification(ticket models.SupportTicket) {
	user, err := n.factoryDAO.FindUser(ticket.UserID)
	if err != nil {
		cErr("rtv_user", err)
		return
	}

	id := ticket.ID.Hex()
	message := fmt.Sprintf(ticketReplyMsg, id)
	data := TicketEmailData{Name: user.Name, Content: message, TicketID: id, TicketTitle: ticket.Title}

	err = SendTicketMail(user.Email, ticketReplyTitle, data)
	cErr("err_send_ticket_reply_mail", err)

	err = n.PushNotification(user.FCMToken, ticketReplyTitle, message)
	cErr("err_ticket_reply_PN", err)

	n.persist(models.Notification{
		Title:    ticketReplyTitle,
		TicketID: id,
		UserID:   ticket.UserID,
		Type:     models.TicketN,
		Message:  message,
	})
}

// SendTicketAssignedNotification notifies the assignee
func (n *notifiable) SendTicketAssignedNotification(ticket models.SupportTicket, staff models.Staff) {
	id := ticket.ID.Hex()
	message := fmt.Sprintf(ticketAssignedMsg, id)
	data := TicketEmailData{Name: staff.Name, Content: message, TicketID: id, TicketTitle: ticket.Title}

	err := SendTicketMail(staff.Email, ticketAssignedTitle, data)
	cErr("err_send_ticket_assigned_mail", err)

	n.persist(models.Notification{
		Title:    ticketAssignedTitle,
		TicketID: id,
		UserID:   staff.ID.Hex(),
		Type:     models.TicketN,
		Message:  message,
	})
}

// SendTicketResolvedNotification notifies the ticket owner of resolution
func (n *notifiable) SendTicketResolvedNotification(ticket models.SupportTicket) {
	user, err := n.factoryDAO.FindUser(ticket.UserID)
	if err != nil {
		cErr("rtv_user", err)
		return
	}

	id := ticket.ID.Hex()
	message := fmt.Sprintf(ticketResolvedMsg, id)
	data := TicketEmailData{Name: user.Name, Content: message, TicketID: id, TicketTitle: ticket.Title}

	err = SendTicketMail(user.Email, ticketResolvedTitle, data)
	cErr("err_send_ticket_resolved_mail", err)

	err = n.PushNotification(user.FCMToken, ticketResolvedTitle, message)
	cErr("err_ticket_resolved_PN", err)

	n.persist(models.Notification{
		Title:    ticketResolvedTitle,
		TicketID: id,
		UserID:   ticket.UserID,
		Type:     models.TicketN,
		Message:  message,
	})
}

// SendVerificationNotification emails a signup verification code
func (n *notifiable) SendVerificationNotification(user models.User) {
	err := SendVerifyMail(user.Email, VerifyEmailData{Name: user.Name, Code: user.PassCode})
	cErr("err_send_verify_mail", err)
}

// SendWelcomeNotification greets a user after account verification
func (n *notifiable) SendWelcomeNotification(user models.User) {
	message := fmt.Sprintf(welcomeMsg, user.Name)

	err := SendGenericMail(user.Email, welcomeTitle, message)
	cErr("err_send_welcome_mail", err)

	n.persist(models.Notification{
		Title:   welcomeTitle,
		UserID:  user.ID.Hex(),
		Type:    models.AccountN,
		Message: message,
	})
}

// SendListingFavoritedNotification tells a listing's owner that someone
// saved it
func (n *notifiable) SendListingFavoritedNotification(listing models.Listing) {
	owner, err := n.factoryDAO.FindUser(listing.UserKey)
	if err != nil {
		cErr("rtv_user", err)
		return
	}

	message := fmt.Sprintf(listingFavoritedMsg, listing.Title)

	err = SendGenericMail(owner.Email, listingFavoritedTitle, message)
	cErr("err_send_favorited_mail", err)

	err = n.PushNotification(owner.FCMToken, listingFavoritedTitle, message)
	cErr("err_favorited_PN", err)

	n.persist(models.Notification{
		Title:     listingFavoritedTitle,
		ListingID: listing.ID.Hex(),
		UserID:    listing.UserKey,
		Type:      models.ListingN,
		Message:   message,
	})
}

// persist stores the notification object
func (n *notifiable) persist(notification models.Notification) {
	notification.ID = primitive.NewObjectID()
	notification.CreatedAt = time.Now().UTC()
	cErr("persist_notification", n.factoryDAO.Insert("notifications", notification))
}
