package notifications

import (
	"context"
	"os"
	"staynest-bend/dao"
	"staynest-bend/models"

	firebase "firebase.google.com/go/v4"
	"google.golang.org/api/option"
)

// Notifiable defines the functionality of a notification object
type Notifiable interface {
	// Dispatches a push notification to the currently configured
	// message server (FCM)
	PushNotification(recipientToken, title, message string) error
	SendTicketCreatedNotification(ticket models.SupportTicket)
	SendTicketReplyNotification(ticket models.SupportTicket)
	SendTicketAssignedNotification(ticket models.SupportTicket, staff models.Staff)
	SendTicketResolvedNotification(ticket models.SupportTicket)
	SendVerificationNotification(user models.User)
	SendWelcomeNotification(user models.User)
	SendListingFavoritedNotification(listing models.Listing)
}

type notifiable struct {
	app        *firebase.App
	factoryDAO *dao.FactoryDAO
}

// NewNotifiable returns a new Notifiable implementation with access to all
// notifiable channels (email, fcm, persisted). Push is disabled when no
// service account key is configured.
func NewNotifiable(dao *dao.FactoryDAO) (Notifiable, error) {
	serviceAccountKeyPath := os.Getenv("SERVICE_ACCOUNT_KEY_PATH")
	if serviceAccountKeyPath == "" {
		return &notifiable{factoryDAO: dao}, nil
	}

	opt := option.WithCredentialsFile(serviceAccountKeyPath)
	app, err := firebase.NewApp(context.Background(), nil, opt)
	if err != nil {
		return nil, err
	}

	return &notifiable{app: app, factoryDAO: dao}, nil
}
