package dao

import (
	"context"
	"staynest-bend/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// TicketDAO represents a support ticket DAO
type TicketDAO struct {
	ctx        context.Context
	db         *mongo.Database
	Collection *mongo.Collection
}

// NewTicketDAO returns a configured TicketDAO
func NewTicketDAO(ctx context.Context, db *mongo.Database) *TicketDAO {
	return &TicketDAO{
		ctx:        context.TODO(),
		db:         db,
		Collection: db.Collection("support_ticket"),
	}
}

// FindByID ... get a ticket by its id
func (dao *TicketDAO) FindByID(id string) (models.SupportTicket, error) {
	var ticket models.SupportTicket
	docID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ticket, mongo.ErrNoDocuments
	}
	err = dao.Collection.FindOne(dao.ctx, bson.M{"_id": docID}).Decode(&ticket)
	return ticket, err
}

// FindByUser returns a user's tickets, newest first
func (dao *TicketDAO) FindByUser(userID string) ([]models.SupportTicket, error) {
	return dao.find(bson.M{"user_id": userID})
}

// FindAll returns all tickets, optionally filtered by status, newest first
func (dao *TicketDAO) FindAll(status string) ([]models.SupportTicket, error) {
	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}
	return dao.find(filter)
}

func (dao *TicketDAO) find(filter bson.M) ([]models.SupportTicket, error) {
	opts := options.Find().SetSort(bson.M{"created_at": -1})
	cursor, err := dao.Collection.Find(dao.ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	tickets := []models.SupportTicket{}
	err = cursor.All(dao.ctx, &tickets)
	return tickets, err
}

// Insert a ticket into database
func (dao *TicketDAO) Insert(ticket models.SupportTicket) error {
	ticketb, _ := bson.Marshal(ticket)
	_, err := dao.Collection.InsertOne(dao.ctx, ticketb)
	return err
}

// Update writes a ticket conditionally on the version it was read at and
// bumps the version. ErrVersionConflict means a concurrent writer won.
func (dao *TicketDAO) Update(ticket models.SupportTicket) error {
	readVersion := ticket.Version
	ticket.Version = readVersion + 1

	res, err := dao.Collection.UpdateOne(dao.ctx,
		bson.M{"_id": ticket.ID, "version": readVersion},
		bson.M{"$set": ticket},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrVersionConflict
	}
	return nil
}

// Delete removes a ticket document
func (dao *TicketDAO) Delete(id string) error {
	docID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return mongo.ErrNoDocuments
	}
	_, err = dao.Collection.DeleteOne(dao.ctx, bson.M{"_id": docID})
	return err
}
