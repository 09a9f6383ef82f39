package dao

import (
	"context"
	"staynest-bend/models"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ListingDAO represents a listing DAO
type ListingDAO struct {
	ctx        context.Context
	db         *mongo.Database
	Collection *mongo.Collection
}

// NewListingDAO returns a configured ListingDAO
func NewListingDAO(ctx context.Context, db *mongo.Database) *ListingDAO {
	return &ListingDAO{
		ctx:        context.TODO(),
		db:         db,
		Collection: db.Collection("listing"),
	}
}

// FindByID ... get a listing by its id
func (dao *ListingDAO) FindByID(id string) (models.Listing, error) {
	var listing models.Listing
	docID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return listing, mongo.ErrNoDocuments
	}
	err = dao.Collection.FindOne(dao.ctx, bson.M{"_id": docID}).Decode(&listing)
	return listing, err
}

// FindAll lists listings, optionally filtered by city, newest first
func (dao *ListingDAO) FindAll(city string) ([]models.Listing, error) {
	filter := bson.M{}
	if city != "" {
		filter["city"] = city
	}
	return dao.find(filter)
}

// FindByOwner lists a user's listings
func (dao *ListingDAO) FindByOwner(userKey string) ([]models.Listing, error) {
	return dao.find(bson.M{"user_key": userKey})
}

func (dao *ListingDAO) find(filter bson.M) ([]models.Listing, error) {
	opts := options.Find().SetSort(bson.M{"created_at": -1})
	cursor, err := dao.Collection.Find(dao.ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	listings := []models.Listing{}
	err = cursor.All(dao.ctx, &listings)
	return listings, err
}

// Insert a listing into database
func (dao *ListingDAO) Insert(listing models.Listing) error {
	listingb, _ := bson.Marshal(listing)
	_, err := dao.Collection.InsertOne(dao.ctx, listingb)
	return err
}

// Update an existing listing
func (dao *ListingDAO) Update(listing models.Listing) error {
	_, err := dao.Collection.UpdateOne(dao.ctx, bson.M{"_id": listing.ID}, bson.M{"$set": listing})
	return err
}

// Delete removes a listing
func (dao *ListingDAO) Delete(id string) error {
	docID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return mongo.ErrNoDocuments
	}
	_, err = dao.Collection.DeleteOne(dao.ctx, bson.M{"_id": docID})
	return err
}

// RecordView bumps a listing's view counter and appends to its view log
func (dao *ListingDAO) RecordView(id primitive.ObjectID, viewer string) error {
	if viewer == "" {
		viewer = "anonymous"
	}
	_, err := dao.Collection.UpdateOne(dao.ctx, bson.M{"_id": id}, bson.M{
		"$inc":  bson.M{"views_count": 1},
		"$push": bson.M{"views_log": models.ListingView{Viewer: viewer, CreatedAt: time.Now().UTC()}},
	})
	return err
}
