package dao

import (
	"context"
	"errors"
	"staynest-bend/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// FactoryDAO represents a dao for scaffolding and accessing the small
// collections that do not warrant a dedicated DAO
type FactoryDAO struct {
	ctx         context.Context
	db          *mongo.Database
	Collections map[string]*mongo.Collection
}

// NewFactoryDAO returns a new FactoryDAO
func NewFactoryDAO(ctx context.Context, db *mongo.Database) *FactoryDAO {
	collections := []string{
		"user",
		"staff",
		"listing",
		"wanted_listings",
		"support_ticket",
		"favorites",
		"direct_messages",
		"notifications",
	}
	dao := &FactoryDAO{
		ctx:         context.TODO(),
		db:          db,
		Collections: make(map[string]*mongo.Collection),
	}

	for _, opt := range collections {
		dao.Add(opt)
	}

	return dao
}

// Add collection to list
func (dao *FactoryDAO) Add(key string) {
	c := dao.db.Collection(key)
	dao.Collections[key] = c
}

// Insert a document into a collection
func (dao *FactoryDAO) Insert(key string, obj interface{}) error {
	collection, ok := dao.Collections[key]
	if !ok {
		return errors.New("invalid collection")
	}
	c, _ := bson.Marshal(obj)
	_, err := collection.InsertOne(dao.ctx, c)
	return err
}

// Query a collection, sorted newest first when sort is passed
func (dao *FactoryDAO) Query(ckey string, filter bson.M, sort ...bool) ([]bson.M, error) {
	var data []bson.M

	opts := options.Find()
	if len(sort) > 0 {
		opts.SetSort(bson.M{"created_at": -1})
	}

	collection, ok := dao.Collections[ckey]
	if !ok {
		return nil, errors.New("invalid collection")
	}
	cursor, err := collection.Find(dao.ctx, filter, opts)
	if err != nil {
		return nil, err
	}

	err = cursor.All(dao.ctx, &data)

	return data, err
}

// FindOne decodes a single document from a collection
func (dao *FactoryDAO) FindOne(ckey string, filter bson.M, out interface{}) error {
	collection, ok := dao.Collections[ckey]
	if !ok {
		return errors.New("invalid collection")
	}
	return collection.FindOne(dao.ctx, filter).Decode(out)
}

// UpdateOne applies a $set update to a single document
func (dao *FactoryDAO) UpdateOne(ckey string, filter, set bson.M) error {
	collection, ok := dao.Collections[ckey]
	if !ok {
		return errors.New("invalid collection")
	}
	res, err := collection.UpdateOne(dao.ctx, filter, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// Remove ...
func (dao *FactoryDAO) Remove(ckey string, filter bson.M) error {
	collection, ok := dao.Collections[ckey]
	if !ok {
		return errors.New("invalid collection")
	}

	_, err := collection.DeleteOne(dao.ctx, filter)
	if err != nil {
		return err
	}

	return nil
}

// Count counts documents matching a filter
func (dao *FactoryDAO) Count(ckey string, filter bson.M) (int64, error) {
	collection, ok := dao.Collections[ckey]
	if !ok {
		return 0, errors.New("invalid collection")
	}
	return collection.CountDocuments(dao.ctx, filter)
}

// FindUser resolves a user by id for notification dispatch
func (dao *FactoryDAO) FindUser(id string) (models.User, error) {
	var user models.User
	docID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return user, mongo.ErrNoDocuments
	}
	err = dao.Collections["user"].FindOne(dao.ctx, bson.M{"_id": docID}).Decode(&user)
	return user, err
}

// GroupCount aggregates document counts per value of a field, descending,
// capped at limit
func (dao *FactoryDAO) GroupCount(ckey, field string, limit int) ([]bson.M, error) {
	var rows []bson.M

	collection, ok := dao.Collections[ckey]
	if !ok {
		return nil, errors.New("invalid collection")
	}

	pipeline := []bson.M{
		{"$group": bson.M{"_id": "$" + field, "count": bson.M{"$sum": 1}}},
		{"$sort": bson.M{"count": -1}},
		{"$limit": limit},
	}
	cursor, err := collection.Aggregate(dao.ctx, pipeline)
	if err != nil {
		return nil, err
	}

	err = cursor.All(dao.ctx, &rows)

	return rows, err
}
