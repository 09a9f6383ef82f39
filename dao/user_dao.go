package dao

import (
	"context"
	"staynest-bend/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// UserDAO represents a user DAO
type UserDAO struct {
	ctx        context.Context
	db         *mongo.Database
	Collection *mongo.Collection
}

// NewUserDAO returns a configured UserDAO
func NewUserDAO(ctx context.Context, db *mongo.Database) *UserDAO {
	return &UserDAO{
		ctx:        context.TODO(),
		db:         db,
		Collection: db.Collection("user"),
	}
}

// FindByID ... get a user by its id
func (dao *UserDAO) FindByID(id string) (models.User, error) {
	var user models.User
	docID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return user, mongo.ErrNoDocuments
	}
	err = dao.Collection.FindOne(dao.ctx, bson.M{"_id": docID}).Decode(&user)
	return user, err
}

// FindByEmail ... get a user by the email
func (dao *UserDAO) FindByEmail(email string) (models.User, error) {
	var user models.User
	err := dao.Collection.FindOne(dao.ctx, bson.M{"email": email}).Decode(&user)
	return user, err
}

// FindByEmailOrMobile looks a user up by either login identifier
func (dao *UserDAO) FindByEmailOrMobile(username string) (models.User, error) {
	var user models.User
	filter := bson.M{"$or": []bson.M{{"email": username}, {"mobile": username}}}
	err := dao.Collection.FindOne(dao.ctx, filter).Decode(&user)
	return user, err
}

// Insert a user into database
func (dao *UserDAO) Insert(user models.User) error {
	userb, _ := bson.Marshal(user)
	_, err := dao.Collection.InsertOne(dao.ctx, userb)
	return err
}

// Update an existing user
func (dao *UserDAO) Update(user models.User) error {
	_, err := dao.Collection.UpdateOne(dao.ctx, bson.M{"_id": user.ID}, bson.M{"$set": user})
	return err
}
