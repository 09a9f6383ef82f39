package dao

import (
	"context"
	"staynest-bend/models"
	"staynest-bend/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// StaffDAO represents the staff directory. Passwords are hashed on write
// and never leave this layer in plain form.
type StaffDAO struct {
	ctx        context.Context
	db         *mongo.Database
	Collection *mongo.Collection
}

// NewStaffDAO returns a configured StaffDAO
func NewStaffDAO(ctx context.Context, db *mongo.Database) *StaffDAO {
	return &StaffDAO{
		ctx:        context.TODO(),
		db:         db,
		Collection: db.Collection("staff"),
	}
}

// FindByID ... get a staff member by id
func (dao *StaffDAO) FindByID(id string) (models.Staff, error) {
	var staff models.Staff
	docID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return staff, mongo.ErrNoDocuments
	}
	err = dao.Collection.FindOne(dao.ctx, bson.M{"_id": docID}).Decode(&staff)
	return staff, err
}

// FindByEmail ... get a staff member by email
func (dao *StaffDAO) FindByEmail(email string) (models.Staff, error) {
	var staff models.Staff
	err := dao.Collection.FindOne(dao.ctx, bson.M{"email": email}).Decode(&staff)
	return staff, err
}

// FindByRoles lists staff holding any of the given roles
func (dao *StaffDAO) FindByRoles(roles []string) ([]models.Staff, error) {
	cursor, err := dao.Collection.Find(dao.ctx, bson.M{"role": bson.M{"$in": roles}})
	if err != nil {
		return nil, err
	}
	staff := []models.Staff{}
	err = cursor.All(dao.ctx, &staff)
	return staff, err
}

// FindAll lists every staff member
func (dao *StaffDAO) FindAll() ([]models.Staff, error) {
	opts := options.Find().SetSort(bson.M{"created_at": -1})
	cursor, err := dao.Collection.Find(dao.ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	staff := []models.Staff{}
	err = cursor.All(dao.ctx, &staff)
	return staff, err
}

// Insert stores a staff member, hashing the plain password first
func (dao *StaffDAO) Insert(staff models.Staff) error {
	hash, err := utils.HashPassword(staff.Password)
	if err != nil {
		return err
	}
	staff.Password = hash

	staffb, _ := bson.Marshal(staff)
	_, err = dao.Collection.InsertOne(dao.ctx, staffb)
	return err
}

// UpdateRole changes a staff member's role
func (dao *StaffDAO) UpdateRole(id, role string) error {
	docID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return mongo.ErrNoDocuments
	}
	res, err := dao.Collection.UpdateOne(dao.ctx,
		bson.M{"_id": docID}, bson.M{"$set": bson.M{"role": role}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
