package accounts

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type Repository interface {
	Create(ctx context.Context, user User) error
	FindByUsername(ctx context.Context, username string) (User, error)
	FindByID(ctx context.Context, id string) (User, error)
	UpdatePassword(ctx context.Context, id, passwordHash string, updatedAt time.Time) (bool, error)
}

type MongoRepository struct {
	col *mongo.Collection
}

func NewRepository(col *mongo.Collection) *MongoRepository {
	return &MongoRepository{col: col}
}

func (r *MongoRepository) Create(ctx context.Context, user User) error {
	_, err := r.col.InsertOne(ctx, user)
	return err
}

func (r *MongoRepository) FindByUsername(ctx context.Context, username string) (User, error) {
	var user User
	err := r.col.FindOne(ctx, bson.M{"username": username}).Decode(&user)
	return user, err
}

func (r *MongoRepository) FindByID(ctx context.Context, id string) (User, error) {
	var user User
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	return user, err
}

func (r *MongoRepository) UpdatePassword(ctx context.Context, id, passwordHash string, updatedAt time.Time) (bool, error) {
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"password_hash": passwordHash,
		"updated_at":    updatedAt,
	}})
	if err != nil {
		return false, err
	}
	return res.MatchedCount > 0, nil
}
