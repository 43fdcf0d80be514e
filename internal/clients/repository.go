package clients

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Repository interface {
	Create(ctx context.Context, item Client) error
	Update(ctx context.Context, id string, set bson.M) (Client, error)
	Delete(ctx context.Context, id string) (bool, error)
	ListPublic(ctx context.Context) ([]Client, error)
	ListAdmin(ctx context.Context, limit, offset int64) ([]Client, error)
	CountAdmin(ctx context.Context) (int64, error)
}

type MongoRepository struct {
	col *mongo.Collection
}

func NewRepository(col *mongo.Collection) *MongoRepository {
	return &MongoRepository{col: col}
}

func (r *MongoRepository) Create(ctx context.Context, item Client) error {
	_, err := r.col.InsertOne(ctx, item)
	return err
}

func (r *MongoRepository) Update(ctx context.Context, id string, set bson.M) (Client, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	update := bson.M{"$set": set}

	var updated Client
	if err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&updated); err != nil {
		return Client{}, err
	}
	return updated, nil
}

func (r *MongoRepository) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}

func (r *MongoRepository) ListPublic(ctx context.Context) ([]Client, error) {
	// display_order only; ties keep insertion order.
	opts := options.Find().SetSort(bson.D{{Key: "display_order", Value: 1}})
	return r.list(ctx, bson.M{"active": true}, opts)
}

func (r *MongoRepository) ListAdmin(ctx context.Context, limit, offset int64) ([]Client, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "display_order", Value: 1}}).
		SetLimit(limit).
		SetSkip(offset)
	return r.list(ctx, bson.M{}, opts)
}

func (r *MongoRepository) CountAdmin(ctx context.Context) (int64, error) {
	return r.col.CountDocuments(ctx, bson.M{})
}

func (r *MongoRepository) list(ctx context.Context, query bson.M, opts *options.FindOptions) ([]Client, error) {
	cursor, err := r.col.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	items := make([]Client, 0)
	for cursor.Next(ctx) {
		var c Client
		if err := cursor.Decode(&c); err != nil {
			return nil, err
		}
		items = append(items, c)
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
