package db

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	CollectionClients  = "clients"
	CollectionServices = "services"
	CollectionProjects = "projects"
	CollectionUsers    = "users"
)

type Collections struct {
	Clients  *mongo.Collection
	Services *mongo.Collection
	Projects *mongo.Collection
	Users    *mongo.Collection
}

func Connect(ctx context.Context, uri, dbName string) (*mongo.Client, *Collections, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, nil, err
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, nil, err
	}

	database := client.Database(dbName)

	cols := &Collections{
		Clients:  database.Collection(CollectionClients),
		Services: database.Collection(CollectionServices),
		Projects: database.Collection(CollectionProjects),
		Users:    database.Collection(CollectionUsers),
	}

	return client, cols, nil
}

func EnsureIndexes(ctx context.Context, cols *Collections) error {
	indexTimeout, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	_, err := cols.Clients.Indexes().CreateMany(indexTimeout, []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "display_order", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "active", Value: 1}},
		},
	})
	if err != nil {
		return err
	}

	_, err = cols.Services.Indexes().CreateMany(indexTimeout, []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "display_order", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "active", Value: 1}},
		},
	})
	if err != nil {
		return err
	}

	_, err = cols.Projects.Indexes().CreateMany(indexTimeout, []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "created_at", Value: -1}},
		},
		{
			Keys: bson.D{{Key: "archived", Value: 1}, {Key: "display_order", Value: 1}},
		},
	})
	if err != nil {
		return err
	}

	_, err = cols.Users.Indexes().CreateMany(indexTimeout, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "username", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	})
	if err != nil {
		return err
	}

	return nil
}
