package kv

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// mongoDoc is the document shape of the kv collection.
type mongoDoc struct {
	Key       string    `bson:"_id"`
	Value     []byte    `bson:"value"`
	UpdatedAt time.Time `bson:"updated_at"`
}

// Mongo stores one document per key in the "kv" collection of db.
type Mongo struct {
	client *mongo.Client
	col    *mongo.Collection
}

// NewMongo connects to uri and pings the primary.
func NewMongo(ctx context.Context, uri, db string) (*Mongo, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	opts := options.Client().ApplyURI(uri).
		SetConnectTimeout(5 * time.Second).
		SetServerSelectionTimeout(5 * time.Second).
		SetMaxPoolSize(10)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("kv/mongo: connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("kv/mongo: ping: %w", err)
	}
	return &Mongo{client: client, col: client.Database(db).Collection("kv")}, nil
}

func (m *Mongo) Get(ctx context.Context, key string) ([]byte, error) {
	if err := validKey(key); err != nil {
		return nil, err
	}
	var doc mongoDoc
	err := m.col.FindOne(ctx, bson.M{"_id": key}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("kv/mongo: get %s: %w", key, err)
	}
	return doc.Value, nil
}

func (m *Mongo) Set(ctx context.Context, key string, value []byte) error {
	if err := validKey(key); err != nil {
		return err
	}
	doc := mongoDoc{Key: key, Value: value, UpdatedAt: time.Now().UTC()}
	_, err := m.col.ReplaceOne(ctx, bson.M{"_id": key}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("kv/mongo: set %s: %w", key, err)
	}
	return nil
}

func (m *Mongo) Delete(ctx context.Context, key string) error {
	if err := validKey(key); err != nil {
		return err
	}
	if _, err := m.col.DeleteOne(ctx, bson.M{"_id": key}); err != nil {
		return fmt.Errorf("kv/mongo: delete %s: %w", key, err)
	}
	return nil
}

func (m *Mongo) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return m.client.Disconnect(ctx)
}
