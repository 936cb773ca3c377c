package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/verte-zerg/typeboard/internal/model"
)

const (
	// DefaultMongoDatabase is used when no database name is configured.
	DefaultMongoDatabase = "typeboard"
	mongoCollection      = "texts"
	mongoConnectTimeout  = 10 * time.Second
)

type mongoText struct {
	Title     string   `bson:"title,omitempty"`
	Body      string   `bson:"body"`
	Sources   []string `bson:"sources"`
	FetchedAt int64    `bson:"fetched_at"`
}

// MongoStore keeps contents in a MongoDB collection.
type MongoStore struct {
	client     *mongo.Client
	collection *mongo.Collection
}

// OpenMongo connects to uri and uses the texts collection of database.
func OpenMongo(ctx context.Context, uri, database string) (*MongoStore, error) {
	if uri == "" {
		return nil, fmt.Errorf("mongo uri is empty")
	}
	if database == "" {
		database = DefaultMongoDatabase
	}
	connectCtx, cancel := context.WithTimeout(ctx, mongoConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}
	if err := client.Ping(connectCtx, nil); err != nil {
		if derr := client.Disconnect(context.Background()); derr != nil {
			// Best-effort disconnect on ping failure.
			_ = derr
		}
		return nil, fmt.Errorf("failed to ping mongo: %w", err)
	}
	collection := client.Database(database).Collection(mongoCollection)
	_, err = collection.Indexes().CreateOne(connectCtx, mongo.IndexModel{
		Keys: bson.D{{Key: "fetched_at", Value: -1}},
	})
	if err != nil {
		if derr := client.Disconnect(context.Background()); derr != nil {
			// Best-effort disconnect on index failure.
			_ = derr
		}
		return nil, fmt.Errorf("failed to create mongo index: %w", err)
	}
	return &MongoStore{client: client, collection: collection}, nil
}

// Close disconnects the client.
func (s *MongoStore) Close() error {
	return s.client.Disconnect(context.Background())
}

// InsertContent stores one content document.
func (s *MongoStore) InsertContent(ctx context.Context, c model.Content) error {
	doc := mongoText{
		Title:     c.Title,
		Body:      c.Body,
		Sources:   c.Sources,
		FetchedAt: c.FetchedAt,
	}
	if doc.Sources == nil {
		doc.Sources = []string{}
	}
	_, err := s.collection.InsertOne(ctx, doc)
	return err
}

// LatestContent returns the document with the greatest fetch time.
func (s *MongoStore) LatestContent(ctx context.Context) (model.Content, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "fetched_at", Value: -1}})
	var doc mongoText
	err := s.collection.FindOne(ctx, bson.D{}, opts).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return model.Content{}, ErrNotFound
	}
	if err != nil {
		return model.Content{}, err
	}
	return doc.content(), nil
}

// ListContents returns up to limit documents, newest first.
func (s *MongoStore) ListContents(ctx context.Context, limit int) ([]model.Content, error) {
	opts := options.Find().SetSort(bson.D{{Key: "fetched_at", Value: -1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}
	cursor, err := s.collection.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := cursor.Close(ctx); cerr != nil {
			// Best-effort cursor close.
			_ = cerr
		}
	}()

	var result []model.Content
	for cursor.Next(ctx) {
		var doc mongoText
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		result = append(result, doc.content())
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (d mongoText) content() model.Content {
	return model.Content{
		Title:     d.Title,
		Body:      d.Body,
		Sources:   d.Sources,
		FetchedAt: d.FetchedAt,
	}
}
