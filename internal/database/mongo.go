package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"

	"github.com/lakindu62/kidsfeed/config"
)

const connectTimeout = 10 * time.Second

// Mongo holds the MongoDB client and the application database handle.
type Mongo struct {
	client *mongo.Client
	db     *mongo.Database
	log    *zap.Logger
}

// NewMongo connects to MongoDB, pings it and prepares the unique index on
// staff emails.
func NewMongo(cfg *config.Config, log *zap.Logger) (*Mongo, error) {
	logger := log.Named("mongo")

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	db := client.Database(cfg.MongoDB)

	indexModel := mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	if _, err := db.Collection("users").Indexes().CreateOne(ctx, indexModel); err != nil {
		return nil, fmt.Errorf("failed to ensure users email index: %w", err)
	}

	logger.Info("connected to MongoDB", zap.String("db", cfg.MongoDB))
	return &Mongo{client: client, db: db, log: logger}, nil
}

// Database returns the application database handle.
func (m *Mongo) Database() *mongo.Database {
	return m.db
}

// Disconnect closes the connection.
func (m *Mongo) Disconnect(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()
	m.log.Info("closing MongoDB connection")
	return m.client.Disconnect(ctx)
}

// HealthCheck verifies the database is reachable.
func (m *Mongo) HealthCheck(ctx context.Context) error {
	return m.client.Ping(ctx, readpref.Primary())
}
