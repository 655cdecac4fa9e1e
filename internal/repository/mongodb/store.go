// Package mongodb provides the production repository adapters backed by
// MongoDB. Filters use dot-notation field paths (e.g. dietaryFlags.vegan)
// against bson documents that mirror the persisted wire format of the
// original data set. Identifiers that do not parse as ObjectID hex are
// treated as "not found", never as errors.
package mongodb

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Collection names shared with the original data set.
const (
	recipesCollection    = "recipes"
	inventoryCollection  = "inventoryitems"
	studentsCollection   = "students"
	sessionsCollection   = "mealsessions"
	attendanceCollection = "mealattendances"
	usersCollection      = "users"
)

// Store bundles the database handle and logger the per-entity repositories
// share.
type Store struct {
	db  *mongo.Database
	log *zap.Logger
}

// NewStore wraps an established database connection.
func NewStore(db *mongo.Database, log *zap.Logger) *Store {
	return &Store{db: db, log: log.Named("mongodb")}
}

func (s *Store) collection(name string) *mongo.Collection {
	return s.db.Collection(name)
}

// parseID converts an identifier string to an ObjectID. The second return
// value is false for malformed identifiers, which callers map to absence.
func parseID(id string) (primitive.ObjectID, bool) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, false
	}
	return oid, true
}
