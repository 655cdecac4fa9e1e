package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/lakindu62/kidsfeed/internal/domain"
	"github.com/lakindu62/kidsfeed/internal/repository"
)

type sessionDoc struct {
	ID              primitive.ObjectID `bson:"_id,omitempty"`
	Date            time.Time          `bson:"date"`
	MealType        string             `bson:"mealType"`
	RecipeIDs       []string           `bson:"recipeIds"`
	PlannedServings int                `bson:"plannedServings"`
	Notes           string             `bson:"notes"`
	Status          string             `bson:"status"`
	CreatedAt       time.Time          `bson:"createdAt"`
	UpdatedAt       time.Time          `bson:"updatedAt"`
}

func newSessionDoc(session *domain.MealSession) sessionDoc {
	return sessionDoc{
		Date:            session.Date,
		MealType:        string(session.MealType),
		RecipeIDs:       session.RecipeIDs,
		PlannedServings: session.PlannedServings,
		Notes:           session.Notes,
		Status:          string(session.Status),
		CreatedAt:       session.CreatedAt,
		UpdatedAt:       session.UpdatedAt,
	}
}

func (d sessionDoc) toDomain() *domain.MealSession {
	return &domain.MealSession{
		ID:              d.ID.Hex(),
		Date:            d.Date,
		MealType:        domain.MealType(d.MealType),
		RecipeIDs:       d.RecipeIDs,
		PlannedServings: d.PlannedServings,
		Notes:           d.Notes,
		Status:          domain.SessionStatus(d.Status),
		CreatedAt:       d.CreatedAt,
		UpdatedAt:       d.UpdatedAt,
	}
}

// MealSessionRepository is the MongoDB-backed repository.MealSessionRepository.
type MealSessionRepository struct {
	store *Store
	log   *zap.Logger
}

// NewMealSessionRepository builds a session repository on the given store.
func NewMealSessionRepository(store *Store) *MealSessionRepository {
	return &MealSessionRepository{store: store, log: store.log.Named("meal-sessions")}
}

func (r *MealSessionRepository) Save(ctx context.Context, session *domain.MealSession) (*domain.MealSession, error) {
	now := time.Now().UTC()
	doc := newSessionDoc(session)
	doc.CreatedAt = now
	doc.UpdatedAt = now
	if doc.Status == "" {
		doc.Status = string(domain.SessionPlanned)
	}

	res, err := r.store.collection(sessionsCollection).InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert meal session: %w", err)
	}
	doc.ID = res.InsertedID.(primitive.ObjectID)
	return doc.toDomain(), nil
}

func (r *MealSessionRepository) FindByID(ctx context.Context, id string) (*domain.MealSession, error) {
	oid, ok := parseID(id)
	if !ok {
		return nil, nil
	}
	var doc sessionDoc
	err := r.store.collection(sessionsCollection).FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find meal session: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *MealSessionRepository) FindAll(ctx context.Context, filter repository.SessionFilter, page, limit int) (repository.Page[*domain.MealSession], error) {
	if limit < 1 {
		limit = repository.DefaultLimit
	}

	query := bson.M{}
	dateRange := bson.M{}
	if !filter.From.IsZero() {
		dateRange["$gte"] = filter.From
	}
	if !filter.To.IsZero() {
		dateRange["$lte"] = filter.To
	}
	if len(dateRange) > 0 {
		query["date"] = dateRange
	}
	if filter.MealType != "" {
		query["mealType"] = string(filter.MealType)
	}

	coll := r.store.collection(sessionsCollection)
	total, err := coll.CountDocuments(ctx, query)
	if err != nil {
		return repository.Page[*domain.MealSession]{}, fmt.Errorf("count meal sessions: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "date", Value: 1}, {Key: "_id", Value: 1}}).
		SetSkip(int64(repository.Skip(page, limit))).
		SetLimit(int64(limit))
	cursor, err := coll.Find(ctx, query, opts)
	if err != nil {
		return repository.Page[*domain.MealSession]{}, fmt.Errorf("find meal sessions: %w", err)
	}
	defer cursor.Close(ctx)

	var items []*domain.MealSession
	for cursor.Next(ctx) {
		var doc sessionDoc
		if err := cursor.Decode(&doc); err != nil {
			return repository.Page[*domain.MealSession]{}, fmt.Errorf("decode meal session: %w", err)
		}
		items = append(items, doc.toDomain())
	}
	if err := cursor.Err(); err != nil {
		return repository.Page[*domain.MealSession]{}, fmt.Errorf("iterate meal sessions: %w", err)
	}
	return repository.NewPage(items, total, page, limit), nil
}

func (r *MealSessionRepository) Update(ctx context.Context, session *domain.MealSession) (*domain.MealSession, error) {
	oid, ok := parseID(session.ID)
	if !ok {
		return nil, nil
	}

	set := bson.M{
		"date":            session.Date,
		"mealType":        string(session.MealType),
		"recipeIds":       session.RecipeIDs,
		"plannedServings": session.PlannedServings,
		"notes":           session.Notes,
		"status":          string(session.Status),
		"updatedAt":       time.Now().UTC(),
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc sessionDoc
	err := r.store.collection(sessionsCollection).
		FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, opts).
		Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("update meal session: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *MealSessionRepository) Delete(ctx context.Context, id string) (bool, error) {
	oid, ok := parseID(id)
	if !ok {
		return false, nil
	}
	res, err := r.store.collection(sessionsCollection).DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return false, fmt.Errorf("delete meal session: %w", err)
	}
	return res.DeletedCount > 0, nil
}

type attendanceDoc struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	SessionID  string             `bson:"sessionId"`
	StudentID  string             `bson:"studentId"`
	Present    bool               `bson:"present"`
	MealServed bool               `bson:"mealServed"`
	RecordedAt time.Time          `bson:"recordedAt"`
}

func (d attendanceDoc) toDomain() *domain.MealAttendance {
	return &domain.MealAttendance{
		ID:         d.ID.Hex(),
		SessionID:  d.SessionID,
		StudentID:  d.StudentID,
		Present:    d.Present,
		MealServed: d.MealServed,
		RecordedAt: d.RecordedAt,
	}
}

// AttendanceRepository is the MongoDB-backed repository.AttendanceRepository.
type AttendanceRepository struct {
	store *Store
	log   *zap.Logger
}

// NewAttendanceRepository builds an attendance repository on the given store.
func NewAttendanceRepository(store *Store) *AttendanceRepository {
	return &AttendanceRepository{store: store, log: store.log.Named("attendance")}
}

func (r *AttendanceRepository) Save(ctx context.Context, record *domain.MealAttendance) (*domain.MealAttendance, error) {
	doc := attendanceDoc{
		SessionID:  record.SessionID,
		StudentID:  record.StudentID,
		Present:    record.Present,
		MealServed: record.MealServed,
		RecordedAt: time.Now().UTC(),
	}
	res, err := r.store.collection(attendanceCollection).InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert attendance: %w", err)
	}
	doc.ID = res.InsertedID.(primitive.ObjectID)
	return doc.toDomain(), nil
}

func (r *AttendanceRepository) FindBySession(ctx context.Context, sessionID string) ([]*domain.MealAttendance, error) {
	cursor, err := r.store.collection(attendanceCollection).Find(ctx, bson.M{"sessionId": sessionID})
	if err != nil {
		return nil, fmt.Errorf("find attendance: %w", err)
	}
	defer cursor.Close(ctx)

	var items []*domain.MealAttendance
	for cursor.Next(ctx) {
		var doc attendanceDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode attendance: %w", err)
		}
		items = append(items, doc.toDomain())
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("iterate attendance: %w", err)
	}
	return items, nil
}

func (r *AttendanceRepository) FindBySessionAndStudent(ctx context.Context, sessionID, studentID string) (*domain.MealAttendance, error) {
	var doc attendanceDoc
	err := r.store.collection(attendanceCollection).
		FindOne(ctx, bson.M{"sessionId": sessionID, "studentId": studentID}).
		Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find attendance record: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *AttendanceRepository) Update(ctx context.Context, record *domain.MealAttendance) (*domain.MealAttendance, error) {
	oid, ok := parseID(record.ID)
	if !ok {
		return nil, nil
	}

	set := bson.M{
		"present":    record.Present,
		"mealServed": record.MealServed,
		"recordedAt": time.Now().UTC(),
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc attendanceDoc
	err := r.store.collection(attendanceCollection).
		FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, opts).
		Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("update attendance: %w", err)
	}
	return doc.toDomain(), nil
}
