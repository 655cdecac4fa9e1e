package mongodb

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/lakindu62/kidsfeed/internal/domain"
	"github.com/lakindu62/kidsfeed/internal/repository"
)

type studentDoc struct {
	ID              primitive.ObjectID `bson:"_id,omitempty"`
	FirstName       string             `bson:"firstName"`
	LastName        string             `bson:"lastName"`
	Grade           int                `bson:"grade"`
	ClassName       string             `bson:"className"`
	DietaryFlags    dietaryFlagsDoc    `bson:"dietaryFlags"`
	Allergens       []string           `bson:"allergens"`
	GuardianContact string             `bson:"guardianContact"`
	IsActive        bool               `bson:"isActive"`
	CreatedAt       time.Time          `bson:"createdAt"`
	UpdatedAt       time.Time          `bson:"updatedAt"`
}

func newStudentDoc(student *domain.Student) studentDoc {
	return studentDoc{
		FirstName:       student.FirstName,
		LastName:        student.LastName,
		Grade:           student.Grade,
		ClassName:       student.ClassName,
		DietaryFlags:    newDietaryFlagsDoc(student.DietaryFlags),
		Allergens:       student.Allergens,
		GuardianContact: student.GuardianContact,
		IsActive:        student.IsActive,
		CreatedAt:       student.CreatedAt,
		UpdatedAt:       student.UpdatedAt,
	}
}

func (d studentDoc) toDomain() *domain.Student {
	return &domain.Student{
		ID:              d.ID.Hex(),
		FirstName:       d.FirstName,
		LastName:        d.LastName,
		Grade:           d.Grade,
		ClassName:       d.ClassName,
		DietaryFlags:    d.DietaryFlags.toDomain(),
		Allergens:       d.Allergens,
		GuardianContact: d.GuardianContact,
		IsActive:        d.IsActive,
		CreatedAt:       d.CreatedAt,
		UpdatedAt:       d.UpdatedAt,
	}
}

// StudentRepository is the MongoDB-backed repository.StudentRepository.
type StudentRepository struct {
	store *Store
	log   *zap.Logger
}

// NewStudentRepository builds a student repository on the given store.
func NewStudentRepository(store *Store) *StudentRepository {
	return &StudentRepository{store: store, log: store.log.Named("students")}
}

func (r *StudentRepository) Save(ctx context.Context, student *domain.Student) (*domain.Student, error) {
	now := time.Now().UTC()
	doc := newStudentDoc(student)
	doc.CreatedAt = now
	doc.UpdatedAt = now

	res, err := r.store.collection(studentsCollection).InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert student: %w", err)
	}
	doc.ID = res.InsertedID.(primitive.ObjectID)
	return doc.toDomain(), nil
}

func (r *StudentRepository) FindByID(ctx context.Context, id string) (*domain.Student, error) {
	oid, ok := parseID(id)
	if !ok {
		return nil, nil
	}
	var doc studentDoc
	err := r.store.collection(studentsCollection).FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find student: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *StudentRepository) FindAll(ctx context.Context, activeOnly bool, page, limit int) (repository.Page[*domain.Student], error) {
	if limit < 1 {
		limit = repository.DefaultLimit
	}

	query := bson.M{}
	if activeOnly {
		query["isActive"] = true
	}

	coll := r.store.collection(studentsCollection)
	total, err := coll.CountDocuments(ctx, query)
	if err != nil {
		return repository.Page[*domain.Student]{}, fmt.Errorf("count students: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "lastName", Value: 1}, {Key: "firstName", Value: 1}, {Key: "_id", Value: 1}}).
		SetSkip(int64(repository.Skip(page, limit))).
		SetLimit(int64(limit))
	cursor, err := coll.Find(ctx, query, opts)
	if err != nil {
		return repository.Page[*domain.Student]{}, fmt.Errorf("find students: %w", err)
	}
	defer cursor.Close(ctx)

	items, err := decodeStudents(ctx, cursor)
	if err != nil {
		return repository.Page[*domain.Student]{}, err
	}
	return repository.NewPage(items, total, page, limit), nil
}

func (r *StudentRepository) SearchByName(ctx context.Context, queryText string) ([]*domain.Student, error) {
	re := primitive.Regex{Pattern: regexp.QuoteMeta(queryText), Options: "i"}
	query := bson.M{
		"isActive": true,
		"$or":      bson.A{bson.M{"firstName": re}, bson.M{"lastName": re}},
	}

	cursor, err := r.store.collection(studentsCollection).Find(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("search students: %w", err)
	}
	defer cursor.Close(ctx)
	return decodeStudents(ctx, cursor)
}

func (r *StudentRepository) Update(ctx context.Context, student *domain.Student) (*domain.Student, error) {
	oid, ok := parseID(student.ID)
	if !ok {
		return nil, nil
	}

	set := bson.M{
		"firstName":       student.FirstName,
		"lastName":        student.LastName,
		"grade":           student.Grade,
		"className":       student.ClassName,
		"dietaryFlags":    newDietaryFlagsDoc(student.DietaryFlags),
		"allergens":       student.Allergens,
		"guardianContact": student.GuardianContact,
		"isActive":        student.IsActive,
		"updatedAt":       time.Now().UTC(),
	}
	return r.findOneAndSet(ctx, oid, set)
}

func (r *StudentRepository) SoftDelete(ctx context.Context, id string) (*domain.Student, error) {
	oid, ok := parseID(id)
	if !ok {
		return nil, nil
	}
	return r.findOneAndSet(ctx, oid, bson.M{"isActive": false, "updatedAt": time.Now().UTC()})
}

func (r *StudentRepository) findOneAndSet(ctx context.Context, oid primitive.ObjectID, set bson.M) (*domain.Student, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc studentDoc
	err := r.store.collection(studentsCollection).
		FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, opts).
		Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("update student: %w", err)
	}
	return doc.toDomain(), nil
}

func decodeStudents(ctx context.Context, cursor *mongo.Cursor) ([]*domain.Student, error) {
	var items []*domain.Student
	for cursor.Next(ctx) {
		var doc studentDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode student: %w", err)
		}
		items = append(items, doc.toDomain())
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("iterate students: %w", err)
	}
	return items, nil
}
