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

type inventoryDoc struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Name         string             `bson:"name"`
	Category     string             `bson:"category"`
	Quantity     float64            `bson:"quantity"`
	Unit         string             `bson:"unit"`
	ReorderLevel float64            `bson:"reorderLevel"`
	ExpiryDate   *time.Time         `bson:"expiryDate,omitempty"`
	Status       string             `bson:"status"`
	CreatedAt    time.Time          `bson:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt"`
}

func newInventoryDoc(item *domain.InventoryItem) inventoryDoc {
	return inventoryDoc{
		Name:         item.Name,
		Category:     item.Category,
		Quantity:     item.Quantity,
		Unit:         item.Unit,
		ReorderLevel: item.ReorderLevel,
		ExpiryDate:   item.ExpiryDate,
		Status:       string(item.Status),
		CreatedAt:    item.CreatedAt,
		UpdatedAt:    item.UpdatedAt,
	}
}

func (d inventoryDoc) toDomain() *domain.InventoryItem {
	return &domain.InventoryItem{
		ID:           d.ID.Hex(),
		Name:         d.Name,
		Category:     d.Category,
		Quantity:     d.Quantity,
		Unit:         d.Unit,
		ReorderLevel: d.ReorderLevel,
		ExpiryDate:   d.ExpiryDate,
		Status:       domain.InventoryStatus(d.Status),
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

// InventoryRepository is the MongoDB-backed repository.InventoryRepository.
type InventoryRepository struct {
	store *Store
	log   *zap.Logger
}

// NewInventoryRepository builds an inventory repository on the given store.
func NewInventoryRepository(store *Store) *InventoryRepository {
	return &InventoryRepository{store: store, log: store.log.Named("inventory")}
}

func (r *InventoryRepository) Save(ctx context.Context, item *domain.InventoryItem) (*domain.InventoryItem, error) {
	now := time.Now().UTC()
	doc := newInventoryDoc(item)
	doc.CreatedAt = now
	doc.UpdatedAt = now

	res, err := r.store.collection(inventoryCollection).InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert inventory item: %w", err)
	}
	doc.ID = res.InsertedID.(primitive.ObjectID)
	return doc.toDomain(), nil
}

func (r *InventoryRepository) FindByID(ctx context.Context, id string) (*domain.InventoryItem, error) {
	oid, ok := parseID(id)
	if !ok {
		return nil, nil
	}
	var doc inventoryDoc
	err := r.store.collection(inventoryCollection).FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find inventory item: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *InventoryRepository) FindAll(ctx context.Context, filter repository.InventoryFilter, page, limit int) (repository.Page[*domain.InventoryItem], error) {
	if limit < 1 {
		limit = repository.DefaultLimit
	}

	query := bson.M{}
	if filter.Status != "" {
		query["status"] = string(filter.Status)
	}
	if filter.Category != "" {
		query["category"] = filter.Category
	}

	coll := r.store.collection(inventoryCollection)
	total, err := coll.CountDocuments(ctx, query)
	if err != nil {
		return repository.Page[*domain.InventoryItem]{}, fmt.Errorf("count inventory: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "name", Value: 1}, {Key: "_id", Value: 1}}).
		SetSkip(int64(repository.Skip(page, limit))).
		SetLimit(int64(limit))
	cursor, err := coll.Find(ctx, query, opts)
	if err != nil {
		return repository.Page[*domain.InventoryItem]{}, fmt.Errorf("find inventory: %w", err)
	}
	defer cursor.Close(ctx)

	var items []*domain.InventoryItem
	for cursor.Next(ctx) {
		var doc inventoryDoc
		if err := cursor.Decode(&doc); err != nil {
			return repository.Page[*domain.InventoryItem]{}, fmt.Errorf("decode inventory item: %w", err)
		}
		items = append(items, doc.toDomain())
	}
	if err := cursor.Err(); err != nil {
		return repository.Page[*domain.InventoryItem]{}, fmt.Errorf("iterate inventory: %w", err)
	}
	return repository.NewPage(items, total, page, limit), nil
}

func (r *InventoryRepository) Update(ctx context.Context, item *domain.InventoryItem) (*domain.InventoryItem, error) {
	oid, ok := parseID(item.ID)
	if !ok {
		return nil, nil
	}

	set := bson.M{
		"name":         item.Name,
		"category":     item.Category,
		"quantity":     item.Quantity,
		"unit":         item.Unit,
		"reorderLevel": item.ReorderLevel,
		"expiryDate":   item.ExpiryDate,
		"status":       string(item.Status),
		"updatedAt":    time.Now().UTC(),
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc inventoryDoc
	err := r.store.collection(inventoryCollection).
		FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, opts).
		Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("update inventory item: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *InventoryRepository) Delete(ctx context.Context, id string) (bool, error) {
	oid, ok := parseID(id)
	if !ok {
		return false, nil
	}
	res, err := r.store.collection(inventoryCollection).DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return false, fmt.Errorf("delete inventory item: %w", err)
	}
	return res.DeletedCount > 0, nil
}
