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

type ingredientDoc struct {
	Name        string  `bson:"name"`
	Quantity    float64 `bson:"quantity"`
	Unit        string  `bson:"unit"`
	IsEssential bool    `bson:"isEssential"`
}

// nutritionDoc mirrors the persisted nutrition sub-document. Early records
// were written with the misspelled "callories" key; that key is accepted on
// read and never written back, so rewritten records migrate to "calories".
type nutritionDoc struct {
	Calories       float64  `bson:"calories"`
	LegacyCalories *float64 `bson:"callories,omitempty"`
	Protein        float64  `bson:"protein"`
	Carbs          float64  `bson:"carbs"`
	Fats           float64  `bson:"fats"`
	Fiber          float64  `bson:"fiber"`
	Sugar          float64  `bson:"sugar"`
}

func newNutritionDoc(info domain.NutritionalInfo) nutritionDoc {
	return nutritionDoc{
		Calories: info.Calories,
		Protein:  info.Protein,
		Carbs:    info.Carbs,
		Fats:     info.Fats,
		Fiber:    info.Fiber,
		Sugar:    info.Sugar,
	}
}

func (d nutritionDoc) toDomain() domain.NutritionalInfo {
	calories := d.Calories
	if calories == 0 && d.LegacyCalories != nil {
		calories = *d.LegacyCalories
	}
	return domain.NutritionalInfo{
		Calories: calories,
		Protein:  d.Protein,
		Carbs:    d.Carbs,
		Fats:     d.Fats,
		Fiber:    d.Fiber,
		Sugar:    d.Sugar,
	}
}

type dietaryFlagsDoc struct {
	Vegetarian bool `bson:"vegetarian"`
	Vegan      bool `bson:"vegan"`
	Halal      bool `bson:"halal"`
	GlutenFree bool `bson:"glutenFree"`
	DairyFree  bool `bson:"dairyFree"`
	NutFree    bool `bson:"nutFree"`
}

func newDietaryFlagsDoc(f domain.DietaryFlags) dietaryFlagsDoc {
	return dietaryFlagsDoc(f)
}

func (d dietaryFlagsDoc) toDomain() domain.DietaryFlags {
	return domain.DietaryFlags(d)
}

type recipeDoc struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Name         string             `bson:"name"`
	Description  string             `bson:"description"`
	Ingredients  []ingredientDoc    `bson:"ingredients"`
	Instructions string             `bson:"instructions"`
	Nutrition    *nutritionDoc      `bson:"nutritionalInfo,omitempty"`
	DietaryFlags dietaryFlagsDoc    `bson:"dietaryFlags"`
	Allergens    []string           `bson:"allergens"`
	ServingSize  int                `bson:"servingSize"`
	PrepTime     int                `bson:"prepTime"`
	Seasonal     []string           `bson:"seasonal"`
	IsActive     bool               `bson:"isActive"`
	CreatedAt    time.Time          `bson:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt"`
}

func newRecipeDoc(recipe *domain.Recipe) recipeDoc {
	doc := recipeDoc{
		Name:         recipe.Name,
		Description:  recipe.Description,
		Instructions: recipe.Instructions,
		DietaryFlags: newDietaryFlagsDoc(recipe.DietaryFlags),
		Allergens:    recipe.Allergens,
		ServingSize:  recipe.ServingSize,
		PrepTime:     recipe.PrepTime,
		Seasonal:     recipe.Seasonal,
		IsActive:     recipe.IsActive,
		CreatedAt:    recipe.CreatedAt,
		UpdatedAt:    recipe.UpdatedAt,
	}
	for _, ing := range recipe.Ingredients {
		doc.Ingredients = append(doc.Ingredients, ingredientDoc(ing))
	}
	if recipe.Nutrition != nil {
		nut := newNutritionDoc(*recipe.Nutrition)
		doc.Nutrition = &nut
	}
	return doc
}

func (d recipeDoc) toDomain() *domain.Recipe {
	recipe := &domain.Recipe{
		ID:           d.ID.Hex(),
		Name:         d.Name,
		Description:  d.Description,
		Instructions: d.Instructions,
		DietaryFlags: d.DietaryFlags.toDomain(),
		Allergens:    d.Allergens,
		ServingSize:  d.ServingSize,
		PrepTime:     d.PrepTime,
		Seasonal:     d.Seasonal,
		IsActive:     d.IsActive,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
	for _, ing := range d.Ingredients {
		recipe.Ingredients = append(recipe.Ingredients, domain.Ingredient(ing))
	}
	if d.Nutrition != nil {
		info := d.Nutrition.toDomain()
		recipe.Nutrition = &info
	}
	return recipe
}

// RecipeRepository is the MongoDB-backed repository.RecipeRepository.
type RecipeRepository struct {
	store *Store
	log   *zap.Logger
}

// NewRecipeRepository builds a recipe repository on the given store.
func NewRecipeRepository(store *Store) *RecipeRepository {
	return &RecipeRepository{store: store, log: store.log.Named("recipes")}
}

func (r *RecipeRepository) Save(ctx context.Context, recipe *domain.Recipe) (*domain.Recipe, error) {
	now := time.Now().UTC()
	doc := newRecipeDoc(recipe)
	doc.CreatedAt = now
	doc.UpdatedAt = now

	res, err := r.store.collection(recipesCollection).InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert recipe: %w", err)
	}
	doc.ID = res.InsertedID.(primitive.ObjectID)
	r.log.Debug("recipe saved", zap.String("id", doc.ID.Hex()))
	return doc.toDomain(), nil
}

func (r *RecipeRepository) FindByID(ctx context.Context, id string) (*domain.Recipe, error) {
	oid, ok := parseID(id)
	if !ok {
		return nil, nil
	}
	var doc recipeDoc
	err := r.store.collection(recipesCollection).FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find recipe: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *RecipeRepository) FindAll(ctx context.Context, filter repository.RecipeFilter, page, limit int) (repository.Page[*domain.Recipe], error) {
	if limit < 1 {
		limit = repository.DefaultLimit
	}

	query := bson.M{}
	if filter.ActiveOnly {
		query["isActive"] = true
	}
	if filter.NameQuery != "" {
		re := primitive.Regex{Pattern: regexp.QuoteMeta(filter.NameQuery), Options: "i"}
		query["$or"] = bson.A{bson.M{"name": re}, bson.M{"description": re}}
	}
	if len(filter.ExcludeAllergens) > 0 {
		query["allergens"] = bson.M{"$nin": filter.ExcludeAllergens}
	}

	coll := r.store.collection(recipesCollection)
	total, err := coll.CountDocuments(ctx, query)
	if err != nil {
		return repository.Page[*domain.Recipe]{}, fmt.Errorf("count recipes: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}}).
		SetSkip(int64(repository.Skip(page, limit))).
		SetLimit(int64(limit))
	cursor, err := coll.Find(ctx, query, opts)
	if err != nil {
		return repository.Page[*domain.Recipe]{}, fmt.Errorf("find recipes: %w", err)
	}
	defer cursor.Close(ctx)

	items, err := decodeRecipes(ctx, cursor)
	if err != nil {
		return repository.Page[*domain.Recipe]{}, err
	}
	return repository.NewPage(items, total, page, limit), nil
}

func (r *RecipeRepository) Update(ctx context.Context, id string, patch repository.RecipePatch) (*domain.Recipe, error) {
	oid, ok := parseID(id)
	if !ok {
		return nil, nil
	}

	set := bson.M{"updatedAt": time.Now().UTC()}
	if patch.Name != nil {
		set["name"] = *patch.Name
	}
	if patch.Description != nil {
		set["description"] = *patch.Description
	}
	if patch.Ingredients != nil {
		docs := make([]ingredientDoc, 0, len(*patch.Ingredients))
		for _, ing := range *patch.Ingredients {
			docs = append(docs, ingredientDoc(ing))
		}
		set["ingredients"] = docs
	}
	if patch.Instructions != nil {
		set["instructions"] = *patch.Instructions
	}
	if patch.Nutrition != nil {
		set["nutritionalInfo"] = newNutritionDoc(*patch.Nutrition)
	}
	if patch.DietaryFlags != nil {
		set["dietaryFlags"] = newDietaryFlagsDoc(*patch.DietaryFlags)
	}
	if patch.Allergens != nil {
		set["allergens"] = *patch.Allergens
	}
	if patch.ServingSize != nil {
		set["servingSize"] = *patch.ServingSize
	}
	if patch.PrepTime != nil {
		set["prepTime"] = *patch.PrepTime
	}
	if patch.Seasonal != nil {
		set["seasonal"] = *patch.Seasonal
	}

	return r.findOneAndSet(ctx, oid, set)
}

func (r *RecipeRepository) SoftDelete(ctx context.Context, id string) (*domain.Recipe, error) {
	oid, ok := parseID(id)
	if !ok {
		return nil, nil
	}
	return r.findOneAndSet(ctx, oid, bson.M{"isActive": false, "updatedAt": time.Now().UTC()})
}

func (r *RecipeRepository) findOneAndSet(ctx context.Context, oid primitive.ObjectID, set bson.M) (*domain.Recipe, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc recipeDoc
	err := r.store.collection(recipesCollection).
		FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, opts).
		Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("update recipe: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *RecipeRepository) SearchByIngredient(ctx context.Context, text string) ([]*domain.Recipe, error) {
	re := primitive.Regex{Pattern: regexp.QuoteMeta(text), Options: "i"}
	query := bson.M{"isActive": true, "ingredients.name": re}

	cursor, err := r.store.collection(recipesCollection).Find(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("search recipes by ingredient: %w", err)
	}
	defer cursor.Close(ctx)
	return decodeRecipes(ctx, cursor)
}

func (r *RecipeRepository) FindByDietaryFlags(ctx context.Context, flags domain.DietaryFlags) ([]*domain.Recipe, error) {
	// Only set flags constrain the query; the flag vocabulary is closed.
	query := bson.M{"isActive": true}
	for _, field := range flags.FlagFields() {
		if field.Set {
			query["dietaryFlags."+field.Name] = true
		}
	}

	cursor, err := r.store.collection(recipesCollection).Find(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("find recipes by dietary flags: %w", err)
	}
	defer cursor.Close(ctx)
	return decodeRecipes(ctx, cursor)
}

func decodeRecipes(ctx context.Context, cursor *mongo.Cursor) ([]*domain.Recipe, error) {
	var items []*domain.Recipe
	for cursor.Next(ctx) {
		var doc recipeDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode recipe: %w", err)
		}
		items = append(items, doc.toDomain())
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("iterate recipes: %w", err)
	}
	return items, nil
}
