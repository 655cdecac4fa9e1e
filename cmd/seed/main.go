package main

import (
	"context"
	"log"
	"time"

	"go.uber.org/zap"

	"github.com/lakindu62/kidsfeed/config"
	"github.com/lakindu62/kidsfeed/internal/database"
	"github.com/lakindu62/kidsfeed/internal/domain"
	"github.com/lakindu62/kidsfeed/internal/repository/mongodb"
	"github.com/lakindu62/kidsfeed/internal/service"
	"github.com/lakindu62/kidsfeed/pkg/logger"
)

// Seeds a handful of recipes and students so a fresh deployment has
// something to browse.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	zlog := logger.New(cfg.LogLevel, cfg.Environment)
	defer zlog.Sync() //nolint:errcheck

	mongoDB, err := database.NewMongo(cfg, zlog)
	if err != nil {
		zlog.Fatal("failed to connect to MongoDB", zap.Error(err))
	}
	defer mongoDB.Disconnect(context.Background()) //nolint:errcheck

	store := mongodb.NewStore(mongoDB.Database(), zlog)
	recipes := mongodb.NewRecipeRepository(store)
	students := mongodb.NewStudentRepository(store)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	calculator := service.NewTableNutritionCalculator()

	for _, recipe := range sampleRecipes() {
		if err := recipe.Validate(); err != nil {
			zlog.Fatal("invalid seed recipe", zap.String("name", recipe.Name), zap.Error(err))
		}
		if info, err := calculator.Calculate(ctx, recipe.Ingredients); err == nil {
			recipe.Nutrition = &info
		} else {
			zlog.Warn("skipping nutrition for seed recipe", zap.String("name", recipe.Name), zap.Error(err))
		}
		saved, err := recipes.Save(ctx, recipe)
		if err != nil {
			zlog.Fatal("failed to seed recipe", zap.String("name", recipe.Name), zap.Error(err))
		}
		zlog.Info("seeded recipe", zap.String("id", saved.ID), zap.String("name", saved.Name))
	}

	for _, student := range sampleStudents() {
		if err := student.Validate(); err != nil {
			zlog.Fatal("invalid seed student", zap.Error(err))
		}
		saved, err := students.Save(ctx, student)
		if err != nil {
			zlog.Fatal("failed to seed student", zap.Error(err))
		}
		zlog.Info("seeded student", zap.String("id", saved.ID), zap.String("name", saved.FullName()))
	}

	zlog.Info("seeding complete")
}

func sampleRecipes() []*domain.Recipe {
	return []*domain.Recipe{
		domain.NewRecipe(
			"Vegetable Fried Rice",
			"Rice stir-fried with carrots, green beans and egg.",
			[]domain.Ingredient{
				{Name: "rice", Quantity: 400, Unit: "g", IsEssential: true},
				{Name: "carrot", Quantity: 150, Unit: "g"},
				{Name: "green beans", Quantity: 100, Unit: "g"},
				{Name: "egg", Quantity: 2, Unit: "piece"},
				{Name: "oil", Quantity: 2, Unit: "tbsp", IsEssential: true},
			},
			"Cook the rice. Stir-fry the vegetables, add beaten egg, fold in rice and season.",
			domain.DietaryFlags{Vegetarian: true, DairyFree: true, NutFree: true},
			[]string{"eggs"},
			6, 30,
		),
		domain.NewRecipe(
			"Lentil Curry",
			"Mild red lentil curry served over rice.",
			[]domain.Ingredient{
				{Name: "lentils", Quantity: 300, Unit: "g", IsEssential: true},
				{Name: "onion", Quantity: 100, Unit: "g"},
				{Name: "tomato", Quantity: 150, Unit: "g"},
				{Name: "rice", Quantity: 400, Unit: "g", IsEssential: true},
				{Name: "oil", Quantity: 1, Unit: "tbsp"},
			},
			"Simmer lentils with onion and tomato until soft. Serve over steamed rice.",
			domain.DietaryFlags{Vegetarian: true, Vegan: true, Halal: true, GlutenFree: true, DairyFree: true, NutFree: true},
			nil,
			8, 45,
		),
		domain.NewRecipe(
			"Chicken and Potato Bake",
			"Oven-baked chicken with potatoes and carrots.",
			[]domain.Ingredient{
				{Name: "chicken", Quantity: 600, Unit: "g", IsEssential: true},
				{Name: "potato", Quantity: 500, Unit: "g", IsEssential: true},
				{Name: "carrot", Quantity: 200, Unit: "g"},
				{Name: "oil", Quantity: 2, Unit: "tbsp"},
			},
			"Toss chicken and vegetables with oil, bake at 200C for 40 minutes.",
			domain.DietaryFlags{Halal: true, GlutenFree: true, DairyFree: true, NutFree: true},
			nil,
			6, 55,
		),
		domain.NewRecipe(
			"Banana Oat Porridge",
			"Warm oats with milk and sliced banana.",
			[]domain.Ingredient{
				{Name: "oats", Quantity: 200, Unit: "g", IsEssential: true},
				{Name: "milk", Quantity: 500, Unit: "ml", IsEssential: true},
				{Name: "banana", Quantity: 2, Unit: "piece"},
				{Name: "sugar", Quantity: 1, Unit: "tbsp"},
			},
			"Simmer oats in milk until creamy, top with banana.",
			domain.DietaryFlags{Vegetarian: true, Halal: true, NutFree: true},
			[]string{"dairy"},
			4, 15,
		),
	}
}

func sampleStudents() []*domain.Student {
	now := time.Now().UTC()
	return []*domain.Student{
		{
			FirstName:       "Amaya",
			LastName:        "Perera",
			Grade:           3,
			ClassName:       "3B",
			DietaryFlags:    domain.DietaryFlags{Vegetarian: true},
			Allergens:       []string{"peanuts"},
			GuardianContact: "amaya.guardian@example.com",
			IsActive:        true,
			CreatedAt:       now,
			UpdatedAt:       now,
		},
		{
			FirstName:       "Dilan",
			LastName:        "Fernando",
			Grade:           5,
			ClassName:       "5A",
			DietaryFlags:    domain.DietaryFlags{Halal: true},
			Allergens:       nil,
			GuardianContact: "dilan.guardian@example.com",
			IsActive:        true,
			CreatedAt:       now,
			UpdatedAt:       now,
		},
		{
			FirstName:       "Sasha",
			LastName:        "Jayasinghe",
			Grade:           1,
			ClassName:       "1C",
			DietaryFlags:    domain.DietaryFlags{DairyFree: true, GlutenFree: true},
			Allergens:       []string{"dairy", "wheat"},
			GuardianContact: "sasha.guardian@example.com",
			IsActive:        true,
			CreatedAt:       now,
			UpdatedAt:       now,
		},
	}
}
