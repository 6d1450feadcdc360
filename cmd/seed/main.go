package main

import (
	"context"

	"go.uber.org/zap"

	"github.com/Ejsll03/recetas-backend/config"
	"github.com/Ejsll03/recetas-backend/internal/database"
	"github.com/Ejsll03/recetas-backend/internal/models"
	"github.com/Ejsll03/recetas-backend/internal/service"
	"github.com/Ejsll03/recetas-backend/internal/session"
)

type seedRecipe struct {
	title       string
	description string
	ingredients []string
	quantities  []string
	steps       []string
	public      bool
}

var demoRecipes = []seedRecipe{
	{
		title:       "Tortilla de patatas",
		description: "La clásica tortilla española, jugosa por dentro.",
		ingredients: []string{"huevos", "patatas", "cebolla", "aceite de oliva", "sal"},
		quantities:  []string{"6", "4 medianas", "1", "250 ml", "al gusto"},
		steps:       []string{"Pelar y cortar las patatas", "Freír a fuego medio", "Batir los huevos y mezclar", "Cuajar por ambos lados"},
		public:      true,
	},
	{
		title:       "Gazpacho andaluz",
		description: "Sopa fría de tomate para el verano.",
		ingredients: []string{"tomates maduros", "pepino", "pimiento verde", "ajo", "pan del día anterior", "aceite de oliva", "vinagre"},
		quantities:  []string{"1 kg", "1", "1", "1 diente", "100 g", "100 ml", "un chorrito"},
		steps:       []string{"Trocear las verduras", "Triturar todo junto", "Colar y enfriar dos horas"},
		public:      true,
	},
	{
		title:       "Lentejas de la abuela",
		description: "Receta familiar, mejor de un día para otro.",
		ingredients: []string{"lentejas pardinas", "chorizo", "zanahoria", "cebolla", "laurel"},
		quantities:  []string{"400 g", "1", "2", "1", "1 hoja"},
		steps:       []string{"Sofreír la verdura", "Añadir las lentejas y cubrir de agua", "Cocer 40 minutos a fuego lento"},
		public:      false,
	},
}

// Seeds a demo account with a handful of recipes and a group so a fresh
// environment has something to show. Registering an existing username fails,
// so running this twice against the same database is a no-op with an error
// logged.
func main() {
	zapLogger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer zapLogger.Sync()
	logger := zapLogger.Sugar()

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalw("failed to load configuration", "error", err)
	}

	db, err := database.New(cfg, logger)
	if err != nil {
		logger.Fatalw("failed to connect to database", "error", err)
	}
	if err := database.Migrate(db); err != nil {
		logger.Fatalw("failed to run migrations", "error", err)
	}

	ctx := context.Background()
	authService := service.NewAuthService(db, session.NewMemoryStore(), cfg.JWTSecret)
	recipeService := service.NewRecipeService(db)
	groupService := service.NewGroupService(db)

	user, err := authService.Register(ctx, "demo", "demo@example.com", "demo12345")
	if err != nil {
		logger.Fatalw("failed to create demo user", "error", err)
	}
	logger.Infow("created demo user", "username", user.Username)

	group, err := groupService.CreateGroup(ctx, user.ID, "Cocina española", "Los básicos de siempre", false)
	if err != nil {
		logger.Fatalw("failed to create demo group", "error", err)
	}

	for _, r := range demoRecipes {
		recipe, err := recipeService.CreateRecipe(ctx, user.ID, &models.Recipe{
			Title:       r.title,
			Description: r.description,
			Ingredients: models.StringArray(r.ingredients),
			Quantities:  models.StringArray(r.quantities),
			Steps:       models.StringArray(r.steps),
			Public:      r.public,
		})
		if err != nil {
			logger.Fatalw("failed to create demo recipe", "title", r.title, "error", err)
		}
		if err := groupService.AddRecipe(ctx, user.ID, group.ID, recipe.ID); err != nil {
			logger.Fatalw("failed to add recipe to demo group", "title", r.title, "error", err)
		}
		logger.Infow("created demo recipe", "title", recipe.Title, "public", recipe.Public)
	}

	logger.Info("seed complete")
}
