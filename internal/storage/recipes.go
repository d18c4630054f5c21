package storage

import (
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/lilybakes/ovenbook/internal/models"
)

// RecipeRepository provides recipe data access
type RecipeRepository struct {
	db *DB
}

// NewRecipeRepository creates a new recipe repository
func NewRecipeRepository(db *DB) *RecipeRepository {
	return &RecipeRepository{db: db}
}

// Create inserts a new recipe
func (r *RecipeRepository) Create(rec *models.Recipe) error {
	ingJSON, _ := json.Marshal(rec.Ingredients)

	query := `
		INSERT INTO recipes (id, user_id, name, servings, ingredients, method, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.Exec(query,
		rec.ID.String(),
		rec.UserID.String(),
		rec.Name,
		rec.Servings,
		string(ingJSON),
		rec.Method,
		rec.CreatedAt,
		rec.UpdatedAt,
	)
	return err
}

// GetByID retrieves a recipe by ID
func (r *RecipeRepository) GetByID(id uuid.UUID) (*models.Recipe, error) {
	query := `
		SELECT id, user_id, name, servings, ingredients, method, created_at, updated_at
		FROM recipes WHERE id = ?
	`
	row := r.db.QueryRow(query, id.String())

	var rec models.Recipe
	var recID, userID, ingJSON string
	var method sql.NullString

	err := row.Scan(&recID, &userID, &rec.Name, &rec.Servings, &ingJSON, &method, &rec.CreatedAt, &rec.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	rec.ID, _ = uuid.Parse(recID)
	rec.UserID, _ = uuid.Parse(userID)
	rec.Method = method.String
	if ingJSON != "" {
		json.Unmarshal([]byte(ingJSON), &rec.Ingredients)
	}

	return &rec, nil
}

// GetByUserID retrieves all recipes for a user
func (r *RecipeRepository) GetByUserID(userID uuid.UUID) ([]*models.Recipe, error) {
	query := `
		SELECT id, user_id, name, servings, ingredients, method, created_at, updated_at
		FROM recipes WHERE user_id = ? ORDER BY name
	`
	rows, err := r.db.Query(query, userID.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recipes []*models.Recipe
	for rows.Next() {
		var rec models.Recipe
		var recID, uid, ingJSON string
		var method sql.NullString

		if err := rows.Scan(&recID, &uid, &rec.Name, &rec.Servings, &ingJSON, &method, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
			return nil, err
		}

		rec.ID, _ = uuid.Parse(recID)
		rec.UserID, _ = uuid.Parse(uid)
		rec.Method = method.String
		if ingJSON != "" {
			json.Unmarshal([]byte(ingJSON), &rec.Ingredients)
		}

		recipes = append(recipes, &rec)
	}

	return recipes, rows.Err()
}

// Update modifies an existing recipe
func (r *RecipeRepository) Update(rec *models.Recipe) error {
	rec.UpdatedAt = time.Now().UTC()
	ingJSON, _ := json.Marshal(rec.Ingredients)

	query := `
		UPDATE recipes SET name = ?, servings = ?, ingredients = ?, method = ?, updated_at = ?
		WHERE id = ?
	`
	_, err := r.db.Exec(query,
		rec.Name,
		rec.Servings,
		string(ingJSON),
		rec.Method,
		rec.UpdatedAt,
		rec.ID.String(),
	)
	return err
}

// Delete removes a recipe
func (r *RecipeRepository) Delete(id uuid.UUID) error {
	_, err := r.db.Exec("DELETE FROM recipes WHERE id = ?", id.String())
	return err
}
