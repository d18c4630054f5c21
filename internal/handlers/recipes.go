package handlers

import (
	"net/http"
	"strings"

	"github.com/lilybakes/ovenbook/internal/middleware"
	"github.com/lilybakes/ovenbook/internal/models"
)

// ListRecipes returns all recipes for the current user
func (h *Handler) ListRecipes(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)
	if user == nil {
		h.jsonError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	recipes, err := h.recipeRepo.GetByUserID(user.ID)
	if err != nil {
		h.jsonError(w, "Failed to load recipes", http.StatusInternalServerError)
		return
	}
	h.jsonOK(w, recipes)
}

type recipeInput struct {
	Name        string              `json:"name"`
	Servings    int                 `json:"servings"`
	Ingredients []models.Ingredient `json:"ingredients"`
	Method      string              `json:"method"`
}

// CreateRecipe creates a recipe for the current user
func (h *Handler) CreateRecipe(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)
	if user == nil {
		h.jsonError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var input recipeInput
	if err := h.decodeJSON(r, &input); err != nil {
		h.jsonError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(input.Name) == "" {
		h.jsonError(w, "Recipe name is required", http.StatusBadRequest)
		return
	}

	recipe := models.NewRecipe(user.ID, strings.TrimSpace(input.Name), input.Servings)
	if input.Ingredients != nil {
		recipe.Ingredients = input.Ingredients
	}
	recipe.Method = input.Method

	if err := h.recipeRepo.Create(recipe); err != nil {
		h.jsonError(w, "Failed to create recipe", http.StatusInternalServerError)
		return
	}
	h.writeJSON(w, recipe, http.StatusCreated)
}

// GetRecipe returns one recipe with its costings
func (h *Handler) GetRecipe(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)
	if user == nil {
		h.jsonError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	id, ok := pathID(r)
	if !ok {
		h.jsonError(w, "Invalid recipe ID", http.StatusBadRequest)
		return
	}

	recipe, err := h.recipeRepo.GetByID(id)
	if err != nil || recipe == nil || recipe.UserID != user.ID {
		h.jsonError(w, "Recipe not found", http.StatusNotFound)
		return
	}

	h.jsonOK(w, map[string]interface{}{
		"recipe":           recipe,
		"batch_cost":       recipe.BatchCost(),
		"cost_per_serving": recipe.CostPerServing(),
	})
}

// UpdateRecipe updates a recipe
func (h *Handler) UpdateRecipe(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)
	if user == nil {
		h.jsonError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	id, ok := pathID(r)
	if !ok {
		h.jsonError(w, "Invalid recipe ID", http.StatusBadRequest)
		return
	}

	recipe, err := h.recipeRepo.GetByID(id)
	if err != nil || recipe == nil || recipe.UserID != user.ID {
		h.jsonError(w, "Recipe not found", http.StatusNotFound)
		return
	}

	var input recipeInput
	if err := h.decodeJSON(r, &input); err != nil {
		h.jsonError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(input.Name) == "" {
		h.jsonError(w, "Recipe name is required", http.StatusBadRequest)
		return
	}

	recipe.Name = strings.TrimSpace(input.Name)
	recipe.Servings = input.Servings
	if input.Ingredients != nil {
		recipe.Ingredients = input.Ingredients
	}
	recipe.Method = input.Method

	if err := h.recipeRepo.Update(recipe); err != nil {
		h.jsonError(w, "Failed to update recipe", http.StatusInternalServerError)
		return
	}
	h.jsonOK(w, recipe)
}

// DeleteRecipe removes a recipe
func (h *Handler) DeleteRecipe(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)
	if user == nil {
		h.jsonError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	id, ok := pathID(r)
	if !ok {
		h.jsonError(w, "Invalid recipe ID", http.StatusBadRequest)
		return
	}

	recipe, err := h.recipeRepo.GetByID(id)
	if err != nil || recipe == nil || recipe.UserID != user.ID {
		h.jsonError(w, "Recipe not found", http.StatusNotFound)
		return
	}

	if err := h.recipeRepo.Delete(recipe.ID); err != nil {
		h.jsonError(w, "Failed to delete recipe", http.StatusInternalServerError)
		return
	}
	h.jsonOK(w, map[string]bool{"deleted": true})
}
