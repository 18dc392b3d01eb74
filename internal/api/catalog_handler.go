package api

import (
	"net/http"

	"github.com/strengthscope/backend/internal/domain/category"
	"github.com/strengthscope/backend/internal/domain/forcedchoice"
	"github.com/strengthscope/backend/internal/domain/strength"
)

// ── Request / Response types ────────────────────────────────────────────────

type CategoryGroup struct {
	Category  category.Category   `json:"category" example:"interpersonal"`
	Name      string              `json:"name" example:"Interpersonal"`
	Strengths []strength.Strength `json:"strengths"`
}

type ForcedChoiceCatalogResponse struct {
	Traits    []strength.Strength     `json:"traits"`
	Questions []forcedchoice.Question `json:"questions"`
}

// ── Handlers ────────────────────────────────────────────────────────────────

// listStrengths returns the strengths catalog grouped by category.
// @Summary      List strengths
// @Description  Returns the 20 strengths grouped by their five categories. Filter with ?category=.
// @Tags         Catalog
// @Produce      json
// @Param        category  query     string  false  "Category id"
// @Success      200       {array}   CategoryGroup
// @Failure      400       {object}  map[string]string
// @Router       /catalog/strengths [get]
func (h *Handler) listStrengths(w http.ResponseWriter, r *http.Request) {
	cats := category.All()
	if raw := r.URL.Query().Get("category"); raw != "" {
		c, err := category.Parse(raw)
		if err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		cats = []category.Category{c}
	}

	grouped := h.catalogs.Strengths.ByCategory()
	groups := make([]CategoryGroup, 0, len(cats))
	for _, c := range cats {
		groups = append(groups, CategoryGroup{
			Category:  c,
			Name:      c.Name(),
			Strengths: grouped[c],
		})
	}

	respondJSON(w, http.StatusOK, groups)
}

// listQuestions returns the statement bank.
// @Summary      List statements
// @Description  Returns every statement of the strengths bank. Filter with ?strength=.
// @Tags         Catalog
// @Produce      json
// @Param        strength  query     string  false  "Strength id"
// @Success      200       {array}   strength.Question
// @Failure      404       {object}  map[string]string
// @Router       /catalog/questions [get]
func (h *Handler) listQuestions(w http.ResponseWriter, r *http.Request) {
	bank := h.catalogs.Strengths
	id := r.URL.Query().Get("strength")
	if id == "" {
		respondJSON(w, http.StatusOK, bank.Questions())
		return
	}

	if _, ok := bank.Strength(id); !ok {
		respondError(w, http.StatusNotFound, "strength not found")
		return
	}
	respondJSON(w, http.StatusOK, bank.QuestionsFor(id))
}

// getForcedChoiceCatalog returns the forced-choice traits and questions.
// @Summary      Forced-choice catalog
// @Description  Returns the 20 forced-choice traits and the 50 curated questions.
// @Tags         Catalog
// @Produce      json
// @Success      200  {object}  ForcedChoiceCatalogResponse
// @Router       /catalog/forced-choice [get]
func (h *Handler) getForcedChoiceCatalog(w http.ResponseWriter, r *http.Request) {
	fc := h.catalogs.ForcedChoice
	respondJSON(w, http.StatusOK, ForcedChoiceCatalogResponse{
		Traits:    fc.Traits(),
		Questions: fc.Questions(),
	})
}
