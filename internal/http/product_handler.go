package httpapi

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/gumballparkerdev-cyber/Driply-Backend/internal/catalog"
)

type ProductHandler struct {
	repo catalog.Repository
}

func NewProductHandler(repo catalog.Repository) *ProductHandler {
	return &ProductHandler{repo: repo}
}

// productSummary is the trimmed shape served from the list endpoint.
type productSummary struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Image    string  `json:"image,omitempty"`
	Stock    int     `json:"stock"`
	Category string  `json:"category"`
}

func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	f, ok := parseFilter(w, r)
	if !ok {
		return
	}

	products, err := h.repo.List(r.Context(), f)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load products")
		return
	}

	summaries := make([]productSummary, 0, len(products))
	for _, p := range products {
		summaries = append(summaries, productSummary{
			ID:       p.ID,
			Name:     p.Name,
			Price:    p.Price,
			Image:    p.Image,
			Stock:    p.Stock,
			Category: p.Category,
		})
	}
	writeJSON(w, http.StatusOK, summaries)
}

func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	p, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func parseFilter(w http.ResponseWriter, r *http.Request) (catalog.Filter, bool) {
	q := r.URL.Query()
	f := catalog.Filter{
		Categories: splitValues(q["category"]),
		Genders:    splitValues(q["gender"]),
		Seasons:    splitValues(q["season"]),
		Search:     q.Get("search"),
	}

	if v := q.Get("minPrice"); v != "" {
		min, err := strconv.ParseFloat(v, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid minPrice")
			return catalog.Filter{}, false
		}
		f.MinPrice = &min
	}
	if v := q.Get("maxPrice"); v != "" {
		max, err := strconv.ParseFloat(v, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid maxPrice")
			return catalog.Filter{}, false
		}
		f.MaxPrice = &max
	}
	return f, true
}

// splitValues accepts both repeated query params and comma-separated lists.
func splitValues(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
