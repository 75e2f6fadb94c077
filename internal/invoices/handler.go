package invoices

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/avelinebakes/backoffice/backend-go/internal/domain"
	"github.com/gorilla/mux"
)

// maxUploadBytes caps invoice scan uploads at 20 MiB.
const maxUploadBytes = 20 << 20

// IngredientLister supplies the catalog for fuzzy matching.
type IngredientLister interface {
	GetIngredients(ctx context.Context) ([]domain.Ingredient, error)
}

type Handler struct {
	service     *Service
	ingredients IngredientLister
}

func NewHandler(service *Service, ingredients IngredientLister) *Handler {
	return &Handler{service: service, ingredients: ingredients}
}

func (h *Handler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/invoices/ocr", h.ProcessScan).Methods("POST")
	router.HandleFunc("/invoices/match", h.MatchLineItems).Methods("POST")
}

func (h *Handler) ProcessScan(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		http.Error(w, "invalid multipart form", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "file field is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		http.Error(w, "failed to read upload", http.StatusBadRequest)
		return
	}

	result, err := h.service.Process(r.Context(), header.Filename, header.Header.Get("Content-Type"), data)
	if err != nil {
		http.Error(w, fmt.Sprintf("processing failed: %v", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

func (h *Handler) MatchLineItems(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Descriptions []string `json:"descriptions"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Descriptions == nil {
		http.Error(w, "descriptions array is required", http.StatusBadRequest)
		return
	}

	ingredients, err := h.ingredients.GetIngredients(r.Context())
	if err != nil {
		http.Error(w, fmt.Sprintf("failed to fetch ingredients: %v", err), http.StatusInternalServerError)
		return
	}

	matches := MatchIngredients(body.Descriptions, ingredients)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string][]Match{"matches": matches})
}
