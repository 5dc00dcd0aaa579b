package apitest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// Server is an in-memory fake of the remote storefront API, good enough for
// client tests: bearer-authenticated cart routes, a public products route,
// and no merging of duplicate cart lines (each add appends a new row).
type Server struct {
	mu       sync.Mutex
	token    string
	products []Product
	items    []Item
	requests int
	failNext *failure

	httpSrv *httptest.Server
}

type Product struct {
	ID        uuid.UUID
	Name      string
	Currency  string
	Price     string
	SalePrice string // empty means no active promotion
	Active    bool
	Variants  []Variant
}

type Variant struct {
	ID        uuid.UUID
	Size      string
	Price     string
	SalePrice string
}

type Item struct {
	ID        uuid.UUID
	ProductID uuid.UUID
	VariantID *uuid.UUID
	Quantity  int
	AddedAt   time.Time
}

type failure struct {
	status  int
	message string
}

func NewServer(token string) *Server {
	s := &Server{token: token}

	r := chi.NewRouter()
	r.Get("/products", s.handleListProducts)
	r.Group(func(r chi.Router) {
		r.Use(s.requireBearer)
		r.Get("/cart", s.handleGetCart)
		r.Post("/cart", s.handleAddItem)
		r.Put("/cart/{itemID}", s.handleUpdateItem)
		r.Delete("/cart/{itemID}", s.handleDeleteItem)
	})

	s.httpSrv = httptest.NewServer(r)
	return s
}

func (s *Server) URL() string {
	return s.httpSrv.URL
}

func (s *Server) Close() {
	s.httpSrv.Close()
}

// FailNext makes the next cart request fail with the given status before
// touching any state.
func (s *Server) FailNext(status int, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failNext = &failure{status: status, message: message}
}

// Requests returns how many cart requests reached the server, letting tests
// assert that an operation made no network call.
func (s *Server) Requests() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.requests
}

func (s *Server) SeedProducts(products ...Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products = append(s.products, products...)
}

// SeedItem plants a cart row directly, bypassing the API.
func (s *Server) SeedItem(productID uuid.UUID, variantID *uuid.UUID, quantity int) uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()

	item := Item{
		ID:        uuid.New(),
		ProductID: productID,
		VariantID: variantID,
		Quantity:  quantity,
		AddedAt:   time.Now().UTC(),
	}
	s.items = append(s.items, item)
	return item.ID
}

func (s *Server) Items() []Item {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Item, len(s.items))
	copy(out, s.items)
	return out
}

func (s *Server) requireBearer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.requests++
		fail := s.failNext
		s.failNext = nil
		s.mu.Unlock()

		if fail != nil {
			writeError(w, fail.status, fail.message)
			return
		}

		auth := r.Header.Get("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") || strings.TrimPrefix(auth, "Bearer ") != s.token {
			writeError(w, http.StatusUnauthorized, "invalid credential")
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleGetCart(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	dtos := make([]itemJSON, 0, len(s.items))
	for _, item := range s.items {
		dtos = append(dtos, mapItem(item))
	}

	writeJSON(w, http.StatusOK, dtos)
}

func (s *Server) handleAddItem(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ProductID string  `json:"productId"`
		Quantity  int     `json:"quantity"`
		VariantID *string `json:"variantId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed body")
		return
	}

	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid product id")
		return
	}
	if req.Quantity < 1 {
		writeError(w, http.StatusBadRequest, "quantity must be at least 1")
		return
	}

	var variantID *uuid.UUID
	if req.VariantID != nil {
		parsed, err := uuid.Parse(*req.VariantID)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid variant id")
			return
		}
		variantID = &parsed
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.productExists(productID, variantID) {
		writeError(w, http.StatusNotFound, "product not found")
		return
	}

	// duplicate (product, variant) lines are appended, never merged
	item := Item{
		ID:        uuid.New(),
		ProductID: productID,
		VariantID: variantID,
		Quantity:  req.Quantity,
		AddedAt:   time.Now().UTC(),
	}
	s.items = append(s.items, item)

	writeJSON(w, http.StatusCreated, mapItem(item))
}

func (s *Server) handleUpdateItem(w http.ResponseWriter, r *http.Request) {
	itemID, err := uuid.Parse(chi.URLParam(r, "itemID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed body")
		return
	}
	if req.Quantity < 1 {
		writeError(w, http.StatusBadRequest, "quantity must be at least 1")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ID == itemID {
			s.items[i].Quantity = req.Quantity
			writeJSON(w, http.StatusOK, mapItem(s.items[i]))
			return
		}
	}

	writeError(w, http.StatusNotFound, "item not found")
}

func (s *Server) handleDeleteItem(w http.ResponseWriter, r *http.Request) {
	itemID, err := uuid.Parse(chi.URLParam(r, "itemID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i, item := range s.items {
		if item.ID == itemID {
			s.items = append(s.items[:i], s.items[i+1:]...)
			w.WriteHeader(http.StatusNoContent)
			return
		}
	}

	writeError(w, http.StatusNotFound, "item not found")
}

func (s *Server) handleListProducts(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	dtos := make([]productJSON, 0, len(s.products))
	for _, p := range s.products {
		dtos = append(dtos, mapProduct(p))
	}

	writeJSON(w, http.StatusOK, dtos)
}

func (s *Server) productExists(productID uuid.UUID, variantID *uuid.UUID) bool {
	for _, p := range s.products {
		if p.ID != productID {
			continue
		}
		if variantID == nil {
			return true
		}
		for _, v := range p.Variants {
			if v.ID == *variantID {
				return true
			}
		}
		return false
	}
	return false
}

type itemJSON struct {
	ID        string    `json:"id"`
	ProductID string    `json:"productId"`
	VariantID *string   `json:"variantId,omitempty"`
	Quantity  int       `json:"quantity"`
	AddedAt   time.Time `json:"addedAt"`
}

type productJSON struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	Currency  string        `json:"currency"`
	Price     string        `json:"price"`
	SalePrice *string       `json:"salePrice,omitempty"`
	Variants  []variantJSON `json:"variants,omitempty"`
	Active    bool          `json:"active"`
}

type variantJSON struct {
	ID        string  `json:"id"`
	Size      string  `json:"size,omitempty"`
	Price     string  `json:"price"`
	SalePrice *string `json:"salePrice,omitempty"`
}

func mapItem(item Item) itemJSON {
	dto := itemJSON{
		ID:        item.ID.String(),
		ProductID: item.ProductID.String(),
		Quantity:  item.Quantity,
		AddedAt:   item.AddedAt,
	}
	if item.VariantID != nil {
		s := item.VariantID.String()
		dto.VariantID = &s
	}
	return dto
}

func mapProduct(p Product) productJSON {
	dto := productJSON{
		ID:       p.ID.String(),
		Name:     p.Name,
		Currency: p.Currency,
		Price:    p.Price,
		Active:   p.Active,
	}
	if p.SalePrice != "" {
		sp := p.SalePrice
		dto.SalePrice = &sp
	}
	for _, v := range p.Variants {
		vdto := variantJSON{ID: v.ID.String(), Size: v.Size, Price: v.Price}
		if v.SalePrice != "" {
			sp := v.SalePrice
			vdto.SalePrice = &sp
		}
		dto.Variants = append(dto.Variants, vdto)
	}
	return dto
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
