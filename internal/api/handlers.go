// Package api exposes the cart, checkout and pending-order operations over
// HTTP. It is the service-side stand-in for the menu page's item controls
// and modals.
package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/rasoilabs/menucart/internal/cart"
	"github.com/rasoilabs/menucart/internal/checkout"
	"github.com/rasoilabs/menucart/internal/domain"
	"github.com/rasoilabs/menucart/internal/gate"
)

type Handler struct {
	sessions *SessionManager
	gate     *gate.Gate

	// business and menu stay nil when their fetch failed at startup; the
	// matching endpoints then answer 503 and everything else keeps working.
	business *domain.Business
	menu     *domain.Menu
}

func NewHandler(sessions *SessionManager, g *gate.Gate, business *domain.Business, menu *domain.Menu) *Handler {
	return &Handler{sessions: sessions, gate: g, business: business, menu: menu}
}

// Routes wires the full API surface onto a chi router.
func (h *Handler) Routes(timeout func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	if timeout != nil {
		r.Use(timeout)
	}
	r.Use(middleware.Compress(5))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/business", h.GetBusiness)
		r.Get("/menu", h.GetMenu)

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", h.GetCart)
			r.Post("/items", h.AddItem)
			r.Post("/items/decrement", h.DecrementItem)
			r.Put("/items/{index}", h.SetQuantity)
			r.Delete("/", h.ClearCart)
		})

		r.Post("/checkout", h.Checkout)
		r.Route("/orders", func(r chi.Router) {
			r.Post("/return", h.ReturnToApp)
			r.Post("/confirm", h.ConfirmOrder)
		})
	})

	return r
}

type itemRequestDTO struct {
	Name  string `json:"name"`
	Label string `json:"label,omitempty"`
}

type setQuantityRequestDTO struct {
	Quantity int `json:"quantity"`
}

type checkoutRequestDTO struct {
	OrderType       string `json:"order_type"`
	CustomerName    string `json:"customer_name"`
	DeliveryAddress string `json:"delivery_address,omitempty"`
}

type confirmRequestDTO struct {
	Sent bool `json:"sent"`
}

type cartResponseDTO struct {
	Items  []domain.LineItem `json:"items"`
	Totals domain.CartTotals `json:"totals"`
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func (h *Handler) GetBusiness(w http.ResponseWriter, r *http.Request) {
	if h.business == nil {
		respondError(w, http.StatusServiceUnavailable, "data_unavailable", "business data is not loaded")
		return
	}
	respondJSON(w, http.StatusOK, h.business)
}

func (h *Handler) GetMenu(w http.ResponseWriter, r *http.Request) {
	if h.menu == nil {
		respondError(w, http.StatusServiceUnavailable, "data_unavailable", "menu data is not loaded")
		return
	}
	respondJSON(w, http.StatusOK, h.menu)
}

func (h *Handler) GetCart(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	items := sess.Cart.Items()
	if items == nil {
		items = []domain.LineItem{}
	}
	respondJSON(w, http.StatusOK, cartResponseDTO{Items: items, Totals: sess.Cart.Totals()})
}

func (h *Handler) AddItem(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	var req itemRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.Name == "" {
		respondError(w, http.StatusBadRequest, "invalid_request", "name is required")
		return
	}
	if h.menu == nil {
		respondError(w, http.StatusServiceUnavailable, "data_unavailable", "menu data is not loaded")
		return
	}

	item, err := h.menu.FindItem(req.Name)
	if err != nil {
		respondError(w, http.StatusNotFound, "item_not_found", err.Error())
		return
	}
	price, err := item.ResolvePrice(req.Label)
	if err != nil {
		respondError(w, http.StatusUnprocessableEntity, "price_option_required", "please select a price option")
		return
	}

	err = h.gate.Run(func() error {
		return sess.Cart.Add(r.Context(), item.Name, price.Label, price.Price)
	})
	if err != nil {
		handleDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, cartResponseDTO{Items: sess.Cart.Items(), Totals: sess.Cart.Totals()})
}

func (h *Handler) DecrementItem(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	var req itemRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.Name == "" {
		respondError(w, http.StatusBadRequest, "invalid_request", "name is required")
		return
	}

	err := h.gate.Run(func() error {
		return sess.Cart.Decrement(r.Context(), req.Name, req.Label)
	})
	if err != nil {
		handleDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, cartResponseDTO{Items: sess.Cart.Items(), Totals: sess.Cart.Totals()})
}

func (h *Handler) SetQuantity(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil || index < 0 {
		respondError(w, http.StatusBadRequest, "invalid_index", "index must be a non-negative integer")
		return
	}

	var req setQuantityRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	err = h.gate.Run(func() error {
		return sess.Cart.SetQuantity(r.Context(), index, req.Quantity)
	})
	if err != nil {
		handleDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, cartResponseDTO{Items: sess.Cart.Items(), Totals: sess.Cart.Totals()})
}

func (h *Handler) ClearCart(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	if err := sess.Cart.Clear(r.Context()); err != nil {
		handleDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, cartResponseDTO{Items: []domain.LineItem{}, Totals: domain.CartTotals{}})
}

func (h *Handler) Checkout(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	var req checkoutRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	orderType, err := domain.ParseOrderType(req.OrderType)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_order_type", err.Error())
		return
	}

	flow := sess.Flow
	// A flow left over from an earlier attempt starts fresh.
	if flow.State() != checkout.StateIdle {
		flow.Cancel()
	}
	if err := flow.Begin(); err != nil {
		handleDomainError(w, err)
		return
	}
	if err := flow.SelectOrderType(orderType); err != nil {
		handleDomainError(w, err)
		return
	}
	flow.SetCustomerName(req.CustomerName)
	if orderType == domain.OrderTypeDelivery {
		flow.SetDeliveryAddress(req.DeliveryAddress)
	}

	link, err := flow.Submit(r.Context())
	if err != nil {
		flow.Cancel()
		handleDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusAccepted, map[string]string{"whatsapp_url": link})
}

func (h *Handler) ReturnToApp(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	prompt := sess.Tracker.OnReturnToApp(r.Context())
	respondJSON(w, http.StatusOK, map[string]bool{"prompt": prompt})
}

func (h *Handler) ConfirmOrder(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	var req confirmRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	if !req.Sent {
		sess.Tracker.ConfirmNotSent()
		respondJSON(w, http.StatusOK, map[string]string{"status": "kept"})
		return
	}

	if err := sess.Tracker.ConfirmSent(r.Context()); err != nil {
		handleDomainError(w, err)
		return
	}
	sess.Flow.Cancel()
	respondJSON(w, http.StatusOK, map[string]string{"status": "confirmed"})
}

func (h *Handler) session(w http.ResponseWriter, r *http.Request) (*Session, bool) {
	id := sessionID(w, r)
	sess, err := h.sessions.Get(r.Context(), id)
	if err != nil {
		log.Printf("failed to open session %s: %v", id, err)
		respondError(w, http.StatusInternalServerError, "internal_error", "internal server error")
		return nil, false
	}
	return sess, true
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, errorResponse{Error: message, Code: code})
}

// handleDomainError maps core errors onto HTTP statuses and stable codes.
func handleDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, gate.ErrClosed):
		respondError(w, http.StatusConflict, "restaurant_closed", err.Error())
	case errors.Is(err, checkout.ErrEmptyCart):
		respondError(w, http.StatusUnprocessableEntity, "empty_cart", err.Error())
	case errors.Is(err, checkout.ErrInvalidTotal):
		respondError(w, http.StatusUnprocessableEntity, "invalid_total", err.Error())
	case errors.Is(err, checkout.ErrMissingName):
		respondError(w, http.StatusUnprocessableEntity, "missing_name", err.Error())
	case errors.Is(err, checkout.ErrBelowMinimum):
		respondError(w, http.StatusUnprocessableEntity, "below_minimum", err.Error())
	case errors.Is(err, checkout.ErrMissingAddress):
		respondError(w, http.StatusUnprocessableEntity, "missing_address", err.Error())
	case errors.Is(err, domain.ErrMissingPriceSelection):
		respondError(w, http.StatusUnprocessableEntity, "price_option_required", err.Error())
	case errors.Is(err, cart.ErrIndexOutOfRange):
		respondError(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, checkout.ErrIllegalTransition):
		respondError(w, http.StatusConflict, "illegal_transition", err.Error())
	default:
		log.Printf("unhandled error: %v", err)
		respondError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}
