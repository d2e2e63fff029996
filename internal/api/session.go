package api

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"github.com/google/uuid"

	"github.com/rasoilabs/menucart/internal/bus"
	"github.com/rasoilabs/menucart/internal/cart"
	"github.com/rasoilabs/menucart/internal/checkout"
	"github.com/rasoilabs/menucart/internal/gate"
	"github.com/rasoilabs/menucart/internal/handoff"
	"github.com/rasoilabs/menucart/internal/pending"
	"github.com/rasoilabs/menucart/internal/storage"
)

const sessionCookie = "menucart_session"

// Session is one browser's cart, pending-order tracker and checkout flow.
// Slot keys are namespaced per session so carts never bleed across devices.
type Session struct {
	ID      string
	Cart    *cart.Store
	Tracker *pending.Tracker
	Flow    *checkout.Flow
}

type SessionManager struct {
	mu       sync.Mutex
	sessions map[string]*Session

	slot           storage.SlotStore
	bus            *bus.Bus
	gate           *gate.Gate
	sender         handoff.Sender
	whatsappNumber string
	minimumOrder   float64
}

func NewSessionManager(slot storage.SlotStore, b *bus.Bus, g *gate.Gate, sender handoff.Sender, whatsappNumber string, minimumDeliveryOrder float64) *SessionManager {
	return &SessionManager{
		sessions:       make(map[string]*Session),
		slot:           slot,
		bus:            b,
		gate:           g,
		sender:         sender,
		whatsappNumber: whatsappNumber,
		minimumOrder:   minimumDeliveryOrder,
	}
}

// Get returns the session for the given ID, building it (and loading its
// persisted cart snapshot) on first sight.
func (m *SessionManager) Get(ctx context.Context, id string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if sess, ok := m.sessions[id]; ok {
		return sess, nil
	}

	cartStore, err := cart.New(ctx, fmt.Sprintf("cart:%s", id), m.slot, m.bus)
	if err != nil {
		return nil, err
	}
	tracker := pending.New(fmt.Sprintf("pending:%s", id), m.slot, cartStore, m.bus)
	flow := checkout.New(cartStore, m.gate, tracker, m.sender, m.whatsappNumber, m.minimumOrder)

	sess := &Session{ID: id, Cart: cartStore, Tracker: tracker, Flow: flow}
	m.sessions[id] = sess
	return sess, nil
}

// sessionID reads the session cookie, minting a new ID (and setting the
// cookie) when absent.
func sessionID(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(sessionCookie); err == nil && c.Value != "" {
		return c.Value
	}
	id := uuid.New().String()
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}
