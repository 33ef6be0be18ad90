// Package session gives the customer context an explicit identity and
// cart with defined creation (login) and teardown (logout) boundaries,
// instead of process-wide mutable state.
package session

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"leaf-and-fork/internal/app/catalog"
	"leaf-and-fork/internal/domain"

	"github.com/google/uuid"
)

var ErrSessionNotFound = errors.New("session not found")

type Session struct {
	ID        string
	Customer  domain.Customer
	Cart      []domain.OrderItem
	CreatedAt time.Time
}

type Manager struct {
	catalog *catalog.Catalog

	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewManager(cat *catalog.Catalog) *Manager {
	return &Manager{
		catalog:  cat,
		sessions: make(map[string]*Session),
	}
}

// Login opens a session for a customer.
func (m *Manager) Login(customer domain.Customer) (*Session, error) {
	if err := customer.Validate(); err != nil {
		return nil, err
	}

	s := &Session{
		ID:        uuid.NewString(),
		Customer:  customer,
		CreatedAt: time.Now().UTC(),
	}

	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()

	return s, nil
}

// Get returns a snapshot of the session. Callers never see the live
// cart slice, so a concurrent AddItem cannot race with their reads.
func (m *Manager) Get(id string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	return s.snapshot(), nil
}

func (s *Session) snapshot() *Session {
	out := *s
	out.Cart = append([]domain.OrderItem(nil), s.Cart...)
	return &out
}

// Logout tears the session down. Unknown ids are a no-op.
func (m *Manager) Logout(id string) {
	m.mu.Lock()
	delete(m.sessions, id)
	m.mu.Unlock()
}

// AddItem prices a menu item from the catalog and puts it in the cart.
// Adding the same item again bumps its quantity.
func (m *Manager) AddItem(sessionID string, menuItemID, quantity int) error {
	if quantity < 1 {
		return fmt.Errorf("%w: quantity must be at least 1", domain.ErrValidation)
	}

	item, err := m.catalog.Get(menuItemID)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[sessionID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, sessionID)
	}

	for i := range s.Cart {
		if s.Cart[i].MenuItemID == menuItemID {
			s.Cart[i].Quantity += quantity
			return nil
		}
	}

	s.Cart = append(s.Cart, domain.OrderItem{
		MenuItemID:   item.ID,
		Name:         item.Name,
		UnitPrice:    item.Price,
		UnitCalories: item.Calories,
		Quantity:     quantity,
		KitchenID:    item.Kitchen,
	})
	return nil
}

// ClearCart empties the cart, typically after a successful checkout.
func (m *Manager) ClearCart(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s, ok := m.sessions[sessionID]; ok {
		s.Cart = nil
	}
}
