package service

import (
	"context"
	"regexp"
	"sync"

	"chopengine/internal/apierror"
	"chopengine/internal/dto"
	"chopengine/internal/ledger"
	"chopengine/internal/pricing"
	"chopengine/internal/repository"

	"github.com/shopspring/decimal"
)

// LedgerService owns the per-session quantity ledgers. Every operation loads
// the ledger, applies one change and saves it while holding that session's
// lock, so concurrent requests for one till never interleave.
type LedgerService interface {
	Get(ctx context.Context, sessionID string, deliveryFee decimal.Decimal) (*dto.LedgerResponse, error)
	AddItem(ctx context.Context, sessionID string, req dto.AddLedgerItemRequest) (*dto.LedgerResponse, error)
	Increment(ctx context.Context, sessionID, category, id string) (*dto.LedgerResponse, error)
	Decrement(ctx context.Context, sessionID, category, id string) (*dto.LedgerResponse, error)
	RemoveItem(ctx context.Context, sessionID, category, id string) (*dto.LedgerResponse, error)
	Clear(ctx context.Context, sessionID string) error
	// Update runs fn under the session lock and saves the ledger only when
	// fn returns nil.
	Update(ctx context.Context, sessionID string, fn func(l *ledger.Ledger) error) error
}

type ledgerService struct {
	store          repository.LedgerStore
	rules          pricing.Rules
	bulkInitialQty int
	locks          *keyedMutex
}

func NewLedgerService(store repository.LedgerStore, rules pricing.Rules, bulkInitialQty int) LedgerService {
	return &ledgerService{
		store:          store,
		rules:          rules,
		bulkInitialQty: bulkInitialQty,
		locks:          newKeyedMutex(),
	}
}

var sessionIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

func validateSession(sessionID string) error {
	if !sessionIDPattern.MatchString(sessionID) {
		return apierror.Invalid("session", "session id must be 1-64 letters, digits, '-' or '_'")
	}
	return nil
}

func (s *ledgerService) Update(ctx context.Context, sessionID string, fn func(l *ledger.Ledger) error) error {
	if err := validateSession(sessionID); err != nil {
		return err
	}
	unlock := s.locks.Lock(sessionID)
	defer unlock()

	entries, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return err
	}
	l := ledger.Restore(s.bulkInitialQty, entries)
	if err := fn(l); err != nil {
		return err
	}
	return s.store.Save(ctx, sessionID, l.Entries())
}

// mutate applies fn and renders the resulting ledger without a delivery fee.
func (s *ledgerService) mutate(ctx context.Context, sessionID string, fn func(l *ledger.Ledger) error) (*dto.LedgerResponse, error) {
	var resp *dto.LedgerResponse
	err := s.Update(ctx, sessionID, func(l *ledger.Ledger) error {
		if err := fn(l); err != nil {
			return err
		}
		resp = s.render(sessionID, l.Entries(), decimal.Zero)
		return nil
	})
	return resp, err
}

func (s *ledgerService) Get(ctx context.Context, sessionID string, deliveryFee decimal.Decimal) (*dto.LedgerResponse, error) {
	if err := validateSession(sessionID); err != nil {
		return nil, err
	}
	unlock := s.locks.Lock(sessionID)
	defer unlock()

	entries, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	l := ledger.Restore(s.bulkInitialQty, entries)
	return s.render(sessionID, l.Entries(), deliveryFee), nil
}

func (s *ledgerService) AddItem(ctx context.Context, sessionID string, req dto.AddLedgerItemRequest) (*dto.LedgerResponse, error) {
	cat, ok := ledger.ParseCategory(req.Category)
	if !ok {
		return nil, apierror.Invalid("category", "category must be one of food, protein, drink")
	}
	item := ledger.Item{
		ID:        req.ID,
		Category:  cat,
		Name:      req.Name,
		UnitPrice: req.UnitPrice,
		IsDrink:   req.IsDrink,
		Bulk:      req.Bulk,
	}
	return s.mutate(ctx, sessionID, func(l *ledger.Ledger) error {
		_, err := l.AddItem(item)
		return err
	})
}

func (s *ledgerService) Increment(ctx context.Context, sessionID, category, id string) (*dto.LedgerResponse, error) {
	cat, err := parseCategory(category)
	if err != nil {
		return nil, err
	}
	return s.mutate(ctx, sessionID, func(l *ledger.Ledger) error {
		_, err := l.Increment(id, cat)
		return err
	})
}

func (s *ledgerService) Decrement(ctx context.Context, sessionID, category, id string) (*dto.LedgerResponse, error) {
	cat, err := parseCategory(category)
	if err != nil {
		return nil, err
	}
	return s.mutate(ctx, sessionID, func(l *ledger.Ledger) error {
		_, err := l.Decrement(id, cat)
		return err
	})
}

func (s *ledgerService) RemoveItem(ctx context.Context, sessionID, category, id string) (*dto.LedgerResponse, error) {
	cat, err := parseCategory(category)
	if err != nil {
		return nil, err
	}
	return s.mutate(ctx, sessionID, func(l *ledger.Ledger) error {
		return l.RemoveItem(id, cat)
	})
}

func (s *ledgerService) Clear(ctx context.Context, sessionID string) error {
	if err := validateSession(sessionID); err != nil {
		return err
	}
	unlock := s.locks.Lock(sessionID)
	defer unlock()
	return s.store.Delete(ctx, sessionID)
}

func parseCategory(raw string) (ledger.Category, error) {
	cat, ok := ledger.ParseCategory(raw)
	if !ok {
		return "", apierror.Invalid("category", "category must be one of food, protein, drink")
	}
	return cat, nil
}

func (s *ledgerService) render(sessionID string, entries []ledger.Entry, deliveryFee decimal.Decimal) *dto.LedgerResponse {
	resp := &dto.LedgerResponse{
		SessionID: sessionID,
		Entries:   make([]dto.LedgerEntryResponse, 0, len(entries)),
		Totals:    pricing.Calculate(entries, s.rules.WithDeliveryFee(deliveryFee)),
	}
	for _, e := range entries {
		resp.Entries = append(resp.Entries, dto.LedgerEntryResponse{
			ID:        e.ID,
			Category:  string(e.Category),
			Name:      e.Name,
			UnitPrice: e.UnitPrice,
			IsDrink:   e.IsDrink,
			Bulk:      e.Bulk,
			Count:     e.Count,
			Unit:      ledger.UnitLabel(e.Category),
			LineTotal: e.LineTotal(),
		})
	}
	return resp
}

// ── keyedMutex ────────────────────────────────────────────────────────────────

// keyedMutex hands out one mutex per key and forgets it once nobody holds or
// waits for it.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*refLock
}

type refLock struct {
	mu   sync.Mutex
	refs int
}

func newKeyedMutex() *keyedMutex {
	return &keyedMutex{locks: make(map[string]*refLock)}
}

func (k *keyedMutex) Lock(key string) (unlock func()) {
	k.mu.Lock()
	l, ok := k.locks[key]
	if !ok {
		l = &refLock{}
		k.locks[key] = l
	}
	l.refs++
	k.mu.Unlock()

	l.mu.Lock()
	return func() {
		l.mu.Unlock()
		k.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(k.locks, key)
		}
		k.mu.Unlock()
	}
}
