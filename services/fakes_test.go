package services

import (
	"context"
	"sync"
	"time"

	apperrors "stayhub/errors"
	"stayhub/models"
	"stayhub/services/notification"
)

// memReservationStore is an in-memory ReservationStore that mirrors the
// repository's half-open overlap semantics.
type memReservationStore struct {
	mu     sync.Mutex
	nextID uint
	rows   map[uint]*models.Reservation
}

func newMemReservationStore() *memReservationStore {
	return &memReservationStore{nextID: 1, rows: make(map[uint]*models.Reservation)}
}

func copyReservation(r *models.Reservation) *models.Reservation {
	cp := *r
	cp.Lines = append([]models.RoomLine(nil), r.Lines...)
	return &cp
}

func (s *memReservationStore) FindOverlapping(_ context.Context, roomIDs []uint, from, to time.Time, blocking []models.ReservationState) (map[uint]bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	blockingSet := make(map[models.ReservationState]bool, len(blocking))
	for _, st := range blocking {
		blockingSet[st] = true
	}
	requested := make(map[uint]bool, len(roomIDs))
	for _, id := range roomIDs {
		requested[id] = true
	}

	blocked := make(map[uint]bool)
	for _, r := range s.rows {
		if !blockingSet[r.Status] {
			continue
		}
		if !(r.CheckInDate.Before(to) && r.CheckOutDate.After(from)) {
			continue
		}
		for _, line := range r.Lines {
			if requested[line.RoomID] {
				blocked[line.RoomID] = true
			}
		}
	}
	return blocked, nil
}

func (s *memReservationStore) Save(_ context.Context, r *models.Reservation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if r.ID == 0 {
		r.ID = s.nextID
		s.nextID++
		for i := range r.Lines {
			r.Lines[i].ReservationID = r.ID
		}
	}
	s.rows[r.ID] = copyReservation(r)
	return nil
}

func (s *memReservationStore) Load(_ context.Context, id uint) (*models.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.rows[id]
	if !ok {
		return nil, apperrors.NewAppError(apperrors.ErrCodeReservationNotFound,
			"reservation not found", apperrors.ErrReservationNotFound)
	}
	return copyReservation(r), nil
}

func (s *memReservationStore) LoadForUpdate(ctx context.Context, id uint) (*models.Reservation, error) {
	return s.Load(ctx, id)
}

func (s *memReservationStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.rows)
}

// memPaymentStore is an in-memory PaymentStore
type memPaymentStore struct {
	mu     sync.Mutex
	nextID uint
	rows   map[uint]*models.Payment
}

func newMemPaymentStore() *memPaymentStore {
	return &memPaymentStore{nextID: 1, rows: make(map[uint]*models.Payment)}
}

func (s *memPaymentStore) Load(_ context.Context, id uint) (*models.Payment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.rows[id]
	if !ok {
		return nil, apperrors.NewAppError(apperrors.ErrCodePaymentNotFound,
			"payment not found", apperrors.ErrPaymentNotFound)
	}
	cp := *p
	return &cp, nil
}

func (s *memPaymentStore) LoadForUpdate(ctx context.Context, id uint) (*models.Payment, error) {
	return s.Load(ctx, id)
}

func (s *memPaymentStore) Save(_ context.Context, p *models.Payment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.ID == 0 {
		p.ID = s.nextID
		s.nextID++
	} else if stored, ok := s.rows[p.ID]; ok {
		if err := models.EnsureAmountImmutable(stored, p); err != nil {
			return err
		}
	}
	cp := *p
	s.rows[p.ID] = &cp
	return nil
}

func (s *memPaymentStore) FindStale(_ context.Context, state models.PaymentState, cutoff time.Time) ([]models.Payment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var stale []models.Payment
	for _, p := range s.rows {
		if p.Status == state && p.UpdatedAt.Before(cutoff) {
			stale = append(stale, *p)
		}
	}
	return stale, nil
}

// fakeRoomCatalog serves rooms from a map
type fakeRoomCatalog struct {
	rooms map[uint]models.Room
}

func (f *fakeRoomCatalog) GetPricingProfile(_ context.Context, roomID uint) (models.PricingProfile, error) {
	room, ok := f.rooms[roomID]
	if !ok {
		return models.PricingProfile{}, apperrors.NewAppError(apperrors.ErrCodeRoomNotFound,
			"room not found", apperrors.ErrRoomNotFound)
	}
	return room.PricingProfile(), nil
}

func (f *fakeRoomCatalog) GetRoomsForUpdate(_ context.Context, roomIDs []uint) ([]models.Room, error) {
	var out []models.Room
	for _, id := range roomIDs {
		if room, ok := f.rooms[id]; ok {
			out = append(out, room)
		}
	}
	return out, nil
}

func (f *fakeRoomCatalog) Exists(_ context.Context, roomID uint) (bool, error) {
	_, ok := f.rooms[roomID]
	return ok, nil
}

// fakeLodgingCatalog serves lodgings from a map
type fakeLodgingCatalog struct {
	lodgings map[uint]models.Lodging
}

func (f *fakeLodgingCatalog) Exists(_ context.Context, id uint) (bool, error) {
	_, ok := f.lodgings[id]
	return ok, nil
}

func (f *fakeLodgingCatalog) Load(_ context.Context, id uint) (*models.Lodging, error) {
	lodging, ok := f.lodgings[id]
	if !ok {
		return nil, apperrors.NewAppError(apperrors.ErrCodeLodgingNotFound,
			"lodging not found", apperrors.ErrLodgingNotFound)
	}
	return &lodging, nil
}

// fakeCardStore serves card records from a map
type fakeCardStore struct {
	cards map[uint]models.Card
}

func (f *fakeCardStore) Load(_ context.Context, id uint) (*models.Card, error) {
	card, ok := f.cards[id]
	if !ok {
		return nil, apperrors.NewAppError(apperrors.ErrCodeNotFound,
			"card not found", apperrors.ErrCardNotFound)
	}
	return &card, nil
}

// fakeTxManager serializes units of work with one big lock, standing in
// for the row locks and serializable isolation of the real manager
type fakeTxManager struct {
	mu sync.Mutex
}

func (m *fakeTxManager) WithinTransaction(ctx context.Context, fn func(txCtx context.Context) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return fn(ctx)
}

// captureSink records every delivered notification event
type captureSink struct {
	mu     sync.Mutex
	events []notification.Event
}

func (s *captureSink) Send(event notification.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	return nil
}

func (s *captureSink) kinds() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.events))
	for _, e := range s.events {
		out = append(out, e.Kind)
	}
	return out
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
