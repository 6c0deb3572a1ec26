package service

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/IlTetta/CoWorkSpace-sub001/internal/booking"
	"github.com/IlTetta/CoWorkSpace-sub001/internal/model"
	"github.com/IlTetta/CoWorkSpace-sub001/internal/queue"
	"github.com/IlTetta/CoWorkSpace-sub001/internal/repository"
)

// memStore is an in-memory ReservationStore.  A failed transaction
// restores the reservations it started with.
type memStore struct {
	locations    map[uint64]*model.Location
	spaces       map[uint64]*model.Space
	reservations map[uint64]model.Reservation
	nextID       uint64
}

func newMemStore() *memStore {
	return &memStore{
		locations:    map[uint64]*model.Location{},
		spaces:       map[uint64]*model.Space{},
		reservations: map[uint64]model.Reservation{},
		nextID:       1,
	}
}

func (m *memStore) RunInTx(ctx context.Context, fn func(ctx context.Context, tx ReservationTx) error) error {
	snapshot := make(map[uint64]model.Reservation, len(m.reservations))
	for k, v := range m.reservations {
		snapshot[k] = v
	}
	next := m.nextID
	if err := fn(ctx, memTx{m}); err != nil {
		m.reservations, m.nextID = snapshot, next
		return err
	}
	return nil
}

func (m *memStore) GetLocation(_ context.Context, id uint64) (*model.Location, error) {
	l, ok := m.locations[id]
	if !ok {
		return nil, repository.ErrLocationNotFound
	}
	cp := *l
	return &cp, nil
}

func (m *memStore) GetSpace(_ context.Context, id uint64) (*model.Space, error) {
	sp, ok := m.spaces[id]
	if !ok {
		return nil, repository.ErrSpaceNotFound
	}
	cp := *sp
	return &cp, nil
}

func (m *memStore) GetReservation(_ context.Context, id uint64) (*model.Reservation, error) {
	r, ok := m.reservations[id]
	if !ok {
		return nil, repository.ErrReservationNotFound
	}
	return &r, nil
}

func (m *memStore) ListLiveReservations(_ context.Context, spaceID uint64, from, to time.Time) ([]model.Reservation, error) {
	return m.filter(func(r model.Reservation) bool {
		return r.SpaceID == spaceID && r.Status != string(booking.StatusCancelled) &&
			r.StartTime.Before(to) && r.EndTime.After(from)
	}), nil
}

func (m *memStore) ListUserReservations(_ context.Context, userID uint64) ([]model.Reservation, error) {
	return m.filter(func(r model.Reservation) bool { return r.UserID == userID }), nil
}

func (m *memStore) ListSpaceReservations(_ context.Context, spaceID uint64) ([]model.Reservation, error) {
	return m.filter(func(r model.Reservation) bool { return r.SpaceID == spaceID }), nil
}

func (m *memStore) ListCompletable(_ context.Context, before time.Time, limit int) ([]model.Reservation, error) {
	out := m.filter(func(r model.Reservation) bool {
		return r.Status == string(booking.StatusConfirmed) && r.EndTime.Before(before)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *memStore) filter(keep func(model.Reservation) bool) []model.Reservation {
	var out []model.Reservation
	for _, r := range m.reservations {
		if keep(r) {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

type memTx struct{ m *memStore }

func (t memTx) LockSpace(ctx context.Context, id uint64) (*model.Space, error) {
	return t.m.GetSpace(ctx, id)
}

func (t memTx) GetReservationForUpdate(ctx context.Context, id uint64) (*model.Reservation, error) {
	return t.m.GetReservation(ctx, id)
}

func (t memTx) ListLiveReservations(ctx context.Context, spaceID uint64, from, to time.Time) ([]model.Reservation, error) {
	return t.m.ListLiveReservations(ctx, spaceID, from, to)
}

func (t memTx) CreateReservation(_ context.Context, r *model.Reservation) error {
	r.ID = t.m.nextID
	t.m.nextID++
	r.CreatedAt, r.UpdatedAt = now, now
	t.m.reservations[r.ID] = *r
	return nil
}

func (t memTx) UpdateReservation(_ context.Context, r *model.Reservation) error {
	if _, ok := t.m.reservations[r.ID]; !ok {
		return repository.ErrReservationNotFound
	}
	t.m.reservations[r.ID] = *r
	return nil
}

type mockPublisher struct{ mock.Mock }

func (p *mockPublisher) PublishReservation(ctx context.Context, ev queue.ReservationEvent) error {
	return p.Called(ctx, ev).Error(0)
}

type mockInvalidator struct{ mock.Mock }

func (c *mockInvalidator) InvalidateSpace(ctx context.Context, spaceID uint64) error {
	return c.Called(ctx, spaceID).Error(0)
}

// Saturday 2025-03-01 08:00; 2025-03-03 is a Monday.
var now = time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)

var (
	customer     = Actor{UserID: 100, Role: model.RoleCustomer}
	otherUser    = Actor{UserID: 101, Role: model.RoleCustomer}
	manager      = Actor{UserID: 10, Role: model.RoleManager}
	otherManager = Actor{UserID: 11, Role: model.RoleManager}
	admin        = Actor{UserID: 1, Role: model.RoleAdmin}
)

func at(s string) time.Time {
	t, err := booking.ParseDateTime(s)
	if err != nil {
		panic(err)
	}
	return t
}

func iv(start, end string) booking.Interval {
	return booking.Interval{Start: at(start), End: at(end)}
}

type fixture struct {
	store *memStore
	pub   *mockPublisher
	cache *mockInvalidator
	svc   *ReservationService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	st := newMemStore()
	st.locations[1] = &model.Location{ID: 1, ManagerID: manager.UserID, Name: "Centro", Address: "Via Roma 1"}
	st.spaces[1] = &model.Space{
		ID: 1, LocationID: 1, Name: "Room A", Capacity: 6,
		OpeningTime: "09:00", ClosingTime: "18:00", AvailableDays: "1,2,3,4,5",
		MinBookingHours: 1, MaxBookingHours: 8, MaxAdvanceDays: 30,
		PricePerHour: 10, PricePerDay: 70, Status: "active",
	}

	pub := &mockPublisher{}
	pub.On("PublishReservation", mock.Anything, mock.Anything).Return(nil).Maybe()
	cache := &mockInvalidator{}
	cache.On("InvalidateSpace", mock.Anything, uint64(1)).Return(nil).Maybe()

	svc := NewReservationService(st, pub, cache, func() time.Time { return now }, 60)
	return &fixture{store: st, pub: pub, cache: cache, svc: svc}
}

func (f *fixture) book(t *testing.T, actor Actor, start, end string) *model.Reservation {
	t.Helper()
	r, err := f.svc.CreateReservation(context.Background(), actor, CreateInput{SpaceID: 1, Interval: iv(start, end)})
	require.NoError(t, err)
	return r
}

func (f *fixture) published(typ string) int {
	n := 0
	for _, c := range f.pub.Calls {
		if ev, ok := c.Arguments.Get(1).(queue.ReservationEvent); ok && ev.Type == typ {
			n++
		}
	}
	return n
}

func TestCreateReservation(t *testing.T) {
	f := newFixture(t)
	r := f.book(t, customer, "2025-03-03 10:00:00", "2025-03-03 12:00:00")

	assert.Equal(t, uint64(1), r.ID)
	assert.Equal(t, customer.UserID, r.UserID)
	assert.Equal(t, "pending", r.Status)
	assert.Equal(t, "pending", r.PaymentStatus)
	assert.Equal(t, 2.0, r.TotalHours)
	assert.Equal(t, 20.0, r.TotalPrice)
	assert.Equal(t, 1, f.published(queue.EventReservationCreated))
	f.cache.AssertCalled(t, "InvalidateSpace", mock.Anything, uint64(1))
}

func TestCreateReservation_OverlapIsConflict(t *testing.T) {
	f := newFixture(t)
	first := f.book(t, customer, "2025-03-03 10:00:00", "2025-03-03 12:00:00")

	_, err := f.svc.CreateReservation(context.Background(), otherUser,
		CreateInput{SpaceID: 1, Interval: iv("2025-03-03 11:00:00", "2025-03-03 13:00:00")})
	require.Error(t, err)
	var be *booking.Error
	require.ErrorAs(t, err, &be)
	assert.Equal(t, booking.KindConflict, be.Kind)
	assert.Equal(t, []uint64{first.ID}, be.ConflictIDs)
	assert.Len(t, f.store.reservations, 1)

	// Back to back is fine.
	f.book(t, otherUser, "2025-03-03 12:00:00", "2025-03-03 13:00:00")
}

func TestCreateReservation_CancelledDoesNotBlock(t *testing.T) {
	f := newFixture(t)
	first := f.book(t, customer, "2025-03-03 10:00:00", "2025-03-03 12:00:00")
	_, err := f.svc.CancelReservation(context.Background(), customer, first.ID)
	require.NoError(t, err)

	f.book(t, otherUser, "2025-03-03 10:00:00", "2025-03-03 12:00:00")
}

func TestCreateReservation_PolicyViolation(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.CreateReservation(context.Background(), customer,
		CreateInput{SpaceID: 1, Interval: iv("2025-03-08 10:00:00", "2025-03-08 11:00:00")})

	var be *booking.Error
	require.ErrorAs(t, err, &be)
	assert.Equal(t, booking.KindPolicyViolation, be.Kind)
	require.Len(t, be.Violations, 1)
	assert.Equal(t, booking.DayNotAvailable, be.Violations[0].Code)
	assert.Equal(t, 0, f.published(queue.EventReservationCreated))
}

func TestCreateReservation_InputErrors(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.CreateReservation(ctx, customer, CreateInput{SpaceID: 1, Interval: iv("2025-03-03 12:00:00", "2025-03-03 12:00:00")})
	assert.True(t, booking.IsKind(err, booking.KindValidation))

	_, err = f.svc.CreateReservation(ctx, customer, CreateInput{SpaceID: 9, Interval: iv("2025-03-03 10:00:00", "2025-03-03 12:00:00")})
	assert.True(t, booking.IsKind(err, booking.KindNotFound))

	_, err = f.svc.CreateReservation(ctx, customer, CreateInput{SpaceID: 1, UserID: 55, Interval: iv("2025-03-03 10:00:00", "2025-03-03 12:00:00")})
	assert.ErrorIs(t, err, repository.ErrForbidden)
}

func TestCreateReservation_SuppliedPrice(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	price := 5.555

	r, err := f.svc.CreateReservation(ctx, customer, CreateInput{SpaceID: 1, Price: &price, Interval: iv("2025-03-03 10:00:00", "2025-03-03 12:00:00")})
	require.NoError(t, err)
	assert.Equal(t, 20.0, r.TotalPrice)

	r, err = f.svc.CreateReservation(ctx, manager, CreateInput{SpaceID: 1, Price: &price, UserID: customer.UserID, Interval: iv("2025-03-04 10:00:00", "2025-03-04 12:00:00")})
	require.NoError(t, err)
	assert.Equal(t, 5.56, r.TotalPrice)
	assert.Equal(t, customer.UserID, r.UserID)
}

func TestCreateReservation_PrivilegeIsPerLocation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	price := 0.01
	in := CreateInput{SpaceID: 1, Price: &price, UserID: customer.UserID, Interval: iv("2025-03-03 10:00:00", "2025-03-03 12:00:00")}

	_, err := f.svc.CreateReservation(ctx, otherManager, in)
	assert.ErrorIs(t, err, repository.ErrForbidden)
	assert.Empty(t, f.store.reservations)

	// Booking for themselves at another site, the price override is ignored.
	r, err := f.svc.CreateReservation(ctx, otherManager, CreateInput{SpaceID: 1, Price: &price, Interval: in.Interval})
	require.NoError(t, err)
	assert.Equal(t, otherManager.UserID, r.UserID)
	assert.Equal(t, 20.0, r.TotalPrice)

	in.Interval = iv("2025-03-04 10:00:00", "2025-03-04 12:00:00")
	r, err = f.svc.CreateReservation(ctx, admin, in)
	require.NoError(t, err)
	assert.Equal(t, customer.UserID, r.UserID)
	assert.Equal(t, 0.01, r.TotalPrice)

	zero := 0.0
	in.Price = &zero
	in.Interval = iv("2025-03-05 10:00:00", "2025-03-05 12:00:00")
	_, err = f.svc.CreateReservation(ctx, manager, in)
	assert.True(t, booking.IsKind(err, booking.KindValidation))
}

func TestUpdateReservation_RescheduleExcludesItself(t *testing.T) {
	f := newFixture(t)
	r := f.book(t, customer, "2025-03-03 10:00:00", "2025-03-03 12:00:00")
	f.book(t, otherUser, "2025-03-03 14:00:00", "2025-03-03 15:00:00")

	next := iv("2025-03-03 11:00:00", "2025-03-03 14:00:00")
	notes := "  window seat "
	got, err := f.svc.UpdateReservation(context.Background(), customer, r.ID, UpdateInput{Interval: &next, Notes: &notes})
	require.NoError(t, err)
	assert.Equal(t, next.Start, got.StartTime)
	assert.Equal(t, 3.0, got.TotalHours)
	assert.Equal(t, 30.0, got.TotalPrice)
	require.NotNil(t, got.Notes)
	assert.Equal(t, "window seat", *got.Notes)
	assert.Equal(t, 1, f.published(queue.EventReservationUpdated))

	clash := iv("2025-03-03 13:00:00", "2025-03-03 15:00:00")
	_, err = f.svc.UpdateReservation(context.Background(), customer, r.ID, UpdateInput{Interval: &clash})
	assert.True(t, booking.IsKind(err, booking.KindConflict))
	assert.Equal(t, next.End, f.store.reservations[r.ID].EndTime)
}

func TestUpdateReservation_ConfirmedRules(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	r := f.book(t, customer, "2025-03-03 10:00:00", "2025-03-03 12:00:00")
	_, err := f.svc.ApplyPaymentEvent(ctx, r.ID, booking.PaymentEvent{Status: booking.PaymentPaid, Reference: "pay_1"})
	require.NoError(t, err)

	notes := "late arrival"
	_, err = f.svc.UpdateReservation(ctx, customer, r.ID, UpdateInput{Notes: &notes})
	assert.True(t, booking.IsKind(err, booking.KindIllegalTransition))

	next := iv("2025-03-03 13:00:00", "2025-03-03 15:00:00")
	_, err = f.svc.UpdateReservation(ctx, customer, r.ID, UpdateInput{Interval: &next, Cancel: true})
	assert.True(t, booking.IsKind(err, booking.KindValidation))

	got, err := f.svc.UpdateReservation(ctx, manager, r.ID, UpdateInput{Interval: &next})
	require.NoError(t, err)
	assert.Equal(t, "confirmed", got.Status)
	assert.Equal(t, next.Start, got.StartTime)

	got, err = f.svc.CancelReservation(ctx, customer, r.ID)
	require.NoError(t, err)
	assert.Equal(t, "cancelled", got.Status)
	assert.Equal(t, "paid", got.PaymentStatus)

	_, err = f.svc.CancelReservation(ctx, customer, r.ID)
	assert.True(t, booking.IsKind(err, booking.KindIllegalTransition))
}

func TestReservationAccess(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	r := f.book(t, customer, "2025-03-03 10:00:00", "2025-03-03 12:00:00")

	_, err := f.svc.GetReservation(ctx, otherUser, r.ID)
	assert.True(t, booking.IsKind(err, booking.KindNotFound))
	_, err = f.svc.CancelReservation(ctx, otherManager, r.ID)
	assert.True(t, booking.IsKind(err, booking.KindNotFound))

	for _, a := range []Actor{customer, manager, admin} {
		got, err := f.svc.GetReservation(ctx, a, r.ID)
		require.NoError(t, err)
		assert.Equal(t, r.ID, got.ID)
	}

	_, err = f.svc.ListSpaceReservations(ctx, otherManager, 1)
	assert.ErrorIs(t, err, repository.ErrForbidden)
	list, err := f.svc.ListSpaceReservations(ctx, manager, 1)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	mine, err := f.svc.ListMyReservations(ctx, otherUser)
	require.NoError(t, err)
	assert.Empty(t, mine)
}

func TestApplyPaymentEvent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	r := f.book(t, customer, "2025-03-03 10:00:00", "2025-03-03 12:00:00")
	paid := booking.PaymentEvent{Status: booking.PaymentPaid, Reference: "pay_1"}

	got, err := f.svc.ApplyPaymentEvent(ctx, r.ID, paid)
	require.NoError(t, err)
	assert.Equal(t, "confirmed", got.Status)
	assert.Equal(t, "paid", got.PaymentStatus)
	require.NotNil(t, got.PaymentRef)
	assert.Equal(t, "pay_1", *got.PaymentRef)

	// Redelivery changes nothing and publishes nothing.
	_, err = f.svc.ApplyPaymentEvent(ctx, r.ID, paid)
	require.NoError(t, err)
	assert.Equal(t, 1, f.published(queue.EventReservationConfirmed))

	_, err = f.svc.ApplyPaymentEvent(ctx, r.ID, booking.PaymentEvent{Status: booking.PaymentPaid, Reference: "pay_2"})
	assert.True(t, booking.IsKind(err, booking.KindConflict))

	got, err = f.svc.ApplyPaymentEvent(ctx, r.ID, booking.PaymentEvent{Status: booking.PaymentRefunded, Reference: "pay_1"})
	require.NoError(t, err)
	assert.Equal(t, "cancelled", got.Status)
	assert.Equal(t, "refunded", got.PaymentStatus)
	assert.Equal(t, 1, f.published(queue.EventReservationCancelled))

	_, err = f.svc.ApplyPaymentEvent(ctx, 99, paid)
	assert.True(t, booking.IsKind(err, booking.KindNotFound))
}

func TestRecordPayment(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	r := f.book(t, customer, "2025-03-03 10:00:00", "2025-03-03 12:00:00")
	paid := booking.PaymentEvent{Status: booking.PaymentPaid, Reference: "pay_1"}

	_, err := f.svc.RecordPayment(ctx, otherManager, r.ID, paid)
	assert.True(t, booking.IsKind(err, booking.KindNotFound))
	_, err = f.svc.RecordPayment(ctx, customer, r.ID, paid)
	assert.ErrorIs(t, err, repository.ErrForbidden)
	assert.Equal(t, "pending", f.store.reservations[r.ID].Status)

	got, err := f.svc.RecordPayment(ctx, manager, r.ID, paid)
	require.NoError(t, err)
	assert.Equal(t, "confirmed", got.Status)

	_, err = f.svc.RecordPayment(ctx, admin, 99, paid)
	assert.True(t, booking.IsKind(err, booking.KindNotFound))
}

func TestCompleteElapsed(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	done := f.book(t, customer, "2025-03-03 10:00:00", "2025-03-03 12:00:00")
	later := f.book(t, customer, "2025-03-05 10:00:00", "2025-03-05 12:00:00")
	pending := f.book(t, customer, "2025-03-04 10:00:00", "2025-03-04 12:00:00")
	for _, id := range []uint64{done.ID, later.ID} {
		_, err := f.svc.ApplyPaymentEvent(ctx, id, booking.PaymentEvent{Status: booking.PaymentPaid})
		require.NoError(t, err)
	}

	f.svc.now = func() time.Time { return at("2025-03-04 18:00:00") }
	n, err := f.svc.CompleteElapsed(ctx, 100)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, "completed", f.store.reservations[done.ID].Status)
	assert.Equal(t, "confirmed", f.store.reservations[later.ID].Status)
	assert.Equal(t, "pending", f.store.reservations[pending.ID].Status)
	assert.Equal(t, 1, f.published(queue.EventReservationCompleted))
}

func TestCheckAvailability(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	r := f.book(t, customer, "2025-03-03 10:00:00", "2025-03-03 12:00:00")

	a, err := f.svc.CheckAvailability(ctx, 1, iv("2025-03-03 11:00:00", "2025-03-03 13:00:00"), 0)
	require.NoError(t, err)
	assert.False(t, a.Available)
	assert.Equal(t, []uint64{r.ID}, a.ConflictIDs)
	assert.Empty(t, a.Violations)
	require.NotNil(t, a.Quote)
	assert.Equal(t, 20.0, a.Quote.FinalPrice)

	a, err = f.svc.CheckAvailability(ctx, 1, iv("2025-03-03 11:00:00", "2025-03-03 13:00:00"), r.ID)
	require.NoError(t, err)
	assert.True(t, a.Available)

	a, err = f.svc.CheckAvailability(ctx, 1, iv("2025-03-03 08:00:00", "2025-03-03 09:30:00"), 0)
	require.NoError(t, err)
	assert.False(t, a.Available)
	require.Len(t, a.Violations, 1)
	assert.Equal(t, booking.BeforeOpening, a.Violations[0].Code)
}

func TestGetDaySlots(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.book(t, customer, "2025-03-03 10:30:00", "2025-03-03 12:00:00")

	day, err := f.svc.GetDaySlots(ctx, 1, at("2025-03-03 00:00:00"), 0)
	require.NoError(t, err)
	assert.True(t, day.DayAvailable)
	assert.Equal(t, 60, day.WidthMinutes)
	assert.Len(t, day.All, 9)
	assert.Len(t, day.Occupied, 2)
	assert.Len(t, day.Available, 7)

	day, err = f.svc.GetDaySlots(ctx, 1, at("2025-03-08 00:00:00"), 30)
	require.NoError(t, err)
	assert.False(t, day.DayAvailable)
	assert.Empty(t, day.Available)

	_, err = f.svc.GetDaySlots(ctx, 1, at("2025-03-03 00:00:00"), -5)
	assert.True(t, booking.IsKind(err, booking.KindValidation))
}

func TestQuotePrice(t *testing.T) {
	f := newFixture(t)
	q, err := f.svc.QuotePrice(context.Background(), 1, iv("2025-03-03 08:00:00", "2025-03-03 18:00:00"))
	require.NoError(t, err)
	assert.Equal(t, 100.0, q.HourlyTotal)
	assert.Equal(t, 70.0, q.DailyTotal)
	assert.Equal(t, 70.0, q.FinalPrice)
	assert.Equal(t, booking.BasisDaily, q.Basis)
}

func TestPublishFailureDoesNotFailWrite(t *testing.T) {
	st := newMemStore()
	st.locations[1] = &model.Location{ID: 1, ManagerID: manager.UserID}
	st.spaces[1] = &model.Space{ID: 1, LocationID: 1, OpeningTime: "09:00", ClosingTime: "18:00",
		AvailableDays: "1,2,3,4,5", MinBookingHours: 1, MaxBookingHours: 8, MaxAdvanceDays: 30,
		PricePerHour: 10, Status: "active"}
	pub := &mockPublisher{}
	pub.On("PublishReservation", mock.Anything, mock.Anything).Return(assert.AnError).Once()

	svc := NewReservationService(st, pub, nil, func() time.Time { return now }, 0)
	r, err := svc.CreateReservation(context.Background(), customer,
		CreateInput{SpaceID: 1, Interval: iv("2025-03-03 10:00:00", "2025-03-03 12:00:00")})
	require.NoError(t, err)
	assert.Equal(t, 20.0, r.TotalPrice)
	pub.AssertExpectations(t)
}

func TestToWall(t *testing.T) {
	rome, err := time.LoadLocation("Europe/Rome")
	require.NoError(t, err)
	got := ToWall(time.Date(2025, 3, 3, 9, 0, 0, 0, time.UTC), rome)
	assert.Equal(t, time.Date(2025, 3, 3, 10, 0, 0, 0, time.UTC), got)
}
