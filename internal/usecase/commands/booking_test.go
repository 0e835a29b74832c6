//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"zoea-booking/internal/domain/booking"
	"zoea-booking/internal/infra"
	"zoea-booking/internal/infra/db"
	"zoea-booking/internal/pkg/clock"
	"zoea-booking/internal/pkg/config"
	"zoea-booking/internal/pkg/errs"
	"zoea-booking/internal/usecase/commands"
	"zoea-booking/internal/usecase/queries"
	"zoea-booking/internal/usecase/shared"
	"zoea-booking/tests/common/builder"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ----------------------------------------------------------------------------
// In-memory fakes for the transaction-bound repositories
// ----------------------------------------------------------------------------

type fakeBookingRepo struct {
	bookings map[uuid.UUID]*booking.Booking
	guests   map[uuid.UUID][]booking.Guest
	svcCount map[uuid.UUID]int

	failCreateWithDuplicate int
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{
		bookings: map[uuid.UUID]*booking.Booking{},
		guests:   map[uuid.UUID][]booking.Guest{},
		svcCount: map[uuid.UUID]int{},
	}
}

func (r *fakeBookingRepo) Create(_ context.Context, b *booking.Booking) error {
	if r.failCreateWithDuplicate > 0 {
		r.failCreateWithDuplicate--
		return infra.WrapRepoErr("duplicate booking number", nil, infra.KindDuplicateKey)
	}
	r.bookings[b.ID()] = b
	return nil
}

func (r *fakeBookingRepo) FindByIDForUpdate(_ context.Context, id uuid.UUID) (*booking.Booking, error) {
	b, ok := r.bookings[id]
	if !ok {
		return nil, infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	return b, nil
}

func (r *fakeBookingRepo) Update(_ context.Context, b *booking.Booking) error {
	if _, ok := r.bookings[b.ID()]; !ok {
		return infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	r.bookings[b.ID()] = b
	return nil
}

func (r *fakeBookingRepo) CreateGuests(_ context.Context, bookingID uuid.UUID, guests []booking.Guest) error {
	r.guests[bookingID] = guests
	return nil
}

func (r *fakeBookingRepo) FindExpiredPendingIDs(_ context.Context, cutoff time.Time, limit int) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	for id, b := range r.bookings {
		if len(ids) >= limit {
			break
		}
		if b.Status() == booking.StatusPending &&
			b.PaymentStatus() == booking.PaymentPending &&
			b.CreatedAt().Before(cutoff) {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func (r *fakeBookingRepo) IncrementServiceBookingCount(_ context.Context, serviceID uuid.UUID) error {
	r.svcCount[serviceID]++
	return nil
}

type fakeCapacityRepo struct {
	roomNightsReserved map[uuid.UUID]int
	roomNightsReleased map[uuid.UUID]int
	ticketsReserved    map[uuid.UUID]int
	ticketsReleased    map[uuid.UUID]int
	spotsReserved      map[uuid.UUID]int
	spotsReleased      map[uuid.UUID]int
	slotsReserved      int

	reserveConflict bool
}

func newFakeCapacityRepo() *fakeCapacityRepo {
	return &fakeCapacityRepo{
		roomNightsReserved: map[uuid.UUID]int{},
		roomNightsReleased: map[uuid.UUID]int{},
		ticketsReserved:    map[uuid.UUID]int{},
		ticketsReleased:    map[uuid.UUID]int{},
		spotsReserved:      map[uuid.UUID]int{},
		spotsReleased:      map[uuid.UUID]int{},
	}
}

func (r *fakeCapacityRepo) conflict() error {
	return infra.WrapRepoErr("capacity exhausted", nil, infra.KindConflict)
}

func (r *fakeCapacityRepo) ReserveRoomNights(_ context.Context, roomTypeID uuid.UUID, stay booking.DateRange) error {
	if r.reserveConflict {
		return r.conflict()
	}
	r.roomNightsReserved[roomTypeID] += stay.Nights()
	return nil
}

func (r *fakeCapacityRepo) ReleaseRoomNights(_ context.Context, roomTypeID uuid.UUID, stay booking.DateRange) error {
	r.roomNightsReleased[roomTypeID] += stay.Nights()
	return nil
}

func (r *fakeCapacityRepo) ReserveTickets(_ context.Context, ticketID uuid.UUID, quantity int) error {
	if r.reserveConflict {
		return r.conflict()
	}
	r.ticketsReserved[ticketID] += quantity
	return nil
}

func (r *fakeCapacityRepo) ReleaseTickets(_ context.Context, ticketID uuid.UUID, quantity int) error {
	r.ticketsReleased[ticketID] += quantity
	return nil
}

func (r *fakeCapacityRepo) ReserveTourSpots(_ context.Context, scheduleID uuid.UUID, spots int) error {
	if r.reserveConflict {
		return r.conflict()
	}
	r.spotsReserved[scheduleID] += spots
	return nil
}

func (r *fakeCapacityRepo) ReleaseTourSpots(_ context.Context, scheduleID uuid.UUID, spots int) error {
	r.spotsReleased[scheduleID] += spots
	return nil
}

func (r *fakeCapacityRepo) ReserveServiceSlot(_ context.Context, _ uuid.UUID, _ time.Time, _ string) error {
	if r.reserveConflict {
		return r.conflict()
	}
	r.slotsReserved++
	return nil
}

type fakeAttendeeRepo struct {
	records []shared.AttendeeRecord
}

func (r *fakeAttendeeRepo) Create(_ context.Context, a shared.AttendeeRecord) error {
	r.records = append(r.records, a)
	return nil
}

func (r *fakeAttendeeRepo) CountByBooking(_ context.Context, bookingID uuid.UUID) (int, error) {
	n := 0
	for _, rec := range r.records {
		if rec.BookingID == bookingID {
			n++
		}
	}
	return n, nil
}

type fakeIdempotencyRepo struct {
	records map[string]*shared.IdempotencyRecord
}

func newFakeIdempotencyRepo() *fakeIdempotencyRepo {
	return &fakeIdempotencyRepo{records: map[string]*shared.IdempotencyRecord{}}
}

func idemKey(key, userID uuid.UUID) string {
	return key.String() + "/" + userID.String()
}

func (r *fakeIdempotencyRepo) TryInsert(_ context.Context, key, userID uuid.UUID, _, requestHash string, expiresAt time.Time) error {
	k := idemKey(key, userID)
	if _, exists := r.records[k]; exists {
		return infra.WrapRepoErr("idempotency key exists", nil, infra.KindDuplicateKey)
	}
	r.records[k] = &shared.IdempotencyRecord{
		Key:         key,
		UserID:      userID,
		Status:      "processing",
		RequestHash: requestHash,
		ExpiresAt:   expiresAt,
	}
	return nil
}

func (r *fakeIdempotencyRepo) Get(_ context.Context, key, userID uuid.UUID) (*shared.IdempotencyRecord, error) {
	rec, ok := r.records[idemKey(key, userID)]
	if !ok {
		return nil, infra.WrapRepoErr("idempotency key not found", nil, infra.KindNotFound)
	}
	return rec, nil
}

func (r *fakeIdempotencyRepo) MarkCompleted(_ context.Context, key, userID uuid.UUID, resultBookingID uuid.UUID) error {
	rec, ok := r.records[idemKey(key, userID)]
	if !ok {
		return infra.WrapRepoErr("idempotency key not found", nil, infra.KindNotFound)
	}
	rec.Status = "completed"
	rec.ResultBookingID = &resultBookingID
	return nil
}

type fakeCatalog struct {
	listing  *shared.ListingSnapshot
	roomType *shared.RoomTypeSnapshot
	table    *shared.TableSnapshot
	ticket   *shared.TicketSnapshot
	schedule *shared.TourScheduleSnapshot
	service  *shared.ServiceSnapshot
}

func notFound() error {
	return infra.WrapRepoErr("not found", nil, infra.KindNotFound)
}

func (c *fakeCatalog) ListingByID(_ context.Context, _ uuid.UUID) (*shared.ListingSnapshot, error) {
	if c.listing == nil {
		return nil, notFound()
	}
	return c.listing, nil
}

func (c *fakeCatalog) RoomTypeByID(_ context.Context, _ uuid.UUID) (*shared.RoomTypeSnapshot, error) {
	if c.roomType == nil {
		return nil, notFound()
	}
	return c.roomType, nil
}

func (c *fakeCatalog) TableByID(_ context.Context, _ uuid.UUID) (*shared.TableSnapshot, error) {
	if c.table == nil {
		return nil, notFound()
	}
	return c.table, nil
}

func (c *fakeCatalog) TicketByID(_ context.Context, _ uuid.UUID) (*shared.TicketSnapshot, error) {
	if c.ticket == nil {
		return nil, notFound()
	}
	return c.ticket, nil
}

func (c *fakeCatalog) TourScheduleByID(_ context.Context, _ uuid.UUID) (*shared.TourScheduleSnapshot, error) {
	if c.schedule == nil {
		return nil, notFound()
	}
	return c.schedule, nil
}

func (c *fakeCatalog) ServiceByID(_ context.Context, _ uuid.UUID) (*shared.ServiceSnapshot, error) {
	if c.service == nil {
		return nil, notFound()
	}
	return c.service, nil
}

type fakeTx struct {
	bookings    *fakeBookingRepo
	capacity    *fakeCapacityRepo
	attendees   *fakeAttendeeRepo
	idempotency *fakeIdempotencyRepo
	catalog     *fakeCatalog
}

func (t *fakeTx) Bookings() shared.BookingRepository       { return t.bookings }
func (t *fakeTx) Capacity() shared.CapacityRepository      { return t.capacity }
func (t *fakeTx) Attendees() shared.AttendeeRepository     { return t.attendees }
func (t *fakeTx) Idempotency() shared.IdempotencyRepository { return t.idempotency }
func (t *fakeTx) Catalog() shared.CatalogReads             { return t.catalog }
func (t *fakeTx) DB() db.DBTX                              { return nil }

type fakeUoW struct {
	tx *fakeTx
}

func (u *fakeUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return fn(ctx, u.tx)
}

func (u *fakeUoW) WithDB(ctx context.Context, fn func(ctx context.Context, dbtx db.DBTX) error) error {
	return fn(ctx, nil)
}

type fakeViewRepo struct {
	userID uuid.UUID
}

func (r *fakeViewRepo) FindByID(_ context.Context, id uuid.UUID) (*queries.BookingView, error) {
	return &queries.BookingView{ID: id, UserID: r.userID}, nil
}

func (r *fakeViewRepo) FindByUser(_ context.Context, _ uuid.UUID, _ queries.ListFilter, _, _ int) ([]*queries.BookingListItem, int64, error) {
	return nil, 0, nil
}

func (r *fakeViewRepo) FindUpcomingByUser(_ context.Context, _ uuid.UUID, _ time.Time, _ int) ([]*queries.BookingListItem, error) {
	return nil, nil
}

type publishedEvent struct {
	Subject string
}

type fakePublisher struct {
	events []publishedEvent
}

func (p *fakePublisher) Publish(subject string, _ any) {
	p.events = append(p.events, publishedEvent{Subject: subject})
}

func (p *fakePublisher) subjects() []string {
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Subject)
	}
	return out
}

// ----------------------------------------------------------------------------
// Test environment
// ----------------------------------------------------------------------------

type testEnv struct {
	uc        commands.BookingCommands
	tx        *fakeTx
	publisher *fakePublisher
	clock     *clock.MockClock
	cfg       config.BookingConfig
	bld       *builder.BookingBuilder
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	bld := builder.NewBookingBuilder()
	tx := &fakeTx{
		bookings:    newFakeBookingRepo(),
		capacity:    newFakeCapacityRepo(),
		attendees:   &fakeAttendeeRepo{},
		idempotency: newFakeIdempotencyRepo(),
		catalog: &fakeCatalog{
			listing:  &shared.ListingSnapshot{ID: bld.ListingID, Name: "Test Listing", Type: "hotel"},
			roomType: bld.BuildRoomTypeSnapshot(),
			ticket:   bld.BuildTicketSnapshot(),
			schedule: bld.BuildTourScheduleSnapshot(),
			service:  bld.BuildServiceSnapshot(),
		},
	}
	publisher := &fakePublisher{}
	clk := clock.NewMockClock(bld.Now)
	cfg := config.NewTestConfig().Booking

	uc := commands.NewBookingUseCase(
		&fakeUoW{tx: tx},
		&fakeViewRepo{userID: bld.UserID},
		booking.NewStandardPriceCalculator(),
		booking.NewFullRefundPolicy(),
		publisher,
		cfg,
		clk,
	)

	return &testEnv{uc: uc, tx: tx, publisher: publisher, clock: clk, cfg: cfg, bld: bld}
}

func (e *testEnv) create(t *testing.T, in commands.CreateBookingInput) *booking.Booking {
	t.Helper()
	result, err := e.uc.Create(context.Background(), in, e.bld.UserID, uuid.New())
	require.NoError(t, err)
	require.False(t, result.IsReplayed)
	b, ok := e.tx.bookings.bookings[result.Booking.ID]
	require.True(t, ok)
	return b
}

// ----------------------------------------------------------------------------
// Create
// ----------------------------------------------------------------------------

func TestCreateBooking(t *testing.T) {
	t.Run("idempotency key is mandatory", func(t *testing.T) {
		env := newTestEnv(t)
		_, err := env.uc.Create(context.Background(), env.bld.BuildCreateInput(), env.bld.UserID, uuid.Nil)
		require.ErrorIs(t, err, errs.ErrIdempotencyKeyRequired)
	})

	t.Run("unknown booking type", func(t *testing.T) {
		env := newTestEnv(t)
		in := env.bld.BuildCreateInput()
		in.BookingType = "flight"
		_, err := env.uc.Create(context.Background(), in, env.bld.UserID, uuid.New())
		require.ErrorIs(t, err, errs.ErrUnknownBookingType)
	})

	t.Run("hotel: reserves nights, prices the stay and publishes", func(t *testing.T) {
		env := newTestEnv(t)
		b := env.create(t, env.bld.BuildCreateInput())

		// 25000 rate x 2 nights x 2 guests
		assert.Equal(t, int64(100_000), b.Price().Cents())
		assert.Equal(t, "RWF", b.Price().Currency())
		assert.Equal(t, booking.StatusPending, b.Status())
		assert.Equal(t, 2, env.tx.capacity.roomNightsReserved[env.bld.RoomTypeID])
		assert.Len(t, env.tx.bookings.guests[b.ID()], 2)
		assert.Equal(t, []string{commands.SubjectBookingCreated}, env.publisher.subjects())

		require.Len(t, env.tx.idempotency.records, 1)
		for _, stored := range env.tx.idempotency.records {
			assert.Equal(t, "completed", stored.Status)
			require.NotNil(t, stored.ResultBookingID)
			assert.Equal(t, b.ID(), *stored.ResultBookingID)
		}
	})

	t.Run("event: capacity conflict maps to capacity exceeded", func(t *testing.T) {
		env := newTestEnv(t)
		env.tx.capacity.reserveConflict = true

		in := env.bld.WithType(booking.TypeEvent).BuildCreateInput()
		_, err := env.uc.Create(context.Background(), in, env.bld.UserID, uuid.New())
		require.ErrorIs(t, err, errs.ErrCapacityExceeded)
		assert.Empty(t, env.tx.bookings.bookings)
	})

	t.Run("event: ticket must be on sale", func(t *testing.T) {
		env := newTestEnv(t)
		env.tx.catalog.ticket.Status = "sold_out"

		in := env.bld.WithType(booking.TypeEvent).BuildCreateInput()
		_, err := env.uc.Create(context.Background(), in, env.bld.UserID, uuid.New())
		require.ErrorIs(t, err, errs.ErrValidation)
	})

	t.Run("room type of another listing is rejected", func(t *testing.T) {
		env := newTestEnv(t)
		env.tx.catalog.roomType.ListingID = uuid.New()

		_, err := env.uc.Create(context.Background(), env.bld.BuildCreateInput(), env.bld.UserID, uuid.New())
		require.ErrorIs(t, err, errs.ErrValidation)
	})

	t.Run("missing catalog resource", func(t *testing.T) {
		env := newTestEnv(t)
		env.tx.catalog.roomType = nil

		_, err := env.uc.Create(context.Background(), env.bld.BuildCreateInput(), env.bld.UserID, uuid.New())
		require.ErrorIs(t, err, errs.ErrResourceNotFound)
	})

	t.Run("service: date beyond the advance window", func(t *testing.T) {
		env := newTestEnv(t)
		env.bld.WithType(booking.TypeService)
		env.bld.BookingDate = env.bld.Now.AddDate(0, 0, 40) // window is 30 days

		_, err := env.uc.Create(context.Background(), env.bld.BuildCreateInput(), env.bld.UserID, uuid.New())
		require.ErrorIs(t, err, errs.ErrValidation)
	})

	t.Run("restaurant: table seats bound the party", func(t *testing.T) {
		env := newTestEnv(t)
		tableID := uuid.New()
		env.tx.catalog.table = &shared.TableSnapshot{ID: tableID, ListingID: env.bld.ListingID, Seats: 4}
		env.bld.WithType(booking.TypeRestaurant).WithGuestCount(6)
		env.bld.TableID = &tableID

		_, err := env.uc.Create(context.Background(), env.bld.BuildCreateInput(), env.bld.UserID, uuid.New())
		require.ErrorIs(t, err, errs.ErrCapacityExceeded)
	})

	t.Run("booking number collision retries once", func(t *testing.T) {
		env := newTestEnv(t)
		env.tx.bookings.failCreateWithDuplicate = 1

		b := env.create(t, env.bld.BuildCreateInput())
		assert.NotEmpty(t, b.Number())
	})
}

func TestCreateBookingIdempotency(t *testing.T) {
	t.Run("same key replays the original result", func(t *testing.T) {
		env := newTestEnv(t)
		key := uuid.New()
		in := env.bld.BuildCreateInput()

		first, err := env.uc.Create(context.Background(), in, env.bld.UserID, key)
		require.NoError(t, err)
		require.False(t, first.IsReplayed)

		second, err := env.uc.Create(context.Background(), in, env.bld.UserID, key)
		require.NoError(t, err)
		assert.True(t, second.IsReplayed)
		assert.Equal(t, first.Booking.ID, second.Booking.ID)

		// No double reservation, no second created event.
		assert.Equal(t, 2, env.tx.capacity.roomNightsReserved[env.bld.RoomTypeID])
		assert.Equal(t, []string{commands.SubjectBookingCreated}, env.publisher.subjects())
	})

	t.Run("same key with a different payload is rejected", func(t *testing.T) {
		env := newTestEnv(t)
		key := uuid.New()
		env.tx.idempotency.records[idemKey(key, env.bld.UserID)] = &shared.IdempotencyRecord{
			Key:         key,
			UserID:      env.bld.UserID,
			Status:      "processing",
			RequestHash: "something-else",
		}

		_, err := env.uc.Create(context.Background(), env.bld.BuildCreateInput(), env.bld.UserID, key)
		require.ErrorIs(t, err, errs.ErrDuplicateRequest)
	})
}

// ----------------------------------------------------------------------------
// Cancel
// ----------------------------------------------------------------------------

func TestCancelBooking(t *testing.T) {
	t.Run("releases capacity and keeps payment untouched when unpaid", func(t *testing.T) {
		env := newTestEnv(t)
		b := env.create(t, env.bld.BuildCreateInput())

		reason := "plans changed"
		_, err := env.uc.Cancel(context.Background(), b.ID(), env.bld.UserID, &reason)
		require.NoError(t, err)

		assert.Equal(t, booking.StatusCancelled, b.Status())
		assert.Equal(t, booking.PaymentPending, b.PaymentStatus())
		assert.Nil(t, b.RefundAmount())
		assert.Equal(t, 2, env.tx.capacity.roomNightsReleased[env.bld.RoomTypeID])
	})

	t.Run("refunds a paid booking in full", func(t *testing.T) {
		env := newTestEnv(t)
		b := env.create(t, env.bld.BuildCreateInput())
		_, err := env.uc.ConfirmPayment(context.Background(), b.ID(), env.bld.UserID,
			commands.ConfirmPaymentInput{PaymentMethod: "card"})
		require.NoError(t, err)

		_, err = env.uc.Cancel(context.Background(), b.ID(), env.bld.UserID, nil)
		require.NoError(t, err)

		assert.Equal(t, booking.PaymentRefunded, b.PaymentStatus())
		require.NotNil(t, b.RefundAmount())
		assert.Equal(t, b.Price().Cents(), b.RefundAmount().Cents())

		want := []string{
			commands.SubjectBookingCreated,
			commands.SubjectBookingConfirmed,
			commands.SubjectBookingCancelled,
		}
		if diff := cmp.Diff(want, env.publisher.subjects()); diff != "" {
			t.Errorf("published subjects mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("only the owner may cancel", func(t *testing.T) {
		env := newTestEnv(t)
		b := env.create(t, env.bld.BuildCreateInput())

		_, err := env.uc.Cancel(context.Background(), b.ID(), uuid.New(), nil)
		require.ErrorIs(t, err, errs.ErrForbidden)
	})

	t.Run("unknown booking", func(t *testing.T) {
		env := newTestEnv(t)
		_, err := env.uc.Cancel(context.Background(), uuid.New(), env.bld.UserID, nil)
		require.ErrorIs(t, err, errs.ErrBookingNotFound)
	})
}

// ----------------------------------------------------------------------------
// ConfirmPayment
// ----------------------------------------------------------------------------

func TestConfirmPayment(t *testing.T) {
	t.Run("event booking materializes one attendee per ticket", func(t *testing.T) {
		env := newTestEnv(t)
		env.bld.TicketQty = 3
		b := env.create(t, env.bld.WithType(booking.TypeEvent).BuildCreateInput())

		_, err := env.uc.ConfirmPayment(context.Background(), b.ID(), env.bld.UserID,
			commands.ConfirmPaymentInput{PaymentMethod: "mobile_money", PaymentReference: "MM-42"})
		require.NoError(t, err)

		require.Len(t, env.tx.attendees.records, 3)
		code := b.Confirmation().Code
		for i, rec := range env.tx.attendees.records {
			assert.Equal(t, booking.TicketCode(code, i), rec.TicketCode)
			assert.Equal(t, env.bld.EventID, rec.EventID)
			assert.Equal(t, b.ID(), rec.BookingID)
		}
		// Two named guests, third ticket is unnamed.
		require.NotNil(t, env.tx.attendees.records[0].FullName)
		require.NotNil(t, env.tx.attendees.records[1].FullName)
		assert.Nil(t, env.tx.attendees.records[2].FullName)
	})

	t.Run("service booking bumps the service counter", func(t *testing.T) {
		env := newTestEnv(t)
		b := env.create(t, env.bld.WithType(booking.TypeService).BuildCreateInput())

		_, err := env.uc.ConfirmPayment(context.Background(), b.ID(), env.bld.UserID,
			commands.ConfirmPaymentInput{PaymentMethod: "card"})
		require.NoError(t, err)
		assert.Equal(t, 1, env.tx.bookings.svcCount[env.bld.ServiceID])
	})

	t.Run("double confirmation is rejected, side effects stay single", func(t *testing.T) {
		env := newTestEnv(t)
		env.bld.TicketQty = 2
		b := env.create(t, env.bld.WithType(booking.TypeEvent).BuildCreateInput())

		_, err := env.uc.ConfirmPayment(context.Background(), b.ID(), env.bld.UserID,
			commands.ConfirmPaymentInput{PaymentMethod: "card"})
		require.NoError(t, err)

		_, err = env.uc.ConfirmPayment(context.Background(), b.ID(), env.bld.UserID,
			commands.ConfirmPaymentInput{PaymentMethod: "card"})
		require.ErrorIs(t, err, errs.ErrAlreadyConfirmed)
		assert.Len(t, env.tx.attendees.records, 2)
	})
}

// ----------------------------------------------------------------------------
// Update
// ----------------------------------------------------------------------------

func TestUpdateBooking(t *testing.T) {
	t.Run("growing a tour party reserves the extra spots", func(t *testing.T) {
		env := newTestEnv(t)
		b := env.create(t, env.bld.WithType(booking.TypeTour).BuildCreateInput())
		require.Equal(t, 2, env.tx.capacity.spotsReserved[env.bld.ScheduleID])

		gc := 5
		_, err := env.uc.Update(context.Background(), b.ID(), env.bld.UserID, commands.UpdateBookingInput{GuestCount: &gc})
		require.NoError(t, err)
		assert.Equal(t, 5, env.tx.capacity.spotsReserved[env.bld.ScheduleID])
	})

	t.Run("shrinking a tour party releases spots", func(t *testing.T) {
		env := newTestEnv(t)
		env.bld.WithGuestCount(4)
		b := env.create(t, env.bld.WithType(booking.TypeTour).BuildCreateInput())

		gc := 1
		_, err := env.uc.Update(context.Background(), b.ID(), env.bld.UserID, commands.UpdateBookingInput{GuestCount: &gc})
		require.NoError(t, err)
		assert.Equal(t, 3, env.tx.capacity.spotsReleased[env.bld.ScheduleID])
	})

	t.Run("terminal bookings are frozen", func(t *testing.T) {
		env := newTestEnv(t)
		b := env.create(t, env.bld.BuildCreateInput())
		_, err := env.uc.Cancel(context.Background(), b.ID(), env.bld.UserID, nil)
		require.NoError(t, err)

		gc := 3
		_, err = env.uc.Update(context.Background(), b.ID(), env.bld.UserID, commands.UpdateBookingInput{GuestCount: &gc})
		require.ErrorIs(t, err, errs.ErrInvalidStateTransition)
	})
}

// ----------------------------------------------------------------------------
// Lifecycle transitions
// ----------------------------------------------------------------------------

func TestLifecycleCommands(t *testing.T) {
	env := newTestEnv(t)
	b := env.create(t, env.bld.BuildCreateInput())
	_, err := env.uc.ConfirmPayment(context.Background(), b.ID(), env.bld.UserID,
		commands.ConfirmPaymentInput{PaymentMethod: "card"})
	require.NoError(t, err)

	_, err = env.uc.CheckIn(context.Background(), b.ID())
	require.NoError(t, err)
	assert.Equal(t, booking.StatusCheckedIn, b.Status())

	_, err = env.uc.Complete(context.Background(), b.ID())
	require.NoError(t, err)
	assert.Equal(t, booking.StatusCompleted, b.Status())

	_, err = env.uc.MarkNoShow(context.Background(), b.ID())
	require.ErrorIs(t, err, errs.ErrInvalidStateTransition)
}

// ----------------------------------------------------------------------------
// ExpirePending
// ----------------------------------------------------------------------------

func TestExpirePending(t *testing.T) {
	t.Run("expires stale unpaid bookings and frees capacity", func(t *testing.T) {
		env := newTestEnv(t)
		b := env.create(t, env.bld.BuildCreateInput())

		env.clock.Add(env.cfg.PendingTTL + time.Minute)

		n, err := env.uc.ExpirePending(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 1, n)

		assert.Equal(t, booking.StatusCancelled, b.Status())
		require.NotNil(t, b.Cancellation())
		assert.Equal(t, uuid.Nil, b.Cancellation().CancelledBy)
		assert.Equal(t, 2, env.tx.capacity.roomNightsReleased[env.bld.RoomTypeID])
		assert.Contains(t, env.publisher.subjects(), commands.SubjectBookingExpired)
	})

	t.Run("paid bookings survive the sweep", func(t *testing.T) {
		env := newTestEnv(t)
		b := env.create(t, env.bld.BuildCreateInput())
		_, err := env.uc.ConfirmPayment(context.Background(), b.ID(), env.bld.UserID,
			commands.ConfirmPaymentInput{PaymentMethod: "card"})
		require.NoError(t, err)

		env.clock.Add(env.cfg.PendingTTL + time.Minute)

		n, err := env.uc.ExpirePending(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 0, n)
		assert.Equal(t, booking.StatusConfirmed, b.Status())
	})

	t.Run("fresh bookings are untouched", func(t *testing.T) {
		env := newTestEnv(t)
		b := env.create(t, env.bld.BuildCreateInput())

		env.clock.Add(time.Minute)

		n, err := env.uc.ExpirePending(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 0, n)
		assert.Equal(t, booking.StatusPending, b.Status())
	})
}
