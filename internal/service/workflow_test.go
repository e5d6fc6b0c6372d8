package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vendops/api/internal/database"
)

// mockWorkflowStore holds orders in a map and applies the same optimistic
// guards as the SQL.
type mockWorkflowStore struct {
	orders         map[uuid.UUID]database.Order
	createErr      error
	statusUpdates  []database.UpdateOrderStatusParams
	assemblyWrites []database.UpdateOrderAssemblyParams
}

func newMockWorkflowStore(orders ...database.Order) *mockWorkflowStore {
	m := &mockWorkflowStore{orders: map[uuid.UUID]database.Order{}}
	for _, o := range orders {
		m.orders[o.ID] = o
	}
	return m
}

func (m *mockWorkflowStore) GetOrder(ctx context.Context, id uuid.UUID) (database.Order, error) {
	o, ok := m.orders[id]
	if !ok {
		return database.Order{}, pgx.ErrNoRows
	}
	return o, nil
}

func (m *mockWorkflowStore) CreateOrder(ctx context.Context, arg database.CreateOrderParams) (database.Order, error) {
	if m.createErr != nil {
		return database.Order{}, m.createErr
	}
	o := database.Order{ID: uuid.New(), OrderNumber: arg.OrderNumber, Status: arg.Status, UserID: arg.UserID, TotalAmount: arg.TotalAmount}
	m.orders[o.ID] = o
	return o, nil
}

func (m *mockWorkflowStore) UpdateOrderStatus(ctx context.Context, arg database.UpdateOrderStatusParams) (database.Order, error) {
	m.statusUpdates = append(m.statusUpdates, arg)
	o, ok := m.orders[arg.ID]
	if !ok || o.Status != arg.Status_2 {
		return database.Order{}, pgx.ErrNoRows
	}
	o.Status = arg.Status
	m.orders[arg.ID] = o
	return o, nil
}

func (m *mockWorkflowStore) UpdateOrderAssembly(ctx context.Context, arg database.UpdateOrderAssemblyParams) (database.Order, error) {
	m.assemblyWrites = append(m.assemblyWrites, arg)
	o, ok := m.orders[arg.ID]
	if !ok || o.AssemblyStatus != arg.CurrentStatus {
		return database.Order{}, pgx.ErrNoRows
	}
	o.AssemblyStatus = database.NullAssemblyScheduleStatus{AssemblyScheduleStatus: arg.AssemblyStatus, Valid: true}
	if arg.AssemblyScheduledDate.Valid {
		o.AssemblyScheduledDate = arg.AssemblyScheduledDate
	}
	m.orders[arg.ID] = o
	return o, nil
}

func orderIn(status database.OrderStatus) database.Order {
	return database.Order{ID: uuid.New(), OrderNumber: "ORD-1-TESTTEST1", Status: status}
}

func TestValidateOrderTransition(t *testing.T) {
	tests := []struct {
		from, to database.OrderStatus
		ok       bool
	}{
		{database.OrderStatusPending, database.OrderStatusPaid, true},
		{database.OrderStatusPending, database.OrderStatusProcessing, true},
		{database.OrderStatusPending, database.OrderStatusCancelled, true},
		{database.OrderStatusPending, database.OrderStatusCompleted, false},
		{database.OrderStatusPaid, database.OrderStatusProcessing, true},
		{database.OrderStatusPaid, database.OrderStatusPending, false},
		{database.OrderStatusProcessing, database.OrderStatusCompleted, true},
		{database.OrderStatusProcessing, database.OrderStatusFailed, true},
		{database.OrderStatusCompleted, database.OrderStatusCancelled, false},
		{database.OrderStatusFailed, database.OrderStatusPending, false},
		{database.OrderStatusCancelled, database.OrderStatusPaid, false},
		{database.OrderStatusPending, database.OrderStatusPending, false},
	}
	for _, tc := range tests {
		t.Run(string(tc.from)+"->"+string(tc.to), func(t *testing.T) {
			err := ValidateOrderTransition(tc.from, tc.to)
			if tc.ok {
				assert.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, ErrInvalidTransition)
			assert.Equal(t, "cannot transition from "+string(tc.from)+" to "+string(tc.to), err.Error())
		})
	}
}

func TestValidateAssemblyTransition(t *testing.T) {
	none := database.NullAssemblyScheduleStatus{}
	scheduled := database.NullAssemblyScheduleStatus{AssemblyScheduleStatus: database.AssemblyScheduleStatusScheduled, Valid: true}
	completed := database.NullAssemblyScheduleStatus{AssemblyScheduleStatus: database.AssemblyScheduleStatusCompleted, Valid: true}

	assert.NoError(t, ValidateAssemblyTransition(none, database.AssemblyScheduleStatusScheduled))
	assert.NoError(t, ValidateAssemblyTransition(scheduled, database.AssemblyScheduleStatusScheduled))
	assert.NoError(t, ValidateAssemblyTransition(scheduled, database.AssemblyScheduleStatusCompleted))

	err := ValidateAssemblyTransition(none, database.AssemblyScheduleStatusCompleted)
	require.ErrorIs(t, err, ErrInvalidTransition)
	assert.Equal(t, "cannot transition from unscheduled to completed", err.Error())

	assert.ErrorIs(t, ValidateAssemblyTransition(completed, database.AssemblyScheduleStatusScheduled), ErrInvalidTransition)
	assert.ErrorIs(t, ValidateAssemblyTransition(completed, database.AssemblyScheduleStatusCompleted), ErrInvalidTransition)
}

func TestUpdateStatus_Success(t *testing.T) {
	order := orderIn(database.OrderStatusPending)
	store := newMockWorkflowStore(order)
	events := &recordingEvents{}
	w := NewOrderWorkflow(store, events)

	updated, err := w.UpdateStatus(context.Background(), order.ID, database.OrderStatusPaid)
	require.NoError(t, err)
	assert.Equal(t, database.OrderStatusPaid, updated.Status)

	require.Len(t, store.statusUpdates, 1)
	assert.Equal(t, database.OrderStatusPending, store.statusUpdates[0].Status_2)
	require.Len(t, events.changed, 1)
	assert.Equal(t, database.OrderStatusPending, events.from[0])
}

func TestUpdateStatus_InvalidStatus(t *testing.T) {
	order := orderIn(database.OrderStatusPending)
	store := newMockWorkflowStore(order)
	w := NewOrderWorkflow(store, nil)

	_, err := w.UpdateStatus(context.Background(), order.ID, database.OrderStatus("shipped"))
	assert.ErrorIs(t, err, ErrInvalidStatus)
	assert.Empty(t, store.statusUpdates)
}

func TestUpdateStatus_IllegalTransition(t *testing.T) {
	order := orderIn(database.OrderStatusCompleted)
	store := newMockWorkflowStore(order)
	w := NewOrderWorkflow(store, nil)

	_, err := w.UpdateStatus(context.Background(), order.ID, database.OrderStatusPending)
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Empty(t, store.statusUpdates)
}

func TestUpdateStatus_NotFound(t *testing.T) {
	w := NewOrderWorkflow(newMockWorkflowStore(), nil)

	_, err := w.UpdateStatus(context.Background(), uuid.New(), database.OrderStatusPaid)
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestUpdateStatus_LostRace(t *testing.T) {
	order := orderIn(database.OrderStatusPending)
	store := &racingStore{mockWorkflowStore: newMockWorkflowStore(order)}
	w := NewOrderWorkflow(store, nil)

	_, err := w.UpdateStatus(context.Background(), order.ID, database.OrderStatusPaid)
	assert.ErrorIs(t, err, ErrStatusConflict)
}

// racingStore changes the order between the read and the write.
type racingStore struct {
	*mockWorkflowStore
}

func (r *racingStore) GetOrder(ctx context.Context, id uuid.UUID) (database.Order, error) {
	o, err := r.mockWorkflowStore.GetOrder(ctx, id)
	if err == nil {
		moved := o
		moved.Status = database.OrderStatusCancelled
		r.orders[id] = moved
	}
	return o, err
}

func TestScheduleAssembly(t *testing.T) {
	order := orderIn(database.OrderStatusPaid)
	store := newMockWorkflowStore(order)
	events := &recordingEvents{}
	w := NewOrderWorkflow(store, events)
	date := time.Date(2026, 11, 2, 9, 0, 0, 0, time.UTC)

	updated, err := w.ScheduleAssembly(context.Background(), order.ID, date)
	require.NoError(t, err)
	assert.Equal(t, database.AssemblyScheduleStatusScheduled, updated.AssemblyStatus.AssemblyScheduleStatus)
	assert.True(t, updated.AssemblyScheduledDate.Time.Equal(date))
	assert.Len(t, events.assembly, 1)

	// Rescheduling is allowed.
	_, err = w.ScheduleAssembly(context.Background(), order.ID, date.Add(24*time.Hour))
	require.NoError(t, err)
}

func TestCompleteAssembly(t *testing.T) {
	order := orderIn(database.OrderStatusPaid)
	order.AssemblyStatus = database.NullAssemblyScheduleStatus{AssemblyScheduleStatus: database.AssemblyScheduleStatusScheduled, Valid: true}
	store := newMockWorkflowStore(order)
	w := NewOrderWorkflow(store, nil)

	updated, err := w.UpdateAssemblyStatus(context.Background(), order.ID, database.AssemblyScheduleStatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, database.AssemblyScheduleStatusCompleted, updated.AssemblyStatus.AssemblyScheduleStatus)

	_, err = w.ScheduleAssembly(context.Background(), order.ID, time.Now())
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestCompleteUnscheduledAssembly(t *testing.T) {
	order := orderIn(database.OrderStatusPaid)
	store := newMockWorkflowStore(order)
	w := NewOrderWorkflow(store, nil)

	_, err := w.UpdateAssemblyStatus(context.Background(), order.ID, database.AssemblyScheduleStatusCompleted)
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Empty(t, store.assemblyWrites)
}

func TestUpdateAssemblyStatus_ScheduleNeedsDate(t *testing.T) {
	order := orderIn(database.OrderStatusPaid)
	store := newMockWorkflowStore(order)
	events := &recordingEvents{}
	w := NewOrderWorkflow(store, events)

	_, err := w.UpdateAssemblyStatus(context.Background(), order.ID, database.AssemblyScheduleStatusScheduled)
	assert.ErrorIs(t, err, ErrAssemblyDateRequired)
	assert.Empty(t, store.assemblyWrites)
	assert.Empty(t, events.assembly)

	// once a date exists the status may be re-set without one
	date := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	_, err = w.ScheduleAssembly(context.Background(), order.ID, date)
	require.NoError(t, err)
	updated, err := w.UpdateAssemblyStatus(context.Background(), order.ID, database.AssemblyScheduleStatusScheduled)
	require.NoError(t, err)
	assert.True(t, updated.AssemblyScheduledDate.Time.Equal(date))
}

func TestUpdateAssemblyStatus_Invalid(t *testing.T) {
	order := orderIn(database.OrderStatusPaid)
	w := NewOrderWorkflow(newMockWorkflowStore(order), nil)

	_, err := w.UpdateAssemblyStatus(context.Background(), order.ID, database.AssemblyScheduleStatus("shipped"))
	assert.ErrorIs(t, err, ErrInvalidAssemblyStatus)
}

func TestCreateManualOrder(t *testing.T) {
	store := newMockWorkflowStore()
	events := &recordingEvents{}
	w := NewOrderWorkflow(store, events)
	userID := uuid.New()

	order, err := w.CreateOrder(context.Background(), ManualOrderRequest{
		UserID:      &userID,
		TotalAmount: decimal.RequireFromString("250.00"),
		ItemsCount:  2,
	})
	require.NoError(t, err)
	assert.Equal(t, database.OrderStatusPending, order.Status)
	assert.Regexp(t, `^ORD-`, order.OrderNumber)
	assert.Equal(t, userID, uuid.UUID(order.UserID.Bytes))
	assert.Len(t, events.created, 1)
}

func TestCreateManualOrder_RetriesConflict(t *testing.T) {
	store := newMockWorkflowStore()
	store.createErr = &pgconn.PgError{Code: "23505", ConstraintName: "orders_order_number_key"}
	w := NewOrderWorkflow(store, nil)
	calls := 0
	w.orderNumber = func() (string, error) {
		calls++
		return "ORD-1-SAMESAMES", nil
	}

	_, err := w.CreateOrder(context.Background(), ManualOrderRequest{TotalAmount: decimal.NewFromInt(1)})
	require.Error(t, err)
	assert.Equal(t, maxOrderNumberRetries, calls)
}
