package interventions

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ServiceDesk/internal/domain"
	interventionRepo "github.com/m04kA/SMC-ServiceDesk/internal/infra/storage/intervention"
	partRepo "github.com/m04kA/SMC-ServiceDesk/internal/infra/storage/part"
	slotRepo "github.com/m04kA/SMC-ServiceDesk/internal/infra/storage/slot"
	"github.com/m04kA/SMC-ServiceDesk/internal/integrations/events"
	"github.com/m04kA/SMC-ServiceDesk/internal/service/interventions/models"
	"github.com/m04kA/SMC-ServiceDesk/pkg/metrics"
	"github.com/m04kA/SMC-ServiceDesk/pkg/ptr"
)

type memInterventions struct {
	items  map[int64]domain.Intervention
	lines  map[int64][]domain.ConsumedPart
	nextID int64
}

func (r *memInterventions) Create(_ context.Context, iv *domain.Intervention) (*domain.Intervention, error) {
	r.nextID++
	iv.ID = r.nextID
	r.items[iv.ID] = *iv
	return iv, nil
}

func (r *memInterventions) GetByID(_ context.Context, id int64) (*domain.Intervention, error) {
	iv, ok := r.items[id]
	if !ok {
		return nil, interventionRepo.ErrInterventionNotFound
	}
	iv.Parts = append([]domain.ConsumedPart(nil), r.lines[id]...)
	return &iv, nil
}

func (r *memInterventions) GetByIDForUpdate(ctx context.Context, id int64) (*domain.Intervention, error) {
	return r.GetByID(ctx, id)
}

func (r *memInterventions) List(_ context.Context, filter domain.InterventionsFilter) ([]*domain.Intervention, error) {
	var out []*domain.Intervention
	for _, iv := range r.items {
		iv := iv
		if filter.TechnicianID != nil && iv.TechnicianID != *filter.TechnicianID {
			continue
		}
		if filter.Status != nil && iv.Status != *filter.Status {
			continue
		}
		out = append(out, &iv)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ScheduledAt.Before(out[j].ScheduledAt) })
	return out, nil
}

func (r *memInterventions) Update(_ context.Context, iv *domain.Intervention) error {
	if _, ok := r.items[iv.ID]; !ok {
		return interventionRepo.ErrInterventionNotFound
	}
	stored := *iv
	stored.Parts = nil
	r.items[iv.ID] = stored
	return nil
}

func (r *memInterventions) AddPart(_ context.Context, part *domain.ConsumedPart) error {
	part.ID = int64(len(r.lines[part.InterventionID]) + 1)
	r.lines[part.InterventionID] = append(r.lines[part.InterventionID], *part)
	return nil
}

type memParts struct {
	items map[int64]domain.Part
}

func (r *memParts) Consume(_ context.Context, partID int64, quantity int, interventionID *int64) (*domain.PartConsumption, error) {
	part, ok := r.items[partID]
	if !ok {
		return nil, partRepo.ErrPartNotFound
	}
	if part.Stock < quantity {
		return nil, partRepo.ErrInsufficientStock
	}
	part.Stock -= quantity
	r.items[partID] = part

	movement := domain.NewStockMovement(partID, domain.MovementOut, -quantity, part.Stock, "intervention")
	movement.InterventionID = interventionID
	return &domain.PartConsumption{Part: part, Movement: *movement}, nil
}

type memSlots struct {
	items map[int64]domain.Slot
}

func (r *memSlots) GetByID(_ context.Context, id int64) (*domain.Slot, error) {
	slot, ok := r.items[id]
	if !ok {
		return nil, slotRepo.ErrSlotNotFound
	}
	return &slot, nil
}

func (r *memSlots) Reserve(_ context.Context, slotID, interventionID int64) error {
	slot, ok := r.items[slotID]
	if !ok {
		return slotRepo.ErrSlotNotFound
	}
	if slot.IsReserved {
		return slotRepo.ErrSlotAlreadyReserved
	}
	slot.IsReserved = true
	slot.InterventionID = &interventionID
	r.items[slotID] = slot
	return nil
}

func (r *memSlots) Release(_ context.Context, slotID, interventionID int64) error {
	slot, ok := r.items[slotID]
	if !ok || slot.InterventionID == nil || *slot.InterventionID != interventionID {
		return slotRepo.ErrSlotNotFound
	}
	slot.IsReserved = false
	slot.InterventionID = nil
	r.items[slotID] = slot
	return nil
}

type fakeWarranty struct {
	free bool
	err  error
}

func (w *fakeWarranty) IsClaimUnderWarranty(context.Context, *int64, time.Time) (bool, error) {
	return w.free, w.err
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (p *recordingPublisher) Publish(_ context.Context, event events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *recordingPublisher) has(t events.Type) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, e := range p.events {
		if e.Type == t {
			return true
		}
	}
	return false
}

type directTx struct{}

func (directTx) Do(ctx context.Context, fn func(ctx context.Context) error) error { return fn(ctx) }

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type warnRecorder struct {
	nopLogger
	warnings []string
}

func (l *warnRecorder) Warn(format string, v ...interface{}) {
	l.warnings = append(l.warnings, fmt.Sprintf(format, v...))
}

var (
	technician  = domain.Actor{UserID: 7, Role: domain.RoleTechnician}
	otherTech   = domain.Actor{UserID: 8, Role: domain.RoleTechnician}
	responsable = domain.Actor{UserID: 9, Role: domain.RoleResponsable}
	client      = domain.Actor{UserID: 3, Role: domain.RoleClient}
)

type fixture struct {
	interventions *memInterventions
	parts         *memParts
	slots         *memSlots
	warranty      *fakeWarranty
	publisher     *recordingPublisher
	svc           *Service
	now           time.Time
}

func newFixture() *fixture {
	f := &fixture{
		interventions: &memInterventions{items: map[int64]domain.Intervention{}, lines: map[int64][]domain.ConsumedPart{}, nextID: 100},
		parts:         &memParts{items: map[int64]domain.Part{}},
		slots:         &memSlots{items: map[int64]domain.Slot{}},
		warranty:      &fakeWarranty{},
		publisher:     &recordingPublisher{},
		now:           time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC),
	}

	f.parts.items[5] = domain.Part{
		ID:        5,
		Name:      "Joint de porte",
		Reference: "JP-05",
		UnitPrice: decimal.NewFromInt(20),
		Stock:     5,
		MinStock:  1,
	}

	f.svc = NewService(f.interventions, f.slots, f.parts, f.warranty, f.publisher, directTx{}, (*metrics.Metrics)(nil), nopLogger{})
	f.svc.timeProvider = fixedTime{now: f.now}
	return f
}

func (f *fixture) seedIntervention(isFree bool, status domain.InterventionStatus) {
	iv := domain.NewIntervention(7, time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC), isFree)
	iv.ID = 42
	iv.Status = status
	iv.LaborAmount = decimal.NewFromInt(50)
	iv.RecalculateTotal()
	f.interventions.items[42] = *iv
}

func TestAddPart_BilledIntervention(t *testing.T) {
	f := newFixture()
	f.seedIntervention(false, domain.InterventionStatusInProgress)

	resp, err := f.svc.AddPart(context.Background(), 42, &models.AddPartRequest{PartID: 5, Quantity: 2}, technician)
	require.NoError(t, err)

	assert.Equal(t, 3, f.parts.items[5].Stock)
	require.Len(t, resp.Parts, 1)
	assert.True(t, resp.Parts[0].Subtotal.Equal(decimal.NewFromInt(40)))
	assert.True(t, resp.TotalAmount.Equal(decimal.NewFromInt(90)), "total=%s", resp.TotalAmount)

	stored := f.interventions.items[42]
	assert.True(t, stored.TotalAmount.Equal(decimal.NewFromInt(90)))
	assert.False(t, f.publisher.has(events.StockLow))
}

func TestAddPart_FreeIntervention(t *testing.T) {
	f := newFixture()
	f.seedIntervention(true, domain.InterventionStatusInProgress)

	resp, err := f.svc.AddPart(context.Background(), 42, &models.AddPartRequest{PartID: 5, Quantity: 2}, technician)
	require.NoError(t, err)

	assert.Equal(t, 3, f.parts.items[5].Stock)
	assert.True(t, resp.TotalAmount.IsZero())
	assert.True(t, f.interventions.items[42].TotalAmount.IsZero())
}

func TestAddPart_CompletedInterventionIsClosed(t *testing.T) {
	f := newFixture()
	f.seedIntervention(false, domain.InterventionStatusCompleted)

	_, err := f.svc.AddPart(context.Background(), 42, &models.AddPartRequest{PartID: 5, Quantity: 2}, technician)
	assert.ErrorIs(t, err, ErrInterventionClosed)

	assert.Equal(t, 5, f.parts.items[5].Stock)
	assert.Empty(t, f.interventions.lines[42])
}

func TestAddPart_Errors(t *testing.T) {
	tests := []struct {
		name    string
		req     *models.AddPartRequest
		actor   domain.Actor
		wantErr error
	}{
		{name: "insufficient stock", req: &models.AddPartRequest{PartID: 5, Quantity: 6}, actor: technician, wantErr: ErrInsufficientStock},
		{name: "unknown part", req: &models.AddPartRequest{PartID: 99, Quantity: 1}, actor: technician, wantErr: ErrPartNotFound},
		{name: "zero quantity", req: &models.AddPartRequest{PartID: 5, Quantity: 0}, actor: technician, wantErr: ErrInvalidInput},
		{name: "other technician", req: &models.AddPartRequest{PartID: 5, Quantity: 1}, actor: otherTech, wantErr: ErrAccessDenied},
		{name: "client", req: &models.AddPartRequest{PartID: 5, Quantity: 1}, actor: client, wantErr: ErrAccessDenied},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			f.seedIntervention(false, domain.InterventionStatusPlanned)

			_, err := f.svc.AddPart(context.Background(), 42, tt.req, tt.actor)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, 5, f.parts.items[5].Stock)
			assert.Empty(t, f.interventions.lines[42])
		})
	}
}

func TestAddPart_PublishesLowStock(t *testing.T) {
	f := newFixture()
	f.seedIntervention(false, domain.InterventionStatusPlanned)
	part := f.parts.items[5]
	part.MinStock = 3
	f.parts.items[5] = part

	_, err := f.svc.AddPart(context.Background(), 42, &models.AddPartRequest{PartID: 5, Quantity: 2}, responsable)
	require.NoError(t, err)
	assert.True(t, f.publisher.has(events.StockLow))
}

func TestTransition(t *testing.T) {
	tests := []struct {
		name       string
		from       domain.InterventionStatus
		action     Action
		wantStatus string
		wantErr    error
	}{
		{name: "start planned", from: domain.InterventionStatusPlanned, action: ActionStart, wantStatus: "in_progress"},
		{name: "complete in progress", from: domain.InterventionStatusInProgress, action: ActionComplete, wantStatus: "completed"},
		{name: "cancel planned", from: domain.InterventionStatusPlanned, action: ActionCancel, wantStatus: "cancelled"},
		{name: "complete planned", from: domain.InterventionStatusPlanned, action: ActionComplete, wantErr: ErrInvalidTransition},
		{name: "start completed", from: domain.InterventionStatusCompleted, action: ActionStart, wantErr: ErrInvalidTransition},
		{name: "cancel cancelled", from: domain.InterventionStatusCancelled, action: ActionCancel, wantErr: ErrInvalidTransition},
		{name: "unknown action", from: domain.InterventionStatusPlanned, action: Action("pause"), wantErr: ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			f.seedIntervention(false, tt.from)

			resp, err := f.svc.Transition(context.Background(), 42, tt.action, technician)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, tt.from, f.interventions.items[42].Status)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.Status)
			assert.Equal(t, domain.InterventionStatus(tt.wantStatus), f.interventions.items[42].Status)
		})
	}
}

func TestTransition_CancelReleasesSlot(t *testing.T) {
	f := newFixture()
	f.seedIntervention(false, domain.InterventionStatusPlanned)
	iv := f.interventions.items[42]
	iv.SlotID = ptr.Ptr(int64(70))
	f.interventions.items[42] = iv
	f.slots.items[70] = domain.Slot{ID: 70, TechnicianID: 7, IsReserved: true, InterventionID: ptr.Ptr(int64(42))}

	resp, err := f.svc.Transition(context.Background(), 42, ActionCancel, responsable)
	require.NoError(t, err)
	assert.Equal(t, "cancelled", resp.Status)
	require.NotNil(t, resp.CancelledAt)
	assert.True(t, resp.CancelledAt.Equal(f.now))

	assert.False(t, f.slots.items[70].IsReserved)
	assert.Nil(t, f.slots.items[70].InterventionID)
	assert.True(t, f.publisher.has(events.InterventionCancelled))
}

func TestTransition_CancelKeepsSlotHeldByAnotherIntervention(t *testing.T) {
	f := newFixture()
	f.seedIntervention(false, domain.InterventionStatusPlanned)
	iv := f.interventions.items[42]
	iv.SlotID = ptr.Ptr(int64(70))
	f.interventions.items[42] = iv
	f.slots.items[70] = domain.Slot{ID: 70, TechnicianID: 7, IsReserved: true, InterventionID: ptr.Ptr(int64(43))}

	resp, err := f.svc.Transition(context.Background(), 42, ActionCancel, responsable)
	require.NoError(t, err)
	assert.Equal(t, "cancelled", resp.Status)

	assert.True(t, f.slots.items[70].IsReserved)
	require.NotNil(t, f.slots.items[70].InterventionID)
	assert.Equal(t, int64(43), *f.slots.items[70].InterventionID)
}

func TestTransition_CompleteFreezesTotal(t *testing.T) {
	f := newFixture()
	f.seedIntervention(false, domain.InterventionStatusInProgress)

	_, err := f.svc.AddPart(context.Background(), 42, &models.AddPartRequest{PartID: 5, Quantity: 1}, technician)
	require.NoError(t, err)

	resp, err := f.svc.Transition(context.Background(), 42, ActionComplete, technician)
	require.NoError(t, err)
	assert.True(t, resp.TotalAmount.Equal(decimal.NewFromInt(70)))

	_, err = f.svc.SetLabor(context.Background(), 42, &models.SetLaborRequest{Amount: decimal.NewFromInt(10)}, technician)
	assert.ErrorIs(t, err, ErrInterventionClosed)
	assert.True(t, f.interventions.items[42].TotalAmount.Equal(decimal.NewFromInt(70)))
}

func TestSetLabor(t *testing.T) {
	f := newFixture()
	f.seedIntervention(false, domain.InterventionStatusPlanned)

	resp, err := f.svc.SetLabor(context.Background(), 42, &models.SetLaborRequest{Amount: decimal.RequireFromString("65.50")}, technician)
	require.NoError(t, err)
	assert.True(t, resp.TotalAmount.Equal(decimal.RequireFromString("65.50")))

	_, err = f.svc.SetLabor(context.Background(), 42, &models.SetLaborRequest{Amount: decimal.NewFromInt(-1)}, technician)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestReassign(t *testing.T) {
	f := newFixture()
	f.seedIntervention(false, domain.InterventionStatusPlanned)
	iv := f.interventions.items[42]
	iv.SlotID = ptr.Ptr(int64(70))
	f.interventions.items[42] = iv

	_, err := f.svc.Reassign(context.Background(), 42, &models.ReassignRequest{TechnicianID: 8}, technician)
	assert.ErrorIs(t, err, ErrAccessDenied)

	resp, err := f.svc.Reassign(context.Background(), 42, &models.ReassignRequest{TechnicianID: 8}, responsable)
	require.NoError(t, err)
	assert.Equal(t, int64(8), resp.TechnicianID)
	require.NotNil(t, resp.SlotID)
	assert.Equal(t, int64(70), *resp.SlotID)
	assert.True(t, f.publisher.has(events.InterventionReassigned))

	// новый техник получает доступ, прежний теряет
	_, err = f.svc.GetByID(context.Background(), 42, otherTech)
	assert.NoError(t, err)
	_, err = f.svc.GetByID(context.Background(), 42, technician)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestReassign_SlotStaysWithIntervention(t *testing.T) {
	f := newFixture()
	logs := &warnRecorder{}
	f.svc.logger = logs
	f.seedIntervention(false, domain.InterventionStatusPlanned)
	iv := f.interventions.items[42]
	iv.SlotID = ptr.Ptr(int64(70))
	f.interventions.items[42] = iv
	f.slots.items[70] = domain.Slot{ID: 70, TechnicianID: 7, IsReserved: true, InterventionID: ptr.Ptr(int64(42))}

	_, err := f.svc.Reassign(context.Background(), 42, &models.ReassignRequest{TechnicianID: 8}, responsable)
	require.NoError(t, err)

	slot := f.slots.items[70]
	assert.True(t, slot.IsReserved)
	require.NotNil(t, slot.InterventionID)
	assert.Equal(t, int64(42), *slot.InterventionID)
	assert.Equal(t, int64(7), slot.TechnicianID)

	require.Len(t, logs.warnings, 1)
	assert.Contains(t, logs.warnings[0], "slot=70")
	assert.Contains(t, logs.warnings[0], "new technician=8")
}

func TestReassign_WithoutSlotNoWarning(t *testing.T) {
	f := newFixture()
	logs := &warnRecorder{}
	f.svc.logger = logs
	f.seedIntervention(false, domain.InterventionStatusPlanned)

	_, err := f.svc.Reassign(context.Background(), 42, &models.ReassignRequest{TechnicianID: 8}, responsable)
	require.NoError(t, err)
	assert.Empty(t, logs.warnings)
}

func TestMarkPaid(t *testing.T) {
	t.Run("completed billed intervention", func(t *testing.T) {
		f := newFixture()
		f.seedIntervention(false, domain.InterventionStatusCompleted)

		resp, err := f.svc.MarkPaid(context.Background(), 42, responsable)
		require.NoError(t, err)
		assert.True(t, resp.IsPaid)
		require.NotNil(t, resp.PaidAt)

		again, err := f.svc.MarkPaid(context.Background(), 42, responsable)
		require.NoError(t, err)
		assert.True(t, again.IsPaid)
		assert.True(t, again.PaidAt.Equal(*resp.PaidAt))
	})

	t.Run("free intervention is a no-op", func(t *testing.T) {
		f := newFixture()
		f.seedIntervention(true, domain.InterventionStatusCompleted)

		resp, err := f.svc.MarkPaid(context.Background(), 42, responsable)
		require.NoError(t, err)
		assert.False(t, resp.IsPaid)
		assert.Nil(t, resp.PaidAt)
	})

	t.Run("not completed", func(t *testing.T) {
		f := newFixture()
		f.seedIntervention(false, domain.InterventionStatusInProgress)

		_, err := f.svc.MarkPaid(context.Background(), 42, responsable)
		assert.ErrorIs(t, err, ErrInvalidState)
	})

	t.Run("technician", func(t *testing.T) {
		f := newFixture()
		f.seedIntervention(false, domain.InterventionStatusCompleted)

		_, err := f.svc.MarkPaid(context.Background(), 42, technician)
		assert.ErrorIs(t, err, ErrAccessDenied)
	})
}

func TestCreate_WithSlot(t *testing.T) {
	f := newFixture()
	f.warranty.free = true
	start := time.Date(2024, 3, 4, 14, 0, 0, 0, time.UTC)
	f.slots.items[70] = domain.Slot{ID: 70, TechnicianID: 7, StartAt: start, EndAt: start.Add(time.Hour)}

	resp, err := f.svc.Create(context.Background(), &models.CreateInterventionRequest{
		ClaimID: ptr.Ptr(int64(500)),
		SlotID:  ptr.Ptr(int64(70)),
	}, responsable)
	require.NoError(t, err)

	assert.Equal(t, int64(7), resp.TechnicianID)
	assert.True(t, resp.ScheduledAt.Equal(start))
	assert.True(t, resp.IsFree)
	assert.Equal(t, "planned", resp.Status)

	slot := f.slots.items[70]
	assert.True(t, slot.IsReserved)
	require.NotNil(t, slot.InterventionID)
	assert.Equal(t, resp.ID, *slot.InterventionID)
	assert.True(t, f.publisher.has(events.InterventionCreated))
}

func TestCreate_Errors(t *testing.T) {
	scheduled := time.Date(2024, 3, 4, 14, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		req     *models.CreateInterventionRequest
		actor   domain.Actor
		wantErr error
	}{
		{
			name:    "technician cannot create",
			req:     &models.CreateInterventionRequest{TechnicianID: ptr.Ptr(int64(7)), ScheduledAt: &scheduled},
			actor:   technician,
			wantErr: ErrAccessDenied,
		},
		{
			name:    "missing schedule",
			req:     &models.CreateInterventionRequest{TechnicianID: ptr.Ptr(int64(7))},
			actor:   responsable,
			wantErr: ErrInvalidInput,
		},
		{
			name:    "missing technician",
			req:     &models.CreateInterventionRequest{ScheduledAt: &scheduled},
			actor:   responsable,
			wantErr: ErrInvalidInput,
		},
		{
			name:    "reserved slot",
			req:     &models.CreateInterventionRequest{SlotID: ptr.Ptr(int64(71))},
			actor:   responsable,
			wantErr: ErrSlotAlreadyReserved,
		},
		{
			name:    "unknown slot",
			req:     &models.CreateInterventionRequest{SlotID: ptr.Ptr(int64(404))},
			actor:   responsable,
			wantErr: ErrSlotNotFound,
		},
		{
			name:    "slot of another technician",
			req:     &models.CreateInterventionRequest{SlotID: ptr.Ptr(int64(70)), TechnicianID: ptr.Ptr(int64(8))},
			actor:   responsable,
			wantErr: ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			f.slots.items[70] = domain.Slot{ID: 70, TechnicianID: 7, StartAt: scheduled, EndAt: scheduled.Add(time.Hour)}
			f.slots.items[71] = domain.Slot{ID: 71, TechnicianID: 7, StartAt: scheduled, EndAt: scheduled.Add(time.Hour), IsReserved: true, InterventionID: ptr.Ptr(int64(1))}

			_, err := f.svc.Create(context.Background(), tt.req, tt.actor)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, f.interventions.items)
		})
	}
}

func TestList_Access(t *testing.T) {
	f := newFixture()
	f.seedIntervention(false, domain.InterventionStatusPlanned)

	resp, err := f.svc.List(context.Background(), &models.ListInterventionsRequest{TechnicianID: 7}, technician)
	require.NoError(t, err)
	assert.Len(t, resp.Interventions, 1)

	resp, err = f.svc.List(context.Background(), &models.ListInterventionsRequest{TechnicianID: 7, Status: ptr.Ptr("completed")}, responsable)
	require.NoError(t, err)
	assert.Empty(t, resp.Interventions)

	_, err = f.svc.List(context.Background(), &models.ListInterventionsRequest{TechnicianID: 7}, otherTech)
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = f.svc.List(context.Background(), &models.ListInterventionsRequest{TechnicianID: 7, Status: ptr.Ptr("paused")}, responsable)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetByID_NotFound(t *testing.T) {
	f := newFixture()

	_, err := f.svc.GetByID(context.Background(), 404, responsable)
	assert.ErrorIs(t, err, ErrInterventionNotFound)
}
