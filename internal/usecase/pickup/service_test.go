package pickup

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	domainPickup "wastemanage/internal/domain/pickup"
	"wastemanage/internal/logger"
)

func TestMain(m *testing.M) {
	logger.Logger = zap.NewNop()
	m.Run()
}

// fakePickupRepository is an in-memory stand-in for the database-backed
// repository.
type fakePickupRepository struct {
	requests map[uuid.UUID]*domainPickup.PickupRequest
}

func newFakePickupRepository() *fakePickupRepository {
	return &fakePickupRepository{requests: make(map[uuid.UUID]*domainPickup.PickupRequest)}
}

func (r *fakePickupRepository) Create(_ context.Context, p *domainPickup.PickupRequest) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt
	clone := *p
	r.requests[p.ID] = &clone
	return nil
}

func (r *fakePickupRepository) GetByID(_ context.Context, id uuid.UUID) (*domainPickup.PickupRequest, error) {
	p, ok := r.requests[id]
	if !ok {
		return nil, domainPickup.ErrRequestNotFound
	}
	clone := *p
	return &clone, nil
}

func (r *fakePickupRepository) ListByUser(_ context.Context, userID uuid.UUID) ([]*domainPickup.PickupRequest, error) {
	var result []*domainPickup.PickupRequest
	for _, p := range r.requests {
		if p.UserID == userID {
			clone := *p
			result = append(result, &clone)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	return result, nil
}

func (r *fakePickupRepository) List(_ context.Context, filter *domainPickup.Filter) ([]*domainPickup.PickupRequest, error) {
	var result []*domainPickup.PickupRequest
	for _, p := range r.requests {
		if filter != nil {
			if filter.Status != nil && p.Status != *filter.Status {
				continue
			}
			if filter.WasteType != nil && !containsWasteType(p.WasteTypes, *filter.WasteType) {
				continue
			}
			if filter.StartDate != nil && p.PreferredDate.Before(*filter.StartDate) {
				continue
			}
			if filter.EndDate != nil && p.PreferredDate.After(*filter.EndDate) {
				continue
			}
		}
		clone := *p
		result = append(result, &clone)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	return result, nil
}

func (r *fakePickupRepository) Update(_ context.Context, p *domainPickup.PickupRequest) error {
	if _, ok := r.requests[p.ID]; !ok {
		return domainPickup.ErrRequestNotFound
	}
	p.UpdatedAt = time.Now()
	clone := *p
	r.requests[p.ID] = &clone
	return nil
}

func (r *fakePickupRepository) UpdateStatus(_ context.Context, id uuid.UUID, status domainPickup.Status, completedAt *time.Time) error {
	p, ok := r.requests[id]
	if !ok {
		return domainPickup.ErrRequestNotFound
	}
	p.Status = status
	if completedAt != nil {
		p.CompletedAt = completedAt
	}
	p.UpdatedAt = time.Now()
	return nil
}

func (r *fakePickupRepository) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.requests[id]; !ok {
		return domainPickup.ErrRequestNotFound
	}
	delete(r.requests, id)
	return nil
}

func (r *fakePickupRepository) GetStatistics(_ context.Context) (*domainPickup.Statistics, error) {
	stats := &domainPickup.Statistics{
		ByStatus:    make(map[string]int),
		ByWasteType: make(map[string]int),
	}
	for _, p := range r.requests {
		stats.TotalRequests++
		stats.ByStatus[string(p.Status)]++
		for _, wt := range p.WasteTypes {
			stats.ByWasteType[string(wt)]++
		}
	}
	return stats, nil
}

func containsWasteType(types []domainPickup.WasteType, want domainPickup.WasteType) bool {
	for _, wt := range types {
		if wt == want {
			return true
		}
	}
	return false
}

func validCreateRequest() *CreateRequest {
	date := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)
	return &CreateRequest{
		Address:         "12 Riverside Drive, Springfield",
		WasteTypes:      []string{"paper", "plastics"},
		EstimatedWeight: 12.5,
		PreferredDate:   &date,
		PreferredSlot:   "morning",
	}
}

func TestCreateForcesPendingStatus(t *testing.T) {
	repo := newFakePickupRepository()
	svc := NewService(repo)

	resp, err := svc.Create(context.Background(), uuid.New(), validCreateRequest())
	require.NoError(t, err)

	assert.Equal(t, "pending", resp.Status)
	assert.Equal(t, 1, resp.Priority)
	assert.Nil(t, resp.CompletedAt)
}

func TestCreateRejectsInvalidWasteType(t *testing.T) {
	repo := newFakePickupRepository()
	svc := NewService(repo)

	req := validCreateRequest()
	req.WasteTypes = []string{"paper", "glass"}

	_, err := svc.Create(context.Background(), uuid.New(), req)
	assert.Error(t, err)
	assert.Empty(t, repo.requests)
}

func TestCreateRejectsMissingFields(t *testing.T) {
	repo := newFakePickupRepository()
	svc := NewService(repo)

	req := validCreateRequest()
	req.Address = ""
	req.PreferredDate = nil

	_, err := svc.Create(context.Background(), uuid.New(), req)
	assert.Error(t, err)
}

func TestListMineReturnsOnlyOwnRequests(t *testing.T) {
	repo := newFakePickupRepository()
	svc := NewService(repo)

	owner := uuid.New()
	other := uuid.New()

	_, err := svc.Create(context.Background(), owner, validCreateRequest())
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), other, validCreateRequest())
	require.NoError(t, err)

	list, err := svc.ListMine(context.Background(), owner)
	require.NoError(t, err)
	require.Equal(t, 1, list.Count)
	assert.Equal(t, owner, list.Requests[0].UserID)
}

func TestUpdateStatusHappyPath(t *testing.T) {
	repo := newFakePickupRepository()
	svc := NewService(repo)

	created, err := svc.Create(context.Background(), uuid.New(), validCreateRequest())
	require.NoError(t, err)

	for _, status := range []string{"scheduled", "in-progress"} {
		resp, err := svc.UpdateStatus(context.Background(), created.ID, &UpdateStatusRequest{Status: status})
		require.NoError(t, err)
		assert.Equal(t, status, resp.Status)
		assert.Nil(t, resp.CompletedAt)
	}

	resp, err := svc.UpdateStatus(context.Background(), created.ID, &UpdateStatusRequest{Status: "completed"})
	require.NoError(t, err)
	assert.Equal(t, "completed", resp.Status)
	require.NotNil(t, resp.CompletedAt)
	assert.WithinDuration(t, time.Now(), *resp.CompletedAt, time.Minute)
}

func TestUpdateStatusRejectsInvalidTransition(t *testing.T) {
	repo := newFakePickupRepository()
	svc := NewService(repo)

	created, err := svc.Create(context.Background(), uuid.New(), validCreateRequest())
	require.NoError(t, err)

	_, err = svc.UpdateStatus(context.Background(), created.ID, &UpdateStatusRequest{Status: "completed"})
	assert.True(t, errors.Is(err, domainPickup.ErrInvalidTransition))

	stored, _ := repo.GetByID(context.Background(), created.ID)
	assert.Equal(t, domainPickup.StatusPending, stored.Status)
}

func TestUpdateStatusRejectsUnknownStatus(t *testing.T) {
	repo := newFakePickupRepository()
	svc := NewService(repo)

	created, err := svc.Create(context.Background(), uuid.New(), validCreateRequest())
	require.NoError(t, err)

	_, err = svc.UpdateStatus(context.Background(), created.ID, &UpdateStatusRequest{Status: "done"})
	assert.True(t, errors.Is(err, domainPickup.ErrInvalidStatus))
}

func TestUpdateEnforcesLifecycleOnFullUpdate(t *testing.T) {
	repo := newFakePickupRepository()
	svc := NewService(repo)

	created, err := svc.Create(context.Background(), uuid.New(), validCreateRequest())
	require.NoError(t, err)

	status := "completed"
	_, err = svc.Update(context.Background(), created.ID, &UpdateRequest{Status: &status})
	assert.True(t, errors.Is(err, domainPickup.ErrInvalidTransition))

	status = "scheduled"
	routeID := "route-7"
	resp, err := svc.Update(context.Background(), created.ID, &UpdateRequest{Status: &status, RouteID: &routeID})
	require.NoError(t, err)
	assert.Equal(t, "scheduled", resp.Status)
	require.NotNil(t, resp.RouteID)
	assert.Equal(t, "route-7", *resp.RouteID)
}

func TestUpdateStampsCompletedAt(t *testing.T) {
	repo := newFakePickupRepository()
	svc := NewService(repo)

	created, err := svc.Create(context.Background(), uuid.New(), validCreateRequest())
	require.NoError(t, err)

	for _, status := range []string{"scheduled", "in-progress", "completed"} {
		s := status
		_, err = svc.Update(context.Background(), created.ID, &UpdateRequest{Status: &s})
		require.NoError(t, err)
	}

	stored, err := repo.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.CompletedAt)
}

func TestDeleteMissingRequest(t *testing.T) {
	repo := newFakePickupRepository()
	svc := NewService(repo)

	err := svc.Delete(context.Background(), uuid.New())
	assert.True(t, errors.Is(err, domainPickup.ErrRequestNotFound))
}

func TestListAllRejectsInvalidFilters(t *testing.T) {
	repo := newFakePickupRepository()
	svc := NewService(repo)

	_, err := svc.ListAll(context.Background(), &FilterRequest{Status: "done"})
	assert.Error(t, err)

	_, err = svc.ListAll(context.Background(), &FilterRequest{WasteType: "glass"})
	assert.Error(t, err)
}

func TestListAllFiltersByStatus(t *testing.T) {
	repo := newFakePickupRepository()
	svc := NewService(repo)

	created, err := svc.Create(context.Background(), uuid.New(), validCreateRequest())
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), uuid.New(), validCreateRequest())
	require.NoError(t, err)

	_, err = svc.UpdateStatus(context.Background(), created.ID, &UpdateStatusRequest{Status: "scheduled"})
	require.NoError(t, err)

	list, err := svc.ListAll(context.Background(), &FilterRequest{Status: "scheduled"})
	require.NoError(t, err)
	require.Equal(t, 1, list.Count)
	assert.Equal(t, created.ID, list.Requests[0].ID)
}

func TestGetStatistics(t *testing.T) {
	repo := newFakePickupRepository()
	svc := NewService(repo)

	first, err := svc.Create(context.Background(), uuid.New(), validCreateRequest())
	require.NoError(t, err)

	second := validCreateRequest()
	second.WasteTypes = []string{"metal"}
	_, err = svc.Create(context.Background(), uuid.New(), second)
	require.NoError(t, err)

	_, err = svc.UpdateStatus(context.Background(), first.ID, &UpdateStatusRequest{Status: "cancelled"})
	require.NoError(t, err)

	stats, err := svc.GetStatistics(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, stats.TotalRequests)
	assert.Equal(t, 1, stats.ByStatus["pending"])
	assert.Equal(t, 1, stats.ByStatus["cancelled"])
	assert.Equal(t, 1, stats.ByWasteType["metal"])
	assert.Equal(t, 1, stats.ByWasteType["paper"])
}
