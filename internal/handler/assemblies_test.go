package handler_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/vendops/api/internal/database"
	"github.com/vendops/api/internal/handler"
)

// --- Mock store ---

type mockAssemblyStore struct {
	assemblies map[uuid.UUID]database.Assembly
	lastList   database.ListAssembliesParams
}

func newMockAssemblyStore() *mockAssemblyStore {
	return &mockAssemblyStore{assemblies: make(map[uuid.UUID]database.Assembly)}
}

func (m *mockAssemblyStore) addAssembly(name string, priority database.Priority) database.Assembly {
	a := database.Assembly{
		ID:         uuid.New(),
		Name:       name,
		Type:       database.AssemblyTypeKit,
		Components: database.Components{"coin mech": 1},
		Status:     database.AssemblyTaskStatusPending,
		Priority:   priority,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}
	m.assemblies[a.ID] = a
	return a
}

func (m *mockAssemblyStore) ListAssemblies(_ context.Context, arg database.ListAssembliesParams) ([]database.Assembly, error) {
	m.lastList = arg
	var out []database.Assembly
	for _, a := range m.assemblies {
		if arg.Status.Valid && a.Status != arg.Status.AssemblyTaskStatus {
			continue
		}
		if arg.Priority.Valid && a.Priority != arg.Priority.Priority {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

func (m *mockAssemblyStore) GetAssembly(_ context.Context, id uuid.UUID) (database.Assembly, error) {
	a, ok := m.assemblies[id]
	if !ok {
		return database.Assembly{}, pgx.ErrNoRows
	}
	return a, nil
}

func (m *mockAssemblyStore) CreateAssembly(_ context.Context, arg database.CreateAssemblyParams) (database.Assembly, error) {
	a := database.Assembly{
		ID:            uuid.New(),
		Name:          arg.Name,
		Type:          arg.Type,
		Components:    arg.Components,
		Status:        arg.Status,
		Priority:      arg.Priority,
		AssignedTo:    arg.AssignedTo,
		EstimatedTime: arg.EstimatedTime,
		Notes:         arg.Notes,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}
	m.assemblies[a.ID] = a
	return a, nil
}

func (m *mockAssemblyStore) UpdateAssembly(_ context.Context, arg database.UpdateAssemblyParams) (database.Assembly, error) {
	a, ok := m.assemblies[arg.ID]
	if !ok {
		return database.Assembly{}, pgx.ErrNoRows
	}
	a.Name = arg.Name
	a.Type = arg.Type
	a.Components = arg.Components
	a.Status = arg.Status
	a.Priority = arg.Priority
	a.AssignedTo = arg.AssignedTo
	a.EstimatedTime = arg.EstimatedTime
	a.Notes = arg.Notes
	m.assemblies[a.ID] = a
	return a, nil
}

func (m *mockAssemblyStore) DeleteAssembly(_ context.Context, id uuid.UUID) (uuid.UUID, error) {
	if _, ok := m.assemblies[id]; !ok {
		return uuid.Nil, pgx.ErrNoRows
	}
	delete(m.assemblies, id)
	return id, nil
}

func setupAssemblyRouter(store *mockAssemblyStore, sessions *fakeSessions) *chi.Mux {
	h := handler.NewAssemblyHandler(store)
	return setupAPIRouter(sessions, func(r chi.Router) {
		r.Route("/assemblies", h.RegisterRoutes)
	})
}

// --- Tests ---

func TestAssemblies_CustomerForbidden(t *testing.T) {
	sessions := newFakeSessions()
	token, _ := sessions.signIn(t, database.UserRoleCustomer)
	router := setupAssemblyRouter(newMockAssemblyStore(), sessions)

	rr := doAuthRequest(t, router, "GET", "/api/assemblies", nil, token)
	assertStatus(t, rr, http.StatusForbidden)
	assertError(t, rr, "insufficient permissions")
}

func TestListAssemblies_Filters(t *testing.T) {
	sessions, token := adminSession(t)
	store := newMockAssemblyStore()
	store.addAssembly("Payment kit", database.PriorityUrgent)
	store.addAssembly("Cooling kit", database.PriorityLow)
	router := setupAssemblyRouter(store, sessions)

	rr := doAuthRequest(t, router, "GET", "/api/assemblies?priority=urgent&status=pending", nil, token)
	assertStatus(t, rr, http.StatusOK)

	list := decodeList(t, rr)
	if len(list) != 1 || list[0]["name"] != "Payment kit" {
		t.Fatalf("unexpected list: %v", list)
	}
	if !store.lastList.Status.Valid || !store.lastList.Priority.Valid {
		t.Error("expected both filters to be set")
	}
}

func TestListAssemblies_InvalidPriority(t *testing.T) {
	sessions, token := adminSession(t)
	router := setupAssemblyRouter(newMockAssemblyStore(), sessions)

	rr := doAuthRequest(t, router, "GET", "/api/assemblies?priority=asap", nil, token)
	assertStatus(t, rr, http.StatusBadRequest)
	assertError(t, rr, "invalid priority")
}

func TestCreateAssembly_Defaults(t *testing.T) {
	sessions, token := adminSession(t)
	router := setupAssemblyRouter(newMockAssemblyStore(), sessions)

	rr := doAuthRequest(t, router, "POST", "/api/assemblies", map[string]interface{}{
		"name":           "Combo X build",
		"type":           "full_machine",
		"components":     map[string]int{"cabinet": 1, "spiral": 6},
		"estimated_time": 240,
	}, token)
	assertStatus(t, rr, http.StatusCreated)

	resp := decodeMap(t, rr)
	if resp["status"] != "pending" || resp["priority"] != "normal" {
		t.Errorf("defaults: got status=%v priority=%v", resp["status"], resp["priority"])
	}
	if resp["estimated_time"] != float64(240) {
		t.Errorf("estimated_time: got %v", resp["estimated_time"])
	}
	components, _ := resp["components"].(map[string]interface{})
	if components["spiral"] != float64(6) {
		t.Errorf("components: got %v", resp["components"])
	}
}

func TestCreateAssembly_InvalidType(t *testing.T) {
	sessions, token := adminSession(t)
	router := setupAssemblyRouter(newMockAssemblyStore(), sessions)

	rr := doAuthRequest(t, router, "POST", "/api/assemblies", map[string]interface{}{
		"name": "Mystery",
		"type": "gadget",
	}, token)
	assertStatus(t, rr, http.StatusBadRequest)
	assertError(t, rr, "validation failed")
}

func TestCreateAssembly_ZeroComponentQuantity(t *testing.T) {
	sessions, token := adminSession(t)
	router := setupAssemblyRouter(newMockAssemblyStore(), sessions)

	rr := doAuthRequest(t, router, "POST", "/api/assemblies", map[string]interface{}{
		"name":       "Bad kit",
		"type":       "kit",
		"components": map[string]int{"spiral": 0},
	}, token)
	assertStatus(t, rr, http.StatusBadRequest)
}

func TestCreateAssembly_BlankComponentName(t *testing.T) {
	sessions, token := adminSession(t)
	router := setupAssemblyRouter(newMockAssemblyStore(), sessions)

	for _, name := range []string{"", " \t"} {
		rr := doAuthRequest(t, router, "POST", "/api/assemblies", map[string]interface{}{
			"name":       "Bad kit",
			"type":       "kit",
			"components": map[string]int{"spiral": 2, name: 2},
		}, token)
		assertStatus(t, rr, http.StatusBadRequest)
		assertError(t, rr, "validation failed")
	}
}

func TestUpdateAssembly_KeepsOmittedFields(t *testing.T) {
	sessions, token := adminSession(t)
	store := newMockAssemblyStore()
	a := store.addAssembly("Payment kit", database.PriorityHigh)
	router := setupAssemblyRouter(store, sessions)

	rr := doAuthRequest(t, router, "PUT", "/api/assemblies/"+a.ID.String(), map[string]interface{}{
		"name":   "Payment kit v2",
		"type":   "kit",
		"status": "in_progress",
	}, token)
	assertStatus(t, rr, http.StatusOK)

	got := store.assemblies[a.ID]
	if got.Priority != database.PriorityHigh {
		t.Errorf("priority: got %s, want high", got.Priority)
	}
	if got.Status != database.AssemblyTaskStatusInProgress {
		t.Errorf("status: got %s, want in_progress", got.Status)
	}
	if got.Components["coin mech"] != 1 {
		t.Errorf("components were dropped: %v", got.Components)
	}
}

func TestAssembly_NotFound(t *testing.T) {
	sessions, token := adminSession(t)
	router := setupAssemblyRouter(newMockAssemblyStore(), sessions)
	path := "/api/assemblies/" + uuid.New().String()

	rr := doAuthRequest(t, router, "GET", path, nil, token)
	assertStatus(t, rr, http.StatusNotFound)
	assertError(t, rr, "assembly not found")

	rr = doAuthRequest(t, router, "DELETE", path, nil, token)
	assertStatus(t, rr, http.StatusNotFound)

	rr = doAuthRequest(t, router, "GET", "/api/assemblies/not-a-uuid", nil, token)
	assertStatus(t, rr, http.StatusBadRequest)
	assertError(t, rr, "invalid assembly ID")
}
