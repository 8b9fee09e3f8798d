package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	"habithero/internal/dates"
	apperrors "habithero/internal/errors"
	"habithero/internal/models"
	"habithero/internal/pagination"
	"habithero/internal/services"
)

// --- mock habit service ---

type mockHabitService struct {
	createHabitFn  func(in services.HabitInput) (*models.Habit, error)
	listHabitsFn   func(page pagination.PageRequest, filter services.HabitFilter) (*pagination.PageResponse[models.Habit], error)
	getHabitByIDFn func(habitID string) (*models.Habit, error)
	updateHabitFn  func(habitID string, upd services.HabitUpdate) (*models.Habit, error)
	deleteHabitFn  func(habitID string) error
}

func (m *mockHabitService) CreateHabit(in services.HabitInput) (*models.Habit, error) {
	if m.createHabitFn != nil {
		return m.createHabitFn(in)
	}
	return &models.Habit{}, nil
}

func (m *mockHabitService) ListHabits(page pagination.PageRequest, filter services.HabitFilter) (*pagination.PageResponse[models.Habit], error) {
	if m.listHabitsFn != nil {
		return m.listHabitsFn(page, filter)
	}
	resp := pagination.NewPageResponse([]models.Habit{}, 1, 20, 0)
	return &resp, nil
}

func (m *mockHabitService) GetHabitByID(habitID string) (*models.Habit, error) {
	if m.getHabitByIDFn != nil {
		return m.getHabitByIDFn(habitID)
	}
	return &models.Habit{}, nil
}

func (m *mockHabitService) UpdateHabit(habitID string, upd services.HabitUpdate) (*models.Habit, error) {
	if m.updateHabitFn != nil {
		return m.updateHabitFn(habitID, upd)
	}
	return &models.Habit{}, nil
}

func (m *mockHabitService) DeleteHabit(habitID string) error {
	if m.deleteHabitFn != nil {
		return m.deleteHabitFn(habitID)
	}
	return nil
}

var _ services.HabitServicer = (*mockHabitService)(nil)

func setupHabitRouter(handler *HabitHandler) *gin.Engine {
	r := gin.New()
	r.POST("/habits", handler.CreateHabit)
	r.GET("/habits", handler.GetHabits)
	r.GET("/habits/:id", handler.GetHabit)
	r.PUT("/habits/:id", handler.UpdateHabit)
	r.DELETE("/habits/:id", handler.DeleteHabit)
	return r
}

func echoHabit(in services.HabitInput) (*models.Habit, error) {
	return &models.Habit{
		Base:      models.Base{ID: habitID},
		Name:      in.Name,
		Frequency: in.Frequency,
		Category:  in.Category,
		StartDate: in.StartDate,
	}, nil
}

func TestHabitHandler_CreateHabit(t *testing.T) {
	t.Run("returns 201 on success", func(t *testing.T) {
		audit := &mockAuditService{}
		handler := NewHabitHandler(&mockHabitService{createHabitFn: echoHabit}, audit)
		r := setupHabitRouter(handler)

		rec := doRequest(r, "POST", "/habits",
			`{"name":"Read","frequency":"weekly","category":"Learning","start_date":"2025-01-06"}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		habit := parseJSON(t, rec)["habit"].(map[string]interface{})
		if habit["name"] != "Read" {
			t.Errorf("expected Read, got %v", habit["name"])
		}
		if habit["start_date"] != "2025-01-06" {
			t.Errorf("expected start_date 2025-01-06, got %v", habit["start_date"])
		}
		if len(audit.entries) != 1 || audit.entries[0].action != "CREATE_HABIT" {
			t.Errorf("expected one CREATE_HABIT audit entry, got %v", audit.entries)
		}
	})

	t.Run("leaves start date to the service when omitted", func(t *testing.T) {
		var got services.HabitInput
		svc := &mockHabitService{createHabitFn: func(in services.HabitInput) (*models.Habit, error) {
			got = in
			return echoHabit(in)
		}}
		r := setupHabitRouter(NewHabitHandler(svc, &mockAuditService{}))

		rec := doRequest(r, "POST", "/habits", `{"name":"Walk","frequency":"daily","category":"Health"}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		if !got.StartDate.IsZero() {
			t.Errorf("expected zero start date, got %v", got.StartDate)
		}
	})

	t.Run("returns 400 on missing name", func(t *testing.T) {
		r := setupHabitRouter(NewHabitHandler(&mockHabitService{}, &mockAuditService{}))

		rec := doRequest(r, "POST", "/habits", `{"frequency":"daily","category":"Health"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
	})

	t.Run("returns 400 on unknown frequency", func(t *testing.T) {
		r := setupHabitRouter(NewHabitHandler(&mockHabitService{}, &mockAuditService{}))

		rec := doRequest(r, "POST", "/habits", `{"name":"Walk","frequency":"monthly","category":"Health"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
	})

	t.Run("returns 400 INVALID_DATE on malformed start date", func(t *testing.T) {
		r := setupHabitRouter(NewHabitHandler(&mockHabitService{}, &mockAuditService{}))

		rec := doRequest(r, "POST", "/habits",
			`{"name":"Walk","frequency":"daily","category":"Health","start_date":"2025-02-30"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_DATE")
	})

	t.Run("returns 500 when the service fails", func(t *testing.T) {
		svc := &mockHabitService{createHabitFn: func(services.HabitInput) (*models.Habit, error) {
			return nil, apperrors.ErrInternalServer
		}}
		audit := &mockAuditService{}
		r := setupHabitRouter(NewHabitHandler(svc, audit))

		rec := doRequest(r, "POST", "/habits", `{"name":"Walk","frequency":"daily","category":"Health"}`)

		if rec.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INTERNAL_ERROR")
		if len(audit.entries) != 0 {
			t.Errorf("expected no audit entry, got %v", audit.entries)
		}
	})
}

func TestHabitHandler_GetHabits(t *testing.T) {
	t.Run("passes filters to the service", func(t *testing.T) {
		var gotFilter services.HabitFilter
		var gotPage pagination.PageRequest
		svc := &mockHabitService{listHabitsFn: func(page pagination.PageRequest, filter services.HabitFilter) (*pagination.PageResponse[models.Habit], error) {
			gotPage, gotFilter = page, filter
			resp := pagination.NewPageResponse([]models.Habit{{Name: "Walk"}}, 2, 5, 6)
			return &resp, nil
		}}
		r := setupHabitRouter(NewHabitHandler(svc, &mockAuditService{}))

		rec := doRequest(r, "GET", "/habits?category=Health&frequency=daily&page=2&page_size=5", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if gotFilter.Category == nil || *gotFilter.Category != "Health" {
			t.Errorf("expected category filter Health, got %v", gotFilter.Category)
		}
		if gotFilter.Frequency == nil || *gotFilter.Frequency != models.FrequencyDaily {
			t.Errorf("expected frequency filter daily, got %v", gotFilter.Frequency)
		}
		if gotPage.Page != 2 || gotPage.PageSize != 5 {
			t.Errorf("expected page 2 size 5, got %+v", gotPage)
		}
		result := parseJSON(t, rec)
		if result["total_pages"].(float64) != 2 {
			t.Errorf("expected 2 total pages, got %v", result["total_pages"])
		}
	})

	t.Run("returns 400 on unknown frequency filter", func(t *testing.T) {
		r := setupHabitRouter(NewHabitHandler(&mockHabitService{}, &mockAuditService{}))

		rec := doRequest(r, "GET", "/habits?frequency=hourly", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_FREQUENCY")
	})

	t.Run("returns 400 on oversized page", func(t *testing.T) {
		r := setupHabitRouter(NewHabitHandler(&mockHabitService{}, &mockAuditService{}))

		rec := doRequest(r, "GET", "/habits?page_size=500", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
	})
}

func TestHabitHandler_GetHabit(t *testing.T) {
	t.Run("returns 200 with the habit", func(t *testing.T) {
		svc := &mockHabitService{getHabitByIDFn: func(id string) (*models.Habit, error) {
			return &models.Habit{Base: models.Base{ID: id}, Name: "Walk"}, nil
		}}
		r := setupHabitRouter(NewHabitHandler(svc, &mockAuditService{}))

		rec := doRequest(r, "GET", "/habits/"+habitID, "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		habit := parseJSON(t, rec)["habit"].(map[string]interface{})
		if habit["id"] != habitID {
			t.Errorf("expected id %s, got %v", habitID, habit["id"])
		}
	})

	t.Run("returns 400 on malformed id", func(t *testing.T) {
		r := setupHabitRouter(NewHabitHandler(&mockHabitService{}, &mockAuditService{}))

		rec := doRequest(r, "GET", "/habits/42", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
	})

	t.Run("returns 404 when not found", func(t *testing.T) {
		svc := &mockHabitService{getHabitByIDFn: func(string) (*models.Habit, error) {
			return nil, apperrors.ErrHabitNotFound
		}}
		r := setupHabitRouter(NewHabitHandler(svc, &mockAuditService{}))

		rec := doRequest(r, "GET", "/habits/"+habitID, "")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "HABIT_NOT_FOUND")
	})
}

func TestHabitHandler_UpdateHabit(t *testing.T) {
	t.Run("passes only the provided fields", func(t *testing.T) {
		var got services.HabitUpdate
		svc := &mockHabitService{updateHabitFn: func(id string, upd services.HabitUpdate) (*models.Habit, error) {
			got = upd
			return &models.Habit{Base: models.Base{ID: id}, Name: *upd.Name}, nil
		}}
		r := setupHabitRouter(NewHabitHandler(svc, &mockAuditService{}))

		rec := doRequest(r, "PUT", "/habits/"+habitID, `{"name":"Run","start_date":"2025-03-01"}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if got.Description != nil || got.Category != nil || got.Frequency != nil {
			t.Errorf("expected untouched fields to be nil, got %+v", got)
		}
		if got.StartDate == nil || !got.StartDate.Equal(dates.MustParse("2025-03-01")) {
			t.Errorf("expected start date 2025-03-01, got %v", got.StartDate)
		}
	})

	t.Run("returns 409 when frequency changes", func(t *testing.T) {
		svc := &mockHabitService{updateHabitFn: func(string, services.HabitUpdate) (*models.Habit, error) {
			return nil, apperrors.ErrFrequencyImmutable
		}}
		r := setupHabitRouter(NewHabitHandler(svc, &mockAuditService{}))

		rec := doRequest(r, "PUT", "/habits/"+habitID, `{"frequency":"weekly"}`)

		if rec.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "FREQUENCY_IMMUTABLE")
	})

	t.Run("returns 400 on empty name", func(t *testing.T) {
		r := setupHabitRouter(NewHabitHandler(&mockHabitService{}, &mockAuditService{}))

		rec := doRequest(r, "PUT", "/habits/"+habitID, `{"name":""}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
	})
}

func TestHabitHandler_DeleteHabit(t *testing.T) {
	t.Run("returns 200 and audits the delete", func(t *testing.T) {
		var deleted string
		svc := &mockHabitService{deleteHabitFn: func(id string) error {
			deleted = id
			return nil
		}}
		audit := &mockAuditService{}
		r := setupHabitRouter(NewHabitHandler(svc, audit))

		rec := doRequest(r, "DELETE", "/habits/"+habitID, "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if deleted != habitID {
			t.Errorf("expected %s deleted, got %s", habitID, deleted)
		}
		if len(audit.entries) != 1 || audit.entries[0].resourceID != habitID {
			t.Errorf("expected DELETE_HABIT audit for %s, got %v", habitID, audit.entries)
		}
	})

	t.Run("returns 404 when not found", func(t *testing.T) {
		svc := &mockHabitService{deleteHabitFn: func(string) error { return apperrors.ErrHabitNotFound }}
		r := setupHabitRouter(NewHabitHandler(svc, &mockAuditService{}))

		rec := doRequest(r, "DELETE", "/habits/"+habitID, "")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})
}
