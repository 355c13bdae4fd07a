package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"choreboard/internal/repository"
	"choreboard/internal/service"
)

var testDBSeq atomic.Int64

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	dsn := fmt.Sprintf("file:server_test_%d?mode=memory&cache=shared", testDBSeq.Add(1))
	db, err := repository.NewDB(dsn)
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	userRepo := repository.NewUserRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	memberRepo := repository.NewMemberRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	completionRepo := repository.NewCompletionRepository(db)

	srv := New(
		service.NewAuthService(userRepo, "test-secret", time.Hour),
		service.NewTaskService(taskRepo, categoryRepo, memberRepo),
		service.NewCategoryService(categoryRepo),
		service.NewMemberService(memberRepo),
		service.NewHistoryService(completionRepo, taskRepo, memberRepo),
	)
	return srv.Router()
}

func doJSON(t *testing.T, router *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func signup(t *testing.T, router *gin.Engine, username string) string {
	t.Helper()
	creds := map[string]string{"username": username, "password": "a sturdy password"}
	if rec := doJSON(t, router, http.MethodPost, "/api/register", "", creds); rec.Code != http.StatusCreated {
		t.Fatalf("register %s: status %d, body %s", username, rec.Code, rec.Body.String())
	}
	rec := doJSON(t, router, http.MethodPost, "/api/login", "", creds)
	if rec.Code != http.StatusOK {
		t.Fatalf("login %s: status %d, body %s", username, rec.Code, rec.Body.String())
	}
	var out struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil || out.Token == "" {
		t.Fatalf("login %s: bad body %s", username, rec.Body.String())
	}
	return out.Token
}

func TestAuthRequired(t *testing.T) {
	router := newTestRouter(t)

	if rec := doJSON(t, router, http.MethodGet, "/api/tasks", "", nil); rec.Code != http.StatusUnauthorized {
		t.Errorf("missing token: status = %d, want 401", rec.Code)
	}
	if rec := doJSON(t, router, http.MethodGet, "/api/tasks", "bogus-token", nil); rec.Code != http.StatusUnauthorized {
		t.Errorf("bogus token: status = %d, want 401", rec.Code)
	}
}

func TestTaskLifecycleOverHTTP(t *testing.T) {
	router := newTestRouter(t)
	token := signup(t, router, "alice")

	// Create a weekly chore.
	rec := doJSON(t, router, http.MethodPost, "/api/tasks", token, map[string]interface{}{
		"name":          "vacuum hallway",
		"is_recurring":  true,
		"interval_days": 7,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create task: status %d, body %s", rec.Code, rec.Body.String())
	}
	var created struct {
		ID uint `json:"id"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode created task: %v", err)
	}

	// Never completed: overdue on the board.
	rec = doJSON(t, router, http.MethodGet, "/api/tasks?today=2024-03-15", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list tasks: status %d", rec.Code)
	}
	var listed []struct {
		ID     uint   `json:"id"`
		Status string `json:"status"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &listed); err != nil {
		t.Fatalf("decode listing: %v", err)
	}
	if len(listed) != 1 || listed[0].Status != "overdue" {
		t.Fatalf("listing = %s, want one overdue task", rec.Body.String())
	}

	// Complete it on the 15th; on the same day it reads done.
	rec = doJSON(t, router, http.MethodPost, fmt.Sprintf("/api/tasks/%d/complete", created.ID), token, map[string]interface{}{
		"completed_at": "2024-03-15T09:00:00Z",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("complete task: status %d, body %s", rec.Code, rec.Body.String())
	}
	rec = doJSON(t, router, http.MethodGet, fmt.Sprintf("/api/tasks/%d?today=2024-03-15", created.ID), token, nil)
	var got struct {
		Status  string    `json:"status"`
		NextDue time.Time `json:"next_due"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode task: %v", err)
	}
	if got.Status != "done" {
		t.Errorf("status after completion = %q, want done", got.Status)
	}

	// Wipe history; the task is immediately overdue again.
	if rec = doJSON(t, router, http.MethodDelete, "/api/history", token, nil); rec.Code != http.StatusNoContent {
		t.Fatalf("clear history: status %d", rec.Code)
	}
	rec = doJSON(t, router, http.MethodGet, fmt.Sprintf("/api/tasks/%d?today=2024-03-15", created.ID), token, nil)
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode task: %v", err)
	}
	if got.Status != "overdue" {
		t.Errorf("status after history wipe = %q, want overdue", got.Status)
	}
}

func TestValidationErrorsAreBadRequests(t *testing.T) {
	router := newTestRouter(t)
	token := signup(t, router, "alice")

	rec := doJSON(t, router, http.MethodPost, "/api/tasks", token, map[string]interface{}{
		"name":         "stretch",
		"is_recurring": true,
	})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("recurring without interval: status = %d, want 400", rec.Code)
	}
}

func TestForeignOwnerReadsAsNotFound(t *testing.T) {
	router := newTestRouter(t)
	aliceToken := signup(t, router, "alice")
	bobToken := signup(t, router, "bob")

	rec := doJSON(t, router, http.MethodPost, "/api/tasks", aliceToken, map[string]interface{}{
		"name": "alice's secret chore",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create task: status %d", rec.Code)
	}
	var created struct {
		ID uint `json:"id"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode created task: %v", err)
	}

	path := fmt.Sprintf("/api/tasks/%d", created.ID)
	if rec := doJSON(t, router, http.MethodGet, path, bobToken, nil); rec.Code != http.StatusNotFound {
		t.Errorf("foreign GET: status = %d, want 404", rec.Code)
	}
	if rec := doJSON(t, router, http.MethodDelete, path, bobToken, nil); rec.Code != http.StatusNotFound {
		t.Errorf("foreign DELETE: status = %d, want 404", rec.Code)
	}
	if rec := doJSON(t, router, http.MethodGet, path, aliceToken, nil); rec.Code != http.StatusOK {
		t.Errorf("owner GET after foreign delete attempt: status = %d, want 200", rec.Code)
	}
}

func TestCategoryConflict(t *testing.T) {
	router := newTestRouter(t)
	token := signup(t, router, "alice")

	body := map[string]string{"name": "kitchen", "color": "#ff8800"}
	if rec := doJSON(t, router, http.MethodPost, "/api/categories", token, body); rec.Code != http.StatusCreated {
		t.Fatalf("create category: status %d", rec.Code)
	}
	if rec := doJSON(t, router, http.MethodPost, "/api/categories", token, body); rec.Code != http.StatusConflict {
		t.Errorf("duplicate category: status = %d, want 409", rec.Code)
	}
}

func TestHealth(t *testing.T) {
	router := newTestRouter(t)
	rec := doJSON(t, router, http.MethodGet, "/health", "", nil)
	if rec.Code != http.StatusOK {
		t.Errorf("health: status = %d, want 200", rec.Code)
	}
}
