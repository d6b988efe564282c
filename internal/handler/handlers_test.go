package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/avkorz/diskhub/internal/auth"
	"github.com/avkorz/diskhub/internal/docstore"
	"github.com/avkorz/diskhub/internal/family"
	"github.com/avkorz/diskhub/internal/model"
	"github.com/avkorz/diskhub/internal/todo"
	"github.com/avkorz/diskhub/internal/ws"
)

// testEnv wires handlers over the in-memory store, the way the server does
// over the real disk.
type testEnv struct {
	members *MemberHandler
	todos   *TodoHandler
	authH   *AuthHandler
	mux     *http.ServeMux
}

func setupEnv(t *testing.T) *testEnv {
	t.Helper()
	logger := slog.Default()
	store := docstore.NewMemoryStore()
	repo := docstore.NewRepo(store)
	hub := ws.NewHub(logger)

	familySvc := family.NewService(repo, store, logger)
	todoSvc := todo.NewService(repo, logger)

	env := &testEnv{
		members: NewMemberHandler(familySvc, hub, logger),
		todos:   NewTodoHandler(todoSvc, hub, logger),
		authH:   NewAuthHandler(familySvc, nil, []byte("secret"), 0, logger),
		mux:     http.NewServeMux(),
	}

	env.mux.HandleFunc("POST /api/family/login", env.authH.Login)
	env.mux.HandleFunc("GET /api/family/members", env.members.List)
	env.mux.HandleFunc("POST /api/family/members", env.members.Create)
	env.mux.HandleFunc("DELETE /api/family/members/{id}", env.members.Remove)
	env.mux.HandleFunc("GET /api/family/todos", env.todos.Lists)
	env.mux.HandleFunc("POST /api/family/todos", env.todos.CreateList)
	return env
}

func (e *testEnv) do(t *testing.T, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	req = req.WithContext(auth.WithIdentity(context.Background(), auth.Identity{Token: "tok"}))
	rec := httptest.NewRecorder()
	e.mux.ServeHTTP(rec, req)
	return rec
}

func TestMemberCreateLoginList(t *testing.T) {
	env := setupEnv(t)

	rec := env.do(t, "POST", "/api/family/members", `{"name":"Alice","username":"alice","password":"hunter2"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d: %s", rec.Code, rec.Body)
	}

	rec = env.do(t, "POST", "/api/family/login", `{"username":"alice","password":"hunter2"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("login status = %d: %s", rec.Code, rec.Body)
	}
	var loginResp struct {
		Member model.FamilyMember `json:"member"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &loginResp); err != nil {
		t.Fatalf("decode login: %v", err)
	}
	if loginResp.Member.Username != "alice" || loginResp.Member.PasswordHash != "" {
		t.Errorf("login member = %+v", loginResp.Member)
	}

	rec = env.do(t, "POST", "/api/family/login", `{"username":"alice","password":"wrong"}`)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("bad login status = %d, want 401", rec.Code)
	}

	rec = env.do(t, "GET", "/api/family/members", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("list status = %d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "passwordHash") {
		t.Error("password hash leaked in member listing")
	}
}

func TestMemberCreateValidation(t *testing.T) {
	env := setupEnv(t)

	rec := env.do(t, "POST", "/api/family/members", `{"name":"NoCreds"}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}

	rec = env.do(t, "POST", "/api/family/members", `not json`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestMemberRemoveNotFound(t *testing.T) {
	env := setupEnv(t)

	rec := env.do(t, "DELETE", "/api/family/members/ghost", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestTodoScopeValidation(t *testing.T) {
	env := setupEnv(t)

	// A member name that would escape the family area must be rejected.
	rec := env.do(t, "GET", "/api/family/todos?member=..", "")
	if rec.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", rec.Code)
	}

	rec = env.do(t, "GET", "/api/family/todos", "")
	if rec.Code != http.StatusForbidden {
		t.Errorf("missing member status = %d, want 403", rec.Code)
	}
}

func TestTodoCreateAndList(t *testing.T) {
	env := setupEnv(t)

	rec := env.do(t, "POST", "/api/family/todos?member=alice", `{"name":"Chores"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d: %s", rec.Code, rec.Body)
	}

	rec = env.do(t, "GET", "/api/family/todos?member=alice", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("list status = %d", rec.Code)
	}
	var resp struct {
		Lists []model.TodoList `json:"lists"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Lists) != 1 || resp.Lists[0].Name != "Chores" {
		t.Errorf("lists = %+v", resp.Lists)
	}
}
