package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/panaderia/bread-orders/internal/core/domain"
)

func TestUserHandler_Create(t *testing.T) {
	e := newTestEcho()
	stub := &stubUserService{users: []domain.PublicUser{{Username: "admin", Role: domain.RoleAdmin}}}
	handler := NewUserHandler(stub, fixedCounter(0))

	c, rec := newJSONContext(e, http.MethodPost, "/api/users", `{"username":"alice","password":"secret","role":"user"}`)
	if err := handler.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var users []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &users); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("expected 2 users, got %d", len(users))
	}
	for _, u := range users {
		if _, leaked := u["passwordHash"]; leaked {
			t.Fatalf("password hash leaked: %v", u)
		}
	}
}

func TestUserHandler_Create_Validation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "missing password", body: `{"username":"alice"}`},
		{name: "missing username", body: `{"password":"secret"}`},
		{name: "unknown role", body: `{"username":"alice","password":"secret","role":"root"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEcho()
			stub := &stubUserService{}
			handler := NewUserHandler(stub, nil)

			c, _ := newJSONContext(e, http.MethodPost, "/api/users", tt.body)
			var ve *domain.ValidationError
			if err := handler.Create(c); !errors.As(err, &ve) {
				t.Fatalf("expected validation error, got %v", err)
			}
			if len(stub.users) != 0 {
				t.Fatalf("service should not be reached")
			}
		})
	}
}

func TestUserHandler_Create_Conflict(t *testing.T) {
	e := newTestEcho()
	handler := NewUserHandler(&stubUserService{err: domain.ErrUserExists}, nil)

	c, _ := newJSONContext(e, http.MethodPost, "/api/users", `{"username":"admin","password":"x"}`)
	if err := handler.Create(c); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestUserHandler_Update_PartialFields(t *testing.T) {
	e := newTestEcho()
	stub := &stubUserService{}
	handler := NewUserHandler(stub, fixedCounter(0))

	c, rec := newJSONContext(e, http.MethodPut, "/api/users/alice", `{"role":"admin"}`)
	c.SetParamNames("username")
	c.SetParamValues("alice")

	if err := handler.Update(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if stub.lastUpdate.Role == nil || *stub.lastUpdate.Role != domain.RoleAdmin {
		t.Fatalf("role not forwarded: %+v", stub.lastUpdate)
	}
	if stub.lastUpdate.Password != nil {
		t.Fatalf("password should be left untouched")
	}
}

func TestUserHandler_Delete(t *testing.T) {
	e := newTestEcho()
	stub := &stubUserService{}
	handler := NewUserHandler(stub, fixedCounter(0))

	c, rec := newJSONContext(e, http.MethodDelete, "/api/users/alice", "")
	c.SetParamNames("username")
	c.SetParamValues("alice")

	if err := handler.Delete(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK || stub.deleted != "alice" {
		t.Fatalf("unexpected result: %d %q", rec.Code, stub.deleted)
	}
}

func TestUserHandler_Delete_NotFound(t *testing.T) {
	e := newTestEcho()
	handler := NewUserHandler(&stubUserService{err: domain.ErrUserNotFound}, nil)

	c, _ := newJSONContext(e, http.MethodDelete, "/api/users/ghost", "")
	c.SetParamNames("username")
	c.SetParamValues("ghost")

	if err := handler.Delete(c); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
