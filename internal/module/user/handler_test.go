package user

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/simp-lee/gonotes/internal/domain"
	"github.com/simp-lee/gonotes/internal/middleware"
	"github.com/simp-lee/gonotes/internal/pkg"
)

var testTokens = pkg.NewTokenService("0123456789abcdef0123456789abcdef")

// setupAPIRouter wires the user routes behind the real bearer-token middleware
// and seeds a single user with ID 1.
func setupAPIRouter(t *testing.T) (*gin.Engine, *mockUserRepo) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo := newMockRepo()
	seedUser(t, repo, "Alice", "Liddell", "alice@example.com")

	r := gin.New()
	public := r.Group("/api/v1")
	protected := r.Group("/api/v1", middleware.Auth(testTokens))
	NewModule(NewUserHandler(NewUserService(repo))).RegisterRoutes(public, protected)
	return r, repo
}

func bearer(t *testing.T, userID string) string {
	t.Helper()
	tok, err := testTokens.GenerateToken(userID, time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	return "Bearer " + tok
}

func serve(r *gin.Engine, method, auth, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, "/api/v1/users/me", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, "/api/v1/users/me", nil)
	}
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

type userResponse struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    domain.User `json:"data"`
}

func TestUserHandler_RequiresAuthentication(t *testing.T) {
	r, _ := setupAPIRouter(t)

	for _, method := range []string{http.MethodGet, http.MethodPut, http.MethodDelete} {
		if w := serve(r, method, "", ""); w.Code != http.StatusUnauthorized {
			t.Errorf("%s: expected status 401, got %d", method, w.Code)
		}
	}
}

func TestUserHandler_Get(t *testing.T) {
	r, _ := setupAPIRouter(t)

	w := serve(r, http.MethodGet, bearer(t, "1"), "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp userResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if resp.Data.Email != "alice@example.com" {
		t.Errorf("expected email alice@example.com, got %q", resp.Data.Email)
	}
	if strings.Contains(w.Body.String(), "password") {
		t.Errorf("response must not expose the password hash: %s", w.Body.String())
	}
}

func TestUserHandler_Get_DeletedAccount(t *testing.T) {
	r, _ := setupAPIRouter(t)

	if w := serve(r, http.MethodGet, bearer(t, "42"), ""); w.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", w.Code)
	}
}

func TestUserHandler_Update(t *testing.T) {
	r, repo := setupAPIRouter(t)

	w := serve(r, http.MethodPut, bearer(t, "1"), `{"first_name":"Alicia","last_name":"Hargreaves"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp userResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if resp.Data.FirstName != "Alicia" || resp.Data.LastName != "Hargreaves" {
		t.Errorf("expected Alicia Hargreaves, got %q %q", resp.Data.FirstName, resp.Data.LastName)
	}
	if repo.users[1].LastName != "Hargreaves" {
		t.Errorf("expected stored last name Hargreaves, got %q", repo.users[1].LastName)
	}
}

func TestUserHandler_Update_ValidationError(t *testing.T) {
	r, _ := setupAPIRouter(t)

	w := serve(r, http.MethodPut, bearer(t, "1"), `{}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", w.Code)
	}

	var resp pkg.ValidationErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	for _, field := range []string{"first_name", "last_name"} {
		if _, ok := resp.Errors[field]; !ok {
			t.Errorf("expected error for field %s, got %v", field, resp.Errors)
		}
	}
}

func TestUserHandler_Update_BlankName(t *testing.T) {
	r, _ := setupAPIRouter(t)

	if w := serve(r, http.MethodPut, bearer(t, "1"), `{"first_name":"   ","last_name":"Liddell"}`); w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", w.Code)
	}
}

func TestUserHandler_Delete(t *testing.T) {
	r, repo := setupAPIRouter(t)

	if w := serve(r, http.MethodDelete, bearer(t, "1"), ""); w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	if _, ok := repo.users[1]; ok {
		t.Error("expected user to be removed")
	}
	if w := serve(r, http.MethodDelete, bearer(t, "1"), ""); w.Code != http.StatusNotFound {
		t.Errorf("second delete: expected status 404, got %d", w.Code)
	}
}

func TestUserHandler_Delete_ServiceError(t *testing.T) {
	r, repo := setupAPIRouter(t)
	repo.deleteErr = domain.NewAppError(domain.CodeInternal, "internal error", errors.New("db down"))

	if w := serve(r, http.MethodDelete, bearer(t, "1"), ""); w.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", w.Code)
	}
}

func TestUserHandler_MissingUserInContext(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewUserHandler(NewUserService(newMockRepo()))
	r := gin.New()
	r.GET("/me", h.Get)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", w.Code)
	}
}
