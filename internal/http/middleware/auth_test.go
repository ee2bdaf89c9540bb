package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

// stubVerifier records the token it saw and returns a canned result.
type stubVerifier struct {
	gotToken string
	userID   string
	err      error
}

func (s *stubVerifier) Verify(token string) (string, error) {
	s.gotToken = token
	return s.userID, s.err
}

func newAuthRouter(v TokenVerifier) (*gin.Engine, *string) {
	gin.SetMode(gin.TestMode)
	var seen string
	r := gin.New()
	r.Use(Auth(v))
	r.GET("/ping", func(c *gin.Context) {
		seen = UserIDFrom(c)
		c.Status(http.StatusOK)
	})
	return r, &seen
}

func TestAuth_NoHeader_PassesThroughAnonymously(t *testing.T) {
	r, seen := newAuthRouter(&stubVerifier{userID: "never"})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("anonymous request -> %d", w.Code)
	}
	if *seen != "" {
		t.Fatalf("anonymous identity = %q, want empty", *seen)
	}
}

func TestAuth_ValidToken_SetsIdentity(t *testing.T) {
	v := &stubVerifier{userID: "u-42"}
	r, seen := newAuthRouter(v)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Authorization", "Bearer tok-abc")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("authed request -> %d body=%s", w.Code, w.Body.String())
	}
	if v.gotToken != "tok-abc" {
		t.Fatalf("verifier saw %q", v.gotToken)
	}
	if *seen != "u-42" {
		t.Fatalf("identity = %q, want u-42", *seen)
	}
}

func TestAuth_MalformedHeader_Rejects(t *testing.T) {
	for _, header := range []string{"tok-abc", "Basic tok-abc", "Bearer ", "Bearer    "} {
		r, seen := newAuthRouter(&stubVerifier{userID: "u-1"})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set("Authorization", header)
		r.ServeHTTP(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Fatalf("header %q -> %d, want 401", header, w.Code)
		}
		if *seen != "" {
			t.Fatalf("header %q leaked identity %q", header, *seen)
		}
		var body map[string]string
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("json: %v", err)
		}
		if body["code"] != "unauthorized" {
			t.Fatalf("code = %q", body["code"])
		}
	}
}

func TestAuth_InvalidToken_Rejects(t *testing.T) {
	r, seen := newAuthRouter(&stubVerifier{err: errors.New("expired")})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Authorization", "Bearer bad-token")
	r.ServeHTTP(w, req)

	// A bad token is never downgraded to anonymous.
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("invalid token -> %d, want 401", w.Code)
	}
	if *seen != "" {
		t.Fatalf("invalid token leaked identity %q", *seen)
	}
}

func TestUserIDFrom_EmptyContext(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	if got := UserIDFrom(c); got != "" {
		t.Fatalf("UserIDFrom = %q, want empty", got)
	}
	c.Set(ctxKeyUserID, 99) // wrong type ignored
	if got := UserIDFrom(c); got != "" {
		t.Fatalf("wrong type = %q, want empty", got)
	}
}
