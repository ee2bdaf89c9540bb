package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/tbourn/go-qna-backend/internal/domain"
	"github.com/tbourn/go-qna-backend/internal/services"
)

// Flexible vote service stub.
type stubVoteSvc struct {
	cast    func(context.Context, string, domain.TargetKind, string, services.Direction) (*services.ReputationSnapshot, error)
	retract func(context.Context, string, domain.TargetKind, string) error
}

func (s stubVoteSvc) Cast(ctx context.Context, voterID string, kind domain.TargetKind, targetID string, dir services.Direction) (*services.ReputationSnapshot, error) {
	if s.cast != nil {
		return s.cast(ctx, voterID, kind, targetID, dir)
	}
	return &services.ReputationSnapshot{UserID: voterID, Points: 1, Delta: 1}, nil
}

func (s stubVoteSvc) Retract(ctx context.Context, voterID string, kind domain.TargetKind, targetID string) error {
	if s.retract != nil {
		return s.retract(ctx, voterID, kind, targetID)
	}
	return nil
}

func newVoteRouter(svc VoteService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := New(nil, nil, nil, nil, nil, svc, nil, nil)
	r := gin.New()
	r.Use(identityFromHeader())
	r.POST("/votes", h.CastVote)
	r.DELETE("/votes", h.RetractVote)
	return r
}

func TestCastVote_Unauthenticated(t *testing.T) {
	r := newVoteRouter(stubVoteSvc{})

	w := httptest.NewRecorder()
	body := `{"target_kind":"answer","target_id":"` + uuid.NewString() + `","direction":"up"}`
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/votes", bytes.NewBufferString(body)))

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("anonymous cast -> %d", w.Code)
	}
}

func TestCastVote_HeaderAloneIsAnonymous(t *testing.T) {
	// A router without the auth middleware: a raw X-User-ID header must not
	// become an identity, so the request fails with 401 and the engine never
	// sees the attacker-chosen voter.
	gin.SetMode(gin.TestMode)
	called := false
	svc := stubVoteSvc{
		cast: func(context.Context, string, domain.TargetKind, string, services.Direction) (*services.ReputationSnapshot, error) {
			called = true
			return nil, nil
		},
	}
	h := New(nil, nil, nil, nil, nil, svc, nil, nil)
	r := gin.New()
	r.POST("/votes", h.CastVote)

	w := httptest.NewRecorder()
	body := `{"target_kind":"answer","target_id":"` + uuid.NewString() + `","direction":"up"}`
	req := httptest.NewRequest(http.MethodPost, "/votes", bytes.NewBufferString(body))
	req.Header.Set("X-User-ID", "victim-user")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("header-only identity -> %d, want 401", w.Code)
	}
	if called {
		t.Fatalf("vote engine ran for an unauthenticated request")
	}
}

func TestCastVote_BindingRejectsBadPayloads(t *testing.T) {
	cases := map[string]string{
		"bad json":      `{bad`,
		"missing kind":  `{"target_id":"` + uuid.NewString() + `","direction":"up"}`,
		"unknown kind":  `{"target_kind":"post","target_id":"` + uuid.NewString() + `","direction":"up"}`,
		"non-uuid id":   `{"target_kind":"answer","target_id":"42","direction":"up"}`,
		"bad direction": `{"target_kind":"answer","target_id":"` + uuid.NewString() + `","direction":"sideways"}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			r := newVoteRouter(stubVoteSvc{})
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/votes", bytes.NewBufferString(body))
			req.Header.Set("X-User-ID", "u1")
			r.ServeHTTP(w, req)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("-> %d, want 400", w.Code)
			}
		})
	}
}

func TestCastVote_Success_ReturnsSnapshot(t *testing.T) {
	targetID := uuid.NewString()
	var got struct {
		voter  string
		kind   domain.TargetKind
		target string
		dir    services.Direction
	}
	svc := stubVoteSvc{
		cast: func(_ context.Context, voterID string, kind domain.TargetKind, target string, dir services.Direction) (*services.ReputationSnapshot, error) {
			got.voter, got.kind, got.target, got.dir = voterID, kind, target, dir
			return &services.ReputationSnapshot{UserID: voterID, Points: 11, Delta: 1, Reason: "upvote_given"}, nil
		},
	}
	r := newVoteRouter(svc)

	w := httptest.NewRecorder()
	body := `{"target_kind":"answer","target_id":"` + targetID + `","direction":"down"}`
	req := httptest.NewRequest(http.MethodPost, "/votes", bytes.NewBufferString(body))
	req.Header.Set("X-User-ID", "voter-1")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("cast -> %d body=%s", w.Code, w.Body.String())
	}
	if got.voter != "voter-1" || got.kind != domain.TargetAnswer || got.target != targetID || got.dir != services.DirectionDown {
		t.Fatalf("service args: %+v", got)
	}
	var snap services.ReputationSnapshot
	if err := json.Unmarshal(w.Body.Bytes(), &snap); err != nil {
		t.Fatalf("json: %v", err)
	}
	if snap.UserID != "voter-1" || snap.Points != 11 || snap.Delta != 1 {
		t.Fatalf("snapshot: %+v", snap)
	}
}

func TestCastVote_ServiceErrors(t *testing.T) {
	cases := map[string]struct {
		err  error
		want int
	}{
		"lost race":        {services.ErrVoteConflict, http.StatusConflict},
		"unknown voter":    {services.ErrVoterNotFound, http.StatusNotFound},
		"missing answer":   {services.ErrAnswerNotFound, http.StatusNotFound},
		"unexpected error": {context.DeadlineExceeded, http.StatusInternalServerError},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			svc := stubVoteSvc{
				cast: func(context.Context, string, domain.TargetKind, string, services.Direction) (*services.ReputationSnapshot, error) {
					return nil, tc.err
				},
			}
			r := newVoteRouter(svc)
			w := httptest.NewRecorder()
			body := `{"target_kind":"question","target_id":"` + uuid.NewString() + `","direction":"up"}`
			req := httptest.NewRequest(http.MethodPost, "/votes", bytes.NewBufferString(body))
			req.Header.Set("X-User-ID", "u1")
			r.ServeHTTP(w, req)
			if w.Code != tc.want {
				t.Fatalf("-> %d, want %d", w.Code, tc.want)
			}
		})
	}
}

func TestRetractVote_Success_And_Errors(t *testing.T) {
	targetID := uuid.NewString()

	// 204 on success; service sees the caller's identity.
	{
		var gotVoter string
		svc := stubVoteSvc{
			retract: func(_ context.Context, voterID string, kind domain.TargetKind, target string) error {
				gotVoter = voterID
				if kind != domain.TargetComment || target != targetID {
					t.Fatalf("retract args: %v %v", kind, target)
				}
				return nil
			},
		}
		r := newVoteRouter(svc)
		w := httptest.NewRecorder()
		body := `{"target_kind":"comment","target_id":"` + targetID + `"}`
		req := httptest.NewRequest(http.MethodDelete, "/votes", bytes.NewBufferString(body))
		req.Header.Set("X-User-ID", "u9")
		r.ServeHTTP(w, req)
		if w.Code != http.StatusNoContent {
			t.Fatalf("retract -> %d body=%s", w.Code, w.Body.String())
		}
		if gotVoter != "u9" {
			t.Fatalf("voter = %q", gotVoter)
		}
	}

	// Bad payload -> 400.
	{
		r := newVoteRouter(stubVoteSvc{})
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodDelete, "/votes", bytes.NewBufferString(`{"target_kind":"comment"}`))
		req.Header.Set("X-User-ID", "u9")
		r.ServeHTTP(w, req)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("bad payload -> %d", w.Code)
		}
	}

	// Missing target -> 404.
	{
		svc := stubVoteSvc{
			retract: func(context.Context, string, domain.TargetKind, string) error {
				return services.ErrQuestionNotFound
			},
		}
		r := newVoteRouter(svc)
		w := httptest.NewRecorder()
		body := `{"target_kind":"question","target_id":"` + uuid.NewString() + `"}`
		req := httptest.NewRequest(http.MethodDelete, "/votes", bytes.NewBufferString(body))
		req.Header.Set("X-User-ID", "u9")
		r.ServeHTTP(w, req)
		if w.Code != http.StatusNotFound {
			t.Fatalf("missing target -> %d", w.Code)
		}
	}
}
