package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/the-foundingengineer/ShadowDrop-Smc/internal/escrow"
	"github.com/the-foundingengineer/ShadowDrop-Smc/internal/http/middleware"
	"github.com/the-foundingengineer/ShadowDrop-Smc/internal/service"
)

func newTestEscrowService(t *testing.T) *service.EscrowService {
	t.Helper()
	engine, err := escrow.NewEngine(uuid.New(), uuid.New(), escrow.DefaultParams(), nil, nil, nil)
	assert.NoError(t, err)
	return service.NewEscrowService(engine)
}

func identityMiddleware(identity uuid.UUID) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.ContextIdentityKey, identity)
		c.Next()
	}
}

func TestSubmissionHandler_Create_Unauthorized(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handler := NewSubmissionHandler(newTestEscrowService(t), nil)
	r.POST("/submissions", handler.CreateSubmission)

	req, _ := http.NewRequest("POST", "/submissions", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSubmissionHandler_Get_InvalidID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handler := NewSubmissionHandler(newTestEscrowService(t), nil)
	r.GET("/submissions/:id", handler.GetSubmission)

	req, _ := http.NewRequest("GET", "/submissions/not-a-number", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSubmissionHandler_Get_NotFound(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handler := NewSubmissionHandler(newTestEscrowService(t), nil)
	r.GET("/submissions/:id", handler.GetSubmission)

	req, _ := http.NewRequest("GET", "/submissions/42", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSubmissionHandler_CreateAndGet(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	submitter := uuid.New()
	handler := NewSubmissionHandler(newTestEscrowService(t), nil)
	r.POST("/submissions", identityMiddleware(submitter), handler.CreateSubmission)
	r.GET("/submissions/:id", handler.GetSubmission)

	body, _ := json.Marshal(gin.H{
		"content_hash": strings.Repeat("ab", 32),
		"access_fee":   10,
		"stake":        100,
	})
	req, _ := http.NewRequest("POST", "/submissions", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var created struct {
		ID uint64 `json:"id"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, uint64(1), created.ID)

	req, _ = http.NewRequest("GET", "/submissions/1", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), strings.Repeat("ab", 32))
	// Внутренний идентификатор выплат наружу не отдаётся.
	assert.NotContains(t, w.Body.String(), "payout")
}

func TestSubmissionHandler_Create_InsufficientStake(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handler := NewSubmissionHandler(newTestEscrowService(t), nil)
	r.POST("/submissions", identityMiddleware(uuid.New()), handler.CreateSubmission)

	body, _ := json.Marshal(gin.H{
		"content_hash": strings.Repeat("ab", 32),
		"access_fee":   10,
		"stake":        1,
	})
	req, _ := http.NewRequest("POST", "/submissions", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusPaymentRequired, w.Code)
	assert.Contains(t, w.Body.String(), "INSUFFICIENT_STAKE")
}

func TestSubmissionHandler_Get_OmitsAccessToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	agent := uuid.New()
	journalist := uuid.New()
	engine, err := escrow.NewEngine(uuid.New(), agent, escrow.DefaultParams(), nil, nil, nil)
	assert.NoError(t, err)
	svc := service.NewEscrowService(engine)

	id, err := svc.CreateSubmission(uuid.New(), strings.Repeat("ab", 32), "", 10, 100, false)
	assert.NoError(t, err)
	assert.NoError(t, svc.RegisterJournalist(journalist, ""))
	assert.NoError(t, svc.SetJournalistApproval(agent, journalist, true))
	assert.NoError(t, svc.RecordEvaluation(agent, id, 80, ""))
	token, err := svc.AccessSubmission(journalist, id, 10)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	r := gin.New()
	handler := NewSubmissionHandler(svc, nil)
	r.GET("/submissions/:id", handler.GetSubmission)

	req, _ := http.NewRequest("GET", "/submissions/1", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "accessed")
	// Токен доступа выдаётся один раз при оплате и наружу не сериализуется.
	assert.NotContains(t, w.Body.String(), "access_token")
	assert.NotContains(t, w.Body.String(), token)
}

func TestSubmissionHandler_ListEvents_NoJournal(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handler := NewSubmissionHandler(newTestEscrowService(t), nil)
	r.GET("/submissions/:id/events", handler.ListEvents)

	req, _ := http.NewRequest("GET", "/submissions/1/events", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestSubmissionHandler_Access_Unauthorized(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handler := NewSubmissionHandler(newTestEscrowService(t), nil)
	r.POST("/submissions/:id/access", handler.AccessSubmission)

	req, _ := http.NewRequest("POST", "/submissions/1/access", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
