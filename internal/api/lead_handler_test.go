package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	apperrors "github.com/glowdesk/crm-api/internal/errors"
	"github.com/glowdesk/crm-api/internal/models"
	"github.com/glowdesk/crm-api/internal/repository"
	"github.com/glowdesk/crm-api/internal/services"
)

// stubLeadService returns canned responses for handler tests
type stubLeadService struct {
	lead       *models.Lead
	conversion *services.ConversionResult
	err        error
}

func (s *stubLeadService) GetByID(id string) (*models.Lead, error) { return s.lead, s.err }

func (s *stubLeadService) GetAll(filters repository.LeadFilters) ([]models.Lead, error) {
	if s.err != nil {
		return nil, s.err
	}
	return []models.Lead{*s.lead}, nil
}

func (s *stubLeadService) Create(lead *models.Lead) error { return s.err }
func (s *stubLeadService) Update(lead *models.Lead) error { return s.err }

func (s *stubLeadService) UpdateAIScore(id string) (*models.Lead, error) { return s.lead, s.err }
func (s *stubLeadService) Qualify(id string) (*models.Lead, error)      { return s.lead, s.err }

func (s *stubLeadService) ConvertToAccount(id string) (*services.ConversionResult, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.conversion, nil
}

func (s *stubLeadService) Enrich(ctx context.Context, id string) (*models.Lead, error) {
	return s.lead, s.err
}

func performConvert(handler *LeadHandler) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/leads/:id/convert", handler.ConvertLead)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/leads/abc/convert", nil)
	r.ServeHTTP(w, req)
	return w
}

func TestConvertLeadHandler(t *testing.T) {
	svc := &stubLeadService{conversion: &services.ConversionResult{AccountID: "acc-1"}}
	w := performConvert(NewLeadHandler(svc))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	if _, ok := body["conversion"]; !ok {
		t.Error("response missing conversion payload")
	}
}

func TestConvertLeadHandlerConflict(t *testing.T) {
	svc := &stubLeadService{err: apperrors.AlreadyConverted("lead abc is already converted")}
	w := performConvert(NewLeadHandler(svc))

	if w.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", w.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	if body["code"] != apperrors.ErrCodeAlreadyConverted {
		t.Errorf("code = %s, want ALREADY_CONVERTED", body["code"])
	}
}

func TestConvertLeadHandlerNotFound(t *testing.T) {
	svc := &stubLeadService{err: apperrors.NotFound("lead abc not found", fmt.Errorf("no rows"))}
	w := performConvert(NewLeadHandler(svc))

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}
