package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func performRequest(handler gin.HandlerFunc) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest("GET", "/test", nil)
	handler(c)
	return w
}

func parseResponse(t *testing.T, w *httptest.ResponseRecorder) Response {
	t.Helper()
	var resp Response
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	return resp
}

func TestSuccess(t *testing.T) {
	w := performRequest(func(c *gin.Context) {
		Success(c, map[string]string{"name": "threat-review"})
	})

	if w.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, w.Code)
	}

	resp := parseResponse(t, w)
	if resp.Code != 0 {
		t.Errorf("expected code 0, got %d", resp.Code)
	}
	if resp.Message != "ok" {
		t.Errorf("expected message 'ok', got %q", resp.Message)
	}
}

func TestCreated(t *testing.T) {
	w := performRequest(func(c *gin.Context) {
		Created(c, map[string]int{"id": 1})
	})

	if w.Code != http.StatusCreated {
		t.Errorf("expected status %d, got %d", http.StatusCreated, w.Code)
	}

	resp := parseResponse(t, w)
	if resp.Code != 0 {
		t.Errorf("expected code 0, got %d", resp.Code)
	}
}

func TestErrorHelpers(t *testing.T) {
	tests := []struct {
		name       string
		send       func(c *gin.Context)
		wantStatus int
		wantCode   int
		wantMsg    string
	}{
		{"bad request", func(c *gin.Context) { BadRequest(c, "invalid item id") },
			http.StatusBadRequest, 400, "invalid item id"},
		{"unauthorized", func(c *gin.Context) { Unauthorized(c, "token expired") },
			http.StatusUnauthorized, 401, "token expired"},
		{"forbidden", func(c *gin.Context) { Forbidden(c, "reviewer access required") },
			http.StatusForbidden, 403, "reviewer access required"},
		{"not found", func(c *gin.Context) { NotFound(c, "item not found") },
			http.StatusNotFound, 404, "item not found"},
		{"server error", func(c *gin.Context) { ServerError(c, "internal error") },
			http.StatusInternalServerError, 500, "internal error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := performRequest(tt.send)
			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, expected %d", w.Code, tt.wantStatus)
			}
			resp := parseResponse(t, w)
			if resp.Code != tt.wantCode {
				t.Errorf("code = %d, expected %d", resp.Code, tt.wantCode)
			}
			if resp.Message != tt.wantMsg {
				t.Errorf("message = %q, expected %q", resp.Message, tt.wantMsg)
			}
		})
	}
}

func TestAppErrorConstructors(t *testing.T) {
	tests := []struct {
		name       string
		err        *AppError
		wantStatus int
		wantCode   int
	}{
		{"bad request", NewBadRequest("bad"), http.StatusBadRequest, 400},
		{"unauthorized", NewUnauthorized("no token"), http.StatusUnauthorized, 401},
		{"forbidden", NewForbidden("annotators cannot review"), http.StatusForbidden, 403},
		{"not found", NewNotFound("project not found"), http.StatusNotFound, 404},
		{"conflict", NewConflict("item already assigned"), http.StatusConflict, 409},
		{"unprocessable", NewUnprocessable("field is not reviewable"), http.StatusUnprocessableEntity, 422},
		{"server error", NewServerError("boom"), http.StatusInternalServerError, 500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.HTTPStatus != tt.wantStatus {
				t.Errorf("HTTPStatus = %d, expected %d", tt.err.HTTPStatus, tt.wantStatus)
			}
			if tt.err.Code != tt.wantCode {
				t.Errorf("Code = %d, expected %d", tt.err.Code, tt.wantCode)
			}
		})
	}
}

func TestError_WithAppError(t *testing.T) {
	w := performRequest(func(c *gin.Context) {
		Error(c, NewConflict("review decision already recorded"))
	})

	if w.Code != http.StatusConflict {
		t.Errorf("expected status %d, got %d", http.StatusConflict, w.Code)
	}

	resp := parseResponse(t, w)
	if resp.Code != 409 {
		t.Errorf("expected code 409, got %d", resp.Code)
	}
	if resp.Message != "review decision already recorded" {
		t.Errorf("unexpected message %q", resp.Message)
	}
}

func TestError_WithGenericError(t *testing.T) {
	w := performRequest(func(c *gin.Context) {
		Error(c, errors.New("something went wrong"))
	})

	if w.Code != http.StatusInternalServerError {
		t.Errorf("expected status %d, got %d", http.StatusInternalServerError, w.Code)
	}

	resp := parseResponse(t, w)
	if resp.Code != 500 {
		t.Errorf("expected code 500, got %d", resp.Code)
	}
}

func TestValidationFailed_CarriesFieldErrors(t *testing.T) {
	w := performRequest(func(c *gin.Context) {
		ValidationFailed(c, map[string]string{
			"field_name":     "threat_type_l1",
			"threat_type_l1": "value not in allowed set",
		})
	})

	if w.Code != http.StatusUnprocessableEntity {
		t.Errorf("expected status %d, got %d", http.StatusUnprocessableEntity, w.Code)
	}

	var resp struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Data    struct {
			Errors map[string]string `json:"errors"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}

	if resp.Code != 422 {
		t.Errorf("expected code 422, got %d", resp.Code)
	}
	if resp.Message != "validation failed" {
		t.Errorf("expected message 'validation failed', got %q", resp.Message)
	}
	if resp.Data.Errors["threat_type_l1"] != "value not in allowed set" {
		t.Errorf("field errors not carried through: %+v", resp.Data.Errors)
	}
}

func TestAppError_ErrorInterface(t *testing.T) {
	err := NewNotFound("item not found")
	if err.Error() != "item not found" {
		t.Errorf("expected 'item not found', got %q", err.Error())
	}
}
