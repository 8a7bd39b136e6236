package responses

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	pkgerrors "github.com/omarvaldez/shopstock-backend/pkg/errors"
)

func TestWriteSuccessEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()

	WriteSuccess(rec, map[string]string{"hello": "world"})

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("unexpected content type %q", ct)
	}

	var envelope struct {
		Data map[string]string `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data["hello"] != "world" {
		t.Fatalf("unexpected payload %+v", envelope.Data)
	}
}

func TestWriteErrorPassesClientFacingMessages(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		msg    string
	}{
		{"not found", pkgerrors.New(pkgerrors.CodeNotFound, "inventory item not found to update"), http.StatusNotFound, "inventory item not found to update"},
		{"conflict", pkgerrors.New(pkgerrors.CodeConflict, "inventory item already exists"), http.StatusConflict, "inventory item already exists"},
		{"validation", pkgerrors.New(pkgerrors.CodeValidation, "validation failed"), http.StatusBadRequest, "validation failed"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()

			WriteError(context.Background(), nil, rec, tc.err)

			if rec.Code != tc.status {
				t.Fatalf("expected %d got %d", tc.status, rec.Code)
			}

			var envelope struct {
				Error struct {
					Message string `json:"message"`
				} `json:"error"`
			}
			if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
				t.Fatalf("decode response: %v", err)
			}
			if envelope.Error.Message != tc.msg {
				t.Fatalf("expected %q got %q", tc.msg, envelope.Error.Message)
			}
		})
	}
}

func TestWriteErrorHidesInternalDetails(t *testing.T) {
	rec := httptest.NewRecorder()

	WriteError(context.Background(), nil, rec, errors.New("connection string leaked"))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 got %d", rec.Code)
	}

	var envelope struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Error.Message != "internal server error" {
		t.Fatalf("internal message must stay generic, got %q", envelope.Error.Message)
	}
}

func TestWriteErrorIncludesValidationDetails(t *testing.T) {
	rec := httptest.NewRecorder()

	err := pkgerrors.New(pkgerrors.CodeValidation, "validation failed").
		WithDetails(map[string]string{"quantity": "is required"})
	WriteError(context.Background(), nil, rec, err)

	var envelope struct {
		Error struct {
			Details map[string]string `json:"details"`
		} `json:"error"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Error.Details["quantity"] != "is required" {
		t.Fatalf("expected details forwarded, got %+v", envelope.Error.Details)
	}
}
