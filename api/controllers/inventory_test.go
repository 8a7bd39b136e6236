package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/omarvaldez/shopstock-backend/internal/inventory"
	pkgerrors "github.com/omarvaldez/shopstock-backend/pkg/errors"
)

type stubInventoryService struct {
	item      *inventory.ItemDTO
	items     []inventory.ItemDTO
	supplier  *inventory.SupplierDTO
	suppliers []inventory.SupplierDTO
	created   bool
	seeded    int
	err       error

	gotID    string
	gotInput inventory.ItemInput
}

func (s *stubInventoryService) Create(ctx context.Context, input inventory.ItemInput) (*inventory.ItemDTO, error) {
	s.gotInput = input
	return s.item, s.err
}

func (s *stubInventoryService) Update(ctx context.Context, id string, input inventory.ItemInput) (*inventory.ItemDTO, error) {
	s.gotID = id
	s.gotInput = input
	return s.item, s.err
}

func (s *stubInventoryService) Delete(ctx context.Context, id string) error {
	s.gotID = id
	return s.err
}

func (s *stubInventoryService) ListAll(ctx context.Context) ([]inventory.ItemDTO, error) {
	return s.items, s.err
}

func (s *stubInventoryService) FindByName(ctx context.Context, query string) (*inventory.ItemDTO, error) {
	return s.item, s.err
}

func (s *stubInventoryService) SetQuantityByName(ctx context.Context, name string, quantity int) (*inventory.ItemDTO, bool, error) {
	return s.item, s.created, s.err
}

func (s *stubInventoryService) RemoveByName(ctx context.Context, name string) (*inventory.ItemDTO, error) {
	return s.item, s.err
}

func (s *stubInventoryService) SeedSampleData(ctx context.Context) (int, error) {
	return s.seeded, s.err
}

func (s *stubInventoryService) CreateSupplier(ctx context.Context, input inventory.SupplierInput) (*inventory.SupplierDTO, error) {
	return s.supplier, s.err
}

func (s *stubInventoryService) ListSuppliers(ctx context.Context) ([]inventory.SupplierDTO, error) {
	return s.suppliers, s.err
}

func requestWithItemID(method, target, itemID string, body []byte) *http.Request {
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("itemId", itemID)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestInventoryCreateSuccess(t *testing.T) {
	svc := &stubInventoryService{item: &inventory.ItemDTO{ID: "item-1", ItemName: "Air Filter", Quantity: 15, UnitPrice: 12.5}}
	handler := InventoryCreate(svc, nil)

	body := []byte(`{"id":"item-1","item_name":"Air Filter","quantity":15,"unit_price":12.5}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/inventory/", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", rec.Code, rec.Body.String())
	}

	var envelope struct {
		Data inventory.ItemDTO `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.ID != "item-1" {
		t.Fatalf("expected item-1 got %s", envelope.Data.ID)
	}
	if svc.gotInput.Quantity != 15 {
		t.Fatalf("expected quantity forwarded, got %d", svc.gotInput.Quantity)
	}
}

func TestInventoryCreateMissingRequiredFields(t *testing.T) {
	svc := &stubInventoryService{}
	handler := InventoryCreate(svc, nil)

	// quantity and unit_price omitted entirely.
	body := []byte(`{"id":"item-1","item_name":"Air Filter"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/inventory/", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
}

func TestInventoryCreateZeroQuantityAllowed(t *testing.T) {
	svc := &stubInventoryService{item: &inventory.ItemDTO{ID: "item-1", ItemName: "Coolant"}}
	handler := InventoryCreate(svc, nil)

	body := []byte(`{"id":"item-1","item_name":"Coolant","quantity":0,"unit_price":11.3}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/inventory/", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected explicit zero to pass validation, got %d: %s", rec.Code, rec.Body.String())
	}
	if svc.gotInput.Quantity != 0 {
		t.Fatalf("expected zero quantity forwarded, got %d", svc.gotInput.Quantity)
	}
}

func TestInventoryCreateConflict(t *testing.T) {
	svc := &stubInventoryService{err: pkgerrors.New(pkgerrors.CodeConflict, "inventory item already exists")}
	handler := InventoryCreate(svc, nil)

	body := []byte(`{"id":"item-1","item_name":"Air Filter","quantity":15,"unit_price":12.5}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/inventory/", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409 got %d", rec.Code)
	}

	var envelope struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Error.Message != "inventory item already exists" {
		t.Fatalf("unexpected message %q", envelope.Error.Message)
	}
}

func TestInventoryCreateRejectsUnknownFields(t *testing.T) {
	svc := &stubInventoryService{}
	handler := InventoryCreate(svc, nil)

	body := []byte(`{"id":"item-1","item_name":"Air Filter","quantity":15,"unit_price":12.5,"surprise":true}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/inventory/", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
}

func TestInventoryUpdatePathIDWins(t *testing.T) {
	svc := &stubInventoryService{item: &inventory.ItemDTO{ID: "item-1", ItemName: "Air Filter"}}
	handler := InventoryUpdate(svc, nil)

	body := []byte(`{"id":"other-id","item_name":"Air Filter","quantity":20,"unit_price":12.5}`)
	req := requestWithItemID(http.MethodPut, "/api/v1/inventory/item-1", "item-1", body)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", rec.Code, rec.Body.String())
	}
	if svc.gotID != "item-1" {
		t.Fatalf("expected path id forwarded, got %s", svc.gotID)
	}
}

func TestInventoryUpdateNotFound(t *testing.T) {
	svc := &stubInventoryService{err: pkgerrors.New(pkgerrors.CodeNotFound, "inventory item not found to update")}
	handler := InventoryUpdate(svc, nil)

	body := []byte(`{"id":"missing","item_name":"X","quantity":1,"unit_price":1}`)
	req := requestWithItemID(http.MethodPut, "/api/v1/inventory/missing", "missing", body)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", rec.Code)
	}
}

func TestInventoryDeleteSuccess(t *testing.T) {
	svc := &stubInventoryService{}
	handler := InventoryDelete(svc, nil)

	req := requestWithItemID(http.MethodDelete, "/api/v1/inventory/item-1", "item-1", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}

	var envelope struct {
		Data map[string]string `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data["message"] == "" {
		t.Fatal("expected confirmation message")
	}
}

func TestInventoryDeleteNotFound(t *testing.T) {
	svc := &stubInventoryService{err: pkgerrors.New(pkgerrors.CodeNotFound, "inventory item not found to delete")}
	handler := InventoryDelete(svc, nil)

	req := requestWithItemID(http.MethodDelete, "/api/v1/inventory/missing", "missing", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", rec.Code)
	}
}

func TestInventoryListSuccess(t *testing.T) {
	svc := &stubInventoryService{items: []inventory.ItemDTO{
		{ID: "1", ItemName: "Air Filter"},
		{ID: "2", ItemName: "Brake Pads"},
	}}
	handler := InventoryList(svc, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/inventory/", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}

	var envelope struct {
		Data []inventory.ItemDTO `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(envelope.Data) != 2 {
		t.Fatalf("expected 2 items got %d", len(envelope.Data))
	}
}

func TestSupplierCreateSuccess(t *testing.T) {
	svc := &stubInventoryService{supplier: &inventory.SupplierDTO{ID: "sup-1", Name: "LubriMax"}}
	handler := SupplierCreate(svc, nil)

	body := []byte(`{"name":"LubriMax","contact_person":"Dana Velez"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/suppliers/", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestSupplierCreateMissingName(t *testing.T) {
	svc := &stubInventoryService{}
	handler := SupplierCreate(svc, nil)

	body := []byte(`{"contact_person":"Dana Velez"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/suppliers/", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
}
