package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/hylla/lanes/internal/adapters/server/common"
	"github.com/hylla/lanes/internal/domain"
)

// stubBoardService provides deterministic board responses for handler tests.
type stubBoardService struct {
	items      []domain.Item
	created    domain.Item
	moved      common.MoveItemResult
	err        error
	lastList   common.ListItemsRequest
	lastCreate common.CreateItemRequest
	lastMove   common.MoveItemRequest
}

// ListItems records the request and returns fixture items.
func (s *stubBoardService) ListItems(_ context.Context, req common.ListItemsRequest) ([]domain.Item, error) {
	s.lastList = req
	if s.err != nil {
		return nil, s.err
	}
	return append([]domain.Item(nil), s.items...), nil
}

// CreateItem records the request and returns the fixture item.
func (s *stubBoardService) CreateItem(_ context.Context, req common.CreateItemRequest) (domain.Item, error) {
	s.lastCreate = req
	if s.err != nil {
		return domain.Item{}, s.err
	}
	return s.created, nil
}

// MoveItem records the request and returns the fixture result.
func (s *stubBoardService) MoveItem(_ context.Context, req common.MoveItemRequest) (common.MoveItemResult, error) {
	s.lastMove = req
	if s.err != nil {
		return common.MoveItemResult{}, s.err
	}
	return s.moved, nil
}

// stubActivityService provides deterministic activity responses for handler tests.
type stubActivityService struct {
	events   []domain.ChangeEvent
	err      error
	lastList common.ListActivityRequest
}

// ListActivity records the request and returns fixture events.
func (s *stubActivityService) ListActivity(_ context.Context, req common.ListActivityRequest) ([]domain.ChangeEvent, error) {
	s.lastList = req
	if s.err != nil {
		return nil, s.err
	}
	return append([]domain.ChangeEvent(nil), s.events...), nil
}

// fixtureItem returns one deterministic item.
func fixtureItem(id string, lane domain.Lane) domain.Item {
	return domain.Item{
		ID:          id,
		Title:       "Ship",
		Description: "ship the board",
		People:      2,
		Lane:        lane,
		CreatedAt:   time.Date(2026, 2, 24, 12, 0, 0, 0, time.UTC),
	}
}

// decodeErrorEnvelope decodes one structured error response.
func decodeErrorEnvelope(t *testing.T, rec *httptest.ResponseRecorder) ErrorEnvelope {
	t.Helper()
	var envelope ErrorEnvelope
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	return envelope
}

// TestHandlerListItems verifies lane filter forwarding and list payload shape.
func TestHandlerListItems(t *testing.T) {
	board := &stubBoardService{items: []domain.Item{fixtureItem("i1", domain.LaneFinished)}}
	handler := NewHandler(board, nil)

	req := httptest.NewRequest(http.MethodGet, "/items?lane=finished", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	var got struct {
		Items []domain.Item `json:"items"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if len(got.Items) != 1 || got.Items[0].ID != "i1" {
		t.Fatalf("items = %#v, want [i1]", got.Items)
	}
	if board.lastList.Lane != "finished" {
		t.Fatalf("lane = %q, want finished", board.lastList.Lane)
	}
}

// TestHandlerCreateItem verifies request decoding and the 201 response.
func TestHandlerCreateItem(t *testing.T) {
	board := &stubBoardService{created: fixtureItem("i1", domain.LaneActive)}
	handler := NewHandler(board, nil)

	body := `{"title":"Ship","description":"ship the board","people":2}`
	req := httptest.NewRequest(http.MethodPost, "/items", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusCreated)
	}
	want := common.CreateItemRequest{Title: "Ship", Description: "ship the board", People: 2}
	if board.lastCreate != want {
		t.Fatalf("create request = %#v, want %#v", board.lastCreate, want)
	}
	var got domain.Item
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if got.ID != "i1" || got.Lane != domain.LaneActive {
		t.Fatalf("item = %#v, want active i1", got)
	}
}

// TestHandlerCreateItemRejectsMalformedBodies verifies strict decoding.
func TestHandlerCreateItemRejectsMalformedBodies(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{name: "unknown field", body: `{"title":"Ship","owner":"me"}`},
		{name: "trailing content", body: `{"title":"Ship"}{"title":"Again"}`},
		{name: "wrong type", body: `{"people":"two"}`},
		{name: "empty body", body: ``},
	}
	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			board := &stubBoardService{}
			handler := NewHandler(board, nil)
			req := httptest.NewRequest(http.MethodPost, "/items", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
			}
			if got := decodeErrorEnvelope(t, rec).Error.Code; got != "invalid_request" {
				t.Fatalf("error.code = %q, want invalid_request", got)
			}
			if board.lastCreate != (common.CreateItemRequest{}) {
				t.Fatalf("expected service not to be called, got %#v", board.lastCreate)
			}
		})
	}
}

// TestHandlerMoveItem verifies path id extraction and moved reporting.
func TestHandlerMoveItem(t *testing.T) {
	board := &stubBoardService{moved: common.MoveItemResult{Item: fixtureItem("i1", domain.LaneFinished), Moved: true}}
	handler := NewHandler(board, nil)

	req := httptest.NewRequest(http.MethodPost, "/items/i1/move", strings.NewReader(`{"lane":"finished"}`))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if board.lastMove.ID != "i1" || board.lastMove.Lane != "finished" {
		t.Fatalf("move request = %#v, want i1 -> finished", board.lastMove)
	}
	var got common.MoveItemResult
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if !got.Moved || got.Item.Lane != domain.LaneFinished {
		t.Fatalf("result = %#v, want moved to finished", got)
	}
}

// TestHandlerErrorMapping verifies structured status mapping for service errors.
func TestHandlerErrorMapping(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{name: "not found", err: fmt.Errorf("move item: %w", common.ErrNotFound), wantStatus: http.StatusNotFound, wantCode: "not_found"},
		{name: "invalid", err: fmt.Errorf("move item: %w", common.ErrInvalidRequest), wantStatus: http.StatusBadRequest, wantCode: "invalid_request"},
		{name: "internal", err: errors.New("boom"), wantStatus: http.StatusInternalServerError, wantCode: "internal_error"},
	}
	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewHandler(&stubBoardService{err: tt.err}, nil)
			req := httptest.NewRequest(http.MethodPost, "/items/i1/move", strings.NewReader(`{"lane":"finished"}`))
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if got := decodeErrorEnvelope(t, rec).Error.Code; got != tt.wantCode {
				t.Fatalf("error.code = %q, want %q", got, tt.wantCode)
			}
		})
	}
}

// TestHandlerListActivity verifies limit parsing and the events payload.
func TestHandlerListActivity(t *testing.T) {
	activity := &stubActivityService{events: []domain.ChangeEvent{{
		ID:        2,
		ItemID:    "i1",
		Title:     "Ship",
		Operation: domain.ChangeOperationMove,
		FromLane:  domain.LaneActive,
		ToLane:    domain.LaneFinished,
	}}}
	handler := NewHandler(&stubBoardService{}, activity)

	req := httptest.NewRequest(http.MethodGet, "/activity?limit=5", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if activity.lastList.Limit != 5 {
		t.Fatalf("limit = %d, want 5", activity.lastList.Limit)
	}
	var got struct {
		Events []domain.ChangeEvent `json:"events"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if len(got.Events) != 1 || got.Events[0].Operation != domain.ChangeOperationMove {
		t.Fatalf("events = %#v, want one move", got.Events)
	}

	bad := httptest.NewRecorder()
	handler.ServeHTTP(bad, httptest.NewRequest(http.MethodGet, "/activity?limit=zero", nil))
	if bad.Code != http.StatusBadRequest {
		t.Fatalf("bad limit status = %d, want %d", bad.Code, http.StatusBadRequest)
	}
}

// TestHandlerRouteGuards verifies method guards and unknown-route handling.
func TestHandlerRouteGuards(t *testing.T) {
	handler := NewHandler(&stubBoardService{}, &stubActivityService{})

	cases := []struct {
		name       string
		method     string
		path       string
		wantStatus int
		wantCode   string
		wantAllow  string
	}{
		{
			name:       "items route only allows get and post",
			method:     http.MethodDelete,
			path:       "/items",
			wantStatus: http.StatusMethodNotAllowed,
			wantCode:   "method_not_allowed",
			wantAllow:  "GET, POST",
		},
		{
			name:       "move requires post",
			method:     http.MethodGet,
			path:       "/items/i1/move",
			wantStatus: http.StatusMethodNotAllowed,
			wantCode:   "method_not_allowed",
			wantAllow:  http.MethodPost,
		},
		{
			name:       "activity requires get",
			method:     http.MethodPost,
			path:       "/activity",
			wantStatus: http.StatusMethodNotAllowed,
			wantCode:   "method_not_allowed",
			wantAllow:  http.MethodGet,
		},
		{
			name:       "unknown route returns not found",
			method:     http.MethodGet,
			path:       "/not/a/route",
			wantStatus: http.StatusNotFound,
			wantCode:   "not_found",
		},
		{
			name:       "nested move path returns not found",
			method:     http.MethodPost,
			path:       "/items/i1/nested/move",
			wantStatus: http.StatusNotFound,
			wantCode:   "not_found",
		},
	}

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			envelope := decodeErrorEnvelope(t, rec)
			if envelope.Error.Code != tt.wantCode {
				t.Fatalf("error.code = %q, want %q", envelope.Error.Code, tt.wantCode)
			}
			if got := rec.Header().Get("Allow"); got != tt.wantAllow {
				t.Fatalf("Allow header = %q, want %q", got, tt.wantAllow)
			}
		})
	}
}

// TestHandlerServicesUnavailable verifies nil services map to 503 and 501.
func TestHandlerServicesUnavailable(t *testing.T) {
	handler := NewHandler(nil, nil)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/items", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("items status = %d, want %d", rec.Code, http.StatusServiceUnavailable)
	}

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/activity", nil))
	if rec.Code != http.StatusNotImplemented {
		t.Fatalf("activity status = %d, want %d", rec.Code, http.StatusNotImplemented)
	}
}
