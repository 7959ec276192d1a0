package ticket

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ticketdto "github.com/tenantdesk/helpdesk/internal/application/ticket/dto"
	"github.com/tenantdesk/helpdesk/internal/application/ticket/usecases"
	"github.com/tenantdesk/helpdesk/internal/domain/company"
	"github.com/tenantdesk/helpdesk/internal/domain/ticket"
	vo "github.com/tenantdesk/helpdesk/internal/domain/ticket/valueobjects"
	"github.com/tenantdesk/helpdesk/internal/interfaces/http/handlers/testutil"
	"github.com/tenantdesk/helpdesk/internal/shared/errors"
)

// =====================================================================
// Mock use cases
// =====================================================================

type mockCreateTicketUC struct {
	got    usecases.CreateTicketCommand
	result *ticketdto.TicketRecord
	err    error
}

func (m *mockCreateTicketUC) Execute(_ context.Context, cmd usecases.CreateTicketCommand) (*ticketdto.TicketRecord, error) {
	m.got = cmd
	return m.result, m.err
}

type mockUpdateTicketUC struct {
	got    usecases.UpdateTicketCommand
	result *ticketdto.TicketRecord
	err    error
}

func (m *mockUpdateTicketUC) Execute(_ context.Context, cmd usecases.UpdateTicketCommand) (*ticketdto.TicketRecord, error) {
	m.got = cmd
	return m.result, m.err
}

type mockGetTicketUC struct {
	result *ticketdto.TicketRecord
	err    error
}

func (m *mockGetTicketUC) Execute(_ context.Context, _ usecases.GetTicketQuery) (*ticketdto.TicketRecord, error) {
	return m.result, m.err
}

type mockListTicketsUC struct {
	got    usecases.ListTicketsQuery
	result *usecases.ListTicketsResult
	err    error
}

func (m *mockListTicketsUC) Execute(_ context.Context, q usecases.ListTicketsQuery) (*usecases.ListTicketsResult, error) {
	m.got = q
	return m.result, m.err
}

type mockDeleteTicketUC struct {
	got usecases.DeleteTicketCommand
	err error
}

func (m *mockDeleteTicketUC) Execute(_ context.Context, cmd usecases.DeleteTicketCommand) error {
	m.got = cmd
	return m.err
}

type mockListHistoryUC struct {
	result []ticketdto.HistoryView
	err    error
}

func (m *mockListHistoryUC) Execute(_ context.Context, _ usecases.ListHistoryQuery) ([]ticketdto.HistoryView, error) {
	return m.result, m.err
}

// =====================================================================
// Test helper
// =====================================================================

type testDeps struct {
	createTicketUC usecases.CreateTicketExecutor
	updateTicketUC usecases.UpdateTicketExecutor
	getTicketUC    usecases.GetTicketExecutor
	listTicketsUC  usecases.ListTicketsExecutor
	deleteTicketUC usecases.DeleteTicketExecutor
	listHistoryUC  usecases.ListHistoryExecutor
}

func newTestTicketHandler(deps testDeps) *TicketHandler {
	return NewTicketHandler(
		deps.createTicketUC,
		deps.updateTicketUC,
		deps.getTicketUC,
		deps.listTicketsUC,
		deps.deleteTicketUC,
		deps.listHistoryUC,
		testutil.NewMockLogger(),
	)
}

func testRecord(t *testing.T) *ticketdto.TicketRecord {
	t.Helper()
	now := time.Now().UTC()
	tk, err := ticket.ReconstructTicket(
		1, "tkt_abc123", "Printer down", "Third floor",
		vo.PriorityHigh, vo.TypeIncident, vo.StatusOpen,
		nil, 7, 3, "ACM-0001", now, now,
	)
	require.NoError(t, err)
	return &ticketdto.TicketRecord{
		Ticket:  tk,
		Company: company.ReconstructCompany(3, "cmp_acme", "Acme", "ACM", "", "", now, now),
	}
}

func decodeData(t *testing.T, body []byte) map[string]any {
	t.Helper()
	var resp testutil.APIResponse
	require.NoError(t, json.Unmarshal(body, &resp))
	require.True(t, resp.Success)
	var data map[string]any
	require.NoError(t, json.Unmarshal(resp.Data, &data))
	return data
}

// =====================================================================
// TestTicketHandler_CreateTicket
// =====================================================================

func TestTicketHandler_CreateTicket_Success(t *testing.T) {
	mockUC := &mockCreateTicketUC{result: testRecord(t)}
	handler := newTestTicketHandler(testDeps{createTicketUC: mockUC})

	high := "high"
	reqBody := CreateTicketRequest{
		Title:       "Printer down",
		Description: "Third floor",
		Priority:    &high,
	}
	c, w := testutil.NewTestContext(http.MethodPost, "/tickets", reqBody)
	testutil.SetAuthContext(c, testutil.Customer(7, 3))

	handler.CreateTicket(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "Printer down", mockUC.got.Title)
	require.NotNil(t, mockUC.got.Priority)
	assert.Equal(t, "high", *mockUC.got.Priority)
	assert.Equal(t, uint(7), mockUC.got.Caller.UserID)

	data := decodeData(t, w.Body.Bytes())
	assert.Equal(t, "ACM-0001", data["unique_reference"])
	assert.Equal(t, "High", data["priority_display"])
	_, hasCompany := data["company"]
	assert.False(t, hasCompany, "scoped callers must not see the company")
}

func TestTicketHandler_CreateTicket_AdminSeesCompany(t *testing.T) {
	mockUC := &mockCreateTicketUC{result: testRecord(t)}
	handler := newTestTicketHandler(testDeps{createTicketUC: mockUC})

	companySID := "cmp_acme"
	c, w := testutil.NewTestContext(http.MethodPost, "/tickets", CreateTicketRequest{
		Title:   "Printer down",
		Company: &companySID,
	})
	testutil.SetAuthContext(c, testutil.Admin(1))

	handler.CreateTicket(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	require.NotNil(t, mockUC.got.CompanySID)
	assert.Equal(t, "cmp_acme", *mockUC.got.CompanySID)

	data := decodeData(t, w.Body.Bytes())
	ref, ok := data["company"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "ACM", ref["initials"])
}

func TestTicketHandler_CreateTicket_BindErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing title", `{"description":"no title"}`},
		{"unknown priority", `{"title":"x","priority":"urgent"}`},
		{"unknown type", `{"title":"x","type":"question"}`},
		{"malformed json", `{"title":`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := newTestTicketHandler(testDeps{createTicketUC: &mockCreateTicketUC{}})
			c, w := testutil.NewRawContext(http.MethodPost, "/tickets", tt.body)
			testutil.SetAuthContext(c, testutil.Customer(7, 3))

			handler.CreateTicket(c)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			var resp testutil.APIResponse
			require.NoError(t, testutil.ParseResponse(w, &resp))
			assert.False(t, resp.Success)
			assert.Equal(t, string(errors.ErrorTypeValidation), resp.Error.Type)
		})
	}
}

func TestTicketHandler_CreateTicket_NotAuthenticated(t *testing.T) {
	handler := newTestTicketHandler(testDeps{createTicketUC: &mockCreateTicketUC{}})

	c, w := testutil.NewTestContext(http.MethodPost, "/tickets", CreateTicketRequest{Title: "x"})

	handler.CreateTicket(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestTicketHandler_CreateTicket_UseCaseError(t *testing.T) {
	mockUC := &mockCreateTicketUC{err: errors.NewValidationError("company is required")}
	handler := newTestTicketHandler(testDeps{createTicketUC: mockUC})

	c, w := testutil.NewTestContext(http.MethodPost, "/tickets", CreateTicketRequest{Title: "x"})
	testutil.SetAuthContext(c, testutil.Admin(1))

	handler.CreateTicket(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	assert.Equal(t, "company is required", resp.Error.Message)
}

// =====================================================================
// TestTicketHandler_GetTicket
// =====================================================================

func TestTicketHandler_GetTicket(t *testing.T) {
	tests := []struct {
		name     string
		sid      string
		mock     *mockGetTicketUC
		wantCode int
	}{
		{"found", "tkt_abc123", &mockGetTicketUC{result: testRecord(t)}, http.StatusOK},
		{"wrong prefix", "usr_abc123", &mockGetTicketUC{}, http.StatusNotFound},
		{"not visible", "tkt_other", &mockGetTicketUC{err: errors.NewNotFoundError("ticket not found")}, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := newTestTicketHandler(testDeps{getTicketUC: tt.mock})
			c, w := testutil.NewTestContext(http.MethodGet, "/tickets/"+tt.sid, nil)
			testutil.SetAuthContext(c, testutil.Customer(7, 3))
			testutil.SetURLParam(c, "sid", tt.sid)

			handler.GetTicket(c)

			assert.Equal(t, tt.wantCode, w.Code)
		})
	}
}

// =====================================================================
// TestTicketHandler_UpdateTicket
// =====================================================================

func TestTicketHandler_UpdateTicket_AssigneeHandling(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		wantClear   bool
		wantSID     string
		wantTitle   string
		wantNoTouch bool
	}{
		{name: "explicit null clears", body: `{"assignee":null}`, wantClear: true},
		{name: "empty string clears", body: `{"assignee":""}`, wantClear: true},
		{name: "sid assigns", body: `{"assignee":"usr_bob"}`, wantSID: "usr_bob"},
		{name: "absent leaves assignee", body: `{"title":"Renamed"}`, wantTitle: "Renamed", wantNoTouch: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockUC := &mockUpdateTicketUC{result: testRecord(t)}
			handler := newTestTicketHandler(testDeps{updateTicketUC: mockUC})
			c, w := testutil.NewRawContext(http.MethodPatch, "/tickets/tkt_abc123", tt.body)
			testutil.SetAuthContext(c, testutil.Admin(1))
			testutil.SetURLParam(c, "sid", "tkt_abc123")

			handler.UpdateTicket(c)

			require.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, "tkt_abc123", mockUC.got.TicketSID)
			assert.Equal(t, tt.wantClear, mockUC.got.ClearAssignee)
			if tt.wantSID != "" {
				require.NotNil(t, mockUC.got.AssigneeSID)
				assert.Equal(t, tt.wantSID, *mockUC.got.AssigneeSID)
			}
			if tt.wantNoTouch {
				assert.Nil(t, mockUC.got.AssigneeSID)
			}
			if tt.wantTitle != "" {
				require.NotNil(t, mockUC.got.Title)
				assert.Equal(t, tt.wantTitle, *mockUC.got.Title)
			}
		})
	}
}

func TestTicketHandler_UpdateTicket_InvalidStatus(t *testing.T) {
	mockUC := &mockUpdateTicketUC{}
	handler := newTestTicketHandler(testDeps{updateTicketUC: mockUC})
	c, w := testutil.NewRawContext(http.MethodPatch, "/tickets/tkt_abc123", `{"status":"reopened"}`)
	testutil.SetAuthContext(c, testutil.Admin(1))
	testutil.SetURLParam(c, "sid", "tkt_abc123")

	handler.UpdateTicket(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, mockUC.got.TicketSID)
}

// =====================================================================
// TestTicketHandler_ListTickets
// =====================================================================

func TestTicketHandler_ListTickets_PassesFilters(t *testing.T) {
	mockUC := &mockListTicketsUC{result: &usecases.ListTicketsResult{
		Tickets:  []*ticketdto.TicketRecord{testRecord(t)},
		Total:    11,
		Page:     2,
		PageSize: 5,
	}}
	handler := newTestTicketHandler(testDeps{listTicketsUC: mockUC})

	c, w := testutil.NewTestContext(http.MethodGet, "/tickets", nil)
	testutil.SetAuthContext(c, testutil.Customer(7, 3))
	testutil.SetQueryParams(c, map[string]string{
		"status":    "open",
		"priority":  "high",
		"title":     "printer",
		"page":      "2",
		"page_size": "5",
	})

	handler.ListTickets(c)

	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, mockUC.got.Status)
	assert.Equal(t, "open", *mockUC.got.Status)
	require.NotNil(t, mockUC.got.Priority)
	assert.Equal(t, "high", *mockUC.got.Priority)
	assert.Nil(t, mockUC.got.Type)
	assert.Equal(t, "printer", mockUC.got.Title)
	assert.Equal(t, 2, mockUC.got.Page)
	assert.Equal(t, 5, mockUC.got.PageSize)

	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	var list testutil.ListData
	require.NoError(t, json.Unmarshal(resp.Data, &list))
	assert.Equal(t, int64(11), list.Total)
	assert.Equal(t, 3, list.TotalPages)

	var items []map[string]any
	require.NoError(t, json.Unmarshal(list.Items, &items))
	require.Len(t, items, 1)
	_, hasCompany := items[0]["company"]
	assert.False(t, hasCompany)
}

// =====================================================================
// TestTicketHandler_DeleteTicket
// =====================================================================

func TestTicketHandler_DeleteTicket_Success(t *testing.T) {
	mockUC := &mockDeleteTicketUC{}
	handler := newTestTicketHandler(testDeps{deleteTicketUC: mockUC})

	c, _ := testutil.NewTestContext(http.MethodDelete, "/tickets/tkt_abc123", nil)
	testutil.SetAuthContext(c, testutil.Admin(1))
	testutil.SetURLParam(c, "sid", "tkt_abc123")

	handler.DeleteTicket(c)

	assert.Equal(t, http.StatusNoContent, c.Writer.Status())
	assert.Equal(t, "tkt_abc123", mockUC.got.TicketSID)
}

func TestTicketHandler_DeleteTicket_Forbidden(t *testing.T) {
	mockUC := &mockDeleteTicketUC{err: errors.NewPermissionDeniedError("not allowed to delete tickets")}
	handler := newTestTicketHandler(testDeps{deleteTicketUC: mockUC})

	c, w := testutil.NewTestContext(http.MethodDelete, "/tickets/tkt_abc123", nil)
	testutil.SetAuthContext(c, testutil.Customer(7, 3))
	testutil.SetURLParam(c, "sid", "tkt_abc123")

	handler.DeleteTicket(c)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

// =====================================================================
// TestTicketHandler_ListHistory
// =====================================================================

func TestTicketHandler_ListHistory(t *testing.T) {
	open, closed := "open", "closed"
	mockUC := &mockListHistoryUC{result: []ticketdto.HistoryView{
		{ID: 2, EventType: "closed", PreviousStatus: &open, NewStatus: &closed},
		{ID: 1, EventType: "created"},
	}}
	handler := newTestTicketHandler(testDeps{listHistoryUC: mockUC})

	c, w := testutil.NewTestContext(http.MethodGet, "/tickets/tkt_abc123/history", nil)
	testutil.SetAuthContext(c, testutil.Customer(7, 3))
	testutil.SetURLParam(c, "sid", "tkt_abc123")

	handler.ListHistory(c)

	require.Equal(t, http.StatusOK, w.Code)
	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	var views []ticketdto.HistoryView
	require.NoError(t, json.Unmarshal(resp.Data, &views))
	require.Len(t, views, 2)
	assert.Equal(t, "closed", views[0].EventType)
}
