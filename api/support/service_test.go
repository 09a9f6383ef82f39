package support

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"staynest-bend/models"
	"staynest-bend/utils"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"
)

func asUser(r *http.Request, userID string) *http.Request {
	ctx := context.WithValue(r.Context(), models.CtxActorType, models.SenderUser)
	ctx = context.WithValue(ctx, models.CtxUserID, userID)
	return r.WithContext(ctx)
}

func asStaff(r *http.Request, staffID, role string) *http.Request {
	ctx := context.WithValue(r.Context(), models.CtxActorType, models.SenderStaff)
	ctx = context.WithValue(ctx, models.CtxStaffID, staffID)
	ctx = context.WithValue(ctx, models.CtxRole, role)
	return r.WithContext(ctx)
}

func formReq(method, target string, form url.Values) *http.Request {
	r := httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return r
}

func jsonReq(method, target, body string) *http.Request {
	r := httptest.NewRequest(method, target, strings.NewReader(body))
	r.Header.Set("Content-Type", "application/json")
	return r
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) utils.Response {
	t.Helper()
	var resp utils.Response
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	return resp
}

func TestCreateTicketHandler(t *testing.T) {
	t.Run("creates ticket from form body", func(t *testing.T) {
		svc, store, _ := newTestService()

		form := url.Values{}
		form.Set("title", "Broken heating")
		form.Set("issue_type", models.IssueListingProblem)
		form.Set("listing_id", "L9")
		form.Set("description", "The heating has been off for two days")

		w := httptest.NewRecorder()
		svc.CreateTicket(w, asUser(formReq(http.MethodPost, "/api/support", form), "U1"))

		require.Equal(t, http.StatusCreated, w.Code)
		resp := decodeBody(t, w)
		require.Equal(t, "success", resp.Status)
		require.Len(t, store.tickets, 1)
	})

	t.Run("validation failure names the fields", func(t *testing.T) {
		svc, store, _ := newTestService()

		w := httptest.NewRecorder()
		svc.CreateTicket(w, asUser(formReq(http.MethodPost, "/api/support", url.Values{}), "U1"))

		require.Equal(t, http.StatusBadRequest, w.Code)
		resp := decodeBody(t, w)
		require.Equal(t, "error", resp.Status)
		require.Contains(t, resp.Fields, "issue_type")
		require.Contains(t, resp.Fields, "description")
		require.Empty(t, store.tickets)
	})
}

func TestUpdateTicketHandler(t *testing.T) {
	t.Run("unknown action", func(t *testing.T) {
		svc, store, _ := newTestService()
		ticket := seedTicket(store, "U1", models.TicketOpen)

		r := jsonReq(http.MethodPut, "/api/support/"+ticket.ID.Hex(), `{"action":"escalate"}`)
		r = mux.SetURLVars(asStaff(r, "S1", models.RoleCustomerService), map[string]string{"id": ticket.ID.Hex()})

		w := httptest.NewRecorder()
		svc.UpdateTicket(w, r)

		require.Equal(t, http.StatusBadRequest, w.Code)
		resp := decodeBody(t, w)
		require.Equal(t, "Unknown update action", resp.Error)
	})

	t.Run("status action moves the ticket", func(t *testing.T) {
		svc, store, _ := newTestService()
		ticket := seedTicket(store, "U1", models.TicketInProgress)

		r := jsonReq(http.MethodPut, "/api/support/"+ticket.ID.Hex(), `{"action":"status","status":"resolved"}`)
		r = mux.SetURLVars(asStaff(r, "S1", models.RoleCustomerService), map[string]string{"id": ticket.ID.Hex()})

		w := httptest.NewRecorder()
		svc.UpdateTicket(w, r)

		require.Equal(t, http.StatusOK, w.Code)
		require.Equal(t, models.TicketResolved, store.tickets[ticket.ID.Hex()].Status)
	})

	t.Run("reply action posts as the token's staff member", func(t *testing.T) {
		svc, store, _ := newTestService()
		ticket := seedTicket(store, "U1", models.TicketOpen)

		r := jsonReq(http.MethodPut, "/api/support/"+ticket.ID.Hex(), `{"action":"reply","content":"We are on it"}`)
		r = mux.SetURLVars(asStaff(r, "S7", models.RoleCustomerService), map[string]string{"id": ticket.ID.Hex()})

		w := httptest.NewRecorder()
		svc.UpdateTicket(w, r)

		require.Equal(t, http.StatusOK, w.Code)
		saved := store.tickets[ticket.ID.Hex()]
		require.Len(t, saved.Messages, 2)
		require.Equal(t, models.SenderStaff, saved.Messages[1].SenderType)
		require.Equal(t, "S7", saved.Messages[1].SenderID)
		require.Equal(t, models.TicketInProgress, saved.Status)
	})

	t.Run("invalid transition is a 400", func(t *testing.T) {
		svc, store, _ := newTestService()
		ticket := seedTicket(store, "U1", models.TicketClosed)

		r := jsonReq(http.MethodPut, "/api/support/"+ticket.ID.Hex(), `{"action":"status","status":"open"}`)
		r = mux.SetURLVars(asStaff(r, "S1", models.RoleCustomerService), map[string]string{"id": ticket.ID.Hex()})

		w := httptest.NewRecorder()
		svc.UpdateTicket(w, r)

		require.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestGetTicketHandler(t *testing.T) {
	t.Run("owner can view", func(t *testing.T) {
		svc, store, _ := newTestService()
		ticket := seedTicket(store, "U1", models.TicketOpen)

		r := httptest.NewRequest(http.MethodGet, "/api/support/"+ticket.ID.Hex(), nil)
		r = mux.SetURLVars(asUser(r, "U1"), map[string]string{"id": ticket.ID.Hex()})

		w := httptest.NewRecorder()
		svc.GetTicket(w, r)
		require.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("another user is forbidden", func(t *testing.T) {
		svc, store, _ := newTestService()
		ticket := seedTicket(store, "U1", models.TicketOpen)

		r := httptest.NewRequest(http.MethodGet, "/api/support/"+ticket.ID.Hex(), nil)
		r = mux.SetURLVars(asUser(r, "U2"), map[string]string{"id": ticket.ID.Hex()})

		w := httptest.NewRecorder()
		svc.GetTicket(w, r)
		require.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("staff can view any ticket", func(t *testing.T) {
		svc, store, _ := newTestService()
		ticket := seedTicket(store, "U1", models.TicketOpen)

		r := httptest.NewRequest(http.MethodGet, "/api/support/"+ticket.ID.Hex(), nil)
		r = mux.SetURLVars(asStaff(r, "S1", models.RoleCustomerService), map[string]string{"id": ticket.ID.Hex()})

		w := httptest.NewRecorder()
		svc.GetTicket(w, r)
		require.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("unknown ticket is a 404", func(t *testing.T) {
		svc, _, _ := newTestService()

		r := httptest.NewRequest(http.MethodGet, "/api/support/000000000000000000000000", nil)
		r = mux.SetURLVars(asStaff(r, "S1", models.RoleCustomerService), map[string]string{"id": "000000000000000000000000"})

		w := httptest.NewRecorder()
		svc.GetTicket(w, r)
		require.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestListAllTicketsHandler(t *testing.T) {
	svc, store, _ := newTestService()
	seedTicket(store, "U1", models.TicketOpen)
	seedTicket(store, "U2", models.TicketClosed)

	t.Run("rejects an unknown status filter", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/api/support/all?status=archived", nil)
		w := httptest.NewRecorder()
		svc.ListAllTickets(w, asStaff(r, "S1", models.RoleCustomerServiceLead))
		require.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("filters by status", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/api/support/all?status=open", nil)
		w := httptest.NewRecorder()
		svc.ListAllTickets(w, asStaff(r, "S1", models.RoleCustomerServiceLead))
		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Data []models.SupportTicket `json:"data"`
		}
		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		require.Len(t, resp.Data, 1)
		require.Equal(t, models.TicketOpen, resp.Data[0].Status)
	})
}

func TestListUserTicketsHandler(t *testing.T) {
	svc, store, _ := newTestService()
	seedTicket(store, "U1", models.TicketOpen)

	t.Run("user cannot list another user's tickets", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/api/support/user/U1", nil)
		r = mux.SetURLVars(asUser(r, "U2"), map[string]string{"userId": "U1"})

		w := httptest.NewRecorder()
		svc.ListUserTickets(w, r)
		require.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("staff can list any user's tickets", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/api/support/user/U1", nil)
		r = mux.SetURLVars(asStaff(r, "S1", models.RoleCustomerService), map[string]string{"userId": "U1"})

		w := httptest.NewRecorder()
		svc.ListUserTickets(w, r)
		require.Equal(t, http.StatusOK, w.Code)
	})
}
