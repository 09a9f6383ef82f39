package support

import (
	"testing"
	"time"

	"staynest-bend/dao"
	"staynest-bend/models"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type fakeTicketStore struct {
	tickets map[string]models.SupportTicket
	// conflictNext forces the next Update to report a lost race
	conflictNext bool
}

func newFakeTicketStore() *fakeTicketStore {
	return &fakeTicketStore{tickets: map[string]models.SupportTicket{}}
}

func (f *fakeTicketStore) FindByID(id string) (models.SupportTicket, error) {
	ticket, ok := f.tickets[id]
	if !ok {
		return ticket, mongo.ErrNoDocuments
	}
	return ticket, nil
}

func (f *fakeTicketStore) FindByUser(userID string) ([]models.SupportTicket, error) {
	out := []models.SupportTicket{}
	for _, t := range f.tickets {
		if t.UserID == userID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeTicketStore) FindAll(status string) ([]models.SupportTicket, error) {
	out := []models.SupportTicket{}
	for _, t := range f.tickets {
		if status == "" || t.Status == status {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeTicketStore) Insert(ticket models.SupportTicket) error {
	f.tickets[ticket.ID.Hex()] = ticket
	return nil
}

func (f *fakeTicketStore) Update(ticket models.SupportTicket) error {
	if f.conflictNext {
		f.conflictNext = false
		return dao.ErrVersionConflict
	}
	current, ok := f.tickets[ticket.ID.Hex()]
	if !ok || current.Version != ticket.Version {
		return dao.ErrVersionConflict
	}
	ticket.Version++
	f.tickets[ticket.ID.Hex()] = ticket
	return nil
}

func (f *fakeTicketStore) Delete(id string) error {
	delete(f.tickets, id)
	return nil
}

type fakeStaffStore struct {
	staff map[string]models.Staff
}

func (f *fakeStaffStore) FindByID(id string) (models.Staff, error) {
	member, ok := f.staff[id]
	if !ok {
		return member, mongo.ErrNoDocuments
	}
	return member, nil
}

type noopNotifiable struct{}

func (noopNotifiable) PushNotification(string, string, string) error { return nil }

func (noopNotifiable) SendTicketCreatedNotification(models.SupportTicket) {}

func (noopNotifiable) SendTicketReplyNotification(models.SupportTicket) {}

func (noopNotifiable) SendTicketAssignedNotification(models.SupportTicket, models.Staff) {}

func (noopNotifiable) SendTicketResolvedNotification(models.SupportTicket) {}

func (noopNotifiable) SendVerificationNotification(models.User) {}

func (noopNotifiable) SendWelcomeNotification(models.User) {}

func (noopNotifiable) SendListingFavoritedNotification(models.Listing) {}

func newTestService() (*Service, *fakeTicketStore, *fakeStaffStore) {
	tickets := newFakeTicketStore()
	staff := &fakeStaffStore{staff: map[string]models.Staff{}}
	return NewSupportService(tickets, staff, noopNotifiable{}), tickets, staff
}

func seedTicket(store *fakeTicketStore, userID, status string) models.SupportTicket {
	now := time.Now().UTC().Add(-time.Hour)
	ticket := models.SupportTicket{
		ID:          primitive.NewObjectID(),
		Title:       "Water leak",
		IssueType:   models.IssueListingProblem,
		ListingID:   "L1",
		Description: "The ceiling is leaking",
		UserID:      userID,
		Status:      status,
		Messages: []models.TicketMessage{{
			SenderType: models.SenderUser,
			SenderID:   userID,
			Content:    "The ceiling is leaking",
			CreatedAt:  now,
		}},
		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
	}
	store.tickets[ticket.ID.Hex()] = ticket
	return ticket
}

func TestCreateTicket(t *testing.T) {
	tests := []struct {
		name        string
		args        CreateTicketArgs
		wantErrKind models.ErrorKind
		wantErr     bool
		check       func(t *testing.T, ticket models.SupportTicket)
	}{
		{
			name: "listing problem retains listing id",
			args: CreateTicketArgs{
				IssueType:   "Problem with a listing",
				ListingID:   "L1",
				Description: "My room is locked",
				UserID:      "U1",
			},
			check: func(t *testing.T, ticket models.SupportTicket) {
				require.Equal(t, models.TicketOpen, ticket.Status)
				require.Equal(t, models.IssueListingProblem, ticket.IssueType)
				require.Equal(t, "L1", ticket.ListingID)
				require.EqualValues(t, 1, ticket.Version)
			},
		},
		{
			name: "other discards supplied listing id",
			args: CreateTicketArgs{
				IssueType:   "Other",
				ListingID:   "L1",
				Description: "Something else entirely",
				UserID:      "U1",
			},
			check: func(t *testing.T, ticket models.SupportTicket) {
				require.Empty(t, ticket.ListingID)
			},
		},
		{
			name: "description seeds first message",
			args: CreateTicketArgs{
				IssueType:   models.IssueAccount,
				Description: "Cannot change my email",
				UserID:      "U2",
			},
			check: func(t *testing.T, ticket models.SupportTicket) {
				require.Len(t, ticket.Messages, 1)
				require.Equal(t, models.SenderUser, ticket.Messages[0].SenderType)
				require.Equal(t, "U2", ticket.Messages[0].SenderID)
				require.Equal(t, "Cannot change my email", ticket.Messages[0].Content)
			},
		},
		{
			name: "listing problem without listing id",
			args: CreateTicketArgs{
				IssueType:   models.IssueListingProblem,
				Description: "My room is locked",
				UserID:      "U1",
			},
			wantErr:     true,
			wantErrKind: models.ValidationError,
		},
		{
			name: "short description",
			args: CreateTicketArgs{
				IssueType:   models.IssueOther,
				Description: "too short",
				UserID:      "U1",
			},
			wantErr:     true,
			wantErrKind: models.ValidationError,
		},
		{
			// 5 characters, 15 bytes: the minimum counts characters
			name: "short multibyte description",
			args: CreateTicketArgs{
				IssueType:   models.IssueOther,
				Description: "ありがとう",
				UserID:      "U1",
			},
			wantErr:     true,
			wantErrKind: models.ValidationError,
		},
		{
			name: "long multibyte description",
			args: CreateTicketArgs{
				IssueType:   models.IssueOther,
				Description: "部屋の鍵が開きません。至急対応をお願いします",
				UserID:      "U1",
			},
			check: func(t *testing.T, ticket models.SupportTicket) {
				require.Equal(t, models.TicketOpen, ticket.Status)
			},
		},
		{
			name: "unknown issue type",
			args: CreateTicketArgs{
				IssueType:   "haunted-house",
				Description: "There is a ghost here",
				UserID:      "U1",
			},
			wantErr:     true,
			wantErrKind: models.ValidationError,
		},
		{
			name: "missing user",
			args: CreateTicketArgs{
				IssueType:   models.IssueOther,
				Description: "No user attached here",
			},
			wantErr:     true,
			wantErrKind: models.ValidationError,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc, store, _ := newTestService()
			ticket, err := svc.createTicket(tc.args)

			if tc.wantErr {
				require.Error(t, err)
				reqErr, ok := models.AsRequestError(err)
				require.True(t, ok)
				require.Equal(t, tc.wantErrKind, reqErr.Kind)
				require.Empty(t, store.tickets)
				return
			}

			require.NoError(t, err)
			require.Contains(t, store.tickets, ticket.ID.Hex())
			if tc.check != nil {
				tc.check(t, ticket)
			}
		})
	}
}

func TestAddMessage(t *testing.T) {
	t.Run("ticket not found", func(t *testing.T) {
		svc, _, _ := newTestService()
		_, _, err := svc.addMessage(primitive.NewObjectID().Hex(), models.SenderUser, "U1", "hello there", nil)
		reqErr, ok := models.AsRequestError(err)
		require.True(t, ok)
		require.Equal(t, models.NotFoundError, reqErr.Kind)
	})

	t.Run("invalid sender type", func(t *testing.T) {
		svc, store, _ := newTestService()
		ticket := seedTicket(store, "U1", models.TicketOpen)
		_, _, err := svc.addMessage(ticket.ID.Hex(), "robot", "U1", "beep", nil)
		reqErr, ok := models.AsRequestError(err)
		require.True(t, ok)
		require.Equal(t, models.ValidationError, reqErr.Kind)
	})

	t.Run("empty content", func(t *testing.T) {
		svc, store, _ := newTestService()
		ticket := seedTicket(store, "U1", models.TicketOpen)
		_, _, err := svc.addMessage(ticket.ID.Hex(), models.SenderUser, "U1", "  ", nil)
		reqErr, ok := models.AsRequestError(err)
		require.True(t, ok)
		require.Equal(t, models.ValidationError, reqErr.Kind)
	})

	t.Run("user cannot post to another user's ticket", func(t *testing.T) {
		svc, store, _ := newTestService()
		ticket := seedTicket(store, "U1", models.TicketOpen)
		_, _, err := svc.addMessage(ticket.ID.Hex(), models.SenderUser, "U2", "let me in", nil)
		reqErr, ok := models.AsRequestError(err)
		require.True(t, ok)
		require.Equal(t, models.PermissionError, reqErr.Kind)
	})

	t.Run("staff reply advances open ticket", func(t *testing.T) {
		svc, store, _ := newTestService()
		ticket := seedTicket(store, "U1", models.TicketOpen)
		updated, staffReply, err := svc.addMessage(ticket.ID.Hex(), models.SenderStaff, "S1", "Looking into it", nil)
		require.NoError(t, err)
		require.True(t, staffReply)
		require.Equal(t, models.TicketInProgress, updated.Status)
	})

	t.Run("staff reply does not change non-open status", func(t *testing.T) {
		svc, store, _ := newTestService()
		ticket := seedTicket(store, "U1", models.TicketResolved)
		updated, _, err := svc.addMessage(ticket.ID.Hex(), models.SenderStaff, "S1", "Following up", nil)
		require.NoError(t, err)
		require.Equal(t, models.TicketResolved, updated.Status)
	})

	t.Run("user reply does not change status", func(t *testing.T) {
		svc, store, _ := newTestService()
		ticket := seedTicket(store, "U1", models.TicketOpen)
		updated, staffReply, err := svc.addMessage(ticket.ID.Hex(), models.SenderUser, "U1", "Any update on this?", nil)
		require.NoError(t, err)
		require.False(t, staffReply)
		require.Equal(t, models.TicketOpen, updated.Status)
	})

	t.Run("messages are append-only", func(t *testing.T) {
		svc, store, _ := newTestService()
		ticket := seedTicket(store, "U1", models.TicketOpen)
		first := ticket.Messages[0]

		updated, _, err := svc.addMessage(ticket.ID.Hex(), models.SenderUser, "U1", "Second message", nil)
		require.NoError(t, err)
		require.Len(t, updated.Messages, 2)
		require.Equal(t, first, updated.Messages[0])
		require.Equal(t, "Second message", updated.Messages[1].Content)
	})

	t.Run("concurrent write is rejected", func(t *testing.T) {
		svc, store, _ := newTestService()
		ticket := seedTicket(store, "U1", models.TicketOpen)
		store.conflictNext = true

		_, _, err := svc.addMessage(ticket.ID.Hex(), models.SenderUser, "U1", "racing update here", nil)
		reqErr, ok := models.AsRequestError(err)
		require.True(t, ok)
		require.Equal(t, models.ConflictError, reqErr.Kind)
	})
}

func TestAssignTicket(t *testing.T) {
	lead := models.Staff{ID: primitive.NewObjectID(), Name: "Lena", Role: models.RoleCustomerServiceLead}
	agent := models.Staff{ID: primitive.NewObjectID(), Name: "Arun", Role: models.RoleCustomerService}
	accountant := models.Staff{ID: primitive.NewObjectID(), Name: "Ines", Role: "Accounting"}

	seedStaff := func(store *fakeStaffStore) {
		for _, m := range []models.Staff{lead, agent, accountant} {
			store.staff[m.ID.Hex()] = m
		}
	}

	t.Run("only a lead can assign", func(t *testing.T) {
		svc, tickets, staff := newTestService()
		seedStaff(staff)
		ticket := seedTicket(tickets, "U1", models.TicketOpen)

		_, _, err := svc.assignTicket(ticket.ID.Hex(), agent.ID.Hex(), models.RoleCustomerService, "")
		reqErr, ok := models.AsRequestError(err)
		require.True(t, ok)
		require.Equal(t, models.PermissionError, reqErr.Kind)
	})

	t.Run("unknown staff target", func(t *testing.T) {
		svc, tickets, staff := newTestService()
		seedStaff(staff)
		ticket := seedTicket(tickets, "U1", models.TicketOpen)

		_, _, err := svc.assignTicket(ticket.ID.Hex(), primitive.NewObjectID().Hex(), models.RoleCustomerServiceLead, "")
		reqErr, ok := models.AsRequestError(err)
		require.True(t, ok)
		require.Equal(t, models.ValidationError, reqErr.Kind)
	})

	t.Run("target must hold a triage role", func(t *testing.T) {
		svc, tickets, staff := newTestService()
		seedStaff(staff)
		ticket := seedTicket(tickets, "U1", models.TicketOpen)

		_, _, err := svc.assignTicket(ticket.ID.Hex(), accountant.ID.Hex(), models.RoleCustomerServiceLead, "")
		reqErr, ok := models.AsRequestError(err)
		require.True(t, ok)
		require.Equal(t, models.ValidationError, reqErr.Kind)
	})

	t.Run("ticket not found", func(t *testing.T) {
		svc, _, staff := newTestService()
		seedStaff(staff)

		_, _, err := svc.assignTicket(primitive.NewObjectID().Hex(), agent.ID.Hex(), models.RoleCustomerServiceLead, "")
		reqErr, ok := models.AsRequestError(err)
		require.True(t, ok)
		require.Equal(t, models.NotFoundError, reqErr.Kind)
	})

	t.Run("assignment snapshots previous state", func(t *testing.T) {
		svc, tickets, staff := newTestService()
		seedStaff(staff)
		ticket := seedTicket(tickets, "U1", models.TicketOpen)

		updated, _, err := svc.assignTicket(ticket.ID.Hex(), agent.ID.Hex(), models.RoleCustomerServiceLead, "take this one")
		require.NoError(t, err)
		require.Equal(t, agent.ID.Hex(), updated.AssignedTo)
		require.Equal(t, models.TicketInProgress, updated.Status)
		require.Len(t, updated.AssignmentHistory, 1)
		require.Equal(t, "", updated.AssignmentHistory[0].PrevAssignedTo)
		require.Equal(t, models.TicketOpen, updated.AssignmentHistory[0].PrevStatus)
		require.Equal(t, "take this one", updated.AssignmentHistory[0].Note)

		// reassign: history is append-only and keeps the earlier assignee
		final, _, err := svc.assignTicket(ticket.ID.Hex(), lead.ID.Hex(), models.RoleCustomerServiceLead, "")
		require.NoError(t, err)
		require.Len(t, final.AssignmentHistory, 2)
		require.Equal(t, agent.ID.Hex(), final.AssignmentHistory[1].PrevAssignedTo)
		require.Equal(t, models.TicketInProgress, final.AssignmentHistory[1].PrevStatus)
	})
}

func TestUpdateStatus(t *testing.T) {
	transitions := []struct {
		from    string
		to      string
		allowed bool
	}{
		{models.TicketOpen, models.TicketInProgress, true},
		{models.TicketOpen, models.TicketClosed, true},
		{models.TicketOpen, models.TicketResolved, false},
		{models.TicketInProgress, models.TicketResolved, true},
		{models.TicketInProgress, models.TicketClosed, true},
		{models.TicketInProgress, models.TicketOpen, false},
		{models.TicketResolved, models.TicketClosed, true},
		{models.TicketResolved, models.TicketOpen, false},
		{models.TicketResolved, models.TicketInProgress, false},
		{models.TicketClosed, models.TicketOpen, false},
		{models.TicketClosed, models.TicketInProgress, false},
		{models.TicketClosed, models.TicketResolved, false},
	}

	for _, tc := range transitions {
		t.Run(tc.from+" to "+tc.to, func(t *testing.T) {
			svc, store, _ := newTestService()
			ticket := seedTicket(store, "U1", tc.from)

			updated, err := svc.updateStatus(ticket.ID.Hex(), tc.to)
			if !tc.allowed {
				reqErr, ok := models.AsRequestError(err)
				require.True(t, ok)
				require.Equal(t, models.InvalidTransitionError, reqErr.Kind)
				return
			}

			require.NoError(t, err)
			require.Equal(t, tc.to, updated.Status)
			if tc.to == models.TicketResolved {
				require.NotNil(t, updated.ResolvedAt)
				require.False(t, updated.ResolvedAt.Before(updated.CreatedAt))
			}
		})
	}

	t.Run("unknown status value", func(t *testing.T) {
		svc, store, _ := newTestService()
		ticket := seedTicket(store, "U1", models.TicketOpen)

		_, err := svc.updateStatus(ticket.ID.Hex(), "archived")
		reqErr, ok := models.AsRequestError(err)
		require.True(t, ok)
		require.Equal(t, models.ValidationError, reqErr.Kind)
	})
}

func TestDeleteTicket(t *testing.T) {
	t.Run("owner deletes open ticket", func(t *testing.T) {
		svc, store, _ := newTestService()
		ticket := seedTicket(store, "U1", models.TicketOpen)

		_, err := svc.deleteTicket(ticket.ID.Hex(), "U1")
		require.NoError(t, err)
		require.NotContains(t, store.tickets, ticket.ID.Hex())
	})

	t.Run("non-owner is rejected", func(t *testing.T) {
		svc, store, _ := newTestService()
		ticket := seedTicket(store, "U1", models.TicketOpen)

		_, err := svc.deleteTicket(ticket.ID.Hex(), "U2")
		reqErr, ok := models.AsRequestError(err)
		require.True(t, ok)
		require.Equal(t, models.PermissionError, reqErr.Kind)
		require.Contains(t, store.tickets, ticket.ID.Hex())
	})

	t.Run("in-progress ticket cannot be deleted", func(t *testing.T) {
		svc, store, _ := newTestService()
		ticket := seedTicket(store, "U1", models.TicketInProgress)

		_, err := svc.deleteTicket(ticket.ID.Hex(), "U1")
		reqErr, ok := models.AsRequestError(err)
		require.True(t, ok)
		require.Equal(t, models.InvalidStateError, reqErr.Kind)
		require.Contains(t, store.tickets, ticket.ID.Hex())
	})
}

func TestUpdateNote(t *testing.T) {
	svc, store, _ := newTestService()
	ticket := seedTicket(store, "U1", models.TicketInProgress)

	updated, err := svc.updateNote(ticket.ID.Hex(), "waiting on landlord")
	require.NoError(t, err)
	require.Equal(t, "waiting on landlord", updated.AssignmentNote)
}
