package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/events"
	"github.com/spec-kit/helpdesk-service/internal/repository"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util"
)

type ticketFixture struct {
	service       *TicketService
	tickets       *fakeTicketRepo
	users         *fakeUserRepo
	categories    *fakeCategoryRepo
	comments      *fakeCommentRepo
	notifications *fakeNotificationRepo
	attachments   *fakeAttachmentRepo
	requester     *domain.User
	tier1         *domain.User
	tier2         *domain.User
	clock         time.Time
}

func newTicketFixture(t *testing.T, tier1Count int) *ticketFixture {
	t.Helper()
	f := &ticketFixture{
		tickets:       newFakeTicketRepo(),
		users:         newFakeUserRepo(),
		categories:    newFakeCategoryRepo(),
		comments:      &fakeCommentRepo{},
		notifications: &fakeNotificationRepo{},
		attachments:   &fakeAttachmentRepo{},
		clock:         time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC),
	}

	f.requester = f.users.add(domain.User{Name: "Dana", Email: "dana@example.com", Role: domain.RoleEndUser, Active: true})
	for i := 0; i < tier1Count; i++ {
		tech := f.users.add(domain.User{Name: "Tech", Email: "tech@example.com", Role: domain.RoleTier1, Active: true})
		if f.tier1 == nil {
			f.tier1 = tech
		}
	}
	f.tier2 = f.users.add(domain.User{Name: "Lead", Email: "lead@example.com", Role: domain.RoleTier2, Active: true})

	f.categories.add(domain.Category{ID: "cat-hw", Name: "Hardware", ResponseSLAHours: 2, ResolutionSLAHours: 8})

	f.service = NewTicketService(TicketDependencies{
		TicketRepo:     f.tickets,
		CategoryRepo:   f.categories,
		UserRepo:       f.users,
		CommentRepo:    f.comments,
		AttachmentRepo: f.attachments,
		Notifier:       NewNotifier(f.notifications),
		Rotator:        NewRotationService(f.users, &fakeCursor{}),
		UnitOfWork:     noopUnitOfWork{},
		Dispatcher:     events.NewInMemoryDispatcher(),
		AllowedExts:    []string{"pdf", "png", "log"},
	})
	f.service.now = func() time.Time { return f.clock }
	return f
}

func (f *ticketFixture) createTicket(t *testing.T) *domain.Ticket {
	t.Helper()
	ticket, err := f.service.CreateTicket(context.Background(), f.requester, TicketCreateInput{
		CategoryID:  "cat-hw",
		Subject:     "Laptop will not boot",
		Description: "Screen stays black after power on.",
	})
	require.NoError(t, err)
	return ticket
}

func TestCreateTicketComputesSLADeadline(t *testing.T) {
	f := newTicketFixture(t, 1)

	ticket := f.createTicket(t)

	assert.Equal(t, domain.TicketStatusOpen, ticket.Status)
	assert.Equal(t, domain.TicketPriorityMedium, ticket.Priority)
	assert.Equal(t, f.clock.Add(8*time.Hour), ticket.SLADueAt)
	assert.Nil(t, ticket.ClosedAt)
	assert.NotEmpty(t, ticket.ExternalKey)
}

func TestCreateTicketAssignsAndNotifiesTechnician(t *testing.T) {
	f := newTicketFixture(t, 1)

	ticket := f.createTicket(t)

	require.NotNil(t, ticket.TechnicianID)
	assert.Equal(t, f.tier1.ID, *ticket.TechnicianID)
	assert.Len(t, f.notifications.forRecipient(f.tier1.ID), 1)
}

func TestCreateTicketWithEmptyPool(t *testing.T) {
	f := newTicketFixture(t, 0)

	ticket := f.createTicket(t)

	assert.Nil(t, ticket.TechnicianID)
	assert.Empty(t, f.notifications.notifications)
}

func TestCreateTicketValidation(t *testing.T) {
	f := newTicketFixture(t, 1)
	ctx := context.Background()

	_, err := f.service.CreateTicket(ctx, f.requester, TicketCreateInput{CategoryID: "cat-hw", Subject: " ", Description: "x"})
	assert.True(t, apperrors.IsCode(err, "VALIDATION_FAILED"))

	_, err = f.service.CreateTicket(ctx, f.requester, TicketCreateInput{CategoryID: "missing", Subject: "s", Description: "d"})
	assert.True(t, apperrors.IsCode(err, "VALIDATION_FAILED"))

	_, err = f.service.CreateTicket(ctx, f.requester, TicketCreateInput{
		CategoryID: "cat-hw", Subject: "s", Description: "d", Priority: "URGENT",
	})
	assert.True(t, apperrors.IsCode(err, "VALIDATION_FAILED"))
}

func TestCreateTicketAttachmentAllowList(t *testing.T) {
	f := newTicketFixture(t, 1)
	ctx := context.Background()

	_, err := f.service.CreateTicket(ctx, f.requester, TicketCreateInput{
		CategoryID: "cat-hw", Subject: "s", Description: "d",
		Attachment: &AttachmentInput{FileName: "dump.exe", SizeBytes: 10},
	})
	assert.True(t, apperrors.IsCode(err, "VALIDATION_FAILED"))
	assert.Empty(t, f.attachments.attachments)

	ticket, err := f.service.CreateTicket(ctx, f.requester, TicketCreateInput{
		CategoryID: "cat-hw", Subject: "s", Description: "d",
		Attachment: &AttachmentInput{FileName: "boot.log", SizeBytes: 10},
	})
	require.NoError(t, err)
	require.Len(t, f.attachments.attachments, 1)
	assert.Equal(t, ticket.ID, f.attachments.attachments[0].TicketID)
	assert.Equal(t, ticket.ID+"/boot.log", f.attachments.attachments[0].StorageKey)
}

func TestChangeStatusCloseAndReopen(t *testing.T) {
	f := newTicketFixture(t, 1)
	ctx := context.Background()
	ticket := f.createTicket(t)

	closedAt := f.clock.Add(3 * time.Hour)
	f.clock = closedAt
	updated, err := f.service.ChangeStatus(ctx, f.tier1, ticket.ID, domain.TicketStatusClosed)
	require.NoError(t, err)
	assert.Equal(t, domain.TicketStatusClosed, updated.Status)
	require.NotNil(t, updated.ClosedAt)
	assert.Equal(t, closedAt, *updated.ClosedAt)

	reopened, err := f.service.ChangeStatus(ctx, f.tier1, ticket.ID, domain.TicketStatusOpen)
	require.NoError(t, err)
	assert.Equal(t, domain.TicketStatusOpen, reopened.Status)
	assert.Nil(t, reopened.ClosedAt)

	// requester notified on both transitions
	assert.Len(t, f.notifications.forRecipient(f.requester.ID), 2)
}

func TestChangeStatusSameStateIsNoOp(t *testing.T) {
	f := newTicketFixture(t, 1)
	ticket := f.createTicket(t)

	before := len(f.notifications.forRecipient(f.requester.ID))
	updated, err := f.service.ChangeStatus(context.Background(), f.tier1, ticket.ID, domain.TicketStatusOpen)
	require.NoError(t, err)
	assert.Equal(t, domain.TicketStatusOpen, updated.Status)
	assert.Len(t, f.notifications.forRecipient(f.requester.ID), before)
}

func TestChangeStatusForbiddenForEndUser(t *testing.T) {
	f := newTicketFixture(t, 1)
	ticket := f.createTicket(t)

	_, err := f.service.ChangeStatus(context.Background(), f.requester, ticket.ID, domain.TicketStatusClosed)
	assert.True(t, apperrors.IsCode(err, "FORBIDDEN"))
}

func TestChangeStatusUnknownState(t *testing.T) {
	f := newTicketFixture(t, 1)
	ticket := f.createTicket(t)

	_, err := f.service.ChangeStatus(context.Background(), f.tier1, ticket.ID, "RESOLVED")
	assert.True(t, apperrors.IsCode(err, "VALIDATION_FAILED"))
}

func TestSelfAssignNotifiesRequester(t *testing.T) {
	f := newTicketFixture(t, 0)
	ticket := f.createTicket(t)
	require.Nil(t, ticket.TechnicianID)

	updated, err := f.service.SelfAssign(context.Background(), f.tier2, ticket.ID)
	require.NoError(t, err)
	require.NotNil(t, updated.TechnicianID)
	assert.Equal(t, f.tier2.ID, *updated.TechnicianID)

	requesterInbox := f.notifications.forRecipient(f.requester.ID)
	require.Len(t, requesterInbox, 1)
	assert.Contains(t, requesterInbox[0].Message, f.tier2.Name)
}

func TestReassignNotifiesTargetAndPrevious(t *testing.T) {
	f := newTicketFixture(t, 1)
	ticket := f.createTicket(t)
	require.NotNil(t, ticket.TechnicianID)

	updated, err := f.service.Reassign(context.Background(), f.tier1, ticket.ID, f.tier2.ID)
	require.NoError(t, err)
	assert.Equal(t, f.tier2.ID, *updated.TechnicianID)

	// assignment notice to the target, handoff notice to the previous holder
	assert.Len(t, f.notifications.forRecipient(f.tier2.ID), 1)
	assert.Len(t, f.notifications.forRecipient(f.tier1.ID), 2) // creation + handoff
}

func TestReassignToCurrentHolderSkipsHandoffNotice(t *testing.T) {
	f := newTicketFixture(t, 1)
	ticket := f.createTicket(t)

	_, err := f.service.Reassign(context.Background(), f.tier1, ticket.ID, f.tier1.ID)
	require.NoError(t, err)

	// creation assignment + reassignment to self, no handoff notice
	assert.Len(t, f.notifications.forRecipient(f.tier1.ID), 2)
}

func TestReassignTargetValidation(t *testing.T) {
	f := newTicketFixture(t, 1)
	ctx := context.Background()
	ticket := f.createTicket(t)

	_, err := f.service.Reassign(ctx, f.tier1, ticket.ID, "no-such-user")
	assert.True(t, apperrors.IsCode(err, "NOT_FOUND"))

	_, err = f.service.Reassign(ctx, f.tier1, ticket.ID, f.requester.ID)
	assert.True(t, apperrors.IsCode(err, "VALIDATION_FAILED"))
}

func TestAddCommentRoutesNotification(t *testing.T) {
	f := newTicketFixture(t, 1)
	ctx := context.Background()
	ticket := f.createTicket(t)

	_, err := f.service.AddComment(ctx, f.tier1, ticket.ID, "Have you tried turning it off and on?")
	require.NoError(t, err)
	assert.Len(t, f.notifications.forRecipient(f.requester.ID), 1)

	_, err = f.service.AddComment(ctx, f.requester, ticket.ID, "Yes, same result.")
	require.NoError(t, err)
	assert.Len(t, f.notifications.forRecipient(f.tier1.ID), 2) // assignment + comment
}

func TestAddCommentOnClosedTicketRejected(t *testing.T) {
	f := newTicketFixture(t, 1)
	ctx := context.Background()
	ticket := f.createTicket(t)

	_, err := f.service.ChangeStatus(ctx, f.tier1, ticket.ID, domain.TicketStatusClosed)
	require.NoError(t, err)

	_, err = f.service.AddComment(ctx, f.requester, ticket.ID, "One more thing...")
	assert.True(t, apperrors.IsCode(err, "STATE_CONFLICT"))
	assert.Empty(t, f.comments.comments)
}

func TestAddCommentAccessDeniedForStranger(t *testing.T) {
	f := newTicketFixture(t, 1)
	ticket := f.createTicket(t)

	stranger := f.users.add(domain.User{Name: "Eve", Email: "eve@example.com", Role: domain.RoleEndUser, Active: true})
	_, err := f.service.AddComment(context.Background(), stranger, ticket.ID, "hello")
	assert.True(t, apperrors.IsCode(err, "FORBIDDEN"))
}

func TestListTicketsScopesRequesters(t *testing.T) {
	f := newTicketFixture(t, 1)
	ctx := context.Background()
	f.createTicket(t)

	other := f.users.add(domain.User{Name: "Omar", Email: "omar@example.com", Role: domain.RoleEndUser, Active: true})
	_, err := f.service.CreateTicket(ctx, other, TicketCreateInput{
		CategoryID: "cat-hw", Subject: "Mouse broken", Description: "Left click dead.",
	})
	require.NoError(t, err)

	mine, err := f.service.ListTickets(ctx, f.requester, repository.TicketFilter{})
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	all, err := f.service.ListTickets(ctx, f.tier1, repository.TicketFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestGetTicketVisibility(t *testing.T) {
	f := newTicketFixture(t, 1)
	ctx := context.Background()
	ticket := f.createTicket(t)

	_, _, _, err := f.service.GetTicket(ctx, f.requester, ticket.ID)
	assert.NoError(t, err)

	stranger := f.users.add(domain.User{Name: "Eve", Email: "eve@example.com", Role: domain.RoleEndUser, Active: true})
	_, _, _, err = f.service.GetTicket(ctx, stranger, ticket.ID)
	assert.True(t, apperrors.IsCode(err, "FORBIDDEN"))

	_, _, _, err = f.service.GetTicket(ctx, f.tier1, ticket.ID)
	assert.NoError(t, err)
}

func TestDeleteTicketRequiresTier2(t *testing.T) {
	f := newTicketFixture(t, 1)
	ctx := context.Background()
	ticket := f.createTicket(t)

	err := f.service.DeleteTicket(ctx, f.tier1, ticket.ID)
	assert.True(t, apperrors.IsCode(err, "FORBIDDEN"))

	require.NoError(t, f.service.DeleteTicket(ctx, f.tier2, ticket.ID))
	err = f.service.DeleteTicket(ctx, f.tier2, ticket.ID)
	assert.True(t, apperrors.IsCode(err, "NOT_FOUND"))
}
