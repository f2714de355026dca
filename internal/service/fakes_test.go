package service

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/repository"
)

// In-memory doubles for the repository layer. Transactionality is not
// under test here, so the unit of work just runs the function.

type noopUnitOfWork struct{}

func (noopUnitOfWork) WithinTx(ctx context.Context, fn func(context.Context) error) error {
	return fn(ctx)
}

type fakeTicketRepo struct {
	tickets map[string]*domain.Ticket
	seq     int
}

func newFakeTicketRepo() *fakeTicketRepo {
	return &fakeTicketRepo{tickets: make(map[string]*domain.Ticket)}
}

func (r *fakeTicketRepo) Create(_ context.Context, ticket *domain.Ticket) error {
	r.seq++
	ticket.ID = fmt.Sprintf("ticket-%d", r.seq)
	stored := *ticket
	r.tickets[ticket.ID] = &stored
	return nil
}

func (r *fakeTicketRepo) Update(_ context.Context, ticket *domain.Ticket) error {
	if _, ok := r.tickets[ticket.ID]; !ok {
		return pgx.ErrNoRows
	}
	stored := *ticket
	r.tickets[ticket.ID] = &stored
	return nil
}

func (r *fakeTicketRepo) GetByID(_ context.Context, id string) (*domain.Ticket, error) {
	ticket, ok := r.tickets[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *ticket
	return &copied, nil
}

func (r *fakeTicketRepo) ListWithFilter(_ context.Context, filter repository.TicketFilter) ([]domain.Ticket, error) {
	var result []domain.Ticket
	for _, ticket := range r.tickets {
		if filter.RequesterID != nil && ticket.RequesterID != *filter.RequesterID {
			continue
		}
		result = append(result, *ticket)
	}
	return result, nil
}

func (r *fakeTicketRepo) ListClosed(_ context.Context) ([]domain.Ticket, error) {
	var result []domain.Ticket
	for _, ticket := range r.tickets {
		if ticket.Status == domain.TicketStatusClosed {
			result = append(result, *ticket)
		}
	}
	return result, nil
}

func (r *fakeTicketRepo) CountByStatus(_ context.Context) (map[domain.TicketStatus]int, error) {
	counts := make(map[domain.TicketStatus]int)
	for _, ticket := range r.tickets {
		counts[ticket.Status]++
	}
	return counts, nil
}

func (r *fakeTicketRepo) CountByCategory(_ context.Context) (map[string]int, error) {
	counts := make(map[string]int)
	for _, ticket := range r.tickets {
		counts[ticket.CategoryID]++
	}
	return counts, nil
}

func (r *fakeTicketRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.tickets[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.tickets, id)
	return nil
}

type fakeUserRepo struct {
	users map[string]*domain.User
	seq   int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*domain.User)}
}

func (r *fakeUserRepo) add(user domain.User) *domain.User {
	if user.ID == "" {
		r.seq++
		user.ID = fmt.Sprintf("user-%d", r.seq)
	}
	stored := user
	r.users[user.ID] = &stored
	return &stored
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	r.seq++
	user.ID = fmt.Sprintf("user-%d", r.seq)
	stored := *user
	r.users[user.ID] = &stored
	return nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *domain.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return pgx.ErrNoRows
	}
	stored := *user
	r.users[user.ID] = &stored
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeUserRepo) List(_ context.Context, filter repository.UserFilter) ([]domain.User, error) {
	var result []domain.User
	for _, user := range r.users {
		if filter.Role != nil && user.Role != *filter.Role {
			continue
		}
		result = append(result, *user)
	}
	return result, nil
}

func (r *fakeUserRepo) ListActiveByRole(_ context.Context, role domain.Role) ([]domain.User, error) {
	var result []domain.User
	// map order is random; return in insertion order via the sequential IDs
	for i := 1; i <= r.seq; i++ {
		user, ok := r.users[fmt.Sprintf("user-%d", i)]
		if !ok {
			continue
		}
		if user.Role == role && user.Active {
			result = append(result, *user)
		}
	}
	return result, nil
}

type fakeCategoryRepo struct {
	categories map[string]*domain.Category
	seq        int
}

func newFakeCategoryRepo() *fakeCategoryRepo {
	return &fakeCategoryRepo{categories: make(map[string]*domain.Category)}
}

func (r *fakeCategoryRepo) add(category domain.Category) *domain.Category {
	stored := category
	r.categories[category.ID] = &stored
	return &stored
}

func (r *fakeCategoryRepo) Create(_ context.Context, category *domain.Category) error {
	if category.ID == "" {
		r.seq++
		category.ID = fmt.Sprintf("category-%d", r.seq)
	}
	stored := *category
	r.categories[category.ID] = &stored
	return nil
}

func (r *fakeCategoryRepo) Update(_ context.Context, category *domain.Category) error {
	if _, ok := r.categories[category.ID]; !ok {
		return pgx.ErrNoRows
	}
	stored := *category
	r.categories[category.ID] = &stored
	return nil
}

func (r *fakeCategoryRepo) GetByID(_ context.Context, id string) (*domain.Category, error) {
	category, ok := r.categories[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *category
	return &copied, nil
}

func (r *fakeCategoryRepo) GetByName(_ context.Context, name string) (*domain.Category, error) {
	for _, category := range r.categories {
		if category.Name == name {
			copied := *category
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeCategoryRepo) List(_ context.Context) ([]domain.Category, error) {
	var result []domain.Category
	for _, category := range r.categories {
		result = append(result, *category)
	}
	return result, nil
}

type fakeCommentRepo struct {
	comments []domain.Comment
	seq      int
}

func (r *fakeCommentRepo) Create(_ context.Context, comment *domain.Comment) error {
	r.seq++
	comment.ID = fmt.Sprintf("comment-%d", r.seq)
	r.comments = append(r.comments, *comment)
	return nil
}

func (r *fakeCommentRepo) ListByTicket(_ context.Context, ticketID string) ([]domain.Comment, error) {
	var result []domain.Comment
	for _, comment := range r.comments {
		if comment.TicketID == ticketID {
			result = append(result, comment)
		}
	}
	return result, nil
}

type fakeAttachmentRepo struct {
	attachments []domain.Attachment
	seq         int
}

func (r *fakeAttachmentRepo) Create(_ context.Context, attachment *domain.Attachment) error {
	r.seq++
	attachment.ID = fmt.Sprintf("attachment-%d", r.seq)
	r.attachments = append(r.attachments, *attachment)
	return nil
}

func (r *fakeAttachmentRepo) ListByTicket(_ context.Context, ticketID string) ([]domain.Attachment, error) {
	var result []domain.Attachment
	for _, attachment := range r.attachments {
		if attachment.TicketID == ticketID {
			result = append(result, attachment)
		}
	}
	return result, nil
}

type fakeNotificationRepo struct {
	notifications []domain.Notification
	seq           int
}

func (r *fakeNotificationRepo) Create(_ context.Context, notification *domain.Notification) error {
	r.seq++
	notification.ID = fmt.Sprintf("notification-%d", r.seq)
	r.notifications = append(r.notifications, *notification)
	return nil
}

func (r *fakeNotificationRepo) ListByRecipient(_ context.Context, recipientID string, _, _ int) ([]domain.Notification, error) {
	var result []domain.Notification
	for _, notification := range r.notifications {
		if notification.RecipientID == recipientID {
			result = append(result, notification)
		}
	}
	return result, nil
}

func (r *fakeNotificationRepo) MarkAllRead(_ context.Context, recipientID string) error {
	for i := range r.notifications {
		if r.notifications[i].RecipientID == recipientID {
			r.notifications[i].Read = true
		}
	}
	return nil
}

func (r *fakeNotificationRepo) CountUnread(_ context.Context, recipientID string) (int, error) {
	count := 0
	for _, notification := range r.notifications {
		if notification.RecipientID == recipientID && !notification.Read {
			count++
		}
	}
	return count, nil
}

func (r *fakeNotificationRepo) forRecipient(recipientID string) []domain.Notification {
	var result []domain.Notification
	for _, notification := range r.notifications {
		if notification.RecipientID == recipientID {
			result = append(result, notification)
		}
	}
	return result
}

type fakeAssetRepo struct {
	assets map[string]*domain.Asset
	seq    int
}

func newFakeAssetRepo() *fakeAssetRepo {
	return &fakeAssetRepo{assets: make(map[string]*domain.Asset)}
}

func (r *fakeAssetRepo) Create(_ context.Context, asset *domain.Asset) error {
	r.seq++
	asset.ID = fmt.Sprintf("asset-%d", r.seq)
	stored := *asset
	r.assets[asset.ID] = &stored
	return nil
}

func (r *fakeAssetRepo) Update(_ context.Context, asset *domain.Asset) error {
	if _, ok := r.assets[asset.ID]; !ok {
		return pgx.ErrNoRows
	}
	stored := *asset
	r.assets[asset.ID] = &stored
	return nil
}

func (r *fakeAssetRepo) GetByID(_ context.Context, id string) (*domain.Asset, error) {
	asset, ok := r.assets[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *asset
	return &copied, nil
}

func (r *fakeAssetRepo) GetBySerialNumber(_ context.Context, serial string) (*domain.Asset, error) {
	for _, asset := range r.assets {
		if asset.SerialNumber == serial {
			copied := *asset
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeAssetRepo) List(_ context.Context, filter repository.AssetFilter) ([]domain.Asset, error) {
	var result []domain.Asset
	for _, asset := range r.assets {
		if filter.Type != nil && asset.Type != *filter.Type {
			continue
		}
		result = append(result, *asset)
	}
	return result, nil
}

func (r *fakeAssetRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.assets[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.assets, id)
	return nil
}

// fakeCursor mirrors the increment-and-fetch backends: the first advance
// lands on position zero, later advances wrap against the supplied size.
type fakeCursor struct {
	started  bool
	position int
}

func (c *fakeCursor) Advance(_ context.Context, poolSize int) (int, error) {
	if poolSize <= 0 {
		return 0, fmt.Errorf("pool size must be positive, got %d", poolSize)
	}
	if !c.started {
		c.started = true
		c.position = 0
		return 0, nil
	}
	c.position = (c.position + 1) % poolSize
	return c.position, nil
}
