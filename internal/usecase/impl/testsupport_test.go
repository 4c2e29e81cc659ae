package impl

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sort"
	"strings"
	"time"

	"lifelink/internal/domain/entity"
	domainerrors "lifelink/internal/domain/errors"
	"lifelink/internal/domain/repository"
	"lifelink/internal/domain/service"

	"github.com/google/uuid"
)

// Hand-written fakes shared by the service tests. Each fake keeps its state
// in maps and mimics only the behavior the services rely on.

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// --- user repository ---

type fakeUserRepo struct {
	users map[uuid.UUID]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*entity.User)}
}

func (f *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	if u, ok := f.users[id]; ok {
		clone := *u

		return &clone, nil
	}

	return nil, repository.ErrUserNotFound
}

func (f *fakeUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			clone := *u

			return &clone, nil
		}
	}

	return nil, repository.ErrUserNotFound
}

func (f *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	clone := *user
	f.users[user.ID] = &clone

	return nil
}

func (f *fakeUserRepo) Update(_ context.Context, user *entity.User) error {
	if _, ok := f.users[user.ID]; !ok {
		return repository.ErrUserNotFound
	}
	user.UpdatedAt = time.Now()
	clone := *user
	f.users[user.ID] = &clone

	return nil
}

func (f *fakeUserRepo) CountAll(_ context.Context) (int64, error) {
	return int64(len(f.users)), nil
}

// --- auth repository ---

type fakeAuthRepo struct {
	auths  map[string]*entity.Authentication
	tokens map[string]*entity.RefreshToken
}

func newFakeAuthRepo() *fakeAuthRepo {
	return &fakeAuthRepo{
		auths:  make(map[string]*entity.Authentication),
		tokens: make(map[string]*entity.RefreshToken),
	}
}

func authKey(provider, providerUserID string) string {
	return provider + "|" + providerUserID
}

func (f *fakeAuthRepo) CreateAuthentication(_ context.Context, auth *entity.Authentication) error {
	if auth.ID == uuid.Nil {
		auth.ID = uuid.New()
	}
	auth.CreatedAt = time.Now()
	clone := *auth
	f.auths[authKey(auth.Provider, auth.ProviderUserID)] = &clone

	return nil
}

func (f *fakeAuthRepo) FindAuthentication(_ context.Context, provider, providerUserID string) (*entity.Authentication, error) {
	if a, ok := f.auths[authKey(provider, providerUserID)]; ok {
		clone := *a

		return &clone, nil
	}

	return nil, repository.ErrAuthNotFound
}

func (f *fakeAuthRepo) CreateRefreshToken(_ context.Context, token *entity.RefreshToken) error {
	if token.ID == uuid.Nil {
		token.ID = uuid.New()
	}
	token.CreatedAt = time.Now()
	clone := *token
	f.tokens[token.TokenHash] = &clone

	return nil
}

func (f *fakeAuthRepo) FindRefreshTokenByHash(_ context.Context, hash string) (*entity.RefreshToken, error) {
	if t, ok := f.tokens[hash]; ok {
		clone := *t

		return &clone, nil
	}

	return nil, repository.ErrTokenNotFound
}

func (f *fakeAuthRepo) DeleteRefreshTokenByHash(_ context.Context, hash string) error {
	if _, ok := f.tokens[hash]; !ok {
		return repository.ErrTokenNotFound
	}
	delete(f.tokens, hash)

	return nil
}

// --- listing repository ---

type fakeListingRepo struct {
	listings map[uuid.UUID]*entity.Listing
}

func newFakeListingRepo() *fakeListingRepo {
	return &fakeListingRepo{listings: make(map[uuid.UUID]*entity.Listing)}
}

func (f *fakeListingRepo) Create(_ context.Context, listing *entity.Listing) error {
	if listing.ID == uuid.Nil {
		listing.ID = uuid.New()
	}
	listing.CreatedAt = time.Now()
	listing.UpdatedAt = listing.CreatedAt
	clone := *listing
	f.listings[listing.ID] = &clone

	return nil
}

func (f *fakeListingRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Listing, error) {
	if l, ok := f.listings[id]; ok {
		clone := *l

		return &clone, nil
	}

	return nil, repository.ErrListingNotFound
}

func (f *fakeListingRepo) FindByProvider(_ context.Context, providerID uuid.UUID) ([]*entity.Listing, error) {
	var out []*entity.Listing
	for _, l := range f.listings {
		if l.ProviderID == providerID {
			clone := *l
			out = append(out, &clone)
		}
	}

	return out, nil
}

func (f *fakeListingRepo) SearchVerified(_ context.Context, filter repository.ListingFilter) ([]*entity.Listing, error) {
	now := time.Now()
	var out []*entity.Listing
	for _, l := range f.listings {
		if l.Status != entity.ListingVerified {
			continue
		}
		if l.Expired(now) {
			continue
		}
		if filter.Category != "" && l.Category != filter.Category {
			continue
		}
		if filter.Query != "" && !strings.Contains(strings.ToLower(l.Name), strings.ToLower(filter.Query)) {
			continue
		}
		clone := *l
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Urgent != out[j].Urgent {
			return out[i].Urgent
		}

		return out[i].CreatedAt.After(out[j].CreatedAt)
	})

	return out, nil
}

func (f *fakeListingRepo) FindPending(_ context.Context) ([]*entity.Listing, error) {
	var out []*entity.Listing
	for _, l := range f.listings {
		if l.Status == entity.ListingPending {
			clone := *l
			out = append(out, &clone)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })

	return out, nil
}

func (f *fakeListingRepo) UpdateStatus(_ context.Context, id uuid.UUID, status entity.ListingStatus) error {
	l, ok := f.listings[id]
	if !ok {
		return repository.ErrListingNotFound
	}
	l.Status = status

	return nil
}

func (f *fakeListingRepo) Reserve(_ context.Context, id uuid.UUID) error {
	l, ok := f.listings[id]
	if !ok || l.Status != entity.ListingVerified {
		return repository.ErrListingNotReservable
	}
	l.Status = entity.ListingReserved

	return nil
}

func (f *fakeListingRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.listings[id]; !ok {
		return repository.ErrListingNotFound
	}
	delete(f.listings, id)

	return nil
}

func (f *fakeListingRepo) CountByStatus(_ context.Context) (map[entity.ListingStatus]int64, error) {
	counts := make(map[entity.ListingStatus]int64)
	for _, l := range f.listings {
		counts[l.Status]++
	}

	return counts, nil
}

// --- request repository ---

type fakeRequestRepo struct {
	requests map[uuid.UUID]*entity.SupplyRequest
	listings *fakeListingRepo
}

func newFakeRequestRepo(listings *fakeListingRepo) *fakeRequestRepo {
	return &fakeRequestRepo{
		requests: make(map[uuid.UUID]*entity.SupplyRequest),
		listings: listings,
	}
}

func (f *fakeRequestRepo) Create(_ context.Context, request *entity.SupplyRequest) error {
	if request.ID == uuid.Nil {
		request.ID = uuid.New()
	}
	request.CreatedAt = time.Now()
	request.UpdatedAt = request.CreatedAt
	clone := *request
	clone.Listing = nil
	f.requests[request.ID] = &clone

	return nil
}

func (f *fakeRequestRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.SupplyRequest, error) {
	r, ok := f.requests[id]
	if !ok {
		return nil, repository.ErrRequestNotFound
	}
	clone := *r
	if listing, err := f.listings.FindByID(ctx, r.ListingID); err == nil {
		clone.Listing = listing
	}

	return &clone, nil
}

func (f *fakeRequestRepo) FindByRequester(ctx context.Context, requesterID uuid.UUID) ([]*entity.SupplyRequest, error) {
	var out []*entity.SupplyRequest
	for id, r := range f.requests {
		if r.RequesterID == requesterID {
			loaded, _ := f.FindByID(ctx, id)
			out = append(out, loaded)
		}
	}

	return out, nil
}

func (f *fakeRequestRepo) FindByProvider(ctx context.Context, providerID uuid.UUID) ([]*entity.SupplyRequest, error) {
	var out []*entity.SupplyRequest
	for id := range f.requests {
		loaded, _ := f.FindByID(ctx, id)
		if loaded.Listing != nil && loaded.Listing.ProviderID == providerID {
			out = append(out, loaded)
		}
	}

	return out, nil
}

func (f *fakeRequestRepo) UpdateStatus(_ context.Context, id uuid.UUID, status entity.RequestStatus) error {
	r, ok := f.requests[id]
	if !ok {
		return repository.ErrRequestNotFound
	}
	r.Status = status

	return nil
}

func (f *fakeRequestRepo) CountByStatus(_ context.Context) (map[entity.RequestStatus]int64, error) {
	counts := make(map[entity.RequestStatus]int64)
	for _, r := range f.requests {
		counts[r.Status]++
	}

	return counts, nil
}

// --- review repository ---

type fakeReviewRepo struct {
	reviews map[uuid.UUID]*entity.Review
}

func newFakeReviewRepo() *fakeReviewRepo {
	return &fakeReviewRepo{reviews: make(map[uuid.UUID]*entity.Review)}
}

func (f *fakeReviewRepo) Create(_ context.Context, review *entity.Review) error {
	for _, existing := range f.reviews {
		if existing.RequestID == review.RequestID {
			// Mirrors the unique-index violation mapping of the real repository.
			return domainerrors.ErrAlreadyReviewed
		}
	}
	if review.ID == uuid.Nil {
		review.ID = uuid.New()
	}
	review.CreatedAt = time.Now()
	clone := *review
	f.reviews[review.ID] = &clone

	return nil
}

func (f *fakeReviewRepo) FindByRequestID(_ context.Context, requestID uuid.UUID) (*entity.Review, error) {
	for _, r := range f.reviews {
		if r.RequestID == requestID {
			clone := *r

			return &clone, nil
		}
	}

	return nil, repository.ErrReviewNotFound
}

func (f *fakeReviewRepo) ListByReviewed(_ context.Context, reviewedID uuid.UUID) ([]*entity.Review, error) {
	var out []*entity.Review
	for _, r := range f.reviews {
		if r.ReviewedID == reviewedID {
			clone := *r
			out = append(out, &clone)
		}
	}

	return out, nil
}

func (f *fakeReviewRepo) AverageForReviewed(_ context.Context, reviewedID uuid.UUID) (float64, int64, error) {
	var sum, count int64
	for _, r := range f.reviews {
		if r.ReviewedID == reviewedID {
			sum += int64(r.Stars)
			count++
		}
	}
	if count == 0 {
		return 0, 0, nil
	}

	return float64(sum) / float64(count), count, nil
}

// --- ticket repository ---

type fakeTicketRepo struct {
	tickets []*entity.SupportTicket
}

func (f *fakeTicketRepo) Create(_ context.Context, ticket *entity.SupportTicket) error {
	if ticket.ID == uuid.Nil {
		ticket.ID = uuid.New()
	}
	ticket.CreatedAt = time.Now()
	clone := *ticket
	f.tickets = append(f.tickets, &clone)

	return nil
}

func (f *fakeTicketRepo) ListAll(_ context.Context) ([]*entity.SupportTicket, error) {
	return f.tickets, nil
}

// --- chat repository ---

type fakeChatRepo struct {
	messages []*entity.ChatMessage
}

func (f *fakeChatRepo) Create(_ context.Context, message *entity.ChatMessage) error {
	if message.ID == uuid.Nil {
		message.ID = uuid.New()
	}
	message.CreatedAt = time.Now()
	clone := *message
	f.messages = append(f.messages, &clone)

	return nil
}

func (f *fakeChatRepo) ListByRequest(_ context.Context, requestID uuid.UUID) ([]*entity.ChatMessage, error) {
	var out []*entity.ChatMessage
	for _, m := range f.messages {
		if m.RequestID == requestID {
			out = append(out, m)
		}
	}

	return out, nil
}

// --- transaction manager ---

type fakeFactory struct {
	userRepo    *fakeUserRepo
	authRepo    *fakeAuthRepo
	listingRepo *fakeListingRepo
	requestRepo *fakeRequestRepo
	reviewRepo  *fakeReviewRepo
}

func (f *fakeFactory) NewUserRepository() repository.UserRepository       { return f.userRepo }
func (f *fakeFactory) NewAuthRepository() repository.AuthRepository       { return f.authRepo }
func (f *fakeFactory) NewListingRepository() repository.ListingRepository { return f.listingRepo }
func (f *fakeFactory) NewRequestRepository() repository.RequestRepository { return f.requestRepo }
func (f *fakeFactory) NewReviewRepository() repository.ReviewRepository   { return f.reviewRepo }

type fakeTxManager struct {
	factory *fakeFactory
}

func (f *fakeTxManager) Execute(_ context.Context, fn func(repository.RepositoryFactory) error) error {
	return fn(f.factory)
}

// --- domain services ---

type fakeHasher struct{}

func (fakeHasher) Hash(password string) (string, error) { return "hashed:" + password, nil }
func (fakeHasher) Check(password, hash string) bool     { return hash == "hashed:"+password }

type fakeTokenService struct{}

func (fakeTokenService) GenerateTokens(userID uuid.UUID, _ []string) (string, string, error) {
	return "access-" + userID.String(), "refresh-" + userID.String(), nil
}

func (fakeTokenService) ValidateToken(string) (*service.Claims, error) {
	return nil, errors.New("not implemented in fake")
}

func (fakeTokenService) HashToken(token string) string { return "hash:" + token }

func (fakeTokenService) GetRefreshTokenDuration() time.Duration { return time.Hour }

type fakeMedia struct {
	failing bool
	saved   map[string]string
}

func (f *fakeMedia) Save(_ context.Context, key, _ string, content io.Reader) (string, error) {
	if f.failing {
		return "", io.ErrUnexpectedEOF
	}
	if f.saved == nil {
		f.saved = make(map[string]string)
	}
	data, _ := io.ReadAll(content)
	f.saved[key] = string(data)

	return "https://media.test/" + key, nil
}

func (f *fakeMedia) Delete(_ context.Context, key string) error {
	delete(f.saved, key)

	return nil
}

type fakeGeocoder struct {
	address string
	err     error
}

func (f *fakeGeocoder) ReverseGeocode(context.Context, float64, float64) (string, error) {
	return f.address, f.err
}

type fakeBroker struct {
	published []*entity.ChatMessage
	streams   []chan *entity.ChatMessage
}

func (f *fakeBroker) Subscribe(ctx context.Context, _ uuid.UUID) <-chan *entity.ChatMessage {
	ch := make(chan *entity.ChatMessage, 8)
	f.streams = append(f.streams, ch)
	go func() {
		<-ctx.Done()
		close(ch)
	}()

	return ch
}

func (f *fakeBroker) Publish(message *entity.ChatMessage) {
	f.published = append(f.published, message)
	for _, ch := range f.streams {
		select {
		case ch <- message:
		default:
		}
	}
}

type fakeQRService struct{}

func (fakeQRService) GenerateHandoffQR(uuid.UUID) ([]byte, error) { return []byte("png"), nil }
func (fakeQRService) ParseHandoffQR(string) (uuid.UUID, error)    { return uuid.Nil, nil }
