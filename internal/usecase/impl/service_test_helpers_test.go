package impl

import (
	"context"
	"io"
	"log/slog"
	"slices"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/jonathanpoaquiza/market-jals/internal/domain/entity"
	domainerrors "github.com/jonathanpoaquiza/market-jals/internal/domain/errors"
	"github.com/jonathanpoaquiza/market-jals/internal/domain/repository"
	"github.com/jonathanpoaquiza/market-jals/internal/domain/service"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeUserRepo is an in-memory UserRepository.
type fakeUserRepo struct {
	mu       sync.Mutex
	profiles map[string]*entity.UserProfile
	failWith error
}

func newFakeUserRepo(profiles ...*entity.UserProfile) *fakeUserRepo {
	repo := &fakeUserRepo{profiles: make(map[string]*entity.UserProfile)}
	for _, p := range profiles {
		repo.profiles[p.UID] = p
	}

	return repo
}

func (f *fakeUserRepo) FindByUID(_ context.Context, uid string) (*entity.UserProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failWith != nil {
		return nil, f.failWith
	}

	profile, ok := f.profiles[uid]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	clone := *profile

	return &clone, nil
}

func (f *fakeUserRepo) Save(_ context.Context, profile *entity.UserProfile) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failWith != nil {
		return f.failWith
	}
	clone := *profile
	f.profiles[profile.UID] = &clone

	return nil
}

func (f *fakeUserRepo) UpdateRole(_ context.Context, uid string, role entity.Role) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	profile, ok := f.profiles[uid]
	if !ok {
		return repository.ErrUserNotFound
	}
	profile.Role = role

	return nil
}

func (f *fakeUserRepo) List(_ context.Context) ([]*entity.UserProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	users := make([]*entity.UserProfile, 0, len(f.profiles))
	for _, p := range f.profiles {
		clone := *p
		users = append(users, &clone)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].UID < users[j].UID })

	return users, nil
}

// fakeProductRepo is an in-memory ProductRepository.
type fakeProductRepo struct {
	mu       sync.Mutex
	products map[string]*entity.Product
	nextID   int
	failWith error
}

func newFakeProductRepo(products ...*entity.Product) *fakeProductRepo {
	repo := &fakeProductRepo{products: make(map[string]*entity.Product)}
	for _, p := range products {
		repo.products[p.ID] = p
	}

	return repo
}

func (f *fakeProductRepo) Create(_ context.Context, product *entity.Product) (*entity.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failWith != nil {
		return nil, f.failWith
	}

	f.nextID++
	clone := *product
	clone.ID = "prod-" + strconv.Itoa(f.nextID)
	f.products[clone.ID] = &clone
	result := clone

	return &result, nil
}

func (f *fakeProductRepo) FindByID(_ context.Context, id string) (*entity.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failWith != nil {
		return nil, f.failWith
	}

	product, ok := f.products[id]
	if !ok {
		return nil, repository.ErrProductNotFound
	}
	clone := *product

	return &clone, nil
}

func (f *fakeProductRepo) List(_ context.Context, filter entity.ProductFilter) ([]*entity.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var result []*entity.Product
	for _, p := range f.products {
		if !filter.IncludeUnavailable && !p.Available {
			continue
		}
		if filter.Category != "" && p.Category != filter.Category {
			continue
		}
		if filter.SellerID != "" && p.SellerID != filter.SellerID {
			continue
		}
		clone := *p
		result = append(result, &clone)
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.After(result[j].CreatedAt)
		}

		return result[i].ID < result[j].ID
	})

	if filter.StartAfter != "" {
		cut := -1
		for i, p := range result {
			if p.ID == filter.StartAfter {
				cut = i + 1

				break
			}
		}
		if cut < 0 {
			return []*entity.Product{}, nil
		}
		result = result[cut:]
	}

	if filter.Limit > 0 && len(result) > filter.Limit {
		result = result[:filter.Limit]
	}

	return result, nil
}

func (f *fakeProductRepo) Update(_ context.Context, id string, changes map[string]any) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	product, ok := f.products[id]
	if !ok {
		return repository.ErrProductNotFound
	}

	for field, value := range changes {
		switch field {
		case "name":
			product.Name = value.(string)
		case "description":
			product.Description = value.(string)
		case "price":
			product.Price = value.(float64)
		case "stock":
			product.Stock = value.(int)
		case "category":
			product.Category = value.(string)
		case "imageUrl":
			product.ImageURL = value.(string)
		case "available":
			product.Available = value.(bool)
		case "updatedAt":
			product.UpdatedAt = value.(time.Time)
		}
	}

	return nil
}

func (f *fakeProductRepo) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.products[id]; !ok {
		return repository.ErrProductNotFound
	}
	delete(f.products, id)

	return nil
}

// fakeChatRepo is an in-memory ChatRepository.
type fakeChatRepo struct {
	mu       sync.Mutex
	rooms    map[string]*entity.ChatRoom
	messages map[string][]*entity.ChatMessage
	nextID   int
}

func newFakeChatRepo(rooms ...*entity.ChatRoom) *fakeChatRepo {
	repo := &fakeChatRepo{
		rooms:    make(map[string]*entity.ChatRoom),
		messages: make(map[string][]*entity.ChatMessage),
	}
	for _, r := range rooms {
		repo.rooms[r.ID] = r
	}

	return repo
}

func (f *fakeChatRepo) FindRoomByID(_ context.Context, roomID string) (*entity.ChatRoom, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	room, ok := f.rooms[roomID]
	if !ok {
		return nil, repository.ErrChatRoomNotFound
	}

	return room, nil
}

func (f *fakeChatRepo) FindRoomByParticipants(_ context.Context, participants []string) (*entity.ChatRoom, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, room := range f.rooms {
		if slices.Equal(room.Participants, participants) {
			return room, nil
		}
	}

	return nil, repository.ErrChatRoomNotFound
}

func (f *fakeChatRepo) CreateRoom(_ context.Context, room *entity.ChatRoom) (*entity.ChatRoom, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.nextID++
	clone := *room
	clone.ID = "room-" + strconv.Itoa(f.nextID)
	f.rooms[clone.ID] = &clone

	return &clone, nil
}

func (f *fakeChatRepo) ListRoomsForUser(_ context.Context, uid string) ([]*entity.ChatRoom, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var result []*entity.ChatRoom
	for _, room := range f.rooms {
		if room.HasParticipant(uid) {
			result = append(result, room)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].LastActivity.After(result[j].LastActivity)
	})

	return result, nil
}

func (f *fakeChatRepo) AppendMessage(_ context.Context, message *entity.ChatMessage) (*entity.ChatMessage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.nextID++
	clone := *message
	clone.ID = "msg-" + strconv.Itoa(f.nextID)
	f.messages[message.RoomID] = append(f.messages[message.RoomID], &clone)

	if room, ok := f.rooms[message.RoomID]; ok {
		room.LastMessage = message.Text
		room.LastActivity = message.CreatedAt
	}

	return &clone, nil
}

func (f *fakeChatRepo) ListMessages(_ context.Context, roomID string, beforeID string, limit int) ([]*entity.ChatMessage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	result := make([]*entity.ChatMessage, len(f.messages[roomID]))
	copy(result, f.messages[roomID])
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})

	if beforeID != "" {
		cut := -1
		for i, msg := range result {
			if msg.ID == beforeID {
				cut = i + 1

				break
			}
		}
		if cut < 0 {
			return []*entity.ChatMessage{}, nil
		}
		result = result[cut:]
	}

	if len(result) > limit {
		result = result[:limit]
	}

	return result, nil
}

// fakeInvoiceRepo is an in-memory InvoiceRepository. saveHook, when
// set, runs during Save to model work racing with persistence.
type fakeInvoiceRepo struct {
	mu       sync.Mutex
	invoices map[string]*entity.Invoice
	saveHook func()
	failWith error
}

func newFakeInvoiceRepo() *fakeInvoiceRepo {
	return &fakeInvoiceRepo{invoices: make(map[string]*entity.Invoice)}
}

func (f *fakeInvoiceRepo) Save(_ context.Context, invoice *entity.Invoice) error {
	if f.saveHook != nil {
		f.saveHook()
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failWith != nil {
		return f.failWith
	}
	f.invoices[invoice.ID] = invoice

	return nil
}

func (f *fakeInvoiceRepo) FindByID(_ context.Context, id string) (*entity.Invoice, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	invoice, ok := f.invoices[id]
	if !ok {
		return nil, repository.ErrInvoiceNotFound
	}

	return invoice, nil
}

func (f *fakeInvoiceRepo) ListByCustomer(_ context.Context, customerID string) ([]*entity.Invoice, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var result []*entity.Invoice
	for _, inv := range f.invoices {
		if inv.CustomerID == customerID {
			result = append(result, inv)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].IssuedAt.After(result[j].IssuedAt)
	})

	return result, nil
}

// fakeVerifier resolves preconfigured tokens to credentials.
type fakeVerifier struct {
	credentials map[string]*service.Credential
	failWith    error
}

func (f *fakeVerifier) Verify(_ context.Context, idToken string) (*service.Credential, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}

	credential, ok := f.credentials[idToken]
	if !ok {
		return nil, domainerrors.ErrTokenInvalid
	}

	return credential, nil
}

// fakePublisher records published chat events.
type fakePublisher struct {
	mu       sync.Mutex
	events   []*service.ChatEvent
	failWith error
}

func (f *fakePublisher) PublishChatEvent(_ context.Context, event *service.ChatEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failWith != nil {
		return f.failWith
	}
	f.events = append(f.events, event)

	return nil
}

func (f *fakePublisher) Close() error { return nil }

// fakeBroadcaster records broadcast messages.
type fakeBroadcaster struct {
	mu       sync.Mutex
	messages []*entity.ChatMessage
}

func (f *fakeBroadcaster) Broadcast(_ string, message *entity.ChatMessage) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.messages = append(f.messages, message)
}

// fakeQRService returns a fixed payload.
type fakeQRService struct {
	failWith error
}

func (f *fakeQRService) GenerateInvoiceQR(invoiceNumber string) ([]byte, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}

	return []byte("qr:" + invoiceNumber), nil
}

// fakeStorage records uploads and returns deterministic URLs.
type fakeStorage struct {
	mu       sync.Mutex
	uploads  []string
	deletes  []string
	failWith error
}

func (f *fakeStorage) Upload(_ context.Context, filename, _ string, content io.Reader) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failWith != nil {
		return "", f.failWith
	}
	if _, err := io.Copy(io.Discard, content); err != nil {
		return "", err
	}
	f.uploads = append(f.uploads, filename)

	return "https://cdn.test/" + filename, nil
}

func (f *fakeStorage) Delete(_ context.Context, publicURL string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.deletes = append(f.deletes, publicURL)

	return nil
}
