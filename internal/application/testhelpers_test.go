package application

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	chargeDomain "github.com/creatorgate/service-subscription/internal/domain/charge"
	contentDomain "github.com/creatorgate/service-subscription/internal/domain/content"
	providerDomain "github.com/creatorgate/service-subscription/internal/domain/provider"
	subDomain "github.com/creatorgate/service-subscription/internal/domain/subscription"
	"github.com/creatorgate/service-subscription/internal/platform/clock"
	platformdomain "github.com/creatorgate/service-subscription/internal/platform/domain"
	"github.com/creatorgate/service-subscription/internal/platform/kafka"
	"github.com/creatorgate/service-subscription/internal/saga"
)

// fakeProviderRepo is an in-memory ProviderRepository.
type fakeProviderRepo struct {
	mu        sync.Mutex
	providers map[uuid.UUID]*providerDomain.Provider
}

func newFakeProviderRepo() *fakeProviderRepo {
	return &fakeProviderRepo{providers: make(map[uuid.UUID]*providerDomain.Provider)}
}

func (r *fakeProviderRepo) Save(_ context.Context, p *providerDomain.Provider) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.providers[p.ID()] = p
	return nil
}

func (r *fakeProviderRepo) FindByID(_ context.Context, id uuid.UUID) (*providerDomain.Provider, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.providers[id]
	if !ok {
		return nil, platformdomain.NewNotFoundError("provider", id.String())
	}
	return p, nil
}

// fakeSubscriptionRepo is an in-memory SubscriptionRepository that also keeps
// the charge audit trail and the per-provider subscriber counters, mirroring
// the transactional writes of the real repository.
type fakeSubscriptionRepo struct {
	mu           sync.Mutex
	subs         map[uuid.UUID]*subDomain.Subscription
	charges      []*chargeDomain.Charge
	counterBumps map[uuid.UUID]int

	failCreate error
	failUpdate error
}

func newFakeSubscriptionRepo() *fakeSubscriptionRepo {
	return &fakeSubscriptionRepo{
		subs:         make(map[uuid.UUID]*subDomain.Subscription),
		counterBumps: make(map[uuid.UUID]int),
	}
}

func (r *fakeSubscriptionRepo) CreateWithCharge(_ context.Context, s *subDomain.Subscription, c *chargeDomain.Charge) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failCreate != nil {
		return r.failCreate
	}
	for _, existing := range r.subs {
		if existing.ProviderID() == s.ProviderID() && existing.SubscriberID() == s.SubscriberID() {
			return platformdomain.NewDuplicateSubscriptionError("subscription already exists for this provider")
		}
	}
	r.subs[s.ID()] = s
	r.charges = append(r.charges, c)
	r.counterBumps[s.ProviderID()]++
	return nil
}

func (r *fakeSubscriptionRepo) UpdateWithCharge(_ context.Context, s *subDomain.Subscription, c *chargeDomain.Charge) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failUpdate != nil {
		return r.failUpdate
	}
	if _, ok := r.subs[s.ID()]; !ok {
		return platformdomain.NewNotFoundError("subscription", s.ID().String())
	}
	r.subs[s.ID()] = s
	r.charges = append(r.charges, c)
	return nil
}

func (r *fakeSubscriptionRepo) Update(_ context.Context, s *subDomain.Subscription) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failUpdate != nil {
		return r.failUpdate
	}
	if _, ok := r.subs[s.ID()]; !ok {
		return platformdomain.NewNotFoundError("subscription", s.ID().String())
	}
	r.subs[s.ID()] = s
	return nil
}

func (r *fakeSubscriptionRepo) FindByPair(_ context.Context, providerID, subscriberID uuid.UUID) (*subDomain.Subscription, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.subs {
		if s.ProviderID() == providerID && s.SubscriberID() == subscriberID {
			return s, nil
		}
	}
	return nil, platformdomain.NewNotFoundError("subscription", providerID.String()+"/"+subscriberID.String())
}

func (r *fakeSubscriptionRepo) FindDueForRenewal(_ context.Context, now time.Time, limit int) ([]*subDomain.Subscription, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var due []*subDomain.Subscription
	for _, s := range r.subs {
		if s.AutoRenewal() && !s.EndTime().After(now) {
			due = append(due, s)
		}
	}
	sort.Slice(due, func(i, j int) bool { return due[i].EndTime().Before(due[j].EndTime()) })
	if len(due) > limit {
		due = due[:limit]
	}
	return due, nil
}

func (r *fakeSubscriptionRepo) ListAll(_ context.Context, page, limit int) ([]*subDomain.Subscription, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	all := make([]*subDomain.Subscription, 0, len(r.subs))
	for _, s := range r.subs {
		all = append(all, s)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt().Before(all[j].CreatedAt()) })
	total := int64(len(all))
	offset := (page - 1) * limit
	if offset >= len(all) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (r *fakeSubscriptionRepo) chargeCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.charges)
}

// fakeContentRepo is an in-memory ContentRepository.
type fakeContentRepo struct {
	mu      sync.Mutex
	records map[uuid.UUID]*contentDomain.Content
}

func newFakeContentRepo() *fakeContentRepo {
	return &fakeContentRepo{records: make(map[uuid.UUID]*contentDomain.Content)}
}

func (r *fakeContentRepo) Save(_ context.Context, c *contentDomain.Content) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records[c.ID()] = c
	return nil
}

func (r *fakeContentRepo) FindByID(_ context.Context, id uuid.UUID) (*contentDomain.Content, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.records[id]
	if !ok {
		return nil, platformdomain.NewNotFoundError("content", id.String())
	}
	return c, nil
}

func (r *fakeContentRepo) ListByProvider(_ context.Context, providerID uuid.UUID) ([]*contentDomain.Content, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*contentDomain.Content
	for _, c := range r.records {
		if c.ProviderID() == providerID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PublishedAt().Before(out[j].PublishedAt()) })
	return out, nil
}

// fakeGateway records transfers and reversals; outcomes are programmable.
type fakeGateway struct {
	mu        sync.Mutex
	transfers int
	reverses  []string
	failErr   error
}

func (g *fakeGateway) Transfer(_ context.Context, _, _ uuid.UUID, _ int64) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.failErr != nil {
		return "", g.failErr
	}
	g.transfers++
	return "tr_test_" + uuid.New().String()[:8], nil
}

func (g *fakeGateway) Reverse(_ context.Context, ref string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.reverses = append(g.reverses, ref)
	return nil
}

func (g *fakeGateway) failWith(err error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.failErr = err
}

// recordingPublisher captures published CloudEvents instead of writing to Kafka.
type recordingPublisher struct {
	mu     sync.Mutex
	events []kafka.CloudEvent
}

func (p *recordingPublisher) PublishEvent(_ context.Context, _ string, event kafka.CloudEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *recordingPublisher) eventTypes() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	types := make([]string, len(p.events))
	for i, e := range p.events {
		types[i] = e.Type
	}
	return types
}

// subscriptionStack wires a SubscriptionService over in-memory fakes.
type subscriptionStack struct {
	service      *SubscriptionService
	subRepo      *fakeSubscriptionRepo
	providerRepo *fakeProviderRepo
	gateway      *fakeGateway
	publisher    *recordingPublisher
	clock        *clock.Fixed
}

func newSubscriptionStack(now time.Time) *subscriptionStack {
	subRepo := newFakeSubscriptionRepo()
	providerRepo := newFakeProviderRepo()
	gateway := &fakeGateway{}
	publisher := &recordingPublisher{}
	clk := clock.NewFixed(now)
	logger := zap.NewNop()

	sagaSvc := saga.NewSubscriptionSagaService(subRepo, gateway, publisher, clk, logger)
	return &subscriptionStack{
		service:      NewSubscriptionService(subRepo, providerRepo, sagaSvc, clk, logger),
		subRepo:      subRepo,
		providerRepo: providerRepo,
		gateway:      gateway,
		publisher:    publisher,
		clock:        clk,
	}
}

func (st *subscriptionStack) registerProvider(priceCents, durationSeconds int64) *providerDomain.Provider {
	p, err := providerDomain.NewProvider(uuid.New(), priceCents, durationSeconds, st.clock.Now())
	if err != nil {
		panic(err)
	}
	if err := st.providerRepo.Save(context.Background(), p); err != nil {
		panic(err)
	}
	return p
}
