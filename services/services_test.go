package services

import (
	"sync"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/akinalp/sitekit/database"
	"github.com/akinalp/sitekit/models"
	"github.com/akinalp/sitekit/repository"
	"github.com/akinalp/sitekit/testutil"
	"github.com/akinalp/sitekit/ws"
)

func init() {
	// bcrypt cost 12 testleri gereksiz yavaşlatır
	bcryptCost = bcrypt.MinCost
}

// fakePublisher, yayınlanan event'leri kaydeder.
type fakePublisher struct {
	mu     sync.Mutex
	events []ws.Event
}

func (p *fakePublisher) BroadcastToAll(event ws.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
}

func (p *fakePublisher) ConnectionCount() int { return 0 }

func (p *fakePublisher) collectionEvents() []models.CollectionEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]models.CollectionEvent, 0, len(p.events))
	for _, e := range p.events {
		if ce, ok := e.Data.(models.CollectionEvent); ok {
			out = append(out, ce)
		}
	}
	return out
}

func (p *fakePublisher) ops() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.events))
	for i, e := range p.events {
		out[i] = e.Op
	}
	return out
}

// fixture, gerçek SQLite repository'leri üzerine kurulmuş service'ler.
type fixture struct {
	db          *database.DB
	publisher   *fakePublisher
	guard       *CollectionGuard
	collections CollectionService
	catalog     CatalogService
	faqs        FAQService
}

func newFixture(t *testing.T, readTTL time.Duration) *fixture {
	t.Helper()

	db := testutil.SetupTestDB(t)
	pub := &fakePublisher{}
	guard := NewCollectionGuard(pub, readTTL, nil)
	t.Cleanup(guard.Close)

	settings, err := NewReorderSettings(0, 0, "", "")
	if err != nil {
		t.Fatalf("failed to build reorder settings: %v", err)
	}

	serviceRepo := repository.NewSQLiteServiceRepo(db.Conn)
	faqRepo := repository.NewSQLiteFAQRepo(db.Conn)

	return &fixture{
		db:          db,
		publisher:   pub,
		guard:       guard,
		collections: NewCollectionService(repository.NewSQLiteCollectionRepo(db.Conn), serviceRepo, faqRepo, guard, settings, nil),
		catalog:     NewCatalogService(serviceRepo, guard, nil),
		faqs:        NewFAQService(faqRepo, guard, nil),
	}
}

func fullOrder(ids ...string) []models.OrderUpdate {
	out := make([]models.OrderUpdate, len(ids))
	for i, id := range ids {
		out[i] = models.OrderUpdate{ID: id, DisplayOrder: i + 1}
	}
	return out
}

func int64Ptr(v int64) *int64 { return &v }
