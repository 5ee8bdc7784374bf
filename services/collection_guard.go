package services

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/akinalp/sitekit/models"
	"github.com/akinalp/sitekit/pkg/cache"
	"github.com/akinalp/sitekit/ws"
)

// CollectionGuard, bir koleksiyonu değiştiren tüm yazmaların geçtiği ortak kapı.
//
// Her koleksiyon türü için bir mutex tutar: aynı süreç içinde aynı koleksiyona
// iki yazma (reorder + create gibi) sıraya girer. SQLite transaction'ı ve revizyon
// CAS'ı süreçler arası koruma sağlar; mutex ise SQLITE_BUSY beklemesini önler.
//
// Başarılı yazmadan sonra koleksiyonun read cache'i temizlenir ve admin'lere
// WS event'i yayınlanır.
type CollectionGuard struct {
	locks map[models.CollectionKind]*sync.Mutex
	reads *cache.TTLCache[string, any] // nil → cache kapalı
	hub   ws.EventPublisher

	// generations, her invalidation'da artar. Yazmadan önce başlamış bir okuma
	// sonucunu, yazmanın invalidation'ından sonra cache'e koyamaz.
	genMu       sync.Mutex
	generations map[models.CollectionKind]uint64
	flights     singleflight.Group

	logger *zap.Logger
	now    func() time.Time
}

// NewCollectionGuard, constructor. readTTL 0 ise public okumalar cache'lenmez.
func NewCollectionGuard(hub ws.EventPublisher, readTTL time.Duration, logger *zap.Logger) *CollectionGuard {
	if logger == nil {
		logger = zap.NewNop()
	}

	locks := make(map[models.CollectionKind]*sync.Mutex, len(models.CollectionKinds))
	for _, k := range models.CollectionKinds {
		locks[k] = &sync.Mutex{}
	}

	g := &CollectionGuard{
		locks:       locks,
		hub:         hub,
		generations: make(map[models.CollectionKind]uint64, len(models.CollectionKinds)),
		logger:      logger.Named("collection"),
		now:         time.Now,
	}
	if readTTL > 0 {
		g.reads = cache.New[string, any](readTTL, 5*time.Minute)
	}
	return g
}

// Mutate, fn'i koleksiyonun kilidi altında çalıştırır. fn yeni revizyonu döner.
// reset true ise yayınlanan event OpCollectionReset, aksi halde OpCollectionReorder olur.
func (g *CollectionGuard) Mutate(ctx context.Context, kind models.CollectionKind, reset bool, fn func(ctx context.Context) (int64, error)) (int64, error) {
	mu, ok := g.locks[kind]
	if !ok {
		// Bilinmeyen tür repository'de ErrNotFound ile reddedilir
		return fn(ctx)
	}

	mu.Lock()
	revision, err := fn(ctx)
	mu.Unlock()
	if err != nil {
		return 0, err
	}

	g.invalidate(kind)
	g.publish(kind, revision, reset)
	return revision, nil
}

// publish, koleksiyon değişikliğini admin'lere yayınlar ve loglar.
func (g *CollectionGuard) publish(kind models.CollectionKind, revision int64, reset bool) {
	op := ws.OpCollectionReorder
	if reset {
		op = ws.OpCollectionReset
	}
	if g.hub != nil {
		g.hub.BroadcastToAll(ws.Event{
			Op: op,
			Data: models.CollectionEvent{
				Collection: kind,
				Revision:   revision,
				Reset:      reset,
				At:         g.now().UTC(),
			},
		})
	}

	g.logger.Info("collection changed",
		zap.String("collection", string(kind)),
		zap.Int64("revision", revision),
		zap.String("op", op),
	)
}

// MutateAll, fn'i tüm koleksiyonların kilitleri altında çalıştırır (yedekten geri
// yükleme gibi her koleksiyonu birden değiştiren yazmalar için). fn her koleksiyonun
// yeni revizyonunu döner; başarıda her koleksiyon için OpCollectionReset yayınlanır.
func (g *CollectionGuard) MutateAll(ctx context.Context, fn func(ctx context.Context) (map[models.CollectionKind]int64, error)) (map[models.CollectionKind]int64, error) {
	// Kilitler hep aynı sırayla alınır
	for _, k := range models.CollectionKinds {
		g.locks[k].Lock()
	}
	revisions, err := fn(ctx)
	for i := len(models.CollectionKinds) - 1; i >= 0; i-- {
		g.locks[models.CollectionKinds[i]].Unlock()
	}
	if err != nil {
		return nil, err
	}

	for _, kind := range models.CollectionKinds {
		g.invalidate(kind)
		g.publish(kind, revisions[kind], true)
	}
	return revisions, nil
}

// Touch, sırayı değiştirmeyen bir yazmayı (içerik güncellemesi) koleksiyon kilidi
// altında çalıştırır ve read cache'i temizler. Revizyon değişmediği için event yayınlanmaz.
func (g *CollectionGuard) Touch(ctx context.Context, kind models.CollectionKind, fn func(ctx context.Context) error) error {
	if mu, ok := g.locks[kind]; ok {
		mu.Lock()
		defer mu.Unlock()
	}
	if err := fn(ctx); err != nil {
		return err
	}
	g.invalidate(kind)
	return nil
}

// cachedRead, key için cache'teki değeri döner; yoksa load'u çağırıp sonucu saklar.
// Aynı key için eşzamanlı yüklemeler tek bir DB okumasında birleşir.
//
// Ortak yükleme ilk çağıranın iptalinden bağımsız bir context ile çalışır: bağlantısı
// kopan bir istemci bekleyen diğer okuyucuları da düşürmez. Her çağıran kendi ctx'i
// iptal edilince beklemeyi bırakır.
func cachedRead[T any](ctx context.Context, g *CollectionGuard, kind models.CollectionKind, key string, load func(ctx context.Context) (T, error)) (T, error) {
	var zero T
	if g.reads == nil {
		return load(ctx)
	}

	if v, ok := g.reads.Get(key); ok {
		if typed, ok := v.(T); ok {
			return typed, nil
		}
	}

	gen := g.generation(kind)
	shared := context.WithoutCancel(ctx)
	ch := g.flights.DoChan(key+"#"+strconv.FormatUint(gen, 10), func() (any, error) {
		loaded, err := load(shared)
		if err != nil {
			return nil, err
		}
		g.storeIfCurrent(kind, gen, key, loaded)
		return loaded, nil
	})

	select {
	case <-ctx.Done():
		return zero, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return zero, res.Err
		}
		return res.Val.(T), nil
	}
}

// cacheKey, koleksiyon + sorgu parametrelerinden cache anahtarı üretir.
func cacheKey(kind models.CollectionKind, parts ...string) string {
	return string(kind) + "|" + strings.Join(parts, "|")
}

func (g *CollectionGuard) generation(kind models.CollectionKind) uint64 {
	g.genMu.Lock()
	defer g.genMu.Unlock()
	return g.generations[kind]
}

// storeIfCurrent, okuma başladığından beri koleksiyon değişmediyse değeri cache'e yazar.
func (g *CollectionGuard) storeIfCurrent(kind models.CollectionKind, gen uint64, key string, v any) {
	g.genMu.Lock()
	defer g.genMu.Unlock()
	if g.generations[kind] == gen {
		g.reads.Set(key, v)
	}
}

func (g *CollectionGuard) invalidate(kind models.CollectionKind) {
	if g.reads == nil {
		return
	}

	g.genMu.Lock()
	defer g.genMu.Unlock()

	g.generations[kind]++
	prefix := string(kind) + "|"
	g.reads.DeleteFunc(func(key string) bool { return strings.HasPrefix(key, prefix) })
}

// Close, read cache'in temizleme goroutine'ini durdurur.
func (g *CollectionGuard) Close() {
	if g.reads != nil {
		g.reads.Close()
	}
}
