package reorder

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/akinalp/sitekit/models"
)

// EditorConfig, Editor'ün bağımlılıkları.
type EditorConfig struct {
	Resolver Resolver
	Policy   Policy // nil → DefaultPolicy(kind)
	Syncer   Syncer
	Logger   *zap.Logger
}

// Editor, tek bir koleksiyon için session + engine + syncer'ı birbirine bağlar.
//
// Akış:
//  1. Grasp → Move (0..n kez) → Drop
//  2. Drop: claim veya quick-drop resolve → resolveAndApply → engine optimistic sırayı yazar
//  3. Session Idle'a döner — operatör hemen yeni bir gesture başlatabilir
//  4. Tam sıra arka planda (goroutine) Syncer'a gönderilir; Busy() true olur
//
// Sync serileştirilir: bir istek uçuştayken yeni bir drop olursa en yeni sıra
// kuyruğa alınır ve önceki istek bitince gönderilir (araya giren eski sıralar ezilir).
// Böylece aynı session'dan aynı koleksiyona eşzamanlı iki reorder isteği olmaz.
//
// Başarısız sync'te otomatik rollback YOKTUR: optimistic sıra ekranda kalır,
// Err() kapatılabilir (dismissible) bir hata döner. Kurtarma yolu yeniden yükleme
// (Reset) veya yeni bir drag'dir — yeni drag zaten taze bir tam sıra gönderir.
type Editor struct {
	mu sync.Mutex

	ctx        context.Context
	collection *Collection
	session    *Session
	engine     *Engine
	policy     Policy
	syncer     Syncer
	logger     *zap.Logger

	revision   int64
	busy       bool
	pending    []models.OrderUpdate
	hasPending bool
	err        error

	// generation, her Reset'te artar. Eski nesilden dönen sync sonuçları yok sayılır.
	generation uint64

	wg sync.WaitGroup
}

// NewEditor, sunucudan yüklenmiş koleksiyon ve revizyonu ile bir Editor oluşturur.
// ctx, arka plan sync isteklerinin context'idir (sayfa kapanınca iptal edilir).
func NewEditor(ctx context.Context, c *Collection, revision int64, cfg EditorConfig) *Editor {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Resolver == (Resolver{}) {
		cfg.Resolver = NewResolver(0, 0)
	}
	policy := cfg.Policy
	if policy == nil {
		policy = DefaultPolicy(c.Kind())
	}

	return &Editor{
		ctx:        ctx,
		collection: c,
		session:    NewSession(cfg.Resolver),
		engine:     NewEngine(c, policy),
		policy:     policy,
		syncer:     cfg.Syncer,
		logger:     logger.Named("reorder").With(zap.String("collection", string(c.Kind()))),
		revision:   revision,
	}
}

// Grasp, item'ı sürüklemeye başlar. Anchor veya bilinmeyen item'lar reddedilir;
// başka bir gesture aktifken ErrGestureActive döner.
func (e *Editor) Grasp(id string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.collection.IsAnchor(id) {
		return fmt.Errorf("%w: %s", ErrAnchorItem, id)
	}
	if _, ok := e.collection.Position(id); !ok {
		return fmt.Errorf("%w: %s", ErrUnknownItem, id)
	}
	return e.session.Grasp(id)
}

// Move, pointer-move event'ini session'a iletir ve güncel claim'i (highlight) döner.
func (e *Editor) Move(p Point, layout []Box) (Target, bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.session.Move(p, layout)
}

// Leave, pointer drop surface'ten çıktığında claim'i temizler.
func (e *Editor) Leave() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.session.Leave()
}

// Drop, gesture'ı bitirir, sonucu optimistic olarak uygular ve sync'i başlatır.
// Yeni görüntü sırasını döner. Sync sonucu beklenmez.
func (e *Editor) Drop(p Point, layout []Box) ([]string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	d, err := e.session.Drop(p, layout)
	if err != nil {
		return nil, err
	}
	return e.resolveAndApply(d)
}

// resolveAndApply, hover ile claim edilmiş drop'un da quick drop'un da geçtiği tek yol.
// mu tutulurken çağrılmalıdır.
func (e *Editor) resolveAndApply(d Drop) ([]string, error) {
	order, err := e.engine.Apply(d)
	if err != nil {
		e.session.Cancel()
		return nil, err
	}
	if err := e.session.Finish(); err != nil {
		return nil, err
	}

	e.logger.Debug("drop applied",
		zap.String("item", d.Item),
		zap.Bool("has_target", d.HasTarget),
		zap.String("target", d.Target.ID),
		zap.Stringer("side", d.Target.Side),
		zap.Bool("quick", d.Quick),
		zap.String("policy", e.policy.Name()),
	)

	e.enqueueSync(e.collection.Updates())
	return order, nil
}

// enqueueSync, tam sırayı gönderir veya bir istek uçuştaysa kuyruğa alır.
// mu tutulurken çağrılmalıdır.
func (e *Editor) enqueueSync(updates []models.OrderUpdate) {
	if e.syncer == nil {
		return
	}
	if e.busy {
		e.pending = updates
		e.hasPending = true
		return
	}

	e.busy = true
	e.wg.Add(1)
	go e.syncLoop(updates, e.generation)
}

// syncLoop, kuyruk boşalana kadar sırayla sync istekleri gönderir.
func (e *Editor) syncLoop(updates []models.OrderUpdate, gen uint64) {
	defer e.wg.Done()

	for {
		e.mu.Lock()
		base := e.revision
		kind := e.collection.Kind()
		e.mu.Unlock()

		rev, err := e.syncer.Sync(e.ctx, kind, base, updates)

		e.mu.Lock()
		if gen == e.generation {
			if err != nil {
				e.err = err
				e.logger.Warn("reorder sync failed, keeping optimistic order", zap.Error(err))
			} else {
				e.revision = rev
				e.err = nil
			}
		}

		// Reset pending'i temizler, yani burada kalan pending güncel nesle aittir
		if e.hasPending {
			updates = e.pending
			gen = e.generation
			e.pending = nil
			e.hasPending = false
			e.mu.Unlock()
			continue
		}

		e.busy = false
		e.mu.Unlock()
		return
	}
}

// Reset, koleksiyonu sunucudan gelen sıra ile yeniden kurar (CRUD sonrası veya
// NeedsRefresh hatasından sonra). Uçuştaki gesture iptal edilir, kuyruk temizlenir
// ve hata durumu sıfırlanır.
func (e *Editor) Reset(items []Item, revision int64) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	c, err := NewCollection(e.collection.Kind(), items)
	if err != nil {
		return err
	}

	e.session.Cancel()
	e.collection = c
	e.engine = NewEngine(c, e.policy)
	e.revision = revision
	e.pending = nil
	e.hasPending = false
	e.err = nil
	e.generation++
	return nil
}

// Order, güncel (optimistic) görüntü sırasını döner.
func (e *Editor) Order() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.collection.Order()
}

// Items, anchor dahil güncel item'ları döner.
func (e *Editor) Items() []Item {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.collection.Items()
}

// State, session durumunu döner.
func (e *Editor) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.session.State()
}

// Claimed, hover ile seçilmiş hedefi döner.
func (e *Editor) Claimed() (Target, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.session.Claimed()
}

// Revision, son onaylanan koleksiyon revizyonunu döner.
func (e *Editor) Revision() int64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.revision
}

// Busy, bir sync isteği uçuştayken true döner (busy indicator).
func (e *Editor) Busy() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.busy
}

// Err, son sync hatasını döner (nil = son sync başarılı veya hiç sync yok).
func (e *Editor) Err() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.err
}

// DismissErr, operatör hata bildirimini kapattığında çağrılır.
func (e *Editor) DismissErr() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.err = nil
}

// Wait, uçuştaki tüm sync isteklerinin bitmesini bekler.
func (e *Editor) Wait() {
	e.wg.Wait()
}
