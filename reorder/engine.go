package reorder

import "fmt"

// Engine, tamamlanmış bir drop'u koleksiyona anında (optimistic) uygular.
//
// Engine ağa hiç dokunmaz: sadece bellekteki/görüntülenen sırayı yeniden yazar.
// Sunucu onayı beklenmez — Syncer sonradan tam sırayı gönderir.
// Apply her tamamlanan gesture'da bir kez çağrılır (Release'te), her pointer-move'da değil;
// hover sırasında session sadece highlight ile önizleme yapar.
type Engine struct {
	collection *Collection
	policy     Policy
}

// NewEngine, koleksiyon ve policy ile engine oluşturur. policy nil ise
// koleksiyon türünün varsayılanı kullanılır.
func NewEngine(c *Collection, policy Policy) *Engine {
	if policy == nil {
		policy = DefaultPolicy(c.Kind())
	}
	return &Engine{collection: c, policy: policy}
}

// Policy, engine'in kullandığı stratejiyi döner.
func (e *Engine) Policy() Policy { return e.policy }

// Apply, drop'u policy ile uygular, anchor hariç tüm item'lara yoğun 1..N
// pozisyon atar ve yeni ID sırasını döner.
//
// Hata durumunda koleksiyon değişmez: yeni sıra önce ayrı bir slice'ta
// hesaplanır, sadece başarılıysa koleksiyona yazılır.
func (e *Engine) Apply(d Drop) ([]string, error) {
	if e.collection.IsAnchor(d.Item) {
		return nil, fmt.Errorf("%w: %s", ErrAnchorItem, d.Item)
	}
	if _, ok := e.collection.Position(d.Item); !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownItem, d.Item)
	}

	// Anchor asla drop hedefi değildir — hedef anchor ise "sona ekle"ye düşülür
	if d.HasTarget && e.collection.IsAnchor(d.Target.ID) {
		d.HasTarget = false
		d.Target = Target{}
	}

	next, err := e.policy.Apply(e.collection.Order(), d)
	if err != nil {
		return nil, fmt.Errorf("failed to apply %s policy: %w", e.policy.Name(), err)
	}

	if err := e.collection.setOrder(next); err != nil {
		return nil, err
	}
	return e.collection.Order(), nil
}
