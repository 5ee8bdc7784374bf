package reorder

import (
	"errors"
	"fmt"
	"sort"

	"github.com/akinalp/sitekit/models"
)

var (
	// ErrUnknownItem, koleksiyonda olmayan bir ID ile işlem yapıldığında döner.
	ErrUnknownItem = errors.New("unknown item")
	// ErrAnchorItem, anchor (ör. "yeni ekle" kartı) taşınmaya çalışıldığında döner.
	ErrAnchorItem = errors.New("anchor item cannot be moved")
)

// Item, sıralanabilir tek bir entity.
// Position 1-tabanlı ve yoğundur (boşluk yok); anchor'ların Position'ı yoktur (0).
type Item struct {
	ID       string
	Position int
	IsAnchor bool
}

// Collection, tek bir isimli listeye (services veya faqs) ait sıralı item dizisi.
//
// Sunucunun render ettiği ilk sıradan oluşturulur, sayfadan ayrılınca atılır.
// Collection goroutine-safe DEĞİLDİR — Editor kendi mutex'i ile korur.
type Collection struct {
	kind   models.CollectionKind
	items  []Item // anchor hariç, görüntü sırasında
	anchor *Item
}

// NewCollection, sunucudan gelen item'lardan koleksiyon kurar.
//
// Anchor olmayan item'lar Position'a göre (stabil) sıralanır ve 1..N olarak
// yeniden numaralanır. En fazla bir anchor olabilir; her zaman en sonda render edilir.
func NewCollection(kind models.CollectionKind, items []Item) (*Collection, error) {
	c := &Collection{kind: kind}

	seen := make(map[string]bool, len(items))
	for _, it := range items {
		if it.ID == "" {
			return nil, fmt.Errorf("item id cannot be empty")
		}
		if seen[it.ID] {
			return nil, fmt.Errorf("duplicate item id: %s", it.ID)
		}
		seen[it.ID] = true

		if it.IsAnchor {
			if c.anchor != nil {
				return nil, fmt.Errorf("collection %s has more than one anchor", kind)
			}
			anchor := Item{ID: it.ID, IsAnchor: true}
			c.anchor = &anchor
			continue
		}
		c.items = append(c.items, it)
	}

	sort.SliceStable(c.items, func(i, j int) bool {
		return c.items[i].Position < c.items[j].Position
	})
	c.renumber()

	return c, nil
}

// Kind, koleksiyonun adını döner.
func (c *Collection) Kind() models.CollectionKind { return c.kind }

// Len, anchor hariç item sayısı.
func (c *Collection) Len() int { return len(c.items) }

// Order, anchor hariç item ID'lerini görüntü sırasında döner.
func (c *Collection) Order() []string {
	ids := make([]string, len(c.items))
	for i, it := range c.items {
		ids[i] = it.ID
	}
	return ids
}

// Items, tüm item'ların kopyasını döner — anchor varsa en sonda.
func (c *Collection) Items() []Item {
	out := make([]Item, 0, len(c.items)+1)
	out = append(out, c.items...)
	if c.anchor != nil {
		out = append(out, *c.anchor)
	}
	return out
}

// Position, item'ın güncel 1-tabanlı sırasını döner.
func (c *Collection) Position(id string) (int, bool) {
	for _, it := range c.items {
		if it.ID == id {
			return it.Position, true
		}
	}
	return 0, false
}

// IsAnchor, id'nin koleksiyonun anchor'ı olup olmadığını söyler.
func (c *Collection) IsAnchor(id string) bool {
	return c.anchor != nil && c.anchor.ID == id
}

// Updates, tam sırayı sunucunun beklediği (id, display_order) çiftlerine çevirir.
// Delta değil tam küme gönderilir — aynı sırayı tekrar göndermek idempotent'tir.
func (c *Collection) Updates() []models.OrderUpdate {
	out := make([]models.OrderUpdate, len(c.items))
	for i, it := range c.items {
		out[i] = models.OrderUpdate{ID: it.ID, DisplayOrder: it.Position}
	}
	return out
}

// setOrder, koleksiyonu verilen ID sırasına göre yeniden dizer.
// ids tam olarak mevcut item'ları içermelidir; anchor'a dokunulmaz.
func (c *Collection) setOrder(ids []string) error {
	if len(ids) != len(c.items) {
		return fmt.Errorf("order has %d ids, collection has %d items", len(ids), len(c.items))
	}

	byID := make(map[string]Item, len(c.items))
	for _, it := range c.items {
		byID[it.ID] = it
	}

	next := make([]Item, 0, len(ids))
	for _, id := range ids {
		it, ok := byID[id]
		if !ok {
			return fmt.Errorf("%w: %s", ErrUnknownItem, id)
		}
		delete(byID, id)
		next = append(next, it)
	}

	c.items = next
	c.renumber()
	return nil
}

// renumber, görüntü sırasına göre yoğun 1..N pozisyon atar.
func (c *Collection) renumber() {
	for i := range c.items {
		c.items[i].Position = i + 1
	}
}
