package reorder

import (
	"fmt"
	"strings"

	"github.com/akinalp/sitekit/models"
)

// Policy, bir drop'un koleksiyon sırasına nasıl yansıyacağını belirleyen strateji.
//
// Swap ve insertion davranış farkı tek bir konfigürasyon noktasıdır:
// Session ve Engine hangi policy'nin kullanıldığını bilmez, sadece Apply çağırır.
type Policy interface {
	Name() string
	// Apply, order'ın (anchor hariç ID'ler) kopyası üzerinde drop'u uygular ve yeni sırayı döner.
	// Hedef yoksa taşınan item listenin sonuna gider.
	Apply(order []string, drop Drop) ([]string, error)
}

// Policy isimleri — config'te bu değerler kullanılır.
const (
	PolicySwap   = "swap"
	PolicyInsert = "insert"
)

// SwapPolicy, taşınan item ile hedef item'ın pozisyonlarını değiş tokuş eder.
// Diğer tüm item'ların pozisyonu aynı kalır. Services koleksiyonunun varsayılanıdır.
type SwapPolicy struct{}

// InsertPolicy, taşınan item'ı yerinden çıkarıp hedefin önüne/arkasına yerleştirir.
// Aradaki item'lar bir kayar. FAQ koleksiyonunun varsayılanıdır.
type InsertPolicy struct{}

func (SwapPolicy) Name() string   { return PolicySwap }
func (InsertPolicy) Name() string { return PolicyInsert }

func (SwapPolicy) Apply(order []string, drop Drop) ([]string, error) {
	from := indexOf(order, drop.Item)
	if from < 0 {
		return nil, fmt.Errorf("%w: %s", ErrUnknownItem, drop.Item)
	}
	if !drop.HasTarget {
		return moveToEnd(order, from), nil
	}

	to := indexOf(order, drop.Target.ID)
	if to < 0 {
		return nil, fmt.Errorf("%w: %s", ErrUnknownItem, drop.Target.ID)
	}

	next := clone(order)
	next[from], next[to] = next[to], next[from]
	return next, nil
}

func (InsertPolicy) Apply(order []string, drop Drop) ([]string, error) {
	from := indexOf(order, drop.Item)
	if from < 0 {
		return nil, fmt.Errorf("%w: %s", ErrUnknownItem, drop.Item)
	}
	if !drop.HasTarget {
		return moveToEnd(order, from), nil
	}
	if drop.Target.ID == drop.Item {
		return clone(order), nil
	}

	rest := make([]string, 0, len(order))
	rest = append(rest, order[:from]...)
	rest = append(rest, order[from+1:]...)

	at := indexOf(rest, drop.Target.ID)
	if at < 0 {
		return nil, fmt.Errorf("%w: %s", ErrUnknownItem, drop.Target.ID)
	}
	if drop.Target.Side == SideAfter {
		at++
	}

	next := make([]string, 0, len(order))
	next = append(next, rest[:at]...)
	next = append(next, drop.Item)
	next = append(next, rest[at:]...)
	return next, nil
}

// ParsePolicy, config değerinden Policy üretir ("swap" | "insert").
func ParsePolicy(name string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case PolicySwap:
		return SwapPolicy{}, nil
	case PolicyInsert:
		return InsertPolicy{}, nil
	default:
		return nil, fmt.Errorf("unknown reorder policy %q (want %q or %q)", name, PolicySwap, PolicyInsert)
	}
}

// DefaultPolicy, koleksiyon türüne göre varsayılan policy'yi döner.
// Services elle küratörlü bir vitrin sırası olduğu için swap, FAQ serbest bir
// liste olduğu için insertion kullanır. Bilinmeyen türler insertion'a düşer.
func DefaultPolicy(kind models.CollectionKind) Policy {
	if kind == models.CollectionServices {
		return SwapPolicy{}
	}
	return InsertPolicy{}
}

func indexOf(order []string, id string) int {
	for i, v := range order {
		if v == id {
			return i
		}
	}
	return -1
}

func clone(order []string) []string {
	out := make([]string, len(order))
	copy(out, order)
	return out
}

func moveToEnd(order []string, from int) []string {
	next := make([]string, 0, len(order))
	next = append(next, order[:from]...)
	next = append(next, order[from+1:]...)
	return append(next, order[from])
}
