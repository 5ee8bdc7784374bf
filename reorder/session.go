package reorder

import (
	"errors"
	"fmt"
)

// State, drag session state machine'inin durumu.
//
// Geçişler:
//
//	Idle ──Grasp──▶ Grasped ──Move──▶ Targeting ──Drop──▶ Released ──Finish──▶ Idle
//	                   │                 ▲  │
//	                   └──────Drop───────┼──┘ (quick drop: claim yoksa drop anında resolve)
//	                                     └── Move/Leave (claim güncellenir / temizlenir)
type State int

const (
	StateIdle State = iota
	StateGrasped
	StateTargeting
	StateReleased
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateGrasped:
		return "grasped"
	case StateTargeting:
		return "targeting"
	case StateReleased:
		return "released"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

var (
	// ErrGestureActive, bir gesture bitmeden yenisi başlatılmaya çalışıldığında döner.
	ErrGestureActive = errors.New("a drag gesture is already active")
	// ErrNoGesture, aktif gesture yokken Move/Drop/Finish çağrıldığında döner.
	ErrNoGesture = errors.New("no drag gesture in progress")
)

// Drop, tamamlanmış bir gesture'ın sonucu.
// HasTarget false ise varsayılan davranış "listenin sonuna ekle"dir.
// Quick, hedefin hover takibinden değil drop anındaki resolve'dan geldiğini belirtir.
type Drop struct {
	Item      string
	Target    Target
	HasTarget bool
	Quick     bool
}

// Session, tek bir koleksiyon için gesture başına state machine.
//
// "Claimed target" yapışkandır: hover sırasında bir item hedef olarak seçildikten
// sonra, pointer hiçbir adaya yeterince yakın olmayan bir noktaya kaysa bile
// claim korunur (jitter engellenir). Pointer başka bir adayın üzerine gelirse
// claim o adaya geçer; pointer drop surface'ten tamamen çıkarsa claim temizlenir.
//
// Session goroutine-safe DEĞİLDİR — UI event loop'u tek thread'dir, Editor ayrıca kilitler.
type Session struct {
	resolver Resolver
	state    State
	item     string
	claim    Target
	claimed  bool
}

// NewSession, verilen resolver ile Idle durumda bir session oluşturur.
func NewSession(resolver Resolver) *Session {
	return &Session{resolver: resolver}
}

// State, güncel durumu döner.
func (s *Session) State() State { return s.state }

// Item, in-flight item'ın ID'sini döner (Idle'da boş).
func (s *Session) Item() string { return s.item }

// Claimed, hover ile seçilmiş hedefi döner (preview highlight için).
func (s *Session) Claimed() (Target, bool) { return s.claim, s.claimed }

// Grasp, bir item'ı sürüklemeye başlar: Idle → Grasped.
// Başka bir gesture aktifken (Grasped/Targeting/Released) ErrGestureActive döner.
func (s *Session) Grasp(id string) error {
	if s.state != StateIdle {
		return fmt.Errorf("%w: %s is %s", ErrGestureActive, s.item, s.state)
	}
	if id == "" {
		return fmt.Errorf("%w: empty id", ErrUnknownItem)
	}

	s.state = StateGrasped
	s.item = id
	s.clearClaim()
	return nil
}

// Move, drop surface üzerindeki her pointer-move event'inde çağrılır.
// Bulunan hedef claim olur; hedef bulunamazsa önceki claim korunur.
// Güncel claim'i döner.
func (s *Session) Move(p Point, layout []Box) (Target, bool, error) {
	if s.state != StateGrasped && s.state != StateTargeting {
		return Target{}, false, ErrNoGesture
	}

	s.state = StateTargeting
	if t, ok := s.resolver.Resolve(p, layout, s.item); ok {
		s.claim = t
		s.claimed = true
	}
	return s.claim, s.claimed, nil
}

// Leave, pointer drop surface'ten tamamen çıktığında claim'i temizler.
func (s *Session) Leave() {
	if s.state == StateTargeting || s.state == StateGrasped {
		s.clearClaim()
	}
}

// Drop, gesture'ı sonlandırır: Grasped/Targeting → Released.
//
// Hover ile claim edilmiş bir hedef varsa o kullanılır. Yoksa (quick drop —
// input sistemi move event'lerini birleştirmiş olabilir) resolver drop
// koordinatlarında senkron olarak çalıştırılır. Böylece hiçbir drop sırf
// move event'i gelmedi diye sessizce yok sayılmaz.
func (s *Session) Drop(p Point, layout []Box) (Drop, error) {
	if s.state != StateGrasped && s.state != StateTargeting {
		return Drop{}, ErrNoGesture
	}

	d := Drop{Item: s.item}
	if s.claimed {
		d.Target = s.claim
		d.HasTarget = true
	} else if t, ok := s.resolver.Resolve(p, layout, s.item); ok {
		d.Target = t
		d.HasTarget = true
		d.Quick = true
	}

	s.state = StateReleased
	return d, nil
}

// Finish, Released durumdaki gesture'ı kapatır ve Idle'a döner.
// Engine drop'u uyguladıktan sonra çağrılır; yeni bir Grasp ancak bundan sonra mümkündür.
func (s *Session) Finish() error {
	if s.state != StateReleased {
		return ErrNoGesture
	}
	s.reset()
	return nil
}

// Cancel, hangi durumda olursa olsun session'ı Idle'a döndürür.
// Koleksiyon sıfırlandığında (CRUD sonrası yeniden yükleme) kullanılır.
func (s *Session) Cancel() {
	s.reset()
}

func (s *Session) reset() {
	s.state = StateIdle
	s.item = ""
	s.clearClaim()
}

func (s *Session) clearClaim() {
	s.claim = Target{}
	s.claimed = false
}
