// Package reorder, sürükle-bırak ile sıralanabilen koleksiyonların (services, faqs)
// istemci tarafı çekirdeğidir.
//
// Bileşenler (yapraktan köke):
//   - Resolver: pointer koordinatını + item layout'unu bir insertion noktasına çevirir
//   - Session: tek bir gesture'ın state machine'i (Idle → Grasped → Targeting → Released)
//   - Policy: swap veya insertion stratejisi
//   - Engine: drop sonucunu anında (optimistic) koleksiyona uygular
//   - Syncer: son sırayı sunucuya gönderir
//   - Editor: hepsini tek bir koleksiyon için birbirine bağlar
//
// Paket hiçbir render motoruna bağlı değildir. Pointer koordinatları ve item
// bounding box'ları çağıran taraftan snapshot olarak enjekte edilir —
// böylece tüm gesture pipeline'ı saf unit test'lerle doğrulanabilir.
package reorder

import (
	"math"
	"sort"
)

// Varsayılan geometri ayarları.
// RowTolerance yaklaşık bir kart yüksekliğidir; ProximityThreshold pointer'ın
// bir karttan ne kadar uzaklaşıp hâlâ onu hedef seçebileceğini sınırlar.
const (
	DefaultRowTolerance       = 100.0
	DefaultProximityThreshold = 250.0
)

// Point, layout birimlerinde bir pointer koordinatı.
type Point struct {
	X float64
	Y float64
}

// Rect, eksen hizalı bir bounding box.
type Rect struct {
	Left   float64
	Right  float64
	Top    float64
	Bottom float64
}

// Center, dikdörtgenin merkezini döner.
func (r Rect) Center() Point {
	return Point{X: (r.Left + r.Right) / 2, Y: (r.Top + r.Bottom) / 2}
}

// Box, drop surface üzerindeki anchor olmayan tek bir item'ın snapshot'ı.
type Box struct {
	ID   string
	Rect Rect
}

// Side, taşınan item'ın hedefin önüne mi arkasına mı gideceğini belirtir.
type Side int

const (
	SideBefore Side = iota
	SideAfter
)

func (s Side) String() string {
	if s == SideAfter {
		return "after"
	}
	return "before"
}

// Target, çözümlenmiş drop partner'ı.
type Target struct {
	ID   string
	Side Side
}

// Resolver, wrap eden (çok satırlı) bir grid içinde pointer pozisyonunu
// insertion noktasına eşler. Sıfır değeri kullanışlı değildir — NewResolver kullanın.
type Resolver struct {
	RowTolerance       float64
	ProximityThreshold float64
}

// NewResolver, verilen ayarlarla Resolver oluşturur.
// Pozitif olmayan değerler paket varsayılanlarına düşer.
func NewResolver(rowTolerance, proximityThreshold float64) Resolver {
	if rowTolerance <= 0 {
		rowTolerance = DefaultRowTolerance
	}
	if proximityThreshold <= 0 {
		proximityThreshold = DefaultProximityThreshold
	}
	return Resolver{RowTolerance: rowTolerance, ProximityThreshold: proximityThreshold}
}

// Resolve, p noktası için drop hedefini döner; hiçbir aday yeterince yakın
// değilse false döner (çağıran taraf "listenin sonuna ekle" uygular).
// layout mevcut görüntü sırasında verilmelidir.
//
// Akış:
//  1. Boş ID'li kutular elenir.
//  2. Kutular (in-flight item dahil) Top değerine göre satırlara bölünür
//     (RowTolerance içinde kalanlar aynı satır).
//  3. In-flight item aday listesinden çıkarılır; aday kalmadıysa → hedef yok.
//  4. Tam layout'ta hiçbir satırda iki kutu yoksa (tek kolon liste) dikey fallback çalışır.
//     Grid/kolon kararı taşınan item dahil verilir: "a b / c" grid'inde a taşınırken
//     her satırda tek aday kalsa da layout hâlâ bir grid'dir.
//  5. Aksi halde satır + Left sırasında en yakın merkez seçilir;
//     eşitlikte ilk karşılaşılan kazanır.
//  6. En yakın mesafe ProximityThreshold'u aşıyorsa → hedef yok.
//  7. Pointer hedefin yatay merkezinin solundaysa SideBefore, değilse SideAfter.
func (r Resolver) Resolve(p Point, layout []Box, inFlight string) (Target, bool) {
	boxes := make([]Box, 0, len(layout))
	candidates := make([]Box, 0, len(layout))
	for _, b := range layout {
		if b.ID == "" {
			continue
		}
		boxes = append(boxes, b)
		if b.ID != inFlight {
			candidates = append(candidates, b)
		}
	}
	if len(candidates) == 0 {
		return Target{}, false
	}

	rows := r.partitionRows(boxes)
	if !hasMultiItemRow(rows) {
		return resolveColumn(p, candidates)
	}

	best := Box{}
	found := false
	bestDist := math.Inf(1)
	for _, row := range rows {
		for _, b := range row {
			if b.ID == inFlight {
				continue
			}
			// Strict "<" — eşit mesafede ilk karşılaşılan aday korunur
			if d := distance(p, b.Rect.Center()); d < bestDist {
				best = b
				bestDist = d
				found = true
			}
		}
	}
	if !found || bestDist > r.ProximityThreshold {
		return Target{}, false
	}

	side := SideAfter
	if p.X < best.Rect.Center().X {
		side = SideBefore
	}
	return Target{ID: best.ID, Side: side}, true
}

// partitionRows, kutuları satırlara böler. Her satır kendi içinde Left'e göre sıralıdır.
// Bir item, satırın ilk item'ının Top değerinden RowTolerance'tan az sapıyorsa o satıra katılır.
func (r Resolver) partitionRows(boxes []Box) [][]Box {
	byTop := make([]Box, len(boxes))
	copy(byTop, boxes)
	sort.SliceStable(byTop, func(i, j int) bool {
		return byTop[i].Rect.Top < byTop[j].Rect.Top
	})

	var rows [][]Box
	var rowTop float64
	for _, b := range byTop {
		if len(rows) > 0 && math.Abs(b.Rect.Top-rowTop) < r.RowTolerance {
			rows[len(rows)-1] = append(rows[len(rows)-1], b)
			continue
		}
		rows = append(rows, []Box{b})
		rowTop = b.Rect.Top
	}

	for _, row := range rows {
		sort.SliceStable(row, func(i, j int) bool {
			return row[i].Rect.Left < row[j].Rect.Left
		})
	}
	return rows
}

func hasMultiItemRow(rows [][]Box) bool {
	for _, row := range rows {
		if len(row) > 1 {
			return true
		}
	}
	return false
}

// resolveColumn, tek kolon fallback'i: görüntü sırasında dikey merkezi
// pointer'ın altında kalan ilk aday insertion noktası olur.
func resolveColumn(p Point, candidates []Box) (Target, bool) {
	for _, b := range candidates {
		if b.Rect.Center().Y > p.Y {
			return Target{ID: b.ID, Side: SideBefore}, true
		}
	}
	return Target{}, false
}

func distance(a, b Point) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}
