// Package ws, admin paneline gerçek zamanlı koleksiyon bildirimlerini iletir.
//
// Mimari:
// - Hub: Tüm bağlantıları yöneten merkezi yapı (Observer pattern)
// - Client: Her WebSocket bağlantısını temsil eder
// - Event: Client-server arası iletilen mesaj formatı
//
// Event akışı:
// 1. Admin bir sekmede sıralamayı değiştirir → HTTP POST → Service → DB commit
// 2. Service, Hub'ın BroadcastToAll metodunu çağırır
// 3. Hub, event'i tüm bağlı client'lara iletir
// 4. Diğer sekmeler revizyon değiştiği için koleksiyonu yeniden yükler
package ws

// Event, WebSocket üzerinden iletilen bir mesajı temsil eder.
//
// Seq: her outbound event'e verilen artan sayı — client eksik event tespit edebilir.
type Event struct {
	Op   string `json:"op"`
	Data any    `json:"d,omitempty"`
	Seq  int64  `json:"seq,omitempty"`
}

// Client → Server operasyonları
const (
	OpHeartbeat = "heartbeat" // Client her 30sn'de gönderir
)

// Server → Client operasyonları
const (
	OpReady        = "ready"         // Bağlantı kurulduğunda ilk gönderilen — güncel revizyonlar
	OpHeartbeatAck = "heartbeat_ack" // Heartbeat'e yanıt

	// Koleksiyon sırası değişti (reorder). Data: models.CollectionEvent
	OpCollectionReorder = "collection_reorder"
	// Koleksiyon üyeliği değişti (create/update/delete). Client uçuştaki gesture'ı
	// iptal edip yeniden yüklemelidir. Data: models.CollectionEvent
	OpCollectionReset = "collection_reset"
)

// ReadyData, OpReady payload'ı.
type ReadyData struct {
	AdminID   string           `json:"admin_id"`
	Revisions map[string]int64 `json:"revisions"`
}
