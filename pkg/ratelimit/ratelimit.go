// Package ratelimit — IP bazlı istek sınırlayıcılar.
//
// Login endpoint'i brute-force'a karşı WindowLimiter ile, public iletişim formu
// spam'e karşı CooldownLimiter ile korunur. Her ikisi de in-memory'dir
// (tek instance deploy) ve arka planda süresi dolmuş bucket'ları temizler.
//
// pkg/ratelimit hiçbir proje içi pakete bağımlı değildir (leaf dependency),
// handlers ↔ middleware arasında import cycle oluşmaz.
package ratelimit

import (
	"fmt"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"
)

// bucket, bir key için istek sayacı ve pencere başlangıcı.
type bucket struct {
	count       int
	windowStart time.Time
}

// WindowLimiter, sabit pencere içinde maxAttempts isteğe izin verir.
// Limit aşıldığında pencere bitene kadar istekler reddedilir.
//
//	limiter := NewWindowLimiter(5, 2*time.Minute)
//	if !limiter.Allow(ip) { return 429 }
//	limiter.Reset(ip) // başarılı login sonrası
type WindowLimiter struct {
	mu          sync.RWMutex
	buckets     map[string]*bucket
	maxAttempts int
	window      time.Duration
	now         func() time.Time
	stopCleanup chan struct{}
	closeOnce   sync.Once
}

// NewWindowLimiter, yeni limiter oluşturur ve temizleme goroutine'ini başlatır.
func NewWindowLimiter(maxAttempts int, window time.Duration) *WindowLimiter {
	rl := &WindowLimiter{
		buckets:     make(map[string]*bucket),
		maxAttempts: maxAttempts,
		window:      window,
		now:         time.Now,
		stopCleanup: make(chan struct{}),
	}
	go runCleanup(time.Minute, rl.stopCleanup, rl.cleanup)
	return rl
}

// Allow, key için bir istek sayar ve limitin aşılıp aşılmadığını döner.
// Her çağrı sayacı artırır (istek başarılı olsun veya olmasın).
func (rl *WindowLimiter) Allow(key string) bool {
	now := rl.now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	b, exists := rl.buckets[key]
	if !exists || now.Sub(b.windowStart) > rl.window {
		rl.buckets[key] = &bucket{count: 1, windowStart: now}
		return true
	}

	b.count++
	return b.count <= rl.maxAttempts
}

// Reset, key'in sayacını sıfırlar.
// Başarılı giriş yapan admin'in sayacı temizlenmezse sonraki girişlerde bloke olabilir.
func (rl *WindowLimiter) Reset(key string) {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	delete(rl.buckets, key)
}

// RetryAfterSeconds, kalan bekleme süresini saniye cinsinden döner (Retry-After header).
func (rl *WindowLimiter) RetryAfterSeconds(key string) int {
	rl.mu.RLock()
	defer rl.mu.RUnlock()

	b, exists := rl.buckets[key]
	if !exists {
		return 0
	}
	return ceilSeconds(rl.window - rl.now().Sub(b.windowStart))
}

// Close, temizleme goroutine'ini durdurur.
func (rl *WindowLimiter) Close() {
	rl.closeOnce.Do(func() { close(rl.stopCleanup) })
}

func (rl *WindowLimiter) cleanup() {
	now := rl.now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	for key, b := range rl.buckets {
		if now.Sub(b.windowStart) > rl.window {
			delete(rl.buckets, key)
		}
	}
}

// runCleanup, stop kapanana kadar her interval'de fn'i çağırır.
func runCleanup(interval time.Duration, stop <-chan struct{}, fn func()) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			fn()
		case <-stop:
			return
		}
	}
}

// ceilSeconds, süreyi yukarı yuvarlanmış saniyeye çevirir; negatifse 0.
func ceilSeconds(d time.Duration) int {
	if d <= 0 {
		return 0
	}
	return int(d.Seconds()) + 1
}

// ExtractIP, HTTP request'ten client IP adresini çıkarır.
//
// Öncelik: X-Forwarded-For (ilk IP) → X-Real-IP → RemoteAddr.
// Production'da uygulama nginx/Caddy arkasında çalışır ve RemoteAddr her zaman proxy'dir.
func ExtractIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		return strings.TrimSpace(first)
	}

	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// FormatRetryMessage, kalan süreyi okunabilir formata çevirir.
// Örn: 120 → "2 minute(s)", 45 → "45 second(s)"
func FormatRetryMessage(seconds int) string {
	if seconds >= 60 {
		return fmt.Sprintf("%d minute(s)", seconds/60)
	}
	return fmt.Sprintf("%d second(s)", seconds)
}
