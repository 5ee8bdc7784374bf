package ratelimit

import (
	"sync"
	"time"
)

// cooldownBucket, bir key için sayaç ve ceza bitiş zamanı.
type cooldownBucket struct {
	count         int
	windowStart   time.Time
	cooldownUntil time.Time // zero value = cooldown yok
}

// CooldownLimiter, kısa pencere + uzun ceza süresi ile çalışan limiter.
//
// WindowLimiter'dan farkı: limit aşıldığında bekleme süresi kalan pencere değil,
// ayrı bir cooldown'dur. İletişim formunda 10 dakikada 3 mesaj serbesttir,
// 4. mesajda IP bir saat boyunca reddedilir.
type CooldownLimiter struct {
	mu          sync.RWMutex
	buckets     map[string]*cooldownBucket
	maxRequests int
	window      time.Duration
	cooldown    time.Duration
	now         func() time.Time
	stopCleanup chan struct{}
	closeOnce   sync.Once
}

// NewCooldownLimiter, yeni limiter oluşturur ve temizleme goroutine'ini başlatır.
func NewCooldownLimiter(maxRequests int, window, cooldown time.Duration) *CooldownLimiter {
	rl := &CooldownLimiter{
		buckets:     make(map[string]*cooldownBucket),
		maxRequests: maxRequests,
		window:      window,
		cooldown:    cooldown,
		now:         time.Now,
		stopCleanup: make(chan struct{}),
	}
	go runCleanup(time.Minute, rl.stopCleanup, rl.cleanup)
	return rl
}

// Allow, key için bir istek sayar.
//
// Akış:
//  1. Cooldown'daysa → reject.
//  2. Cooldown bittiyse veya pencere dolduysa → yeni pencere.
//  3. Pencere içindeyse → sayaç artar; max aşıldıysa cooldown başlar.
func (rl *CooldownLimiter) Allow(key string) bool {
	now := rl.now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	b, exists := rl.buckets[key]
	if !exists {
		rl.buckets[key] = &cooldownBucket{count: 1, windowStart: now}
		return true
	}

	if !b.cooldownUntil.IsZero() {
		if now.Before(b.cooldownUntil) {
			return false
		}
		b.cooldownUntil = time.Time{}
		b.count = 1
		b.windowStart = now
		return true
	}

	if now.Sub(b.windowStart) > rl.window {
		b.count = 1
		b.windowStart = now
		return true
	}

	b.count++
	if b.count > rl.maxRequests {
		b.cooldownUntil = now.Add(rl.cooldown)
		return false
	}
	return true
}

// CooldownSeconds, kalan ceza süresini saniye cinsinden döner; cooldown yoksa 0.
func (rl *CooldownLimiter) CooldownSeconds(key string) int {
	rl.mu.RLock()
	defer rl.mu.RUnlock()

	b, exists := rl.buckets[key]
	if !exists || b.cooldownUntil.IsZero() {
		return 0
	}
	return ceilSeconds(b.cooldownUntil.Sub(rl.now()))
}

// Close, temizleme goroutine'ini durdurur.
func (rl *CooldownLimiter) Close() {
	rl.closeOnce.Do(func() { close(rl.stopCleanup) })
}

// cleanup, hem penceresi hem cooldown'ı bitmiş bucket'ları siler.
func (rl *CooldownLimiter) cleanup() {
	now := rl.now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	for key, b := range rl.buckets {
		windowExpired := now.Sub(b.windowStart) > rl.window
		cooldownExpired := b.cooldownUntil.IsZero() || now.After(b.cooldownUntil)
		if windowExpired && cooldownExpired {
			delete(rl.buckets, key)
		}
	}
}
