package ratelimit

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// fakeClock, limiter'ların zamanını testte ilerletmek için.
type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func TestWindowLimiter(t *testing.T) {
	clock := &fakeClock{t: time.Unix(1_700_000_000, 0)}
	rl := NewWindowLimiter(3, time.Minute)
	defer rl.Close()
	rl.now = clock.Now

	for i := 0; i < 3; i++ {
		assert.True(t, rl.Allow("1.2.3.4"))
	}
	assert.False(t, rl.Allow("1.2.3.4"))
	assert.True(t, rl.Allow("5.6.7.8"), "other keys are independent")
	assert.Equal(t, 61, rl.RetryAfterSeconds("1.2.3.4"))

	clock.Advance(61 * time.Second)
	assert.True(t, rl.Allow("1.2.3.4"))
}

func TestWindowLimiter_Reset(t *testing.T) {
	rl := NewWindowLimiter(1, time.Minute)
	defer rl.Close()

	assert.True(t, rl.Allow("ip"))
	assert.False(t, rl.Allow("ip"))
	rl.Reset("ip")
	assert.True(t, rl.Allow("ip"))
	assert.Equal(t, 0, rl.RetryAfterSeconds("unknown"))
}

func TestCooldownLimiter(t *testing.T) {
	clock := &fakeClock{t: time.Unix(1_700_000_000, 0)}
	rl := NewCooldownLimiter(2, time.Minute, time.Hour)
	defer rl.Close()
	rl.now = clock.Now

	assert.True(t, rl.Allow("ip"))
	assert.True(t, rl.Allow("ip"))
	assert.False(t, rl.Allow("ip"))
	assert.Equal(t, 3601, rl.CooldownSeconds("ip"))

	// Pencere bitse de cooldown sürer
	clock.Advance(2 * time.Minute)
	assert.False(t, rl.Allow("ip"))

	clock.Advance(time.Hour)
	assert.True(t, rl.Allow("ip"))
	assert.Equal(t, 0, rl.CooldownSeconds("ip"))
}

func TestExtractIP(t *testing.T) {
	r := httptest.NewRequest("POST", "/api/auth/login", nil)
	r.RemoteAddr = "10.0.0.1:5555"
	assert.Equal(t, "10.0.0.1", ExtractIP(r))

	r.Header.Set("X-Real-IP", "203.0.113.9")
	assert.Equal(t, "203.0.113.9", ExtractIP(r))

	r.Header.Set("X-Forwarded-For", "198.51.100.7, 10.0.0.2")
	assert.Equal(t, "198.51.100.7", ExtractIP(r))
}

func TestFormatRetryMessage(t *testing.T) {
	assert.Equal(t, "2 minute(s)", FormatRetryMessage(120))
	assert.Equal(t, "45 second(s)", FormatRetryMessage(45))
}
