package tiktok

import (
	"math/rand"
	"time"
)

// randomDuration picks a uniform duration in [min, max].
func randomDuration(min, max time.Duration) time.Duration {
	if max <= min {
		return min
	}
	return min + time.Duration(rand.Int63n(int64(max-min)))
}

// pickMessage chooses one message from the pool.
func pickMessage(pool []string) string {
	if len(pool) == 0 {
		return ""
	}
	return pool[rand.Intn(len(pool))]
}
