package test

import (
	"fmt"
	"math/rand"
	"sync"
	"time"
)

const emailAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

var (
	rngMu sync.Mutex
	rng   = rand.New(rand.NewSource(time.Now().UnixNano()))
)

// RandomEmail returns a unique-looking address for account fixtures.
func RandomEmail() string {
	buf := make([]byte, 12)
	for i := range buf {
		buf[i] = emailAlphabet[randomIntn(len(emailAlphabet))]
	}
	return fmt.Sprintf("%s@example.com", buf)
}

func randomIntn(n int) int {
	rngMu.Lock()
	defer rngMu.Unlock()
	return rng.Intn(n)
}
