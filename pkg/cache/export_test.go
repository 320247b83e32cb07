package cache

import "time"

// SetNowFunc swaps the in-memory clock, only from tests.
func SetNowFunc(c *InMemory, fn func() time.Time) {
	c.nowFunc = fn
}
