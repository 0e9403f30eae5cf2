// Package ratelimiter implements token bucket limits per key.
//
//	store := ratelimiter.NewMemoryStore()
//	bucket, err := ratelimiter.NewBucket(store, ratelimiter.Config{
//		Capacity:       5,
//		RefillRate:     1,
//		RefillInterval: time.Minute,
//	})
//	res, err := bucket.Allow(ctx, "submit:"+ip)
//	if !res.Allowed() {
//		// reply 429, Retry-After: res.RetryAfter(time.Now())
//	}
package ratelimiter
