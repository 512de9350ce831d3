package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// takeIfMatch removes the stored code iff it equals the candidate, as one
// atomic server-side step. A plain GET-compare-DEL would let two concurrent
// verifies both succeed.
var takeIfMatchScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	redis.call("DEL", KEYS[1])
	return 1
end
return 0
`)

// OTPStore implements usecase.OTPStore using Redis. Expiry comes from the
// key TTL; consumption from the compare-and-delete script.
type OTPStore struct {
	client *redis.Client
	prefix string
}

// NewOTPStore creates a new OTPStore.
func NewOTPStore(client *redis.Client) *OTPStore {
	return &OTPStore{
		client: client,
		prefix: "otp:",
	}
}

// Put stores or overwrites the code for email. Overwriting is last-writer-wins:
// at most one code per email exists at any time.
func (s *OTPStore) Put(ctx context.Context, email, code string, ttl time.Duration) error {
	return s.client.Set(ctx, s.prefix+email, code, ttl).Err()
}

// TakeIfMatch atomically consumes the stored code iff it equals candidate.
func (s *OTPStore) TakeIfMatch(ctx context.Context, email, candidate string) (bool, error) {
	res, err := takeIfMatchScript.Run(ctx, s.client, []string{s.prefix + email}, candidate).Int()
	if err != nil {
		return false, err
	}

	return res == 1, nil
}

// Delete removes the stored code for email, if any.
func (s *OTPStore) Delete(ctx context.Context, email string) error {
	return s.client.Del(ctx, s.prefix+email).Err()
}
