package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/VictoriaMetrics/fastcache"
)

// inmemEnvelope wraps every stored value because fastcache has no native
// TTL: the deadline travels with the payload and is checked on read.
type inmemEnvelope struct {
	DeadlineUnixNano int64           `json:"deadline_unix_nano"` // zero means no expiry
	Payload          json.RawMessage `json:"payload"`
}

type InMemory struct {
	DB *fastcache.Cache

	// nowFunc is swappable in tests to force expiry.
	nowFunc func() time.Time
}

var _ Cache = (*InMemory)(nil)

func NewInMemory() (*InMemory, error) {
	db := fastcache.New(32 * 1048576) // 32MB
	return &InMemory{
		DB:      db,
		nowFunc: time.Now,
	}, nil
}

func (i *InMemory) GetAs(_ context.Context, key string, out interface{}) error {
	result := i.DB.Get(nil, []byte(key))
	if result == nil {
		return ErrKeyNotExist
	}

	var envelope inmemEnvelope
	if err := json.Unmarshal(result, &envelope); err != nil {
		return fmt.Errorf("cannot unmarshal cache envelope: %w", err)
	}

	if envelope.DeadlineUnixNano > 0 && i.nowFunc().UnixNano() > envelope.DeadlineUnixNano {
		i.DB.Del([]byte(key))
		return ErrKeyNotExist
	}

	return json.Unmarshal(envelope.Payload, out)
}

func (i *InMemory) SetExp(_ context.Context, key string, inValue interface{}, expireDur time.Duration) error {
	val, err := json.Marshal(inValue)
	if err != nil {
		return fmt.Errorf("cannot marshal json value: %w", err)
	}

	envelope := inmemEnvelope{
		Payload: val,
	}
	if expireDur > 0 {
		envelope.DeadlineUnixNano = i.nowFunc().Add(expireDur).UnixNano()
	}

	enc, err := json.Marshal(envelope)
	if err != nil {
		return fmt.Errorf("cannot marshal cache envelope: %w", err)
	}

	i.DB.Set([]byte(key), enc)
	return nil
}

func (i *InMemory) Delete(_ context.Context, key string) error {
	i.DB.Del([]byte(key))
	return nil
}
