package driver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-redis/redis/v8"

	"github.com/bridgewise-net/bridgewise/pkg/bridge"
	"github.com/bridgewise-net/bridgewise/pkg/util"
)

const (
	// keyPrefix namespaces desired-config keys: bridgewise|<bridge name>.
	keyPrefix = "bridgewise|"
	// changeChannel carries bridge names whose desired config changed.
	changeChannel = "bridgewise:changes"
)

// RedisSource stores desired configs as JSON values in Redis and signals
// changes over pub/sub. This is the transport between a configuration
// front-end and the apply driver.
type RedisSource struct {
	client *redis.Client
}

// NewRedisSource connects to Redis at addr (e.g. "127.0.0.1:6379").
func NewRedisSource(addr string) (*RedisSource, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("connecting to redis %s: %w", addr, err)
	}
	return &RedisSource{client: client}, nil
}

// Get reads and decodes the desired config for one bridge.
func (s *RedisSource) Get(ctx context.Context, name string) (*bridge.Config, error) {
	data, err := s.client.Get(ctx, keyPrefix+name).Result()
	if err == redis.Nil {
		return nil, fmt.Errorf("bridge %s: %w", name, util.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("reading config for %s: %w", name, err)
	}
	var cfg bridge.Config
	if err := json.Unmarshal([]byte(data), &cfg); err != nil {
		return nil, fmt.Errorf("decoding config for %s: %w", name, err)
	}
	return &cfg, nil
}

// Watch subscribes to the change channel and streams bridge names.
func (s *RedisSource) Watch(ctx context.Context) (<-chan string, error) {
	sub := s.client.Subscribe(ctx, changeChannel)
	// Receive confirms the subscription before we report success.
	if _, err := sub.Receive(ctx); err != nil {
		sub.Close()
		return nil, fmt.Errorf("subscribing to %s: %w", changeChannel, err)
	}

	ch := make(chan string)
	go func() {
		defer close(ch)
		defer sub.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-sub.Channel():
				if !ok {
					return
				}
				select {
				case ch <- msg.Payload:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return ch, nil
}

// Publish stores the desired config for one bridge and notifies watchers.
func (s *RedisSource) Publish(ctx context.Context, name string, cfg *bridge.Config) error {
	data, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding config for %s: %w", name, err)
	}
	if err := s.client.Set(ctx, keyPrefix+name, data, 0).Err(); err != nil {
		return fmt.Errorf("storing config for %s: %w", name, err)
	}
	if err := s.client.Publish(ctx, changeChannel, name).Err(); err != nil {
		return fmt.Errorf("notifying change for %s: %w", name, err)
	}
	return nil
}

// Close closes the Redis connection.
func (s *RedisSource) Close() error {
	return s.client.Close()
}
