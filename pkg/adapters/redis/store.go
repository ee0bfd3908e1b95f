package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	backend "github.com/redis/go-redis/v9"

	"github.com/suzuryg/facial-expression-switcher/pkg/domain"
)

const defaultPrefix = "fxgen:"

// Option configures the Redis adapters.
type Option func(*keys)

// WithPrefix sets the key prefix for outputs and installations.
func WithPrefix(prefix string) Option {
	return func(k *keys) {
		k.prefix = prefix
	}
}

type keys struct {
	prefix string
}

func newKeys(opts []Option) keys {
	k := keys{prefix: defaultPrefix}
	for _, opt := range opts {
		opt(&k)
	}
	return k
}

// index is a sorted set of output names. All scores are 0 so ZRANGE returns them in
// lexical order.
func (k keys) index() string { return k.prefix + "outputs" }

func (k keys) output(name string) string { return k.prefix + "output:" + name }

func (k keys) installed() string { return k.prefix + "installed" }

// Store implements ports.OutputStore using Redis. Each output is a hash of
// artifact key to bytes.
type Store struct {
	client *backend.Client
	keys   keys
}

// New creates a new Redis store with options.
func New(address, password string, db int, opts ...Option) *Store {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(rdb, opts...)
}

// NewFromClient creates a new Redis store from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Store {
	return &Store{client: client, keys: newKeys(opts)}
}

// Create registers a new output namespace.
func (s *Store) Create(ctx context.Context, name string) error {
	added, err := s.client.ZAddNX(ctx, s.keys.index(), backend.Z{Member: name}).Result()
	if err != nil {
		return fmt.Errorf("failed to create output in redis: %w", err)
	}
	if added == 0 {
		return domain.ErrOutputExists
	}
	return nil
}

func (s *Store) exists(ctx context.Context, name string) error {
	_, err := s.client.ZScore(ctx, s.keys.index(), name).Result()
	if errors.Is(err, backend.Nil) {
		return domain.ErrOutputNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to look up output in redis: %w", err)
	}
	return nil
}

// Put stores an artifact inside an existing output.
func (s *Store) Put(ctx context.Context, name, key string, data []byte) error {
	if err := s.exists(ctx, name); err != nil {
		return err
	}
	if err := s.client.HSet(ctx, s.keys.output(name), key, data).Err(); err != nil {
		return fmt.Errorf("failed to save to redis: %w", err)
	}
	return nil
}

// Get retrieves an artifact.
func (s *Store) Get(ctx context.Context, name, key string) ([]byte, error) {
	data, err := s.client.HGet(ctx, s.keys.output(name), key).Bytes()
	if err != nil {
		if errors.Is(err, backend.Nil) {
			return nil, domain.ErrOutputNotFound
		}
		return nil, fmt.Errorf("failed to get from redis: %w", err)
	}
	return data, nil
}

// List returns all output names in lexical order.
func (s *Store) List(ctx context.Context) ([]string, error) {
	names, err := s.client.ZRange(ctx, s.keys.index(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list outputs: %w", err)
	}
	return names, nil
}

// Delete removes an output and all of its artifacts.
func (s *Store) Delete(ctx context.Context, name string) error {
	var removed *backend.IntCmd
	_, err := s.client.TxPipelined(ctx, func(pipe backend.Pipeliner) error {
		removed = pipe.ZRem(ctx, s.keys.index(), name)
		pipe.Del(ctx, s.keys.output(name))
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to delete from redis: %w", err)
	}
	if removed.Val() == 0 {
		return domain.ErrOutputNotFound
	}
	return nil
}

// Close closes the redis client.
func (s *Store) Close() error {
	return s.client.Close()
}

// Installation implements ports.Installation as a Redis hash of target to reference.
type Installation struct {
	client *backend.Client
	keys   keys
}

// NewInstallation creates an installation sharing the store's key layout.
func NewInstallation(client *backend.Client, opts ...Option) *Installation {
	return &Installation{client: client, keys: newKeys(opts)}
}

// Installed returns every target and the artifact attached to it.
func (i *Installation) Installed(ctx context.Context) (map[string]domain.ArtifactRef, error) {
	raw, err := i.client.HGetAll(ctx, i.keys.installed()).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read installations: %w", err)
	}
	out := make(map[string]domain.ArtifactRef, len(raw))
	for target, val := range raw {
		var ref domain.ArtifactRef
		if err := json.Unmarshal([]byte(val), &ref); err != nil {
			return nil, fmt.Errorf("failed to unmarshal installation %q: %w", target, err)
		}
		out[target] = ref
	}
	return out, nil
}

// Install attaches ref to target, replacing any previous reference.
func (i *Installation) Install(ctx context.Context, target string, ref domain.ArtifactRef) error {
	data, err := json.Marshal(ref)
	if err != nil {
		return fmt.Errorf("failed to marshal installation: %w", err)
	}
	if err := i.client.HSet(ctx, i.keys.installed(), target, data).Err(); err != nil {
		return fmt.Errorf("failed to save installation: %w", err)
	}
	return nil
}
