package redis

import (
	"context"
	"errors"
	"log"
	"sync/atomic"
	"time"

	"job-board/internal/config"

	goredis "github.com/redis/go-redis/v9"
)

var ErrUnavailable = errors.New("redis unavailable")

type Client struct {
	client *goredis.Client
	logger *log.Logger

	warnedUnavailable atomic.Bool
}

// Connect returns a client whose methods no-op when the server did not
// answer the initial ping.
func Connect(cfg config.RedisConfig, logger *log.Logger) *Client {
	client := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		if logger != nil {
			logger.Printf("[Redis] unavailable addr=%s, falling back to in-process rate limiting: %v", cfg.Addr(), err)
		}
		_ = client.Close()
		return &Client{logger: logger}
	}

	if logger != nil {
		logger.Printf("[Redis] connected addr=%s db=%d", cfg.Addr(), cfg.DB)
	}
	return &Client{client: client, logger: logger}
}

func (r *Client) Available() bool {
	return r != nil && r.client != nil
}

func (r *Client) Ping(ctx context.Context) error {
	if !r.Available() {
		return ErrUnavailable
	}
	return r.client.Ping(ctx).Err()
}

func (r *Client) Close() error {
	if !r.Available() {
		return nil
	}
	return r.client.Close()
}

func (r *Client) warnUnavailableOnce(err error) {
	if r == nil || r.logger == nil {
		return
	}
	if r.warnedUnavailable.CompareAndSwap(false, true) {
		r.logger.Printf("[Redis] request failed, allowing traffic: %v", err)
	}
}
