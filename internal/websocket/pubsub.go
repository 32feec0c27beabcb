package websocket

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/go-redis/redis/v8"
)

const relayBufferSize = 100

// RedisRelay реализует Relay через Redis Pub/Sub.
// Каждый экземпляр получает и свои собственные события, поэтому локальная рассылка идёт только из подписки.
type RedisRelay struct {
	client  redis.UniversalClient
	channel string
	logger  *log.Logger
}

// NewRedisRelay создает relay поверх существующего клиента Redis
func NewRedisRelay(client redis.UniversalClient, channel string, logger *log.Logger) (*RedisRelay, error) {
	if client == nil {
		return nil, errors.New("redis client cannot be nil for RedisRelay")
	}
	if channel == "" {
		return nil, errors.New("relay channel is required")
	}
	return &RedisRelay{
		client:  client,
		channel: channel,
		logger:  logger.WithPrefix("RedisRelay"),
	}, nil
}

// Publish публикует событие в канал
func (r *RedisRelay) Publish(ctx context.Context, payload []byte) error {
	if err := r.client.Publish(ctx, r.channel, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish to Redis channel %s: %w", r.channel, err)
	}
	return nil
}

// Subscribe подписывается на канал; возвращённый канал закрывается при отмене ctx
func (r *RedisRelay) Subscribe(ctx context.Context) (<-chan []byte, error) {
	pubsub := r.client.Subscribe(ctx, r.channel)

	// Ждём подтверждения подписки
	if _, err := pubsub.Receive(ctx); err != nil {
		pubsub.Close()
		return nil, fmt.Errorf("failed to subscribe to Redis channel %s: %w", r.channel, err)
	}
	r.logger.Info("subscribed", "channel", r.channel)

	out := make(chan []byte, relayBufferSize)
	go func() {
		defer func() {
			pubsub.Close()
			close(out)
		}()

		redisCh := pubsub.Channel()
		for {
			select {
			case msg, ok := <-redisCh:
				if !ok {
					return
				}
				select {
				case out <- []byte(msg.Payload):
				case <-ctx.Done():
					return
				}
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}
