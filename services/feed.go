package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/redis/go-redis/v9"
	"github.com/sabyskool/api/model"
	"github.com/sabyskool/api/utils/cache"
)

// MessageFeed fans message inserts out to subscribed clients over Redis
// pub/sub. The feed is a notification side channel: the persisted row is the
// source of truth and a publish failure never affects the write that
// triggered it.
type MessageFeed struct {
	cache *cache.RedisCache
}

// NewMessageFeed creates a message feed backed by the given Redis cache
func NewMessageFeed(c *cache.RedisCache) *MessageFeed {
	return &MessageFeed{cache: c}
}

func messageChannel(aulaID uint) string {
	return fmt.Sprintf("aula:%d:messages", aulaID)
}

// PublishMessage announces a freshly inserted message. Best effort only.
func (f *MessageFeed) PublishMessage(ctx context.Context, msg *model.ForumMessage) {
	if f == nil || f.cache == nil {
		return
	}

	payload, err := json.Marshal(msg)
	if err != nil {
		log.Printf("Warning: failed to encode feed event for aula %d: %v", msg.AulaID, err)
		return
	}

	if err := f.cache.Publish(ctx, messageChannel(msg.AulaID), payload); err != nil {
		log.Printf("Warning: failed to publish feed event for aula %d: %v", msg.AulaID, err)
	}
}

// SubscribeMessages opens a subscription for one aula's message inserts.
// The caller must close the returned PubSub when done.
func (f *MessageFeed) SubscribeMessages(ctx context.Context, aulaID uint) (*redis.PubSub, error) {
	if f == nil || f.cache == nil {
		return nil, fmt.Errorf("realtime feed is not configured")
	}
	return f.cache.Subscribe(ctx, messageChannel(aulaID)), nil
}
