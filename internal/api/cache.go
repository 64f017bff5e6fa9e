package api

import (
	"bottle_orders/internal/domain" // Importing domain models
	"bottle_orders/internal/utils"  // Cache helpers
	"context"                       // Cache context
	"net/http"                      // HTTP status codes
	"time"                          // Cache TTL

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logrus for structured logging
)

// listCache reads list responses through Redis. A nil client disables it.
type listCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// serveList answers a list endpoint from cache or from load, flagging which one served it
func serveList[T any](c *gin.Context, cache listCache, key, field string, load func(ctx context.Context) ([]T, error)) {
	ctx := c.Request.Context()
	var cached []T
	// If cached data found, return it
	found, err := utils.GetCache(ctx, cache.rdb, key, &cached)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"key":   key,         // Cache key
			"error": err.Error(), // Error message
		}).Warn("Cache read failed")
	}
	if err == nil && found {
		c.JSON(http.StatusOK, gin.H{
			"success": true,   // Request outcome
			field:     cached, // Cached list
			"cached":  true,   // Indicate response is from cache
		})
		return
	}
	items, err := load(ctx)
	if err != nil {
		respondError(c, err)
		return
	}
	// Cache the list for future requests. A write that lands between load and here leaves it stale for up to ttl.
	if err := utils.SetCache(ctx, cache.rdb, key, items, cache.ttl); err != nil {
		logrus.WithFields(logrus.Fields{
			"key":   key,         // Cache key
			"error": err.Error(), // Error message
		}).Warn("Cache write failed")
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,  // Request outcome
		field:     items, // Fresh list
		"cached":  false, // Indicate response is not from cache
	})
}

// invalidate drops cached lists after a write
func (lc listCache) invalidate(ctx context.Context, keys ...string) {
	if err := utils.DeleteCache(ctx, lc.rdb, keys...); err != nil {
		logrus.WithFields(logrus.Fields{
			"keys":  keys,        // Cache keys
			"error": err.Error(), // Error message
		}).Warn("Cache invalidation failed")
	}
}

// orderKeys lists every cached order list that can contain an order of ownerID
func orderKeys(ownerID string) []string {
	keys := []string{utils.UserOrdersKey(ownerID), utils.AllOrdersKey}
	for _, s := range domain.OrderStatuses {
		keys = append(keys, utils.OrdersByStatusKey(string(s)))
	}
	return keys
}

func ticketKeys(ownerID string) []string {
	return []string{utils.UserTicketsKey(ownerID), utils.AllTicketsKey}
}
