package db

import (
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/dgraph-io/ristretto"
)

// Storing cache keys in concurrent data structures so that all cached reads for
// one user can be dropped when that user writes a transaction.
var (
	Cache                *ristretto.Cache
	TransactionCacheKeys = struct {
		sync.RWMutex
		m map[string]struct{}
	}{m: make(map[string]struct{})}
	CategoryCacheKeys = struct {
		sync.RWMutex
		m map[string]struct{}
	}{m: make(map[string]struct{})}
)

func InitCache() {
	var err error
	Cache, err = ristretto.NewCache(&ristretto.Config{
		NumCounters: 10000, // number of keys to track frequency of
		MaxCost:     10000,
		BufferItems: 64, // number of keys per Get buffer
	})
	if err != nil {
		log.Fatalf("failed to initialize cache: %v", err)
	}
}

// TransactionListKey builds the cache key for one user's filtered transaction list.
func TransactionListKey(userID int64, filter string) string {
	return fmt.Sprintf("txns:%d:%s", userID, filter)
}

// CategoryListKey builds the cache key for one user's distinct category list.
func CategoryListKey(userID int64) string {
	return fmt.Sprintf("categories:%d", userID)
}

// Transaction Cache Functions
func SetTransactionCache(cacheKey string, value interface{}) {
	TransactionCacheKeys.Lock()
	TransactionCacheKeys.m[cacheKey] = struct{}{}
	TransactionCacheKeys.Unlock()
	Cache.Set(cacheKey, value, 1)
}

func ClearTransactionCachesForUser(userID int64) {
	prefix := fmt.Sprintf("txns:%d:", userID)
	TransactionCacheKeys.Lock()
	for key := range TransactionCacheKeys.m {
		if strings.HasPrefix(key, prefix) {
			Cache.Del(key)
			delete(TransactionCacheKeys.m, key)
		}
	}
	TransactionCacheKeys.Unlock()
}

// Category Cache Functions
func SetCategoryCache(cacheKey string, value interface{}) {
	CategoryCacheKeys.Lock()
	CategoryCacheKeys.m[cacheKey] = struct{}{}
	CategoryCacheKeys.Unlock()
	Cache.Set(cacheKey, value, 1)
}

func DelCategoryCache(cacheKey string) {
	CategoryCacheKeys.Lock()
	delete(CategoryCacheKeys.m, cacheKey)
	CategoryCacheKeys.Unlock()
	Cache.Del(cacheKey)
}

// ClearCachesForUser drops every cached read for one user. Called after any
// transaction write: manual entry, edit, delete, or a CSV import commit.
func ClearCachesForUser(userID int64) {
	ClearTransactionCachesForUser(userID)
	DelCategoryCache(CategoryListKey(userID))
}
