package utils

import (
	"sync"
	"time"
)

// 使用 sync.Map 保证并发安全
var (
	memoryCache sync.Map
)

// cacheItem 内部结构，包含值和过期时间
type cacheItem struct {
	value      string
	expiration int64
}

// SetCache 设置缓存
// 目前用于 webhook 事件去重（防止处理器重放同一事件）
func SetCache(key string, value string, ttl time.Duration) {
	exp := time.Now().Add(ttl).Unix()

	memoryCache.Store(key, cacheItem{
		value:      value,
		expiration: exp,
	})
}

// GetCache 获取缓存并验证是否过期
func GetCache(key string) (string, bool) {
	val, ok := memoryCache.Load(key)
	if !ok {
		return "", false
	}

	item := val.(cacheItem)

	// 懒删除
	if time.Now().Unix() > item.expiration {
		memoryCache.Delete(key)
		return "", false
	}

	return item.value, true
}

// DeleteCache 删除缓存
func DeleteCache(key string) {
	memoryCache.Delete(key)
}
