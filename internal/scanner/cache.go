package scanner

import (
	lru "github.com/hashicorp/golang-lru/v2"

	"goloc/internal/model"
)

// FileKey 唯一标识某个版本的文件内容。
// 路径、大小、修改时间任一变化都会视为新文件。
type FileKey struct {
	Path    string
	Size    int64
	ModTime int64
}

// CountCache 缓存单文件分类结果，实现必须并发安全。
type CountCache interface {
	Get(key FileKey) (model.Count, bool)
	Add(key FileKey, count model.Count)
}

// LRUCache 是基于 golang-lru 的 CountCache。
type LRUCache struct {
	cache *lru.Cache[FileKey, model.Count]
}

// NewLRUCache 创建容量为 size 的缓存。
func NewLRUCache(size int) (*LRUCache, error) {
	cache, err := lru.New[FileKey, model.Count](size)
	if err != nil {
		return nil, err
	}
	return &LRUCache{cache: cache}, nil
}

// Get 查询缓存。
func (c *LRUCache) Get(key FileKey) (model.Count, bool) {
	return c.cache.Get(key)
}

// Add 写入缓存，超出容量时淘汰最久未使用的条目。
func (c *LRUCache) Add(key FileKey, count model.Count) {
	c.cache.Add(key, count)
}

// Len 返回当前条目数。
func (c *LRUCache) Len() int {
	return c.cache.Len()
}
