package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
)

// ListingCache кэширует списки файлов. Ключи строятся здесь же, чтобы
// инвалидация при мутациях не расползалась по handlers.
type ListingCache struct {
	cache *cache.Cache
}

func NewListingCache(ttl time.Duration) *ListingCache {
	return &ListingCache{
		cache: cache.New(ttl, 2*ttl),
	}
}

func filesKey(subject, module string) string {
	return fmt.Sprintf("files:%s:%s", subject, module)
}

func subjectKey(subject string) string {
	return fmt.Sprintf("subject:%s", subject)
}

func (c *ListingCache) GetFiles(subject, module string) (interface{}, bool) {
	return c.cache.Get(filesKey(subject, module))
}

func (c *ListingCache) SetFiles(subject, module string, value interface{}) {
	c.cache.Set(filesKey(subject, module), value, cache.DefaultExpiration)
}

func (c *ListingCache) GetSubject(subject string) (interface{}, bool) {
	return c.cache.Get(subjectKey(subject))
}

func (c *ListingCache) SetSubject(subject string, value interface{}) {
	c.cache.Set(subjectKey(subject), value, cache.DefaultExpiration)
}

// InvalidateSubject сбрасывает все списки предмета после мутации.
func (c *ListingCache) InvalidateSubject(subject string) {
	prefix := filesKey(subject, "")
	for key := range c.cache.Items() {
		if key == subjectKey(subject) || strings.HasPrefix(key, prefix) {
			c.cache.Delete(key)
		}
	}
}

func (c *ListingCache) Flush() {
	c.cache.Flush()
}
