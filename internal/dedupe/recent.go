package dedupe

import (
	"container/list"
	"crypto/sha1"
	"fmt"
	"sync"
	"time"

	"github.com/silverhaven/eventscout/internal/model"
)

// Recent is a TTL-bound LRU of recently written records, keyed by the
// natural key plus a digest of the mutable fields. A record whose digest
// was written within the TTL would produce an identical upsert, so the
// pipeline can skip the write without affecting convergence: any field
// change yields a new digest.
type Recent struct {
	mu    sync.Mutex
	cap   int
	ttl   time.Duration
	ll    *list.List               // most-recent at front
	items map[string]*list.Element // key -> element
}

type recentEntry struct {
	key string
	exp time.Time
}

// NewRecent creates a Recent with the given capacity and TTL
func NewRecent(maxKeys int, ttl time.Duration) *Recent {
	if maxKeys <= 0 {
		maxKeys = 10000
	}
	return &Recent{
		cap:   maxKeys,
		ttl:   ttl,
		ll:    list.New(),
		items: make(map[string]*list.Element, maxKeys),
	}
}

// Digest identifies a record's current field values
func Digest(ev *model.EventRecord) string {
	h := sha1.New()
	fmt.Fprintf(h, "%s|%s|%s|%s|%s|%s|%t",
		ev.NaturalKey(), ev.Description, ev.Neighborhood, ev.EventType,
		ev.LocationName, ev.RegistrationURL, ev.IsVirtual)
	return fmt.Sprintf("%x", h.Sum(nil))
}

// Seen reports whether the key was marked within the TTL
func (r *Recent) Seen(key string) bool {
	if r == nil || r.ttl <= 0 {
		return false
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	el, ok := r.items[key]
	if !ok {
		return false
	}
	en := el.Value.(recentEntry)
	if time.Now().Before(en.exp) {
		r.ll.MoveToFront(el)
		return true
	}
	r.ll.Remove(el)
	delete(r.items, key)
	return false
}

// Mark records the key, evicting the oldest entries past capacity
func (r *Recent) Mark(key string) {
	if r == nil || r.ttl <= 0 {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if el, ok := r.items[key]; ok {
		en := el.Value.(recentEntry)
		en.exp = time.Now().Add(r.ttl)
		el.Value = en
		r.ll.MoveToFront(el)
		return
	}

	el := r.ll.PushFront(recentEntry{key: key, exp: time.Now().Add(r.ttl)})
	r.items[key] = el

	for r.ll.Len() > r.cap {
		tail := r.ll.Back()
		if tail == nil {
			break
		}
		r.ll.Remove(tail)
		delete(r.items, tail.Value.(recentEntry).key)
	}
}
