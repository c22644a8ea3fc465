package symbolic

import (
	"container/list"
	"sync"
)

type cacheShard struct {
	mu        sync.RWMutex
	lmu       sync.Mutex
	totalCost uint64
	maxCost   uint64
	evictList *list.List
	elems     map[uint64]*list.Element
	onEvict   OnEvict
}

func newCacheShard(maxCost uint64, onEvict OnEvict) *cacheShard {
	return &cacheShard{
		maxCost:   maxCost,
		evictList: list.New(),
		elems:     make(map[uint64]*list.Element),
		onEvict:   onEvict,
	}
}

type entry struct {
	key   uint64
	value interface{}
	cost  uint64
}

func (cs *cacheShard) get(key uint64) (interface{}, bool) {
	cs.mu.RLock()
	defer cs.mu.RUnlock()

	if elem, ok := cs.elems[key]; ok {
		cs.lmu.Lock()
		cs.evictList.MoveToFront(elem)
		cs.lmu.Unlock()
		return elem.Value.(*entry).value, true
	}

	return nil, false
}

// add stores value under key and returns true if eviction happened
func (cs *cacheShard) add(key uint64, value interface{}, cost uint64) bool {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	// until the new entry fits, remove the oldest entries
	var evicted bool
	for cs.totalCost+cost > cs.maxCost {
		evictedKey, evictedCost, ok := cs.removeOldestUnderLock()
		if !ok {
			break
		}
		evicted = true
		if cs.onEvict != nil {
			cs.onEvict(evictedKey, evictedCost)
		}
	}

	if elem, ok := cs.elems[key]; ok {
		cs.lmu.Lock()
		cs.evictList.MoveToFront(elem)
		cs.lmu.Unlock()
		ent := elem.Value.(*entry)
		cs.totalCost -= ent.cost
		ent.value = value
		ent.cost = cost
		cs.totalCost += cost
		return evicted
	}

	cs.lmu.Lock()
	elem := cs.evictList.PushFront(&entry{key: key, value: value, cost: cost})
	cs.lmu.Unlock()

	cs.totalCost += cost
	cs.elems[key] = elem
	return evicted
}

func (cs *cacheShard) remove(key uint64) bool {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	elem, ok := cs.elems[key]
	if !ok {
		return false
	}

	cs.removeElementUnderLock(elem)
	return true
}

func (cs *cacheShard) len() int {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	return len(cs.elems)
}

func (cs *cacheShard) removeOldestUnderLock() (uint64, uint64, bool) {
	cs.lmu.Lock()
	elem := cs.evictList.Back()
	cs.lmu.Unlock()

	if elem == nil {
		return 0, 0, false
	}

	ent := elem.Value.(*entry)
	cs.removeElementUnderLock(elem)
	return ent.key, ent.cost, true
}

func (cs *cacheShard) removeElementUnderLock(elem *list.Element) {
	cs.lmu.Lock()
	cs.evictList.Remove(elem)
	cs.lmu.Unlock()

	ent := elem.Value.(*entry)
	delete(cs.elems, ent.key)
	cs.totalCost -= ent.cost
}
