package utils

import (
	"sort"

	"github.com/samber/lo"
	"github.com/sasha-s/go-deadlock"
)

// FilteredList keeps every item it was given and a view of the ones that
// passed the last filter, in the order of the last sort
type FilteredList[T any] struct {
	allItems []T
	// indices of items in the allItems slice that are included in the filtered list
	indices []int

	mutex deadlock.RWMutex
}

func NewFilteredList[T any](items []T) *FilteredList[T] {
	self := &FilteredList[T]{}
	self.SetItems(items)
	return self
}

func (self *FilteredList[T]) SetItems(items []T) {
	self.mutex.Lock()
	defer self.mutex.Unlock()

	self.allItems = items
	self.indices = lo.Range(len(items))
}

// Filter keeps the items for which filter returns true. It always starts
// from the full list.
func (self *FilteredList[T]) Filter(filter func(T, int) bool) {
	self.mutex.Lock()
	defer self.mutex.Unlock()

	self.indices = self.indices[:0]
	for i, item := range self.allItems {
		if filter(item, i) {
			self.indices = append(self.indices, i)
		}
	}
}

// ClearFilter shows every item again
func (self *FilteredList[T]) ClearFilter() {
	self.Filter(func(T, int) bool { return true })
}

func (self *FilteredList[T]) Sort(less func(T, T) bool) {
	self.mutex.Lock()
	defer self.mutex.Unlock()

	if less == nil {
		return
	}

	sort.SliceStable(self.indices, func(i, j int) bool {
		return less(self.allItems[self.indices[i]], self.allItems[self.indices[j]])
	})
}

// returns the length of the filtered list
func (self *FilteredList[T]) Len() int {
	self.mutex.RLock()
	defer self.mutex.RUnlock()

	return len(self.indices)
}

func (self *FilteredList[T]) GetItems() []T {
	self.mutex.RLock()
	defer self.mutex.RUnlock()

	return lo.Map(self.indices, func(index int, _ int) T {
		return self.allItems[index]
	})
}

