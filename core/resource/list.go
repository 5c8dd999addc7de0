// File: core/resource/list.go
// Package resource
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Per-direction resource list. A resource appears in at most one list at a
// time and must be removed before destruction.

package resource

import "github.com/momentics/hioload-video/api"

// List is an ordered set of resources for one queue direction.
type List struct {
	dir   api.QueueDir
	items []*Resource
}

// NewList creates an empty list for dir.
func NewList(dir api.QueueDir) *List {
	return &List{dir: dir}
}

// Dir returns the queue direction this list serves.
func (l *List) Dir() api.QueueDir { return l.dir }

// Len returns the number of listed resources.
func (l *List) Len() int { return len(l.items) }

// Insert adds r to the list. A resource already held by any list is
// rejected.
func (l *List) Insert(r *Resource) error {
	if r.list != nil {
		return api.ErrInvariantViolation
	}
	r.list = l
	l.items = append(l.items, r)
	return nil
}

// Remove detaches r from the list; reports whether it was present.
func (l *List) Remove(r *Resource) bool {
	for i, item := range l.items {
		if item == r {
			l.items = append(l.items[:i], l.items[i+1:]...)
			r.list = nil
			return true
		}
	}
	return false
}

// Lookup finds a listed resource by id.
func (l *List) Lookup(id uint32) (*Resource, bool) {
	for _, item := range l.items {
		if item.ID == id {
			return item, true
		}
	}
	return nil, false
}

// DestroyAll removes and destroys every listed resource. Used on stream
// teardown, explicit destroy-all and queue-clear.
func (l *List) DestroyAll() error {
	for len(l.items) > 0 {
		r := l.items[0]
		l.Remove(r)
		if err := r.Destroy(); err != nil {
			return err
		}
	}
	return nil
}
