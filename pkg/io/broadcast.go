// Package io holds the plumbing shared by the video and audio readers.
package io

import (
	"io"
	"sync"
)

// Broadcaster fans the values published by a single producer out to any
// number of readers. Only the latest value is kept: a slow reader skips to
// it, and never blocks the producer. Readers are not registered, they only
// remember the count of the last value they saw, so they can come and go at
// anytime and don't need to notify the broadcaster.
type Broadcaster[T any] struct {
	mu     sync.Mutex
	latest T
	count  uint64
	err    error
	// changed is closed and replaced on every Publish, and closed for good
	// on Close.
	changed chan struct{}
}

// NewBroadcaster creates an open broadcaster.
func NewBroadcaster[T any]() *Broadcaster[T] {
	return &Broadcaster[T]{changed: make(chan struct{})}
}

// Publish replaces the latest value and wakes up waiting readers. Publishing
// to a closed broadcaster is a no-op.
func (b *Broadcaster[T]) Publish(v T) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.err != nil {
		return
	}

	b.latest = v
	b.count++
	close(b.changed)
	b.changed = make(chan struct{})
}

// Close ends the broadcast. Readers pick up a value they have not seen yet
// and then return err, or io.EOF when err is nil. Only the first call has an
// effect.
func (b *Broadcaster[T]) Close(err error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.err != nil {
		return
	}
	if err == nil {
		err = io.EOF
	}
	b.err = err
	close(b.changed)
}

// Err returns the error the broadcaster was closed with, or nil while open.
func (b *Broadcaster[T]) Err() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.err
}

type reader[T any] struct {
	b     *Broadcaster[T]
	count uint64
}

func (b *Broadcaster[T]) newReader() *reader[T] {
	b.mu.Lock()
	defer b.mu.Unlock()
	return &reader[T]{b: b, count: b.count}
}

// NewReader returns a reader of the values published from now on. The
// returned func blocks until a value is published or the broadcaster closes.
// Dropping the func is enough to release the reader.
func (b *Broadcaster[T]) NewReader() func() (T, error) {
	return b.newReader().read
}

func (r *reader[T]) read() (T, error) {
	b := r.b
	for {
		b.mu.Lock()
		if b.count != r.count {
			r.count = b.count
			v := b.latest
			b.mu.Unlock()
			return v, nil
		}
		if b.err != nil {
			err := b.err
			b.mu.Unlock()
			var zero T
			return zero, err
		}
		changed := b.changed
		b.mu.Unlock()

		<-changed
	}
}
