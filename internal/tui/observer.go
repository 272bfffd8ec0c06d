package tui

import "github.com/mmcdole/todos/internal/domain"

// ChannelObserver adapts domain.StateObserver to a channel for Bubble Tea.
// The channel holds at most one snapshot; a newer one replaces a snapshot
// the UI has not read yet.
type ChannelObserver struct {
	ch chan domain.Snapshot
}

// NewChannelObserver creates a new channel-based observer.
func NewChannelObserver() *ChannelObserver {
	return &ChannelObserver{ch: make(chan domain.Snapshot, 1)}
}

// Updates returns the channel snapshots are delivered on
func (o *ChannelObserver) Updates() <-chan domain.Snapshot {
	return o.ch
}

// OnStateChange delivers the snapshot without blocking.
func (o *ChannelObserver) OnStateChange(snapshot domain.Snapshot) {
	for {
		select {
		case o.ch <- snapshot:
			return
		default:
		}
		// Drop the stale snapshot and retry
		select {
		case <-o.ch:
		default:
		}
	}
}
