package events

import (
	"slices"

	"github.com/google/uuid"
)

// Channel names one of the bus channels.
type Channel string

// Bus channels.
const (
	ChannelClick      Channel = "click"
	ChannelSpiderfy   Channel = "spiderfy"
	ChannelUnspiderfy Channel = "unspiderfy"
	ChannelFormat     Channel = "format"
)

// Channels lists every channel in a stable order.
var Channels = []Channel{ChannelClick, ChannelSpiderfy, ChannelUnspiderfy, ChannelFormat}

// Status is the display classification of a marker.
type Status string

// Marker statuses.
const (
	// StatusSpiderfied is reported for markers in the active cluster.
	StatusSpiderfied Status = "SPIDERFIED"
	// StatusSpiderfiable is reported for markers that would fan out on click.
	StatusSpiderfiable Status = "SPIDERFIABLE"
	// StatusUnspiderfiable is reported for markers with no close neighbour.
	StatusUnspiderfiable Status = "UNSPIDERFIABLE"
	// StatusUnspiderfied is the basic-mode counterpart of every non-spiderfied status.
	StatusUnspiderfied Status = "UNSPIDERFIED"
)

// ClickFunc receives a plain marker click.
type ClickFunc[M any] func(marker M)

// ClusterFunc receives the markers inside and outside a cluster.
type ClusterFunc[M any] func(cluster, others []M)

// FormatFunc receives a marker's status.
type FormatFunc[M any] func(marker M, status Status)

// Subscription identifies one registered callback.
type Subscription struct {
	ID      uuid.UUID
	Channel Channel
}

type subscriber[F any] struct {
	id uuid.UUID
	fn F
}

type channel[F any] struct {
	subs []subscriber[F]
}

func (c *channel[F]) add(fn F) uuid.UUID {
	id := uuid.New()
	c.subs = append(c.subs, subscriber[F]{id: id, fn: fn})
	return id
}

func (c *channel[F]) remove(id uuid.UUID) bool {
	i := slices.IndexFunc(c.subs, func(s subscriber[F]) bool { return s.id == id })
	if i < 0 {
		return false
	}
	c.subs = slices.Delete(c.subs, i, i+1)
	return true
}

func (c *channel[F]) snapshot() []subscriber[F] {
	return slices.Clone(c.subs)
}

// Bus carries the four typed channels for markers of type M.
// The zero value is ready to use.
type Bus[M any] struct {
	click      channel[ClickFunc[M]]
	spiderfy   channel[ClusterFunc[M]]
	unspiderfy channel[ClusterFunc[M]]
	format     channel[FormatFunc[M]]
}

// New returns an empty bus.
func New[M any]() *Bus[M] {
	return &Bus[M]{}
}

// OnClick subscribes fn to the click channel.
func (b *Bus[M]) OnClick(fn ClickFunc[M]) Subscription {
	return Subscription{ID: b.click.add(fn), Channel: ChannelClick}
}

// OnSpiderfy subscribes fn to the spiderfy channel.
func (b *Bus[M]) OnSpiderfy(fn ClusterFunc[M]) Subscription {
	return Subscription{ID: b.spiderfy.add(fn), Channel: ChannelSpiderfy}
}

// OnUnspiderfy subscribes fn to the unspiderfy channel.
func (b *Bus[M]) OnUnspiderfy(fn ClusterFunc[M]) Subscription {
	return Subscription{ID: b.unspiderfy.add(fn), Channel: ChannelUnspiderfy}
}

// OnFormat subscribes fn to the format channel.
func (b *Bus[M]) OnFormat(fn FormatFunc[M]) Subscription {
	return Subscription{ID: b.format.add(fn), Channel: ChannelFormat}
}

// Unsubscribe removes the callback behind s.
// It reports false if s was already removed or never existed.
func (b *Bus[M]) Unsubscribe(s Subscription) bool {
	switch s.Channel {
	case ChannelClick:
		return b.click.remove(s.ID)
	case ChannelSpiderfy:
		return b.spiderfy.remove(s.ID)
	case ChannelUnspiderfy:
		return b.unspiderfy.remove(s.ID)
	case ChannelFormat:
		return b.format.remove(s.ID)
	}
	return false
}

// Clear removes every callback on ch.
func (b *Bus[M]) Clear(ch Channel) {
	switch ch {
	case ChannelClick:
		b.click.subs = nil
	case ChannelSpiderfy:
		b.spiderfy.subs = nil
	case ChannelUnspiderfy:
		b.unspiderfy.subs = nil
	case ChannelFormat:
		b.format.subs = nil
	}
}

// Count returns the number of callbacks on ch.
func (b *Bus[M]) Count(ch Channel) int {
	switch ch {
	case ChannelClick:
		return len(b.click.subs)
	case ChannelSpiderfy:
		return len(b.spiderfy.subs)
	case ChannelUnspiderfy:
		return len(b.unspiderfy.subs)
	case ChannelFormat:
		return len(b.format.subs)
	}
	return 0
}

// PublishClick delivers a plain click.
func (b *Bus[M]) PublishClick(marker M) {
	for _, s := range b.click.snapshot() {
		s.fn(marker)
	}
}

// PublishSpiderfy delivers a completed fan-out.
func (b *Bus[M]) PublishSpiderfy(cluster, others []M) {
	for _, s := range b.spiderfy.snapshot() {
		s.fn(cluster, others)
	}
}

// PublishUnspiderfy delivers a completed collapse.
func (b *Bus[M]) PublishUnspiderfy(cluster, others []M) {
	for _, s := range b.unspiderfy.snapshot() {
		s.fn(cluster, others)
	}
}

// PublishFormat delivers a marker status.
func (b *Bus[M]) PublishFormat(marker M, status Status) {
	for _, s := range b.format.snapshot() {
		s.fn(marker, status)
	}
}
