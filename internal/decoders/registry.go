package decoders

import (
	"fmt"
	"sort"
	"sync"

	"github.com/custodia-labs/tgcore/internal/core/domain"
)

// Decoder turns one raw variant of a family into a domain value.
// Nested fields are decoded through the session, which carries the
// envelope's entity table and the decode context.
type Decoder func(s *Session, v domain.RawVariant) (any, error)

type registryKey struct {
	family domain.Family
	tag    string
}

// Registry maps (family, tag) pairs to decoders.
// Once frozen it is read-only and safe for concurrent use.
type Registry struct {
	decoders map[registryKey]Decoder
	tags     map[domain.Family][]string
	frozen   bool
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		decoders: make(map[registryKey]Decoder),
		tags:     make(map[domain.Family][]string),
	}
}

// Register adds a decoder for a tag of a family.
// Registering twice or after Freeze is a programming error and panics.
func (r *Registry) Register(family domain.Family, tag string, dec Decoder) {
	if r.frozen {
		panic(fmt.Sprintf("decoders: register %s/%s on frozen registry", family, tag))
	}
	k := registryKey{family: family, tag: tag}
	if _, dup := r.decoders[k]; dup {
		panic(fmt.Sprintf("decoders: duplicate decoder for %s/%s", family, tag))
	}
	r.decoders[k] = dec
	r.tags[family] = append(r.tags[family], tag)
}

// Freeze makes the registry read-only.
func (r *Registry) Freeze() *Registry {
	for family := range r.tags {
		sort.Strings(r.tags[family])
	}
	r.frozen = true
	return r
}

// DecoderFor returns the decoder for a tag of a family. The boolean is
// false for tags the registry does not know; this is never a failure by
// itself, the call site decides what an unsupported variant means.
func (r *Registry) DecoderFor(family domain.Family, tag string) (Decoder, bool) {
	dec, ok := r.decoders[registryKey{family: family, tag: tag}]
	return dec, ok
}

// Has returns true if a decoder is registered for the tag.
func (r *Registry) Has(family domain.Family, tag string) bool {
	_, ok := r.DecoderFor(family, tag)
	return ok
}

// Families returns all registered families in sorted order.
func (r *Registry) Families() []domain.Family {
	out := make([]domain.Family, 0, len(r.tags))
	for family := range r.tags {
		out = append(out, family)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Tags returns the tags registered for a family.
func (r *Registry) Tags(family domain.Family) []string {
	tags := r.tags[family]
	out := make([]string, len(tags))
	copy(out, tags)
	return out
}

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
)

// Default returns the process-wide registry holding every built-in decoder.
func Default() *Registry {
	defaultOnce.Do(func() {
		r := NewRegistry()
		registerPeers(r)
		registerBoosts(r)
		registerStories(r)
		registerStars(r)
		registerAuctions(r)
		registerGifts(r)
		registerDialogs(r)
		defaultRegistry = r.Freeze()
	})
	return defaultRegistry
}
