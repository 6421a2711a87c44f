package template

import (
	"Go2NetTemplates/internal/core/model"
	"Go2NetTemplates/internal/engine/protocol"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"
)

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the logger used for classification events.
func WithLogger(logger *zap.Logger) Option {
	return func(r *Registry) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithHashFunc replaces the signature hash used for bucket lookup.
func WithHashFunc(hash func(string) uint64) Option {
	return func(r *Registry) {
		if hash != nil {
			r.hash = hash
		}
	}
}

// Registry classifies decoded packets into templates for one run.
// It is not safe for concurrent use.
type Registry struct {
	parser protocol.Parser
	hash   func(string) uint64
	logger *zap.Logger

	buckets map[uint64][]*Template
	// created holds templates in creation order.
	created []*Template
	packets int
}

// NewRegistry creates an empty registry decoding packets with parser.
func NewRegistry(parser protocol.Parser, opts ...Option) *Registry {
	r := &Registry{
		parser:  parser,
		hash:    Hash,
		logger:  zap.NewNop(),
		buckets: make(map[uint64][]*Template),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Add decodes one packet and routes it to its template, creating the
// template on first sight of the signature.
func (r *Registry) Add(buf model.Buffer) (*Template, error) {
	pd, err := r.parser.Parse(buf)
	if err != nil {
		return nil, fmt.Errorf("failed to decode packet %d: %w", r.packets, err)
	}
	t, err := r.AddDescriptor(pd)
	if err != nil {
		return nil, fmt.Errorf("packet %d: %w", r.packets, err)
	}
	return t, nil
}

// AddDescriptor routes an already decoded packet.
func (r *Registry) AddDescriptor(pd *model.PacketDescriptor) (*Template, error) {
	tokens := Tokens(pd)
	key := r.hash(strings.Join(tokens, Separator))

	bucket := r.buckets[key]
	for _, t := range bucket {
		if !t.matches(tokens) {
			continue
		}
		if err := t.Absorb(pd); err != nil {
			return nil, err
		}
		r.packets++
		return t, nil
	}

	if len(bucket) > 0 {
		r.logger.Debug("Signature hash collision, chaining new template",
			zap.Uint64("hash", key),
			zap.Int("bucket_size", len(bucket)))
	}

	t := New(pd)
	t.seq = len(r.created)
	r.buckets[key] = append(bucket, t)
	r.created = append(r.created, t)
	r.packets++
	r.logger.Debug("New template",
		zap.Int("seq", t.seq),
		zap.Int("fields", len(t.fields)))
	return t, nil
}

// Classify adds every buffer in order and stops at the first failure.
func (r *Registry) Classify(bufs []model.Buffer) error {
	for _, buf := range bufs {
		if _, err := r.Add(buf); err != nil {
			return err
		}
	}
	r.logger.Info("Classification complete",
		zap.Int("packets", r.packets),
		zap.Int("templates", len(r.created)))
	return nil
}

// Len returns the number of distinct templates.
func (r *Registry) Len() int {
	return len(r.created)
}

// Packets returns the number of packets classified so far.
func (r *Registry) Packets() int {
	return r.packets
}

// Templates ranks the templates by contributor count, highest first, with
// ties kept in creation order, and numbers them from 0.
func (r *Registry) Templates() []*Template {
	ranked := make([]*Template, len(r.created))
	copy(ranked, r.created)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].contributors > ranked[j].contributors
	})
	for id, t := range ranked {
		t.ID = id
	}
	return ranked
}

// FindTemplates classifies packets with parser and returns the ranked templates.
func FindTemplates(packets []model.Buffer, parser protocol.Parser) ([]*Template, error) {
	r := NewRegistry(parser)
	if err := r.Classify(packets); err != nil {
		return nil, err
	}
	return r.Templates(), nil
}
