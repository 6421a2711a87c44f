package template

import (
	"Go2NetTemplates/internal/core/model"
	summary "Go2NetTemplates/internal/model"
	"errors"
	"fmt"
	"hash/fnv"
	"strconv"
	"strings"
)

// Separator joins field tokens into a signature.
const Separator = "|"

// ErrStructureMismatch is returned when a packet does not have the field
// layout of the template it is absorbed into.
var ErrStructureMismatch = errors.New("packet structure does not match template")

// Tokens returns the position-qualified identifiers of a packet,
// e.g. "0-IPv4.Version".
func Tokens(pd *model.PacketDescriptor) []string {
	tokens := make([]string, len(pd.Fields))
	for i, fd := range pd.Fields {
		tokens[i] = strconv.Itoa(i) + "-" + model.NormalizeID(fd.ID)
	}
	return tokens
}

// Signature returns the structural key of a packet.
func Signature(pd *model.PacketDescriptor) string {
	return strings.Join(Tokens(pd), Separator)
}

// Hash is FNV-1a over a signature. It selects a bucket only; membership
// is always decided on the individual field tokens.
func Hash(signature string) uint64 {
	hasher := fnv.New64a()
	hasher.Write([]byte(signature))
	return hasher.Sum64()
}

// Template is the set of packets sharing one signature, along with the
// value statistics of each field position.
type Template struct {
	// ID is the rank assigned once classification is over, -1 before.
	ID int

	signature    string
	fields       []*Field
	packets      []*model.PacketDescriptor
	contributors int
	seq          int
}

// New creates a template from the first packet of its class. Each field is
// seeded with exactly one observation.
func New(pd *model.PacketDescriptor) *Template {
	tokens := Tokens(pd)
	t := &Template{
		ID:           -1,
		signature:    strings.Join(tokens, Separator),
		fields:       make([]*Field, len(pd.Fields)),
		packets:      []*model.PacketDescriptor{pd},
		contributors: 1,
	}
	for i, fd := range pd.Fields {
		t.fields[i] = newField(tokens[i], fd.Value)
	}
	return t
}

// Absorb adds a packet of the same structure. Nothing is updated when the
// structure differs.
func (t *Template) Absorb(pd *model.PacketDescriptor) error {
	if len(pd.Fields) != len(t.fields) {
		return fmt.Errorf("%w: %d fields, template has %d", ErrStructureMismatch, len(pd.Fields), len(t.fields))
	}
	tokens := Tokens(pd)
	for i, token := range tokens {
		if token != t.fields[i].ID {
			return fmt.Errorf("%w: field %q, template has %q", ErrStructureMismatch, token, t.fields[i].ID)
		}
	}
	for i, fd := range pd.Fields {
		t.fields[i].Observe(fd.Value)
	}
	t.packets = append(t.packets, pd)
	t.contributors++
	return nil
}

// Signature returns the joined field tokens.
func (t *Template) Signature() string {
	return t.signature
}

// Tokens returns the field tokens in position order.
func (t *Template) Tokens() []string {
	tokens := make([]string, len(t.fields))
	for i, f := range t.fields {
		tokens[i] = f.ID
	}
	return tokens
}

// Hash returns the bucket hash of the signature.
func (t *Template) Hash() uint64 {
	return Hash(t.signature)
}

// Equal reports whether both templates have the same field tokens. Tokens
// are compared one by one since an identifier may itself contain Separator.
func (t *Template) Equal(other *Template) bool {
	if other == nil || len(other.fields) != len(t.fields) {
		return false
	}
	for i, f := range other.fields {
		if f.ID != t.fields[i].ID {
			return false
		}
	}
	return true
}

// matches reports whether tokens are the field tokens of t.
func (t *Template) matches(tokens []string) bool {
	if len(tokens) != len(t.fields) {
		return false
	}
	for i, token := range tokens {
		if token != t.fields[i].ID {
			return false
		}
	}
	return true
}

// Fields returns the field statistics in position order.
func (t *Template) Fields() []*Field {
	return t.fields
}

// Field returns the statistics at position i, or nil.
func (t *Template) Field(i int) *Field {
	if i < 0 || i >= len(t.fields) {
		return nil
	}
	return t.fields[i]
}

// Contributors is the number of packets in the template.
func (t *Template) Contributors() int {
	return t.contributors
}

// Packets returns the contributing descriptors in arrival order.
func (t *Template) Packets() []*model.PacketDescriptor {
	return t.packets
}

func (t *Template) String() string {
	return fmt.Sprintf("id:%d packets: %d fields: %d", t.ID, t.contributors, len(t.fields))
}

// Summary snapshots the template, keeping the topN most frequent values
// per field (all of them when topN <= 0).
func (t *Template) Summary(topN int) summary.TemplateSummary {
	s := summary.TemplateSummary{
		ID:           t.ID,
		Signature:    t.signature,
		Contributors: t.contributors,
		Fields:       make([]summary.FieldSummary, len(t.fields)),
	}
	for i, f := range t.fields {
		top := f.Top(topN)
		fs := summary.FieldSummary{
			Position:       i,
			ID:             f.ID,
			DistinctValues: f.DistinctValueCount(),
			Lengths:        f.DistinctLengths(),
			Top:            make([]summary.ValueCount, len(top)),
		}
		for j, vc := range top {
			fs.Top[j] = summary.ValueCount{Value: vc.Value.String(), Length: vc.Value.Len(), Count: vc.Count}
		}
		s.Fields[i] = fs
	}
	return s
}
