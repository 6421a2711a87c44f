package template

import (
	"Go2NetTemplates/internal/core/model"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type field struct {
	id    any
	value byte
}

func descriptor(fields ...field) *model.PacketDescriptor {
	pd := &model.PacketDescriptor{}
	for _, f := range fields {
		v := model.NewBuffer([]byte{f.value})
		pd.Fields = append(pd.Fields, model.FieldDescriptor{ID: f.id, Value: v, Length: v.Len(), Direction: model.DirectionUp})
		pd.Length += v.Len()
	}
	return pd
}

func TestSignature(t *testing.T) {
	pd := descriptor(
		field{model.FieldID{Layer: "IPv4", Name: "Version"}, 4},
		field{"payload", 1},
	)
	assert.Equal(t, []string{"0-IPv4.Version", "1-payload"}, Tokens(pd))
	assert.Equal(t, "0-IPv4.Version|1-payload", Signature(pd))
	assert.Equal(t, Hash(Signature(pd)), New(pd).Hash())
}

func TestTemplate_NewSeedsOnce(t *testing.T) {
	tmpl := New(descriptor(field{"A", 1}, field{"B", 2}, field{"C", 3}))

	assert.Equal(t, -1, tmpl.ID)
	assert.Equal(t, 1, tmpl.Contributors())
	assert.Len(t, tmpl.Packets(), 1)
	require.Len(t, tmpl.Fields(), 3)
	for _, f := range tmpl.Fields() {
		assert.Equal(t, 1, f.Total())
		assert.Equal(t, 1, f.DistinctValueCount())
	}
	assert.Equal(t, "1-B", tmpl.Field(1).ID)
	assert.Nil(t, tmpl.Field(3))
	assert.Nil(t, tmpl.Field(-1))
}

func TestTemplate_Absorb(t *testing.T) {
	tmpl := New(descriptor(field{"A", 1}, field{"B", 2}))
	require.NoError(t, tmpl.Absorb(descriptor(field{"A", 1}, field{"B", 7})))
	require.NoError(t, tmpl.Absorb(descriptor(field{"A", 1}, field{"B", 7})))

	assert.Equal(t, 3, tmpl.Contributors())
	assert.Len(t, tmpl.Packets(), 3)
	assert.Equal(t, 3, tmpl.Field(0).Count(model.NewBuffer([]byte{1})))
	assert.Equal(t, 2, tmpl.Field(1).Count(model.NewBuffer([]byte{7})))
	assert.Equal(t, 3, tmpl.Field(1).Total())
}

func TestTemplate_AbsorbMismatch(t *testing.T) {
	tmpl := New(descriptor(field{"A", 1}, field{"B", 2}))

	err := tmpl.Absorb(descriptor(field{"A", 1}))
	assert.ErrorIs(t, err, ErrStructureMismatch)

	err = tmpl.Absorb(descriptor(field{"A", 1}, field{"C", 2}))
	assert.ErrorIs(t, err, ErrStructureMismatch)

	// Rejected packets leave no trace.
	assert.Equal(t, 1, tmpl.Contributors())
	assert.Equal(t, 1, tmpl.Field(0).Total())
}

func TestTemplate_Equal(t *testing.T) {
	a := New(descriptor(field{"A", 1}))
	b := New(descriptor(field{"A", 9}))
	c := New(descriptor(field{"B", 1}))

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
	assert.False(t, a.Equal(nil))
}

func TestTemplate_Summary(t *testing.T) {
	tmpl := New(descriptor(field{"A", 1}, field{"B", 0}))
	for i := 1; i <= 11; i++ {
		require.NoError(t, tmpl.Absorb(descriptor(field{"A", 1}, field{"B", byte(i)})))
	}

	s := tmpl.Summary(10)
	assert.Equal(t, 12, s.Contributors)
	assert.Equal(t, "0-A|1-B", s.Signature)
	require.Len(t, s.Fields, 2)

	a := s.Fields[0]
	assert.Equal(t, "0-A", a.ID)
	assert.Equal(t, 1, a.DistinctValues)
	assert.Equal(t, []int{8}, a.Lengths)
	assert.Equal(t, "0x01", a.Top[0].Value)
	assert.Equal(t, 12, a.Top[0].Count)
	assert.False(t, a.Truncated())

	b := s.Fields[1]
	assert.Equal(t, 12, b.DistinctValues)
	assert.Len(t, b.Top, 10)
	assert.True(t, b.Truncated())
	assert.Equal(t, "0x00", b.Top[0].Value)
}

func TestTemplate_String(t *testing.T) {
	tmpl := New(descriptor(field{"A", 1}))
	tmpl.ID = 3
	assert.Equal(t, "id:3 packets: 1 fields: 1", tmpl.String())
}
