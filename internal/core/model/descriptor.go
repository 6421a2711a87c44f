package model

import "fmt"

// Direction is the transmission direction of a field.
type Direction string

const (
	DirectionUp   Direction = "up"
	DirectionDown Direction = "down"
	DirectionBi   Direction = "bi"
)

// ParseDirection accepts "up", "down" or "bi"; empty means up.
func ParseDirection(s string) (Direction, error) {
	switch Direction(s) {
	case "", DirectionUp:
		return DirectionUp, nil
	case DirectionDown, DirectionBi:
		return Direction(s), nil
	default:
		return "", fmt.Errorf("unknown direction: %s", s)
	}
}

// FieldID names a header field inside a protocol layer.
type FieldID struct {
	Layer string
	Name  string
}

// Value returns the flat form used in template signatures.
func (id FieldID) Value() string {
	return id.Layer + "." + id.Name
}

func (id FieldID) String() string {
	return id.Value()
}

// FieldDescriptor is one decoded header field.
type FieldDescriptor struct {
	// ID is either a value exposing Value() string, like FieldID,
	// or a plain scalar such as a string.
	ID        any
	Value     Buffer
	Length    int // bits
	Direction Direction
}

// PacketDescriptor is the ordered field sequence of one packet.
type PacketDescriptor struct {
	Fields []FieldDescriptor
	Length int // bits
}

type valuer interface {
	Value() string
}

// NormalizeID flattens a field identifier into a string key. Identifiers
// exposing a nested value are reduced to it, anything else uses its
// direct string form.
func NormalizeID(id any) string {
	switch v := id.(type) {
	case valuer:
		return v.Value()
	case fmt.Stringer:
		return v.String()
	case string:
		return v
	default:
		return fmt.Sprint(id)
	}
}
