package protocol

import (
	"Go2NetTemplates/internal/core/model"
	"errors"
	"fmt"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
)

// ErrUnsupported is returned for packets the decoder cannot start on.
var ErrUnsupported = errors.New("unsupported packet")

// PayloadID identifies application payload. It is a plain string rather
// than a FieldID since it belongs to no header.
const PayloadID = "payload"

// Parser turns a packet buffer into its ordered header fields.
type Parser interface {
	Parse(buf model.Buffer) (*model.PacketDescriptor, error)
}

// ParserFunc adapts a function to the Parser interface.
type ParserFunc func(buf model.Buffer) (*model.PacketDescriptor, error)

// Parse calls f(buf).
func (f ParserFunc) Parse(buf model.Buffer) (*model.PacketDescriptor, error) {
	return f(buf)
}

// Options configures the gopacket parser.
type Options struct {
	// FirstLayer is "auto", "ipv4", "ipv6" or "ethernet". Auto picks the IP
	// version from the first nibble, for buffers whose link header was trimmed.
	FirstLayer string
	Direction  model.Direction
}

// PacketParser decodes buffers with gopacket and slices each layer
// header into fields.
type PacketParser struct {
	first     gopacket.LayerType
	auto      bool
	direction model.Direction
}

// NewParser creates a parser for the given options.
func NewParser(opts Options) (*PacketParser, error) {
	p := &PacketParser{direction: opts.Direction}
	if p.direction == "" {
		p.direction = model.DirectionUp
	}
	switch opts.FirstLayer {
	case "", "auto":
		p.auto = true
	case "ipv4":
		p.first = layers.LayerTypeIPv4
	case "ipv6":
		p.first = layers.LayerTypeIPv6
	case "ethernet":
		p.first = layers.LayerTypeEthernet
	default:
		return nil, fmt.Errorf("unknown first layer: %s", opts.FirstLayer)
	}
	return p, nil
}

// Parse decodes buf into a packet descriptor.
func (p *PacketParser) Parse(buf model.Buffer) (*model.PacketDescriptor, error) {
	data := buf.Content
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty buffer", ErrUnsupported)
	}

	first := p.first
	if p.auto {
		switch data[0] >> 4 {
		case 4:
			first = layers.LayerTypeIPv4
		case 6:
			first = layers.LayerTypeIPv6
		default:
			return nil, fmt.Errorf("%w: IP version %d", ErrUnsupported, data[0]>>4)
		}
	}

	packet := gopacket.NewPacket(data, first, gopacket.Default)
	if errLayer := packet.ErrorLayer(); errLayer != nil && packet.TransportLayer() == nil {
		return nil, fmt.Errorf("failed to decode %s: %w", first, errLayer.Error())
	}

	pd := &model.PacketDescriptor{Length: buf.Len()}
	var parentPayload []byte
	for _, layer := range packet.Layers() {
		switch layer.LayerType() {
		case gopacket.LayerTypePayload, gopacket.LayerTypeDecodeFailure:
			// Bytes above the transport layer that gopacket could not decode
			// are kept as payload.
			pd.Fields = append(pd.Fields, p.field(PayloadID, model.NewBuffer(layer.LayerContents())))
			parentPayload = nil
			continue
		}

		contents := layer.LayerContents()
		recovered := false
		if len(contents) == 0 && len(layer.LayerPayload()) == 0 && len(parentPayload) > 0 {
			// Some decoders, like ICMPv6Echo, parse the bytes handed to them
			// without recording them.
			contents = parentPayload
			recovered = true
		}

		fields, rest, err := p.sliceLayer(layer.LayerType(), contents)
		if err != nil {
			return nil, err
		}
		pd.Fields = append(pd.Fields, fields...)
		if recovered && rest.Len() > 0 {
			pd.Fields = append(pd.Fields, p.field(PayloadID, rest))
		}
		parentPayload = layer.LayerPayload()
	}
	return pd, nil
}

// sliceLayer splits a layer header into its layout fields. Bits past the
// layout are returned as rest when the layout does not name them.
func (p *PacketParser) sliceLayer(layerType gopacket.LayerType, contents []byte) ([]model.FieldDescriptor, model.Buffer, error) {
	header := model.NewBuffer(contents)
	lay, ok := layouts[layerType]
	if !ok {
		id := model.FieldID{Layer: layerType.String(), Name: "Header"}
		return []model.FieldDescriptor{p.field(id, header)}, model.Buffer{}, nil
	}

	fields := make([]model.FieldDescriptor, 0, len(lay.fields)+1)
	offset := 0
	for _, spec := range lay.fields {
		value, err := header.Slice(offset, spec.bits)
		if err != nil {
			return nil, model.Buffer{}, fmt.Errorf("%s.%s: %w", lay.name, spec.name, err)
		}
		fields = append(fields, p.field(model.FieldID{Layer: lay.name, Name: spec.name}, value))
		offset += spec.bits
	}

	rest := model.Buffer{}
	if n := header.Len() - offset; n > 0 {
		var err error
		if rest, err = header.Slice(offset, n); err != nil {
			return nil, model.Buffer{}, fmt.Errorf("%s: %w", lay.name, err)
		}
		if lay.rest != "" {
			fields = append(fields, p.field(model.FieldID{Layer: lay.name, Name: lay.rest}, rest))
			rest = model.Buffer{}
		}
	}
	return fields, rest, nil
}

func (p *PacketParser) field(id any, value model.Buffer) model.FieldDescriptor {
	return model.FieldDescriptor{
		ID:        id,
		Value:     value,
		Length:    value.Len(),
		Direction: p.direction,
	}
}
