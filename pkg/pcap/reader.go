package pcap

import (
	"Go2NetTemplates/internal/core/model"
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/google/gopacket"
	"github.com/google/gopacket/pcapgo"
)

// EthernetHeaderLength is the default number of bytes trimmed from each frame.
const EthernetHeaderLength = 14

// ErrShortFrame is returned for a frame shorter than the header offset.
var ErrShortFrame = errors.New("frame shorter than header offset")

var pcapngMagic = []byte{0x0a, 0x0d, 0x0d, 0x0a}

type packetDataSource interface {
	ReadPacketData() ([]byte, gopacket.CaptureInfo, error)
}

// Reader reads packets from a pcap or pcapng file.
type Reader struct {
	file         *os.File
	source       packetDataSource
	headerOffset int
}

// NewReader opens filePath, detecting the capture format from its magic number.
func NewReader(filePath string, headerOffset int) (*Reader, error) {
	if headerOffset < 0 {
		return nil, fmt.Errorf("negative header offset: %d", headerOffset)
	}
	file, err := os.Open(filePath)
	if err != nil {
		return nil, err
	}

	br := bufio.NewReader(file)
	magic, err := br.Peek(4)
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("failed to read capture header of '%s': %w", filePath, err)
	}

	var source packetDataSource
	if bytes.Equal(magic, pcapngMagic) {
		source, err = pcapgo.NewNgReader(br, pcapgo.DefaultNgReaderOptions)
	} else {
		source, err = pcapgo.NewReader(br)
	}
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("failed to open capture '%s': %w", filePath, err)
	}
	return &Reader{file: file, source: source, headerOffset: headerOffset}, nil
}

// Close closes the underlying file.
func (r *Reader) Close() error {
	return r.file.Close()
}

// Next returns the next frame with the header trimmed, or io.EOF.
func (r *Reader) Next() (model.Buffer, error) {
	data, _, err := r.source.ReadPacketData()
	if err != nil {
		return model.Buffer{}, err
	}
	if len(data) < r.headerOffset {
		return model.Buffer{}, fmt.Errorf("%w: %d bytes, offset %d", ErrShortFrame, len(data), r.headerOffset)
	}
	// Copy so the buffer does not alias the reader's scratch space.
	content := make([]byte, len(data)-r.headerOffset)
	copy(content, data[r.headerOffset:])
	return model.NewBuffer(content), nil
}

// ReadPackets reads every remaining frame in file order.
func (r *Reader) ReadPackets() ([]model.Buffer, error) {
	var packets []model.Buffer
	for {
		buf, err := r.Next()
		if errors.Is(err, io.EOF) {
			return packets, nil
		}
		if err != nil {
			return nil, fmt.Errorf("frame %d: %w", len(packets), err)
		}
		packets = append(packets, buf)
	}
}

// ReadFile reads all frames of a capture file.
func ReadFile(filePath string, headerOffset int) ([]model.Buffer, error) {
	r, err := NewReader(filePath, headerOffset)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return r.ReadPackets()
}
