package report

import (
	"Go2NetTemplates/internal/model"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

func sampleReport() *model.Report {
	many := model.FieldSummary{Position: 1, ID: "1-IPv4.Identification", DistinctValues: 12, Lengths: []int{16}}
	for i := 0; i < 12; i++ {
		many.Top = append(many.Top, model.ValueCount{Value: fmt.Sprintf("0x%04x", i), Length: 16, Count: 12 - i})
	}
	return &model.Report{
		Source:  "capture.pcapng",
		Packets: 80,
		Templates: []model.TemplateSummary{
			{
				ID:           0,
				Signature:    "0-IPv4.Version|1-IPv4.Identification",
				Contributors: 78,
				Fields: []model.FieldSummary{
					{Position: 0, ID: "0-IPv4.Version", DistinctValues: 1, Lengths: []int{4}, Top: []model.ValueCount{{Value: "0x04", Length: 4, Count: 78}}},
					many,
				},
			},
			{
				ID:           1,
				Signature:    "0-payload",
				Contributors: 2,
				Fields: []model.FieldSummary{
					{Position: 0, ID: "0-payload", DistinctValues: 2, Lengths: []int{8, 24}, Top: []model.ValueCount{{Value: "0x01", Length: 8, Count: 1}, {Value: "0x010203", Length: 24, Count: 1}}},
				},
			},
		},
	}
}

func TestFieldCell(t *testing.T) {
	r := sampleReport()

	single := FieldCell(r.Templates[0].Fields[0])
	assert.Equal(t, "1 value of size: (4)\n0x04: 78", single)

	many := FieldCell(r.Templates[0].Fields[1])
	lines := strings.Split(many, "\n")
	require.Len(t, lines, 1+TopValues+1)
	assert.Equal(t, "12 values of sizes: (16)", lines[0])
	assert.Equal(t, "0x0000: 12", lines[1])
	assert.Equal(t, "0x0009: 3", lines[10])
	assert.Equal(t, TruncationMarker, lines[11])

	two := FieldCell(r.Templates[1].Fields[0])
	assert.True(t, strings.HasPrefix(two, "2 values of sizes: (8, 24)"))
	assert.NotContains(t, two, TruncationMarker)
}

func TestFieldCell_MarkerOnlyPastTenValues(t *testing.T) {
	top := []model.ValueCount{{Value: "0x01", Length: 8, Count: 5}, {Value: "0x02", Length: 8, Count: 4}}

	short := FieldCell(model.FieldSummary{ID: "0-A", DistinctValues: 3, Lengths: []int{8}, Top: top})
	assert.NotContains(t, short, TruncationMarker)
	assert.Len(t, strings.Split(short, "\n"), 3)

	long := FieldCell(model.FieldSummary{ID: "0-A", DistinctValues: TopValues + 1, Lengths: []int{8}, Top: top})
	assert.True(t, strings.HasSuffix(long, "\n"+TruncationMarker))
}

func TestTemplateTable(t *testing.T) {
	out := TemplateTable(sampleReport().Templates[0], 256)

	assert.Contains(t, out, "field ID")
	assert.Contains(t, out, "0-IPv4.Version")
	assert.Contains(t, out, "0x04: 78")
	assert.Contains(t, out, TruncationMarker)
	assert.NotContains(t, out, "0x000a")
	for _, line := range strings.Split(out, "\n") {
		assert.LessOrEqual(t, len([]rune(line)), 256)
	}
}

func TestTemplateTable_MaxWidth(t *testing.T) {
	tmpl := sampleReport().Templates[0]
	tmpl.Fields[0].Top[0].Value = "0x" + strings.Repeat("ab", 60)

	wide := TemplateTable(tmpl, 0)
	narrow := TemplateTable(tmpl, 60)
	assert.Greater(t, maxLineWidth(wide), 120)
	assert.Less(t, maxLineWidth(narrow), maxLineWidth(wide))
}

func maxLineWidth(s string) int {
	w := 0
	for _, line := range strings.Split(s, "\n") {
		if n := len([]rune(line)); n > w {
			w = n
		}
	}
	return w
}

func TestOverviewAndRender(t *testing.T) {
	r := sampleReport()
	overview := Overview(r)
	assert.Contains(t, overview, "capture.pcapng: 80 packets, 2 templates")
	assert.Contains(t, overview, "id:0 packets: 78 fields: 2")
	assert.Contains(t, overview, "id:1 packets: 2 fields: 1")

	rendered := Render(r, 256)
	assert.True(t, strings.HasPrefix(rendered, overview))
	assert.Contains(t, rendered, "template 1 (2 packets)")
}

func TestEncodeTemplate(t *testing.T) {
	r := sampleReport()
	data, err := EncodeTemplate(r.Source, r.Templates[1])
	require.NoError(t, err)

	var msg structpb.Struct
	require.NoError(t, proto.Unmarshal(data, &msg))
	m := msg.AsMap()
	assert.Equal(t, "capture.pcapng", m["source"])
	assert.Equal(t, "0-payload", m["signature"])
	assert.Equal(t, float64(2), m["contributors"])

	fields := m["fields"].([]any)
	require.Len(t, fields, 1)
	field := fields[0].(map[string]any)
	assert.Equal(t, []any{float64(8), float64(24)}, field["lengths"])
	top := field["top"].([]any)
	assert.Equal(t, "0x010203", top[1].(map[string]any)["value"])
}

func TestOverviewStruct(t *testing.T) {
	msg, err := OverviewStruct(sampleReport())
	require.NoError(t, err)

	out, err := protojson.Marshal(msg)
	require.NoError(t, err)
	assert.Contains(t, string(out), "capture.pcapng")
	assert.Len(t, msg.AsMap()["templates"].([]any), 2)
}

func TestFieldRows(t *testing.T) {
	ts := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	rows := fieldRows(sampleReport(), ts)
	require.Len(t, rows, 3)

	first := rows[0]
	require.Len(t, first, 11)
	assert.Equal(t, ts, first[0])
	assert.Equal(t, "capture.pcapng", first[1])
	assert.Equal(t, uint32(0), first[2])
	assert.Equal(t, uint64(78), first[4])
	assert.Equal(t, "0-IPv4.Version", first[6])
	assert.Equal(t, []uint32{4}, first[8])
	assert.Equal(t, []string{"0x04"}, first[9])
	assert.Equal(t, []uint64{78}, first[10])

	last := rows[2]
	assert.Equal(t, uint32(1), last[2])
	assert.Equal(t, []uint32{8, 24}, last[8])

	assert.Empty(t, fieldRows(&model.Report{}, ts))
}
