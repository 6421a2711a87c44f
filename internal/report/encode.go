package report

import (
	"Go2NetTemplates/internal/model"

	"google.golang.org/protobuf/types/known/structpb"
)

// SummaryStruct converts a template summary to a protobuf Struct so it can
// travel over NATS or be served as protojson.
func SummaryStruct(source string, t model.TemplateSummary) (*structpb.Struct, error) {
	fields := make([]any, len(t.Fields))
	for i, f := range t.Fields {
		lengths := make([]any, len(f.Lengths))
		for j, l := range f.Lengths {
			lengths[j] = l
		}
		top := make([]any, len(f.Top))
		for j, vc := range f.Top {
			top[j] = map[string]any{
				"value":  vc.Value,
				"length": vc.Length,
				"count":  vc.Count,
			}
		}
		fields[i] = map[string]any{
			"position":        f.Position,
			"id":              f.ID,
			"distinct_values": f.DistinctValues,
			"lengths":         lengths,
			"top":             top,
		}
	}
	return structpb.NewStruct(map[string]any{
		"source":       source,
		"id":           t.ID,
		"signature":    t.Signature,
		"contributors": t.Contributors,
		"fields":       fields,
	})
}

// OverviewStruct lists the templates of a report without their fields.
func OverviewStruct(r *model.Report) (*structpb.Struct, error) {
	templates := make([]any, len(r.Templates))
	for i, t := range r.Templates {
		templates[i] = map[string]any{
			"id":           t.ID,
			"signature":    t.Signature,
			"contributors": t.Contributors,
			"fields":       len(t.Fields),
		}
	}
	return structpb.NewStruct(map[string]any{
		"source":    r.Source,
		"packets":   r.Packets,
		"templates": templates,
	})
}
