package model

// ValueCount is one observed value of a field and how often it was seen.
type ValueCount struct {
	Value  string `json:"value"`
	Length int    `json:"length"`
	Count  int    `json:"count"`
}

// FieldSummary is the read-only view of one template field position.
type FieldSummary struct {
	Position       int          `json:"position"`
	ID             string       `json:"id"`
	DistinctValues int          `json:"distinct_values"`
	Lengths        []int        `json:"lengths"`
	Top            []ValueCount `json:"top"`
}

// Truncated reports whether Top omits some of the distinct values.
func (f FieldSummary) Truncated() bool {
	return f.DistinctValues > len(f.Top)
}

// TemplateSummary is the read-only view of a ranked template.
type TemplateSummary struct {
	ID           int            `json:"id"`
	Signature    string         `json:"signature"`
	Contributors int            `json:"contributors"`
	Fields       []FieldSummary `json:"fields"`
}

// Report is the outcome of one classification run.
type Report struct {
	Source    string            `json:"source"`
	Packets   int               `json:"packets"`
	Templates []TemplateSummary `json:"templates"`
}

// Template returns the summary with the given id.
func (r *Report) Template(id int) (TemplateSummary, bool) {
	for _, t := range r.Templates {
		if t.ID == id {
			return t, true
		}
	}
	return TemplateSummary{}, false
}
