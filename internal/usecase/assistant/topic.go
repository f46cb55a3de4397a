package assistant

import "strings"

// Topic is the structured input for article generation. Fields are labeled,
// order-preserving and optional; blank fields are omitted from the rendered
// topic string.
type Topic struct {
	Name     string
	Role     string
	Focus    string
	Audience string
}

// IsEmpty reports whether every field is blank.
func (t Topic) IsEmpty() bool {
	return t.String() == ""
}

// String renders the topic as "Label: value" segments joined by "; ",
// in declaration order, omitting blank fields.
func (t Topic) String() string {
	fields := []struct {
		label string
		value string
	}{
		{"Name", t.Name},
		{"Role", t.Role},
		{"Focus", t.Focus},
		{"Audience", t.Audience},
	}

	var parts []string
	for _, f := range fields {
		if v := strings.TrimSpace(f.value); v != "" {
			parts = append(parts, f.label+": "+v)
		}
	}
	return strings.Join(parts, "; ")
}
