package model

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// JobPosting is one job extracted from a careers page by the LLM.
// Keys the model adds beyond the four known ones are kept in Extra.
type JobPosting struct {
	Role        string
	Experience  string
	Skills      []string
	Description string
	Extra       map[string]json.RawMessage
}

// Outreach pairs an extracted job with the links chosen for it and the drafted email.
type Outreach struct {
	Job   JobPosting
	Links []string
	Email string
}

// UnmarshalJSON decodes a job object leniently: skills may be a list or a
// single scalar, and non-string scalars are kept as their JSON text.
func (j *JobPosting) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	if fields == nil {
		return fmt.Errorf("job posting must be a JSON object")
	}

	var out JobPosting
	for key, raw := range fields {
		switch key {
		case "role":
			out.Role = textValue(raw)
		case "experience":
			out.Experience = textValue(raw)
		case "description":
			out.Description = textValue(raw)
		case "skills":
			out.Skills = listValue(raw)
		default:
			if out.Extra == nil {
				out.Extra = make(map[string]json.RawMessage)
			}
			out.Extra[key] = raw
		}
	}

	*j = out
	return nil
}

// MarshalJSON writes the known keys followed by any extra keys.
func (j JobPosting) MarshalJSON() ([]byte, error) {
	fields := make(map[string]any, 4+len(j.Extra))
	for k, v := range j.Extra {
		fields[k] = v
	}
	skills := j.Skills
	if skills == nil {
		skills = []string{}
	}
	fields["role"] = j.Role
	fields["experience"] = j.Experience
	fields["skills"] = skills
	fields["description"] = j.Description
	return json.Marshal(fields)
}

// String renders the job as indented JSON; this is the form embedded in prompts.
func (j JobPosting) String() string {
	b, err := json.MarshalIndent(j, "", "  ")
	if err != nil {
		return fmt.Sprintf("%s (%s)", j.Role, j.Experience)
	}
	return string(b)
}

// textValue returns a JSON string's contents, or the compact JSON text of any other value.
func textValue(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	if bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return ""
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return string(raw)
	}
	return buf.String()
}

// listValue coerces skills to a list: arrays keep their order and items
// (null items are dropped), a scalar becomes a single element, null yields nil.
func listValue(raw json.RawMessage) []string {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil
	}
	if trimmed[0] != '[' {
		if s := textValue(raw); s != "" {
			return []string{s}
		}
		return nil
	}

	var items []json.RawMessage
	if err := json.Unmarshal(trimmed, &items); err != nil {
		return []string{textValue(raw)}
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if bytes.Equal(bytes.TrimSpace(item), []byte("null")) {
			continue
		}
		out = append(out, textValue(item))
	}
	return out
}
