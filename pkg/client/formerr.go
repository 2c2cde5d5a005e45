package client

// FormErrors maps a failed mutation onto a form: per-field messages keyed
// by field name, plus root-level messages with no field to attach to.
type FormErrors struct {
	Fields map[string][]string
	Root   []string
}

// HasErrors reports whether anything was extracted.
func (f FormErrors) HasErrors() bool {
	return len(f.Fields) > 0 || len(f.Root) > 0
}

// ExtractFormErrors pulls field errors out of an API error. Three shapes
// are recognized: an object whose values are message arrays (or single
// strings) keyed by field, a bare array of messages (all root), and a
// bare string (root). The structured {code, message, details} shape is
// unwrapped first, its details treated as the field dict.
func ExtractFormErrors(err error) FormErrors {
	out := FormErrors{Fields: make(map[string][]string)}

	apiErr, ok := AsAPIError(err)
	if !ok {
		out.Root = append(out.Root, err.Error())
		return out
	}

	payload := apiErr.Payload
	if obj, ok := payload.(map[string]any); ok {
		if details, ok := obj["details"].(map[string]any); ok {
			payload = details
		}
	}

	switch v := payload.(type) {
	case map[string]any:
		for field, raw := range v {
			msgs := asMessages(raw)
			if len(msgs) == 0 {
				continue
			}
			if field == "non_field_errors" || field == "detail" {
				out.Root = append(out.Root, msgs...)
				continue
			}
			out.Fields[field] = msgs
		}
	case []any:
		out.Root = append(out.Root, asMessages(v)...)
	case string:
		if v != "" {
			out.Root = append(out.Root, v)
		}
	}

	if !out.HasErrors() && apiErr.Message != "" {
		out.Root = append(out.Root, apiErr.Message)
	}
	return out
}

func asMessages(raw any) []string {
	switch v := raw.(type) {
	case string:
		if v == "" {
			return nil
		}
		return []string{v}
	case []any:
		var msgs []string
		for _, item := range v {
			if s, ok := item.(string); ok && s != "" {
				msgs = append(msgs, s)
			}
		}
		return msgs
	}
	return nil
}
