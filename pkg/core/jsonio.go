package core

import (
	"encoding/json"
	"io"
)

// MarshalReport pretty-prints a report as JSON for pipelines.
func MarshalReport(w io.Writer, r *Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// UnmarshalReport decodes report JSON, as written by the JSON renderer.
func UnmarshalReport(r io.Reader) (*Report, error) {
	var rep Report
	if err := json.NewDecoder(r).Decode(&rep); err != nil {
		return nil, err
	}
	return &rep, nil
}
