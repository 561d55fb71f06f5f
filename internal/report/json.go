package report

import (
	"encoding/json"
	"io"
)

// WriteJSON renders the structured machine-readable form. Field names
// are stable; findings are already in deterministic order, so the
// output of two identical runs is byte-identical.
func WriteJSON(w io.Writer, rep *Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rep)
}
