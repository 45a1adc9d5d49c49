package collect

import (
	"encoding/json"
	"io"
)

// Namespace is the single top-level key the report is wrapped under.
const Namespace = "ceph"

// Report maps report keys to their collected payloads. It is assembled
// incrementally during one run and serialized exactly once.
type Report map[string]any

// Write serializes the report wrapped under the namespace key as one JSON
// document on w. Collection errors abort before this point, so nothing
// partial is ever written.
func (r Report) Write(w io.Writer) error {
	return json.NewEncoder(w).Encode(map[string]Report{Namespace: r})
}
