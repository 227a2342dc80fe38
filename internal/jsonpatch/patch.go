package jsonpatch

import (
	json "github.com/goccy/go-json"
)

var emptyPatch = []byte("[]")

// Snapshot marshals v into the generic form Diff works on, keeping the raw bytes.
func Snapshot(v interface{}) (raw []byte, doc interface{}, err error) {
	raw, err = json.Marshal(v)
	if err != nil {
		return nil, nil, err
	}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, nil, err
	}
	return raw, doc, nil
}

// Between returns the patch taking before to after and the one taking it back.
func Between(before, after interface{}) (fwd, bwd []byte, err error) {
	f, b := DiffBoth(before, after, "")
	if fwd, err = marshalOps(f); err != nil {
		return nil, nil, err
	}
	if bwd, err = marshalOps(b); err != nil {
		return nil, nil, err
	}
	return fwd, bwd, nil
}

func marshalOps(ops []map[string]interface{}) ([]byte, error) {
	if len(ops) == 0 {
		return emptyPatch, nil
	}
	return json.Marshal(ops)
}
