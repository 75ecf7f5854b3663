package dto

import "encoding/json"

/* =======================================================
   OPTIONAL + NULLABLE HELPERS (PATCH tri-state)
   ======================================================= */

// Optional records whether a key was present in the PATCH body at all.
type Optional[T any] struct {
	Present bool
	Value   T
}

func (o *Optional[T]) UnmarshalJSON(b []byte) error {
	o.Present = true
	var v T
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	o.Value = v
	return nil
}

// NullableString separates an explicit null from a value.
type NullableString struct {
	Valid bool
	Value string
}

func (ns *NullableString) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		ns.Valid = false
		ns.Value = ""
		return nil
	}
	ns.Valid = true
	return json.Unmarshal(b, &ns.Value)
}
