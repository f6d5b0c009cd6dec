package types

import "time"

// Person is a directory card for someone who passes the gate.
// IDNumber is the natural key callers use to decide whether a submission
// refers to an existing person; storage does not enforce it.
type Person struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	IDNumber      string    `json:"idNumber"`
	Role          string    `json:"role,omitempty"`
	VehicleNumber string    `json:"vehicleNumber,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}

// NewPerson holds the caller-supplied fields of a person. The store assigns
// ID and CreatedAt.
type NewPerson struct {
	Name          string `json:"name"`
	IDNumber      string `json:"id_number"`
	Role          string `json:"role,omitempty"`
	VehicleNumber string `json:"vehicle_number,omitempty"`
}

// PersonPatch carries a partial update. Nil fields are left untouched; an
// empty string clears an optional field.
type PersonPatch struct {
	Name          *string `json:"name,omitempty"`
	IDNumber      *string `json:"id_number,omitempty"`
	Role          *string `json:"role,omitempty"`
	VehicleNumber *string `json:"vehicle_number,omitempty"`
}

func (p PersonPatch) IsEmpty() bool {
	return p.Name == nil && p.IDNumber == nil && p.Role == nil && p.VehicleNumber == nil
}

// Apply merges the patch into dst field by field.
func (p PersonPatch) Apply(dst *Person) {
	if p.Name != nil {
		dst.Name = *p.Name
	}
	if p.IDNumber != nil {
		dst.IDNumber = *p.IDNumber
	}
	if p.Role != nil {
		dst.Role = *p.Role
	}
	if p.VehicleNumber != nil {
		dst.VehicleNumber = *p.VehicleNumber
	}
}
