package types

import "time"

type ActionType string

const (
	ActionEntry ActionType = "entry"
	ActionExit  ActionType = "exit"

	// ActionAll is only meaningful in FilterOptions.
	ActionAll ActionType = "all"
)

func (a ActionType) Valid() bool {
	return a == ActionEntry || a == ActionExit
}

// EntryLog records one pass through the gate. The person fields are a
// snapshot taken when the log was created; they do not follow later edits
// of the Person.
type EntryLog struct {
	ID            string     `json:"id"`
	PersonID      string     `json:"personId"`
	PersonName    string     `json:"personName"`
	IDNumber      string     `json:"idNumber"`
	Role          string     `json:"role,omitempty"`
	VehicleNumber string     `json:"vehicleNumber,omitempty"`
	ActionType    ActionType `json:"actionType"`
	Timestamp     time.Time  `json:"timestamp"`
	Note          string     `json:"note,omitempty"`
}

// NewEntryLog holds the caller-supplied fields of a log. The store assigns
// ID and Timestamp.
type NewEntryLog struct {
	PersonID      string
	PersonName    string
	IDNumber      string
	Role          string
	VehicleNumber string
	ActionType    ActionType
	Note          string
}

// EntryLogPatch carries a partial update of a log. Nil fields are left
// untouched.
type EntryLogPatch struct {
	PersonName    *string     `json:"person_name,omitempty"`
	IDNumber      *string     `json:"id_number,omitempty"`
	Role          *string     `json:"role,omitempty"`
	VehicleNumber *string     `json:"vehicle_number,omitempty"`
	ActionType    *ActionType `json:"action_type,omitempty"`
	Timestamp     *time.Time  `json:"timestamp,omitempty"`
	Note          *string     `json:"note,omitempty"`
}

func (p EntryLogPatch) IsEmpty() bool {
	return p.PersonName == nil && p.IDNumber == nil && p.Role == nil &&
		p.VehicleNumber == nil && p.ActionType == nil && p.Timestamp == nil && p.Note == nil
}

// Apply merges the patch into dst field by field.
func (p EntryLogPatch) Apply(dst *EntryLog) {
	if p.PersonName != nil {
		dst.PersonName = *p.PersonName
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
	if p.ActionType != nil {
		dst.ActionType = *p.ActionType
	}
	if p.Timestamp != nil {
		dst.Timestamp = *p.Timestamp
	}
	if p.Note != nil {
		dst.Note = *p.Note
	}
}
