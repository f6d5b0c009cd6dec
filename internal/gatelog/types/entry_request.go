package types

// EntryRequest is a submission of the entry/exit form. Either PersonID
// names an existing person, or Name and IDNumber describe the visitor.
type EntryRequest struct {
	PersonID      string     `json:"person_id,omitempty"`
	Name          string     `json:"name,omitempty"`
	IDNumber      string     `json:"id_number,omitempty"`
	Role          string     `json:"role,omitempty"`
	VehicleNumber string     `json:"vehicle_number,omitempty"`
	ActionType    ActionType `json:"action_type"`
	Note          string     `json:"note,omitempty"`
}

type EntryResponse struct {
	Log           EntryLog `json:"log"`
	PersonCreated bool     `json:"person_created"`
}
