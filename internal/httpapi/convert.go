package httpapi

import (
	"encoding/json"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/BrandonDHaskell/gatelog/server/internal/gatelog/types"
)

func entryRequestFromStruct(st *structpb.Struct) types.EntryRequest {
	str := func(k string) string { return st.GetFields()[k].GetStringValue() }

	return types.EntryRequest{
		PersonID:      str("person_id"),
		Name:          str("name"),
		IDNumber:      str("id_number"),
		Role:          str("role"),
		VehicleNumber: str("vehicle_number"),
		ActionType:    types.ActionType(str("action_type")),
		Note:          str("note"),
	}
}

// toStruct converts v through its JSON form so protobuf clients see the
// same keys as JSON clients.
func toStruct(v any) (*structpb.Struct, error) {
	var m map[string]any
	if err := jsonRoundTrip(v, &m); err != nil {
		return nil, err
	}
	return structpb.NewStruct(m)
}

func toListValue(logs []types.EntryLog) (*structpb.ListValue, error) {
	var items []any
	if err := jsonRoundTrip(logs, &items); err != nil {
		return nil, err
	}
	return structpb.NewList(items)
}

func jsonRoundTrip(in, out any) error {
	b, err := json.Marshal(in)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, out)
}
