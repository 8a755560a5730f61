package store

import (
	"reflect"

	"mtys/internal/utils"
	"mtys/pkg/types"
)

// updatableRequestFields lists the diffable fields in declaration order,
// under their caller-facing names. TalepNo is create-only and Guncelleyen
// records who acted, so neither belongs in a diff.
func updatableRequestFields() []string {
	fields := utils.StructTagValues(types.RequestInput{}, utils.FieldTag)
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if f == "talepNo" || f == "guncelleyen" {
			continue
		}
		out = append(out, f)
	}
	return out
}

// DiffFields returns one change per field whose value differs between the two
// maps, in the order given. Comparison is value equality on the normalized
// stored representation — callers normalize before diffing.
func DiffFields(oldValues, newValues map[string]any, order []string) []types.FieldChange {
	changes := make([]types.FieldChange, 0)
	for _, field := range order {
		oldValue, newValue := oldValues[field], newValues[field]
		if !reflect.DeepEqual(oldValue, newValue) {
			changes = append(changes, types.FieldChange{
				Field:    field,
				OldValue: oldValue,
				NewValue: newValue,
			})
		}
	}
	return changes
}

// DiffRequests compares two request snapshots over the updatable fields.
func DiffRequests(old, updated *types.Request) []types.FieldChange {
	return DiffFields(
		utils.StructToMap(old, utils.FieldTag),
		utils.StructToMap(updated, utils.FieldTag),
		updatableRequestFields(),
	)
}

// CreateChanges logs every stored field of a new record as {field, nil, value}.
func CreateChanges(record *types.Request) []types.FieldChange {
	fields := utils.StructTagValues(types.Request{}, utils.FieldTag)
	values := utils.StructToMap(record, utils.FieldTag)

	changes := make([]types.FieldChange, 0, len(fields))
	for _, field := range fields {
		changes = append(changes, types.FieldChange{
			Field:    field,
			OldValue: nil,
			NewValue: values[field],
		})
	}
	return changes
}

// DeleteChanges is the single synthetic entry a deletion logs: the display
// number of the removed record.
func DeleteChanges(talepNo string) []types.FieldChange {
	return []types.FieldChange{{Field: "talepNo", OldValue: talepNo, NewValue: nil}}
}
