package utils

import (
	"fmt"
	"reflect"
)

// Tags used across the codebase: "db" for storage columns, "json" for the
// caller-facing field names that audit diffs report.
const (
	ColumnTag = "db"
	FieldTag  = "json"
)

// StructTagValues returns the tag values of the exported fields of input, in
// declaration order. Fields without the tag, or tagged "-", are skipped.
func StructTagValues(input any, tag string) []string {

	targetValue := reflect.ValueOf(input)
	if targetValue.Kind() == reflect.Ptr {
		targetValue = targetValue.Elem()
	}

	if targetValue.Kind() != reflect.Struct {
		panic("input must be a pointer to a struct or a struct")
	}

	targetType := targetValue.Type()

	result := make([]string, 0, targetValue.NumField())

	for i := 0; i < targetValue.NumField(); i++ {

		if targetType.Field(i).PkgPath != "" {
			continue
		}

		tagValue := tagName(targetType.Field(i), tag)
		if tagValue == "" || tagValue == "-" {
			continue
		}

		result = append(result, tagValue)

	}

	return result

}

// StructToMap maps tag value to field value for the exported fields of input.
func StructToMap(input any, tag string) map[string]any {

	result := make(map[string]any)

	itemValue := reflect.ValueOf(input)
	if itemValue.Kind() == reflect.Ptr {
		itemValue = itemValue.Elem()
	}

	if itemValue.Kind() != reflect.Struct {
		panic("input must be a pointer to a struct or a struct")
	}

	itemType := itemValue.Type()

	for i := 0; i < itemValue.NumField(); i++ {

		if itemType.Field(i).PkgPath != "" {
			continue
		}

		tagValue := tagName(itemType.Field(i), tag)
		if tagValue == "" || tagValue == "-" {
			continue
		}

		result[tagValue] = itemValue.Field(i).Interface()

	}

	return result

}

// tagName strips tag options (",omitempty" and friends).
func tagName(field reflect.StructField, tag string) string {
	value := field.Tag.Get(tag)
	for i := 0; i < len(value); i++ {
		if value[i] == ',' {
			return value[:i]
		}
	}
	return value
}

func ErrorWrapOrNil(err error, msg string) error {
	if err == nil {
		return nil
	}

	if msg == "" {
		return err
	}

	return fmt.Errorf("%s: %w", msg, err)

}
