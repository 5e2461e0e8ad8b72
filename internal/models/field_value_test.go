package models

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValueUnmarshalTagsKinds(t *testing.T) {
	tests := []struct {
		name string
		json string
		want Value
	}{
		{"string", `"gold ring"`, TextValue("gold ring")},
		{"number", `42.5`, NumberValue(42.5)},
		{"boolean", `true`, BoolValue(true)},
		{"null", `null`, Value{Kind: ValueKindNull}},
		{"string list", `["a","b"]`, ListValue([]string{"a", "b"})},
		{"empty list", `[]`, ListValue([]string{})},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var v Value
			require.NoError(t, json.Unmarshal([]byte(tt.json), &v))
			assert.Equal(t, tt.want, v)
		})
	}
}

func TestValueUnmarshalRejectsMixedLists(t *testing.T) {
	var v Value
	assert.Error(t, json.Unmarshal([]byte(`["a", 2]`), &v))
}

func TestValueUnmarshalRejectsObjects(t *testing.T) {
	var v Value
	assert.Error(t, json.Unmarshal([]byte(`{"nested": true}`), &v))
}

func TestValueMarshalKeepsNaturalWireForm(t *testing.T) {
	tests := []struct {
		name  string
		value Value
		want  string
	}{
		{"text", TextValue("x"), `"x"`},
		{"number", NumberValue(7), `7`},
		{"boolean", BoolValue(false), `false`},
		{"null", Value{}, `null`},
		{"list", ListValue([]string{"a"}), `["a"]`},
		{"nil list", Value{Kind: ValueKindList}, `[]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.value)
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, string(data))
		})
	}
}

func TestValueString(t *testing.T) {
	assert.Equal(t, "ring", TextValue("ring").String())
	assert.Equal(t, "12.5", NumberValue(12.5).String())
	assert.Equal(t, "true", BoolValue(true).String())
	assert.Equal(t, "a, b", ListValue([]string{"a", "b"}).String())
	assert.Equal(t, "", Value{}.String())
}

func TestConformsToScalars(t *testing.T) {
	text := &InputField{Label: "Name", Type: FieldTypeText}
	number := &InputField{Label: "Weight", Type: FieldTypeNumber}
	checkbox := &InputField{Label: "Hallmarked", Type: FieldTypeCheckbox}
	file := &InputField{Label: "Photo", Type: FieldTypeFile}

	assert.NoError(t, TextValue("x").ConformsTo(text))
	assert.Error(t, NumberValue(1).ConformsTo(text))

	assert.NoError(t, NumberValue(1).ConformsTo(number))
	assert.Error(t, TextValue("1").ConformsTo(number))

	assert.NoError(t, BoolValue(true).ConformsTo(checkbox))
	assert.Error(t, TextValue("true").ConformsTo(checkbox))

	// File values travel as hosted URLs, so text conforms.
	assert.NoError(t, TextValue("https://host/img.png").ConformsTo(file))
	assert.Error(t, BoolValue(true).ConformsTo(file))
}

func TestConformsToNullAlwaysAccepted(t *testing.T) {
	for _, ft := range []FieldType{FieldTypeText, FieldTypeNumber, FieldTypeCheckbox, FieldTypeFile, FieldTypeSelect} {
		f := &InputField{Label: string(ft), Type: ft}
		assert.NoError(t, Value{Kind: ValueKindNull}.ConformsTo(f), string(ft))
	}
}

func TestConformsToSelectOptions(t *testing.T) {
	optID := uuid.New()
	field := &InputField{
		Label: "Metal",
		Type:  FieldTypeSelect,
		SelectOptions: []SelectOption{
			{ID: optID, Label: "Gold"},
			{ID: uuid.New(), Label: "Silver"},
		},
	}

	assert.NoError(t, TextValue("Gold").ConformsTo(field))
	assert.NoError(t, TextValue(optID.String()).ConformsTo(field))
	assert.Error(t, TextValue("Platinum").ConformsTo(field))

	assert.NoError(t, ListValue([]string{"Gold", "Silver"}).ConformsTo(field))
	assert.Error(t, ListValue([]string{"Gold", "Platinum"}).ConformsTo(field))

	assert.Error(t, NumberValue(1).ConformsTo(field))
}

func TestFieldValueRoundTrip(t *testing.T) {
	fv := FieldValue{FieldRef: uuid.New(), Value: NumberValue(99)}
	data, err := json.Marshal(fv)
	require.NoError(t, err)

	var decoded FieldValue
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, fv, decoded)
}
