package models

import (
	"time"

	"github.com/google/uuid"
)

// FieldType enumerates the supported input field types.
type FieldType string

const (
	FieldTypeText     FieldType = "text"
	FieldTypeNumber   FieldType = "number"
	FieldTypeCheckbox FieldType = "checkbox"
	FieldTypeFile     FieldType = "file"
	FieldTypeSelect   FieldType = "select"
)

// ValidFieldType reports whether t is one of the supported field types.
func ValidFieldType(t FieldType) bool {
	switch t {
	case FieldTypeText, FieldTypeNumber, FieldTypeCheckbox, FieldTypeFile, FieldTypeSelect:
		return true
	}
	return false
}

// NumberSubType refines how a number field is rendered and formatted.
type NumberSubType string

const (
	NumberSubTypeCurrency NumberSubType = "currency"
	NumberSubTypeWeight   NumberSubType = "weight"
	NumberSubTypePhone    NumberSubType = "phone"
	NumberSubTypePlain    NumberSubType = "plain"
)

// FileType refines what a file field accepts.
type FileType string

const (
	FileTypeImage FileType = "image"
	FileTypePDF   FileType = "pdf"
)

// Section names the three rendering contexts a field can appear in.
type Section string

const (
	SectionInventory Section = "inventory"
	SectionOrders    Section = "orders"
	SectionSold      Section = "sold"
)

// SelectOption is one entry of a select field's dropdown.
type SelectOption struct {
	ID    uuid.UUID `json:"id"`
	Label string    `json:"label"`
}

// OverviewConfig controls whether a field also appears in the condensed
// overview table of a section, and at which position.
type OverviewConfig struct {
	Show     bool `json:"show"`
	SerialNo *int `json:"serialNo,omitempty"`
}

// SectionConfig controls visibility and ordering of a field within one section.
// serialNo ordering is a display concern only; ties are not an error.
type SectionConfig struct {
	Show     bool           `json:"show"`
	SerialNo *int           `json:"serialNo,omitempty"`
	Overview OverviewConfig `json:"overview"`
}

// ShowIn holds the per-section configuration of a field.
type ShowIn struct {
	Inventory SectionConfig `json:"inventory"`
	Orders    SectionConfig `json:"orders"`
	Sold      SectionConfig `json:"sold"`
}

// InputField is a user-defined form field. Labels are globally unique
// (case-sensitive). Sub-type attributes are only meaningful for their
// matching type and are stripped on write otherwise.
type InputField struct {
	ID            uuid.UUID      `json:"id"`
	Label         string         `json:"label"`
	Type          FieldType      `json:"type"`
	NumberSubType *NumberSubType `json:"numberSubType,omitempty"`
	FileType      *FileType      `json:"fileType,omitempty"`
	SelectOptions []SelectOption `json:"selectOptions"`
	ShowIn        ShowIn         `json:"showIn"`
	IsActive      bool           `json:"isActive"`
	CreatedAt     time.Time      `json:"createdAt"`
	UpdatedAt     time.Time      `json:"updatedAt"`
}

// HasOption reports whether the given string names one of the field's select
// options, by option id or by option label.
func (f *InputField) HasOption(s string) bool {
	for _, opt := range f.SelectOptions {
		if opt.ID.String() == s || opt.Label == s {
			return true
		}
	}
	return false
}
