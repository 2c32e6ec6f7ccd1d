package model

import (
	"fmt"
	"sort"
	"strconv"
)

type FieldType string

const (
	String  FieldType = "String"
	Boolean FieldType = "boolean"
	Int     FieldType = "int"
	Long    FieldType = "long"
)

const (
	DebugBuildType   = "debug"
	ReleaseBuildType = "release"

	FieldDebug         = "DEBUG"
	FieldApplicationID = "APPLICATION_ID"
	FieldBuildType     = "BUILD_TYPE"
	FieldVersionCode   = "VERSION_CODE"
	FieldVersionName   = "VERSION_NAME"

	DefaultAPIKeyField = "GOOGLE_BOOKS_API_KEY"
)

func ParseFieldType(s string) (FieldType, error) {
	switch FieldType(s) {
	case String, Boolean, Int, Long:
		return FieldType(s), nil
	case "Boolean":
		return Boolean, nil
	case "Integer":
		return Int, nil
	case "Long":
		return Long, nil
	}
	return "", fmt.Errorf("unsupported build config field type '%s'. Supported types are String, boolean, int and long", s)
}

// Field is a single generated constant. Value holds the decoded value, not a source literal.
type Field struct {
	Type   FieldType `json:"type"`
	Name   string    `json:"name"`
	Value  string    `json:"value"`
	Secret bool      `json:"secret,omitempty"`
}

// Validate checks that the value parses as the declared type.
func (f Field) Validate() error {
	switch f.Type {
	case String:
		return nil
	case Boolean:
		if _, err := strconv.ParseBool(f.Value); err != nil {
			return fmt.Errorf("field %s: '%s' is not a boolean", f.Name, f.Value)
		}
	case Int:
		if _, err := strconv.ParseInt(f.Value, 10, 32); err != nil {
			return fmt.Errorf("field %s: '%s' is not an int", f.Name, f.Value)
		}
	case Long:
		if _, err := strconv.ParseInt(f.Value, 10, 64); err != nil {
			return fmt.Errorf("field %s: '%s' is not a long", f.Name, f.Value)
		}
	default:
		return fmt.Errorf("field %s: unsupported type '%s'", f.Name, f.Type)
	}
	return nil
}

type BuildConfig struct {
	// Package is the Go package name of the generated file.
	Package string `json:"package"`
	// Namespace is the Android namespace, used as the Java package.
	Namespace     string  `json:"namespace"`
	ApplicationID string  `json:"applicationId"`
	BuildType     string  `json:"buildType"`
	VersionCode   int     `json:"versionCode"`
	VersionName   string  `json:"versionName"`
	Fields        []Field `json:"fields,omitempty"`
}

// AddField appends a custom field. A later field with the same name replaces the earlier one.
func (bc *BuildConfig) AddField(field Field) *BuildConfig {
	for i := range bc.Fields {
		if bc.Fields[i].Name == field.Name {
			bc.Fields[i] = field
			return bc
		}
	}
	bc.Fields = append(bc.Fields, field)
	return bc
}

func (bc *BuildConfig) Field(name string) (Field, bool) {
	for _, f := range bc.AllFields() {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

func (bc *BuildConfig) IsDebug() bool {
	return bc.BuildType == DebugBuildType
}

// AllFields returns the standard Android fields followed by the custom fields sorted by name.
// A custom field named like a standard one overrides it in place.
func (bc *BuildConfig) AllFields() []Field {
	standard := []Field{
		{Type: Boolean, Name: FieldDebug, Value: strconv.FormatBool(bc.IsDebug())},
		{Type: String, Name: FieldApplicationID, Value: bc.ApplicationID},
		{Type: String, Name: FieldBuildType, Value: bc.BuildType},
		{Type: Int, Name: FieldVersionCode, Value: strconv.Itoa(bc.VersionCode)},
		{Type: String, Name: FieldVersionName, Value: bc.VersionName},
	}
	custom := make([]Field, 0, len(bc.Fields))
	for _, f := range bc.Fields {
		replaced := false
		for i := range standard {
			if standard[i].Name == f.Name {
				standard[i] = f
				replaced = true
				break
			}
		}
		if !replaced {
			custom = append(custom, f)
		}
	}
	sort.SliceStable(custom, func(i, j int) bool {
		return custom[i].Name < custom[j].Name
	})
	return append(standard, custom...)
}
