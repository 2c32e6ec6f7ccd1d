package localprops

import (
	"path/filepath"
)

const (
	LocalPropertiesFileName = "local.properties"
	ApiKeyProperty          = "API_KEY"
)

// LoadAPIKey returns the API_KEY entry of <projectDir>/local.properties.
// A missing file, a missing key and an empty value all yield "".
func LoadAPIKey(projectDir string) (string, error) {
	return LoadProperty(filepath.Join(projectDir, LocalPropertiesFileName), ApiKeyProperty, "")
}

// LoadProperty reads a single key from the properties file at path, returning def when
// the file or the key does not exist.
func LoadProperty(path, key, def string) (string, error) {
	props, err := Load(path)
	if err != nil {
		return "", err
	}
	return props.GetOrDefault(key, def), nil
}
