package model

const SchemaVersion = "1.0"

type Status string

const (
	Success Status = "success"
	Warning Status = "warning"
	Failed  Status = "failed"
)

const (
	CheckPropertiesIgnored = "properties-ignored"
	CheckNoKeyLiterals     = "no-key-literals"
	CheckKeyConfigured     = "key-configured"
)

type VerificationResponse struct {
	// Update the schemaVersion value when this structure is updated.
	SchemaVersion  string        `json:"schemaVersion"`
	ProjectDir     string        `json:"projectDir"`
	PropertiesFile string        `json:"propertiesFile"`
	Checks         []CheckResult `json:"checks"`
	OverallStatus  Status        `json:"overallStatus"`
}

type CheckResult struct {
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Status      Status    `json:"status"`
	Message     string    `json:"message,omitempty"`
	Findings    []Finding `json:"findings,omitempty"`
}

// Finding locates a credential found in a source file. Match is always masked.
type Finding struct {
	Path  string `json:"path"`
	Line  int    `json:"line"`
	Match string `json:"match"`
}

// Overall is failed when any check failed. Warnings do not fail the verification.
func Overall(checks []CheckResult) Status {
	status := Success
	for _, check := range checks {
		switch check.Status {
		case Failed:
			return Failed
		case Warning:
			status = Warning
		}
	}
	return status
}
