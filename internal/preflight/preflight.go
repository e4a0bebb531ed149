// Package preflight provides pre-flight validation for required binaries.
package preflight

import (
	"os/exec"
)

// BinaryCheck represents a required binary and its purpose.
type BinaryCheck struct {
	Name        string
	Required    bool   // false = warning only
	InstallHint string // e.g., "brew install maven" or "https://..."
}

// requiredBinaries defines binaries that must be present for stevedore to function.
var requiredBinaries = []BinaryCheck{
	{
		Name:        "git",
		Required:    true,
		InstallHint: "Install git: https://git-scm.com/downloads",
	},
}

// languageBinaries defines build tools keyed by project language.
var languageBinaries = map[string]BinaryCheck{
	"java": {
		Name:        "mvn",
		Required:    true,
		InstallHint: "Install Maven: https://maven.apache.org/install.html",
	},
	"node": {
		Name:        "npm",
		Required:    true,
		InstallHint: "Install Node.js: https://nodejs.org/en/download",
	},
}

// providerBinaries defines cloud CLIs keyed by provider.
var providerBinaries = map[string]BinaryCheck{
	"aws": {
		Name:        "aws",
		Required:    true,
		InstallHint: "Install AWS CLI: https://aws.amazon.com/cli/",
	},
	"azure": {
		Name:        "az",
		Required:    true,
		InstallHint: "Install Azure CLI: https://learn.microsoft.com/cli/azure/install-azure-cli",
	},
	"gcp": {
		Name:        "gcloud",
		Required:    true,
		InstallHint: "Install gcloud: https://cloud.google.com/sdk/docs/install",
	},
}

// optionalBinaries defines binaries that enhance stevedore but are not strictly required.
var optionalBinaries = []BinaryCheck{
	{
		Name:        "docker",
		Required:    false,
		InstallHint: "Install Docker: https://docs.docker.com/get-docker/",
	},
	{
		Name:        "sops",
		Required:    false,
		InstallHint: "Install sops: brew install sops",
	},
}

// CheckBinaries validates all known binaries are available.
// Returns the list of missing binaries with install hints.
func CheckBinaries() []BinaryCheck {
	var all []BinaryCheck
	all = append(all, requiredBinaries...)
	for _, bin := range languageBinaries {
		all = append(all, bin)
	}
	for _, bin := range providerBinaries {
		all = append(all, bin)
	}
	all = append(all, optionalBinaries...)

	return missingFrom(all)
}

// CheckForRun validates only the binaries a run with the given language and
// provider actually needs.
func CheckForRun(language, provider string) []BinaryCheck {
	all := append([]BinaryCheck{}, requiredBinaries...)
	if bin, ok := languageBinaries[language]; ok {
		all = append(all, bin)
	}
	if bin, ok := providerBinaries[provider]; ok {
		all = append(all, bin)
	}

	return missingFrom(all)
}

func missingFrom(checks []BinaryCheck) []BinaryCheck {
	var missing []BinaryCheck
	for _, bin := range checks {
		if _, err := exec.LookPath(bin.Name); err != nil {
			missing = append(missing, bin)
		}
	}
	return missing
}

// HasRequired returns true if no required binary is missing.
func HasRequired(missing []BinaryCheck) bool {
	for _, bin := range missing {
		if bin.Required {
			return false
		}
	}
	return true
}
