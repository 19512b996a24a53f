package schema

import "github.com/jacentio/stratum/internal/namecase"

// StorageCase converts a declared type identifier into the lower
// snake_case form used in storage names: "LabSession" becomes
// "lab_session". Identifiers outside ASCII CamelCase are rejected with
// ErrBadIdentifier rather than converted on a best effort, so a
// corrupted name can never reach storage.
func StorageCase(identifier string) (string, error) {
	base, ok := namecase.Snake(identifier)
	if !ok {
		return "", ErrBadIdentifier
	}
	return base, nil
}
