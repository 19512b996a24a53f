// Package namecase converts declared type identifiers into canonical
// lower snake_case storage names.
package namecase

// Valid reports whether s is a supported type identifier: ASCII
// alphanumeric, beginning with an uppercase letter. Identifiers outside
// this set are rejected rather than converted, so a storage name can
// never be silently corrupted.
func Valid(s string) bool {
	if len(s) == 0 {
		return false
	}
	if s[0] < 'A' || s[0] > 'Z' {
		return false
	}
	for i := 1; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z':
		case c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9':
		default:
			return false
		}
	}
	return true
}

// Snake converts a CamelCase identifier to lower snake_case:
// "LabSession" becomes "lab_session". Every uppercase letter after the
// first starts a new word, so "RGBImage" becomes "r_g_b_image"; digits
// pass through unchanged. Returns ok=false when the identifier fails
// [Valid]; the result is stable, making round trips through storage
// names deterministic.
func Snake(s string) (string, bool) {
	if !Valid(s) {
		return "", false
	}
	out := make([]byte, 0, len(s)+4)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 'A' && c <= 'Z' {
			if i > 0 {
				out = append(out, '_')
			}
			c += 'a' - 'A'
		}
		out = append(out, c)
	}
	return string(out), true
}
