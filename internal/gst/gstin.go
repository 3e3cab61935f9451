package gst

import "regexp"

// GSTINLength is the fixed length of a GST identification number.
const GSTINLength = 15

// 2-digit state code, 10-char PAN, entity code, literal Z, check character.
// The check character is not verified against the mod-36 checksum.
var gstinPattern = regexp.MustCompile(`^[0-9]{2}[A-Z]{5}[0-9]{4}[A-Z][1-9A-Z]Z[0-9A-Z]$`)

// ValidateGSTIN reports whether value has the structure of a GSTIN.
func ValidateGSTIN(value string) bool {
	if len(value) != GSTINLength {
		return false
	}
	return gstinPattern.MatchString(value)
}

// StateFromGSTIN returns the state encoded in the first two characters of a
// GSTIN. It returns false when the GSTIN is malformed or its code is not in
// the state table.
func StateFromGSTIN(value string) (string, bool) {
	if !ValidateGSTIN(value) {
		return "", false
	}
	return StateName(value[:2])
}

// PANFromGSTIN returns the PAN embedded in characters 3-12 of a valid GSTIN.
func PANFromGSTIN(value string) (string, bool) {
	if !ValidateGSTIN(value) {
		return "", false
	}
	return value[2:12], true
}
