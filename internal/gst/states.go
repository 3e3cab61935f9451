package gst

import (
	"sort"
	"strings"
)

// DefaultState is the place of supply used when neither address carries a state.
const DefaultState = "Maharashtra"

// stateCodes maps state names to their 2-digit GST state codes.
// The table covers the states the merchant UI offers; union territories other
// than Delhi are not listed.
var stateCodes = map[string]string{
	"Andhra Pradesh":    "37",
	"Arunachal Pradesh": "12",
	"Assam":             "18",
	"Bihar":             "10",
	"Chhattisgarh":      "22",
	"Delhi":             "07",
	"Goa":               "30",
	"Gujarat":           "24",
	"Haryana":           "06",
	"Himachal Pradesh":  "02",
	"Jharkhand":         "20",
	"Karnataka":         "29",
	"Kerala":            "32",
	"Madhya Pradesh":    "23",
	"Maharashtra":       "27",
	"Manipur":           "14",
	"Meghalaya":         "17",
	"Mizoram":           "15",
	"Nagaland":          "13",
	"Odisha":            "21",
	"Punjab":            "03",
	"Rajasthan":         "08",
	"Sikkim":            "11",
	"Tamil Nadu":        "33",
	"Telangana":         "36",
	"Tripura":           "16",
	"Uttar Pradesh":     "09",
	"Uttarakhand":       "05",
	"West Bengal":       "19",
}

var (
	stateByCode      = make(map[string]string, len(stateCodes))
	stateByCanonical = make(map[string]string, len(stateCodes))
)

func init() {
	for name, code := range stateCodes {
		stateByCode[code] = name
		stateByCanonical[CanonicalState(name)] = name
	}
}

// State is one row of the state code table.
type State struct {
	Name string `json:"name"`
	Code string `json:"code"`
}

// States returns the state code table sorted by code.
func States() []State {
	out := make([]State, 0, len(stateCodes))
	for name, code := range stateCodes {
		out = append(out, State{Name: name, Code: code})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}

// StateCode returns the 2-digit code for a state name. Matching ignores case
// and surrounding or repeated whitespace.
func StateCode(name string) (string, bool) {
	canonical, ok := stateByCanonical[CanonicalState(name)]
	if !ok {
		return "", false
	}
	return stateCodes[canonical], true
}

// StateName returns the state name registered for a 2-digit code.
func StateName(code string) (string, bool) {
	name, ok := stateByCode[code]
	return name, ok
}

// CanonicalState folds a state identifier for comparison: trimmed, inner
// whitespace collapsed, lower-cased.
func CanonicalState(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

// SameState reports whether two state identifiers name the same state.
func SameState(a, b string) bool {
	return CanonicalState(a) == CanonicalState(b)
}
