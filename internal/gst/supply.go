package gst

import "strings"

// Address is the part of a postal address the tax rules look at.
type Address struct {
	Line1   string `json:"line1,omitempty"`
	City    string `json:"city,omitempty"`
	State   string `json:"state,omitempty"`
	Pincode string `json:"pincode,omitempty"`
	Country string `json:"country,omitempty"`
}

func (a *Address) state() string {
	if a == nil {
		return ""
	}
	return strings.TrimSpace(a.State)
}

// DeterminePlaceOfSupply picks the state whose GST rules govern a sale.
// B2B sales use the billing state; otherwise the shipping state, then the
// billing state, then DefaultState.
//
// This is a simplification: services, exports and SEZ supplies have their
// own rules which are not modelled here.
func DeterminePlaceOfSupply(billing, shipping *Address, isB2B bool) string {
	if isB2B {
		if s := billing.state(); s != "" {
			return s
		}
	}
	if s := shipping.state(); s != "" {
		return s
	}
	if s := billing.state(); s != "" {
		return s
	}
	return DefaultState
}

// IsReverseChargeApplicable reports whether the recipient, not the supplier,
// owes the tax. Only the unregistered-supplier to registered-recipient case
// is detected.
func IsReverseChargeApplicable(supplierGSTIN, customerGSTIN string) bool {
	return strings.TrimSpace(supplierGSTIN) == "" && strings.TrimSpace(customerGSTIN) != ""
}
