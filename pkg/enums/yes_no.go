package enums

import "fmt"

// YesNo is the two-valued flag the back-office schema uses for Aktif, IsDos and similar columns.
type YesNo string

const (
	Yes YesNo = "Ya"
	No  YesNo = "Tidak"
)

var validYesNo = []YesNo{Yes, No}

// String implements fmt.Stringer.
func (v YesNo) String() string {
	return string(v)
}

// IsValid reports whether the value is a known YesNo.
func (v YesNo) IsValid() bool {
	for _, candidate := range validYesNo {
		if candidate == v {
			return true
		}
	}
	return false
}

// Bool maps Ya to true. Unknown values are false.
func (v YesNo) Bool() bool {
	return v == Yes
}

// ParseYesNo converts raw input into a YesNo.
func ParseYesNo(value string) (YesNo, error) {
	for _, candidate := range validYesNo {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid yes/no flag %q", value)
}
