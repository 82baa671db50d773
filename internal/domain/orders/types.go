package orders

// OrderType distinguishes new stitching work from alteration of an
// existing garment. Each catalog outfit carries an independent price
// for both.
type OrderType string

const (
	OrderTypeStitching  OrderType = "stitching"
	OrderTypeAlteration OrderType = "alteration"
)

// IsValid checks if the type is a valid OrderType
func (t OrderType) IsValid() bool {
	return t == OrderTypeStitching || t == OrderTypeAlteration
}

// String returns the string representation of OrderType
func (t OrderType) String() string {
	return string(t)
}

// Code returns the numeric code used on the wire (stitching=1, alteration=2)
func (t OrderType) Code() int {
	if t == OrderTypeAlteration {
		return 2
	}
	return 1
}

// OrderTypeFromCode resolves a numeric type code back to an OrderType
func OrderTypeFromCode(code int) OrderType {
	if code == 2 {
		return OrderTypeAlteration
	}
	return OrderTypeStitching
}
