package clarity

import "strconv"

// Arg is a contract call argument in the tagged wire form.
type Arg struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

// UintArg builds an unsigned integer argument. The value is carried as a
// decimal string so it survives JSON transport without float conversion.
func UintArg(v uint64) Arg {
	return Arg{Type: "uint", Value: strconv.FormatUint(v, 10)}
}

// AsciiArg builds a string-ascii argument.
func AsciiArg(s string) Arg {
	return Arg{Type: "string-ascii", Value: s}
}

// PrincipalArg builds a principal argument from an address string.
func PrincipalArg(address string) Arg {
	return Arg{Type: "principal", Value: address}
}
