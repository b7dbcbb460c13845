package script

// Value is a loosely typed result delivered to a suspended task,
// typically decoded from a client reply. Accessors never fail: a value
// of the wrong type resolves to a sentinel instead, mirroring how
// permissive the server is with client input generally.
type Value struct {
	v any
}

func IntValue(i int) Value {
	return Value{v: i}
}

func StringValue(s string) Value {
	return Value{v: s}
}

// Int returns the value as an int, or -1 when it isn't one.
func (v Value) Int() int {
	if i, ok := v.v.(int); ok {
		return i
	}
	return -1
}

// String returns the value as a string, or "" when it isn't one.
func (v Value) String() string {
	if s, ok := v.v.(string); ok {
		return s
	}
	return ""
}
