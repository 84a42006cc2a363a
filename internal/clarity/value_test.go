package clarity

import (
	"testing"
)

func TestUnwrap(t *testing.T) {
	t.Run("none variants decode to absent", func(t *testing.T) {
		for _, raw := range []string{``, `null`, `{"type":"none"}`, `{"type":"(optional none)"}`, `{"type":"some","value":null}`} {
			if _, ok := Unwrap(Raw(raw)); ok {
				t.Errorf("Unwrap(%q) ok = true, want false", raw)
			}
		}
	})

	t.Run("tagged wrapper yields inner value", func(t *testing.T) {
		inner, ok := Unwrap(Raw(`{"type":"uint","value":"7"}`))
		if !ok {
			t.Fatal("Unwrap ok = false, want true")
		}
		if string(inner) != `"7"` {
			t.Errorf("inner = %s, want %q", inner, `"7"`)
		}
	})

	t.Run("bare primitive passes through", func(t *testing.T) {
		inner, ok := Unwrap(Raw(`"hello"`))
		if !ok || string(inner) != `"hello"` {
			t.Errorf("Unwrap = %s, %v; want %q, true", inner, ok, `"hello"`)
		}
	})

	t.Run("record without value tag passes through", func(t *testing.T) {
		raw := `{"name":{"type":"string-ascii","value":"eggs"}}`
		inner, ok := Unwrap(Raw(raw))
		if !ok || string(inner) != raw {
			t.Errorf("Unwrap = %s, %v; want original record, true", inner, ok)
		}
	})
}

func TestAsUint(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want uint64
	}{
		{"tagged wrapper", `{"type":"uint","value":"42"}`, 42},
		{"quoted string", `"42"`, 42},
		{"bare number", `42`, 42},
		{"nested wrapper", `{"type":"some","value":{"type":"uint","value":"42"}}`, 42},
		{"beyond float53 precision", `"9007199254740993"`, 9007199254740993},
		{"max uint64", `"18446744073709551615"`, 18446744073709551615},
		{"malformed text", `"abc"`, 0},
		{"negative", `-5`, 0},
		{"none", `{"type":"none"}`, 0},
		{"empty", ``, 0},
		{"unrelated object", `{"foo":1}`, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AsUint(Raw(tt.raw)); got != tt.want {
				t.Errorf("AsUint(%s) = %d, want %d", tt.raw, got, tt.want)
			}
		})
	}
}

func TestAsString(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"tagged wrapper", `{"type":"string-ascii","value":"fresh eggs"}`, "fresh eggs"},
		{"bare string", `"fresh eggs"`, "fresh eggs"},
		{"principal", `{"type":"principal","value":"ST2CY5V39NHDPWSXMW9QDT3HC3GD6Q6XX4CFRK9AG"}`, "ST2CY5V39NHDPWSXMW9QDT3HC3GD6Q6XX4CFRK9AG"},
		{"number is not text", `42`, ""},
		{"none", `{"type":"none"}`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AsString(Raw(tt.raw)); got != tt.want {
				t.Errorf("AsString(%s) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestAsBool(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		def  bool
		want bool
	}{
		{"bare true", `true`, false, true},
		{"bare false", `false`, true, false},
		{"tagged true", `{"type":"bool","value":true}`, false, true},
		{"tagged false", `{"type":"bool","value":false}`, true, false},
		{"missing falls back to default", ``, true, true},
		{"garbage falls back to default", `"yes"`, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AsBool(Raw(tt.raw), tt.def); got != tt.want {
				t.Errorf("AsBool(%s, %v) = %v, want %v", tt.raw, tt.def, got, tt.want)
			}
		})
	}
}

func TestField(t *testing.T) {
	t.Run("tagged tuple", func(t *testing.T) {
		raw := `{"type":"tuple","value":{"price":{"type":"uint","value":"1500000"}}}`
		if got := AsUint(Field(Raw(raw), "price")); got != 1500000 {
			t.Errorf("price = %d, want 1500000", got)
		}
	})

	t.Run("plain record", func(t *testing.T) {
		raw := `{"price":"1500000"}`
		if got := AsUint(Field(Raw(raw), "price")); got != 1500000 {
			t.Errorf("price = %d, want 1500000", got)
		}
	})

	t.Run("absent field", func(t *testing.T) {
		if f := Field(Raw(`{"price":"1"}`), "quantity"); f != nil {
			t.Errorf("Field = %s, want nil", f)
		}
	})

	t.Run("none record", func(t *testing.T) {
		if f := Field(Raw(`{"type":"none"}`), "price"); f != nil {
			t.Errorf("Field = %s, want nil", f)
		}
	})
}
