package ptr

import "testing"

func TestTo(t *testing.T) {
	s := "UV-5R"
	p := To(s)
	if p == nil || *p != s {
		t.Fatalf("To(%q) = %v", s, p)
	}
	if p == &s {
		t.Error("Expected different address")
	}
}

func TestInt(t *testing.T) {
	p := Int(2019)
	if *p != 2019 {
		t.Errorf("Expected 2019, got %d", *p)
	}
}

func TestValue(t *testing.T) {
	if got := Value[int](nil); got != 0 {
		t.Errorf("Value(nil) = %d, want 0", got)
	}
	if got := Value(Int(3100)); got != 3100 {
		t.Errorf("Value = %d, want 3100", got)
	}
}

func TestEqual(t *testing.T) {
	tests := []struct {
		name string
		a, b *int
		want bool
	}{
		{"both nil", nil, nil, true},
		{"one nil", Int(1), nil, false},
		{"same value", Int(1800), Int(1800), true},
		{"different value", Int(1800), Int(2000), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Equal(tt.a, tt.b); got != tt.want {
				t.Errorf("Equal() = %v, want %v", got, tt.want)
			}
		})
	}
}
