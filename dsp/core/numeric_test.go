package core

import "testing"

func TestNearlyEqual(t *testing.T) {
	tests := []struct {
		name string
		a, b float64
		eps  float64
		want bool
	}{
		{name: "identical", a: 1, b: 1, eps: 1e-12, want: true},
		{name: "absolute", a: 1.0, b: 1.0 + 1e-13, eps: 1e-12, want: true},
		{name: "relative", a: 1e6, b: 1e6 + 1e-7, eps: 1e-12, want: true},
		{name: "different", a: 1.0, b: 1.1, eps: 1e-3, want: false},
		{name: "default eps", a: 0, b: 1e-13, eps: 0, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NearlyEqual(tt.a, tt.b, tt.eps); got != tt.want {
				t.Fatalf("NearlyEqual(%v, %v, %v) = %v, want %v", tt.a, tt.b, tt.eps, got, tt.want)
			}
		})
	}
}
