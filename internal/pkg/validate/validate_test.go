package validate

import "testing"

func TestRequired(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{"spam", true},
		{"  spam  ", true},
		{"", false},
		{"   ", false},
		{"\t\n", false},
	}

	for _, tt := range tests {
		if got := Required(tt.value); got != tt.want {
			t.Fatalf("Required(%q) = %v, want %v", tt.value, got, tt.want)
		}
	}
}
