package playback

import "testing"

func TestShouldContinue(t *testing.T) {
	tests := []struct {
		name      string
		target    int
		completed int
		want      bool
	}{
		{"first round of three", 3, 1, true},
		{"second round of three", 3, 2, true},
		{"final round of three", 3, 3, false},
		{"past the target", 3, 4, false},
		{"single round", 1, 1, false},
		{"infinite keeps going", RoundsInfinite, 100, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ShouldContinue(tt.target, tt.completed); got != tt.want {
				t.Errorf("ShouldContinue(%d, %d) = %v, want %v", tt.target, tt.completed, got, tt.want)
			}
		})
	}
}
