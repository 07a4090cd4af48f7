package socialimages

import "testing"

func TestIsProduction(t *testing.T) {
	tests := map[string]bool{
		"production":     true,
		"":               false,
		"deploy-preview": false,
		"branch-deploy":  false,
		"Production":     false,
		" production ":   false,
	}

	for in, want := range tests {
		if got := IsProduction(in); got != want {
			t.Errorf("IsProduction(%q) = %v, want %v", in, got, want)
		}
	}
}
