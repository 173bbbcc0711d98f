package sanitizer

import "testing"

func TestTrimAndNormalize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty", "", ""},
		{"only whitespace", " \t\n ", ""},
		{"already clean", "Recursos Humanos", "Recursos Humanos"},
		{"leading and trailing", "  Finanzas  ", "Finanzas"},
		{"internal runs collapsed", "Recursos \t\t Humanos", "Recursos Humanos"},
		{"newlines collapsed", "Equipo\nde\nVentas", "Equipo de Ventas"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TrimAndNormalize(tt.input); got != tt.expected {
				t.Errorf("TrimAndNormalize(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestNormalizeRoom(t *testing.T) {
	if got := NormalizeRoom("  Amarilla "); got != "Amarilla" {
		t.Errorf("NormalizeRoom = %q, want %q", got, "Amarilla")
	}
}
