package langseg

import "testing"

func TestIsPlainEnglish(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"MyGO?,", true},
		{"hello\tworld\n", true},
		{"ＭｙＧＯ", true},
		{"「OK」", true},
		{"wait…", true},
		{"42", true},
		{"", false},
		{"café", false},
		{"你好", false},
		{"OKです", false},
	}

	for _, tt := range tests {
		if got := IsPlainEnglish(tt.input); got != tt.want {
			t.Errorf("IsPlainEnglish(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}
