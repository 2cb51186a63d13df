package trends

import "testing"

func TestStripResponsePrefix(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "full guard",
			input: ")]}',\n{\"widgets\":[]}",
			want:  `{"widgets":[]}`,
		},
		{
			name:  "guard without comma",
			input: ")]}'\n{\"default\":{}}",
			want:  `{"default":{}}`,
		},
		{
			name:  "no guard",
			input: `{"default":{}}`,
			want:  `{"default":{}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := stripResponsePrefix(tt.input); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}
