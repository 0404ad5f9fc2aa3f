package normalize

import "testing"

func TestName(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "latin",
			in:   "  Alice ",
			want: "alice",
		},
		{
			name: "cyrillic",
			in:   "Вася",
			want: "вася",
		},
		{
			name: "already folded",
			in:   "bob",
			want: "bob",
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Name(tt.in); got != tt.want {
				t.Errorf("Name() = %q, want %q", got, tt.want)
			}
		})
	}
}
