package model

import "testing"

func TestDefaultLabeler(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"title", "Title"},
		{"read_count", "Read Count"},
		{"publishedAt", "Published At"},
		{"HTTPStatus", "Httpstatus"},
		{"field-2", "Field 2"},
	}
	for _, tc := range cases {
		if got := DefaultLabeler(tc.in); got != tc.want {
			t.Errorf("DefaultLabeler(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
