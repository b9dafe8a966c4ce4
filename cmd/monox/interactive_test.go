package main

import "testing"

func TestValidatePackageName(t *testing.T) {
	cases := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "my-repo", false},
		{"scoped", "@acme/my-repo", false},
		{"dots and underscores", "my_repo.v2", false},
		{"empty", "", true},
		{"whitespace only", "   ", true},
		{"uppercase", "MyRepo", true},
		{"space", "my repo", true},
		{"bang", "repo!", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := validatePackageName(tc.input)
			if (err != nil) != tc.wantErr {
				t.Errorf("validatePackageName(%q) err = %v, wantErr %v", tc.input, err, tc.wantErr)
			}
		})
	}
}
