package inputval

import "testing"

func TestIsValidEmail(t *testing.T) {
	tests := []struct {
		email string
		want  bool
	}{
		// Valid emails
		{"user@example.com", true},
		{"user.name@example.com", true},
		{"user+tag@example.com", true},
		{"user@subdomain.example.com", true},
		{"user@localhost", true}, // single-label domains allowed for dev

		// Invalid - empty/whitespace
		{"", false},
		{"   ", false},

		// Invalid - missing parts
		{"user", false},
		{"user@", false},
		{"@example.com", false},

		// Invalid - dot placement
		{".user@example.com", false},
		{"user.@example.com", false},
		{"user..name@example.com", false},
		{"user@.example.com", false},
		{"user@example..com", false},

		// Invalid - display name and spaces
		{"User Name <user@example.com>", false},
		{"user @example.com", false},
		{"user@exam ple.com", false},
	}

	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			if got := IsValidEmail(tt.email); got != tt.want {
				t.Errorf("IsValidEmail(%q) = %v, want %v", tt.email, got, tt.want)
			}
		})
	}
}

func TestIsValidObjectID(t *testing.T) {
	tests := []struct {
		id   string
		want bool
	}{
		{"507f1f77bcf86cd799439011", true},
		{"000000000000000000000000", true},
		{"FFFFFFFFFFFFFFFFFFFFFFFF", true},
		{"  507f1f77bcf86cd799439011  ", true},

		{"", false},
		{"507f1f77bcf86cd79943901", false},   // 23 chars
		{"507f1f77bcf86cd7994390111", false}, // 25 chars
		{"507f1f77bcf86cd79943901g", false},  // bad hex
		{"not-a-valid-id", false},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			if got := IsValidObjectID(tt.id); got != tt.want {
				t.Errorf("IsValidObjectID(%q) = %v, want %v", tt.id, got, tt.want)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	type input struct {
		Name  string `validate:"required,max=10" label:"Full name"`
		Email string `validate:"required,email" label:"Email address"`
	}

	tests := []struct {
		name      string
		in        input
		wantErrs  bool
		wantFirst string
	}{
		{
			name: "valid input",
			in:   input{Name: "Jane", Email: "jane@example.com"},
		},
		{
			name:      "missing name",
			in:        input{Email: "jane@example.com"},
			wantErrs:  true,
			wantFirst: "Full name is required.",
		},
		{
			name:      "name too long",
			in:        input{Name: "averyverylongname", Email: "jane@example.com"},
			wantErrs:  true,
			wantFirst: "Full name must be at most 10 characters.",
		},
		{
			name:      "bad email",
			in:        input{Name: "Jane", Email: "not-an-email"},
			wantErrs:  true,
			wantFirst: "Email address must be a valid email address.",
		},
		{
			name:     "multiple errors reported in field order",
			in:       input{},
			wantErrs: true,
			// both fields fail; First() is the Name failure
			wantFirst: "Full name is required.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Validate(tt.in)
			if res.HasErrors() != tt.wantErrs {
				t.Fatalf("HasErrors() = %v, want %v (errs: %v)", res.HasErrors(), tt.wantErrs, res.All())
			}
			if tt.wantFirst != "" && res.First() != tt.wantFirst {
				t.Errorf("First() = %q, want %q", res.First(), tt.wantFirst)
			}
		})
	}
}
