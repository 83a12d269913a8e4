package config

import "testing"

func TestValidateEnum(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		value   string
		allowed []string
		wantErr bool
	}{
		{"empty is valid", "", []string{"a"}, false},
		{"allowed", "b", []string{"a", "b"}, false},
		{"not allowed", "c", []string{"a", "b"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := validateEnum(tt.value, "field", tt.allowed)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateEnum(%q) error = %v, wantErr %v", tt.value, err, tt.wantErr)
			}
		})
	}
}

func TestFormatOptions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		opts []string
		want string
	}{
		{[]string{"a"}, `"a"`},
		{[]string{"a", "b"}, `"a" or "b"`},
		{[]string{"a", "b", "c"}, `"a", "b", or "c"`},
	}

	for _, tt := range tests {
		if got := formatOptions(tt.opts); got != tt.want {
			t.Errorf("formatOptions(%v) = %s, want %s", tt.opts, got, tt.want)
		}
	}
}

func TestValidatePath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path    string
		wantErr bool
	}{
		{"", false},
		{"~/templates", false},
		{"/abs/templates", false},
		{"templates", true},
		{"..", true},
	}

	for _, tt := range tests {
		err := ValidatePath(tt.path, "templates_dir")
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidatePath(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
		}
	}
}

func TestValidateShutdownAction(t *testing.T) {
	t.Parallel()

	for _, a := range ValidShutdownActions {
		if err := ValidateShutdownAction(a); err != nil {
			t.Errorf("ValidateShutdownAction(%q) = %v", a, err)
		}
	}
	if err := ValidateShutdownAction("halt"); err == nil {
		t.Error("ValidateShutdownAction(halt) should fail")
	}
}
