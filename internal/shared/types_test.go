package shared

import (
	"testing"
	"time"
)

func TestRole_String(t *testing.T) {
	tests := []struct {
		role     Role
		expected string
	}{
		{RoleAdmin, "admin"},
		{RoleCustomer, "customer"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if tt.role.String() != tt.expected {
				t.Errorf("expected %s, got %s", tt.expected, tt.role.String())
			}
		})
	}
}

func TestDay(t *testing.T) {
	in := time.Date(2024, 3, 15, 14, 30, 45, 123, time.UTC)
	got := Day(in)
	want := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("expected %v, got %v", want, got)
	}
	if got.Location() != in.Location() {
		t.Errorf("expected location to be preserved")
	}
}

func TestParseDay(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected time.Time
		wantErr  bool
	}{
		{
			name:     "date only",
			input:    "2024-03-15",
			expected: time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "rfc3339 truncated to day",
			input:    "2024-03-15T14:30:00Z",
			expected: time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "rfc3339 with offset keeps wall-clock day",
			input:    "2024-03-15T23:30:00+05:00",
			expected: time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			name:    "empty",
			input:   "",
			wantErr: true,
		},
		{
			name:    "garbage",
			input:   "not-a-date",
			wantErr: true,
		},
		{
			name:    "wrong order",
			input:   "15-03-2024",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDay(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Error("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !got.Equal(tt.expected) {
				t.Errorf("expected %v, got %v", tt.expected, got)
			}
		})
	}
}
