package env

import (
	"testing"
	"time"
)

func TestString(t *testing.T) {
	t.Setenv("ENV_TEST_STR", "value")
	if got := String("ENV_TEST_STR", "def"); got != "value" {
		t.Errorf("String = %q", got)
	}
	if got := String("ENV_TEST_UNSET", "def"); got != "def" {
		t.Errorf("String unset = %q", got)
	}
	// Empty counts as set.
	t.Setenv("ENV_TEST_EMPTY", "")
	if got := String("ENV_TEST_EMPTY", "def"); got != "" {
		t.Errorf("String empty = %q", got)
	}
}

func TestBool(t *testing.T) {
	tests := []struct {
		val  string
		want bool
	}{
		{"1", true},
		{"true", true},
		{"TRUE", true},
		{"yes", true},
		{"on", true},
		{"0", false},
		{"false", false},
		{"off", false},
		{"garbage", false},
	}
	for _, tt := range tests {
		t.Setenv("ENV_TEST_BOOL", tt.val)
		if got := Bool("ENV_TEST_BOOL", !tt.want); got != tt.want {
			t.Errorf("Bool(%q) = %v, want %v", tt.val, got, tt.want)
		}
	}
	if !Bool("ENV_TEST_BOOL_UNSET", true) {
		t.Error("Bool unset must return default")
	}
}

func TestInt(t *testing.T) {
	t.Setenv("ENV_TEST_INT", "42")
	if got := Int("ENV_TEST_INT", 7); got != 42 {
		t.Errorf("Int = %d", got)
	}
	t.Setenv("ENV_TEST_INT", "not-a-number")
	if got := Int("ENV_TEST_INT", 7); got != 7 {
		t.Errorf("Int malformed = %d", got)
	}
	if got := Int("ENV_TEST_INT_UNSET", 7); got != 7 {
		t.Errorf("Int unset = %d", got)
	}
}

func TestDuration(t *testing.T) {
	t.Setenv("ENV_TEST_DUR", "250ms")
	if got := Duration("ENV_TEST_DUR", time.Second); got != 250*time.Millisecond {
		t.Errorf("Duration = %v", got)
	}
	t.Setenv("ENV_TEST_DUR", "soon")
	if got := Duration("ENV_TEST_DUR", time.Second); got != time.Second {
		t.Errorf("Duration malformed = %v", got)
	}
}
