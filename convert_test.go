package formbind_test

import (
	"strconv"
	"testing"

	"github.com/dmitrymomot/formbind"
)

func TestBoolConverter(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw     string
		want    bool
		wantErr bool
	}{
		{raw: "true", want: true},
		{raw: "false", want: false},
		{raw: "1", want: true},
		{raw: "0", want: false},
		{raw: "on", want: true},
		{raw: "ON", want: true},
		{raw: "yes", want: true},
		{raw: "off", want: false},
		{raw: "no", want: false},
		{raw: "", want: false},
		{raw: "maybe", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(strconv.Quote(tt.raw), func(t *testing.T) {
			got, err := formbind.Bool(tt.raw)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Bool(%q) = %v, want error", tt.raw, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("Bool(%q) unexpected error: %v", tt.raw, err)
			}
			if got.(bool) != tt.want {
				t.Errorf("Bool(%q) = %v, want %v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestNumericConverters(t *testing.T) {
	t.Parallel()

	if v, err := formbind.Int("42"); err != nil || v.(int) != 42 {
		t.Errorf("Int(42) = %v, %v", v, err)
	}
	if v, err := formbind.Int64("-7"); err != nil || v.(int64) != -7 {
		t.Errorf("Int64(-7) = %v, %v", v, err)
	}
	if v, err := formbind.Uint("7"); err != nil || v.(uint) != 7 {
		t.Errorf("Uint(7) = %v, %v", v, err)
	}
	if v, err := formbind.Uint64("7"); err != nil || v.(uint64) != 7 {
		t.Errorf("Uint64(7) = %v, %v", v, err)
	}
	if v, err := formbind.Float64("3.14"); err != nil || v.(float64) != 3.14 {
		t.Errorf("Float64(3.14) = %v, %v", v, err)
	}

	if _, err := formbind.Uint("-1"); err == nil {
		t.Error("Uint(-1) should fail")
	}
	if _, err := formbind.Int("thirty"); err == nil {
		t.Error("Int(thirty) should fail")
	}
}

func TestStringConverterNeverFails(t *testing.T) {
	t.Parallel()

	for _, raw := range []string{"", "plain", "\x00weird\xff"} {
		got, err := formbind.String(raw)
		if err != nil {
			t.Fatalf("String(%q) unexpected error: %v", raw, err)
		}
		if got.(string) != raw {
			t.Errorf("String(%q) = %q, identity expected", raw, got)
		}
	}
}

func TestEnumConverter(t *testing.T) {
	t.Parallel()

	conv := formbind.Enum("small", "medium", "large")

	if v, err := conv("medium"); err != nil || v.(string) != "medium" {
		t.Errorf("Enum(medium) = %v, %v", v, err)
	}
	if _, err := conv("huge"); err == nil {
		t.Error("Enum(huge) should fail")
	}
}

func TestParseAdapter(t *testing.T) {
	t.Parallel()

	conv := formbind.Parse(strconv.Atoi)

	if v, err := conv("5"); err != nil || v.(int) != 5 {
		t.Errorf("Parse(strconv.Atoi)(5) = %v, %v", v, err)
	}
	if _, err := conv("x"); err == nil {
		t.Error("Parse(strconv.Atoi)(x) should fail")
	}
}

func TestSanitizedConverter(t *testing.T) {
	t.Parallel()

	conv := formbind.Sanitized(nil)

	got, err := conv("a\x00b\r\nc\x07d")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.(string) != "abcd" {
		t.Errorf("Sanitized = %q, want %q", got, "abcd")
	}

	// Tabs and unicode survive sanitization.
	got, err = conv("héllo\tworld")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.(string) != "héllo\tworld" {
		t.Errorf("Sanitized = %q, printable content must be preserved", got)
	}

	wrapped := formbind.Sanitized(formbind.Int)
	if v, err := wrapped("42\n"); err != nil || v.(int) != 42 {
		t.Errorf("Sanitized(Int)(42\\n) = %v, %v", v, err)
	}
}

func TestTimeConverter(t *testing.T) {
	t.Parallel()

	conv := formbind.Time("2006-01-02")
	if _, err := conv("2024-12-31"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := conv("31/12/2024"); err == nil {
		t.Error("wrong layout should fail")
	}
}

func TestUUIDConverter(t *testing.T) {
	t.Parallel()

	if _, err := formbind.UUID("123e4567-e89b-12d3-a456-426614174000"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := formbind.UUID("not-a-uuid"); err == nil {
		t.Error("invalid uuid should fail")
	}
}

func TestLanguageConverter(t *testing.T) {
	t.Parallel()

	if _, err := formbind.Language("uk"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := formbind.Language("!!"); err == nil {
		t.Error("invalid tag should fail")
	}
}
