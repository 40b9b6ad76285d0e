package config

import "testing"

func TestValidateAcceptsGoodConfig(t *testing.T) {
	data := []byte("prefix: uv-\nprobe_timeout: 5s\npython_dir: /data/uv/python\n")

	result, err := Validate(data)
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if !result.Valid {
		t.Fatalf("expected valid, got issues: %+v", result.Issues)
	}
}

func TestValidateAcceptsEmptyFile(t *testing.T) {
	result, err := Validate(nil)
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if !result.Valid {
		t.Fatalf("expected valid, got issues: %+v", result.Issues)
	}
}

func TestValidateRejectsUnknownKey(t *testing.T) {
	result, err := Validate([]byte("mystery: 42\n"))
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if result.Valid {
		t.Fatal("expected invalid for unknown key")
	}
	if len(result.Issues) == 0 {
		t.Fatal("expected at least one issue")
	}
}

func TestValidateRejectsBadTimeoutFormat(t *testing.T) {
	result, err := Validate([]byte("probe_timeout: ten seconds\n"))
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if result.Valid {
		t.Fatal("expected invalid for malformed timeout")
	}
}

func TestValidateRejectsWrongType(t *testing.T) {
	result, err := Validate([]byte("prefix: [1, 2]\n"))
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if result.Valid {
		t.Fatal("expected invalid for non-string prefix")
	}
}
