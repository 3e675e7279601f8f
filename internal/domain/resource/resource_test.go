package resource

import (
	"testing"
)

func TestValidateID(t *testing.T) {
	valid := []string{"x86-ubuntu-18.04-img", "riscv-disk-img", "a", "kernel_5.4.0", "A.B-c_1"}
	for _, id := range valid {
		if err := ValidateID(id); err != nil {
			t.Errorf("ValidateID(%q) = %v, want nil", id, err)
		}
	}

	invalid := []string{"", "has space", "semi;colon", "comma,", "slash/path", "a%b"}
	for _, id := range invalid {
		if err := ValidateID(id); err == nil {
			t.Errorf("ValidateID(%q) = nil, want error", id)
		}
	}

	long := make([]byte, MaxIDLength+1)
	for i := range long {
		long[i] = 'a'
	}
	if err := ValidateID(string(long)); err == nil {
		t.Error("ValidateID(101 chars) = nil, want error")
	}
}

func TestValidateVersion(t *testing.T) {
	for _, v := range []string{"1.0.0", "2.0", "24.1", "1.0.0.4"} {
		if err := ValidateVersion(v); err != nil {
			t.Errorf("ValidateVersion(%q) = %v, want nil", v, err)
		}
	}
	for _, v := range []string{"", "1.0.0-rc1", "v1.0.0", "one", "1.0.0 "} {
		if err := ValidateVersion(v); err == nil {
			t.Errorf("ValidateVersion(%q) = nil, want error", v)
		}
	}
}

func TestCompareVersions(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"1.0.0", "1.0.0", 0},
		{"2.0.0", "1.9.9", 1},
		{"1.9.9", "2.0.0", -1},
		{"10.0.0", "9.0.0", 1}, // numeric, not lexicographic
		{"1.0", "1.0.0", 0},    // two-part strings coerce
		{"24.1", "9.2", 1},
	}
	for _, tt := range tests {
		if got := CompareVersions(tt.a, tt.b); got != tt.want {
			t.Errorf("CompareVersions(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestLatest(t *testing.T) {
	rs := []Resource{
		{ID: "b", ResourceVersion: "1.0.0"},
		{ID: "b", ResourceVersion: "10.0.0"},
		{ID: "b", ResourceVersion: "2.0.0"},
	}
	if got := Latest(rs); got != "10.0.0" {
		t.Errorf("Latest = %q, want %q", got, "10.0.0")
	}
	if got := Latest(nil); got != "" {
		t.Errorf("Latest(nil) = %q, want empty", got)
	}
}

func TestSortByVersionDesc(t *testing.T) {
	rs := []Resource{
		{ID: "b", ResourceVersion: "1.0.0"},
		{ID: "b", ResourceVersion: "10.0.0"},
		{ID: "b", ResourceVersion: "2.0.0"},
	}
	SortByVersionDesc(rs)
	want := []string{"10.0.0", "2.0.0", "1.0.0"}
	for i, w := range want {
		if rs[i].ResourceVersion != w {
			t.Fatalf("position %d = %q, want %q", i, rs[i].ResourceVersion, w)
		}
	}
}

func TestSortVersionsDesc(t *testing.T) {
	vs := []string{"22.0", "24.0", "9.2", "23.1"}
	SortVersionsDesc(vs)
	want := []string{"24.0", "23.1", "22.0", "9.2"}
	for i, w := range want {
		if vs[i] != w {
			t.Fatalf("position %d = %q, want %q (got order %v)", i, vs[i], w, vs)
		}
	}
}
