package version

import (
	"strings"
	"testing"
)

func withBuildInfo(t *testing.T, version, commit, date string) {
	t.Helper()
	origVersion, origCommit, origDate := Version, GitCommit, BuildDate
	SetBuildInfo(version, commit, date)
	t.Cleanup(func() {
		SetBuildInfo(origVersion, origCommit, origDate)
	})
}

func TestGetFormattedVersion(t *testing.T) {
	tests := []struct {
		name     string
		version  string
		commit   string
		date     string
		expected string
	}{
		{
			name:     "development build",
			version:  "0.1.0",
			commit:   "unknown",
			date:     "unknown",
			expected: "emutest v0.1.0",
		},
		{
			name:     "release build with long commit",
			version:  "1.2.3",
			commit:   "abcdef0123456789",
			date:     "2024-01-01",
			expected: "emutest v1.2.3, commit abcdef0, built 2024-01-01",
		},
		{
			name:     "invalid version",
			version:  "not-a-version",
			commit:   "unknown",
			date:     "unknown",
			expected: "emutest vnot-a-version (invalid version)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			withBuildInfo(t, tt.version, tt.commit, tt.date)
			if got := GetFormattedVersion(); got != tt.expected {
				t.Errorf("GetFormattedVersion() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestGetDetailedVersion(t *testing.T) {
	withBuildInfo(t, "0.3.0+42.abc1234", "abc1234", "2024-02-02")

	detailed := GetDetailedVersion()
	for _, want := range []string{"emutest v0.3.0+42.abc1234", "Git Commit: abc1234", "Build Metadata: 42.abc1234", "Build Type: release", "Prerelease: no", "Platform: "} {
		if !strings.Contains(detailed, want) {
			t.Errorf("GetDetailedVersion() missing %q in:\n%s", want, detailed)
		}
	}
}

func TestValidateVersion(t *testing.T) {
	withBuildInfo(t, "0.1.0", "unknown", "unknown")
	if err := ValidateVersion(); err != nil {
		t.Errorf("ValidateVersion() unexpected error: %v", err)
	}

	withBuildInfo(t, "garbage", "unknown", "unknown")
	if err := ValidateVersion(); err == nil {
		t.Error("ValidateVersion() expected error for invalid version")
	}
}

func TestIsPrerelease(t *testing.T) {
	withBuildInfo(t, "0.2.0-rc.1", "unknown", "unknown")
	if !IsPrerelease() {
		t.Error("expected 0.2.0-rc.1 to be a prerelease")
	}

	withBuildInfo(t, "0.2.0", "unknown", "unknown")
	if IsPrerelease() {
		t.Error("expected 0.2.0 not to be a prerelease")
	}
}

func TestIsDevelopment(t *testing.T) {
	withBuildInfo(t, "0.1.0", "unknown", "2024-01-01")
	if !IsDevelopment() {
		t.Error("expected unknown commit to be a development build")
	}

	withBuildInfo(t, "0.1.0", "abc", "2024-01-01")
	if IsDevelopment() {
		t.Error("expected stamped build not to be a development build")
	}
}

func TestGetDetailedVersionDevelopmentPrerelease(t *testing.T) {
	withBuildInfo(t, "0.4.0-beta.2", "unknown", "unknown")

	detailed := GetDetailedVersion()
	for _, want := range []string{"Build Type: development", "Prerelease: yes"} {
		if !strings.Contains(detailed, want) {
			t.Errorf("GetDetailedVersion() missing %q in:\n%s", want, detailed)
		}
	}
}
