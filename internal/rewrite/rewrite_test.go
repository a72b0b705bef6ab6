// internal/rewrite/rewrite_test.go
package rewrite

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPatchLevelRule(t *testing.T) {
	rule, err := NewPatchLevelRule("PATCH_LEVEL")
	require.NoError(t, err)

	testCases := []struct {
		name    string
		input   string
		want    string
		matched bool
	}{
		{
			name:    "Plain declaration",
			input:   "const int PATCH_LEVEL = 3;\n",
			want:    "const int PATCH_LEVEL = 4;\n",
			matched: true,
		},
		{
			name:    "Aligned declaration",
			input:   "const int  PATCH_LEVEL      = 9;\n",
			want:    "const int  PATCH_LEVEL      = 10;\n",
			matched: true,
		},
		{
			name:    "Space after underscore",
			input:   "const int PATCH_ LEVEL = 41;\n",
			want:    "const int PATCH_ LEVEL = 42;\n",
			matched: true,
		},
		{
			name:    "Space instead of underscore",
			input:   "const int PATCH LEVEL = 0;",
			want:    "const int PATCH LEVEL = 1;",
			matched: true,
		},
		{
			name:    "Leading zeros kept",
			input:   "const int PATCH_LEVEL = 007;\n",
			want:    "const int PATCH_LEVEL = 008;\n",
			matched: true,
		},
		{
			name:    "Beyond 64 bits",
			input:   "const int PATCH_LEVEL = 18446744073709551615;\n",
			want:    "const int PATCH_LEVEL = 18446744073709551616;\n",
			matched: true,
		},
		{
			name:    "Missing semicolon",
			input:   "const int PATCH_LEVEL = 3\n",
			want:    "const int PATCH_LEVEL = 3\n",
			matched: false,
		},
		{
			name:    "Different identifier",
			input:   "const int SIM_PATCH_LEVEL = 3;\n",
			want:    "const int SIM_PATCH_LEVEL = 3;\n",
			matched: false,
		},
		{
			name:    "Lowercase identifier",
			input:   "const int patch_level = 3;\n",
			want:    "const int patch_level = 3;\n",
			matched: false,
		},
		{
			name:    "Unrelated line",
			input:   "const bool SIM_IS_APPLE = true;\n",
			want:    "const bool SIM_IS_APPLE = true;\n",
			matched: false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, matched := rule.Apply(tc.input)
			assert.Equal(t, tc.matched, matched)
			assert.Equal(t, tc.want, got)
		})
	}
}

// The first textual occurrence of the value is replaced, even when it sits
// outside the declaration.
func TestPatchLevelRule_ReplacesFirstOccurrence(t *testing.T) {
	rule, err := NewPatchLevelRule("PATCH_LEVEL")
	require.NoError(t, err)

	got, matched := rule.Apply("/* 7 */ const int PATCH_LEVEL = 7; // 7\n")
	assert.True(t, matched)
	assert.Equal(t, "/* 8 */ const int PATCH_LEVEL = 7; // 7\n", got)
}

func TestPatchLevelRule_IncrementsTwice(t *testing.T) {
	rule, err := NewPatchLevelRule("SIM_PATCH_LEVEL")
	require.NoError(t, err)

	line := "const int  SIM_PATCH_LEVEL  = 10;\n"
	line, _ = rule.Apply(line)
	line, _ = rule.Apply(line)
	assert.Equal(t, "const int  SIM_PATCH_LEVEL  = 12;\n", line)
}

func TestNewRules_EmptyIdentifier(t *testing.T) {
	_, err := NewPatchLevelRule(" ")
	assert.ErrorIs(t, err, errEmptyIdentifier)

	_, err = NewBranchRule("", func() string { return "main" })
	assert.ErrorIs(t, err, errEmptyIdentifier)

	_, err = NewVersionRule("")
	assert.ErrorIs(t, err, errEmptyIdentifier)

	_, err = NewBranchRule("SIM_GIT_BRANCH", nil)
	assert.Error(t, err)
}

func TestBranchRule(t *testing.T) {
	rule, err := NewBranchRule("SIM_GIT_BRANCH", func() string { return "feature/x" })
	require.NoError(t, err)

	testCases := []struct {
		name    string
		input   string
		want    string
		matched bool
	}{
		{
			name:    "Plain declaration",
			input:   "const char SIM_GIT_BRANCH[] = \"old\";\n",
			want:    "const char SIM_GIT_BRANCH[] = \"feature/x\";\n",
			matched: true,
		},
		{
			name:    "Trailing content is discarded",
			input:   "const char SIM_GIT_BRANCH[] = \"main\"; // stamped by hook\n",
			want:    "const char SIM_GIT_BRANCH[] = \"feature/x\";\n",
			matched: true,
		},
		{
			name:    "Bracket spacing is preserved",
			input:   "    const char   SIM_GIT_BRANCH[ ]   =   \"\";",
			want:    "const char SIM_GIT_BRANCH[ ] = \"feature/x\";\n",
			matched: true,
		},
		{
			name:    "Different identifier",
			input:   "const char SIM_VERSION[ ]   = \"B.00.09\";\n",
			want:    "const char SIM_VERSION[ ]   = \"B.00.09\";\n",
			matched: false,
		},
		{
			name:    "Pointer declaration",
			input:   "const char *SIM_GIT_BRANCH = \"main\";\n",
			want:    "const char *SIM_GIT_BRANCH = \"main\";\n",
			matched: false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, matched := rule.Apply(tc.input)
			assert.Equal(t, tc.matched, matched)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestBranchRule_ResolvesBranchOnce(t *testing.T) {
	calls := 0
	rule, err := NewBranchRule("GIT_BRANCH", func() string {
		calls++
		return "main"
	})
	require.NoError(t, err)

	rule.Apply("int x = 1;\n")
	assert.Equal(t, 0, calls, "branch must not be read before a match")

	rule.Apply("const char GIT_BRANCH[ ] = \"a\";\n")
	rule.Apply("const char GIT_BRANCH[ ] = \"b\";\n")
	assert.Equal(t, 1, calls)
}

func TestVersionRule(t *testing.T) {
	rule, err := NewVersionRule("Version")
	require.NoError(t, err)

	testCases := []struct {
		name    string
		input   string
		want    string
		matched bool
	}{
		{"Double quotes", `const Version = "0.2.1"` + "\n", `const Version = "0.2.2"` + "\n", true},
		{"Trailing comment kept", `const Version = "1.9.9" // major.minor.patch`, `const Version = "1.9.10" // major.minor.patch`, true},
		{"v prefix kept", `const Version = "v1.2.3"`, `const Version = "v1.2.4"`, true},
		{"Single quotes", `const Version = '3.0.0'`, `const Version = '3.0.1'`, true},
		{"Leading zeros rejected", `const Version = "01.2.3"`, `const Version = "01.2.3"`, false},
		{"Prerelease not matched", `const Version = "1.2.3-rc1"`, `const Version = "1.2.3-rc1"`, false},
		{"Var not matched", `var Version = "1.2.3"`, `var Version = "1.2.3"`, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, matched := rule.Apply(tc.input)
			assert.Equal(t, tc.matched, matched)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestRuleNames(t *testing.T) {
	p, _ := NewPatchLevelRule("PATCH_LEVEL")
	b, _ := NewBranchRule("SIM_GIT_BRANCH", func() string { return "" })
	v, _ := NewVersionRule("Version")

	assert.Equal(t, "patch-level:PATCH_LEVEL", p.Name())
	assert.Equal(t, "branch:SIM_GIT_BRANCH", b.Name())
	assert.Equal(t, "version:Version", v.Name())
}
