package oasdocs

import (
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildDetails(t *testing.T) {
	// Development builds carry the defaults; release builds set them via ldflags.
	v := Version()
	assert.True(t, v == "dev" || strings.HasPrefix(v, "v"), "unexpected version %q", v)
	assert.NotEmpty(t, Commit())
	assert.NotEmpty(t, BuildTime())
	assert.Equal(t, runtime.Version(), GoVersion())
}

func TestUserAgent(t *testing.T) {
	assert.Equal(t, "oasdocs/"+Version(), UserAgent())
}

func TestBuildInfo(t *testing.T) {
	info := BuildInfo()
	lines := strings.Split(info, "\n")
	assert.Equal(t, []string{
		"Version: " + Version(),
		"Commit: " + Commit(),
		"Build Time: " + BuildTime(),
		"Go Version: " + GoVersion(),
	}, lines)
}

func TestBuildDetails_Ldflags(t *testing.T) {
	origVersion, origCommit := version, commit
	t.Cleanup(func() { version, commit = origVersion, origCommit })

	version, commit = "v1.2.3", "abc1234"
	assert.Equal(t, "v1.2.3", Version())
	assert.Equal(t, "oasdocs/v1.2.3", UserAgent())
	assert.Contains(t, BuildInfo(), "Commit: abc1234")
}
