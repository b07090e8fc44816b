package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestString(t *testing.T) {
	oldVersion, oldCommit, oldDate := Version, Commit, Date
	t.Cleanup(func() { Version, Commit, Date = oldVersion, oldCommit, oldDate })

	Version, Commit, Date = "1.2.0", "abc123", "2026-01-02"
	assert.Equal(t, "1.2.0 (commit abc123, built 2026-01-02)", String())
}
