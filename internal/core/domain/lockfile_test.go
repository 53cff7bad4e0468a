package domain_test

import (
	"testing"

	"github.com/emdiet/popl/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestParseLockEntries(t *testing.T) {
	data := []byte("# header\nrequests==2.31.0\n\n  urllib3==2.0.7  \n# trailing comment\nidna==3.4")

	assert.Equal(t, []string{"requests==2.31.0", "urllib3==2.0.7", "idna==3.4"}, domain.ParseLockEntries(data))
}

func TestParseLockEntries_Empty(t *testing.T) {
	entries := domain.ParseLockEntries(nil)
	assert.NotNil(t, entries)
	assert.Empty(t, entries)
}

func TestFormatLockEntries_RoundTrip(t *testing.T) {
	entries := []string{"certifi==2023.7.22", "requests==2.31.0"}

	data := domain.FormatLockEntries(entries)

	assert.Equal(t, "# this is your requirements lock file\ncertifi==2023.7.22\nrequests==2.31.0\n", string(data))
	assert.Equal(t, entries, domain.ParseLockEntries(data))
}
