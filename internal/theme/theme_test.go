package theme

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rit-tui/rit/internal/models"
)

func TestGetThemeKnownNames(t *testing.T) {
	for _, name := range AvailableThemes() {
		thm := GetTheme(name)
		require.NotNil(t, thm, name)
		assert.NotEmpty(t, thm.Accent, name)
		assert.NotEmpty(t, thm.ErrorFg, name)
		assert.NotEmpty(t, thm.Staged, name)
	}
}

func TestGetThemeFallsBackToDracula(t *testing.T) {
	assert.Equal(t, Dracula(), GetTheme("no-such-theme"))
	assert.Equal(t, Dracula(), GetTheme(""))
}

func TestIsLight(t *testing.T) {
	assert.True(t, IsLight(DefaultLight()))
	assert.True(t, IsLight(GruvboxLightName))
	assert.False(t, IsLight(DefaultDark()))
	assert.False(t, IsLight(NordName))
}

func TestStatusColor(t *testing.T) {
	thm := Nord()
	assert.Equal(t, thm.Modified, thm.StatusColor(models.Modified))
	assert.Equal(t, thm.Added, thm.StatusColor(models.Added))
	assert.Equal(t, thm.Added, thm.StatusColor(models.Copied))
	assert.Equal(t, thm.Deleted, thm.StatusColor(models.Deleted))
	assert.Equal(t, thm.Renamed, thm.StatusColor(models.Renamed))
	assert.Equal(t, thm.Untracked, thm.StatusColor(models.Untracked))
	assert.Equal(t, thm.Unmerged, thm.StatusColor(models.Unmerged))
	assert.Equal(t, thm.MutedFg, thm.StatusColor(models.Other))
	assert.Equal(t, thm.MutedFg, thm.StatusColor(models.Unmodified))
}

func TestDetectBackground(t *testing.T) {
	orig := hasDarkBackground
	t.Cleanup(func() { hasDarkBackground = orig })

	hasDarkBackground = func() bool { return true }
	name, err := DetectBackground(time.Second)
	require.NoError(t, err)
	assert.Equal(t, DefaultDark(), name)

	hasDarkBackground = func() bool { return false }
	name, err = DetectBackground(time.Second)
	require.NoError(t, err)
	assert.Equal(t, DefaultLight(), name)
}

func TestDetectBackgroundTimeout(t *testing.T) {
	orig := hasDarkBackground
	t.Cleanup(func() { hasDarkBackground = orig })

	release := make(chan struct{})
	defer close(release)
	hasDarkBackground = func() bool {
		<-release
		return true
	}
	_, err := DetectBackground(10 * time.Millisecond)
	assert.ErrorIs(t, err, ErrDetectTimeout)
}
