package keymap

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
	"github.com/stretchr/testify/assert"
)

func TestBaseSections(t *testing.T) {
	sections := NewBase().Sections()

	names := make([]string, 0, len(sections))
	for _, s := range sections {
		names = append(names, s.Name)
		assert.False(t, s.IsEmpty(), s.Name)
	}
	assert.Equal(t, []string{SectionNavigation, SectionActions, SectionFilter, SectionSystem}, names)
}

func TestFilterEnabled(t *testing.T) {
	k := NewBase()
	k.Refresh.SetEnabled(false)

	s := ActionsSection(k.Refresh)
	assert.True(t, s.IsEmpty())
	assert.Empty(t, s.FilterEnabled())
}

func TestBaseHelpKeys(t *testing.T) {
	k := NewBase()
	assert.Equal(t, []string{"q", "ctrl+c"}, k.Quit.Keys())
	assert.Equal(t, key.Help{Key: "r", Desc: "reload"}, k.Refresh.Help())
	assert.Len(t, k.FullHelp(), 3)
}
