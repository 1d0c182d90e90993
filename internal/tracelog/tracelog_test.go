package tracelog

import (
	"bytes"
	"log"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestScope_IsEnabledRequiresAllBits(t *testing.T) {
	f := ScopeInstantiate | ScopeLink
	require.True(t, f.IsEnabled(ScopeInstantiate))
	require.True(t, f.IsEnabled(ScopeLink))
	require.False(t, f.IsEnabled(ScopeDispatch))
	require.True(t, ScopeAll.IsEnabled(ScopeResource))
}

func TestScope_String(t *testing.T) {
	require.Equal(t, "instantiate|link", (ScopeInstantiate | ScopeLink).String())
	require.Equal(t, "all", ScopeAll.String())
}

func TestEnableDisableHave(t *testing.T) {
	Disable(ScopeAll)
	require.False(t, Have(ScopeDispatch))

	Enable(ScopeDispatch)
	require.True(t, Have(ScopeDispatch))
	require.False(t, Have(ScopeLink))

	Disable(ScopeDispatch)
	require.False(t, Have(ScopeDispatch))
}

func TestLogf_NoOpWhenScopeDisabled(t *testing.T) {
	Disable(ScopeAll)
	var buf bytes.Buffer
	orig := log.Writer()
	log.SetOutput(&buf)
	defer log.SetOutput(orig)

	Logf(ScopeResource, "should not appear")
	require.Empty(t, buf.String())
}

func TestLogf_WritesWhenScopeEnabled(t *testing.T) {
	Disable(ScopeAll)
	Enable(ScopeResource)
	defer Disable(ScopeResource)

	var buf bytes.Buffer
	orig := log.Writer()
	log.SetOutput(&buf)
	defer log.SetOutput(orig)

	Logf(ScopeResource, "resource %d created", 7)
	require.Contains(t, buf.String(), "resource 7 created")
	require.Contains(t, buf.String(), "[resource]")
}
