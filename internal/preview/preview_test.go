package preview

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vango-dev/docsite/pkg/content"
)

func TestRender(t *testing.T) {
	p, err := content.Parse("commands/etcd.md",
		[]byte("---\ntitle: etcd\n---\n# etcd\n\nList members:\n\n```sh\netcdctl member list\n```\n"),
		content.Options{})
	require.NoError(t, err)

	var sb strings.Builder
	require.NoError(t, Render(&sb, p, Options{Style: "notty", Width: 60}))

	out := sb.String()
	assert.Contains(t, out, "etcd")
	assert.Contains(t, out, "List members:")
	assert.Contains(t, out, "etcdctl member list")
	assert.NotContains(t, out, "title: etcd")
}

func TestRender_UnknownStyle(t *testing.T) {
	p, err := content.Parse("a.md", []byte("plain text\n"), content.Options{})
	require.NoError(t, err)

	var sb strings.Builder
	err = Render(&sb, p, Options{Style: "no-such-style"})
	require.Error(t, err)
}
