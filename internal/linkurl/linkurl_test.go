package linkurl_test

import (
	"testing"

	"github.com/jcdickinson/doclinks/internal/component"
	"github.com/jcdickinson/doclinks/internal/linkurl"
	"github.com/stretchr/testify/assert"
)

func TestDefault(t *testing.T) {
	t.Parallel()

	id := component.ID{Group: "io.netty", Name: "netty-handler", Version: "4.1.68.Final"}
	assert.Equal(t, "https://javadoc.io/doc/io.netty/netty-handler/4.1.68.Final/", linkurl.Default(id))
}

func TestTemplate_AppendsSlash(t *testing.T) {
	t.Parallel()

	r := linkurl.Template("https://group.com/{name}/{version}")
	assert.Equal(t, "https://group.com/sub-test/0.1.0/", r(component.ID{Group: "group", Name: "sub-test", Version: "0.1.0"}))
}

func TestRules(t *testing.T) {
	t.Parallel()

	r := linkurl.Rules([]linkurl.Rule{
		{Group: "group", Template: "https://group.com/{name}/{version}/"},
		{Group: "org.example.*", Template: "https://docs.example.org/{name}/{version}/"},
	}, nil)

	tests := []struct {
		id   component.ID
		want string
	}{
		{component.ID{Group: "group", Name: "a", Version: "1"}, "https://group.com/a/1/"},
		{component.ID{Group: "group.sub", Name: "a", Version: "1"}, "https://javadoc.io/doc/group.sub/a/1/"},
		{component.ID{Group: "org.example", Name: "b", Version: "2"}, "https://docs.example.org/b/2/"},
		{component.ID{Group: "org.example.core", Name: "c", Version: "3"}, "https://docs.example.org/c/3/"},
		{component.ID{Group: "org.examples", Name: "d", Version: "4"}, "https://javadoc.io/doc/org.examples/d/4/"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, r(tt.id), tt.id.String())
	}
}

func TestRules_CatchAllReplacesDefault(t *testing.T) {
	t.Parallel()

	r := linkurl.Rules([]linkurl.Rule{{Template: "https://mirror.local/{group}/{name}/{version}/"}}, nil)
	assert.Equal(t, "https://mirror.local/g/a/1/", r(component.ID{Group: "g", Name: "a", Version: "1"}))
}
