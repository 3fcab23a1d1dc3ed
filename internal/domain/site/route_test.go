package site

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	cases := map[string]Route{
		"":                  {Kind: RouteHome},
		"/":                 {Kind: RouteHome},
		"/posts":            {Kind: RoutePosts},
		"/posts/":           {Kind: RoutePosts},
		"/posts/hello":      {Kind: RoutePost, Slug: "hello"},
		"/posts/hello/":     {Kind: RoutePost, Slug: "hello"},
		"/posts/hello.html": {Kind: RoutePost, Slug: "hello"},
		"/about":            {Kind: RouteOther},
	}
	for path, want := range cases {
		require.Equal(t, want, Classify(path), path)
	}
}

func TestAsideHidden(t *testing.T) {
	require.False(t, AsideHidden("/posts/hello", 0))
	require.True(t, AsideHidden("/posts/hello", 12))
	require.False(t, AsideHidden("/posts/", 12))
	require.False(t, AsideHidden("/about", 12))
}

func TestAsideRule_Hidden(t *testing.T) {
	r := AsideRule{RoutePrefix: "/notes/", HideOnScroll: true}
	require.True(t, r.Hidden("/notes/one", 3))
	require.False(t, r.Hidden("/notes/", 3))
	require.False(t, r.Hidden("/posts/one", 3))

	r.HideOnScroll = false
	require.False(t, r.Hidden("/notes/one", 3))
}

func TestRoute_Link(t *testing.T) {
	require.Equal(t, "/posts/hello", Classify("/posts/hello.html").Link())
	require.Equal(t, "/posts", Classify("/posts/").Link())
	require.Equal(t, "/", Classify("").Link())
	require.Empty(t, Classify("/about").Link())
}
