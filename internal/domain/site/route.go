package site

import "strings"

type RouteKind string

const (
	RouteHome  RouteKind = "home"
	RoutePosts RouteKind = "posts"
	RoutePost  RouteKind = "post"
	RouteOther RouteKind = "other"
)

type Route struct {
	Kind RouteKind
	Slug string
}

func (r Route) String() string {
	if r.Slug == "" {
		return string(r.Kind)
	}
	return string(r.Kind) + " slug=" + r.Slug
}

const postsPrefix = "/posts/"

// Classify maps a clean URL path onto the route kinds the theme cares about.
func Classify(path string) Route {
	switch {
	case path == "" || path == "/":
		return Route{Kind: RouteHome}
	case path == "/posts" || path == postsPrefix:
		return Route{Kind: RoutePosts}
	case strings.HasPrefix(path, postsPrefix):
		slug := strings.TrimSuffix(strings.TrimPrefix(path, postsPrefix), "/")
		slug = strings.TrimSuffix(slug, ".html")
		return Route{Kind: RoutePost, Slug: slug}
	default:
		return Route{Kind: RouteOther}
	}
}

// Link is the clean URL of the route, or "" for kinds without one.
func (r Route) Link() string {
	switch r.Kind {
	case RouteHome:
		return "/"
	case RoutePosts:
		return "/posts"
	case RoutePost:
		return postsPrefix + r.Slug
	default:
		return ""
	}
}

// AsideRule tells the theme when to fade out the outline aside. It is
// written to the site file so the client and Hidden agree.
type AsideRule struct {
	RoutePrefix  string `json:"routePrefix"`
	HideOnScroll bool   `json:"hideOnScroll"`
}

func DefaultAsideRule() AsideRule {
	return AsideRule{RoutePrefix: postsPrefix, HideOnScroll: true}
}

// Hidden reports whether the aside is faded out on path at scrollTop. Only
// pages below the prefix count, never the prefix listing itself.
func (r AsideRule) Hidden(path string, scrollTop float64) bool {
	if !r.HideOnScroll || r.RoutePrefix == "" {
		return false
	}
	rest, ok := strings.CutPrefix(path, r.RoutePrefix)
	if !ok || strings.Trim(rest, "/") == "" {
		return false
	}
	return scrollTop != 0
}

// AsideHidden is the "page is scrolled" signal for the theme: the outline
// aside fades out on post pages once the document leaves the top.
func AsideHidden(path string, scrollTop float64) bool {
	return DefaultAsideRule().Hidden(path, scrollTop)
}
