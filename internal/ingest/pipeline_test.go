package ingest

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	domainerr "ylwblog/internal/domain/errors"
)

func defaultOptions(root string) Options {
	return Options{
		Root:    root,
		Include: []string{"posts/*.md"},
		Exclude: []string{"posts/index.md"},
	}
}

func post(title, date string) string {
	return "---\ntitle: " + title + "\ndate: " + date + "\n---\n\nbody of " + title + "\n"
}

func TestLoad_SortsNewestFirst(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "posts/a.md", post("A", "2021-05-01"))
	writeFile(t, root, "posts/b.md", post("B", "2023-03-01"))
	writeFile(t, root, "posts/c.md", post("C", "2022-01-15"))
	writeFile(t, root, "posts/index.md", "---\ntitle: Posts\n---\n")

	res, err := Load(context.Background(), defaultOptions(root))
	require.NoError(t, err)
	require.Len(t, res.Posts, 3)
	require.Empty(t, res.Warnings)

	require.Equal(t, "/posts/b", res.Posts[0].Link)
	require.Equal(t, "/posts/c", res.Posts[1].Link)
	require.Equal(t, "/posts/a", res.Posts[2].Link)

	for i := 1; i < len(res.Posts); i++ {
		require.Greater(t, res.Posts[i-1].Date.Timestamp, res.Posts[i].Date.Timestamp)
	}

	b := res.Posts[0]
	require.Equal(t, "B", b.Title)
	require.Equal(t, "March 1, 2023", b.Date.Long)
	require.Equal(t, "1st, March, 2023", b.Date.Ordinal)
	require.Equal(t, 2, b.Date.Month)
	require.Equal(t, "Mar", b.Date.MonthAbbr)
}

func TestLoad_LinksDropContentRoot(t *testing.T) {
	base := t.TempDir()
	root := filepath.Join(base, "docs")
	writeFile(t, root, "posts/nested/deep.md", post("Deep", "2023-01-01"))
	writeFile(t, base, "posts/outside.md", post("Outside", "2023-01-01"))

	opt := defaultOptions(root)
	opt.Include = []string{"posts/**.md"}
	res, err := Load(context.Background(), opt)
	require.NoError(t, err)
	require.Len(t, res.Posts, 1)
	require.Equal(t, "/posts/nested/deep", res.Posts[0].Link)
}

func TestLoad_TiesKeepDiscoveryOrder(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "posts/x-late.md", post("late", "2024-01-01"))
	writeFile(t, root, "posts/b.md", post("B", "2023-06-06"))
	writeFile(t, root, "posts/a.md", post("A", "2023-06-06"))
	writeFile(t, root, "posts/c.md", post("C", "2023-06-06"))

	opt := defaultOptions(root)
	opt.Workers = 4
	res, err := Load(context.Background(), opt)
	require.NoError(t, err)
	require.Len(t, res.Posts, 4)

	links := make([]string, 0, len(res.Posts))
	for _, p := range res.Posts {
		links = append(links, p.Link)
	}
	require.Equal(t, []string{"/posts/x-late", "/posts/a", "/posts/b", "/posts/c"}, links)
}

func TestLoad_SameDayOrdersByTime(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "posts/a-morning.md", post("Morning", "2023-03-01 08:00:00"))
	writeFile(t, root, "posts/b-evening.md", post("Evening", "2023-03-01 20:00:00"))

	res, err := Load(context.Background(), defaultOptions(root))
	require.NoError(t, err)
	require.Len(t, res.Posts, 2)

	require.Equal(t, "/posts/b-evening", res.Posts[0].Link)
	require.Equal(t, "/posts/a-morning", res.Posts[1].Link)
	require.Greater(t, res.Posts[0].Date.Timestamp, res.Posts[1].Date.Timestamp)
	require.Equal(t, res.Posts[0].Date.Long, res.Posts[1].Date.Long)
	require.Equal(t, "March 1, 2023", res.Posts[0].Date.Long)
}

func TestLoad_DropsPostsWithoutUsableDate(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "posts/dated.md", post("Dated", "2023-01-01"))
	writeFile(t, root, "posts/undated.md", "---\ntitle: Undated\n---\nbody\n")
	writeFile(t, root, "posts/garbage.md", post("Garbage", "someday soon"))
	writeFile(t, root, "posts/broken.md", "---\ntitle: [oops\n---\nbody\n")

	res, err := Load(context.Background(), defaultOptions(root))
	require.NoError(t, err)
	require.Len(t, res.Posts, 1)
	require.Equal(t, "/posts/dated", res.Posts[0].Link)
	require.Equal(t, 3, res.Skipped)
	require.Len(t, res.Warnings, 3)

	byPath := map[string]Warning{}
	for _, w := range res.Warnings {
		byPath[w.Path] = w
	}
	var missing, invalid, broken int
	for _, w := range byPath {
		switch {
		case errors.Is(w.Err, domainerr.ErrMissingDate):
			missing++
		case errors.Is(w.Err, domainerr.ErrInvalidDate):
			invalid++
		case errors.Is(w.Err, domainerr.ErrFrontMatter):
			broken++
		}
	}
	require.Equal(t, 1, missing)
	require.Equal(t, 1, invalid)
	require.Equal(t, 1, broken)
}

func TestLoad_MissingTitleWarnsButKeepsPost(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "posts/untitled.md", "---\ndate: 2023-02-02\n---\nbody\n")

	res, err := Load(context.Background(), defaultOptions(root))
	require.NoError(t, err)
	require.Len(t, res.Posts, 1)
	require.Empty(t, res.Posts[0].Title)
	require.Len(t, res.Warnings, 1)
	require.Equal(t, "title is empty", res.Warnings[0].Msg)
}

func TestLoad_Drafts(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "posts/draft.md", "---\ntitle: WIP\ndate: 2023-02-02\ndraft: true\n---\n")
	writeFile(t, root, "posts/live.md", post("Live", "2023-02-01"))

	res, err := Load(context.Background(), defaultOptions(root))
	require.NoError(t, err)
	require.Len(t, res.Posts, 1)
	require.Equal(t, 1, res.Skipped)
	require.Empty(t, res.Warnings)

	opt := defaultOptions(root)
	opt.IncludeDrafts = true
	res, err = Load(context.Background(), opt)
	require.NoError(t, err)
	require.Len(t, res.Posts, 2)
	require.Equal(t, "/posts/draft", res.Posts[0].Link)
}

func TestLoad_ExcerptFallback(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "posts/a.md", "---\ntitle: A\ndate: 2023-02-02\n---\n\nFirst words of the post.\n")
	writeFile(t, root, "posts/b.md", "---\ntitle: B\ndate: 2023-02-01\ndescription: given\n---\n\nIgnored.\n")

	opt := defaultOptions(root)
	opt.Excerpt = true
	opt.ExcerptLength = 100
	res, err := Load(context.Background(), opt)
	require.NoError(t, err)
	require.Equal(t, "First words of the post.", res.Posts[0].Description)
	require.Equal(t, "given", res.Posts[1].Description)

	res, err = Load(context.Background(), defaultOptions(root))
	require.NoError(t, err)
	require.Empty(t, res.Posts[0].Description)
}

func TestLoad_Idempotent(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "posts/a.md", post("A", "2021-05-01"))
	writeFile(t, root, "posts/b.md", post("B", "2021-05-01"))
	writeFile(t, root, "posts/c.md", post("C", "2022-12-31"))

	first, err := Load(context.Background(), defaultOptions(root))
	require.NoError(t, err)
	second, err := Load(context.Background(), defaultOptions(root))
	require.NoError(t, err)

	a, err := json.Marshal(first.Posts)
	require.NoError(t, err)
	b, err := json.Marshal(second.Posts)
	require.NoError(t, err)
	require.Equal(t, a, b)
}

func TestLoad_EmptyDirectory(t *testing.T) {
	res, err := Load(context.Background(), defaultOptions(t.TempDir()))
	require.NoError(t, err)
	require.Empty(t, res.Posts)
	require.NotNil(t, res.Posts)
}

func TestLoad_CanceledContext(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "posts/a.md", post("A", "2021-05-01"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Load(ctx, defaultOptions(root))
	require.ErrorIs(t, err, context.Canceled)
}
