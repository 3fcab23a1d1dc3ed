package ingest

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"

	"ylwblog/internal/datefmt"
	"ylwblog/internal/domain/config"
	"ylwblog/internal/domain/content"
	domainerr "ylwblog/internal/domain/errors"
)

type Warning struct {
	Path string
	Msg  string
	Err  error
}

type Options struct {
	Root          string
	Include       []string
	Exclude       []string
	IncludeDrafts bool
	Excerpt       bool
	ExcerptLength int
	Workers       int
}

func OptionsFromConfig(c config.PostsConfig) Options {
	return Options{
		Root:          c.ContentRoot,
		Include:       c.Include,
		Exclude:       c.Exclude,
		IncludeDrafts: c.IncludeDrafts,
		Excerpt:       c.Excerpt,
		ExcerptLength: c.ExcerptLength,
		Workers:       c.Workers,
	}
}

type Result struct {
	Posts    []content.Post
	Warnings []Warning
	Skipped  int
}

type fileResult struct {
	post  content.Post
	warns []Warning
	skip  bool
}

// Load discovers the post sources under opt.Root, reads their headers and
// returns the posts newest first. Posts without a usable date are dropped
// with a warning; only I/O failures abort the load.
func Load(ctx context.Context, opt Options) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m, err := NewMatcher(opt.Include, opt.Exclude)
	if err != nil {
		return nil, err
	}
	files, err := DiscoverSource(opt.Root, m)
	if err != nil {
		return nil, fmt.Errorf("discover %s: %w", opt.Root, err)
	}

	var ex *Excerpter
	if opt.Excerpt {
		ex = NewExcerpter()
	}

	workers := opt.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	// one slot per file keeps the output in discovery order
	slots := make([]fileResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, sf := range files {
		i, sf := i, sf
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			r, err := loadFile(sf, opt, ex)
			if err != nil {
				return domainerr.NewPostError(sf.Path, err)
			}
			slots[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	res := &Result{Posts: make([]content.Post, 0, len(slots))}
	for _, r := range slots {
		res.Warnings = append(res.Warnings, r.warns...)
		if r.skip {
			res.Skipped++
			continue
		}
		res.Posts = append(res.Posts, r.post)
	}

	sort.SliceStable(res.Posts, func(i, j int) bool {
		return res.Posts[i].Newer(res.Posts[j])
	})
	return res, nil
}

func loadFile(sf SourceFile, opt Options, ex *Excerpter) (fileResult, error) {
	raw, err := os.ReadFile(sf.Path)
	if err != nil {
		return fileResult{}, err
	}

	fm, body, err := ParseFrontMatter(raw)
	if err != nil {
		return fileResult{
			skip:  true,
			warns: []Warning{{Path: sf.Path, Msg: "skipped: " + err.Error(), Err: err}},
		}, nil
	}

	if fm.Draft && !opt.IncludeDrafts {
		return fileResult{skip: true}, nil
	}

	at, err := ParseDate(fm.RawDate())
	if err != nil {
		msg := "skipped: " + err.Error()
		if errors.Is(err, domainerr.ErrMissingDate) {
			msg = "skipped: front matter has no date"
		}
		return fileResult{
			skip:  true,
			warns: []Warning{{Path: sf.Path, Msg: msg, Err: err}},
		}, nil
	}

	link, err := LinkFor(opt.Root, sf.Path)
	if err != nil {
		return fileResult{}, err
	}

	p := content.Post{
		Link:        link,
		Title:       fm.Title,
		Description: fm.Description,
		Date:        datefmt.Format(at),
		SourcePath:  sf.Path,
	}
	p.Normalize()

	var warns []Warning
	if p.Title == "" {
		warns = append(warns, Warning{Path: sf.Path, Msg: "title is empty"})
	}
	if p.Description == "" && ex != nil {
		p.Description = ex.Excerpt(body, opt.ExcerptLength)
	}
	return fileResult{post: p, warns: warns}, nil
}

func (w Warning) String() string {
	return w.Path + ": " + w.Msg
}
