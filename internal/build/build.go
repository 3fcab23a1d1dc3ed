package build

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	domainbuild "ylwblog/internal/domain/build"
	"ylwblog/internal/domain/config"
	"ylwblog/internal/domain/content"
	"ylwblog/internal/index"
	"ylwblog/internal/ingest"
	"ylwblog/internal/metrics"
)

type Builder struct {
	Cfg     config.Config
	Logger  *slog.Logger
	Metrics metrics.Recorder
}

type Result struct {
	Posts       []content.Post
	Warnings    []ingest.Warning
	Skipped     int
	Fingerprint string
	Written     bool
	Duration    time.Duration
}

func (b *Builder) logger() *slog.Logger {
	if b.Logger != nil {
		return b.Logger
	}
	return slog.Default()
}

func (b *Builder) recorder() metrics.Recorder {
	if b.Metrics != nil {
		return b.Metrics
	}
	return metrics.NoopRecorder{}
}

// Run loads every post and refreshes the data files and the index. When the
// loaded data matches the last snapshot and both files on disk still hash to
// it, nothing is rewritten.
func (b *Builder) Run(ctx context.Context) (*Result, error) {
	log := b.logger().With("component", "build")
	rec := b.recorder()
	start := time.Now()

	loaded, err := ingest.Load(ctx, ingest.OptionsFromConfig(b.Cfg.Posts))
	if err != nil {
		rec.IncRebuild(metrics.ResultError)
		return nil, fmt.Errorf("ingest failed: %w", err)
	}
	for _, w := range loaded.Warnings {
		log.Warn(w.Msg, "path", w.Path)
	}
	rec.IncWarnings(len(loaded.Warnings))

	postsJSON, err := MarshalPosts(loaded.Posts)
	if err != nil {
		rec.IncRebuild(metrics.ResultError)
		return nil, fmt.Errorf("encode posts: %w", err)
	}
	siteJSON, err := MarshalSite(SiteDataFrom(b.Cfg.Site))
	if err != nil {
		rec.IncRebuild(metrics.ResultError)
		return nil, fmt.Errorf("encode site: %w", err)
	}

	fp := domainbuild.Fingerprint{
		PostsHash: domainbuild.HashBytes(postsJSON),
		SiteHash:  domainbuild.HashBytes(siteJSON),
	}
	fp.ComputeSum()

	written, err := b.persist(loaded.Posts, postsJSON, siteJSON, fp)
	if err != nil {
		rec.IncRebuild(metrics.ResultError)
		return nil, err
	}

	res := &Result{
		Posts:       loaded.Posts,
		Warnings:    loaded.Warnings,
		Skipped:     loaded.Skipped,
		Fingerprint: fp.Sum,
		Written:     written,
		Duration:    time.Since(start),
	}
	rec.ObserveLoad(res.Duration, len(res.Posts), res.Skipped)
	if written {
		rec.IncRebuild(metrics.ResultOK)
	} else {
		rec.IncRebuild(metrics.ResultUnchanged)
	}

	log.Info("posts loaded",
		"posts", len(res.Posts),
		"skipped", res.Skipped,
		"warnings", len(res.Warnings),
		"written", written,
		"duration_ms", res.Duration.Milliseconds(),
	)
	return res, nil
}

func (b *Builder) persist(posts []content.Post, postsJSON, siteJSON []byte, fp domainbuild.Fingerprint) (bool, error) {
	st, err := index.Open(index.OpenOptions{Path: b.Cfg.Build.IndexPath})
	if err != nil {
		return false, fmt.Errorf("failed to open index: %w", err)
	}
	defer st.Close()

	prev, err := st.Fingerprint()
	if err != nil {
		return false, fmt.Errorf("read index fingerprint: %w", err)
	}
	if prev == fp.Sum && fileMatches(b.Cfg.Build.DataFile, fp.PostsHash) && fileMatches(b.Cfg.Build.SiteFile, fp.SiteHash) {
		return false, nil
	}

	if err := writeFileAtomic(b.Cfg.Build.DataFile, postsJSON); err != nil {
		return false, fmt.Errorf("write %s: %w", b.Cfg.Build.DataFile, err)
	}
	if err := writeFileAtomic(b.Cfg.Build.SiteFile, siteJSON); err != nil {
		return false, fmt.Errorf("write %s: %w", b.Cfg.Build.SiteFile, err)
	}

	if err := st.Rebuild(posts, index.RebuildOptions{
		Fingerprint: fp.Sum,
		BuiltAt:     time.Now(),
	}); err != nil {
		return false, fmt.Errorf("failed to rebuild index: %w", err)
	}
	return true, nil
}
