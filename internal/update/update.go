// Package update checks GitHub for newer sampy releases and replaces the
// running binary on request.
package update

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"
	"github.com/creativeprojects/go-selfupdate"
	"gopkg.in/yaml.v3"
)

// Repository is the GitHub slug releases are published under.
const Repository = "TraceRicochet/sampy"

// CheckInterval is how long a cached lookup stays fresh.
const CheckInterval = 24 * time.Hour

// ErrDevBuild is returned when the running version is not a semver release.
var ErrDevBuild = errors.New("development build, cannot compare versions")

// Source looks up the latest published version.
type Source interface {
	Latest(ctx context.Context) (version string, found bool, err error)
}

// GitHub looks up releases with go-selfupdate.
type GitHub struct {
	Slug string
}

// Latest implements Source.
func (g GitHub) Latest(ctx context.Context) (string, bool, error) {
	latest, found, err := detect(ctx, g.slug())
	if err != nil || !found {
		return "", found, err
	}
	return latest.Version(), true, nil
}

func (g GitHub) slug() string {
	if g.Slug == "" {
		return Repository
	}
	return g.Slug
}

func newUpdater() (*selfupdate.Updater, error) {
	updater, err := selfupdate.NewUpdater(selfupdate.Config{
		Validator: &selfupdate.ChecksumValidator{UniqueFilename: "checksums.txt"},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create updater: %w", err)
	}
	return updater, nil
}

func detect(ctx context.Context, slug string) (*selfupdate.Release, bool, error) {
	updater, err := newUpdater()
	if err != nil {
		return nil, false, err
	}
	latest, found, err := updater.DetectLatest(ctx, selfupdate.ParseSlug(slug))
	if err != nil {
		return nil, false, fmt.Errorf("failed to detect latest version: %w", err)
	}
	return latest, found, nil
}

// Notice describes an available upgrade.
type Notice struct {
	Current string
	Latest  string
}

func (n Notice) String() string {
	return fmt.Sprintf("A new version of sampy is available: v%s → v%s", n.Current, n.Latest)
}

// Checker decides whether to show an upgrade notice. Lookups are cached in
// CacheFile so the network is hit at most once per CheckInterval.
type Checker struct {
	Source Source
	// CacheFile is optional; without it every Check queries Source.
	CacheFile string
	Now       func() time.Time
}

type cacheEntry struct {
	CheckedAt time.Time `yaml:"checked_at"`
	Latest    string    `yaml:"latest"`
}

// Check compares current against the latest release. It returns false for
// development builds and on any lookup failure.
func (c *Checker) Check(ctx context.Context, current string) (Notice, bool) {
	cur, err := parseVersion(current)
	if err != nil {
		return Notice{}, false
	}

	latest, ok := c.latest(ctx)
	if !ok {
		return Notice{}, false
	}
	lv, err := parseVersion(latest)
	if err != nil || !lv.GreaterThan(cur) {
		return Notice{}, false
	}
	return Notice{Current: cur.String(), Latest: lv.String()}, true
}

func (c *Checker) latest(ctx context.Context) (string, bool) {
	now := c.now()
	if entry, ok := c.readCache(); ok && now.Sub(entry.CheckedAt) < CheckInterval {
		return entry.Latest, entry.Latest != ""
	}

	version, found, err := c.Source.Latest(ctx)
	if err != nil {
		return "", false
	}
	// A miss is cached too so an unpublished repo is not queried every run.
	c.writeCache(cacheEntry{CheckedAt: now, Latest: version})
	return version, found
}

func (c *Checker) now() time.Time {
	if c.Now != nil {
		return c.Now()
	}
	return time.Now()
}

func (c *Checker) readCache() (cacheEntry, bool) {
	if c.CacheFile == "" {
		return cacheEntry{}, false
	}
	data, err := os.ReadFile(c.CacheFile)
	if err != nil {
		return cacheEntry{}, false
	}
	var entry cacheEntry
	if err := yaml.Unmarshal(data, &entry); err != nil {
		return cacheEntry{}, false
	}
	return entry, true
}

// writeCache is best effort.
func (c *Checker) writeCache(entry cacheEntry) {
	if c.CacheFile == "" {
		return
	}
	data, err := yaml.Marshal(entry)
	if err != nil {
		return
	}
	if err := os.MkdirAll(filepath.Dir(c.CacheFile), 0o755); err != nil {
		return
	}
	_ = os.WriteFile(c.CacheFile, data, 0o644)
}

func parseVersion(v string) (*semver.Version, error) {
	parsed, err := semver.NewVersion(strings.TrimPrefix(v, "v"))
	if err != nil {
		return nil, ErrDevBuild
	}
	return parsed, nil
}

// Result is the outcome of SelfUpdate.
type Result struct {
	Current string
	Latest  string
	// Available reports a release newer than Current.
	Available bool
	// Updated is false when already current or when only checking.
	Updated bool
}

// SelfUpdate replaces the running binary with the latest release unless
// checkOnly is set.
func SelfUpdate(ctx context.Context, current string, checkOnly bool) (Result, error) {
	res := Result{Current: strings.TrimPrefix(current, "v")}
	latest, found, err := detect(ctx, Repository)
	if err != nil {
		return res, err
	}
	if !found {
		return res, errors.New("no release found")
	}
	res.Latest = latest.Version()

	if _, err := parseVersion(current); err != nil {
		return res, err
	}
	res.Available = !latest.LessOrEqual(res.Current)
	if !res.Available || checkOnly {
		return res, nil
	}

	exe, err := selfupdate.ExecutablePath()
	if err != nil {
		return res, fmt.Errorf("failed to locate executable: %w", err)
	}
	updater, err := newUpdater()
	if err != nil {
		return res, err
	}
	if err := updater.UpdateTo(ctx, latest, exe); err != nil {
		return res, fmt.Errorf("update failed: %w", err)
	}
	res.Updated = true
	return res, nil
}
