// Package store keeps story records on disk and reports changes to them.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/peterbourgon/diskv/v3"
	"go.uber.org/zap"

	"tableflip.dev/plancal/pkg/story"
)

// ErrNotFound is returned when no story has the requested id.
var ErrNotFound = errors.New("store: story not found")

// Persistence is the record source calendar views are built from: it hands
// out the current stories and accepts new or updated ones.
type Persistence interface {
	List(ctx context.Context) []*story.Story
	Get(ctx context.Context, id int) (*story.Story, error)
	Store(s *story.Story) error
	Delete(id int) error
	Watch(ctx context.Context) (<-chan Event, error)
}

const storiesBucket = "stories"

// Load creates a Persistence backed by diskv. A nil cfg loads the config
// file; a nil logger discards read problems.
func Load(cfg Config, log *zap.Logger) (Persistence, error) {
	if cfg == nil {
		var err error
		cfg, err = LoadConfig()
		if err != nil {
			return nil, err
		}
	}
	if log == nil {
		log = zap.NewNop()
	}

	basePath := cfg.BasePath()
	if basePath == "" {
		return nil, errors.New("store: base path unknown")
	}
	return &persistence{d: diskv.New(diskv.Options{
		BasePath:          basePath,
		AdvancedTransform: keyToPathTransform,
		InverseTransform:  pathToKeyTransform,
		// Other plancal processes write the same directory, so reads go to disk.
		CacheSizeMax: 0,
	}), basePath: basePath, log: log.Named("store")}, nil
}

type persistence struct {
	d        *diskv.Diskv
	basePath string
	log      *zap.Logger
}

func (p *persistence) read(key string) (*story.Story, error) {
	val, err := p.d.Read(key)
	if err != nil {
		return nil, err
	}
	s := &story.Story{}
	if err := json.Unmarshal(val, s); err != nil {
		return nil, err
	}
	return s, nil
}

func (p *persistence) List(ctx context.Context) []*story.Story {
	all := make([]*story.Story, 0)
	for key := range p.d.KeysPrefix(storiesBucket+"-", ctx.Done()) {
		s, err := p.read(key)
		if err != nil {
			p.log.Warn("skipping unreadable story", zap.String("key", key), zap.Error(err))
			continue
		}
		all = append(all, s)
	}
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].ID < all[j].ID
	})
	return all
}

func (p *persistence) Get(_ context.Context, id int) (*story.Story, error) {
	key := toKey(id)
	if !p.d.Has(key) {
		return nil, fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	s, err := p.read(key)
	if err != nil {
		return nil, fmt.Errorf("store: read story %d: %w", id, err)
	}
	return s, nil
}

func (p *persistence) Store(s *story.Story) error {
	if err := s.Validate(); err != nil {
		return err
	}
	data, err := json.Marshal(s)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(p.basePath, 0o755); err != nil {
		return fmt.Errorf("store: ensure base path: %w", err)
	}
	if err := p.d.Write(toKey(s.ID), data); err != nil {
		return fmt.Errorf("store: write story %d: %w", s.ID, err)
	}
	p.log.Debug("stored story", zap.Int("id", s.ID), zap.Int("features", len(s.Features)))
	return nil
}

func (p *persistence) Delete(id int) error {
	key := toKey(id)
	if !p.d.Has(key) {
		return fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	return p.d.Erase(key)
}

func keyToPathTransform(s string) *diskv.PathKey {
	parts := strings.Split(s, "-")
	return &diskv.PathKey{
		Path:     parts[:len(parts)-1],
		FileName: parts[len(parts)-1] + ".json",
	}
}

func pathToKeyTransform(pathKey *diskv.PathKey) string {
	name := strings.TrimSuffix(pathKey.FileName, ".json")
	return fmt.Sprintf("%s-%s", strings.Join(pathKey.Path, "-"), name)
}

// toKey makes `stories-<id>`.
func toKey(id int) string {
	return fmt.Sprintf("%s-%d", storiesBucket, id)
}

// idForFile returns the story id encoded in a diskv file name.
func idForFile(name string) (int, bool) {
	if !strings.HasSuffix(name, ".json") {
		return 0, false
	}
	id, err := strconv.Atoi(strings.TrimSuffix(name, ".json"))
	if err != nil {
		return 0, false
	}
	return id, true
}
