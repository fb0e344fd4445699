package bdgr

import (
	"path/filepath"
	"time"

	units "github.com/docker/go-units"
	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/oneconcern/datagit/pkg/storage"
	"github.com/oneconcern/datagit/pkg/storage/localfs"
)

// DefaultMaxValueSize is the default limit on the size of an encoded value
const DefaultMaxValueSize = 16 * units.MiB

// Option for a badger commit store
type Option func(*settings)

type settings struct {
	l            *zap.Logger
	blobs        storage.Store
	maxValueSize int64
	inMemory     bool
	instrument   bool
	ownsDB       bool
	clock        func() time.Time
}

func defaultSettings() settings {
	return settings{
		l:            zap.NewNop(),
		maxValueSize: DefaultMaxValueSize,
		clock:        time.Now,
	}
}

// WithLogger sets a logger for the store. Storage calls are logged at debug level.
func WithLogger(l *zap.Logger) Option {
	return func(s *settings) {
		if l == nil {
			return
		}
		s.l = l
		s.instrument = l.Core().Enabled(zap.DebugLevel)
	}
}

// WithBlobs sets the storage for values
func WithBlobs(blobs storage.Store) Option {
	return func(s *settings) {
		s.blobs = blobs
	}
}

// WithMaxValueSize limits the size of encoded values. 0 means no limit.
func WithMaxValueSize(size int64) Option {
	return func(s *settings) {
		s.maxValueSize = size
	}
}

// InMemory keeps everything in memory
func InMemory(enabled bool) Option {
	return func(s *settings) {
		s.inMemory = enabled
	}
}

// WithClock sets the time source for commit timestamps
func WithClock(clock func() time.Time) Option {
	return func(s *settings) {
		if clock != nil {
			s.clock = clock
		}
	}
}

func commitsDir(dir string) string {
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "commits")
}

func defaultBlobs(dir string, inMemory bool) (storage.Store, error) {
	if inMemory || dir == "" {
		return localfs.NewAtomic(afero.NewMemMapFs())
	}
	fs := afero.NewBasePathFs(afero.NewOsFs(), filepath.Join(dir, "values"))
	if err := fs.MkdirAll(".", 0700); err != nil {
		return nil, err
	}
	return localfs.NewAtomic(fs)
}
