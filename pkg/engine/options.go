package engine

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/oneconcern/memvcs/pkg/cafs"
	"github.com/oneconcern/memvcs/pkg/dlogger"
	"github.com/oneconcern/memvcs/pkg/model"
)

// Option configures a repository
type Option func(*settings)

type settings struct {
	name       string
	hasher     *cafs.Hasher
	l          *zap.Logger
	clock      func() time.Time
	registerer prometheus.Registerer
}

func defaultSettings() settings {
	logger, _ := dlogger.GetLogger(dlogger.LogLevelInfo)
	if logger == nil {
		logger = zap.NewNop()
	}
	return settings{
		hasher: cafs.NewHasher(),
		l:      logger,
		clock:  time.Now,
	}
}

// Name sets a name for this repository, used in logs and as the "repo" label of metrics
func Name(name string) Option {
	return func(s *settings) {
		s.name = name
	}
}

// Logger sets a logger for this repository
func Logger(logger *zap.Logger) Option {
	return func(s *settings) {
		if logger != nil {
			s.l = logger
		}
	}
}

// Hasher sets the hasher computing commit ids. It defaults to blake2b.
func Hasher(h *cafs.Hasher) Option {
	return func(s *settings) {
		if h != nil {
			s.hasher = h
		}
	}
}

// Algorithm sets the hash algorithm computing commit ids
func Algorithm(algo cafs.Algorithm) Option {
	return Hasher(cafs.NewHasher(cafs.WithAlgorithm(algo)))
}

// Clock sets the source of time for commit timestamps. It defaults to time.Now.
func Clock(clock func() time.Time) Option {
	return func(s *settings) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// Metrics registers the metrics of this repository.
//
// Repositories sharing a registerer must be given distinct names.
func Metrics(reg prometheus.Registerer) Option {
	return func(s *settings) {
		s.registerer = reg
	}
}

// CommitOption sets options for a single commit
type CommitOption func(*commitSettings)

type commitSettings struct {
	parent      cafs.Key
	contributor model.Contributor
}

// Parent sets the explicit parent of a commit.
//
// When committing to a branch without an explicit parent, the parent is the
// current tip of the branch, if any. A zero key is the same as no parent.
func Parent(id cafs.Key) CommitOption {
	return func(c *commitSettings) {
		c.parent = id
	}
}

// Contributor sets the author of a commit
func Contributor(contributor model.Contributor) CommitOption {
	return func(c *commitSettings) {
		c.contributor = contributor
	}
}
