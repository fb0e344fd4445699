package cmd

import (
	"context"

	"go.uber.org/zap"

	"github.com/oneconcern/datagit/pkg/core"
	"github.com/oneconcern/datagit/pkg/dlogger"
	"github.com/oneconcern/datagit/pkg/store/bdgr"
)

var logger = zap.NewNop()

func initLogger() {
	l, err := dlogger.GetLogger(config.LogLevel, dlogger.Console())
	if err != nil {
		wrapFatalln("invalid log level", err)
		return
	}
	logger = l
}

// openRepository opens the configured store, and returns the repository with a function to close the store
func openRepository() (*core.Repository, func(), error) {
	maxSize, err := config.maxValueSize()
	if err != nil {
		return nil, nil, err
	}

	s, err := bdgr.Open(config.Dir,
		bdgr.WithLogger(logger.Named("store")),
		bdgr.WithMaxValueSize(maxSize),
	)
	if err != nil {
		return nil, nil, err
	}

	m := newCLIMetrics()
	opts := []core.Option{
		core.Logger(logger),
		core.Metrics(m.metrics()),
		core.MaxRetries(config.Retries),
	}
	if author := config.Author.contributor(); !author.IsZero() {
		opts = append(opts, core.DefaultAuthor(author))
	}
	if committer := config.Committer.contributor(); !committer.IsZero() {
		opts = append(opts, core.DefaultCommitter(committer))
	}

	closer := func() {
		m.flush()
		if erc := s.Close(); erc != nil {
			logger.Warn("closing store", zap.Error(erc))
		}
		_ = logger.Sync()
	}
	return core.New(s, opts...), closer, nil
}

// withRepository runs an action on the configured repository.
// The store is closed before reporting a failure.
func withRepository(msg string, action func(context.Context, *core.Repository) error) {
	repo, closer, err := openRepository()
	if err != nil {
		wrapFatalln("open repository", err)
		return
	}

	err = action(context.Background(), repo)
	closer()
	if err != nil {
		wrapFatalln(msg, err)
	}
}
