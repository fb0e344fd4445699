// Package core is the library surface of datagit.
//
// A Repository commits structured values under keys, reads their history,
// forks keys and merges them.
//
//	repo := core.New(commitStore, core.DefaultAuthor(model.NewContributor("jane", "jane@example.com")))
//	c, err := repo.Commit(ctx, "roses", value.MustFrom(map[string]interface{}{"roses": "red"}))
//
// An Object wraps a key for a read-modify-commit workflow, optionally committing
// on every edit.
package core
