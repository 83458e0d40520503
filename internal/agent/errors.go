package agent

import "errors"

// ErrNoDatasets means the store has no dataset tables yet; callers turn this
// into a "please load some CSV files" message instead of a server error.
var ErrNoDatasets = errors.New("no datasets loaded")
