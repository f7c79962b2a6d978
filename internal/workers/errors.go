package workers

import "errors"

var errNoDraft = errors.New("task returned no draft")
