package accounting

import (
	"github.com/viant/fluxcost/policy"
	"github.com/viant/fluxcost/service/dao"
)

// Errors returned by the service; match them with errors.Is.
var (
	ErrDuplicateProcess    = dao.ErrAlreadyExists
	ErrProcessNotFound     = dao.ErrNotFound
	ErrUnknownResourceKind = policy.ErrUnknownKind
)
