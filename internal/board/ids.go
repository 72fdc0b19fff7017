package board

import "github.com/google/uuid"

// newID is a package-level variable for testability.
// Tests can replace this to get deterministic node and board ids.
var newID = uuid.NewString
