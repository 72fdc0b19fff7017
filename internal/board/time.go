package board

import "time"

// timeNow is a package-level variable for testability.
// Tests can replace this to control timestamps in assertions.
var timeNow = time.Now

// now returns the current time as an RFC3339 UTC string, the format
// used for every createdAt/updatedAt stamp in the model.
func now() string {
	return timeNow().UTC().Format(time.RFC3339)
}
