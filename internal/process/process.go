// Package process runs external tools so that cancelling their context
// tears down the whole process tree.
package process

import "time"

// waitDelay bounds how long Wait blocks on the child's pipes after the
// process has been killed.
const waitDelay = 5 * time.Second
