//go:build !linux
// +build !linux

/*************************************************************************
 * Copyright 2017 Gravwell, Inc. All rights reserved.
 * Contact: <legal@gravwell.io>
 *
 * This software may be modified and distributed under the terms of the
 * BSD 2-clause license. See the LICENSE file for details.
 **************************************************************************/

package log

import (
	"os"
)

// Stderr redirection via dup2 is a linux-only trick; everywhere else the
// logger just writes to the process's stderr and ignores fileOverride.
func newStderrLogger(fileOverride string, cb StderrCallback) (lgr *Logger, err error) {
	lgr = New(os.Stderr)
	return
}
