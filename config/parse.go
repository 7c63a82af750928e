/*************************************************************************
 * Copyright 2017 Gravwell, Inc. All rights reserved.
 * Contact: <legal@gravwell.io>
 *
 * This software may be modified and distributed under the terms of the
 * BSD 2-clause license. See the LICENSE file for details.
 **************************************************************************/

package config

import (
	"strconv"
	"strings"
)

const (
	kb = 1024
	mb = 1024 * kb
)

func ParseUint64(v string) (i uint64, err error) {
	if strings.HasPrefix(v, "0x") {
		i, err = strconv.ParseUint(strings.TrimPrefix(v, "0x"), 16, 64)
	} else {
		i, err = strconv.ParseUint(v, 10, 64)
	}
	return
}

func ParseInt64(v string) (i int64, err error) {
	if strings.HasPrefix(v, "0x") {
		i, err = strconv.ParseInt(strings.TrimPrefix(v, "0x"), 16, 64)
	} else {
		i, err = strconv.ParseInt(v, 10, 64)
	}
	return
}

func ParseBool(v string) (bool, error) {
	return strconv.ParseBool(strings.TrimSpace(v))
}
