//    HipparchiaTopicRuns
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package lnch

import (
	"github.com/e-gun/HipparchiaTopicRuns/internal/mm"
)

// UpdateMessageMakersWithConfig - every package's MessageMaker picks up the configured level and colour setting
func UpdateMessageMakersWithConfig() {
	mm.ConfigureAll(Config.LogLevel, Config.BlackAndWhite)
}
