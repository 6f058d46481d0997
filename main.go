//    HipparchiaTopicRuns
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package main

import (
	"fmt"
	"os"

	"github.com/e-gun/HipparchiaTopicRuns/internal/lnch"
)

// these next variables should be injected at build time: 'go build -ldflags "-X main.GitCommit=$GIT_COMMIT"', etc

var GitCommit string
var VersSuppl string
var BuildDate string

func main() {
	// go tool pprof --pdf ./HipparchiaTopicRuns /tmp/profile1880749830/cpu.pprof > profile.pdf
	lnch.GitCommit = GitCommit
	lnch.VersSuppl = VersSuppl
	lnch.BuildDate = BuildDate

	if err := lnch.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, lnch.Msg.Color("C5"+err.Error()+"C0"))
		lnch.Msg.ExitOrHang(1)
	}
}
