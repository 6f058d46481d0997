//    HipparchiaTopicRuns
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package mm

import (
	"fmt"
	"runtime"
)

//
// CHANNEL-BASED PATHINFO REPORTING TO COMMUNICATE STATS BETWEEN ROUTINES
//

// PIReply - PathInfoHub helper struct for returning the PathInfo
type PIReply struct {
	Request  bool
	Response chan map[string]int
}

var (
	PIUpdate  = make(chan string, 2*runtime.NumCPU())
	PIRequest = make(chan PIReply)
)

// LogPaths - increment path counter for this path and report the heap at PEEK
func (m *MessageMaker) LogPaths(fn string) {
	// sample output: "[HTR] RtPanel() current heap: 14M"
	const (
		HEAP = "%s current heap: %s"
	)

	// never stall a route if the hub is not running
	select {
	case PIUpdate <- fn:
	default:
	}

	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)
	m.Emit(fmt.Sprintf(HEAP, fn, fmt.Sprintf("%dM", mem.HeapAlloc/1024/1024)), MSGPEEK)
}

// PathInfoHub - log paths that pass through MessageMaker.LogPaths; note that we are assuming only one mm is logging
func PathInfoHub() {
	var (
		PathsCalled = make(map[string]int)
	)

	// the main loop; it will never exit
	for {
		select {
		case upd := <-PIUpdate:
			PathsCalled[upd]++
		case req := <-PIRequest:
			cp := make(map[string]int, len(PathsCalled))
			for k, v := range PathsCalled {
				cp[k] = v
			}
			req.Response <- cp
		}
	}
}
