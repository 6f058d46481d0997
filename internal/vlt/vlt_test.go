//    HipparchiaTopicRuns
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package vlt

import (
	"errors"
	"sync"
	"testing"

	"github.com/e-gun/HipparchiaTopicRuns/internal/str"
)

func TestDefaults(t *testing.T) {
	sv := MakeSessionVault()
	sv.SetDefaults(2, 3)
	s := sv.GetSess("x")
	if s.Left.RunIndex != 2 || s.Right.RunIndex != 3 || s.Left.Side != str.LEFT {
		t.Fatalf("session = %+v", s)
	}
	if sv.IsInVault("x") {
		t.Fatal("GetSess should not store anything")
	}
}

func TestUpdateKeepsStateOnError(t *testing.T) {
	sv := MakeSessionVault()
	ok := func(str.ViewerSession) error { return nil }
	bad := errors.New("no such run")

	if _, err := sv.Update("x", str.PanelState{Side: str.RIGHT, RunIndex: 4}, ok); err != nil {
		t.Fatal(err)
	}

	s, err := sv.Update("x", str.PanelState{Side: str.RIGHT, RunIndex: 9}, func(str.ViewerSession) error { return bad })
	if !errors.Is(err, bad) {
		t.Fatalf("err = %v", err)
	}
	if s.Right.RunIndex != 4 || sv.GetSess("x").Right.RunIndex != 4 {
		t.Fatalf("rejected update changed the session: %+v", sv.GetSess("x"))
	}
}

func TestUpdateSeesCandidate(t *testing.T) {
	sv := MakeSessionVault()
	var seen str.ViewerSession
	_, _ = sv.Update("x", str.PanelState{Side: str.LEFT, RunIndex: 7}, func(s str.ViewerSession) error {
		seen = s
		return nil
	})
	if seen.Left.RunIndex != 7 || seen.Right.RunIndex != sv.GetSess("x").Right.RunIndex {
		t.Fatalf("candidate = %+v", seen)
	}
}

func TestConcurrentUpdates(t *testing.T) {
	sv := MakeSessionVault()
	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			side := str.LEFT
			if i%2 == 0 {
				side = str.RIGHT
			}
			_, _ = sv.Update("shared", str.PanelState{Side: side, RunIndex: i}, func(str.ViewerSession) error { return nil })
			_ = sv.GetSess("shared")
		}(i)
	}
	wg.Wait()
	if sv.Len() != 1 {
		t.Fatalf("len = %d", sv.Len())
	}
	sv.Delete("shared")
	if sv.Len() != 0 {
		t.Fatal("delete failed")
	}
}
