//    HipparchiaTopicRuns
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package vlt

import (
	"sync"

	"github.com/e-gun/HipparchiaTopicRuns/internal/mm"
	"github.com/e-gun/HipparchiaTopicRuns/internal/str"
	"github.com/e-gun/HipparchiaTopicRuns/internal/vv"
)

var Msg = mm.NewMessageMakerWithDefaults()

//
// THREAD SAFE INFRASTRUCTURE: MUTEX
//

// MakeSessionVault - one per viewer; new sessions start on the default left and right runs
func MakeSessionVault() *SessionVault {
	return &SessionVault{
		SessionMap: make(map[string]str.ViewerSession),
		left:       vv.DEFAULTLEFTRUN,
		right:      vv.DEFAULTRIGHTRUN,
	}
}

// SessionVault - every browser's pair of panel states, keyed by the ID cookie
type SessionVault struct {
	SessionMap map[string]str.ViewerSession
	left       int
	right      int
	mutex      sync.RWMutex
}

// SetDefaults - the run indices a fresh session starts on
func (sv *SessionVault) SetDefaults(left int, right int) {
	sv.mutex.Lock()
	defer sv.mutex.Unlock()
	sv.left = left
	sv.right = right
}

func (sv *SessionVault) makedefault(id string) str.ViewerSession {
	return str.ViewerSession{
		ID:    id,
		Left:  str.PanelState{Side: str.LEFT, RunIndex: sv.left},
		Right: str.PanelState{Side: str.RIGHT, RunIndex: sv.right},
	}
}

func (sv *SessionVault) InsertSess(s str.ViewerSession) {
	sv.mutex.Lock()
	defer sv.mutex.Unlock()
	sv.SessionMap[s.ID] = s
}

func (sv *SessionVault) Delete(id string) {
	sv.mutex.Lock()
	defer sv.mutex.Unlock()
	delete(sv.SessionMap, id)
}

func (sv *SessionVault) IsInVault(id string) bool {
	sv.mutex.RLock()
	defer sv.mutex.RUnlock()
	_, b := sv.SessionMap[id]
	return b
}

// GetSess - the stored session or, failing that, a default one
func (sv *SessionVault) GetSess(id string) str.ViewerSession {
	sv.mutex.RLock()
	defer sv.mutex.RUnlock()
	s, ok := sv.SessionMap[id]
	if !ok {
		s = sv.makedefault(id)
	}
	return s
}

// Update - replace one side's state only if fn accepts it; on error the session is left exactly as it was
func (sv *SessionVault) Update(id string, ps str.PanelState, fn func(str.ViewerSession) error) (str.ViewerSession, error) {
	sv.mutex.Lock()
	defer sv.mutex.Unlock()

	s, ok := sv.SessionMap[id]
	if !ok {
		s = sv.makedefault(id)
	}

	next := s.WithPanel(ps)
	if err := fn(next); err != nil {
		return s, err
	}
	sv.SessionMap[id] = next
	return next, nil
}

// Len - how many sessions are being tracked
func (sv *SessionVault) Len() int {
	sv.mutex.RLock()
	defer sv.mutex.RUnlock()
	return len(sv.SessionMap)
}
