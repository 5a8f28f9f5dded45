/*
 * MIT License
 *
 * Copyright (c) 2025 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

package ipc

// State is the lifecycle state of a data source (§3) or a reactor
// context's stream_state (§4.6/§4.7).
type State uint8

const (
	StateInit State = iota
	StateReadyPending
	StateReady
	StateStarted
	StateStopped
	StateDisconnected
	StateClosed
	StateError
	StateFull
	StateTimeout
	StateUninit
)

func (s State) String() string {
	switch s {
	case StateInit:
		return "init"
	case StateReadyPending:
		return "ready-pending"
	case StateReady:
		return "ready"
	case StateStarted:
		return "started"
	case StateStopped:
		return "stopped"
	case StateDisconnected:
		return "disconnected"
	case StateClosed:
		return "closed"
	case StateError:
		return "error"
	case StateFull:
		return "full"
	case StateTimeout:
		return "timeout"
	case StateUninit:
		return "uninit"
	default:
		return "unknown state"
	}
}

// Terminal reports whether a data source in this state has left both
// the readiness container and the session map (§3 invariant).
func (s State) Terminal() bool {
	return s == StateClosed || s == StateUninit
}

// Role identifies what kind of endpoint a data source represents (§3).
type Role uint8

const (
	RoleListener Role = iota
	RoleOutboundClient
	RoleAcceptedSession
)

func (r Role) String() string {
	switch r {
	case RoleListener:
		return "listener"
	case RoleOutboundClient:
		return "outbound-client"
	case RoleAcceptedSession:
		return "accepted-session"
	default:
		return "unknown role"
	}
}
