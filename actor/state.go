/*
 * MIT License
 *
 * Copyright (c) 2022-2025 Arsene Tochemey Gandote
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
 */

package actor

// State is the lifecycle state of an actor instance
type State uint32

const (
	// Created is the state of an instance whose loop has not started yet
	Created State = iota
	// SettingUp is the state while the setup hook runs
	SettingUp
	// Running is the state while envelopes are processed
	Running
	// CleaningUp is the state while the cleanup hook runs and leftovers are drained
	CleaningUp
	// Stopped is the final state
	Stopped
)

// String returns the state name
func (s State) String() string {
	switch s {
	case Created:
		return "created"
	case SettingUp:
		return "setting-up"
	case Running:
		return "running"
	case CleaningUp:
		return "cleaning-up"
	case Stopped:
		return "stopped"
	default:
		return "unknown"
	}
}
