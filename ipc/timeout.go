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

import "time"

// Unbounded marks a Timeout budget ("block" or "total") as unlimited.
const Unbounded = -1 * time.Millisecond

// Timeout carries the two budgets every blocking primitive in this
// module consults (§4.3): block is the most a single call may wait,
// total is the most that may elapse from Start to completion.
type Timeout struct {
	block time.Duration
	total time.Duration
	start time.Time
}

// NewTimeout builds a Timeout with the given block and total budgets.
// Pass Unbounded for "as long as needed" / "unbounded".
func NewTimeout(block, total time.Duration) *Timeout {
	return &Timeout{block: block, total: total}
}

// Start records the reference instant used by GetBlock and Done.
func (t *Timeout) Start() {
	t.start = time.Now()
}

// remainingTotal returns how much of the total budget is left, or
// Unbounded if the total budget itself is unbounded.
func (t *Timeout) remainingTotal() time.Duration {
	if t.total < 0 {
		return Unbounded
	}
	if t.start.IsZero() {
		return t.total
	}
	left := t.total - time.Since(t.start)
	if left < 0 {
		return 0
	}
	return left
}

// GetBlock returns the remaining time a single blocking call may still
// wait: the minimum of the block budget and what is left of the total
// budget.
func (t *Timeout) GetBlock() time.Duration {
	rem := t.remainingTotal()

	switch {
	case t.block < 0 && rem < 0:
		return Unbounded
	case t.block < 0:
		return rem
	case rem < 0:
		return t.block
	case t.block < rem:
		return t.block
	default:
		return rem
	}
}

// Done reports whether the total budget has fully elapsed.
func (t *Timeout) Done() bool {
	if t.total < 0 {
		return false
	}
	if t.start.IsZero() {
		return false
	}
	return time.Since(t.start) >= t.total
}
