// Copyright 2015 Google Inc. All rights reserved
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package slavegen

// Transition is one edge out of a branch State: a matcher, the index of
// the state it leads to, and whether crossing it should arm CRC capture
// (the two bytes after it are the CRC tail, never value-checked).
type Transition struct {
	Matcher Matcher
	Next    int
	SetCRC  bool
}

// Arg is one resolved callback argument: its byte offset within the frame
// buffer and the width that selects how the emitter reads it
// (buffer[o] for 1, ntoh(o) for 2, ntohl(o) for 4).
type Arg struct {
	Offset int
	Size   int
}

// Operation is a terminal state's payload: which callback to invoke and
// the already-bound, already-fit-checked arguments to pass it.
type Operation struct {
	Callback string
	Args     []Arg
}

// State is one node of the compiled trie. A branch state owns outgoing
// Transitions and no Op; an operation (terminal) state owns an Op and no
// Transitions. Pos is the frame byte-position of the last byte consumed
// to reach this state.
type State struct {
	Index       int
	Name        string
	Pos         int
	Transitions []Transition
	Op          *Operation
}

// IsOperation reports whether s is a terminal operation state.
func (s *State) IsOperation() bool { return s.Op != nil }

// transitionFor returns the index of an existing transition out of s
// whose matcher is Equal to m, or -1 if none exists. Used by the trie
// compiler to decide whether to merge into an existing path or branch a
// new one.
func (s *State) transitionFor(m Matcher) int {
	for i, t := range s.Transitions {
		if t.Matcher.Equal(m) {
			return i
		}
	}
	return -1
}

// Graph is the compiled state graph: a flat arena of states addressed by
// stable index, root first. Transitions hold child indices rather than
// pointers, so the graph serializes and diffs trivially for testing.
type Graph struct {
	States []*State
}

func (g *Graph) newState(name string, pos int) *State {
	s := &State{Index: len(g.States), Name: name, Pos: pos}
	g.States = append(g.States, s)
	return s
}

// Root is the distinguished DEVICE_ADDRESS state, always index 0.
func (g *Graph) Root() *State { return g.States[0] }
