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

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/golang/glog"
)

// compiler holds the in-progress state of one Compile call: the arena
// being built and the bookkeeping needed for the name-uniqueness and
// duplicate-path invariants. It is never reused across calls, matching
// §5's "constructed fresh per invocation."
type compiler struct {
	graph      *Graph
	usedNames  map[string]bool
	deviceByFC map[byte]*State
	callbacks  Callbacks
}

// Compile builds the state graph for spec: it validates the callback
// table, attaches one child state per declared device address, and for
// every command walks (and prefix-merges) the trie down to an operation
// state whose arguments are bound and fit-checked against the callback's
// prototype. The first diagnostic encountered aborts compilation; no
// partial graph is returned.
func Compile(spec *Spec) (*Graph, error) {
	if err := validateCallbacks(spec.Callbacks); err != nil {
		return nil, err
	}

	c := &compiler{
		graph:      &Graph{},
		usedNames:  make(map[string]bool),
		deviceByFC: make(map[byte]*State),
		callbacks:  spec.Callbacks,
	}

	root := c.newState("DEVICE_ADDRESS", 0)
	glog.V(1).Infof("trie: root state %s", root.Name)

	for _, dev := range spec.Devices {
		addr, err := parseDeviceAddress(dev.Address)
		if err != nil {
			return nil, err
		}
		deviceState, ok := c.deviceByFC[addr]
		if !ok {
			deviceState = c.newState(fmt.Sprintf("DEVICE_%d", addr), 1)
			c.deviceByFC[addr] = deviceState
			glog.V(2).Infof("trie: new device state %s for address %d", deviceState.Name, addr)
		} else {
			glog.V(2).Infof("trie: reusing device state %s for address %d", deviceState.Name, addr)
		}
		addrMatcher, err := ExactMatcher(U8, int64(addr), deviceState.Name)
		if err != nil {
			return nil, err
		}
		if !ok {
			root.Transitions = append(root.Transitions, Transition{Matcher: addrMatcher, Next: deviceState.Index})
		}
		for _, cmd := range dev.Commands {
			if err := c.walkCommand(addrMatcher, deviceState, cmd); err != nil {
				return nil, err
			}
		}
	}

	return c.graph, nil
}

func validateCallbacks(callbacks Callbacks) error {
	if len(callbacks) == 0 {
		return &CompileError{Kind: MissingCallbacks}
	}
	names := make([]string, 0, len(callbacks))
	for name := range callbacks {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if !IsValidIdentifier(name) {
			return &CompileError{Kind: InvalidCallbackName, Name: name}
		}
	}
	return nil
}

// parseDeviceAddress accepts decimal or 0x-prefixed hex and rejects
// values outside [0,255], per §4.2 step 3 / §6.
func parseDeviceAddress(key string) (byte, error) {
	key = strings.TrimSpace(key)
	base := 10
	digits := key
	if strings.HasPrefix(key, "0x") || strings.HasPrefix(key, "0X") {
		base = 16
		digits = key[2:]
	}
	n, err := strconv.ParseInt(digits, base, 64)
	if err != nil || n < 0 {
		return 0, &CompileError{Kind: MalformedDeviceAddress, Key: key}
	}
	if n > 255 {
		return 0, &CompileError{Kind: DeviceAddressTooLarge, N: int(n)}
	}
	return byte(n), nil
}

func (c *compiler) newState(baseName string, pos int) *State {
	name := c.uniqueName(baseName)
	return c.graph.newState(name, pos)
}

// uniqueName appends a numeric suffix until base no longer collides with
// an already-assigned state name, per §4.2's name-collision policy.
func (c *compiler) uniqueName(base string) string {
	if !c.usedNames[base] {
		c.usedNames[base] = true
		return base
	}
	for n := 1; ; n++ {
		candidate := fmt.Sprintf("%s_%d", base, n)
		if !c.usedNames[candidate] {
			c.usedNames[candidate] = true
			return candidate
		}
	}
}

// walkCommand extends the trie rooted at deviceState with one command,
// merging shared prefixes with sibling commands of the same device and
// terminating in a CRC-arming transition followed by an operation state.
func (c *compiler) walkCommand(addrMatcher Matcher, deviceState *State, cmd Command) error {
	proto, ok := c.callbacks[cmd.Callback]
	if !ok {
		return &CompileError{Kind: UnknownCallback, Callback: cmd.Callback}
	}

	matchers := make([]Matcher, 0, len(cmd.Fields)+1)
	matchers = append(matchers, cmd.FunctionCode)
	matchers = append(matchers, cmd.Fields...)

	state := deviceState
	pos := 1
	upperCallback := strings.ToUpper(cmd.Callback)

	for i, m := range matchers {
		pos += m.Type.Size()
		m.Pos = pos
		last := i == len(matchers)-1

		if last {
			if existing := state.transitionFor(m); existing >= 0 {
				return &CompileError{Kind: DuplicatePath, Callback: cmd.Callback}
			}

			crcState := c.newState(state.Name+"__"+upperCallback+"__CRC", pos)
			state.Transitions = append(state.Transitions, Transition{Matcher: m, Next: crcState.Index, SetCRC: true})

			chain := make([]Matcher, 0, len(matchers)+1)
			chain = append(chain, addrMatcher)
			chain = append(chain, matchers...)
			args, err := bindArguments(proto, chain, cmd.Callback)
			if err != nil {
				return err
			}

			terminal := c.newState("RDY_TO_CALL__"+upperCallback, 0)
			terminal.Op = &Operation{Callback: cmd.Callback, Args: args}
			crcState.Transitions = append(crcState.Transitions, Transition{Matcher: crcTerminal(), Next: terminal.Index})

			glog.V(2).Infof("trie: command %s -> %s via %s", cmd.Callback, terminal.Name, crcState.Name)
			return nil
		}

		if existing := state.transitionFor(m); existing >= 0 {
			state = c.graph.States[state.Transitions[existing].Next]
			continue
		}

		alias := m.Alias
		if alias == "" {
			alias = fmt.Sprintf("%d", len(state.Transitions)+1)
		}
		next := c.newState(state.Name+"_"+alias, pos)
		state.Transitions = append(state.Transitions, Transition{Matcher: m, Next: next.Index})
		state = next
	}
	return nil
}

// bindArguments computes each parameter's byte offset within the frame
// buffer by walking the prototype and the capture chain in reverse,
// summing the sizes of still-unpopped chain elements; it verifies Fits
// for every parameter along the way.
func bindArguments(proto Prototype, chain []Matcher, callback string) ([]Arg, error) {
	args := make([]Arg, len(proto))
	remaining := append([]Matcher(nil), chain...)

	for i := len(proto) - 1; i >= 0; i-- {
		param := proto[i]
		if len(remaining) == 0 {
			name := paramName(param, i)
			return nil, &CompileError{Kind: UnfittableArgument, Callback: callback, Param: name}
		}
		item := remaining[len(remaining)-1]
		remaining = remaining[:len(remaining)-1]

		if !item.Fits(param.Type) {
			name := paramName(param, i)
			return nil, &CompileError{Kind: UnfittableArgument, Callback: callback, Param: name}
		}

		offset := 0
		for _, r := range remaining {
			offset += r.Type.Size()
		}
		offset += item.Type.Size() - param.Type.Size()
		args[i] = Arg{Offset: offset, Size: param.Type.Size()}
	}
	return args, nil
}

func paramName(p Param, index int) string {
	if p.Name != "" {
		return p.Name
	}
	return fmt.Sprintf("argument at position %d", index+1)
}
