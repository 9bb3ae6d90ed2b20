package vm

import "github.com/coregx/rex/charclass"

// decoded holds an input string pre-split into code points, plus a
// parallel byte-offset table so the VM can step code point by code point
// while still reporting byte offsets in captures, matching how Go's own
// string-slicing idiom reports match positions.
type decoded struct {
	cps         []rune
	byteOffsets []int // len(cps)+1; byteOffsets[k] is the byte offset of cps[k]
}

func decode(input string) decoded {
	cps := make([]rune, 0, len(input))
	offsets := make([]int, 0, len(input)+1)
	for i, r := range input {
		cps = append(cps, r)
		offsets = append(offsets, i)
	}
	offsets = append(offsets, len(input))
	return decoded{cps: cps, byteOffsets: offsets}
}

// Exec runs prog against input and returns the capture array of the best
// (leftmost-first) match, or ok == false if the program never reached
// Matched. Capture offsets are byte offsets into input; -1 marks an
// unrecorded group. Exec never errors; each byte of invalid UTF-8 in input
// is read as one U+FFFD code point, as a Go range loop decodes it.
func Exec(prog *Program, input string) (caps []int, ok bool) {
	d := decode(input)
	if prog.HasBackreference {
		return execBacktrack(prog, d)
	}
	return execPike(prog, d)
}

func isWordChar(cps []rune, i int) bool {
	if i < 0 || i >= len(cps) {
		return false
	}
	c := cps[i]
	return c == '_' ||
		(c >= 'a' && c <= 'z') ||
		(c >= 'A' && c <= 'Z') ||
		(c >= '0' && c <= '9')
}

func checkAssert(kind AssertKind, cps []rune, sp int) bool {
	switch kind {
	case AssertBeginText:
		return sp == 0
	case AssertEndText:
		return sp == len(cps)
	case AssertBeginLine:
		return sp == 0 || cps[sp-1] == '\n'
	case AssertEndLine:
		return sp == len(cps) || cps[sp] == '\n'
	case AssertWordBoundary:
		return isWordChar(cps, sp-1) != isWordChar(cps, sp)
	case AssertNoWordBoundary:
		return isWordChar(cps, sp-1) == isWordChar(cps, sp)
	}
	return false
}

func toByteCaps(d decoded, caps []int) []int {
	out := make([]int, len(caps))
	for i, v := range caps {
		if v < 0 {
			out[i] = -1
			continue
		}
		out[i] = d.byteOffsets[v]
	}
	return out
}

// --- Pike VM: the backreference-free, linear-time path. ---

// thread is one live NFA path: a program counter and the capture array it
// owns. Forking clones the array only for the lower-priority branch.
type thread struct {
	pc   int
	caps []int
}

type pikeVM struct {
	prog *Program
	cps  []rune
	gen  []int
}

func execPike(prog *Program, d decoded) ([]int, bool) {
	v := &pikeVM{prog: prog, cps: d.cps}
	v.gen = make([]int, len(prog.Insts))
	for i := range v.gen {
		v.gen[i] = -1
	}

	initCaps := make([]int, 2*prog.NumCaptures)
	for i := range initCaps {
		initCaps[i] = -1
	}

	clist := make([]thread, 0, len(prog.Insts))
	nlist := make([]thread, 0, len(prog.Insts))
	v.addThread(&clist, 0, 0, initCaps)

	var matched bool
	var matchCaps []int

	for sp := 0; ; sp++ {
		if len(clist) == 0 {
			break
		}
	clistLoop:
		for i := 0; i < len(clist); i++ {
			t := clist[i]
			inst := v.prog.Insts[t.pc]
			switch inst.Op {
			case OpMatch:
				matched = true
				matchCaps = t.caps
				break clistLoop // discard remaining lower-priority threads
			case OpChar:
				if sp < len(v.cps) && charclass.Contains(inst.Ranges, v.cps[sp]) {
					v.addThread(&nlist, t.pc+1, sp+1, t.caps)
				}
			}
		}
		clist, nlist = nlist, clist[:0]
	}

	if !matched {
		return nil, false
	}
	return toByteCaps(d, matchCaps), true
}

// addThread resolves the epsilon closure from pc at position sp, appending
// every consuming or terminal instruction it reaches to list in priority
// order. gen[pc] == sp deduplicates re-entry at the same position.
func (v *pikeVM) addThread(list *[]thread, pc, sp int, caps []int) {
	if v.gen[pc] == sp {
		return
	}
	v.gen[pc] = sp

	inst := v.prog.Insts[pc]
	switch inst.Op {
	case OpJump:
		v.addThread(list, inst.X, sp, caps)
	case OpSplit:
		secondary := append([]int(nil), caps...)
		v.addThread(list, inst.X, sp, caps)
		v.addThread(list, inst.Y, sp, secondary)
	case OpSave:
		caps[inst.X] = sp
		v.addThread(list, pc+1, sp, caps)
	case OpAssert:
		if checkAssert(inst.Assert, v.cps, sp) {
			v.addThread(list, pc+1, sp, caps)
		}
	case OpChar, OpMatch:
		*list = append(*list, thread{pc: pc, caps: caps})
	}
}

// --- Backtracking fallback: used only when the program contains a
// Backreference instruction. A backreference may consume a variable
// number of code points in one step, which the two-list Pike construction
// above cannot represent; recursive backtracking handles it directly and,
// by trying the primary Split branch before the secondary, produces the
// same leftmost-first priority without extra bookkeeping. ---

type backtracker struct {
	prog *Program
	cps  []rune
	d    decoded
}

func execBacktrack(prog *Program, d decoded) ([]int, bool) {
	b := &backtracker{prog: prog, cps: d.cps, d: d}
	caps := make([]int, 2*prog.NumCaptures)
	for i := range caps {
		caps[i] = -1
	}
	seen := make(map[uint64]bool)
	if !b.run(0, 0, caps, seen) {
		return nil, false
	}
	return toByteCaps(d, caps), true
}

// run attempts to complete a match starting from (pc, sp), mutating caps
// in place and undoing mutations on backtrack. seen guards against
// re-entering the same (pc, sp) pair within the current path, which is the
// only way a zero-width loop (e.g. an empty-matching body under `*`) could
// recurse forever.
func (b *backtracker) run(pc, sp int, caps []int, seen map[uint64]bool) bool {
	key := uint64(pc)<<32 | uint64(uint32(sp))
	if seen[key] {
		return false
	}
	seen[key] = true
	defer delete(seen, key)

	inst := b.prog.Insts[pc]
	switch inst.Op {
	case OpMatch:
		return true

	case OpJump:
		return b.run(inst.X, sp, caps, seen)

	case OpSplit:
		saved := append([]int(nil), caps...)
		if b.run(inst.X, sp, caps, seen) {
			return true
		}
		copy(caps, saved)
		return b.run(inst.Y, sp, caps, seen)

	case OpSave:
		old := caps[inst.X]
		caps[inst.X] = sp
		if b.run(pc+1, sp, caps, seen) {
			return true
		}
		caps[inst.X] = old
		return false

	case OpAssert:
		if !checkAssert(inst.Assert, b.cps, sp) {
			return false
		}
		return b.run(pc+1, sp, caps, seen)

	case OpChar:
		if sp >= len(b.cps) || !charclass.Contains(inst.Ranges, b.cps[sp]) {
			return false
		}
		return b.run(pc+1, sp+1, caps, seen)

	case OpBackref:
		s, e := caps[2*inst.X], caps[2*inst.X+1]
		if s < 0 || s == e {
			return b.run(pc+1, sp, caps, seen)
		}
		length := e - s
		if sp+length > len(b.cps) || !b.runesEqual(s, e, sp, sp+length) {
			return false
		}
		return b.run(pc+1, sp+length, caps, seen)
	}
	return false
}

func (b *backtracker) runesEqual(s, e, sp, spEnd int) bool {
	captured := b.d.byteOffsets[e] - b.d.byteOffsets[s]
	candidate := b.d.byteOffsets[spEnd] - b.d.byteOffsets[sp]
	if captured != candidate {
		return false
	}
	// Raw code-point equality between input[s:e] and input[sp:spEnd],
	// compared by walking the already-decoded code points rather than
	// re-slicing the original string.
	offset := s - sp
	for i := sp; i < spEnd; i++ {
		if b.cps[i] != b.cps[i+offset] {
			return false
		}
	}
	return true
}
