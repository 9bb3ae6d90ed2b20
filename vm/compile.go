package vm

import (
	"github.com/coregx/rex/charclass"
	"github.com/coregx/rex/syntax"
)

// compiler accumulates instructions during a single Compile call. It never
// errors: every AST Parse returns compiles, by construction — only the
// parser ever rejects a pattern; the compiler and VM never do.
type compiler struct {
	insts []Inst
}

func (c *compiler) emit(inst Inst) int {
	c.insts = append(c.insts, inst)
	return len(c.insts) - 1
}

// Compile lowers an AST into a flat instruction program, wrapping it in a
// three-instruction "scan anywhere" preamble and a closing Save(1), Matched
// pair.
func Compile(root *syntax.Expr, numCaptures int, hasBackreference bool) *Program {
	c := &compiler{}

	c.emit(Inst{Op: OpSplit, X: 3, Y: 1})
	c.emit(Inst{Op: OpChar, Ranges: charclass.Ranges{0, charclass.MaxRune}})
	c.emit(Inst{Op: OpJump, X: 0})
	c.emit(Inst{Op: OpSave, X: 0})
	c.compile(root)
	c.emit(Inst{Op: OpSave, X: 1})
	c.emit(Inst{Op: OpMatch})

	return &Program{
		Insts:            c.insts,
		NumCaptures:      numCaptures,
		HasBackreference: hasBackreference,
	}
}

func (c *compiler) compile(e *syntax.Expr) {
	switch e.Op {
	case syntax.OpEmptyMatch:
		// no instructions

	case syntax.OpCharClass:
		ranges := charclass.Simplify(e.Ranges)
		if e.Negated {
			ranges = charclass.Complement(ranges)
		}
		c.emit(Inst{Op: OpChar, Ranges: ranges})

	case syntax.OpAssertBeginText:
		c.emit(Inst{Op: OpAssert, Assert: AssertBeginText})
	case syntax.OpAssertEndText:
		c.emit(Inst{Op: OpAssert, Assert: AssertEndText})
	case syntax.OpAssertBeginLine:
		c.emit(Inst{Op: OpAssert, Assert: AssertBeginLine})
	case syntax.OpAssertEndLine:
		c.emit(Inst{Op: OpAssert, Assert: AssertEndLine})
	case syntax.OpWordBoundary:
		c.emit(Inst{Op: OpAssert, Assert: AssertWordBoundary})
	case syntax.OpNoWordBoundary:
		c.emit(Inst{Op: OpAssert, Assert: AssertNoWordBoundary})

	case syntax.OpCapture:
		c.emit(Inst{Op: OpSave, X: 2 * e.Index})
		c.compile(e.Sub[0])
		c.emit(Inst{Op: OpSave, X: 2*e.Index + 1})

	case syntax.OpConcat:
		for _, sub := range e.Sub {
			c.compile(sub)
		}

	case syntax.OpAlternate:
		splitPC := c.emit(Inst{})
		l1 := len(c.insts)
		c.compile(e.Sub[0])
		jmpPC := c.emit(Inst{Op: OpJump})
		r1 := len(c.insts)
		c.compile(e.Sub[1])
		end := len(c.insts)
		c.insts[splitPC] = Inst{Op: OpSplit, X: l1, Y: r1}
		c.insts[jmpPC].X = end

	case syntax.OpStar:
		c.compileStar(e.Sub[0], e.Greedy)

	case syntax.OpPlus:
		body := len(c.insts)
		c.compile(e.Sub[0])
		splitPC := c.emit(Inst{})
		exit := len(c.insts)
		c.patchSplit(splitPC, body, exit, e.Greedy)

	case syntax.OpQuest:
		splitPC := c.emit(Inst{})
		body := len(c.insts)
		c.compile(e.Sub[0])
		exit := len(c.insts)
		c.patchSplit(splitPC, body, exit, e.Greedy)

	case syntax.OpRepeat:
		c.compileRepeat(e)

	case syntax.OpBackreference:
		c.emit(Inst{Op: OpBackref, X: e.Index})
	}
}

// compileStar emits two Splits around the body: using two Splits (rather
// than Split+Jump) gives the same empty-body-alternation treatment as
// OnePlus/ZeroOrOne.
func (c *compiler) compileStar(inner *syntax.Expr, greedy bool) {
	split1 := c.emit(Inst{})
	body := len(c.insts)
	c.compile(inner)
	split2 := c.emit(Inst{})
	exit := len(c.insts)
	c.patchSplit(split1, body, exit, greedy)
	c.patchSplit(split2, body, exit, greedy)
}

func (c *compiler) patchSplit(pc, body, exit int, greedy bool) {
	if greedy {
		c.insts[pc] = Inst{Op: OpSplit, X: body, Y: exit}
	} else {
		c.insts[pc] = Inst{Op: OpSplit, X: exit, Y: body}
	}
}

func (c *compiler) compileRepeat(e *syntax.Expr) {
	for i := 0; i < e.Min; i++ {
		c.compile(e.Sub[0])
	}

	if e.Max == -1 {
		c.compileStar(e.Sub[0], e.Greedy)
		return
	}

	extra := e.Max - e.Min
	splits := make([]int, 0, extra)
	for i := 0; i < extra; i++ {
		pc := c.emit(Inst{})
		c.compile(e.Sub[0])
		splits = append(splits, pc)
	}
	exit := len(c.insts)
	for _, pc := range splits {
		body := pc + 1
		c.patchSplit(pc, body, exit, e.Greedy)
	}
}
