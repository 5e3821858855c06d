package irverify

import (
	"github.com/alir-lang/alirc/internal/errors"
	"github.com/alir-lang/alirc/internal/ir"
)

// checkCFG verifies: every block ends in exactly one terminator and nothing
// follows it, every branch/switch target names a block that exists in the
// same function, and every block is reachable from entry (the first block)
// — unreachable ones are a warning, not an error, since dead code alone
// never breaks codegen.
func (v *verifier) checkCFG(fn *ir.Function) {
	labels := make(map[string]*ir.BasicBlock, len(fn.Blocks))
	for _, b := range fn.Blocks {
		labels[b.Label] = b
	}

	for _, b := range fn.Blocks {
		v.checkTerminator(b)
		v.checkTargets(fn, b, labels)
	}

	v.checkReachability(fn, labels)
}

func (v *verifier) checkTerminator(b *ir.BasicBlock) {
	if len(b.Instructions) == 0 {
		v.errf(0, 0, errors.IRV001, "block %q has no instructions, and so no terminator", b.Label)
		return
	}
	for i, in := range b.Instructions {
		isLast := i == len(b.Instructions)-1
		if in.Op.IsTerminator() && !isLast {
			v.errf(in.Line, in.Col, errors.IRV001, "block %q: terminator %s is not the last instruction", b.Label, in.Op)
		}
	}
	if last := b.Instructions[len(b.Instructions)-1]; !last.Op.IsTerminator() {
		v.errf(last.Line, last.Col, errors.IRV001, "block %q falls off the end without a terminator", b.Label)
	}
}

func (v *verifier) checkTargets(fn *ir.Function, b *ir.BasicBlock, labels map[string]*ir.BasicBlock) {
	for _, label := range branchTargets(b) {
		if _, ok := labels[label]; !ok {
			last := b.Instructions[len(b.Instructions)-1]
			v.errf(last.Line, last.Col, errors.IRV002, "block %q: branch target %q does not exist in function %s", b.Label, label, fn.Name)
		}
	}
}

// branchTargets extracts every block label a terminator instruction can
// transfer control to.
func branchTargets(b *ir.BasicBlock) []string {
	if len(b.Instructions) == 0 {
		return nil
	}
	last := b.Instructions[len(b.Instructions)-1]
	var targets []string
	switch last.Op {
	case ir.OpJump:
		targets = append(targets, last.Op1.Name)
	case ir.OpCondi:
		// Op1 is the condition; the generator encodes the branch targets as
		// labels in Op2 (true target) and Args[0] (false target).
		if last.Op2.Kind == ir.LabelRef {
			targets = append(targets, last.Op2.Name)
		}
		for _, a := range last.Args {
			if a.Kind == ir.LabelRef {
				targets = append(targets, a.Name)
			}
		}
	case ir.OpSwitch:
		if last.Op2.Kind == ir.LabelRef {
			targets = append(targets, last.Op2.Name)
		}
		for _, c := range last.Cases {
			targets = append(targets, c.Label)
		}
	}
	return targets
}

// checkReachability walks the CFG from fn.Blocks[0] (the entry block, by
// construction) and warns on any block never visited.
func (v *verifier) checkReachability(fn *ir.Function, labels map[string]*ir.BasicBlock) {
	if len(fn.Blocks) == 0 {
		return
	}
	visited := make(map[string]bool, len(fn.Blocks))
	queue := []string{fn.Blocks[0].Label}
	for len(queue) > 0 {
		label := queue[0]
		queue = queue[1:]
		if visited[label] {
			continue
		}
		visited[label] = true
		b, ok := labels[label]
		if !ok {
			continue
		}
		queue = append(queue, branchTargets(b)...)
	}
	for _, b := range fn.Blocks {
		if !visited[b.Label] {
			v.warnf(0, 0, errors.IRV008, "function %s: block %q is unreachable from entry", fn.Name, b.Label)
		}
	}
}
