package ir

// Class is the structural role of an instruction in its block.
type Class uint8

const (
	// ClassOrdinary instructions compute a value from their operands.
	ClassOrdinary Class = iota
	// ClassJoin instructions select one incoming value per predecessor edge.
	ClassJoin
	// ClassTerminator instructions end a block and name its successors.
	ClassTerminator
)

func (c Class) String() string {
	switch c {
	case ClassOrdinary:
		return "ordinary"
	case ClassJoin:
		return "join"
	case ClassTerminator:
		return "terminator"
	}
	return "invalid"
}

// Effect is the set of observable effects an instruction may have beyond
// producing its value.
type Effect uint8

const (
	// EffectCall marks invocations of other code.
	EffectCall Effect = 1 << iota
	// EffectWrite marks any other effect: memory writes, channel operations,
	// runtime panics and the like.
	EffectWrite
)

// Op is the closed set of instruction kinds. Each op fixes its class and
// effects; the table below is the only place where they are decided.
type Op uint8

const (
	OpInvalid Op = iota

	// Effect-free arithmetic and logic.
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpRem
	OpAnd
	OpOr
	OpXor
	OpShl
	OpShr
	OpCmp
	OpNeg
	OpNot

	// Effect-free memory and data shaping.
	OpLoad
	OpAlloc
	OpPure

	// Effectful.
	OpCall
	OpStore
	OpEffect

	// Joins.
	OpPhi

	// Terminators.
	OpJump
	OpBranch
	OpReturn
	OpPanic

	numOps
)

type opInfo struct {
	name    string
	class   Class
	effects Effect
}

var opTable = [numOps]opInfo{
	OpInvalid: {name: "invalid"},

	OpAdd: {name: "add"},
	OpSub: {name: "sub"},
	OpMul: {name: "mul"},
	OpDiv: {name: "div"},
	OpRem: {name: "rem"},
	OpAnd: {name: "and"},
	OpOr:  {name: "or"},
	OpXor: {name: "xor"},
	OpShl: {name: "shl"},
	OpShr: {name: "shr"},
	OpCmp: {name: "cmp"},
	OpNeg: {name: "neg"},
	OpNot: {name: "not"},

	OpLoad:  {name: "load"},
	OpAlloc: {name: "alloc"},
	OpPure:  {name: "op"},

	OpCall:   {name: "call", effects: EffectCall},
	OpStore:  {name: "store", effects: EffectWrite},
	OpEffect: {name: "effect", effects: EffectWrite},

	OpPhi: {name: "phi", class: ClassJoin},

	OpJump:   {name: "jump", class: ClassTerminator},
	OpBranch: {name: "branch", class: ClassTerminator},
	OpReturn: {name: "ret", class: ClassTerminator},
	OpPanic:  {name: "panic", class: ClassTerminator, effects: EffectWrite},
}

func (o Op) valid() bool { return o > OpInvalid && o < numOps }

func (o Op) String() string {
	if o >= numOps {
		return "invalid"
	}
	return opTable[o].name
}

// Class returns the structural class of the op.
func (o Op) Class() Class {
	if o >= numOps {
		return ClassOrdinary
	}
	return opTable[o].class
}

// Effects returns the effects the op may have.
func (o Op) Effects() Effect {
	if o >= numOps {
		return 0
	}
	return opTable[o].effects
}

// IsCall reports whether the op invokes other code.
func (o Op) IsCall() bool { return o.Effects()&EffectCall != 0 }

// HasSideEffects reports whether the op has an effect other than a call.
func (o Op) HasSideEffects() bool { return o.Effects()&EffectWrite != 0 }
