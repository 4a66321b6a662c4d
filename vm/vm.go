package vm

type Segment string

const (
	Constant = Segment("constant")
	Argument = Segment("argument")
	Local    = Segment("local")
	Static   = Segment("static")
	This     = Segment("this")
	That     = Segment("that")
	Pointer  = Segment("pointer")
	Temp     = Segment("temp")
)

// Command is a zero-operand arithmetic or logical instruction.
type Command string

const (
	Add = Command("add")
	Sub = Command("sub")
	Neg = Command("neg")
	Eq  = Command("eq")
	Gt  = Command("gt")
	Lt  = Command("lt")
	And = Command("and")
	Or  = Command("or")
	Not = Command("not")
)
