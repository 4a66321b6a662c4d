package engine

import (
	"fmt"
	"unicode/utf8"

	"github.com/hlmerscher/jackc/logger"
	"github.com/hlmerscher/jackc/symbols"
	"github.com/hlmerscher/jackc/tokenizer"
	"github.com/hlmerscher/jackc/vm"
)

var arithmeticOpsTable = map[rune]vm.Command{
	'+': vm.Add,
	'-': vm.Sub,
	'=': vm.Eq,
	'>': vm.Gt,
	'<': vm.Lt,
	'&': vm.And,
	'|': vm.Or,
}

var callOpsTable = map[rune]string{
	'*': "Math.multiply",
	'/': "Math.divide",
}

// Compiler parses one class and writes its VM code as each construct is
// recognized. No syntax tree is kept.
type Compiler struct {
	tk        cursor
	symbols   *symbols.Table
	vmw       *vm.Writer
	className string
	labels    int
}

func New(tokens []tokenizer.Token, table *symbols.Table, vmw *vm.Writer) *Compiler {
	return &Compiler{
		tk:      cursor{tokens: tokens},
		symbols: table,
		vmw:     vmw,
	}
}

// ClassName is the name of the class being compiled, known once the class
// header has been read.
func (c *Compiler) ClassName() string {
	return c.className
}

// Compile compiles the whole unit, which must be exactly one class. The
// first error aborts it; the writer's content is meaningless afterwards.
func (c *Compiler) Compile() error {
	if err := c.Class(); err != nil {
		return err
	}
	if !c.tk.done() {
		return c.syntaxError("end of input")
	}
	return nil
}

// 'class' className '{' classVarDec* subroutineDec* '}'
func (c *Compiler) Class() error {
	if err := c.require("class"); err != nil {
		return err
	}
	classNameToken, err := c.expect(isIdentifier())
	if err != nil {
		return err
	}
	c.className = classNameToken.Raw()
	logger.Printf("compiling class %s\n", c.className)

	if err := c.require("{"); err != nil {
		return err
	}
	if err := c.zeroOrMore(c.ClassVarDec); err != nil {
		return err
	}
	if err := c.zeroOrMore(c.Subroutine); err != nil {
		return err
	}
	return c.require("}")
}

// ('static' | 'field') type varName (',' varName)* ';'
func (c *Compiler) ClassVarDec() (bool, error) {
	kindToken, ok := c.accept(or(is("static"), is("field")))
	if !ok {
		return false, nil
	}

	kind := symbols.Field
	if kindToken.Raw() == "static" {
		kind = symbols.Static
	}
	return true, c.varNames(kind)
}

// ('constructor' | 'function' | 'method') ('void' | type) subroutineName
// '(' parameterList ')' subroutineBody
func (c *Compiler) Subroutine() (bool, error) {
	kindToken, ok := c.accept(or(is("constructor"), is("function"), is("method")))
	if !ok {
		return false, nil
	}

	c.symbols.StartSubroutine()
	if kindToken.Raw() == "method" {
		if _, err := c.symbols.Declare("this", c.className, symbols.Argument); err != nil {
			return true, err
		}
	}

	if _, err := c.expect(or(is("void"), isType())); err != nil {
		return true, err
	}
	fnNameToken, err := c.expect(isIdentifier())
	if err != nil {
		return true, err
	}

	if err := c.require("("); err != nil {
		return true, err
	}
	if err := c.ParameterList(); err != nil {
		return true, err
	}
	if err := c.require(")"); err != nil {
		return true, err
	}

	return true, c.SubroutineBody(kindToken.Raw(), fnNameToken.Raw())
}

// ((type varName) (',' type varName)*)?
func (c *Compiler) ParameterList() error {
	return c.zeroOrOne(func() (bool, error) {
		if _, ok := isType()(c.tk.current()); !ok {
			return false, nil
		}
		if err := c.parameter(); err != nil {
			return true, err
		}

		return true, c.zeroOrMore(func() (bool, error) {
			if _, ok := c.accept(is(",")); !ok {
				return false, nil
			}
			return true, c.parameter()
		})
	})
}

func (c *Compiler) parameter() error {
	typeToken, err := c.expect(isType())
	if err != nil {
		return err
	}
	nameToken, err := c.expect(isIdentifier())
	if err != nil {
		return err
	}
	return c.declare(nameToken, typeToken.Raw(), symbols.Argument)
}

// '{' varDec* statements '}'
//
// The function directive needs the local count, so it is written once the
// declarations have been read and before any statement.
func (c *Compiler) SubroutineBody(kind, name string) error {
	if err := c.require("{"); err != nil {
		return err
	}
	if err := c.zeroOrMore(c.VarDec); err != nil {
		return err
	}

	fn := c.className + "." + name
	if logger.Verbose() {
		logger.Printf("  %s %s args=%v locals=%v\n", kind, fn,
			c.symbols.Names(symbols.Argument), c.symbols.Names(symbols.Local))
	}

	c.vmw.WriteFunction(fn, c.symbols.Count(symbols.Local))
	switch kind {
	case "constructor":
		c.vmw.WritePush(vm.Constant, c.symbols.Count(symbols.Field))
		c.vmw.WriteCall("Memory.alloc", 1)
		c.vmw.WritePop(vm.Pointer, 0)
	case "method":
		c.vmw.WritePush(vm.Argument, 0)
		c.vmw.WritePop(vm.Pointer, 0)
	}

	if err := c.Statements(); err != nil {
		return err
	}
	return c.require("}")
}

// 'var' type varName (',' varName)* ';'
func (c *Compiler) VarDec() (bool, error) {
	if _, ok := c.accept(is("var")); !ok {
		return false, nil
	}
	return true, c.varNames(symbols.Local)
}

func (c *Compiler) varNames(kind symbols.Kind) error {
	typeToken, err := c.expect(isType())
	if err != nil {
		return err
	}

	for {
		nameToken, err := c.expect(isIdentifier())
		if err != nil {
			return err
		}
		if err := c.declare(nameToken, typeToken.Raw(), kind); err != nil {
			return err
		}

		if _, ok := c.accept(is(",")); !ok {
			break
		}
	}

	return c.require(";")
}

func (c *Compiler) Statements() error {
	return c.zeroOrMore(c.Statement)
}

func (c *Compiler) Statement() (bool, error) {
	return c.oneOf(c.Let, c.If, c.While, c.Do, c.Return)
}

// 'let' varName ('[' expression ']')? '=' expression ';'
func (c *Compiler) Let() (bool, error) {
	if _, ok := c.accept(is("let")); !ok {
		return false, nil
	}

	varNameToken, err := c.expect(isIdentifier())
	if err != nil {
		return true, err
	}
	symbol, err := c.symbols.Resolve(varNameToken.Raw())
	if err != nil {
		return true, err
	}

	if _, ok := c.accept(is("[")); !ok {
		if err := c.assignment(); err != nil {
			return true, err
		}
		c.pop(symbol)
		return true, nil
	}

	// The target address is computed first and parked on the stack while
	// the value is evaluated, then swapped through temp 0.
	c.push(symbol)
	if err := c.requireExpression(); err != nil {
		return true, err
	}
	if err := c.require("]"); err != nil {
		return true, err
	}
	c.vmw.WriteArithmetic(vm.Add)

	if err := c.assignment(); err != nil {
		return true, err
	}
	c.vmw.WritePop(vm.Temp, 0)
	c.vmw.WritePop(vm.Pointer, 1)
	c.vmw.WritePush(vm.Temp, 0)
	c.vmw.WritePop(vm.That, 0)

	return true, nil
}

// '=' expression ';'
func (c *Compiler) assignment() error {
	if err := c.require("="); err != nil {
		return err
	}
	if err := c.requireExpression(); err != nil {
		return err
	}
	return c.require(";")
}

// 'if' '(' expression ')' '{' statements '}' ('else' '{' statements '}')?
func (c *Compiler) If() (bool, error) {
	if _, ok := c.accept(is("if")); !ok {
		return false, nil
	}

	n := c.nextLabel()
	elseLabel := fmt.Sprintf("IF_ELSE_%d", n)
	endLabel := fmt.Sprintf("IF_END_%d", n)

	if err := c.condition(); err != nil {
		return true, err
	}
	c.vmw.WriteArithmetic(vm.Not)
	c.vmw.WriteIf(elseLabel)

	if err := c.block(); err != nil {
		return true, err
	}
	c.vmw.WriteGoto(endLabel)
	c.vmw.WriteLabel(elseLabel)

	err := c.zeroOrOne(func() (bool, error) {
		if _, ok := c.accept(is("else")); !ok {
			return false, nil
		}
		return true, c.block()
	})
	if err != nil {
		return true, err
	}
	c.vmw.WriteLabel(endLabel)

	return true, nil
}

// 'while' '(' expression ')' '{' statements '}'
func (c *Compiler) While() (bool, error) {
	if _, ok := c.accept(is("while")); !ok {
		return false, nil
	}

	n := c.nextLabel()
	expLabel := fmt.Sprintf("WHILE_EXP_%d", n)
	endLabel := fmt.Sprintf("WHILE_END_%d", n)

	c.vmw.WriteLabel(expLabel)
	if err := c.condition(); err != nil {
		return true, err
	}
	c.vmw.WriteArithmetic(vm.Not)
	c.vmw.WriteIf(endLabel)

	if err := c.block(); err != nil {
		return true, err
	}
	c.vmw.WriteGoto(expLabel)
	c.vmw.WriteLabel(endLabel)

	return true, nil
}

// '(' expression ')'
func (c *Compiler) condition() error {
	if err := c.require("("); err != nil {
		return err
	}
	if err := c.requireExpression(); err != nil {
		return err
	}
	return c.require(")")
}

// '{' statements '}'
func (c *Compiler) block() error {
	if err := c.require("{"); err != nil {
		return err
	}
	if err := c.Statements(); err != nil {
		return err
	}
	return c.require("}")
}

// 'do' subroutineCall ';'
func (c *Compiler) Do() (bool, error) {
	if _, ok := c.accept(is("do")); !ok {
		return false, nil
	}

	if err := c.SubroutineCall(); err != nil {
		return true, err
	}
	if err := c.require(";"); err != nil {
		return true, err
	}
	c.vmw.WritePop(vm.Temp, 0)

	return true, nil
}

// 'return' expression? ';'
func (c *Compiler) Return() (bool, error) {
	if _, ok := c.accept(is("return")); !ok {
		return false, nil
	}

	ok, err := c.Expression()
	if err != nil {
		return true, err
	}
	if !ok {
		c.vmw.WritePush(vm.Constant, 0)
	}

	if err := c.require(";"); err != nil {
		return true, err
	}
	c.vmw.WriteReturn()

	return true, nil
}

// term (op term)*
//
// Operators have no precedence: each one is applied to the running result
// and the next term, left to right.
func (c *Compiler) Expression() (bool, error) {
	ok, err := c.Term()
	if err != nil || !ok {
		return ok, err
	}

	return true, c.zeroOrMore(func() (bool, error) {
		opToken, ok := c.accept(isOp())
		if !ok {
			return false, nil
		}
		if err := c.requireTerm(); err != nil {
			return true, err
		}
		c.writeOperator(opToken.(tokenizer.Symbol).Value)
		return true, nil
	})
}

func (c *Compiler) requireExpression() error {
	ok, err := c.Expression()
	if err != nil {
		return err
	}
	if !ok {
		return c.syntaxError("expression")
	}
	return nil
}

func (c *Compiler) writeOperator(op rune) {
	if cmd, ok := arithmeticOpsTable[op]; ok {
		c.vmw.WriteArithmetic(cmd)
		return
	}
	c.vmw.WriteCall(callOpsTable[op], 2)
}

// integerConstant | stringConstant | keywordConstant | varName |
// varName '[' expression ']' | subroutineCall | '(' expression ')' |
// unaryOp term
func (c *Compiler) Term() (bool, error) {
	return c.oneOf(
		c.integerConstant,
		c.stringConstant,
		c.keywordConstant,
		c.varTerm,
		c.parenthesized,
		c.unaryTerm,
	)
}

func (c *Compiler) requireTerm() error {
	ok, err := c.Term()
	if err != nil {
		return err
	}
	if !ok {
		return c.syntaxError("term")
	}
	return nil
}

func (c *Compiler) integerConstant() (bool, error) {
	token, ok := c.tk.current().(tokenizer.IntConstant)
	if !ok {
		return false, nil
	}
	c.tk.pos++

	c.vmw.WritePush(vm.Constant, token.Value)
	return true, nil
}

func (c *Compiler) stringConstant() (bool, error) {
	token, ok := c.tk.current().(tokenizer.StringConstant)
	if !ok {
		return false, nil
	}
	c.tk.pos++

	c.vmw.WritePush(vm.Constant, utf8.RuneCountInString(token.Value))
	c.vmw.WriteCall("String.new", 1)
	for _, char := range token.Value {
		c.vmw.WritePush(vm.Constant, int(char))
		c.vmw.WriteCall("String.appendChar", 2)
	}
	return true, nil
}

func (c *Compiler) keywordConstant() (bool, error) {
	token, ok := c.accept(isKeywordConstant())
	if !ok {
		return false, nil
	}

	switch token.Raw() {
	case "true":
		c.vmw.WritePush(vm.Constant, 0)
		c.vmw.WriteArithmetic(vm.Not)
	case "false", "null":
		c.vmw.WritePush(vm.Constant, 0)
	case "this":
		c.vmw.WritePush(vm.Pointer, 0)
	}
	return true, nil
}

// varTerm needs one token of lookahead past the identifier: '[' indexes an
// array, '.' or '(' starts a call, anything else reads the variable.
func (c *Compiler) varTerm() (bool, error) {
	if _, ok := c.tk.current().(tokenizer.Identifier); !ok {
		return false, nil
	}

	next := c.tk.peek(1)
	if _, ok := or(is("."), is("("))(next); ok {
		return true, c.SubroutineCall()
	}

	varNameToken, _ := c.accept(isIdentifier())
	symbol, err := c.symbols.Resolve(varNameToken.Raw())
	if err != nil {
		return true, err
	}
	c.push(symbol)

	if _, ok := c.accept(is("[")); !ok {
		return true, nil
	}

	if err := c.requireExpression(); err != nil {
		return true, err
	}
	if err := c.require("]"); err != nil {
		return true, err
	}
	c.vmw.WriteArithmetic(vm.Add)
	c.vmw.WritePop(vm.Pointer, 1)
	c.vmw.WritePush(vm.That, 0)

	return true, nil
}

func (c *Compiler) parenthesized() (bool, error) {
	if _, ok := c.accept(is("(")); !ok {
		return false, nil
	}
	if err := c.requireExpression(); err != nil {
		return true, err
	}
	return true, c.require(")")
}

func (c *Compiler) unaryTerm() (bool, error) {
	opToken, ok := c.accept(isUnaryOp())
	if !ok {
		return false, nil
	}
	if err := c.requireTerm(); err != nil {
		return true, err
	}

	if opToken.Raw() == "-" {
		c.vmw.WriteArithmetic(vm.Neg)
	} else {
		c.vmw.WriteArithmetic(vm.Not)
	}
	return true, nil
}

// subroutineName '(' expressionList ')' |
// (className | varName) '.' subroutineName '(' expressionList ')'
//
// An unqualified call targets a method of the current class and passes the
// current object as the hidden first argument. A qualifier that resolves to
// a variable makes an instance call on that object; otherwise the qualifier
// is taken as a class name.
func (c *Compiler) SubroutineCall() error {
	firstToken, err := c.expect(isIdentifier())
	if err != nil {
		return err
	}

	var target string
	var nArgs int
	if _, ok := c.accept(is(".")); ok {
		subroutineNameToken, err := c.expect(isIdentifier())
		if err != nil {
			return err
		}

		if symbol, ok := c.symbols.Lookup(firstToken.Raw()); ok {
			c.push(symbol)
			nArgs++
			target = symbol.Type + "." + subroutineNameToken.Raw()
		} else {
			target = firstToken.Raw() + "." + subroutineNameToken.Raw()
		}
	} else {
		c.vmw.WritePush(vm.Pointer, 0)
		nArgs++
		target = c.className + "." + firstToken.Raw()
	}

	if err := c.require("("); err != nil {
		return err
	}
	n, err := c.ExpressionList()
	if err != nil {
		return err
	}
	if err := c.require(")"); err != nil {
		return err
	}

	c.vmw.WriteCall(target, nArgs+n)
	return nil
}

// (expression (',' expression)*)?
func (c *Compiler) ExpressionList() (int, error) {
	ok, err := c.Expression()
	if err != nil || !ok {
		return 0, err
	}

	n := 1
	err = c.zeroOrMore(func() (bool, error) {
		if _, ok := c.accept(is(",")); !ok {
			return false, nil
		}
		n++
		return true, c.requireExpression()
	})
	return n, err
}

func (c *Compiler) declare(nameToken tokenizer.Token, typ string, kind symbols.Kind) error {
	_, err := c.symbols.Declare(nameToken.Raw(), typ, kind)
	return err
}

func (c *Compiler) push(symbol symbols.Symbol) {
	c.vmw.WritePush(segment(symbol.Kind), symbol.Index)
}

func (c *Compiler) pop(symbol symbols.Symbol) {
	c.vmw.WritePop(segment(symbol.Kind), symbol.Index)
}

func segment(kind symbols.Kind) vm.Segment {
	switch kind {
	case symbols.Static:
		return vm.Static
	case symbols.Field:
		return vm.This
	case symbols.Argument:
		return vm.Argument
	case symbols.Local:
		return vm.Local
	case symbols.ClassName, symbols.SubroutineName:
	}
	panic(fmt.Sprintf("no segment holds %s symbols", kind))
}

// nextLabel numbers one if or while construct. Both of its labels share the
// number.
func (c *Compiler) nextLabel() int {
	n := c.labels
	c.labels++
	return n
}
