// Package semerr defines the semantic-error type and its sub-categories.
// It is a leaf package (no dependency on ast/resolver/typecheck/semantic)
// precisely so that resolver, typecheck, and the semantic driver can all
// construct and propagate the same error type without an import cycle.
package semerr

import (
	"fmt"

	"github.com/hassan/cc-semant/internal/lexer"
)

// Kind is a semantic-error sub-category.
type Kind int

const (
	UndeclaredIdentifier Kind = iota
	Redeclaration
	DuplicateLabel
	UnresolvedGoto
	StrictForwardGotoViolation

	InvalidLValue
	OrphanBreakContinue
	IllegalStorageClass
	BlockScopedFunctionDefinition
	BlockScopedStaticFunction

	ConflictingTypes
	RedefinedFunction
	ConflictingLinkage
	ConflictingInitializers

	NonConstantStaticInit
	InitializerOnExtern

	NotCallable
	ArityMismatch
	ArgTypeMismatch
	IncompatibleCast
	NonScalarCondition
	NonArithmeticOperand

	// InternalError marks an assertion failure in this pass itself (a
	// malformed input AST, an exhaustiveness gap) rather than a user
	// error in the source program.
	InternalError
)

func (k Kind) String() string {
	switch k {
	case UndeclaredIdentifier:
		return "UndeclaredIdentifier"
	case Redeclaration:
		return "Redeclaration"
	case DuplicateLabel:
		return "DuplicateLabel"
	case UnresolvedGoto:
		return "UnresolvedGoto"
	case StrictForwardGotoViolation:
		return "StrictForwardGotoViolation"
	case InvalidLValue:
		return "InvalidLValue"
	case OrphanBreakContinue:
		return "OrphanBreakContinue"
	case IllegalStorageClass:
		return "IllegalStorageClass"
	case BlockScopedFunctionDefinition:
		return "BlockScopedFunctionDefinition"
	case BlockScopedStaticFunction:
		return "BlockScopedStaticFunction"
	case ConflictingTypes:
		return "ConflictingTypes"
	case RedefinedFunction:
		return "RedefinedFunction"
	case ConflictingLinkage:
		return "ConflictingLinkage"
	case ConflictingInitializers:
		return "ConflictingInitializers"
	case NonConstantStaticInit:
		return "NonConstantStaticInit"
	case InitializerOnExtern:
		return "InitializerOnExtern"
	case NotCallable:
		return "NotCallable"
	case ArityMismatch:
		return "ArityMismatch"
	case ArgTypeMismatch:
		return "ArgTypeMismatch"
	case IncompatibleCast:
		return "IncompatibleCast"
	case NonScalarCondition:
		return "NonScalarCondition"
	case NonArithmeticOperand:
		return "NonArithmeticOperand"
	case InternalError:
		return "InternalError"
	default:
		return "UnknownSemanticError"
	}
}

// Error is the single semantic-error type: every sub-category carries the
// same shape, a human-readable message and, where available, a source
// position.
type Error struct {
	Kind Kind
	Pos  lexer.Position
	Msg  string
}

func (e *Error) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s: %s: %s", e.Pos.String(), e.Kind, e.Msg)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

// New builds a SemanticError at pos with a formatted message.
func New(kind Kind, pos lexer.Position, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Pos: pos, Msg: fmt.Sprintf(format, args...)}
}

// Internal builds an InternalError: a malformed-AST or exhaustiveness-gap
// assertion failure in this pass, not a user error in the source program.
func Internal(pos lexer.Position, format string, args ...interface{}) *Error {
	return New(InternalError, pos, format, args...)
}
