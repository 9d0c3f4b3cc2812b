// Package semantic implements the analysis driver: it wires the symbol
// table, name generator, loop annotator, resolver, and type checker
// together, clears all of their state, and walks one program.
//
// The pass aborts on the first semantic error; there is no recovery or
// error accumulation. Collecting further errors after the tree has been
// partially rewritten would report follow-on noise against names and
// types that no longer match the source.
package semantic

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/hassan/cc-semant/internal/ast"
	"github.com/hassan/cc-semant/internal/config"
	"github.com/hassan/cc-semant/internal/loopctx"
	"github.com/hassan/cc-semant/internal/namegen"
	"github.com/hassan/cc-semant/internal/resolver"
	"github.com/hassan/cc-semant/internal/semerr"
	"github.com/hassan/cc-semant/internal/symtab"
	"github.com/hassan/cc-semant/internal/typecheck"
)

// Analyzer owns every piece of state the pass needs and is safe to reuse
// across independent Analyze calls: each call clears all of it first.
type Analyzer struct {
	Symbols *symtab.SymbolTable

	names    *namegen.Generator
	loops    *loopctx.Stack
	checker  *typecheck.Checker
	resolver *resolver.Resolver

	runID uuid.UUID
	log   *logrus.Logger
}

// New creates a ready-to-use Analyzer with a fresh, empty symbol table,
// configured from cfg (internal/config): cfg.PointerWidth sizes pointers
// in static-initializer zero-fill, and cfg.StrictForwardGoto governs
// whether a goto into an enclosing block is rejected.
func New(cfg config.Config) *Analyzer {
	symbols := symtab.New()
	names := namegen.New()
	loops := loopctx.New()
	checker := typecheck.New(symbols, cfg.PointerWidth)

	return &Analyzer{
		Symbols:  symbols,
		names:    names,
		loops:    loops,
		checker:  checker,
		resolver: resolver.New(checker, names, loops, cfg.StrictForwardGoto),
		log:      logrus.StandardLogger(),
	}
}

// RunID returns the identifier of the most recently started Analyze call,
// included in every log line so concurrent or successive runs (e.g. from a
// long-lived driver process) can be told apart in aggregated logs.
func (a *Analyzer) RunID() uuid.UUID { return a.runID }

// Analyze runs the full pass over program: clear all state, enter file
// scope, walk every top-level declaration, and return the first semantic
// error encountered, if any. On success, a.Symbols holds the completed
// symbol table and program has been mutated in place with canonical names,
// loop annotations, result types, and materialized casts.
func (a *Analyzer) Analyze(program *ast.Program) error {
	a.runID = uuid.New()
	log := a.log.WithField("run_id", a.runID)

	log.Debug("clearing analyzer state")
	a.Symbols.Reset()
	a.names.Reset()
	a.loops.Reset()
	a.resolver.Reset()

	log.WithField("decls", len(program.Decls)).Info("starting semantic analysis")

	if err := a.resolver.ResolveProgram(program); err != nil {
		var se *semerr.Error
		if ok := asSemErr(err, &se); ok {
			log.WithFields(logrus.Fields{
				"kind": se.Kind.String(),
				"pos":  se.Pos.String(),
			}).Warn("semantic analysis aborted")
		} else {
			log.WithError(err).Error("semantic analysis aborted with an internal error")
		}
		return err
	}

	log.WithField("symbols", a.Symbols.Len()).Info("semantic analysis succeeded")
	return nil
}

func asSemErr(err error, target **semerr.Error) bool {
	se, ok := err.(*semerr.Error)
	if ok {
		*target = se
	}
	return ok
}

// String renders an Analyzer for debugging, deliberately not including the
// symbol table's contents (use SortedNames/Get on a.Symbols for that).
func (a *Analyzer) String() string {
	return fmt.Sprintf("Analyzer{run_id=%s, symbols=%d}", a.runID, a.Symbols.Len())
}
