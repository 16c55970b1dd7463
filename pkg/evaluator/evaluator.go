// Package evaluator implements the restricted arithmetic evaluation engine.
//
// The evaluator receives a parsed Abstract Syntax Tree (AST) from the
// parser and reduces it to a single float64. The tree can only contain
// number literals, the six arithmetic operators and unary minus, so
// evaluation is a plain recursive walk: no environment, no name lookup,
// no calls. Failures are reported as *types.Error values with a stable
// code and the source position of the failing operator.
//
// # Example
//
//	e := evaluator.New()
//	result, err := e.Evaluate("(5+3)*2-4")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	// result == 12
//
// # Concurrency
//
// An Evaluator is safe for concurrent use. Compiled expressions are
// immutable and the expression cache is internally synchronized.
package evaluator

import (
	"log/slog"

	"github.com/acarlucci/gocalc/pkg/cache"
	"github.com/acarlucci/gocalc/pkg/parser"
	"github.com/acarlucci/gocalc/pkg/types"
)

// Evaluator compiles and evaluates arithmetic expressions.
type Evaluator struct {
	opts   EvalOptions
	logger *slog.Logger
	cache  *cache.Cache // non-nil when Caching is enabled
}

// EvalOptions configures evaluator behavior.
type EvalOptions struct {
	// Caching enables expression compilation caching.
	// When true, compiled expressions are cached by source string.
	// The default cache holds up to 256 entries with LRU eviction.
	Caching bool
	// CacheSize sets the maximum number of cached expressions.
	// Only used when Caching is true and no explicit Cache is provided.
	// Defaults to 256.
	CacheSize int
	// Cache is a custom expression cache. If non-nil, Caching is implicitly enabled.
	Cache *cache.Cache
	// MaxDepth limits expression nesting depth. Defaults to parser.DefaultMaxDepth.
	MaxDepth int
	// Debug enables debug logging.
	Debug bool
	// Logger for structured logging.
	Logger *slog.Logger
}

// New creates a new Evaluator with default options.
func New(opts ...EvalOption) *Evaluator {
	options := EvalOptions{
		Caching:   true,
		CacheSize: 256,
		MaxDepth:  parser.DefaultMaxDepth,
	}

	for _, opt := range opts {
		opt(&options)
	}

	if options.Logger == nil {
		options.Logger = slog.Default()
	}

	// Initialise expression cache when caching is enabled.
	var c *cache.Cache
	if options.Cache != nil {
		c = options.Cache
	} else if options.Caching {
		c = cache.New(options.CacheSize)
	}

	return &Evaluator{
		opts:   options,
		logger: options.Logger,
		cache:  c,
	}
}

// Cache returns the expression cache, or nil if caching is disabled.
func (e *Evaluator) Cache() *cache.Cache {
	return e.cache
}

// ClearCache drops every cached compiled expression. It is a no-op when
// caching is disabled.
func (e *Evaluator) ClearCache() {
	if e.cache != nil {
		e.cache.Clear()
	}
}

// Compile tokenizes and parses source into a reusable expression. With
// caching enabled, repeated calls with the same source return the cached
// compilation. Failed compiles are never cached.
func (e *Evaluator) Compile(source string) (*types.Expression, error) {
	if e.cache != nil {
		return e.cache.GetOrCompile(source, func() (*types.Expression, error) {
			return e.compile(source)
		})
	}
	return e.compile(source)
}

func (e *Evaluator) compile(source string) (*types.Expression, error) {
	if e.opts.Debug {
		e.logger.Debug("compiling expression", "source", source)
	}
	return parser.Compile(source, parser.WithMaxDepth(e.opts.MaxDepth))
}

// Evaluate compiles source and reduces it to a number.
func (e *Evaluator) Evaluate(source string) (float64, error) {
	expr, err := e.Compile(source)
	if err != nil {
		return 0, err
	}
	return e.Eval(expr)
}

// Eval reduces a compiled expression to a number.
func (e *Evaluator) Eval(expr *types.Expression) (float64, error) {
	if expr == nil || expr.AST() == nil {
		return 0, types.NewError(types.ErrSyntax, "invalid expression", -1)
	}
	result, err := e.evalNode(expr.AST())
	if err != nil {
		return 0, err
	}
	if e.opts.Debug {
		e.logger.Debug("evaluated expression", "source", expr.Source(), "result", result)
	}
	return result, nil
}

// EvalOption configures evaluation behavior.
type EvalOption func(*EvalOptions)

// WithCaching enables or disables expression compilation caching.
// Caching is enabled by default with an LRU cache of 256 entries.
// To control the cache size use WithCacheSize; to supply your own cache use WithCache.
func WithCaching(enabled bool) EvalOption {
	return func(opts *EvalOptions) {
		opts.Caching = enabled
	}
}

// WithCacheSize sets the maximum number of cached expressions.
func WithCacheSize(size int) EvalOption {
	return func(opts *EvalOptions) {
		opts.CacheSize = size
	}
}

// WithCache attaches an external expression cache.
// The evaluator will use this cache regardless of the Caching flag.
func WithCache(c *cache.Cache) EvalOption {
	return func(opts *EvalOptions) {
		opts.Cache = c
	}
}

// WithMaxDepth sets the maximum expression nesting depth.
func WithMaxDepth(depth int) EvalOption {
	return func(opts *EvalOptions) {
		opts.MaxDepth = depth
	}
}

// WithDebug enables or disables debug logging.
func WithDebug(enabled bool) EvalOption {
	return func(opts *EvalOptions) {
		opts.Debug = enabled
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) EvalOption {
	return func(opts *EvalOptions) {
		opts.Logger = logger
	}
}
