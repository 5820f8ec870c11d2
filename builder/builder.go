package builder

import (
	"context"
	"errors"
	"fmt"

	"github.com/erraggy/oasdocs/internal/maputil"
	"github.com/erraggy/oasdocs/loader"
	"github.com/erraggy/oasdocs/oaserrors"
	"github.com/erraggy/oasdocs/resolver"
	"github.com/erraggy/oasdocs/validator"
)

// Loader parses document text into a structural tree.
type Loader interface {
	Load(text string) (any, error)
}

// Resolver expands the $ref pointers of a document. Failures that implement
// oaserrors.DataCarrier contribute their payload to the resulting ResolveError.
type Resolver interface {
	Resolve(ctx context.Context, doc map[string]any) (map[string]any, error)
}

// Validator checks a resolved document. A nil error means the document conforms.
type Validator interface {
	ValidateSwagger(doc map[string]any) error
}

// Builder runs the build pipeline. A Builder holds no per-build state and is safe
// for concurrent use when its collaborators are.
type Builder struct {
	loader    Loader
	resolver  Resolver
	validator Validator
	logger    loader.Logger
}

// New creates a Builder with the given options.
func New(opts ...Option) *Builder {
	b := &Builder{
		loader:    loader.Default(),
		resolver:  resolver.New(),
		validator: validator.New(),
		logger:    loader.NopLogger{},
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build parses text and builds a document from it. Parse failures are reported
// as described by Load; everything else continues with BuildObject.
func (b *Builder) Build(ctx context.Context, text string) *Result {
	doc, err := b.Load(text)
	if err != nil {
		return &Result{Err: err}
	}
	return b.BuildObject(ctx, doc)
}

// Load parses text into a document without building it. Empty text yields
// *oaserrors.EmptyDocumentError without parsing. Text that does not parse, or
// whose root is not a mapping, yields *oaserrors.YAMLError.
func (b *Builder) Load(text string) (map[string]any, error) {
	if text == "" {
		return nil, &oaserrors.EmptyDocumentError{}
	}

	tree, err := b.loader.Load(text)
	if err != nil {
		b.logger.Debug("document text did not parse", "error", err)
		return nil, asYAMLError(err)
	}
	// Whitespace or comment-only text parses to nothing.
	if tree == nil {
		return nil, &oaserrors.EmptyDocumentError{}
	}
	doc, ok := maputil.Mapping(tree)
	if !ok {
		return nil, &oaserrors.YAMLError{Message: fmt.Sprintf("document root must be a mapping, got %T", tree)}
	}
	return doc, nil
}

// BuildObject builds a document from an already parsed tree, which it modifies in
// place. Definition titles are backfilled first, then the tree is resolved and
// finally validated.
//
// A resolver failure yields a nil Specs and *oaserrors.ResolveError. A validator
// failure yields the resolved Specs together with *oaserrors.ValidationError.
func (b *Builder) BuildObject(ctx context.Context, tree map[string]any) *Result {
	if tree == nil {
		return &Result{Err: &oaserrors.EmptyDocumentError{}}
	}

	NormalizeDefinitions(tree)

	resolved, err := b.resolver.Resolve(ctx, tree)
	if err != nil {
		b.logger.Debug("document did not resolve", "error", err)
		return &Result{Err: newResolveError(err)}
	}

	if err := b.validator.ValidateSwagger(resolved); err != nil {
		b.logger.Debug("document did not validate", "error", err)
		return &Result{Specs: resolved, Err: asValidationError(err)}
	}
	return &Result{Specs: resolved}
}

// BuildAsync runs Build on a new goroutine. The returned channel receives exactly
// one Result and is then closed. A panic in a collaborator is reported as
// *oaserrors.ResolveError.
func (b *Builder) BuildAsync(ctx context.Context, text string) <-chan *Result {
	out := make(chan *Result, 1)
	go func() {
		defer close(out)
		defer func() {
			if r := recover(); r != nil {
				b.logger.Error("build panicked", "panic", r)
				out <- &Result{Err: &oaserrors.ResolveError{
					Data: fmt.Sprint(r),
					Raw:  fmt.Errorf("builder: panic during build: %v", r),
				}}
			}
		}()
		out <- b.Build(ctx, text)
	}()
	return out
}

func asYAMLError(err error) error {
	var yamlErr *oaserrors.YAMLError
	if errors.As(err, &yamlErr) {
		return yamlErr
	}
	return &oaserrors.YAMLError{Cause: err}
}

func asValidationError(err error) error {
	var vErr *oaserrors.ValidationError
	if errors.As(err, &vErr) {
		return vErr
	}
	return &oaserrors.ValidationError{Details: err.Error(), Cause: err}
}

func newResolveError(err error) *oaserrors.ResolveError {
	var carrier oaserrors.DataCarrier
	if errors.As(err, &carrier) {
		return &oaserrors.ResolveError{Data: carrier.Data(), Raw: err}
	}
	return &oaserrors.ResolveError{Data: err.Error(), Raw: err}
}
