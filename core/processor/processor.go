// Package processor routes transactions of one family to the handler
// registered for their command code.
//
// Each request moves through decode, route, materialize, validate and apply.
// Only apply touches state, through the Context passed to the handler. Any
// failure rejects the transaction with an invalid transaction error whose
// message is the only thing the ledger sees.
package processor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	txerrors "github.com/kigichang/sawtk/core/errors"
	"github.com/kigichang/sawtk/core/namespace"
	"github.com/kigichang/sawtk/core/state"
	"github.com/kigichang/sawtk/core/types"
	"github.com/kigichang/sawtk/observability"
)

const tracerName = "github.com/kigichang/sawtk/core/processor"

type registration struct {
	newPayload func() Payload
	handle     HandlerFunc
}

// Processor dispatches requests for a single transaction family. Handlers
// are registered before the first request; the table is frozen afterwards
// and may then be read concurrently by any number of Apply calls.
type Processor struct {
	family   string
	versions []string
	prefixes []string

	logger  *slog.Logger
	metrics *observability.TxProcessorMetrics
	tracer  trace.Tracer

	mu       sync.Mutex
	seal     sync.Once
	sealed   bool
	handlers map[int32]registration
}

// Option customises a Processor.
type Option func(*Processor)

func WithLogger(logger *slog.Logger) Option {
	return func(p *Processor) {
		if logger != nil {
			p.logger = logger
		}
	}
}

func WithMetrics(metrics *observability.TxProcessorMetrics) Option {
	return func(p *Processor) {
		p.metrics = metrics
	}
}

func WithTracer(tracer trace.Tracer) Option {
	return func(p *Processor) {
		if tracer != nil {
			p.tracer = tracer
		}
	}
}

// WithPrefixes allows handlers to touch further raw address prefixes, such
// as another family's prefix taken from configuration. Values that are not
// well-formed prefixes are ignored.
func WithPrefixes(prefixes ...string) Option {
	return func(p *Processor) {
		for _, prefix := range prefixes {
			if !namespace.IsPrefix(prefix) {
				p.logger.Warn("ignoring malformed namespace prefix", "family", p.family, "prefix", prefix)
				continue
			}
			if !slices.Contains(p.prefixes, prefix) {
				p.prefixes = append(p.prefixes, prefix)
			}
		}
	}
}

// New creates a processor for family. Requests whose header names another
// family or a version outside versions are rejected. Handlers may only touch
// addresses under the given namespaces; none means unrestricted.
func New(family string, versions []string, namespaces []namespace.Namespace, opts ...Option) *Processor {
	p := &Processor{
		family:   family,
		versions: slices.Clone(versions),
		prefixes: namespace.Prefixes(namespaces...),
		logger:   slog.Default(),
		metrics:  observability.ProcessorMetrics(),
		tracer:   otel.Tracer(tracerName),
		handlers: make(map[int32]registration),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Processor) FamilyName() string {
	return p.family
}

func (p *Processor) FamilyVersions() []string {
	return slices.Clone(p.versions)
}

// Namespaces returns the address prefixes handlers may touch.
func (p *Processor) Namespaces() []string {
	return slices.Clone(p.prefixes)
}

// Register binds command to a handler. newPayload builds the typed request
// for commands that carry a payload; when nil, or when a request arrives
// with an empty payload, the envelope itself is passed to the handler.
// A protobuf message whose fields all hold default values encodes to no
// bytes, so it also arrives as the *types.Request envelope and the
// payload's Validate is not called. Handlers of such commands should accept
// the envelope, or the client must set at least one field.
func (p *Processor) Register(command int32, newPayload func() Payload, handle HandlerFunc) error {
	if handle == nil {
		return fmt.Errorf("processor: nil handler for command %d", command)
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.sealed {
		return fmt.Errorf("processor: command %d registered after first request", command)
	}
	if _, exists := p.handlers[command]; exists {
		return fmt.Errorf("processor: command %d already registered", command)
	}
	p.handlers[command] = registration{newPayload: newPayload, handle: handle}
	return nil
}

// MustRegister is Register for static wiring; it panics on error.
func (p *Processor) MustRegister(command int32, newPayload func() Payload, handle HandlerFunc) {
	if err := p.Register(command, newPayload, handle); err != nil {
		panic(err)
	}
}

// Commands returns the registered command codes in ascending order.
func (p *Processor) Commands() []int32 {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]int32, 0, len(p.handlers))
	for command := range p.handlers {
		out = append(out, command)
	}
	slices.Sort(out)
	return out
}

func (p *Processor) freeze() {
	p.seal.Do(func() {
		p.mu.Lock()
		p.sealed = true
		p.mu.Unlock()
	})
}

// ApplyBytes decodes a serialized ProcessRequest and applies it.
func (p *Processor) ApplyBytes(ctx context.Context, raw []byte, store state.Context) error {
	req := &types.ProcessRequest{}
	if err := req.Unmarshal(raw); err != nil {
		err = txerrors.Invalid(txerrors.ErrMalformedInput, "%v", err)
		p.observe(nil, "", err, 0)
		return err
	}
	return p.Apply(ctx, req, store)
}

// Apply runs one transaction against store. The returned error, if any, is
// always an *errors.InvalidTransactionError.
func (p *Processor) Apply(ctx context.Context, req *types.ProcessRequest, store state.Context) error {
	p.freeze()
	start := time.Now()

	ctx, span := p.tracer.Start(ctx, "processor.apply", trace.WithAttributes(
		attribute.String("family", p.family),
	))
	defer span.End()

	command, err := p.apply(ctx, req, store)
	if command != nil {
		span.SetAttributes(attribute.Int("command", int(*command)))
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, txerrors.KindName(err))
	}
	txID := ""
	if req != nil {
		txID = req.Signature
	}
	p.observe(command, txID, err, time.Since(start))
	return err
}

func (p *Processor) apply(ctx context.Context, req *types.ProcessRequest, store state.Context) (*int32, error) {
	if req == nil {
		return nil, txerrors.Invalid(txerrors.ErrMalformedInput, "empty process request")
	}
	if err := p.checkHeader(req.Header); err != nil {
		return nil, err
	}

	envelope := &types.Request{}
	if err := envelope.Unmarshal(req.Payload); err != nil {
		return nil, txerrors.Invalid(txerrors.ErrMalformedInput, "decode request: %v", err)
	}
	command := envelope.Command

	reg, ok := p.handlers[command]
	if !ok {
		return &command, txerrors.Invalid(txerrors.ErrUnknownCommand, "unknown command %d", command)
	}

	var payload Payload = envelope
	if len(envelope.Payload) > 0 && reg.newPayload != nil {
		payload = reg.newPayload()
		if err := payload.Unmarshal(envelope.Payload); err != nil {
			return &command, txerrors.Invalid(txerrors.ErrMalformedInput, "decode command %d payload: %v", command, err)
		}
	}

	if err := payload.Validate(); err != nil {
		if txerrors.IsInvalidTransaction(err) {
			return &command, txerrors.AsInvalid(err)
		}
		return &command, txerrors.Invalid(txerrors.ErrValidationFailed, "%v", err)
	}

	hctx := &Context{
		ctx:      ctx,
		Command:  command,
		Request:  req,
		Envelope: envelope,
		store:    scopedStore{prefixes: p.prefixes, next: store},
	}
	if err := reg.handle(hctx, payload); err != nil {
		return &command, txerrors.AsInvalid(err)
	}
	return &command, nil
}

// checkHeader verifies family and version when the ledger supplied a header.
func (p *Processor) checkHeader(header *types.TransactionHeader) error {
	if header == nil {
		return nil
	}
	if header.FamilyName != p.family {
		return txerrors.Invalid(txerrors.ErrValidationFailed, "family %q is not handled, expected %q", header.FamilyName, p.family)
	}
	if len(p.versions) > 0 && !slices.Contains(p.versions, header.FamilyVersion) {
		return txerrors.Invalid(txerrors.ErrValidationFailed, "family %s version %q is not supported", p.family, header.FamilyVersion)
	}
	return nil
}

// observe records the outcome of one request. Only registered command codes
// become metric labels; unregistered ones are counted as "unknown".
func (p *Processor) observe(command *int32, txID string, err error, elapsed time.Duration) {
	code, label := "", ""
	if command != nil {
		code = strconv.FormatInt(int64(*command), 10)
		if !errors.Is(err, txerrors.ErrUnknownCommand) {
			label = code
		}
	}
	kind := txerrors.KindName(err)
	p.metrics.Observe(p.family, label, kind, elapsed)
	if err != nil {
		p.logger.Warn("transaction rejected",
			"family", p.family,
			"command", code,
			"transaction_id", txID,
			"reason", err.Error(),
		)
		return
	}
	p.logger.Debug("transaction applied",
		"family", p.family,
		"command", code,
		"transaction_id", txID,
	)
}
