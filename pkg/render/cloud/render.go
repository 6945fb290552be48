package cloud

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/golang/freetype/truetype"

	"github.com/votecloud/votecloud/pkg/errors"
	"github.com/votecloud/votecloud/pkg/fonts"
	"github.com/votecloud/votecloud/pkg/render/cloud/layout"
	"github.com/votecloud/votecloud/pkg/render/cloud/sink"
	"github.com/votecloud/votecloud/pkg/render/cloud/styles"
	"github.com/votecloud/votecloud/pkg/score"
)

// DefaultSize is the canvas edge length in pixels.
const DefaultSize = int(layout.DefaultSize)

// Options configures a render pass.
type Options struct {
	Size   int            // canvas edge length, default DefaultSize
	Seed   uint64         // 0 picks a random seed
	Font   *truetype.Font // default: embedded Go Regular
	Logger *log.Logger    // default: discard
}

// Option mutates Options.
type Option func(*Options)

// WithSize overrides the canvas size.
func WithSize(px int) Option {
	return func(o *Options) { o.Size = px }
}

// WithSeed makes colours and positions reproducible.
func WithSeed(seed uint64) Option {
	return func(o *Options) { o.Seed = seed }
}

// WithFont sets the label font.
func WithFont(f *truetype.Font) Option {
	return func(o *Options) { o.Font = f }
}

// WithLogger sets the logger used for diagnostics.
func WithLogger(l *log.Logger) Option {
	return func(o *Options) { o.Logger = l }
}

// Result is the output of one render pass.
type Result struct {
	PNG      []byte
	Layout   layout.Layout
	Labels   int // entries in the ranked list
	Placed   int // labels drawn, winner included
	Dropped  int // field labels left out
	Duration time.Duration
}

// Render lays out list and draws it. The only failures are an unusable
// canvas or font and PNG encoding errors; dropped labels are not errors.
func Render(list score.RankedList, opts ...Option) (*Result, error) {
	o := Options{Size: DefaultSize}
	for _, opt := range opts {
		opt(&o)
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if o.Size <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "canvas size must be positive, got %d", o.Size)
	}
	if o.Font == nil {
		f, err := fonts.Regular()
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "load font")
		}
		o.Font = f
	}

	start := time.Now()
	rng := layout.NewRand(o.Seed)

	measurer := sink.NewMeasurer(o.Font)
	defer measurer.Close()

	winner, field := styles.NewMapper(measurer, rng).Map(list)
	l := layout.Build(winner, field, layout.Options{Size: float64(o.Size), Rand: rng})

	for _, it := range l.Dropped {
		o.Logger.Debug("label dropped", "text", it.Text, "score", it.Score, "font_size", it.FontSize)
	}

	png, err := sink.RenderPNG(l, sink.WithFont(o.Font))
	if err != nil {
		return nil, err
	}

	res := &Result{
		PNG:      png,
		Layout:   l,
		Labels:   len(list),
		Placed:   len(l.Placements),
		Dropped:  len(l.Dropped),
		Duration: time.Since(start),
	}
	if l.Winner != nil {
		res.Placed++
	}

	o.Logger.Debug("rendered word cloud",
		"labels", res.Labels,
		"placed", res.Placed,
		"dropped", res.Dropped,
		"duration", res.Duration.Round(time.Millisecond))
	return res, nil
}
