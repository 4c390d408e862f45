package loader

// Option applies a configuration option to the loader.
type Option func(*options)

type options struct {
	dateColumn   string
	delimiter    rune
	dateLayouts  []string
	nullLiterals []string
}

// defaultDateLayouts are tried in order; the first that parses wins.
var defaultDateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04:05Z07:00",
	"02-01-2006",
	"02/01/2006",
	"01/02/2006",
	"2006/01/02",
	"2 January 2006",
	"January 2, 2006",
	"2 Jan 2006",
	"Jan 2, 2006",
}

// defaultNullLiterals mark a cell as absent (compared case-insensitively).
var defaultNullLiterals = []string{"", "na", "nan", "null", "none", "n/a", "#n/a", "<nil>"}

func newOptions(opts ...Option) options {
	o := options{
		dateColumn:   "Date",
		delimiter:    ',',
		dateLayouts:  defaultDateLayouts,
		nullLiterals: defaultNullLiterals,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithDateColumn names the column coerced to a date. Defaults to "Date".
// The values land in Match.Date, so the loaded table and anything stored
// from it name the column "Date" whatever the input header was. An input
// column literally named "Date" is then dropped.
func WithDateColumn(name string) Option {
	return func(o *options) {
		if name != "" {
			o.dateColumn = name
		}
	}
}

// WithDelimiter sets the field delimiter. Defaults to ','.
func WithDelimiter(r rune) Option {
	return func(o *options) {
		if r != 0 {
			o.delimiter = r
		}
	}
}

// WithDateLayouts replaces the date layouts tried when parsing dates.
func WithDateLayouts(layouts ...string) Option {
	return func(o *options) {
		if len(layouts) > 0 {
			o.dateLayouts = layouts
		}
	}
}
