package rtcore

// schedOptions holds configuration shared by Scheduler and Multicast.
type schedOptions struct {
	crit            CriticalSection
	panicHandler    PanicHandler
	statistics      StatisticsLevel
	statisticsWindow int
}

// --- Options ---

// Option configures a Scheduler or Multicast.
type Option interface {
	apply(*schedOptions)
}

type optionFunc func(*schedOptions)

func (f optionFunc) apply(opts *schedOptions) { f(opts) }

// StatisticsLevel selects how much inter-dispatch-gap bookkeeping a
// Scheduler performs, per the specification's "statistics" config
// input.
type StatisticsLevel int

const (
	// StatisticsOff disables gap tracking entirely.
	StatisticsOff StatisticsLevel = iota
	// StatisticsWorstCaseOnly tracks only the worst-case gap.
	StatisticsWorstCaseOnly
	// StatisticsWorstCaseAndWindowedAverage tracks worst-case and a
	// windowed average (see WithStatisticsWindow).
	StatisticsWorstCaseAndWindowedAverage
)

// WithCriticalSection sets the exclusion primitive guarding mutation
// of the Scheduler's or Multicast's internal list. Default is
// NoOpCriticalSection.
func WithCriticalSection(c CriticalSection) Option {
	return optionFunc(func(o *schedOptions) {
		if c != nil {
			o.crit = c
		}
	})
}

// WithPanicHandler overrides the PanicHandler invoked on any contract
// violation surfaced by the instance. Default panics with a *Fault.
func WithPanicHandler(h PanicHandler) Option {
	return optionFunc(func(o *schedOptions) {
		if h != nil {
			o.panicHandler = h
		}
	})
}

// WithStatistics sets the statistics collection level for a Scheduler.
// Has no effect on a Multicast.
func WithStatistics(level StatisticsLevel) Option {
	return optionFunc(func(o *schedOptions) {
		o.statistics = level
	})
}

// WithStatisticsWindow sets the window size (sample count) used by the
// windowed-average gap estimator when StatisticsWorstCaseAndWindowedAverage
// is selected. Values less than 1 are ignored.
func WithStatisticsWindow(n int) Option {
	return optionFunc(func(o *schedOptions) {
		if n >= 1 {
			o.statisticsWindow = n
		}
	})
}

func resolveOptions(opts []Option) *schedOptions {
	cfg := &schedOptions{
		crit:             NoOpCriticalSection{},
		panicHandler:     defaultPanicHandler,
		statistics:       StatisticsOff,
		statisticsWindow: 64,
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt.apply(cfg)
	}
	return cfg
}
