package img2ascii

import "fmt"

// FontLoadError reports a font source that could not be turned into a
// glyph catalog: unreadable or malformed font data, or glyphs missing
// for characters the alphabet requires.
type FontLoadError struct {
	Source string
	Err    error
}

func (e *FontLoadError) Error() string {
	return fmt.Sprintf("load font %q: %v", e.Source, e.Err)
}

func (e *FontLoadError) Unwrap() error { return e.Err }

// UnknownMetricError reports a metric name with no registered
// implementation.
type UnknownMetricError struct {
	Name string
}

func (e *UnknownMetricError) Error() string {
	return fmt.Sprintf("unknown metric %q (known: %v)", e.Name, MetricNames())
}

// EmptyImageError reports a source frame with zero area.
type EmptyImageError struct {
	Width, Height int
}

func (e *EmptyImageError) Error() string {
	return fmt.Sprintf("empty source image (%dx%d)", e.Width, e.Height)
}

// InvalidThreadCountError reports a worker count below one.
type InvalidThreadCountError struct {
	Count int
}

func (e *InvalidThreadCountError) Error() string {
	return fmt.Sprintf("invalid thread count %d, must be >= 1", e.Count)
}

// InvalidConfigurationError reports an option value the pipeline cannot
// work with, such as a zero output width or a non-positive frame rate.
type InvalidConfigurationError struct {
	Option string
	Reason string
}

func (e *InvalidConfigurationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Option, e.Reason)
}
