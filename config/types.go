package config

// SpeedThresholdKPH is the mode-dependent maximum plausible ground speed
// used by the travel-speed validator, keyed by GTFS route_type (spec.md
// §4.9, thresholds sourced per §9's "fast-travel thresholds per mode"
// open question).
type SpeedThresholdKPH struct {
	RouteType int     `yaml:"routeType" validate:"gte=0"`
	MaxKPH    float64 `yaml:"maxKph" validate:"gt=0"`
}

// EngineDefaults holds every injectable constant the validators need:
// the values spec.md §9 calls out as open questions (fast-travel speeds,
// shape-matching distance, near-pole/near-origin thresholds, transfer
// distance bands) plus the engine-wide defaults for Options fields the
// caller left unset.
type EngineDefaults struct {
	// SpeedThresholds maps GTFS route_type to its maximum plausible
	// ground speed. A route_type absent from this list falls back to
	// DefaultSpeedThresholdKPH.
	SpeedThresholds          []SpeedThresholdKPH `yaml:"speedThresholds"`
	DefaultSpeedThresholdKPH float64             `yaml:"defaultSpeedThresholdKph" validate:"gt=0"`

	// ShortTripDistanceMeters is the boundary below which a travel-speed
	// violation is reported as fast_travel_between_consecutive_stops
	// rather than fast_travel_between_far_stops.
	ShortTripDistanceMeters float64 `yaml:"shortTripDistanceMeters" validate:"gt=0"`

	// ShapeMatchDistanceMeters is the maximum distance between a stop
	// and its nearest shape point before stop_too_far_from_shape fires.
	ShapeMatchDistanceMeters float64 `yaml:"shapeMatchDistanceMeters" validate:"gt=0"`

	// ShapeDistanceExceedsWarningRatio / ErrorRatio are the fraction by
	// which cumulative stop-to-stop distance may exceed the shape's
	// total length before trip_distance_exceeds_shape_distance fires at
	// warning vs error severity.
	ShapeDistanceExceedsWarningRatio float64 `yaml:"shapeDistanceExceedsWarningRatio" validate:"gt=0"`
	ShapeDistanceExceedsErrorRatio   float64 `yaml:"shapeDistanceExceedsErrorRatio" validate:"gt=0"`

	// EqualShapeDistanceThresholdMeters is the great-circle separation
	// below which two shape points sharing a shape_dist_traveled value
	// are flagged as implausibly close rather than merely duplicated.
	EqualShapeDistanceThresholdMeters float64 `yaml:"equalShapeDistanceThresholdMeters" validate:"gt=0"`

	// NearOriginDistanceMeters / NearPoleDistanceMeters flag coordinates
	// implausibly close to (0,0) or a geographic pole.
	NearOriginDistanceMeters float64 `yaml:"nearOriginDistanceMeters" validate:"gt=0"`
	NearPoleDistanceMeters   float64 `yaml:"nearPoleDistanceMeters" validate:"gt=0"`

	// TransferDistanceTooLargeMeters / TransferDistanceInfoMeters are the
	// two transfer-distance bands from spec.md §4.9.
	TransferDistanceTooLargeMeters float64 `yaml:"transferDistanceTooLargeMeters" validate:"gt=0"`
	TransferDistanceInfoMeters     float64 `yaml:"transferDistanceInfoMeters" validate:"gt=0"`

	// RouteColorContrastRatio is the minimum WCAG-style luminance
	// contrast ratio between route_color and route_text_color.
	RouteColorContrastRatio float64 `yaml:"routeColorContrastRatio" validate:"gt=0"`

	// FeedExpirationWarnDays7 / 30 back spec.md's feed_expiration_date7_days
	// and feed_expiration_date30_days thresholds.
	FeedExpirationWarnDays7  int `yaml:"feedExpirationWarnDays7" validate:"gt=0"`
	FeedExpirationWarnDays30 int `yaml:"feedExpirationWarnDays30" validate:"gt=0"`

	// DefaultThreads is used when Options.Threads is zero.
	DefaultThreads int `yaml:"defaultThreads" validate:"gte=0"`
}

// SpeedThresholdKPHFor returns the configured max speed for a GTFS
// route_type, falling back to DefaultSpeedThresholdKPH.
func (d EngineDefaults) SpeedThresholdKPHFor(routeType int) float64 {
	for _, t := range d.SpeedThresholds {
		if t.RouteType == routeType {
			return t.MaxKPH
		}
	}
	return d.DefaultSpeedThresholdKPH
}

// DefaultEngineDefaults returns the compiled-in constant set used when
// no YAML override file is supplied. Speed thresholds are sourced from
// the reference implementation's per-mode table (spec.md §9).
func DefaultEngineDefaults() EngineDefaults {
	return EngineDefaults{
		SpeedThresholds: []SpeedThresholdKPH{
			{RouteType: 0, MaxKPH: 100},  // Tram/Streetcar/Light rail
			{RouteType: 1, MaxKPH: 150},  // Subway/Metro
			{RouteType: 2, MaxKPH: 500},  // Rail
			{RouteType: 3, MaxKPH: 150},  // Bus
			{RouteType: 4, MaxKPH: 80},   // Ferry
			{RouteType: 5, MaxKPH: 30},   // Cable tram
			{RouteType: 6, MaxKPH: 50},   // Aerial lift / Gondola
			{RouteType: 7, MaxKPH: 50},   // Funicular
			{RouteType: 11, MaxKPH: 150}, // Trolleybus
			{RouteType: 12, MaxKPH: 150}, // Monorail
		},
		DefaultSpeedThresholdKPH:          200, // extended/unknown types
		ShortTripDistanceMeters:           1000,
		ShapeMatchDistanceMeters:          100,
		ShapeDistanceExceedsWarningRatio:  1.05,
		ShapeDistanceExceedsErrorRatio:    1.20,
		EqualShapeDistanceThresholdMeters: 10,
		NearOriginDistanceMeters:          1000,
		NearPoleDistanceMeters:            1000,
		TransferDistanceTooLargeMeters:    10000,
		TransferDistanceInfoMeters:        2000,
		RouteColorContrastRatio:           3.0,
		FeedExpirationWarnDays7:           7,
		FeedExpirationWarnDays30:          30,
		DefaultThreads:                    0, // 0 means runtime.NumCPU()
	}
}

// Options is the caller-facing validation run configuration (spec.md
// §6). Struct tags are enforced with go-playground/validator, the same
// way the rest of this repository validates caller-supplied structs.
type Options struct {
	CountryCode       string `validate:"omitempty,len=2"`
	ValidationDate    string `validate:"omitempty,len=8,numeric"`
	GoogleRules       bool
	Thorough          bool
	Threads           int `validate:"gte=0"`
	MaxNoticesPerCode int `validate:"gte=0"`
	StripRuntimeFields bool
}
