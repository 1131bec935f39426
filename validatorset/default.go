package validatorset

// Default returns every validator this package provides, in a fixed
// order. Order here has no effect on notice output — Registry.Run
// sorts system errors independently and notice.Container.Sorted
// imposes the final ordering — but a fixed slice keeps Run's panic
// recovery and timing histograms labeled consistently across runs.
func Default() []Validator {
	return []Validator{
		dateRangeValidator(),
		coordinatePlausibilityValidator(),
		stopStructuralFieldsValidator(),
		routeNameValidator(),
		singleEntityFileValidator(),
		attributionRoleValidator(),
		timeframeValidator(),
		recommendedFieldPresenceValidator(),
		foreignKeyValidator(),
		stopStationGraphValidator(),
		tripIntegrityValidator(),
		stopTimeSanityValidator(),
		shapeSelfConsistencyValidator(),
		shapeStopPlausibilityValidator(),
		travelSpeedValidator(),
		calendarExpirationValidator(),
		frequencyOverlapValidator(),
		transferValidator(),
		pathwayValidator(),
		fareProductRiderCategoryValidator(),
		fareTransferRuleValidator(),
		gtfsFlexValidator(),
		bookingRuleValidator(),
		translationValidator(),
		agencyRouteConsistencyValidator(),
		fareNetworkReferentialValidator(),
		pickupDropOffZoneValidator(),
		urlAgencyConsistencyValidator(),
	}
}
