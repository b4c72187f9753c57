package domain

// PlannerParams collects the scheduling constants the engine depends on.
// They are parameters rather than literals so deployments can tune them;
// the defaults match the behavior the product launched with.
type PlannerParams struct {
	// DayStartHour is the wall-clock hour each trip day begins at.
	DayStartHour int
	// DayCutoffHour is the hour at which the builder stops accepting new
	// stops for the day; a projected finish at or past it defers the place.
	DayCutoffHour int
	// DefaultDeadlineHour is the return deadline hour on the day after the
	// last trip day, used when the request carries no explicit deadline.
	DefaultDeadlineHour int
	// EstTravelMinutesPerPlace is the flat travel estimate the quick
	// feasibility check charges per matched place.
	EstTravelMinutesPerPlace int
	// FuelKmPerLiter is the assumed fleet fuel efficiency, not a physical law.
	FuelKmPerLiter float64
	// FuelPricePerLiter feeds the fuel cost estimate.
	FuelPricePerLiter float64
}

func DefaultPlannerParams() PlannerParams {
	return PlannerParams{
		DayStartHour:             6,
		DayCutoffHour:            22,
		DefaultDeadlineHour:      1,
		EstTravelMinutesPerPlace: 120,
		FuelKmPerLiter:           8,
		FuelPricePerLiter:        100,
	}
}

// WithDefaults fills zero-valued fields so a partially configured params
// struct never divides by zero or schedules against hour 0.
func (p PlannerParams) WithDefaults() PlannerParams {
	def := DefaultPlannerParams()
	if p.DayStartHour == 0 {
		p.DayStartHour = def.DayStartHour
	}
	if p.DayCutoffHour == 0 {
		p.DayCutoffHour = def.DayCutoffHour
	}
	if p.DefaultDeadlineHour == 0 {
		p.DefaultDeadlineHour = def.DefaultDeadlineHour
	}
	if p.EstTravelMinutesPerPlace == 0 {
		p.EstTravelMinutesPerPlace = def.EstTravelMinutesPerPlace
	}
	if p.FuelKmPerLiter == 0 {
		p.FuelKmPerLiter = def.FuelKmPerLiter
	}
	if p.FuelPricePerLiter == 0 {
		p.FuelPricePerLiter = def.FuelPricePerLiter
	}
	return p
}
