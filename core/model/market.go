package model

// Market selects the price series used for settlement.
type Market struct {
	// Region is a NEM region code such as NSW1, VIC1, QLD1 or SA1.
	Region      string `json:"region"`
	PriceColumn string `json:"price_column"`
	// PriceFloor and PriceCeiling clip the price series before use. Each
	// bound is optional and applied independently; nil leaves that side
	// unbounded. Both bounds are inclusive.
	PriceFloor   *float64 `json:"price_floor,omitempty"`
	PriceCeiling *float64 `json:"price_ceiling,omitempty"`
}

// DispatchWindows defines the recurring daily clock-time windows during
// which the battery may charge or discharge. Each window is half-open
// [start, end) in HH:MM and may wrap midnight. The windows are evaluated
// independently; overlap is not rejected and resolves through the
// allocation priority order.
type DispatchWindows struct {
	ChargeStart    string `json:"charge_start"`
	ChargeEnd      string `json:"charge_end"`
	DischargeStart string `json:"discharge_start"`
	DischargeEnd   string `json:"discharge_end"`
}

// FixedCharge is a standing network charge.
type FixedCharge struct {
	// Cadence is "daily" or "yearly".
	Cadence   string  `json:"cadence"`
	AmountAUD float64 `json:"amount_aud"`
}

// VolumeCharge is a per-MWh network charge on imported and exported energy.
type VolumeCharge struct {
	ImportAUDPerMWh float64 `json:"import_aud_per_mwh"`
	ExportAUDPerMWh float64 `json:"export_aud_per_mwh"`
}

// DemandCharge bills peak power inside a daily window. It is applied every
// qualifying interval as a coincident-peak proxy rather than once per
// billing month.
type DemandCharge struct {
	WindowStart  string  `json:"window_start"`
	WindowEnd    string  `json:"window_end"`
	RateAUDPerKW float64 `json:"rate_aud_per_kw"`
}

// Tariffs groups the network charges applied to the simulated site.
type Tariffs struct {
	Fixed  FixedCharge   `json:"fixed"`
	Volume VolumeCharge  `json:"volume"`
	Demand *DemandCharge `json:"demand,omitempty"`
}
