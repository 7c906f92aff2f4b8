package model

import "time"

// IntervalRecord is one row of per-interval output, the primary artifact
// for what happened during a run. Power channels are non-negative MW;
// direction is encoded by the channel, not the sign.
type IntervalRecord struct {
	Timestamp time.Time `json:"timestamp"`

	PriceAUDPerMWh float64 `json:"price_aud_per_mwh"`
	SolarPowerMW   float64 `json:"solar_power_mw"`

	ChargeMW      float64 `json:"p_charge_mw"`
	DischargeMW   float64 `json:"p_discharge_mw"`
	SolarChargeMW float64 `json:"p_solar_charge_mw"`
	SolarExportMW float64 `json:"p_solar_export_mw"`
	GridChargeMW  float64 `json:"p_grid_charge_mw"`

	SocMWh float64 `json:"soc_mwh"`

	EnergyChargeMWh      float64 `json:"energy_charge_mwh"`
	EnergyDischargeMWh   float64 `json:"energy_discharge_mwh"`
	EnergySolarExportMWh float64 `json:"energy_solar_export_mwh"`

	RevenueAUD     float64 `json:"energy_revenue_aud"`
	CostAUD        float64 `json:"energy_cost_aud"`
	NetworkCostAUD float64 `json:"network_cost_aud"`
}

// Summary aggregates a full run. It is derived from the interval records
// and never mutated independently.
type Summary struct {
	RunID string `json:"run_id"`

	TotalChargeMWh      float64 `json:"total_charge_mwh"`
	TotalDischargeMWh   float64 `json:"total_discharge_mwh"`
	TotalSolarExportMWh float64 `json:"total_solar_export_mwh"`

	// RoundTripEfficiency is battery discharge energy over battery charge
	// energy. Solar export is excluded; CombinedExportRatio folds it into
	// both terms for consumers that want the site-level figure.
	RoundTripEfficiency float64 `json:"round_trip_efficiency"`
	CombinedExportRatio float64 `json:"combined_export_ratio"`

	// Average prices are unweighted means over intervals where the
	// respective channel was active.
	AvgImportPrice      float64 `json:"avg_import_price"`
	AvgExportPrice      float64 `json:"avg_export_price"`
	AvgSolarExportPrice float64 `json:"avg_solar_export_price"`
	AvgPrice            float64 `json:"avg_price"`

	RevenueAUD     float64 `json:"energy_revenue_aud"`
	CostAUD        float64 `json:"energy_cost_aud"`
	NetworkCostAUD float64 `json:"network_cost_aud"`
	GrossProfitAUD float64 `json:"gross_profit_aud"`
	NetProfitAUD   float64 `json:"net_profit_aud"`

	InitialSocMWh float64 `json:"initial_soc_mwh"`
	FinalSocMWh   float64 `json:"final_soc_mwh"`
	Intervals     int     `json:"total_intervals"`

	SolarEnabled          bool    `json:"solar_enabled"`
	SolarCapacityMW       float64 `json:"solar_capacity_mw"`
	BidirectionalCharging bool    `json:"bidirectional_charging"`
}
