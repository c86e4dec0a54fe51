package model

// RiskPrediction is the response of POST /api/predict-risk. The backend
// answers in one of two shapes: method=ml_ensemble carries per-model scores,
// an engineered feature vector and an anomaly block; method=traditional (or
// fallback) carries the classic factor breakdown instead.
type RiskPrediction struct {
	RiskLevel        string             `json:"risk_level"`
	RiskScore        float64            `json:"risk_score"`
	Method           string             `json:"method"`
	Reason           string             `json:"reason,omitempty"`
	Warning          string             `json:"warning,omitempty"`
	ModelPredictions *ModelPredictions  `json:"model_predictions,omitempty"`
	Features         map[string]float64 `json:"features,omitempty"`
	Anomaly          *AnomalyReport     `json:"anomaly,omitempty"`
	Factors          *RiskFactors       `json:"factors,omitempty"`
	Error            string             `json:"error,omitempty"`
}

// ModelPredictions holds the per-model scores of the ML ensemble.
type ModelPredictions struct {
	RandomForest float64 `json:"random_forest"`
	XGBoost      float64 `json:"xgboost"`
	LightGBM     float64 `json:"lightgbm"`
}

// AnomalyReport is the backend's anomaly-detection block.
type AnomalyReport struct {
	AnomalyDetected bool    `json:"anomaly_detected"`
	AnomalyScore    float64 `json:"anomaly_score"`
	Message         string  `json:"message,omitempty"`
}

// RiskFactors is the traditional-method factor breakdown.
type RiskFactors struct {
	MaxMagnitude   float64 `json:"max_magnitude"`
	AvgMagnitude   float64 `json:"avg_magnitude,omitempty"`
	RecentCount    int     `json:"recent_count"`
	MinDistance    float64 `json:"min_distance,omitempty"`
	AvgDistance    float64 `json:"avg_distance"`
	NearestFaultKm float64 `json:"nearest_fault_km"`
	AvgDepth       float64 `json:"avg_depth,omitempty"`
}

// WarningStatus is the response of the early-warning endpoints.
type WarningStatus struct {
	AlertLevel        string             `json:"alert_level"`
	AlertScore        float64            `json:"alert_score"`
	Message           string             `json:"message"`
	TimeToEvent       string             `json:"time_to_event,omitempty"`
	Features          map[string]float64 `json:"features,omitempty"`
	RecentEarthquakes int                `json:"recent_earthquakes"`
	AnomalyDetected   bool               `json:"anomaly_detected"`
}

// CityDamageReport is the response of GET /api/city-damage-analysis.
type CityDamageReport struct {
	Status          string     `json:"status"`
	Message         string     `json:"message,omitempty"`
	TotalEvents     int        `json:"total_earthquakes"`
	AnalyzedCities  int        `json:"analyzed_cities"`
	CityRisks       []CityRisk `json:"city_risks"`
}

// CityRisk is the per-city entry of the damage analysis.
type CityRisk struct {
	City                 string               `json:"city"`
	Lat                  float64              `json:"lat"`
	Lon                  float64              `json:"lon"`
	RiskScore            float64              `json:"risk_score"`
	RiskLevel            string               `json:"risk_level"`
	Description          string               `json:"description"`
	Factors              CityRiskFactors      `json:"factors"`
	AffectingEarthquakes []AffectingEvent     `json:"affecting_earthquakes"`
	BuildingStructure    map[string]float64   `json:"building_structure"`
	BuildingRiskAnalysis *BuildingRiskDetail  `json:"building_risk_analysis,omitempty"`
}

// CityRiskFactors is the factor breakdown behind a city's risk score.
type CityRiskFactors struct {
	EarthquakeRisk            float64  `json:"earthquake_risk"`
	FaultRisk                 float64  `json:"fault_risk"`
	ActivityScore             float64  `json:"activity_score"`
	NearestFaultDistance      float64  `json:"nearest_fault_distance"`
	NearestFaultName          string   `json:"nearest_fault_name,omitempty"`
	EarthquakeCount           int      `json:"earthquake_count"`
	MaxNearbyMagnitude        float64  `json:"max_nearby_magnitude"`
	NearestEarthquakeDistance *float64 `json:"nearest_earthquake_distance"`
}

// AffectingEvent is one earthquake contributing to a city's damage estimate.
type AffectingEvent struct {
	Magnitude float64 `json:"magnitude"`
	Distance  float64 `json:"distance"`
	Depth     float64 `json:"depth"`
	Location  string  `json:"location"`
	Date      string  `json:"date"`
	Time      string  `json:"time"`
}

// BuildingRiskDetail is the per-city building damage estimate.
type BuildingRiskDetail struct {
	DamageScore              float64            `json:"damage_score"`
	DamageLevel              string             `json:"damage_level"`
	DamageDescription        string             `json:"damage_description"`
	AffectedBuildingsPercent map[string]float64 `json:"affected_buildings_percent"`
	BuildingStructure        map[string]float64 `json:"building_structure"`
	Factors                  map[string]float64 `json:"factors,omitempty"`
}

// Ack is the generic status/message acknowledgement the backend returns for
// alert registrations.
type Ack struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Warning string `json:"warning,omitempty"`
}

// ChatReply is the chatbot response body.
type ChatReply struct {
	Response string `json:"response"`
}
