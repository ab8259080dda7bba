package regression

import "github.com/giygas/city-airquality/entities"

func pf(v float64) *float64 { return &v }

// PinnedAirQuality are the first ten rows of a reference run, in the order
// that run happened to write them.
var PinnedAirQuality = []entities.AirQualitySample{
	{CO: pf(250.34), NO2: pf(3.43), O3: pf(167.37), SO2: pf(2.92), PM25: pf(17.78), PM10: pf(26.26), OverallAQI: pf(220), City: "Perris"},
	{CO: pf(287.06), NO2: pf(0.76), O3: pf(103.0), SO2: pf(2.3), PM25: pf(6.06), PM10: pf(6.37), OverallAQI: pf(170), City: "Mount Vernon"},
	{CO: pf(247.0), NO2: pf(0.56), O3: pf(41.13), SO2: pf(0.19), PM25: pf(1.79), PM10: pf(1.85), OverallAQI: pf(34), City: "Mobile"},
	{CO: pf(280.38), NO2: pf(1.06), O3: pf(98.71), SO2: pf(1.1), PM25: pf(4.08), PM10: pf(4.47), OverallAQI: pf(159), City: "Dale City"},
	{CO: pf(323.77), NO2: pf(1.67), O3: pf(86.55), SO2: pf(6.32), PM25: pf(2.64), PM10: pf(2.95), OverallAQI: pf(128), City: "Maple Grove"},
	{CO: pf(243.66), NO2: pf(0.91), O3: pf(100.14), SO2: pf(1.27), PM25: pf(5.43), PM10: pf(5.68), OverallAQI: pf(162), City: "Muncie"},
	{CO: pf(173.57), NO2: pf(0.23), O3: pf(94.41), SO2: pf(0.38), PM25: pf(12.62), PM10: pf(48.06), OverallAQI: pf(148), City: "San Clemente"},
	{CO: pf(211.95), NO2: pf(0.84), O3: pf(105.86), SO2: pf(0.24), PM25: pf(1.67), PM10: pf(1.79), OverallAQI: pf(177), City: "Providence"},
	{CO: pf(263.69), NO2: pf(0.8), O3: pf(100.14), SO2: pf(0.4), PM25: pf(4.49), PM10: pf(4.66), OverallAQI: pf(162), City: "Norman"},
	{CO: pf(260.35), NO2: pf(1.71), O3: pf(130.18), SO2: pf(5.36), PM25: pf(6.21), PM10: pf(6.76), OverallAQI: pf(205), City: "Hoover"},
}
