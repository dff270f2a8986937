// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package atten

// waterEnergiesMeV and waterMassAttenCm2PerG are NIST XCOM tabulated
// photon energies (MeV) and the corresponding mass attenuation
// coefficients of liquid water (cm²/g). Water density is 1 g/cm³, so the
// mass and linear attenuation coefficients coincide numerically.
var waterEnergiesMeV = []float64{
	0.001, 0.0015, 0.002, 0.003, 0.004, 0.005, 0.006, 0.008, 0.010, 0.015,
	0.020, 0.030, 0.040, 0.050, 0.060, 0.080, 0.100, 0.150, 0.200, 0.300,
	0.400, 0.500, 0.600, 0.800, 1.000, 1.250, 1.500, 2.000, 3.000, 4.000,
	5.000, 6.000, 8.000, 10.00, 15.00, 20.00,
}

var waterMassAttenCm2PerG = []float64{
	4078.0, 1376.0, 617.3, 192.9, 82.78, 42.58, 24.64, 10.37, 5.329, 1.673,
	0.8096, 0.3756, 0.2683, 0.2269, 0.2059, 0.1837, 0.1707, 0.1505, 0.1370, 0.1186,
	0.1061, 0.09687, 0.08956, 0.07865, 0.07072, 0.06323, 0.05754, 0.04942, 0.03969, 0.03403,
	0.03031, 0.02770, 0.02429, 0.02219, 0.01941, 0.01813,
}
